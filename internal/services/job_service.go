package services

import (
	"context"
	"fmt"
	"log"

	"job-match-api/internal/models"
	"job-match-api/internal/storage"
	"job-match-api/internal/transport/dto"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type jobService struct {
	jobRepo   storage.JobRepository
	skillRepo storage.SkillRepository
	matchRepo storage.MatchRepository
	txRunner  storage.TxRunner
}

// NewJobService creates a new instance of JobService.
func NewJobService(jobRepo storage.JobRepository, skillRepo storage.SkillRepository, matchRepo storage.MatchRepository, txRunner storage.TxRunner) JobService {
	return &jobService{
		jobRepo:   jobRepo,
		skillRepo: skillRepo,
		matchRepo: matchRepo,
		txRunner:  txRunner,
	}
}

// CreateJob creates a posting together with its requirement list, in one
// transaction.
func (s *jobService) CreateJob(ctx context.Context, req *dto.CreateJobRequest) (*models.Job, error) {
	req.Title = sanitizeText(req.Title)
	req.Description = sanitizeText(req.Description)
	req.Location = sanitizeText(req.Location)

	if err := s.validateSkillRefs(ctx, req.Skills); err != nil {
		return nil, err
	}

	var created *models.Job
	err := s.txRunner.RunInTx(ctx, func(tx pgx.Tx) error {
		txJobRepo := s.jobRepo.WithTx(tx)

		job, err := txJobRepo.Create(ctx, req)
		if err != nil {
			return mapRepoError(err, "creating job")
		}
		if err := txJobRepo.ReplaceSkills(ctx, job.ID, req.Skills); err != nil {
			return mapRepoError(err, "writing job requirements")
		}
		created = job
		return nil
	})
	if err != nil {
		return nil, err
	}

	skills, err := s.jobRepo.ListSkills(ctx, created.ID)
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("fetching requirements for job %s", created.ID))
	}
	created.JobSkills = skills

	return created, nil
}

func (s *jobService) GetJobByID(ctx context.Context, req *dto.GetJobByIDRequest) (*models.Job, error) {
	job, err := s.jobRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("fetching job %s", req.ID))
	}

	skills, err := s.jobRepo.ListSkills(ctx, req.ID)
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("fetching requirements for job %s", req.ID))
	}
	job.JobSkills = skills

	return job, nil
}

// ListJobs returns postings matching the filters. Requirement lists are not
// populated on list views.
func (s *jobService) ListJobs(ctx context.Context, req *dto.ListJobsRequest) ([]models.Job, error) {
	jobs, err := s.jobRepo.List(ctx, req)
	if err != nil {
		return nil, mapRepoError(err, "listing jobs")
	}
	return jobs, nil
}

func (s *jobService) ListJobsByEmployer(ctx context.Context, req *dto.ListJobsByEmployerRequest) ([]models.Job, error) {
	jobs, err := s.jobRepo.ListByEmployer(ctx, req)
	if err != nil {
		return nil, mapRepoError(err, "listing jobs by employer")
	}
	return jobs, nil
}

// UpdateJob modifies a posting the caller owns. A Skills entry replaces the
// whole requirement list.
func (s *jobService) UpdateJob(ctx context.Context, req *dto.UpdateJobRequest) (*models.Job, error) {
	job, err := s.jobRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("fetching job %s for update", req.ID))
	}
	if job.EmployerID != req.EmployerID {
		log.Printf("JobService: Forbidden update attempt by employer %s on job %s owned by %s", req.EmployerID, job.ID, job.EmployerID)
		return nil, ErrForbidden
	}

	if req.Title != nil {
		clean := sanitizeText(*req.Title)
		req.Title = &clean
	}
	if req.Description != nil {
		clean := sanitizeText(*req.Description)
		req.Description = &clean
	}
	if req.Location != nil {
		clean := sanitizeText(*req.Location)
		req.Location = &clean
	}
	if req.Skills != nil {
		if err := s.validateSkillRefs(ctx, *req.Skills); err != nil {
			return nil, err
		}
	}

	updated := job
	err = s.txRunner.RunInTx(ctx, func(tx pgx.Tx) error {
		txJobRepo := s.jobRepo.WithTx(tx)

		if hasJobFieldUpdates(req) {
			j, err := txJobRepo.Update(ctx, req)
			if err != nil {
				return mapRepoError(err, fmt.Sprintf("updating job %s", req.ID))
			}
			updated = j
		}
		if req.Skills != nil {
			if err := txJobRepo.ReplaceSkills(ctx, req.ID, *req.Skills); err != nil {
				return mapRepoError(err, "replacing job requirements")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	skills, err := s.jobRepo.ListSkills(ctx, req.ID)
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("fetching requirements for job %s", req.ID))
	}
	updated.JobSkills = skills

	return updated, nil
}

// DeleteJob removes a posting the caller owns. Postings with any match,
// whatever its status, are kept; the match history references them.
func (s *jobService) DeleteJob(ctx context.Context, req *dto.DeleteJobRequest) error {
	job, err := s.jobRepo.GetByID(ctx, req.ID)
	if err != nil {
		return mapRepoError(err, fmt.Sprintf("fetching job %s for deletion", req.ID))
	}
	if job.EmployerID != req.EmployerID {
		log.Printf("JobService: Forbidden delete attempt by employer %s on job %s owned by %s", req.EmployerID, job.ID, job.EmployerID)
		return ErrForbidden
	}

	count, err := s.matchRepo.CountByJob(ctx, req.ID)
	if err != nil {
		return mapRepoError(err, fmt.Sprintf("counting matches for job %s", req.ID))
	}
	if count > 0 {
		return fmt.Errorf("%w: job has %d matches and cannot be deleted", ErrConflict, count)
	}

	if err := s.jobRepo.Delete(ctx, req); err != nil {
		return mapRepoError(err, fmt.Sprintf("deleting job %s", req.ID))
	}
	return nil
}

func (s *jobService) validateSkillRefs(ctx context.Context, skills []dto.JobSkillInput) error {
	if len(skills) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, 0, len(skills))
	for _, sk := range skills {
		ids = append(ids, sk.SkillID)
	}
	known, err := s.skillRepo.GetByIDs(ctx, ids)
	if err != nil {
		return mapRepoError(err, "validating skill references")
	}
	if missing := missingSkillIDs(ids, known); len(missing) > 0 {
		return fmt.Errorf("%w: unknown skill IDs %v", ErrValidation, missing)
	}
	return nil
}

func hasJobFieldUpdates(req *dto.UpdateJobRequest) bool {
	return req.Title != nil || req.Description != nil || req.Type != nil ||
		req.Location != nil || req.IsRemote != nil || req.WillSponsor != nil ||
		req.Salary != nil || req.MatchThreshold != nil
}
