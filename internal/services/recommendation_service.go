package services

import (
	"context"
	"fmt"
	"log"

	"job-match-api/internal/matching"
	"job-match-api/internal/storage"
	"job-match-api/internal/transport/dto"

	"github.com/google/uuid"
)

type recommendationService struct {
	jobRepo       storage.JobRepository
	candidateRepo storage.CandidateRepository
	matchRepo     storage.MatchRepository
}

// NewRecommendationService creates a new instance of RecommendationService.
func NewRecommendationService(jobRepo storage.JobRepository, candidateRepo storage.CandidateRepository, matchRepo storage.MatchRepository) RecommendationService {
	return &recommendationService{
		jobRepo:       jobRepo,
		candidateRepo: candidateRepo,
		matchRepo:     matchRepo,
	}
}

// RecommendCandidates builds the employer-side feed for one job: candidates
// scoring at or above the job's threshold, without those already matched to
// it, best fit first.
func (s *recommendationService) RecommendCandidates(ctx context.Context, req *dto.RecommendCandidatesRequest) ([]matching.CandidateScore, error) {
	job, err := s.jobRepo.GetByID(ctx, req.JobID)
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("fetching job %s for recommendations", req.JobID))
	}
	if job.EmployerID != req.EmployerID {
		log.Printf("RecommendationService: Forbidden feed request by employer %s on job %s owned by %s", req.EmployerID, job.ID, job.EmployerID)
		return nil, ErrForbidden
	}

	jobSkills, err := s.jobRepo.ListSkills(ctx, req.JobID)
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("fetching requirements for job %s", req.JobID))
	}

	matchedIDs, err := s.matchRepo.ListCandidateIDsByJob(ctx, req.JobID)
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("fetching matched candidates for job %s", req.JobID))
	}
	exclude := make(map[uuid.UUID]struct{}, len(matchedIDs))
	for _, id := range matchedIDs {
		exclude[id] = struct{}{}
	}

	pool, err := s.candidateRepo.ListWithSkills(ctx)
	if err != nil {
		return nil, mapRepoError(err, "fetching candidate pool")
	}

	ranked := matching.RankCandidates(jobSkills, job.MatchThreshold, pool, exclude)
	if req.Limit > 0 && len(ranked) > req.Limit {
		ranked = ranked[:req.Limit]
	}
	return ranked, nil
}

// RecommendJobs builds the candidate-side feed: postings sharing at least
// one skill with the candidate, most shared skills first.
func (s *recommendationService) RecommendJobs(ctx context.Context, req *dto.ListJobsForCandidateRequest) ([]matching.JobOverlap, error) {
	// An unknown candidate is an error, not an empty feed.
	if _, err := s.candidateRepo.GetByID(ctx, req.CandidateID); err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("fetching candidate %s for recommendations", req.CandidateID))
	}

	skills, err := s.candidateRepo.ListSkills(ctx, req.CandidateID)
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("fetching skills for candidate %s", req.CandidateID))
	}
	skillIDs := make([]uuid.UUID, 0, len(skills))
	for _, sk := range skills {
		skillIDs = append(skillIDs, sk.ID)
	}

	jobs, err := s.jobRepo.ListWithSkills(ctx)
	if err != nil {
		return nil, mapRepoError(err, "fetching job pool")
	}

	ranked := matching.RankJobs(skillIDs, jobs)
	if req.Limit > 0 && len(ranked) > req.Limit {
		ranked = ranked[:req.Limit]
	}
	return ranked, nil
}
