package services

import (
	"context"
	"fmt"

	"job-match-api/internal/models"
	"job-match-api/internal/storage"
	"job-match-api/internal/transport/dto"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type candidateService struct {
	candidateRepo storage.CandidateRepository
	skillRepo     storage.SkillRepository
	txRunner      storage.TxRunner
}

// NewCandidateService creates a new instance of CandidateService.
func NewCandidateService(candidateRepo storage.CandidateRepository, skillRepo storage.SkillRepository, txRunner storage.TxRunner) CandidateService {
	return &candidateService{
		candidateRepo: candidateRepo,
		skillRepo:     skillRepo,
		txRunner:      txRunner,
	}
}

func (s *candidateService) GetByID(ctx context.Context, req *dto.GetCandidateByIDRequest) (*models.Candidate, error) {
	candidate, err := s.candidateRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("fetching candidate %s", req.ID))
	}

	skills, err := s.candidateRepo.ListSkills(ctx, req.ID)
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("fetching skills for candidate %s", req.ID))
	}
	candidate.Skills = skills

	return candidate, nil
}

func (s *candidateService) UpdateProfile(ctx context.Context, req *dto.UpdateCandidateProfileRequest) (*models.Candidate, error) {
	if req.Name != nil {
		clean := sanitizeText(*req.Name)
		req.Name = &clean
	}
	if req.Bio != nil {
		clean := sanitizeText(*req.Bio)
		req.Bio = &clean
	}
	if req.Location != nil {
		clean := sanitizeText(*req.Location)
		req.Location = &clean
	}

	updated, err := s.candidateRepo.Update(ctx, req)
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("updating candidate %s", req.ID))
	}

	skills, err := s.candidateRepo.ListSkills(ctx, req.ID)
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("fetching skills for candidate %s", req.ID))
	}
	updated.Skills = skills

	return updated, nil
}

// SetSkills replaces the candidate's skill list. Every reference must exist
// in the catalog; candidates cannot invent skills inline.
func (s *candidateService) SetSkills(ctx context.Context, req *dto.SetCandidateSkillsRequest) ([]models.Skill, error) {
	known, err := s.skillRepo.GetByIDs(ctx, req.SkillIDs)
	if err != nil {
		return nil, mapRepoError(err, "validating skill references")
	}
	if missing := missingSkillIDs(req.SkillIDs, known); len(missing) > 0 {
		return nil, fmt.Errorf("%w: unknown skill IDs %v", ErrValidation, missing)
	}

	err = s.txRunner.RunInTx(ctx, func(tx pgx.Tx) error {
		return s.candidateRepo.WithTx(tx).ReplaceSkills(ctx, req.CandidateID, req.SkillIDs)
	})
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("replacing skills for candidate %s", req.CandidateID))
	}

	skills, err := s.candidateRepo.ListSkills(ctx, req.CandidateID)
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("fetching skills for candidate %s", req.CandidateID))
	}
	return skills, nil
}

func missingSkillIDs(requested []uuid.UUID, known []models.Skill) []uuid.UUID {
	knownSet := make(map[uuid.UUID]struct{}, len(known))
	for _, s := range known {
		knownSet[s.ID] = struct{}{}
	}
	var missing []uuid.UUID
	for _, id := range requested {
		if _, ok := knownSet[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}
