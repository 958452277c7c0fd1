package services_test

import (
	"context"
	"errors"
	"testing"

	mock_storage "job-match-api/internal/mocks"
	"job-match-api/internal/models"
	"job-match-api/internal/services"
	"job-match-api/internal/storage"
	"job-match-api/internal/transport/dto"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRecommendationServiceTest(t *testing.T) (context.Context, services.RecommendationService, *mock_storage.MockJobRepository, *mock_storage.MockCandidateRepository, *mock_storage.MockMatchRepository, *gomock.Controller) {
	ctrl := gomock.NewController(t)
	jobRepo := mock_storage.NewMockJobRepository(ctrl)
	candidateRepo := mock_storage.NewMockCandidateRepository(ctrl)
	matchRepo := mock_storage.NewMockMatchRepository(ctrl)
	svc := services.NewRecommendationService(jobRepo, candidateRepo, matchRepo)
	return context.Background(), svc, jobRepo, candidateRepo, matchRepo, ctrl
}

func TestRecommendationService_RecommendCandidates(t *testing.T) {
	employerID := uuid.New()
	jobID := uuid.New()
	goID := uuid.New()
	sqlID := uuid.New()

	jobSkills := []models.JobSkill{
		{SkillID: goID, Priority: 5},
		{SkillID: sqlID, Priority: 3},
	}

	fullFit := models.Candidate{ID: uuid.New(), Name: "Full Fit", Skills: []models.Skill{{ID: goID}, {ID: sqlID}}}
	halfFit := models.Candidate{ID: uuid.New(), Name: "Half Fit", Skills: []models.Skill{{ID: goID}}}
	noFit := models.Candidate{ID: uuid.New(), Name: "No Fit", Skills: []models.Skill{{ID: uuid.New()}}}
	alreadyMatched := models.Candidate{ID: uuid.New(), Name: "Applied", Skills: []models.Skill{{ID: goID}, {ID: sqlID}}}

	ctx, svc, jobRepo, candidateRepo, matchRepo, ctrl := setupRecommendationServiceTest(t)
	defer ctrl.Finish()

	jobRepo.EXPECT().GetByID(gomock.Any(), jobID).
		Return(&models.Job{ID: jobID, EmployerID: employerID, MatchThreshold: 50}, nil).Times(1)
	jobRepo.EXPECT().ListSkills(gomock.Any(), jobID).Return(jobSkills, nil).Times(1)
	matchRepo.EXPECT().ListCandidateIDsByJob(gomock.Any(), jobID).Return([]uuid.UUID{alreadyMatched.ID}, nil).Times(1)
	candidateRepo.EXPECT().ListWithSkills(gomock.Any()).
		Return([]models.Candidate{noFit, halfFit, fullFit, alreadyMatched}, nil).Times(1)

	feed, err := svc.RecommendCandidates(ctx, &dto.RecommendCandidatesRequest{JobID: jobID, EmployerID: employerID})

	require.NoError(t, err)
	require.Len(t, feed, 2)
	assert.Equal(t, fullFit.ID, feed[0].Candidate.ID)
	assert.Equal(t, 100.0, feed[0].Score)
	assert.Equal(t, halfFit.ID, feed[1].Candidate.ID)
	assert.Equal(t, 50.0, feed[1].Score)
}

func TestRecommendationService_RecommendCandidates_Forbidden(t *testing.T) {
	ctx, svc, jobRepo, _, _, ctrl := setupRecommendationServiceTest(t)
	defer ctrl.Finish()

	jobID := uuid.New()
	jobRepo.EXPECT().GetByID(gomock.Any(), jobID).
		Return(&models.Job{ID: jobID, EmployerID: uuid.New()}, nil).Times(1)

	feed, err := svc.RecommendCandidates(ctx, &dto.RecommendCandidatesRequest{JobID: jobID, EmployerID: uuid.New()})

	require.Error(t, err)
	assert.True(t, errors.Is(err, services.ErrForbidden), "Expected ErrForbidden, got %v", err)
	assert.Nil(t, feed)
}

func TestRecommendationService_RecommendCandidates_JobNotFound(t *testing.T) {
	ctx, svc, jobRepo, _, _, ctrl := setupRecommendationServiceTest(t)
	defer ctrl.Finish()

	jobID := uuid.New()
	jobRepo.EXPECT().GetByID(gomock.Any(), jobID).Return(nil, storage.ErrNotFound).Times(1)

	_, err := svc.RecommendCandidates(ctx, &dto.RecommendCandidatesRequest{JobID: jobID, EmployerID: uuid.New()})

	require.Error(t, err)
	assert.True(t, errors.Is(err, services.ErrNotFound), "Expected ErrNotFound, got %v", err)
}

func TestRecommendationService_RecommendCandidates_Limit(t *testing.T) {
	ctx, svc, jobRepo, candidateRepo, matchRepo, ctrl := setupRecommendationServiceTest(t)
	defer ctrl.Finish()

	employerID := uuid.New()
	jobID := uuid.New()
	goID := uuid.New()

	pool := make([]models.Candidate, 0, 5)
	for i := 0; i < 5; i++ {
		pool = append(pool, models.Candidate{ID: uuid.New(), Skills: []models.Skill{{ID: goID}}})
	}

	jobRepo.EXPECT().GetByID(gomock.Any(), jobID).
		Return(&models.Job{ID: jobID, EmployerID: employerID, MatchThreshold: 0}, nil).Times(1)
	jobRepo.EXPECT().ListSkills(gomock.Any(), jobID).
		Return([]models.JobSkill{{SkillID: goID, Priority: 1}}, nil).Times(1)
	matchRepo.EXPECT().ListCandidateIDsByJob(gomock.Any(), jobID).Return([]uuid.UUID{}, nil).Times(1)
	candidateRepo.EXPECT().ListWithSkills(gomock.Any()).Return(pool, nil).Times(1)

	feed, err := svc.RecommendCandidates(ctx, &dto.RecommendCandidatesRequest{JobID: jobID, EmployerID: employerID, Limit: 2})

	require.NoError(t, err)
	assert.Len(t, feed, 2)
}

func TestRecommendationService_RecommendJobs(t *testing.T) {
	ctx, svc, jobRepo, candidateRepo, _, ctrl := setupRecommendationServiceTest(t)
	defer ctrl.Finish()

	candidateID := uuid.New()
	goID := uuid.New()
	sqlID := uuid.New()
	k8sID := uuid.New()

	bothSkills := models.Job{ID: uuid.New(), Title: "Backend", JobSkills: []models.JobSkill{
		{SkillID: goID, Priority: 5}, {SkillID: sqlID, Priority: 2},
	}}
	oneSkill := models.Job{ID: uuid.New(), Title: "Data", JobSkills: []models.JobSkill{
		{SkillID: sqlID, Priority: 5},
	}}
	noOverlap := models.Job{ID: uuid.New(), Title: "Platform", JobSkills: []models.JobSkill{
		{SkillID: k8sID, Priority: 4},
	}}

	candidateRepo.EXPECT().GetByID(gomock.Any(), candidateID).
		Return(&models.Candidate{ID: candidateID}, nil).Times(1)
	candidateRepo.EXPECT().ListSkills(gomock.Any(), candidateID).
		Return([]models.Skill{{ID: goID}, {ID: sqlID}}, nil).Times(1)
	jobRepo.EXPECT().ListWithSkills(gomock.Any()).
		Return([]models.Job{noOverlap, oneSkill, bothSkills}, nil).Times(1)

	feed, err := svc.RecommendJobs(ctx, &dto.ListJobsForCandidateRequest{CandidateID: candidateID, Limit: 20})

	require.NoError(t, err)
	require.Len(t, feed, 2)
	assert.Equal(t, bothSkills.ID, feed[0].Job.ID)
	assert.Equal(t, 2, feed[0].Overlap)
	assert.Equal(t, oneSkill.ID, feed[1].Job.ID)
	assert.Equal(t, 1, feed[1].Overlap)
}

func TestRecommendationService_RecommendJobs_CandidateNotFound(t *testing.T) {
	ctx, svc, _, candidateRepo, _, ctrl := setupRecommendationServiceTest(t)
	defer ctrl.Finish()

	candidateID := uuid.New()
	candidateRepo.EXPECT().GetByID(gomock.Any(), candidateID).Return(nil, storage.ErrNotFound).Times(1)

	feed, err := svc.RecommendJobs(ctx, &dto.ListJobsForCandidateRequest{CandidateID: candidateID})

	require.Error(t, err)
	assert.True(t, errors.Is(err, services.ErrNotFound), "Expected ErrNotFound, got %v", err)
	assert.Nil(t, feed)
}

func TestRecommendationService_RecommendJobs_NoSkills(t *testing.T) {
	ctx, svc, jobRepo, candidateRepo, _, ctrl := setupRecommendationServiceTest(t)
	defer ctrl.Finish()

	candidateID := uuid.New()
	candidateRepo.EXPECT().GetByID(gomock.Any(), candidateID).
		Return(&models.Candidate{ID: candidateID}, nil).Times(1)
	candidateRepo.EXPECT().ListSkills(gomock.Any(), candidateID).Return([]models.Skill{}, nil).Times(1)
	jobRepo.EXPECT().ListWithSkills(gomock.Any()).Return([]models.Job{
		{ID: uuid.New(), JobSkills: []models.JobSkill{{SkillID: uuid.New(), Priority: 3}}},
	}, nil).Times(1)

	feed, err := svc.RecommendJobs(ctx, &dto.ListJobsForCandidateRequest{CandidateID: candidateID})

	require.NoError(t, err)
	assert.Empty(t, feed)
	assert.NotNil(t, feed)
}
