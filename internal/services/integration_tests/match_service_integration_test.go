package integration_tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"job-match-api/internal/models"
	"job-match-api/internal/services"
	"job-match-api/internal/storage/postgres"
	"job-match-api/internal/transport/dto"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupMatchServiceIntegrationTest initializes the service with a real DB pool.
func setupMatchServiceIntegrationTest(t *testing.T) (context.Context, services.MatchService, *pgxpool.Pool) {
	t.Helper()
	pool, _ := getTestClients(t)
	matchService := services.NewMatchService(
		postgres.NewMatchRepo(pool),
		postgres.NewJobRepo(pool),
		postgres.NewCandidateRepo(pool),
		postgres.NewInterviewRepo(pool),
		postgres.NewPoolTxRunner(pool),
	)
	ctx := context.Background()
	return ctx, matchService, pool
}

func TestMatchService_Integration_Lifecycle(t *testing.T) {
	ctx, matchService, pool := setupMatchServiceIntegrationTest(t)
	defer cleanupTables(ctx, t, pool, "candidates", "employers", "skills", "jobs", "matches", "interviews")

	// Prerequisites: a posting requiring Go and SQL, a candidate who has Go
	goSkill := createTestSkill(t, ctx, pool, "Go", "Programming Language")
	sqlSkill := createTestSkill(t, ctx, pool, "SQL", "Programming Language")
	employer := createTestEmployer(t, ctx, pool, "lifecycle-employer@test.com", "Lifecycle Inc")
	testJob := createTestJob(t, ctx, pool, employer.ID, "Backend Engineer", 0, []dto.JobSkillInput{
		{SkillID: goSkill.ID, Priority: 5},
		{SkillID: sqlSkill.ID, Priority: 3},
	})
	candidate := createTestCandidate(t, ctx, pool, "lifecycle-candidate@test.com", goSkill.ID)

	// --- Apply ---
	created, err := matchService.CreateMatch(ctx, &dto.CreateMatchRequest{
		JobID:       testJob.ID,
		CandidateID: candidate.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, models.OverallPreMatch, created.OverallStatus)
	assert.Equal(t, models.GeneralInterested, created.CandidateStatus)
	assert.Equal(t, models.GeneralPending, created.EmployerStatus)
	assert.Equal(t, 1, created.Version)
	assert.Nil(t, created.InterviewID)

	// --- Second application is refused ---
	_, err = matchService.CreateMatch(ctx, &dto.CreateMatchRequest{
		JobID:       testJob.ID,
		CandidateID: candidate.ID,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, services.ErrConflict), "Expected ErrConflict, got %v", err)

	// --- Employer accepts ---
	accepted, err := matchService.AcceptMatch(ctx, &dto.UpdateMatchStatusRequest{
		ID:         created.ID,
		EmployerID: employer.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, models.OverallMatch, accepted.OverallStatus)
	assert.Equal(t, models.GeneralInterested, accepted.CandidateStatus)
	assert.Equal(t, models.GeneralInterested, accepted.EmployerStatus)
	assert.Greater(t, accepted.Version, created.Version, "Status update should bump the version")

	// --- Schedule the interview ---
	interview, err := matchService.ScheduleInterview(ctx, &dto.ScheduleInterviewRequest{
		MatchID:       created.ID,
		EmployerID:    employer.ID,
		InterviewDate: time.Now().Add(48 * time.Hour),
		RoomName:      "Room 1",
	})
	require.NoError(t, err)
	require.NotNil(t, interview)
	assert.Equal(t, created.ID, interview.MatchID)
	assert.Equal(t, "Room 1", interview.RoomName)

	scheduled, err := matchService.GetMatchByID(ctx, &dto.GetMatchByIDRequest{ID: created.ID, ActorID: employer.ID})
	require.NoError(t, err)
	assert.Equal(t, models.OverallInterviewScheduled, scheduled.OverallStatus)
	require.NotNil(t, scheduled.InterviewID)
	assert.Equal(t, interview.ID, *scheduled.InterviewID)

	// --- A second interview is refused ---
	_, err = matchService.ScheduleInterview(ctx, &dto.ScheduleInterviewRequest{
		MatchID:       created.ID,
		EmployerID:    employer.ID,
		InterviewDate: time.Now().Add(72 * time.Hour),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, services.ErrConflict), "Expected ErrConflict, got %v", err)

	// --- Complete the interview ---
	completed, err := matchService.CompleteInterview(ctx, &dto.CompleteInterviewRequest{
		MatchID:    created.ID,
		EmployerID: employer.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, models.OverallPostInterview, completed.OverallStatus)
	assert.True(t, completed.OverallStatus.Terminal())

	// --- Terminal matches are locked ---
	_, err = matchService.AcceptMatch(ctx, &dto.UpdateMatchStatusRequest{
		ID:         created.ID,
		EmployerID: employer.ID,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, services.ErrInvalidTransition), "Expected ErrInvalidTransition, got %v", err)

	// --- Skill comparison ---
	breakdown, err := matchService.SharedSkills(ctx, &dto.SharedSkillsRequest{
		MatchID: created.ID,
		ActorID: candidate.ID,
	})
	require.NoError(t, err)
	require.Len(t, breakdown.Shared, 1)
	assert.Equal(t, "Go", breakdown.Shared[0].Name)
	require.Len(t, breakdown.Missing, 1)
	assert.Equal(t, "SQL", breakdown.Missing[0].Name)
	assert.Empty(t, breakdown.Other)
	assert.InDelta(t, 50.0, breakdown.Percentage, 0.001)
}

func TestMatchService_Integration_RejectLeavesCandidateTrack(t *testing.T) {
	ctx, matchService, pool := setupMatchServiceIntegrationTest(t)
	defer cleanupTables(ctx, t, pool, "candidates", "employers", "skills", "jobs", "matches", "interviews")

	goSkill := createTestSkill(t, ctx, pool, "Go", "Programming Language")
	employer := createTestEmployer(t, ctx, pool, "reject-employer@test.com", "Reject Inc")
	testJob := createTestJob(t, ctx, pool, employer.ID, "Platform Engineer", 0, []dto.JobSkillInput{
		{SkillID: goSkill.ID, Priority: 4},
	})
	candidate := createTestCandidate(t, ctx, pool, "reject-candidate@test.com", goSkill.ID)

	created, err := matchService.CreateMatch(ctx, &dto.CreateMatchRequest{
		JobID:       testJob.ID,
		CandidateID: candidate.ID,
	})
	require.NoError(t, err)

	rejected, err := matchService.RejectMatch(ctx, &dto.UpdateMatchStatusRequest{
		ID:         created.ID,
		EmployerID: employer.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, models.OverallRejected, rejected.OverallStatus)
	assert.Equal(t, models.GeneralUninterested, rejected.EmployerStatus)
	// The candidate's own track records their interest, not the outcome
	assert.Equal(t, models.GeneralInterested, rejected.CandidateStatus)

	// Only the posting's owner may act on the match
	otherEmployer := createTestEmployer(t, ctx, pool, "reject-other@test.com", "Other Inc")
	_, err = matchService.RetractMatch(ctx, &dto.UpdateMatchStatusRequest{
		ID:         created.ID,
		EmployerID: otherEmployer.ID,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, services.ErrForbidden), "Expected ErrForbidden, got %v", err)
}

func TestMatchService_Integration_ListFilters(t *testing.T) {
	ctx, matchService, pool := setupMatchServiceIntegrationTest(t)
	defer cleanupTables(ctx, t, pool, "candidates", "employers", "skills", "jobs", "matches", "interviews")

	goSkill := createTestSkill(t, ctx, pool, "Go", "Programming Language")
	employer := createTestEmployer(t, ctx, pool, "list-employer@test.com", "List Inc")
	jobA := createTestJob(t, ctx, pool, employer.ID, "Job A", 0, []dto.JobSkillInput{{SkillID: goSkill.ID, Priority: 3}})
	jobB := createTestJob(t, ctx, pool, employer.ID, "Job B", 0, nil)
	candidate := createTestCandidate(t, ctx, pool, "list-candidate@test.com", goSkill.ID)

	matchA, err := matchService.CreateMatch(ctx, &dto.CreateMatchRequest{JobID: jobA.ID, CandidateID: candidate.ID})
	require.NoError(t, err)
	_, err = matchService.CreateMatch(ctx, &dto.CreateMatchRequest{JobID: jobB.ID, CandidateID: candidate.ID})
	require.NoError(t, err)

	_, err = matchService.AcceptMatch(ctx, &dto.UpdateMatchStatusRequest{ID: matchA.ID, EmployerID: employer.ID})
	require.NoError(t, err)

	// Candidate sees both applications
	mine, err := matchService.ListByCandidate(ctx, &dto.ListMatchesForCandidateRequest{
		CandidateID: candidate.ID,
		Limit:       10,
	})
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	// Status filter narrows to the accepted one
	acceptedOnly, err := matchService.ListByCandidate(ctx, &dto.ListMatchesForCandidateRequest{
		CandidateID: candidate.ID,
		Limit:       10,
		Status:      ptrString(string(models.OverallMatch)),
	})
	require.NoError(t, err)
	require.Len(t, acceptedOnly, 1)
	assert.Equal(t, matchA.ID, acceptedOnly[0].ID)

	// Employer view narrowed to one posting
	forJobB, err := matchService.ListByEmployer(ctx, &dto.ListMatchesForEmployerRequest{
		EmployerID: employer.ID,
		JobID:      &jobB.ID,
		Limit:      10,
	})
	require.NoError(t, err)
	require.Len(t, forJobB, 1)
	assert.Equal(t, jobB.ID, forJobB[0].JobID)
}
