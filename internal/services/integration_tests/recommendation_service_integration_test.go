package integration_tests

import (
	"context"
	"testing"

	"job-match-api/internal/services"
	"job-match-api/internal/storage/postgres"
	"job-match-api/internal/transport/dto"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupRecommendationIntegrationTest initializes the services with a real DB pool.
func setupRecommendationIntegrationTest(t *testing.T) (context.Context, services.RecommendationService, services.MatchService, *pgxpool.Pool) {
	t.Helper()
	pool, _ := getTestClients(t)
	jobRepo := postgres.NewJobRepo(pool)
	candidateRepo := postgres.NewCandidateRepo(pool)
	matchRepo := postgres.NewMatchRepo(pool)
	recommendationService := services.NewRecommendationService(jobRepo, candidateRepo, matchRepo)
	matchService := services.NewMatchService(
		matchRepo,
		jobRepo,
		candidateRepo,
		postgres.NewInterviewRepo(pool),
		postgres.NewPoolTxRunner(pool),
	)
	ctx := context.Background()
	return ctx, recommendationService, matchService, pool
}

func TestRecommendationService_Integration_RecommendCandidates(t *testing.T) {
	ctx, recommendationService, matchService, pool := setupRecommendationIntegrationTest(t)
	defer cleanupTables(ctx, t, pool, "candidates", "employers", "skills", "jobs", "matches", "interviews")

	goSkill := createTestSkill(t, ctx, pool, "Go", "Programming Language")
	sqlSkill := createTestSkill(t, ctx, pool, "SQL", "Programming Language")
	reactSkill := createTestSkill(t, ctx, pool, "React", "Framework")

	employer := createTestEmployer(t, ctx, pool, "feed-employer@test.com", "Feed Inc")
	testJob := createTestJob(t, ctx, pool, employer.ID, "Backend Engineer", 50, []dto.JobSkillInput{
		{SkillID: goSkill.ID, Priority: 5},
		{SkillID: sqlSkill.ID, Priority: 3},
	})

	fullFit := createTestCandidate(t, ctx, pool, "feed-full@test.com", goSkill.ID, sqlSkill.ID)
	halfFit := createTestCandidate(t, ctx, pool, "feed-half@test.com", goSkill.ID)
	// Below the job's 50% threshold
	createTestCandidate(t, ctx, pool, "feed-none@test.com", reactSkill.ID)
	// Clears the threshold but has already applied, so the feed drops them
	applied := createTestCandidate(t, ctx, pool, "feed-applied@test.com", goSkill.ID, sqlSkill.ID)
	_, err := matchService.CreateMatch(ctx, &dto.CreateMatchRequest{JobID: testJob.ID, CandidateID: applied.ID})
	require.NoError(t, err)

	feed, err := recommendationService.RecommendCandidates(ctx, &dto.RecommendCandidatesRequest{
		JobID:      testJob.ID,
		EmployerID: employer.ID,
		Limit:      20,
	})
	require.NoError(t, err)
	require.Len(t, feed, 2)
	assert.Equal(t, fullFit.ID, feed[0].Candidate.ID)
	assert.InDelta(t, 100.0, feed[0].Score, 0.001)
	assert.Equal(t, halfFit.ID, feed[1].Candidate.ID)
	assert.InDelta(t, 50.0, feed[1].Score, 0.001)

	// Another employer cannot pull the feed for this posting
	otherEmployer := createTestEmployer(t, ctx, pool, "feed-other@test.com", "Other Inc")
	_, err = recommendationService.RecommendCandidates(ctx, &dto.RecommendCandidatesRequest{
		JobID:      testJob.ID,
		EmployerID: otherEmployer.ID,
		Limit:      20,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, services.ErrForbidden)
}

func TestRecommendationService_Integration_RecommendJobs(t *testing.T) {
	ctx, recommendationService, _, pool := setupRecommendationIntegrationTest(t)
	defer cleanupTables(ctx, t, pool, "candidates", "employers", "skills", "jobs", "matches", "interviews")

	goSkill := createTestSkill(t, ctx, pool, "Go", "Programming Language")
	sqlSkill := createTestSkill(t, ctx, pool, "SQL", "Programming Language")
	rustSkill := createTestSkill(t, ctx, pool, "Rust", "Programming Language")

	employer := createTestEmployer(t, ctx, pool, "jobs-employer@test.com", "Jobs Inc")
	bothJob := createTestJob(t, ctx, pool, employer.ID, "Backend Engineer", 0, []dto.JobSkillInput{
		{SkillID: goSkill.ID, Priority: 5},
		{SkillID: sqlSkill.ID, Priority: 3},
	})
	oneJob := createTestJob(t, ctx, pool, employer.ID, "Data Engineer", 0, []dto.JobSkillInput{
		{SkillID: sqlSkill.ID, Priority: 5},
	})
	// Shares nothing with the candidate, so it never surfaces
	createTestJob(t, ctx, pool, employer.ID, "Systems Engineer", 0, []dto.JobSkillInput{
		{SkillID: rustSkill.ID, Priority: 5},
	})

	candidate := createTestCandidate(t, ctx, pool, "jobs-candidate@test.com", goSkill.ID, sqlSkill.ID)

	feed, err := recommendationService.RecommendJobs(ctx, &dto.ListJobsForCandidateRequest{
		CandidateID: candidate.ID,
		Limit:       20,
	})
	require.NoError(t, err)
	require.Len(t, feed, 2)
	assert.Equal(t, bothJob.ID, feed[0].Job.ID)
	assert.Equal(t, 2, feed[0].Overlap)
	assert.Equal(t, oneJob.ID, feed[1].Job.ID)
	assert.Equal(t, 1, feed[1].Overlap)
}

func TestSkillService_Integration_InDemandRanking(t *testing.T) {
	ctx, _, _, pool := setupRecommendationIntegrationTest(t)
	defer cleanupTables(ctx, t, pool, "candidates", "employers", "skills", "jobs", "matches", "interviews")
	skillService := services.NewSkillService(postgres.NewSkillRepo(pool), testRedisClient)

	goSkill := createTestSkill(t, ctx, pool, "Go", "Programming Language")
	sqlSkill := createTestSkill(t, ctx, pool, "SQL", "Programming Language")
	createTestSkill(t, ctx, pool, "React", "Framework") // Required by nothing

	employer := createTestEmployer(t, ctx, pool, "demand-employer@test.com", "Demand Inc")
	createTestJob(t, ctx, pool, employer.ID, "Job A", 0, []dto.JobSkillInput{
		{SkillID: goSkill.ID, Priority: 5},
		{SkillID: sqlSkill.ID, Priority: 2},
	})
	createTestJob(t, ctx, pool, employer.ID, "Job B", 0, []dto.JobSkillInput{
		{SkillID: goSkill.ID, Priority: 4},
	})

	ranking, err := skillService.ListInDemand(ctx, &dto.ListInDemandSkillsRequest{Limit: 10})
	require.NoError(t, err)
	require.Len(t, ranking, 2, "Skills no posting requires should not rank")
	assert.Equal(t, "Go", ranking[0].Skill.Name)
	assert.InDelta(t, 9.0, ranking[0].Demand, 0.001)
	assert.Equal(t, "SQL", ranking[1].Skill.Name)
	assert.InDelta(t, 2.0, ranking[1].Demand, 0.001)

	cleanupRedis(t, testRedisClient)
}
