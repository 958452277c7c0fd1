package integration_tests

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"job-match-api/internal/models"
	"job-match-api/internal/storage/postgres"
	"job-match-api/internal/transport/dto"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

// Helper to create a pointer to a string
func ptrString(s string) *string { return &s }

var testPool *pgxpool.Pool
var testRedisClient *redis.Client

// getTestClients establishes a connection pool to the test database.
// It reads the DSN from the TEST_DATABASE_URL environment variable and skips
// the calling test when it is not set.
func getTestClients(t *testing.T) (*pgxpool.Pool, *redis.Client) {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL environment variable not set; skipping integration test")
	}

	if testPool == nil {
		pool, err := pgxpool.New(context.Background(), dsn)
		require.NoError(t, err, "Failed to create test database pool")
		testPool = pool

		// Run migrations before handing the pool out to ensure schema exists
		runMigrations(t)
	}

	// --- Redis Setup ---
	if testRedisClient == nil {
		redisAddr := os.Getenv("TEST_REDIS_URL")
		if redisAddr == "" {
			log.Println("WARN: TEST_REDIS_URL not set. Redis-dependent tests may fail or be skipped.")
			// Keep testRedisClient as nil
		} else {
			rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
			ctxRedis, cancelRedis := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancelRedis()
			if err := rdb.Ping(ctxRedis).Err(); err != nil {
				log.Printf("WARN: Failed to connect to test Redis at %s: %v. Redis-dependent tests may fail.", redisAddr, err)
				// Keep testRedisClient as nil
			} else {
				log.Println("Successfully connected to test Redis.")
				testRedisClient = rdb
			}
		}
	}
	return testPool, testRedisClient
}

// runMigrations applies the schema migration files in order.
func runMigrations(t *testing.T) {
	t.Helper()

	ctx := context.Background()
	files, err := filepath.Glob(filepath.Join("..", "..", "..", "migrations", "*.sql"))
	require.NoError(t, err)
	require.NotEmpty(t, files, "No migration files found")

	for _, file := range files {
		sqlBytes, err := os.ReadFile(file)
		require.NoError(t, err, "Failed to read migration %s", file)
		_, err = testPool.Exec(ctx, string(sqlBytes))
		require.NoError(t, err, "Failed to apply migration %s", file)
	}
	log.Println("Database schema created/checked.")
}

// cleanupTables truncates specified tables for test isolation.
func cleanupTables(ctx context.Context, t *testing.T, pool *pgxpool.Pool, tables ...string) {
	t.Helper()
	if len(tables) == 0 {
		return // Nothing to clean
	}

	query := "TRUNCATE TABLE " + strings.Join(tables, ", ") + " CASCADE"
	_, err := pool.Exec(ctx, query)
	require.NoError(t, err, "Failed to truncate tables %v", tables)
	log.Printf("Cleaned tables: %s", strings.Join(tables, ", "))
}

// cleanupRedis flushes the test Redis database. Use with caution!
func cleanupRedis(t *testing.T, client *redis.Client) {
	t.Helper()
	if client == nil {
		return // No client to clean
	}
	err := client.FlushDB(context.Background()).Err()
	require.NoError(t, err, "Failed to flush test Redis database")
	log.Println("Cleaned test Redis database (FLUSHDB).")
}

// Helper function to create a skill catalog entry for tests
func createTestSkill(t *testing.T, ctx context.Context, pool *pgxpool.Pool, name, category string) *models.Skill {
	t.Helper()
	skillRepo := postgres.NewSkillRepo(pool)
	skill, err := skillRepo.Create(ctx, &dto.CreateSkillRequest{Name: name, Category: category})
	require.NoError(t, err, "Failed to create test skill %s", name)
	require.NotNil(t, skill)
	return skill
}

// Helper function to create an employer account for tests
func createTestEmployer(t *testing.T, ctx context.Context, pool *pgxpool.Pool, email, company string) *models.Employer {
	t.Helper()
	employerRepo := postgres.NewEmployerRepo(pool)
	employer, err := employerRepo.Create(ctx, &models.Employer{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: "not-a-real-hash",
		Name:         "Test Employer",
		Company:      company,
	})
	require.NoError(t, err, "Failed to create test employer %s", email)
	require.NotNil(t, employer)
	return employer
}

// Helper function to create a candidate account for tests, with skills
func createTestCandidate(t *testing.T, ctx context.Context, pool *pgxpool.Pool, email string, skillIDs ...uuid.UUID) *models.Candidate {
	t.Helper()
	candidateRepo := postgres.NewCandidateRepo(pool)
	candidate, err := candidateRepo.Create(ctx, &models.Candidate{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: "not-a-real-hash",
		Name:         "Test Candidate",
	})
	require.NoError(t, err, "Failed to create test candidate %s", email)
	require.NotNil(t, candidate)

	if len(skillIDs) > 0 {
		err = candidateRepo.ReplaceSkills(ctx, candidate.ID, skillIDs)
		require.NoError(t, err, "Failed to set skills for test candidate %s", email)
	}
	return candidate
}

// Helper function to create a job posting for tests
func createTestJob(t *testing.T, ctx context.Context, pool *pgxpool.Pool, employerID uuid.UUID, title string, threshold float64, skills []dto.JobSkillInput) *models.Job {
	t.Helper()
	jobRepo := postgres.NewJobRepo(pool)
	created, err := jobRepo.Create(ctx, &dto.CreateJobRequest{
		EmployerID:     employerID,
		Title:          title,
		Description:    "Integration test posting",
		Type:           "full-time",
		MatchThreshold: threshold,
	})
	require.NoError(t, err, "Failed to create test job %s", title)
	require.NotNil(t, created)

	if len(skills) > 0 {
		err = jobRepo.ReplaceSkills(ctx, created.ID, skills)
		require.NoError(t, err, "Failed to set requirements for test job %s", title)
	}
	return created
}
