package postgres

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"job-match-api/internal/models"
	"job-match-api/internal/storage"
	"job-match-api/internal/transport/dto"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const jobColumns = "id, employer_id, title, description, type, location, is_remote, will_sponsor, salary, match_threshold, created_at, updated_at"

// JobRepo implements the storage.JobRepository interface using PostgreSQL.
type JobRepo struct {
	db Querier
}

// NewJobRepo creates a new JobRepo.
func NewJobRepo(db *pgxpool.Pool) *JobRepo {
	return &JobRepo{db: db}
}

// WithTx creates a new JobRepo with the transaction.
func (r *JobRepo) WithTx(tx pgx.Tx) storage.JobRepository {
	return &JobRepo{db: tx}
}

// Compile-time check to ensure JobRepo implements JobRepository
var _ storage.JobRepository = (*JobRepo)(nil)

func scanJob(row pgx.Row) (*models.Job, error) {
	var j models.Job
	err := row.Scan(
		&j.ID,
		&j.EmployerID,
		&j.Title,
		&j.Description,
		&j.Type,
		&j.Location,
		&j.IsRemote,
		&j.WillSponsor,
		&j.Salary,
		&j.MatchThreshold,
		&j.CreatedAt,
		&j.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &j, nil
}

// Create saves a new job posting. Requirements are written separately with
// ReplaceSkills, inside the same transaction.
func (r *JobRepo) Create(ctx context.Context, req *dto.CreateJobRequest) (*models.Job, error) {
	query := `
		INSERT INTO jobs (id, employer_id, title, description, type, location, is_remote, will_sponsor, salary, match_threshold, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING ` + jobColumns

	row := r.db.QueryRow(ctx, query,
		uuid.New(), // Generate ID server-side
		req.EmployerID,
		req.Title,
		req.Description,
		req.Type,
		req.Location,
		req.IsRemote,
		req.WillSponsor,
		req.Salary,
		req.MatchThreshold,
	)

	created, err := scanJob(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgForeignKeyViolation:
				log.Printf("Error creating job: foreign key violation (employer_id: %s): %v\n", req.EmployerID, err)
				return nil, fmt.Errorf("failed to create job: invalid employer ID: %w", storage.ErrConflict)
			case pgUniqueViolation:
				log.Printf("Error creating job: duplicate title %q for employer %s\n", req.Title, req.EmployerID)
				return nil, fmt.Errorf("failed to create job: employer already has a posting with this title: %w", storage.ErrConflict)
			}
		}
		log.Printf("Error creating job: %v\n", err)
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	log.Printf("Job created successfully with ID: %s", created.ID)
	return created, nil
}

// GetByID retrieves a posting by ID. Requirements are not populated here; use
// ListSkills.
func (r *JobRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`

	job, err := scanJob(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		log.Printf("Error scanning job by ID %s: %v\n", id, err)
		return nil, fmt.Errorf("failed to get job by ID %s: %w", id, err)
	}
	return job, nil
}

// List retrieves postings matching the optional filters.
func (r *JobRepo) List(ctx context.Context, req *dto.ListJobsRequest) ([]models.Job, error) {
	baseQuery := `SELECT ` + jobColumns + ` FROM jobs`
	var conditions []string
	args := []interface{}{}

	if req.Type != nil {
		args = append(args, *req.Type)
		conditions = append(conditions, fmt.Sprintf("type = $%d", len(args)))
	}
	if req.Location != nil {
		args = append(args, "%"+*req.Location+"%")
		conditions = append(conditions, fmt.Sprintf("location ILIKE $%d", len(args)))
	}
	if req.IsRemote != nil {
		args = append(args, *req.IsRemote)
		conditions = append(conditions, fmt.Sprintf("is_remote = $%d", len(args)))
	}
	if req.MinSalary != nil {
		args = append(args, *req.MinSalary)
		conditions = append(conditions, fmt.Sprintf("salary >= $%d", len(args)))
	}

	query := buildListQuery(baseQuery, conditions, &args, "created_at DESC", req.Offset, req.Limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		log.Printf("Error querying jobs: %v\n", err)
		return nil, fmt.Errorf("failed to query jobs: %w", err)
	}
	defer rows.Close()

	jobs, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Job])
	if err != nil {
		log.Printf("Error scanning jobs: %v\n", err)
		return nil, fmt.Errorf("failed to scan jobs: %w", err)
	}

	if jobs == nil {
		jobs = []models.Job{} // Return empty slice, not nil
	}
	return jobs, nil
}

// ListByEmployer retrieves postings owned by one employer.
func (r *JobRepo) ListByEmployer(ctx context.Context, req *dto.ListJobsByEmployerRequest) ([]models.Job, error) {
	baseQuery := `SELECT ` + jobColumns + ` FROM jobs`
	conditions := []string{"employer_id = $1"}
	args := []interface{}{req.EmployerID}

	query := buildListQuery(baseQuery, conditions, &args, "created_at DESC", req.Offset, req.Limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		log.Printf("Error querying jobs by employer %s: %v\n", req.EmployerID, err)
		return nil, fmt.Errorf("failed to query jobs by employer: %w", err)
	}
	defer rows.Close()

	jobs, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Job])
	if err != nil {
		log.Printf("Error scanning jobs by employer %s: %v\n", req.EmployerID, err)
		return nil, fmt.Errorf("failed to scan jobs by employer: %w", err)
	}

	if jobs == nil {
		jobs = []models.Job{}
	}
	return jobs, nil
}

// ListWithSkills retrieves every posting with its requirements populated.
func (r *JobRepo) ListWithSkills(ctx context.Context) ([]models.Job, error) {
	rows, err := r.db.Query(ctx, `SELECT `+jobColumns+` FROM jobs ORDER BY created_at DESC`)
	if err != nil {
		log.Printf("Error querying job pool: %v\n", err)
		return nil, fmt.Errorf("failed to query jobs: %w", err)
	}
	defer rows.Close()

	jobs, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Job])
	if err != nil {
		log.Printf("Error scanning job pool: %v\n", err)
		return nil, fmt.Errorf("failed to scan jobs: %w", err)
	}

	if len(jobs) == 0 {
		return []models.Job{}, nil
	}

	skillRows, err := r.db.Query(ctx, `
		SELECT js.job_id, js.skill_id, js.priority, s.id, s.name, s.category, s.created_at
		FROM job_skills js
		JOIN skills s ON s.id = js.skill_id
	`)
	if err != nil {
		log.Printf("Error querying job requirements: %v\n", err)
		return nil, fmt.Errorf("failed to query job requirements: %w", err)
	}
	defer skillRows.Close()

	byJob := make(map[uuid.UUID][]models.JobSkill)
	for skillRows.Next() {
		var jobID uuid.UUID
		var js models.JobSkill
		var s models.Skill
		if err := skillRows.Scan(&jobID, &js.SkillID, &js.Priority, &s.ID, &s.Name, &s.Category, &s.CreatedAt); err != nil {
			log.Printf("Error scanning job requirement: %v\n", err)
			return nil, fmt.Errorf("failed to scan job requirement: %w", err)
		}
		js.Skill = &s
		byJob[jobID] = append(byJob[jobID], js)
	}
	if err := skillRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read job requirements: %w", err)
	}

	for i := range jobs {
		jobs[i].JobSkills = byJob[jobs[i].ID]
	}
	return jobs, nil
}

// Update modifies a posting based on non-nil fields in the request DTO. The
// requirement list is handled separately by ReplaceSkills.
func (r *JobRepo) Update(ctx context.Context, req *dto.UpdateJobRequest) (*models.Job, error) {
	var setClauses []string
	args := []interface{}{}

	if req.Title != nil {
		args = append(args, *req.Title)
		setClauses = append(setClauses, fmt.Sprintf("title = $%d", len(args)))
	}
	if req.Description != nil {
		args = append(args, *req.Description)
		setClauses = append(setClauses, fmt.Sprintf("description = $%d", len(args)))
	}
	if req.Type != nil {
		args = append(args, *req.Type)
		setClauses = append(setClauses, fmt.Sprintf("type = $%d", len(args)))
	}
	if req.Location != nil {
		args = append(args, *req.Location)
		setClauses = append(setClauses, fmt.Sprintf("location = $%d", len(args)))
	}
	if req.IsRemote != nil {
		args = append(args, *req.IsRemote)
		setClauses = append(setClauses, fmt.Sprintf("is_remote = $%d", len(args)))
	}
	if req.WillSponsor != nil {
		args = append(args, *req.WillSponsor)
		setClauses = append(setClauses, fmt.Sprintf("will_sponsor = $%d", len(args)))
	}
	if req.Salary != nil {
		args = append(args, *req.Salary)
		setClauses = append(setClauses, fmt.Sprintf("salary = $%d", len(args)))
	}
	if req.MatchThreshold != nil {
		args = append(args, *req.MatchThreshold)
		setClauses = append(setClauses, fmt.Sprintf("match_threshold = $%d", len(args)))
	}

	if len(setClauses) == 0 {
		return nil, fmt.Errorf("no fields provided for update on job %s", req.ID)
	}

	setClauses = append(setClauses, "updated_at = NOW()")
	args = append(args, req.ID)

	query := fmt.Sprintf(`
		UPDATE jobs
		SET %s
		WHERE id = $%d
		RETURNING `+jobColumns,
		strings.Join(setClauses, ", "), len(args))

	updated, err := scanJob(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, fmt.Errorf("failed to update job: employer already has a posting with this title: %w", storage.ErrConflict)
		}
		log.Printf("Error updating job %s: %v\n", req.ID, err)
		return nil, fmt.Errorf("failed to update job %s: %w", req.ID, err)
	}

	log.Printf("Job updated successfully: %s", updated.ID)
	return updated, nil
}

// ReplaceSkills swaps the posting's requirement list. Meant to run inside a
// transaction.
func (r *JobRepo) ReplaceSkills(ctx context.Context, jobID uuid.UUID, skills []dto.JobSkillInput) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM job_skills WHERE job_id = $1`, jobID); err != nil {
		log.Printf("Error clearing requirements for job %s: %v\n", jobID, err)
		return fmt.Errorf("failed to clear job requirements: %w", err)
	}

	for _, skill := range skills {
		_, err := r.db.Exec(ctx,
			`INSERT INTO job_skills (job_id, skill_id, priority) VALUES ($1, $2, $3)
			 ON CONFLICT (job_id, skill_id) DO UPDATE SET priority = EXCLUDED.priority`,
			jobID, skill.SkillID, skill.Priority)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
				log.Printf("Error adding requirement %s to job %s: unknown skill\n", skill.SkillID, jobID)
				return fmt.Errorf("failed to add job requirement: unknown skill %s: %w", skill.SkillID, storage.ErrConflict)
			}
			log.Printf("Error adding requirement %s to job %s: %v\n", skill.SkillID, jobID, err)
			return fmt.Errorf("failed to add job requirement: %w", err)
		}
	}
	return nil
}

// ListSkills retrieves the posting's requirements with the catalog joined in.
func (r *JobRepo) ListSkills(ctx context.Context, jobID uuid.UUID) ([]models.JobSkill, error) {
	query := `
		SELECT js.skill_id, js.priority, s.id, s.name, s.category, s.created_at
		FROM job_skills js
		JOIN skills s ON s.id = js.skill_id
		WHERE js.job_id = $1
		ORDER BY js.priority DESC, s.name
	`
	rows, err := r.db.Query(ctx, query, jobID)
	if err != nil {
		log.Printf("Error querying requirements for job %s: %v\n", jobID, err)
		return nil, fmt.Errorf("failed to query job requirements: %w", err)
	}
	defer rows.Close()

	skills := []models.JobSkill{}
	for rows.Next() {
		var js models.JobSkill
		var s models.Skill
		if err := rows.Scan(&js.SkillID, &js.Priority, &s.ID, &s.Name, &s.Category, &s.CreatedAt); err != nil {
			log.Printf("Error scanning requirement for job %s: %v\n", jobID, err)
			return nil, fmt.Errorf("failed to scan job requirement: %w", err)
		}
		js.Skill = &s
		skills = append(skills, js)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read job requirements: %w", err)
	}
	return skills, nil
}

// Delete removes a posting by ID. Requirement rows go with it via ON DELETE
// CASCADE; matches do not, so the service refuses deletion while any exist.
func (r *JobRepo) Delete(ctx context.Context, req *dto.DeleteJobRequest) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, req.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			log.Printf("Error deleting job %s: matches still reference it\n", req.ID)
			return fmt.Errorf("failed to delete job: matches still reference it: %w", storage.ErrConflict)
		}
		log.Printf("Error deleting job %s: %v\n", req.ID, err)
		return fmt.Errorf("failed to delete job %s: %w", req.ID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}

	log.Printf("Job deleted successfully: %s", req.ID)
	return nil
}
