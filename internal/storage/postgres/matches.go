package postgres

import (
	"context"
	"errors"
	"fmt"
	"log"

	"job-match-api/internal/models"
	"job-match-api/internal/storage"
	"job-match-api/internal/transport/dto"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const matchColumns = `id, job_id, candidate_id,
	overall_status, overall_modified,
	candidate_status, candidate_modified,
	employer_status, employer_modified,
	version, interview_id, created_at, updated_at`

// MatchRepo implements the storage.MatchRepository interface using PostgreSQL.
type MatchRepo struct {
	db Querier
}

// NewMatchRepo creates a new MatchRepo.
func NewMatchRepo(db *pgxpool.Pool) *MatchRepo {
	return &MatchRepo{db: db}
}

// WithTx creates a new MatchRepo with the transaction.
func (r *MatchRepo) WithTx(tx pgx.Tx) storage.MatchRepository {
	return &MatchRepo{db: tx}
}

// Compile-time check to ensure MatchRepo implements MatchRepository
var _ storage.MatchRepository = (*MatchRepo)(nil)

func scanMatch(row pgx.Row) (*models.Match, error) {
	var m models.Match
	err := row.Scan(
		&m.ID,
		&m.JobID,
		&m.CandidateID,
		&m.OverallStatus,
		&m.OverallModified,
		&m.CandidateStatus,
		&m.CandidateModified,
		&m.EmployerStatus,
		&m.EmployerModified,
		&m.Version,
		&m.InterviewID,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create saves a new match. The (job_id, candidate_id) pair is unique, so a
// second application from the same candidate comes back as ErrConflict.
func (r *MatchRepo) Create(ctx context.Context, match *models.Match) (*models.Match, error) {
	query := `
		INSERT INTO matches (id, job_id, candidate_id,
			overall_status, overall_modified,
			candidate_status, candidate_modified,
			employer_status, employer_modified,
			version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 1, NOW(), NOW())
		RETURNING ` + matchColumns

	row := r.db.QueryRow(ctx, query,
		match.ID,
		match.JobID,
		match.CandidateID,
		match.OverallStatus,
		match.OverallModified,
		match.CandidateStatus,
		match.CandidateModified,
		match.EmployerStatus,
		match.EmployerModified,
	)

	created, err := scanMatch(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgUniqueViolation:
				log.Printf("Error creating match: candidate %s already applied to job %s\n", match.CandidateID, match.JobID)
				return nil, fmt.Errorf("failed to create match: candidate already applied to this job: %w", storage.ErrConflict)
			case pgForeignKeyViolation:
				log.Printf("Error creating match: foreign key violation (job %s, candidate %s): %v\n", match.JobID, match.CandidateID, err)
				return nil, fmt.Errorf("failed to create match: unknown job or candidate: %w", storage.ErrConflict)
			}
		}
		log.Printf("Error creating match: %v\n", err)
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	log.Printf("Match created successfully with ID: %s", created.ID)
	return created, nil
}

// GetByID retrieves a match by ID.
func (r *MatchRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`

	match, err := scanMatch(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		log.Printf("Error scanning match by ID %s: %v\n", id, err)
		return nil, fmt.Errorf("failed to get match by ID %s: %w", id, err)
	}
	return match, nil
}

// ListByCandidate retrieves a candidate's matches, newest first.
func (r *MatchRepo) ListByCandidate(ctx context.Context, req *dto.ListMatchesForCandidateRequest) ([]models.Match, error) {
	baseQuery := `SELECT ` + matchColumns + ` FROM matches`
	conditions := []string{"candidate_id = $1"}
	args := []interface{}{req.CandidateID}

	if req.Status != nil {
		args = append(args, *req.Status)
		conditions = append(conditions, fmt.Sprintf("overall_status = $%d", len(args)))
	}

	query := buildListQuery(baseQuery, conditions, &args, "created_at DESC", req.Offset, req.Limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		log.Printf("Error querying matches for candidate %s: %v\n", req.CandidateID, err)
		return nil, fmt.Errorf("failed to query matches by candidate: %w", err)
	}
	defer rows.Close()

	return collectMatches(rows)
}

// ListByEmployer retrieves matches across an employer's postings, optionally
// narrowed to one job.
func (r *MatchRepo) ListByEmployer(ctx context.Context, req *dto.ListMatchesForEmployerRequest) ([]models.Match, error) {
	baseQuery := `
		SELECT m.id, m.job_id, m.candidate_id,
			m.overall_status, m.overall_modified,
			m.candidate_status, m.candidate_modified,
			m.employer_status, m.employer_modified,
			m.version, m.interview_id, m.created_at, m.updated_at
		FROM matches m
		JOIN jobs j ON j.id = m.job_id
	`
	conditions := []string{"j.employer_id = $1"}
	args := []interface{}{req.EmployerID}

	if req.JobID != nil {
		args = append(args, *req.JobID)
		conditions = append(conditions, fmt.Sprintf("m.job_id = $%d", len(args)))
	}
	if req.Status != nil {
		args = append(args, *req.Status)
		conditions = append(conditions, fmt.Sprintf("m.overall_status = $%d", len(args)))
	}

	query := buildListQuery(baseQuery, conditions, &args, "m.created_at DESC", req.Offset, req.Limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		log.Printf("Error querying matches for employer %s: %v\n", req.EmployerID, err)
		return nil, fmt.Errorf("failed to query matches by employer: %w", err)
	}
	defer rows.Close()

	return collectMatches(rows)
}

func collectMatches(rows pgx.Rows) ([]models.Match, error) {
	matches := []models.Match{}
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			log.Printf("Error scanning match row: %v\n", err)
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		matches = append(matches, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read matches: %w", err)
	}
	return matches, nil
}

// ListCandidateIDsByJob returns the IDs of every candidate holding a match
// against the job, regardless of status.
func (r *MatchRepo) ListCandidateIDsByJob(ctx context.Context, jobID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, `SELECT candidate_id FROM matches WHERE job_id = $1`, jobID)
	if err != nil {
		log.Printf("Error querying matched candidates for job %s: %v\n", jobID, err)
		return nil, fmt.Errorf("failed to query matched candidates: %w", err)
	}
	defer rows.Close()

	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, fmt.Errorf("failed to scan matched candidates: %w", err)
	}
	if ids == nil {
		ids = []uuid.UUID{}
	}
	return ids, nil
}

// CountByJob counts a job's matches.
func (r *MatchRepo) CountByJob(ctx context.Context, jobID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM matches WHERE job_id = $1`, jobID).Scan(&count)
	if err != nil {
		log.Printf("Error counting matches for job %s: %v\n", jobID, err)
		return 0, fmt.Errorf("failed to count matches: %w", err)
	}
	return count, nil
}

// UpdateStatus persists the match's status tracks and interview link under
// the optimistic lock. The write only lands when the stored version still
// equals match.Version; a lost race comes back as ErrVersionConflict.
func (r *MatchRepo) UpdateStatus(ctx context.Context, match *models.Match) (*models.Match, error) {
	query := `
		UPDATE matches
		SET overall_status = $1, overall_modified = $2,
			candidate_status = $3, candidate_modified = $4,
			employer_status = $5, employer_modified = $6,
			interview_id = $7,
			version = version + 1,
			updated_at = NOW()
		WHERE id = $8 AND version = $9
		RETURNING ` + matchColumns

	row := r.db.QueryRow(ctx, query,
		match.OverallStatus,
		match.OverallModified,
		match.CandidateStatus,
		match.CandidateModified,
		match.EmployerStatus,
		match.EmployerModified,
		match.InterviewID,
		match.ID,
		match.Version,
	)

	updated, err := scanMatch(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Missing row or stale version; tell them apart.
			var exists bool
			checkErr := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM matches WHERE id = $1)`, match.ID).Scan(&exists)
			if checkErr != nil {
				return nil, fmt.Errorf("failed to update match %s: %w", match.ID, checkErr)
			}
			if exists {
				log.Printf("Match %s update lost version race (version %d)\n", match.ID, match.Version)
				return nil, storage.ErrVersionConflict
			}
			return nil, storage.ErrNotFound
		}
		log.Printf("Error updating match %s: %v\n", match.ID, err)
		return nil, fmt.Errorf("failed to update match %s: %w", match.ID, err)
	}

	log.Printf("Match status updated successfully: %s -> %s", updated.ID, updated.OverallStatus)
	return updated, nil
}
