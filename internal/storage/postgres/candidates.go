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

const candidateColumns = "id, email, password_hash, name, bio, location, match_threshold, created_at, updated_at"

// CandidateRepo implements the storage.CandidateRepository interface using PostgreSQL.
type CandidateRepo struct {
	db Querier
}

// NewCandidateRepo creates a new CandidateRepo.
func NewCandidateRepo(db *pgxpool.Pool) *CandidateRepo {
	return &CandidateRepo{db: db}
}

// WithTx creates a new CandidateRepo with the transaction.
func (r *CandidateRepo) WithTx(tx pgx.Tx) storage.CandidateRepository {
	return &CandidateRepo{db: tx}
}

// Compile-time check to ensure CandidateRepo implements CandidateRepository
var _ storage.CandidateRepository = (*CandidateRepo)(nil)

func scanCandidate(row pgx.Row) (*models.Candidate, error) {
	var c models.Candidate
	err := row.Scan(
		&c.ID,
		&c.Email,
		&c.PasswordHash,
		&c.Name,
		&c.Bio,
		&c.Location,
		&c.MatchThreshold,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create saves a new candidate account.
func (r *CandidateRepo) Create(ctx context.Context, candidate *models.Candidate) (*models.Candidate, error) {
	query := `
		INSERT INTO candidates (id, email, password_hash, name, bio, location, match_threshold, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING ` + candidateColumns

	row := r.db.QueryRow(ctx, query,
		candidate.ID,
		candidate.Email,
		candidate.PasswordHash,
		candidate.Name,
		candidate.Bio,
		candidate.Location,
		candidate.MatchThreshold,
	)

	created, err := scanCandidate(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			log.Printf("Error creating candidate: duplicate email %s: %v\n", candidate.Email, err)
			return nil, fmt.Errorf("failed to create candidate: email already registered: %w", storage.ErrConflict)
		}
		log.Printf("Error creating candidate: %v\n", err)
		return nil, fmt.Errorf("failed to create candidate: %w", err)
	}

	log.Printf("Candidate created successfully with ID: %s", created.ID)
	return created, nil
}

// GetByID retrieves a candidate by ID. Skills are not populated here; use
// ListSkills.
func (r *CandidateRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE id = $1`

	candidate, err := scanCandidate(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		log.Printf("Error scanning candidate by ID %s: %v\n", id, err)
		return nil, fmt.Errorf("failed to get candidate by ID %s: %w", id, err)
	}
	return candidate, nil
}

// GetByEmail retrieves a candidate by email, for login.
func (r *CandidateRepo) GetByEmail(ctx context.Context, email string) (*models.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE email = $1`

	candidate, err := scanCandidate(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		log.Printf("Error scanning candidate by email: %v\n", err)
		return nil, fmt.Errorf("failed to get candidate by email: %w", err)
	}
	return candidate, nil
}

// Update modifies a candidate profile based on non-nil fields in the request DTO.
func (r *CandidateRepo) Update(ctx context.Context, req *dto.UpdateCandidateProfileRequest) (*models.Candidate, error) {
	var setClauses []string
	args := []interface{}{}

	if req.Name != nil {
		args = append(args, *req.Name)
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", len(args)))
	}
	if req.Bio != nil {
		args = append(args, *req.Bio)
		setClauses = append(setClauses, fmt.Sprintf("bio = $%d", len(args)))
	}
	if req.Location != nil {
		args = append(args, *req.Location)
		setClauses = append(setClauses, fmt.Sprintf("location = $%d", len(args)))
	}
	if req.MatchThreshold != nil {
		args = append(args, *req.MatchThreshold)
		setClauses = append(setClauses, fmt.Sprintf("match_threshold = $%d", len(args)))
	}

	if len(setClauses) == 0 {
		return nil, fmt.Errorf("no fields provided for update on candidate %s", req.ID)
	}

	setClauses = append(setClauses, "updated_at = NOW()")
	args = append(args, req.ID)

	query := fmt.Sprintf(`
		UPDATE candidates
		SET %s
		WHERE id = $%d
		RETURNING `+candidateColumns,
		strings.Join(setClauses, ", "), len(args))

	updated, err := scanCandidate(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		log.Printf("Error updating candidate %s: %v\n", req.ID, err)
		return nil, fmt.Errorf("failed to update candidate %s: %w", req.ID, err)
	}

	log.Printf("Candidate updated successfully: %s", updated.ID)
	return updated, nil
}

// ReplaceSkills swaps the candidate's skill list for the given catalog
// references. Meant to run inside a transaction.
func (r *CandidateRepo) ReplaceSkills(ctx context.Context, candidateID uuid.UUID, skillIDs []uuid.UUID) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM candidate_skills WHERE candidate_id = $1`, candidateID); err != nil {
		log.Printf("Error clearing skills for candidate %s: %v\n", candidateID, err)
		return fmt.Errorf("failed to clear candidate skills: %w", err)
	}

	for _, skillID := range skillIDs {
		_, err := r.db.Exec(ctx,
			`INSERT INTO candidate_skills (candidate_id, skill_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			candidateID, skillID)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
				log.Printf("Error adding skill %s to candidate %s: unknown skill\n", skillID, candidateID)
				return fmt.Errorf("failed to add candidate skill: unknown skill %s: %w", skillID, storage.ErrConflict)
			}
			log.Printf("Error adding skill %s to candidate %s: %v\n", skillID, candidateID, err)
			return fmt.Errorf("failed to add candidate skill: %w", err)
		}
	}
	return nil
}

// ListSkills retrieves the candidate's skills with the catalog joined in.
func (r *CandidateRepo) ListSkills(ctx context.Context, candidateID uuid.UUID) ([]models.Skill, error) {
	query := `
		SELECT s.id, s.name, s.category, s.created_at
		FROM skills s
		JOIN candidate_skills cs ON cs.skill_id = s.id
		WHERE cs.candidate_id = $1
		ORDER BY s.name
	`
	rows, err := r.db.Query(ctx, query, candidateID)
	if err != nil {
		log.Printf("Error querying skills for candidate %s: %v\n", candidateID, err)
		return nil, fmt.Errorf("failed to query candidate skills: %w", err)
	}
	defer rows.Close()

	skills, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Skill])
	if err != nil {
		log.Printf("Error scanning skills for candidate %s: %v\n", candidateID, err)
		return nil, fmt.Errorf("failed to scan candidate skills: %w", err)
	}

	if skills == nil {
		skills = []models.Skill{} // Return empty slice, not nil
	}
	return skills, nil
}

// ListWithSkills retrieves the whole candidate pool with skills populated.
func (r *CandidateRepo) ListWithSkills(ctx context.Context) ([]models.Candidate, error) {
	rows, err := r.db.Query(ctx, `SELECT `+candidateColumns+` FROM candidates ORDER BY created_at DESC`)
	if err != nil {
		log.Printf("Error querying candidate pool: %v\n", err)
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}
	defer rows.Close()

	candidates, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Candidate])
	if err != nil {
		log.Printf("Error scanning candidate pool: %v\n", err)
		return nil, fmt.Errorf("failed to scan candidates: %w", err)
	}

	if len(candidates) == 0 {
		return []models.Candidate{}, nil
	}

	skillRows, err := r.db.Query(ctx, `
		SELECT cs.candidate_id, s.id, s.name, s.category, s.created_at
		FROM candidate_skills cs
		JOIN skills s ON s.id = cs.skill_id
	`)
	if err != nil {
		log.Printf("Error querying candidate skill links: %v\n", err)
		return nil, fmt.Errorf("failed to query candidate skills: %w", err)
	}
	defer skillRows.Close()

	byCandidate := make(map[uuid.UUID][]models.Skill)
	for skillRows.Next() {
		var candidateID uuid.UUID
		var s models.Skill
		if err := skillRows.Scan(&candidateID, &s.ID, &s.Name, &s.Category, &s.CreatedAt); err != nil {
			log.Printf("Error scanning candidate skill link: %v\n", err)
			return nil, fmt.Errorf("failed to scan candidate skill link: %w", err)
		}
		byCandidate[candidateID] = append(byCandidate[candidateID], s)
	}
	if err := skillRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read candidate skill links: %w", err)
	}

	for i := range candidates {
		candidates[i].Skills = byCandidate[candidates[i].ID]
	}
	return candidates, nil
}
