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

// SkillRepo implements the storage.SkillRepository interface using PostgreSQL.
type SkillRepo struct {
	db Querier
}

// NewSkillRepo creates a new SkillRepo.
func NewSkillRepo(db *pgxpool.Pool) *SkillRepo {
	return &SkillRepo{db: db}
}

// WithTx creates a new SkillRepo with the transaction.
func (r *SkillRepo) WithTx(tx pgx.Tx) storage.SkillRepository {
	return &SkillRepo{db: tx}
}

// Compile-time check to ensure SkillRepo implements SkillRepository
var _ storage.SkillRepository = (*SkillRepo)(nil)

// Create adds a catalog entry. Skill names are unique case-insensitively.
func (r *SkillRepo) Create(ctx context.Context, req *dto.CreateSkillRequest) (*models.Skill, error) {
	query := `
		INSERT INTO skills (id, name, category, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, name, category, created_at
	`
	row := r.db.QueryRow(ctx, query, uuid.New(), req.Name, req.Category)

	var created models.Skill
	err := row.Scan(&created.ID, &created.Name, &created.Category, &created.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			log.Printf("Error creating skill: duplicate name %q: %v\n", req.Name, err)
			return nil, fmt.Errorf("failed to create skill: name already in catalog: %w", storage.ErrConflict)
		}
		log.Printf("Error creating skill: %v\n", err)
		return nil, fmt.Errorf("failed to create skill: %w", err)
	}

	log.Printf("Skill created successfully with ID: %s", created.ID)
	return &created, nil
}

// GetByID retrieves a catalog entry by ID.
func (r *SkillRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Skill, error) {
	query := `SELECT id, name, category, created_at FROM skills WHERE id = $1`

	var skill models.Skill
	err := r.db.QueryRow(ctx, query, id).Scan(&skill.ID, &skill.Name, &skill.Category, &skill.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		log.Printf("Error scanning skill by ID %s: %v\n", id, err)
		return nil, fmt.Errorf("failed to get skill by ID %s: %w", id, err)
	}
	return &skill, nil
}

// GetByIDs retrieves the catalog entries for the given IDs. Unknown IDs are
// simply absent from the result; the caller decides whether that matters.
func (r *SkillRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Skill, error) {
	if len(ids) == 0 {
		return []models.Skill{}, nil
	}

	query := `SELECT id, name, category, created_at FROM skills WHERE id = ANY($1) ORDER BY name`
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		log.Printf("Error querying skills by IDs: %v\n", err)
		return nil, fmt.Errorf("failed to query skills by IDs: %w", err)
	}
	defer rows.Close()

	skills, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Skill])
	if err != nil {
		log.Printf("Error scanning skills by IDs: %v\n", err)
		return nil, fmt.Errorf("failed to scan skills by IDs: %w", err)
	}

	if skills == nil {
		skills = []models.Skill{}
	}
	return skills, nil
}

// List retrieves catalog entries with optional name search and category filter.
func (r *SkillRepo) List(ctx context.Context, req *dto.ListSkillsRequest) ([]models.Skill, error) {
	baseQuery := `SELECT id, name, category, created_at FROM skills`
	var conditions []string
	args := []interface{}{}

	if req.Search != nil {
		args = append(args, "%"+*req.Search+"%")
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	if req.Category != nil {
		args = append(args, *req.Category)
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)))
	}

	query := buildListQuery(baseQuery, conditions, &args, "name", req.Offset, req.Limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		log.Printf("Error querying skills: %v\n", err)
		return nil, fmt.Errorf("failed to query skills: %w", err)
	}
	defer rows.Close()

	skills, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Skill])
	if err != nil {
		log.Printf("Error scanning skills: %v\n", err)
		return nil, fmt.Errorf("failed to scan skills: %w", err)
	}

	if skills == nil {
		skills = []models.Skill{} // Return empty slice, not nil
	}
	return skills, nil
}

// AggregateDemand sums requirement priorities per skill across every posting,
// highest first. Skills no posting asks for are not returned.
func (r *SkillRepo) AggregateDemand(ctx context.Context, limit int) ([]storage.SkillDemand, error) {
	query := `
		SELECT s.id, s.name, s.category, s.created_at, SUM(js.priority)::float8 AS demand
		FROM skills s
		JOIN job_skills js ON js.skill_id = s.id
		GROUP BY s.id, s.name, s.category, s.created_at
		ORDER BY demand DESC, s.name
		LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		log.Printf("Error querying skill demand: %v\n", err)
		return nil, fmt.Errorf("failed to query skill demand: %w", err)
	}
	defer rows.Close()

	demand := []storage.SkillDemand{}
	for rows.Next() {
		var d storage.SkillDemand
		if err := rows.Scan(&d.Skill.ID, &d.Skill.Name, &d.Skill.Category, &d.Skill.CreatedAt, &d.Demand); err != nil {
			log.Printf("Error scanning skill demand row: %v\n", err)
			return nil, fmt.Errorf("failed to scan skill demand: %w", err)
		}
		demand = append(demand, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read skill demand: %w", err)
	}
	return demand, nil
}
