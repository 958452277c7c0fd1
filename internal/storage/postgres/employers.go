package postgres

import (
	"context"
	"errors"
	"fmt"
	"log"

	"job-match-api/internal/models"
	"job-match-api/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const employerColumns = "id, email, password_hash, name, company, created_at, updated_at"

// EmployerRepo implements the storage.EmployerRepository interface using PostgreSQL.
type EmployerRepo struct {
	db Querier
}

// NewEmployerRepo creates a new EmployerRepo.
func NewEmployerRepo(db *pgxpool.Pool) *EmployerRepo {
	return &EmployerRepo{db: db}
}

// WithTx creates a new EmployerRepo with the transaction.
func (r *EmployerRepo) WithTx(tx pgx.Tx) storage.EmployerRepository {
	return &EmployerRepo{db: tx}
}

// Compile-time check to ensure EmployerRepo implements EmployerRepository
var _ storage.EmployerRepository = (*EmployerRepo)(nil)

func scanEmployer(row pgx.Row) (*models.Employer, error) {
	var e models.Employer
	err := row.Scan(
		&e.ID,
		&e.Email,
		&e.PasswordHash,
		&e.Name,
		&e.Company,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Create saves a new employer account.
func (r *EmployerRepo) Create(ctx context.Context, employer *models.Employer) (*models.Employer, error) {
	query := `
		INSERT INTO employers (id, email, password_hash, name, company, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING ` + employerColumns

	row := r.db.QueryRow(ctx, query,
		employer.ID,
		employer.Email,
		employer.PasswordHash,
		employer.Name,
		employer.Company,
	)

	created, err := scanEmployer(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			log.Printf("Error creating employer: duplicate email %s: %v\n", employer.Email, err)
			return nil, fmt.Errorf("failed to create employer: email already registered: %w", storage.ErrConflict)
		}
		log.Printf("Error creating employer: %v\n", err)
		return nil, fmt.Errorf("failed to create employer: %w", err)
	}

	log.Printf("Employer created successfully with ID: %s", created.ID)
	return created, nil
}

// GetByID retrieves an employer by ID.
func (r *EmployerRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Employer, error) {
	query := `SELECT ` + employerColumns + ` FROM employers WHERE id = $1`

	employer, err := scanEmployer(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		log.Printf("Error scanning employer by ID %s: %v\n", id, err)
		return nil, fmt.Errorf("failed to get employer by ID %s: %w", id, err)
	}
	return employer, nil
}

// GetByEmail retrieves an employer by email, for login.
func (r *EmployerRepo) GetByEmail(ctx context.Context, email string) (*models.Employer, error) {
	query := `SELECT ` + employerColumns + ` FROM employers WHERE email = $1`

	employer, err := scanEmployer(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		log.Printf("Error scanning employer by email: %v\n", err)
		return nil, fmt.Errorf("failed to get employer by email: %w", err)
	}
	return employer, nil
}
