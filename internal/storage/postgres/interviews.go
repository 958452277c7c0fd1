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

// InterviewRepo implements the storage.InterviewRepository interface using PostgreSQL.
type InterviewRepo struct {
	db Querier
}

// NewInterviewRepo creates a new InterviewRepo.
func NewInterviewRepo(db *pgxpool.Pool) *InterviewRepo {
	return &InterviewRepo{db: db}
}

// WithTx creates a new InterviewRepo with the transaction.
func (r *InterviewRepo) WithTx(tx pgx.Tx) storage.InterviewRepository {
	return &InterviewRepo{db: tx}
}

// Compile-time check to ensure InterviewRepo implements InterviewRepository
var _ storage.InterviewRepository = (*InterviewRepo)(nil)

func scanInterview(row pgx.Row) (*models.Interview, error) {
	var i models.Interview
	err := row.Scan(&i.ID, &i.MatchID, &i.InterviewDate, &i.RoomName, &i.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

// Create saves the interview of a match. match_id is unique, so a second
// interview for the same match comes back as ErrConflict.
func (r *InterviewRepo) Create(ctx context.Context, interview *models.Interview) (*models.Interview, error) {
	query := `
		INSERT INTO interviews (id, match_id, interview_date, room_name, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, match_id, interview_date, room_name, created_at
	`
	row := r.db.QueryRow(ctx, query,
		interview.ID,
		interview.MatchID,
		interview.InterviewDate,
		interview.RoomName,
	)

	created, err := scanInterview(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgUniqueViolation:
				log.Printf("Error creating interview: match %s already has one\n", interview.MatchID)
				return nil, fmt.Errorf("failed to create interview: match already has an interview: %w", storage.ErrConflict)
			case pgForeignKeyViolation:
				log.Printf("Error creating interview: unknown match %s\n", interview.MatchID)
				return nil, fmt.Errorf("failed to create interview: unknown match: %w", storage.ErrConflict)
			}
		}
		log.Printf("Error creating interview: %v\n", err)
		return nil, fmt.Errorf("failed to create interview: %w", err)
	}

	log.Printf("Interview created successfully with ID: %s", created.ID)
	return created, nil
}

// GetByID retrieves an interview by ID.
func (r *InterviewRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Interview, error) {
	query := `SELECT id, match_id, interview_date, room_name, created_at FROM interviews WHERE id = $1`

	interview, err := scanInterview(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		log.Printf("Error scanning interview by ID %s: %v\n", id, err)
		return nil, fmt.Errorf("failed to get interview by ID %s: %w", id, err)
	}
	return interview, nil
}

// GetByMatch retrieves the interview of a match.
func (r *InterviewRepo) GetByMatch(ctx context.Context, matchID uuid.UUID) (*models.Interview, error) {
	query := `SELECT id, match_id, interview_date, room_name, created_at FROM interviews WHERE match_id = $1`

	interview, err := scanInterview(r.db.QueryRow(ctx, query, matchID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		log.Printf("Error scanning interview by match %s: %v\n", matchID, err)
		return nil, fmt.Errorf("failed to get interview by match %s: %w", matchID, err)
	}
	return interview, nil
}
