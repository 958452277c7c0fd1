package storage

import (
	"context"

	"job-match-api/internal/models"
	"job-match-api/internal/transport/dto"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// TxRunner runs a function inside one database transaction. The function's
// error rolls the transaction back; nil commits it.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(tx pgx.Tx) error) error
}

// CandidateRepository defines the interface for candidate data operations.
type CandidateRepository interface {
	Create(ctx context.Context, candidate *models.Candidate) (*models.Candidate, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Candidate, error)
	GetByEmail(ctx context.Context, email string) (*models.Candidate, error)
	Update(ctx context.Context, req *dto.UpdateCandidateProfileRequest) (*models.Candidate, error)
	ReplaceSkills(ctx context.Context, candidateID uuid.UUID, skillIDs []uuid.UUID) error
	ListSkills(ctx context.Context, candidateID uuid.UUID) ([]models.Skill, error)
	// ListWithSkills returns the whole candidate pool with skills populated.
	// It backs the recommendation feed.
	ListWithSkills(ctx context.Context) ([]models.Candidate, error)
	WithTx(tx pgx.Tx) CandidateRepository
}

// EmployerRepository defines the interface for employer data operations.
type EmployerRepository interface {
	Create(ctx context.Context, employer *models.Employer) (*models.Employer, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Employer, error)
	GetByEmail(ctx context.Context, email string) (*models.Employer, error)
	WithTx(tx pgx.Tx) EmployerRepository
}

// SkillDemand is one row of the in-demand aggregation: a catalog entry plus
// the sum of its requirement priorities across all postings.
type SkillDemand struct {
	Skill  models.Skill
	Demand float64
}

// SkillRepository defines the interface for skill catalog operations.
type SkillRepository interface {
	Create(ctx context.Context, req *dto.CreateSkillRequest) (*models.Skill, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Skill, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Skill, error)
	List(ctx context.Context, req *dto.ListSkillsRequest) ([]models.Skill, error)
	// AggregateDemand sums requirement priorities per skill across every
	// posting, highest first.
	AggregateDemand(ctx context.Context, limit int) ([]SkillDemand, error)
	WithTx(tx pgx.Tx) SkillRepository
}

// JobRepository defines the interface for job posting data operations.
type JobRepository interface {
	Create(ctx context.Context, req *dto.CreateJobRequest) (*models.Job, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Job, error)
	List(ctx context.Context, req *dto.ListJobsRequest) ([]models.Job, error)
	ListByEmployer(ctx context.Context, req *dto.ListJobsByEmployerRequest) ([]models.Job, error)
	// ListWithSkills returns every posting with its requirements populated.
	// It backs the candidate-side relevance feed.
	ListWithSkills(ctx context.Context) ([]models.Job, error)
	Update(ctx context.Context, req *dto.UpdateJobRequest) (*models.Job, error)
	ReplaceSkills(ctx context.Context, jobID uuid.UUID, skills []dto.JobSkillInput) error
	ListSkills(ctx context.Context, jobID uuid.UUID) ([]models.JobSkill, error)
	Delete(ctx context.Context, req *dto.DeleteJobRequest) error
	WithTx(tx pgx.Tx) JobRepository
}

// MatchRepository defines the interface for match data operations.
type MatchRepository interface {
	Create(ctx context.Context, match *models.Match) (*models.Match, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Match, error)
	ListByCandidate(ctx context.Context, req *dto.ListMatchesForCandidateRequest) ([]models.Match, error)
	ListByEmployer(ctx context.Context, req *dto.ListMatchesForEmployerRequest) ([]models.Match, error)
	// ListCandidateIDsByJob returns the IDs of every candidate holding a
	// match against the job, regardless of status.
	ListCandidateIDsByJob(ctx context.Context, jobID uuid.UUID) ([]uuid.UUID, error)
	CountByJob(ctx context.Context, jobID uuid.UUID) (int, error)
	// UpdateStatus persists the match's status tracks and interview link
	// under the optimistic lock: the row is only written when its stored
	// version equals match.Version, and the version is bumped on success.
	UpdateStatus(ctx context.Context, match *models.Match) (*models.Match, error)
	WithTx(tx pgx.Tx) MatchRepository
}

// InterviewRepository defines the interface for interview data operations.
type InterviewRepository interface {
	Create(ctx context.Context, interview *models.Interview) (*models.Interview, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Interview, error)
	GetByMatch(ctx context.Context, matchID uuid.UUID) (*models.Interview, error)
	WithTx(tx pgx.Tx) InterviewRepository
}
