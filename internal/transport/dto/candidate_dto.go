package dto

import (
	"time"

	"github.com/google/uuid"
)

// --- Candidate Request DTOs ---

// GetCandidateByIDRequest defines the structure for getting a candidate by ID.
type GetCandidateByIDRequest struct {
	ID uuid.UUID `json:"-" validate:"required"`
}

// UpdateCandidateProfileRequest defines the structure for updating a
// candidate's own profile. Nil fields are left unchanged.
type UpdateCandidateProfileRequest struct {
	ID             uuid.UUID `json:"-" validate:"required"` // Set internally from auth context
	Name           *string   `json:"name,omitempty" validate:"omitempty,max=100"`
	Bio            *string   `json:"bio,omitempty" validate:"omitempty,max=2000"`
	Location       *string   `json:"location,omitempty" validate:"omitempty,max=100"`
	MatchThreshold *float64  `json:"match_threshold,omitempty" validate:"omitempty,gte=0,lte=100"`
}

// SetCandidateSkillsRequest defines the structure for replacing a candidate's
// skill list with catalog references.
type SetCandidateSkillsRequest struct {
	CandidateID uuid.UUID   `json:"-" validate:"required"` // Set internally from auth context
	SkillIDs    []uuid.UUID `json:"skill_ids" validate:"required,max=100"`
}

// --- Candidate Response DTOs ---

// CandidateResponse defines the candidate data returned to the client.
type CandidateResponse struct {
	ID             uuid.UUID       `json:"id"`
	Email          string          `json:"email"`
	Name           string          `json:"name"`
	Bio            string          `json:"bio"`
	Location       string          `json:"location"`
	MatchThreshold float64         `json:"match_threshold"`
	Skills         []SkillResponse `json:"skills"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// EmployerResponse defines the employer data returned to the client.
type EmployerResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Company   string    `json:"company"`
	CreatedAt time.Time `json:"created_at"`
}
