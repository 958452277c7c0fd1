package dto

import (
	"time"

	"github.com/google/uuid"
)

// --- Job Request DTOs ---

// JobSkillInput is one weighted requirement in a create/update payload.
type JobSkillInput struct {
	SkillID  uuid.UUID `json:"skill_id" validate:"required"`
	Priority int       `json:"priority" validate:"required,gte=1,lte=5"`
}

// CreateJobRequest defines the structure for creating a new job posting.
type CreateJobRequest struct {
	EmployerID     uuid.UUID       `json:"-"` // Set internally by handler from auth context
	Title          string          `json:"title" validate:"required,max=200"`
	Description    string          `json:"description" validate:"required,max=5000"`
	Type           string          `json:"type" validate:"required,oneof=full-time part-time contract internship"`
	Location       string          `json:"location" validate:"omitempty,max=100"`
	IsRemote       bool            `json:"is_remote"`
	WillSponsor    bool            `json:"will_sponsor"`
	Salary         float64         `json:"salary" validate:"omitempty,gte=0"`
	MatchThreshold float64         `json:"match_threshold" validate:"gte=0,lte=100"`
	Skills         []JobSkillInput `json:"skills" validate:"required,min=0,max=50,dive"`
}

// GetJobByIDRequest defines the structure for getting a job by ID.
type GetJobByIDRequest struct {
	ID uuid.UUID `json:"-" validate:"required"`
}

// ListJobsRequest defines parameters for browsing postings.
type ListJobsRequest struct {
	Limit     int      `form:"limit,default=10" validate:"gte=1,lte=100"`
	Offset    int      `form:"offset,default=0" validate:"gte=0"`
	Type      *string  `form:"type" validate:"omitempty,oneof=full-time part-time contract internship"`
	Location  *string  `form:"location" validate:"omitempty,max=100"`
	IsRemote  *bool    `form:"is_remote"`
	MinSalary *float64 `form:"min_salary" validate:"omitempty,gte=0"`
}

// ListJobsByEmployerRequest defines parameters for an employer listing their
// own postings.
type ListJobsByEmployerRequest struct {
	EmployerID uuid.UUID `json:"-" validate:"required"` // Set internally by handler
	Limit      int       `form:"limit,default=10" validate:"gte=1,lte=100"`
	Offset     int       `form:"offset,default=0" validate:"gte=0"`
}

// ListJobsForCandidateRequest defines parameters for the candidate-side
// relevance feed.
type ListJobsForCandidateRequest struct {
	CandidateID uuid.UUID `json:"-" validate:"required"` // Set internally by handler
	Limit       int       `form:"limit,default=20" validate:"gte=1,lte=100"`
}

// RecommendCandidatesRequest defines parameters for the employer-side
// candidate feed of one job.
type RecommendCandidatesRequest struct {
	JobID      uuid.UUID `json:"-" validate:"required"` // From URL path
	EmployerID uuid.UUID `json:"-" validate:"required"` // Set internally by handler
	Limit      int       `form:"limit,default=20" validate:"gte=1,lte=100"`
}

// UpdateJobRequest defines the structure for updating a posting. Nil fields
// are left unchanged; Skills, when present, replaces the requirement list.
type UpdateJobRequest struct {
	ID             uuid.UUID        `json:"-" validate:"required"` // From URL path
	EmployerID     uuid.UUID        `json:"-" validate:"required"` // Set internally by handler
	Title          *string          `json:"title,omitempty" validate:"omitempty,max=200"`
	Description    *string          `json:"description,omitempty" validate:"omitempty,max=5000"`
	Type           *string          `json:"type,omitempty" validate:"omitempty,oneof=full-time part-time contract internship"`
	Location       *string          `json:"location,omitempty" validate:"omitempty,max=100"`
	IsRemote       *bool            `json:"is_remote,omitempty"`
	WillSponsor    *bool            `json:"will_sponsor,omitempty"`
	Salary         *float64         `json:"salary,omitempty" validate:"omitempty,gte=0"`
	MatchThreshold *float64         `json:"match_threshold,omitempty" validate:"omitempty,gte=0,lte=100"`
	Skills         *[]JobSkillInput `json:"skills,omitempty" validate:"omitempty,max=50,dive"`
}

// DeleteJobRequest defines the structure for deleting a posting.
type DeleteJobRequest struct {
	ID         uuid.UUID `json:"-" validate:"required"`
	EmployerID uuid.UUID `json:"-" validate:"required"` // Set internally by handler
}

// --- Job Response DTOs ---

// JobSkillResponse is one requirement of a posting with the catalog entry
// joined in.
type JobSkillResponse struct {
	Skill    SkillResponse `json:"skill"`
	Priority int           `json:"priority"`
}

// JobResponse defines the standard job data returned to the client.
type JobResponse struct {
	ID             uuid.UUID          `json:"id"`
	EmployerID     uuid.UUID          `json:"employer_id"`
	Title          string             `json:"title"`
	Description    string             `json:"description"`
	Type           string             `json:"type"`
	Location       string             `json:"location"`
	IsRemote       bool               `json:"is_remote"`
	WillSponsor    bool               `json:"will_sponsor"`
	Salary         float64            `json:"salary"`
	MatchThreshold float64            `json:"match_threshold"`
	Skills         []JobSkillResponse `json:"skills"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

// RelevantJobResponse is one entry of the candidate-side feed: a posting plus
// how many of its requirements the candidate already covers.
type RelevantJobResponse struct {
	Job          JobResponse `json:"job"`
	SharedSkills int         `json:"shared_skills"`
}

// RecommendedCandidateResponse is one entry of the employer-side feed: a
// candidate plus their fit percentage for the job.
type RecommendedCandidateResponse struct {
	Candidate CandidateResponse `json:"candidate"`
	Score     float64           `json:"score"`
}
