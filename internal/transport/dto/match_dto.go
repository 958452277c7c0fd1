package dto

import (
	"time"

	"github.com/google/uuid"
)

// --- Match Request DTOs ---

// CreateMatchRequest defines the structure for a candidate applying to a job.
type CreateMatchRequest struct {
	JobID       uuid.UUID `json:"job_id" validate:"required"`
	CandidateID uuid.UUID `json:"-" validate:"required"` // Set internally from auth context
}

// GetMatchByIDRequest defines the structure for getting a match by ID.
type GetMatchByIDRequest struct {
	ID      uuid.UUID `json:"-" validate:"required"`
	ActorID uuid.UUID `json:"-" validate:"required"` // Set internally from auth context
}

// ListMatchesForCandidateRequest defines parameters for a candidate listing
// their own matches.
type ListMatchesForCandidateRequest struct {
	CandidateID uuid.UUID `json:"-" validate:"required"` // Set internally from auth context
	Limit       int       `form:"limit,default=10" validate:"gte=1,lte=100"`
	Offset      int       `form:"offset,default=0" validate:"gte=0"`
	Status      *string   `form:"status" validate:"omitempty,oneof='Pre Match' Match Retracted Rejected 'Interview Scheduled' 'Post Interview'"`
}

// ListMatchesForEmployerRequest defines parameters for an employer listing
// matches across their postings, optionally narrowed to one job.
type ListMatchesForEmployerRequest struct {
	EmployerID uuid.UUID  `json:"-" validate:"required"` // Set internally from auth context
	JobID      *uuid.UUID `form:"job_id" validate:"omitempty"`
	Limit      int        `form:"limit,default=10" validate:"gte=1,lte=100"`
	Offset     int        `form:"offset,default=0" validate:"gte=0"`
	Status     *string    `form:"status" validate:"omitempty,oneof='Pre Match' Match Retracted Rejected 'Interview Scheduled' 'Post Interview'"`
}

// UpdateMatchStatusRequest defines the structure for the employer status
// actions (accept, reject, retract). The action itself comes from the route.
type UpdateMatchStatusRequest struct {
	ID         uuid.UUID `json:"-" validate:"required"` // From URL path
	EmployerID uuid.UUID `json:"-" validate:"required"` // Set internally from auth context
}

// ScheduleInterviewRequest defines the structure for scheduling the single
// interview of a match.
type ScheduleInterviewRequest struct {
	MatchID       uuid.UUID `json:"-" validate:"required"` // From URL path
	EmployerID    uuid.UUID `json:"-" validate:"required"` // Set internally from auth context
	InterviewDate time.Time `json:"interview_date" validate:"required"`
	RoomName      string    `json:"room_name" validate:"omitempty,max=100"`
}

// CompleteInterviewRequest defines the structure for marking a scheduled
// interview as held.
type CompleteInterviewRequest struct {
	MatchID    uuid.UUID `json:"-" validate:"required"` // From URL path
	EmployerID uuid.UUID `json:"-" validate:"required"` // Set internally from auth context
}

// SharedSkillsRequest defines the structure for the skill comparison view of
// a match.
type SharedSkillsRequest struct {
	MatchID uuid.UUID `json:"-" validate:"required"`
	ActorID uuid.UUID `json:"-" validate:"required"` // Set internally from auth context
}

// --- Match Response DTOs ---

// MatchStatusResponse is one status track with its last modification time.
type MatchStatusResponse struct {
	Value    string    `json:"value"`
	Modified time.Time `json:"modified"`
}

// MatchResponse defines the standard match data returned to the client.
type MatchResponse struct {
	ID              uuid.UUID           `json:"id"`
	JobID           uuid.UUID           `json:"job_id"`
	CandidateID     uuid.UUID           `json:"candidate_id"`
	MatchStatus     MatchStatusResponse `json:"match_status"`
	CandidateStatus MatchStatusResponse `json:"candidate_status"`
	EmployerStatus  MatchStatusResponse `json:"employer_status"`
	InterviewID     *uuid.UUID          `json:"interview_id,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// InterviewResponse defines the interview data returned to the client.
type InterviewResponse struct {
	ID            uuid.UUID `json:"id"`
	MatchID       uuid.UUID `json:"match_id"`
	InterviewDate time.Time `json:"interview_date"`
	RoomName      string    `json:"room_name"`
	CreatedAt     time.Time `json:"created_at"`
}

// SharedSkillsResponse breaks a match down by requirement coverage: skills
// both sides share, requirements the candidate is missing, and the
// candidate's remaining skills the job never asked for.
type SharedSkillsResponse struct {
	Shared     []SkillResponse `json:"shared"`
	Missing    []SkillResponse `json:"missing"`
	Other      []SkillResponse `json:"other"`
	Percentage float64         `json:"percentage"`
}
