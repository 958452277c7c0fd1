package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// --- Overall Match Status Enum ---
type OverallStatus string

const (
	OverallPreMatch           OverallStatus = "Pre Match"
	OverallMatch              OverallStatus = "Match"
	OverallRetracted          OverallStatus = "Retracted"
	OverallRejected           OverallStatus = "Rejected"
	OverallInterviewScheduled OverallStatus = "Interview Scheduled"
	OverallPostInterview      OverallStatus = "Post Interview"
)

// Scan implements the sql.Scanner interface for OverallStatus
func (os *OverallStatus) Scan(value interface{}) error {
	strVal, ok := value.(string)
	if !ok {
		byteVal, ok := value.([]byte)
		if ok {
			strVal = string(byteVal)
		} else {
			return fmt.Errorf("failed to scan OverallStatus: value is not string or []byte")
		}
	}
	v := OverallStatus(strVal)
	switch v {
	case OverallPreMatch, OverallMatch, OverallRetracted, OverallRejected,
		OverallInterviewScheduled, OverallPostInterview:
		*os = v
		return nil
	default:
		return fmt.Errorf("invalid OverallStatus value: %s", strVal)
	}
}

// Value implements the driver.Valuer interface for OverallStatus
func (os OverallStatus) Value() (driver.Value, error) {
	return string(os), nil
}

// Terminal reports whether no further workflow transition is defined out of
// this overall status.
func (os OverallStatus) Terminal() bool {
	switch os {
	case OverallRetracted, OverallRejected, OverallPostInterview:
		return true
	default:
		return false
	}
}

// --- General (per-side) Status Enum ---
// Used for both the candidate and the employer track of a match. Kept as a
// separate type from OverallStatus so a side value can never land in the
// overall track.
type GeneralStatus string

const (
	GeneralPending      GeneralStatus = "Pending"
	GeneralInterested   GeneralStatus = "Interested"
	GeneralUninterested GeneralStatus = "Uninterested"
	GeneralRetracted    GeneralStatus = "Retracted"
)

// Scan implements the sql.Scanner interface for GeneralStatus
func (gs *GeneralStatus) Scan(value interface{}) error {
	strVal, ok := value.(string)
	if !ok {
		byteVal, ok := value.([]byte)
		if ok {
			strVal = string(byteVal)
		} else {
			return fmt.Errorf("failed to scan GeneralStatus: value is not string or []byte")
		}
	}
	v := GeneralStatus(strVal)
	switch v {
	case GeneralPending, GeneralInterested, GeneralUninterested, GeneralRetracted:
		*gs = v
		return nil
	default:
		return fmt.Errorf("invalid GeneralStatus value: %s", strVal)
	}
}

// Value implements the driver.Valuer interface for GeneralStatus
func (gs GeneralStatus) Value() (driver.Value, error) {
	return string(gs), nil
}

// Skill is one entry of the shared skill catalog. Jobs and candidates
// reference skills by ID; they never embed copies.
type Skill struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Category  string    `json:"category" db:"category"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Candidate is a job seeker account.
type Candidate struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Name         string    `json:"name" db:"name"`
	Bio          string    `json:"bio" db:"bio"`
	Location     string    `json:"location" db:"location"`

	// MatchThreshold is a percentage; 0 means "no filter".
	MatchThreshold float64 `json:"match_threshold" db:"match_threshold"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	// Skills is populated by the candidate repository from the
	// candidate_skills table, not scanned from candidates itself.
	Skills []Skill `json:"skills,omitempty" db:"-"`
}

// Employer is an organization account that owns job postings.
type Employer struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Name         string    `json:"name" db:"name"`
	Company      string    `json:"company" db:"company"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// JobSkill is one weighted requirement of a job: a skill reference plus a
// priority from 1 (nice to have) to 5 (critical). Priorities feed the
// in-demand skill ranking only; the fit percentage ignores them.
type JobSkill struct {
	SkillID  uuid.UUID `json:"skill_id" db:"skill_id"`
	Priority int       `json:"priority" db:"priority"`

	// Skill is populated when the requirement list is loaded with the
	// catalog joined in.
	Skill *Skill `json:"skill,omitempty" db:"-"`
}

// Job is a posting with weighted skill requirements.
type Job struct {
	ID          uuid.UUID `json:"id" db:"id"`
	EmployerID  uuid.UUID `json:"employer_id" db:"employer_id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Type        string    `json:"type" db:"type"`
	Location    string    `json:"location" db:"location"`
	IsRemote    bool      `json:"is_remote" db:"is_remote"`
	WillSponsor bool      `json:"will_sponsor" db:"will_sponsor"`
	Salary      float64   `json:"salary" db:"salary"`

	// MatchThreshold is the minimum fit percentage a candidate must score
	// to be recommended for this job.
	MatchThreshold float64 `json:"match_threshold" db:"match_threshold"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	// JobSkills is populated by the job repository from the job_skills table.
	JobSkills []JobSkill `json:"job_skills,omitempty" db:"-"`
}

// Match links one candidate to one job. The three status tracks are stored
// inline as (value, modified) pairs; they are independent of each other and
// only ever mutated together through the status workflow. Version is an
// optimistic lock: a status update must carry the version it read.
type Match struct {
	ID          uuid.UUID `json:"id" db:"id"`
	JobID       uuid.UUID `json:"job_id" db:"job_id"`
	CandidateID uuid.UUID `json:"candidate_id" db:"candidate_id"`

	OverallStatus     OverallStatus `json:"match_status" db:"overall_status"`
	OverallModified   time.Time     `json:"match_status_modified" db:"overall_modified"`
	CandidateStatus   GeneralStatus `json:"candidate_status" db:"candidate_status"`
	CandidateModified time.Time     `json:"candidate_status_modified" db:"candidate_modified"`
	EmployerStatus    GeneralStatus `json:"employer_status" db:"employer_status"`
	EmployerModified  time.Time     `json:"employer_status_modified" db:"employer_modified"`

	Version     int        `json:"-" db:"version"`
	InterviewID *uuid.UUID `json:"interview_id,omitempty" db:"interview_id"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Interview is the scheduled interview of a match. At most one per match.
type Interview struct {
	ID            uuid.UUID `json:"id" db:"id"`
	MatchID       uuid.UUID `json:"match_id" db:"match_id"`
	InterviewDate time.Time `json:"interview_date" db:"interview_date"`
	RoomName      string    `json:"room_name" db:"room_name"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}
