package matching

import (
	"errors"
	"fmt"
	"time"

	"job-match-api/internal/models"
)

// Workflow errors. The service layer maps these onto its own sentinel set.
var (
	// ErrTerminalStatus means the overall track is in a terminal state and
	// no further transition is defined.
	ErrTerminalStatus = errors.New("match status is terminal")
	// ErrNotMatched means an operation requires the overall track to be
	// "Match" first (e.g. scheduling an interview before the double opt-in).
	ErrNotMatched = errors.New("match has not reached Match status")
	// ErrNotInterviewing means an operation requires a scheduled interview.
	ErrNotInterviewing = errors.New("no interview is scheduled for this match")
)

// TriStatus is the value of a match's three status tracks. The tracks are
// independent but always move together: every operation below either updates
// all of its tracks or returns an error and leaves the value untouched.
type TriStatus struct {
	Overall           models.OverallStatus
	OverallModified   time.Time
	Candidate         models.GeneralStatus
	CandidateModified time.Time
	Employer          models.GeneralStatus
	EmployerModified  time.Time
}

// NewTriStatus returns the track values a match carries at creation:
// overall "Pre Match", candidate "Interested" (a match only exists because
// the candidate expressed interest), employer "Pending" (the employer has
// not reviewed yet).
func NewTriStatus(now time.Time) TriStatus {
	return TriStatus{
		Overall:           models.OverallPreMatch,
		OverallModified:   now,
		Candidate:         models.GeneralInterested,
		CandidateModified: now,
		Employer:          models.GeneralPending,
		EmployerModified:  now,
	}
}

// Accept records the double opt-in: overall "Match", both sides
// "Interested". Valid from any non-terminal overall state.
func (ts *TriStatus) Accept(now time.Time) error {
	if ts.Overall.Terminal() {
		return fmt.Errorf("%w: %s", ErrTerminalStatus, ts.Overall)
	}
	ts.Overall = models.OverallMatch
	ts.OverallModified = now
	ts.Candidate = models.GeneralInterested
	ts.CandidateModified = now
	ts.Employer = models.GeneralInterested
	ts.EmployerModified = now
	return nil
}

// Reject is the employer declining the candidate: overall "Rejected",
// employer "Uninterested". The candidate track is left as is.
func (ts *TriStatus) Reject(now time.Time) error {
	if ts.Overall.Terminal() {
		return fmt.Errorf("%w: %s", ErrTerminalStatus, ts.Overall)
	}
	ts.Overall = models.OverallRejected
	ts.OverallModified = now
	ts.Employer = models.GeneralUninterested
	ts.EmployerModified = now
	return nil
}

// Retract is the employer withdrawing after a match: overall "Retracted",
// employer "Retracted".
func (ts *TriStatus) Retract(now time.Time) error {
	if ts.Overall.Terminal() {
		return fmt.Errorf("%w: %s", ErrTerminalStatus, ts.Overall)
	}
	ts.Overall = models.OverallRetracted
	ts.OverallModified = now
	ts.Employer = models.GeneralRetracted
	ts.EmployerModified = now
	return nil
}

// BeginInterview moves overall from "Match" to "Interview Scheduled". Only
// legal once both sides have opted in; the caller is responsible for the
// at-most-one-interview-per-match invariant.
func (ts *TriStatus) BeginInterview(now time.Time) error {
	if ts.Overall.Terminal() {
		return fmt.Errorf("%w: %s", ErrTerminalStatus, ts.Overall)
	}
	if ts.Overall != models.OverallMatch {
		return fmt.Errorf("%w: current status %s", ErrNotMatched, ts.Overall)
	}
	ts.Overall = models.OverallInterviewScheduled
	ts.OverallModified = now
	return nil
}

// CompleteInterview moves overall from "Interview Scheduled" to the terminal
// "Post Interview" state.
func (ts *TriStatus) CompleteInterview(now time.Time) error {
	if ts.Overall.Terminal() {
		return fmt.Errorf("%w: %s", ErrTerminalStatus, ts.Overall)
	}
	if ts.Overall != models.OverallInterviewScheduled {
		return fmt.Errorf("%w: current status %s", ErrNotInterviewing, ts.Overall)
	}
	ts.Overall = models.OverallPostInterview
	ts.OverallModified = now
	return nil
}

// StatusOf extracts the three track values from a persisted match.
func StatusOf(m *models.Match) TriStatus {
	return TriStatus{
		Overall:           m.OverallStatus,
		OverallModified:   m.OverallModified,
		Candidate:         m.CandidateStatus,
		CandidateModified: m.CandidateModified,
		Employer:          m.EmployerStatus,
		EmployerModified:  m.EmployerModified,
	}
}

// ApplyTo writes the three track values back onto a match.
func (ts TriStatus) ApplyTo(m *models.Match) {
	m.OverallStatus = ts.Overall
	m.OverallModified = ts.OverallModified
	m.CandidateStatus = ts.Candidate
	m.CandidateModified = ts.CandidateModified
	m.EmployerStatus = ts.Employer
	m.EmployerModified = ts.EmployerModified
}
