package matching

import (
	"testing"
	"time"

	"job-match-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTriStatus_Defaults(t *testing.T) {
	now := time.Now()
	ts := NewTriStatus(now)

	assert.Equal(t, models.OverallPreMatch, ts.Overall)
	assert.Equal(t, models.GeneralInterested, ts.Candidate)
	assert.Equal(t, models.GeneralPending, ts.Employer)
	assert.Equal(t, now, ts.OverallModified)
	assert.Equal(t, now, ts.CandidateModified)
	assert.Equal(t, now, ts.EmployerModified)
}

func TestTriStatus_Accept_UpdatesAllThreeTracks(t *testing.T) {
	created := time.Now().Add(-time.Hour)
	ts := NewTriStatus(created)
	now := time.Now()

	require.NoError(t, ts.Accept(now))

	assert.Equal(t, models.OverallMatch, ts.Overall)
	assert.Equal(t, models.GeneralInterested, ts.Candidate)
	assert.Equal(t, models.GeneralInterested, ts.Employer)
	assert.Equal(t, now, ts.OverallModified)
	assert.Equal(t, now, ts.CandidateModified)
	assert.Equal(t, now, ts.EmployerModified)
}

func TestTriStatus_Reject(t *testing.T) {
	ts := NewTriStatus(time.Now())

	require.NoError(t, ts.Reject(time.Now()))

	assert.Equal(t, models.OverallRejected, ts.Overall)
	assert.Equal(t, models.GeneralUninterested, ts.Employer)
	// The candidate track does not move on an employer rejection.
	assert.Equal(t, models.GeneralInterested, ts.Candidate)
}

func TestTriStatus_Retract(t *testing.T) {
	ts := NewTriStatus(time.Now())
	require.NoError(t, ts.Accept(time.Now()))

	require.NoError(t, ts.Retract(time.Now()))

	assert.Equal(t, models.OverallRetracted, ts.Overall)
	assert.Equal(t, models.GeneralRetracted, ts.Employer)
}

func TestTriStatus_BeginInterview_RequiresMatch(t *testing.T) {
	ts := NewTriStatus(time.Now())

	err := ts.BeginInterview(time.Now())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotMatched)
	assert.Equal(t, models.OverallPreMatch, ts.Overall)
}

func TestTriStatus_FullInterviewFlow(t *testing.T) {
	ts := NewTriStatus(time.Now())

	require.NoError(t, ts.Accept(time.Now()))
	require.NoError(t, ts.BeginInterview(time.Now()))
	assert.Equal(t, models.OverallInterviewScheduled, ts.Overall)

	require.NoError(t, ts.CompleteInterview(time.Now()))
	assert.Equal(t, models.OverallPostInterview, ts.Overall)
}

func TestTriStatus_CompleteInterview_RequiresScheduled(t *testing.T) {
	ts := NewTriStatus(time.Now())
	require.NoError(t, ts.Accept(time.Now()))

	err := ts.CompleteInterview(time.Now())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotInterviewing)
}

func TestTriStatus_TerminalStatesLockEverything(t *testing.T) {
	terminalSetups := map[string]func(*TriStatus){
		"retracted": func(ts *TriStatus) {
			_ = ts.Retract(time.Now())
		},
		"rejected": func(ts *TriStatus) {
			_ = ts.Reject(time.Now())
		},
		"post interview": func(ts *TriStatus) {
			_ = ts.Accept(time.Now())
			_ = ts.BeginInterview(time.Now())
			_ = ts.CompleteInterview(time.Now())
		},
	}

	for name, setup := range terminalSetups {
		t.Run(name, func(t *testing.T) {
			ts := NewTriStatus(time.Now())
			setup(&ts)
			require.True(t, ts.Overall.Terminal())
			before := ts

			ops := map[string]func(time.Time) error{
				"accept":             ts.Accept,
				"reject":             ts.Reject,
				"retract":            ts.Retract,
				"begin interview":    ts.BeginInterview,
				"complete interview": ts.CompleteInterview,
			}
			for opName, op := range ops {
				err := op(time.Now())
				require.Error(t, err, opName)
				assert.ErrorIs(t, err, ErrTerminalStatus, opName)
			}

			// Failed transitions must not move any track.
			assert.Equal(t, before, ts)
		})
	}
}

func TestTriStatus_AcceptValidFromAnyNonTerminalState(t *testing.T) {
	ts := NewTriStatus(time.Now())
	require.NoError(t, ts.Accept(time.Now()))
	require.NoError(t, ts.BeginInterview(time.Now()))

	// Interview Scheduled is not terminal, so a (redundant) accept holds.
	require.NoError(t, ts.Accept(time.Now()))
	assert.Equal(t, models.OverallMatch, ts.Overall)
}

func TestTriStatus_RoundTripThroughMatch(t *testing.T) {
	now := time.Now()
	m := &models.Match{}
	ts := NewTriStatus(now)
	ts.ApplyTo(m)

	assert.Equal(t, models.OverallPreMatch, m.OverallStatus)
	assert.Equal(t, models.GeneralInterested, m.CandidateStatus)
	assert.Equal(t, models.GeneralPending, m.EmployerStatus)

	got := StatusOf(m)
	assert.Equal(t, ts, got)
}
