package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"job-match-api/internal/matching"
	"job-match-api/internal/models"
	"job-match-api/internal/storage"
	"job-match-api/internal/transport/dto"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type matchService struct {
	matchRepo     storage.MatchRepository
	jobRepo       storage.JobRepository
	candidateRepo storage.CandidateRepository
	interviewRepo storage.InterviewRepository
	txRunner      storage.TxRunner
}

// NewMatchService creates a new instance of MatchService.
func NewMatchService(matchRepo storage.MatchRepository, jobRepo storage.JobRepository, candidateRepo storage.CandidateRepository, interviewRepo storage.InterviewRepository, txRunner storage.TxRunner) MatchService {
	return &matchService{
		matchRepo:     matchRepo,
		jobRepo:       jobRepo,
		candidateRepo: candidateRepo,
		interviewRepo: interviewRepo,
		txRunner:      txRunner,
	}
}

// CreateMatch records a candidate's application to a job. The new match
// starts as "Pre Match" with the candidate interested and the employer
// pending. One application per candidate per job; the unique constraint
// backs that up under concurrent requests.
func (s *matchService) CreateMatch(ctx context.Context, req *dto.CreateMatchRequest) (*models.Match, error) {
	if _, err := s.jobRepo.GetByID(ctx, req.JobID); err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("fetching job %s for application", req.JobID))
	}
	if _, err := s.candidateRepo.GetByID(ctx, req.CandidateID); err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("fetching candidate %s for application", req.CandidateID))
	}

	match := &models.Match{
		ID:          uuid.New(),
		JobID:       req.JobID,
		CandidateID: req.CandidateID,
	}
	matching.NewTriStatus(time.Now()).ApplyTo(match)

	created, err := s.matchRepo.Create(ctx, match)
	if err != nil {
		return nil, mapRepoError(err, "creating match")
	}
	return created, nil
}

func (s *matchService) GetMatchByID(ctx context.Context, req *dto.GetMatchByIDRequest) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("fetching match %s", req.ID))
	}
	if err := s.authorizeMatchAccess(ctx, match, req.ActorID); err != nil {
		return nil, err
	}
	return match, nil
}

func (s *matchService) ListByCandidate(ctx context.Context, req *dto.ListMatchesForCandidateRequest) ([]models.Match, error) {
	matches, err := s.matchRepo.ListByCandidate(ctx, req)
	if err != nil {
		return nil, mapRepoError(err, "listing matches by candidate")
	}
	return matches, nil
}

func (s *matchService) ListByEmployer(ctx context.Context, req *dto.ListMatchesForEmployerRequest) ([]models.Match, error) {
	matches, err := s.matchRepo.ListByEmployer(ctx, req)
	if err != nil {
		return nil, mapRepoError(err, "listing matches by employer")
	}
	return matches, nil
}

// AcceptMatch is the employer's opt-in: the match moves to "Match" and both
// side tracks to "Interested".
func (s *matchService) AcceptMatch(ctx context.Context, req *dto.UpdateMatchStatusRequest) (*models.Match, error) {
	return s.transition(ctx, req, func(ts *matching.TriStatus, now time.Time) error {
		return ts.Accept(now)
	})
}

// RejectMatch is the employer declining: terminal "Rejected", employer track
// "Uninterested". The candidate track keeps its last value.
func (s *matchService) RejectMatch(ctx context.Context, req *dto.UpdateMatchStatusRequest) (*models.Match, error) {
	return s.transition(ctx, req, func(ts *matching.TriStatus, now time.Time) error {
		return ts.Reject(now)
	})
}

// RetractMatch is the employer withdrawing: terminal "Retracted" on both the
// overall and employer tracks.
func (s *matchService) RetractMatch(ctx context.Context, req *dto.UpdateMatchStatusRequest) (*models.Match, error) {
	return s.transition(ctx, req, func(ts *matching.TriStatus, now time.Time) error {
		return ts.Retract(now)
	})
}

// transition runs one employer-side status change: fetch, authorize, apply
// the workflow step, persist under the optimistic lock. All inside one
// transaction so the interview row and status row can never diverge.
func (s *matchService) transition(ctx context.Context, req *dto.UpdateMatchStatusRequest, step func(*matching.TriStatus, time.Time) error) (*models.Match, error) {
	var updated *models.Match
	err := s.txRunner.RunInTx(ctx, func(tx pgx.Tx) error {
		txMatchRepo := s.matchRepo.WithTx(tx)

		match, err := txMatchRepo.GetByID(ctx, req.ID)
		if err != nil {
			return mapRepoError(err, fmt.Sprintf("fetching match %s", req.ID))
		}
		if err := s.authorizeEmployerTx(ctx, tx, match, req.EmployerID); err != nil {
			return err
		}

		ts := matching.StatusOf(match)
		if err := step(&ts, time.Now()); err != nil {
			return mapWorkflowError(err)
		}
		ts.ApplyTo(match)

		updated, err = txMatchRepo.UpdateStatus(ctx, match)
		if err != nil {
			return mapRepoError(err, fmt.Sprintf("updating match %s", req.ID))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// ScheduleInterview creates the single interview of a match and moves the
// match to "Interview Scheduled", atomically.
func (s *matchService) ScheduleInterview(ctx context.Context, req *dto.ScheduleInterviewRequest) (*models.Interview, error) {
	var interview *models.Interview
	err := s.txRunner.RunInTx(ctx, func(tx pgx.Tx) error {
		txMatchRepo := s.matchRepo.WithTx(tx)
		txInterviewRepo := s.interviewRepo.WithTx(tx)

		match, err := txMatchRepo.GetByID(ctx, req.MatchID)
		if err != nil {
			return mapRepoError(err, fmt.Sprintf("fetching match %s", req.MatchID))
		}
		if err := s.authorizeEmployerTx(ctx, tx, match, req.EmployerID); err != nil {
			return err
		}
		if match.InterviewID != nil {
			return fmt.Errorf("%w: match already has an interview scheduled", ErrConflict)
		}

		now := time.Now()
		ts := matching.StatusOf(match)
		if err := ts.BeginInterview(now); err != nil {
			return mapWorkflowError(err)
		}
		ts.ApplyTo(match)

		roomName := sanitizeText(req.RoomName)
		created := &models.Interview{
			ID:            uuid.New(),
			MatchID:       match.ID,
			InterviewDate: req.InterviewDate,
			RoomName:      roomName,
		}
		if created.RoomName == "" {
			created.RoomName = fmt.Sprintf("interview-%s", created.ID)
		}

		interview, err = txInterviewRepo.Create(ctx, created)
		if err != nil {
			return mapRepoError(err, "creating interview")
		}

		match.InterviewID = &interview.ID
		if _, err := txMatchRepo.UpdateStatus(ctx, match); err != nil {
			return mapRepoError(err, fmt.Sprintf("updating match %s", req.MatchID))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("MatchService: Interview %s scheduled for match %s", interview.ID, req.MatchID)
	return interview, nil
}

// CompleteInterview moves a match with a held interview to the terminal
// "Post Interview" state.
func (s *matchService) CompleteInterview(ctx context.Context, req *dto.CompleteInterviewRequest) (*models.Match, error) {
	return s.transition(ctx, &dto.UpdateMatchStatusRequest{ID: req.MatchID, EmployerID: req.EmployerID},
		func(ts *matching.TriStatus, now time.Time) error {
			return ts.CompleteInterview(now)
		})
}

// SharedSkills breaks a match down by requirement coverage for either party.
func (s *matchService) SharedSkills(ctx context.Context, req *dto.SharedSkillsRequest) (*matching.SkillBreakdown, error) {
	match, err := s.matchRepo.GetByID(ctx, req.MatchID)
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("fetching match %s", req.MatchID))
	}
	if err := s.authorizeMatchAccess(ctx, match, req.ActorID); err != nil {
		return nil, err
	}

	candidateSkills, err := s.candidateRepo.ListSkills(ctx, match.CandidateID)
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("fetching skills for candidate %s", match.CandidateID))
	}
	jobSkills, err := s.jobRepo.ListSkills(ctx, match.JobID)
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("fetching requirements for job %s", match.JobID))
	}

	breakdown := matching.Breakdown(candidateSkills, jobSkills)
	return &breakdown, nil
}

// authorizeMatchAccess allows the match's candidate or the owning employer.
func (s *matchService) authorizeMatchAccess(ctx context.Context, match *models.Match, actorID uuid.UUID) error {
	if match.CandidateID == actorID {
		return nil
	}
	job, err := s.jobRepo.GetByID(ctx, match.JobID)
	if err != nil {
		return mapRepoError(err, fmt.Sprintf("fetching job %s for match authorization", match.JobID))
	}
	if job.EmployerID != actorID {
		log.Printf("MatchService: Forbidden access attempt by %s on match %s", actorID, match.ID)
		return ErrForbidden
	}
	return nil
}

// authorizeEmployerTx checks, inside the transaction, that the acting
// employer owns the match's job.
func (s *matchService) authorizeEmployerTx(ctx context.Context, tx pgx.Tx, match *models.Match, employerID uuid.UUID) error {
	job, err := s.jobRepo.WithTx(tx).GetByID(ctx, match.JobID)
	if err != nil {
		return mapRepoError(err, fmt.Sprintf("fetching job %s for match authorization", match.JobID))
	}
	if job.EmployerID != employerID {
		log.Printf("MatchService: Forbidden status change attempt by employer %s on match %s owned by %s", employerID, match.ID, job.EmployerID)
		return ErrForbidden
	}
	return nil
}
