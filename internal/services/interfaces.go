package services

import (
	"context"

	"job-match-api/internal/matching"
	"job-match-api/internal/models"
	"job-match-api/internal/transport/dto"
)

// AuthService defines the interface for account and token business logic.
type AuthService interface {
	RegisterCandidate(ctx context.Context, req *dto.RegisterCandidateRequest) (*models.Candidate, error)
	RegisterEmployer(ctx context.Context, req *dto.RegisterEmployerRequest) (*models.Employer, error)
	// Login verifies credentials for the given role and returns an
	// access/refresh token pair.
	Login(ctx context.Context, role string, req *dto.LoginRequest) (*dto.TokenPairResponse, error)
	Refresh(ctx context.Context, req *dto.RefreshRequest) (*dto.TokenPairResponse, error)
	Logout(ctx context.Context, req *dto.LogoutRequest) error
}

// CandidateService defines the interface for candidate profile business logic.
type CandidateService interface {
	GetByID(ctx context.Context, req *dto.GetCandidateByIDRequest) (*models.Candidate, error)
	UpdateProfile(ctx context.Context, req *dto.UpdateCandidateProfileRequest) (*models.Candidate, error)
	SetSkills(ctx context.Context, req *dto.SetCandidateSkillsRequest) ([]models.Skill, error)
}

// JobService defines the interface for job posting business logic.
type JobService interface {
	CreateJob(ctx context.Context, req *dto.CreateJobRequest) (*models.Job, error)
	GetJobByID(ctx context.Context, req *dto.GetJobByIDRequest) (*models.Job, error)
	ListJobs(ctx context.Context, req *dto.ListJobsRequest) ([]models.Job, error)
	ListJobsByEmployer(ctx context.Context, req *dto.ListJobsByEmployerRequest) ([]models.Job, error)
	UpdateJob(ctx context.Context, req *dto.UpdateJobRequest) (*models.Job, error)
	DeleteJob(ctx context.Context, req *dto.DeleteJobRequest) error
}

// SkillService defines the interface for the skill catalog business logic.
type SkillService interface {
	CreateSkill(ctx context.Context, req *dto.CreateSkillRequest) (*models.Skill, error)
	ListSkills(ctx context.Context, req *dto.ListSkillsRequest) ([]models.Skill, error)
	// ListInDemand ranks skills by their priority-weighted demand across
	// postings, served from a short-lived cache.
	ListInDemand(ctx context.Context, req *dto.ListInDemandSkillsRequest) ([]dto.InDemandSkillResponse, error)
}

// MatchService defines the interface for the match lifecycle business logic.
type MatchService interface {
	CreateMatch(ctx context.Context, req *dto.CreateMatchRequest) (*models.Match, error)
	GetMatchByID(ctx context.Context, req *dto.GetMatchByIDRequest) (*models.Match, error)
	ListByCandidate(ctx context.Context, req *dto.ListMatchesForCandidateRequest) ([]models.Match, error)
	ListByEmployer(ctx context.Context, req *dto.ListMatchesForEmployerRequest) ([]models.Match, error)
	AcceptMatch(ctx context.Context, req *dto.UpdateMatchStatusRequest) (*models.Match, error)
	RejectMatch(ctx context.Context, req *dto.UpdateMatchStatusRequest) (*models.Match, error)
	RetractMatch(ctx context.Context, req *dto.UpdateMatchStatusRequest) (*models.Match, error)
	ScheduleInterview(ctx context.Context, req *dto.ScheduleInterviewRequest) (*models.Interview, error)
	CompleteInterview(ctx context.Context, req *dto.CompleteInterviewRequest) (*models.Match, error)
	SharedSkills(ctx context.Context, req *dto.SharedSkillsRequest) (*matching.SkillBreakdown, error)
}

// RecommendationService defines the interface for the two match feeds.
type RecommendationService interface {
	// RecommendCandidates is the employer-side feed: candidates clearing the
	// job's fit threshold, best first.
	RecommendCandidates(ctx context.Context, req *dto.RecommendCandidatesRequest) ([]matching.CandidateScore, error)
	// RecommendJobs is the candidate-side feed: postings sharing the most
	// skills with the candidate, best first.
	RecommendJobs(ctx context.Context, req *dto.ListJobsForCandidateRequest) ([]matching.JobOverlap, error)
}
