package handlers

import "github.com/gin-gonic/gin"

// AuthHandlerInterface defines the methods needed by the auth routes.
type AuthHandlerInterface interface {
	RegisterCandidate(c *gin.Context)
	RegisterEmployer(c *gin.Context)
	LoginCandidate(c *gin.Context)
	LoginEmployer(c *gin.Context)
	Refresh(c *gin.Context)
	Logout(c *gin.Context)
}

// CandidateHandlerInterface defines the methods needed by the candidate routes.
type CandidateHandlerInterface interface {
	GetMe(c *gin.Context)
	GetCandidateByID(c *gin.Context)
	UpdateProfile(c *gin.Context)
	SetSkills(c *gin.Context)
}

// JobHandlerInterface defines the methods needed by the job routes.
type JobHandlerInterface interface {
	CreateJob(c *gin.Context)
	GetJobByID(c *gin.Context)
	ListJobs(c *gin.Context)
	ListMyJobs(c *gin.Context)
	ListRelevantJobs(c *gin.Context)
	RecommendCandidates(c *gin.Context)
	UpdateJob(c *gin.Context)
	DeleteJob(c *gin.Context)
}

// MatchHandlerInterface defines the methods needed by the match routes.
type MatchHandlerInterface interface {
	CreateMatch(c *gin.Context)
	GetMatchByID(c *gin.Context)
	ListMyMatches(c *gin.Context)
	ListEmployerMatches(c *gin.Context)
	AcceptMatch(c *gin.Context)
	RejectMatch(c *gin.Context)
	RetractMatch(c *gin.Context)
	ScheduleInterview(c *gin.Context)
	CompleteInterview(c *gin.Context)
	SharedSkills(c *gin.Context)
}

// SkillHandlerInterface defines the methods needed by the skill routes.
type SkillHandlerInterface interface {
	CreateSkill(c *gin.Context)
	ListSkills(c *gin.Context)
	ListInDemand(c *gin.Context)
}

// Ensure handlers implement the interfaces (compile-time check)
var _ AuthHandlerInterface = (*AuthHandler)(nil)
var _ CandidateHandlerInterface = (*CandidateHandler)(nil)
var _ JobHandlerInterface = (*JobHandler)(nil)
var _ MatchHandlerInterface = (*MatchHandler)(nil)
var _ SkillHandlerInterface = (*SkillHandler)(nil)
