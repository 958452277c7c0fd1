package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"job-match-api/internal/api/middleware"
	"job-match-api/internal/models"
	"job-match-api/internal/services"
	"job-match-api/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator"
	"github.com/google/uuid"
)

// MatchHandler holds dependencies for match lifecycle operations.
type MatchHandler struct {
	service   services.MatchService
	validator *validator.Validate
}

// NewMatchHandler creates a new MatchHandler.
func NewMatchHandler(service services.MatchService, validate *validator.Validate) *MatchHandler {
	return &MatchHandler{
		service:   service,
		validator: validate,
	}
}

// CreateMatch godoc
// @Summary      Apply to a job
// @Description  Creates a match between the authenticated candidate and a job. A candidate can apply to each job once.
// @Tags         matches
// @Accept       json
// @Produce      json
// @Param        match body      dto.CreateMatchRequest true  "Job to apply to"
// @Success      201 {object}  dto.MatchResponse "Application recorded successfully"
// @Failure      400 {object}  map[string]string "Bad Request - Invalid input or duplicate application"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      404 {object}  map[string]string "Job Not Found"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /matches [post]
// @Security     BearerAuth
func (h *MatchHandler) CreateMatch(c *gin.Context) {
	candidateID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		log.Printf("Error getting user ID from context: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	req.CandidateID = candidateID

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	match, err := h.service.CreateMatch(c.Request.Context(), &req)
	if err != nil {
		// Duplicate applications come back as a client error, not a conflict.
		if errors.Is(err, services.ErrConflict) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "You have already applied to this job"})
			return
		}
		respondServiceError(c, err, "create match")
		return
	}

	c.JSON(http.StatusCreated, MapMatchModelToMatchResponse(match))
}

// GetMatchByID godoc
// @Summary      Get a match by ID
// @Description  Retrieves a match. Only the match's candidate or the posting's employer may view it.
// @Tags         matches
// @Accept       json
// @Produce      json
// @Param        id path      string true  "Match ID" Format(uuid)
// @Success      200 {object}  dto.MatchResponse "Successfully retrieved match"
// @Failure      400 {object}  map[string]string "Invalid ID format"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      403 {object}  map[string]string "Forbidden"
// @Failure      404 {object}  map[string]string "Match Not Found"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /matches/{id} [get]
// @Security     BearerAuth
func (h *MatchHandler) GetMatchByID(c *gin.Context) {
	actorID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		log.Printf("Error getting user ID from context: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	idStr := c.Param("id")
	matchID, err := uuid.Parse(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid match ID format"})
		return
	}

	req := dto.GetMatchByIDRequest{ID: matchID, ActorID: actorID}

	match, err := h.service.GetMatchByID(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "retrieve match")
		return
	}

	c.JSON(http.StatusOK, MapMatchModelToMatchResponse(match))
}

// ListMyMatches godoc
// @Summary      List own matches (candidate)
// @Description  Retrieves the authenticated candidate's matches, optionally filtered by overall status.
// @Tags         matches
// @Accept       json
// @Produce      json
// @Param        limit query int false "Pagination limit" default(10)
// @Param        offset query int false "Pagination offset" default(0)
// @Param        status query string false "Overall status filter" Enums(Pre Match, Match, Retracted, Rejected, Interview Scheduled, Post Interview)
// @Success      200 {array}   dto.MatchResponse "Successfully retrieved matches"
// @Failure      400 {object}  map[string]string "Bad Request - Invalid query parameters"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /matches/my [get]
// @Security     BearerAuth
func (h *MatchHandler) ListMyMatches(c *gin.Context) {
	candidateID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		log.Printf("Error getting user ID from context: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.ListMatchesForCandidateRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	req.CandidateID = candidateID

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	matches, err := h.service.ListByCandidate(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "list matches")
		return
	}

	responses := make([]dto.MatchResponse, 0, len(matches))
	for i := range matches {
		responses = append(responses, MapMatchModelToMatchResponse(&matches[i]))
	}
	c.JSON(http.StatusOK, responses)
}

// ListEmployerMatches godoc
// @Summary      List matches across own postings (employer)
// @Description  Retrieves matches against the authenticated employer's postings, optionally narrowed to one job or one overall status.
// @Tags         matches
// @Accept       json
// @Produce      json
// @Param        job_id query string false "Narrow to one job" Format(uuid)
// @Param        limit query int false "Pagination limit" default(10)
// @Param        offset query int false "Pagination offset" default(0)
// @Param        status query string false "Overall status filter" Enums(Pre Match, Match, Retracted, Rejected, Interview Scheduled, Post Interview)
// @Success      200 {array}   dto.MatchResponse "Successfully retrieved matches"
// @Failure      400 {object}  map[string]string "Bad Request - Invalid query parameters"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /matches/employer [get]
// @Security     BearerAuth
func (h *MatchHandler) ListEmployerMatches(c *gin.Context) {
	employerID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		log.Printf("Error getting user ID from context: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.ListMatchesForEmployerRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	req.EmployerID = employerID

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	matches, err := h.service.ListByEmployer(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "list matches")
		return
	}

	responses := make([]dto.MatchResponse, 0, len(matches))
	for i := range matches {
		responses = append(responses, MapMatchModelToMatchResponse(&matches[i]))
	}
	c.JSON(http.StatusOK, responses)
}

// AcceptMatch godoc
// @Summary      Accept a match
// @Description  Employer opt-in: the match moves to 'Match' and both side tracks to 'Interested'.
// @Tags         matches
// @Accept       json
// @Produce      json
// @Param        id path      string true  "Match ID" Format(uuid)
// @Success      200 {object}  dto.MatchResponse "Match accepted"
// @Failure      400 {object}  map[string]string "Invalid ID format"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      403 {object}  map[string]string "Forbidden - Not the posting's owner"
// @Failure      404 {object}  map[string]string "Match Not Found"
// @Failure      409 {object}  map[string]string "Conflict - Match is in a terminal state or was modified concurrently"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /matches/{id}/accept [post]
// @Security     BearerAuth
func (h *MatchHandler) AcceptMatch(c *gin.Context) {
	h.updateStatus(c, "accept match", h.service.AcceptMatch)
}

// RejectMatch godoc
// @Summary      Reject a match
// @Description  Employer decline: terminal 'Rejected', employer track 'Uninterested'.
// @Tags         matches
// @Accept       json
// @Produce      json
// @Param        id path      string true  "Match ID" Format(uuid)
// @Success      200 {object}  dto.MatchResponse "Match rejected"
// @Failure      400 {object}  map[string]string "Invalid ID format"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      403 {object}  map[string]string "Forbidden - Not the posting's owner"
// @Failure      404 {object}  map[string]string "Match Not Found"
// @Failure      409 {object}  map[string]string "Conflict - Match is in a terminal state or was modified concurrently"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /matches/{id}/reject [post]
// @Security     BearerAuth
func (h *MatchHandler) RejectMatch(c *gin.Context) {
	h.updateStatus(c, "reject match", h.service.RejectMatch)
}

// RetractMatch godoc
// @Summary      Retract a match
// @Description  Employer withdrawal: terminal 'Retracted' on the overall and employer tracks.
// @Tags         matches
// @Accept       json
// @Produce      json
// @Param        id path      string true  "Match ID" Format(uuid)
// @Success      200 {object}  dto.MatchResponse "Match retracted"
// @Failure      400 {object}  map[string]string "Invalid ID format"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      403 {object}  map[string]string "Forbidden - Not the posting's owner"
// @Failure      404 {object}  map[string]string "Match Not Found"
// @Failure      409 {object}  map[string]string "Conflict - Match is in a terminal state or was modified concurrently"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /matches/{id}/retract [post]
// @Security     BearerAuth
func (h *MatchHandler) RetractMatch(c *gin.Context) {
	h.updateStatus(c, "retract match", h.service.RetractMatch)
}

type statusAction func(ctx context.Context, req *dto.UpdateMatchStatusRequest) (*models.Match, error)

func (h *MatchHandler) updateStatus(c *gin.Context, action string, fn statusAction) {
	employerID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		log.Printf("Error getting user ID from context: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	idStr := c.Param("id")
	matchID, err := uuid.Parse(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid match ID format"})
		return
	}

	req := dto.UpdateMatchStatusRequest{ID: matchID, EmployerID: employerID}

	match, err := fn(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, action)
		return
	}

	c.JSON(http.StatusOK, MapMatchModelToMatchResponse(match))
}

// ScheduleInterview godoc
// @Summary      Schedule the interview of a match
// @Description  Creates the single interview of an accepted match and moves the match to 'Interview Scheduled'.
// @Tags         matches
// @Accept       json
// @Produce      json
// @Param        id path      string true  "Match ID" Format(uuid)
// @Param        interview body      dto.ScheduleInterviewRequest true  "Interview date and optional room name"
// @Success      201 {object}  dto.InterviewResponse "Interview scheduled"
// @Failure      400 {object}  map[string]string "Bad Request - Invalid input"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      403 {object}  map[string]string "Forbidden - Not the posting's owner"
// @Failure      404 {object}  map[string]string "Match Not Found"
// @Failure      409 {object}  map[string]string "Conflict - Match not accepted yet or already has an interview"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /matches/{id}/interview [post]
// @Security     BearerAuth
func (h *MatchHandler) ScheduleInterview(c *gin.Context) {
	employerID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		log.Printf("Error getting user ID from context: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	idStr := c.Param("id")
	matchID, err := uuid.Parse(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid match ID format"})
		return
	}

	var req dto.ScheduleInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	req.MatchID = matchID
	req.EmployerID = employerID

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	interview, err := h.service.ScheduleInterview(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "schedule interview")
		return
	}

	c.JSON(http.StatusCreated, MapInterviewModelToInterviewResponse(interview))
}

// CompleteInterview godoc
// @Summary      Complete the interview of a match
// @Description  Marks the scheduled interview as held; the match moves to the terminal 'Post Interview' state.
// @Tags         matches
// @Accept       json
// @Produce      json
// @Param        id path      string true  "Match ID" Format(uuid)
// @Success      200 {object}  dto.MatchResponse "Interview completed"
// @Failure      400 {object}  map[string]string "Invalid ID format"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      403 {object}  map[string]string "Forbidden - Not the posting's owner"
// @Failure      404 {object}  map[string]string "Match Not Found"
// @Failure      409 {object}  map[string]string "Conflict - No interview scheduled"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /matches/{id}/interview/complete [post]
// @Security     BearerAuth
func (h *MatchHandler) CompleteInterview(c *gin.Context) {
	employerID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		log.Printf("Error getting user ID from context: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	idStr := c.Param("id")
	matchID, err := uuid.Parse(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid match ID format"})
		return
	}

	req := dto.CompleteInterviewRequest{MatchID: matchID, EmployerID: employerID}

	match, err := h.service.CompleteInterview(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "complete interview")
		return
	}

	c.JSON(http.StatusOK, MapMatchModelToMatchResponse(match))
}

// SharedSkills godoc
// @Summary      Skill comparison of a match
// @Description  Breaks the match down into shared skills, missing requirements and the candidate's other skills, plus the fit percentage.
// @Tags         matches
// @Accept       json
// @Produce      json
// @Param        id path      string true  "Match ID" Format(uuid)
// @Success      200 {object}  dto.SharedSkillsResponse "Successfully retrieved comparison"
// @Failure      400 {object}  map[string]string "Invalid ID format"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      403 {object}  map[string]string "Forbidden"
// @Failure      404 {object}  map[string]string "Match Not Found"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /matches/{id}/skills [get]
// @Security     BearerAuth
func (h *MatchHandler) SharedSkills(c *gin.Context) {
	actorID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		log.Printf("Error getting user ID from context: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	idStr := c.Param("id")
	matchID, err := uuid.Parse(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid match ID format"})
		return
	}

	req := dto.SharedSkillsRequest{MatchID: matchID, ActorID: actorID}

	breakdown, err := h.service.SharedSkills(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "compare skills")
		return
	}

	c.JSON(http.StatusOK, MapBreakdownToSharedSkillsResponse(breakdown))
}
