package handlers

import (
	"log"
	"net/http"

	"job-match-api/internal/api/middleware"
	"job-match-api/internal/services"
	"job-match-api/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator"
	"github.com/google/uuid"
)

// JobHandler holds dependencies for job posting operations.
type JobHandler struct {
	service        services.JobService
	recommendation services.RecommendationService
	validator      *validator.Validate
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(service services.JobService, recommendation services.RecommendationService, validate *validator.Validate) *JobHandler {
	return &JobHandler{
		service:        service,
		recommendation: recommendation,
		validator:      validate,
	}
}

// CreateJob godoc
// @Summary      Create a new job posting
// @Description  Adds a new posting with its weighted skill requirements. Employer ID is taken from auth context.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        job body      dto.CreateJobRequest true  "Job details"
// @Success      201 {object}  dto.JobResponse "Job created successfully"
// @Failure      400 {object}  map[string]string "Bad Request - Invalid input or unknown skill IDs"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      409 {object}  map[string]string "Conflict - Duplicate title for this employer"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /jobs [post]
// @Security     BearerAuth
func (h *JobHandler) CreateJob(c *gin.Context) {
	employerID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		log.Printf("Error getting user ID from context: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	req.EmployerID = employerID

	createdJob, err := h.service.CreateJob(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "create job")
		return
	}

	c.JSON(http.StatusCreated, MapJobModelToJobResponse(createdJob))
}

// GetJobByID godoc
// @Summary      Get a job by ID
// @Description  Retrieves a posting with its requirement list.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id path      string true  "Job ID" Format(uuid)
// @Success      200 {object}  dto.JobResponse "Successfully retrieved job"
// @Failure      400 {object}  map[string]string "Invalid ID format"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      404 {object}  map[string]string "Job Not Found"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /jobs/{id} [get]
// @Security     BearerAuth
func (h *JobHandler) GetJobByID(c *gin.Context) {
	idStr := c.Param("id")
	jobID, err := uuid.Parse(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job ID format"})
		return
	}

	req := dto.GetJobByIDRequest{ID: jobID}

	job, err := h.service.GetJobByID(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "retrieve job")
		return
	}

	c.JSON(http.StatusOK, MapJobModelToJobResponse(job))
}

// ListJobs godoc
// @Summary      Browse job postings
// @Description  Retrieves postings with optional type, location, remote and salary filters. Supports pagination.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        limit query int false "Pagination limit" default(10)
// @Param        offset query int false "Pagination offset" default(0)
// @Param        type query string false "Employment type filter" Enums(full-time, part-time, contract, internship)
// @Param        location query string false "Location substring filter"
// @Param        is_remote query bool false "Remote-only filter"
// @Param        min_salary query number false "Minimum salary filter"
// @Success      200 {array}   dto.JobResponse "Successfully retrieved postings"
// @Failure      400 {object}  map[string]string "Bad Request - Invalid query parameters"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /jobs [get]
// @Security     BearerAuth
func (h *JobHandler) ListJobs(c *gin.Context) {
	var req dto.ListJobsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	jobs, err := h.service.ListJobs(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "list jobs")
		return
	}

	jobResponses := make([]dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		jobResponses = append(jobResponses, MapJobModelToJobResponse(&jobs[i]))
	}
	c.JSON(http.StatusOK, jobResponses)
}

// ListMyJobs godoc
// @Summary      List own job postings
// @Description  Retrieves the authenticated employer's postings. Supports pagination.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        limit query int false "Pagination limit" default(10)
// @Param        offset query int false "Pagination offset" default(0)
// @Success      200 {array}   dto.JobResponse "Successfully retrieved postings"
// @Failure      400 {object}  map[string]string "Bad Request - Invalid query parameters"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /jobs/my [get]
// @Security     BearerAuth
func (h *JobHandler) ListMyJobs(c *gin.Context) {
	employerID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		log.Printf("Error getting user ID from context: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.ListJobsByEmployerRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	req.EmployerID = employerID

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	jobs, err := h.service.ListJobsByEmployer(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "list employer jobs")
		return
	}

	jobResponses := make([]dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		jobResponses = append(jobResponses, MapJobModelToJobResponse(&jobs[i]))
	}
	c.JSON(http.StatusOK, jobResponses)
}

// ListRelevantJobs godoc
// @Summary      List jobs relevant to the authenticated candidate
// @Description  Retrieves postings sharing at least one skill with the candidate, ordered by shared-skill count.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        limit query int false "Maximum feed size" default(20)
// @Success      200 {array}   dto.RelevantJobResponse "Successfully retrieved feed"
// @Failure      400 {object}  map[string]string "Bad Request - Invalid query parameters"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /jobs/forme [get]
// @Security     BearerAuth
func (h *JobHandler) ListRelevantJobs(c *gin.Context) {
	candidateID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		log.Printf("Error getting user ID from context: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.ListJobsForCandidateRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	req.CandidateID = candidateID

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	ranked, err := h.recommendation.RecommendJobs(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "build job feed")
		return
	}

	feed := make([]dto.RelevantJobResponse, 0, len(ranked))
	for i := range ranked {
		feed = append(feed, dto.RelevantJobResponse{
			Job:          MapJobModelToJobResponse(&ranked[i].Job),
			SharedSkills: ranked[i].Overlap,
		})
	}
	c.JSON(http.StatusOK, feed)
}

// RecommendCandidates godoc
// @Summary      List recommended candidates for a job
// @Description  Retrieves candidates scoring at or above the job's match threshold, excluding those already matched, best fit first. Only the posting's owner may call this.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id path      string true  "Job ID" Format(uuid)
// @Param        limit query int false "Maximum feed size" default(20)
// @Success      200 {array}   dto.RecommendedCandidateResponse "Successfully retrieved feed"
// @Failure      400 {object}  map[string]string "Invalid ID format or query parameters"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      403 {object}  map[string]string "Forbidden - Not the posting's owner"
// @Failure      404 {object}  map[string]string "Job Not Found"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /jobs/{id}/candidates [get]
// @Security     BearerAuth
func (h *JobHandler) RecommendCandidates(c *gin.Context) {
	employerID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		log.Printf("Error getting user ID from context: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	idStr := c.Param("id")
	jobID, err := uuid.Parse(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job ID format"})
		return
	}

	var req dto.RecommendCandidatesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	req.JobID = jobID
	req.EmployerID = employerID

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	ranked, err := h.recommendation.RecommendCandidates(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "build candidate feed")
		return
	}

	feed := make([]dto.RecommendedCandidateResponse, 0, len(ranked))
	for i := range ranked {
		feed = append(feed, dto.RecommendedCandidateResponse{
			Candidate: MapCandidateModelToCandidateResponse(&ranked[i].Candidate),
			Score:     ranked[i].Score,
		})
	}
	c.JSON(http.StatusOK, feed)
}

// UpdateJob godoc
// @Summary      Update a job posting
// @Description  Updates fields of a posting the authenticated employer owns. A skills entry replaces the whole requirement list.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id path      string true  "Job ID" Format(uuid)
// @Param        job body      dto.UpdateJobRequest true  "Fields to update"
// @Success      200 {object}  dto.JobResponse "Job updated successfully"
// @Failure      400 {object}  map[string]string "Bad Request - Invalid input"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      403 {object}  map[string]string "Forbidden - Not the posting's owner"
// @Failure      404 {object}  map[string]string "Job Not Found"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /jobs/{id} [patch]
// @Security     BearerAuth
func (h *JobHandler) UpdateJob(c *gin.Context) {
	employerID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		log.Printf("Error getting user ID from context: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	idStr := c.Param("id")
	jobID, err := uuid.Parse(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job ID format"})
		return
	}

	var req dto.UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	req.ID = jobID
	req.EmployerID = employerID

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	updatedJob, err := h.service.UpdateJob(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "update job")
		return
	}

	c.JSON(http.StatusOK, MapJobModelToJobResponse(updatedJob))
}

// DeleteJob godoc
// @Summary      Delete a job posting
// @Description  Deletes a posting the authenticated employer owns. Postings with existing matches cannot be deleted.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id path      string true  "Job ID" Format(uuid)
// @Success      204 {object}  nil "Job deleted successfully"
// @Failure      400 {object}  map[string]string "Invalid ID format"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      403 {object}  map[string]string "Forbidden - Not the posting's owner"
// @Failure      404 {object}  map[string]string "Job Not Found"
// @Failure      409 {object}  map[string]string "Conflict - Posting has matches"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /jobs/{id} [delete]
// @Security     BearerAuth
func (h *JobHandler) DeleteJob(c *gin.Context) {
	employerID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		log.Printf("Error getting user ID from context: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	idStr := c.Param("id")
	jobID, err := uuid.Parse(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job ID format"})
		return
	}

	req := dto.DeleteJobRequest{ID: jobID, EmployerID: employerID}

	if err := h.service.DeleteJob(c.Request.Context(), &req); err != nil {
		respondServiceError(c, err, "delete job")
		return
	}

	c.Status(http.StatusNoContent)
}
