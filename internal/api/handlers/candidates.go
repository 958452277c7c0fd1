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

// CandidateHandler holds dependencies for candidate profile operations.
type CandidateHandler struct {
	service   services.CandidateService
	validator *validator.Validate
}

// NewCandidateHandler creates a new CandidateHandler.
func NewCandidateHandler(service services.CandidateService, validate *validator.Validate) *CandidateHandler {
	return &CandidateHandler{
		service:   service,
		validator: validate,
	}
}

// GetMe godoc
// @Summary      Get own candidate profile
// @Description  Retrieves the authenticated candidate's profile with skills.
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Success      200 {object}  dto.CandidateResponse "Successfully retrieved profile"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      404 {object}  map[string]string "Candidate Not Found"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /candidates/me [get]
// @Security     BearerAuth
func (h *CandidateHandler) GetMe(c *gin.Context) {
	candidateID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		log.Printf("Error getting user ID from context: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	h.respondWithCandidate(c, candidateID)
}

// GetCandidateByID godoc
// @Summary      Get a candidate by ID
// @Description  Retrieves a candidate profile by ID. Intended for employers reviewing applicants.
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Param        id path      string true  "Candidate ID" Format(uuid)
// @Success      200 {object}  dto.CandidateResponse "Successfully retrieved candidate"
// @Failure      400 {object}  map[string]string "Invalid ID format"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      404 {object}  map[string]string "Candidate Not Found"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /candidates/{id} [get]
// @Security     BearerAuth
func (h *CandidateHandler) GetCandidateByID(c *gin.Context) {
	idStr := c.Param("id")
	candidateID, err := uuid.Parse(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid candidate ID format"})
		return
	}

	h.respondWithCandidate(c, candidateID)
}

func (h *CandidateHandler) respondWithCandidate(c *gin.Context, candidateID uuid.UUID) {
	req := dto.GetCandidateByIDRequest{ID: candidateID}
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	candidate, err := h.service.GetByID(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "retrieve candidate")
		return
	}

	c.JSON(http.StatusOK, MapCandidateModelToCandidateResponse(candidate))
}

// UpdateProfile godoc
// @Summary      Update own candidate profile
// @Description  Updates name, bio, location or match threshold of the authenticated candidate. Omitted fields are left unchanged.
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Param        profile body      dto.UpdateCandidateProfileRequest true  "Fields to update"
// @Success      200 {object}  dto.CandidateResponse "Profile updated successfully"
// @Failure      400 {object}  map[string]string "Bad Request - Invalid input"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /candidates/me [patch]
// @Security     BearerAuth
func (h *CandidateHandler) UpdateProfile(c *gin.Context) {
	candidateID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		log.Printf("Error getting user ID from context: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdateCandidateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	req.ID = candidateID

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	updated, err := h.service.UpdateProfile(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "update profile")
		return
	}

	c.JSON(http.StatusOK, MapCandidateModelToCandidateResponse(updated))
}

// SetSkills godoc
// @Summary      Replace own skill list
// @Description  Replaces the authenticated candidate's skills with the given catalog references. Unknown IDs are rejected.
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Param        skills body      dto.SetCandidateSkillsRequest true  "Skill catalog IDs"
// @Success      200 {array}   dto.SkillResponse "Skill list replaced successfully"
// @Failure      400 {object}  map[string]string "Bad Request - Invalid input or unknown skill IDs"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /candidates/me/skills [put]
// @Security     BearerAuth
func (h *CandidateHandler) SetSkills(c *gin.Context) {
	candidateID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		log.Printf("Error getting user ID from context: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.SetCandidateSkillsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	req.CandidateID = candidateID

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	skills, err := h.service.SetSkills(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "replace skills")
		return
	}

	c.JSON(http.StatusOK, mapSkillModels(skills))
}
