package handlers

import (
	"errors"
	"net/http"

	"job-match-api/internal/services"
	"job-match-api/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator"
)

// SkillHandler holds dependencies for skill catalog operations.
type SkillHandler struct {
	service   services.SkillService
	validator *validator.Validate
}

// NewSkillHandler creates a new SkillHandler.
func NewSkillHandler(service services.SkillService, validate *validator.Validate) *SkillHandler {
	return &SkillHandler{
		service:   service,
		validator: validate,
	}
}

// CreateSkill godoc
// @Summary      Add a skill to the catalog
// @Description  Creates a new catalog entry. Names are unique case-insensitively.
// @Tags         skills
// @Accept       json
// @Produce      json
// @Param        skill body      dto.CreateSkillRequest true  "Skill name and optional category"
// @Success      201 {object}  dto.SkillResponse "Skill created successfully"
// @Failure      400 {object}  map[string]string "Bad Request - Invalid input"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      409 {object}  map[string]string "Conflict - Name already in the catalog"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /skills [post]
// @Security     BearerAuth
func (h *SkillHandler) CreateSkill(c *gin.Context) {
	var req dto.CreateSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	skill, err := h.service.CreateSkill(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": "A skill with this name already exists"})
			return
		}
		respondServiceError(c, err, "create skill")
		return
	}

	c.JSON(http.StatusCreated, MapSkillModelToSkillResponse(skill))
}

// ListSkills godoc
// @Summary      Browse or search the skill catalog
// @Description  Retrieves catalog entries with optional name search and category filter. Supports pagination.
// @Tags         skills
// @Accept       json
// @Produce      json
// @Param        search query string false "Name substring search"
// @Param        category query string false "Category filter"
// @Param        limit query int false "Pagination limit" default(50)
// @Param        offset query int false "Pagination offset" default(0)
// @Success      200 {array}   dto.SkillResponse "Successfully retrieved skills"
// @Failure      400 {object}  map[string]string "Bad Request - Invalid query parameters"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /skills [get]
// @Security     BearerAuth
func (h *SkillHandler) ListSkills(c *gin.Context) {
	var req dto.ListSkillsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	skills, err := h.service.ListSkills(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "list skills")
		return
	}

	c.JSON(http.StatusOK, mapSkillModels(skills))
}

// ListInDemand godoc
// @Summary      List the most in-demand skills
// @Description  Retrieves catalog entries ranked by priority-weighted demand across all postings. The ranking may be a few minutes stale.
// @Tags         skills
// @Accept       json
// @Produce      json
// @Param        limit query int false "Maximum ranking size" default(10)
// @Success      200 {array}   dto.InDemandSkillResponse "Successfully retrieved ranking"
// @Failure      400 {object}  map[string]string "Bad Request - Invalid query parameters"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /skills/in-demand [get]
// @Security     BearerAuth
func (h *SkillHandler) ListInDemand(c *gin.Context) {
	var req dto.ListInDemandSkillsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	ranked, err := h.service.ListInDemand(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "rank skills")
		return
	}

	c.JSON(http.StatusOK, ranked)
}
