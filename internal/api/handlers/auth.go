package handlers

import (
	"errors"
	"net/http"

	"job-match-api/internal/services"
	"job-match-api/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator"
)

// AuthHandler holds dependencies for registration and session operations.
type AuthHandler struct {
	service   services.AuthService
	validator *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service services.AuthService, validate *validator.Validate) *AuthHandler {
	return &AuthHandler{
		service:   service,
		validator: validate,
	}
}

// RegisterCandidate godoc
// @Summary      Register a candidate account
// @Description  Creates a new job seeker account.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        account body      dto.RegisterCandidateRequest true  "Candidate account details"
// @Success      201 {object}  dto.CandidateResponse "Account created successfully"
// @Failure      400 {object}  map[string]string "Bad Request - Invalid input"
// @Failure      409 {object}  map[string]string "Conflict - Email already registered"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /auth/candidates/register [post]
func (h *AuthHandler) RegisterCandidate(c *gin.Context) {
	var req dto.RegisterCandidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	candidate, err := h.service.RegisterCandidate(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": "An account with this email already exists"})
			return
		}
		respondServiceError(c, err, "register candidate")
		return
	}

	c.JSON(http.StatusCreated, MapCandidateModelToCandidateResponse(candidate))
}

// RegisterEmployer godoc
// @Summary      Register an employer account
// @Description  Creates a new employer account that can own job postings.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        account body      dto.RegisterEmployerRequest true  "Employer account details"
// @Success      201 {object}  dto.EmployerResponse "Account created successfully"
// @Failure      400 {object}  map[string]string "Bad Request - Invalid input"
// @Failure      409 {object}  map[string]string "Conflict - Email already registered"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /auth/employers/register [post]
func (h *AuthHandler) RegisterEmployer(c *gin.Context) {
	var req dto.RegisterEmployerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	employer, err := h.service.RegisterEmployer(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": "An account with this email already exists"})
			return
		}
		respondServiceError(c, err, "register employer")
		return
	}

	c.JSON(http.StatusCreated, MapEmployerModelToEmployerResponse(employer))
}

// LoginCandidate godoc
// @Summary      Log in as a candidate
// @Description  Exchanges candidate credentials for an access/refresh token pair.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        credentials body      dto.LoginRequest true  "Login credentials"
// @Success      200 {object}  dto.TokenPairResponse "Login successful"
// @Failure      400 {object}  map[string]string "Bad Request - Invalid input"
// @Failure      401 {object}  map[string]string "Unauthorized - Invalid credentials"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /auth/candidates/login [post]
func (h *AuthHandler) LoginCandidate(c *gin.Context) {
	h.login(c, services.RoleCandidate)
}

// LoginEmployer godoc
// @Summary      Log in as an employer
// @Description  Exchanges employer credentials for an access/refresh token pair.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        credentials body      dto.LoginRequest true  "Login credentials"
// @Success      200 {object}  dto.TokenPairResponse "Login successful"
// @Failure      400 {object}  map[string]string "Bad Request - Invalid input"
// @Failure      401 {object}  map[string]string "Unauthorized - Invalid credentials"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /auth/employers/login [post]
func (h *AuthHandler) LoginEmployer(c *gin.Context) {
	h.login(c, services.RoleEmployer)
}

func (h *AuthHandler) login(c *gin.Context, role string) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	pair, err := h.service.Login(c.Request.Context(), role, &req)
	if err != nil {
		respondServiceError(c, err, "log in")
		return
	}

	c.JSON(http.StatusOK, pair)
}

// Refresh godoc
// @Summary      Refresh the token pair
// @Description  Exchanges a valid refresh token for a new access/refresh pair. The old refresh token is invalidated.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        token body      dto.RefreshRequest true  "Refresh token"
// @Success      200 {object}  dto.TokenPairResponse "Tokens rotated successfully"
// @Failure      400 {object}  map[string]string "Bad Request - Invalid input"
// @Failure      401 {object}  map[string]string "Unauthorized - Unknown or expired refresh token"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	pair, err := h.service.Refresh(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "refresh tokens")
		return
	}

	c.JSON(http.StatusOK, pair)
}

// Logout godoc
// @Summary      Log out
// @Description  Invalidates the given refresh token. Access tokens expire on their own.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        token body      dto.LogoutRequest true  "Refresh token to invalidate"
// @Success      204 {object}  nil "Logged out successfully"
// @Failure      400 {object}  map[string]string "Bad Request - Invalid input"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	var req dto.LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	if err := h.service.Logout(c.Request.Context(), &req); err != nil {
		respondServiceError(c, err, "log out")
		return
	}

	c.Status(http.StatusNoContent)
}
