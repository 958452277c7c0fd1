package routes

import (
	"job-match-api/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterCandidateRoutes registers profile routes. The /me routes are
// candidate-only; profile lookup by ID is open to any authenticated account
// so employers can review applicants.
func RegisterCandidateRoutes(
	rg *gin.RouterGroup, // Base group (e.g., /api/v1)
	candidateHandler handlers.CandidateHandlerInterface,
	authMiddleware gin.HandlerFunc,
	candidateOnly gin.HandlerFunc,
) {
	candidates := rg.Group("/candidates")
	candidates.Use(authMiddleware)
	{
		candidates.GET("/me", candidateOnly, candidateHandler.GetMe)
		candidates.PATCH("/me", candidateOnly, candidateHandler.UpdateProfile)
		candidates.PUT("/me/skills", candidateOnly, candidateHandler.SetSkills)
		candidates.GET("/:id", candidateHandler.GetCandidateByID)
	}
}
