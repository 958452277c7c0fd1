package routes

import (
	"job-match-api/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers registration and session routes. None of them
// require an access token; refresh and logout authenticate with the refresh
// token itself.
func RegisterAuthRoutes(
	rg *gin.RouterGroup, // Base group (e.g., /api/v1)
	authHandler handlers.AuthHandlerInterface,
) {
	auth := rg.Group("/auth")
	{
		auth.POST("/candidates/register", authHandler.RegisterCandidate)
		auth.POST("/candidates/login", authHandler.LoginCandidate)
		auth.POST("/employers/register", authHandler.RegisterEmployer)
		auth.POST("/employers/login", authHandler.LoginEmployer)
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/logout", authHandler.Logout)
	}
}
