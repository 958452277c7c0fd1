package routes

import (
	"job-match-api/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterMatchRoutes registers all routes related to matches and interviews.
// Applying is candidate-only; the status actions and interview scheduling are
// employer-only. Reads are authorized inside the service against the match.
func RegisterMatchRoutes(
	rg *gin.RouterGroup, // Base group (e.g., /api/v1)
	matchHandler handlers.MatchHandlerInterface,
	authMiddleware gin.HandlerFunc,
	candidateOnly gin.HandlerFunc,
	employerOnly gin.HandlerFunc,
) {
	matches := rg.Group("/matches")
	matches.Use(authMiddleware)
	{
		matches.POST("/", candidateOnly, matchHandler.CreateMatch)                 // Apply to a job
		matches.GET("/my", candidateOnly, matchHandler.ListMyMatches)              // Candidate's matches
		matches.GET("/employer", employerOnly, matchHandler.ListEmployerMatches)   // Matches across own postings
		matches.GET("/:id", matchHandler.GetMatchByID)                             // Get one match
		matches.GET("/:id/skills", matchHandler.SharedSkills)                      // Skill comparison
		matches.POST("/:id/accept", employerOnly, matchHandler.AcceptMatch)        // Employer opt-in
		matches.POST("/:id/reject", employerOnly, matchHandler.RejectMatch)        // Employer decline
		matches.POST("/:id/retract", employerOnly, matchHandler.RetractMatch)      // Employer withdrawal
		matches.POST("/:id/interview", employerOnly, matchHandler.ScheduleInterview)
		matches.POST("/:id/interview/complete", employerOnly, matchHandler.CompleteInterview)
	}
}
