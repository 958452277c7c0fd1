package routes

import (
	"job-match-api/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterJobRoutes registers all routes related to job postings. Browsing is
// open to any authenticated account; mutations and the candidate feed of a
// posting are employer-only, the relevance feed is candidate-only.
func RegisterJobRoutes(
	rg *gin.RouterGroup, // Base group (e.g., /api/v1)
	jobHandler handlers.JobHandlerInterface,
	authMiddleware gin.HandlerFunc,
	candidateOnly gin.HandlerFunc,
	employerOnly gin.HandlerFunc,
) {
	jobs := rg.Group("/jobs")
	jobs.Use(authMiddleware)
	{
		jobs.GET("/", jobHandler.ListJobs)                                    // Browse postings
		jobs.POST("/", employerOnly, jobHandler.CreateJob)                    // Create a posting
		jobs.GET("/my", employerOnly, jobHandler.ListMyJobs)                  // Own postings
		jobs.GET("/forme", candidateOnly, jobHandler.ListRelevantJobs)        // Candidate relevance feed
		jobs.GET("/:id", jobHandler.GetJobByID)                               // Get a posting
		jobs.GET("/:id/candidates", employerOnly, jobHandler.RecommendCandidates) // Recommended candidates
		jobs.PATCH("/:id", employerOnly, jobHandler.UpdateJob)                // Update a posting
		jobs.DELETE("/:id", employerOnly, jobHandler.DeleteJob)               // Delete a posting
	}
}
