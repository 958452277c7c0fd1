package routes

import (
	"job-match-api/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterSkillRoutes registers all routes related to the skill catalog.
func RegisterSkillRoutes(
	rg *gin.RouterGroup, // Base group (e.g., /api/v1)
	skillHandler handlers.SkillHandlerInterface,
	authMiddleware gin.HandlerFunc,
) {
	skills := rg.Group("/skills")
	skills.Use(authMiddleware)
	{
		skills.GET("/", skillHandler.ListSkills)           // Browse or search the catalog
		skills.GET("/in-demand", skillHandler.ListInDemand) // Demand ranking
		skills.POST("/", skillHandler.CreateSkill)         // Add a catalog entry
	}
}
