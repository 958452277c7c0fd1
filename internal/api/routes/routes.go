package routes

import (
	"log"

	"job-match-api/internal/api/handlers"
	"job-match-api/internal/api/middleware"
	"job-match-api/internal/app"
	"job-match-api/internal/services"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up the API routes by calling resource-specific registration functions
func RegisterRoutes(router *gin.Engine, app *app.Application) {

	// --- Base API Group ---
	apiV1 := router.Group("/api/v1")

	//Create handlers
	authHandler := handlers.NewAuthHandler(app.AuthService, app.Validator)
	candidateHandler := handlers.NewCandidateHandler(app.CandidateService, app.Validator)
	jobHandler := handlers.NewJobHandler(app.JobService, app.RecommendationService, app.Validator)
	matchHandler := handlers.NewMatchHandler(app.MatchService, app.Validator)
	skillHandler := handlers.NewSkillHandler(app.SkillService, app.Validator)

	// --- Middleware ---
	authMiddleware := middleware.JWTAuthMiddleware(app.Config.JWT.Secret)
	candidateOnly := middleware.RequireRole(services.RoleCandidate)
	employerOnly := middleware.RequireRole(services.RoleEmployer)

	// --- Register Resource Routes ---
	RegisterAuthRoutes(apiV1, authHandler)
	RegisterCandidateRoutes(apiV1, candidateHandler, authMiddleware, candidateOnly)
	RegisterJobRoutes(apiV1, jobHandler, authMiddleware, candidateOnly, employerOnly)
	RegisterMatchRoutes(apiV1, matchHandler, authMiddleware, candidateOnly, employerOnly)
	RegisterSkillRoutes(apiV1, skillHandler, authMiddleware)

	// --- Health Check ---
	router.GET("/health", handlers.HealthCheck)

	log.Println("Configuring Swagger UI handler")
	// Register the Swagger UI handler WITHOUT the explicit URL option.
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
