package app

import (
	"job-match-api/config"
	"job-match-api/internal/services"
	"job-match-api/internal/storage/postgres"

	"github.com/go-playground/validator"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Application holds core application dependencies.
type Application struct {
	Config      *config.Config
	DBPool      *pgxpool.Pool
	RedisClient *redis.Client
	Validator   *validator.Validate

	AuthService           services.AuthService
	CandidateService      services.CandidateService
	JobService            services.JobService
	SkillService          services.SkillService
	MatchService          services.MatchService
	RecommendationService services.RecommendationService
}

// New wires repositories and services around the given connections.
func New(cfg *config.Config, pool *pgxpool.Pool, rdb *redis.Client, validate *validator.Validate) *Application {
	candidateRepo := postgres.NewCandidateRepo(pool)
	employerRepo := postgres.NewEmployerRepo(pool)
	skillRepo := postgres.NewSkillRepo(pool)
	jobRepo := postgres.NewJobRepo(pool)
	matchRepo := postgres.NewMatchRepo(pool)
	interviewRepo := postgres.NewInterviewRepo(pool)
	txRunner := postgres.NewPoolTxRunner(pool)

	tokenStore := services.NewRedisTokenStore(rdb)

	return &Application{
		Config:      cfg,
		DBPool:      pool,
		RedisClient: rdb,
		Validator:   validate,

		AuthService: services.NewAuthService(candidateRepo, employerRepo, tokenStore,
			cfg.JWT.Secret, cfg.JWT.Expiration, cfg.JWT.RefreshExpiration),
		CandidateService:      services.NewCandidateService(candidateRepo, skillRepo, txRunner),
		JobService:            services.NewJobService(jobRepo, skillRepo, matchRepo, txRunner),
		SkillService:          services.NewSkillService(skillRepo, rdb),
		MatchService:          services.NewMatchService(matchRepo, jobRepo, candidateRepo, interviewRepo, txRunner),
		RecommendationService: services.NewRecommendationService(jobRepo, candidateRepo, matchRepo),
	}
}
