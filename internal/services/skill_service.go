package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"job-match-api/internal/models"
	"job-match-api/internal/storage"
	"job-match-api/internal/transport/dto"

	"github.com/redis/go-redis/v9"
)

const (
	inDemandCacheKey = "skills:in-demand"
	inDemandCacheTTL = 5 * time.Minute
)

type skillService struct {
	skillRepo storage.SkillRepository
	rdb       *redis.Client
}

// NewSkillService creates a new instance of SkillService. rdb may be nil, in
// which case the in-demand ranking is computed on every request.
func NewSkillService(skillRepo storage.SkillRepository, rdb *redis.Client) SkillService {
	return &skillService{
		skillRepo: skillRepo,
		rdb:       rdb,
	}
}

func (s *skillService) CreateSkill(ctx context.Context, req *dto.CreateSkillRequest) (*models.Skill, error) {
	req.Name = sanitizeText(req.Name)
	req.Category = sanitizeText(req.Category)
	if req.Name == "" {
		return nil, fmt.Errorf("%w: skill name is empty after sanitization", ErrValidation)
	}

	created, err := s.skillRepo.Create(ctx, req)
	if err != nil {
		return nil, mapRepoError(err, "creating skill")
	}
	return created, nil
}

func (s *skillService) ListSkills(ctx context.Context, req *dto.ListSkillsRequest) ([]models.Skill, error) {
	skills, err := s.skillRepo.List(ctx, req)
	if err != nil {
		return nil, mapRepoError(err, "listing skills")
	}
	return skills, nil
}

// ListInDemand ranks catalog entries by priority-weighted demand across all
// postings. The aggregate is cached briefly; the ranking tolerates being a
// few minutes stale.
func (s *skillService) ListInDemand(ctx context.Context, req *dto.ListInDemandSkillsRequest) ([]dto.InDemandSkillResponse, error) {
	cacheKey := fmt.Sprintf("%s:%d", inDemandCacheKey, req.Limit)

	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, cacheKey).Bytes()
		if err == nil {
			var ranked []dto.InDemandSkillResponse
			if jsonErr := json.Unmarshal(cached, &ranked); jsonErr == nil {
				return ranked, nil
			}
			// Corrupt cache entry; fall through and recompute.
			log.Printf("SkillService: Dropping unreadable in-demand cache entry %s", cacheKey)
		} else if !errors.Is(err, redis.Nil) {
			log.Printf("SkillService: Error reading in-demand cache: %v", err)
		}
	}

	demand, err := s.skillRepo.AggregateDemand(ctx, req.Limit)
	if err != nil {
		return nil, mapRepoError(err, "aggregating skill demand")
	}

	ranked := make([]dto.InDemandSkillResponse, 0, len(demand))
	for _, d := range demand {
		ranked = append(ranked, dto.InDemandSkillResponse{
			Skill: dto.SkillResponse{
				ID:        d.Skill.ID,
				Name:      d.Skill.Name,
				Category:  d.Skill.Category,
				CreatedAt: d.Skill.CreatedAt,
			},
			Demand: d.Demand,
		})
	}

	if s.rdb != nil {
		if payload, jsonErr := json.Marshal(ranked); jsonErr == nil {
			if err := s.rdb.Set(ctx, cacheKey, payload, inDemandCacheTTL).Err(); err != nil {
				log.Printf("SkillService: Error writing in-demand cache: %v", err)
			}
		}
	}

	return ranked, nil
}
