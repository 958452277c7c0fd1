package dto

import (
	"time"

	"github.com/google/uuid"
)

// --- Skill Request DTOs ---

// CreateSkillRequest defines the structure for adding a catalog entry.
type CreateSkillRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Category string `json:"category" validate:"omitempty,max=100"`
}

// ListSkillsRequest defines parameters for browsing or searching the catalog.
type ListSkillsRequest struct {
	Search   *string `form:"search" validate:"omitempty,max=100"`
	Category *string `form:"category" validate:"omitempty,max=100"`
	Limit    int     `form:"limit,default=50" validate:"gte=1,lte=200"`
	Offset   int     `form:"offset,default=0" validate:"gte=0"`
}

// ListInDemandSkillsRequest defines parameters for the in-demand ranking.
type ListInDemandSkillsRequest struct {
	Limit int `form:"limit,default=10" validate:"gte=1,lte=50"`
}

// --- Skill Response DTOs ---

// SkillResponse defines the catalog entry data returned to the client.
type SkillResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

// InDemandSkillResponse is one entry of the in-demand ranking: a catalog
// entry plus its priority-weighted demand across open postings.
type InDemandSkillResponse struct {
	Skill  SkillResponse `json:"skill"`
	Demand float64       `json:"demand"`
}
