package dto

import (
	"time"

	"github.com/spec-kit/doorknock-service/internal/domain"
)

// CreateTerritoryRequest payload.
type CreateTerritoryRequest struct {
	Name        string              `json:"name"`
	Points      []domain.Coordinate `json:"points"`
	AssignedRep string              `json:"assigned_rep"`
	Color       string              `json:"color"`
}

// UpdateTerritoryRequest payload; a non-nil points slice replaces the
// boundary wholesale.
type UpdateTerritoryRequest struct {
	Name        *string             `json:"name"`
	Points      []domain.Coordinate `json:"points"`
	AssignedRep *string             `json:"assigned_rep"`
	Color       *string             `json:"color"`
}

// AssignPointRequest payload.
type AssignPointRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// TerritoryResponse representation.
type TerritoryResponse struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Points      []domain.Coordinate `json:"points"`
	AssignedRep string              `json:"assigned_rep,omitempty"`
	Color       string              `json:"color,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// AssignPointResponse wraps the matched territory; null when no territory
// contains the point.
type AssignPointResponse struct {
	Territory *TerritoryResponse `json:"territory"`
}
