package dto

import (
	"time"

	"github.com/spec-kit/doorknock-service/internal/domain"
)

// CreateLeadRequest payload.
type CreateLeadRequest struct {
	Latitude  float64           `json:"latitude"`
	Longitude float64           `json:"longitude"`
	Address   string            `json:"address"`
	Notes     string            `json:"notes"`
	Status    domain.LeadStatus `json:"status"`
}

// UpdateLeadRequest payload; absent fields stay untouched.
type UpdateLeadRequest struct {
	Status  *domain.LeadStatus `json:"status"`
	Notes   *string            `json:"notes"`
	Address *string            `json:"address"`
}

// LogVisitRequest payload.
type LogVisitRequest struct {
	Status domain.LeadStatus `json:"status"`
}

// ReassignLeadRequest payload.
type ReassignLeadRequest struct {
	NewOwnerID string `json:"new_owner_actor_id"`
}

// LeadResponse representation.
type LeadResponse struct {
	ID          string            `json:"id"`
	ExternalKey string            `json:"external_key"`
	OwnerID     string            `json:"owner_actor_id"`
	Status      domain.LeadStatus `json:"status"`
	Latitude    float64           `json:"latitude"`
	Longitude   float64           `json:"longitude"`
	Address     string            `json:"address,omitempty"`
	Notes       string            `json:"notes,omitempty"`
	VisitedAt   *time.Time        `json:"visited_at"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}
