package dto

import (
	"time"

	"github.com/spec-kit/doorknock-service/internal/domain"
)

// CreateOrgUnitRequest payload.
type CreateOrgUnitRequest struct {
	Name     string              `json:"name"`
	Level    domain.OrgUnitLevel `json:"level"`
	ParentID *string             `json:"parent_unit_id"`
}

// UpdateOrgUnitRequest payload; an empty-string parent detaches a region
// to a root.
type UpdateOrgUnitRequest struct {
	Name     *string `json:"name"`
	ParentID *string `json:"parent_unit_id"`
}

// OrgUnitResponse representation.
type OrgUnitResponse struct {
	ID        string              `json:"id"`
	Name      string              `json:"name"`
	Level     domain.OrgUnitLevel `json:"level"`
	ParentID  *string             `json:"parent_unit_id"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}
