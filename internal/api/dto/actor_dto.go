package dto

import (
	"time"

	"github.com/spec-kit/doorknock-service/internal/domain"
)

// CreateActorRequest payload.
type CreateActorRequest struct {
	Name      string      `json:"name"`
	Phone     string      `json:"phone"`
	Email     string      `json:"email"`
	Password  string      `json:"password"`
	Role      domain.Role `json:"role"`
	ManagerID *string     `json:"manager_actor_id"`
	OrgUnitID *string     `json:"org_unit_id"`
}

// UpdateActorRequest payload; absent fields stay untouched.
type UpdateActorRequest struct {
	Name      *string      `json:"name"`
	Phone     *string      `json:"phone"`
	Email     *string      `json:"email"`
	Password  *string      `json:"password"`
	Role      *domain.Role `json:"role"`
	ManagerID *string      `json:"manager_actor_id"`
	OrgUnitID *string      `json:"org_unit_id"`
	Active    *bool        `json:"active"`
}

// ActorResponse representation. Password hashes never leave the server.
type ActorResponse struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Phone     string      `json:"phone"`
	Email     string      `json:"email,omitempty"`
	Role      domain.Role `json:"role"`
	ManagerID *string     `json:"manager_actor_id"`
	OrgUnitID *string     `json:"org_unit_id"`
	Active    bool        `json:"active"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}
