package domain

import (
	"strings"
	"time"
)

// Role enumerates the three actor tiers.
type Role string

const (
	RoleOwner   Role = "OWNER"
	RoleManager Role = "MANAGER"
	RoleRep     Role = "REP"
)

// legacyRoleAdmin is the mid tier's name in records written by an older
// generation of the system. It is normalized away at the storage boundary.
const legacyRoleAdmin = "ADMIN"

// NormalizeRole maps a stored role string to its canonical variant.
// Returns false for values that match no known tier.
func NormalizeRole(raw string) (Role, bool) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case string(RoleOwner):
		return RoleOwner, true
	case string(RoleManager), legacyRoleAdmin:
		return RoleManager, true
	case string(RoleRep):
		return RoleRep, true
	default:
		return "", false
	}
}

// Actor models a person operating the system: the company owner, a
// mid-level manager, or a field rep.
type Actor struct {
	ID           string
	Name         string
	Phone        string
	Email        string
	PasswordHash string
	Role         Role
	ManagerID    *string
	OrgUnitID    *string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ReportsTo reports whether the actor is a rep supervised by managerID.
func (a *Actor) ReportsTo(managerID string) bool {
	return a.Role == RoleRep && a.ManagerID != nil && *a.ManagerID == managerID
}
