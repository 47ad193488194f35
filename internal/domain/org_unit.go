package domain

import "time"

// OrgUnitLevel tags a node in the region > area > team containment tree.
type OrgUnitLevel string

const (
	OrgUnitLevelRegion OrgUnitLevel = "REGION"
	OrgUnitLevelArea   OrgUnitLevel = "AREA"
	OrgUnitLevelTeam   OrgUnitLevel = "TEAM"
)

// OrgUnit is one node in the organizational containment tree.
type OrgUnit struct {
	ID        string
	Name      string
	Level     OrgUnitLevel
	ParentID  *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ParentLevelAllowed reports whether a unit of level child may nest under a
// unit of level parent. Teams nest under areas or regions, areas under
// regions only, and regions are always roots.
func ParentLevelAllowed(child, parent OrgUnitLevel) bool {
	switch child {
	case OrgUnitLevelTeam:
		return parent == OrgUnitLevelArea || parent == OrgUnitLevelRegion
	case OrgUnitLevelArea:
		return parent == OrgUnitLevelRegion
	default:
		return false
	}
}
