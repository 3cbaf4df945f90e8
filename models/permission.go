package models

import (
	"github.com/gofrs/uuid"

	"github.com/silinternational/prudence-api/api"
)

// Role permission policy. This is the single place where role capabilities
// are defined; the per-model IsActorAllowedTo methods and the permissions
// block returned to the UI both consult these functions.
//
// The copy of this table held by a browser client is advisory only, it hides
// UI affordances and is not a security boundary. The AuthZ middleware
// re-checks these functions on every request, which is where enforcement
// actually happens.

// RolePermissions is the role-only permission table, served to the UI so it
// can gate its affordances without duplicating the policy
type RolePermissions struct {
	CreateRisk    bool `json:"create_risk"`
	EditRisk      bool `json:"edit_risk"` // own records only, for L1
	DeleteRisk    bool `json:"delete_risk"`
	AssessRisk    bool `json:"assess_risk"`
	CreateControl bool `json:"create_control"`
	EditControl   bool `json:"edit_control"` // own records only, for L1
	DeleteControl bool `json:"delete_control"`
	ViewAll       bool `json:"view_all"`
}

// PermissionsForRole returns the role-only permission table for a role
func PermissionsForRole(role api.UserRole) RolePermissions {
	return RolePermissions{
		CreateRisk:    CanCreateRisk(role),
		EditRisk:      role == api.UserRoleL1 || role == api.UserRoleL2,
		DeleteRisk:    CanDeleteRisk(role),
		AssessRisk:    CanAssessRisk(role),
		CreateControl: CanCreateControl(role),
		EditControl:   role == api.UserRoleL1 || role == api.UserRoleL2,
		DeleteControl: role == api.UserRoleL1 || role == api.UserRoleL2,
		ViewAll:       CanViewAll(role),
	}
}

// CanCreateRisk - L1 and L2 may record new risks
func CanCreateRisk(role api.UserRole) bool {
	return role == api.UserRoleL1 || role == api.UserRoleL2
}

// CanEditRisk - L2 may edit any risk, L1 only its own
func CanEditRisk(role api.UserRole, ownerID, actorID uuid.UUID) bool {
	if role == api.UserRoleL2 {
		return true
	}
	return role == api.UserRoleL1 && ownerID == actorID
}

// CanDeleteRisk - L2 only
func CanDeleteRisk(role api.UserRole) bool {
	return role == api.UserRoleL2
}

// CanAssessRisk - L2 only
func CanAssessRisk(role api.UserRole) bool {
	return role == api.UserRoleL2
}

// CanCreateControl - L2 only
func CanCreateControl(role api.UserRole) bool {
	return role == api.UserRoleL2
}

// CanEditControl - L2 may edit any control, L1 only its own
func CanEditControl(role api.UserRole, ownerID, actorID uuid.UUID) bool {
	if role == api.UserRoleL2 {
		return true
	}
	return role == api.UserRoleL1 && ownerID == actorID
}

// CanDeleteControl - L2 may delete any control, L1 only its own
func CanDeleteControl(role api.UserRole, ownerID, actorID uuid.UUID) bool {
	if role == api.UserRoleL2 {
		return true
	}
	return role == api.UserRoleL1 && ownerID == actorID
}

// CanViewAll - L2 and L3 see all records, including Pending submissions
func CanViewAll(role api.UserRole) bool {
	return role == api.UserRoleL2 || role == api.UserRoleL3
}
