package models

import (
	"testing"

	"github.com/silinternational/prudence-api/api"
	"github.com/silinternational/prudence-api/domain"
)

func (ms *ModelSuite) Test_RolePermissionTable() {
	tests := []struct {
		role             api.UserRole
		canCreateRisk    bool
		canDeleteRisk    bool
		canAssessRisk    bool
		canCreateControl bool
		canViewAll       bool
	}{
		{role: api.UserRoleL1, canCreateRisk: true},
		{
			role:             api.UserRoleL2,
			canCreateRisk:    true,
			canDeleteRisk:    true,
			canAssessRisk:    true,
			canCreateControl: true,
			canViewAll:       true,
		},
		{role: api.UserRoleL3, canViewAll: true},
	}
	for _, tt := range tests {
		ms.T().Run(string(tt.role), func(t *testing.T) {
			ms.Equal(tt.canCreateRisk, CanCreateRisk(tt.role), "CanCreateRisk")
			ms.Equal(tt.canDeleteRisk, CanDeleteRisk(tt.role), "CanDeleteRisk")
			ms.Equal(tt.canAssessRisk, CanAssessRisk(tt.role), "CanAssessRisk")
			ms.Equal(tt.canCreateControl, CanCreateControl(tt.role), "CanCreateControl")
			ms.Equal(tt.canViewAll, CanViewAll(tt.role), "CanViewAll")
		})
	}
}

func (ms *ModelSuite) Test_OwnershipQualifiedPermissions() {
	ownerID := domain.GetUUID()
	otherID := domain.GetUUID()

	// L1 may edit only what it owns
	ms.True(CanEditRisk(api.UserRoleL1, ownerID, ownerID))
	ms.False(CanEditRisk(api.UserRoleL1, ownerID, otherID))
	ms.True(CanEditControl(api.UserRoleL1, ownerID, ownerID))
	ms.False(CanEditControl(api.UserRoleL1, ownerID, otherID))
	ms.True(CanDeleteControl(api.UserRoleL1, ownerID, ownerID))
	ms.False(CanDeleteControl(api.UserRoleL1, ownerID, otherID))

	// L2 is unrestricted by ownership
	ms.True(CanEditRisk(api.UserRoleL2, ownerID, otherID))
	ms.True(CanEditControl(api.UserRoleL2, ownerID, otherID))
	ms.True(CanDeleteControl(api.UserRoleL2, ownerID, otherID))

	// L3 owns nothing it can touch
	ms.False(CanEditRisk(api.UserRoleL3, ownerID, ownerID))
	ms.False(CanEditControl(api.UserRoleL3, ownerID, ownerID))
	ms.False(CanDeleteControl(api.UserRoleL3, ownerID, ownerID))
}

func (ms *ModelSuite) Test_PermissionsForRole() {
	l1 := PermissionsForRole(api.UserRoleL1)
	ms.True(l1.CreateRisk)
	ms.True(l1.EditRisk)
	ms.False(l1.DeleteRisk)
	ms.False(l1.AssessRisk)
	ms.False(l1.ViewAll)

	l2 := PermissionsForRole(api.UserRoleL2)
	ms.True(l2.DeleteRisk)
	ms.True(l2.CreateControl)
	ms.True(l2.ViewAll)

	l3 := PermissionsForRole(api.UserRoleL3)
	ms.False(l3.CreateRisk)
	ms.False(l3.EditControl)
	ms.True(l3.ViewAll)
}
