package models

import (
	"testing"

	"github.com/gobuffalo/nulls"
	"github.com/stretchr/testify/require"

	"github.com/silinternational/prudence-api/api"
	"github.com/silinternational/prudence-api/domain"
)

func (ms *ModelSuite) TestRiskType_Validate() {
	tests := []struct {
		name     string
		riskType RiskType
		wantErr  bool
	}{
		{
			name:     "missing name",
			riskType: RiskType{},
			wantErr:  true,
		},
		{
			name:     "minimal",
			riskType: RiskType{Name: "Operational"},
			wantErr:  false,
		},
		{
			name: "with description",
			riskType: RiskType{
				Name:        "Financial",
				Description: nulls.NewString("monetary exposure"),
			},
			wantErr: false,
		},
	}
	for _, tt := range tests {
		ms.T().Run(tt.name, func(t *testing.T) {
			err := validateModel(&tt.riskType)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func (ms *ModelSuite) TestRiskTypes_GetAll() {
	CreateRiskTypeFixtures(ms.DB, 3)

	var riskTypes RiskTypes
	ms.NoError(riskTypes.GetAll(ms.DB))
	ms.Len(riskTypes, 3)

	for i := 1; i < len(riskTypes); i++ {
		ms.LessOrEqual(riskTypes[i-1].Name, riskTypes[i].Name, "risk types not sorted by name")
	}
}

func (ms *ModelSuite) TestRiskType_IsActorAllowedTo() {
	users := CreateUserFixturesWithRole(ms.DB, api.UserRoleL1, api.UserRoleL2, api.UserRoleL3)
	riskType := CreateRiskTypeFixtures(ms.DB, 1).RiskTypes[0]

	for _, user := range users {
		ms.True(riskType.IsActorAllowedTo(ms.DB, user, PermissionView, "", nil))
		ms.True(riskType.IsActorAllowedTo(ms.DB, user, PermissionList, "", nil))
		ms.False(riskType.IsActorAllowedTo(ms.DB, user, PermissionCreate, "", nil))
		ms.False(riskType.IsActorAllowedTo(ms.DB, user, PermissionUpdate, "", nil))
		ms.False(riskType.IsActorAllowedTo(ms.DB, user, PermissionDelete, "", nil))
	}
}

func (ms *ModelSuite) TestRiskType_ConvertRiskType() {
	riskType := RiskType{
		ID:          domain.GetUUID(),
		Name:        "Compliance",
		Description: nulls.NewString("regulatory obligations"),
	}

	got := ConvertRiskType(riskType)
	ms.Equal(riskType.ID, got.ID)
	ms.Equal("Compliance", got.Name)
	ms.Equal("regulatory obligations", got.Description)
}
