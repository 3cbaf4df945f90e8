package actions

import (
	"testing"

	"github.com/gofrs/uuid"

	"github.com/silinternational/prudence-api/domain"
)

func (as *ActionSuite) Test_getResourceIDSubresource() {
	id := domain.GetUUID()

	tests := []struct {
		name           string
		path           string
		wantResource   string
		wantID         uuid.UUID
		wantSub        string
		wantPartsCount int
	}{
		{
			name:           "empty",
			path:           "",
			wantPartsCount: 0,
		},
		{
			name:           "collection",
			path:           "/risks",
			wantResource:   "risks",
			wantPartsCount: 1,
		},
		{
			name:           "collection with trailing slash",
			path:           "/risks/",
			wantResource:   "risks",
			wantPartsCount: 1,
		},
		{
			name:           "resource by id",
			path:           "/risks/" + id.String(),
			wantResource:   "risks",
			wantID:         id,
			wantPartsCount: 2,
		},
		{
			name:           "alias path",
			path:           "/risks/matrix",
			wantResource:   "risks",
			wantSub:        "matrix",
			wantPartsCount: 2,
		},
		{
			name:           "subresource",
			path:           "/risks/" + id.String() + "/controls",
			wantResource:   "risks",
			wantID:         id,
			wantSub:        "controls",
			wantPartsCount: 3,
		},
	}

	for _, tt := range tests {
		as.T().Run(tt.name, func(t *testing.T) {
			resource, rID, sub, partsCount := getResourceIDSubresource(tt.path)
			as.Equal(tt.wantResource, resource)
			as.Equal(tt.wantID, rID)
			as.Equal(tt.wantSub, sub)
			as.Equal(tt.wantPartsCount, partsCount)
		})
	}
}

func (as *ActionSuite) Test_isAliasPath() {
	as.True(isAliasPath(domain.TypeRisk, "mine"))
	as.True(isAliasPath(domain.TypeRisk, "matrix"))
	as.True(isAliasPath(domain.TypeUser, "me"))
	as.False(isAliasPath(domain.TypeRisk, "me"))
	as.False(isAliasPath(domain.TypeRiskAssessment, "mine"))
}
