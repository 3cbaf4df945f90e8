package actions

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/silinternational/prudence-api/api"
	"github.com/silinternational/prudence-api/models"
)

func (as *ActionSuite) Test_controlsList() {
	users := models.CreateUserFixtures(as.DB, 2).Users
	models.CreateControlFixtures(as.DB, 3, users[0].ID)
	models.CreateControlFixtures(as.DB, 1, users[1].ID)

	res := as.authRequest("/controls", users[0]).Get()
	as.Equal(http.StatusOK, res.Code)

	var got api.ControlsResponse
	as.NoError(as.decodeBody(res.Body.Bytes(), &got))
	as.Equal(4, got.Count)

	res = as.authRequest("/controls?owner="+users[1].ID.String(), users[0]).Get()
	as.Equal(http.StatusOK, res.Code)
	as.NoError(as.decodeBody(res.Body.Bytes(), &got))
	as.Equal(1, got.Count)
}

func (as *ActionSuite) Test_controlsCreate() {
	users := models.CreateUserFixturesWithRole(as.DB, api.UserRoleL1, api.UserRoleL2)
	reporter, approver := users[0], users[1]

	input := api.ControlCreateInput{
		Name:          "offsite backups",
		Description:   "nightly encrypted backups",
		Effectiveness: api.ControlFullyEffective,
	}

	tests := []struct {
		name       string
		actor      models.User
		input      api.ControlCreateInput
		wantStatus int
		wantInBody []string
	}{
		{
			name:       "reporter may not create controls",
			actor:      reporter,
			input:      input,
			wantStatus: http.StatusNotFound,
			wantInBody: []string{string(api.ErrorNotAuthorized)},
		},
		{
			name:  "effectiveness off the scale",
			actor: approver,
			input: api.ControlCreateInput{
				Name:          "offsite backups",
				Effectiveness: api.ControlEffectiveness(0.75),
			},
			wantStatus: http.StatusBadRequest,
			wantInBody: []string{string(api.ErrorControlEffectiveness)},
		},
		{
			name:       "approver creates",
			actor:      approver,
			input:      input,
			wantStatus: http.StatusOK,
			wantInBody: []string{
				`"name":"offsite backups"`,
				`"effectiveness":1`,
				`"effectiveness_display":"Fully Effective"`,
			},
		},
	}

	for _, tt := range tests {
		as.T().Run(tt.name, func(t *testing.T) {
			res := as.authRequest("/controls", tt.actor).Post(tt.input)

			body := res.Body.String()
			as.Equal(tt.wantStatus, res.Code, "incorrect status code returned, body: %s", body)
			as.verifyResponseData(tt.wantInBody, body, "ControlsCreate")
		})
	}
}

func (as *ActionSuite) Test_controlsUpdateDelete() {
	users := models.CreateUserFixtures(as.DB, 2).Users
	owner, other := users[0], users[1]
	controls := models.CreateControlFixtures(as.DB, 2, owner.ID).Controls

	update := map[string]interface{}{"description": "amended"}

	// own-only for L1
	res := as.authRequest(fmt.Sprintf("/controls/%s", controls[0].ID), other).Patch(update)
	as.Equal(http.StatusNotFound, res.Code)

	res = as.authRequest(fmt.Sprintf("/controls/%s", controls[0].ID), owner).Patch(update)
	as.Equal(http.StatusOK, res.Code, "body: %s", res.Body.String())
	as.Contains(res.Body.String(), `"description":"amended"`)

	// L1 may delete its own control, not someone else's
	res = as.authRequest(fmt.Sprintf("/controls/%s", controls[1].ID), other).Delete()
	as.Equal(http.StatusNotFound, res.Code)

	res = as.authRequest(fmt.Sprintf("/controls/%s", controls[1].ID), owner).Delete()
	as.Equal(http.StatusNoContent, res.Code)
}

func (as *ActionSuite) Test_controlsMine() {
	users := models.CreateUserFixtures(as.DB, 2).Users
	models.CreateControlFixtures(as.DB, 2, users[0].ID)
	models.CreateControlFixtures(as.DB, 1, users[1].ID)

	res := as.authRequest("/controls/mine", users[0]).Get()
	as.Equal(http.StatusOK, res.Code, "body: %s", res.Body.String())

	var got api.Controls
	as.NoError(as.decodeBody(res.Body.Bytes(), &got))
	as.Len(got, 2)
}
