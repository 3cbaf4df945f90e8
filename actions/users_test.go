package actions

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/silinternational/prudence-api/api"
	"github.com/silinternational/prudence-api/models"
)

func (as *ActionSuite) Test_usersMe() {
	users := models.CreateUserFixtures(as.DB, 2).Users
	user := users[0]

	tests := []struct {
		name       string
		token      string
		wantStatus int
		wantInBody []string
	}{
		{
			name:       "unauthenticated",
			token:      "doesnt-exist",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "good",
			token:      user.Email,
			wantStatus: http.StatusOK,
			wantInBody: []string{
				`"id":"` + user.ID.String(),
				`"username":"` + user.Username,
				`"first_name":"` + user.FirstName,
				`"role":"L1"`,
			},
		},
	}

	for _, tt := range tests {
		as.T().Run(tt.name, func(t *testing.T) {
			req := as.JSON("/users/me")
			req.Headers["Authorization"] = fmt.Sprintf("Bearer %s", tt.token)

			res := req.Get()
			body := res.Body.String()
			as.Equal(tt.wantStatus, res.Code, "incorrect status code returned, body: %s", body)
			as.verifyResponseData(tt.wantInBody, body, "UsersMe")
		})
	}
}

func (as *ActionSuite) Test_usersList() {
	users := models.CreateUserFixtures(as.DB, 3).Users

	res := as.authRequest("/users", users[0]).Get()
	as.Equal(http.StatusOK, res.Code)

	var got api.UsersResponse
	as.NoError(as.decodeBody(res.Body.Bytes(), &got))
	as.Equal(3, got.Count)

	// password material never leaves the server
	as.NotContains(res.Body.String(), "password")

	// pagination envelope
	res = as.authRequest("/users?page=1&page_size=2", users[0]).Get()
	as.Equal(http.StatusOK, res.Code)

	got = api.UsersResponse{}
	as.NoError(as.decodeBody(res.Body.Bytes(), &got))
	as.Equal(3, got.Count)
	as.Len(got.Results, 2)
	as.NotNil(got.Next, "expected a next page URL")
}

func (as *ActionSuite) Test_usersView() {
	users := models.CreateUserFixtures(as.DB, 2).Users

	res := as.authRequest(fmt.Sprintf("/users/%s", users[1].ID), users[0]).Get()
	as.Equal(http.StatusOK, res.Code)

	var got api.User
	as.NoError(as.decodeBody(res.Body.Bytes(), &got))
	as.Equal(users[1].ID, got.ID)
}
