package actions

import (
	"net/http"
	"testing"

	"github.com/silinternational/prudence-api/api"
	"github.com/silinternational/prudence-api/models"
)

func (as *ActionSuite) Test_authRegister() {
	existing := models.CreateUserFixtures(as.DB, 1).Users[0]

	tests := []struct {
		name       string
		input      api.AuthRegisterInput
		wantStatus int
		wantInBody []string
	}{
		{
			name: "username taken",
			input: api.AuthRegisterInput{
				Username: existing.Username,
				Email:    "new@example.com",
				Password: "correct horse battery staple",
			},
			wantStatus: http.StatusBadRequest,
			wantInBody: []string{string(api.ErrorUsernameTaken)},
		},
		{
			name: "invalid role",
			input: api.AuthRegisterInput{
				Username: "brand_new",
				Email:    "new@example.com",
				Password: "correct horse battery staple",
				Role:     api.UserRole("L9"),
			},
			wantStatus: http.StatusBadRequest,
			wantInBody: []string{string(api.ErrorValidation)},
		},
		{
			name: "good",
			input: api.AuthRegisterInput{
				Username:  "brand_new",
				Email:     "new@example.com",
				FirstName: "Brand",
				LastName:  "New",
				Password:  "correct horse battery staple",
				Role:      api.UserRoleL2,
			},
			wantStatus: http.StatusOK,
			wantInBody: []string{
				`"username":"brand_new"`,
				`"role":"L2"`,
				`"access_token":"`,
				`"permissions":{`,
			},
		},
	}

	for _, tt := range tests {
		as.T().Run(tt.name, func(t *testing.T) {
			res := as.JSON("/auth/register").Post(tt.input)

			body := res.Body.String()
			as.Equal(tt.wantStatus, res.Code, "incorrect status code returned, body: %s", body)
			as.verifyResponseData(tt.wantInBody, body, "Register")
		})
	}
}

func (as *ActionSuite) Test_authLogin() {
	// fixture passwords are the username
	user := models.CreateUserFixtures(as.DB, 1).Users[0]

	inactive := models.CreateUserFixtures(as.DB, 1).Users[0]
	inactive.IsActive = false
	as.NoError(inactive.Save(as.DB))

	tests := []struct {
		name       string
		input      api.AuthLoginInput
		wantStatus int
		wantInBody []string
	}{
		{
			name:       "unknown username",
			input:      api.AuthLoginInput{Username: "nobody", Password: "x"},
			wantStatus: http.StatusUnauthorized,
			wantInBody: []string{string(api.ErrorInvalidCredentials)},
		},
		{
			name:       "wrong password",
			input:      api.AuthLoginInput{Username: user.Username, Password: "wrong"},
			wantStatus: http.StatusUnauthorized,
			wantInBody: []string{string(api.ErrorInvalidCredentials)},
		},
		{
			name:       "deactivated account",
			input:      api.AuthLoginInput{Username: inactive.Username, Password: inactive.Username},
			wantStatus: http.StatusUnauthorized,
			wantInBody: []string{string(api.ErrorUserInactive)},
		},
		{
			name:       "good",
			input:      api.AuthLoginInput{Username: user.Username, Password: user.Username},
			wantStatus: http.StatusOK,
			wantInBody: []string{`"access_token":"`, `"username":"` + user.Username},
		},
	}

	for _, tt := range tests {
		as.T().Run(tt.name, func(t *testing.T) {
			res := as.JSON("/auth/login").Post(tt.input)

			body := res.Body.String()
			as.Equal(tt.wantStatus, res.Code, "incorrect status code returned, body: %s", body)
			as.verifyResponseData(tt.wantInBody, body, "Login")
		})
	}
}

func (as *ActionSuite) Test_authLogout() {
	user := models.CreateUserFixtures(as.DB, 1).Users[0]

	res := as.authRequest("/auth/logout", user).Post(nil)
	as.Equal(http.StatusOK, res.Code, "body: %s", res.Body.String())

	// the token no longer authenticates
	res = as.authRequest("/auth/user", user).Get()
	as.Equal(http.StatusUnauthorized, res.Code)
}

func (as *ActionSuite) Test_authUser() {
	user := models.CreateUserFixtures(as.DB, 1).Users[0]

	res := as.authRequest("/auth/user", user).Get()
	as.Equal(http.StatusOK, res.Code)

	var got authUserResponse
	as.NoError(as.decodeBody(res.Body.Bytes(), &got))
	as.Equal(user.Username, got.Username)
	as.Empty(got.AccessToken, "auth/user must not mint a new token")
	as.True(got.Permissions.CreateRisk, "L1 can create risks")
	as.False(got.Permissions.AssessRisk, "L1 cannot assess risks")
}
