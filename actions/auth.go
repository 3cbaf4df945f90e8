package actions

import (
	"errors"
	"fmt"

	"github.com/gobuffalo/buffalo"

	"github.com/silinternational/prudence-api/api"
	"github.com/silinternational/prudence-api/domain"
	"github.com/silinternational/prudence-api/models"
)

// authUserResponse carries the authenticated user plus the role permission
// table the UI uses to gate its affordances
type authUserResponse struct {
	api.AuthUser
	Permissions models.RolePermissions `json:"permissions"`
}

// authRegister creates a new user account and signs it in
func authRegister(c buffalo.Context) error {
	var input api.AuthRegisterInput
	if err := StrictBind(c, &input); err != nil {
		return reportError(c, err)
	}

	tx := models.Tx(c)

	var existing models.User
	if err := existing.FindByUsername(tx, input.Username); err == nil {
		err = fmt.Errorf("username %s is already in use", input.Username)
		return reportError(c, api.NewAppError(err, api.ErrorUsernameTaken, api.CategoryUser))
	}

	user := models.User{
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Role:      input.Role,
	}
	if err := user.SetPassword(input.Password); err != nil {
		return reportError(c, err)
	}

	if err := user.Create(tx); err != nil {
		return reportError(c, err)
	}

	return signedInResponse(c, user)
}

// authLogin verifies a username and password and issues a bearer token
func authLogin(c buffalo.Context) error {
	var input api.AuthLoginInput
	if err := StrictBind(c, &input); err != nil {
		return reportError(c, err)
	}

	tx := models.Tx(c)

	var user models.User
	if err := user.FindByUsername(tx, input.Username); err != nil {
		if domain.IsOtherThanNoRows(err) {
			return reportError(c, err)
		}
		return reportError(c, invalidCredentials())
	}

	if !user.VerifyPassword(input.Password) {
		return reportError(c, invalidCredentials())
	}

	if !user.IsActive {
		err := errors.New("user account is deactivated")
		return reportError(c, api.NewAppError(err, api.ErrorUserInactive, api.CategoryUnauthorized))
	}

	return signedInResponse(c, user)
}

// authLogout destroys the presented bearer token
func authLogout(c buffalo.Context) error {
	bearerToken := domain.GetBearerTokenFromRequest(c.Request())
	if bearerToken == "" {
		err := errors.New("no bearer token provided")
		return reportError(c, api.NewAppError(err, api.ErrorNotAuthorized, api.CategoryUnauthorized))
	}

	var uat models.UserAccessToken
	if err := uat.DeleteByBearerToken(models.Tx(c), bearerToken); err != nil {
		return reportErrorAndClearSession(c, err)
	}

	c.Session().Clear()
	return renderOk(c, map[string]string{"message": "signed out"})
}

// authUser returns the authenticated user and their permission table
func authUser(c buffalo.Context) error {
	user := models.CurrentUser(c)
	return renderOk(c, authUserResponse{
		AuthUser:    api.AuthUser{User: models.ConvertUser(user)},
		Permissions: models.PermissionsForRole(user.Role),
	})
}

func signedInResponse(c buffalo.Context, user models.User) error {
	uat, err := user.CreateAccessToken(models.Tx(c))
	if err != nil {
		return reportError(c, err)
	}

	return renderOk(c, authUserResponse{
		AuthUser: api.AuthUser{
			User:                 models.ConvertUser(user),
			AccessToken:          uat.AccessToken,
			AccessTokenExpiresAt: uat.ExpiresAt.Unix(),
		},
		Permissions: models.PermissionsForRole(user.Role),
	})
}

func invalidCredentials() *api.AppError {
	err := errors.New("invalid username or password")
	return api.NewAppError(err, api.ErrorInvalidCredentials, api.CategoryUnauthorized)
}
