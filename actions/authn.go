package actions

import (
	"errors"
	"fmt"

	"github.com/gobuffalo/buffalo"

	"github.com/silinternational/prudence-api/api"
	"github.com/silinternational/prudence-api/domain"
	"github.com/silinternational/prudence-api/models"
)

// AuthN authenticates the request by its bearer token and puts the current
// user into the context
func AuthN(next buffalo.Handler) buffalo.Handler {
	return func(c buffalo.Context) error {
		bearerToken := domain.GetBearerTokenFromRequest(c.Request())
		if bearerToken == "" {
			err := errors.New("no bearer token provided")
			return reportError(c, api.NewAppError(err, api.ErrorNotAuthorized, api.CategoryUnauthorized))
		}

		var userAccessToken models.UserAccessToken
		tx := models.Tx(c)
		if appErr := userAccessToken.FindByBearerToken(tx, bearerToken); appErr != nil {
			if appErr.Category == api.CategoryDatabase {
				return reportError(c, appErr)
			}
			err := errors.New("invalid bearer token")
			return reportError(c, api.NewAppError(err, api.ErrorNotAuthorized, api.CategoryUnauthorized))
		}

		isExpired, err := userAccessToken.DeleteIfExpired(tx)
		if err != nil {
			return reportError(c, err)
		}

		if isExpired {
			err = errors.New("expired bearer token")
			return reportError(c, api.NewAppError(err, api.ErrorNotAuthorized, api.CategoryUnauthorized))
		}

		user, err := userAccessToken.GetUser(tx)
		if err != nil {
			err = fmt.Errorf("error finding user by access token, %s", err.Error())
			return reportError(c, err)
		}

		if !user.IsActive {
			err = errors.New("user account is deactivated")
			return reportError(c, api.NewAppError(err, api.ErrorUserInactive, api.CategoryUnauthorized))
		}

		if err := userAccessToken.Bump(tx); err != nil {
			return reportError(c, err)
		}

		c.Set(domain.ContextKeyCurrentUser, user)

		newExtra(c, "user_id", user.ID)
		newExtra(c, "username", user.Username)
		newExtra(c, "ip", c.Request().RemoteAddr)

		return next(c)
	}
}
