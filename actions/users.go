package actions

import (
	"errors"

	"github.com/gobuffalo/buffalo"

	"github.com/silinternational/prudence-api/api"
	"github.com/silinternational/prudence-api/domain"
	"github.com/silinternational/prudence-api/models"
)

// swagger:operation GET /users Users UsersList
//
// UsersList
//
// list all users, e.g. for assessor and owner pickers
//
// ---
// responses:
//   '200':
//     description: a list of Users
//     schema:
//       "$ref": "#/definitions/UsersResponse"
func usersList(c buffalo.Context) error {
	query := api.NewQueryParams(c.Params())

	var users models.Users
	totalEntries, totalPages, err := users.List(models.Tx(c), query)
	if err != nil {
		return reportError(c, err)
	}

	return renderOk(c, api.UsersResponse{
		ListQuery: api.NewListQuery(c.Request().URL.Path, query, totalEntries, totalPages),
		Results:   models.ConvertUsers(users),
	})
}

// swagger:operation GET /users/me Users UsersMe
//
// UsersMe
//
// the current user's own record
//
// ---
// responses:
//   '200':
//     description: a User
//     schema:
//       "$ref": "#/definitions/User"
func usersMe(c buffalo.Context) error {
	return renderOk(c, models.ConvertUser(models.CurrentUser(c)))
}

// swagger:operation GET /users/{id} Users UsersView
//
// UsersView
//
// view a specific user
//
// ---
// parameters:
// - name: id
//   in: path
//   required: true
//   description: user ID
// responses:
//   '200':
//     description: a User
//     schema:
//       "$ref": "#/definitions/User"
func usersView(c buffalo.Context) error {
	user, ok := c.Value(domain.TypeUser).(*models.User)
	if !ok {
		err := errors.New("user not found in context")
		return reportError(c, api.NewAppError(err, api.ErrorResourceNotFound, api.CategoryInternal))
	}
	return renderOk(c, models.ConvertUser(*user))
}
