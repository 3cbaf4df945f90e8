package models

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/gobuffalo/nulls"
	"github.com/gobuffalo/pop/v6"
	"github.com/gobuffalo/validate/v3"
	"github.com/gofrs/uuid"

	"github.com/silinternational/prudence-api/api"
	"github.com/silinternational/prudence-api/domain"
)

const tokenBytes = 32

// UserAccessToken maps the user_access_tokens table. Only a sha256 hash of
// the bearer token is stored; the plaintext is returned to the client once
// at login.
type UserAccessToken struct {
	ID          uuid.UUID  `db:"id"`
	UserID      uuid.UUID  `db:"user_id" validate:"required"`
	AccessToken string     `db:"-"`
	TokenHash   string     `db:"access_token" validate:"required"`
	ExpiresAt   time.Time  `db:"expires_at" validate:"required"`
	LastUsedAt  nulls.Time `db:"last_used_at"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`

	User *User `belongs_to:"users"`
}

type UserAccessTokens []UserAccessToken

// Validate gets run every time you call a "pop.Validate*" method.
func (u *UserAccessToken) Validate(tx *pop.Connection) (*validate.Errors, error) {
	return validateModel(u), nil
}

// Create stores the UserAccessToken as a new record in the database.
func (u *UserAccessToken) Create(tx *pop.Connection) error {
	return create(tx, u)
}

func (u *UserAccessToken) Destroy(tx *pop.Connection) error {
	return tx.Destroy(u)
}

// FindByBearerToken uses a sha256.Sum256 of the accessToken to find the corresponding UserAccessToken.
// Returns an api.AppError.
func (u *UserAccessToken) FindByBearerToken(tx *pop.Connection, token string) *api.AppError {
	if err := tx.Eager().Where("access_token = ?", HashAccessToken(token)).First(u); err != nil {
		if domain.IsOtherThanNoRows(err) {
			return api.NewAppError(err, api.ErrorFindingAccessToken, api.CategoryDatabase)
		}

		l := len(token)
		if l > 5 {
			l = 5
		}
		appErr := api.NewAppError(err, api.ErrorFindingAccessToken, api.CategoryUser)
		appErr.Message = fmt.Sprintf("failed to find access token '%s...'", token[0:l])
		return appErr
	}

	return nil
}

// DeleteByBearerToken removes the UserAccessToken matching the given plaintext token
func (u *UserAccessToken) DeleteByBearerToken(tx *pop.Connection, token string) error {
	if appErr := u.FindByBearerToken(tx, token); appErr != nil {
		return appErr
	}
	if err := u.Destroy(tx); err != nil {
		return api.NewAppError(err, api.ErrorDeletingAccessToken, api.CategoryInternal)
	}

	return nil
}

// DeleteIfExpired checks the token expiration and returns `true` if expired. Also deletes
// the token from the database if it is expired.
func (u *UserAccessToken) DeleteIfExpired(tx *pop.Connection) (bool, error) {
	if u.ExpiresAt.Before(time.Now()) {
		err := u.Destroy(tx)
		if err != nil {
			return true, fmt.Errorf("unable to delete expired userAccessToken, id: %v", u.ID)
		}
		return true, nil
	}
	return false, nil
}

// GetUser loads the user the token belongs to
func (u *UserAccessToken) GetUser(tx *pop.Connection) (User, error) {
	if err := tx.Load(u, "User"); err != nil {
		return User{}, err
	}
	if u.User == nil {
		return User{}, fmt.Errorf("no user found for access token %s", u.ID)
	}
	return *u.User, nil
}

// Bump extends the token expiration and records its last use
func (u *UserAccessToken) Bump(tx *pop.Connection) error {
	u.LastUsedAt = nulls.NewTime(time.Now().UTC())
	u.ExpiresAt = time.Now().UTC().Add(time.Second * time.Duration(domain.Env.AccessTokenLifetimeSeconds))
	return update(tx, u)
}

// getRandomToken generates an url-safe random token string
func getRandomToken() (string, error) {
	rb := make([]byte, tokenBytes)

	_, err := rand.Read(rb)
	if err != nil {
		return "", err
	}

	return base64.URLEncoding.EncodeToString(rb), nil
}
