package models

import (
	"crypto/sha256"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gobuffalo/events"
	"github.com/gobuffalo/pop/v6"
	"github.com/gobuffalo/validate/v3"
	"github.com/gofrs/uuid"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/silinternational/prudence-api/api"
	"github.com/silinternational/prudence-api/domain"
)

var ValidUserRoles = map[api.UserRole]struct{}{
	api.UserRoleL1: {},
	api.UserRoleL2: {},
	api.UserRoleL3: {},
}

// Users is a slice of User objects
type Users []User

// User model
type User struct {
	ID           uuid.UUID    `db:"id"`
	Username     string       `db:"username" validate:"required"`
	Email        string       `db:"email" validate:"required,email"`
	PasswordHash string       `db:"password_hash" json:"-" validate:"required"`
	FirstName    string       `db:"first_name"`
	LastName     string       `db:"last_name"`
	Role         api.UserRole `db:"role" validate:"userRole"`
	IsActive     bool         `db:"is_active"`
	CreatedAt    time.Time    `db:"created_at"`
	UpdatedAt    time.Time    `db:"updated_at"`
}

// Validate gets run every time you call a "pop.Validate*" method.
func (u *User) Validate(tx *pop.Connection) (*validate.Errors, error) {
	return validateModel(u), nil
}

// Create stores the User data as a new record in the database.
func (u *User) Create(tx *pop.Connection) error {
	if u.Role == "" {
		u.Role = api.UserRoleL1
	}
	u.IsActive = true

	if err := create(tx, u); err != nil {
		return err
	}

	emitEvent(events.Event{
		Kind:    domain.EventApiUserCreated,
		Message: "username: " + u.Username,
		Payload: events.Payload{domain.EventPayloadID: u.ID},
	})

	return nil
}

// Save writes the User data to an existing database record, or creates a new one.
func (u *User) Save(tx *pop.Connection) error {
	return save(tx, u)
}

func (u *User) GetID() uuid.UUID {
	return u.ID
}

func (u *User) FindByID(tx *pop.Connection, id uuid.UUID) error {
	return find(tx, u, id)
}

func (u *User) FindByUsername(tx *pop.Connection, username string) error {
	err := tx.Where("username = ?", strings.TrimSpace(username)).First(u)
	return appErrorFromDB(err, api.ErrorQueryFailure)
}

// IsActorAllowedTo - users are visible to all authenticated roles, only the
// user itself or an L2 may update a user record. Creation happens through
// the anonymous register endpoint, not here.
func (u *User) IsActorAllowedTo(tx *pop.Connection, actor User, p Permission, sub SubResource, r *http.Request) bool {
	switch p {
	case PermissionView, PermissionList:
		return true
	case PermissionUpdate:
		return actor.Role == api.UserRoleL2 || actor.ID == u.ID
	default:
		return false
	}
}

// SetPassword stores a bcrypt hash of the given password
func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return errors.Wrap(err, "unable to hash password")
	}
	u.PasswordHash = string(hash)
	return nil
}

// VerifyPassword compares a candidate password against the stored hash
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// CreateAccessToken issues a new bearer token for the user. The plaintext
// token is returned once and only its hash is stored.
func (u *User) CreateAccessToken(tx *pop.Connection) (UserAccessToken, error) {
	if u.ID == uuid.Nil {
		return UserAccessToken{}, errors.New("cannot create access token for unsaved user")
	}

	token, err := getRandomToken()
	if err != nil {
		return UserAccessToken{}, api.NewAppError(err, api.ErrorCreatingAccessToken, api.CategoryInternal)
	}

	uat := UserAccessToken{
		UserID:      u.ID,
		AccessToken: token,
		TokenHash:   HashAccessToken(token),
		ExpiresAt:   time.Now().UTC().Add(time.Second * time.Duration(domain.Env.AccessTokenLifetimeSeconds)),
	}
	if err := uat.Create(tx); err != nil {
		return UserAccessToken{}, err
	}
	return uat, nil
}

// HashAccessToken returns a sha256.Sum256 of the input value
func HashAccessToken(accessToken string) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(accessToken)))
}

// List loads a page of users sorted by username, with an optional search
// across username and email. Returns the total number of matching entries and
// the total number of pages.
func (u *Users) List(tx *pop.Connection, query api.QueryParams) (int, int, error) {
	q := tx.Q().Order("username asc")

	if s := query.Search(); s != "" {
		q.Where("username ILIKE ? OR email ILIKE ?", "%"+s+"%", "%"+s+"%")
	}

	q.Paginate(query.Page(), query.PageSize())
	if err := q.All(u); err != nil {
		return 0, 0, appErrorFromDB(err, api.ErrorQueryFailure)
	}
	return q.Paginator.TotalEntriesSize, q.Paginator.TotalPages, nil
}

// MyRisks loads the risks the user owns or is assessing
func (u *User) MyRisks(tx *pop.Connection) (Risks, error) {
	var risks Risks
	err := tx.Where("owner_id = ? OR assessor_id = ?", u.ID, u.ID).
		Order("created_at desc").All(&risks)
	if err != nil {
		return nil, appErrorFromDB(err, api.ErrorQueryFailure)
	}
	return risks, nil
}

// MyControls loads the controls the user owns
func (u *User) MyControls(tx *pop.Connection) (Controls, error) {
	var controls Controls
	err := tx.Where("owner_id = ?", u.ID).Order("created_at desc").All(&controls)
	if err != nil {
		return nil, appErrorFromDB(err, api.ErrorQueryFailure)
	}
	return controls, nil
}

// Name returns the user's full name
func (u *User) Name() string {
	return strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
}

func ConvertUser(u User) api.User {
	return api.User{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Role:       u.Role,
		IsActive:   u.IsActive,
		DateJoined: u.CreatedAt,
	}
}

func ConvertUsers(us Users) api.Users {
	users := make(api.Users, len(us))
	for i, u := range us {
		users[i] = ConvertUser(u)
	}
	return users
}
