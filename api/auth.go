package api

type AuthRegisterInput struct {
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Password  string   `json:"password"`
	Role      UserRole `json:"role"`
}

type AuthLoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthUser is the authenticated-user payload returned by register, login and
// the auth/user endpoints. AccessToken is only present on register and login.
type AuthUser struct {
	User
	AccessToken          string `json:"access_token,omitempty"`
	AccessTokenExpiresAt int64  `json:"access_token_expires_at,omitempty"`
}
