package api

import (
	"time"

	"github.com/gofrs/uuid"
)

type UserRole string

const (
	UserRoleL1 = UserRole("L1") // reporter, submits risks
	UserRoleL2 = UserRole("L2") // manager/approver, full CRUD and assessment authority
	UserRoleL3 = UserRole("L3") // observer, read-only
)

type Users []User

type User struct {
	ID         uuid.UUID `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Role       UserRole  `json:"role"`
	IsActive   bool      `json:"is_active"`
	DateJoined time.Time `json:"date_joined"`
}

type UsersResponse struct {
	ListQuery
	Results Users `json:"results"`
}
