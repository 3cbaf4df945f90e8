package models

import (
	"net/http"
	"time"

	"github.com/gobuffalo/nulls"
	"github.com/gobuffalo/pop/v6"
	"github.com/gobuffalo/validate/v3"
	"github.com/gofrs/uuid"

	"github.com/silinternational/prudence-api/api"
)

type RiskTypes []RiskType

// RiskType is immutable reference data, rows are created by the db:seed grift
type RiskType struct {
	ID          uuid.UUID    `db:"id"`
	Name        string       `db:"name" validate:"required"`
	Description nulls.String `db:"description"`
	CreatedAt   time.Time    `db:"created_at"`
	UpdatedAt   time.Time    `db:"updated_at"`
}

// Validate gets run every time you call a "pop.Validate*" method.
func (r *RiskType) Validate(tx *pop.Connection) (*validate.Errors, error) {
	return validateModel(r), nil
}

// Create stores the RiskType data as a new record in the database.
func (r *RiskType) Create(tx *pop.Connection) error {
	return create(tx, r)
}

func (r *RiskType) GetID() uuid.UUID {
	return r.ID
}

func (r *RiskType) FindByID(tx *pop.Connection, id uuid.UUID) error {
	return find(tx, r, id)
}

// IsActorAllowedTo - risk types are read-only reference data
func (r *RiskType) IsActorAllowedTo(tx *pop.Connection, actor User, p Permission, sub SubResource, req *http.Request) bool {
	switch p {
	case PermissionView, PermissionList:
		return true
	default:
		return false
	}
}

// GetAll loads all risk types, sorted by name
func (r *RiskTypes) GetAll(tx *pop.Connection) error {
	err := tx.Order("name asc").All(r)
	return appErrorFromDB(err, api.ErrorQueryFailure)
}

func ConvertRiskType(r RiskType) api.RiskType {
	return api.RiskType{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description.String,
	}
}

func ConvertRiskTypes(rs RiskTypes) api.RiskTypes {
	riskTypes := make(api.RiskTypes, len(rs))
	for i, r := range rs {
		riskTypes[i] = ConvertRiskType(r)
	}
	return riskTypes
}
