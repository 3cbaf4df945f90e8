package models

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gobuffalo/nulls"
	"github.com/gobuffalo/pop/v6"
	"github.com/gobuffalo/validate/v3"
	"github.com/gofrs/uuid"

	"github.com/silinternational/prudence-api/api"
)

var ValidControlEffectiveness = map[api.ControlEffectiveness]struct{}{
	api.ControlNotEffective:       {},
	api.ControlPartiallyEffective: {},
	api.ControlFullyEffective:     {},
}

type Controls []Control

// Control is a mitigating measure that can be attached to any number of risks
type Control struct {
	ID            uuid.UUID                `db:"id"`
	Name          string                   `db:"name" validate:"required"`
	Description   string                   `db:"description"`
	Effectiveness api.ControlEffectiveness `db:"effectiveness" validate:"controlEffectiveness"`
	OwnerID       uuid.UUID                `db:"owner_id" validate:"required"`
	LastAssessed  nulls.Time               `db:"last_assessed"`
	CreatedAt     time.Time                `db:"created_at"`
	UpdatedAt     time.Time                `db:"updated_at"`

	Owner User  `belongs_to:"users" db:"-"`
	Risks Risks `many_to_many:"risk_controls" db:"-"`
}

// Validate gets run every time you call a "pop.Validate*" method.
func (c *Control) Validate(tx *pop.Connection) (*validate.Errors, error) {
	return validateModel(c), nil
}

// Create stores the Control data as a new record in the database.
func (c *Control) Create(tx *pop.Connection) error {
	return create(tx, c)
}

// Update writes the Control data to an existing database record.
func (c *Control) Update(tx *pop.Connection) error {
	return update(tx, c)
}

func (c *Control) Destroy(tx *pop.Connection) error {
	return destroy(tx, c)
}

func (c *Control) GetID() uuid.UUID {
	return c.ID
}

func (c *Control) FindByID(tx *pop.Connection, id uuid.UUID) error {
	return find(tx, c, id)
}

// IsActorAllowedTo consults the role permission policy. Reads are open to
// every authenticated role, writes depend on role and ownership.
func (c *Control) IsActorAllowedTo(tx *pop.Connection, actor User, p Permission, sub SubResource, r *http.Request) bool {
	switch p {
	case PermissionView, PermissionList:
		return true
	case PermissionCreate:
		return CanCreateControl(actor.Role)
	case PermissionUpdate:
		return CanEditControl(actor.Role, c.OwnerID, actor.ID)
	case PermissionDelete:
		return CanDeleteControl(actor.Role, c.OwnerID, actor.ID)
	default:
		return false
	}
}

// LoadOwner hydrates the Owner relation if not already loaded
func (c *Control) LoadOwner(tx *pop.Connection) error {
	if c.Owner.ID.Version() == 0 {
		if err := tx.Load(c, "Owner"); err != nil {
			return appErrorFromDB(err, api.ErrorQueryFailure)
		}
	}
	return nil
}

// NewControlFromAPI builds a Control from create input. The owner defaults to
// the actor when the input names none.
func NewControlFromAPI(input api.ControlCreateInput, actor User) (Control, error) {
	if _, ok := ValidControlEffectiveness[input.Effectiveness]; !ok {
		return Control{}, api.NewAppError(
			fmt.Errorf("invalid control effectiveness: %v", input.Effectiveness),
			api.ErrorControlEffectiveness,
			api.CategoryUser,
		)
	}

	c := Control{
		Name:          input.Name,
		Description:   input.Description,
		Effectiveness: input.Effectiveness,
		OwnerID:       actor.ID,
	}
	if input.OwnerID.Valid {
		c.OwnerID = input.OwnerID.UUID
	}
	return c, nil
}

// ApplyUpdate copies the present fields of a partial update onto the record
func (c *Control) ApplyUpdate(input api.ControlUpdateInput) error {
	if input.Name != nil {
		c.Name = *input.Name
	}
	if input.Description != nil {
		c.Description = *input.Description
	}
	if input.Effectiveness != nil {
		if _, ok := ValidControlEffectiveness[*input.Effectiveness]; !ok {
			return api.NewAppError(
				fmt.Errorf("invalid control effectiveness: %v", *input.Effectiveness),
				api.ErrorControlEffectiveness,
				api.CategoryUser,
			)
		}
		c.Effectiveness = *input.Effectiveness
	}
	return nil
}

// List loads a page of controls matching the query criteria, returning the
// total matching count and page count for the response envelope.
func (c *Controls) List(tx *pop.Connection, query api.QueryParams) (int, int, error) {
	q := tx.Q().Order("created_at desc")

	if s := query.Search(); s != "" {
		q.Where("(name ILIKE ? OR description ILIKE ?)", "%"+s+"%", "%"+s+"%")
	}
	if owner := query.Filter(api.FilterOwner); owner != "" {
		q.Where("owner_id = ?", owner)
	}
	if eff := query.Filter(api.FilterEffectiveness); eff != "" {
		q.Where("effectiveness = ?", eff)
	}

	q.Paginate(query.Page(), query.PageSize())
	if err := q.EagerPreload("Owner").All(c); err != nil {
		return 0, 0, appErrorFromDB(err, api.ErrorQueryFailure)
	}
	return q.Paginator.TotalEntriesSize, q.Paginator.TotalPages, nil
}

// CountControlsOwnedBy returns the number of controls owned by the given user
func CountControlsOwnedBy(tx *pop.Connection, userID uuid.UUID) (int, error) {
	n, err := tx.Where("owner_id = ?", userID).Count(&Control{})
	if err != nil {
		return 0, appErrorFromDB(err, api.ErrorQueryFailure)
	}
	return n, nil
}

func ConvertControl(tx *pop.Connection, c Control) (api.Control, error) {
	if err := c.LoadOwner(tx); err != nil {
		return api.Control{}, err
	}

	return api.Control{
		ID:                   c.ID,
		Name:                 c.Name,
		Description:          c.Description,
		Effectiveness:        c.Effectiveness,
		EffectivenessDisplay: c.Effectiveness.Text(),
		Owner:                ConvertUser(c.Owner),
		LastAssessed:         convertTimeToAPI(c.LastAssessed),
		CreatedAt:            c.CreatedAt,
		UpdatedAt:            c.UpdatedAt,
	}, nil
}

func ConvertControls(tx *pop.Connection, cs Controls) (api.Controls, error) {
	controls := make(api.Controls, len(cs))
	for i, c := range cs {
		var err error
		if controls[i], err = ConvertControl(tx, c); err != nil {
			return nil, err
		}
	}
	return controls, nil
}
