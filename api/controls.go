package api

import (
	"time"

	"github.com/gobuffalo/nulls"
	"github.com/gofrs/uuid"
)

// ControlEffectiveness is limited to exactly three values: 0.0, 0.5 and 1.0
type ControlEffectiveness float64

const (
	ControlNotEffective       = ControlEffectiveness(0.0)
	ControlPartiallyEffective = ControlEffectiveness(0.5)
	ControlFullyEffective     = ControlEffectiveness(1.0)
)

// Text returns the display string for an effectiveness value
func (e ControlEffectiveness) Text() string {
	switch e {
	case ControlNotEffective:
		return "Not Effective"
	case ControlPartiallyEffective:
		return "Partially Effective"
	case ControlFullyEffective:
		return "Fully Effective"
	}
	return "Unknown"
}

type Controls []Control

type Control struct {
	ID                   uuid.UUID            `json:"id"`
	Name                 string               `json:"name"`
	Description          string               `json:"description"`
	Effectiveness        ControlEffectiveness `json:"effectiveness"`
	EffectivenessDisplay string               `json:"effectiveness_display"`
	Owner                User                 `json:"owner"`
	LastAssessed         *time.Time           `json:"last_assessed,omitempty"`
	CreatedAt            time.Time            `json:"created_at"`
	UpdatedAt            time.Time            `json:"updated_at"`
}

type ControlCreateInput struct {
	Name          string               `json:"name"`
	Description   string               `json:"description"`
	Effectiveness ControlEffectiveness `json:"effectiveness"`
	OwnerID       nulls.UUID           `json:"owner_id"`
}

// ControlUpdateInput is a partial update, absent fields leave the record unchanged
type ControlUpdateInput struct {
	Name          *string               `json:"name"`
	Description   *string               `json:"description"`
	Effectiveness *ControlEffectiveness `json:"effectiveness"`
}

type ControlsResponse struct {
	ListQuery
	Results Controls `json:"results"`
}
