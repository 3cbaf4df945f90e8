package api

import (
	"time"

	"github.com/gobuffalo/nulls"
	"github.com/gofrs/uuid"

	"github.com/silinternational/prudence-api/rating"
)

type Risks []Risk

type Risk struct {
	ID                  uuid.UUID `json:"id"`
	Description         string    `json:"description"`
	InherentProbability int       `json:"inherent_probability"`
	InherentImpact      int       `json:"inherent_impact"`
	InherentRating      int       `json:"inherent_rating"`
	ResidualProbability int       `json:"residual_probability"`
	ResidualImpact      int       `json:"residual_impact"`
	ResidualRating      int       `json:"residual_rating"`

	// RiskLevel is the classification of the residual rating, used for badges and summary counts
	RiskLevel rating.Level `json:"risk_level"`

	Owner        User       `json:"owner"`
	Assessor     *User      `json:"assessor,omitempty"`
	Controls     Controls   `json:"controls"`
	RiskType     *RiskType  `json:"risk_type,omitempty"`
	LastAssessed *time.Time `json:"last_assessed,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type RiskCreateInput struct {
	Description         string      `json:"description"`
	InherentProbability float64     `json:"inherent_probability"`
	InherentImpact      float64     `json:"inherent_impact"`
	ResidualProbability float64     `json:"residual_probability"`
	ResidualImpact      float64     `json:"residual_impact"`
	AssessorID          nulls.UUID  `json:"assessor_id"`
	ControlIDs          []uuid.UUID `json:"control_ids"`
	RiskTypeID          nulls.UUID  `json:"risk_type_id"`
}

// RiskUpdateInput is a partial update, absent fields leave the record unchanged
type RiskUpdateInput struct {
	Description         *string      `json:"description"`
	InherentProbability *float64     `json:"inherent_probability"`
	InherentImpact      *float64     `json:"inherent_impact"`
	ResidualProbability *float64     `json:"residual_probability"`
	ResidualImpact      *float64     `json:"residual_impact"`
	AssessorID          *uuid.UUID   `json:"assessor_id"`
	ControlIDs          *[]uuid.UUID `json:"control_ids"`
	RiskTypeID          *uuid.UUID   `json:"risk_type_id"`
}

type RisksResponse struct {
	ListQuery
	Results Risks `json:"results"`
}

// RiskMatrixPoint locates one risk in the 5x5 probability-by-impact grid.
// Grid membership is independent of the four-level classification.
type RiskMatrixPoint struct {
	X    int  `json:"x"` // probability
	Y    int  `json:"y"` // impact
	Risk Risk `json:"risk"`
}

type RiskMatrix struct {
	Inherent []RiskMatrixPoint `json:"inherent"`
	Residual []RiskMatrixPoint `json:"residual"`
}
