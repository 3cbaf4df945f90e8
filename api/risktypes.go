package api

import "github.com/gofrs/uuid"

type RiskTypes []RiskType

// RiskType is immutable reference data, rows are created by the db:seed task
type RiskType struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
}

type RiskTypesResponse struct {
	ListQuery
	Results RiskTypes `json:"results"`
}
