package api

import (
	"time"

	"github.com/gofrs/uuid"
)

type AssessmentStatus string

const (
	AssessmentStatusPending  = AssessmentStatus("Pending")
	AssessmentStatusAccepted = AssessmentStatus("Accepted")
	AssessmentStatusRejected = AssessmentStatus("Rejected")
)

type RiskAssessments []RiskAssessment

type RiskAssessment struct {
	ID           uuid.UUID        `json:"id"`
	Risk         Risk             `json:"risk"`
	Assessor     User             `json:"assessor"`
	Status       AssessmentStatus `json:"status"`
	Comments     string           `json:"assessor_comments,omitempty"`
	AssessedDate *time.Time       `json:"assessed_date,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
}

// RiskAssessmentUpdateInput is restricted to the status and comments fields.
// All other assessment data is fixed at creation time.
type RiskAssessmentUpdateInput struct {
	Status   AssessmentStatus `json:"status"`
	Comments string           `json:"assessor_comments"`
}

type RiskAssessmentsResponse struct {
	ListQuery
	Results RiskAssessments `json:"results"`
}
