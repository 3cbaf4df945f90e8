package actions

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/silinternational/prudence-api/api"
	"github.com/silinternational/prudence-api/models"
)

func (as *ActionSuite) Test_assessmentsList() {
	fixtures := models.CreateRiskFixtures(as.DB, models.FixturesConfig{NumberOfRisks: 3, NumberOfUsers: 1})
	users := models.CreateUserFixturesWithRole(as.DB, api.UserRoleL2, api.UserRoleL2)
	approver, otherApprover := users[0], users[1]

	models.CreateAssessmentFixtures(as.DB, fixtures.Risks[:2], approver, api.AssessmentStatusPending)
	models.CreateAssessmentFixtures(as.DB, fixtures.Risks[2:], otherApprover, api.AssessmentStatusPending)

	res := as.authRequest("/risk-assessments", approver).Get()
	as.Equal(http.StatusOK, res.Code)

	var got api.RiskAssessmentsResponse
	as.NoError(as.decodeBody(res.Body.Bytes(), &got))
	as.Equal(2, got.Count, "an approver sees only their own queue")

	res = as.authRequest("/risk-assessments?status=Pending", approver).Get()
	as.Equal(http.StatusOK, res.Code)
	as.NoError(as.decodeBody(res.Body.Bytes(), &got))
	as.Equal(2, got.Count)

	res = as.authRequest("/risk-assessments?status=Accepted", approver).Get()
	as.Equal(http.StatusOK, res.Code)
	as.NoError(as.decodeBody(res.Body.Bytes(), &got))
	as.Equal(0, got.Count)
}

func (as *ActionSuite) Test_assessmentsUpdate() {
	fixtures := models.CreateRiskFixtures(as.DB, models.FixturesConfig{NumberOfRisks: 3, NumberOfUsers: 1})
	reporter := fixtures.Users[0]
	approver := models.CreateUserFixturesWithRole(as.DB, api.UserRoleL2)[0]

	assessments := models.CreateAssessmentFixtures(as.DB, fixtures.Risks, approver, api.AssessmentStatusPending)

	tests := []struct {
		name       string
		actor      models.User
		assessment models.RiskAssessment
		input      api.RiskAssessmentUpdateInput
		wantStatus int
		wantInBody []string
	}{
		{
			name:       "reporter may not resolve",
			actor:      reporter,
			assessment: assessments[0],
			input:      api.RiskAssessmentUpdateInput{Status: api.AssessmentStatusAccepted},
			wantStatus: http.StatusNotFound,
			wantInBody: []string{string(api.ErrorNotAuthorized)},
		},
		{
			name:       "reject without comment",
			actor:      approver,
			assessment: assessments[0],
			input:      api.RiskAssessmentUpdateInput{Status: api.AssessmentStatusRejected},
			wantStatus: http.StatusBadRequest,
			wantInBody: []string{string(api.ErrorAssessmentComment)},
		},
		{
			name:       "accept",
			actor:      approver,
			assessment: assessments[0],
			input:      api.RiskAssessmentUpdateInput{Status: api.AssessmentStatusAccepted},
			wantStatus: http.StatusOK,
			wantInBody: []string{`"status":"Accepted"`, `"assessed_date":"`},
		},
		{
			name:       "terminal state is frozen",
			actor:      approver,
			assessment: assessments[0],
			input:      api.RiskAssessmentUpdateInput{Status: api.AssessmentStatusRejected, Comments: "on second thought"},
			wantStatus: http.StatusBadRequest,
			wantInBody: []string{string(api.ErrorAssessmentStatus)},
		},
		{
			name:       "reject with comment",
			actor:      approver,
			assessment: assessments[1],
			input:      api.RiskAssessmentUpdateInput{Status: api.AssessmentStatusRejected, Comments: "needs rework"},
			wantStatus: http.StatusOK,
			wantInBody: []string{`"status":"Rejected"`, `"assessor_comments":"needs rework"`},
		},
	}

	for _, tt := range tests {
		as.T().Run(tt.name, func(t *testing.T) {
			res := as.authRequest(fmt.Sprintf("/risk-assessments/%s", tt.assessment.ID), tt.actor).Patch(tt.input)

			body := res.Body.String()
			as.Equal(tt.wantStatus, res.Code, "incorrect status code returned, body: %s", body)
			as.verifyResponseData(tt.wantInBody, body, "AssessmentsUpdate")
		})
	}

	// the accepted risk was stamped
	var risk models.Risk
	as.NoError(risk.FindByID(as.DB, assessments[0].RiskID))
	as.True(risk.LastAssessed.Valid, "risk last_assessed not stamped on resolution")
}

func (as *ActionSuite) Test_assessmentsView() {
	fixtures := models.CreateRiskFixtures(as.DB, models.FixturesConfig{NumberOfRisks: 1, NumberOfUsers: 1})
	approver := models.CreateUserFixturesWithRole(as.DB, api.UserRoleL2)[0]
	assessment := models.CreateAssessmentFixtures(as.DB, fixtures.Risks, approver, api.AssessmentStatusPending)[0]

	res := as.authRequest(fmt.Sprintf("/risk-assessments/%s", assessment.ID), approver).Get()
	as.Equal(http.StatusOK, res.Code)

	var got api.RiskAssessment
	as.NoError(as.decodeBody(res.Body.Bytes(), &got))
	as.Equal(assessment.ID, got.ID)
	as.Equal(api.AssessmentStatusPending, got.Status)
	as.Equal(fixtures.Risks[0].ID, got.Risk.ID)
}
