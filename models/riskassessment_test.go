package models

import (
	"testing"

	"github.com/gobuffalo/nulls"

	"github.com/silinternational/prudence-api/api"
	"github.com/silinternational/prudence-api/domain"
)

func (ms *ModelSuite) TestRiskAssessment_Validate() {
	tests := []struct {
		name       string
		assessment *RiskAssessment
		errField   string
		wantErr    bool
	}{
		{
			name:       "empty struct",
			assessment: &RiskAssessment{},
			errField:   "RiskAssessment.RiskID",
			wantErr:    true,
		},
		{
			name: "rejected without comment",
			assessment: &RiskAssessment{
				RiskID:     domain.GetUUID(),
				AssessorID: domain.GetUUID(),
				Status:     api.AssessmentStatusRejected,
			},
			errField: "RiskAssessment.Comments",
			wantErr:  true,
		},
		{
			name: "rejected with blank comment",
			assessment: &RiskAssessment{
				RiskID:     domain.GetUUID(),
				AssessorID: domain.GetUUID(),
				Status:     api.AssessmentStatusRejected,
				Comments:   nulls.NewString("   "),
			},
			errField: "RiskAssessment.Comments",
			wantErr:  true,
		},
		{
			name: "rejected with comment",
			assessment: &RiskAssessment{
				RiskID:     domain.GetUUID(),
				AssessorID: domain.GetUUID(),
				Status:     api.AssessmentStatusRejected,
				Comments:   nulls.NewString("needs rework"),
			},
			wantErr: false,
		},
		{
			name: "accepted without comment",
			assessment: &RiskAssessment{
				RiskID:     domain.GetUUID(),
				AssessorID: domain.GetUUID(),
				Status:     api.AssessmentStatusAccepted,
			},
			wantErr: false,
		},
		{
			name: "bogus status",
			assessment: &RiskAssessment{
				RiskID:     domain.GetUUID(),
				AssessorID: domain.GetUUID(),
				Status:     api.AssessmentStatus("Escalated"),
			},
			errField: "RiskAssessment.Status",
			wantErr:  true,
		},
	}
	for _, tt := range tests {
		ms.T().Run(tt.name, func(t *testing.T) {
			vErr, _ := tt.assessment.Validate(DB)
			if tt.wantErr {
				if vErr.Count() == 0 {
					t.Errorf("Expected an error, but did not get one")
				} else if len(vErr.Get(tt.errField)) == 0 {
					t.Errorf("Expected an error on field %v, but got none (errors: %+v)", tt.errField, vErr.Errors)
				}
			} else if vErr.HasAny() {
				t.Errorf("Unexpected error: %+v", vErr)
			}
		})
	}
}

func (ms *ModelSuite) Test_isAssessmentTransitionValid() {
	tests := []struct {
		name string
		from api.AssessmentStatus
		to   api.AssessmentStatus
		want bool
	}{
		{name: "pending to accepted", from: api.AssessmentStatusPending, to: api.AssessmentStatusAccepted, want: true},
		{name: "pending to rejected", from: api.AssessmentStatusPending, to: api.AssessmentStatusRejected, want: true},
		{name: "pending to pending", from: api.AssessmentStatusPending, to: api.AssessmentStatusPending, want: false},
		{name: "accepted is terminal", from: api.AssessmentStatusAccepted, to: api.AssessmentStatusRejected, want: false},
		{name: "rejected is terminal", from: api.AssessmentStatusRejected, to: api.AssessmentStatusAccepted, want: false},
		{name: "rejected cannot reopen", from: api.AssessmentStatusRejected, to: api.AssessmentStatusPending, want: false},
	}
	for _, tt := range tests {
		ms.T().Run(tt.name, func(t *testing.T) {
			ms.Equal(tt.want, isAssessmentTransitionValid(tt.from, tt.to))
		})
	}
}

func (ms *ModelSuite) TestRiskAssessment_Resolve() {
	fixtures := CreateRiskFixtures(ms.DB, FixturesConfig{NumberOfRisks: 4, NumberOfUsers: 1})
	users := CreateUserFixturesWithRole(ms.DB, api.UserRoleL1, api.UserRoleL2, api.UserRoleL3)
	reporter, approver, observer := users[0], users[1], users[2]

	assessments := CreateAssessmentFixtures(ms.DB, fixtures.Risks, approver, api.AssessmentStatusPending)

	tests := []struct {
		name       string
		assessment RiskAssessment
		input      api.RiskAssessmentUpdateInput
		actor      User
		wantStatus api.AssessmentStatus
		appError   *api.AppError
	}{
		{
			name:       "reporter may not resolve",
			assessment: assessments[0],
			input:      api.RiskAssessmentUpdateInput{Status: api.AssessmentStatusAccepted},
			actor:      reporter,
			appError:   &api.AppError{Key: api.ErrorNotAuthorized, Category: api.CategoryForbidden},
		},
		{
			name:       "observer may not resolve",
			assessment: assessments[0],
			input:      api.RiskAssessmentUpdateInput{Status: api.AssessmentStatusAccepted},
			actor:      observer,
			appError:   &api.AppError{Key: api.ErrorNotAuthorized, Category: api.CategoryForbidden},
		},
		{
			name:       "reject requires a comment",
			assessment: assessments[1],
			input:      api.RiskAssessmentUpdateInput{Status: api.AssessmentStatusRejected},
			actor:      approver,
			appError:   &api.AppError{Key: api.ErrorAssessmentComment, Category: api.CategoryUser},
		},
		{
			name:       "reject with blank comment",
			assessment: assessments[1],
			input:      api.RiskAssessmentUpdateInput{Status: api.AssessmentStatusRejected, Comments: "   "},
			actor:      approver,
			appError:   &api.AppError{Key: api.ErrorAssessmentComment, Category: api.CategoryUser},
		},
		{
			name:       "bogus status",
			assessment: assessments[1],
			input:      api.RiskAssessmentUpdateInput{Status: "Escalated"},
			actor:      approver,
			appError:   &api.AppError{Key: api.ErrorValidation, Category: api.CategoryUser},
		},
		{
			name:       "accept succeeds",
			assessment: assessments[2],
			input:      api.RiskAssessmentUpdateInput{Status: api.AssessmentStatusAccepted},
			actor:      approver,
			wantStatus: api.AssessmentStatusAccepted,
		},
		{
			name:       "reject with comment succeeds",
			assessment: assessments[3],
			input:      api.RiskAssessmentUpdateInput{Status: api.AssessmentStatusRejected, Comments: "needs rework"},
			actor:      approver,
			wantStatus: api.AssessmentStatusRejected,
		},
	}
	for _, tt := range tests {
		ms.T().Run(tt.name, func(t *testing.T) {
			assessment := tt.assessment
			err := assessment.Resolve(ms.DB, tt.input, tt.actor)
			if tt.appError != nil {
				ms.Error(err)
				ms.EqualAppError(*tt.appError, err)
				return
			}
			ms.NoError(err)
			ms.Equal(tt.wantStatus, assessment.Status)
			ms.True(assessment.AssessedDate.Valid, "assessed date not stamped")

			var risk Risk
			ms.NoError(risk.FindByID(ms.DB, assessment.RiskID))
			ms.True(risk.LastAssessed.Valid, "risk last_assessed not stamped")
		})
	}

	// a resolved assessment is frozen
	resolved := assessments[2]
	ms.NoError(resolved.FindByID(ms.DB, resolved.ID))
	err := resolved.Resolve(ms.DB, api.RiskAssessmentUpdateInput{Status: api.AssessmentStatusRejected, Comments: "changed my mind"}, approver)
	ms.Error(err)
	ms.EqualAppError(api.AppError{Key: api.ErrorAssessmentStatus, Category: api.CategoryUser}, err)
}

func (ms *ModelSuite) TestRiskAssessments_List() {
	fixtures := CreateRiskFixtures(ms.DB, FixturesConfig{NumberOfRisks: 3, NumberOfUsers: 1})
	reporter := fixtures.Users[0]
	users := CreateUserFixturesWithRole(ms.DB, api.UserRoleL2, api.UserRoleL2, api.UserRoleL3)
	approver, otherApprover, observer := users[0], users[1], users[2]

	CreateAssessmentFixtures(ms.DB, fixtures.Risks[:2], approver, api.AssessmentStatusPending)
	CreateAssessmentFixtures(ms.DB, fixtures.Risks[2:], otherApprover, api.AssessmentStatusPending)

	tests := []struct {
		name      string
		actor     User
		wantCount int
	}{
		{name: "approver sees own queue", actor: approver, wantCount: 2},
		{name: "other approver sees own queue", actor: otherApprover, wantCount: 1},
		{name: "reporter sees own risks' assessments", actor: reporter, wantCount: 3},
		{name: "observer sees all", actor: observer, wantCount: 3},
	}
	for _, tt := range tests {
		ms.T().Run(tt.name, func(t *testing.T) {
			var assessments RiskAssessments
			count, _, err := assessments.List(ms.DB, api.QueryParams{}, tt.actor)
			ms.NoError(err)
			ms.Equal(tt.wantCount, count)
			ms.Len(assessments, tt.wantCount)
		})
	}
}

func (ms *ModelSuite) Test_CountPendingAssessments() {
	fixtures := CreateRiskFixtures(ms.DB, FixturesConfig{NumberOfRisks: 3, NumberOfUsers: 1})
	reporter := fixtures.Users[0]
	approvers := CreateUserFixturesWithRole(ms.DB, api.UserRoleL2, api.UserRoleL2)

	CreateAssessmentFixtures(ms.DB, fixtures.Risks[:2], approvers[0], api.AssessmentStatusPending)
	CreateAssessmentFixtures(ms.DB, fixtures.Risks[2:], approvers[1], api.AssessmentStatusAccepted)

	count, err := CountPendingAssessments(ms.DB, approvers[0].ID)
	ms.NoError(err)
	ms.Equal(2, count)

	// resolved assessments are not pending
	count, err = CountPendingAssessments(ms.DB, approvers[1].ID)
	ms.NoError(err)
	ms.Equal(0, count)

	// not an assessor on anything
	count, err = CountPendingAssessments(ms.DB, reporter.ID)
	ms.NoError(err)
	ms.Equal(0, count)
}
