package actions

import (
	"errors"

	"github.com/gobuffalo/buffalo"

	"github.com/silinternational/prudence-api/api"
	"github.com/silinternational/prudence-api/domain"
	"github.com/silinternational/prudence-api/models"
)

// swagger:operation GET /risk-assessments RiskAssessments AssessmentsList
//
// AssessmentsList
//
// list assessments scoped to the caller: an approver's own queue, a
// reporter's submitted risks, or everything for an observer
//
// ---
// responses:
//   '200':
//     description: a paginated list of RiskAssessments
//     schema:
//       "$ref": "#/definitions/RiskAssessmentsResponse"
func assessmentsList(c buffalo.Context) error {
	tx := models.Tx(c)
	user := models.CurrentUser(c)
	query := api.NewQueryParams(c.Params())

	var assessments models.RiskAssessments
	totalEntries, totalPages, err := assessments.List(tx, query, user)
	if err != nil {
		return reportError(c, err)
	}

	results, err := models.ConvertRiskAssessments(tx, assessments)
	if err != nil {
		return reportError(c, err)
	}

	return renderOk(c, api.RiskAssessmentsResponse{
		ListQuery: api.NewListQuery(c.Request().URL.Path, query, totalEntries, totalPages),
		Results:   results,
	})
}

// swagger:operation GET /risk-assessments/{id} RiskAssessments AssessmentsView
//
// AssessmentsView
//
// view a specific assessment
//
// ---
// parameters:
// - name: id
//   in: path
//   required: true
//   description: assessment ID
// responses:
//   '200':
//     description: a RiskAssessment
//     schema:
//       "$ref": "#/definitions/RiskAssessment"
func assessmentsView(c buffalo.Context) error {
	assessment := getReferencedAssessmentFromCtx(c)
	if assessment == nil {
		err := errors.New("assessment not found in context")
		return reportError(c, api.NewAppError(err, api.ErrorAssessmentFromContext, api.CategoryInternal))
	}
	return convertAndRenderAssessment(c, *assessment)
}

// swagger:operation PATCH /risk-assessments/{id} RiskAssessments AssessmentsUpdate
//
// AssessmentsUpdate
//
// resolve a Pending assessment to Accepted or Rejected. Only status and
// comments may be changed, and only by an approver.
//
// ---
// parameters:
// - name: id
//   in: path
//   required: true
//   description: assessment ID
// - name: assessment input
//   in: body
//   required: true
//   schema:
//     "$ref": "#/definitions/RiskAssessmentUpdateInput"
// responses:
//   '200':
//     description: the resolved RiskAssessment
//     schema:
//       "$ref": "#/definitions/RiskAssessment"
func assessmentsUpdate(c buffalo.Context) error {
	tx := models.Tx(c)
	user := models.CurrentUser(c)

	assessment := getReferencedAssessmentFromCtx(c)
	if assessment == nil {
		err := errors.New("assessment not found in context")
		return reportError(c, api.NewAppError(err, api.ErrorAssessmentFromContext, api.CategoryInternal))
	}

	var input api.RiskAssessmentUpdateInput
	if err := StrictBind(c, &input); err != nil {
		return reportError(c, err)
	}

	if err := assessment.Resolve(tx, input, user); err != nil {
		return reportError(c, err)
	}

	return convertAndRenderAssessment(c, *assessment)
}

func convertAndRenderAssessment(c buffalo.Context, assessment models.RiskAssessment) error {
	apiAssessment, err := models.ConvertRiskAssessment(models.Tx(c), assessment)
	if err != nil {
		return reportError(c, err)
	}
	return renderOk(c, apiAssessment)
}

// getReferencedAssessmentFromCtx pulls the models.RiskAssessment resource from context
// that was put there by the AuthZ middleware
func getReferencedAssessmentFromCtx(c buffalo.Context) *models.RiskAssessment {
	assessment, ok := c.Value(domain.TypeRiskAssessment).(*models.RiskAssessment)
	if !ok {
		return nil
	}
	return assessment
}
