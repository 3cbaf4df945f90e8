package actions

import (
	"errors"
	"net/http"

	"github.com/gobuffalo/buffalo"

	"github.com/silinternational/prudence-api/api"
	"github.com/silinternational/prudence-api/domain"
	"github.com/silinternational/prudence-api/models"
)

// swagger:operation GET /risks Risks RisksList
//
// RisksList
//
// list risks, filtered and paginated
//
// ---
// responses:
//   '200':
//     description: a paginated list of Risks
//     schema:
//       "$ref": "#/definitions/RisksResponse"
func risksList(c buffalo.Context) error {
	tx := models.Tx(c)
	query := api.NewQueryParams(c.Params())

	var risks models.Risks
	totalEntries, totalPages, err := risks.List(tx, query)
	if err != nil {
		return reportError(c, err)
	}

	results, err := models.ConvertRisks(tx, risks)
	if err != nil {
		return reportError(c, err)
	}

	return renderOk(c, api.RisksResponse{
		ListQuery: api.NewListQuery(c.Request().URL.Path, query, totalEntries, totalPages),
		Results:   results,
	})
}

// swagger:operation POST /risks Risks RisksCreate
//
// RisksCreate
//
// record a new risk, attaching controls and optionally naming an assessor
//
// ---
// parameters:
//   - name: risk input
//     in: body
//     required: true
//     schema:
//       "$ref": "#/definitions/RiskCreateInput"
// responses:
//   '200':
//     description: the new Risk
//     schema:
//       "$ref": "#/definitions/Risk"
func risksCreate(c buffalo.Context) error {
	tx := models.Tx(c)
	user := models.CurrentUser(c)

	var input api.RiskCreateInput
	if err := StrictBind(c, &input); err != nil {
		return reportError(c, err)
	}

	risk, err := models.NewRiskFromAPI(input, user)
	if err != nil {
		return reportError(c, err)
	}

	if err := risk.CreateForUser(tx, input.ControlIDs, user); err != nil {
		return reportError(c, err)
	}

	return convertAndRenderRisk(c, risk)
}

// swagger:operation GET /risks/mine Risks RisksMine
//
// RisksMine
//
// list the risks the current user owns or is assessing
//
// ---
// responses:
//   '200':
//     description: a list of Risks
func risksMine(c buffalo.Context) error {
	tx := models.Tx(c)
	user := models.CurrentUser(c)

	risks, err := user.MyRisks(tx)
	if err != nil {
		return reportError(c, err)
	}

	results, err := models.ConvertRisks(tx, risks)
	if err != nil {
		return reportError(c, err)
	}

	return renderOk(c, results)
}

// swagger:operation GET /risks/matrix Risks RisksMatrix
//
// RisksMatrix
//
// place every risk on the 5x5 probability-by-impact grid
//
// ---
// responses:
//   '200':
//     description: inherent and residual matrix points
//     schema:
//       "$ref": "#/definitions/RiskMatrix"
func risksMatrix(c buffalo.Context) error {
	matrix, err := models.Matrix(models.Tx(c))
	if err != nil {
		return reportError(c, err)
	}
	return renderOk(c, matrix)
}

// swagger:operation GET /risks/{id} Risks RisksView
//
// RisksView
//
// view a specific risk
//
// ---
// parameters:
// - name: id
//   in: path
//   required: true
//   description: risk ID
// responses:
//   '200':
//     description: a Risk
//     schema:
//       "$ref": "#/definitions/Risk"
func risksView(c buffalo.Context) error {
	risk := getReferencedRiskFromCtx(c)
	if risk == nil {
		err := errors.New("risk not found in context")
		return reportError(c, api.NewAppError(err, api.ErrorRiskFromContext, api.CategoryInternal))
	}
	return convertAndRenderRisk(c, *risk)
}

// swagger:operation PATCH /risks/{id} Risks RisksUpdate
//
// RisksUpdate
//
// partially update a risk, absent fields are unchanged
//
// ---
// parameters:
// - name: id
//   in: path
//   required: true
//   description: risk ID
// - name: risk input
//   in: body
//   required: true
//   schema:
//     "$ref": "#/definitions/RiskUpdateInput"
// responses:
//   '200':
//     description: the updated Risk
//     schema:
//       "$ref": "#/definitions/Risk"
func risksUpdate(c buffalo.Context) error {
	tx := models.Tx(c)
	user := models.CurrentUser(c)

	risk := getReferencedRiskFromCtx(c)
	if risk == nil {
		err := errors.New("risk not found in context")
		return reportError(c, api.NewAppError(err, api.ErrorRiskFromContext, api.CategoryInternal))
	}

	var input api.RiskUpdateInput
	if err := StrictBind(c, &input); err != nil {
		return reportError(c, err)
	}

	if err := risk.UpdateByUser(tx, input, user); err != nil {
		return reportError(c, err)
	}

	return convertAndRenderRisk(c, *risk)
}

// swagger:operation DELETE /risks/{id} Risks RisksDelete
//
// RisksDelete
//
// delete a risk and its control links
//
// ---
// parameters:
// - name: id
//   in: path
//   required: true
//   description: risk ID
// responses:
//   '204':
//     description: deleted
func risksDelete(c buffalo.Context) error {
	risk := getReferencedRiskFromCtx(c)
	if risk == nil {
		err := errors.New("risk not found in context")
		return reportError(c, api.NewAppError(err, api.ErrorRiskFromContext, api.CategoryInternal))
	}

	if err := risk.Destroy(models.Tx(c)); err != nil {
		return reportError(c, err)
	}

	return c.Render(http.StatusNoContent, nil)
}

func convertAndRenderRisk(c buffalo.Context, risk models.Risk) error {
	apiRisk, err := models.ConvertRisk(models.Tx(c), risk)
	if err != nil {
		return reportError(c, err)
	}
	return renderOk(c, apiRisk)
}

// getReferencedRiskFromCtx pulls the models.Risk resource from context that was put there
// by the AuthZ middleware
func getReferencedRiskFromCtx(c buffalo.Context) *models.Risk {
	risk, ok := c.Value(domain.TypeRisk).(*models.Risk)
	if !ok {
		return nil
	}
	return risk
}
