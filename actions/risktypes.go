package actions

import (
	"errors"

	"github.com/gobuffalo/buffalo"

	"github.com/silinternational/prudence-api/api"
	"github.com/silinternational/prudence-api/domain"
	"github.com/silinternational/prudence-api/models"
)

// risk types are read-only reference data seeded by the db:seed task

func riskTypesList(c buffalo.Context) error {
	var riskTypes models.RiskTypes
	if err := riskTypes.GetAll(models.Tx(c)); err != nil {
		return reportError(c, err)
	}

	results := models.ConvertRiskTypes(riskTypes)
	return renderOk(c, api.RiskTypesResponse{
		ListQuery: api.ListQuery{Count: len(results)},
		Results:   results,
	})
}

func riskTypesView(c buffalo.Context) error {
	riskType, ok := c.Value(domain.TypeRiskType).(*models.RiskType)
	if !ok {
		err := errors.New("risk type not found in context")
		return reportError(c, api.NewAppError(err, api.ErrorResourceNotFound, api.CategoryInternal))
	}
	return renderOk(c, models.ConvertRiskType(*riskType))
}
