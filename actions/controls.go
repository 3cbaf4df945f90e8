package actions

import (
	"errors"
	"net/http"

	"github.com/gobuffalo/buffalo"

	"github.com/silinternational/prudence-api/api"
	"github.com/silinternational/prudence-api/domain"
	"github.com/silinternational/prudence-api/models"
)

// swagger:operation GET /controls Controls ControlsList
//
// ControlsList
//
// list controls, filtered and paginated
//
// ---
// responses:
//   '200':
//     description: a paginated list of Controls
//     schema:
//       "$ref": "#/definitions/ControlsResponse"
func controlsList(c buffalo.Context) error {
	tx := models.Tx(c)
	query := api.NewQueryParams(c.Params())

	var controls models.Controls
	totalEntries, totalPages, err := controls.List(tx, query)
	if err != nil {
		return reportError(c, err)
	}

	results, err := models.ConvertControls(tx, controls)
	if err != nil {
		return reportError(c, err)
	}

	return renderOk(c, api.ControlsResponse{
		ListQuery: api.NewListQuery(c.Request().URL.Path, query, totalEntries, totalPages),
		Results:   results,
	})
}

// swagger:operation POST /controls Controls ControlsCreate
//
// ControlsCreate
//
// create a new mitigating control
//
// ---
// parameters:
//   - name: control input
//     in: body
//     required: true
//     schema:
//       "$ref": "#/definitions/ControlCreateInput"
// responses:
//   '200':
//     description: the new Control
//     schema:
//       "$ref": "#/definitions/Control"
func controlsCreate(c buffalo.Context) error {
	tx := models.Tx(c)
	user := models.CurrentUser(c)

	var input api.ControlCreateInput
	if err := StrictBind(c, &input); err != nil {
		return reportError(c, err)
	}

	control, err := models.NewControlFromAPI(input, user)
	if err != nil {
		return reportError(c, err)
	}
	if err := control.Create(tx); err != nil {
		return reportError(c, err)
	}

	return convertAndRenderControl(c, control)
}

// swagger:operation GET /controls/mine Controls ControlsMine
//
// ControlsMine
//
// list the controls the current user owns
//
// ---
// responses:
//   '200':
//     description: a list of Controls
func controlsMine(c buffalo.Context) error {
	tx := models.Tx(c)
	user := models.CurrentUser(c)

	controls, err := user.MyControls(tx)
	if err != nil {
		return reportError(c, err)
	}

	results, err := models.ConvertControls(tx, controls)
	if err != nil {
		return reportError(c, err)
	}

	return renderOk(c, results)
}

// swagger:operation GET /controls/{id} Controls ControlsView
//
// ControlsView
//
// view a specific control
//
// ---
// parameters:
// - name: id
//   in: path
//   required: true
//   description: control ID
// responses:
//   '200':
//     description: a Control
//     schema:
//       "$ref": "#/definitions/Control"
func controlsView(c buffalo.Context) error {
	control := getReferencedControlFromCtx(c)
	if control == nil {
		err := errors.New("control not found in context")
		return reportError(c, api.NewAppError(err, api.ErrorControlFromContext, api.CategoryInternal))
	}
	return convertAndRenderControl(c, *control)
}

// swagger:operation PATCH /controls/{id} Controls ControlsUpdate
//
// ControlsUpdate
//
// partially update a control, absent fields are unchanged
//
// ---
// parameters:
// - name: id
//   in: path
//   required: true
//   description: control ID
// - name: control input
//   in: body
//   required: true
//   schema:
//     "$ref": "#/definitions/ControlUpdateInput"
// responses:
//   '200':
//     description: the updated Control
//     schema:
//       "$ref": "#/definitions/Control"
func controlsUpdate(c buffalo.Context) error {
	tx := models.Tx(c)

	control := getReferencedControlFromCtx(c)
	if control == nil {
		err := errors.New("control not found in context")
		return reportError(c, api.NewAppError(err, api.ErrorControlFromContext, api.CategoryInternal))
	}

	var input api.ControlUpdateInput
	if err := StrictBind(c, &input); err != nil {
		return reportError(c, err)
	}

	if err := control.ApplyUpdate(input); err != nil {
		return reportError(c, err)
	}
	if err := control.Update(tx); err != nil {
		return reportError(c, err)
	}

	return convertAndRenderControl(c, *control)
}

// swagger:operation DELETE /controls/{id} Controls ControlsDelete
//
// ControlsDelete
//
// delete a control
//
// ---
// parameters:
// - name: id
//   in: path
//   required: true
//   description: control ID
// responses:
//   '204':
//     description: deleted
func controlsDelete(c buffalo.Context) error {
	control := getReferencedControlFromCtx(c)
	if control == nil {
		err := errors.New("control not found in context")
		return reportError(c, api.NewAppError(err, api.ErrorControlFromContext, api.CategoryInternal))
	}

	if err := control.Destroy(models.Tx(c)); err != nil {
		return reportError(c, err)
	}

	return c.Render(http.StatusNoContent, nil)
}

func convertAndRenderControl(c buffalo.Context, control models.Control) error {
	apiControl, err := models.ConvertControl(models.Tx(c), control)
	if err != nil {
		return reportError(c, err)
	}
	return renderOk(c, apiControl)
}

// getReferencedControlFromCtx pulls the models.Control resource from context that was put there
// by the AuthZ middleware
func getReferencedControlFromCtx(c buffalo.Context) *models.Control {
	control, ok := c.Value(domain.TypeControl).(*models.Control)
	if !ok {
		return nil
	}
	return control
}
