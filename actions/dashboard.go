package actions

import (
	"github.com/gobuffalo/buffalo"

	"github.com/silinternational/prudence-api/api"
	"github.com/silinternational/prudence-api/models"
)

// swagger:operation GET /dashboard/stats Dashboard DashboardStats
//
// DashboardStats
//
// scalar counts for the dashboard landing page
//
// ---
// responses:
//   '200':
//     description: dashboard statistics
//     schema:
//       "$ref": "#/definitions/DashboardStats"
func dashboardStats(c buffalo.Context) error {
	tx := models.Tx(c)
	user := models.CurrentUser(c)

	var stats api.DashboardStats
	var err error

	if stats.TotalRisks, err = models.CountRisks(tx); err != nil {
		return reportError(c, err)
	}
	if stats.HighRisks, err = models.CountHighRisks(tx); err != nil {
		return reportError(c, err)
	}
	if stats.PendingAssessments, err = models.CountPendingAssessments(tx, user.ID); err != nil {
		return reportError(c, err)
	}

	myRisks, err := user.MyRisks(tx)
	if err != nil {
		return reportError(c, err)
	}
	stats.MyRisks = len(myRisks)

	if stats.MyControls, err = models.CountControlsOwnedBy(tx, user.ID); err != nil {
		return reportError(c, err)
	}

	return renderOk(c, stats)
}
