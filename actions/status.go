package actions

import (
	"net/http"

	"github.com/gobuffalo/buffalo"
)

// statusHandler reports app health for load balancer checks
func statusHandler(c buffalo.Context) error {
	return c.Render(http.StatusNoContent, nil)
}
