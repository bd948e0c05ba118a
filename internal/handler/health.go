package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-reviews/internal/health"
	"github.com/iliyamo/restaurant-reviews/internal/metrics"
)

// Health is a liveness endpoint used by load balancers.  It returns a plain
// text "ok" with 200 and touches no backing resource.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// PingHandler reports connectivity to the backing resources.
type PingHandler struct {
	Runner *health.Runner
}

// Ping handles GET /ping.  It always answers 200 with one entry per probe;
// unreachable resources have Status 0.  With ?verbose=1 each failed entry
// also carries a failure class.
func (h *PingHandler) Ping(c echo.Context) error {
	results := h.Runner.Run(c.Request().Context())
	verbose, _ := strconv.ParseBool(c.QueryParam("verbose"))
	for i := range results {
		metrics.SetProbeStatus(results[i].Resource, results[i].Status)
		if !verbose {
			results[i].Reason = ""
		}
	}
	return c.JSON(http.StatusOK, results)
}
