// Package router defines how HTTP routes are registered on the echo instance.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iliyamo/restaurant-reviews/internal/handler"
)

// RegisterRoutes registers the operational endpoints: liveness and metrics.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// RegisterRestaurants registers the browsing and submission routes.  The
// limiter, when non-nil, applies only to the two form submissions.
func RegisterRestaurants(e *echo.Echo, h *handler.RestaurantHandler, limiter echo.MiddlewareFunc) {
	e.GET("/", h.List)
	e.GET("/create", h.CreateForm)
	e.GET("/:id", h.Detail)

	var mw []echo.MiddlewareFunc
	if limiter != nil {
		mw = append(mw, limiter)
	}
	e.POST("/add", h.AddRestaurant, mw...)
	e.POST("/review/:id", h.AddReview, mw...)
}

// RegisterHealth registers GET /ping.
func RegisterHealth(e *echo.Echo, h *handler.PingHandler) {
	e.GET("/ping", h.Ping)
}

// RegisterStatic registers static file routes.
func RegisterStatic(e *echo.Echo, h *handler.StaticHandler) {
	e.GET("/favicon.ico", h.Favicon)
}
