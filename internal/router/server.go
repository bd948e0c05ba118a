package router

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/restaurant-reviews/internal/handler"
	"github.com/iliyamo/restaurant-reviews/internal/middleware"
)

// Deps are the handlers and middleware New wires into the server.
type Deps struct {
	Restaurants *handler.RestaurantHandler
	Ping        *handler.PingHandler
	Static      *handler.StaticHandler
	Limiter     echo.MiddlewareFunc // optional
	AccessLog   bool
}

// New builds the echo instance with validation, recovery, metrics and every
// route registered.
func New(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()

	e.Use(echomw.Recover())
	if d.AccessLog {
		e.Use(echomw.Logger())
	}
	e.Use(middleware.Metrics())

	RegisterRoutes(e)
	RegisterStatic(e, d.Static)
	RegisterHealth(e, d.Ping)
	RegisterRestaurants(e, d.Restaurants, d.Limiter)
	return e
}
