package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/YaShika2131/Vehicle-Parking-Management-Web-Application/internal/handler"
	"github.com/YaShika2131/Vehicle-Parking-Management-Web-Application/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance. Currently it exposes only a health check
// used by load balancers and monitoring.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the session lifecycle endpoints. Register,
// login, refresh and logout operate without an existing session; /me is
// a small protected endpoint echoing the authenticated identity.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	e.POST("/register", a.Register)
	e.POST("/login", a.Login)
	e.POST("/refresh", a.Refresh)
	e.POST("/logout", a.Logout)

	me := e.Group("/me")
	me.Use(middleware.JWTAuth(jwtSecret))
	me.Use(middleware.RequireRole(handler.RoleAdmin, handler.RoleUser))
	me.GET("", a.Me)
}

// RegisterPublic registers the unauthenticated JSON API. These routes
// apply no JWT or role middleware and are intended for guests; the
// response cache and rate limiter are attached globally in main.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler) {
	// Lot summaries with live availability
	e.GET("/api/parking_lots", p.ParkingLots)
	// Exact-label spot lookup: 400 without spot_number, 404 when unknown
	e.GET("/api/search_spot", p.SearchSpot)
}
