package router

import (
	"github.com/labstack/echo/v4"

	"github.com/YaShika2131/Vehicle-Parking-Management-Web-Application/internal/handler"
	"github.com/YaShika2131/Vehicle-Parking-Management-Web-Application/internal/middleware"
)

// RegisterUser wires the regular-user surface under /user. The role
// guard admits USER only: an admin session attempting to book or
// release is rejected with 403 instead of being redirected.
func RegisterUser(e *echo.Echo, h *handler.UserHandler, jwtSecret string) {
	g := e.Group("/user")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(handler.RoleUser))

	g.GET("/dashboard", h.Dashboard)
	g.POST("/book_spot/:lot_id", h.BookSpot)
	g.POST("/release_spot/:reservation_id", h.ReleaseSpot)
}
