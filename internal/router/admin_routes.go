package router

import (
	"github.com/labstack/echo/v4"

	"github.com/YaShika2131/Vehicle-Parking-Management-Web-Application/internal/handler"
	"github.com/YaShika2131/Vehicle-Parking-Management-Web-Application/internal/middleware"
)

// RegisterAdmin wires the administrative surface under /admin. Every
// route requires a valid access token whose role claim is ADMIN; the
// distinguished admin account is the only identity that ever carries
// it.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, jwtSecret string) {
	g := e.Group("/admin")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(handler.RoleAdmin))

	g.GET("/dashboard", h.Dashboard)
	g.POST("/create_lot", h.CreateLot)
	g.POST("/edit_lot/:id", h.EditLot)
	g.POST("/delete_lot/:id", h.DeleteLot)
	g.GET("/view_spots/:lot_id", h.ViewSpots)
	g.GET("/users", h.ListUsers)
}
