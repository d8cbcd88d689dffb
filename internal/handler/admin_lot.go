package handler // handler package contains admin lot management handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/YaShika2131/Vehicle-Parking-Management-Web-Application/internal/repository"
)

// AdminHandler bundles repositories for the administrative surface:
// lot lifecycle, spot inspection, user listing and dashboard stats.
// Role enforcement happens in middleware; handlers assume an ADMIN
// session.
type AdminHandler struct {
	LotRepo  *repository.LotRepo
	SpotRepo *repository.SpotRepo
	UserRepo *repository.UserRepo
}

// NewAdminHandler constructs an AdminHandler and panics if any dependency is nil.
func NewAdminHandler(lotRepo *repository.LotRepo, spotRepo *repository.SpotRepo, userRepo *repository.UserRepo) *AdminHandler {
	if lotRepo == nil || spotRepo == nil || userRepo == nil {
		panic("nil repository passed to NewAdminHandler")
	}
	return &AdminHandler{LotRepo: lotRepo, SpotRepo: spotRepo, UserRepo: userRepo}
}

type lotReq struct {
	LocationName string   `json:"location_name"`
	Price        *float64 `json:"price"`
	Address      string   `json:"address"`
	PinCode      string   `json:"pin_code"`
	MaxSpots     *int     `json:"max_spots"`
}

type lotResp struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Address   string    `json:"address"`
	PinCode   string    `json:"pin_code"`
	MaxSpots  int       `json:"max_spots"`
	CreatedAt time.Time `json:"created_at"`
}

func toLotResp(l *repository.ParkingLot) lotResp {
	return lotResp{
		ID: l.ID, Name: l.Name, Price: l.Price, Address: l.Address,
		PinCode: l.PinCode, MaxSpots: l.MaxSpots, CreatedAt: l.CreatedAt,
	}
}

// validate checks required fields and numeric ranges shared by create
// and edit.
func (r *lotReq) validate() string {
	if strings.TrimSpace(r.LocationName) == "" || strings.TrimSpace(r.Address) == "" || strings.TrimSpace(r.PinCode) == "" {
		return "location_name, address and pin_code are required"
	}
	if r.Price == nil || *r.Price < 0 {
		return "price must be a non-negative number"
	}
	if r.MaxSpots == nil || *r.MaxSpots < 1 {
		return "max_spots must be at least 1"
	}
	return ""
}

// Dashboard handles GET /admin/dashboard. It returns the recomputed
// aggregate stats together with the lot summaries.
func (h *AdminHandler) Dashboard(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	stats, err := h.LotRepo.Stats(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	lots, err := h.LotRepo.ListSummaries(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"stats": stats,
		"lots":  lots,
	})
}

// CreateLot handles POST /admin/create_lot. The lot and its full batch
// of labelled spots are created together.
func (h *AdminHandler) CreateLot(c echo.Context) error {
	var req lotReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	lot := &repository.ParkingLot{
		Name:     strings.TrimSpace(req.LocationName),
		Price:    *req.Price,
		Address:  strings.TrimSpace(req.Address),
		PinCode:  strings.TrimSpace(req.PinCode),
		MaxSpots: *req.MaxSpots,
	}
	if err := h.LotRepo.Create(ctx, lot); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create lot failed"})
	}
	return c.JSON(http.StatusCreated, toLotResp(lot))
}

// EditLot handles POST /admin/edit_lot/:id. Scalar fields are rewritten
// and the spot set is reconciled with the new capacity. When a shrink
// finds fewer available spots than requested, the stored capacity is
// clamped to what was achievable and the response reflects the clamped
// value.
func (h *AdminHandler) EditLot(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid lot id"})
	}
	var req lotReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	lot := &repository.ParkingLot{
		ID:       id,
		Name:     strings.TrimSpace(req.LocationName),
		Price:    *req.Price,
		Address:  strings.TrimSpace(req.Address),
		PinCode:  strings.TrimSpace(req.PinCode),
		MaxSpots: *req.MaxSpots,
	}
	if err := h.LotRepo.Update(ctx, lot); err != nil {
		if errors.Is(err, repository.ErrLotNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "parking lot not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update lot failed"})
	}
	resp := echo.Map{"lot": toLotResp(lot)}
	if lot.MaxSpots != *req.MaxSpots {
		resp["warning"] = "capacity clamped: occupied spots cannot be removed"
	}
	return c.JSON(http.StatusOK, resp)
}

// DeleteLot handles POST /admin/delete_lot/:id. Deletion cascades to
// the lot's spots and is refused while any spot is occupied.
func (h *AdminHandler) DeleteLot(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid lot id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.LotRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrLotNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "parking lot not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "cannot delete parking lot with occupied spots"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete lot failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// spotDetailResp is the admin view of one spot including its occupant.
type spotDetailResp struct {
	ID            uint64  `json:"id"`
	SpotNumber    string  `json:"spot_number"`
	Status        string  `json:"status"`
	ReservationID *uint64 `json:"reservation_id,omitempty"`
	Username      *string `json:"username,omitempty"`
	ParkedSince   *string `json:"parked_since,omitempty"`
}

// ViewSpots handles GET /admin/view_spots/:lot_id. Each spot is listed
// with its status and, when occupied, the active reservation and user.
func (h *AdminHandler) ViewSpots(c echo.Context) error {
	lotID, err := strconv.ParseUint(c.Param("lot_id"), 10, 64)
	if err != nil || lotID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid lot_id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	lot, err := h.LotRepo.GetByID(ctx, lotID)
	if err != nil {
		if errors.Is(err, repository.ErrLotNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "parking lot not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	details, err := h.SpotRepo.GetByLotWithOccupants(ctx, lotID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	items := make([]spotDetailResp, 0, len(details))
	for _, d := range details {
		items = append(items, spotDetailResp{
			ID:            d.Spot.ID,
			SpotNumber:    d.Spot.SpotNumber,
			Status:        d.Spot.Status,
			ReservationID: d.ReservationID,
			Username:      d.Username,
			ParkedSince:   d.ParkedSince,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"lot":   toLotResp(lot),
		"count": len(items),
		"spots": items,
	})
}

// userResp is the admin view of a registered user. Password hashes
// never leave the repository layer in responses.
type userResp struct {
	ID        uint64    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

// ListUsers handles GET /admin/users and returns every non-admin user.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	users, err := h.UserRepo.ListNonAdmin(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	items := make([]userResp, 0, len(users))
	for _, u := range users {
		items = append(items, userResp{
			ID: u.ID, Username: u.Username, Email: u.Email, Phone: u.Phone, CreatedAt: u.CreatedAt,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"count": len(items),
		"users": items,
	})
}
