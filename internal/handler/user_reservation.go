package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/YaShika2131/Vehicle-Parking-Management-Web-Application/internal/queue"
	"github.com/YaShika2131/Vehicle-Parking-Management-Web-Application/internal/repository"
	queuepublisher "github.com/YaShika2131/Vehicle-Parking-Management-Web-Application/internal/service"
)

// pastReservationLimit bounds the history shown on the user dashboard.
const pastReservationLimit = 10

// UserHandler groups repositories for the regular-user surface:
// browsing lots, booking a spot and releasing it. Middleware has
// already verified a USER session; an admin session never reaches
// these handlers.
type UserHandler struct {
	LotRepo         *repository.LotRepo
	ReservationRepo *repository.ReservationRepo
}

// NewUserHandler constructs a UserHandler and panics if any dependency is nil.
func NewUserHandler(lotRepo *repository.LotRepo, reservationRepo *repository.ReservationRepo) *UserHandler {
	if lotRepo == nil || reservationRepo == nil {
		panic("nil repository passed to NewUserHandler")
	}
	return &UserHandler{LotRepo: lotRepo, ReservationRepo: reservationRepo}
}

// reservationResp is the JSON shape of one reservation on the user
// dashboard and in booking/release responses.
type reservationResp struct {
	ID               uint64     `json:"id"`
	SpotNumber       string     `json:"spot_number"`
	LotName          string     `json:"lot_name"`
	ParkingTimestamp time.Time  `json:"parking_timestamp"`
	LeavingTimestamp *time.Time `json:"leaving_timestamp,omitempty"`
	CostPerHour      float64    `json:"cost_per_hour"`
	TotalCost        *float64   `json:"total_cost,omitempty"`
	IsActive         bool       `json:"is_active"`
}

func toReservationResp(d *repository.ReservationDetail) reservationResp {
	return reservationResp{
		ID:               d.ID,
		SpotNumber:       d.SpotNumber,
		LotName:          d.LotName,
		ParkingTimestamp: d.ParkingTimestamp,
		LeavingTimestamp: d.LeavingTimestamp,
		CostPerHour:      d.CostPerHour,
		TotalCost:        d.TotalCost,
		IsActive:         d.IsActive,
	}
}

// Dashboard handles GET /user/dashboard. It returns all active
// reservations, the ten most recent past reservations (newest first)
// and the public lot summaries for booking.
func (h *UserHandler) Dashboard(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	active, err := h.ReservationRepo.ListActiveByUser(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	past, err := h.ReservationRepo.ListPastByUser(ctx, userID, pastReservationLimit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	lots, err := h.LotRepo.ListSummaries(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	activeItems := make([]reservationResp, 0, len(active))
	for i := range active {
		activeItems = append(activeItems, toReservationResp(&active[i]))
	}
	pastItems := make([]reservationResp, 0, len(past))
	for i := range past {
		pastItems = append(pastItems, toReservationResp(&past[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"active_reservations": activeItems,
		"past_reservations":   pastItems,
		"parking_lots":        lots,
	})
}

// BookSpot handles POST /user/book_spot/:lot_id. The lowest-id
// available spot of the lot is claimed atomically; a full lot yields
// 409 with a no-availability message.
func (h *UserHandler) BookSpot(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	lotID, err := strconv.ParseUint(c.Param("lot_id"), 10, 64)
	if err != nil || lotID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid lot_id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	detail, err := h.ReservationRepo.Book(ctx, lotID, userID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrLotNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "parking lot not found"})
		case errors.Is(err, repository.ErrNoAvailability):
			return c.JSON(http.StatusConflict, echo.Map{"error": "no available spots in this parking lot"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "booking failed"})
	}
	return c.JSON(http.StatusCreated, toReservationResp(detail))
}

// ReleaseSpot handles POST /user/release_spot/:reservation_id. The
// reservation is closed with a minimum one-hour charge and the spot
// returns to the available pool. Releasing someone else's reservation
// is 403; releasing an already-closed one is 409, never a silent
// recomputation.
func (h *UserHandler) ReleaseSpot(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	reservationID, err := strconv.ParseUint(c.Param("reservation_id"), 10, 64)
	if err != nil || reservationID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation_id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	detail, err := h.ReservationRepo.Release(ctx, reservationID, userID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrReservationNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "reservation belongs to another user"})
		case errors.Is(err, repository.ErrReservationClosed):
			return c.JSON(http.StatusConflict, echo.Map{"error": "reservation already closed"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "release failed"})
	}

	// Billing event is best effort; a broker outage never fails the release.
	event := queue.ReservationClosedEvent{
		ReservationID: detail.ID,
		UserID:        detail.UserID,
		Username:      getUsername(c),
		SpotNumber:    detail.SpotNumber,
		LotName:       detail.LotName,
		ParkedAt:      detail.ParkingTimestamp.Format(time.RFC3339),
		LeftAt:        detail.LeavingTimestamp.Format(time.RFC3339),
		CostPerHour:   detail.CostPerHour,
		TotalCost:     *detail.TotalCost,
	}
	go func() {
		pubCtx, pubCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer pubCancel()
		_ = queuepublisher.PublishReservationClosed(pubCtx, event)
	}()

	return c.JSON(http.StatusOK, toReservationResp(detail))
}
