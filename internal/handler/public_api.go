package handler // handler package contains the public unauthenticated API

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/YaShika2131/Vehicle-Parking-Management-Web-Application/internal/repository"
)

// PublicHandler exposes the unauthenticated JSON endpoints: the lot
// listing and spot search. These routes sit behind the response cache
// and the rate limiter but require no session.
type PublicHandler struct {
	LotRepo  *repository.LotRepo
	SpotRepo *repository.SpotRepo
}

// NewPublicHandler constructs a PublicHandler and panics if any dependency is nil.
func NewPublicHandler(lotRepo *repository.LotRepo, spotRepo *repository.SpotRepo) *PublicHandler {
	if lotRepo == nil || spotRepo == nil {
		panic("nil repository passed to NewPublicHandler")
	}
	return &PublicHandler{LotRepo: lotRepo, SpotRepo: spotRepo}
}

// ParkingLots handles GET /api/parking_lots. It returns a JSON array of
// lot summaries with live available-spot counts.
func (h *PublicHandler) ParkingLots(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	lots, err := h.LotRepo.ListSummaries(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if lots == nil {
		lots = []repository.LotSummary{}
	}
	return c.JSON(http.StatusOK, lots)
}

// SearchSpot handles GET /api/search_spot?spot_number=. A missing
// parameter is 400 and an unknown label 404. Occupied spots include the
// occupying username and the booking start time.
func (h *PublicHandler) SearchSpot(c echo.Context) error {
	label := strings.TrimSpace(c.QueryParam("spot_number"))
	if label == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "spot_number required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	detail, lotName, err := h.SpotRepo.FindByLabel(ctx, label)
	if err != nil {
		if errors.Is(err, repository.ErrSpotNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "spot not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	status := "Available"
	if detail.Spot.Status == repository.SpotOccupied {
		status = "Occupied"
	}
	resp := echo.Map{
		"spot_number": detail.Spot.SpotNumber,
		"status":      status,
		"lot_name":    lotName,
	}
	if detail.Username != nil {
		resp["user"] = *detail.Username
	}
	if detail.ParkedSince != nil {
		resp["parked_since"] = *detail.ParkedSince
	}
	return c.JSON(http.StatusOK, resp)
}
