package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/train-seat-reservation/internal/catalog"
	"github.com/iliyamo/train-seat-reservation/internal/inventory"
	"github.com/iliyamo/train-seat-reservation/internal/model"
)

// AvailabilityHandler exposes read-only catalog and seat-availability
// queries.  These routes are public: travellers browse availability
// before authenticating.
type AvailabilityHandler struct {
	Catalog   *catalog.Catalog
	Inventory *inventory.Inventory
}

// NewAvailabilityHandler constructs an AvailabilityHandler.
func NewAvailabilityHandler(cat *catalog.Catalog, inv *inventory.Inventory) *AvailabilityHandler {
	if cat == nil || inv == nil {
		panic("nil dependency passed to NewAvailabilityHandler")
	}
	return &AvailabilityHandler{Catalog: cat, Inventory: inv}
}

// ListTrains handles GET /v1/trains.
func (h *AvailabilityHandler) ListTrains(c echo.Context) error {
	trains := h.Catalog.Trains()
	out := make([]echo.Map, 0, len(trains))
	for _, t := range trains {
		route := make([]echo.Map, 0, len(t.Route))
		for _, s := range t.Route {
			route = append(route, echo.Map{
				"code":        s.StationCode,
				"name":        s.StationName,
				"distance_km": s.DistanceKM,
			})
		}
		coachTypes := make(map[string]int)
		for _, coach := range t.Coaches {
			coachTypes[string(coach.Type)] += len(coach.Seats)
		}
		out = append(out, echo.Map{
			"id":          t.ID,
			"name":        t.Name,
			"route":       route,
			"coach_types": coachTypes,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"trains": out})
}

// Availability handles GET /v1/trains/:id/availability?coach=&date=.
// The count reflects live inventory: committed bookings and unexpired
// locks both reduce it.
func (h *AvailabilityHandler) Availability(c echo.Context) error {
	trainID := c.Param("id")
	ct, err := model.ParseCoachType(c.QueryParam("coach"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown coach type"})
	}
	date, err := model.ParseTravelDate(c.QueryParam("date"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid travel date, expected YYYY-MM-DD"})
	}

	seats, err := h.Inventory.AvailableSeats(trainID, ct, date)
	if err != nil {
		if errors.Is(err, catalog.ErrTrainNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "train not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	list := make([]echo.Map, 0, len(seats))
	for _, s := range seats {
		list = append(list, echo.Map{
			"seat_id": s.ID,
			"coach":   s.CoachID,
			"number":  s.Number,
			"berth":   string(s.Berth),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"train_id":  trainID,
		"coach":     string(ct),
		"date":      string(date),
		"available": len(list),
		"seats":     list,
	})
}
