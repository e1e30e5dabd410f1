package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/train-seat-reservation/internal/booking"
	"github.com/iliyamo/train-seat-reservation/internal/model"
)

// BookingHandler exposes create/confirm/cancel/lookup over the
// booking service.  JWT authentication has already run; every method
// may still return 401 if the user id cannot be extracted from the
// context.
type BookingHandler struct {
	Svc *booking.Service
	Log *zap.Logger
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(svc *booking.Service, log *zap.Logger) *BookingHandler {
	if svc == nil {
		panic("nil service passed to NewBookingHandler")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &BookingHandler{Svc: svc, Log: log}
}

type passengerBody struct {
	Name       string `json:"name"`
	Age        int    `json:"age"`
	Gender     string `json:"gender"`
	Preference string `json:"berth_preference,omitempty"`
}

type createBookingBody struct {
	TrainID     string          `json:"train_id"`
	Date        string          `json:"date"`
	Source      string          `json:"source"`
	Destination string          `json:"destination"`
	CoachType   string          `json:"coach_type"`
	Passengers  []passengerBody `json:"passengers"`
}

// Create handles POST /v1/bookings.  A successful allocation returns
// 201 with a PENDING booking whose seats are committed pending
// payment; a seat shortfall also returns 201, with the booking
// WAITLISTED — a full train is a normal outcome, not an error.
func (h *BookingHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body createBookingBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	date, err := model.ParseTravelDate(body.Date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid travel date, expected YYYY-MM-DD"})
	}
	passengers := make([]model.Passenger, 0, len(body.Passengers))
	for _, p := range body.Passengers {
		passengers = append(passengers, model.Passenger{
			Name:       p.Name,
			Age:        p.Age,
			Gender:     model.Gender(p.Gender),
			Preference: model.BerthType(p.Preference),
		})
	}

	b, err := h.Svc.CreateBooking(c.Request().Context(), booking.CreateRequest{
		UserID:      userID,
		TrainID:     body.TrainID,
		Date:        date,
		Source:      body.Source,
		Destination: body.Destination,
		CoachType:   model.CoachType(body.CoachType),
		Passengers:  passengers,
	})
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusCreated, toBookingResponse(b))
}

// Confirm handles POST /v1/bookings/:pnr/confirm, the payment-success
// hook.  Confirming an already-confirmed booking succeeds without
// side effects.
func (h *BookingHandler) Confirm(c echo.Context) error {
	if _, err := getUserID(c); err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	b, err := h.Svc.ConfirmPayment(c.Request().Context(), c.Param("pnr"))
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, toBookingResponse(b))
}

// Cancel handles DELETE /v1/bookings/:pnr.  The response carries the
// refund granted; cancelling twice is accepted and returns the
// original cancellation record.
func (h *BookingHandler) Cancel(c echo.Context) error {
	if _, err := getUserID(c); err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	b, err := h.Svc.CancelBooking(c.Request().Context(), c.Param("pnr"))
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, toBookingResponse(b))
}

// Get handles GET /v1/bookings/:pnr.
func (h *BookingHandler) Get(c echo.Context) error {
	if _, err := getUserID(c); err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	b, err := h.Svc.GetBookingByPNR(c.Request().Context(), c.Param("pnr"))
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, toBookingResponse(b))
}

// MyBookings handles GET /v1/my-bookings.
func (h *BookingHandler) MyBookings(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	list, err := h.Svc.BookingsForUser(c.Request().Context(), userID)
	if err != nil {
		return h.writeError(c, err)
	}
	out := make([]echo.Map, 0, len(list))
	for _, b := range list {
		out = append(out, toBookingResponse(b))
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": out})
}

// writeError maps service sentinels onto HTTP statuses.
func (h *BookingHandler) writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, booking.ErrValidation):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, booking.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, booking.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, booking.ErrState):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, booking.ErrConcurrency):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	}
	h.Log.Error("booking handler failure", zap.Error(err))
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}

func toBookingResponse(b *model.Booking) echo.Map {
	b.Lock()
	state := b.State
	passengers := make([]echo.Map, 0, len(b.Passengers))
	for _, p := range b.Passengers {
		entry := echo.Map{
			"name":   p.Name,
			"age":    p.Age,
			"gender": string(p.Gender),
		}
		if p.Preference != "" {
			entry["berth_preference"] = string(p.Preference)
		}
		if p.SeatID != "" {
			entry["coach_id"] = p.CoachID
			entry["seat_id"] = p.SeatID
		}
		passengers = append(passengers, entry)
	}
	confirmedAt := b.ConfirmedAt
	b.Unlock()

	resp := echo.Map{
		"pnr":         b.PNR,
		"train_id":    b.TrainID,
		"date":        string(b.Date),
		"source":      b.Source,
		"destination": b.Destination,
		"coach_type":  string(b.CoachType),
		"total_fare":  b.TotalFare,
		"status":      string(state.Status),
		"passengers":  passengers,
		"created_at":  b.CreatedAt.Format(time.RFC3339),
	}
	switch state.Status {
	case model.StatusWaitlisted, model.StatusRAC:
		resp["position"] = state.Position
	case model.StatusCancelled:
		resp["refund_amount"] = state.RefundAmount
		resp["cancelled_at"] = state.CancelledAt.Format(time.RFC3339)
	case model.StatusConfirmed:
		if !confirmedAt.IsZero() {
			resp["confirmed_at"] = confirmedAt.Format(time.RFC3339)
		}
	}
	return resp
}
