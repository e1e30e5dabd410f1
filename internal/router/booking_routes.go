package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/train-seat-reservation/internal/handler"
	"github.com/iliyamo/train-seat-reservation/internal/middleware"
)

// RegisterBooking registers the booking endpoints under /v1.  All
// routes require a valid bearer token; rate limiting runs after
// authentication so the budget is per user where possible.
func RegisterBooking(e *echo.Echo, h *handler.BookingHandler, jwtSecret string, rateLimit echo.MiddlewareFunc) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		rateLimit,
	)
	g.POST("/bookings", h.Create)
	g.POST("/bookings/:pnr/confirm", h.Confirm)
	g.DELETE("/bookings/:pnr", h.Cancel)
	g.GET("/bookings/:pnr", h.Get)
	g.GET("/my-bookings", h.MyBookings)
}
