// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iliyamo/train-seat-reservation/internal/handler"
)

// RegisterPublic registers routes that require no authentication: the
// health check, the prometheus scrape endpoint and the read-only
// catalog/availability queries guests browse before logging in.
func RegisterPublic(e *echo.Echo, a *handler.AvailabilityHandler) {
	e.GET("/healthz", handler.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/v1/trains", a.ListTrains)
	e.GET("/v1/trains/:id/availability", a.Availability)
}
