// Package handler defines the HTTP handlers exposing the reservation
// core's caller-facing operations.
package handler

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"
)

// getUserID extracts the authenticated user's id from the echo
// context.  The JWT middleware stores the raw subject claim, which
// arrives as a float64 for numeric claims and a string otherwise.
func getUserID(c echo.Context) (uint64, error) {
	switch v := c.Get("user_id").(type) {
	case float64:
		if v < 0 {
			return 0, errors.New("negative user id")
		}
		return uint64(v), nil
	case string:
		return strconv.ParseUint(v, 10, 64)
	case uint64:
		return v, nil
	case int:
		if v < 0 {
			return 0, errors.New("negative user id")
		}
		return uint64(v), nil
	}
	return 0, errors.New("no user id in context")
}
