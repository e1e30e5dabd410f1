// Package repository defines the booking storage abstraction and its
// implementations.  The reservation core only depends on the
// BookingStore interface, so the in-memory store used by default can
// be swapped for the MySQL store without touching allocation or
// state-machine logic.
package repository

import "errors"

// ErrBookingNotFound is returned when no booking exists for the given
// PNR.  Handlers translate this into an HTTP 404 response.
var ErrBookingNotFound = errors.New("booking not found")

// ErrDuplicatePNR is returned when Create is called with a PNR that is
// already stored.  PNRs are generated, so hitting this indicates a
// caller bug or a generator collision.
var ErrDuplicatePNR = errors.New("duplicate pnr")
