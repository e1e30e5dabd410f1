package booking

import (
	"encoding/binary"
	"fmt"

	"github.com/google/uuid"
)

// NewPNR generates a ten-digit Passenger Name Record code.  The digits
// are derived from a v4 UUID, which gives collision odds far below the
// store's duplicate check threshold; Create still rejects duplicates
// as a backstop.
func NewPNR() string {
	id := uuid.New()
	n := binary.BigEndian.Uint64(id[:8]) % 10_000_000_000
	return fmt.Sprintf("%010d", n)
}
