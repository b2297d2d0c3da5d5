package usecase

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoSeats rejects a checkout with an empty seat selection. A user
// error, not a conflict.
var ErrNoSeats = errors.New("no seats selected")

// ErrTicketExhausted means the bounded ticket-number retry loop ran out
// of attempts. Practically unreachable with 12 random hex chars; kept
// explicit so the failure mode is visible and testable.
var ErrTicketExhausted = errors.New("could not allocate a unique ticket number")

// SeatConflictError is the expected business outcome when requested
// seats intersect the ledger. It carries the exact sorted conflict list
// so the client can re-render availability.
type SeatConflictError struct {
	Seats []string
}

func (e *SeatConflictError) Error() string {
	return fmt.Sprintf("some seats already booked: %s", strings.Join(e.Seats, ", "))
}

// AsSeatConflict unwraps err into a SeatConflictError if it is one.
func AsSeatConflict(err error) (*SeatConflictError, bool) {
	var conflict *SeatConflictError
	if errors.As(err, &conflict) {
		return conflict, true
	}
	return nil, false
}
