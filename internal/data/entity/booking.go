package entity

import (
	"github.com/google/uuid"
)

// Booking is one committed reservation. Rows are append-only: once the
// checkout transaction commits, a booking is never modified. MovieID and
// ShowID are nullable; historical bookings may reference neither.
type Booking struct {
	BaseSimple
	UserID       uuid.UUID  `db:"user_id"`
	MovieID      *uuid.UUID `db:"movie_id"`
	ShowID       *uuid.UUID `db:"show_id"`
	Seats        string     `db:"seats"` // comma-joined sorted seat IDs, e.g. "A1,A2"
	TotalPrice   float64    `db:"total_price"`
	TicketNumber string     `db:"ticket_number"`
}

// SeatList returns the booking's seats as a parsed set.
func (b *Booking) SeatList() []string {
	return ParseSeatSet(b.Seats).List()
}
