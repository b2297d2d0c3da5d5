package entity

import (
	"time"

	"github.com/google/uuid"
)

// Show is one scheduled screening of a movie. BookedSeats is the
// denormalized seat ledger: the comma-joined sorted set of seat IDs
// currently booked. SeatsBooked always equals the size of that set when
// the ledger field is in use; legacy rows may have an empty ledger, in
// which case the set is reconstructed from booking records.
type Show struct {
	BaseNoDelete
	MovieID     uuid.UUID `db:"movie_id"`
	ShowDate    time.Time `db:"show_date"`
	ShowTime    time.Time `db:"show_time"`
	Price       float64   `db:"price"`
	Hall        string    `db:"hall"`
	SeatsTotal  int       `db:"seats_total"`
	SeatsBooked int       `db:"seats_booked"`
	IsActive    bool      `db:"is_active"`
	BookedSeats string    `db:"booked_seats"`
}
