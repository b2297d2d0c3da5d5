package response

import (
	"time"

	"movie-booking/internal/data/entity"
)

// QuoteResponse is the non-binding price preview shown before checkout.
type QuoteResponse struct {
	Movie        *MovieResponse `json:"movie,omitempty"`
	Show         *ShowResponse  `json:"show,omitempty"`
	Seats        []string       `json:"seats"`
	Date         string         `json:"date,omitempty"`
	Time         string         `json:"time,omitempty"`
	PricePerSeat float64        `json:"price_per_seat"`
	TotalPrice   float64        `json:"total_price"`
}

type BookingResponse struct {
	ID           string    `json:"id"`
	TicketNumber string    `json:"ticket_number"`
	UserID       string    `json:"user_id"`
	MovieID      *string   `json:"movie_id,omitempty"`
	ShowID       *string   `json:"show_id,omitempty"`
	MovieTitle   string    `json:"movie_title,omitempty"`
	ShowDate     string    `json:"show_date,omitempty"`
	ShowTime     string    `json:"show_time,omitempty"`
	Seats        []string  `json:"seats"`
	TotalPrice   float64   `json:"total_price"`
	CreatedAt    time.Time `json:"created_at"`
}

func BookingToResponse(booking *entity.Booking) BookingResponse {
	resp := BookingResponse{
		ID:           booking.ID.String(),
		TicketNumber: booking.TicketNumber,
		UserID:       booking.UserID.String(),
		Seats:        booking.SeatList(),
		TotalPrice:   booking.TotalPrice,
		CreatedAt:    booking.CreatedAt,
	}

	if booking.MovieID != nil {
		id := booking.MovieID.String()
		resp.MovieID = &id
	}
	if booking.ShowID != nil {
		id := booking.ShowID.String()
		resp.ShowID = &id
	}

	return resp
}
