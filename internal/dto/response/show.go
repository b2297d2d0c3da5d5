package response

import (
	"movie-booking/internal/data/entity"
)

type ShowResponse struct {
	ID          string  `json:"id"`
	MovieID     string  `json:"movie_id"`
	ShowDate    string  `json:"show_date"`
	ShowTime    string  `json:"show_time"`
	Price       float64 `json:"price"`
	Hall        string  `json:"hall,omitempty"`
	SeatsTotal  int     `json:"seats_total"`
	SeatsBooked int     `json:"seats_booked"`
	IsActive    bool    `json:"is_active"`
}

func ShowToResponse(show *entity.Show) ShowResponse {
	return ShowResponse{
		ID:          show.ID.String(),
		MovieID:     show.MovieID.String(),
		ShowDate:    show.ShowDate.Format("2006-01-02"),
		ShowTime:    show.ShowTime.Format("15:04"),
		Price:       show.Price,
		Hall:        show.Hall,
		SeatsTotal:  show.SeatsTotal,
		SeatsBooked: show.SeatsBooked,
		IsActive:    show.IsActive,
	}
}

// BookedSeatsResponse is the stale-tolerant read view of a show's
// ledger. Booked is always non-nil so clients get `[]`, not `null`.
type BookedSeatsResponse struct {
	Booked []string `json:"booked"`
}
