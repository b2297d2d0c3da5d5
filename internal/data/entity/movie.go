package entity

import (
	"fmt"
	"time"
)

type Movie struct {
	Base
	Title             string    `db:"title"`
	PosterURL         string    `db:"poster_url"`
	DetailPosterURL   *string   `db:"detail_poster_url"`
	Genre             string    `db:"genre"`
	Rating            float64   `db:"rating"`
	Revenue           float64   `db:"revenue"`
	ReleaseDate       time.Time `db:"release_date"`
	DurationInMinutes int       `db:"duration_in_minutes"`
	Votes             int       `db:"votes"`
	IsFeatured        bool      `db:"is_featured"`
	Synopsis          string    `db:"synopsis"`
	TrailerVideoID    string    `db:"trailer_video_id"`
	// Fallback price per seat when a show carries no price of its own.
	Price float64 `db:"price"`
}

// DurationFormatted renders the runtime as "2h 15m" for display.
func (m *Movie) DurationFormatted() string {
	return fmt.Sprintf("%dh %dm", m.DurationInMinutes/60, m.DurationInMinutes%60)
}
