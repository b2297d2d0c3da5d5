package response

import (
	"time"

	"movie-booking/internal/data/entity"
)

type MovieResponse struct {
	ID                string  `json:"id"`
	Title             string  `json:"title"`
	PosterURL         string  `json:"poster_url"`
	DetailPosterURL   *string `json:"detail_poster_url,omitempty"`
	Genre             string  `json:"genre"`
	Rating            float64 `json:"rating"`
	ReleaseDate       string  `json:"release_date"`
	DurationInMinutes int     `json:"duration_in_minutes"`
	Duration          string  `json:"duration"`
	Votes             int     `json:"votes"`
	IsFeatured        bool    `json:"is_featured"`
	Synopsis          string  `json:"synopsis,omitempty"`
	TrailerVideoID    string  `json:"trailer_video_id,omitempty"`
	Price             float64 `json:"price"`
	CreatedAt         time.Time `json:"created_at"`
}

func MovieToResponse(movie *entity.Movie) MovieResponse {
	return MovieResponse{
		ID:                movie.ID.String(),
		Title:             movie.Title,
		PosterURL:         movie.PosterURL,
		DetailPosterURL:   movie.DetailPosterURL,
		Genre:             movie.Genre,
		Rating:            movie.Rating,
		ReleaseDate:       movie.ReleaseDate.Format("2006-01-02"),
		DurationInMinutes: movie.DurationInMinutes,
		Duration:          movie.DurationFormatted(),
		Votes:             movie.Votes,
		IsFeatured:        movie.IsFeatured,
		Synopsis:          movie.Synopsis,
		TrailerVideoID:    movie.TrailerVideoID,
		Price:             movie.Price,
		CreatedAt:         movie.CreatedAt,
	}
}
