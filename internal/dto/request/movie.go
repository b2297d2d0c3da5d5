package request

type CreateMovieRequest struct {
	Title             string  `json:"title" validate:"required,max=200"`
	PosterURL         string  `json:"poster_url" validate:"required,url,max=500"`
	DetailPosterURL   *string `json:"detail_poster_url,omitempty" validate:"omitempty,url,max=500"`
	Genre             string  `json:"genre" validate:"required,max=100"`
	Rating            float64 `json:"rating" validate:"min=0,max=10"`
	ReleaseDate       string  `json:"release_date" validate:"required,datetime=2006-01-02"`
	DurationInMinutes int     `json:"duration_in_minutes" validate:"required,min=1"`
	IsFeatured        bool    `json:"is_featured"`
	Synopsis          string  `json:"synopsis"`
	TrailerVideoID    string  `json:"trailer_video_id" validate:"max=50"`
	Price             float64 `json:"price" validate:"min=0"`
}

type UpdateMovieRequest struct {
	Title             string  `json:"title" validate:"required,max=200"`
	PosterURL         string  `json:"poster_url" validate:"required,url,max=500"`
	DetailPosterURL   *string `json:"detail_poster_url,omitempty" validate:"omitempty,url,max=500"`
	Genre             string  `json:"genre" validate:"required,max=100"`
	Rating            float64 `json:"rating" validate:"min=0,max=10"`
	ReleaseDate       string  `json:"release_date" validate:"required,datetime=2006-01-02"`
	DurationInMinutes int     `json:"duration_in_minutes" validate:"required,min=1"`
	IsFeatured        bool    `json:"is_featured"`
	Synopsis          string  `json:"synopsis"`
	TrailerVideoID    string  `json:"trailer_video_id" validate:"max=50"`
	Price             float64 `json:"price" validate:"min=0"`
}
