package request

type CreateShowRequest struct {
	MovieID    string  `json:"movie_id" validate:"required,uuid"`
	ShowDate   string  `json:"show_date" validate:"required,datetime=2006-01-02"`
	ShowTime   string  `json:"show_time" validate:"required,datetime=15:04"`
	Price      float64 `json:"price" validate:"min=0"`
	Hall       string  `json:"hall" validate:"max=100"`
	SeatsTotal int     `json:"seats_total" validate:"min=1,max=1000"`
}
