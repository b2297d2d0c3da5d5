package request

// CheckoutRequest is the body of POST /api/checkout. MovieID and ShowID
// are optional: a missing or unknown reference degrades to a booking
// without that link rather than failing the request. Seats arrive as a
// comma-separated list, matching the seat-selection form.
type CheckoutRequest struct {
	MovieID string `json:"movie_id"`
	ShowID  string `json:"show_id"`
	Seats   string `json:"seats" validate:"required"`
}

// QuoteRequest is the query of GET /api/checkout: same references, no
// commitment. Date and Time pass through for display only.
type QuoteRequest struct {
	MovieID string
	ShowID  string
	Seats   string
	Date    string
	Time    string
}
