package response

type ChatResponse struct {
	Reply string `json:"reply"`
}

// DashboardResponse mirrors the staff dashboard numbers.
type DashboardResponse struct {
	ActiveShowsCount  int64          `json:"active_shows_count"`
	TotalUsersCount   int64          `json:"total_users_count"`
	TotalBookingsCount int64         `json:"total_bookings_count"`
	TotalRevenue      float64        `json:"total_revenue"`
	MyBookingsCount   int64          `json:"my_bookings_count"`
	ActiveShows       []ShowResponse `json:"active_shows"`
}

// TheaterResponse entries come from a static directory, not the store.
type TheaterResponse struct {
	Name    string `json:"name"`
	City    string `json:"city"`
	Halls   int    `json:"halls"`
	Address string `json:"address"`
	Image   string `json:"image"`
}

// RepairTotalsResponse reports how many legacy bookings were fixed.
type RepairTotalsResponse struct {
	Fixed int `json:"fixed"`
}
