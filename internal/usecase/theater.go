package usecase

import "movie-booking/internal/dto/response"

// Theaters returns the partner theater directory. The list is static
// content, not store-backed.
func Theaters() []response.TheaterResponse {
	return []response.TheaterResponse{
		{Name: "Grand Cinema Downtown", City: "Metropolis", Halls: 8, Address: "12 Main Street", Image: "/static/theaters/grand.jpg"},
		{Name: "Starlight Multiplex", City: "Metropolis", Halls: 12, Address: "45 Harbor Avenue", Image: "/static/theaters/starlight.jpg"},
		{Name: "Riverside Screens", City: "Springfield", Halls: 6, Address: "3 River Road", Image: "/static/theaters/riverside.jpg"},
		{Name: "Galaxy IMAX", City: "Springfield", Halls: 4, Address: "78 Orion Boulevard", Image: "/static/theaters/galaxy.jpg"},
		{Name: "Sunset Drive-In", City: "Shelbyville", Halls: 2, Address: "Route 9, Mile 14", Image: "/static/theaters/sunset.jpg"},
	}
}
