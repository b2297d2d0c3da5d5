package adaptor

import (
	"movie-booking/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth     *AuthHandler
	Movie    *MovieHandler
	Show     *ShowHandler
	Checkout *CheckoutHandler
	Booking  *BookingHandler
	Chat     *ChatHandler
	Theater  *TheaterHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(service.Auth, log),
		Movie:    NewMovieHandler(service.Movie, log),
		Show:     NewShowHandler(service.Show, log),
		Checkout: NewCheckoutHandler(service.Checkout, log),
		Booking:  NewBookingHandler(service.Booking, log),
		Chat:     NewChatHandler(service.Chat, log),
		Theater:  NewTheaterHandler(log),
	}
}
