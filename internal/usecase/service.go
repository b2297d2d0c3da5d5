package usecase

import (
	"movie-booking/internal/data/repository"
	"movie-booking/pkg/cache"
	"movie-booking/pkg/utils"

	"go.uber.org/zap"
)

// Service bundles every use case behind one constructor for wiring.
type Service struct {
	Auth     AuthService
	Movie    MovieService
	Show     ShowService
	Checkout CheckoutService
	Booking  BookingService
	Chat     ChatService
}

func NewService(repo *repository.Repository, c *cache.Cache, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:     NewAuthService(repo, config, log),
		Movie:    NewMovieService(repo, log),
		Show:     NewShowService(repo, c, config, log),
		Checkout: NewCheckoutService(repo, c, config, log),
		Booking:  NewBookingService(repo, config, log),
		Chat:     NewChatService(config, log),
	}
}
