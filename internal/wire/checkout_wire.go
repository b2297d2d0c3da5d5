package wire

import (
	"movie-booking/internal/adaptor"
	"movie-booking/internal/data/repository"
	"movie-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCheckout(
	r chi.Router,
	checkoutHandler *adaptor.CheckoutHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// Quote is public; committing a booking requires a session.
	r.Get("/api/checkout", checkoutHandler.Quote)

	r.With(middleware.AuthSession(repo.Session, repo.User, log)).
		Post("/api/checkout", checkoutHandler.Commit)
}
