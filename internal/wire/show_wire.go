package wire

import (
	"movie-booking/internal/adaptor"
	"movie-booking/internal/data/repository"
	"movie-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireShow(
	r chi.Router,
	showHandler *adaptor.ShowHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/shows", showHandler.List)
	r.Get("/api/shows/{id}", showHandler.Get)
	r.Get("/api/shows/{id}/booked-seats", showHandler.BookedSeats)

	// ==================== STAFF ROUTES ====================
	staff := r.With(
		middleware.AuthSession(repo.Session, repo.User, log),
		middleware.Staff(repo.User, log),
	)
	staff.Post("/api/shows", showHandler.Create)
	staff.Delete("/api/shows/{id}", showHandler.Deactivate)
}
