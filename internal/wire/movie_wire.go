package wire

import (
	"movie-booking/internal/adaptor"
	"movie-booking/internal/data/repository"
	"movie-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireMovie(
	r chi.Router,
	movieHandler *adaptor.MovieHandler,
	showHandler *adaptor.ShowHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/movies", movieHandler.List)
	r.Get("/api/movies/featured", movieHandler.Featured)
	r.Get("/api/movies/{id}", movieHandler.Get)
	r.Get("/api/movies/{id}/shows", showHandler.ListForMovie)

	// ==================== STAFF ROUTES ====================
	staff := r.With(
		middleware.AuthSession(repo.Session, repo.User, log),
		middleware.Staff(repo.User, log),
	)
	staff.Post("/api/movies", movieHandler.Create)
	staff.Put("/api/movies/{id}", movieHandler.Update)
	staff.Delete("/api/movies/{id}", movieHandler.Delete)
}
