package wire

import (
	"movie-booking/internal/adaptor"
	"movie-booking/internal/data/repository"
	"movie-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireMisc(
	r chi.Router,
	handler *adaptor.Handler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/theaters", handler.Theater.List)

	// Chat requires a session so the relay cannot be farmed anonymously.
	r.With(middleware.AuthSession(repo.Session, repo.User, log)).
		Post("/api/chat", handler.Chat.Ask)
}
