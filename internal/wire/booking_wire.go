package wire

import (
	"movie-booking/internal/adaptor"
	"movie-booking/internal/data/repository"
	"movie-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	auth := middleware.AuthSession(repo.Session, repo.User, log)

	// ==================== PROTECTED ROUTES ====================
	r.With(auth).Get("/api/bookings", bookingHandler.MyBookings)
	r.With(auth).Get("/api/bookings/ticket/{ticket}", bookingHandler.ByTicket)

	// ==================== STAFF ROUTES ====================
	r.With(auth, middleware.Staff(repo.User, log)).
		Get("/api/dashboard", bookingHandler.Dashboard)

	// ==================== ADMIN ROUTES ====================
	r.With(auth, middleware.Superuser(repo.User, log)).
		Post("/api/admin/repair-totals", bookingHandler.RepairTotals)
}
