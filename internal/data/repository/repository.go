package repository

import (
	"movie-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User    UserRepository
	Session SessionRepository
	Movie   MovieRepository
	Show    ShowRepository
	Booking BookingRepository
	Ledger  LedgerRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:    NewUserRepository(db, log),
		Session: NewSessionRepository(db, log),
		Movie:   NewMovieRepository(db, log),
		Show:    NewShowRepository(db, log),
		Booking: NewBookingRepository(db, log),
		Ledger:  NewLedgerRepository(db, log),
	}
}
