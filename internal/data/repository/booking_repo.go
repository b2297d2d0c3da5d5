package repository

import (
	"context"
	"fmt"

	"movie-booking/internal/data/entity"
	"movie-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingRepository interface {
	// Create inserts a booking outside any ledger scope (the no-show
	// path). Returns ErrTicketTaken on a ticket number collision.
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByTicketNumber(ctx context.Context, ticketNumber string) (*entity.Booking, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
	CountAll(ctx context.Context) (int64, error)

	// SeatsByShowID unions the seat sets of every booking for a show.
	// Source of truth when the denormalized ledger field is empty.
	SeatsByShowID(ctx context.Context, showID uuid.UUID) (entity.SeatSet, error)

	// FindZeroTotal and UpdateTotalPrice back the repair pass that
	// recomputes totals on legacy rows.
	FindZeroTotal(ctx context.Context) ([]*entity.Booking, error)
	UpdateTotalPrice(ctx context.Context, id uuid.UUID, totalPrice float64) error
}

const bookingColumns = `id, user_id, movie_id, show_id, seats, total_price, ticket_number, created_at`

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	if err := insertBooking(ctx, r.db, booking); err != nil {
		if isUniqueViolation(err, "") {
			return ErrTicketTaken
		}
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("user_id", booking.UserID.String()),
			zap.String("ticket_number", booking.TicketNumber),
		)
		return fmt.Errorf("create booking %s: %w", booking.TicketNumber, err)
	}

	return nil
}

// insertBooking is shared between the plain repository and the ledger
// scope so both paths write identical rows.
func insertBooking(ctx context.Context, db execer, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, user_id, movie_id, show_id, seats, total_price,
		                      ticket_number, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := db.Exec(ctx, query,
		booking.ID,
		booking.UserID,
		booking.MovieID,
		booking.ShowID,
		booking.Seats,
		booking.TotalPrice,
		booking.TicketNumber,
		booking.CreatedAt,
	)
	return err
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := fmt.Sprintf(`SELECT %s FROM bookings WHERE id = $1`, bookingColumns)

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByTicketNumber(ctx context.Context, ticketNumber string) (*entity.Booking, error) {
	query := fmt.Sprintf(`SELECT %s FROM bookings WHERE ticket_number = $1`, bookingColumns)

	booking, err := scanBooking(r.db.QueryRow(ctx, query, ticketNumber))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ticket number",
			zap.Error(err),
			zap.String("ticket_number", ticketNumber),
		)
		return nil, fmt.Errorf("find booking by ticket number %s: %w", ticketNumber, err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, bookingColumns)

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find bookings by user ID %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, nil
}

func (r *bookingRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count bookings by user ID %s: %w", userID.String(), err)
	}

	return count, nil
}

func (r *bookingRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings`).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings", zap.Error(err))
		return 0, fmt.Errorf("count bookings: %w", err)
	}
	return count, nil
}

func (r *bookingRepository) SeatsByShowID(ctx context.Context, showID uuid.UUID) (entity.SeatSet, error) {
	set, err := seatsByShowID(ctx, r.db, showID)
	if err != nil {
		r.log.Error("Failed to union booked seats",
			zap.Error(err),
			zap.String("show_id", showID.String()),
		)
		return nil, fmt.Errorf("union booked seats for show %s: %w", showID.String(), err)
	}
	return set, nil
}

// seatsByShowID reconstructs the ledger set from booking rows. Shared
// with the ledger scope so the in-transaction fallback reads the same
// way as the public one.
func seatsByShowID(ctx context.Context, db querier, showID uuid.UUID) (entity.SeatSet, error) {
	rows, err := db.Query(ctx, `SELECT seats FROM bookings WHERE show_id = $1`, showID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	set := make(entity.SeatSet)
	for rows.Next() {
		var seats string
		if err := rows.Scan(&seats); err != nil {
			return nil, err
		}
		set = set.Union(entity.ParseSeatSet(seats))
	}

	return set, rows.Err()
}

func (r *bookingRepository) FindZeroTotal(ctx context.Context) ([]*entity.Booking, error) {
	query := fmt.Sprintf(`SELECT %s FROM bookings WHERE total_price IS NULL OR total_price = 0`, bookingColumns)

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find zero-total bookings", zap.Error(err))
		return nil, fmt.Errorf("find zero-total bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, nil
}

func (r *bookingRepository) UpdateTotalPrice(ctx context.Context, id uuid.UUID, totalPrice float64) error {
	result, err := r.db.Exec(ctx, `UPDATE bookings SET total_price = $2 WHERE id = $1`, id, totalPrice)
	if err != nil {
		r.log.Error("Failed to update booking total",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return fmt.Errorf("update booking %s total: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", id.String())
	}

	return nil
}

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var booking entity.Booking
	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.MovieID,
		&booking.ShowID,
		&booking.Seats,
		&booking.TotalPrice,
		&booking.TicketNumber,
		&booking.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}
