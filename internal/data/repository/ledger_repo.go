package repository

import (
	"context"
	"fmt"
	"strings"

	"movie-booking/internal/data/entity"
	"movie-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// execer and querier are the slices of pgx that the ledger helpers need;
// both the pool wrapper and pgx.Tx satisfy them.
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// LedgerScope is the exclusive-access scope over one show's seat ledger.
// It exists only inside WithShowLock: the show row is locked for the
// scope's lifetime, and every write issued through it commits or rolls
// back as one unit with the rest of the scope.
type LedgerScope interface {
	// Show returns the locked show row as read at scope entry.
	Show() *entity.Show

	// ReadBooked returns the authoritative booked-seat set: the
	// denormalized ledger field when populated, otherwise the union of
	// seat sets across this show's booking rows.
	ReadBooked(ctx context.Context) (entity.SeatSet, error)

	// WriteBooked persists the set back to the ledger field and keeps
	// the booked-seat count in step.
	WriteBooked(ctx context.Context, seats entity.SeatSet) error

	// CreateBooking inserts a booking row inside the scope. A ticket
	// number collision is reported as ErrTicketTaken and leaves the
	// scope usable, so the caller can regenerate and retry the insert
	// without redoing the ledger work.
	CreateBooking(ctx context.Context, booking *entity.Booking) error
}

// LedgerRepository serializes read-modify-write cycles on a show's seat
// ledger. One show is the unit of serialization: scopes for different
// shows never block each other.
type LedgerRepository interface {
	WithShowLock(ctx context.Context, showID uuid.UUID, fn func(scope LedgerScope) error) error
}

type ledgerRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewLedgerRepository(db database.PgxIface, log *zap.Logger) LedgerRepository {
	return &ledgerRepository{
		db:  db,
		log: log.With(zap.String("repository", "ledger")),
	}
}

// WithShowLock opens a transaction, takes the row lock on the show via
// SELECT ... FOR UPDATE, and runs fn inside the scope. Any error from fn
// rolls the whole transaction back, so a partial state (ledger written
// but no booking row, or the reverse) is never durable. The caller
// bounds the wait by putting a deadline on ctx; hitting it surfaces as
// ErrLockTimeout rather than a conflict.
func (r *ledgerRepository) WithShowLock(ctx context.Context, showID uuid.UUID, fn func(scope LedgerScope) error) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin ledger tx: %w", err)
	}
	defer tx.Rollback(context.WithoutCancel(ctx))

	query := fmt.Sprintf(`SELECT %s FROM shows WHERE id = $1 FOR UPDATE`, showColumns)

	show, err := scanShow(tx.QueryRow(ctx, query, showID))
	if err == pgx.ErrNoRows {
		return ErrShowNotFound
	}
	if err != nil {
		if isLockWaitErr(err) {
			r.log.Warn("Show lock wait timed out", zap.String("show_id", showID.String()))
			return ErrLockTimeout
		}
		r.log.Error("Failed to lock show row",
			zap.Error(err),
			zap.String("show_id", showID.String()),
		)
		return fmt.Errorf("lock show %s: %w", showID.String(), err)
	}

	if err := fn(&ledgerScope{tx: tx, show: show, log: r.log}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		r.log.Error("Failed to commit ledger tx",
			zap.Error(err),
			zap.String("show_id", showID.String()),
		)
		return fmt.Errorf("commit ledger tx for show %s: %w", showID.String(), err)
	}

	return nil
}

type ledgerScope struct {
	tx   pgx.Tx
	show *entity.Show
	log  *zap.Logger
}

func (s *ledgerScope) Show() *entity.Show {
	return s.show
}

func (s *ledgerScope) ReadBooked(ctx context.Context) (entity.SeatSet, error) {
	// The ledger field is a cache over booking rows; trust it only when
	// populated so legacy shows without it still read correctly.
	if strings.TrimSpace(s.show.BookedSeats) != "" {
		return entity.ParseSeatSet(s.show.BookedSeats), nil
	}

	set, err := seatsByShowID(ctx, s.tx, s.show.ID)
	if err != nil {
		return nil, fmt.Errorf("rebuild ledger for show %s: %w", s.show.ID.String(), err)
	}
	return set, nil
}

func (s *ledgerScope) WriteBooked(ctx context.Context, seats entity.SeatSet) error {
	query := `
		UPDATE shows
		SET booked_seats = $2, seats_booked = $3, updated_at = NOW()
		WHERE id = $1
	`

	_, err := s.tx.Exec(ctx, query, s.show.ID, seats.Join(), seats.Len())
	if err != nil {
		return fmt.Errorf("write ledger for show %s: %w", s.show.ID.String(), err)
	}

	s.show.BookedSeats = seats.Join()
	s.show.SeatsBooked = seats.Len()
	return nil
}

func (s *ledgerScope) CreateBooking(ctx context.Context, booking *entity.Booking) error {
	// Savepoint per attempt: a unique violation aborts only the
	// savepoint, keeping the outer transaction (row lock and ledger
	// write) intact for a retry with a fresh ticket number.
	sp, err := s.tx.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin booking savepoint: %w", err)
	}

	if err := insertBooking(ctx, sp, booking); err != nil {
		sp.Rollback(ctx)
		if isUniqueViolation(err, "") {
			return ErrTicketTaken
		}
		return fmt.Errorf("insert booking %s: %w", booking.TicketNumber, err)
	}

	if err := sp.Commit(ctx); err != nil {
		return fmt.Errorf("commit booking savepoint: %w", err)
	}

	return nil
}
