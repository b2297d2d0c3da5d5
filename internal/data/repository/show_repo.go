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

type ShowRepository interface {
	Create(ctx context.Context, show *entity.Show) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Show, error)
	FindByMovieID(ctx context.Context, movieID uuid.UUID, activeOnly bool) ([]*entity.Show, error)
	FindAllActive(ctx context.Context) ([]*entity.Show, error)
	CountActive(ctx context.Context) (int64, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

const showColumns = `id, movie_id, show_date, show_time, price, hall, seats_total,
	       seats_booked, is_active, booked_seats, created_at, updated_at`

type showRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewShowRepository(db database.PgxIface, log *zap.Logger) ShowRepository {
	return &showRepository{
		db:  db,
		log: log.With(zap.String("repository", "show")),
	}
}

func (r *showRepository) Create(ctx context.Context, show *entity.Show) error {
	query := `
		INSERT INTO shows (id, movie_id, show_date, show_time, price, hall,
		                   seats_total, seats_booked, is_active, booked_seats,
		                   created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.Exec(ctx, query,
		show.ID,
		show.MovieID,
		show.ShowDate,
		show.ShowTime,
		show.Price,
		show.Hall,
		show.SeatsTotal,
		show.SeatsBooked,
		show.IsActive,
		show.BookedSeats,
		show.CreatedAt,
		show.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create show",
			zap.Error(err),
			zap.String("movie_id", show.MovieID.String()),
		)
		return fmt.Errorf("create show for movie %s: %w", show.MovieID.String(), err)
	}

	return nil
}

func (r *showRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Show, error) {
	query := fmt.Sprintf(`SELECT %s FROM shows WHERE id = $1`, showColumns)

	show, err := scanShow(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find show by ID",
			zap.Error(err),
			zap.String("show_id", id.String()),
		)
		return nil, fmt.Errorf("find show by ID %s: %w", id.String(), err)
	}

	return show, nil
}

func (r *showRepository) FindByMovieID(ctx context.Context, movieID uuid.UUID, activeOnly bool) ([]*entity.Show, error) {
	query := fmt.Sprintf(`SELECT %s FROM shows WHERE movie_id = $1`, showColumns)
	if activeOnly {
		query += ` AND is_active = TRUE`
	}
	query += ` ORDER BY show_date, show_time`

	rows, err := r.db.Query(ctx, query, movieID)
	if err != nil {
		r.log.Error("Failed to find shows by movie ID",
			zap.Error(err),
			zap.String("movie_id", movieID.String()),
		)
		return nil, fmt.Errorf("find shows by movie ID %s: %w", movieID.String(), err)
	}
	defer rows.Close()

	return collectShows(rows)
}

func (r *showRepository) FindAllActive(ctx context.Context) ([]*entity.Show, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM shows
		WHERE is_active = TRUE
		ORDER BY show_date, show_time
	`, showColumns)

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find active shows", zap.Error(err))
		return nil, fmt.Errorf("find active shows: %w", err)
	}
	defer rows.Close()

	return collectShows(rows)
}

func (r *showRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM shows WHERE is_active = TRUE`).Scan(&count); err != nil {
		r.log.Error("Failed to count active shows", zap.Error(err))
		return 0, fmt.Errorf("count active shows: %w", err)
	}
	return count, nil
}

// Deactivate soft-disables a show. Shows are never deleted while
// bookings reference them.
func (r *showRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE shows SET is_active = FALSE, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to deactivate show",
			zap.Error(err),
			zap.String("show_id", id.String()),
		)
		return fmt.Errorf("deactivate show %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("show %s not found", id.String())
	}

	return nil
}

func scanShow(row pgx.Row) (*entity.Show, error) {
	var show entity.Show
	err := row.Scan(
		&show.ID,
		&show.MovieID,
		&show.ShowDate,
		&show.ShowTime,
		&show.Price,
		&show.Hall,
		&show.SeatsTotal,
		&show.SeatsBooked,
		&show.IsActive,
		&show.BookedSeats,
		&show.CreatedAt,
		&show.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &show, nil
}

func collectShows(rows pgx.Rows) ([]*entity.Show, error) {
	var shows []*entity.Show
	for rows.Next() {
		show, err := scanShow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan show row: %w", err)
		}
		shows = append(shows, show)
	}
	return shows, nil
}
