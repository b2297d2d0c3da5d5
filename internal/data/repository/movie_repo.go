package repository

import (
	"context"
	"fmt"
	"strings"

	"movie-booking/internal/data/entity"
	"movie-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type MovieRepository interface {
	Create(ctx context.Context, movie *entity.Movie) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error)
	Update(ctx context.Context, movie *entity.Movie) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindAll(ctx context.Context, search string, offset, limit int) ([]*entity.Movie, error)
	CountAll(ctx context.Context, search string) (int64, error)
	FindFeatured(ctx context.Context) ([]*entity.Movie, error)
	TotalRevenue(ctx context.Context) (float64, error)
}

const movieColumns = `id, title, poster_url, detail_poster_url, genre, rating, revenue,
	       release_date, duration_in_minutes, votes, is_featured, synopsis,
	       trailer_video_id, price, created_at, updated_at, deleted_at`

type movieRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMovieRepository(db database.PgxIface, log *zap.Logger) MovieRepository {
	return &movieRepository{
		db:  db,
		log: log.With(zap.String("repository", "movie")),
	}
}

func (r *movieRepository) Create(ctx context.Context, movie *entity.Movie) error {
	query := `
		INSERT INTO movies (id, title, poster_url, detail_poster_url, genre, rating,
		                    revenue, release_date, duration_in_minutes, votes,
		                    is_featured, synopsis, trailer_video_id, price,
		                    created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := r.db.Exec(ctx, query,
		movie.ID,
		movie.Title,
		movie.PosterURL,
		movie.DetailPosterURL,
		movie.Genre,
		movie.Rating,
		movie.Revenue,
		movie.ReleaseDate,
		movie.DurationInMinutes,
		movie.Votes,
		movie.IsFeatured,
		movie.Synopsis,
		movie.TrailerVideoID,
		movie.Price,
		movie.CreatedAt,
		movie.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create movie",
			zap.Error(err),
			zap.String("title", movie.Title),
		)
		return fmt.Errorf("create movie %s: %w", movie.Title, err)
	}

	return nil
}

func (r *movieRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error) {
	query := fmt.Sprintf(`SELECT %s FROM movies WHERE id = $1 AND deleted_at IS NULL`, movieColumns)

	movie, err := r.scanMovie(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find movie by ID",
			zap.Error(err),
			zap.String("movie_id", id.String()),
		)
		return nil, fmt.Errorf("find movie by ID %s: %w", id.String(), err)
	}

	return movie, nil
}

func (r *movieRepository) FindAll(ctx context.Context, search string, offset, limit int) ([]*entity.Movie, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(fmt.Sprintf(`SELECT %s FROM movies WHERE deleted_at IS NULL`, movieColumns))

	args := []interface{}{}
	if search != "" {
		// case-insensitive match on title, genre or synopsis
		queryBuilder.WriteString(` AND (title ILIKE $1 OR genre ILIKE $1 OR synopsis ILIKE $1)`)
		args = append(args, "%"+search+"%")
	}

	queryBuilder.WriteString(` ORDER BY release_date DESC`)
	queryBuilder.WriteString(fmt.Sprintf(` LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2))
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		r.log.Error("Failed to find movies",
			zap.Error(err),
			zap.String("search", search),
		)
		return nil, fmt.Errorf("find movies: %w", err)
	}
	defer rows.Close()

	var movies []*entity.Movie
	for rows.Next() {
		movie, err := r.scanMovie(rows)
		if err != nil {
			r.log.Error("Failed to scan movie row", zap.Error(err))
			return nil, fmt.Errorf("scan movie row: %w", err)
		}
		movies = append(movies, movie)
	}

	return movies, nil
}

func (r *movieRepository) CountAll(ctx context.Context, search string) (int64, error) {
	query := `SELECT COUNT(*) FROM movies WHERE deleted_at IS NULL`
	args := []interface{}{}
	if search != "" {
		query += ` AND (title ILIKE $1 OR genre ILIKE $1 OR synopsis ILIKE $1)`
		args = append(args, "%"+search+"%")
	}

	var count int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		r.log.Error("Failed to count movies", zap.Error(err))
		return 0, fmt.Errorf("count movies: %w", err)
	}

	return count, nil
}

func (r *movieRepository) FindFeatured(ctx context.Context) ([]*entity.Movie, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM movies
		WHERE deleted_at IS NULL AND is_featured = TRUE
		ORDER BY release_date DESC
	`, movieColumns)

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find featured movies", zap.Error(err))
		return nil, fmt.Errorf("find featured movies: %w", err)
	}
	defer rows.Close()

	var movies []*entity.Movie
	for rows.Next() {
		movie, err := r.scanMovie(rows)
		if err != nil {
			r.log.Error("Failed to scan movie row", zap.Error(err))
			return nil, fmt.Errorf("scan movie row: %w", err)
		}
		movies = append(movies, movie)
	}

	return movies, nil
}

func (r *movieRepository) Update(ctx context.Context, movie *entity.Movie) error {
	query := `
		UPDATE movies
		SET title = $2, poster_url = $3, detail_poster_url = $4, genre = $5,
		    rating = $6, revenue = $7, release_date = $8, duration_in_minutes = $9,
		    votes = $10, is_featured = $11, synopsis = $12, trailer_video_id = $13,
		    price = $14, updated_at = $15
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query,
		movie.ID,
		movie.Title,
		movie.PosterURL,
		movie.DetailPosterURL,
		movie.Genre,
		movie.Rating,
		movie.Revenue,
		movie.ReleaseDate,
		movie.DurationInMinutes,
		movie.Votes,
		movie.IsFeatured,
		movie.Synopsis,
		movie.TrailerVideoID,
		movie.Price,
		movie.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update movie",
			zap.Error(err),
			zap.String("movie_id", movie.ID.String()),
		)
		return fmt.Errorf("update movie %s: %w", movie.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("movie %s not found", movie.ID.String())
	}

	return nil
}

func (r *movieRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE movies SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete movie",
			zap.Error(err),
			zap.String("movie_id", id.String()),
		)
		return fmt.Errorf("delete movie %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("movie %s not found", id.String())
	}

	r.log.Info("Movie deleted", zap.String("movie_id", id.String()))
	return nil
}

func (r *movieRepository) TotalRevenue(ctx context.Context) (float64, error) {
	query := `SELECT COALESCE(SUM(revenue), 0) FROM movies WHERE deleted_at IS NULL`

	var total float64
	if err := r.db.QueryRow(ctx, query).Scan(&total); err != nil {
		r.log.Error("Failed to sum movie revenue", zap.Error(err))
		return 0, fmt.Errorf("sum movie revenue: %w", err)
	}

	return total, nil
}

func (r *movieRepository) scanMovie(row pgx.Row) (*entity.Movie, error) {
	var movie entity.Movie
	err := row.Scan(
		&movie.ID,
		&movie.Title,
		&movie.PosterURL,
		&movie.DetailPosterURL,
		&movie.Genre,
		&movie.Rating,
		&movie.Revenue,
		&movie.ReleaseDate,
		&movie.DurationInMinutes,
		&movie.Votes,
		&movie.IsFeatured,
		&movie.Synopsis,
		&movie.TrailerVideoID,
		&movie.Price,
		&movie.CreatedAt,
		&movie.UpdatedAt,
		&movie.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &movie, nil
}
