package usecase

import (
	"context"
	"fmt"
	"time"

	"movie-booking/internal/data/entity"
	"movie-booking/internal/data/repository"
	"movie-booking/internal/dto/request"
	"movie-booking/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MovieService interface {
	CreateMovie(ctx context.Context, req *request.CreateMovieRequest) (*response.MovieResponse, error)
	GetMovie(ctx context.Context, id string) (*response.MovieResponse, error)
	UpdateMovie(ctx context.Context, id string, req *request.UpdateMovieRequest) (*response.MovieResponse, error)
	DeleteMovie(ctx context.Context, id string) error
	ListMovies(ctx context.Context, search string, page request.PaginatedRequest) (*response.PaginatedResponse[response.MovieResponse], error)
	ListFeatured(ctx context.Context) ([]response.MovieResponse, error)
}

type movieService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewMovieService(repo *repository.Repository, log *zap.Logger) MovieService {
	return &movieService{
		repo: repo,
		log:  log.With(zap.String("service", "movie")),
	}
}

func (s *movieService) CreateMovie(ctx context.Context, req *request.CreateMovieRequest) (*response.MovieResponse, error) {
	releaseDate, err := time.Parse("2006-01-02", req.ReleaseDate)
	if err != nil {
		return nil, fmt.Errorf("invalid release date %s: %w", req.ReleaseDate, err)
	}

	movie := &entity.Movie{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Title:             req.Title,
		PosterURL:         req.PosterURL,
		DetailPosterURL:   req.DetailPosterURL,
		Genre:             req.Genre,
		Rating:            req.Rating,
		ReleaseDate:       releaseDate,
		DurationInMinutes: req.DurationInMinutes,
		IsFeatured:        req.IsFeatured,
		Synopsis:          req.Synopsis,
		TrailerVideoID:    req.TrailerVideoID,
		Price:             req.Price,
	}

	if err := s.repo.Movie.Create(ctx, movie); err != nil {
		s.log.Error("Failed to create movie", zap.Error(err), zap.String("title", req.Title))
		return nil, err
	}

	s.log.Info("Movie created", zap.String("movie_id", movie.ID.String()), zap.String("title", movie.Title))

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) GetMovie(ctx context.Context, id string) (*response.MovieResponse, error) {
	movieID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid movie ID format %s: %w", id, err)
	}

	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		return nil, err
	}
	if movie == nil {
		return nil, nil
	}

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) UpdateMovie(ctx context.Context, id string, req *request.UpdateMovieRequest) (*response.MovieResponse, error) {
	movieID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid movie ID format %s: %w", id, err)
	}

	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		return nil, err
	}
	if movie == nil {
		return nil, nil
	}

	releaseDate, err := time.Parse("2006-01-02", req.ReleaseDate)
	if err != nil {
		return nil, fmt.Errorf("invalid release date %s: %w", req.ReleaseDate, err)
	}

	movie.Title = req.Title
	movie.PosterURL = req.PosterURL
	movie.DetailPosterURL = req.DetailPosterURL
	movie.Genre = req.Genre
	movie.Rating = req.Rating
	movie.ReleaseDate = releaseDate
	movie.DurationInMinutes = req.DurationInMinutes
	movie.IsFeatured = req.IsFeatured
	movie.Synopsis = req.Synopsis
	movie.TrailerVideoID = req.TrailerVideoID
	movie.Price = req.Price
	movie.UpdatedAt = time.Now()

	if err := s.repo.Movie.Update(ctx, movie); err != nil {
		s.log.Error("Failed to update movie", zap.Error(err), zap.String("movie_id", id))
		return nil, err
	}

	s.log.Info("Movie updated", zap.String("movie_id", id))

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) DeleteMovie(ctx context.Context, id string) error {
	movieID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid movie ID format %s: %w", id, err)
	}

	if err := s.repo.Movie.Delete(ctx, movieID); err != nil {
		s.log.Error("Failed to delete movie", zap.Error(err), zap.String("movie_id", id))
		return err
	}

	s.log.Info("Movie deleted", zap.String("movie_id", id))
	return nil
}

func (s *movieService) ListMovies(ctx context.Context, search string, page request.PaginatedRequest) (*response.PaginatedResponse[response.MovieResponse], error) {
	movies, err := s.repo.Movie.FindAll(ctx, search, page.Offset(), page.Limit())
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Movie.CountAll(ctx, search)
	if err != nil {
		return nil, err
	}

	items := make([]response.MovieResponse, 0, len(movies))
	for _, movie := range movies {
		items = append(items, response.MovieToResponse(movie))
	}

	return response.NewPaginatedResponse(items, page.Page, page.Limit(), total), nil
}

func (s *movieService) ListFeatured(ctx context.Context) ([]response.MovieResponse, error) {
	movies, err := s.repo.Movie.FindFeatured(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]response.MovieResponse, 0, len(movies))
	for _, movie := range movies {
		items = append(items, response.MovieToResponse(movie))
	}
	return items, nil
}
