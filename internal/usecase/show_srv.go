package usecase

import (
	"context"
	"fmt"
	"time"

	"movie-booking/internal/data/entity"
	"movie-booking/internal/data/repository"
	"movie-booking/internal/dto/request"
	"movie-booking/internal/dto/response"
	"movie-booking/pkg/cache"
	"movie-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ShowService interface {
	CreateShow(ctx context.Context, req *request.CreateShowRequest) (*response.ShowResponse, error)
	GetShow(ctx context.Context, id string) (*response.ShowResponse, error)
	ListActiveShows(ctx context.Context) ([]response.ShowResponse, error)
	ListShowsForMovie(ctx context.Context, movieID string) ([]response.ShowResponse, error)
	DeactivateShow(ctx context.Context, id string) error

	// BookedSeats is the unlocked, stale-tolerant read of a show's seat
	// ledger used to render the seat map. It never blocks on checkout
	// traffic; the commit protocol re-checks under the lock anyway.
	BookedSeats(ctx context.Context, showID string) (*response.BookedSeatsResponse, error)
}

type showService struct {
	repo   *repository.Repository
	cache  *cache.Cache
	config *utils.Config
	log    *zap.Logger
}

func NewShowService(repo *repository.Repository, c *cache.Cache, config *utils.Config, log *zap.Logger) ShowService {
	return &showService{
		repo:   repo,
		cache:  c,
		config: config,
		log:    log.With(zap.String("service", "show")),
	}
}

func bookedSeatsKey(showID uuid.UUID) string {
	return "show:booked:" + showID.String()
}

func (s *showService) CreateShow(ctx context.Context, req *request.CreateShowRequest) (*response.ShowResponse, error) {
	movieID, err := uuid.Parse(req.MovieID)
	if err != nil {
		return nil, fmt.Errorf("invalid movie ID format %s: %w", req.MovieID, err)
	}

	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		return nil, err
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %s not found", req.MovieID)
	}

	showDate, err := time.Parse("2006-01-02", req.ShowDate)
	if err != nil {
		return nil, fmt.Errorf("invalid show date %s: %w", req.ShowDate, err)
	}
	showTime, err := time.Parse("15:04", req.ShowTime)
	if err != nil {
		return nil, fmt.Errorf("invalid show time %s: %w", req.ShowTime, err)
	}

	seatsTotal := req.SeatsTotal
	if seatsTotal == 0 {
		seatsTotal = 100
	}

	show := &entity.Show{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		MovieID:    movieID,
		ShowDate:   showDate,
		ShowTime:   showTime,
		Price:      req.Price,
		Hall:       req.Hall,
		SeatsTotal: seatsTotal,
		IsActive:   true,
	}

	if err := s.repo.Show.Create(ctx, show); err != nil {
		s.log.Error("Failed to create show", zap.Error(err), zap.String("movie_id", req.MovieID))
		return nil, err
	}

	s.log.Info("Show created",
		zap.String("show_id", show.ID.String()),
		zap.String("movie_id", req.MovieID),
		zap.String("show_date", req.ShowDate),
	)

	resp := response.ShowToResponse(show)
	return &resp, nil
}

func (s *showService) GetShow(ctx context.Context, id string) (*response.ShowResponse, error) {
	showID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid show ID format %s: %w", id, err)
	}

	show, err := s.repo.Show.FindByID(ctx, showID)
	if err != nil {
		return nil, err
	}
	if show == nil {
		return nil, nil
	}

	resp := response.ShowToResponse(show)
	return &resp, nil
}

func (s *showService) ListActiveShows(ctx context.Context) ([]response.ShowResponse, error) {
	shows, err := s.repo.Show.FindAllActive(ctx)
	if err != nil {
		return nil, err
	}
	return showsToResponses(shows), nil
}

func (s *showService) ListShowsForMovie(ctx context.Context, movieID string) ([]response.ShowResponse, error) {
	id, err := uuid.Parse(movieID)
	if err != nil {
		return nil, fmt.Errorf("invalid movie ID format %s: %w", movieID, err)
	}

	shows, err := s.repo.Show.FindByMovieID(ctx, id, true)
	if err != nil {
		return nil, err
	}
	return showsToResponses(shows), nil
}

func (s *showService) DeactivateShow(ctx context.Context, id string) error {
	showID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid show ID format %s: %w", id, err)
	}

	if err := s.repo.Show.Deactivate(ctx, showID); err != nil {
		s.log.Error("Failed to deactivate show", zap.Error(err), zap.String("show_id", id))
		return err
	}

	s.log.Info("Show deactivated", zap.String("show_id", id))
	return nil
}

func (s *showService) BookedSeats(ctx context.Context, showID string) (*response.BookedSeatsResponse, error) {
	id, err := uuid.Parse(showID)
	if err != nil {
		return nil, fmt.Errorf("invalid show ID format %s: %w", showID, err)
	}

	key := bookedSeatsKey(id)
	var cached response.BookedSeatsResponse
	if s.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	show, err := s.repo.Show.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if show == nil {
		return nil, nil
	}

	booked := entity.ParseSeatSet(show.BookedSeats)
	if booked.Len() == 0 && show.SeatsBooked > 0 {
		// Ledger field not populated on this row yet: reconstruct from
		// the booking rows, same as the commit path does.
		booked, err = s.repo.Booking.SeatsByShowID(ctx, id)
		if err != nil {
			return nil, err
		}
	}

	resp := &response.BookedSeatsResponse{Booked: booked.List()}
	s.cache.SetJSON(ctx, key, resp, s.config.Redis.BookedSeatsTTL)
	return resp, nil
}

func showsToResponses(shows []*entity.Show) []response.ShowResponse {
	out := make([]response.ShowResponse, 0, len(shows))
	for _, show := range shows {
		out = append(out, response.ShowToResponse(show))
	}
	return out
}
