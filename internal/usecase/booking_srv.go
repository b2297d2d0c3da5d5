package usecase

import (
	"context"
	"fmt"

	"movie-booking/internal/data/entity"
	"movie-booking/internal/data/repository"
	"movie-booking/internal/dto/request"
	"movie-booking/internal/dto/response"
	"movie-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	UserBookings(ctx context.Context, userID string, page request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	ByTicket(ctx context.Context, ticketNumber string) (*response.BookingResponse, error)

	// RepairTotals recomputes total_price on bookings persisted with a
	// zero total, using the current price fallback chain. Admin-only.
	RepairTotals(ctx context.Context) (*response.RepairTotalsResponse, error)

	Dashboard(ctx context.Context, userID string) (*response.DashboardResponse, error)
}

type bookingService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewBookingService(repo *repository.Repository, config *utils.Config, log *zap.Logger) BookingService {
	return &bookingService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) UserBookings(ctx context.Context, userID string, page request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	bookings, err := s.repo.Booking.FindByUserID(ctx, id, page.Limit(), page.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Booking.CountByUserID(ctx, id)
	if err != nil {
		return nil, err
	}

	items := make([]response.BookingResponse, 0, len(bookings))
	for _, booking := range bookings {
		items = append(items, s.enrich(ctx, booking))
	}

	return response.NewPaginatedResponse(items, page.Page, page.Limit(), total), nil
}

func (s *bookingService) ByTicket(ctx context.Context, ticketNumber string) (*response.BookingResponse, error) {
	booking, err := s.repo.Booking.FindByTicketNumber(ctx, ticketNumber)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, nil
	}

	resp := s.enrich(ctx, booking)
	return &resp, nil
}

func (s *bookingService) RepairTotals(ctx context.Context) (*response.RepairTotalsResponse, error) {
	bookings, err := s.repo.Booking.FindZeroTotal(ctx)
	if err != nil {
		return nil, err
	}

	fixed := 0
	for _, booking := range bookings {
		seatCount := len(booking.SeatList())
		if seatCount == 0 {
			continue
		}

		var movie *entity.Movie
		var show *entity.Show
		if booking.MovieID != nil {
			movie, _ = s.repo.Movie.FindByID(ctx, *booking.MovieID)
		}
		if booking.ShowID != nil {
			show, _ = s.repo.Show.FindByID(ctx, *booking.ShowID)
		}

		total := ResolveSeatPrice(show, movie, s.config.Checkout.DefaultSeatPrice) * float64(seatCount)
		if err := s.repo.Booking.UpdateTotalPrice(ctx, booking.ID, total); err != nil {
			s.log.Error("Failed to repair booking total",
				zap.Error(err),
				zap.String("booking_id", booking.ID.String()),
			)
			continue
		}
		fixed++
	}

	s.log.Info("Booking totals repaired", zap.Int("scanned", len(bookings)), zap.Int("fixed", fixed))
	return &response.RepairTotalsResponse{Fixed: fixed}, nil
}

func (s *bookingService) Dashboard(ctx context.Context, userID string) (*response.DashboardResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	activeShows, err := s.repo.Show.FindAllActive(ctx)
	if err != nil {
		return nil, err
	}

	usersCount, err := s.repo.User.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	bookingsCount, err := s.repo.Booking.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	revenue, err := s.repo.Movie.TotalRevenue(ctx)
	if err != nil {
		return nil, err
	}

	myBookings, err := s.repo.Booking.CountByUserID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &response.DashboardResponse{
		ActiveShowsCount:   int64(len(activeShows)),
		TotalUsersCount:    usersCount,
		TotalBookingsCount: bookingsCount,
		TotalRevenue:       revenue,
		MyBookingsCount:    myBookings,
		ActiveShows:        showsToResponses(activeShows),
	}, nil
}

// enrich attaches display fields from the referenced movie and show.
// Lookups are best-effort; a dangling reference leaves the field blank.
func (s *bookingService) enrich(ctx context.Context, booking *entity.Booking) response.BookingResponse {
	resp := response.BookingToResponse(booking)

	if booking.MovieID != nil {
		if movie, _ := s.repo.Movie.FindByID(ctx, *booking.MovieID); movie != nil {
			resp.MovieTitle = movie.Title
		}
	}
	if booking.ShowID != nil {
		if show, _ := s.repo.Show.FindByID(ctx, *booking.ShowID); show != nil {
			resp.ShowDate = show.ShowDate.Format("2006-01-02")
			resp.ShowTime = show.ShowTime.Format("15:04")
		}
	}

	return resp
}
