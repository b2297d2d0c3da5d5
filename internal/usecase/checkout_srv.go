package usecase

import (
	"context"
	"errors"
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

type CheckoutService interface {
	// Quote prices a prospective booking. Non-binding: no locks, no
	// writes, and the answer may be stale by commit time.
	Quote(ctx context.Context, req *request.QuoteRequest) (*response.QuoteResponse, error)

	// AttemptBooking runs the booking commit protocol: it either
	// commits a booking (ledger update + booking row, atomically) or
	// returns a *SeatConflictError naming exactly the seats that were
	// already taken. repository.ErrLockTimeout reports a transient
	// failure to acquire the show row.
	AttemptBooking(ctx context.Context, userID string, req *request.CheckoutRequest) (*response.BookingResponse, error)
}

type checkoutService struct {
	repo   *repository.Repository
	cache  *cache.Cache
	config *utils.Config
	log    *zap.Logger
}

func NewCheckoutService(repo *repository.Repository, c *cache.Cache, config *utils.Config, log *zap.Logger) CheckoutService {
	return &checkoutService{
		repo:   repo,
		cache:  c,
		config: config,
		log:    log.With(zap.String("service", "checkout")),
	}
}

// ResolveSeatPrice picks the per-seat price: show price when positive,
// else movie price when positive, else the configured default. Pure;
// called at quote time for display and again at commit time so client
// input never sets the price.
func ResolveSeatPrice(show *entity.Show, movie *entity.Movie, defaultPrice float64) float64 {
	if show != nil && show.Price > 0 {
		return show.Price
	}
	if movie != nil && movie.Price > 0 {
		return movie.Price
	}
	return defaultPrice
}

func (s *checkoutService) Quote(ctx context.Context, req *request.QuoteRequest) (*response.QuoteResponse, error) {
	movie, show := s.resolveRefs(ctx, req.MovieID, req.ShowID)

	seats := entity.ParseSeatSet(req.Seats)
	pricePerSeat := ResolveSeatPrice(show, movie, s.config.Checkout.DefaultSeatPrice)

	// A quote with no seats still shows the single-seat price.
	count := seats.Len()
	if count < 1 {
		count = 1
	}

	resp := &response.QuoteResponse{
		Seats:        seats.List(),
		Date:         req.Date,
		Time:         req.Time,
		PricePerSeat: pricePerSeat,
		TotalPrice:   pricePerSeat * float64(count),
	}
	if movie != nil {
		m := response.MovieToResponse(movie)
		resp.Movie = &m
	}
	if show != nil {
		sh := response.ShowToResponse(show)
		resp.Show = &sh
	}

	return resp, nil
}

func (s *checkoutService) AttemptBooking(ctx context.Context, userID string, req *request.CheckoutRequest) (*response.BookingResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	requested := entity.ParseSeatSet(req.Seats)
	if requested.Len() == 0 {
		return nil, ErrNoSeats
	}

	// Unknown or malformed references degrade to "no movie"/"no show"
	// rather than failing the request.
	movie, show := s.resolveRefs(ctx, req.MovieID, req.ShowID)

	// Price is always recomputed here; the quote the client saw is
	// advisory only.
	pricePerSeat := ResolveSeatPrice(show, movie, s.config.Checkout.DefaultSeatPrice)

	booking := &entity.Booking{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		UserID:     userUUID,
		Seats:      requested.Join(),
		TotalPrice: pricePerSeat * float64(requested.Len()),
	}
	if movie != nil {
		booking.MovieID = &movie.ID
	}

	if show == nil {
		// No show to serialize on: persist the booking with no ledger
		// interaction. No conflict detection is possible on this path.
		if err := s.createWithRetry(ctx, booking, s.repo.Booking.Create); err != nil {
			s.log.Error("Failed to create bare booking",
				zap.Error(err),
				zap.String("user_id", userID),
				zap.Strings("seats", requested.List()),
			)
			return nil, err
		}

		s.log.Info("Booking created without show",
			zap.String("ticket_number", booking.TicketNumber),
			zap.String("user_id", userID),
			zap.Int("seat_count", requested.Len()),
		)
		resp := response.BookingToResponse(booking)
		return &resp, nil
	}

	booking.ShowID = &show.ID

	// Bound the wait for the show row so a pile-up surfaces as a
	// retryable timeout, not a hung request.
	lockCtx, cancel := context.WithTimeout(ctx, s.config.Checkout.LockTimeout)
	defer cancel()

	err = s.repo.Ledger.WithShowLock(lockCtx, show.ID, func(scope repository.LedgerScope) error {
		existing, err := scope.ReadBooked(lockCtx)
		if err != nil {
			return err
		}

		if conflicts := existing.Intersect(requested); conflicts.Len() > 0 {
			return &SeatConflictError{Seats: conflicts.List()}
		}

		if err := scope.WriteBooked(lockCtx, existing.Union(requested)); err != nil {
			return err
		}

		return s.createWithRetry(lockCtx, booking, scope.CreateBooking)
	})

	if err != nil {
		if conflict, ok := AsSeatConflict(err); ok {
			s.log.Info("Booking conflict",
				zap.String("user_id", userID),
				zap.String("show_id", show.ID.String()),
				zap.Strings("requested", requested.List()),
				zap.Strings("conflicts", conflict.Seats),
			)
			return nil, err
		}
		if errors.Is(err, repository.ErrLockTimeout) {
			s.log.Warn("Booking attempt timed out on show lock",
				zap.String("user_id", userID),
				zap.String("show_id", show.ID.String()),
			)
			return nil, err
		}

		s.log.Error("Failed to commit booking",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.String("show_id", show.ID.String()),
			zap.Strings("seats", requested.List()),
		)
		return nil, err
	}

	// The cached booked-seats view is stale now; drop it so readers
	// converge before the TTL does it for them.
	s.cache.Del(ctx, bookedSeatsKey(show.ID))

	s.log.Info("Booking committed",
		zap.String("ticket_number", booking.TicketNumber),
		zap.String("user_id", userID),
		zap.String("show_id", show.ID.String()),
		zap.Int("seat_count", requested.Len()),
		zap.Float64("total_price", booking.TotalPrice),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

// createWithRetry persists the booking, drawing a fresh ticket number
// for each attempt. Only the insert is retried on a ticket collision;
// the rest of the booking is left untouched.
func (s *checkoutService) createWithRetry(ctx context.Context, booking *entity.Booking, create func(context.Context, *entity.Booking) error) error {
	attempts := s.config.Checkout.TicketAttempts
	if attempts < 1 {
		attempts = 1
	}

	for i := 0; i < attempts; i++ {
		booking.TicketNumber = utils.GenerateTicketNumber()

		err := create(ctx, booking)
		if err == nil {
			return nil
		}
		if !errors.Is(err, repository.ErrTicketTaken) {
			return err
		}

		s.log.Warn("Ticket number collision, regenerating",
			zap.String("ticket_number", booking.TicketNumber),
			zap.Int("attempt", i+1),
		)
	}

	return ErrTicketExhausted
}

// resolveRefs looks up the optional movie and show references. Blank,
// malformed or unknown IDs resolve to nil.
func (s *checkoutService) resolveRefs(ctx context.Context, movieID, showID string) (*entity.Movie, *entity.Show) {
	var movie *entity.Movie
	if id, err := uuid.Parse(movieID); err == nil {
		movie, _ = s.repo.Movie.FindByID(ctx, id)
	}

	var show *entity.Show
	if id, err := uuid.Parse(showID); err == nil {
		show, _ = s.repo.Show.FindByID(ctx, id)
	}

	return movie, show
}
