package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"movie-booking/internal/data/entity"
	"movie-booking/internal/data/repository"
	"movie-booking/internal/dto/request"
	"movie-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// ---- in-memory fakes -------------------------------------------------

type fakeMovieRepo struct {
	repository.MovieRepository
	movies map[uuid.UUID]*entity.Movie
}

func (f *fakeMovieRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Movie, error) {
	return f.movies[id], nil
}

type fakeShowRepo struct {
	repository.ShowRepository
	shows map[uuid.UUID]*entity.Show
}

func (f *fakeShowRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Show, error) {
	return f.shows[id], nil
}

type fakeBookingRepo struct {
	repository.BookingRepository

	mu             sync.Mutex
	created        []*entity.Booking
	ticketFailures int
	attempts       int
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *entity.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.attempts++
	if f.ticketFailures > 0 {
		f.ticketFailures--
		return repository.ErrTicketTaken
	}

	copied := *booking
	f.created = append(f.created, &copied)
	return nil
}

// fakeLedger serializes scopes with a mutex, mirroring what the row
// lock gives the real implementation. Writes are rolled back when the
// scoped function fails.
type fakeLedger struct {
	mu             sync.Mutex
	show           *entity.Show
	booked         entity.SeatSet
	bookings       []*entity.Booking
	ticketFailures int
	calls          int
}

func (l *fakeLedger) WithShowLock(ctx context.Context, showID uuid.UUID, fn func(repository.LedgerScope) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if ctx.Err() != nil {
		return repository.ErrLockTimeout
	}
	if l.show == nil || l.show.ID != showID {
		return repository.ErrShowNotFound
	}

	l.calls++

	bookedBefore := l.booked.Union(nil)
	countBefore := len(l.bookings)

	if err := fn(&fakeScope{l: l}); err != nil {
		l.booked = bookedBefore
		l.bookings = l.bookings[:countBefore]
		return err
	}
	return nil
}

type fakeScope struct {
	l *fakeLedger
}

func (s *fakeScope) Show() *entity.Show { return s.l.show }

func (s *fakeScope) ReadBooked(context.Context) (entity.SeatSet, error) {
	return s.l.booked.Union(nil), nil
}

func (s *fakeScope) WriteBooked(_ context.Context, seats entity.SeatSet) error {
	s.l.booked = seats.Union(nil)
	s.l.show.BookedSeats = seats.Join()
	s.l.show.SeatsBooked = seats.Len()
	return nil
}

func (s *fakeScope) CreateBooking(_ context.Context, booking *entity.Booking) error {
	if s.l.ticketFailures > 0 {
		s.l.ticketFailures--
		return repository.ErrTicketTaken
	}
	copied := *booking
	s.l.bookings = append(s.l.bookings, &copied)
	return nil
}

// ---- helpers ---------------------------------------------------------

func testConfig() *utils.Config {
	return &utils.Config{
		Checkout: utils.CheckoutConfig{
			DefaultSeatPrice: 50.0,
			LockTimeout:      time.Second,
			TicketAttempts:   5,
		},
	}
}

func newCheckoutFixture(movie *entity.Movie, show *entity.Show) (CheckoutService, *fakeLedger, *fakeBookingRepo) {
	movies := map[uuid.UUID]*entity.Movie{}
	if movie != nil {
		movies[movie.ID] = movie
	}
	shows := map[uuid.UUID]*entity.Show{}
	if show != nil {
		shows[show.ID] = show
	}

	ledger := &fakeLedger{show: show, booked: entity.ParseSeatSet("")}
	if show != nil {
		ledger.booked = entity.ParseSeatSet(show.BookedSeats)
	}
	bookings := &fakeBookingRepo{}

	repo := &repository.Repository{
		Movie:   &fakeMovieRepo{movies: movies},
		Show:    &fakeShowRepo{shows: shows},
		Booking: bookings,
		Ledger:  ledger,
	}

	return NewCheckoutService(repo, nil, testConfig(), zap.NewNop()), ledger, bookings
}

func testShow(price float64, booked string) *entity.Show {
	return &entity.Show{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New()},
		MovieID:      uuid.New(),
		Price:        price,
		SeatsTotal:   100,
		SeatsBooked:  entity.ParseSeatSet(booked).Len(),
		BookedSeats:  booked,
		IsActive:     true,
	}
}

// ---- tests -----------------------------------------------------------

func TestResolveSeatPrice(t *testing.T) {
	movie := &entity.Movie{Price: 15.0}

	tests := []struct {
		name  string
		show  *entity.Show
		movie *entity.Movie
		want  float64
	}{
		{"show price wins", &entity.Show{Price: 12.50}, movie, 12.50},
		{"movie price when show has none", &entity.Show{}, movie, 15.0},
		{"movie price without show", nil, movie, 15.0},
		{"default when both zero", &entity.Show{}, &entity.Movie{}, 50.0},
		{"default when both missing", nil, nil, 50.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveSeatPrice(tt.show, tt.movie, 50.0))
		})
	}
}

func TestAttemptBookingRejectsEmptySeats(t *testing.T) {
	svc, ledger, _ := newCheckoutFixture(nil, nil)

	_, err := svc.AttemptBooking(context.Background(), uuid.NewString(), &request.CheckoutRequest{Seats: " , ,"})

	assert.ErrorIs(t, err, ErrNoSeats)
	assert.Zero(t, ledger.calls)
}

func TestAttemptBookingCommits(t *testing.T) {
	show := testShow(12.50, "")
	svc, ledger, _ := newCheckoutFixture(nil, show)

	resp, err := svc.AttemptBooking(context.Background(), uuid.NewString(), &request.CheckoutRequest{
		ShowID: show.ID.String(),
		Seats:  "A2,A1,A3",
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"A1", "A2", "A3"}, resp.Seats)
	assert.Equal(t, 37.50, resp.TotalPrice)
	assert.Len(t, resp.TicketNumber, utils.TicketNumberLength)

	// Ledger reflects the commit.
	assert.Equal(t, []string{"A1", "A2", "A3"}, ledger.booked.List())
	assert.Equal(t, 3, show.SeatsBooked)
	require.Len(t, ledger.bookings, 1)
	assert.Equal(t, "A1,A2,A3", ledger.bookings[0].Seats)
}

func TestAttemptBookingReportsExactConflicts(t *testing.T) {
	show := testShow(10, "A2,B1")
	svc, ledger, _ := newCheckoutFixture(nil, show)

	_, err := svc.AttemptBooking(context.Background(), uuid.NewString(), &request.CheckoutRequest{
		ShowID: show.ID.String(),
		Seats:  "A1,A2,B1",
	})

	conflict, ok := AsSeatConflict(err)
	require.True(t, ok, "expected a seat conflict, got %v", err)
	assert.Equal(t, []string{"A2", "B1"}, conflict.Seats)

	// Nothing committed: ledger and bookings untouched.
	assert.Equal(t, []string{"A2", "B1"}, ledger.booked.List())
	assert.Empty(t, ledger.bookings)
}

func TestAttemptBookingPriceFallsBackToMovie(t *testing.T) {
	movie := &entity.Movie{Base: entity.Base{ID: uuid.New()}, Price: 15.0}
	show := testShow(0, "")
	svc, _, _ := newCheckoutFixture(movie, show)

	resp, err := svc.AttemptBooking(context.Background(), uuid.NewString(), &request.CheckoutRequest{
		MovieID: movie.ID.String(),
		ShowID:  show.ID.String(),
		Seats:   "A1,A2,A3",
	})

	require.NoError(t, err)
	assert.Equal(t, 45.0, resp.TotalPrice)
}

func TestAttemptBookingPriceFallsBackToDefault(t *testing.T) {
	movie := &entity.Movie{Base: entity.Base{ID: uuid.New()}}
	show := testShow(0, "")
	svc, _, _ := newCheckoutFixture(movie, show)

	resp, err := svc.AttemptBooking(context.Background(), uuid.NewString(), &request.CheckoutRequest{
		MovieID: movie.ID.String(),
		ShowID:  show.ID.String(),
		Seats:   "A1,A2,A3",
	})

	require.NoError(t, err)
	assert.Equal(t, 150.0, resp.TotalPrice)
}

func TestAttemptBookingWithoutShowSkipsLedger(t *testing.T) {
	movie := &entity.Movie{Base: entity.Base{ID: uuid.New()}, Price: 20.0}
	svc, ledger, bookings := newCheckoutFixture(movie, nil)

	resp, err := svc.AttemptBooking(context.Background(), uuid.NewString(), &request.CheckoutRequest{
		MovieID: movie.ID.String(),
		ShowID:  uuid.NewString(), // unknown show degrades to none
		Seats:   "A1,A2",
	})

	require.NoError(t, err)
	assert.Equal(t, 40.0, resp.TotalPrice)
	assert.Nil(t, resp.ShowID)
	assert.Zero(t, ledger.calls)
	assert.Len(t, bookings.created, 1)
}

func TestAttemptBookingRetriesTicketCollision(t *testing.T) {
	t.Run("without show", func(t *testing.T) {
		svc, _, bookings := newCheckoutFixture(nil, nil)
		bookings.ticketFailures = 2

		resp, err := svc.AttemptBooking(context.Background(), uuid.NewString(), &request.CheckoutRequest{Seats: "A1"})

		require.NoError(t, err)
		assert.Equal(t, 3, bookings.attempts)
		assert.Len(t, resp.TicketNumber, utils.TicketNumberLength)
	})

	t.Run("inside the show scope", func(t *testing.T) {
		show := testShow(10, "")
		svc, ledger, _ := newCheckoutFixture(nil, show)
		ledger.ticketFailures = 1

		_, err := svc.AttemptBooking(context.Background(), uuid.NewString(), &request.CheckoutRequest{
			ShowID: show.ID.String(),
			Seats:  "A1",
		})

		require.NoError(t, err)
		assert.Len(t, ledger.bookings, 1)
	})

	t.Run("gives up after the attempt budget", func(t *testing.T) {
		svc, _, bookings := newCheckoutFixture(nil, nil)
		bookings.ticketFailures = 100

		_, err := svc.AttemptBooking(context.Background(), uuid.NewString(), &request.CheckoutRequest{Seats: "A1"})

		assert.ErrorIs(t, err, ErrTicketExhausted)
		assert.Equal(t, 5, bookings.attempts)
	})
}

func TestAttemptBookingConcurrentDisjoint(t *testing.T) {
	show := testShow(10, "")
	svc, ledger, _ := newCheckoutFixture(nil, show)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, seats := range []string{"A1,A2", "B1,B2"} {
		wg.Add(1)
		go func(i int, seats string) {
			defer wg.Done()
			_, errs[i] = svc.AttemptBooking(context.Background(), uuid.NewString(), &request.CheckoutRequest{
				ShowID: show.ID.String(),
				Seats:  seats,
			})
		}(i, seats)
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.Equal(t, []string{"A1", "A2", "B1", "B2"}, ledger.booked.List())
	assert.Len(t, ledger.bookings, 2)
}

func TestAttemptBookingConcurrentOverlapOneWinner(t *testing.T) {
	show := testShow(10, "")
	svc, ledger, _ := newCheckoutFixture(nil, show)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.AttemptBooking(context.Background(), uuid.NewString(), &request.CheckoutRequest{
				ShowID: show.ID.String(),
				Seats:  "C1",
			})
		}(i)
	}
	wg.Wait()

	var conflicts, successes int
	for _, err := range errs {
		if err == nil {
			successes++
			continue
		}
		conflict, ok := AsSeatConflict(err)
		require.True(t, ok, "unexpected error: %v", err)
		assert.Equal(t, []string{"C1"}, conflict.Seats)
		conflicts++
	}

	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, conflicts)
	assert.Len(t, ledger.bookings, 1)
	assert.Equal(t, []string{"C1"}, ledger.booked.List())
}

func TestAttemptBookingRaceThenRetry(t *testing.T) {
	show := testShow(10, "")
	svc, ledger, _ := newCheckoutFixture(nil, show)
	user1, user2 := uuid.NewString(), uuid.NewString()

	// User1 claims A1,A2.
	_, err := svc.AttemptBooking(context.Background(), user1, &request.CheckoutRequest{
		ShowID: show.ID.String(),
		Seats:  "A1,A2",
	})
	require.NoError(t, err)

	// User2 picked A2,A3 against the stale seat map; only the genuinely
	// contested seat is reported.
	_, err = svc.AttemptBooking(context.Background(), user2, &request.CheckoutRequest{
		ShowID: show.ID.String(),
		Seats:  "A2,A3",
	})
	conflict, ok := AsSeatConflict(err)
	require.True(t, ok)
	assert.Equal(t, []string{"A2"}, conflict.Seats)

	// Retry with the conflict resolved succeeds.
	_, err = svc.AttemptBooking(context.Background(), user2, &request.CheckoutRequest{
		ShowID: show.ID.String(),
		Seats:  "A3",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"A1", "A2", "A3"}, ledger.booked.List())
	assert.Len(t, ledger.bookings, 2)
}

func TestAttemptBookingLockTimeout(t *testing.T) {
	show := testShow(10, "")
	svc, ledger, _ := newCheckoutFixture(nil, show)

	// Hold the ledger lock past the configured wait budget.
	ledger.mu.Lock()
	release := make(chan struct{})
	go func() {
		time.Sleep(100 * time.Millisecond)
		ledger.mu.Unlock()
		close(release)
	}()

	cfg := testConfig()
	cfg.Checkout.LockTimeout = 10 * time.Millisecond
	svc.(*checkoutService).config = cfg

	_, err := svc.AttemptBooking(context.Background(), uuid.NewString(), &request.CheckoutRequest{
		ShowID: show.ID.String(),
		Seats:  "A1",
	})

	assert.ErrorIs(t, err, repository.ErrLockTimeout)
	<-release
}

func TestQuoteDoesNotTouchLedger(t *testing.T) {
	movie := &entity.Movie{Base: entity.Base{ID: uuid.New()}, Title: "Heat", Price: 15.0}
	show := testShow(0, "A1")
	svc, ledger, _ := newCheckoutFixture(movie, show)

	resp, err := svc.Quote(context.Background(), &request.QuoteRequest{
		MovieID: movie.ID.String(),
		ShowID:  show.ID.String(),
		Seats:   "B1,B2",
	})

	require.NoError(t, err)
	assert.Equal(t, 15.0, resp.PricePerSeat)
	assert.Equal(t, 30.0, resp.TotalPrice)
	assert.Equal(t, "Heat", resp.Movie.Title)
	assert.Zero(t, ledger.calls)
}

func TestQuoteEmptySeatsShowsSingleSeatPrice(t *testing.T) {
	svc, _, _ := newCheckoutFixture(nil, nil)

	resp, err := svc.Quote(context.Background(), &request.QuoteRequest{})

	require.NoError(t, err)
	assert.Equal(t, 50.0, resp.PricePerSeat)
	assert.Equal(t, 50.0, resp.TotalPrice)
}
