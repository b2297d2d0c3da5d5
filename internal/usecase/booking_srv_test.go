package usecase

import (
	"context"
	"testing"

	"movie-booking/internal/data/entity"
	"movie-booking/internal/data/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRepairBookingRepo struct {
	repository.BookingRepository

	zeroTotal []*entity.Booking
	repaired  map[uuid.UUID]float64
}

func (f *fakeRepairBookingRepo) FindZeroTotal(context.Context) ([]*entity.Booking, error) {
	return f.zeroTotal, nil
}

func (f *fakeRepairBookingRepo) UpdateTotalPrice(_ context.Context, id uuid.UUID, totalPrice float64) error {
	if f.repaired == nil {
		f.repaired = make(map[uuid.UUID]float64)
	}
	f.repaired[id] = totalPrice
	return nil
}

func TestRepairTotals(t *testing.T) {
	movie := &entity.Movie{Base: entity.Base{ID: uuid.New()}, Price: 15.0}
	show := &entity.Show{BaseNoDelete: entity.BaseNoDelete{ID: uuid.New()}, Price: 12.50}

	withShow := &entity.Booking{
		BaseSimple: entity.BaseSimple{ID: uuid.New()},
		ShowID:     &show.ID,
		Seats:      "A1,A2",
	}
	withMovie := &entity.Booking{
		BaseSimple: entity.BaseSimple{ID: uuid.New()},
		MovieID:    &movie.ID,
		Seats:      "B1,B2,B3",
	}
	bare := &entity.Booking{
		BaseSimple: entity.BaseSimple{ID: uuid.New()},
		Seats:      "C1",
	}
	noSeats := &entity.Booking{
		BaseSimple: entity.BaseSimple{ID: uuid.New()},
	}

	bookings := &fakeRepairBookingRepo{zeroTotal: []*entity.Booking{withShow, withMovie, bare, noSeats}}
	repo := &repository.Repository{
		Movie:   &fakeMovieRepo{movies: map[uuid.UUID]*entity.Movie{movie.ID: movie}},
		Show:    &fakeShowRepo{shows: map[uuid.UUID]*entity.Show{show.ID: show}},
		Booking: bookings,
	}

	svc := NewBookingService(repo, testConfig(), zap.NewNop())

	resp, err := svc.RepairTotals(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, resp.Fixed)
	assert.Equal(t, 25.0, bookings.repaired[withShow.ID])   // 2 seats at the show price
	assert.Equal(t, 45.0, bookings.repaired[withMovie.ID])  // 3 seats at the movie price
	assert.Equal(t, 50.0, bookings.repaired[bare.ID])       // default price
	assert.NotContains(t, bookings.repaired, noSeats.ID)
}
