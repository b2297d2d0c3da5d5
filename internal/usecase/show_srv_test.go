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

type fakeSeatsBookingRepo struct {
	repository.BookingRepository

	seats map[uuid.UUID]entity.SeatSet
	calls int
}

func (f *fakeSeatsBookingRepo) SeatsByShowID(_ context.Context, showID uuid.UUID) (entity.SeatSet, error) {
	f.calls++
	return f.seats[showID], nil
}

func TestBookedSeats(t *testing.T) {
	t.Run("reads the denormalized field", func(t *testing.T) {
		show := testShow(10, "B1,A1")
		bookings := &fakeSeatsBookingRepo{}
		repo := &repository.Repository{
			Show:    &fakeShowRepo{shows: map[uuid.UUID]*entity.Show{show.ID: show}},
			Booking: bookings,
		}
		svc := NewShowService(repo, nil, testConfig(), zap.NewNop())

		resp, err := svc.BookedSeats(context.Background(), show.ID.String())

		require.NoError(t, err)
		assert.Equal(t, []string{"A1", "B1"}, resp.Booked)
		assert.Zero(t, bookings.calls, "field was populated, no reconstruction expected")
	})

	t.Run("reconstructs from bookings when the field is blank", func(t *testing.T) {
		show := testShow(10, "")
		show.SeatsBooked = 2 // count says booked, field says nothing

		bookings := &fakeSeatsBookingRepo{
			seats: map[uuid.UUID]entity.SeatSet{show.ID: entity.ParseSeatSet("C1,C2")},
		}
		repo := &repository.Repository{
			Show:    &fakeShowRepo{shows: map[uuid.UUID]*entity.Show{show.ID: show}},
			Booking: bookings,
		}
		svc := NewShowService(repo, nil, testConfig(), zap.NewNop())

		resp, err := svc.BookedSeats(context.Background(), show.ID.String())

		require.NoError(t, err)
		assert.Equal(t, []string{"C1", "C2"}, resp.Booked)
		assert.Equal(t, 1, bookings.calls)
	})

	t.Run("empty show yields an empty list, not null", func(t *testing.T) {
		show := testShow(10, "")
		repo := &repository.Repository{
			Show:    &fakeShowRepo{shows: map[uuid.UUID]*entity.Show{show.ID: show}},
			Booking: &fakeSeatsBookingRepo{},
		}
		svc := NewShowService(repo, nil, testConfig(), zap.NewNop())

		resp, err := svc.BookedSeats(context.Background(), show.ID.String())

		require.NoError(t, err)
		assert.NotNil(t, resp.Booked)
		assert.Empty(t, resp.Booked)
	})

	t.Run("unknown show", func(t *testing.T) {
		repo := &repository.Repository{
			Show:    &fakeShowRepo{shows: map[uuid.UUID]*entity.Show{}},
			Booking: &fakeSeatsBookingRepo{},
		}
		svc := NewShowService(repo, nil, testConfig(), zap.NewNop())

		resp, err := svc.BookedSeats(context.Background(), uuid.NewString())

		require.NoError(t, err)
		assert.Nil(t, resp)
	})

	t.Run("malformed id", func(t *testing.T) {
		svc := NewShowService(&repository.Repository{}, nil, testConfig(), zap.NewNop())

		_, err := svc.BookedSeats(context.Background(), "not-a-uuid")
		assert.Error(t, err)
	})
}
