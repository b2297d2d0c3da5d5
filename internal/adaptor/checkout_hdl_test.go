package adaptor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"movie-booking/internal/data/repository"
	"movie-booking/internal/dto/request"
	"movie-booking/internal/dto/response"
	"movie-booking/internal/usecase"
	"movie-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubCheckoutService struct {
	booking *response.BookingResponse
	err     error

	gotUserID string
	gotReq    *request.CheckoutRequest
}

func (s *stubCheckoutService) Quote(_ context.Context, req *request.QuoteRequest) (*response.QuoteResponse, error) {
	return &response.QuoteResponse{Seats: []string{"A1"}, PricePerSeat: 50, TotalPrice: 50}, nil
}

func (s *stubCheckoutService) AttemptBooking(_ context.Context, userID string, req *request.CheckoutRequest) (*response.BookingResponse, error) {
	s.gotUserID = userID
	s.gotReq = req
	return s.booking, s.err
}

func postCheckout(t *testing.T, handler *CheckoutHandler, form url.Values, userID uuid.UUID) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if userID != uuid.Nil {
		req = req.WithContext(utils.SetUserContext(req.Context(), userID, false))
	}

	rec := httptest.NewRecorder()
	handler.Commit(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) utils.Response {
	t.Helper()

	var envelope utils.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope
}

func TestCheckoutCommitRequiresAuth(t *testing.T) {
	handler := NewCheckoutHandler(&stubCheckoutService{}, zap.NewNop())

	rec := postCheckout(t, handler, url.Values{"seats": {"A1"}}, uuid.Nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCheckoutCommitParsesForm(t *testing.T) {
	userID := uuid.New()
	stub := &stubCheckoutService{
		booking: &response.BookingResponse{TicketNumber: "9F2C41A07BD3", Seats: []string{"A1", "A2"}},
	}
	handler := NewCheckoutHandler(stub, zap.NewNop())

	rec := postCheckout(t, handler, url.Values{
		"movie_id": {"m-1"},
		"show_id":  {"s-1"},
		"seats":    {"A1,A2"},
	}, userID)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, userID.String(), stub.gotUserID)
	require.NotNil(t, stub.gotReq)
	assert.Equal(t, "m-1", stub.gotReq.MovieID)
	assert.Equal(t, "s-1", stub.gotReq.ShowID)
	assert.Equal(t, "A1,A2", stub.gotReq.Seats)

	envelope := decodeEnvelope(t, rec)
	assert.True(t, envelope.Status)
}

func TestCheckoutCommitRequiresSeats(t *testing.T) {
	handler := NewCheckoutHandler(&stubCheckoutService{}, zap.NewNop())

	rec := postCheckout(t, handler, url.Values{"show_id": {"s-1"}}, uuid.New())

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckoutCommitConflict(t *testing.T) {
	stub := &stubCheckoutService{err: &usecase.SeatConflictError{Seats: []string{"A2", "B1"}}}
	handler := NewCheckoutHandler(stub, zap.NewNop())

	rec := postCheckout(t, handler, url.Values{"seats": {"A1,A2,B1"}}, uuid.New())

	assert.Equal(t, http.StatusConflict, rec.Code)

	envelope := decodeEnvelope(t, rec)
	assert.False(t, envelope.Status)

	errs, ok := envelope.Errors.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, []any{"A2", "B1"}, errs["conflicts"])
}

func TestCheckoutCommitLockTimeout(t *testing.T) {
	stub := &stubCheckoutService{err: repository.ErrLockTimeout}
	handler := NewCheckoutHandler(stub, zap.NewNop())

	rec := postCheckout(t, handler, url.Values{"seats": {"A1"}}, uuid.New())

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestCheckoutCommitNoSeatsError(t *testing.T) {
	stub := &stubCheckoutService{err: usecase.ErrNoSeats}
	handler := NewCheckoutHandler(stub, zap.NewNop())

	rec := postCheckout(t, handler, url.Values{"seats": {" , "}}, uuid.New())

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckoutQuote(t *testing.T) {
	handler := NewCheckoutHandler(&stubCheckoutService{}, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/checkout?seats=A1&movie_id=m-1", nil)
	rec := httptest.NewRecorder()
	handler.Quote(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	envelope := decodeEnvelope(t, rec)
	assert.True(t, envelope.Status)
}
