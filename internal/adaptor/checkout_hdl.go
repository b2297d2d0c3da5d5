package adaptor

import (
	"errors"
	"net/http"

	"movie-booking/internal/data/repository"
	"movie-booking/internal/dto/request"
	"movie-booking/internal/usecase"
	"movie-booking/pkg/utils"

	"go.uber.org/zap"
)

type CheckoutHandler struct {
	service usecase.CheckoutService
	log     *zap.Logger
}

func NewCheckoutHandler(service usecase.CheckoutService, log *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
		log:     log,
	}
}

// Quote handles GET /api/checkout. Prices the selection without
// touching the ledger.
func (h *CheckoutHandler) Quote(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := request.QuoteRequest{
		MovieID: q.Get("movie_id"),
		ShowID:  q.Get("show_id"),
		Seats:   q.Get("seats"),
		Date:    q.Get("date"),
		Time:    q.Get("time"),
	}

	response, err := h.service.Quote(r.Context(), &req)
	if err != nil {
		h.log.Error("Failed to quote checkout", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	utils.ResponseSuccess(w, "Checkout quote", response)
}

// Commit handles POST /api/checkout. The body is form-encoded, matching
// the seat-selection form submit.
func (h *CheckoutHandler) Commit(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	if err := r.ParseForm(); err != nil {
		utils.ResponseBadRequest(w, "Invalid form body", nil)
		return
	}

	req := request.CheckoutRequest{
		MovieID: r.PostFormValue("movie_id"),
		ShowID:  r.PostFormValue("show_id"),
		Seats:   r.PostFormValue("seats"),
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	response, err := h.service.AttemptBooking(r.Context(), userID.String(), &req)
	if err != nil {
		h.handleServiceError(w, err, "commit booking")
		return
	}

	utils.ResponseCreated(w, "Booking confirmed", response)
}

func (h *CheckoutHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	if conflict, ok := usecase.AsSeatConflict(err); ok {
		utils.ResponseConflict(w, "Some seats were already booked", map[string]any{
			"conflicts": conflict.Seats,
		})
		return
	}

	switch {
	case errors.Is(err, usecase.ErrNoSeats):
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, repository.ErrLockTimeout):
		h.log.Warn(operation+" timed out waiting for the show lock", zap.Error(err))
		utils.ResponseUnavailable(w, "The show is busy right now, please retry")

	case errors.Is(err, usecase.ErrTicketExhausted):
		h.log.Error(operation+" exhausted ticket numbers", zap.Error(err))
		utils.ResponseInternalError(w, "Could not allocate a ticket, please retry")

	default:
		h.log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
