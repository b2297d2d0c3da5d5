package adaptor

import (
	"net/http"
	"strings"

	"movie-booking/internal/dto/request"
	"movie-booking/internal/usecase"
	"movie-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log,
	}
}

// MyBookings handles GET /api/bookings
func (h *BookingHandler) MyBookings(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	page := request.PaginatedRequest{
		Page:    utils.ParseInt(r.URL.Query().Get("page"), 1),
		PerPage: utils.ParseInt(r.URL.Query().Get("per_page"), 10),
	}

	response, err := h.service.UserBookings(r.Context(), userID.String(), page)
	if err != nil {
		h.handleServiceError(w, err, "get user bookings")
		return
	}

	utils.ResponseSuccess(w, "Bookings retrieved", response)
}

// ByTicket handles GET /api/bookings/ticket/{ticket}
func (h *BookingHandler) ByTicket(w http.ResponseWriter, r *http.Request) {
	ticket := strings.ToUpper(chi.URLParam(r, "ticket"))

	response, err := h.service.ByTicket(r.Context(), ticket)
	if err != nil {
		h.handleServiceError(w, err, "get booking by ticket")
		return
	}
	if response == nil {
		utils.ResponseNotFound(w, "Booking not found")
		return
	}

	// Only the owner or staff may read a booking.
	userID, _ := utils.GetUserIDFromContext(r.Context())
	if response.UserID != userID.String() && !utils.IsStaffFromContext(r.Context()) {
		utils.ResponseForbidden(w, "Not your booking")
		return
	}

	utils.ResponseSuccess(w, "Booking retrieved", response)
}

// Dashboard handles GET /api/dashboard (staff only).
func (h *BookingHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	response, err := h.service.Dashboard(r.Context(), userID.String())
	if err != nil {
		h.handleServiceError(w, err, "get dashboard")
		return
	}

	utils.ResponseSuccess(w, "Dashboard retrieved", response)
}

// RepairTotals handles POST /api/admin/repair-totals (superuser only).
func (h *BookingHandler) RepairTotals(w http.ResponseWriter, r *http.Request) {
	response, err := h.service.RepairTotals(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "repair booking totals")
		return
	}

	utils.ResponseSuccess(w, "Booking totals repaired", response)
}

func (h *BookingHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "invalid") && strings.Contains(errMsg, "format"):
		h.log.Warn(operation+" failed - bad ID", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "not found"):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, errMsg)

	default:
		h.log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
