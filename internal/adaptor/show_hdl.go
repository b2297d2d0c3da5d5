package adaptor

import (
	"encoding/json"
	"net/http"
	"strings"

	"movie-booking/internal/dto/request"
	"movie-booking/internal/usecase"
	"movie-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ShowHandler struct {
	service usecase.ShowService
	log     *zap.Logger
}

func NewShowHandler(service usecase.ShowService, log *zap.Logger) *ShowHandler {
	return &ShowHandler{
		service: service,
		log:     log,
	}
}

// List handles GET /api/shows
func (h *ShowHandler) List(w http.ResponseWriter, r *http.Request) {
	response, err := h.service.ListActiveShows(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "list shows")
		return
	}

	utils.ResponseSuccess(w, "Shows retrieved", response)
}

// ListForMovie handles GET /api/movies/{id}/shows
func (h *ShowHandler) ListForMovie(w http.ResponseWriter, r *http.Request) {
	movieID := chi.URLParam(r, "id")

	response, err := h.service.ListShowsForMovie(r.Context(), movieID)
	if err != nil {
		h.handleServiceError(w, err, "list shows for movie")
		return
	}

	utils.ResponseSuccess(w, "Shows retrieved", response)
}

// Get handles GET /api/shows/{id}
func (h *ShowHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	response, err := h.service.GetShow(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err, "get show")
		return
	}
	if response == nil {
		utils.ResponseNotFound(w, "Show not found")
		return
	}

	utils.ResponseSuccess(w, "Show retrieved", response)
}

// BookedSeats handles GET /api/shows/{id}/booked-seats. Public and
// unlocked: the seat map it feeds is advisory, checkout re-validates
// under the row lock.
func (h *ShowHandler) BookedSeats(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	response, err := h.service.BookedSeats(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err, "get booked seats")
		return
	}
	if response == nil {
		utils.ResponseNotFound(w, "Show not found")
		return
	}

	utils.ResponseSuccess(w, "Booked seats retrieved", response)
}

// Create handles POST /api/shows (staff only).
func (h *ShowHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateShowRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	response, err := h.service.CreateShow(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create show")
		return
	}

	utils.ResponseCreated(w, "Show created", response)
}

// Deactivate handles DELETE /api/shows/{id} (staff only).
func (h *ShowHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.DeactivateShow(r.Context(), id); err != nil {
		h.handleServiceError(w, err, "deactivate show")
		return
	}

	utils.ResponseSuccess(w, "Show deactivated", nil)
}

func (h *ShowHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "invalid") && strings.Contains(errMsg, "format"):
		h.log.Warn(operation+" failed - bad ID", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "not found"):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "invalid show date"),
		strings.Contains(errMsg, "invalid show time"):
		h.log.Warn(operation+" failed - bad input", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		h.log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
