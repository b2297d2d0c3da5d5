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

type MovieHandler struct {
	service usecase.MovieService
	log     *zap.Logger
}

func NewMovieHandler(service usecase.MovieService, log *zap.Logger) *MovieHandler {
	return &MovieHandler{
		service: service,
		log:     log,
	}
}

// List handles GET /api/movies?search=&page=&per_page=
func (h *MovieHandler) List(w http.ResponseWriter, r *http.Request) {
	page := request.PaginatedRequest{
		Page:    utils.ParseInt(r.URL.Query().Get("page"), 1),
		PerPage: utils.ParseInt(r.URL.Query().Get("per_page"), 10),
	}
	search := r.URL.Query().Get("search")

	response, err := h.service.ListMovies(r.Context(), search, page)
	if err != nil {
		h.handleServiceError(w, err, "list movies")
		return
	}

	utils.ResponseSuccess(w, "Movies retrieved", response)
}

// Featured handles GET /api/movies/featured
func (h *MovieHandler) Featured(w http.ResponseWriter, r *http.Request) {
	response, err := h.service.ListFeatured(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "list featured movies")
		return
	}

	utils.ResponseSuccess(w, "Featured movies retrieved", response)
}

// Get handles GET /api/movies/{id}
func (h *MovieHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	response, err := h.service.GetMovie(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err, "get movie")
		return
	}
	if response == nil {
		utils.ResponseNotFound(w, "Movie not found")
		return
	}

	utils.ResponseSuccess(w, "Movie retrieved", response)
}

// Create handles POST /api/movies (staff only).
func (h *MovieHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateMovieRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	response, err := h.service.CreateMovie(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create movie")
		return
	}

	utils.ResponseCreated(w, "Movie created", response)
}

// Update handles PUT /api/movies/{id} (staff only).
func (h *MovieHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req request.UpdateMovieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	response, err := h.service.UpdateMovie(r.Context(), id, &req)
	if err != nil {
		h.handleServiceError(w, err, "update movie")
		return
	}
	if response == nil {
		utils.ResponseNotFound(w, "Movie not found")
		return
	}

	utils.ResponseSuccess(w, "Movie updated", response)
}

// Delete handles DELETE /api/movies/{id} (staff only).
func (h *MovieHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.DeleteMovie(r.Context(), id); err != nil {
		h.handleServiceError(w, err, "delete movie")
		return
	}

	utils.ResponseSuccess(w, "Movie deleted", nil)
}

func (h *MovieHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "invalid") && strings.Contains(errMsg, "format"):
		h.log.Warn(operation+" failed - bad ID", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "not found"):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "invalid release date"):
		h.log.Warn(operation+" failed - bad date", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		h.log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
