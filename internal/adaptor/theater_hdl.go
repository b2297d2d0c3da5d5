package adaptor

import (
	"net/http"

	"movie-booking/internal/usecase"
	"movie-booking/pkg/utils"

	"go.uber.org/zap"
)

type TheaterHandler struct {
	log *zap.Logger
}

func NewTheaterHandler(log *zap.Logger) *TheaterHandler {
	return &TheaterHandler{log: log}
}

// List handles GET /api/theaters
func (h *TheaterHandler) List(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, "Theaters retrieved", usecase.Theaters())
}
