package handler

import (
	"net/http"

	"nutricalc/internal/service"

	"github.com/rs/zerolog"
)

// NutritionHandler handles ingredient search and nutrition calculation.
type NutritionHandler struct {
	service service.NutritionService
	logger  zerolog.Logger
}

// NewNutritionHandler creates a new nutrition handler.
func NewNutritionHandler(service service.NutritionService, logger zerolog.Logger) *NutritionHandler {
	return &NutritionHandler{
		service: service,
		logger:  logger.With().Str("handler", "nutrition").Logger(),
	}
}

// Search handles GET /search_ingredient?query= requests.
func (h *NutritionHandler) Search(w http.ResponseWriter, r *http.Request) {
	foods, err := h.service.Search(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, r, h.logger, http.StatusOK, foods)
}

// Calculate handles POST /calculate_nutrition requests.
func (h *NutritionHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req calculateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	totals, err := h.service.Calculate(r.Context(), toLines(req.Ingredients))
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, r, h.logger, http.StatusOK, totals)
}
