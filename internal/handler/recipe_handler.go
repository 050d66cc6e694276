package handler

import (
	"net/http"

	"nutricalc/internal/model"
	"nutricalc/internal/service"

	"github.com/rs/zerolog"
)

// RecipeHandler handles recipe-related HTTP requests.
type RecipeHandler struct {
	service service.RecipeService
	logger  zerolog.Logger
}

// NewRecipeHandler creates a new recipe handler.
func NewRecipeHandler(service service.RecipeService, logger zerolog.Logger) *RecipeHandler {
	return &RecipeHandler{
		service: service,
		logger:  logger.With().Str("handler", "recipe").Logger(),
	}
}

// Save handles POST /save_recipe requests.
func (h *RecipeHandler) Save(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r, h.logger)
	if !ok {
		return
	}

	var req saveRecipeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	resp, err := h.service.Save(r.Context(), userID, &model.SaveRecipeRequest{
		Name:        req.Name,
		Ingredients: toLines(req.Ingredients),
	})
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, r, h.logger, http.StatusCreated, resp)
}

// List handles GET /recipes and GET or POST /get_recipes requests.
func (h *RecipeHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r, h.logger)
	if !ok {
		return
	}

	recipes, err := h.service.List(r.Context(), userID)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, r, h.logger, http.StatusOK, recipes)
}
