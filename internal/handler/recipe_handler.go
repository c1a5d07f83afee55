package handler

import (
	"errors"
	"net/http"

	"recipe-api/internal/model"
	"recipe-api/internal/service"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

const (
	msgInvalidBody  = "Invalid request body."
	msgBodyTooLarge = "Request body too large."
	msgNotFound     = "Recipe not found."
	msgNoneFound    = "No recipe found."
	msgNotExist     = "Recipe does not exist"
	msgAddFailed    = "Failed to add recipe."
	msgFetchFailed  = "Failed to fetch recipe."
	msgUpdateFailed = "failed to update recipe."
	msgDeleteFailed = "Failed to delete recipe."
	msgAdded        = "Recipe added successfully."
	msgUpdated      = "Recipe updated successfully."
	msgDeleted      = "Recipe deleted successfully."
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

// Create handles POST /recipes.
func (h *RecipeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var recipe model.Recipe
	if err := decodeBody(w, r, &recipe); err != nil {
		h.rejectBody(w, r, err, msgAddFailed)
		return
	}

	created, err := h.service.Create(r.Context(), &recipe)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, msgAddFailed, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, model.CreateRecipeResponse{
		Message: msgAdded,
		Recipe:  created,
	})
}

// GetAll handles GET /recipes.
func (h *RecipeHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.service.GetAll(r.Context())
	if err != nil {
		h.fail(w, r, err, msgNoneFound, msgFetchFailed)
		return
	}

	writeJSON(w, http.StatusOK, recipes)
}

// GetByTitle handles GET /recipes/{title}.
func (h *RecipeHandler) GetByTitle(w http.ResponseWriter, r *http.Request) {
	recipe, err := h.service.GetByTitle(r.Context(), mux.Vars(r)["title"])
	if err != nil {
		h.fail(w, r, err, msgNotFound, msgFetchFailed)
		return
	}

	writeJSON(w, http.StatusOK, recipe)
}

// GetByAuthor handles GET /recipes/author/{authorName}.
func (h *RecipeHandler) GetByAuthor(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.service.GetByAuthor(r.Context(), mux.Vars(r)["authorName"])
	if err != nil {
		h.fail(w, r, err, msgNotFound, msgFetchFailed)
		return
	}

	writeJSON(w, http.StatusOK, recipes)
}

// GetByDifficulty handles GET /recipes/difficulty/{level}.
func (h *RecipeHandler) GetByDifficulty(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.service.GetByDifficulty(r.Context(), mux.Vars(r)["level"])
	if err != nil {
		h.fail(w, r, err, msgNotFound, msgFetchFailed)
		return
	}

	writeJSON(w, http.StatusOK, recipes)
}

// GetByID handles GET /recipes/id/{recipeId}.
func (h *RecipeHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	recipe, err := h.service.GetByID(r.Context(), mux.Vars(r)["recipeId"])
	if err != nil {
		h.fail(w, r, err, msgNotFound, msgFetchFailed)
		return
	}

	writeJSON(w, http.StatusOK, recipe)
}

// UpdateByID handles POST /recipes/{recipeId}.
func (h *RecipeHandler) UpdateByID(w http.ResponseWriter, r *http.Request) {
	var patch model.RecipePatch
	if err := decodeBody(w, r, &patch); err != nil {
		h.rejectBody(w, r, err, msgUpdateFailed)
		return
	}

	updated, err := h.service.UpdateByID(r.Context(), mux.Vars(r)["recipeId"], &patch)
	if err != nil {
		h.fail(w, r, err, msgNotExist, msgUpdateFailed)
		return
	}

	writeJSON(w, http.StatusOK, model.UpdateRecipeResponse{
		Message:       msgUpdated,
		UpdatedRecipe: updated,
	})
}

// UpdateByTitle handles POST /recipes/title/{recipeTitle}.
func (h *RecipeHandler) UpdateByTitle(w http.ResponseWriter, r *http.Request) {
	var patch model.RecipePatch
	if err := decodeBody(w, r, &patch); err != nil {
		h.rejectBody(w, r, err, msgUpdateFailed)
		return
	}

	updated, err := h.service.UpdateByTitle(r.Context(), mux.Vars(r)["recipeTitle"], &patch)
	if err != nil {
		h.fail(w, r, err, msgNotFound, msgUpdateFailed)
		return
	}

	writeJSON(w, http.StatusOK, model.UpdateRecipeResponse{
		Message:       msgUpdated,
		UpdatedRecipe: updated,
	})
}

// DeleteByID handles DELETE /recipes/{recipeId}.
func (h *RecipeHandler) DeleteByID(w http.ResponseWriter, r *http.Request) {
	if _, err := h.service.DeleteByID(r.Context(), mux.Vars(r)["recipeId"]); err != nil {
		h.fail(w, r, err, msgNotFound, msgDeleteFailed)
		return
	}

	writeJSON(w, http.StatusOK, model.MessageResponse{Message: msgDeleted})
}

// fail answers 404 with notFound for missing recipes and 500 with failed otherwise.
func (h *RecipeHandler) fail(w http.ResponseWriter, r *http.Request, err error, notFound, failed string) {
	if errors.Is(err, model.ErrRecipeNotFound) {
		writeError(w, r, http.StatusNotFound, notFound, h.logger)
		return
	}
	h.logger.Error().Err(err).Str("path", r.URL.Path).Msg("recipe request failed")
	writeError(w, r, http.StatusInternalServerError, failed, h.logger)
}

// rejectBody answers a body that could not be decoded. Field values that
// cannot be cast fail like a storage write, with failed and 500.
func (h *RecipeHandler) rejectBody(w http.ResponseWriter, r *http.Request, err error, failed string) {
	var maxErr *http.MaxBytesError
	switch {
	case errors.Is(err, model.ErrRecipeCast):
		h.logger.Error().Err(err).Str("path", r.URL.Path).Msg("recipe field cast failed")
		writeError(w, r, http.StatusInternalServerError, failed, h.logger)
	case errors.As(err, &maxErr):
		writeError(w, r, http.StatusRequestEntityTooLarge, msgBodyTooLarge, h.logger)
	default:
		writeError(w, r, http.StatusBadRequest, msgInvalidBody, h.logger)
	}
}
