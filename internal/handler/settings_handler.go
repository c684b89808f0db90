package handler

import (
	"encoding/json"
	"net/http"

	"github.com/capflow/backend/internal/service"
)

type SettingsHandler struct {
	service SettingsServiceInterface
}

func NewSettingsHandler(service SettingsServiceInterface) *SettingsHandler {
	return &SettingsHandler{service: service}
}

// Get returns the current settings, or the defaults when none are saved.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.service.Get(r.Context())
	if err != nil {
		respondServiceError(w, err, "failed to get settings")
		return
	}

	respondJSON(w, http.StatusOK, settings)
}

// Update saves the settings. Weights in the response are renormalized to sum
// to 1.0.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input service.UpdateSettingsInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	settings, err := h.service.Update(r.Context(), input)
	if err != nil {
		respondServiceError(w, err, "failed to update settings")
		return
	}

	respondJSON(w, http.StatusOK, settings)
}
