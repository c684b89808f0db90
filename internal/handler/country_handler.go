package handler

import (
	"net/http"

	"github.com/capflow/backend/internal/country"
)

// CountryHandler serves the static country reference data used by bank and
// project forms.
type CountryHandler struct{}

func NewCountryHandler() *CountryHandler {
	return &CountryHandler{}
}

// List returns all known countries with their regions.
func (h *CountryHandler) List(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, country.All())
}

// Regions returns the region names in display order.
func (h *CountryHandler) Regions(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, country.Regions())
}
