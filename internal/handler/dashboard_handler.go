package handler

import "net/http"

type DashboardHandler struct {
	service DashboardServiceInterface
}

func NewDashboardHandler(service DashboardServiceInterface) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Get returns the portfolio-level capacity and pipeline snapshot.
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.Get(r.Context())
	if err != nil {
		respondServiceError(w, err, "failed to build dashboard")
		return
	}

	respondJSON(w, http.StatusOK, data)
}
