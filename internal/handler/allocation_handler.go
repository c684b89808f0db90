package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type AllocationHandler struct {
	service AllocationServiceInterface
}

func NewAllocationHandler(service AllocationServiceInterface) *AllocationHandler {
	return &AllocationHandler{service: service}
}

type optimizeRequest struct {
	// ForcedAssignments maps project ID to the bank it must receive.
	ForcedAssignments map[uuid.UUID]uuid.UUID `json:"forcedAssignments"`
}

// Ranking returns every bank scored against one project, best first.
// Ineligible banks come last with their disqualification reasons.
func (h *AllocationHandler) Ranking(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	ranked, err := h.service.RankBanks(r.Context(), projectID)
	if err != nil {
		respondServiceError(w, err, "failed to rank banks")
		return
	}

	respondJSON(w, http.StatusOK, ranked)
}

// Optimize proposes a bank for every planned project in one pass. The
// response is a proposal only; nothing is persisted until projects are
// allocated or issued.
func (h *AllocationHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	var req optimizeRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	results, err := h.service.Optimize(r.Context(), req.ForcedAssignments)
	if err != nil {
		respondServiceError(w, err, "failed to optimize allocations")
		return
	}

	respondJSON(w, http.StatusOK, results)
}
