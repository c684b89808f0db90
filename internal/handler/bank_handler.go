package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/capflow/backend/internal/service"
)

type BankHandler struct {
	service BankServiceInterface
}

func NewBankHandler(service BankServiceInterface) *BankHandler {
	return &BankHandler{service: service}
}

// Create registers a new counterparty bank.
func (h *BankHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.CreateBankInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	bank, err := h.service.Create(r.Context(), input)
	if err != nil {
		respondServiceError(w, err, "failed to create bank")
		return
	}

	respondJSON(w, http.StatusCreated, bank)
}

// Get returns one bank by ID.
func (h *BankHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	bank, err := h.service.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, err, "failed to get bank")
		return
	}

	respondJSON(w, http.StatusOK, bank)
}

// List returns all banks with derived capacity and region fields.
func (h *BankHandler) List(w http.ResponseWriter, r *http.Request) {
	banks, err := h.service.List(r.Context())
	if err != nil {
		respondServiceError(w, err, "failed to list banks")
		return
	}

	respondJSON(w, http.StatusOK, banks)
}

// Update replaces a bank's stored fields.
func (h *BankHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var input service.UpdateBankInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	bank, err := h.service.Update(r.Context(), id, input)
	if err != nil {
		respondServiceError(w, err, "failed to update bank")
		return
	}

	respondJSON(w, http.StatusOK, bank)
}

// Delete removes a bank.
func (h *BankHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err, "failed to delete bank")
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
