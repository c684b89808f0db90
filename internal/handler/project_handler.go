package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/capflow/backend/internal/model"
	"github.com/capflow/backend/internal/service"
)

type ProjectHandler struct {
	service ProjectServiceInterface
}

func NewProjectHandler(service ProjectServiceInterface) *ProjectHandler {
	return &ProjectHandler{service: service}
}

type allocateRequest struct {
	BankID *uuid.UUID `json:"bankId"`
}

// Create registers a new planned project.
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.CreateProjectInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	project, err := h.service.Create(r.Context(), input)
	if err != nil {
		respondServiceError(w, err, "failed to create project")
		return
	}

	respondJSON(w, http.StatusCreated, project)
}

// Get returns one project by ID.
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	project, err := h.service.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, err, "failed to get project")
		return
	}

	respondJSON(w, http.StatusOK, project)
}

// List returns all projects, optionally filtered by ?status=Planned|Issued.
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	var status *model.ProjectStatus
	switch r.URL.Query().Get("status") {
	case "":
	case string(model.ProjectStatusPlanned):
		s := model.ProjectStatusPlanned
		status = &s
	case string(model.ProjectStatusIssued):
		s := model.ProjectStatusIssued
		status = &s
	default:
		respondError(w, http.StatusBadRequest, "invalid status filter")
		return
	}

	projects, err := h.service.List(r.Context(), status)
	if err != nil {
		respondServiceError(w, err, "failed to list projects")
		return
	}

	respondJSON(w, http.StatusOK, projects)
}

// Update replaces a project's stored fields.
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var input service.UpdateProjectInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	project, err := h.service.Update(r.Context(), id, input)
	if err != nil {
		respondServiceError(w, err, "failed to update project")
		return
	}

	respondJSON(w, http.StatusOK, project)
}

// Delete removes a project.
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err, "failed to delete project")
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// Allocate records the chosen bank for a planned project. A null bankId
// clears the allocation.
func (h *ProjectHandler) Allocate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req allocateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	project, err := h.service.Allocate(r.Context(), id, req.BankID)
	if err != nil {
		respondServiceError(w, err, "failed to allocate project")
		return
	}

	respondJSON(w, http.StatusOK, project)
}

// Issue converts a planned project into an issued one, consuming capacity at
// its allocated bank.
func (h *ProjectHandler) Issue(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	project, err := h.service.Issue(r.Context(), id)
	if err != nil {
		respondServiceError(w, err, "failed to issue project")
		return
	}

	respondJSON(w, http.StatusOK, project)
}
