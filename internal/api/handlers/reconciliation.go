package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vimo33/focusflow-graph/internal/domain"
	"github.com/vimo33/focusflow-graph/internal/service"
)

type ReconciliationHandler struct {
	svc *service.ReconciliationService
}

func NewReconciliationHandler(svc *service.ReconciliationService) *ReconciliationHandler {
	return &ReconciliationHandler{svc: svc}
}

type listContradictionsResponse struct {
	Count          int                    `json:"count"`
	Contradictions []domain.Contradiction `json:"contradictions"`
}

func (h *ReconciliationHandler) List(w http.ResponseWriter, r *http.Request) {
	resolved := boolParam(r, "resolved")

	contradictions, err := h.svc.List(r.Context(), resolved)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list contradictions")
		return
	}

	writeJSON(w, http.StatusOK, listContradictionsResponse{
		Count:          len(contradictions),
		Contradictions: contradictions,
	})
}

type resolveContradictionRequest struct {
	Resolution string `json:"resolution"`
}

func (h *ReconciliationHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req resolveContradictionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.svc.Resolve(r.Context(), id, req.Resolution)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrContradictionNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrResolutionMissing):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "failed to resolve contradiction")
		}
		return
	}

	writeJSON(w, http.StatusOK, c)
}
