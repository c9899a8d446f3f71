package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vimo33/focusflow-graph/internal/domain"
	"github.com/vimo33/focusflow-graph/internal/service"
)

type RelationshipHandler struct {
	svc *service.RelationshipService
}

func NewRelationshipHandler(svc *service.RelationshipService) *RelationshipHandler {
	return &RelationshipHandler{svc: svc}
}

type appendRelationshipRequest struct {
	Source       string   `json:"source"`
	Target       string   `json:"target"`
	Type         string   `json:"type"`
	Weight       *float64 `json:"weight,omitempty"`
	Evidence     string   `json:"evidence,omitempty"`
	SourceReport string   `json:"source_report"`
}

func (h *RelationshipHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req appendRelationshipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// Weight defaults to 1 when omitted.
	weight := 1.0
	if req.Weight != nil {
		weight = *req.Weight
	}

	rel, err := h.svc.Append(r.Context(), req.Source, req.Target, req.Type, weight, req.Evidence, req.SourceReport)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRelationshipSourceMissing),
			errors.Is(err, service.ErrRelationshipTargetMissing),
			errors.Is(err, service.ErrRelationshipTypeMissing),
			errors.Is(err, service.ErrSourceReportMissing):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "failed to append relationship")
		}
		return
	}

	writeJSON(w, http.StatusCreated, rel)
}

type listRelationshipsResponse struct {
	Count         int                   `json:"count"`
	Relationships []domain.Relationship `json:"relationships"`
}

func (h *RelationshipHandler) List(w http.ResponseWriter, r *http.Request) {
	entityID := r.URL.Query().Get("entity")

	rels, err := h.svc.List(r.Context(), entityID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list relationships")
		return
	}

	writeJSON(w, http.StatusOK, listRelationshipsResponse{
		Count:         len(rels),
		Relationships: rels,
	})
}
