package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vimo33/focusflow-graph/internal/domain"
	"github.com/vimo33/focusflow-graph/internal/service"
)

type EntityHandler struct {
	svc *service.EntityService
}

func NewEntityHandler(svc *service.EntityService) *EntityHandler {
	return &EntityHandler{svc: svc}
}

type appendEntityRequest struct {
	EntityType   string         `json:"entity_type"`
	Name         string         `json:"name"`
	Data         map[string]any `json:"data"`
	SourceReport string         `json:"source_report"`
}

func (h *EntityHandler) Append(w http.ResponseWriter, r *http.Request) {
	var req appendEntityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	version, err := h.svc.Append(r.Context(), req.EntityType, req.Name, req.Data, req.SourceReport)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEntityType),
			errors.Is(err, service.ErrEntityNameMissing),
			errors.Is(err, service.ErrEntityDataMissing),
			errors.Is(err, service.ErrSourceReportMissing):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "failed to append entity")
		}
		return
	}

	writeJSON(w, http.StatusCreated, version)
}

type listEntitiesResponse struct {
	Type     string                 `json:"type"`
	Count    int                    `json:"count"`
	Entities []domain.EntityVersion `json:"entities"`
}

func (h *EntityHandler) ListLatest(w http.ResponseWriter, r *http.Request) {
	entityType := chi.URLParam(r, "type")

	entities, err := h.svc.GetAllLatest(r.Context(), entityType)
	if err != nil {
		if errors.Is(err, service.ErrInvalidEntityType) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to list entities")
		return
	}

	writeJSON(w, http.StatusOK, listEntitiesResponse{
		Type:     entityType,
		Count:    len(entities),
		Entities: entities,
	})
}

type entityHistoryResponse struct {
	Type     string                 `json:"type"`
	Name     string                 `json:"name"`
	Versions int                    `json:"versions"`
	History  []domain.EntityVersion `json:"history"`
}

func (h *EntityHandler) History(w http.ResponseWriter, r *http.Request) {
	entityType := chi.URLParam(r, "type")
	name := chi.URLParam(r, "name")

	history, err := h.svc.GetHistory(r.Context(), entityType, name)
	if err != nil {
		if errors.Is(err, service.ErrInvalidEntityType) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load history")
		return
	}

	writeJSON(w, http.StatusOK, entityHistoryResponse{
		Type:     entityType,
		Name:     name,
		Versions: len(history),
		History:  history,
	})
}

type searchResponse struct {
	Query   string                 `json:"query"`
	Count   int                    `json:"count"`
	Results []domain.EntityVersion `json:"results"`
}

func (h *EntityHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	entityType := r.URL.Query().Get("type")

	results, err := h.svc.Search(r.Context(), query, entityType)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSearchQueryMissing),
			errors.Is(err, service.ErrInvalidEntityType):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "search failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Query:   query,
		Count:   len(results),
		Results: results,
	})
}
