package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vimo33/focusflow-graph/internal/domain"
	"github.com/vimo33/focusflow-graph/internal/service"
)

type DecisionHandler struct {
	svc *service.DecisionService
}

func NewDecisionHandler(svc *service.DecisionService) *DecisionHandler {
	return &DecisionHandler{svc: svc}
}

type recordDecisionRequest struct {
	Recommendation   string   `json:"recommendation"`
	ProjectID        string   `json:"project_id,omitempty"`
	PredictedOutcome string   `json:"predicted_outcome"`
	Confidence       *float64 `json:"confidence,omitempty"`
	TrackingCriteria []string `json:"tracking_criteria,omitempty"`
	SourceReport     string   `json:"source_report"`
}

func (h *DecisionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req recordDecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// Confidence defaults to 0.5 when omitted.
	confidence := 0.5
	if req.Confidence != nil {
		confidence = *req.Confidence
	}

	dec, err := h.svc.Record(r.Context(), req.Recommendation, req.ProjectID, req.PredictedOutcome, confidence, req.TrackingCriteria, req.SourceReport)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDecisionRecommendationMissing),
			errors.Is(err, service.ErrDecisionOutcomeMissing),
			errors.Is(err, service.ErrDecisionConfidenceRange),
			errors.Is(err, service.ErrSourceReportMissing):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "failed to record decision")
		}
		return
	}

	writeJSON(w, http.StatusCreated, dec)
}

type listDecisionsResponse struct {
	Count     int               `json:"count"`
	Decisions []domain.Decision `json:"decisions"`
}

func (h *DecisionHandler) List(w http.ResponseWriter, r *http.Request) {
	evaluated := boolParam(r, "evaluated")
	projectID := r.URL.Query().Get("project_id")

	decisions, err := h.svc.List(r.Context(), evaluated, projectID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list decisions")
		return
	}

	writeJSON(w, http.StatusOK, listDecisionsResponse{
		Count:     len(decisions),
		Decisions: decisions,
	})
}

type evaluateDecisionRequest struct {
	ActualOutcome string   `json:"actual_outcome"`
	AccuracyScore *float64 `json:"accuracy_score"`
}

func (h *DecisionHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req evaluateDecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.AccuracyScore == nil {
		writeError(w, http.StatusBadRequest, "accuracy_score is required")
		return
	}

	dec, err := h.svc.Evaluate(r.Context(), id, req.ActualOutcome, *req.AccuracyScore)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDecisionNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrActualOutcomeMissing),
			errors.Is(err, service.ErrAccuracyScoreRange):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "failed to evaluate decision")
		}
		return
	}

	writeJSON(w, http.StatusOK, dec)
}

func (h *DecisionHandler) Accuracy(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.AccuracySummary(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to compute accuracy summary")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
