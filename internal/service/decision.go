package service

import (
	"context"
	"errors"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/vimo33/focusflow-graph/internal/domain"
	"github.com/vimo33/focusflow-graph/internal/store"
)

var (
	ErrDecisionRecommendationMissing = errors.New("recommendation is required")
	ErrDecisionOutcomeMissing        = errors.New("predicted_outcome is required")
	ErrDecisionConfidenceRange       = errors.New("confidence must be between 0 and 1")
	ErrDecisionNotFound              = errors.New("decision not found")
	ErrActualOutcomeMissing          = errors.New("actual_outcome is required")
	ErrAccuracyScoreRange            = errors.New("accuracy_score must be between 0 and 1")
)

type DecisionService struct {
	decisions domain.DecisionStore
}

func NewDecisionService(decisions domain.DecisionStore) *DecisionService {
	return &DecisionService{decisions: decisions}
}

// Record persists a new open decision.
func (s *DecisionService) Record(ctx context.Context, recommendation, projectID, predictedOutcome string, confidence float64, trackingCriteria []string, sourceReport string) (*domain.Decision, error) {
	if strings.TrimSpace(recommendation) == "" {
		return nil, ErrDecisionRecommendationMissing
	}
	if strings.TrimSpace(predictedOutcome) == "" {
		return nil, ErrDecisionOutcomeMissing
	}
	if sourceReport == "" {
		return nil, ErrSourceReportMissing
	}
	if confidence < 0 || confidence > 1 {
		return nil, ErrDecisionConfidenceRange
	}
	if trackingCriteria == nil {
		trackingCriteria = []string{}
	}

	d := &domain.Decision{
		ID:               newID("dec"),
		Recommendation:   recommendation,
		ProjectID:        projectID,
		PredictedOutcome: predictedOutcome,
		Confidence:       confidence,
		TrackingCriteria: trackingCriteria,
		SourceReport:     sourceReport,
		CreatedAt:        time.Now().UTC(),
	}
	if err := s.decisions.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Evaluate closes out a decision with its observed outcome and accuracy
// score. The transition is terminal; the ledger is the only writer.
func (s *DecisionService) Evaluate(ctx context.Context, id, actualOutcome string, accuracyScore float64) (*domain.Decision, error) {
	if strings.TrimSpace(actualOutcome) == "" {
		return nil, ErrActualOutcomeMissing
	}
	if accuracyScore < 0 || accuracyScore > 1 {
		return nil, ErrAccuracyScoreRange
	}

	d, err := s.decisions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrDecisionNotFound
		}
		return nil, err
	}

	now := time.Now().UTC()
	d.EvaluatedAt = &now
	d.ActualOutcome = actualOutcome
	d.AccuracyScore = &accuracyScore
	if err := s.decisions.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// List returns decisions newest-first, optionally filtered by evaluation
// status and project id.
func (s *DecisionService) List(ctx context.Context, evaluated *bool, projectID string) ([]domain.Decision, error) {
	all, err := s.decisions.List(ctx)
	if err != nil {
		return nil, err
	}
	var matched []domain.Decision
	for _, d := range all {
		if evaluated != nil && d.Evaluated() != *evaluated {
			continue
		}
		if projectID != "" && d.ProjectID != projectID {
			continue
		}
		matched = append(matched, d)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return matched, nil
}

// AccuracySummary rolls up evaluated decisions overall and per normalized
// source. Decisions without an accuracy score are counted in Total but
// excluded from every average.
func (s *DecisionService) AccuracySummary(ctx context.Context) (*domain.AccuracySummary, error) {
	all, err := s.decisions.List(ctx)
	if err != nil {
		return nil, err
	}

	summary := &domain.AccuracySummary{
		Total:    len(all),
		BySource: make(map[string]domain.SourceAccuracy),
	}

	type group struct {
		count int
		sum   float64
	}
	groups := make(map[string]*group)
	var sum float64
	for _, d := range all {
		if d.AccuracyScore == nil {
			continue
		}
		summary.Evaluated++
		sum += *d.AccuracyScore

		key := sourceKey(d.SourceReport)
		g, ok := groups[key]
		if !ok {
			g = &group{}
			groups[key] = g
		}
		g.count++
		g.sum += *d.AccuracyScore
	}

	if summary.Evaluated > 0 {
		summary.AvgAccuracy = round2(sum / float64(summary.Evaluated))
	}
	for key, g := range groups {
		summary.BySource[key] = domain.SourceAccuracy{
			Count:       g.count,
			AvgAccuracy: round2(g.sum / float64(g.count)),
		}
	}
	return summary, nil
}

// sourceKey normalizes a source_report to its first two hyphen-delimited
// tokens, so "weekly-competitor-scan-2024-07" groups as "weekly-competitor".
func sourceKey(report string) string {
	parts := strings.Split(report, "-")
	if len(parts) > 2 {
		parts = parts[:2]
	}
	return strings.Join(parts, "-")
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
