package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecisionService_Record(t *testing.T) {
	svc := NewDecisionService(newMockDecisionStore())
	ctx := context.Background()

	d, err := svc.Record(ctx, "double down on EU market", "proj-1", "revenue grows 20%", 0.7, []string{"quarterly revenue"}, "weekly-competitor-scan")
	assert.NoError(t, err)
	assert.NotEmpty(t, d.ID)
	assert.False(t, d.Evaluated())
	assert.Nil(t, d.AccuracyScore)
	assert.Equal(t, []string{"quarterly revenue"}, d.TrackingCriteria)
}

func TestDecisionService_Record_Validation(t *testing.T) {
	svc := NewDecisionService(newMockDecisionStore())
	ctx := context.Background()

	_, err := svc.Record(ctx, "", "", "outcome", 0.5, nil, "src")
	assert.Equal(t, ErrDecisionRecommendationMissing, err)

	_, err = svc.Record(ctx, "rec", "", "", 0.5, nil, "src")
	assert.Equal(t, ErrDecisionOutcomeMissing, err)

	_, err = svc.Record(ctx, "rec", "", "outcome", 0.5, nil, "")
	assert.Equal(t, ErrSourceReportMissing, err)

	_, err = svc.Record(ctx, "rec", "", "outcome", 1.5, nil, "src")
	assert.Equal(t, ErrDecisionConfidenceRange, err)
}

func TestDecisionService_Evaluate(t *testing.T) {
	store := newMockDecisionStore()
	svc := NewDecisionService(store)
	ctx := context.Background()

	d, _ := svc.Record(ctx, "rec", "", "outcome", 0.5, nil, "report-1")

	evaluated, err := svc.Evaluate(ctx, d.ID, "it worked", 0.9)
	assert.NoError(t, err)
	assert.True(t, evaluated.Evaluated())
	assert.Equal(t, "it worked", evaluated.ActualOutcome)
	assert.Equal(t, 0.9, *evaluated.AccuracyScore)

	// The stored record carries the terminal state.
	stored, _ := store.GetByID(ctx, d.ID)
	assert.True(t, stored.Evaluated())
}

func TestDecisionService_Evaluate_NotFound(t *testing.T) {
	svc := NewDecisionService(newMockDecisionStore())

	_, err := svc.Evaluate(context.Background(), "dec-missing", "outcome", 0.5)
	assert.Equal(t, ErrDecisionNotFound, err)
}

func TestDecisionService_Evaluate_Validation(t *testing.T) {
	svc := NewDecisionService(newMockDecisionStore())
	ctx := context.Background()

	_, err := svc.Evaluate(ctx, "dec-1", "", 0.5)
	assert.Equal(t, ErrActualOutcomeMissing, err)

	_, err = svc.Evaluate(ctx, "dec-1", "outcome", 1.2)
	assert.Equal(t, ErrAccuracyScoreRange, err)
}

func TestDecisionService_List_Filters(t *testing.T) {
	svc := NewDecisionService(newMockDecisionStore())
	ctx := context.Background()

	a, _ := svc.Record(ctx, "rec a", "proj-1", "outcome", 0.5, nil, "report-1")
	b, _ := svc.Record(ctx, "rec b", "proj-2", "outcome", 0.5, nil, "report-2")
	_, _ = svc.Evaluate(ctx, a.ID, "done", 0.8)

	evaluated := true
	got, err := svc.List(ctx, &evaluated, "")
	assert.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, a.ID, got[0].ID)

	open := false
	got, _ = svc.List(ctx, &open, "")
	assert.Len(t, got, 1)
	assert.Equal(t, b.ID, got[0].ID)

	got, _ = svc.List(ctx, nil, "proj-2")
	assert.Len(t, got, 1)
	assert.Equal(t, b.ID, got[0].ID)

	got, _ = svc.List(ctx, nil, "")
	assert.Len(t, got, 2)
}

func TestDecisionService_AccuracySummary(t *testing.T) {
	svc := NewDecisionService(newMockDecisionStore())
	ctx := context.Background()

	// Three evaluated decisions from the same normalized source.
	for i, score := range []float64{0.8, 0.6, 1.0} {
		d, err := svc.Record(ctx, "rec", "", "outcome", 0.5, nil, "weekly-competitor-scan")
		assert.NoError(t, err, "record %d", i)
		_, err = svc.Evaluate(ctx, d.ID, "observed", score)
		assert.NoError(t, err, "evaluate %d", i)
	}
	// An open decision must not affect any average.
	_, _ = svc.Record(ctx, "rec", "", "outcome", 0.5, nil, "weekly-competitor-scan")

	summary, err := svc.AccuracySummary(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 4, summary.Total)
	assert.Equal(t, 3, summary.Evaluated)
	assert.Equal(t, 0.8, summary.AvgAccuracy)

	src, ok := summary.BySource["weekly-competitor"]
	assert.True(t, ok, "expected normalized source key, got %v", summary.BySource)
	assert.Equal(t, 3, src.Count)
	assert.Equal(t, 0.8, src.AvgAccuracy)
}

func TestDecisionService_AccuracySummary_Empty(t *testing.T) {
	svc := NewDecisionService(newMockDecisionStore())

	summary, err := svc.AccuracySummary(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 0, summary.Total)
	assert.Equal(t, 0.0, summary.AvgAccuracy)
	assert.Empty(t, summary.BySource)
}

func TestSourceKey(t *testing.T) {
	assert.Equal(t, "weekly-competitor", sourceKey("weekly-competitor-scan-2024"))
	assert.Equal(t, "report-1", sourceKey("report-1"))
	assert.Equal(t, "manual", sourceKey("manual"))
}
