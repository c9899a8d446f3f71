package service

import (
	"context"
	"testing"

	"github.com/vimo33/focusflow-graph/internal/domain"
	"go.uber.org/zap"
)

func TestStatsService_Stats(t *testing.T) {
	entities := newMockEntityStore()
	queue := newMockContradictionStore()
	entitySvc := NewEntityService(entities, NewDetector(queue, zap.NewNop()))
	relationshipSvc := NewRelationshipService(newMockRelationshipStore())
	decisionSvc := NewDecisionService(newMockDecisionStore())
	reconciliationSvc := NewReconciliationService(queue)
	svc := NewStatsService(entitySvc, relationshipSvc, decisionSvc, reconciliationSvc)
	ctx := context.Background()

	// Two competitors, one with two versions (counts once), one market.
	_, _ = entitySvc.Append(ctx, "competitor", "Acme Corp", map[string]any{"pricing": "A"}, "report-1")
	_, _ = entitySvc.Append(ctx, "competitor", "Acme Corp", map[string]any{"pricing": "B"}, "report-2")
	_, _ = entitySvc.Append(ctx, "competitor", "Globex", map[string]any{"pricing": "C"}, "report-1")
	_, _ = entitySvc.Append(ctx, "market", "EU SaaS", map[string]any{"size": "10B"}, "report-1")

	_, _ = relationshipSvc.Append(ctx, "a", "b", "competes_with", 1, "", "report-1")

	d, _ := decisionSvc.Record(ctx, "rec", "", "outcome", 0.5, nil, "report-1")
	_, _ = decisionSvc.Evaluate(ctx, d.ID, "observed", 0.9)
	_, _ = decisionSvc.Record(ctx, "rec 2", "", "outcome", 0.5, nil, "report-2")

	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}

	if stats.EntityCounts[domain.EntityCompetitor] != 2 {
		t.Fatalf("expected 2 competitors, got %d", stats.EntityCounts[domain.EntityCompetitor])
	}
	if stats.EntityCounts[domain.EntityMarket] != 1 {
		t.Fatalf("expected 1 market, got %d", stats.EntityCounts[domain.EntityMarket])
	}
	if stats.TotalEntities != 3 {
		t.Fatalf("expected 3 total entities, got %d", stats.TotalEntities)
	}
	if stats.TotalRelationships != 1 {
		t.Fatalf("expected 1 relationship, got %d", stats.TotalRelationships)
	}
	if stats.TotalDecisions != 2 {
		t.Fatalf("expected 2 decisions, got %d", stats.TotalDecisions)
	}
	// The Acme pricing flip queued one unresolved contradiction.
	if stats.PendingContradictions != 1 {
		t.Fatalf("expected 1 pending contradiction, got %d", stats.PendingContradictions)
	}
	if stats.DecisionAccuracy != 0.9 {
		t.Fatalf("expected decision accuracy 0.9, got %f", stats.DecisionAccuracy)
	}
}

func TestStatsService_Stats_Empty(t *testing.T) {
	entities := newMockEntityStore()
	queue := newMockContradictionStore()
	svc := NewStatsService(
		NewEntityService(entities, NewDetector(queue, zap.NewNop())),
		NewRelationshipService(newMockRelationshipStore()),
		NewDecisionService(newMockDecisionStore()),
		NewReconciliationService(queue),
	)

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalEntities != 0 || stats.TotalRelationships != 0 || stats.TotalDecisions != 0 {
		t.Fatalf("expected empty stats, got %+v", stats)
	}
	if stats.DecisionAccuracy != 0 {
		t.Fatalf("expected 0 accuracy with no decisions, got %f", stats.DecisionAccuracy)
	}
}
