package service

import (
	"context"
	"testing"
	"time"

	"github.com/vimo33/focusflow-graph/internal/domain"
)

func seedContradiction(t *testing.T, queue *mockContradictionStore, id string, detectedAt time.Time) {
	t.Helper()
	err := queue.Create(context.Background(), &domain.Contradiction{
		ID:         id,
		EntityType: domain.EntityCompetitor,
		EntityName: "Acme Corp",
		Field:      "pricing",
		ValueA:     domain.FieldValue{Value: "A", Source: "report-1", Timestamp: detectedAt.Add(-time.Hour)},
		ValueB:     domain.FieldValue{Value: "B", Source: "report-2", Timestamp: detectedAt},
		DetectedAt: detectedAt,
	})
	if err != nil {
		t.Fatalf("seed contradiction: %v", err)
	}
}

func TestReconciliationService_List_NewestFirst(t *testing.T) {
	queue := newMockContradictionStore()
	svc := NewReconciliationService(queue)
	now := time.Now().UTC()

	seedContradiction(t, queue, "contra-old", now.Add(-2*time.Hour))
	seedContradiction(t, queue, "contra-new", now)
	seedContradiction(t, queue, "contra-mid", now.Add(-time.Hour))

	got, err := svc.List(context.Background(), nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 contradictions, got %d", len(got))
	}
	if got[0].ID != "contra-new" || got[1].ID != "contra-mid" || got[2].ID != "contra-old" {
		t.Fatalf("unexpected order: %s, %s, %s", got[0].ID, got[1].ID, got[2].ID)
	}
}

func TestReconciliationService_ListFilter(t *testing.T) {
	queue := newMockContradictionStore()
	svc := NewReconciliationService(queue)
	ctx := context.Background()

	seedContradiction(t, queue, "contra-1", time.Now().UTC())
	seedContradiction(t, queue, "contra-2", time.Now().UTC())
	if _, err := svc.Resolve(ctx, "contra-1", "report-2 is authoritative"); err != nil {
		t.Fatalf("resolve: %v", err)
	}

	unresolved := false
	got, _ := svc.List(ctx, &unresolved)
	if len(got) != 1 || got[0].ID != "contra-2" {
		t.Fatalf("expected only contra-2 unresolved, got %+v", got)
	}

	resolved := true
	got, _ = svc.List(ctx, &resolved)
	if len(got) != 1 || got[0].ID != "contra-1" {
		t.Fatalf("expected only contra-1 resolved, got %+v", got)
	}
}

func TestReconciliationService_Resolve(t *testing.T) {
	queue := newMockContradictionStore()
	svc := NewReconciliationService(queue)
	ctx := context.Background()

	seedContradiction(t, queue, "contra-1", time.Now().UTC())

	c, err := svc.Resolve(ctx, "contra-1", "newer report wins")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !c.Resolved || c.Resolution != "newer report wins" {
		t.Fatalf("unexpected resolution state: %+v", c)
	}
}

func TestReconciliationService_Resolve_Idempotent(t *testing.T) {
	queue := newMockContradictionStore()
	svc := NewReconciliationService(queue)
	ctx := context.Background()

	seedContradiction(t, queue, "contra-1", time.Now().UTC())

	_, _ = svc.Resolve(ctx, "contra-1", "first note")
	c, err := svc.Resolve(ctx, "contra-1", "second note")
	if err != nil {
		t.Fatalf("second resolve must not error, got %v", err)
	}
	if !c.Resolved {
		t.Fatal("resolved flag must stay true")
	}
	if c.Resolution != "second note" {
		t.Fatalf("expected overwritten note, got %s", c.Resolution)
	}
}

func TestReconciliationService_Resolve_NotFound(t *testing.T) {
	svc := NewReconciliationService(newMockContradictionStore())

	if _, err := svc.Resolve(context.Background(), "contra-missing", "note"); err != ErrContradictionNotFound {
		t.Fatalf("expected ErrContradictionNotFound, got %v", err)
	}
}

func TestReconciliationService_Resolve_MissingNote(t *testing.T) {
	svc := NewReconciliationService(newMockContradictionStore())

	if _, err := svc.Resolve(context.Background(), "contra-1", ""); err != ErrResolutionMissing {
		t.Fatalf("expected ErrResolutionMissing, got %v", err)
	}
}
