package service

import (
	"context"
	"errors"

	"github.com/vimo33/focusflow-graph/internal/domain"
	"github.com/vimo33/focusflow-graph/internal/store"
)

// mockEntityStore implements domain.EntityStore for testing.
type mockEntityStore struct {
	logs map[domain.EntityType][]domain.EntityVersion
}

func newMockEntityStore() *mockEntityStore {
	return &mockEntityStore{logs: make(map[domain.EntityType][]domain.EntityVersion)}
}

func (m *mockEntityStore) Append(ctx context.Context, v *domain.EntityVersion) error {
	m.logs[v.EntityType] = append(m.logs[v.EntityType], *v)
	return nil
}

func (m *mockEntityStore) Scan(ctx context.Context, t domain.EntityType) ([]domain.EntityVersion, error) {
	return m.logs[t], nil
}

// mockRelationshipStore implements domain.RelationshipStore for testing.
type mockRelationshipStore struct {
	relationships []domain.Relationship
}

func newMockRelationshipStore() *mockRelationshipStore {
	return &mockRelationshipStore{}
}

func (m *mockRelationshipStore) Append(ctx context.Context, r *domain.Relationship) error {
	m.relationships = append(m.relationships, *r)
	return nil
}

func (m *mockRelationshipStore) Scan(ctx context.Context) ([]domain.Relationship, error) {
	return m.relationships, nil
}

// mockDecisionStore implements domain.DecisionStore for testing.
type mockDecisionStore struct {
	decisions map[string]*domain.Decision
	order     []string
}

func newMockDecisionStore() *mockDecisionStore {
	return &mockDecisionStore{decisions: make(map[string]*domain.Decision)}
}

func (m *mockDecisionStore) Create(ctx context.Context, d *domain.Decision) error {
	clone := *d
	m.decisions[d.ID] = &clone
	m.order = append(m.order, d.ID)
	return nil
}

func (m *mockDecisionStore) GetByID(ctx context.Context, id string) (*domain.Decision, error) {
	d, ok := m.decisions[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	clone := *d
	return &clone, nil
}

func (m *mockDecisionStore) Update(ctx context.Context, d *domain.Decision) error {
	if _, ok := m.decisions[d.ID]; !ok {
		return store.ErrNotFound
	}
	clone := *d
	m.decisions[d.ID] = &clone
	return nil
}

func (m *mockDecisionStore) List(ctx context.Context) ([]domain.Decision, error) {
	var out []domain.Decision
	for _, id := range m.order {
		out = append(out, *m.decisions[id])
	}
	return out, nil
}

// mockContradictionStore implements domain.ContradictionStore for testing.
// createErr makes Create fail, to exercise best-effort detection.
type mockContradictionStore struct {
	contradictions map[string]*domain.Contradiction
	order          []string
	createErr      error
}

func newMockContradictionStore() *mockContradictionStore {
	return &mockContradictionStore{contradictions: make(map[string]*domain.Contradiction)}
}

func (m *mockContradictionStore) Create(ctx context.Context, c *domain.Contradiction) error {
	if m.createErr != nil {
		return m.createErr
	}
	clone := *c
	m.contradictions[c.ID] = &clone
	m.order = append(m.order, c.ID)
	return nil
}

func (m *mockContradictionStore) GetByID(ctx context.Context, id string) (*domain.Contradiction, error) {
	c, ok := m.contradictions[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	clone := *c
	return &clone, nil
}

func (m *mockContradictionStore) Update(ctx context.Context, c *domain.Contradiction) error {
	if _, ok := m.contradictions[c.ID]; !ok {
		return store.ErrNotFound
	}
	clone := *c
	m.contradictions[c.ID] = &clone
	return nil
}

func (m *mockContradictionStore) List(ctx context.Context) ([]domain.Contradiction, error) {
	var out []domain.Contradiction
	for _, id := range m.order {
		out = append(out, *m.contradictions[id])
	}
	return out, nil
}

var errDiskFull = errors.New("disk full")
