package service

import (
	"context"
	"errors"
	"sort"

	"github.com/vimo33/focusflow-graph/internal/domain"
	"github.com/vimo33/focusflow-graph/internal/store"
)

var (
	ErrContradictionNotFound = errors.New("contradiction not found")
	ErrResolutionMissing     = errors.New("resolution is required")
)

// ReconciliationService is the manual resolution workflow over detected
// contradictions.
type ReconciliationService struct {
	queue domain.ContradictionStore
}

func NewReconciliationService(queue domain.ContradictionStore) *ReconciliationService {
	return &ReconciliationService{queue: queue}
}

// List returns contradictions most-recently-detected first, optionally
// filtered by resolution status.
func (s *ReconciliationService) List(ctx context.Context, resolved *bool) ([]domain.Contradiction, error) {
	all, err := s.queue.List(ctx)
	if err != nil {
		return nil, err
	}
	var matched []domain.Contradiction
	for _, c := range all {
		if resolved != nil && c.Resolved != *resolved {
			continue
		}
		matched = append(matched, c)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].DetectedAt.After(matched[j].DetectedAt)
	})
	return matched, nil
}

// Resolve marks a contradiction resolved and attaches the resolution note.
// Resolving an already-resolved contradiction overwrites the note; the
// resolved flag never flips back.
func (s *ReconciliationService) Resolve(ctx context.Context, id, resolution string) (*domain.Contradiction, error) {
	if resolution == "" {
		return nil, ErrResolutionMissing
	}
	c, err := s.queue.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrContradictionNotFound
		}
		return nil, err
	}
	c.Resolved = true
	c.Resolution = resolution
	if err := s.queue.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
