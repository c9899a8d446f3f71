package service

import (
	"context"

	"github.com/vimo33/focusflow-graph/internal/domain"
)

// StatsService composes read-only counts across the other services; it holds
// no state of its own.
type StatsService struct {
	entities       *EntityService
	relationships  *RelationshipService
	decisions      *DecisionService
	reconciliation *ReconciliationService
}

func NewStatsService(entities *EntityService, relationships *RelationshipService, decisions *DecisionService, reconciliation *ReconciliationService) *StatsService {
	return &StatsService{
		entities:       entities,
		relationships:  relationships,
		decisions:      decisions,
		reconciliation: reconciliation,
	}
}

func (s *StatsService) Stats(ctx context.Context) (*domain.GraphStats, error) {
	stats := &domain.GraphStats{
		EntityCounts: make(map[domain.EntityType]int, len(domain.AllEntityTypes)),
	}

	for _, t := range domain.AllEntityTypes {
		latest, err := s.entities.GetAllLatest(ctx, string(t))
		if err != nil {
			return nil, err
		}
		stats.EntityCounts[t] = len(latest)
		stats.TotalEntities += len(latest)
	}

	relationships, err := s.relationships.List(ctx, "")
	if err != nil {
		return nil, err
	}
	stats.TotalRelationships = len(relationships)

	decisions, err := s.decisions.List(ctx, nil, "")
	if err != nil {
		return nil, err
	}
	stats.TotalDecisions = len(decisions)

	unresolved := false
	pending, err := s.reconciliation.List(ctx, &unresolved)
	if err != nil {
		return nil, err
	}
	stats.PendingContradictions = len(pending)

	summary, err := s.decisions.AccuracySummary(ctx)
	if err != nil {
		return nil, err
	}
	stats.DecisionAccuracy = summary.AvgAccuracy

	return stats, nil
}
