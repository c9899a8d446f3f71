package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/vimo33/focusflow-graph/internal/domain"
)

var (
	ErrRelationshipSourceMissing = errors.New("source is required")
	ErrRelationshipTargetMissing = errors.New("target is required")
	ErrRelationshipTypeMissing   = errors.New("type is required")
)

type RelationshipService struct {
	relationships domain.RelationshipStore
}

func NewRelationshipService(relationships domain.RelationshipStore) *RelationshipService {
	return &RelationshipService{relationships: relationships}
}

// Append records an edge unconditionally; relationships are never deduped.
func (s *RelationshipService) Append(ctx context.Context, source, target, relType string, weight float64, evidence, sourceReport string) (*domain.Relationship, error) {
	if source == "" {
		return nil, ErrRelationshipSourceMissing
	}
	if target == "" {
		return nil, ErrRelationshipTargetMissing
	}
	if relType == "" {
		return nil, ErrRelationshipTypeMissing
	}
	if sourceReport == "" {
		return nil, ErrSourceReportMissing
	}

	r := &domain.Relationship{
		ID:           newID("rel"),
		Source:       source,
		Target:       target,
		Type:         relType,
		Weight:       weight,
		Evidence:     evidence,
		SourceReport: sourceReport,
		Timestamp:    time.Now().UTC(),
	}
	if err := s.relationships.Append(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// List returns every relationship in append order, or only those where
// entityID is a substring of either endpoint.
func (s *RelationshipService) List(ctx context.Context, entityID string) ([]domain.Relationship, error) {
	all, err := s.relationships.Scan(ctx)
	if err != nil {
		return nil, err
	}
	if entityID == "" {
		return all, nil
	}
	var matched []domain.Relationship
	for _, r := range all {
		if strings.Contains(r.Source, entityID) || strings.Contains(r.Target, entityID) {
			matched = append(matched, r)
		}
	}
	return matched, nil
}
