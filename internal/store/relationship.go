package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vimo33/focusflow-graph/internal/domain"
)

// RelationshipStore is a single shared append-only log of edges.
type RelationshipStore struct {
	path string
}

func NewRelationshipStore(dataDir string) (*RelationshipStore, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &RelationshipStore{path: filepath.Join(dataDir, "relationships.jsonl")}, nil
}

func (s *RelationshipStore) Append(ctx context.Context, r *domain.Relationship) error {
	return appendLine(s.path, r)
}

func (s *RelationshipStore) Scan(ctx context.Context) ([]domain.Relationship, error) {
	return scanLines[domain.Relationship](s.path)
}
