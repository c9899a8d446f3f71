package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vimo33/focusflow-graph/internal/domain"
)

// EntityStore keeps one append-only version log per entity type.
type EntityStore struct {
	dir string
}

func NewEntityStore(dataDir string) (*EntityStore, error) {
	dir := filepath.Join(dataDir, "entities")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create entities dir: %w", err)
	}
	return &EntityStore{dir: dir}, nil
}

func (s *EntityStore) logPath(t domain.EntityType) string {
	return filepath.Join(s.dir, string(t)+"s.jsonl")
}

func (s *EntityStore) Append(ctx context.Context, v *domain.EntityVersion) error {
	return appendLine(s.logPath(v.EntityType), v)
}

func (s *EntityStore) Scan(ctx context.Context, entityType domain.EntityType) ([]domain.EntityVersion, error) {
	return scanLines[domain.EntityVersion](s.logPath(entityType))
}
