package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vimo33/focusflow-graph/internal/domain"
)

// ContradictionStore keeps one JSON document per detected contradiction,
// rewritten in place on resolution.
type ContradictionStore struct {
	dir string
}

func NewContradictionStore(dataDir string) (*ContradictionStore, error) {
	dir := filepath.Join(dataDir, "reconciliation")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create reconciliation dir: %w", err)
	}
	return &ContradictionStore{dir: dir}, nil
}

func (s *ContradictionStore) docPath(id string) string {
	return filepath.Join(s.dir, id+".json")
}

func (s *ContradictionStore) Create(ctx context.Context, c *domain.Contradiction) error {
	return writeDoc(s.docPath(c.ID), c)
}

func (s *ContradictionStore) GetByID(ctx context.Context, id string) (*domain.Contradiction, error) {
	return readDoc[domain.Contradiction](s.docPath(id))
}

func (s *ContradictionStore) Update(ctx context.Context, c *domain.Contradiction) error {
	return writeDoc(s.docPath(c.ID), c)
}

func (s *ContradictionStore) List(ctx context.Context) ([]domain.Contradiction, error) {
	return listDocs[domain.Contradiction](s.dir)
}
