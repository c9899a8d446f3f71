package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vimo33/focusflow-graph/internal/domain"
)

// DecisionStore keeps one JSON document per decision id, rewritten in place
// when a decision is evaluated.
type DecisionStore struct {
	dir string
}

func NewDecisionStore(dataDir string) (*DecisionStore, error) {
	dir := filepath.Join(dataDir, "decisions")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create decisions dir: %w", err)
	}
	return &DecisionStore{dir: dir}, nil
}

func (s *DecisionStore) docPath(id string) string {
	return filepath.Join(s.dir, id+".json")
}

func (s *DecisionStore) Create(ctx context.Context, d *domain.Decision) error {
	return writeDoc(s.docPath(d.ID), d)
}

func (s *DecisionStore) GetByID(ctx context.Context, id string) (*domain.Decision, error) {
	return readDoc[domain.Decision](s.docPath(id))
}

func (s *DecisionStore) Update(ctx context.Context, d *domain.Decision) error {
	return writeDoc(s.docPath(d.ID), d)
}

func (s *DecisionStore) List(ctx context.Context) ([]domain.Decision, error) {
	return listDocs[domain.Decision](s.dir)
}
