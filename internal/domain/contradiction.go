package domain

import (
	"context"
	"time"
)

// FieldValue captures one side of a contradiction with its provenance.
type FieldValue struct {
	Value     any       `json:"value"`
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
}

// Contradiction is a detected conflict between two values of the same field
// on consecutive versions of the same named entity. Created only by the
// detector, never directly by a caller; transitions once from unresolved to
// resolved with a permanently attached resolution note.
type Contradiction struct {
	ID         string     `json:"id"`
	EntityType EntityType `json:"entity_type"`
	EntityName string     `json:"entity_name"`
	Field      string     `json:"field"`
	ValueA     FieldValue `json:"value_a"`
	ValueB     FieldValue `json:"value_b"`
	Resolved   bool       `json:"resolved"`
	Resolution string     `json:"resolution,omitempty"`
	DetectedAt time.Time  `json:"detected_at"`
}

type ContradictionStore interface {
	Create(ctx context.Context, c *Contradiction) error
	GetByID(ctx context.Context, id string) (*Contradiction, error)
	Update(ctx context.Context, c *Contradiction) error
	List(ctx context.Context) ([]Contradiction, error)
}
