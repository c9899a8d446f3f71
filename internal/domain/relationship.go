package domain

import (
	"context"
	"time"
)

// Relationship is a directed, typed, weighted edge between two entity
// identifiers. Immutable once appended; there is no update or delete.
type Relationship struct {
	ID           string    `json:"id"`
	Source       string    `json:"source"`
	Target       string    `json:"target"`
	Type         string    `json:"type"`
	Weight       float64   `json:"weight"`
	Evidence     string    `json:"evidence"`
	SourceReport string    `json:"source_report"`
	Timestamp    time.Time `json:"timestamp"`
}

type RelationshipStore interface {
	Append(ctx context.Context, r *Relationship) error
	Scan(ctx context.Context) ([]Relationship, error)
}
