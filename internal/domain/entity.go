package domain

import (
	"context"
	"time"
)

type EntityType string

const (
	EntityMarket      EntityType = "market"
	EntityCompetitor  EntityType = "competitor"
	EntityPerson      EntityType = "person"
	EntityProject     EntityType = "project"
	EntityOpportunity EntityType = "opportunity"
	EntityTechnology  EntityType = "technology"
)

// AllEntityTypes lists the closed set in a stable order, used wherever every
// per-type log has to be visited (search across types, stats).
var AllEntityTypes = []EntityType{
	EntityMarket,
	EntityCompetitor,
	EntityPerson,
	EntityProject,
	EntityOpportunity,
	EntityTechnology,
}

func ValidEntityType(e string) bool {
	switch EntityType(e) {
	case EntityMarket, EntityCompetitor, EntityPerson,
		EntityProject, EntityOpportunity, EntityTechnology:
		return true
	}
	return false
}

// EntityVersion is one immutable, timestamped snapshot of a named entity.
// Versions for a (type, name) pair form an append-only chain: PrevVersion
// points at the immediately preceding version's ID, and the version number
// embedded in ID increases by exactly one per accepted append.
type EntityVersion struct {
	ID           string         `json:"id"`
	PrevVersion  string         `json:"prev_version,omitempty"`
	EntityType   EntityType     `json:"entity_type"`
	Name         string         `json:"name"`
	Data         map[string]any `json:"data"`
	SourceReport string         `json:"source_report"`
	ContentHash  string         `json:"content_hash"`
	Timestamp    time.Time      `json:"timestamp"`
}

// EntityStore is an ordered, durable, append-only sequence of entity versions
// per type. Scan returns the full log in append order; a log that does not
// exist yet reads as empty.
type EntityStore interface {
	Append(ctx context.Context, v *EntityVersion) error
	Scan(ctx context.Context, entityType EntityType) ([]EntityVersion, error)
}
