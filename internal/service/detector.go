package service

import (
	"context"
	"time"

	"github.com/vimo33/focusflow-graph/internal/domain"
	"go.uber.org/zap"
)

// ConflictPolicy decides whether a changed field value is a contradiction
// rather than an ordinary update. Isolated so the policy can be extended
// without touching the append path.
type ConflictPolicy func(oldVal, newVal any) bool

// StringConflict is the default policy: only a string-to-string change counts
// as a contradiction. Numeric, list, and nested-object drift is expected
// (revenue estimates move, tag lists grow) and passes as a plain update.
func StringConflict(oldVal, newVal any) bool {
	a, aok := oldVal.(string)
	b, bok := newVal.(string)
	return aok && bok && a != b
}

// Detector compares consecutive versions of an entity and queues a
// contradiction record for every conflicting field.
type Detector struct {
	queue    domain.ContradictionStore
	conflict ConflictPolicy
	logger   *zap.Logger
}

func NewDetector(queue domain.ContradictionStore, logger *zap.Logger) *Detector {
	return &Detector{
		queue:    queue,
		conflict: StringConflict,
		logger:   logger,
	}
}

// Inspect diffs prev against curr, one contradiction per conflicting field.
// Detection is best-effort relative to the append that triggered it: a queue
// write failure is logged and never propagated, so a reconciliation-store
// fault cannot roll back an otherwise-successful entity append.
func (d *Detector) Inspect(ctx context.Context, prev, curr *domain.EntityVersion) {
	for field, newVal := range curr.Data {
		oldVal, ok := prev.Data[field]
		if !ok {
			continue
		}
		if !d.conflict(oldVal, newVal) {
			continue
		}
		c := &domain.Contradiction{
			ID:         newID("contra"),
			EntityType: curr.EntityType,
			EntityName: curr.Name,
			Field:      field,
			ValueA: domain.FieldValue{
				Value:     oldVal,
				Source:    prev.SourceReport,
				Timestamp: prev.Timestamp,
			},
			ValueB: domain.FieldValue{
				Value:     newVal,
				Source:    curr.SourceReport,
				Timestamp: curr.Timestamp,
			},
			Resolved:   false,
			DetectedAt: time.Now().UTC(),
		}
		if err := d.queue.Create(ctx, c); err != nil {
			d.logger.Warn("failed to queue contradiction",
				zap.String("entity_id", curr.ID),
				zap.String("field", field),
				zap.Error(err),
			)
		}
	}
}
