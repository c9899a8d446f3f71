package domain

import (
	"context"
	"time"
)

// Decision is a recorded prediction tied to a recommendation. It transitions
// at most once from open to evaluated; once EvaluatedAt is set the record is
// terminal. AccuracyScore is a pointer so that "never evaluated" and "scored
// zero" stay distinguishable.
type Decision struct {
	ID               string     `json:"id"`
	Recommendation   string     `json:"recommendation"`
	ProjectID        string     `json:"project_id,omitempty"`
	PredictedOutcome string     `json:"predicted_outcome"`
	Confidence       float64    `json:"confidence"`
	TrackingCriteria []string   `json:"tracking_criteria"`
	SourceReport     string     `json:"source_report"`
	CreatedAt        time.Time  `json:"created_at"`
	EvaluatedAt      *time.Time `json:"evaluated_at,omitempty"`
	ActualOutcome    string     `json:"actual_outcome,omitempty"`
	AccuracyScore    *float64   `json:"accuracy_score,omitempty"`
}

func (d *Decision) Evaluated() bool {
	return d.EvaluatedAt != nil
}

// SourceAccuracy is the per-source rollup in an AccuracySummary.
type SourceAccuracy struct {
	Count       int     `json:"count"`
	AvgAccuracy float64 `json:"avg_accuracy"`
}

// AccuracySummary aggregates evaluated decisions. Averages are means over
// decisions that carry an accuracy score, rounded to two decimals; decisions
// without a score never contribute.
type AccuracySummary struct {
	Total       int                       `json:"total"`
	Evaluated   int                       `json:"evaluated"`
	AvgAccuracy float64                   `json:"avg_accuracy"`
	BySource    map[string]SourceAccuracy `json:"by_source"`
}

type DecisionStore interface {
	Create(ctx context.Context, d *Decision) error
	GetByID(ctx context.Context, id string) (*Decision, error)
	Update(ctx context.Context, d *Decision) error
	List(ctx context.Context) ([]Decision, error)
}
