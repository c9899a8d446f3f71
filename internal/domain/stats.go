package domain

// GraphStats is the derived report over all stores. Entity counts are over
// latest versions only, one per distinct case-insensitive name.
type GraphStats struct {
	EntityCounts          map[EntityType]int `json:"entity_counts"`
	TotalEntities         int                `json:"total_entities"`
	TotalRelationships    int                `json:"total_relationships"`
	TotalDecisions        int                `json:"total_decisions"`
	PendingContradictions int                `json:"pending_contradictions"`
	DecisionAccuracy      float64            `json:"decision_accuracy"`
}
