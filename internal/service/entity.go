package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/vimo33/focusflow-graph/internal/domain"
	"github.com/vimo33/focusflow-graph/internal/hash"
)

var (
	ErrInvalidEntityType   = errors.New("invalid entity_type")
	ErrEntityNameMissing   = errors.New("name is required")
	ErrEntityDataMissing   = errors.New("data is required")
	ErrSourceReportMissing = errors.New("source_report is required")
	ErrEntityNotFound      = errors.New("entity not found")
	ErrSearchQueryMissing  = errors.New("search query is required")
)

const (
	typePrefixLen = 3
	slugMaxLen    = 20
)

var (
	slugPattern    = regexp.MustCompile(`[^a-z0-9]+`)
	versionPattern = regexp.MustCompile(`-v(\d+)$`)
)

// EntityService owns the append-only version chains. Appends are serialized
// per entity type so two concurrent observers of the same entity cannot race
// between reading the latest version and appending the next one.
type EntityService struct {
	entities domain.EntityStore
	detector *Detector
	locks    map[domain.EntityType]*sync.Mutex
}

func NewEntityService(entities domain.EntityStore, detector *Detector) *EntityService {
	locks := make(map[domain.EntityType]*sync.Mutex, len(domain.AllEntityTypes))
	for _, t := range domain.AllEntityTypes {
		locks[t] = &sync.Mutex{}
	}
	return &EntityService{
		entities: entities,
		detector: detector,
		locks:    locks,
	}
}

// Append records one observation of a named entity. If the payload hashes
// identically to the current latest version the existing version is returned
// and nothing is written. Otherwise a new version is appended with the next
// version number and, when a prior version existed, the contradiction
// detector inspects the transition.
func (s *EntityService) Append(ctx context.Context, entityType, name string, data map[string]any, sourceReport string) (*domain.EntityVersion, error) {
	if !domain.ValidEntityType(entityType) {
		return nil, ErrInvalidEntityType
	}
	if strings.TrimSpace(name) == "" {
		return nil, ErrEntityNameMissing
	}
	if data == nil {
		return nil, ErrEntityDataMissing
	}
	if sourceReport == "" {
		return nil, ErrSourceReportMissing
	}

	t := domain.EntityType(entityType)
	fp, err := hash.Fingerprint(data)
	if err != nil {
		return nil, err
	}

	mu := s.locks[t]
	mu.Lock()
	defer mu.Unlock()

	prev, err := s.latest(ctx, t, name)
	if err != nil {
		return nil, err
	}
	if prev != nil && prev.ContentHash == fp {
		return prev, nil
	}

	version := 1
	prevID := ""
	if prev != nil {
		version = versionOf(prev.ID) + 1
		prevID = prev.ID
	}

	v := &domain.EntityVersion{
		ID:           fmt.Sprintf("%s-%s-v%d", string(t)[:typePrefixLen], slugify(name), version),
		PrevVersion:  prevID,
		EntityType:   t,
		Name:         name,
		Data:         data,
		SourceReport: sourceReport,
		ContentHash:  fp,
		Timestamp:    time.Now().UTC(),
	}

	if err := s.entities.Append(ctx, v); err != nil {
		return nil, err
	}

	if prev != nil && s.detector != nil {
		s.detector.Inspect(ctx, prev, v)
	}
	return v, nil
}

// GetLatest returns the most recent version for a case-insensitive name.
func (s *EntityService) GetLatest(ctx context.Context, entityType, name string) (*domain.EntityVersion, error) {
	if !domain.ValidEntityType(entityType) {
		return nil, ErrInvalidEntityType
	}
	v, err := s.latest(ctx, domain.EntityType(entityType), name)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, ErrEntityNotFound
	}
	return v, nil
}

// GetHistory returns every version for a case-insensitive name in append
// order. An unknown name yields an empty history, not an error.
func (s *EntityService) GetHistory(ctx context.Context, entityType, name string) ([]domain.EntityVersion, error) {
	if !domain.ValidEntityType(entityType) {
		return nil, ErrInvalidEntityType
	}
	versions, err := s.entities.Scan(ctx, domain.EntityType(entityType))
	if err != nil {
		return nil, err
	}
	lower := strings.ToLower(name)
	var history []domain.EntityVersion
	for _, v := range versions {
		if strings.ToLower(v.Name) == lower {
			history = append(history, v)
		}
	}
	return history, nil
}

// GetAllLatest returns the last-seen version for every distinct
// case-insensitive name in the type's log, ordered by first appearance.
// Stable because the log is append-only and replayed in order.
func (s *EntityService) GetAllLatest(ctx context.Context, entityType string) ([]domain.EntityVersion, error) {
	if !domain.ValidEntityType(entityType) {
		return nil, ErrInvalidEntityType
	}
	versions, err := s.entities.Scan(ctx, domain.EntityType(entityType))
	if err != nil {
		return nil, err
	}
	index := make(map[string]int)
	var latest []domain.EntityVersion
	for _, v := range versions {
		key := strings.ToLower(v.Name)
		if i, seen := index[key]; seen {
			latest[i] = v
			continue
		}
		index[key] = len(latest)
		latest = append(latest, v)
	}
	return latest, nil
}

// Search matches the query case-insensitively against entity names and the
// serialized payload of latest versions, across one type or all of them.
func (s *EntityService) Search(ctx context.Context, query, entityType string) ([]domain.EntityVersion, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrSearchQueryMissing
	}
	types := domain.AllEntityTypes
	if entityType != "" {
		if !domain.ValidEntityType(entityType) {
			return nil, ErrInvalidEntityType
		}
		types = []domain.EntityType{domain.EntityType(entityType)}
	}

	q := strings.ToLower(query)
	var results []domain.EntityVersion
	for _, t := range types {
		latest, err := s.GetAllLatest(ctx, string(t))
		if err != nil {
			return nil, err
		}
		for _, v := range latest {
			if strings.Contains(strings.ToLower(v.Name), q) || payloadContains(v.Data, q) {
				results = append(results, v)
			}
		}
	}
	return results, nil
}

func (s *EntityService) latest(ctx context.Context, t domain.EntityType, name string) (*domain.EntityVersion, error) {
	versions, err := s.entities.Scan(ctx, t)
	if err != nil {
		return nil, err
	}
	lower := strings.ToLower(name)
	for i := len(versions) - 1; i >= 0; i-- {
		if strings.ToLower(versions[i].Name) == lower {
			return &versions[i], nil
		}
	}
	return nil, nil
}

func payloadContains(data map[string]any, q string) bool {
	b, err := json.Marshal(data)
	if err != nil {
		return false
	}
	return strings.Contains(strings.ToLower(string(b)), q)
}

// slugify lowercases the name and collapses every run of non-alphanumeric
// characters to a hyphen, capped at slugMaxLen.
func slugify(name string) string {
	s := slugPattern.ReplaceAllString(strings.ToLower(name), "-")
	if len(s) > slugMaxLen {
		s = s[:slugMaxLen]
	}
	return s
}

// versionOf extracts the version number from an entity id suffix ("-vN").
func versionOf(id string) int {
	m := versionPattern.FindStringSubmatch(id)
	if m == nil {
		return 0
	}
	n, _ := strconv.Atoi(m[1])
	return n
}
