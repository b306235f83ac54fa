package memstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/cognicore/narscore/pkg/narscore/internalerr"
	"github.com/cognicore/narscore/pkg/narscore/store"
)

type recordKey struct {
	run   string
	stamp int64
}

// Store is an in-memory implementation of store.Store for tests and
// short-lived shells.
type Store struct {
	mu      sync.RWMutex
	records []store.Record
	byKey   map[recordKey]int
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{byKey: make(map[recordKey]int)}
}

var _ store.Store = (*Store)(nil)

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// Append implements store.Store.
func (s *Store) Append(ctx context.Context, r store.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := recordKey{r.RunID, r.StampID}
	if _, ok := s.byKey[k]; ok {
		return nil
	}
	s.byKey[k] = len(s.records)
	s.records = append(s.records, copyRecord(r))
	return nil
}

// ByRun implements store.Store.
func (s *Store) ByRun(ctx context.Context, runID string, limit int) ([]store.Record, error) {
	return s.filter(runID, limit, func(store.Record) bool { return true }), nil
}

// ByRule implements store.Store.
func (s *Store) ByRule(ctx context.Context, runID, rule string) ([]store.Record, error) {
	return s.filter(runID, 0, func(r store.Record) bool { return r.DerivedBy == rule }), nil
}

// Get implements store.Store.
func (s *Store) Get(ctx context.Context, runID string, stampID int64) (store.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.byKey[recordKey{runID, stampID}]
	if !ok {
		return store.Record{}, fmt.Errorf("%w: record %s/%d", internalerr.ErrNotFound, runID, stampID)
	}
	return copyRecord(s.records[i]), nil
}

func (s *Store) filter(runID string, limit int, match func(store.Record) bool) []store.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []store.Record
	for _, r := range s.records {
		if r.RunID != runID || !match(r) {
			continue
		}
		out = append(out, copyRecord(r))
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

func copyRecord(r store.Record) store.Record {
	r.Evidence = append([]int64(nil), r.Evidence...)
	return r
}
