// Package store defines the derivation journal: a record of every sentence a
// reasoner processed, with the rule and evidence that produced it.
package store

import (
	"context"

	"github.com/cognicore/narscore/pkg/narscore/sentence"
)

// Store persists journal records. Implementations are safe for concurrent use.
type Store interface {
	Close() error

	// Append adds a record. A record with the run and stamp of an existing
	// one is ignored.
	Append(ctx context.Context, r Record) error

	// ByRun lists the records of a run in append order. limit <= 0 means all.
	ByRun(ctx context.Context, runID string, limit int) ([]Record, error)

	// ByRule lists the records of a run derived by rule, in append order.
	ByRule(ctx context.Context, runID, rule string) ([]Record, error)

	// Get returns one record; internalerr.ErrNotFound if absent.
	Get(ctx context.Context, runID string, stampID int64) (Record, error)
}

// Record is one processed sentence.
type Record struct {
	RunID       string
	Cycle       int64
	StampID     int64
	Sentence    string
	Punctuation string
	Frequency   float64
	Confidence  float64
	Occurrence  int64
	DerivedBy   string // empty for input
	Evidence    []int64
}

// NewRecord captures s as processed at cycle. Questions and quests carry a
// zero value.
func NewRecord(runID string, cycle int64, s *sentence.Sentence) Record {
	r := Record{
		RunID:       runID,
		Cycle:       cycle,
		StampID:     s.Stamp.ID,
		Sentence:    s.String(),
		Punctuation: s.Punctuation.String(),
		Occurrence:  s.Stamp.OccurrenceTime,
		DerivedBy:   s.Stamp.DerivedBy,
	}
	if s.HasValue() {
		r.Frequency = s.Value.Frequency
		r.Confidence = s.Value.Confidence
	}
	if s.Stamp.Base != nil {
		r.Evidence = s.Stamp.Base.IDs()
	}
	return r
}
