package sentence

import (
	"sync/atomic"

	"github.com/cognicore/narscore/pkg/narscore/narsese"
)

// Eternal marks a stamp without an occurrence time.
const Eternal int64 = -1

// Sequence hands out stamp ids. Each reasoner owns one; ids are unique and
// increasing within it and carry no meaning beyond identity.
type Sequence struct {
	last atomic.Int64
}

// Next returns the next id, starting at 1.
func (q *Sequence) Next() int64 {
	return q.last.Add(1)
}

// Stamp is the provenance metadata of a sentence.
type Stamp struct {
	ID             int64
	OccurrenceTime int64
	Base           *EvidentialBase
	DerivedBy      string // rule name; empty for input
	FromOnePremise bool
}

// IsEternal reports whether the stamp has no occurrence time.
func (s *Stamp) IsEternal() bool {
	return s.OccurrenceTime == Eternal
}

// MarkOccurring sets the occurrence time of an eternal stamp. It is a no-op
// once an occurrence time is set.
func (s *Stamp) MarkOccurring(cycle int64) {
	if s.OccurrenceTime == Eternal {
		s.OccurrenceTime = cycle
	}
}

// Tense compares the occurrence time with cycle.
func (s *Stamp) Tense(cycle int64) narsese.Tense {
	switch {
	case s.IsEternal():
		return narsese.Eternal
	case s.OccurrenceTime < cycle:
		return narsese.Past
	case s.OccurrenceTime == cycle:
		return narsese.Present
	default:
		return narsese.Future
	}
}

// EvidentialBase is the bounded, insertion-ordered set of stamp ids whose
// evidence went into a sentence. When full, the oldest id is evicted.
type EvidentialBase struct {
	capacity int
	ids      map[int64]struct{}
	order    []int64
}

func newEvidentialBase(capacity int, self int64) *EvidentialBase {
	if capacity < 1 {
		capacity = 1
	}
	b := &EvidentialBase{
		capacity: capacity,
		ids:      make(map[int64]struct{}, capacity),
		order:    make([]int64, 0, capacity),
	}
	b.add(self)
	return b
}

// Len returns the number of ids in the base.
func (b *EvidentialBase) Len() int { return len(b.order) }

// IDs returns the ids oldest first.
func (b *EvidentialBase) IDs() []int64 {
	out := make([]int64, len(b.order))
	copy(out, b.order)
	return out
}

// Contains reports whether the sentence with stamp id is in the base.
func (b *EvidentialBase) Contains(id int64) bool {
	_, ok := b.ids[id]
	return ok
}

// Merge adds every id of other, oldest first.
func (b *EvidentialBase) Merge(other *EvidentialBase) {
	if other == nil {
		return
	}
	for _, id := range other.order {
		b.add(id)
	}
}

func (b *EvidentialBase) add(id int64) {
	if _, dup := b.ids[id]; dup {
		return
	}
	b.ids[id] = struct{}{}
	b.order = append(b.order, id)
	if len(b.order) > b.capacity {
		oldest := b.order[0]
		b.order = b.order[1:]
		delete(b.ids, oldest)
	}
}

// Overlaps reports whether the two bases share an id. It iterates the
// smaller base.
func (b *EvidentialBase) Overlaps(other *EvidentialBase) bool {
	small, large := b, other
	if len(large.ids) < len(small.ids) {
		small, large = large, small
	}
	for id := range small.ids {
		if _, ok := large.ids[id]; ok {
			return true
		}
	}
	return false
}

// MayInteract reports whether two sentences may serve as co-premises.
//
// They may not when either is nil, when they are the same sentence, when
// one is part of the other's evidence, or when their evidence overlaps.
// Events are exempt from the evidence checks.
func MayInteract(j1, j2 *Sentence) bool {
	if j1 == nil || j2 == nil {
		return false
	}
	if j1.Stamp.ID == j2.Stamp.ID {
		return false
	}
	if j1.IsEvent() || j2.IsEvent() {
		return true
	}
	if j2.Stamp.Base.Contains(j1.Stamp.ID) || j1.Stamp.Base.Contains(j2.Stamp.ID) {
		return false
	}
	return !j1.Stamp.Base.Overlaps(j2.Stamp.Base)
}
