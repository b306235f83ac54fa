// Package concept stores known beliefs and goals per statement and finds
// the concepts related to a term through shared components.
package concept

import (
	"fmt"
	"sort"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/cognicore/narscore/pkg/narscore/internalerr"
	"github.com/cognicore/narscore/pkg/narscore/narsese"
	"github.com/cognicore/narscore/pkg/narscore/sentence"
)

// Concept holds the sentences known about one term, each list ordered by
// confidence, highest first.
type Concept struct {
	Term    narsese.Term
	Beliefs []*sentence.Sentence
	Goals   []*sentence.Sentence
}

// BestBelief returns the most confident belief, or nil.
func (c *Concept) BestBelief() *sentence.Sentence {
	if len(c.Beliefs) == 0 {
		return nil
	}
	return c.Beliefs[0]
}

// Table is a bounded store of concepts. The least recently used concept is
// evicted when the table is full; within a concept the least confident
// sentence goes first.
type Table struct {
	perConcept int
	cache      *lru.Cache[string, *Concept]
	index      map[string]map[string]struct{} // component -> concept keys
}

// New creates a table of at most capacity concepts holding at most
// perConcept beliefs and goals each.
func New(capacity, perConcept int) (*Table, error) {
	if capacity < 1 || perConcept < 1 {
		return nil, fmt.Errorf("%w: concept table %dx%d", internalerr.ErrInvalidConfig, capacity, perConcept)
	}
	t := &Table{
		perConcept: perConcept,
		index:      make(map[string]map[string]struct{}),
	}
	cache, err := lru.NewWithEvict[string, *Concept](capacity, t.unindex)
	if err != nil {
		return nil, err
	}
	t.cache = cache
	return t, nil
}

// Len returns the number of concepts.
func (t *Table) Len() int { return t.cache.Len() }

// Remember stores a judgment as a belief or a goal as a goal. Questions and
// quests are not stored. A sentence built on the same evidence as a stored
// one about the same statement replaces it only if more confident.
// It reports whether s was stored.
func (t *Table) Remember(s *sentence.Sentence) bool {
	if !s.IsJudgment() && !s.IsGoal() {
		return false
	}
	key := s.Statement.String()
	c, ok := t.cache.Get(key)
	if !ok {
		c = &Concept{Term: s.Statement}
		t.cache.Add(key, c)
		t.indexConcept(key, s.Statement)
	}

	if s.IsJudgment() {
		var stored bool
		c.Beliefs, stored = t.insert(c.Beliefs, s)
		return stored
	}
	var stored bool
	c.Goals, stored = t.insert(c.Goals, s)
	return stored
}

func (t *Table) insert(list []*sentence.Sentence, s *sentence.Sentence) ([]*sentence.Sentence, bool) {
	for i, old := range list {
		if old.Stamp.ID == s.Stamp.ID {
			return list, false
		}
		if old.Stamp.OccurrenceTime == s.Stamp.OccurrenceTime && sameEvidence(old, s) {
			if s.Confidence() <= old.Confidence() {
				return list, false
			}
			list = append(list[:i], list[i+1:]...)
			break
		}
	}

	at := sort.Search(len(list), func(i int) bool {
		return list[i].Confidence() < s.Confidence()
	})
	list = append(list, nil)
	copy(list[at+1:], list[at:])
	list[at] = s

	if len(list) > t.perConcept {
		list[len(list)-1] = nil
		list = list[:t.perConcept]
	}
	return list, at < len(list)
}

func sameEvidence(a, b *sentence.Sentence) bool {
	return a.Stamp.Base.Overlaps(b.Stamp.Base)
}

// Get returns the concept for term and marks it as recently used.
func (t *Table) Get(term narsese.Term) (*Concept, bool) {
	return t.cache.Get(term.String())
}

// Beliefs returns the beliefs about term.
func (t *Table) Beliefs(term narsese.Term) []*sentence.Sentence {
	c, ok := t.cache.Peek(term.String())
	if !ok {
		return nil
	}
	return c.Beliefs
}

// Goals returns the goals about term.
func (t *Table) Goals(term narsese.Term) []*sentence.Sentence {
	c, ok := t.cache.Peek(term.String())
	if !ok {
		return nil
	}
	return c.Goals
}

// Related returns the concept of term itself and every concept that shares
// a component with it, ordered by key. Recency is not affected.
func (t *Table) Related(term narsese.Term) []*Concept {
	keys := map[string]struct{}{term.String(): {}}
	for _, comp := range append(components(term), term) {
		for k := range t.index[comp.String()] {
			keys[k] = struct{}{}
		}
	}
	sorted := make([]string, 0, len(keys))
	for k := range keys {
		sorted = append(sorted, k)
	}
	sort.Strings(sorted)

	out := make([]*Concept, 0, len(sorted))
	for _, k := range sorted {
		if c, ok := t.cache.Peek(k); ok {
			out = append(out, c)
		}
	}
	return out
}

func (t *Table) indexConcept(key string, term narsese.Term) {
	for _, comp := range components(term) {
		ck := comp.String()
		if t.index[ck] == nil {
			t.index[ck] = make(map[string]struct{})
		}
		t.index[ck][key] = struct{}{}
	}
}

// unindex runs when the cache evicts a concept.
func (t *Table) unindex(key string, c *Concept) {
	for _, comp := range components(c.Term) {
		ck := comp.String()
		delete(t.index[ck], key)
		if len(t.index[ck]) == 0 {
			delete(t.index, ck)
		}
	}
}

// components lists every proper subterm of t, outermost first.
func components(t narsese.Term) []narsese.Term {
	var out []narsese.Term
	var walk func(narsese.Term)
	walk = func(x narsese.Term) {
		switch v := x.(type) {
		case *narsese.Statement:
			out = append(out, v.Subject(), v.Predicate())
			walk(v.Subject())
			walk(v.Predicate())
		case *narsese.Compound:
			subs := v.Subterms()
			out = append(out, subs...)
			for _, s := range subs {
				walk(s)
			}
		}
	}
	walk(t)
	return out
}
