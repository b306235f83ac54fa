// Package temporal keeps a short window of recent events, chains them into
// predictive implications and tracks anticipated events.
package temporal

import (
	"log/slog"
	"slices"
	"sort"

	"github.com/cognicore/narscore/pkg/narscore/narsese"
	"github.com/cognicore/narscore/pkg/narscore/sentence"
	"github.com/cognicore/narscore/pkg/narscore/truth"
)

// Rules are the temporal inference rules chaining relies on. Either may
// return nil when no conclusion can be drawn.
type Rules interface {
	TemporalIntersection(a, b *sentence.Sentence) *sentence.Sentence
	TemporalInduction(a, b *sentence.Sentence) *sentence.Sentence
}

// Sink receives sentences produced by the module.
type Sink interface {
	Put(s *sentence.Sentence)
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(s *sentence.Sentence)

func (f SinkFunc) Put(s *sentence.Sentence) { f(s) }

// Config sizes the module.
type Config struct {
	Capacity           int // events kept in the window
	AnticipationWindow int // cycles before an anticipation is disappointed
}

// Module is the temporal window plus outstanding anticipations.
// It is owned by one reasoner and is not safe for concurrent use.
type Module struct {
	cfg     Config
	rules   Rules
	sink    Sink
	builder *sentence.Builder
	logger  *slog.Logger

	window []*sentence.Sentence

	anticipations []anticipation
	byTerm        map[string][]int
}

type anticipation struct {
	expected  narsese.Term
	key       string
	remaining int
}

// New creates a temporal module. Derived implications and disappointments are
// handed to sink; builder stamps the disappointment judgments.
func New(cfg Config, rules Rules, sink Sink, builder *sentence.Builder, logger *slog.Logger) *Module {
	if cfg.Capacity < 1 {
		cfg.Capacity = 1
	}
	if cfg.AnticipationWindow < 1 {
		cfg.AnticipationWindow = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Module{
		cfg:     cfg,
		rules:   rules,
		sink:    sink,
		builder: builder,
		logger:  logger.With(slog.String("component", "temporal")),
		window:  make([]*sentence.Sentence, 0, cfg.Capacity+1),
		byTerm:  make(map[string][]int),
	}
}

// Len returns the number of events in the window.
func (m *Module) Len() int { return len(m.window) }

// Events returns the window, oldest first.
func (m *Module) Events() []*sentence.Sentence {
	return slices.Clone(m.window)
}

// MostRecent returns the latest event, or nil if the window is empty.
func (m *Module) MostRecent() *sentence.Sentence {
	if len(m.window) == 0 {
		return nil
	}
	return m.window[len(m.window)-1]
}

// Insert adds an event judgment in occurrence order, evicting and returning
// the oldest event when the window overflows. Chaining runs after every
// insert once the window holds three events.
func (m *Module) Insert(event *sentence.Sentence) (evicted *sentence.Sentence) {
	at := event.Stamp.OccurrenceTime
	i := sort.Search(len(m.window), func(i int) bool {
		return m.window[i].Stamp.OccurrenceTime > at
	})
	m.window = slices.Insert(m.window, i, event)

	if len(m.window) > m.cfg.Capacity {
		evicted = m.window[0]
		m.window = slices.Delete(m.window, 0, 1)
	}

	if len(m.window) >= 3 {
		m.chain()
	}
	return evicted
}

// chain derives ((&/,A,B)=/>C) for every ordered triple whose middle event is
// an operation and whose outer events are not.
func (m *Module) chain() {
	unit := m.builder.UnitEvidence()
	n := len(m.window)
	derived := 0
	for i := 0; i < n-2; i++ {
		a := m.window[i]
		if _, ok := narsese.AsStatement(a.Statement); !ok || a.Statement.IsOp() {
			continue
		}
		for j := i + 1; j < n-1; j++ {
			b := m.window[j]
			if _, ok := narsese.AsStatement(b.Statement); !ok || !b.Statement.IsOp() {
				continue
			}
			if narsese.Equal(a.Statement, b.Statement) {
				continue
			}
			for k := j + 1; k < n; k++ {
				c := m.window[k]
				if _, ok := narsese.AsStatement(c.Statement); !ok || c.Statement.IsOp() {
					continue
				}
				if narsese.Equal(a.Statement, c.Statement) || narsese.Equal(b.Statement, c.Statement) {
					continue
				}

				conj := m.rules.TemporalIntersection(a, b)
				if conj == nil {
					continue
				}
				conj.Stamp.OccurrenceTime = a.Stamp.OccurrenceTime
				impl := m.rules.TemporalInduction(conj, c)
				if impl == nil {
					continue
				}
				impl.SetValue(truth.New(1.0, unit))
				m.sink.Put(impl)
				derived++
			}
		}
	}
	if derived > 0 {
		m.logger.Debug("temporal chaining", slog.Int("window", n), slog.Int("derived", derived))
	}
}

// Anticipate expects term to occur within the anticipation window.
func (m *Module) Anticipate(term narsese.Term) {
	key := term.String()
	m.byTerm[key] = append(m.byTerm[key], len(m.anticipations))
	m.anticipations = append(m.anticipations, anticipation{
		expected:  term,
		key:       key,
		remaining: m.cfg.AnticipationWindow,
	})
}

// DoesAnticipate reports whether term has an outstanding anticipation.
func (m *Module) DoesAnticipate(term narsese.Term) bool {
	return len(m.byTerm[term.String()]) > 0
}

// Outstanding returns the number of outstanding anticipations of term.
func (m *Module) Outstanding(term narsese.Term) int {
	return len(m.byTerm[term.String()])
}

// Pending returns the total number of outstanding anticipations.
func (m *Module) Pending() int { return len(m.anticipations) }

// UpdateAnticipations advances every countdown by one cycle. Anticipations
// that run out are dropped and a negative judgment about the expected term
// is sent to the sink.
func (m *Module) UpdateAnticipations() {
	unit := m.builder.UnitEvidence()
	for i := len(m.anticipations) - 1; i >= 0; i-- {
		m.anticipations[i].remaining--
		if m.anticipations[i].remaining > 0 {
			continue
		}
		expected := m.anticipations[i].expected
		m.removeAt(i)
		m.logger.Debug("anticipation failed", slog.String("term", expected.String()))
		// negative evidence: frequency 0 at unit confidence
		m.sink.Put(m.builder.Judgment(expected, truth.New(0.0, unit), sentence.Eternal))
	}
}

// RemoveAnticipations cancels every outstanding anticipation of term
// without disappointment.
func (m *Module) RemoveAnticipations(term narsese.Term) {
	key := term.String()
	for len(m.byTerm[key]) > 0 {
		idx := m.byTerm[key]
		m.removeAt(idx[len(idx)-1])
	}
}

// removeAt swaps the last anticipation into slot i and fixes the index.
func (m *Module) removeAt(i int) {
	gone := m.anticipations[i]
	m.byTerm[gone.key] = dropIndex(m.byTerm[gone.key], i)
	if len(m.byTerm[gone.key]) == 0 {
		delete(m.byTerm, gone.key)
	}

	last := len(m.anticipations) - 1
	if i != last {
		moved := m.anticipations[last]
		m.anticipations[i] = moved
		refs := m.byTerm[moved.key]
		for r, idx := range refs {
			if idx == last {
				refs[r] = i
				break
			}
		}
	}
	m.anticipations[last] = anticipation{}
	m.anticipations = m.anticipations[:last]
}

func dropIndex(idx []int, v int) []int {
	for r, x := range idx {
		if x == v {
			idx[r] = idx[len(idx)-1]
			return idx[:len(idx)-1]
		}
	}
	return idx
}
