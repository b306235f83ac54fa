package temporal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/narscore/pkg/narscore/narsese"
	"github.com/cognicore/narscore/pkg/narscore/sentence"
	"github.com/cognicore/narscore/pkg/narscore/truth"
)

// stubRules builds &/ and =/> without truth functions.
type stubRules struct {
	b *sentence.Builder
}

func (r stubRules) TemporalIntersection(a, b *sentence.Sentence) *sentence.Sentence {
	v := truth.New(1, 0.4)
	stmt := narsese.NewCompound(narsese.SequentialConjunction, a.Statement, b.Statement)
	return r.b.Derive("temporal intersection", narsese.Judgment, stmt, &v, b.Stamp.OccurrenceTime, a, b)
}

func (r stubRules) TemporalInduction(a, b *sentence.Sentence) *sentence.Sentence {
	v := truth.New(0.7, 0.3)
	stmt := narsese.NewStatement(a.Statement, narsese.PredictiveImplication, b.Statement)
	return r.b.Derive("temporal induction", narsese.Judgment, stmt, &v, sentence.Eternal, a, b)
}

type collector struct {
	got []*sentence.Sentence
}

func (c *collector) Put(s *sentence.Sentence) { c.got = append(c.got, s) }

func setup(capacity, window int) (*Module, *sentence.Builder, *collector) {
	b := sentence.NewBuilder(&sentence.Sequence{}, 20, truth.NewCalculator(1).UnitEvidence())
	sink := &collector{}
	m := New(Config{Capacity: capacity, AnticipationWindow: window}, stubRules{b}, sink, b, nil)
	return m, b, sink
}

func event(b *sentence.Builder, text string, at int64) *sentence.Sentence {
	return b.MustParse(text+". :|:", at)
}

func TestWindowBound(t *testing.T) {
	m, b, _ := setup(4, 3)
	var evicted []*sentence.Sentence
	for i := int64(0); i < 10; i++ {
		if e := m.Insert(event(b, "(a-->b)", i)); e != nil {
			evicted = append(evicted, e)
		}
	}
	require.Equal(t, 4, m.Len())
	require.Len(t, evicted, 6)

	oldestKept := m.Events()[0].Stamp.OccurrenceTime
	for _, e := range evicted {
		assert.Less(t, e.Stamp.OccurrenceTime, oldestKept)
	}
	assert.Equal(t, int64(9), m.MostRecent().Stamp.OccurrenceTime)
}

func TestInsertKeepsOrder(t *testing.T) {
	m, b, _ := setup(10, 3)
	for _, at := range []int64{5, 1, 3, 9, 2} {
		m.Insert(event(b, "(a-->b)", at))
	}
	var times []int64
	for _, e := range m.Events() {
		times = append(times, e.Stamp.OccurrenceTime)
	}
	assert.Equal(t, []int64{1, 2, 3, 5, 9}, times)
}

func TestChainingOperationInTheMiddle(t *testing.T) {
	m, b, sink := setup(10, 3)
	m.Insert(event(b, "(light-->on)", 1))
	m.Insert(event(b, "(SELF-->^press)", 2))
	require.Empty(t, sink.got)
	m.Insert(event(b, "(door-->open)", 3))

	require.Len(t, sink.got, 1)
	impl := sink.got[0]
	assert.Equal(t, "((&/,(light-->on),(SELF-->^press))=/>(door-->open))", impl.Statement.String())
	assert.Equal(t, 1.0, impl.Value.Frequency)
	assert.InDelta(t, 0.5, impl.Value.Confidence, 1e-9)
	assert.InDelta(t, 0.75, impl.EternalExpectation, 1e-9)
}

func TestChainingSkipsInvalidTriples(t *testing.T) {
	m, b, sink := setup(10, 3)
	// no operation in the middle
	m.Insert(event(b, "(a-->x)", 1))
	m.Insert(event(b, "(b-->x)", 2))
	m.Insert(event(b, "(c-->x)", 3))
	assert.Empty(t, sink.got)

	m2, b2, sink2 := setup(10, 3)
	// repeated statement
	m2.Insert(event(b2, "(a-->x)", 1))
	m2.Insert(event(b2, "(SELF-->^go)", 2))
	m2.Insert(event(b2, "(a-->x)", 3))
	assert.Empty(t, sink2.got)

	m3, b3, sink3 := setup(10, 3)
	// operation at the end
	m3.Insert(event(b3, "(a-->x)", 1))
	m3.Insert(event(b3, "(SELF-->^go)", 2))
	m3.Insert(event(b3, "(SELF-->^stop)", 3))
	assert.Empty(t, sink3.got)
}

func TestAnticipationLifecycle(t *testing.T) {
	const window = 3
	m, _, sink := setup(5, window)
	term := narsese.MustParseTerm("(door-->open)")

	m.Anticipate(term)
	assert.True(t, m.DoesAnticipate(term))

	for i := 0; i < window-1; i++ {
		m.UpdateAnticipations()
		assert.Empty(t, sink.got)
	}
	m.UpdateAnticipations()

	require.Len(t, sink.got, 1)
	d := sink.got[0]
	assert.True(t, narsese.Equal(term, d.Statement))
	assert.True(t, d.IsJudgment())
	assert.Equal(t, 0.0, d.Value.Frequency)
	assert.InDelta(t, 0.5, d.Value.Confidence, 1e-9)
	assert.False(t, m.DoesAnticipate(term))
	assert.Zero(t, m.Pending())

	m.UpdateAnticipations()
	assert.Len(t, sink.got, 1)
}

func TestAnticipationCountsAndRemoval(t *testing.T) {
	m, _, sink := setup(5, 2)
	open := narsese.MustParseTerm("(door-->open)")
	lit := narsese.MustParseTerm("(light-->on)")

	m.Anticipate(open)
	m.Anticipate(lit)
	m.Anticipate(open)
	assert.Equal(t, 2, m.Outstanding(open))
	assert.Equal(t, 1, m.Outstanding(lit))

	m.RemoveAnticipations(open)
	assert.False(t, m.DoesAnticipate(open))
	assert.True(t, m.DoesAnticipate(lit))
	assert.Equal(t, 1, m.Pending())

	m.UpdateAnticipations()
	m.UpdateAnticipations()
	require.Len(t, sink.got, 1)
	assert.True(t, narsese.Equal(lit, sink.got[0].Statement))
}

func TestAnticipationIndexSurvivesSwaps(t *testing.T) {
	m, _, sink := setup(5, 100)
	terms := []narsese.Term{
		narsese.MustParseTerm("(a-->x)"),
		narsese.MustParseTerm("(b-->x)"),
		narsese.MustParseTerm("(c-->x)"),
	}
	for i := 0; i < 9; i++ {
		m.Anticipate(terms[i%3])
	}
	m.RemoveAnticipations(terms[0])
	m.RemoveAnticipations(terms[2])
	assert.Equal(t, 3, m.Pending())
	assert.Equal(t, 3, m.Outstanding(terms[1]))

	m.RemoveAnticipations(terms[1])
	assert.Zero(t, m.Pending())
	assert.Empty(t, sink.got)
}
