package sentence

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/narscore/pkg/narscore/internalerr"
	"github.com/cognicore/narscore/pkg/narscore/narsese"
	"github.com/cognicore/narscore/pkg/narscore/truth"
)

func newBuilder() *Builder {
	return NewBuilder(&Sequence{}, 20, truth.NewCalculator(1).UnitEvidence())
}

func TestParseDefaults(t *testing.T) {
	b := newBuilder()
	s, err := b.Parse("(a-->b).", 0)
	require.NoError(t, err)

	assert.True(t, s.IsJudgment())
	assert.False(t, s.IsEvent())
	require.NotNil(t, s.Value)
	assert.Equal(t, 1.0, s.Value.Frequency)
	assert.InDelta(t, 0.5, s.Value.Confidence, 1e-9)
	assert.InDelta(t, 0.75, s.EternalExpectation, 1e-9)
	assert.True(t, s.IsInput())
	assert.Equal(t, []int64{s.Stamp.ID}, s.Stamp.Base.IDs())
}

func TestParseValueAndTense(t *testing.T) {
	b := newBuilder()
	s, err := b.Parse("(a-->b)! :|: %0.8;0.6%", 42)
	require.NoError(t, err)

	assert.True(t, s.IsGoal())
	assert.True(t, s.IsEvent())
	assert.Equal(t, int64(42), s.Stamp.OccurrenceTime)
	assert.Equal(t, narsese.Present, s.Tense(42))
	assert.Equal(t, narsese.Past, s.Tense(43))
	assert.Equal(t, narsese.Future, s.Tense(41))
	assert.Equal(t, truth.Value{Frequency: 0.8, Confidence: 0.6}, *s.Value)

	future, err := b.Parse("(a-->b). :/:", 5)
	require.NoError(t, err)
	assert.False(t, future.IsEvent())
	assert.Equal(t, narsese.Eternal, future.Tense(5))
}

func TestParseQuestionHasNoValue(t *testing.T) {
	b := newBuilder()
	for _, text := range []string{"(a-->b)?", "(a-->b)? %1;0.9%", "(a-->b)`"} {
		s, err := b.Parse(text, 0)
		require.NoError(t, err, text)
		assert.False(t, s.HasValue(), text)
		assert.Zero(t, s.EternalExpectation, text)
	}
}

func TestParseMalformed(t *testing.T) {
	b := newBuilder()
	for _, text := range []string{
		"",
		"a-->b.",
		"(a-->b",
		")a-->b(.",
		"(a-->b)",
		"(a-->b);",
		"(a-->b). %0.5%",
		"(a-->b). %0.5;0.9",
		"(a-->b). %x;0.9%",
		"(a-->b). %0.5;1.5%",
		"(a-->b). %NaN;0.5%",
		"(a-->b). %0.5;NaN%",
		"(a-->b). %+Inf;0.5%",
		"(a-->). ",
	} {
		_, err := b.Parse(text, 0)
		require.Error(t, err, text)
		assert.True(t, errors.Is(err, internalerr.ErrMalformedSentence), text)
	}
}

func TestRenderRoundTrip(t *testing.T) {
	b := newBuilder()
	for _, text := range []string{
		"(a-->b). %1;0.9%",
		"(robin<->bird)! %0.25;0.5%",
		"((a-->b)=/>(c-->d)). :|: %1;0.5%",
		"((&/,(a-->b),(SELF-->^left))=/>(c-->d)). %0.75;0.5%",
		"({x,y}-->[red]). %0.6;0.3%",
		"(a-->b)?",
		"(a-->b)`",
	} {
		s, err := b.Parse(text, 7)
		require.NoError(t, err, text)
		rendered := s.String()

		again, err := b.Parse(rendered, 7)
		require.NoError(t, err, rendered)
		assert.True(t, narsese.Equal(s.Statement, again.Statement), rendered)
		assert.Equal(t, s.Punctuation, again.Punctuation, rendered)
		assert.Equal(t, s.Stamp.OccurrenceTime, again.Stamp.OccurrenceTime, rendered)
		if s.Value == nil {
			assert.Nil(t, again.Value, rendered)
			continue
		}
		require.NotNil(t, again.Value, rendered)
		assert.InDelta(t, s.Value.Frequency, again.Value.Frequency, 1e-9, rendered)
		assert.InDelta(t, s.Value.Confidence, again.Value.Confidence, 1e-9, rendered)
	}
}

func TestRenderNormalisesOrder(t *testing.T) {
	b := newBuilder()
	s := b.MustParse("((&&,(c-->d),(a-->b))==>(e-->f)). %1;0.9%", 0)
	assert.Equal(t, "((&&,(a-->b),(c-->d))==>(e-->f)). %1;0.9%", s.String())
}

func TestSequenceIsPerBuilder(t *testing.T) {
	b1, b2 := newBuilder(), newBuilder()
	s1 := b1.MustParse("(a-->b).", 0)
	s2 := b2.MustParse("(a-->b).", 0)
	assert.Equal(t, int64(1), s1.Stamp.ID)
	assert.Equal(t, int64(1), s2.Stamp.ID)
	assert.Equal(t, int64(2), b1.MustParse("(c-->d).", 0).Stamp.ID)
}

func TestMarkOccurringOnce(t *testing.T) {
	st := &Stamp{OccurrenceTime: Eternal}
	st.MarkOccurring(3)
	st.MarkOccurring(9)
	assert.Equal(t, int64(3), st.OccurrenceTime)
}

func TestEvidentialBaseFIFO(t *testing.T) {
	base := newEvidentialBase(3, 1)
	other := newEvidentialBase(10, 2)
	other.add(3)
	other.add(1)
	other.add(4)

	base.Merge(other)
	assert.Equal(t, []int64{2, 3, 4}, base.IDs())
	assert.False(t, base.Contains(1))
	assert.Equal(t, 3, base.Len())

	base.Merge(base)
	assert.Equal(t, []int64{2, 3, 4}, base.IDs(), "merging with itself adds nothing")
}

func TestDeriveMergesPremises(t *testing.T) {
	b := newBuilder()
	j1 := b.MustParse("(a-->b).", 0)
	j2 := b.MustParse("(b-->c).", 0)
	v := truth.New(1, 0.25)

	d := b.Derive("deduction", narsese.Judgment, narsese.MustParseTerm("(a-->c)"), &v, Eternal, j1, j2)
	assert.Equal(t, "deduction", d.Stamp.DerivedBy)
	assert.False(t, d.IsInput())
	assert.True(t, d.Stamp.Base.Contains(j1.Stamp.ID))
	assert.True(t, d.Stamp.Base.Contains(j2.Stamp.ID))
	assert.True(t, d.Stamp.Base.Contains(d.Stamp.ID))

	q := b.Derive("question", narsese.Question, narsese.MustParseTerm("(a-->c)"), &v, Eternal, j1)
	assert.Nil(t, q.Value)
}

func TestMayInteract(t *testing.T) {
	b := newBuilder()
	a := b.MustParse("(a-->b).", 0)
	c := b.MustParse("(b-->c).", 0)
	d := b.MustParse("(c-->d).", 0)
	v := truth.New(1, 0.25)

	assert.True(t, MayInteract(a, c))
	assert.False(t, MayInteract(a, a), "same stamp")
	assert.False(t, MayInteract(a, nil))

	ac := b.Derive("deduction", narsese.Judgment, narsese.MustParseTerm("(a-->c)"), &v, Eternal, a, c)
	assert.False(t, MayInteract(ac, a), "premise inside derived base")
	assert.False(t, MayInteract(c, ac))

	ad := b.Derive("deduction", narsese.Judgment, narsese.MustParseTerm("(a-->d)"), &v, Eternal, a, d)
	assert.False(t, MayInteract(ac, ad), "common ancestor")

	cd := b.Derive("deduction", narsese.Judgment, narsese.MustParseTerm("(b-->d)"), &v, Eternal, c, d)
	assert.True(t, MayInteract(a, cd))

	ev1 := b.MustParse("(a-->b). :|:", 4)
	ev2 := b.Derive("intersection", narsese.Judgment, narsese.MustParseTerm("(x-->y)"), &v, 4, ev1)
	assert.True(t, MayInteract(ev1, ev2), "events are exempt from evidence checks")
}

func TestEvaluator(t *testing.T) {
	calc := truth.NewCalculator(1)
	ev := NewEvaluator(calc, EvaluatorOptions{
		DecayEvent:        0.8,
		DecayDesire:       0.95,
		PositiveThreshold: 0.51,
		NegativeThreshold: 0.5,
	})
	b := newBuilder()

	strong := b.MustParse("(SELF-->^move)! %1;0.9%", 0)
	assert.InDelta(t, 0.95, ev.Desirability(strong, 0), 1e-9)
	assert.InDelta(t, 0.9, ev.MotorActivation(strong, 0), 1e-9)
	assert.True(t, ev.IsPositive(strong, 0))

	weak := b.MustParse("(SELF-->^move)! %0.1;0.9%", 0)
	assert.Zero(t, ev.MotorActivation(weak, 0))
	assert.True(t, ev.IsNegative(weak, 0))

	event := b.MustParse("(SELF-->^move)! :|: %1;0.9%", 0)
	now := ev.Desirability(event, 0)
	later := ev.Desirability(event, 10)
	assert.Less(t, later, now)

	v, ok := ev.Value(event, 10)
	require.True(t, ok)
	assert.Greater(t, v.Confidence, calc.UnitEvidence())

	_, ok = ev.Value(b.MustParse("(a-->b)?", 0), 0)
	assert.False(t, ok)
	assert.Equal(t, 0.5, ev.Expectation(b.MustParse("(a-->b)?", 0), 0))
}
