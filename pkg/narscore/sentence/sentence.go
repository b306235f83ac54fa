package sentence

import (
	"strconv"
	"strings"

	"github.com/cognicore/narscore/pkg/narscore/narsese"
	"github.com/cognicore/narscore/pkg/narscore/truth"
)

// Sentence is a Judgment, Question, Goal or Quest about a statement term.
//
// Value is nil for questions and quests. EternalExpectation is computed once
// at construction for sentences that carry a value.
type Sentence struct {
	Statement          narsese.Term
	Punctuation        narsese.Punctuation
	Value              *truth.Value
	Stamp              *Stamp
	EternalExpectation float64
}

func (s *Sentence) IsJudgment() bool { return s.Punctuation == narsese.Judgment }
func (s *Sentence) IsQuestion() bool { return s.Punctuation == narsese.Question }
func (s *Sentence) IsGoal() bool     { return s.Punctuation == narsese.Goal }
func (s *Sentence) IsQuest() bool    { return s.Punctuation == narsese.Quest }

// HasValue reports whether the sentence carries an evidential value.
func (s *Sentence) HasValue() bool { return s.Value != nil }

// IsEvent reports whether the sentence has an occurrence time.
func (s *Sentence) IsEvent() bool { return !s.Stamp.IsEternal() }

// Tense of the sentence relative to cycle.
func (s *Sentence) Tense(cycle int64) narsese.Tense { return s.Stamp.Tense(cycle) }

// IsInput reports whether the sentence came from outside rather than a rule.
func (s *Sentence) IsInput() bool { return s.Stamp.DerivedBy == "" }

// Confidence returns the value's confidence, or 0 without a value.
func (s *Sentence) Confidence() float64 {
	if s.Value == nil {
		return 0
	}
	return s.Value.Confidence
}

// Frequency returns the value's frequency, or 0 without a value.
func (s *Sentence) Frequency() float64 {
	if s.Value == nil {
		return 0
	}
	return s.Value.Frequency
}

// SetValue replaces the value and refreshes the cached expectation. It is
// a no-op on questions and quests.
func (s *Sentence) SetValue(v truth.Value) {
	if s.IsQuestion() || s.IsQuest() {
		return
	}
	s.Value = &v
	s.EternalExpectation = truth.Expectation(v.Frequency, v.Confidence)
}

// Key identifies the sentence by its stamp.
func (s *Sentence) Key() string {
	return strconv.FormatInt(s.Stamp.ID, 10)
}

// String renders the sentence in Narsese:
//
//	<statement><punctuation>[ :|:][ %f;c%]
//
// Events are rendered in the present tense relative to their own occurrence
// time, so parsing the result at that cycle restores them.
func (s *Sentence) String() string {
	var b strings.Builder
	b.WriteString(s.Statement.String())
	b.WriteString(s.Punctuation.String())
	if s.IsEvent() {
		b.WriteString(" ")
		b.WriteString(narsese.Present.String())
	}
	if s.Value != nil {
		b.WriteString(" ")
		b.WriteString(s.Value.String())
	}
	return b.String()
}

// Builder creates sentences with stamps drawn from one Sequence.
type Builder struct {
	seq          *Sequence
	maxBase      int
	unitEvidence float64
}

// NewBuilder creates a builder. maxBase bounds every evidential base;
// unitEvidence is the default confidence of parsed sentences.
func NewBuilder(seq *Sequence, maxBase int, unitEvidence float64) *Builder {
	if seq == nil {
		seq = &Sequence{}
	}
	return &Builder{seq: seq, maxBase: maxBase, unitEvidence: unitEvidence}
}

// UnitEvidence returns the default confidence.
func (b *Builder) UnitEvidence() float64 { return b.unitEvidence }

func (b *Builder) build(stmt narsese.Term, punct narsese.Punctuation, value *truth.Value, occurrence int64) *Sentence {
	id := b.seq.Next()
	s := &Sentence{
		Statement:   stmt,
		Punctuation: punct,
		Value:       value,
		Stamp: &Stamp{
			ID:             id,
			OccurrenceTime: occurrence,
			Base:           newEvidentialBase(b.maxBase, id),
		},
	}
	if value != nil {
		s.EternalExpectation = truth.Expectation(value.Frequency, value.Confidence)
	}
	return s
}

// Judgment creates a judgment. Pass Eternal for no occurrence time.
func (b *Builder) Judgment(stmt narsese.Term, value truth.Value, occurrence int64) *Sentence {
	return b.build(stmt, narsese.Judgment, &value, occurrence)
}

// Goal creates a goal. Pass Eternal for no occurrence time.
func (b *Builder) Goal(stmt narsese.Term, value truth.Value, occurrence int64) *Sentence {
	return b.build(stmt, narsese.Goal, &value, occurrence)
}

// Question creates an eternal question.
func (b *Builder) Question(stmt narsese.Term) *Sentence {
	return b.build(stmt, narsese.Question, nil, Eternal)
}

// Quest creates an eternal quest.
func (b *Builder) Quest(stmt narsese.Term) *Sentence {
	return b.build(stmt, narsese.Quest, nil, Eternal)
}

// Derive creates a sentence produced by rule from premises. The premises'
// evidential bases are merged into the new base in order.
func (b *Builder) Derive(rule string, punct narsese.Punctuation, stmt narsese.Term, value *truth.Value, occurrence int64, premises ...*Sentence) *Sentence {
	if punct == narsese.Question || punct == narsese.Quest {
		value = nil
	}
	s := b.build(stmt, punct, value, occurrence)
	s.Stamp.DerivedBy = rule
	for _, p := range premises {
		if p != nil {
			s.Stamp.Base.Merge(p.Stamp.Base)
		}
	}
	return s
}
