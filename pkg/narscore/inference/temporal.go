package inference

import (
	"github.com/cognicore/narscore/pkg/narscore/narsese"
	"github.com/cognicore/narscore/pkg/narscore/sentence"
)

// temporalOrder arranges two events chronologically. concurrent is set when
// they occur at the same cycle.
func temporalOrder(a, b *sentence.Sentence) (first, second *sentence.Sentence, concurrent bool) {
	ta, tb := a.Stamp.OccurrenceTime, b.Stamp.OccurrenceTime
	switch {
	case ta < tb:
		return a, b, false
	case ta > tb:
		return b, a, false
	}
	return a, b, true
}

func eventJudgments(a, b *sentence.Sentence) bool {
	return a.IsJudgment() && b.IsJudgment() && a.IsEvent() && b.IsEvent() &&
		!narsese.Equal(a.Statement, b.Statement)
}

// TemporalIntersection: {A, B} |- (&/,A,B) when A precedes B, (&|,A,B)
// when they are concurrent. The conjunction occurs with the later event.
func (n *NAL) TemporalIntersection(a, b *sentence.Sentence) *sentence.Sentence {
	if !eventJudgments(a, b) {
		return nil
	}
	first, second, concurrent := temporalOrder(a, b)
	conn := narsese.SequentialConjunction
	if concurrent {
		conn = narsese.ParallelConjunction
	}
	stmt := narsese.NewCompound(conn, first.Statement, second.Statement)
	return n.conclude(RuleTemporalIntersection, stmt, n.calc.Intersection, second.Stamp.OccurrenceTime, first, second)
}

// TemporalInduction: {A, B} |- A=/>B when A precedes B, A=|>B when they are
// concurrent. The implication is eternal; its frequency is that of the
// consequent.
func (n *NAL) TemporalInduction(a, b *sentence.Sentence) *sentence.Sentence {
	if !eventJudgments(a, b) {
		return nil
	}
	first, second, concurrent := temporalOrder(a, b)
	cop := narsese.PredictiveImplication
	if concurrent {
		cop = narsese.ConcurrentImplication
	}
	stmt := statement(first.Statement, cop, second.Statement)
	return n.conclude(RuleTemporalInduction, stmt, n.calc.Induction, sentence.Eternal, second, first)
}
