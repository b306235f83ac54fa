package inference

import (
	"fmt"
	"log/slog"

	"github.com/cognicore/narscore/pkg/narscore/narsese"
	"github.com/cognicore/narscore/pkg/narscore/sentence"
	"github.com/cognicore/narscore/pkg/narscore/truth"
)

// NAL is the rule-based Engine. Two-premise inference walks an ordered list
// of guarded handlers and stops at the first whose guard holds.
type NAL struct {
	calc    *truth.Calculator
	builder *sentence.Builder
	logger  *slog.Logger

	twoPremise []handler
	goal       []handler
}

// New creates an engine deriving through builder with truth functions from calc.
func New(calc *truth.Calculator, builder *sentence.Builder, logger *slog.Logger) *NAL {
	if logger == nil {
		logger = slog.Default()
	}
	n := &NAL{
		calc:    calc,
		builder: builder,
		logger:  logger.With(slog.String("component", "inference")),
	}
	n.twoPremise = n.twoPremiseHandlers()
	n.goal = n.goalHandlers()
	return n
}

var _ Engine = (*NAL)(nil)

// InferTwoPremise implements Engine. A panic inside a rule yields no results.
func (n *NAL) InferTwoPremise(j1, j2 *sentence.Sentence) (out []*sentence.Sentence) {
	if !sentence.MayInteract(j1, j2) {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			n.logger.Debug("inference failed",
				slog.Int64("j1", j1.Stamp.ID),
				slog.Int64("j2", j2.Stamp.ID),
				slog.String("panic", fmt.Sprint(r)))
			out = nil
		}
	}()

	switch {
	case j1.IsGoal() && j2.IsJudgment():
		return n.InferGoalJudgment(j1, j2)
	case j2.IsGoal() && j1.IsJudgment():
		return n.InferGoalJudgment(j2, j1)
	}
	return n.dispatch(n.twoPremise, newPair(j1, j2))
}

// InferGoalJudgment implements Engine.
func (n *NAL) InferGoalJudgment(goal, judgment *sentence.Sentence) []*sentence.Sentence {
	if goal.Confidence() == 0 || judgment.Confidence() == 0 {
		return nil
	}
	return n.dispatch(n.goal, newPair(goal, judgment))
}

// InferTemporalTwoPremise implements Engine.
func (n *NAL) InferTemporalTwoPremise(a, b *sentence.Sentence) []*sentence.Sentence {
	return keep(nil,
		n.TemporalIntersection(a, b),
		n.TemporalInduction(a, b),
	)
}

// InferOnePremise implements Engine.
func (n *NAL) InferOnePremise(j *sentence.Sentence) []*sentence.Sentence {
	if j.Stamp.FromOnePremise {
		return nil
	}
	stmt, ok := narsese.AsStatement(j.Statement)
	if !ok || stmt.IsFirstOrder() {
		return nil
	}
	if stmt.Subject().Connector() == narsese.Negation || stmt.Predicate().Connector() == narsese.Negation {
		return nil
	}
	if !j.IsJudgment() {
		return nil
	}
	var out []*sentence.Sentence
	if stmt.Copula().IsImplication() && stmt.Subject().Connector().IsConjunction() {
		out = keep(out, n.Contraposition(j))
	}
	return out
}

func (n *NAL) dispatch(handlers []handler, p *pair) []*sentence.Sentence {
	for _, h := range handlers {
		if !h.applies(p) {
			continue
		}
		out := h.fire(p)
		if len(out) > 0 {
			n.logger.Debug("derived",
				slog.String("handler", h.name),
				slog.Int("results", len(out)))
		}
		return out
	}
	return nil
}

// keep appends the useful derivations: nil results and non-question results
// with zero confidence are dropped. Order is preserved.
func keep(out []*sentence.Sentence, derived ...*sentence.Sentence) []*sentence.Sentence {
	for _, d := range derived {
		if d == nil {
			continue
		}
		if !d.IsQuestion() && !d.IsQuest() && d.Confidence() == 0 {
			continue
		}
		out = append(out, d)
	}
	return out
}

// binaryTF is a two-operand truth function.
type binaryTF func(v1, v2 truth.Value) truth.Value

// conclude derives stmt from two premises. A question premise makes the
// conclusion a question; otherwise it is a judgment valued by tf.
func (n *NAL) conclude(rule string, stmt narsese.Term, tf binaryTF, occurrence int64, j1, j2 *sentence.Sentence) *sentence.Sentence {
	if stmt == nil {
		return nil
	}
	if j1.IsQuestion() || j2.IsQuestion() {
		return n.builder.Derive(rule, narsese.Question, stmt, nil, sentence.Eternal, j1, j2)
	}
	if j1.Value == nil || j2.Value == nil {
		return nil
	}
	v := tf(*j1.Value, *j2.Value)
	return n.builder.Derive(rule, narsese.Judgment, stmt, &v, occurrence, j1, j2)
}

// subgoal derives a goal about stmt from a goal and a belief.
func (n *NAL) subgoal(rule string, stmt narsese.Term, tf binaryTF, goal, judgment *sentence.Sentence) *sentence.Sentence {
	if stmt == nil || goal.Value == nil || judgment.Value == nil {
		return nil
	}
	v := tf(*goal.Value, *judgment.Value)
	return n.builder.Derive(rule, narsese.Goal, stmt, &v, goal.Stamp.OccurrenceTime, goal, judgment)
}

// statement builds (subject copula predicate), or nil when either side is
// missing or both are the same term.
func statement(subject narsese.Term, copula narsese.Copula, predicate narsese.Term) narsese.Term {
	if subject == nil || predicate == nil || narsese.Equal(subject, predicate) {
		return nil
	}
	return narsese.NewStatement(subject, copula, predicate)
}

// asymmetric is the plain asymmetric copula of a statement's order.
func asymmetric(s *narsese.Statement) narsese.Copula {
	if s.IsFirstOrder() {
		return narsese.Inheritance
	}
	return narsese.Implication
}

// symmetric is the plain symmetric copula of a statement's order.
func symmetric(s *narsese.Statement) narsese.Copula {
	if s.IsFirstOrder() {
		return narsese.Similarity
	}
	return narsese.Equivalence
}
