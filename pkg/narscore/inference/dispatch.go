package inference

import (
	"github.com/cognicore/narscore/pkg/narscore/narsese"
	"github.com/cognicore/narscore/pkg/narscore/sentence"
)

// handler is one guarded rule group. fire runs only when applies holds;
// the first applicable handler ends dispatch, even if it derives nothing.
type handler struct {
	name    string
	applies func(p *pair) bool
	fire    func(p *pair) []*sentence.Sentence
}

// pair holds two premises and their statements, when they are statements.
type pair struct {
	j1, j2 *sentence.Sentence
	s1, s2 *narsese.Statement
}

func newPair(j1, j2 *sentence.Sentence) *pair {
	p := &pair{j1: j1, j2: j2}
	p.s1, _ = narsese.AsStatement(j1.Statement)
	p.s2, _ = narsese.AsStatement(j2.Statement)
	return p
}

func (p *pair) swapped() *pair {
	return &pair{j1: p.j2, j2: p.j1, s1: p.s2, s2: p.s1}
}

// statements reports whether both premises are statements.
func (p *pair) statements() bool { return p.s1 != nil && p.s2 != nil }

// sameOrder reports whether both are statements of the same order.
func (p *pair) sameOrder() bool {
	return p.statements() && p.s1.IsFirstOrder() == p.s2.IsFirstOrder()
}

func (p *pair) symmetry() (sym1, sym2 bool) {
	return p.s1.Copula().IsSymmetric(), p.s2.Copula().IsSymmetric()
}

// beliefs reports whether the premises are judgments or questions.
func (p *pair) beliefs() bool {
	ok := func(s *sentence.Sentence) bool { return s.IsJudgment() || s.IsQuestion() }
	return ok(p.j1) && ok(p.j2)
}

func none(*pair) []*sentence.Sentence { return nil }

// twoPremiseHandlers lists the rule groups in precedence order.
func (n *NAL) twoPremiseHandlers() []handler {
	return []handler{
		{"zero confidence", zeroConfidence, none},
		{"revision", sameStatement, n.revise},
		{"negative premises", zeroFrequency, none},
		{"not beliefs", func(p *pair) bool { return !p.beliefs() }, none},
		{"conditional judgment deduction", compoundMeetsImplication, n.conditionalJudgmentDeduction},
		{"tautology", tautology, none},
		{"temporal", temporalOrEvent, none},
		{"syllogism", bothAsymmetric, n.syllogism},
		{"analogy", oneSymmetric, n.analogy},
		{"resemblance", bothSymmetric, n.resemblance},
		{"conditional", mixedOrder, n.conditional},
	}
}

// zeroConfidence holds when a valued premise has no evidence.
func zeroConfidence(p *pair) bool {
	return (p.j1.HasValue() && p.j1.Confidence() == 0) || (p.j2.HasValue() && p.j2.Confidence() == 0)
}

func sameStatement(p *pair) bool {
	return narsese.Equal(p.j1.Statement, p.j2.Statement)
}

// zeroFrequency holds when a valued premise is entirely negative.
func zeroFrequency(p *pair) bool {
	return (p.j1.HasValue() && p.j1.Frequency() == 0) || (p.j2.HasValue() && p.j2.Frequency() == 0)
}

// compoundMeetsImplication holds when one premise is a compound and the
// other an implication whose antecedent is that compound.
func compoundMeetsImplication(p *pair) bool {
	return antecedentIs(p.s2, p.j1.Statement) || antecedentIs(p.s1, p.j2.Statement)
}

func antecedentIs(impl *narsese.Statement, t narsese.Term) bool {
	if impl == nil || impl.IsFirstOrder() {
		return false
	}
	if impl.Copula() != narsese.Implication && impl.Copula() != narsese.PredictiveImplication {
		return false
	}
	if _, ok := narsese.AsCompound(t); !ok {
		return false
	}
	return narsese.Equal(impl.Subject(), t)
}

// tautology holds when the conclusion would restate a premise: swapped
// terms, or the same terms under copulas of different symmetry.
func tautology(p *pair) bool {
	if !p.sameOrder() {
		return false
	}
	s1, s2 := p.s1, p.s2
	if narsese.Equal(s1.Subject(), s2.Predicate()) && narsese.Equal(s1.Predicate(), s2.Subject()) {
		return true
	}
	sym1, sym2 := p.symmetry()
	return narsese.Equal(s1.Subject(), s2.Subject()) &&
		narsese.Equal(s1.Predicate(), s2.Predicate()) &&
		sym1 != sym2
}

// temporalOrEvent blocks semantic inference on temporal statements and
// events; those are left to temporal inference.
func temporalOrEvent(p *pair) bool {
	if !p.sameOrder() {
		return false
	}
	return p.s1.Copula().IsTemporal() || p.s2.Copula().IsTemporal() ||
		(p.j1.IsJudgment() && p.j1.IsEvent()) || (p.j2.IsJudgment() && p.j2.IsEvent())
}

func bothAsymmetric(p *pair) bool {
	if !p.sameOrder() {
		return false
	}
	sym1, sym2 := p.symmetry()
	return !sym1 && !sym2
}

func oneSymmetric(p *pair) bool {
	if !p.sameOrder() {
		return false
	}
	sym1, sym2 := p.symmetry()
	return sym1 != sym2
}

func bothSymmetric(p *pair) bool {
	if !p.sameOrder() {
		return false
	}
	sym1, sym2 := p.symmetry()
	return sym1 && sym2
}

// mixedOrder holds when exactly one premise is a higher-order statement.
func mixedOrder(p *pair) bool {
	return narsese.IsHigherOrder(p.j1.Statement) != narsese.IsHigherOrder(p.j2.Statement)
}

// goalHandlers lists the goal/belief rule groups in precedence order.
func (n *NAL) goalHandlers() []handler {
	return []handler{
		{"conditional goal deduction", goalIsConsequent, n.conditionalGoalDeduction},
		{"conditional goal induction", goalIsAntecedent, n.conditionalGoalInduction},
		{"simplify conjunctive goal", goalConjunctionHasBelief, n.simplifyConjunctiveGoal},
		{"simplify negated conjunctive goal", negatedGoalStartsWithBelief, n.simplifyNegatedConjunctiveGoal},
	}
}

// higherOrderAsymmetric returns the belief statement if it is a higher-order
// asymmetric statement.
func higherOrderAsymmetric(p *pair) (*narsese.Statement, bool) {
	s := p.s2
	if s == nil || s.IsFirstOrder() || s.Copula().IsSymmetric() {
		return nil, false
	}
	return s, true
}

func goalIsConsequent(p *pair) bool {
	s, ok := higherOrderAsymmetric(p)
	return ok && narsese.Equal(s.Predicate(), p.j1.Statement)
}

func goalIsAntecedent(p *pair) bool {
	s, ok := higherOrderAsymmetric(p)
	return ok && narsese.Equal(s.Subject(), p.j1.Statement)
}

func goalConjunctionHasBelief(p *pair) bool {
	c, ok := narsese.AsCompound(p.j1.Statement)
	if !ok || !c.Connector().IsConjunction() {
		return false
	}
	if c.Connector() == narsese.SequentialConjunction {
		return narsese.Equal(c.At(0), p.j2.Statement)
	}
	return narsese.Contains(c.Subterms(), p.j2.Statement)
}

func negatedGoalStartsWithBelief(p *pair) bool {
	neg, ok := narsese.AsCompound(p.j1.Statement)
	if !ok || neg.Connector() != narsese.Negation {
		return false
	}
	c, ok := narsese.AsCompound(neg.At(0))
	if !ok || !c.Connector().IsConjunction() {
		return false
	}
	return narsese.Equal(c.At(0), p.j2.Statement)
}
