package inference

import (
	"github.com/cognicore/narscore/pkg/narscore/narsese"
	"github.com/cognicore/narscore/pkg/narscore/sentence"
)

func (n *NAL) conditionalGoalDeduction(p *pair) []*sentence.Sentence {
	return keep(nil, n.ConditionalGoalDeduction(p.j1, p.j2))
}

func (n *NAL) conditionalGoalInduction(p *pair) []*sentence.Sentence {
	return keep(nil, n.ConditionalGoalInduction(p.j1, p.j2))
}

func (n *NAL) simplifyConjunctiveGoal(p *pair) []*sentence.Sentence {
	return keep(nil, n.SimplifyConjunctiveGoal(p.j1, p.j2))
}

func (n *NAL) simplifyNegatedConjunctiveGoal(p *pair) []*sentence.Sentence {
	return keep(nil, n.SimplifyNegatedConjunctiveGoal(p.j1, p.j2))
}

// ConditionalGoalDeduction: {P!, S==>P} |- S!
func (n *NAL) ConditionalGoalDeduction(goal, belief *sentence.Sentence) *sentence.Sentence {
	s, ok := narsese.AsStatement(belief.Statement)
	if !ok || !narsese.Equal(s.Predicate(), goal.Statement) {
		return nil
	}
	return n.subgoal(RuleConditionalGoalDeduction, s.Subject(), n.calc.Deduction, goal, belief)
}

// ConditionalGoalInduction: {S!, S==>P} |- P!
func (n *NAL) ConditionalGoalInduction(goal, belief *sentence.Sentence) *sentence.Sentence {
	s, ok := narsese.AsStatement(belief.Statement)
	if !ok || !narsese.Equal(s.Subject(), goal.Statement) {
		return nil
	}
	return n.subgoal(RuleConditionalGoalInduction, s.Predicate(), n.calc.Induction, goal, belief)
}

// SimplifyConjunctiveGoal: {(&/,C,S)!, C.} |- S!
func (n *NAL) SimplifyConjunctiveGoal(goal, belief *sentence.Sentence) *sentence.Sentence {
	conj, ok := narsese.AsCompound(goal.Statement)
	if !ok || !conj.Connector().IsConjunction() {
		return nil
	}
	rest := narsese.Without(conj.Subterms(), belief.Statement)
	if len(rest) == conj.Len() {
		return nil
	}
	return n.subgoal(RuleSimplifyConjunctiveGoal, narsese.Join(conj.Connector(), rest), n.calc.Deduction, goal, belief)
}

// SimplifyNegatedConjunctiveGoal: {(--,(&/,A,B))!, A.} |- (--,B)!
func (n *NAL) SimplifyNegatedConjunctiveGoal(goal, belief *sentence.Sentence) *sentence.Sentence {
	neg, ok := narsese.AsCompound(goal.Statement)
	if !ok || neg.Connector() != narsese.Negation {
		return nil
	}
	conj, ok := narsese.AsCompound(neg.At(0))
	if !ok || !conj.Connector().IsConjunction() || !narsese.Equal(conj.At(0), belief.Statement) {
		return nil
	}
	rest := narsese.Join(conj.Connector(), conj.Subterms()[1:])
	if rest == nil {
		return nil
	}
	return n.subgoal(RuleSimplifyNegatedConjunctiveGoal, narsese.Negate(rest), n.calc.Deduction, goal, belief)
}
