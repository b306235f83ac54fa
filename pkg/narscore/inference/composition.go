package inference

import (
	"github.com/cognicore/narscore/pkg/narscore/narsese"
	"github.com/cognicore/narscore/pkg/narscore/sentence"
)

// DisjunctionOrIntensionalIntersection composes the unshared sides with
// | (first order) or || (higher order):
//
//	{M-->P, M-->S} |- M-->(|,P,S)   union
//	{P-->M, S-->M} |- (|,P,S)-->M   intersection
func (n *NAL) DisjunctionOrIntensionalIntersection(j1, j2 *sentence.Sentence) *sentence.Sentence {
	conn := narsese.IntensionalIntersection
	if s, ok := narsese.AsStatement(j1.Statement); ok && !s.IsFirstOrder() {
		conn = narsese.Disjunction
	}
	return n.compose(RuleIntensionalIntersection, conn, n.calc.Union, n.calc.Intersection, j1, j2)
}

// ConjunctionOrExtensionalIntersection composes the unshared sides with
// & (first order) or && (higher order):
//
//	{M-->P, M-->S} |- M-->(&,P,S)   intersection
//	{P-->M, S-->M} |- (&,P,S)-->M   union
func (n *NAL) ConjunctionOrExtensionalIntersection(j1, j2 *sentence.Sentence) *sentence.Sentence {
	conn := narsese.ExtensionalIntersection
	if s, ok := narsese.AsStatement(j1.Statement); ok && !s.IsFirstOrder() {
		conn = narsese.Conjunction
	}
	return n.compose(RuleExtensionalIntersection, conn, n.calc.Intersection, n.calc.Union, j1, j2)
}

// compose builds the composed statement around the shared term. bySubject
// values a shared subject, byPredicate a shared predicate.
func (n *NAL) compose(rule string, conn narsese.Connector, bySubject, byPredicate binaryTF, j1, j2 *sentence.Sentence) *sentence.Sentence {
	s1, s2 := statementsOf(j1, j2)
	if s1 == nil {
		return nil
	}
	cop := asymmetric(s1)
	switch {
	case narsese.Equal(s1.Subject(), s2.Subject()):
		stmt := statement(s1.Subject(), cop, narsese.NewCompound(conn, s1.Predicate(), s2.Predicate()))
		return n.conclude(rule, stmt, bySubject, sentence.Eternal, j1, j2)
	case narsese.Equal(s1.Predicate(), s2.Predicate()):
		stmt := statement(narsese.NewCompound(conn, s1.Subject(), s2.Subject()), cop, s1.Predicate())
		return n.conclude(rule, stmt, byPredicate, sentence.Eternal, j1, j2)
	}
	return nil
}

// ExtensionalDifference: {M-->P, M-->S} |- M-->(-,P,S). First order only.
func (n *NAL) ExtensionalDifference(j1, j2 *sentence.Sentence) *sentence.Sentence {
	s1, s2 := statementsOf(j1, j2)
	if s1 == nil || !s1.IsFirstOrder() || !narsese.Equal(s1.Subject(), s2.Subject()) {
		return nil
	}
	diff := narsese.NewCompound(narsese.ExtensionalDifference, s1.Predicate(), s2.Predicate())
	stmt := statement(s1.Subject(), narsese.Inheritance, diff)
	return n.conclude(RuleExtensionalDifference, stmt, n.calc.Difference, sentence.Eternal, j1, j2)
}

// IntensionalDifference: {P-->M, S-->M} |- (~,P,S)-->M. First order only.
func (n *NAL) IntensionalDifference(j1, j2 *sentence.Sentence) *sentence.Sentence {
	s1, s2 := statementsOf(j1, j2)
	if s1 == nil || !s1.IsFirstOrder() || !narsese.Equal(s1.Predicate(), s2.Predicate()) {
		return nil
	}
	diff := narsese.NewCompound(narsese.IntensionalDifference, s1.Subject(), s2.Subject())
	stmt := statement(diff, narsese.Inheritance, s1.Predicate())
	return n.conclude(RuleIntensionalDifference, stmt, n.calc.Difference, sentence.Eternal, j1, j2)
}
