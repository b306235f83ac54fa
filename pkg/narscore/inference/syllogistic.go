package inference

import (
	"github.com/cognicore/narscore/pkg/narscore/narsese"
	"github.com/cognicore/narscore/pkg/narscore/sentence"
)

// syllogism handles two asymmetric statements sharing a term.
//
//	middle term  M-->P, S-->M   deduction, swapped exemplification
//	subject      M-->P, M-->S   induction, comparison, composition
//	predicate    P-->M, S-->M   abduction, composition, comparison
func (n *NAL) syllogism(p *pair) []*sentence.Sentence {
	s1, s2 := p.s1, p.s2
	switch {
	case narsese.Equal(s1.Subject(), s2.Predicate()) || narsese.Equal(s1.Predicate(), s2.Subject()):
		if !narsese.Equal(s1.Subject(), s2.Predicate()) {
			p = p.swapped()
		}
		return keep(nil,
			n.Deduction(p.j1, p.j2),
			n.Exemplification(p.j2, p.j1),
		)

	case narsese.Equal(s1.Subject(), s2.Subject()):
		return keep(nil,
			n.Induction(p.j1, p.j2),
			n.Induction(p.j2, p.j1),
			n.Comparison(p.j1, p.j2),
			n.DisjunctionOrIntensionalIntersection(p.j1, p.j2),
			n.ConjunctionOrExtensionalIntersection(p.j1, p.j2),
			n.ExtensionalDifference(p.j1, p.j2),
			n.ExtensionalDifference(p.j2, p.j1),
		)

	case narsese.Equal(s1.Predicate(), s2.Predicate()):
		out := keep(nil,
			n.Abduction(p.j1, p.j2),
			n.Abduction(p.j2, p.j1),
		)
		if !s1.IsFirstOrder() {
			out = keep(out, n.conjunctionalAbduction(p)...)
		}
		return keep(out,
			n.DisjunctionOrIntensionalIntersection(p.j1, p.j2),
			n.ConjunctionOrExtensionalIntersection(p.j1, p.j2),
			n.IntensionalDifference(p.j1, p.j2),
			n.IntensionalDifference(p.j2, p.j1),
			n.Comparison(p.j1, p.j2),
		)
	}
	return nil
}

func (n *NAL) analogy(p *pair) []*sentence.Sentence {
	if p.s1.Copula().IsSymmetric() {
		p = p.swapped()
	}
	return keep(nil, n.Analogy(p.j1, p.j2))
}

func (n *NAL) resemblance(p *pair) []*sentence.Sentence {
	return keep(nil, n.Resemblance(p.j1, p.j2))
}

// Deduction: {M-->P, S-->M} |- S-->P
func (n *NAL) Deduction(j1, j2 *sentence.Sentence) *sentence.Sentence {
	s1, s2 := statementsOf(j1, j2)
	if s1 == nil {
		return nil
	}
	stmt := statement(s2.Subject(), asymmetric(s1), s1.Predicate())
	return n.conclude(RuleDeduction, stmt, n.calc.Deduction, sentence.Eternal, j1, j2)
}

// Exemplification: {P-->M, M-->S} |- S-->P
func (n *NAL) Exemplification(j1, j2 *sentence.Sentence) *sentence.Sentence {
	s1, s2 := statementsOf(j1, j2)
	if s1 == nil {
		return nil
	}
	stmt := statement(s2.Predicate(), asymmetric(s1), s1.Subject())
	return n.conclude(RuleExemplification, stmt, n.calc.Exemplification, sentence.Eternal, j1, j2)
}

// Induction: {M-->P, M-->S} |- S-->P
func (n *NAL) Induction(j1, j2 *sentence.Sentence) *sentence.Sentence {
	s1, s2 := statementsOf(j1, j2)
	if s1 == nil {
		return nil
	}
	stmt := statement(s2.Predicate(), asymmetric(s1), s1.Predicate())
	return n.conclude(RuleInduction, stmt, n.calc.Induction, sentence.Eternal, j1, j2)
}

// Abduction: {P-->M, S-->M} |- S-->P
func (n *NAL) Abduction(j1, j2 *sentence.Sentence) *sentence.Sentence {
	s1, s2 := statementsOf(j1, j2)
	if s1 == nil {
		return nil
	}
	stmt := statement(s2.Subject(), asymmetric(s1), s1.Subject())
	return n.conclude(RuleAbduction, stmt, n.calc.Abduction, sentence.Eternal, j1, j2)
}

// Comparison: {M-->P, M-->S} |- S<->P, or {P-->M, S-->M} |- S<->P
func (n *NAL) Comparison(j1, j2 *sentence.Sentence) *sentence.Sentence {
	s1, s2 := statementsOf(j1, j2)
	if s1 == nil {
		return nil
	}
	var stmt narsese.Term
	switch {
	case narsese.Equal(s1.Subject(), s2.Subject()):
		stmt = statement(s2.Predicate(), symmetric(s1), s1.Predicate())
	case narsese.Equal(s1.Predicate(), s2.Predicate()):
		stmt = statement(s2.Subject(), symmetric(s1), s1.Subject())
	}
	return n.conclude(RuleComparison, stmt, n.calc.Comparison, sentence.Eternal, j1, j2)
}

// Analogy: {M-->P, S<->M} |- S-->P, substituting the shared term of the
// asymmetric premise j1 with the other side of the symmetric premise j2.
func (n *NAL) Analogy(j1, j2 *sentence.Sentence) *sentence.Sentence {
	s1, s2 := statementsOf(j1, j2)
	if s1 == nil {
		return nil
	}
	var stmt narsese.Term
	if other := across(s2, s1.Subject()); other != nil {
		stmt = statement(other, s1.Copula(), s1.Predicate())
	} else if other := across(s2, s1.Predicate()); other != nil {
		stmt = statement(s1.Subject(), s1.Copula(), other)
	}
	return n.conclude(RuleAnalogy, stmt, n.calc.Analogy, sentence.Eternal, j1, j2)
}

// Resemblance: {M<->P, S<->M} |- S<->P
func (n *NAL) Resemblance(j1, j2 *sentence.Sentence) *sentence.Sentence {
	s1, s2 := statementsOf(j1, j2)
	if s1 == nil {
		return nil
	}
	var stmt narsese.Term
	for _, shared := range []narsese.Term{s1.Subject(), s1.Predicate()} {
		if other := across(s2, shared); other != nil {
			stmt = statement(other, s1.Copula(), across(s1, shared))
			break
		}
	}
	return n.conclude(RuleResemblance, stmt, n.calc.Resemblance, sentence.Eternal, j1, j2)
}

// across returns the side of s opposite to t, or nil if t is neither side.
func across(s *narsese.Statement, t narsese.Term) narsese.Term {
	switch {
	case narsese.Equal(s.Subject(), t):
		return s.Predicate()
	case narsese.Equal(s.Predicate(), t):
		return s.Subject()
	}
	return nil
}

func statementsOf(j1, j2 *sentence.Sentence) (*narsese.Statement, *narsese.Statement) {
	s1, ok1 := narsese.AsStatement(j1.Statement)
	s2, ok2 := narsese.AsStatement(j2.Statement)
	if !ok1 || !ok2 {
		return nil, nil
	}
	return s1, s2
}
