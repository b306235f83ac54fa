package inference

import (
	"github.com/cognicore/narscore/pkg/narscore/narsese"
	"github.com/cognicore/narscore/pkg/narscore/sentence"
)

// conditionalCase is the structural relation between a higher-order
// statement and a premise that is not higher order.
type conditionalCase int

const (
	noConditional conditionalCase = iota
	symmetricMatch
	antecedentMatch
	consequentMatch
	conjunctivePrefix
	conjunctiveCompound
)

func (c conditionalCase) String() string {
	switch c {
	case symmetricMatch:
		return "symmetric match"
	case antecedentMatch:
		return "antecedent match"
	case consequentMatch:
		return "consequent match"
	case conjunctivePrefix:
		return "conjunctive prefix"
	case conjunctiveCompound:
		return "conjunctive compound"
	}
	return "none"
}

// classifyConditional selects how other relates to the higher-order
// statement hi:
//
//	S<=>P with S or P        symmetric match
//	S==>P with S             antecedent match
//	S==>P with P             consequent match
//	(&&,C..,S)==>P           conjunctive prefix
//	other is a conjunction   conjunctive compound
func classifyConditional(hi *narsese.Statement, other narsese.Term) conditionalCase {
	sym := hi.Copula().IsSymmetric()
	onSide := narsese.Equal(other, hi.Subject()) || narsese.Equal(other, hi.Predicate())
	switch {
	case sym && onSide:
		return symmetricMatch
	case narsese.Equal(other, hi.Subject()):
		return antecedentMatch
	case narsese.Equal(other, hi.Predicate()):
		return consequentMatch
	case !sym && hi.Subject().Connector().IsConjunction():
		return conjunctivePrefix
	case other.Connector().IsConjunction():
		return conjunctiveCompound
	}
	return noConditional
}

// conditional handles one higher-order premise against one that is not.
// Symmetric matches and conjunctive compounds derive nothing.
func (n *NAL) conditional(p *pair) []*sentence.Sentence {
	if !narsese.IsHigherOrder(p.j1.Statement) {
		p = p.swapped()
	}
	switch classifyConditional(p.s1, p.j2.Statement) {
	case antecedentMatch:
		return keep(nil, n.ConditionalDeduction(p.j1, p.j2))
	case consequentMatch:
		return keep(nil, n.ConditionalAbduction(p.j1, p.j2))
	case conjunctivePrefix:
		return keep(nil, n.ConditionalConjunctionalDeduction(p.j1, p.j2))
	}
	return nil
}

// conditionalJudgmentDeduction orients the implication first.
func (n *NAL) conditionalJudgmentDeduction(p *pair) []*sentence.Sentence {
	if !antecedentIs(p.s1, p.j2.Statement) {
		p = p.swapped()
	}
	return keep(nil, n.ConditionalJudgmentDeduction(p.j1, p.j2))
}

// ConditionalJudgmentDeduction: {(A==>P), A} |- P where A is a compound.
// The conclusion occurs when A does.
func (n *NAL) ConditionalJudgmentDeduction(impl, antecedent *sentence.Sentence) *sentence.Sentence {
	s, ok := narsese.AsStatement(impl.Statement)
	if !ok || !narsese.Equal(s.Subject(), antecedent.Statement) {
		return nil
	}
	return n.conclude(RuleConditionalJudgmentDeduction, s.Predicate(), n.calc.Deduction, antecedent.Stamp.OccurrenceTime, impl, antecedent)
}

// ConditionalDeduction: {S==>P, S} |- P
func (n *NAL) ConditionalDeduction(impl, antecedent *sentence.Sentence) *sentence.Sentence {
	s, ok := narsese.AsStatement(impl.Statement)
	if !ok || !narsese.Equal(s.Subject(), antecedent.Statement) {
		return nil
	}
	return n.conclude(RuleConditionalDeduction, s.Predicate(), n.calc.Deduction, antecedent.Stamp.OccurrenceTime, impl, antecedent)
}

// ConditionalAbduction: {S==>P, P} |- S
func (n *NAL) ConditionalAbduction(impl, consequent *sentence.Sentence) *sentence.Sentence {
	s, ok := narsese.AsStatement(impl.Statement)
	if !ok || !narsese.Equal(s.Predicate(), consequent.Statement) {
		return nil
	}
	return n.conclude(RuleConditionalAbduction, s.Subject(), n.calc.Abduction, consequent.Stamp.OccurrenceTime, impl, consequent)
}

// ConditionalConjunctionalDeduction: {(&&,C,S)==>P, S} |- C==>P
//
// For a sequential conjunction S must be its first element.
func (n *NAL) ConditionalConjunctionalDeduction(impl, part *sentence.Sentence) *sentence.Sentence {
	s, ok := narsese.AsStatement(impl.Statement)
	if !ok {
		return nil
	}
	conj, ok := narsese.AsCompound(s.Subject())
	if !ok || !conj.Connector().IsConjunction() {
		return nil
	}
	if conj.Connector() == narsese.SequentialConjunction && !narsese.Equal(conj.At(0), part.Statement) {
		return nil
	}
	rest := narsese.Without(conj.Subterms(), part.Statement)
	if len(rest) == conj.Len() {
		return nil
	}
	stmt := statement(narsese.Join(conj.Connector(), rest), s.Copula(), s.Predicate())
	return n.conclude(RuleConditionalConjunctionalDeduction, stmt, n.calc.Deduction, sentence.Eternal, impl, part)
}

// conjunctionalAbduction applies to two implications sharing a consequent
// whose antecedents differ by exactly one conjunct.
func (n *NAL) conjunctionalAbduction(p *pair) []*sentence.Sentence {
	subj1, subj2 := p.s1.Subject(), p.s2.Subject()
	if !subj1.Connector().IsConjunction() && !subj2.Connector().IsConjunction() {
		return nil
	}
	c1, c2 := narsese.Components(subj1), narsese.Components(subj2)
	diff := append(narsese.Without(c1, c2...), narsese.Without(c2, c1...)...)
	if len(diff) != 1 {
		return nil
	}
	if len(c1) > len(c2) {
		return []*sentence.Sentence{n.ConditionalConjunctionalAbduction(p.j1, p.j2)}
	}
	return []*sentence.Sentence{n.ConditionalConjunctionalAbduction(p.j2, p.j1)}
}

// ConditionalConjunctionalAbduction: {(&&,C,S)==>P, C==>P} |- S
func (n *NAL) ConditionalConjunctionalAbduction(larger, smaller *sentence.Sentence) *sentence.Sentence {
	s1, s2 := statementsOf(larger, smaller)
	if s1 == nil || !narsese.Equal(s1.Predicate(), s2.Predicate()) {
		return nil
	}
	diff := narsese.Without(narsese.Components(s1.Subject()), narsese.Components(s2.Subject())...)
	if len(diff) != 1 {
		return nil
	}
	return n.conclude(RuleConditionalConjunctionalAbduction, diff[0], n.calc.Abduction, sentence.Eternal, larger, smaller)
}
