package inference

import (
	"github.com/cognicore/narscore/pkg/narscore/narsese"
	"github.com/cognicore/narscore/pkg/narscore/sentence"
)

// contrapositive copulas reverse the temporal direction.
var contrapositive = map[narsese.Copula]narsese.Copula{
	narsese.Implication:              narsese.Implication,
	narsese.PredictiveImplication:    narsese.RetrospectiveImplication,
	narsese.RetrospectiveImplication: narsese.PredictiveImplication,
	narsese.ConcurrentImplication:    narsese.ConcurrentImplication,
}

// Contraposition: (S==>P) |- ((--,P)==>(--,S))
func (n *NAL) Contraposition(j *sentence.Sentence) *sentence.Sentence {
	s, ok := narsese.AsStatement(j.Statement)
	if !ok || j.Value == nil {
		return nil
	}
	cop, ok := contrapositive[s.Copula()]
	if !ok {
		return nil
	}
	stmt := statement(narsese.Negate(s.Predicate()), cop, narsese.Negate(s.Subject()))
	if stmt == nil {
		return nil
	}
	v := n.calc.Contraposition(*j.Value)
	d := n.builder.Derive(RuleContraposition, narsese.Judgment, stmt, &v, j.Stamp.OccurrenceTime, j)
	d.Stamp.FromOnePremise = true
	return d
}
