package inference

import (
	"github.com/cognicore/narscore/pkg/narscore/sentence"
)

// revise pools two sentences about the same statement. Questions and
// mixed punctuation are not revised.
func (n *NAL) revise(p *pair) []*sentence.Sentence {
	return keep(nil, n.Revision(p.j1, p.j2))
}

// Revision merges the evidence of j1 and j2. The result keeps j1's
// punctuation and occurrence time.
func (n *NAL) Revision(j1, j2 *sentence.Sentence) *sentence.Sentence {
	if j1.Value == nil || j2.Value == nil || j1.Punctuation != j2.Punctuation {
		return nil
	}
	v := n.calc.Revision(*j1.Value, *j2.Value)
	return n.builder.Derive(RuleRevision, j1.Punctuation, j1.Statement, &v, j1.Stamp.OccurrenceTime, j1, j2)
}
