package sentence

import (
	"fmt"
	"strings"

	"github.com/cognicore/narscore/pkg/narscore/internalerr"
	"github.com/cognicore/narscore/pkg/narscore/narsese"
	"github.com/cognicore/narscore/pkg/narscore/truth"
)

// Parse reads a sentence:
//
//	<statement><punctuation>[ <tense>][ %f;c%]
//
// The statement spans the first "(" to the last ")". Without a value block
// the value defaults to frequency 1 and unit-evidence confidence. A present
// tense marker makes the sentence an event occurring at cycle; the other
// markers are recognised but leave it eternal. Values on questions and
// quests are ignored.
func (b *Builder) Parse(text string, cycle int64) (*Sentence, error) {
	start := strings.Index(text, narsese.StatementStart)
	end := strings.LastIndex(text, narsese.StatementEnd)
	if start < 0 || end < start {
		return nil, fmt.Errorf("%w: statement delimiters missing in %q", internalerr.ErrMalformedSentence, text)
	}

	stmt, err := narsese.ParseTerm(text[start : end+1])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", internalerr.ErrMalformedSentence, err)
	}

	if end+1 >= len(text) {
		return nil, fmt.Errorf("%w: missing punctuation in %q", internalerr.ErrMalformedSentence, text)
	}
	punct, ok := narsese.ParsePunctuation(text[end+1 : end+2])
	if !ok {
		return nil, fmt.Errorf("%w: unknown punctuation %q", internalerr.ErrMalformedSentence, text[end+1:end+2])
	}

	rest := text[end+2:]
	value, err := parseValue(rest, b.unitEvidence)
	if err != nil {
		return nil, err
	}

	occurrence := Eternal
	if parseTense(rest) == narsese.Present {
		occurrence = cycle
	}

	if punct == narsese.Question || punct == narsese.Quest {
		return b.build(stmt, punct, nil, occurrence), nil
	}
	return b.build(stmt, punct, &value, occurrence), nil
}

// MustParse is like Parse but panics on error. Intended for tests and
// fixed inputs.
func (b *Builder) MustParse(text string, cycle int64) *Sentence {
	s, err := b.Parse(text, cycle)
	if err != nil {
		panic(err)
	}
	return s
}

func parseValue(rest string, unitEvidence float64) (truth.Value, error) {
	open := strings.Index(rest, narsese.TruthMarker)
	if open < 0 {
		return truth.New(1.0, unitEvidence), nil
	}
	sep := strings.Index(rest, narsese.ValueSeparator)
	closing := strings.LastIndex(rest, narsese.TruthMarker)
	if sep < 0 || closing == open || !(open < sep && sep < closing) {
		return truth.Value{}, fmt.Errorf("%w: malformed value block %q", internalerr.ErrMalformedSentence, strings.TrimSpace(rest))
	}
	v, err := truth.Parse(rest[open+1 : closing])
	if err != nil {
		return truth.Value{}, fmt.Errorf("%w: %w", internalerr.ErrMalformedSentence, err)
	}
	return v, nil
}

func parseTense(rest string) narsese.Tense {
	for _, t := range narsese.Tenses {
		if strings.Contains(rest, t.String()) {
			return t
		}
	}
	return narsese.Eternal
}
