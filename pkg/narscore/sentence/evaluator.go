package sentence

import (
	"math"

	"github.com/cognicore/narscore/pkg/narscore/narsese"
	"github.com/cognicore/narscore/pkg/narscore/truth"
)

// Evaluator reads sentence values at a given cycle.
type Evaluator struct {
	calc              *truth.Calculator
	decayEvent        float64
	decayDesire       float64
	positiveThreshold float64
	negativeThreshold float64
}

// EvaluatorOptions configures an Evaluator.
type EvaluatorOptions struct {
	DecayEvent        float64
	DecayDesire       float64
	PositiveThreshold float64
	NegativeThreshold float64
}

// NewEvaluator creates an evaluator using calc for projection.
func NewEvaluator(calc *truth.Calculator, opts EvaluatorOptions) *Evaluator {
	return &Evaluator{
		calc:              calc,
		decayEvent:        opts.DecayEvent,
		decayDesire:       opts.DecayDesire,
		positiveThreshold: opts.PositiveThreshold,
		negativeThreshold: opts.NegativeThreshold,
	}
}

// Value returns the sentence's value at cycle. Event values are projected
// from their occurrence time; goals decay at the desire rate, everything
// else at the event rate. ok is false for sentences without a value.
func (e *Evaluator) Value(s *Sentence, cycle int64) (v truth.Value, ok bool) {
	if s.Value == nil {
		return truth.Value{}, false
	}
	if !s.IsEvent() {
		return *s.Value, true
	}
	decay := e.decayEvent
	if s.Punctuation == narsese.Goal {
		decay = e.decayDesire
	}
	return e.calc.Projection(*s.Value, s.Stamp.OccurrenceTime, cycle, decay), true
}

// Expectation of the sentence at cycle. Eternal sentences use their cached
// expectation; sentences without a value yield 0.5.
func (e *Evaluator) Expectation(s *Sentence, cycle int64) float64 {
	if s.Value == nil {
		return 0.5
	}
	if !s.IsEvent() {
		return s.EternalExpectation
	}
	v, _ := e.Value(s, cycle)
	return truth.Expectation(v.Frequency, v.Confidence)
}

// Desirability of a goal at cycle.
func (e *Evaluator) Desirability(goal *Sentence, cycle int64) float64 {
	return e.Expectation(goal, cycle)
}

// MotorActivation maps desirability in [0.5,1] onto [0,1]; anything below
// 0.5 is 0.
func (e *Evaluator) MotorActivation(goal *Sentence, cycle int64) float64 {
	return math.Max(0, (e.Desirability(goal, cycle)-0.5)*2)
}

// IsPositive reports whether the expectation at cycle reaches the positive
// threshold.
func (e *Evaluator) IsPositive(s *Sentence, cycle int64) bool {
	return e.Expectation(s, cycle) >= e.positiveThreshold
}

// IsNegative reports whether the expectation at cycle is below the negative
// threshold.
func (e *Evaluator) IsNegative(s *Sentence, cycle int64) bool {
	return e.Expectation(s, cycle) < e.negativeThreshold
}
