package truth

import (
	"fmt"
	"math"
)

// MaxConfidence is the largest confidence a value may carry. No statement
// can be absolutely certain.
const MaxConfidence = 0.9999

// Value is an evidential value: a frequency/confidence pair.
// Frequency is in [0,1], confidence in [0,1).
type Value struct {
	Frequency  float64
	Confidence float64
}

// New creates a value, clamping frequency to [0,1] and confidence to [0,MaxConfidence].
func New(frequency, confidence float64) Value {
	return Value{
		Frequency:  clamp(frequency, 0, 1),
		Confidence: clamp(confidence, 0, MaxConfidence),
	}
}

func (v Value) String() string {
	return fmt.Sprintf("%%%s;%s%%", formatFloat(v.Frequency), formatFloat(v.Confidence))
}

// Calculator implements the NAL truth functions for a given evidential horizon.
//
// Evidence weight w and confidence c convert as:
//
//	c = w / (w + k)
//	w = k * c / (1 - c)
//
// Where k is the evidential horizon (default 1.0).
type Calculator struct {
	horizon float64
}

// NewCalculator creates a truth calculator with evidential horizon k.
func NewCalculator(k float64) *Calculator {
	if k <= 0 {
		k = 1.0
	}
	return &Calculator{horizon: k}
}

// Horizon returns the evidential horizon k.
func (c *Calculator) Horizon() float64 { return c.horizon }

// UnitEvidence is the confidence of a single piece of evidence: w2c(1).
func (c *Calculator) UnitEvidence() float64 {
	return c.w2c(1)
}

func (c *Calculator) w2c(w float64) float64 {
	if math.IsInf(w, 1) {
		panic("truth: infinite evidence")
	}
	return clamp(w/(w+c.horizon), 0, MaxConfidence)
}

func (c *Calculator) c2w(conf float64) float64 {
	conf = clamp(conf, 0, MaxConfidence)
	return c.horizon * conf / (1 - conf)
}

// Expectation of a statement being true:
//
//	e = c * (f - 0.5) + 0.5
//
// Monotonic in f for c > 0, and exactly 0.5 at c = 0.
func Expectation(f, conf float64) float64 {
	return conf*(f-0.5) + 0.5
}

// Revision pools the evidence of two independent values about the same statement.
//
//	w+ = c2w(c1)*f1 + c2w(c2)*f2
//	w  = c2w(c1) + c2w(c2)
//	f  = w+ / w,  c = w2c(w)
func (c *Calculator) Revision(v1, v2 Value) Value {
	if v1.Confidence == 0 || v2.Confidence == 0 {
		return zero(v1, v2)
	}
	w1 := c.c2w(v1.Confidence)
	w2 := c.c2w(v2.Confidence)
	w := w1 + w2
	f := (w1*v1.Frequency + w2*v2.Frequency) / w
	conf := c.w2c(w)
	// rounding at the clamp must never drop below either operand
	conf = math.Max(conf, math.Max(v1.Confidence, v2.Confidence))
	return New(f, conf)
}

// Projection moves a value observed at then to now. Confidence above the
// unit-evidence floor decays geometrically:
//
//	c' = floor + (c - floor) * decay^|now - then|
//
// Confidence at or below the floor is left unchanged.
func (c *Calculator) Projection(v Value, then, now int64, decay float64) Value {
	floor := c.UnitEvidence()
	if v.Confidence <= floor {
		return v
	}
	dt := math.Abs(float64(now - then))
	decay = clamp(decay, 0, 1)
	return New(v.Frequency, floor+(v.Confidence-floor)*math.Pow(decay, dt))
}

// Deduction: {M-->P <v1>, S-->M <v2>} |- S-->P
//
//	f = f1*f2,  c = f1*f2*c1*c2
func (c *Calculator) Deduction(v1, v2 Value) Value {
	if v1.Confidence == 0 || v2.Confidence == 0 {
		return zero(v1, v2)
	}
	f := and(v1.Frequency, v2.Frequency)
	return New(f, and(f, v1.Confidence, v2.Confidence))
}

// Abduction: {P-->M <v1>, S-->M <v2>} |- S-->P
//
//	f = f1,  c = w2c(f2*c1*c2)
func (c *Calculator) Abduction(v1, v2 Value) Value {
	if v1.Confidence == 0 || v2.Confidence == 0 {
		return zero(v1, v2)
	}
	return New(v1.Frequency, c.w2c(and(v2.Frequency, v1.Confidence, v2.Confidence)))
}

// Induction: {M-->P <v1>, M-->S <v2>} |- S-->P
//
//	f = f1,  c = w2c(f2*c1*c2)
func (c *Calculator) Induction(v1, v2 Value) Value {
	return c.Abduction(v1, v2)
}

// Exemplification: {P-->M <v1>, M-->S <v2>} |- S-->P
//
//	f = 1,  c = w2c(f1*f2*c1*c2)
func (c *Calculator) Exemplification(v1, v2 Value) Value {
	if v1.Confidence == 0 || v2.Confidence == 0 {
		return zero(v1, v2)
	}
	return New(1, c.w2c(and(v1.Frequency, v2.Frequency, v1.Confidence, v2.Confidence)))
}

// Comparison: {M-->P <v1>, M-->S <v2>} |- S<->P
//
//	f0 = or(f1,f2),  f = f1*f2/f0,  c = w2c(f0*c1*c2)
func (c *Calculator) Comparison(v1, v2 Value) Value {
	if v1.Confidence == 0 || v2.Confidence == 0 {
		return zero(v1, v2)
	}
	f0 := or(v1.Frequency, v2.Frequency)
	f := 0.0
	if f0 > 0 {
		f = and(v1.Frequency, v2.Frequency) / f0
	}
	return New(f, c.w2c(and(f0, v1.Confidence, v2.Confidence)))
}

// Analogy: {M-->P <v1>, S<->M <v2>} |- S-->P
//
//	f = f1*f2,  c = f2*c1*c2
func (c *Calculator) Analogy(v1, v2 Value) Value {
	if v1.Confidence == 0 || v2.Confidence == 0 {
		return zero(v1, v2)
	}
	return New(and(v1.Frequency, v2.Frequency), and(v2.Frequency, v1.Confidence, v2.Confidence))
}

// Resemblance: {M<->P <v1>, S<->M <v2>} |- S<->P
//
//	f = f1*f2,  c = or(f1,f2)*c1*c2
func (c *Calculator) Resemblance(v1, v2 Value) Value {
	if v1.Confidence == 0 || v2.Confidence == 0 {
		return zero(v1, v2)
	}
	return New(and(v1.Frequency, v2.Frequency), and(or(v1.Frequency, v2.Frequency), v1.Confidence, v2.Confidence))
}

// Intersection: f = f1*f2, c = c1*c2
func (c *Calculator) Intersection(v1, v2 Value) Value {
	if v1.Confidence == 0 || v2.Confidence == 0 {
		return zero(v1, v2)
	}
	return New(and(v1.Frequency, v2.Frequency), and(v1.Confidence, v2.Confidence))
}

// Union: f = or(f1,f2), c = c1*c2
func (c *Calculator) Union(v1, v2 Value) Value {
	if v1.Confidence == 0 || v2.Confidence == 0 {
		return zero(v1, v2)
	}
	return New(or(v1.Frequency, v2.Frequency), and(v1.Confidence, v2.Confidence))
}

// Difference: f = f1*(1-f2), c = c1*c2
func (c *Calculator) Difference(v1, v2 Value) Value {
	if v1.Confidence == 0 || v2.Confidence == 0 {
		return zero(v1, v2)
	}
	return New(and(v1.Frequency, 1-v2.Frequency), and(v1.Confidence, v2.Confidence))
}

// Contraposition: (S==>P) |- ((--,P)==>(--,S))
//
//	f = 0,  c = w2c((1-f)*c)
func (c *Calculator) Contraposition(v Value) Value {
	if v.Confidence == 0 {
		return Value{}
	}
	return New(0, c.w2c(and(1-v.Frequency, v.Confidence)))
}

// Negation: f = 1-f, c = c
func (c *Calculator) Negation(v Value) Value {
	return New(1-v.Frequency, v.Confidence)
}

// zero is the uninformative result for a zero-confidence operand.
func zero(v1, v2 Value) Value {
	return Value{Frequency: and(v1.Frequency, v2.Frequency), Confidence: 0}
}

func and(xs ...float64) float64 {
	p := 1.0
	for _, x := range xs {
		p *= x
	}
	return p
}

func or(xs ...float64) float64 {
	p := 1.0
	for _, x := range xs {
		p *= 1 - x
	}
	return 1 - p
}

func clamp(x, lo, hi float64) float64 {
	if math.IsNaN(x) {
		panic("truth: NaN value")
	}
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
