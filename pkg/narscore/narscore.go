// Package narscore drives a non-axiomatic reasoner: sentences go into a
// priority buffer, and every cycle the strongest one is taken, related to
// what the reasoner already knows, and its conclusions are fed back in.
package narscore

import (
	"bufio"
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/narscore/pkg/narscore/buffer"
	"github.com/cognicore/narscore/pkg/narscore/concept"
	"github.com/cognicore/narscore/pkg/narscore/config"
	"github.com/cognicore/narscore/pkg/narscore/inference"
	"github.com/cognicore/narscore/pkg/narscore/narsese"
	"github.com/cognicore/narscore/pkg/narscore/sentence"
	"github.com/cognicore/narscore/pkg/narscore/store"
	"github.com/cognicore/narscore/pkg/narscore/temporal"
	"github.com/cognicore/narscore/pkg/narscore/truth"
)

// Buffer priorities by origin.
const (
	inputPriority    = 1.0
	questionPriority = 0.5
	eventBonus       = 0.1
)

// Reasoner is the reasoning core facade. It is not safe for concurrent use.
type Reasoner struct {
	cfg    config.Config
	logger *slog.Logger
	runID  string
	cycle  int64

	calc     *truth.Calculator
	builder  *sentence.Builder
	eval     *sentence.Evaluator
	engine   inference.Engine
	memory   *buffer.Buffer[*sentence.Sentence]
	temporal *temporal.Module
	concepts *concept.Table
	journal  store.Store
}

// Options configures a Reasoner
type Options struct {
	Config config.Config
	// Journal, when set, receives a record of every processed sentence.
	Journal store.Store
	// Logger defaults to a text handler on stderr, at debug level when
	// Config.Debug is set.
	Logger *slog.Logger
}

// New creates a Reasoner with the given options
func New(opts Options) (*Reasoner, error) {
	cfg := opts.Config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		level := slog.LevelInfo
		if cfg.Debug {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	}

	runID := ulid.MustNew(ulid.Now(), ulid.Monotonic(rand.Reader, 0)).String()
	logger = logger.With(slog.String("run", runID))

	calc := truth.NewCalculator(cfg.EvidentialHorizon)
	builder := sentence.NewBuilder(&sentence.Sequence{}, cfg.MaxEvidentialBaseLength, calc.UnitEvidence())
	nal := inference.New(calc, builder, logger)

	concepts, err := concept.New(cfg.ConceptCapacity, cfg.BeliefsPerConcept)
	if err != nil {
		return nil, err
	}

	r := &Reasoner{
		cfg:     cfg,
		logger:  logger,
		runID:   runID,
		calc:    calc,
		builder: builder,
		eval: sentence.NewEvaluator(calc, sentence.EvaluatorOptions{
			DecayEvent:        cfg.ProjectionDecayEvent,
			DecayDesire:       cfg.ProjectionDecayDesire,
			PositiveThreshold: cfg.PositiveThreshold,
			NegativeThreshold: cfg.NegativeThreshold,
		}),
		engine:   nal,
		concepts: concepts,
		journal:  opts.Journal,
	}
	r.memory = buffer.New(cfg.BufferCapacity, (*sentence.Sentence).Key, r.priority)
	r.temporal = temporal.New(temporal.Config{
		Capacity:           cfg.TemporalWindow,
		AnticipationWindow: cfg.AnticipationWindow,
	}, nal, temporal.SinkFunc(r.InjectSentence), builder, logger)

	return r, nil
}

// Close releases the journal, if any.
func (r *Reasoner) Close() error {
	if r.journal == nil {
		return nil
	}
	return r.journal.Close()
}

// RunID identifies this reasoner's journal records.
func (r *Reasoner) RunID() string { return r.runID }

// Cycle returns the number of completed cycles.
func (r *Reasoner) Cycle() int64 { return r.cycle }

// Builder creates sentences stamped by this reasoner.
func (r *Reasoner) Builder() *sentence.Builder { return r.builder }

// Pending returns the number of sentences waiting in the buffer.
func (r *Reasoner) Pending() int { return r.memory.Len() }

// Inject parses a Narsese sentence at the current cycle and queues it.
func (r *Reasoner) Inject(text string) error {
	s, err := r.builder.Parse(text, r.cycle)
	if err != nil {
		return err
	}
	r.InjectSentence(s)
	return nil
}

// InjectSentence queues s for processing.
func (r *Reasoner) InjectSentence(s *sentence.Sentence) {
	item, evicted := r.memory.Insert(s)
	if evicted != nil {
		r.logger.Debug("buffer full",
			slog.String("evicted", evicted.Key),
			slog.Bool("rejected", item == nil))
	}
}

// LoadSentences injects one sentence per line. Blank lines and lines
// starting with '#' are skipped. Loading stops at the first bad line.
func (r *Reasoner) LoadSentences(text string) error {
	sc := bufio.NewScanner(strings.NewReader(text))
	line := 0
	for sc.Scan() {
		line++
		l := strings.TrimSpace(sc.Text())
		if l == "" || strings.HasPrefix(l, "#") {
			continue
		}
		if err := r.Inject(l); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
	}
	return sc.Err()
}

// GoalActivation returns the motor activation of the most desirable goal
// about op, or 0 when no goal reaches the decision threshold.
func (r *Reasoner) GoalActivation(op narsese.Term) float64 {
	var best *sentence.Sentence
	bestD := -1.0
	for _, g := range r.concepts.Goals(op) {
		if d := r.eval.Desirability(g, r.cycle); d > bestD {
			best, bestD = g, d
		}
	}
	if best == nil || bestD < r.cfg.DecisionThreshold {
		return 0
	}
	return r.eval.MotorActivation(best, r.cycle)
}

// Answer returns the belief about term with the highest expectation at the
// current cycle, or nil.
func (r *Reasoner) Answer(term narsese.Term) *sentence.Sentence {
	var best *sentence.Sentence
	bestE := -1.0
	for _, b := range r.concepts.Beliefs(term) {
		if e := r.eval.Expectation(b, r.cycle); e > bestE {
			best, bestE = b, e
		}
	}
	return best
}

// AdvanceCycle runs one reasoning step: anticipations tick, then up to
// inferences_per_cycle sentences are taken from the buffer and processed.
func (r *Reasoner) AdvanceCycle(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.temporal.UpdateAnticipations()

	for i := 0; i < r.cfg.InferencesPerCycle; i++ {
		item, ok := r.memory.Take()
		if !ok {
			break
		}
		if err := r.process(ctx, item.Payload); err != nil {
			return err
		}
	}
	r.cycle++
	return nil
}

func (r *Reasoner) process(ctx context.Context, s *sentence.Sentence) error {
	if r.journal != nil {
		if err := r.journal.Append(ctx, store.NewRecord(r.runID, r.cycle, s)); err != nil {
			return fmt.Errorf("journal stamp %d: %w", s.Stamp.ID, err)
		}
	}

	var derived []*sentence.Sentence
	if s.IsJudgment() && s.IsEvent() && s.IsInput() {
		derived = append(derived, r.observe(s)...)
	}

	if (s.IsJudgment() || s.IsGoal()) && !r.concepts.Remember(s) && !s.IsInput() {
		// nothing new
		return nil
	}

	if s.IsJudgment() {
		derived = append(derived, r.engine.InferOnePremise(s)...)
	}
	for _, p := range r.partners(s) {
		derived = append(derived, r.engine.InferTwoPremise(s, p)...)
	}

	r.logger.Debug("processed",
		slog.Int64("cycle", r.cycle),
		slog.String("sentence", s.String()),
		slog.Int("derived", len(derived)))

	for _, d := range derived {
		r.InjectSentence(d)
	}
	return nil
}

// observe handles a perceived event: it settles anticipations of the event,
// enters it into the temporal window, and anticipates the consequents of
// predictive implications it triggers. Derived events never reach it, so a
// prediction cannot confirm itself.
func (r *Reasoner) observe(s *sentence.Sentence) []*sentence.Sentence {
	if r.temporal.DoesAnticipate(s.Statement) && r.eval.IsPositive(s, r.cycle) {
		r.temporal.RemoveAnticipations(s.Statement)
	}

	previous := r.temporal.MostRecent()
	r.temporal.Insert(s)

	var out []*sentence.Sentence
	if previous != nil && previous.Stamp.ID != s.Stamp.ID {
		a, b := previous, s
		if b.Stamp.OccurrenceTime < a.Stamp.OccurrenceTime {
			a, b = b, a
		}
		out = r.engine.InferTemporalTwoPremise(a, b)
	}

	if !r.eval.IsPositive(s, r.cycle) {
		return out
	}
	for _, c := range r.concepts.Related(s.Statement) {
		stmt, ok := narsese.AsStatement(c.Term)
		if !ok || stmt.Copula() != narsese.PredictiveImplication || !narsese.Equal(stmt.Subject(), s.Statement) {
			continue
		}
		if belief := c.BestBelief(); belief != nil && r.eval.IsPositive(belief, r.cycle) {
			r.temporal.Anticipate(stmt.Predicate())
		}
	}
	return out
}

// partners selects known sentences to pair with s: the best belief of every
// related concept and, for judgments, the best goal too.
func (r *Reasoner) partners(s *sentence.Sentence) []*sentence.Sentence {
	var out []*sentence.Sentence
	for _, c := range r.concepts.Related(s.Statement) {
		if b := c.BestBelief(); b != nil && b.Stamp.ID != s.Stamp.ID {
			out = append(out, b)
		}
		if s.IsJudgment() && len(c.Goals) > 0 {
			out = append(out, c.Goals[0])
		}
		if len(out) >= r.cfg.PartnersPerCycle {
			return out[:r.cfg.PartnersPerCycle]
		}
	}
	return out
}

func (r *Reasoner) priority(s *sentence.Sentence) float64 {
	var p float64
	switch {
	case s.IsInput():
		p = inputPriority
	case s.IsQuestion() || s.IsQuest():
		p = questionPriority
	default:
		p = s.Confidence()
	}
	if s.IsEvent() {
		p += eventBonus
	}
	return p
}
