package inference

import "github.com/cognicore/narscore/pkg/narscore/sentence"

// Engine derives new sentences from one or two premises.
// This interface allows swapping rule sets without touching the cycle driver.
type Engine interface {
	// InferTwoPremise applies the first matching two-premise rule group.
	// Premises that may not interact yield nothing. A goal paired with a
	// judgment is routed to InferGoalJudgment.
	InferTwoPremise(j1, j2 *sentence.Sentence) []*sentence.Sentence

	// InferGoalJudgment derives subgoals from a goal and a belief.
	InferGoalJudgment(goal, judgment *sentence.Sentence) []*sentence.Sentence

	// InferTemporalTwoPremise composes two events into a conjunction and a
	// predictive implication.
	InferTemporalTwoPremise(a, b *sentence.Sentence) []*sentence.Sentence

	// InferOnePremise applies immediate rules to a single sentence.
	InferOnePremise(j *sentence.Sentence) []*sentence.Sentence
}

// Rule names recorded in Stamp.DerivedBy.
const (
	RuleRevision                          = "revision"
	RuleDeduction                         = "deduction"
	RuleExemplification                   = "exemplification"
	RuleInduction                         = "induction"
	RuleAbduction                         = "abduction"
	RuleComparison                        = "comparison"
	RuleAnalogy                           = "analogy"
	RuleResemblance                       = "resemblance"
	RuleIntensionalIntersection           = "intensional intersection"
	RuleExtensionalIntersection           = "extensional intersection"
	RuleExtensionalDifference             = "extensional difference"
	RuleIntensionalDifference             = "intensional difference"
	RuleConditionalJudgmentDeduction      = "conditional judgment deduction"
	RuleConditionalDeduction              = "conditional deduction"
	RuleConditionalAbduction              = "conditional abduction"
	RuleConditionalConjunctionalDeduction = "conditional conjunctional deduction"
	RuleConditionalConjunctionalAbduction = "conditional conjunctional abduction"
	RuleConditionalGoalDeduction          = "conditional goal deduction"
	RuleConditionalGoalInduction          = "conditional goal induction"
	RuleSimplifyConjunctiveGoal           = "simplify conjunctive goal"
	RuleSimplifyNegatedConjunctiveGoal    = "simplify negated conjunctive goal"
	RuleTemporalIntersection              = "temporal intersection"
	RuleTemporalInduction                 = "temporal induction"
	RuleContraposition                    = "contraposition"
)
