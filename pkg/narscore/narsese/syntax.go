// Package narsese defines the term model and the textual grammar of Narsese.
//
// Tokens are kept in static tables built once at init, so every enum value
// maps to exactly one literal and every literal back to its enum value.
package narsese

import "fmt"

// Structural markers used by the sentence grammar.
const (
	StatementStart = "("
	StatementEnd   = ")"
	TruthMarker    = "%"
	ValueSeparator = ";"
	TermDivider    = ","
	ImageHolder    = "_"
	OperationMark  = "^"
)

// Copula links the subject and predicate of a statement.
type Copula int

const (
	Inheritance Copula = iota
	Similarity
	Implication
	Equivalence
	Instance
	Property
	InstanceProperty
	PredictiveImplication
	RetrospectiveImplication
	ConcurrentImplication
	PredictiveEquivalence
	ConcurrentEquivalence
)

var copulaTokens = [...]string{
	Inheritance:              "-->",
	Similarity:               "<->",
	Implication:              "==>",
	Equivalence:              "<=>",
	Instance:                 ":--",
	Property:                 "--]",
	InstanceProperty:         ":-]",
	PredictiveImplication:    "=/>",
	RetrospectiveImplication: `=\>`,
	ConcurrentImplication:    "=|>",
	PredictiveEquivalence:    "</>",
	ConcurrentEquivalence:    "<|>",
}

// copulaWidth is the length of every copula token.
const copulaWidth = 3

var copulaByToken = reverse(copulaTokens[:], func(i int) Copula { return Copula(i) })

// ParseCopula maps a literal token to its copula.
func ParseCopula(tok string) (Copula, bool) {
	c, ok := copulaByToken[tok]
	return c, ok
}

func (c Copula) String() string {
	if int(c) < 0 || int(c) >= len(copulaTokens) {
		panic(fmt.Sprintf("narsese: invalid copula %d", int(c)))
	}
	return copulaTokens[c]
}

// IsSymmetric reports whether subject and predicate may be swapped freely.
func (c Copula) IsSymmetric() bool {
	switch c {
	case Similarity, Equivalence, PredictiveEquivalence, ConcurrentEquivalence:
		return true
	}
	return false
}

// IsTemporal reports whether the copula carries a temporal order.
func (c Copula) IsTemporal() bool {
	switch c {
	case PredictiveImplication, RetrospectiveImplication, ConcurrentImplication,
		PredictiveEquivalence, ConcurrentEquivalence:
		return true
	}
	return false
}

// IsFirstOrder reports whether the copula relates terms rather than statements.
func (c Copula) IsFirstOrder() bool {
	switch c {
	case Inheritance, Similarity, Instance, Property, InstanceProperty:
		return true
	}
	return false
}

// IsImplication reports whether the copula is one of the implication forms.
func (c Copula) IsImplication() bool {
	switch c {
	case Implication, PredictiveImplication, RetrospectiveImplication:
		return true
	}
	return false
}

// Connector joins the subterms of a compound term.
type Connector int

const (
	NoConnector Connector = iota
	ExtensionalSet
	IntensionalSet
	ExtensionalIntersection
	IntensionalIntersection
	ExtensionalDifference
	IntensionalDifference
	Product
	ExtensionalImage
	IntensionalImage
	Negation
	Conjunction
	Disjunction
	SequentialConjunction
	ParallelConjunction
)

var connectorTokens = [...]string{
	NoConnector:             "",
	ExtensionalSet:          "{",
	IntensionalSet:          "[",
	ExtensionalIntersection: "&",
	IntensionalIntersection: "|",
	ExtensionalDifference:   "-",
	IntensionalDifference:   "~",
	Product:                 "*",
	ExtensionalImage:        "/",
	IntensionalImage:        `\`,
	Negation:                "--",
	Conjunction:             "&&",
	Disjunction:             "||",
	SequentialConjunction:   "&/",
	ParallelConjunction:     "&|",
}

var connectorByToken = reverse(connectorTokens[1:], func(i int) Connector { return Connector(i + 1) })

// set brackets close with these tokens.
var setEnd = map[Connector]string{
	ExtensionalSet: "}",
	IntensionalSet: "]",
}

// ParseConnector maps a literal token to its connector.
func ParseConnector(tok string) (Connector, bool) {
	c, ok := connectorByToken[tok]
	return c, ok
}

func (c Connector) String() string {
	if int(c) < 0 || int(c) >= len(connectorTokens) {
		panic(fmt.Sprintf("narsese: invalid connector %d", int(c)))
	}
	return connectorTokens[c]
}

// IsFirstOrder is false for statement connectors (negation, conjunctions, disjunction).
func (c Connector) IsFirstOrder() bool {
	switch c {
	case Negation, Conjunction, Disjunction, SequentialConjunction, ParallelConjunction:
		return false
	}
	return true
}

// IsOrderInvariant reports whether subterm order is irrelevant to identity.
func (c Connector) IsOrderInvariant() bool {
	switch c {
	case ExtensionalIntersection, IntensionalIntersection, ExtensionalSet, IntensionalSet,
		Negation, Conjunction, Disjunction, ParallelConjunction:
		return true
	}
	return false
}

// IsConjunction covers the plain, sequential and parallel conjunctions.
func (c Connector) IsConjunction() bool {
	return c == Conjunction || c == SequentialConjunction || c == ParallelConjunction
}

// IsSet reports whether the connector is a set bracket.
func (c Connector) IsSet() bool {
	return c == ExtensionalSet || c == IntensionalSet
}

// Punctuation ends a sentence and selects its kind.
type Punctuation int

const (
	Judgment Punctuation = iota
	Question
	Goal
	Quest
)

var punctuationTokens = [...]string{
	Judgment: ".",
	Question: "?",
	Goal:     "!",
	Quest:    "`",
}

var punctuationByToken = reverse(punctuationTokens[:], func(i int) Punctuation { return Punctuation(i) })

// ParsePunctuation maps a literal token to its punctuation.
func ParsePunctuation(tok string) (Punctuation, bool) {
	p, ok := punctuationByToken[tok]
	return p, ok
}

func (p Punctuation) String() string {
	if int(p) < 0 || int(p) >= len(punctuationTokens) {
		panic(fmt.Sprintf("narsese: invalid punctuation %d", int(p)))
	}
	return punctuationTokens[p]
}

// Tense of a sentence relative to a cycle.
type Tense int

const (
	Eternal Tense = iota
	Future
	Past
	Present
)

var tenseTokens = [...]string{
	Eternal: "",
	Future:  ":/:",
	Past:    `:\:`,
	Present: ":|:",
}

// Tenses lists the markers scanned for when parsing, in lookup order.
var Tenses = []Tense{Future, Past, Present}

func (t Tense) String() string {
	if int(t) < 0 || int(t) >= len(tenseTokens) {
		panic(fmt.Sprintf("narsese: invalid tense %d", int(t)))
	}
	return tenseTokens[t]
}

func reverse[E comparable](tokens []string, at func(int) E) map[string]E {
	m := make(map[string]E, len(tokens))
	for i, tok := range tokens {
		if _, dup := m[tok]; dup {
			panic("narsese: duplicate token " + tok)
		}
		m[tok] = at(i)
	}
	return m
}

// IsValidName reports whether s only uses the term character set:
// ASCII letters, digits, underscore and caret.
func IsValidName(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_', c == '^':
		default:
			return false
		}
	}
	return true
}
