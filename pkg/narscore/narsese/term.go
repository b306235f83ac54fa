package narsese

import (
	"sort"
	"strings"
)

// Term is an immutable Narsese term: an atomic name, a statement or a compound.
//
// String returns the canonical rendering, which doubles as the map key for
// a term. Two terms are equal iff Equal reports so, and equal terms always
// render identically because order-invariant compounds are normalised when
// built.
type Term interface {
	String() string
	// Connector is NoConnector for atomics and statements.
	Connector() Connector
	// IsOp reports whether the term names (or is applied to) an operation.
	IsOp() bool
	term()
}

// Atomic is a named term.
type Atomic struct {
	name string
}

// NewAtomic creates an atomic term. The name is not validated; use ParseTerm
// for untrusted input.
func NewAtomic(name string) *Atomic {
	return &Atomic{name: name}
}

func (a *Atomic) Name() string         { return a.name }
func (a *Atomic) String() string       { return a.name }
func (a *Atomic) Connector() Connector { return NoConnector }
func (a *Atomic) IsOp() bool           { return strings.HasPrefix(a.name, OperationMark) }
func (a *Atomic) term()                {}

// Statement is a subject-copula-predicate term.
type Statement struct {
	subject   Term
	copula    Copula
	predicate Term
	str       string
}

// NewStatement creates a statement term.
func NewStatement(subject Term, copula Copula, predicate Term) *Statement {
	return &Statement{
		subject:   subject,
		copula:    copula,
		predicate: predicate,
		str:       StatementStart + subject.String() + copula.String() + predicate.String() + StatementEnd,
	}
}

func (s *Statement) Subject() Term        { return s.subject }
func (s *Statement) Copula() Copula       { return s.copula }
func (s *Statement) Predicate() Term      { return s.predicate }
func (s *Statement) String() string       { return s.str }
func (s *Statement) Connector() Connector { return NoConnector }
func (s *Statement) term()                {}

// IsFirstOrder reports whether the statement's copula is first order.
func (s *Statement) IsFirstOrder() bool { return s.copula.IsFirstOrder() }

// IsOp is true for operation statements such as (SELF-->^move).
func (s *Statement) IsOp() bool {
	return isOpAtom(s.subject) || isOpAtom(s.predicate)
}

func isOpAtom(t Term) bool {
	a, ok := t.(*Atomic)
	return ok && a.IsOp()
}

// Compound joins subterms with a connector.
type Compound struct {
	connector Connector
	subterms  []Term
	str       string
}

// NewCompound creates a compound term. Subterms of order-invariant
// connectors are sorted by their canonical rendering.
func NewCompound(connector Connector, subterms ...Term) *Compound {
	subs := make([]Term, len(subterms))
	copy(subs, subterms)
	if connector.IsOrderInvariant() {
		sort.SliceStable(subs, func(i, j int) bool {
			return subs[i].String() < subs[j].String()
		})
	}

	parts := make([]string, len(subs))
	for i, t := range subs {
		parts[i] = t.String()
	}

	var b strings.Builder
	if end, ok := setEnd[connector]; ok {
		b.WriteString(connector.String())
		b.WriteString(strings.Join(parts, TermDivider))
		b.WriteString(end)
	} else {
		b.WriteString(StatementStart)
		b.WriteString(connector.String())
		for _, p := range parts {
			b.WriteString(TermDivider)
			b.WriteString(p)
		}
		b.WriteString(StatementEnd)
	}

	return &Compound{connector: connector, subterms: subs, str: b.String()}
}

// Subterms returns a copy of the compound's subterms.
func (c *Compound) Subterms() []Term {
	out := make([]Term, len(c.subterms))
	copy(out, c.subterms)
	return out
}

// Len returns the number of subterms.
func (c *Compound) Len() int { return len(c.subterms) }

// At returns the i-th subterm.
func (c *Compound) At(i int) Term { return c.subterms[i] }

func (c *Compound) String() string       { return c.str }
func (c *Compound) Connector() Connector { return c.connector }
func (c *Compound) IsOp() bool           { return false }
func (c *Compound) term()                {}

// Equal is recursive structural equality.
func Equal(a, b Term) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case *Atomic:
		y, ok := b.(*Atomic)
		return ok && x.name == y.name
	case *Statement:
		y, ok := b.(*Statement)
		return ok && x.copula == y.copula && Equal(x.subject, y.subject) && Equal(x.predicate, y.predicate)
	case *Compound:
		y, ok := b.(*Compound)
		if !ok || x.connector != y.connector || len(x.subterms) != len(y.subterms) {
			return false
		}
		for i := range x.subterms {
			if !Equal(x.subterms[i], y.subterms[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// AsStatement returns t as a statement, if it is one.
func AsStatement(t Term) (*Statement, bool) {
	s, ok := t.(*Statement)
	return s, ok
}

// AsCompound returns t as a compound, if it is one.
func AsCompound(t Term) (*Compound, bool) {
	c, ok := t.(*Compound)
	return c, ok
}

// IsHigherOrder reports whether t is a statement with a higher-order copula.
func IsHigherOrder(t Term) bool {
	s, ok := t.(*Statement)
	return ok && !s.IsFirstOrder()
}

// Components returns the conjuncts of a conjunction, or t itself.
func Components(t Term) []Term {
	if c, ok := t.(*Compound); ok && c.connector.IsConjunction() {
		return c.Subterms()
	}
	return []Term{t}
}

// Contains reports whether needle is among terms.
func Contains(terms []Term, needle Term) bool {
	for _, t := range terms {
		if Equal(t, needle) {
			return true
		}
	}
	return false
}

// Without returns terms minus every member equal to one of remove.
func Without(terms []Term, remove ...Term) []Term {
	out := make([]Term, 0, len(terms))
	for _, t := range terms {
		if !Contains(remove, t) {
			out = append(out, t)
		}
	}
	return out
}

// Negate wraps t in a negation, unwrapping double negation.
func Negate(t Term) Term {
	if c, ok := t.(*Compound); ok && c.connector == Negation && len(c.subterms) == 1 {
		return c.subterms[0]
	}
	return NewCompound(Negation, t)
}

// Join rebuilds a compound of the given connector from terms; a single term
// is returned as-is and an empty list yields nil.
func Join(connector Connector, terms []Term) Term {
	switch len(terms) {
	case 0:
		return nil
	case 1:
		return terms[0]
	}
	return NewCompound(connector, terms...)
}
