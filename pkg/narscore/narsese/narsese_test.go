package narsese

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/narscore/pkg/narscore/internalerr"
)

func TestParseAtomic(t *testing.T) {
	term, err := ParseTerm("bird")
	require.NoError(t, err)

	a, ok := term.(*Atomic)
	require.True(t, ok)
	assert.Equal(t, "bird", a.Name())
	assert.False(t, a.IsOp())
	assert.True(t, NewAtomic("^move").IsOp())
}

func TestParseStatement(t *testing.T) {
	term, err := ParseTerm("(robin --> bird)")
	require.NoError(t, err)

	s, ok := AsStatement(term)
	require.True(t, ok)
	assert.Equal(t, Inheritance, s.Copula())
	assert.Equal(t, "robin", s.Subject().String())
	assert.Equal(t, "bird", s.Predicate().String())
	assert.Equal(t, "(robin-->bird)", s.String())
	assert.True(t, s.IsFirstOrder())
}

func TestParseEveryCopula(t *testing.T) {
	for _, c := range []Copula{
		Inheritance, Similarity, Implication, Equivalence, Instance, Property,
		InstanceProperty, PredictiveImplication, RetrospectiveImplication,
		ConcurrentImplication, PredictiveEquivalence, ConcurrentEquivalence,
	} {
		text := "(a" + c.String() + "b)"
		term, err := ParseTerm(text)
		require.NoError(t, err, text)
		s, ok := AsStatement(term)
		require.True(t, ok, text)
		assert.Equal(t, c, s.Copula(), text)
		assert.Equal(t, text, term.String())
	}
}

func TestParseHigherOrder(t *testing.T) {
	term, err := ParseTerm("((a-->b) =/> (c-->d))")
	require.NoError(t, err)

	s, ok := AsStatement(term)
	require.True(t, ok)
	assert.Equal(t, PredictiveImplication, s.Copula())
	assert.False(t, s.IsFirstOrder())
	assert.True(t, IsHigherOrder(term))
	assert.Equal(t, "(a-->b)", s.Subject().String())
}

func TestParseCompounds(t *testing.T) {
	cases := []struct {
		in   string
		conn Connector
		n    int
	}{
		{"(&&,(a-->b),(c-->d))", Conjunction, 2},
		{"(&/,(a-->b),(SELF-->^go),(c-->d))", SequentialConjunction, 3},
		{"(--,(a-->b))", Negation, 1},
		{"(*,a,b)", Product, 2},
		{"{a,b}", ExtensionalSet, 2},
		{"[red]", IntensionalSet, 1},
		{"(-,a,b)", ExtensionalDifference, 2},
	}
	for _, tc := range cases {
		term, err := ParseTerm(tc.in)
		require.NoError(t, err, tc.in)
		c, ok := AsCompound(term)
		require.True(t, ok, tc.in)
		assert.Equal(t, tc.conn, c.Connector(), tc.in)
		assert.Equal(t, tc.n, c.Len(), tc.in)
	}
}

func TestParseCompoundInsideStatement(t *testing.T) {
	term, err := ParseTerm("((&&,(a-->b),(c-->d)) ==> (e-->f))")
	require.NoError(t, err)

	s, _ := AsStatement(term)
	assert.True(t, s.Subject().Connector().IsConjunction())
	assert.Equal(t, Implication, s.Copula())

	term, err = ParseTerm("({tweety}-->(|,bird,flyer))")
	require.NoError(t, err)
	s, _ = AsStatement(term)
	assert.Equal(t, ExtensionalSet, s.Subject().Connector())
	assert.Equal(t, IntensionalIntersection, s.Predicate().Connector())
}

func TestParsePropertyCopulaNested(t *testing.T) {
	term, err := ParseTerm("((a--]b)==>(c-->d))")
	require.NoError(t, err)
	s, _ := AsStatement(term)
	inner, ok := AsStatement(s.Subject())
	require.True(t, ok)
	assert.Equal(t, Property, inner.Copula())
}

func TestParseRejectsMalformed(t *testing.T) {
	for _, in := range []string{
		"",
		"(a-->b",
		"(a b)",
		"(a-->)",
		"bad-name",
		"(&&,a)",
		"(--,a,b)",
		"{a,b",
		"(&&,,a)",
	} {
		_, err := ParseTerm(in)
		require.Error(t, err, in)
		assert.True(t, errors.Is(err, internalerr.ErrInvalidTerm), in)
	}
}

func TestOrderInvariantNormalisation(t *testing.T) {
	a := MustParseTerm("(&&,(c-->d),(a-->b))")
	b := MustParseTerm("(&&,(a-->b),(c-->d))")
	assert.True(t, Equal(a, b))
	assert.Equal(t, a.String(), b.String())

	par1 := MustParseTerm("(&|,(c-->d),(a-->b))")
	par2 := NewCompound(ParallelConjunction, MustParseTerm("(a-->b)"), MustParseTerm("(c-->d)"))
	assert.True(t, Equal(par1, par2))
	assert.Equal(t, "(&|,(a-->b),(c-->d))", par1.String())

	// order matters for sequential conjunction and product
	x := MustParseTerm("(&/,(c-->d),(a-->b))")
	y := MustParseTerm("(&/,(a-->b),(c-->d))")
	assert.False(t, Equal(x, y))

	p := MustParseTerm("(*,a,b)")
	q := MustParseTerm("(*,b,a)")
	assert.False(t, Equal(p, q))
}

func TestStructuralEquality(t *testing.T) {
	a := NewStatement(NewAtomic("a"), Inheritance, NewAtomic("b"))
	b := MustParseTerm("(a-->b)")
	assert.True(t, Equal(a, b))
	assert.False(t, Equal(a, MustParseTerm("(a<->b)")))
	assert.False(t, Equal(a, NewAtomic("a")))
	assert.True(t, Equal(nil, nil))
	assert.False(t, Equal(a, nil))
}

func TestRenderRoundTrip(t *testing.T) {
	for _, in := range []string{
		"(a-->b)",
		"((a-->b)=/>(c-->d))",
		"((&/,(a-->b),(SELF-->^eat))=/>(c-->d))",
		"(--,(a-->b))",
		"({x,y}-->[z])",
		`((a-->b)=\>(c-->d))`,
	} {
		term := MustParseTerm(in)
		again, err := ParseTerm(term.String())
		require.NoError(t, err, in)
		assert.True(t, Equal(term, again), in)
	}
}

func TestClassificationTables(t *testing.T) {
	assert.True(t, Similarity.IsSymmetric())
	assert.True(t, PredictiveEquivalence.IsSymmetric())
	assert.False(t, Inheritance.IsSymmetric())

	assert.True(t, PredictiveImplication.IsTemporal())
	assert.False(t, Implication.IsTemporal())

	assert.True(t, RetrospectiveImplication.IsImplication())
	assert.False(t, ConcurrentImplication.IsImplication())

	assert.True(t, InstanceProperty.IsFirstOrder())
	assert.False(t, Equivalence.IsFirstOrder())

	assert.True(t, ParallelConjunction.IsConjunction())
	assert.False(t, Disjunction.IsConjunction())
	assert.True(t, Negation.IsOrderInvariant())
	assert.True(t, ParallelConjunction.IsOrderInvariant())
	assert.False(t, SequentialConjunction.IsOrderInvariant())
	assert.False(t, Product.IsOrderInvariant())
	assert.False(t, Conjunction.IsFirstOrder())
	assert.True(t, ExtensionalDifference.IsFirstOrder())
}

func TestTokenTablesAreBidirectional(t *testing.T) {
	for i := range copulaTokens {
		c, ok := ParseCopula(Copula(i).String())
		require.True(t, ok)
		assert.Equal(t, Copula(i), c)
	}
	for i := 1; i < len(connectorTokens); i++ {
		c, ok := ParseConnector(Connector(i).String())
		require.True(t, ok)
		assert.Equal(t, Connector(i), c)
	}
	for i := range punctuationTokens {
		p, ok := ParsePunctuation(Punctuation(i).String())
		require.True(t, ok)
		assert.Equal(t, Punctuation(i), p)
	}
	assert.Panics(t, func() { _ = Copula(99).String() })
}

func TestOperationStatements(t *testing.T) {
	assert.True(t, MustParseTerm("(SELF-->^move)").IsOp())
	assert.False(t, MustParseTerm("(SELF-->food)").IsOp())
	assert.False(t, MustParseTerm("(&/,a,^go)").IsOp())
}

func TestTermHelpers(t *testing.T) {
	conj := MustParseTerm("(&&,a,b,c)")
	parts := Components(conj)
	assert.Len(t, parts, 3)
	assert.Len(t, Components(NewAtomic("a")), 1)

	rest := Without(parts, NewAtomic("b"))
	assert.Len(t, rest, 2)
	assert.False(t, Contains(rest, NewAtomic("b")))

	assert.Equal(t, "b", Join(Conjunction, []Term{NewAtomic("b")}).String())
	assert.Nil(t, Join(Conjunction, nil))

	neg := Negate(NewAtomic("a"))
	assert.Equal(t, "(--,a)", neg.String())
	assert.Equal(t, "a", Negate(neg).String())
}
