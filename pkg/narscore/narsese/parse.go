package narsese

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/cognicore/narscore/pkg/narscore/internalerr"
)

// ParseTerm parses a term from its textual form.
//
// Accepted forms:
//
//	name                     atomic
//	(S copula P)             statement, e.g. (a-->b) or ((a-->b)=/>(c-->d))
//	(connector,t1,t2,...)    compound, e.g. (&&,a,b) or (--,(a-->b))
//	{t1,t2} [t1,t2]          extensional / intensional sets
//
// Whitespace is ignored.
func ParseTerm(text string) (Term, error) {
	s := stripSpace(text)
	if s == "" {
		return nil, fmt.Errorf("%w: empty term", internalerr.ErrInvalidTerm)
	}
	return parseTerm(s)
}

// MustParseTerm is ParseTerm for literals known to be valid.
func MustParseTerm(text string) Term {
	t, err := ParseTerm(text)
	if err != nil {
		panic(err)
	}
	return t
}

func parseTerm(s string) (Term, error) {
	if s == "" {
		return nil, fmt.Errorf("%w: missing term", internalerr.ErrInvalidTerm)
	}
	first := s[:1]

	if conn, ok := ParseConnector(first); ok && conn.IsSet() {
		end := setEnd[conn]
		if !strings.HasSuffix(s, end) || matchingClose(s, 0) != len(s)-1 {
			return nil, fmt.Errorf("%w: unbalanced set %q", internalerr.ErrInvalidTerm, s)
		}
		subs, err := parseList(s[1 : len(s)-1])
		if err != nil {
			return nil, err
		}
		return NewCompound(conn, subs...), nil
	}

	if first == StatementStart {
		if matchingClose(s, 0) != len(s)-1 {
			return nil, fmt.Errorf("%w: unbalanced parentheses in %q", internalerr.ErrInvalidTerm, s)
		}
		return parseParenthesized(s[1 : len(s)-1])
	}

	if !IsValidName(s) {
		return nil, fmt.Errorf("%w: invalid atomic name %q", internalerr.ErrInvalidTerm, s)
	}
	return NewAtomic(s), nil
}

// parseParenthesized handles the inside of (...): a prefix compound when the
// first top-level element is a connector, a statement otherwise.
func parseParenthesized(inner string) (Term, error) {
	if inner == "" {
		return nil, fmt.Errorf("%w: empty parentheses", internalerr.ErrInvalidTerm)
	}

	if idx := topLevelIndex(inner, TermDivider); idx > 0 {
		if conn, ok := ParseConnector(inner[:idx]); ok && !conn.IsSet() {
			subs, err := parseList(inner[idx+1:])
			if err != nil {
				return nil, err
			}
			if conn == Negation && len(subs) != 1 {
				return nil, fmt.Errorf("%w: negation takes one term, got %d", internalerr.ErrInvalidTerm, len(subs))
			}
			if conn != Negation && len(subs) < 2 {
				return nil, fmt.Errorf("%w: connector %s needs at least two terms", internalerr.ErrInvalidTerm, conn)
			}
			return NewCompound(conn, subs...), nil
		}
	}

	copula, idx, ok := topLevelCopula(inner)
	if !ok {
		return nil, fmt.Errorf("%w: no copula in %q", internalerr.ErrInvalidTerm, inner)
	}
	subject, err := parseTerm(inner[:idx])
	if err != nil {
		return nil, fmt.Errorf("subject: %w", err)
	}
	predicate, err := parseTerm(inner[idx+copulaWidth:])
	if err != nil {
		return nil, fmt.Errorf("predicate: %w", err)
	}
	return NewStatement(subject, copula, predicate), nil
}

func parseList(s string) ([]Term, error) {
	if s == "" {
		return nil, fmt.Errorf("%w: empty term list", internalerr.ErrInvalidTerm)
	}
	var out []Term
	for _, part := range splitTopLevel(s, TermDivider) {
		if part == "" {
			return nil, fmt.Errorf("%w: empty element in %q", internalerr.ErrInvalidTerm, s)
		}
		t, err := parseTerm(part)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// topLevelCopula finds the first copula outside any bracket.
func topLevelCopula(s string) (Copula, int, bool) {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '{', '[':
			depth++
			continue
		case ')', '}', ']':
			if !isCopulaBracket(s, i) {
				depth--
				continue
			}
		}
		if depth == 0 && i+copulaWidth <= len(s) {
			if c, ok := ParseCopula(s[i : i+copulaWidth]); ok {
				return c, i, true
			}
		}
	}
	return 0, -1, false
}

func topLevelIndex(s, sep string) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '{', '[':
			depth++
		case ')', '}', ']':
			if !isCopulaBracket(s, i) {
				depth--
			}
		default:
			if depth == 0 && strings.HasPrefix(s[i:], sep) {
				return i
			}
		}
	}
	return -1
}

func splitTopLevel(s, sep string) []string {
	var parts []string
	for {
		idx := topLevelIndex(s, sep)
		if idx < 0 {
			return append(parts, s)
		}
		parts = append(parts, s[:idx])
		s = s[idx+len(sep):]
	}
}

// matchingClose returns the index of the bracket closing the one at open,
// or -1 when unbalanced.
func matchingClose(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '(', '{', '[':
			depth++
		case ']':
			if isCopulaBracket(s, i) {
				continue
			}
			depth--
		case ')', '}':
			depth--
		default:
			continue
		}
		if depth == 0 {
			return i
		}
	}
	return -1
}

// isCopulaBracket reports whether the ']' at i ends a "--]" or ":-]" copula.
func isCopulaBracket(s string, i int) bool {
	if s[i] != ']' || i < copulaWidth-1 {
		return false
	}
	tok := s[i-copulaWidth+1 : i+1]
	return tok == Property.String() || tok == InstanceProperty.String()
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
