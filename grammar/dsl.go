package grammar

import (
	"io"
	"strings"
)

// ParseDSL builds a Grammar from the textual convenience form described in
// spec §6: each statement is "LHS -> S1 S2 ... ;". The first statement
// declares the start production and must have exactly one symbol on its
// right-hand side; its LHS becomes the augmented start symbol. Symbols are
// auto-declared by first use, in the order they are first seen. The result
// is semantically equivalent to building the same grammar with Builder.
func ParseDSL(r io.Reader) (*Grammar, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseDSLString(string(buf))
}

// ParseDSLString is ParseDSL over an in-memory string.
func ParseDSLString(src string) (*Grammar, error) {
	stmts := splitStatements(src)

	b := NewBuilder()
	declared := map[string]bool{}
	ensure := func(name string) {
		if !declared[name] {
			declared[name] = true
			b.Symbol(name)
		}
	}

	for _, stmt := range stmts {
		lhs, rhs, err := parseStatement(stmt)
		if err != nil {
			return nil, err
		}
		ensure(lhs)
		for _, s := range rhs {
			ensure(s)
		}
		b.Rule(lhs, rhs...)
	}

	return b.Build()
}

// splitStatements splits src on ';' into trimmed, non-empty statements.
func splitStatements(src string) []string {
	raw := strings.Split(src, ";")
	var out []string
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}

// parseStatement parses "LHS -> S1 S2 ..." (RHS may be empty for an
// ε-rule).
func parseStatement(stmt string) (lhs string, rhs []string, err error) {
	parts := strings.SplitN(stmt, "->", 2)
	if len(parts) != 2 {
		return "", nil, &GrammarError{Kind: MalformedStatement, Statement: stmt}
	}
	lhs = strings.TrimSpace(parts[0])
	if lhs == "" {
		return "", nil, &GrammarError{Kind: MalformedStatement, Statement: stmt}
	}
	rhs = strings.Fields(parts[1])
	return lhs, rhs, nil
}
