package grammar

import "fmt"

// ErrorKind classifies a GrammarError.
type ErrorKind int

const (
	// DuplicateSymbol means a symbol name was declared more than once.
	DuplicateSymbol ErrorKind = iota
	// UnknownSymbol means a rule referenced a symbol name that was never
	// declared.
	UnknownSymbol
	// MalformedStartRule means the first rule given to the builder does not
	// have a right-hand side of length exactly one.
	MalformedStartRule
	// NoRules means Build was called on a builder with no rules at all, so
	// there is no start rule to augment with.
	NoRules
	// MalformedStatement means a DSL statement could not be parsed into an
	// LHS and right-hand side.
	MalformedStatement
)

// GrammarError is a fatal, construction-time error returned by Builder.Build
// or ParseDSL. It is never returned once a Grammar exists; analysis and
// table construction operate on an already-valid Grammar and report their
// own problems (Conflict, ParseError, ConflictError) instead.
type GrammarError struct {
	Kind ErrorKind
	Name string
	// Statement holds the offending source line for MalformedStatement.
	Statement string
}

func (e *GrammarError) Error() string {
	switch e.Kind {
	case DuplicateSymbol:
		return fmt.Sprintf("symbol %q declared twice", e.Name)
	case UnknownSymbol:
		return fmt.Sprintf("reference to undeclared symbol %q", e.Name)
	case MalformedStartRule:
		return "start rule must have exactly one symbol on its right-hand side"
	case NoRules:
		return "grammar has no rules; a start rule is required"
	case MalformedStatement:
		return fmt.Sprintf("dsl: statement %q is not of the form \"LHS -> S1 S2 ...\"", e.Statement)
	default:
		return "invalid grammar"
	}
}
