// Package driver runs the LL(1) and LR(0)/LR(1) push-down parsers over a
// table built by package table, producing a parsetree.Tree.
package driver

import "github.com/kallisti-dev/grammardeck/grammar"

// Token is one element of the finite input sequence a driver consumes. Sym
// must be a terminal symbol of the grammar the driver's table was built
// over; Value is an opaque payload (e.g. a lexeme or literal) carried into
// the resulting parsetree.Tree leaf untouched.
type Token struct {
	Sym   grammar.Symbol
	Value any
}
