package driver

import (
	"fmt"

	"github.com/kallisti-dev/grammardeck/grammar"
	"github.com/kallisti-dev/grammardeck/table"
)

// ParseError is a runtime parse failure: the table had no action (LR) or no
// predicted rule (LL) for the current (state-or-nonterminal, lookahead)
// pair, or input remained after the driver halted.
type ParseError struct {
	Pos    int
	Got    grammar.SymbolID // grammar.EndMarker if the input was exhausted
	G      *grammar.Grammar
	Detail string
}

func (e *ParseError) Error() string {
	tok := "end of input"
	if e.Got != grammar.EndMarker {
		tok = fmt.Sprintf("%q", e.G.SymbolByID(e.Got).Name())
	}
	return fmt.Sprintf("parse error at position %d, token %s: %s", e.Pos, tok, e.Detail)
}

// ConflictError is raised when a driver lands on a table cell that table
// construction already flagged as a Conflict: an LR driver hitting a
// multi-action Action cell, or an LL driver hitting a multi-rule Rules
// cell. Conflict.State holds an LR state index for the former and a
// nonterminal's SymbolID (cast to int) for the latter, per table.Conflict's
// documented overload.
type ConflictError struct {
	Conflict table.Conflict
	Pos      int
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("parse halted by unresolved conflict at input position %d: %s", e.Pos, e.Conflict)
}
