// Package table builds LL(1), LR(0), and LR(1) parse tables over a
// grammar.Grammar and its grammar.Analysis.
package table

import (
	"fmt"

	"github.com/kallisti-dev/grammardeck/grammar"
)

// ActionKind classifies an Action.
type ActionKind int

const (
	// Shift reads one token of input and moves to State.
	Shift ActionKind = iota
	// Reduce applies Rule, popping len(Rule.RHS()) frames and pushing
	// Rule.LHS().
	Reduce
	// Halt accepts the input; it occupies the end-of-input column of
	// whichever state holds the finished augmented start item.
	Halt
)

func (k ActionKind) String() string {
	switch k {
	case Shift:
		return "shift"
	case Reduce:
		return "reduce"
	case Halt:
		return "halt"
	default:
		return "unknown"
	}
}

// Action is one cell entry of an LR(0)/LR(1) action table: Shift(state),
// Reduce(rule), or Halt. A table cell holds an ordered list of actions;
// cells with more than one action are conflicts.
type Action struct {
	Kind  ActionKind
	State int          // valid when Kind == Shift
	Rule  grammar.Rule // valid when Kind == Reduce
}

// Equal returns whether two actions are the same kind with the same
// payload.
func (a Action) Equal(o Action) bool {
	if a.Kind != o.Kind {
		return false
	}
	switch a.Kind {
	case Shift:
		return a.State == o.State
	case Reduce:
		return a.Rule.Equal(o.Rule)
	default:
		return true
	}
}

// String renders the action for debug output.
func (a Action) String() string {
	switch a.Kind {
	case Shift:
		return fmt.Sprintf("shift %d", a.State)
	case Reduce:
		return fmt.Sprintf("reduce %s", a.Rule.String())
	case Halt:
		return "halt"
	default:
		return "?"
	}
}

// Conflict describes a table cell whose action list holds more than one
// entry. Conflicts are data, reported by Conflicts(); they are never
// errors raised during table construction. A ConflictError (package
// driver) is raised only if a driver actually lands on a conflicted cell
// at run time.
// State is an LR state index for LR0Table/LR1Table conflicts, or a
// nonterminal's SymbolID (cast to int) for LL1Table conflicts - LL(1) has no
// notion of state, only a (nonterminal, lookahead) cell.
type Conflict struct {
	G       *grammar.Grammar
	State   int
	Symbol  grammar.SymbolID // grammar.EndMarker for the end-of-input column
	Actions []Action
}

// IsEndOfInput returns whether the conflict is on the end-of-input column.
func (c Conflict) IsEndOfInput() bool { return c.Symbol == grammar.EndMarker }

// SymbolName renders the conflicted column for diagnostics: "$" for
// end-of-input, else the symbol's declared name.
func (c Conflict) SymbolName() string {
	if c.IsEndOfInput() {
		return "$"
	}
	return c.G.SymbolByID(c.Symbol).Name()
}

func (c Conflict) String() string {
	return fmt.Sprintf("conflict at state %d on %q: %v", c.State, c.SymbolName(), c.Actions)
}
