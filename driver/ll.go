package driver

import (
	"github.com/kallisti-dev/grammardeck/grammar"
	"github.com/kallisti-dev/grammardeck/internal/stackutil"
	"github.com/kallisti-dev/grammardeck/parsetree"
	"github.com/kallisti-dev/grammardeck/table"
)

// LLDriver runs the top-down push-down automaton described in spec §4.6
// over an LL1Table: maintain a stack of pending symbols (bottom-most is the
// end marker), and at each step either match a terminal against the next
// token or predict a rule for a nonterminal from the table and push its
// right-hand side. A driver holds the state of one parse at a time; Reset
// (or Run/Parse, which call it) starts a fresh one.
type LLDriver struct {
	g     *grammar.Grammar
	table *table.LL1Table
	trace TraceFunc

	tokens []Token
	pos    int
	stack  stackutil.Stack[llFrame]
	halted bool
	result *parsetree.Tree
}

// NewLLDriver builds a driver for t, whose grammar is g.
func NewLLDriver(g *grammar.Grammar, t *table.LL1Table) *LLDriver {
	return &LLDriver{g: g, table: t}
}

// SetTrace registers fn to be called after every shift and predict step,
// and once more on halt. Pass nil to disable tracing.
func (d *LLDriver) SetTrace(fn TraceFunc) { d.trace = fn }

func (d *LLDriver) emit(ev TraceEvent) {
	if d.trace != nil {
		d.trace(ev)
	}
}

type llFrame struct {
	sym  grammar.SymbolID
	slot **parsetree.Tree
}

// Reset discards any parse in progress and prepares the driver to consume
// tokens from the beginning, one step at a time via Step.
func (d *LLDriver) Reset(tokens []Token) {
	d.tokens = tokens
	d.pos = 0
	d.result = nil
	d.halted = false
	d.stack = stackutil.Stack[llFrame]{}
	d.stack.Push(llFrame{sym: grammar.EndMarker})
	d.stack.Push(llFrame{sym: d.g.StartSymbol().ID(), slot: &d.result})
}

func (d *LLDriver) lookahead() grammar.SymbolID {
	if d.pos < len(d.tokens) {
		return d.tokens[d.pos].Sym.ID()
	}
	return grammar.EndMarker
}

// Step advances the automaton by matching one terminal or predicting one
// rule for the top stack frame, and reports whether the machine has now
// halted. Calling Step again after a halt is a no-op returning (true, nil).
// It returns a *ConflictError if the cell predicted for the current
// (nonterminal, lookahead) pair held more than one rule at construction
// time, and a *ParseError for any other rejection (no predicted rule, an
// unmatched terminal, or leftover input at halt).
func (d *LLDriver) Step() (halted bool, err error) {
	if d.halted {
		return true, nil
	}

	top := d.stack.Pop()

	if top.sym == grammar.EndMarker {
		if d.pos != len(d.tokens) {
			return false, &ParseError{Pos: d.pos, Got: d.lookahead(), G: d.g, Detail: "extra input after a complete parse"}
		}
		d.emit(TraceEvent{Kind: TraceHalt, Pos: d.pos})
		d.halted = true
		return true, nil
	}

	sym := d.g.SymbolByID(top.sym)
	if sym.IsTerminal() {
		if d.pos >= len(d.tokens) || !d.tokens[d.pos].Sym.Equal(sym) {
			return false, &ParseError{Pos: d.pos, Got: d.lookahead(), G: d.g, Detail: "expected " + sym.Name()}
		}
		*top.slot = parsetree.NewLeaf(sym, d.tokens[d.pos].Value)
		d.emit(TraceEvent{Kind: TraceShift, Pos: d.pos})
		d.pos++
		return false, nil
	}

	look := d.lookahead()
	rules := d.table.Rules(sym.ID(), look)
	switch len(rules) {
	case 0:
		return false, &ParseError{Pos: d.pos, Got: look, G: d.g, Detail: "no rule predicted for " + sym.Name()}
	case 1:
		rule := rules[0]
		rhs := rule.RHS()
		node := parsetree.NewInterior(rule, make([]*parsetree.Tree, len(rhs)))
		*top.slot = node
		d.emit(TraceEvent{Kind: TraceReduce, Pos: d.pos, Rule: rule})

		for i := len(rhs) - 1; i >= 0; i-- {
			d.stack.Push(llFrame{sym: rhs[i].ID(), slot: &node.Children[i]})
		}
		return false, nil
	default:
		actions := make([]table.Action, len(rules))
		for i, r := range rules {
			actions[i] = table.Action{Kind: table.Reduce, Rule: r}
		}
		return false, &ConflictError{
			Pos:      d.pos,
			Conflict: table.Conflict{G: d.g, State: int(sym.ID()), Symbol: look, Actions: actions},
		}
	}
}

// Run resets the driver against tokens and calls Step until the machine
// halts or an error is returned.
func (d *LLDriver) Run(tokens []Token) error {
	d.Reset(tokens)
	for {
		halted, err := d.Step()
		if err != nil {
			return err
		}
		if halted {
			return nil
		}
	}
}

// Tree returns the parse tree built by the most recent Run/Step sequence
// that reached Halt. It is nil before then.
func (d *LLDriver) Tree() *parsetree.Tree { return d.result }

// Parse is a convenience wrapper around Run that returns the resulting
// parse tree directly.
func (d *LLDriver) Parse(tokens []Token) (*parsetree.Tree, error) {
	if err := d.Run(tokens); err != nil {
		return nil, err
	}
	return d.Tree(), nil
}
