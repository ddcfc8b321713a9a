package driver

import (
	"github.com/kallisti-dev/grammardeck/grammar"
	"github.com/kallisti-dev/grammardeck/internal/stackutil"
	"github.com/kallisti-dev/grammardeck/parsetree"
	"github.com/kallisti-dev/grammardeck/table"
)

// LRDriver runs the shift-reduce push-down automaton described in spec
// §4.6 over an LRTable (LR(0) or LR(1)): maintain a stack of states paired
// with the trees shifted or reduced so far, consulting Action for what to
// do next and Goto after every reduce. A driver holds the state of one
// parse at a time; Reset (or Run/Parse, which call it) starts a fresh one.
type LRDriver struct {
	g     *grammar.Grammar
	table *table.LRTable
	trace TraceFunc

	tokens []Token
	pos    int
	states stackutil.Stack[int]
	trees  stackutil.Stack[*parsetree.Tree]
	halted bool
	result *parsetree.Tree
}

// NewLRDriver builds a driver for t, whose grammar is g.
func NewLRDriver(g *grammar.Grammar, t *table.LRTable) *LRDriver {
	return &LRDriver{g: g, table: t}
}

// SetTrace registers fn to be called after every shift and reduce, and
// once more on halt. Pass nil to disable tracing.
func (d *LRDriver) SetTrace(fn TraceFunc) { d.trace = fn }

func (d *LRDriver) emit(ev TraceEvent) {
	if d.trace != nil {
		d.trace(ev)
	}
}

// Reset discards any parse in progress and prepares the driver to consume
// tokens from the beginning, one step at a time via Step.
func (d *LRDriver) Reset(tokens []Token) {
	d.tokens = tokens
	d.pos = 0
	d.states = stackutil.Stack[int]{}
	d.states.Push(d.table.Initial())
	d.trees = stackutil.Stack[*parsetree.Tree]{}
	d.halted = false
	d.result = nil
}

func (d *LRDriver) lookahead() grammar.SymbolID {
	if d.pos < len(d.tokens) {
		return d.tokens[d.pos].Sym.ID()
	}
	return grammar.EndMarker
}

// Step advances the automaton by exactly one shift, reduce, or halt and
// reports whether the machine has now halted. Calling Step again after a
// halt is a no-op returning (true, nil). It returns a *ConflictError if
// the table cell the driver lands on was flagged as a Conflict at
// construction time, and a *ParseError for any other rejection (no action,
// a Goto missing for a conflict-free table, or leftover input at halt).
func (d *LRDriver) Step() (halted bool, err error) {
	if d.halted {
		return true, nil
	}

	state := d.states.Peek()
	look := d.lookahead()
	actions := d.table.Action(state, look)

	if len(actions) == 0 {
		return false, &ParseError{Pos: d.pos, Got: look, G: d.g, Detail: "no action for this state"}
	}
	if len(actions) > 1 {
		return false, &ConflictError{
			Pos:      d.pos,
			Conflict: table.Conflict{G: d.g, State: state, Symbol: look, Actions: actions},
		}
	}

	switch act := actions[0]; act.Kind {
	case table.Shift:
		d.trees.Push(parsetree.NewLeaf(d.g.SymbolByID(look), d.tokens[d.pos].Value))
		d.states.Push(act.State)
		d.emit(TraceEvent{Kind: TraceShift, Pos: d.pos})
		d.pos++

	case table.Reduce:
		n := len(act.Rule.RHS())
		children := make([]*parsetree.Tree, n)
		for i := n - 1; i >= 0; i-- {
			children[i] = d.trees.Pop()
			d.states.Pop()
		}
		node := parsetree.NewInterior(act.Rule, children)
		d.trees.Push(node)
		d.emit(TraceEvent{Kind: TraceReduce, Pos: d.pos, Rule: act.Rule})

		next, ok := d.table.Goto(d.states.Peek(), act.Rule.LHS().ID())
		if !ok {
			return false, &ParseError{Pos: d.pos, Got: look, G: d.g, Detail: "no goto after reducing " + act.Rule.String()}
		}
		d.states.Push(next)

	case table.Halt:
		d.emit(TraceEvent{Kind: TraceHalt, Pos: d.pos})
		if d.pos != len(d.tokens) {
			return false, &ParseError{Pos: d.pos, Got: look, G: d.g, Detail: "extra input after a complete parse"}
		}
		d.halted = true
		d.result = parsetree.NewInterior(d.g.StartRule(), []*parsetree.Tree{d.trees.Peek()})
	}

	return d.halted, nil
}

// Run resets the driver against tokens and calls Step until the machine
// halts or an error is returned.
func (d *LRDriver) Run(tokens []Token) error {
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
func (d *LRDriver) Tree() *parsetree.Tree { return d.result }

// Parse is a convenience wrapper around Run that returns the resulting
// parse tree directly.
func (d *LRDriver) Parse(tokens []Token) (*parsetree.Tree, error) {
	if err := d.Run(tokens); err != nil {
		return nil, err
	}
	return d.Tree(), nil
}
