package table

import "github.com/kallisti-dev/grammardeck/grammar"

// LRTable is a canonical LR(0) or LR(1) action/goto table, built by
// BuildLR0Table or BuildLR1Table. State 0 is always the initial state, whose
// item set is the ε-closure of the augmented start rule at dot 0.
type LRTable struct {
	g      *grammar.Grammar
	lr1    bool
	states []*grammar.ItemSet

	action [](map[grammar.SymbolID][]Action)
	goTo   [](map[grammar.SymbolID]int)

	conflicts []Conflict
}

// Grammar returns the grammar this table was built over.
func (t *LRTable) Grammar() *grammar.Grammar { return t.g }

// IsLR1 returns whether reduce actions were computed with a lookahead (LR1)
// or fire on every terminal plus end-of-input (LR0).
func (t *LRTable) IsLR1() bool { return t.lr1 }

// Initial returns the index of the initial state.
func (t *LRTable) Initial() int { return 0 }

// NumStates returns the number of states in the canonical collection.
func (t *LRTable) NumStates() int { return len(t.states) }

// State returns the item set underlying a state, for diagnostics.
func (t *LRTable) State(i int) *grammar.ItemSet { return t.states[i] }

// Action returns the (possibly empty, possibly multi-valued) action list for
// state on symbol. Pass grammar.EndMarker for the end-of-input column.
func (t *LRTable) Action(state int, symbol grammar.SymbolID) []Action {
	return append([]Action(nil), t.action[state][symbol]...)
}

// Goto returns the successor state reached from state over nonterminal
// symbol, if any.
func (t *LRTable) Goto(state int, symbol grammar.SymbolID) (int, bool) {
	next, ok := t.goTo[state][symbol]
	return next, ok
}

// Conflicts returns every cell with more than one action, in state order.
func (t *LRTable) Conflicts() []Conflict {
	return append([]Conflict(nil), t.conflicts...)
}

// BuildLR0Table builds the canonical LR(0) automaton for g, per spec §4.5.
// Reduce actions fire on every terminal and on end-of-input regardless of
// context; this is the classic LR(0) construction, which conflicts far more
// often than LR(1) - that gap is the point of carrying both table kinds.
func BuildLR0Table(g *grammar.Grammar, a *grammar.Analysis) *LRTable {
	start := grammar.NewLR0ItemSet(g, a, g.StartRule().LR0Item(0))
	return buildLRTable(g, a, start, false)
}

// BuildLR1Table builds the canonical LR(1) automaton for g, per spec §4.5.
// Reduce actions fire only on the item's own lookahead set.
func BuildLR1Table(g *grammar.Grammar, a *grammar.Analysis) *LRTable {
	start := grammar.NewLR1ItemSet(g, a, g.StartRule().LR1Item(0, []grammar.SymbolID{grammar.EndMarker}))
	return buildLRTable(g, a, start, true)
}

func buildLRTable(g *grammar.Grammar, a *grammar.Analysis, start *grammar.ItemSet, lr1 bool) *LRTable {
	states := enumerateStates(g, a, start)

	t := &LRTable{
		g:      g,
		lr1:    lr1,
		states: states,
		action: make([]map[grammar.SymbolID][]Action, len(states)),
		goTo:   make([]map[grammar.SymbolID]int, len(states)),
	}

	allTerminalsAndEnd := func() []grammar.SymbolID {
		ids := []grammar.SymbolID{grammar.EndMarker}
		for _, term := range g.Terminals() {
			ids = append(ids, term.ID())
		}
		return ids
	}()

	appendAction := func(cells map[grammar.SymbolID][]Action, sym grammar.SymbolID, act Action) {
		for _, existing := range cells[sym] {
			if existing.Equal(act) {
				return
			}
		}
		cells[sym] = append(cells[sym], act)
	}

	for i, state := range states {
		t.action[i] = map[grammar.SymbolID][]Action{}
		t.goTo[i] = map[grammar.SymbolID]int{}

		for _, it := range state.Items() {
			if next, ok := it.NextSymbol(); ok {
				succ := state.Goto(a, next)
				if succ.IsEmpty() {
					continue
				}
				j, ok := indexOfState(states, succ)
				if !ok {
					continue
				}
				if next.IsTerminal() {
					appendAction(t.action[i], next.ID(), Action{Kind: Shift, State: j})
				} else {
					t.goTo[i][next.ID()] = j
				}
				continue
			}

			// dot is at the end: reduce, or halt for the augmented start rule.
			if it.Rule().IsStartRule() {
				appendAction(t.action[i], grammar.EndMarker, Action{Kind: Halt})
				continue
			}

			if lr1 {
				for _, sym := range it.Lookahead() {
					t.action[i][sym] = append(t.action[i][sym], Action{Kind: Reduce, Rule: it.Rule()})
				}
			} else {
				for _, sym := range allTerminalsAndEnd {
					t.action[i][sym] = append(t.action[i][sym], Action{Kind: Reduce, Rule: it.Rule()})
				}
			}
		}
	}

	for i, cells := range t.action {
		for sym, actions := range cells {
			if len(actions) <= 1 {
				continue
			}
			t.conflicts = append(t.conflicts, Conflict{G: g, State: i, Symbol: sym, Actions: append([]Action(nil), actions...)})
		}
	}

	return t
}
