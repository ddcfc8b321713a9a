package table

import "github.com/kallisti-dev/grammardeck/grammar"

// enumerateStates builds the canonical collection reachable from start by
// repeatedly computing GOTO over every grammar symbol, per spec §4.5. It
// diverges from a naive worklist in one respect: a freshly computed GOTO set
// is checked for equality against both the already-recorded states AND the
// remaining worklist before being enqueued, so no state is ever enumerated
// twice even when two different states GOTO to the same successor before
// either is popped. start is always states[0].
func enumerateStates(g *grammar.Grammar, a *grammar.Analysis, start *grammar.ItemSet) []*grammar.ItemSet {
	states := []*grammar.ItemSet{start}
	remaining := []*grammar.ItemSet{start}

	contains := func(sets []*grammar.ItemSet, s *grammar.ItemSet) bool {
		for _, o := range sets {
			if o.Equal(s) {
				return true
			}
		}
		return false
	}

	for len(remaining) > 0 {
		cur := remaining[len(remaining)-1]
		remaining = remaining[:len(remaining)-1]

		for _, x := range g.Symbols() {
			next := cur.Goto(a, x)
			if next.IsEmpty() {
				continue
			}
			if contains(states, next) || contains(remaining, next) {
				continue
			}
			states = append(states, next)
			remaining = append(remaining, next)
		}
	}

	return states
}

// indexOfState returns the position of s within states, using set equality
// rather than pointer identity.
func indexOfState(states []*grammar.ItemSet, s *grammar.ItemSet) (int, bool) {
	for i, o := range states {
		if o.Equal(s) {
			return i, true
		}
	}
	return 0, false
}
