package table

import (
	"sort"

	"github.com/kallisti-dev/grammardeck/grammar"
)

// LL1Table is a predictive parse table indexed by (nonterminal, lookahead
// terminal), per spec §4.4: for a rule A -> α, if α is nullable, column t is
// populated for every t in FOLLOW(A), plus the end-of-input column when some
// derivation from the start symbol can end with A; otherwise column t is
// populated for every t in FIRST(α). A column that collects more than one
// rule is a conflict: the grammar is not LL(1) on that pair.
type LL1Table struct {
	g         *grammar.Grammar
	cells     map[grammar.SymbolID]map[grammar.SymbolID][]grammar.Rule
	conflicts []Conflict
}

// Grammar returns the grammar this table was built over.
func (t *LL1Table) Grammar() *grammar.Grammar { return t.g }

// Rule returns the rule predicted for (nonterminal, lookahead), if the cell
// holds exactly one. A conflicted cell (more than one rule) returns
// ok=false, the same as an empty cell; callers that must distinguish "no
// rule" from "ambiguous" should use Rules instead.
func (t *LL1Table) Rule(nonterminal, lookahead grammar.SymbolID) (grammar.Rule, bool) {
	rules := t.cells[nonterminal][lookahead]
	if len(rules) != 1 {
		return grammar.Rule{}, false
	}
	return rules[0], true
}

// Rules returns every rule predicted for (nonterminal, lookahead), in the
// order they were added during construction. A length greater than one
// means the cell is conflicted.
func (t *LL1Table) Rules(nonterminal, lookahead grammar.SymbolID) []grammar.Rule {
	return append([]grammar.Rule(nil), t.cells[nonterminal][lookahead]...)
}

// Conflicts returns every (nonterminal, lookahead) cell that predicted more
// than one rule.
func (t *LL1Table) Conflicts() []Conflict {
	return append([]Conflict(nil), t.conflicts...)
}

// BuildLL1Table constructs the predictive parse table for g over the FIRST/
// FOLLOW sets in a.
func BuildLL1Table(g *grammar.Grammar, a *grammar.Analysis) *LL1Table {
	t := &LL1Table{g: g, cells: map[grammar.SymbolID]map[grammar.SymbolID][]grammar.Rule{}}

	put := func(nt, look grammar.SymbolID, r grammar.Rule) {
		if t.cells[nt] == nil {
			t.cells[nt] = map[grammar.SymbolID][]grammar.Rule{}
		}
		t.cells[nt][look] = append(t.cells[nt][look], r)
	}

	start := g.StartSymbol()
	for _, r := range g.Rules() {
		lhs := r.LHS()
		rhs := r.RHS()

		if a.NullableSeq(rhs) {
			for _, look := range a.FollowIDs(lhs) {
				put(lhs.ID(), look, r)
			}
			if a.CanEndWith(start, lhs) {
				put(lhs.ID(), grammar.EndMarker, r)
			}
		} else {
			for _, look := range a.FirstSeqIDs(rhs) {
				put(lhs.ID(), look, r)
			}
		}
	}

	var ntIDs []grammar.SymbolID
	for nt := range t.cells {
		ntIDs = append(ntIDs, nt)
	}
	sort.Slice(ntIDs, func(i, j int) bool { return ntIDs[i] < ntIDs[j] })

	for _, nt := range ntIDs {
		row := t.cells[nt]
		var lookIDs []grammar.SymbolID
		for look := range row {
			lookIDs = append(lookIDs, look)
		}
		sort.Slice(lookIDs, func(i, j int) bool { return lookIDs[i] < lookIDs[j] })
		for _, look := range lookIDs {
			if len(row[look]) <= 1 {
				continue
			}
			actions := make([]Action, len(row[look]))
			for i, r := range row[look] {
				actions[i] = Action{Kind: Reduce, Rule: r}
			}
			t.conflicts = append(t.conflicts, Conflict{G: g, State: int(nt), Symbol: look, Actions: actions})
		}
	}

	return t
}
