package table

import (
	"testing"

	"github.com/kallisti-dev/grammardeck/grammar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func arithmeticGrammar(t *testing.T) *grammar.Grammar {
	t.Helper()
	g, err := grammar.NewBuilder().
		Symbol("S'").Symbol("E").Symbol("T").Symbol("F").
		Symbol("plus").Symbol("star").Symbol("lparen").Symbol("rparen").Symbol("id").
		Rule("S'", "E").
		Rule("E", "T", "plus", "E").
		Rule("E", "T").
		Rule("T", "F", "star", "T").
		Rule("T", "F").
		Rule("F", "id").
		Rule("F", "lparen", "E", "rparen").
		Build()
	require.NoError(t, err)
	return g
}

// TestLR0_ConflictsWhereLR1Resolves is spec §8 scenario 4: a grammar whose
// LR(0) automaton conflicts on a state that LR(1) lookahead disambiguates.
func TestLR0_ConflictsWhereLR1Resolves(t *testing.T) {
	// S' -> S; S -> A a | B b; A -> c; B -> c
	// State after shifting c from the start item has A->c. and B->c. both
	// finished: LR(0) reduces on every terminal so it conflicts on "a" and
	// "b" at once, but LR(1) lookahead separates A's {a} from B's {b}.
	g, err := grammar.NewBuilder().
		Symbol("S'").Symbol("S").Symbol("A").Symbol("B").
		Symbol("a").Symbol("b").Symbol("c").
		Rule("S'", "S").
		Rule("S", "A", "a").
		Rule("S", "B", "b").
		Rule("A", "c").
		Rule("B", "c").
		Build()
	require.NoError(t, err)
	a := grammar.Build(g)

	lr0 := BuildLR0Table(g, a)
	assert.NotEmpty(t, lr0.Conflicts(), "expected LR(0) table to conflict")

	lr1 := BuildLR1Table(g, a)
	assert.Empty(t, lr1.Conflicts(), "expected LR(1) lookahead to resolve the conflict")
}

// TestLR1_LayeredCommandGrammar is spec §8 scenario 5.
func TestLR1_LayeredCommandGrammar(t *testing.T) {
	g, err := grammar.NewBuilder().
		Symbol("S'").Symbol("cmd").Symbol("verb").Symbol("target").Symbol("modifier").
		Symbol("go").Symbol("look").Symbol("north").Symbol("south").Symbol("quickly").
		Rule("S'", "cmd").
		Rule("cmd", "verb", "target", "modifier").
		Rule("cmd", "verb", "target").
		Rule("cmd", "verb").
		Rule("verb", "go").
		Rule("verb", "look").
		Rule("target", "north").
		Rule("target", "south").
		Rule("modifier", "quickly").
		Build()
	require.NoError(t, err)
	a := grammar.Build(g)

	lr1 := BuildLR1Table(g, a)
	assert.Empty(t, lr1.Conflicts())
	assert.Greater(t, lr1.NumStates(), 1)
}

// TestLR1_ArithmeticParseTable is spec §8 scenario 6: the canonical
// arithmetic grammar is LR(1) with no conflicts and a reachable accept state.
func TestLR1_ArithmeticParseTable(t *testing.T) {
	g := arithmeticGrammar(t)
	a := grammar.Build(g)

	lr1 := BuildLR1Table(g, a)
	assert.Empty(t, lr1.Conflicts())

	foundHalt := false
	for state := 0; state < lr1.NumStates(); state++ {
		for _, act := range lr1.Action(state, grammar.EndMarker) {
			if act.Kind == Halt {
				foundHalt = true
			}
		}
	}
	assert.True(t, foundHalt, "expected a halt action on some state's end-of-input column")
}

func TestLR1Table_GotoAndShift(t *testing.T) {
	g := arithmeticGrammar(t)
	a := grammar.Build(g)
	lr1 := BuildLR1Table(g, a)

	id := g.MustSymbol("id")
	acts := lr1.Action(lr1.Initial(), id.ID())
	require.Len(t, acts, 1)
	assert.Equal(t, Shift, acts[0].Kind)

	_, ok := lr1.Goto(lr1.Initial(), g.MustSymbol("E").ID())
	assert.True(t, ok, "expected a goto from the initial state over E")
}
