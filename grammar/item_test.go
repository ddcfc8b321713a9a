package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func simpleABCGrammar(t *testing.T) *Grammar {
	t.Helper()
	g, err := NewBuilder().
		Symbol("S").Symbol("A").Symbol("x").Symbol("y").Symbol("z").
		Rule("S", "A").
		Rule("A", "x", "y", "z").
		Build()
	require.NoError(t, err)
	return g
}

func TestItem_StepAndString(t *testing.T) {
	g := simpleABCGrammar(t)
	r := g.Rules()[1] // A -> x y z

	it := r.LR0Item(0)
	assert.Equal(t, "A -> . x y z", it.String())

	it, ok := it.Step()
	require.True(t, ok)
	assert.Equal(t, "A -> x . y z", it.String())

	it, ok = it.Step()
	require.True(t, ok)
	assert.Equal(t, "A -> x y . z", it.String())

	it, ok = it.Step()
	require.True(t, ok)
	assert.Equal(t, "A -> x y z .", it.String())

	assert.True(t, it.IsFinished())
	_, ok = it.Step()
	assert.False(t, ok)
}

func TestClosure_Idempotent(t *testing.T) {
	g := arithmeticGrammar(t)
	a := Build(g)

	start := g.StartRule().LR0Item(0)
	once := NewLR0ItemSet(g, a, start)
	twice := once.Closure(a)

	assert.True(t, once.Equal(twice))
}

func TestGoto_DistributesOverSubset(t *testing.T) {
	g := arithmeticGrammar(t)
	a := Build(g)

	start := g.StartRule().LR0Item(0)
	full := NewLR0ItemSet(g, a, start)

	// a strict non-empty subset of full's items
	items := full.Items()
	require.True(t, len(items) > 1)
	sub := NewLR0ItemSet(g, a, items[1]) // closure of E -> . T + E

	onF := full.Goto(a, g.MustSymbol("T"))
	onS := sub.Goto(a, g.MustSymbol("T"))

	subItems := map[string]bool{}
	for _, it := range onS.Items() {
		subItems[it.String()] = true
	}
	fullItems := map[string]bool{}
	for _, it := range onF.Items() {
		fullItems[it.String()] = true
	}
	for k := range subItems {
		assert.True(t, fullItems[k], "GOTO(sub) item %q should be in GOTO(full)", k)
	}
}

func TestLR1Closure_SquashesLookaheads(t *testing.T) {
	// S' -> S; S -> A A; A -> a
	g, err := NewBuilder().
		Symbol("S'").Symbol("S").Symbol("A").Symbol("a").
		Rule("S'", "S").
		Rule("S", "A", "A").
		Rule("A", "a").
		Build()
	require.NoError(t, err)
	a := Build(g)

	start := g.StartRule().LR1Item(0, []SymbolID{EndMarker})
	set := NewLR1ItemSet(g, a, start)

	// exactly one item per (rule, dot), even though closure re-adds A -> . a
	// on every pass.
	seen := map[itemKey]bool{}
	for _, it := range set.Items() {
		k := itemKey{it.rule, it.dot}
		assert.False(t, seen[k], "duplicate (rule,dot) entry for %v", k)
		seen[k] = true
	}
}
