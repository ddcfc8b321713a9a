package table

import (
	"testing"

	"github.com/kallisti-dev/grammardeck/grammar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLL1Table_SimpleExpression(t *testing.T) {
	// S' -> E; E -> T E'; E' -> plus T E' | ; T -> id
	g, err := grammar.NewBuilder().
		Symbol("S'").Symbol("E").Symbol("Ep").Symbol("T").
		Symbol("plus").Symbol("id").
		Rule("S'", "E").
		Rule("E", "T", "Ep").
		Rule("Ep", "plus", "T", "Ep").
		Rule("Ep").
		Rule("T", "id").
		Build()
	require.NoError(t, err)
	a := grammar.Build(g)

	lt := BuildLL1Table(g, a)
	assert.Empty(t, lt.Conflicts())

	ep := g.MustSymbol("Ep")
	plus := g.MustSymbol("plus")
	r, ok := lt.Rule(ep.ID(), plus.ID())
	require.True(t, ok)
	assert.Equal(t, "Ep -> plus T Ep", r.String())

	r, ok = lt.Rule(ep.ID(), grammar.EndMarker)
	require.True(t, ok)
	assert.Equal(t, "Ep ->", r.String())
}

func TestLL1Table_ConflictOnAmbiguousGrammar(t *testing.T) {
	// classic dangling-else-style ambiguity collapsed to FIRST/FIRST overlap:
	// S -> a | a b
	g, err := grammar.NewBuilder().
		Symbol("S'").Symbol("S").Symbol("a").Symbol("b").
		Rule("S'", "S").
		Rule("S", "a").
		Rule("S", "a", "b").
		Build()
	require.NoError(t, err)
	a := grammar.Build(g)

	lt := BuildLL1Table(g, a)
	require.NotEmpty(t, lt.Conflicts())
	assert.Equal(t, "a", lt.Conflicts()[0].SymbolName())

	s := g.MustSymbol("S")
	aSym := g.MustSymbol("a")
	_, ok := lt.Rule(s.ID(), aSym.ID())
	assert.False(t, ok, "a conflicted cell must not resolve through Rule")
	assert.Len(t, lt.Rules(s.ID(), aSym.ID()), 2)
}
