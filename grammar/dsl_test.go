package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDSLString_equivalentToBuilder(t *testing.T) {
	g, err := ParseDSLString(`
		start -> expr;
		expr -> expr plus term;
		expr -> term;
		term -> id;
	`)
	require.NoError(t, err)

	assert.Equal(t, "start", g.StartSymbol().Name())
	assert.Equal(t, 4, g.NumRules())

	term, ok := g.Symbol("term")
	require.True(t, ok)
	assert.True(t, term.IsNonterminal())

	id, ok := g.Symbol("id")
	require.True(t, ok)
	assert.True(t, id.IsTerminal())
}

func TestParseDSLString_epsilonRule(t *testing.T) {
	g, err := ParseDSLString(`
		start -> list;
		list -> item list;
		list -> ;
		item -> x;
	`)
	require.NoError(t, err)

	list, ok := g.Symbol("list")
	require.True(t, ok)
	found := false
	for _, r := range g.Rules() {
		if r.LHS().Equal(list) && len(r.RHS()) == 0 {
			found = true
		}
	}
	assert.True(t, found, "expected an epsilon rule for list")
}

func TestParseDSLString_malformedStartRule(t *testing.T) {
	_, err := ParseDSLString(`start -> a b;`)
	require.Error(t, err)
	var gerr *GrammarError
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, MalformedStartRule, gerr.Kind)
}

func TestParseDSLString_missingArrow(t *testing.T) {
	_, err := ParseDSLString(`start a b;`)
	require.Error(t, err)
}
