package driver

import (
	"testing"

	"github.com/kallisti-dev/grammardeck/grammar"
	"github.com/kallisti-dev/grammardeck/table"
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

func tok(g *grammar.Grammar, name string) Token {
	return Token{Sym: g.MustSymbol(name)}
}

// TestLRDriver_ArithmeticParseSuccess is half of spec §8 scenario 6.
func TestLRDriver_ArithmeticParseSuccess(t *testing.T) {
	g := arithmeticGrammar(t)
	a := grammar.Build(g)
	lr1 := table.BuildLR1Table(g, a)
	d := NewLRDriver(g, lr1)

	// id + id * id
	input := []Token{
		tok(g, "id"), tok(g, "plus"), tok(g, "id"), tok(g, "star"), tok(g, "id"),
	}

	var events []TraceEventKind
	d.SetTrace(func(ev TraceEvent) { events = append(events, ev.Kind) })

	tree, err := d.Parse(input)
	require.NoError(t, err)
	require.NotNil(t, tree)
	assert.Equal(t, "S'", tree.Symbol.Name())
	assert.NotEmpty(t, events)
	assert.Equal(t, TraceHalt, events[len(events)-1])
}

// TestLRDriver_ArithmeticParseFailure is the other half of spec §8 scenario 6.
func TestLRDriver_ArithmeticParseFailure(t *testing.T) {
	g := arithmeticGrammar(t)
	a := grammar.Build(g)
	lr1 := table.BuildLR1Table(g, a)
	d := NewLRDriver(g, lr1)

	// "id id" has no plus/star between terms: invalid.
	input := []Token{tok(g, "id"), tok(g, "id")}

	_, err := d.Parse(input)
	require.Error(t, err)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
}

func TestLRDriver_ConflictSurfacesAsError(t *testing.T) {
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
	lr0 := table.BuildLR0Table(g, a)
	d := NewLRDriver(g, lr0)

	_, err = d.Parse([]Token{tok(g, "c"), tok(g, "a")})
	require.Error(t, err)
	var cerr *ConflictError
	require.ErrorAs(t, err, &cerr)
}

func TestLLDriver_ArithmeticGrammarSuccess(t *testing.T) {
	// LL(1)-shaped restatement of the arithmetic grammar (left recursion
	// removed): E -> T E'; E' -> plus T E' | ; T -> F T'; T' -> star F T' | ;
	// F -> id | lparen E rparen
	g, err := grammar.NewBuilder().
		Symbol("S'").Symbol("E").Symbol("Ep").Symbol("T").Symbol("Tp").Symbol("F").
		Symbol("plus").Symbol("star").Symbol("lparen").Symbol("rparen").Symbol("id").
		Rule("S'", "E").
		Rule("E", "T", "Ep").
		Rule("Ep", "plus", "T", "Ep").
		Rule("Ep").
		Rule("T", "F", "Tp").
		Rule("Tp", "star", "F", "Tp").
		Rule("Tp").
		Rule("F", "id").
		Rule("F", "lparen", "E", "rparen").
		Build()
	require.NoError(t, err)
	a := grammar.Build(g)
	ll1 := table.BuildLL1Table(g, a)
	require.Empty(t, ll1.Conflicts())
	d := NewLLDriver(g, ll1)

	input := []Token{
		tok(g, "id"), tok(g, "plus"), tok(g, "id"), tok(g, "star"), tok(g, "id"),
	}
	tree, err := d.Parse(input)
	require.NoError(t, err)
	assert.Equal(t, "S'", tree.Symbol.Name())
}

func TestLRDriver_StepMatchesRun(t *testing.T) {
	g := arithmeticGrammar(t)
	a := grammar.Build(g)
	lr1 := table.BuildLR1Table(g, a)
	input := []Token{tok(g, "id"), tok(g, "plus"), tok(g, "id")}

	stepped := NewLRDriver(g, lr1)
	stepped.Reset(input)
	steps := 0
	for {
		halted, err := stepped.Step()
		require.NoError(t, err)
		steps++
		if halted {
			break
		}
	}
	assert.Greater(t, steps, 1)

	run := NewLRDriver(g, lr1)
	tree, err := run.Parse(input)
	require.NoError(t, err)
	assert.True(t, tree.Equal(stepped.Tree()))
}

func TestLLDriver_ConflictSurfacesAsError(t *testing.T) {
	// S -> a | a b: FIRST(S -> a) and FIRST(S -> a b) both contain "a", so
	// the (S, a) cell is conflicted and predicting S on lookahead "a" must
	// fail at run time rather than silently picking one rule.
	g, err := grammar.NewBuilder().
		Symbol("S'").Symbol("S").Symbol("a").Symbol("b").
		Rule("S'", "S").
		Rule("S", "a").
		Rule("S", "a", "b").
		Build()
	require.NoError(t, err)
	a := grammar.Build(g)
	ll1 := table.BuildLL1Table(g, a)
	require.NotEmpty(t, ll1.Conflicts())
	d := NewLLDriver(g, ll1)

	_, err = d.Parse([]Token{tok(g, "a")})
	require.Error(t, err)
	var cerr *ConflictError
	require.ErrorAs(t, err, &cerr)
}

func TestLLDriver_RejectsBadInput(t *testing.T) {
	g, err := grammar.NewBuilder().
		Symbol("S'").Symbol("S").Symbol("a").
		Rule("S'", "S").
		Rule("S", "a").
		Build()
	require.NoError(t, err)
	a := grammar.Build(g)
	ll1 := table.BuildLL1Table(g, a)
	d := NewLLDriver(g, ll1)

	_, err = d.Parse([]Token{tok(g, "a"), tok(g, "a")})
	require.Error(t, err)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
}
