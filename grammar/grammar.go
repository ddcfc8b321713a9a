// Package grammar holds the immutable grammar catalogue, the nullable/
// FIRST/FOLLOW analysis built over it, and the dotted-item machinery
// (closure, squash, GOTO) shared by the LR(0) and LR(1) table builders in
// package table.
package grammar

import "fmt"

// SymbolID is a stable offset into a Grammar's symbol vector.
type SymbolID int

// RuleID is a stable offset into a Grammar's rule vector. Rule 0 is always
// the augmented start rule.
type RuleID int

type symbolData struct {
	name string
}

type ruleData struct {
	lhs SymbolID
	rhs []SymbolID
}

// Grammar is an ordered set of symbols plus an ordered sequence of rules.
// It is immutable after Build; every Symbol and Rule handle borrows from it
// and shares its lifetime. Two Grammars are never comparable to each other -
// Symbol/Rule equality requires handles to share the same owning Grammar.
type Grammar struct {
	symbols     []symbolData
	rules       []ruleData
	byName      map[string]SymbolID
	nonterminal []bool // indexed by SymbolID, computed once at Build time
}

// Symbol is a handle identifying a named atom within a specific Grammar.
// Two symbols compare equal iff they reference the same Grammar and the
// same index.
type Symbol struct {
	g  *Grammar
	id SymbolID
}

// Rule is a handle to an (lhs, rhs) production within a specific Grammar.
type Rule struct {
	g  *Grammar
	id RuleID
}

// Grammar returns the Grammar this symbol was resolved from.
func (s Symbol) Grammar() *Grammar { return s.g }

// ID returns the stable index of this symbol within its Grammar.
func (s Symbol) ID() SymbolID { return s.id }

// Name returns the symbol's declared name.
func (s Symbol) Name() string { return s.g.symbols[s.id].name }

// IsTerminal returns whether the symbol never appears as the left-hand side
// of any rule.
func (s Symbol) IsTerminal() bool { return !s.g.nonterminal[s.id] }

// IsNonterminal returns whether the symbol is the left-hand side of at
// least one rule.
func (s Symbol) IsNonterminal() bool { return s.g.nonterminal[s.id] }

// Equal returns whether s and o reference the same symbol of the same
// Grammar.
func (s Symbol) Equal(o Symbol) bool { return s.g == o.g && s.id == o.id }

// String renders the symbol's name.
func (s Symbol) String() string { return s.Name() }

// Grammar returns the Grammar this rule was resolved from.
func (r Rule) Grammar() *Grammar { return r.g }

// ID returns the stable index of this rule within its Grammar.
func (r Rule) ID() RuleID { return r.id }

// IsStartRule returns whether this is rule 0, the augmented start rule.
func (r Rule) IsStartRule() bool { return r.id == 0 }

// LHS returns the left-hand side symbol of the rule.
func (r Rule) LHS() Symbol {
	return Symbol{g: r.g, id: r.g.rules[r.id].lhs}
}

// RHS returns the (possibly empty) right-hand side of the rule, in order.
func (r Rule) RHS() []Symbol {
	raw := r.g.rules[r.id].rhs
	out := make([]Symbol, len(raw))
	for i, id := range raw {
		out[i] = Symbol{g: r.g, id: id}
	}
	return out
}

// Equal returns whether r and o reference the same rule of the same
// Grammar.
func (r Rule) Equal(o Rule) bool { return r.g == o.g && r.id == o.id }

// String renders the rule as "LHS -> S1 S2 ..." ("LHS ->" for an ε-rule).
func (r Rule) String() string {
	rhs := r.RHS()
	s := r.LHS().Name() + " ->"
	for _, sym := range rhs {
		s += " " + sym.Name()
	}
	return s
}

// Symbols returns every symbol declared in the grammar, in declaration
// order.
func (g *Grammar) Symbols() []Symbol {
	out := make([]Symbol, len(g.symbols))
	for i := range g.symbols {
		out[i] = Symbol{g: g, id: SymbolID(i)}
	}
	return out
}

// Terminals returns every terminal symbol, in declaration order.
func (g *Grammar) Terminals() []Symbol {
	var out []Symbol
	for i := range g.symbols {
		if !g.nonterminal[i] {
			out = append(out, Symbol{g: g, id: SymbolID(i)})
		}
	}
	return out
}

// NonTerminals returns every nonterminal symbol, in declaration order.
func (g *Grammar) NonTerminals() []Symbol {
	var out []Symbol
	for i := range g.symbols {
		if g.nonterminal[i] {
			out = append(out, Symbol{g: g, id: SymbolID(i)})
		}
	}
	return out
}

// Rules returns every rule, in declaration order. Rule 0 is the start rule.
func (g *Grammar) Rules() []Rule {
	out := make([]Rule, len(g.rules))
	for i := range g.rules {
		out[i] = Rule{g: g, id: RuleID(i)}
	}
	return out
}

// RuleAt returns the rule at the given index.
func (g *Grammar) RuleAt(id RuleID) Rule {
	return Rule{g: g, id: id}
}

// NumRules returns the number of rules in the grammar.
func (g *Grammar) NumRules() int { return len(g.rules) }

// StartRule returns rule 0, the augmented start rule.
func (g *Grammar) StartRule() Rule { return Rule{g: g, id: 0} }

// StartSymbol returns the left-hand side of the start rule, the augmented
// start symbol.
func (g *Grammar) StartSymbol() Symbol { return g.StartRule().LHS() }

// Symbol looks up a declared symbol by name.
func (g *Grammar) Symbol(name string) (Symbol, bool) {
	id, ok := g.byName[name]
	if !ok {
		return Symbol{}, false
	}
	return Symbol{g: g, id: id}, true
}

// SymbolByID resolves a SymbolID previously obtained from this same Grammar
// back into a Symbol handle.
func (g *Grammar) SymbolByID(id SymbolID) Symbol {
	return Symbol{g: g, id: id}
}

// MustSymbol is like Symbol but panics if name is not declared. Intended
// for tests and other callers that already know the name is valid.
func (g *Grammar) MustSymbol(name string) Symbol {
	s, ok := g.Symbol(name)
	if !ok {
		panic(fmt.Sprintf("grammar: no such symbol %q", name))
	}
	return s
}

// Builder accumulates named symbols and rules in declaration order. Methods
// are chainable; the first error encountered is latched and returned from
// Build, so a caller can write a single uninterrupted chain and check the
// error once at the end.
type Builder struct {
	symbols []symbolData
	rules   []ruleData
	byName  map[string]SymbolID
	err     error
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{byName: map[string]SymbolID{}}
}

// Symbol declares a new symbol named name. Duplicate names are a fatal
// construction error surfaced at Build.
func (b *Builder) Symbol(name string) *Builder {
	if b.err != nil {
		return b
	}
	if _, exists := b.byName[name]; exists {
		b.err = &GrammarError{Kind: DuplicateSymbol, Name: name}
		return b
	}
	id := SymbolID(len(b.symbols))
	b.symbols = append(b.symbols, symbolData{name: name})
	b.byName[name] = id
	return b
}

// Rule declares lhs -> rhs[0] rhs[1] .... rhs may be empty for an ε-rule.
// Every name, including lhs, must already have been declared via Symbol;
// an unknown name is a fatal construction error surfaced at Build. The
// first call to Rule declares the start rule; its rhs must have length
// exactly one.
func (b *Builder) Rule(lhs string, rhs ...string) *Builder {
	if b.err != nil {
		return b
	}
	lhsID, ok := b.byName[lhs]
	if !ok {
		b.err = &GrammarError{Kind: UnknownSymbol, Name: lhs}
		return b
	}
	rhsIDs := make([]SymbolID, len(rhs))
	for i, name := range rhs {
		id, ok := b.byName[name]
		if !ok {
			b.err = &GrammarError{Kind: UnknownSymbol, Name: name}
			return b
		}
		rhsIDs[i] = id
	}
	b.rules = append(b.rules, ruleData{lhs: lhsID, rhs: rhsIDs})
	return b
}

// Build validates the accumulated symbols and rules and freezes them into
// an immutable Grammar. It returns the first error latched by Symbol/Rule,
// if any, followed by the start-rule shape check.
func (b *Builder) Build() (*Grammar, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.rules) == 0 {
		return nil, &GrammarError{Kind: NoRules}
	}
	if len(b.rules[0].rhs) != 1 {
		return nil, &GrammarError{Kind: MalformedStartRule}
	}

	g := &Grammar{
		symbols: append([]symbolData(nil), b.symbols...),
		rules:   append([]ruleData(nil), b.rules...),
		byName:  make(map[string]SymbolID, len(b.byName)),
	}
	for k, v := range b.byName {
		g.byName[k] = v
	}

	g.nonterminal = make([]bool, len(g.symbols))
	for _, r := range g.rules {
		g.nonterminal[r.lhs] = true
	}

	return g, nil
}
