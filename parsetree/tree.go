// Package parsetree holds the concrete parse tree a driver builds as it
// shifts and reduces, the hook a caller uses to recover structure from a
// successful parse.
package parsetree

import (
	"strings"

	"github.com/kallisti-dev/grammardeck/grammar"
)

// Tree is one node of a concrete parse tree. A leaf (Terminal true) carries
// the matched token's symbol; an interior node carries the rule that
// produced it and the children matched against that rule's right-hand side,
// in order.
type Tree struct {
	Terminal bool
	Symbol   grammar.Symbol
	Rule     grammar.Rule // zero value when Terminal
	Token    any          // the driver's input token, for a leaf; nil otherwise
	Children []*Tree
}

// NewLeaf builds a terminal node for a shifted token.
func NewLeaf(sym grammar.Symbol, token any) *Tree {
	return &Tree{Terminal: true, Symbol: sym, Token: token}
}

// NewInterior builds a node for a reduction by rule over children, in
// right-hand-side order.
func NewInterior(rule grammar.Rule, children []*Tree) *Tree {
	return &Tree{Terminal: false, Symbol: rule.LHS(), Rule: rule, Children: children}
}

// Copy returns a deep copy of the tree.
func (t *Tree) Copy() *Tree {
	if t == nil {
		return nil
	}
	cp := &Tree{Terminal: t.Terminal, Symbol: t.Symbol, Rule: t.Rule, Token: t.Token}
	if t.Children != nil {
		cp.Children = make([]*Tree, len(t.Children))
		for i, c := range t.Children {
			cp.Children[i] = c.Copy()
		}
	}
	return cp
}

// Equal returns whether t and o have the same shape and symbols. Token
// payloads are compared with ==, so non-comparable token types will panic;
// callers with such token types should compare trees a different way.
func (t *Tree) Equal(o *Tree) bool {
	if t == nil || o == nil {
		return t == o
	}
	if t.Terminal != o.Terminal || !t.Symbol.Equal(o.Symbol) {
		return false
	}
	if t.Terminal {
		return t.Token == o.Token
	}
	if !t.Rule.Equal(o.Rule) || len(t.Children) != len(o.Children) {
		return false
	}
	for i := range t.Children {
		if !t.Children[i].Equal(o.Children[i]) {
			return false
		}
	}
	return true
}

// String renders the tree as an indented outline, for debugging and test
// failure output.
func (t *Tree) String() string {
	var sb strings.Builder
	t.write(&sb, 0)
	return sb.String()
}

func (t *Tree) write(sb *strings.Builder, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	if t.Terminal {
		sb.WriteString(t.Symbol.Name())
		sb.WriteString("\n")
		return
	}
	sb.WriteString(t.Symbol.Name())
	sb.WriteString("\n")
	for _, c := range t.Children {
		c.write(sb, depth+1)
	}
}
