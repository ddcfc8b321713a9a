package grammar

import (
	"fmt"
	"sort"
	"strings"
)

// EndMarker is the distinguished end-of-input marker, ⊥ in spec notation.
// It is never a real grammar Symbol; lookahead sets and FOLLOW report its
// presence out of band via this constant (see Item.HasEndMarker,
// Analysis.FollowHasEndMarker).
const EndMarker SymbolID = endMarkerID

// Item is a dotted rule: (rule, dot-position, optional lookahead). For an
// LR(0) item the lookahead is absent (Lookahead returns nil, IsLR1 is
// false). For an LR(1) item the lookahead is a set of terminals possibly
// including EndMarker.
type Item struct {
	g         *Grammar
	rule      RuleID
	dot       int
	lookahead []SymbolID // nil for LR(0); sorted unique for LR(1)
}

// Rule returns the rule this item is positioned within.
func (it Item) Rule() Rule { return Rule{g: it.g, id: it.rule} }

// Dot returns the dot position, in [0, len(rhs)].
func (it Item) Dot() int { return it.dot }

// IsLR1 returns whether this item carries a lookahead set.
func (it Item) IsLR1() bool { return it.lookahead != nil }

// Lookahead returns a copy of the item's lookahead set. Empty for an
// LR(0) item.
func (it Item) Lookahead() []SymbolID {
	return append([]SymbolID(nil), it.lookahead...)
}

// HasEndMarker returns whether EndMarker is in the item's lookahead set.
func (it Item) HasEndMarker() bool {
	for _, s := range it.lookahead {
		if s == endMarkerID {
			return true
		}
	}
	return false
}

// NextSymbol returns the symbol immediately after the dot, if any.
func (it Item) NextSymbol() (Symbol, bool) {
	rhs := it.Rule().RHS()
	if it.dot >= len(rhs) {
		return Symbol{}, false
	}
	return rhs[it.dot], true
}

// Rest returns the symbols after the dot (β in spec notation).
func (it Item) Rest() []Symbol {
	rhs := it.Rule().RHS()
	if it.dot >= len(rhs) {
		return nil
	}
	return rhs[it.dot:]
}

// IsFinished returns whether the dot is at the end of the right-hand side.
func (it Item) IsFinished() bool {
	return it.dot == len(it.Rule().RHS())
}

// Step returns the item with the dot advanced by one position, if it is
// not already finished.
func (it Item) Step() (Item, bool) {
	if it.IsFinished() {
		return Item{}, false
	}
	return Item{g: it.g, rule: it.rule, dot: it.dot + 1, lookahead: it.lookahead}, true
}

// String renders "LHS -> α . β" (" {a, b, $}" appended for an LR(1) item).
func (it Item) String() string {
	rule := it.Rule()
	lhs := rule.LHS().Name()
	rhs := rule.RHS()

	var sb strings.Builder
	sb.WriteString(lhs)
	sb.WriteString(" ->")
	for i, sym := range rhs {
		if i == it.dot {
			sb.WriteString(" .")
		}
		sb.WriteString(" ")
		sb.WriteString(sym.Name())
	}
	if it.dot == len(rhs) {
		sb.WriteString(" .")
	}

	if it.IsLR1() {
		sb.WriteString(" {")
		sb.WriteString(symbolIDsToString(it.g, it.lookahead))
		sb.WriteString("}")
	}
	return sb.String()
}

func symbolIDsToString(g *Grammar, ids []SymbolID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		if id == endMarkerID {
			parts[i] = "$"
		} else {
			parts[i] = Symbol{g: g, id: id}.Name()
		}
	}
	return strings.Join(parts, ", ")
}

type itemKey struct {
	rule RuleID
	dot  int
}

// ItemSet is an unordered collection of items that is closed under
// ε-closure. State equality is item-set equality; for LR(1) sets, items
// sharing (rule, dot) are squashed by unioning their lookahead sets, so a
// set built incrementally always holds at most one entry per (rule, dot)
// pair.
type ItemSet struct {
	g   *Grammar
	lr1 bool
	m   map[itemKey][]SymbolID
}

// NewLR0ItemSet builds the ε-closure of the given LR(0) items (lookahead is
// ignored; pass items built with Rule.LR0Item).
func NewLR0ItemSet(g *Grammar, a *Analysis, seed ...Item) *ItemSet {
	s := &ItemSet{g: g, lr1: false, m: map[itemKey][]SymbolID{}}
	for _, it := range seed {
		s.m[itemKey{it.rule, it.dot}] = nil
	}
	return s.Closure(a)
}

// NewLR1ItemSet builds the ε-closure of the given LR(1) items.
func NewLR1ItemSet(g *Grammar, a *Analysis, seed ...Item) *ItemSet {
	s := &ItemSet{g: g, lr1: true, m: map[itemKey][]SymbolID{}}
	for _, it := range seed {
		s.addRaw(itemKey{it.rule, it.dot}, it.lookahead)
	}
	return s.Closure(a)
}

// LR0Item builds the LR(0) item (r, dot) with no lookahead.
func (r Rule) LR0Item(dot int) Item {
	return Item{g: r.g, rule: r.id, dot: dot}
}

// LR1Item builds the LR(1) item (r, dot, lookahead), deduping and sorting
// the lookahead.
func (r Rule) LR1Item(dot int, lookahead []SymbolID) Item {
	return Item{g: r.g, rule: r.id, dot: dot, lookahead: sortedUniqueIDs(lookahead)}
}

func sortedUniqueIDs(ids []SymbolID) []SymbolID {
	cp := append([]SymbolID(nil), ids...)
	sort.Slice(cp, func(i, j int) bool { return cp[i] < cp[j] })
	return dedupSorted(cp)
}

func unionIDs(a, b []SymbolID) []SymbolID {
	return sortedUniqueIDs(append(append([]SymbolID(nil), a...), b...))
}

// addRaw unions lookahead into the entry for key, creating it if absent.
// Returns whether the set's contents changed.
func (s *ItemSet) addRaw(key itemKey, lookahead []SymbolID) bool {
	existing, ok := s.m[key]
	if !ok {
		if s.lr1 {
			s.m[key] = sortedUniqueIDs(lookahead)
		} else {
			s.m[key] = nil
		}
		return true
	}
	if !s.lr1 {
		return false
	}
	merged := unionIDs(existing, lookahead)
	if len(merged) == len(existing) {
		return false
	}
	s.m[key] = merged
	return true
}

// IsEmpty returns whether the set has no items.
func (s *ItemSet) IsEmpty() bool { return len(s.m) == 0 }

// Len returns the number of distinct (rule, dot) items in the set.
func (s *ItemSet) Len() int { return len(s.m) }

// Items returns the items in the set, ordered by (rule, dot) for
// deterministic iteration.
func (s *ItemSet) Items() []Item {
	keys := make([]itemKey, 0, len(s.m))
	for k := range s.m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].rule != keys[j].rule {
			return keys[i].rule < keys[j].rule
		}
		return keys[i].dot < keys[j].dot
	})
	out := make([]Item, len(keys))
	for i, k := range keys {
		var la []SymbolID
		if s.lr1 {
			la = s.m[k]
		}
		out[i] = Item{g: s.g, rule: k.rule, dot: k.dot, lookahead: la}
	}
	return out
}

// Closure computes the ε-closure of s under analysis a, per spec §4.3: LR(0)
// closure omits lookahead; LR(1) closure computes FIRST(β), folding in the
// parent lookahead when β is entirely nullable.
func (s *ItemSet) Closure(a *Analysis) *ItemSet {
	out := &ItemSet{g: s.g, lr1: s.lr1, m: map[itemKey][]SymbolID{}}
	for k, v := range s.m {
		out.m[k] = append([]SymbolID(nil), v...)
	}

	for {
		dirty := false
		for _, it := range out.Items() {
			next, ok := it.NextSymbol()
			if !ok || !next.IsNonterminal() {
				continue
			}

			var lookahead []SymbolID
			if out.lr1 {
				beta := it.Rest()[1:]
				lookahead = a.FirstSeqIDs(beta)
				if a.NullableSeq(beta) {
					lookahead = unionIDs(lookahead, it.lookahead)
				}
			}

			for _, r := range s.g.Rules() {
				if r.LHS().Equal(next) {
					if out.addRaw(itemKey{r.id, 0}, lookahead) {
						dirty = true
					}
				}
			}
		}
		if !dirty {
			break
		}
	}

	return out
}

// Goto computes GOTO(I, X) = closure of the items stepped over X, per
// spec §4.3. The result may be empty if no item in I has X at the dot.
func (s *ItemSet) Goto(a *Analysis, x Symbol) *ItemSet {
	stepped := &ItemSet{g: s.g, lr1: s.lr1, m: map[itemKey][]SymbolID{}}
	for _, it := range s.Items() {
		next, ok := it.NextSymbol()
		if !ok || !next.Equal(x) {
			continue
		}
		stepped.addRaw(itemKey{it.rule, it.dot + 1}, it.lookahead)
	}
	return stepped.Closure(a)
}

// Key returns a canonical, deterministic signature for the set, suitable
// for use as a map key when deduplicating states in a canonical collection.
// Two sets with the same Key are Equal, and vice versa.
func (s *ItemSet) Key() string {
	var sb strings.Builder
	for _, it := range s.Items() {
		fmt.Fprintf(&sb, "%d.%d", it.rule, it.dot)
		if s.lr1 {
			sb.WriteString("[")
			for _, id := range it.lookahead {
				fmt.Fprintf(&sb, "%d,", id)
			}
			sb.WriteString("]")
		}
		sb.WriteString("|")
	}
	return sb.String()
}

// Equal returns whether s and o contain exactly the same items (after
// squashing), regardless of discovery order.
func (s *ItemSet) Equal(o *ItemSet) bool {
	return s.Key() == o.Key()
}

// FirstSeqIDs is FirstSeq but returns raw SymbolIDs, for use inside the
// closure computation where the sequence may be empty.
func (a *Analysis) FirstSeqIDs(seq []Symbol) []SymbolID {
	out := a.FirstSeq(seq)
	ids := make([]SymbolID, len(out))
	for i, s := range out {
		ids[i] = s.ID()
	}
	return sortedUniqueIDs(ids)
}
