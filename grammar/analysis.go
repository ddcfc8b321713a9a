package grammar

import "sort"

// endMarkerID is a sentinel SymbolID that never collides with a real
// symbol index; it stands in for ⊥, the end-of-input marker, in FOLLOW and
// lookahead sets.
const endMarkerID SymbolID = -1

type ffNodeKind int

const (
	ffFirst ffNodeKind = iota
	ffFollow
	ffTerminal
)

type ffNode struct {
	kind ffNodeKind
	sym  SymbolID
}

// Analysis computes and caches the nullable set and the FIRST/FOLLOW
// containment graph for a Grammar, plus the derived FIRST(seq), NULLABLE(seq)
// and canEndWith queries built on top of them. An Analysis borrows its
// Grammar for its entire lifetime and is safe to share by reference for
// read-only access once built.
type Analysis struct {
	g        *Grammar
	nullable []bool // indexed by SymbolID

	// FIRST/FOLLOW containment graph: edges[n] contains every node m such
	// that the set represented by n contains the set represented by m.
	edges map[ffNode][]ffNode

	// canEndWith graph: edges from A to X for every rule A -> alpha X gamma
	// with gamma nullable.
	endsWith map[SymbolID][]SymbolID

	firstCache      map[SymbolID][]SymbolID
	followCache     map[SymbolID][]SymbolID
	canEndWithCache map[SymbolID]map[SymbolID]bool
}

// Build computes the nullable set and the FIRST/FOLLOW containment graph
// for g. The Grammar must already be built (via Builder.Build or ParseDSL).
func Build(g *Grammar) *Analysis {
	a := &Analysis{
		g:               g,
		edges:           map[ffNode][]ffNode{},
		endsWith:        map[SymbolID][]SymbolID{},
		firstCache:      map[SymbolID][]SymbolID{},
		followCache:     map[SymbolID][]SymbolID{},
		canEndWithCache: map[SymbolID]map[SymbolID]bool{},
	}
	a.computeNullable()
	a.computeContainmentGraph()
	a.computeEndsWithGraph()

	// Fill every query cache up front so later First/FollowIDs/CanEndWith
	// calls only read the maps, keeping a built Analysis safe for concurrent
	// read-only use.
	for _, s := range g.Symbols() {
		a.First(s)
		a.FollowIDs(s)
		a.CanEndWith(s, s)
	}
	return a
}

// Grammar returns the Grammar this analysis was built over.
func (a *Analysis) Grammar() *Grammar { return a.g }

// computeNullable is the fixed-point described in spec §4.2: seed empty,
// repeatedly mark any rule's LHS nullable if every RHS symbol already is,
// stop when a full pass adds nothing.
func (a *Analysis) computeNullable() {
	a.nullable = make([]bool, len(a.g.symbols))
	for {
		dirty := false
		for _, r := range a.g.Rules() {
			lhs := r.LHS().ID()
			if a.nullable[lhs] {
				continue
			}
			allNullable := true
			for _, sym := range r.RHS() {
				if !a.nullable[sym.ID()] {
					allNullable = false
					break
				}
			}
			if allNullable {
				a.nullable[lhs] = true
				dirty = true
			}
		}
		if !dirty {
			break
		}
	}
}

// Nullable returns whether symbol has some derivation to ε.
func (a *Analysis) Nullable(s Symbol) bool {
	return a.nullable[s.ID()]
}

// NullableSeq returns true iff every symbol in seq is nullable. An empty
// sequence is vacuously nullable.
func (a *Analysis) NullableSeq(seq []Symbol) bool {
	for _, s := range seq {
		if !a.nullable[s.ID()] {
			return false
		}
	}
	return true
}

func (a *Analysis) link(from, to ffNode) {
	a.edges[from] = append(a.edges[from], to)
}

// computeContainmentGraph builds the edges described in spec §4.2: for each
// rule A -> X1 X2 ... Xn, link FIRST propagation, FOLLOW-from-subsequent-
// symbols, and FOLLOW inheritance edges.
func (a *Analysis) computeContainmentGraph() {
	for _, r := range a.g.Rules() {
		lhs := r.LHS()
		rhs := r.RHS()

		// FIRST propagation.
		for _, x := range rhs {
			if x.IsTerminal() {
				a.link(ffNode{ffFirst, lhs.ID()}, ffNode{ffTerminal, x.ID()})
				break
			}
			a.link(ffNode{ffFirst, lhs.ID()}, ffNode{ffFirst, x.ID()})
			if !a.nullable[x.ID()] {
				break
			}
		}

		// FOLLOW from subsequent symbols.
		for i, xi := range rhs {
			for j := i + 1; j < len(rhs); j++ {
				xj := rhs[j]
				if xj.IsTerminal() {
					a.link(ffNode{ffFollow, xi.ID()}, ffNode{ffTerminal, xj.ID()})
					break
				}
				a.link(ffNode{ffFollow, xi.ID()}, ffNode{ffFirst, xj.ID()})
				if !a.nullable[xj.ID()] {
					break
				}
			}
		}

		// FOLLOW inheritance, scanning right-to-left.
		for k := len(rhs) - 1; k >= 0; k-- {
			xk := rhs[k]
			if xk.IsNonterminal() {
				a.link(ffNode{ffFollow, xk.ID()}, ffNode{ffFollow, lhs.ID()})
			}
			if !a.nullable[xk.ID()] {
				break
			}
		}
	}
}

// computeEndsWithGraph builds edges A -> X for every rule A -> alpha X gamma
// where gamma is entirely nullable, the graph canEndWith is reachability
// over.
func (a *Analysis) computeEndsWithGraph() {
	for _, r := range a.g.Rules() {
		lhs := r.LHS().ID()
		rhs := r.RHS()
		for i := len(rhs) - 1; i >= 0; i-- {
			a.endsWith[lhs] = append(a.endsWith[lhs], rhs[i].ID())
			if !a.nullable[rhs[i].ID()] {
				break
			}
		}
	}
}

// reachableTerminals performs a reachability search from start, collecting
// every Terminal node found, deduped and sorted by SymbolID.
func (a *Analysis) reachableTerminals(start ffNode) []SymbolID {
	seen := map[ffNode]bool{start: true}
	work := []ffNode{start}
	var out []SymbolID
	for len(work) > 0 {
		n := work[len(work)-1]
		work = work[:len(work)-1]
		if n.kind == ffTerminal {
			out = append(out, n.sym)
			continue
		}
		for _, m := range a.edges[n] {
			if !seen[m] {
				seen[m] = true
				work = append(work, m)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return dedupSorted(out)
}

func dedupSorted(s []SymbolID) []SymbolID {
	if len(s) < 2 {
		return s
	}
	out := s[:1]
	for _, v := range s[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}

// First returns FIRST(X): the set of terminals that begin some string
// derivable from X.
func (a *Analysis) First(x Symbol) []Symbol {
	if x.IsTerminal() {
		return []Symbol{x}
	}
	ids, ok := a.firstCache[x.ID()]
	if !ok {
		ids = a.reachableTerminals(ffNode{ffFirst, x.ID()})
		a.firstCache[x.ID()] = ids
	}
	return idsToSymbols(a.g, ids)
}

// Follow returns FOLLOW(X): the set of terminals that can appear
// immediately after X in some sentential form. Whether ⊥ also belongs to
// FOLLOW(X) is reported separately by FollowHasEndMarker, since ⊥ is not
// itself a grammar Symbol.
func (a *Analysis) Follow(x Symbol) []Symbol {
	ids := a.FollowIDs(x)
	real := make([]SymbolID, 0, len(ids))
	for _, id := range ids {
		if id != endMarkerID {
			real = append(real, id)
		}
	}
	return idsToSymbols(a.g, real)
}

// FollowIDs is Follow but returns raw SymbolIDs. The containment graph has
// no end-marker node, so the result never includes EndMarker; use
// FollowHasEndMarker for that. Used by the table package to build LL(1)
// cells for nullable rules.
func (a *Analysis) FollowIDs(x Symbol) []SymbolID {
	ids, ok := a.followCache[x.ID()]
	if !ok {
		ids = a.reachableTerminals(ffNode{ffFollow, x.ID()})
		a.followCache[x.ID()] = ids
	}
	return ids
}

// FollowHasEndMarker returns whether ⊥ is in FOLLOW(X), per the glossary
// definition: X can appear at the end of input iff some derivation from the
// start symbol ends with X.
func (a *Analysis) FollowHasEndMarker(x Symbol) bool {
	return a.CanEndWith(a.g.StartSymbol(), x)
}

func idsToSymbols(g *Grammar, ids []SymbolID) []Symbol {
	out := make([]Symbol, len(ids))
	for i, id := range ids {
		out[i] = Symbol{g: g, id: id}
	}
	return out
}

// FirstSeq returns FIRST(seq): iterate the sequence, union FIRST(Xi) (or
// {Xi} for a terminal), stop at the first non-nullable symbol. An empty or
// all-nullable sequence yields the empty set.
func (a *Analysis) FirstSeq(seq []Symbol) []Symbol {
	seen := map[SymbolID]bool{}
	var out []Symbol
	for _, x := range seq {
		for _, f := range a.First(x) {
			if !seen[f.ID()] {
				seen[f.ID()] = true
				out = append(out, f)
			}
		}
		if !a.nullable[x.ID()] {
			break
		}
	}
	return out
}

// CanEndWith returns whether some derivation from A ends with B.
func (a *Analysis) CanEndWith(start, target Symbol) bool {
	cache, ok := a.canEndWithCache[start.ID()]
	if !ok {
		cache = a.computeCanEndWith(start.ID())
		a.canEndWithCache[start.ID()] = cache
	}
	return cache[target.ID()]
}

func (a *Analysis) computeCanEndWith(start SymbolID) map[SymbolID]bool {
	seen := map[SymbolID]bool{start: true}
	work := []SymbolID{start}
	for len(work) > 0 {
		n := work[len(work)-1]
		work = work[:len(work)-1]
		for _, m := range a.endsWith[n] {
			if !seen[m] {
				seen[m] = true
				work = append(work, m)
			}
		}
	}
	return seen
}
