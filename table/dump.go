package table

import (
	"fmt"
	"sort"

	"github.com/dekarrin/rosed"
	"github.com/kallisti-dev/grammardeck/grammar"
)

func actionCell(acts []Action) string {
	switch {
	case len(acts) == 0:
		return ""
	case len(acts) > 1:
		cell := ""
		for i, a := range acts {
			if i > 0 {
				cell += " / "
			}
			cell += actionCell([]Action{a})
		}
		return cell
	}
	switch act := acts[0]; act.Kind {
	case Halt:
		return "acc"
	case Reduce:
		return fmt.Sprintf("r(%s)", act.Rule.String())
	case Shift:
		return fmt.Sprintf("s%d", act.State)
	default:
		return ""
	}
}

// String renders the table as a state/action/goto grid, in the style of a
// classic LR table dump: one row per state, one column per terminal (plus
// end-of-input) for actions, one column per nonterminal for goto.
func (t *LRTable) String() string {
	terms := t.g.Terminals()
	sort.Slice(terms, func(i, j int) bool { return terms[i].Name() < terms[j].Name() })
	nonterms := t.g.NonTerminals()
	sort.Slice(nonterms, func(i, j int) bool { return nonterms[i].Name() < nonterms[j].Name() })

	headers := []string{"state", "|"}
	for _, term := range terms {
		headers = append(headers, "A:"+term.Name())
	}
	headers = append(headers, "A:$", "|")
	for _, nt := range nonterms {
		headers = append(headers, "G:"+nt.Name())
	}

	data := [][]string{headers}
	for i := 0; i < t.NumStates(); i++ {
		row := []string{fmt.Sprintf("%d", i), "|"}
		for _, term := range terms {
			row = append(row, actionCell(t.Action(i, term.ID())))
		}
		row = append(row, actionCell(t.Action(i, grammar.EndMarker)), "|")
		for _, nt := range nonterms {
			cell := ""
			if next, ok := t.Goto(i, nt.ID()); ok {
				cell = fmt.Sprintf("%d", next)
			}
			row = append(row, cell)
		}
		data = append(data, row)
	}

	return rosed.
		Edit("").
		InsertTableOpts(0, data, 10, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}

// String renders the table as a grid of nonterminal rows against terminal
// (plus end-of-input) columns, each cell holding the predicted rule.
func (t *LL1Table) String() string {
	nonterms := t.g.NonTerminals()
	sort.Slice(nonterms, func(i, j int) bool { return nonterms[i].Name() < nonterms[j].Name() })
	terms := t.g.Terminals()
	sort.Slice(terms, func(i, j int) bool { return terms[i].Name() < terms[j].Name() })

	headers := []string{"NT", "|"}
	for _, term := range terms {
		headers = append(headers, term.Name())
	}
	headers = append(headers, "$")

	data := [][]string{headers}
	for _, nt := range nonterms {
		row := []string{nt.Name(), "|"}
		for _, term := range terms {
			row = append(row, ll1Cell(t, nt, term.ID()))
		}
		row = append(row, ll1Cell(t, nt, grammar.EndMarker))
		data = append(data, row)
	}

	return rosed.
		Edit("").
		InsertTableOpts(0, data, 10, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}

func ll1Cell(t *LL1Table, nt grammar.Symbol, look grammar.SymbolID) string {
	rules := t.cells[nt.ID()][look]
	switch len(rules) {
	case 0:
		return ""
	case 1:
		return rules[0].String()
	default:
		cell := ""
		for i, r := range rules {
			if i > 0 {
				cell += " / "
			}
			cell += r.String()
		}
		return cell
	}
}
