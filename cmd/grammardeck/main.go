/*
Grammardeck builds and dumps a parse table for a grammar given in the
grammardeck DSL.

Usage:

	grammardeck [flags] FILE

The flags are:

	-v, --version
		Give the current version of grammardeck and then exit.

	-t, --table={ll1,lr0,lr1}
		Select which table kind to build. Defaults to lr1.

	-s, --strict
		Exit with a non-zero status if the built table has any conflicts,
		after printing them.

FILE holds grammar rules in the grammardeck DSL (see package grammar's
ParseDSL); "-" or no FILE reads from stdin.
*/
package main

import (
	"fmt"
	"os"

	"github.com/kallisti-dev/grammardeck/grammar"
	"github.com/kallisti-dev/grammardeck/internal/version"
	"github.com/kallisti-dev/grammardeck/table"
	"github.com/spf13/pflag"
)

const (
	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota
	// ExitUsageError indicates an unknown --table value or a grammar file
	// that cannot be read or parsed.
	ExitUsageError
	// ExitConflicts indicates --strict was given and the built table has
	// conflicts.
	ExitConflicts
)

var (
	returnCode  = ExitSuccess
	flagVersion = pflag.BoolP("version", "v", false, "Gives the version info")
	tableKind   = pflag.StringP("table", "t", "lr1", "Table kind to build: ll1, lr0, or lr1")
	strict      = pflag.BoolP("strict", "s", false, "Exit non-zero if the built table has conflicts")
)

func main() {
	defer func() { os.Exit(returnCode) }()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	src := os.Stdin
	if pflag.NArg() > 0 && pflag.Arg(0) != "-" {
		f, err := os.Open(pflag.Arg(0))
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = ExitUsageError
			return
		}
		defer f.Close()
		src = f
	}

	g, err := grammar.ParseDSL(src)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitUsageError
		return
	}

	a := grammar.Build(g)

	var dump string
	var conflicts []table.Conflict
	switch *tableKind {
	case "ll1":
		t := table.BuildLL1Table(g, a)
		dump = t.String()
		conflicts = t.Conflicts()
	case "lr0":
		t := table.BuildLR0Table(g, a)
		dump = t.String()
		conflicts = t.Conflicts()
	case "lr1":
		t := table.BuildLR1Table(g, a)
		dump = t.String()
		conflicts = t.Conflicts()
	default:
		fmt.Fprintf(os.Stderr, "ERROR: unknown table kind %q (want ll1, lr0, or lr1)\n", *tableKind)
		returnCode = ExitUsageError
		return
	}

	fmt.Println(dump)

	if len(conflicts) > 0 {
		fmt.Fprintf(os.Stderr, "\n%d conflict(s):\n", len(conflicts))
		for _, c := range conflicts {
			fmt.Fprintf(os.Stderr, "  %s\n", c.String())
		}
		if *strict {
			returnCode = ExitConflicts
		}
	}
}
