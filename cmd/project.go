package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/etnz/stockledger"
	"github.com/google/subcommands"
)

// projectCmd holds the flags for the 'project' subcommand.
type projectCmd struct {
	date           string
	outDir         string
	excludeMidYear bool
}

func (*projectCmd) Name() string     { return "project" }
func (*projectCmd) Synopsis() string { return "run the full stock projection and write all tables" }
func (*projectCmd) Usage() string {
	return `slg project [-d <date>] [-o <dir>]

  Runs the projection pipeline on the demand, supply and stock tables and
  writes ledger.jsonl, summary.jsonl, violations.jsonl and readiness.jsonl
  into the output directory.
`
}

func (c *projectCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Anchor date for opening balances. Defaults to today.")
	f.StringVar(&c.outDir, "o", ".", "Directory for the output tables.")
	f.BoolVar(&c.excludeMidYear, "exclude-mid-year", false,
		"Also exclude demand parked on the 2099-07-04 sentinel from violations.")
}

func (c *projectCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	result, _, err := runProjection(c.date, c.excludeMidYear)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	outputs := []struct {
		name   string
		encode func(w io.Writer) error
	}{
		{"ledger.jsonl", func(w io.Writer) error { return stockledger.EncodeLedger(w, result.Ledger) }},
		{"summary.jsonl", func(w io.Writer) error { return stockledger.EncodeSummaries(w, result.Summaries) }},
		{"violations.jsonl", func(w io.Writer) error { return stockledger.EncodeViolations(w, result.Violations) }},
		{"readiness.jsonl", func(w io.Writer) error { return stockledger.EncodeReadiness(w, result.Readiness) }},
	}
	for _, out := range outputs {
		path := filepath.Join(c.outDir, out.name)
		if err := encodeTo(path, out.encode); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("wrote %s\n", path)
	}

	return subcommands.ExitSuccess
}
