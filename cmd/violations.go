package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/stockledger"
	"github.com/etnz/stockledger/renderer"
	"github.com/google/subcommands"
)

type violationsCmd struct {
	date           string
	output         string
	excludeMidYear bool
}

func (*violationsCmd) Name() string     { return "violations" }
func (*violationsCmd) Synopsis() string { return "list every projected negative stock balance" }
func (*violationsCmd) Usage() string {
	return `slg violations [-d <date>] [-o <file>]

  Prints a markdown report of every ledger row where the projected balance
  goes negative. With -o the rows are written as a JSONL table instead.
`
}

func (c *violationsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Anchor date for opening balances. Defaults to today.")
	f.StringVar(&c.output, "o", "", "Write the violations as a JSONL table to this file ('-' for stdout).")
	f.BoolVar(&c.excludeMidYear, "exclude-mid-year", false,
		"Also exclude demand parked on the 2099-07-04 sentinel from violations.")
}

func (c *violationsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	result, _, err := runProjection(c.date, c.excludeMidYear)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.output != "" {
		err := encodeTo(c.output, func(w io.Writer) error {
			return stockledger.EncodeViolations(w, result.Violations)
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	fmt.Print(renderer.ViolationsMarkdown(result.Violations))
	return subcommands.ExitSuccess
}
