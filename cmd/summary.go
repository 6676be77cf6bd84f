package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/stockledger"
	"github.com/etnz/stockledger/renderer"
	"github.com/google/subcommands"
)

type summaryCmd struct {
	date           string
	excludeMidYear bool
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "print the per-item stock projection summary" }
func (*summaryCmd) Usage() string {
	return `slg summary [-d <date>]

  Prints a markdown report of each item's opening balance, worst projected
  balance and first shortage date, shortages first.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Anchor date for opening balances. Defaults to today.")
	f.BoolVar(&c.excludeMidYear, "exclude-mid-year", false,
		"Also exclude demand parked on the 2099-07-04 sentinel from violations.")
}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	result, on, err := runProjection(c.date, c.excludeMidYear)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	shortfall := stockledger.ShortfallValue(result.Readiness)
	fmt.Print(renderer.SummaryMarkdown(on, result.Summaries, shortfall))
	return subcommands.ExitSuccess
}
