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

type readinessCmd struct {
	date           string
	output         string
	excludeMidYear bool
}

func (*readinessCmd) Name() string     { return "readiness" }
func (*readinessCmd) Synopsis() string { return "report fulfillment readiness per demand line" }
func (*readinessCmd) Usage() string {
	return `slg readiness [-d <date>] [-o <file>]

  Prints a markdown report annotating every demand line with its stock
  balance before and after fulfillment, whether it is covered on its
  requested date, and the recovery date when it is not.
`
}

func (c *readinessCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Anchor date for opening balances. Defaults to today.")
	f.StringVar(&c.output, "o", "", "Write the readiness rows as a JSONL table to this file ('-' for stdout).")
	f.BoolVar(&c.excludeMidYear, "exclude-mid-year", false,
		"Also exclude demand parked on the 2099-07-04 sentinel from violations.")
}

func (c *readinessCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	result, _, err := runProjection(c.date, c.excludeMidYear)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.output != "" {
		err := encodeTo(c.output, func(w io.Writer) error {
			return stockledger.EncodeReadiness(w, result.Readiness)
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	fmt.Print(renderer.ReadinessMarkdown(result.Readiness))
	return subcommands.ExitSuccess
}
