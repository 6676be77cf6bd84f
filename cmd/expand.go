package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/stockledger"
	"github.com/google/subcommands"
)

type expandCmd struct {
	output string
}

func (*expandCmd) Name() string     { return "expand" }
func (*expandCmd) Synopsis() string { return "expand supply bundles into component rows" }
func (*expandCmd) Usage() string {
	return `slg expand [-o <file>]

  Expands every bundle row of the supply table into its component rows,
  applies the pre-installation lead time, and writes the result as a
  JSONL table.
`
}

func (c *expandCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "-", "Write the expanded supply to this file ('-' for stdout).")
}

func (c *expandCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	catalog, err := LoadCatalog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	supply, err := decodeFile(*supplyFile, stockledger.DecodeSupply)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	expanded := stockledger.Expand(supply, catalog, stockledger.PreInstallLeadDays)
	err = encodeTo(c.output, func(w io.Writer) error {
		return stockledger.EncodeExpanded(w, expanded)
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
