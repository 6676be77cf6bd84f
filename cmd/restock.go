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

type restockCmd struct {
	output string
}

func (*restockCmd) Name() string     { return "restock" }
func (*restockCmd) Synopsis() string { return "recommend restocking quantities from sales velocity" }
func (*restockCmd) Usage() string {
	return `slg restock [-o <file>]

  Compares each item's available and on-order stock against its recent
  sales velocity and recommends an order quantity covering the sales
  horizon. With -o the advice is written as a JSONL table instead.
`
}

func (c *restockCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Write the restocking advice as a JSONL table to this file ('-' for stdout).")
}

func (c *restockCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	catalog, err := LoadCatalog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	stock, err := decodeFile(*stockFile, stockledger.DecodeStock)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	restocks := stockledger.RestockAdvice(stock, catalog)

	if c.output != "" {
		err := encodeTo(c.output, func(w io.Writer) error {
			return stockledger.EncodeRestocks(w, restocks)
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	fmt.Print(renderer.RestockMarkdown(restocks))
	return subcommands.ExitSuccess
}
