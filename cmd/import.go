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

// importCmd converts a vendor export into one of the canonical input tables.
type importCmd struct {
	table   string
	mapping string
	input   string
	output  string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "convert a vendor export into a canonical input table" }
func (*importCmd) Usage() string {
	return `slg import -table <demand|supply|stock> -mapping <file> [-i <file>] [-o <file>]

  Reads vendor rows in JSONL form and maps each one onto the canonical
  columns of the chosen table, using a mapping of column names to jsonpath
  expressions, e.g. {"item": "$.ModelName", "quantity": "$.Qty"}.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.table, "table", "", "Target table: demand, supply or stock.")
	f.StringVar(&c.mapping, "mapping", "", "Path to the field mapping (JSON object).")
	f.StringVar(&c.input, "i", "-", "Vendor rows to import ('-' for stdin).")
	f.StringVar(&c.output, "o", "-", "Write the imported table to this file ('-' for stdout).")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.mapping == "" {
		fmt.Fprintln(os.Stderr, "Error: -mapping is required")
		return subcommands.ExitUsageError
	}

	mf, err := os.Open(c.mapping)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not open mapping: %v\n", err)
		return subcommands.ExitFailure
	}
	mapping, err := stockledger.DecodeFieldMapping(mf)
	mf.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	in := os.Stdin
	if c.input != "-" {
		in, err = os.Open(c.input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: could not open input: %v\n", err)
			return subcommands.ExitFailure
		}
		defer in.Close()
	}

	var encode func(w io.Writer) error
	switch c.table {
	case "demand":
		lines, err := stockledger.ImportDemand(in, mapping)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		encode = func(w io.Writer) error { return stockledger.EncodeDemand(w, lines) }
	case "supply":
		rows, err := stockledger.ImportSupply(in, mapping)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		encode = func(w io.Writer) error { return stockledger.EncodeSupply(w, rows) }
	case "stock":
		counts, err := stockledger.ImportStock(in, mapping)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		encode = func(w io.Writer) error { return stockledger.EncodeStock(w, counts) }
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown table %q, expecting demand, supply or stock\n", c.table)
		return subcommands.ExitUsageError
	}

	if err := encodeTo(c.output, encode); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
