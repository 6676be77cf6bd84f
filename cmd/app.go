// Package cmd implements the CLI application to project warehouse stock
// against open demand and incoming supply.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"

	"github.com/etnz/stockledger"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&projectCmd{}, "projection")
	c.Register(&summaryCmd{}, "projection")
	c.Register(&violationsCmd{}, "projection")
	c.Register(&readinessCmd{}, "projection")
	c.Register(&expandCmd{}, "projection")
	c.Register(&restockCmd{}, "projection")

	c.Register(&importCmd{}, "tables")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var demandFile = flag.String("demand-file", "demand.jsonl", "Path to the open sales demand table (JSONL format)")
var supplyFile = flag.String("supply-file", "supply.jsonl", "Path to the shipment schedule table (JSONL format)")
var stockFile = flag.String("stock-file", "stock.jsonl", "Path to the inventory snapshot table (JSONL format)")
var catalogFile = flag.String("catalog-file", "catalog.jsonl", "Path to the item synonym catalog (JSONL format)")

// LoadCatalog reads the synonym catalog from the app catalog path. A missing
// file is an empty catalog, not an error.
func LoadCatalog() (*stockledger.Catalog, error) {
	f, err := os.Open(*catalogFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Println("warning, catalog file does not exist, item codes pass through unmapped")
		return stockledger.NewCatalog(nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open catalog %q: %w", *catalogFile, err)
	}
	defer f.Close()
	return stockledger.DecodeCatalog(f)
}

// LoadInputs decodes the three input tables from the app file paths.
func LoadInputs() (stockledger.Inputs, error) {
	var in stockledger.Inputs

	demand, err := decodeFile(*demandFile, stockledger.DecodeDemand)
	if err != nil {
		return in, err
	}
	supply, err := decodeFile(*supplyFile, stockledger.DecodeSupply)
	if err != nil {
		return in, err
	}
	stock, err := decodeFile(*stockFile, stockledger.DecodeStock)
	if err != nil {
		return in, err
	}

	in.Demand, in.Supply, in.Stock = demand, supply, stock
	return in, nil
}

// decodeFile opens a table file and decodes it. A missing file is an empty
// table: a run with no supply, or no demand, is a legitimate question.
func decodeFile[T any](path string, decode func(r io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("warning, table %q does not exist, using an empty table instead", path)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open table %q: %w", path, err)
	}
	defer f.Close()

	rows, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode table %q: %w", path, err)
	}
	return rows, nil
}

// runProjection loads all inputs and runs the pipeline anchored on the
// given date string ("" means today).
func runProjection(dateFlag string, excludeMidYear bool) (*stockledger.Result, stockledger.Date, error) {
	on := stockledger.Today()
	if dateFlag != "" {
		var err error
		on, err = stockledger.ParseDate(dateFlag)
		if err != nil {
			return nil, on, fmt.Errorf("invalid date: %w", err)
		}
	}

	catalog, err := LoadCatalog()
	if err != nil {
		return nil, on, err
	}
	in, err := LoadInputs()
	if err != nil {
		return nil, on, err
	}

	result := stockledger.Project(in, stockledger.Options{
		Today:                  on,
		Catalog:                catalog,
		ExcludeMidYearSentinel: excludeMidYear,
	})
	return result, on, nil
}

// encodeTo writes a table to a file, or to stdout when path is "-".
func encodeTo(path string, encode func(w io.Writer) error) error {
	if path == "-" {
		return encode(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create %q: %w", path, err)
	}
	defer f.Close()
	if err := encode(f); err != nil {
		return fmt.Errorf("could not write %q: %w", path, err)
	}
	return nil
}
