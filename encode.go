package stockledger

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// This file decodes the three input tables from their JSONL form: one JSON
// object per line, keys named after the table's column contract. The policy
// is lenient for values (bad dates become unknown dates, bad quantities
// become zero) but strict for shape: a line missing a required column aborts
// the run with a SchemaError.

// jline is one decoded JSONL line, with typed access helpers implementing
// the lenient coercion policy.
type jline map[string]json.RawMessage

// require returns a SchemaError if any of the named columns is absent.
func (l jline) require(table string, columns ...string) error {
	for _, col := range columns {
		if _, ok := l[col]; !ok {
			return &SchemaError{Table: table, Column: col}
		}
	}
	return nil
}

func (l jline) str(key string) string {
	var s string
	if raw, ok := l[key]; ok {
		// a non-string value is left empty on purpose
		json.Unmarshal(raw, &s)
	}
	return s
}

// quantity coerces a cell to a Quantity: absent, blank or malformed cells
// count zero rather than failing the run.
func (l jline) quantity(key string) Quantity {
	raw, ok := l[key]
	if !ok {
		return Q(0)
	}
	var d decimal.Decimal
	if err := json.Unmarshal(raw, &d); err != nil {
		return Q(0)
	}
	return Q(d)
}

// date coerces a cell to a Date; absent or malformed cells are the zero
// (unknown) Date.
func (l jline) date(key string) Date {
	return coerceDate(l.str(key))
}

func (l jline) money(key string) Money {
	var m Money
	if raw, ok := l[key]; ok {
		json.Unmarshal(raw, &m)
	}
	return m
}

// extra collects every column not claimed by the table contract, so that
// passthrough columns survive the round trip without the core knowing them.
func (l jline) extra(claimed ...string) map[string]any {
	isClaimed := make(map[string]bool, len(claimed))
	for _, c := range claimed {
		isClaimed[c] = true
	}
	var extra map[string]any
	for key, raw := range l {
		if isClaimed[key] {
			continue
		}
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			continue
		}
		if extra == nil {
			extra = make(map[string]any)
		}
		extra[key] = v
	}
	return extra
}

// decodeLines scans r line by line, parses each non-empty line as a JSON
// object and hands it to row. The first error stops the scan.
func decodeLines(r io.Reader, table string, row func(jline) error) error {
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		var l jline
		if err := json.Unmarshal(line, &l); err != nil {
			return fmt.Errorf("cannot parse %s line %d: %q: %w", table, n, string(line), err)
		}
		if err := row(l); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading %s table: %w", table, err)
	}
	return nil
}

// extras embeds the passthrough columns of a row, if any.
func extras(jw *jsonObjectWriter, extra map[string]any) {
	if len(extra) > 0 {
		jw.EmbedFrom(extra)
	}
}

// EncodeDemand writes the demand table in its canonical JSONL form.
func EncodeDemand(w io.Writer, lines []DemandLine) error {
	for i, d := range lines {
		var jw jsonObjectWriter
		jw.Append("item", d.Item)
		jw.Append("quantity", d.Quantity)
		jw.Optional("date", d.Requested.LedgerDate())
		jw.Optional("order", d.OrderNo)
		jw.Optional("customerPO", d.CustomerPO)
		jw.Optional("customer", d.Customer)
		jw.Optional("amount", d.Amount)
		extras(&jw, d.Extra)
		if err := writeLine(w, &jw); err != nil {
			return fmt.Errorf("cannot write demand line %d: %w", i, err)
		}
	}
	return nil
}

// EncodeSupply writes the supply table in its canonical JSONL form.
func EncodeSupply(w io.Writer, rows []SupplyRow) error {
	for i, s := range rows {
		var jw jsonObjectWriter
		jw.Append("item", s.Item)
		jw.Append("quantity", s.Quantity)
		jw.Optional("date", s.Date)
		jw.Optional("description", s.Description)
		jw.Append("classification", s.Classification)
		jw.Optional("order", s.OrderNo)
		jw.Optional("amount", s.Amount)
		extras(&jw, s.Extra)
		if err := writeLine(w, &jw); err != nil {
			return fmt.Errorf("cannot write supply row %d: %w", i, err)
		}
	}
	return nil
}

// EncodeStock writes the inventory snapshot in its canonical JSONL form.
func EncodeStock(w io.Writer, counts []StockCount) error {
	for i, c := range counts {
		var jw jsonObjectWriter
		jw.Append("item", c.Item)
		jw.Append("onHand", c.OnHand)
		jw.Optional("available", c.Available)
		jw.Optional("onOrder", c.OnOrder)
		jw.Optional("salesPerWeek", c.SalesPerWeek)
		extras(&jw, c.Extra)
		if err := writeLine(w, &jw); err != nil {
			return fmt.Errorf("cannot write stock count %d: %w", i, err)
		}
	}
	return nil
}

// DecodeDemand reads the demand table: columns {item, quantity, date,
// order, customerPO, customer, amount}. item and quantity are required.
func DecodeDemand(r io.Reader) ([]DemandLine, error) {
	var lines []DemandLine
	err := decodeLines(r, "demand", func(l jline) error {
		if err := l.require("demand", "item", "quantity"); err != nil {
			return err
		}
		lines = append(lines, DemandLine{
			Item:       l.str("item"),
			Quantity:   l.quantity("quantity"),
			Requested:  NewShipDate(l.date("date")),
			OrderNo:    l.str("order"),
			CustomerPO: l.str("customerPO"),
			Customer:   l.str("customer"),
			Amount:     l.money("amount"),
			Extra:      l.extra("item", "quantity", "date", "order", "customerPO", "customer", "amount"),
		})
		return nil
	})
	return lines, err
}

// DecodeSupply reads the supply table: columns {item, quantity, date,
// description, classification, order, amount}. item, quantity and
// classification are required; a missing description is an empty one.
func DecodeSupply(r io.Reader) ([]SupplyRow, error) {
	var rows []SupplyRow
	err := decodeLines(r, "supply", func(l jline) error {
		if err := l.require("supply", "item", "quantity", "classification"); err != nil {
			return err
		}
		rows = append(rows, SupplyRow{
			Item:           l.str("item"),
			Quantity:       l.quantity("quantity"),
			Date:           l.date("date"),
			Description:    cleanSpace(l.str("description")),
			Classification: ParseClassification(l.str("classification")),
			OrderNo:        l.str("order"),
			Amount:         l.money("amount"),
			Extra:          l.extra("item", "quantity", "date", "description", "classification", "order", "amount"),
		})
		return nil
	})
	return rows, err
}

// DecodeStock reads the inventory snapshot: columns {item, onHand,
// available, onOrder, salesPerWeek}. item and onHand are required.
func DecodeStock(r io.Reader) ([]StockCount, error) {
	var counts []StockCount
	err := decodeLines(r, "stock", func(l jline) error {
		if err := l.require("stock", "item", "onHand"); err != nil {
			return err
		}
		counts = append(counts, StockCount{
			Item:         l.str("item"),
			OnHand:       l.quantity("onHand"),
			Available:    l.quantity("available"),
			OnOrder:      l.quantity("onOrder"),
			SalesPerWeek: l.quantity("salesPerWeek"),
			Extra:        l.extra("item", "onHand", "available", "onOrder", "salesPerWeek"),
		})
		return nil
	})
	return counts, err
}
