package stockledger

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// This file imports vendor JSON exports into the canonical input tables.
// Every vendor lays its rows out differently; instead of bespoke glue per
// layout, a FieldMapping binds each canonical column to a jsonpath
// expression evaluated against the vendor row.

// FieldMapping maps canonical column names (the same names the JSONL codecs
// use) to jsonpath expressions, e.g. {"item": "$.ModelName", "quantity":
// "$.Qty"}.
type FieldMapping map[string]string

// DecodeFieldMapping reads a mapping as a single JSON object.
func DecodeFieldMapping(r io.Reader) (FieldMapping, error) {
	var m FieldMapping
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("cannot parse field mapping: %w", err)
	}
	return m, nil
}

// eval evaluates the mapping of one field against a vendor row. Unmapped
// fields and unmatched paths yield nil.
func (m FieldMapping) eval(field string, jobj any) any {
	path, ok := m[field]
	if !ok {
		return nil
	}
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil
	}
	// because jsonpath is never clear about whether it returns a list of 1
	// answer, or a single answer: keep the first one if any
	if jlist, ok := jval.([]any); ok {
		if len(jlist) == 0 {
			return nil
		}
		jval = jlist[0]
	}
	return jval
}

func (m FieldMapping) str(field string, jobj any) string {
	switch v := m.eval(field, jobj).(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return decimal.NewFromFloat(v).String()
	default:
		return ""
	}
}

// quantity applies the lenient numeric policy: anything that is not a
// number (or a numeric string) counts zero.
func (m FieldMapping) quantity(field string, jobj any) Quantity {
	switch v := m.eval(field, jobj).(type) {
	case float64:
		return Q(v)
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return Q(0)
		}
		return Q(d)
	default:
		return Q(0)
	}
}

func (m FieldMapping) date(field string, jobj any) Date {
	return coerceDate(m.str(field, jobj))
}

// importLines scans vendor rows in JSONL form and hands each decoded row to
// the given function.
func importLines(r io.Reader, table string, row func(jobj any)) error {
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		var jobj any
		if err := json.Unmarshal(line, &jobj); err != nil {
			return fmt.Errorf("cannot parse %s vendor line %d: %w", table, n, err)
		}
		row(jobj)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading %s vendor rows: %w", table, err)
	}
	return nil
}

// ImportDemand reads vendor rows and maps them to demand lines. The mapping
// must bind at least "item" and "quantity".
func ImportDemand(r io.Reader, mapping FieldMapping) ([]DemandLine, error) {
	for _, col := range []string{"item", "quantity"} {
		if _, ok := mapping[col]; !ok {
			return nil, &SchemaError{Table: "demand", Column: col}
		}
	}

	var lines []DemandLine
	err := importLines(r, "demand", func(jobj any) {
		lines = append(lines, DemandLine{
			Item:       mapping.str("item", jobj),
			Quantity:   mapping.quantity("quantity", jobj),
			Requested:  NewShipDate(mapping.date("date", jobj)),
			OrderNo:    mapping.str("order", jobj),
			CustomerPO: mapping.str("customerPO", jobj),
			Customer:   mapping.str("customer", jobj),
		})
	})
	return lines, err
}

// ImportSupply reads vendor rows and maps them to supply rows. The mapping
// must bind at least "item", "quantity" and "classification".
func ImportSupply(r io.Reader, mapping FieldMapping) ([]SupplyRow, error) {
	for _, col := range []string{"item", "quantity", "classification"} {
		if _, ok := mapping[col]; !ok {
			return nil, &SchemaError{Table: "supply", Column: col}
		}
	}

	var rows []SupplyRow
	err := importLines(r, "supply", func(jobj any) {
		rows = append(rows, SupplyRow{
			Item:           mapping.str("item", jobj),
			Quantity:       mapping.quantity("quantity", jobj),
			Date:           mapping.date("date", jobj),
			Description:    cleanSpace(mapping.str("description", jobj)),
			Classification: ParseClassification(mapping.str("classification", jobj)),
			OrderNo:        mapping.str("order", jobj),
		})
	})
	return rows, err
}

// ImportStock reads vendor rows and maps them to stock counts. The mapping
// must bind at least "item" and "onHand".
func ImportStock(r io.Reader, mapping FieldMapping) ([]StockCount, error) {
	for _, col := range []string{"item", "onHand"} {
		if _, ok := mapping[col]; !ok {
			return nil, &SchemaError{Table: "stock", Column: col}
		}
	}

	var counts []StockCount
	err := importLines(r, "stock", func(jobj any) {
		counts = append(counts, StockCount{
			Item:         mapping.str("item", jobj),
			OnHand:       mapping.quantity("onHand", jobj),
			Available:    mapping.quantity("available", jobj),
			OnOrder:      mapping.quantity("onOrder", jobj),
			SalesPerWeek: mapping.quantity("salesPerWeek", jobj),
		})
	})
	return counts, err
}
