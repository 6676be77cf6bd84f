package stockledger

import (
	"fmt"
	"io"
)

// This file encodes the output tables in JSONL form with a stable column
// order, so that successive runs of the pipeline diff cleanly.

func writeLine(w io.Writer, jw *jsonObjectWriter) error {
	data, err := jw.MarshalJSON()
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

func encodeRow(w io.Writer, row Row) error {
	var jw jsonObjectWriter
	jw.Optional("date", row.Date)
	jw.Append("item", row.Item)
	jw.Append("kind", row.Kind)
	jw.Append("delta", row.Delta)
	jw.Append("cumDelta", row.Cum)
	jw.Append("opening", row.Opening)
	jw.Append("projected", row.Projected)
	jw.Optional("balanceBefore", row.BalanceBefore)
	jw.Optional("balanceAfter", row.BalanceAfter)
	jw.Append("source", row.Source)
	jw.Optional("order", row.OrderNo)
	jw.Optional("customerPO", row.CustomerPO)
	jw.Optional("customer", row.Customer)
	jw.Optional("amount", row.Amount)
	return writeLine(w, &jw)
}

// EncodeLedger writes every projection row, one JSON object per line.
func EncodeLedger(w io.Writer, l *Ledger) error {
	for i, row := range l.Rows() {
		if err := encodeRow(w, row); err != nil {
			return fmt.Errorf("cannot write ledger row %d: %w", i, err)
		}
	}
	return nil
}

// EncodeViolations writes the shortage rows in the same shape as the ledger.
func EncodeViolations(w io.Writer, violations []Row) error {
	for i, row := range violations {
		if err := encodeRow(w, row); err != nil {
			return fmt.Errorf("cannot write violation row %d: %w", i, err)
		}
	}
	return nil
}

// EncodeSummaries writes the per-item summary table.
func EncodeSummaries(w io.Writer, summaries []ItemSummary) error {
	for _, s := range summaries {
		var jw jsonObjectWriter
		jw.Append("item", s.Item)
		jw.Append("opening", s.Opening)
		jw.Append("minProjected", s.MinProjected)
		jw.Optional("firstShortage", s.FirstShortage)
		if !s.FirstShortage.IsZero() {
			jw.Append("atFirstShortage", s.AtFirstShortage)
		}
		jw.Append("ok", s.OK)
		jw.Append("status", s.Status())
		if err := writeLine(w, &jw); err != nil {
			return fmt.Errorf("cannot write summary for %q: %w", s.Item, err)
		}
	}
	return nil
}

// EncodeReadiness writes the per-demand-line readiness table.
func EncodeReadiness(w io.Writer, readiness []ReadinessRow) error {
	for i, r := range readiness {
		var jw jsonObjectWriter
		jw.Optional("date", r.Date)
		jw.Append("item", r.Item)
		jw.Append("delta", r.Delta)
		jw.Optional("order", r.OrderNo)
		jw.Optional("customerPO", r.CustomerPO)
		jw.Optional("customer", r.Customer)
		jw.Append("balanceBefore", r.BalanceBefore)
		jw.Append("balanceAfter", r.BalanceAfter)
		jw.Append("coveredOnDate", r.CoveredOnDate)
		jw.Optional("coveredBy", r.CoveredBy)
		jw.Optional("amount", r.Amount)
		if err := writeLine(w, &jw); err != nil {
			return fmt.Errorf("cannot write readiness row %d: %w", i, err)
		}
	}
	return nil
}

// EncodeExpanded writes the expanded supply table, mostly for inspection of
// what the bundle expander produced.
func EncodeExpanded(w io.Writer, rows []ExpandedRow) error {
	for i, row := range rows {
		var jw jsonObjectWriter
		jw.Append("parent", row.Parent)
		jw.Append("item", row.Item)
		jw.Append("perUnit", row.PerUnit)
		jw.Append("quantity", row.Quantity)
		jw.Append("isParent", row.IsParent)
		jw.Optional("date", row.Date)
		jw.Optional("effective", row.Effective)
		jw.Append("classification", row.Classification)
		jw.Optional("order", row.OrderNo)
		if err := writeLine(w, &jw); err != nil {
			return fmt.Errorf("cannot write expanded row %d: %w", i, err)
		}
	}
	return nil
}

// EncodeRestocks writes the restocking advice table.
func EncodeRestocks(w io.Writer, restocks []Restock) error {
	for _, r := range restocks {
		var jw jsonObjectWriter
		jw.Append("item", r.Item)
		jw.Append("available", r.Available)
		jw.Append("onOrder", r.OnOrder)
		jw.Append("recommended", r.Recommended)
		if err := writeLine(w, &jw); err != nil {
			return fmt.Errorf("cannot write restock advice for %q: %w", r.Item, err)
		}
	}
	return nil
}
