package stockledger

// ReadinessRow annotates one demand line of the ledger with whether its
// requested date is covered by projected supply, and if not, when stock
// first recovers.
type ReadinessRow struct {
	Date          Date
	Item          string
	Delta         Quantity
	OrderNo       string
	CustomerPO    string
	Customer      string
	BalanceBefore Quantity
	BalanceAfter  Quantity
	CoveredOnDate bool
	CoveredBy     Date // first recovery date; zero when stock never recovers
	Amount        Money
}

// Readiness walks every OUT row of the ledger. A demand line is covered on
// its date when serving it leaves the balance non-negative. For uncovered
// lines, the item's ledger is scanned forward for the first point at or
// after the requested date where the projection is non-negative; a missing
// recovery point is a valid terminal state (perpetual shortage), not an
// error.
func Readiness(l *Ledger) []ReadinessRow {
	out := make([]ReadinessRow, 0)
	for _, row := range l.Rows() {
		if row.Kind != Out {
			continue
		}
		r := ReadinessRow{
			Date:          row.Date,
			Item:          row.Item,
			Delta:         row.Delta,
			OrderNo:       row.OrderNo,
			CustomerPO:    row.CustomerPO,
			Customer:      row.Customer,
			BalanceBefore: *row.BalanceBefore,
			BalanceAfter:  *row.BalanceAfter,
			CoveredOnDate: !row.BalanceAfter.IsNegative(),
			Amount:        row.Amount,
		}
		if !r.CoveredOnDate {
			r.CoveredBy = recoveryDate(l.ItemRows(row.Item), row.Date)
		}
		out = append(out, r)
	}
	return out
}

// recoveryDate finds the first point at or after 'from' where the item's
// projection is back to non-negative.
func recoveryDate(rows []Row, from Date) Date {
	for _, row := range rows {
		if row.Date.Before(from) {
			continue
		}
		if !row.Projected.IsNegative() {
			return row.Date
		}
	}
	return Date{}
}

// ShortfallValue totals, per currency, the monetary value of demand lines
// that are not covered on their requested date. Lines without an amount are
// skipped; the result is best-effort pricing for reporting, not accounting.
func ShortfallValue(readiness []ReadinessRow) map[string]Money {
	totals := make(map[string]Money)
	for _, r := range readiness {
		if r.CoveredOnDate || r.Amount.IsZero() {
			continue
		}
		cur := r.Amount.Currency()
		totals[cur] = totals[cur].Add(r.Amount)
	}
	return totals
}
