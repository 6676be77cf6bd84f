package renderer

import (
	"strings"

	"github.com/etnz/stockledger"
)

// ReadinessMarkdown generates the order readiness report: one line per
// demand line, with coverage on the requested date and the recovery date
// for uncovered lines.
func ReadinessMarkdown(readiness []stockledger.ReadinessRow) string {
	r := &mdRenderer{Builder: &strings.Builder{}}

	r.Printf("# Order Readiness\n\n")

	if len(readiness) == 0 {
		r.Printf("No open demand lines.\n")
		return r.String()
	}

	r.Printf("| Date | Item | Qty | Order | Customer | Before | After | Covered | Covered By |\n")
	r.Printf("|:---|:---|---:|:---|:---|---:|---:|:---:|:---|\n")
	for _, row := range readiness {
		coveredBy := ""
		if !row.CoveredOnDate {
			coveredBy = "never"
			if !row.CoveredBy.IsZero() {
				coveredBy = row.CoveredBy.String()
			}
		}
		r.Printf("| %s | %s | %s | %s | %s | %s | %s | %s | %s |\n",
			date(row.Date), row.Item, row.Delta.Neg(), row.OrderNo, row.Customer,
			row.BalanceBefore, row.BalanceAfter, mark(row.CoveredOnDate), coveredBy)
	}
	r.Printf("\n")
	return r.String()
}

// RestockMarkdown generates the restocking advice report.
func RestockMarkdown(restocks []stockledger.Restock) string {
	r := &mdRenderer{Builder: &strings.Builder{}}

	r.Printf("# Restocking Advice\n\n")

	if len(restocks) == 0 {
		r.Printf("Current stock and open orders cover the sales horizon.\n")
		return r.String()
	}

	r.Printf("| Item | Available | On Order | Recommended |\n")
	r.Printf("|:---|---:|---:|---:|\n")
	for _, row := range restocks {
		r.Printf("| %s | %s | %s | %s |\n", row.Item, row.Available, row.OnOrder, row.Recommended)
	}
	r.Printf("\n")
	return r.String()
}
