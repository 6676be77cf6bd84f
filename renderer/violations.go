package renderer

import (
	"strings"

	"github.com/etnz/stockledger"
)

// ViolationsMarkdown generates the shortage report: every projection point
// where an item's balance goes negative, in ledger order.
func ViolationsMarkdown(violations []stockledger.Row) string {
	r := &mdRenderer{Builder: &strings.Builder{}}

	r.Printf("# Projected Shortages\n\n")

	if len(violations) == 0 {
		r.Printf("No shortage projected. All demand is covered.\n")
		return r.String()
	}

	r.Printf("| Date | Item | Kind | Delta | Projected | Order | Customer |\n")
	r.Printf("|:---|:---|:---|---:|---:|:---|:---|\n")
	for _, row := range violations {
		r.Printf("| %s | %s | %s | %s | %s | %s | %s |\n",
			date(row.Date), row.Item, row.Kind, row.Delta, row.Projected, row.OrderNo, row.Customer)
	}
	r.Printf("\n")
	return r.String()
}
