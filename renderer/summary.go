package renderer

import (
	"slices"
	"strings"

	"github.com/etnz/stockledger"
)

// SummaryMarkdown generates the per-item stock summary report, worst items
// first, followed by the total value of demand at risk when line amounts
// are known.
func SummaryMarkdown(on stockledger.Date, summaries []stockledger.ItemSummary, shortfall map[string]stockledger.Money) string {
	r := &mdRenderer{Builder: &strings.Builder{}}

	r.Printf("# Stock Projection Summary as of %s\n\n", on)

	if len(summaries) == 0 {
		r.Printf("No items in demand, supply or stock.\n")
		return r.String()
	}

	shortages := 0
	for _, s := range summaries {
		if !s.OK {
			shortages++
		}
	}
	r.Printf("%d items projected, %d in shortage.\n\n", len(summaries), shortages)

	r.Printf("| Item | Opening | Min Projected | First Shortage | Status |\n")
	r.Printf("|:---|---:|---:|:---|:---|\n")
	for _, s := range summaries {
		r.Printf("| %s | %s | %s | %s | %s |\n",
			s.Item, s.Opening, s.MinProjected, date(s.FirstShortage), s.Status())
	}
	r.Printf("\n")

	if len(shortfall) > 0 {
		r.Printf("## Demand at Risk\n\n")
		r.Printf("| Currency | Amount |\n")
		r.Printf("|:---|---:|\n")
		for _, cur := range sortedCurrencies(shortfall) {
			r.Printf("| %s | %s |\n", cur, shortfall[cur])
		}
		r.Printf("\n")
	}

	return r.String()
}

func sortedCurrencies(m map[string]stockledger.Money) []string {
	currencies := make([]string, 0, len(m))
	for cur := range m {
		currencies = append(currencies, cur)
	}
	slices.Sort(currencies)
	return currencies
}
