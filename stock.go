package stockledger

// restockCoverWeeks is the sales horizon the restocking advice aims to keep
// on hand or on order.
const restockCoverWeeks = 4

// AssignedDemand totals, per canonical item, the outbound quantity whose
// requested ship date is a real commitment. Demand parked on a placeholder
// date is unassigned backlog and does not count.
func AssignedDemand(demand []DemandLine, catalog *Catalog) map[string]Quantity {
	totals := make(map[string]Quantity)
	for _, line := range demand {
		if !line.Requested.Assigned() || !line.Quantity.IsPositive() {
			continue
		}
		item := catalog.Canonicalize(line.Item)
		totals[item] = totals[item].Add(line.Quantity)
	}
	return totals
}

// Restock is a purchasing recommendation for one item.
type Restock struct {
	Item        string
	Available   Quantity
	OnOrder     Quantity
	Recommended Quantity
}

// RestockAdvice recommends a reorder quantity per item: enough to cover
// restockCoverWeeks of trailing sales beyond what is available or already
// on order, rounded up to whole units. Items whose position already covers
// the horizon are omitted.
func RestockAdvice(stock []StockCount, catalog *Catalog) []Restock {
	advice := make([]Restock, 0)
	for _, count := range stock {
		target := count.SalesPerWeek.Mul(Q(restockCoverWeeks))
		shortfall := target.Sub(count.Available).Sub(count.OnOrder)
		if !shortfall.IsPositive() {
			continue
		}
		advice = append(advice, Restock{
			Item:        catalog.Canonicalize(count.Item),
			Available:   count.Available,
			OnOrder:     count.OnOrder,
			Recommended: shortfall.Ceil(),
		})
	}
	return advice
}
