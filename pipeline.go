package stockledger

// Result holds every table a projection run derives from one snapshot of
// demand, supply and stock. All of it is recomputed wholesale on each run;
// nothing is carried over between runs.
type Result struct {
	Expanded   []ExpandedRow
	Ledger     *Ledger
	Summaries  []ItemSummary
	Violations []Row
	Readiness  []ReadinessRow
	Assigned   map[string]Quantity
	Restocks   []Restock
}

// Project runs the whole pipeline: bundle expansion, event building, ledger
// projection, and readiness annotation. It is a pure function of its inputs;
// running it twice on the same tables yields identical results.
func Project(in Inputs, opts Options) *Result {
	demand := canonicalizeDemand(in.Demand, opts.Catalog)
	expanded := Expand(in.Supply, opts.Catalog, opts.leadDays())
	events := BuildEvents(demand, expanded)
	ledger := BuildLedger(events, in.Stock, opts)

	return &Result{
		Expanded:   expanded,
		Ledger:     ledger,
		Summaries:  ledger.Summaries(),
		Violations: ledger.Violations(),
		Readiness:  Readiness(ledger),
		Assigned:   AssignedDemand(demand, opts.Catalog),
		Restocks:   RestockAdvice(in.Stock, opts.Catalog),
	}
}

// canonicalizeDemand resolves demand item codes through the catalog, leaving
// the input table untouched.
func canonicalizeDemand(demand []DemandLine, catalog *Catalog) []DemandLine {
	out := make([]DemandLine, len(demand))
	for i, line := range demand {
		line.Item = catalog.Canonicalize(line.Item)
		out[i] = line
	}
	return out
}
