package stockledger

import (
	"strings"
	"testing"
	"time"
)

// testInputs is a small but complete scenario: a bundle shipment feeding two
// components, demand on one of them, and a snapshot with a synonym code.
func testInputs() (Inputs, Options) {
	in := Inputs{
		Demand: []DemandLine{
			{Item: "SSD-1TB", Quantity: Q(8), Requested: AssignedOn(NewDate(2025, time.February, 10)), OrderNo: "SO-77", Customer: "ACME", Amount: M(800, "EUR")},
			{Item: "i9-13900E", Quantity: Q(1), Requested: NewShipDate(NewDate(2025, time.December, 31))},
		},
		Supply: []SupplyRow{
			{
				Item:           "SEMIL-2047",
				Quantity:       Q(3),
				Date:           NewDate(2025, time.February, 1),
				Description:    "SEMIL-2047GC-CRL, including i9-13900E, 2x SSD-1TB",
				Classification: Bundle,
				OrderNo:        "PO-5",
			},
		},
		Stock: []StockCount{
			{Item: "SSD–1TB", OnHand: Q(1), Available: Q(1), SalesPerWeek: Q(2)},
		},
	}
	opts := Options{Today: NewDate(2025, time.January, 15)}
	return in, opts
}

func TestProject(t *testing.T) {
	in, opts := testInputs()
	result := Project(in, opts)

	// 2 components + 1 parent row out of the single bundle.
	if len(result.Expanded) != 3 {
		t.Fatalf("Expanded = %d rows, want 3", len(result.Expanded))
	}

	// The bundle ships Feb 1, effective Feb 6, before the Feb 10 demand:
	// opening 1 + 6 inbound against 8 requested leaves -1.
	rows := result.Ledger.ItemRows("SSD-1TB")
	if len(rows) != 3 {
		t.Fatalf("ItemRows(SSD-1TB) = %d rows, want OPEN + IN + OUT", len(rows))
	}
	if !rows[2].Projected.Equal(Q(-1)) {
		t.Errorf("final SSD-1TB projection = %s, want -1", rows[2].Projected)
	}

	if len(result.Violations) != 1 || result.Violations[0].Item != "SSD-1TB" {
		t.Fatalf("Violations = %+v, want the SSD-1TB shortage only", result.Violations)
	}

	// The year-end-parked CPU demand is not a violation but is readiness-tracked.
	var cpu *ReadinessRow
	for i := range result.Readiness {
		if result.Readiness[i].Item == "i9-13900E" {
			cpu = &result.Readiness[i]
		}
	}
	if cpu == nil {
		t.Fatal("no readiness row for the i9-13900E demand")
	}
	if !cpu.CoveredOnDate {
		t.Errorf("CPU demand = %+v, want covered: 3 inbound against 1 requested", cpu)
	}

	// Restocking: 4 weeks * 2/week = 8, minus 1 available.
	if len(result.Restocks) != 1 || !result.Restocks[0].Recommended.Equal(Q(7)) {
		t.Errorf("Restocks = %+v, want 7 units of SSD-1TB", result.Restocks)
	}

	if !result.Assigned["SSD-1TB"].Equal(Q(8)) {
		t.Errorf("Assigned[SSD-1TB] = %s, want 8", result.Assigned["SSD-1TB"])
	}
	if _, ok := result.Assigned["i9-13900E"]; ok {
		t.Error("year-end-parked demand must not count as assigned")
	}
}

func TestProject_Deterministic(t *testing.T) {
	in, opts := testInputs()

	var first, second strings.Builder
	if err := EncodeLedger(&first, Project(in, opts).Ledger); err != nil {
		t.Fatalf("EncodeLedger() error = %v", err)
	}
	if err := EncodeLedger(&second, Project(in, opts).Ledger); err != nil {
		t.Fatalf("EncodeLedger() error = %v", err)
	}
	if first.String() != second.String() {
		t.Error("two runs on the same inputs produced different ledgers")
	}
}

func TestProject_LeavesInputsUntouched(t *testing.T) {
	in, opts := testInputs()
	opts.Catalog = NewCatalog(map[string]string{"SSD-1TB": "SSD-1TB-FULL"})

	Project(in, opts)

	if in.Demand[0].Item != "SSD-1TB" {
		t.Errorf("Project() mutated its demand input: %q", in.Demand[0].Item)
	}
}
