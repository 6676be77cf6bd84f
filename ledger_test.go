package stockledger

import (
	"testing"
	"time"
)

var anchor = NewDate(2025, time.January, 15)

func buildTestLedger(t *testing.T, demand []DemandLine, supply []ExpandedRow, stock []StockCount, opts Options) *Ledger {
	t.Helper()
	if opts.Today.IsZero() {
		opts.Today = anchor
	}
	return BuildLedger(BuildEvents(demand, supply), stock, opts)
}

func TestBuildLedger_Shortage(t *testing.T) {
	l := buildTestLedger(t,
		[]DemandLine{{Item: "A", Quantity: Q(15), Requested: AssignedOn(NewDate(2025, time.February, 1))}},
		nil,
		[]StockCount{{Item: "A", OnHand: Q(10)}},
		Options{},
	)

	rows := l.ItemRows("A")
	if len(rows) != 2 {
		t.Fatalf("ItemRows(A) = %d rows, want OPEN + OUT", len(rows))
	}
	if rows[0].Kind != Open || !rows[0].Projected.Equal(Q(10)) {
		t.Errorf("OPEN row projected = %s, want 10", rows[0].Projected)
	}
	if rows[1].Kind != Out || !rows[1].Projected.Equal(Q(-5)) {
		t.Errorf("OUT row projected = %s, want -5", rows[1].Projected)
	}

	violations := l.Violations()
	if len(violations) != 1 || !violations[0].Projected.Equal(Q(-5)) {
		t.Fatalf("Violations() = %+v, want the single -5 row", violations)
	}
}

func TestBuildLedger_SameDayDeliveryCoversDemand(t *testing.T) {
	d := NewDate(2025, time.February, 1)
	l := buildTestLedger(t,
		[]DemandLine{{Item: "A", Quantity: Q(20), Requested: AssignedOn(d)}},
		[]ExpandedRow{{Item: "A", Quantity: Q(20), Effective: d}},
		[]StockCount{{Item: "A", OnHand: Q(0)}},
		Options{},
	)

	rows := l.ItemRows("A")
	if len(rows) != 3 {
		t.Fatalf("ItemRows(A) = %d rows, want OPEN + IN + OUT", len(rows))
	}
	want := []struct {
		kind      Kind
		projected Quantity
	}{
		{Open, Q(0)},
		{In, Q(20)},
		{Out, Q(0)},
	}
	for i, w := range want {
		if rows[i].Kind != w.kind || !rows[i].Projected.Equal(w.projected) {
			t.Errorf("rows[%d] = {%s %s}, want {%s %s}",
				i, rows[i].Kind, rows[i].Projected, w.kind, w.projected)
		}
	}
	if len(l.Violations()) != 0 {
		t.Errorf("Violations() = %+v, want none: delivery covers same-day demand", l.Violations())
	}
}

func TestBuildLedger_UnknownItemOpensAtZero(t *testing.T) {
	l := buildTestLedger(t,
		[]DemandLine{{Item: "GHOST", Quantity: Q(5), Requested: AssignedOn(NewDate(2025, time.February, 1))}},
		nil,
		nil,
		Options{},
	)

	rows := l.ItemRows("GHOST")
	if len(rows) != 2 {
		t.Fatalf("ItemRows(GHOST) = %d rows, want OPEN + OUT", len(rows))
	}
	if !l.Opening("GHOST").IsZero() {
		t.Errorf("Opening(GHOST) = %s, want 0", l.Opening("GHOST"))
	}
	if !rows[1].Projected.Equal(Q(-5)) {
		t.Errorf("projected = %s, want -5: missing snapshot items must surface shortages", rows[1].Projected)
	}
}

func TestBuildLedger_SnapshotLastOccurrenceWins(t *testing.T) {
	l := buildTestLedger(t, nil, nil,
		[]StockCount{
			{Item: "A", OnHand: Q(3)},
			{Item: "A", OnHand: Q(8)},
		},
		Options{},
	)

	if !l.Opening("A").Equal(Q(8)) {
		t.Errorf("Opening(A) = %s, want 8 (last snapshot row wins)", l.Opening("A"))
	}
	if l.Len() != 1 {
		t.Errorf("Len() = %d, want a single OPEN row", l.Len())
	}
}

func TestBuildLedger_ItemWithoutEventsStillOpens(t *testing.T) {
	l := buildTestLedger(t, nil, nil, []StockCount{{Item: "IDLE", OnHand: Q(4)}}, Options{})

	rows := l.ItemRows("IDLE")
	if len(rows) != 1 || rows[0].Kind != Open || !rows[0].Projected.Equal(Q(4)) {
		t.Fatalf("ItemRows(IDLE) = %+v, want one OPEN row at 4", rows)
	}
	if rows[0].Date != anchor {
		t.Errorf("OPEN row dated %s, want %s", rows[0].Date, anchor)
	}
}

func TestBuildLedger_OutRowsCarryBalances(t *testing.T) {
	l := buildTestLedger(t,
		[]DemandLine{{Item: "A", Quantity: Q(4), Requested: AssignedOn(NewDate(2025, time.February, 1))}},
		nil,
		[]StockCount{{Item: "A", OnHand: Q(10)}},
		Options{},
	)

	for _, row := range l.Rows() {
		switch row.Kind {
		case Out:
			if row.BalanceBefore == nil || row.BalanceAfter == nil {
				t.Fatal("OUT row must carry BalanceBefore and BalanceAfter")
			}
			if !row.BalanceBefore.Equal(Q(10)) || !row.BalanceAfter.Equal(Q(6)) {
				t.Errorf("balances = %s -> %s, want 10 -> 6", row.BalanceBefore, row.BalanceAfter)
			}
		default:
			if row.BalanceBefore != nil || row.BalanceAfter != nil {
				t.Errorf("%s row must not carry balances", row.Kind)
			}
		}
	}
}

func TestViolations_Sentinels(t *testing.T) {
	demand := []DemandLine{
		{Item: "A", Quantity: Q(1), Requested: NewShipDate(NewDate(2025, time.July, 4))},
		{Item: "B", Quantity: Q(1), Requested: NewShipDate(NewDate(2025, time.December, 31))},
	}

	l := buildTestLedger(t, demand, nil, nil, Options{})
	violations := l.Violations()
	if len(violations) != 1 || violations[0].Item != "A" {
		t.Fatalf("Violations() = %+v, want only the mid-year-parked shortage", violations)
	}
	if violations[0].Date != MidYearSentinel {
		t.Errorf("violation date = %s, want %s", violations[0].Date, MidYearSentinel)
	}

	l = buildTestLedger(t, demand, nil, nil, Options{ExcludeMidYearSentinel: true})
	if got := l.Violations(); len(got) != 0 {
		t.Errorf("Violations() with ExcludeMidYearSentinel = %+v, want none", got)
	}
}

func TestViolations_SkipUnknownDates(t *testing.T) {
	l := buildTestLedger(t,
		[]DemandLine{{Item: "A", Quantity: Q(5)}}, // no requested date at all
		nil, nil, Options{},
	)

	if got := l.Violations(); len(got) != 0 {
		t.Errorf("Violations() = %+v, want none for undated demand", got)
	}
}

func TestBuildLedger_CatalogMergesSnapshotCodes(t *testing.T) {
	catalog := NewCatalog(map[string]string{"A-SHORT": "A"})
	l := buildTestLedger(t,
		[]DemandLine{{Item: "A", Quantity: Q(5), Requested: AssignedOn(NewDate(2025, time.February, 1))}},
		nil,
		[]StockCount{{Item: "A-SHORT", OnHand: Q(5)}},
		Options{Catalog: catalog},
	)

	if !l.Opening("A").Equal(Q(5)) {
		t.Errorf("Opening(A) = %s, want the A-SHORT snapshot row mapped to A", l.Opening("A"))
	}
	if len(l.Violations()) != 0 {
		t.Errorf("Violations() = %+v, want none", l.Violations())
	}
}

func TestSummaries(t *testing.T) {
	l := buildTestLedger(t,
		[]DemandLine{
			{Item: "SHORT", Quantity: Q(15), Requested: AssignedOn(NewDate(2025, time.February, 1))},
			{Item: "OK", Quantity: Q(5), Requested: AssignedOn(NewDate(2025, time.February, 1))},
		},
		nil,
		[]StockCount{
			{Item: "SHORT", OnHand: Q(10)},
			{Item: "OK", OnHand: Q(20)},
			{Item: "EMPTY", OnHand: Q(0)},
		},
		Options{},
	)

	summaries := l.Summaries()
	if len(summaries) != 3 {
		t.Fatalf("Summaries() = %d items, want 3", len(summaries))
	}

	// Worst first.
	if summaries[0].Item != "SHORT" {
		t.Fatalf("summaries[0] = %q, want SHORT", summaries[0].Item)
	}
	s := summaries[0]
	if s.OK || !s.MinProjected.Equal(Q(-5)) {
		t.Errorf("SHORT summary = %+v, want min -5, not OK", s)
	}
	if s.FirstShortage != NewDate(2025, time.February, 1) || !s.AtFirstShortage.Equal(Q(-5)) {
		t.Errorf("first shortage = %s at %s, want 2025-02-01 at -5", s.FirstShortage, s.AtFirstShortage)
	}
	if s.Status() != "Shortage" {
		t.Errorf("Status() = %q, want Shortage", s.Status())
	}

	for _, s := range summaries[1:] {
		if !s.OK || !s.FirstShortage.IsZero() {
			t.Errorf("%s summary = %+v, want OK with no shortage date", s.Item, s)
		}
	}

	// EMPTY never goes negative but has nothing on hand either.
	for _, s := range summaries {
		if s.Item == "EMPTY" && s.Status() != "Shortage" {
			t.Errorf("EMPTY Status() = %q, want Shortage (no stock on hand)", s.Status())
		}
		if s.Item == "OK" && s.Status() != "Available" {
			t.Errorf("OK Status() = %q, want Available", s.Status())
		}
	}
}
