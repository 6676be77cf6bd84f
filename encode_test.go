package stockledger

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestDecodeDemand(t *testing.T) {
	input := `{"item": "A", "quantity": 5, "date": "2025-02-01", "order": "SO-1", "customer": "ACME", "amount": {"amount": 100, "currency": "EUR"}, "warehouse": "B2"}
{"item": "B", "quantity": "3", "date": ""}
{"item": "C", "quantity": "garbage", "date": "not-a-date"}
`
	lines, err := DecodeDemand(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeDemand() error = %v", err)
	}
	if len(lines) != 3 {
		t.Fatalf("DecodeDemand() = %d lines, want 3", len(lines))
	}

	a := lines[0]
	if a.Item != "A" || !a.Quantity.Equal(Q(5)) || a.OrderNo != "SO-1" || a.Customer != "ACME" {
		t.Errorf("line A = %+v", a)
	}
	if a.Requested.LedgerDate() != NewDate(2025, time.February, 1) {
		t.Errorf("line A date = %s", a.Requested.LedgerDate())
	}
	if !a.Amount.Equal(M(100, "EUR")) {
		t.Errorf("line A amount = %s, want 100 EUR", a.Amount)
	}
	if a.Extra["warehouse"] != "B2" {
		t.Errorf("unclaimed columns must survive: %v", a.Extra)
	}

	// Quoted numbers still parse; blank dates are unknown.
	b := lines[1]
	if !b.Quantity.Equal(Q(3)) || b.Requested.Assigned() {
		t.Errorf("line B = %+v, want quantity 3, unassigned", b)
	}

	// Bad cells degrade instead of failing the table.
	c := lines[2]
	if !c.Quantity.IsZero() || !c.Requested.LedgerDate().IsZero() {
		t.Errorf("line C = %+v, want zero quantity and unknown date", c)
	}
}

func TestDecodeDemand_PlaceholderDates(t *testing.T) {
	input := `{"item": "A", "quantity": 1, "date": "2025-07-04"}
{"item": "B", "quantity": 1, "date": "2023-12-31"}
`
	lines, err := DecodeDemand(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeDemand() error = %v", err)
	}
	if lines[0].Requested.Reason() != UnassignedMidYear {
		t.Errorf("July-4 reason = %q, want %q", lines[0].Requested.Reason(), UnassignedMidYear)
	}
	if lines[1].Requested.Reason() != UnassignedYearEnd {
		t.Errorf("Dec-31 reason = %q, want %q", lines[1].Requested.Reason(), UnassignedYearEnd)
	}
}

func TestDecodeDemand_MissingColumn(t *testing.T) {
	_, err := DecodeDemand(strings.NewReader(`{"item": "A"}`))
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("DecodeDemand() error = %v, want a SchemaError", err)
	}
	if schemaErr.Table != "demand" || schemaErr.Column != "quantity" {
		t.Errorf("SchemaError = %+v", schemaErr)
	}
}

func TestDecodeSupply(t *testing.T) {
	input := `{"item": "SEMIL-2047", "quantity": 2, "date": "2025-03-01", "description": "SEMIL-2047GC-CRL, including 2x SSD-1TB", "classification": "Pre", "order": "PO-9"}
{"item": "POC-400", "quantity": 4, "classification": "discrete"}
`
	rows, err := DecodeSupply(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeSupply() error = %v", err)
	}
	if rows[0].Classification != Bundle {
		t.Errorf("classification %q decoded as %s, want Bundle", "Pre", rows[0].Classification)
	}
	if rows[1].Classification != Discrete {
		t.Errorf("classification = %s, want Discrete", rows[1].Classification)
	}
	if _, err := DecodeSupply(strings.NewReader(`{"item": "A", "quantity": 1}`)); err == nil {
		t.Error("DecodeSupply() without classification should fail")
	}
}

func TestDecodeStock(t *testing.T) {
	input := `{"item": "A", "onHand": 12, "available": 10, "onOrder": 5, "salesPerWeek": 2.5}
`
	counts, err := DecodeStock(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeStock() error = %v", err)
	}
	c := counts[0]
	if !c.OnHand.Equal(Q(12)) || !c.Available.Equal(Q(10)) || !c.OnOrder.Equal(Q(5)) || !c.SalesPerWeek.Equal(Q(2.5)) {
		t.Errorf("count = %+v", c)
	}

	_, err = DecodeStock(strings.NewReader(`{"item": "A"}`))
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) || schemaErr.Column != "onHand" {
		t.Errorf("DecodeStock() error = %v, want SchemaError on onHand", err)
	}
}

func TestEncodeLedger(t *testing.T) {
	l := buildTestLedger(t,
		[]DemandLine{{Item: "A", Quantity: Q(15), Requested: AssignedOn(NewDate(2025, time.February, 1)), OrderNo: "SO-1"}},
		nil,
		[]StockCount{{Item: "A", OnHand: Q(10)}},
		Options{},
	)

	var sb strings.Builder
	if err := EncodeLedger(&sb, l); err != nil {
		t.Fatalf("EncodeLedger() error = %v", err)
	}
	want := `{"date":"2025-01-15","item":"A","kind":"OPEN","delta":0,"cumDelta":0,"opening":10,"projected":10,"source":"snapshot"}
{"date":"2025-02-01","item":"A","kind":"OUT","delta":-15,"cumDelta":-15,"opening":10,"projected":-5,"balanceBefore":10,"balanceAfter":-5,"source":"demand","order":"SO-1"}
`
	if sb.String() != want {
		t.Errorf("EncodeLedger() =\n%s\nwant\n%s", sb.String(), want)
	}
}

func TestEncodeDemand_RoundTrip(t *testing.T) {
	lines := []DemandLine{{
		Item:      "A",
		Quantity:  Q(5),
		Requested: NewShipDate(NewDate(2025, time.July, 4)),
		OrderNo:   "SO-1",
		Extra:     map[string]any{"warehouse": "B2"},
	}}

	var sb strings.Builder
	if err := EncodeDemand(&sb, lines); err != nil {
		t.Fatalf("EncodeDemand() error = %v", err)
	}

	decoded, err := DecodeDemand(strings.NewReader(sb.String()))
	if err != nil {
		t.Fatalf("DecodeDemand() error = %v", err)
	}
	got := decoded[0]
	if got.Item != "A" || !got.Quantity.Equal(Q(5)) || got.OrderNo != "SO-1" {
		t.Errorf("round trip = %+v", got)
	}
	// The placeholder survives the trip through its sentinel date.
	if got.Requested.Reason() != UnassignedMidYear {
		t.Errorf("Reason() = %q, want %q", got.Requested.Reason(), UnassignedMidYear)
	}
	if got.Extra["warehouse"] != "B2" {
		t.Errorf("Extra = %v", got.Extra)
	}
}
