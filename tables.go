package stockledger

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"
)

// This file defines the input tables of the projection pipeline. They are
// produced by the decode boundary (encode.go, impexp.go) from upstream
// exports; the core never reads files itself.

// Classification tags a supply row as a pre-installed bundle that needs
// expansion, or as a discrete shipment of a single item.
type Classification string

const (
	Bundle   Classification = "Bundle"
	Discrete Classification = "Discrete"
)

// ParseClassification maps upstream tag spellings to a Classification.
// "bundle" and the legacy "pre" mean Bundle; anything else is Discrete.
func ParseClassification(s string) Classification {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bundle", "pre", "pre-installed":
		return Bundle
	default:
		return Discrete
	}
}

// UnassignedReason tells why a requested ship date is a placeholder rather
// than a real commitment.
type UnassignedReason string

const (
	// UnassignedMidYear is the July-4 placeholder used upstream for demand
	// waiting for a ship date.
	UnassignedMidYear UnassignedReason = "mid-year placeholder"
	// UnassignedYearEnd is the December-31 placeholder used upstream for
	// demand parked at the end of the horizon.
	UnassignedYearEnd UnassignedReason = "year-end placeholder"
)

// sentinelYear is the far-future year unassigned demand is deferred to, so
// that it stays in the ledger without polluting near-term projections.
const sentinelYear = 2099

// MidYearSentinel and YearEndSentinel are the ledger dates carrying
// unassigned demand.
var (
	MidYearSentinel = NewDate(sentinelYear, time.July, 4)
	YearEndSentinel = NewDate(sentinelYear, time.December, 31)
)

// ShipDate is a requested ship date that is either assigned to a real
// calendar day or an explicit "not scheduled yet" marker. The placeholder
// calendar patterns of the upstream system (July 4 and December 31, any
// year) are recognized once, here at the boundary, instead of flowing
// through date arithmetic.
type ShipDate struct {
	on     Date
	reason UnassignedReason
}

// NewShipDate converts a raw calendar date into a ShipDate, detecting the
// placeholder patterns. A zero date stays a zero assigned date.
func NewShipDate(d Date) ShipDate {
	switch {
	case d.IsZero():
		return ShipDate{}
	case d.Month() == time.July && d.Day() == 4:
		return ShipDate{reason: UnassignedMidYear}
	case d.Month() == time.December && d.Day() == 31:
		return ShipDate{reason: UnassignedYearEnd}
	default:
		return ShipDate{on: d}
	}
}

// AssignedOn builds a ShipDate for a real commitment, bypassing placeholder
// detection. Mostly useful in tests.
func AssignedOn(d Date) ShipDate { return ShipDate{on: d} }

// Assigned reports whether the date is a real commitment.
func (s ShipDate) Assigned() bool { return s.reason == "" && !s.on.IsZero() }

// Reason returns why the date is unassigned, or "" for assigned dates.
func (s ShipDate) Reason() UnassignedReason { return s.reason }

// LedgerDate is the calendar date the demand occupies in the ledger:
// the assigned day itself, or the matching year-2099 sentinel for
// unassigned demand. Zero when no date at all is known.
func (s ShipDate) LedgerDate() Date {
	switch s.reason {
	case UnassignedMidYear:
		return MidYearSentinel
	case UnassignedYearEnd:
		return YearEndSentinel
	default:
		return s.on
	}
}

func (s ShipDate) String() string {
	if s.reason != "" {
		return string(s.reason)
	}
	return s.on.String()
}

// DemandLine is one open sales-order line: a requested outbound quantity of
// an item. Lines are never deduplicated; the same (order, item) pair may
// appear many times.
type DemandLine struct {
	Item       string
	Quantity   Quantity
	Requested  ShipDate
	OrderNo    string // sales order number
	CustomerPO string
	Customer   string
	Amount     Money          // optional line value, for shortage pricing
	Extra      map[string]any // passthrough columns from the upstream export
}

// SupplyRow is one shipment-schedule or purchase-order line, before bundle
// expansion.
type SupplyRow struct {
	Item           string
	Quantity       Quantity
	Date           Date // scheduled ship date
	Description    string
	Classification Classification
	OrderNo        string
	Amount         Money
	Extra          map[string]any
}

// StockCount is one row of the on-hand inventory snapshot. The same item may
// appear several times; the last occurrence wins, snapshot rows being
// entry-ordered upstream.
type StockCount struct {
	Item         string
	OnHand       Quantity
	Available    Quantity // optional: on hand minus allocations
	OnOrder      Quantity // optional: open purchase orders
	SalesPerWeek Quantity // optional: trailing sales rate
	Extra        map[string]any
}

// Inputs bundles the three snapshot tables of one pipeline run.
type Inputs struct {
	Demand []DemandLine
	Supply []SupplyRow
	Stock  []StockCount
}

// SchemaError reports a required column missing from an input table. It is a
// hard stop: the run cannot proceed on a table whose shape is wrong.
type SchemaError struct {
	Table  string
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s table must contain a %q column", e.Table, e.Column)
}

// sortedKeys returns the keys of m in ascending order.
func sortedKeys[V any](m map[string]V) []string {
	keys := slices.Collect(maps.Keys(m))
	slices.Sort(keys)
	return keys
}
