package stockledger

import (
	"sort"
	"strings"
)

// Kind identifies the nature of a ledger event.
type Kind string

const (
	// Open seeds an item's projection with its opening balance.
	Open Kind = "OPEN"
	// In is inbound supply arriving into stock.
	In Kind = "IN"
	// Out is outbound demand leaving stock.
	Out Kind = "OUT"
)

// rank orders same-day events: the opening balance applies first, then
// inbound supply, then outbound demand, so that a delivery covers demand
// shipping the same day.
func (k Kind) rank() int {
	switch k {
	case Open:
		return 0
	case In:
		return 1
	case Out:
		return 2
	default:
		return 9
	}
}

// Sources of events, carried for traceability.
const (
	SourceSupply   = "supply"
	SourceDemand   = "demand"
	SourceSnapshot = "snapshot"
)

// Event is one signed stock movement for one item on one date. Events are
// immutable once built: a new run re-derives them from the input snapshots
// instead of mutating the old stream.
type Event struct {
	Date       Date
	Item       string
	Delta      Quantity // positive for In, negative for Out, zero for Open
	Kind       Kind
	Source     string
	OrderNo    string
	CustomerPO string
	Customer   string
	Amount     Money
}

// BuildEvents merges expanded supply and open demand into a single event
// stream, sorted by (item, date, kind rank). The sort is stable: events that
// tie on all three keys keep their input order, which makes the projection
// path reproducible run after run.
//
// Rows with non-positive quantities are skipped on both sides; they
// represent fully filled or cancelled lines, not errors. Demand parked on a
// placeholder ship date lands on its year-2099 sentinel.
func BuildEvents(demand []DemandLine, supply []ExpandedRow) []Event {
	events := make([]Event, 0, len(demand)+len(supply))

	for _, row := range supply {
		if !row.Quantity.IsPositive() {
			continue
		}
		events = append(events, Event{
			Date:    row.Effective,
			Item:    row.Item,
			Delta:   row.Quantity,
			Kind:    In,
			Source:  SourceSupply,
			OrderNo: row.OrderNo,
			Amount:  row.Amount,
		})
	}

	for _, line := range demand {
		if !line.Quantity.IsPositive() {
			continue
		}
		events = append(events, Event{
			Date:       line.Requested.LedgerDate(),
			Item:       line.Item,
			Delta:      line.Quantity.Neg(),
			Kind:       Out,
			Source:     SourceDemand,
			OrderNo:    line.OrderNo,
			CustomerPO: line.CustomerPO,
			Customer:   line.Customer,
			Amount:     line.Amount,
		})
	}

	sortEvents(events)
	return events
}

// sortEvents orders events by (item, date, kind rank), stably. Events with
// no usable date sort after every dated one: unknown-dated demand must not
// deplete stock ahead of the opening balance.
func sortEvents(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		if c := strings.Compare(events[i].Item, events[j].Item); c != 0 {
			return c < 0
		}
		if events[i].Date != events[j].Date {
			if events[i].Date.IsZero() || events[j].Date.IsZero() {
				return events[j].Date.IsZero()
			}
			return events[i].Date.Before(events[j].Date)
		}
		return events[i].Kind.rank() < events[j].Kind.rank()
	})
}
