package stockledger

import (
	"iter"
	"sort"
	"strings"
)

// Options holds the knobs of a projection run.
type Options struct {
	// Today anchors the OPEN rows of the projection. Zero means the current
	// date at run time; tests pin it for reproducible output.
	Today Date

	// LeadDays shifts supply ship dates to their effective depletion date.
	// Zero selects PreInstallLeadDays.
	LeadDays int

	// ExcludeMidYearSentinel also removes demand parked on the 2099-07-04
	// sentinel from the violations table. Historically only the year-end
	// sentinel was excluded; the asymmetry is preserved by default.
	ExcludeMidYearSentinel bool

	// Catalog canonicalizes item codes. Nil means no synonym mapping.
	Catalog *Catalog
}

func (o Options) today() Date {
	if o.Today.IsZero() {
		return Today()
	}
	return o.Today
}

func (o Options) leadDays() int {
	if o.LeadDays == 0 {
		return PreInstallLeadDays
	}
	return o.LeadDays
}

// Row is one point of the time-phased projection: an event plus the running
// balance the item reaches at that point. Rows are derived, never mutated;
// each run recomputes them from the input snapshots.
type Row struct {
	Date      Date
	Item      string
	Kind      Kind
	Delta     Quantity
	Cum       Quantity // running sum of deltas for this item, in walk order
	Opening   Quantity
	Projected Quantity // Opening + Cum

	// BalanceBefore and BalanceAfter are set on OUT rows only: the stock
	// level just before and just after the demand is served. Nil elsewhere.
	BalanceBefore *Quantity
	BalanceAfter  *Quantity

	Source     string
	OrderNo    string
	CustomerPO string
	Customer   string
	Amount     Money
}

// Ledger is the per-item, date-ordered running balance projection. Rows are
// sorted by (item, date, kind rank); same-key rows keep the event stream's
// stable order.
type Ledger struct {
	rows           []Row
	excludeMidYear bool
	openings       map[string]Quantity
}

// BuildLedger seeds every item from the inventory snapshot (last occurrence
// of a duplicated item wins, absent items open at zero), interleaves one
// OPEN row per item dated opts.Today, and walks the event stream to running
// projected balances.
//
// An item with an opening balance but no events still yields its single OPEN
// row; a demand or supply item missing from the snapshot is projected from
// zero so the shortage surfaces instead of hiding.
func BuildLedger(events []Event, stock []StockCount, opts Options) *Ledger {
	openings := openingStock(stock, opts.Catalog)

	// One OPEN row per item appearing in the snapshot or the event stream.
	items := make(map[string]struct{}, len(openings))
	for item := range openings {
		items[item] = struct{}{}
	}
	for _, e := range events {
		items[e.Item] = struct{}{}
	}

	all := make([]Event, 0, len(events)+len(items))
	for _, item := range sortedKeys(items) {
		all = append(all, Event{
			Date:   opts.today(),
			Item:   item,
			Kind:   Open,
			Source: SourceSnapshot,
		})
	}
	all = append(all, events...)
	sortEvents(all)

	ledger := &Ledger{
		rows:           make([]Row, 0, len(all)),
		excludeMidYear: opts.ExcludeMidYearSentinel,
		openings:       openings,
	}

	var item string
	var cum Quantity
	for _, e := range all {
		if e.Item != item {
			item, cum = e.Item, Q(0)
		}
		cum = cum.Add(e.Delta)
		opening := openings[e.Item]

		row := Row{
			Date:       e.Date,
			Item:       e.Item,
			Kind:       e.Kind,
			Delta:      e.Delta,
			Cum:        cum,
			Opening:    opening,
			Projected:  opening.Add(cum),
			Source:     e.Source,
			OrderNo:    e.OrderNo,
			CustomerPO: e.CustomerPO,
			Customer:   e.Customer,
			Amount:     e.Amount,
		}
		if e.Kind == Out {
			// Delta is negative on OUT rows, so before = projected - delta.
			before := row.Projected.Sub(e.Delta)
			after := row.Projected
			row.BalanceBefore, row.BalanceAfter = &before, &after
		}
		ledger.rows = append(ledger.rows, row)
	}
	return ledger
}

// openingStock reduces the snapshot to one opening balance per canonical
// item code. Later occurrences override earlier ones.
func openingStock(stock []StockCount, catalog *Catalog) map[string]Quantity {
	openings := make(map[string]Quantity, len(stock))
	for _, count := range stock {
		openings[catalog.Canonicalize(count.Item)] = count.OnHand
	}
	return openings
}

// Len returns the number of ledger rows.
func (l *Ledger) Len() int { return len(l.rows) }

// Rows yields every ledger row in projection order.
func (l *Ledger) Rows() iter.Seq2[int, Row] {
	return func(yield func(int, Row) bool) {
		for i, row := range l.rows {
			if !yield(i, row) {
				return
			}
		}
	}
}

// ItemRows returns the contiguous slice of rows belonging to one item, in
// projection order. The slice aliases the ledger; callers must not modify it.
func (l *Ledger) ItemRows(item string) []Row {
	lo := sort.Search(len(l.rows), func(i int) bool {
		return strings.Compare(l.rows[i].Item, item) >= 0
	})
	hi := sort.Search(len(l.rows), func(i int) bool {
		return strings.Compare(l.rows[i].Item, item) > 0
	})
	return l.rows[lo:hi]
}

// Opening returns the opening balance used for an item (zero for items
// missing from the snapshot).
func (l *Ledger) Opening(item string) Quantity { return l.openings[item] }

// Violations returns the rows where the projected balance goes negative:
// the future shortages. Rows with no usable date are skipped, as is demand
// deferred to the year-end sentinel (and to the mid-year sentinel when the
// ledger was built with ExcludeMidYearSentinel).
func (l *Ledger) Violations() []Row {
	violations := make([]Row, 0)
	for _, row := range l.rows {
		if !row.Projected.IsNegative() {
			continue
		}
		if row.Date.IsZero() || row.Date == YearEndSentinel {
			continue
		}
		if l.excludeMidYear && row.Date == MidYearSentinel {
			continue
		}
		violations = append(violations, row)
	}
	return violations
}

// ItemSummary condenses an item's whole projection into its worst point.
type ItemSummary struct {
	Item            string
	Opening         Quantity
	MinProjected    Quantity
	FirstShortage   Date     // zero when the item never goes negative
	AtFirstShortage Quantity // projected balance at that first point
	OK              bool     // true when MinProjected >= 0
}

// Status reports the operational availability of the item: "Available" when
// the projection never dips below zero and there is stock on hand today,
// "Shortage" otherwise.
func (s ItemSummary) Status() string {
	if s.OK && s.Opening.IsPositive() {
		return "Available"
	}
	return "Shortage"
}

// Summaries computes one ItemSummary per item in the ledger, ordered
// worst-first: items in shortage before healthy ones, lowest minimum
// projection first, then by item code for a stable output.
func (l *Ledger) Summaries() []ItemSummary {
	summaries := make([]ItemSummary, 0)
	for i := 0; i < len(l.rows); {
		item := l.rows[i].Item
		s := ItemSummary{
			Item:         item,
			Opening:      l.rows[i].Opening,
			MinProjected: l.rows[i].Projected,
		}
		for ; i < len(l.rows) && l.rows[i].Item == item; i++ {
			row := l.rows[i]
			if row.Projected.LessThan(s.MinProjected) {
				s.MinProjected = row.Projected
			}
			if row.Projected.IsNegative() && s.FirstShortage.IsZero() {
				s.FirstShortage = row.Date
				s.AtFirstShortage = row.Projected
			}
		}
		s.OK = !s.MinProjected.IsNegative()
		summaries = append(summaries, s)
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		if summaries[i].OK != summaries[j].OK {
			return !summaries[i].OK // shortages first
		}
		if !summaries[i].MinProjected.Equal(summaries[j].MinProjected) {
			return summaries[i].MinProjected.LessThan(summaries[j].MinProjected)
		}
		return summaries[i].Item < summaries[j].Item
	})
	return summaries
}
