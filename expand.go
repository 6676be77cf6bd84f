package stockledger

// PreInstallLeadDays is the buffer between the ship date of a pre-installed
// end product and the day its components are actually depleted from stock.
const PreInstallLeadDays = 5

// ExpandedRow is a supply row after bundle expansion: a single item with its
// effective inbound quantity and the parent product it arrives inside of.
type ExpandedRow struct {
	Parent         string   // the bundle's parent product; equals Item for discrete rows
	Item           string   // the component (or parent) item code
	PerUnit        Quantity // components shipped per parent unit
	Quantity       Quantity // effective quantity = bundle qty x PerUnit
	IsParent       bool     // true on the parent-tracking row
	Date           Date     // original scheduled ship date
	Effective      Date     // Date + lead time; this is the date that feeds the ledger
	Description    string
	Classification Classification
	OrderNo        string
	Amount         Money
	Extra          map[string]any
}

// Expand turns each Bundle-tagged supply row into one row per component
// plus one parent-tracking row, and passes Discrete rows through as their
// own parent. Item codes are resolved through the catalog. leadDays shifts
// the ship date to the effective depletion date; zero ship dates stay zero.
func Expand(rows []SupplyRow, catalog *Catalog, leadDays int) []ExpandedRow {
	out := make([]ExpandedRow, 0, len(rows))
	for _, row := range rows {
		if row.Classification == Bundle {
			out = append(out, expandBundle(row, catalog, leadDays)...)
			continue
		}

		// Discrete: a single line is its own parent.
		item := catalog.Canonicalize(row.Item)
		out = append(out, ExpandedRow{
			Parent:         item,
			Item:           item,
			PerUnit:        Q(1),
			Quantity:       row.Quantity,
			IsParent:       true,
			Date:           row.Date,
			Effective:      effectiveDate(row.Date, leadDays),
			Description:    row.Description,
			Classification: row.Classification,
			OrderNo:        row.OrderNo,
			Amount:         row.Amount,
			Extra:          row.Extra,
		})
	}
	return out
}

// expandBundle expands one pre-installed row into component rows plus the
// parent-tracking row. A description with no component tokens yields only
// the parent row.
func expandBundle(row SupplyRow, catalog *Catalog, leadDays int) []ExpandedRow {
	parent, tokens := ParseDescription(row.Description)
	if parent == "" {
		// Unparseable description: fall back to the row's own item code.
		parent = row.Item
	}
	parent = catalog.Canonicalize(parent)

	base := ExpandedRow{
		Parent:         parent,
		Date:           row.Date,
		Effective:      effectiveDate(row.Date, leadDays),
		Description:    row.Description,
		Classification: row.Classification,
		OrderNo:        row.OrderNo,
		Amount:         row.Amount,
		Extra:          row.Extra,
	}

	rows := make([]ExpandedRow, 0, len(tokens)+1)
	for _, tok := range tokens {
		item, perUnit := ParseComponentToken(tok)
		comp := base
		comp.Item = catalog.Canonicalize(item)
		comp.PerUnit = perUnit
		comp.Quantity = row.Quantity.Mul(perUnit)
		rows = append(rows, comp)
	}

	// Always include the parent row too: it keeps the end product traceable
	// in the ledger with its unmultiplied quantity.
	parentRow := base
	parentRow.Item = parent
	parentRow.PerUnit = Q(1)
	parentRow.Quantity = row.Quantity
	parentRow.IsParent = true
	return append(rows, parentRow)
}

// effectiveDate shifts a ship date by the pre-installation lead time.
// Unknown dates stay unknown.
func effectiveDate(d Date, leadDays int) Date {
	if d.IsZero() {
		return Date{}
	}
	return d.Add(leadDays)
}
