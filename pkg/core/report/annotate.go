package report

import (
	"fmt"

	"github.com/shopspring/decimal"

	"toko_insight/pkg/core/pricing"
)

// Annotate runs the cost matcher over every row and derives profit.
//
// It is a pure single-pass transform: rows do not interact and the input
// slice is not mutated. Input defects (negative quantity) are recorded on
// the row and neutralized rather than aborting the batch. A nil price table
// is the one fatal condition, because without it every cost would silently
// be zero.
func Annotate(rows []OrderRow, table *pricing.Table) ([]AnnotatedRow, error) {
	if table == nil {
		return nil, fmt.Errorf("no price table supplied")
	}

	out := make([]AnnotatedRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, annotateOne(row, table))
	}
	return out, nil
}

func annotateOne(row OrderRow, table *pricing.Table) AnnotatedRow {
	ar := AnnotatedRow{OrderRow: row}

	qty := row.Quantity
	if qty < 0 {
		ar.Defect = &Defect{
			Kind:   DefectNegativeQty,
			Detail: fmt.Sprintf("quantity %d treated as 0", qty),
		}
		qty = 0
	}

	ar.Match = pricing.Match(row.ProductName, row.Variation, qty, table)
	ar.Profit = row.NetRevenue.Sub(ar.Match.TotalCost)
	return ar
}

// Unmatched lists the distinct product descriptors no keyword applied to,
// in first-seen order. The dashboard shows these in a warning banner so a
// zero cost is never mistaken for a known cost.
func Unmatched(rows []AnnotatedRow) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range rows {
		if r.Match.Matched {
			continue
		}
		desc := r.ProductName
		if r.Variation != "" {
			desc = desc + " / " + r.Variation
		}
		if !seen[desc] {
			seen[desc] = true
			out = append(out, desc)
		}
	}
	return out
}

// ApplyDefaultCost fills unmatched rows with a caller-chosen fallback unit
// price. The matcher never does this on its own; the fallback is an explicit
// reporting decision, and the rows stay flagged as unmatched either way.
func ApplyDefaultCost(rows []AnnotatedRow, unitPrice decimal.Decimal) []AnnotatedRow {
	if !unitPrice.IsPositive() {
		return rows
	}
	out := make([]AnnotatedRow, len(rows))
	copy(out, rows)
	for i := range out {
		if out[i].Match.Matched {
			continue
		}
		qty := out[i].Quantity
		if qty < 0 {
			qty = 0
		}
		out[i].Match.UnitPrice = unitPrice
		out[i].Match.TotalCost = unitPrice.Mul(decimal.NewFromInt(qty))
		out[i].Profit = out[i].NetRevenue.Sub(out[i].Match.TotalCost)
	}
	return out
}
