// Package report turns joined order/settlement rows into the annotated rows
// and aggregate numbers the dashboard renders: cost of goods per row via the
// pricing matcher, profit per row, grouped sums, and the warning lists
// (unmatched products, non-positive-profit anomalies).
package report

import (
	"github.com/shopspring/decimal"

	"toko_insight/pkg/core/pricing"
)

// OrderRow is one settled line item as produced by the ingest join. The
// core only reads it; derived values go on AnnotatedRow.
type OrderRow struct {
	OrderID     string          `json:"order_id"`
	Date        string          `json:"date"` // YYYY-MM-DD, as exported
	ProductName string          `json:"product_name"`
	Variation   string          `json:"variation"`
	Quantity    int64           `json:"quantity"`
	// NetRevenue is the settlement amount minus the shipping passthrough,
	// computed upstream by the ingest join.
	NetRevenue decimal.Decimal `json:"net_revenue"`
}

// DefectKind classifies per-row input problems. A defective row still
// appears in the report; it just carries zero where a value could not be
// used, so one bad export line never blanks the whole report.
type DefectKind string

const (
	DefectNone            DefectKind = ""
	DefectNegativeQty     DefectKind = "negative_quantity"
	DefectMissingRevenue  DefectKind = "missing_revenue"
	DefectUnparsableField DefectKind = "unparsable_field"
)

// Defect records what was wrong with a row's input values.
type Defect struct {
	Kind   DefectKind `json:"kind"`
	Detail string     `json:"detail"`
}

// AnnotatedRow is an OrderRow plus everything the matcher and profit
// calculation derived from it.
type AnnotatedRow struct {
	OrderRow
	Match  pricing.MatchResult `json:"match"`
	Profit decimal.Decimal     `json:"profit"`
	Defect *Defect             `json:"defect,omitempty"`
}

// Anomaly reports a row whose profit came out zero or negative. These are
// surfaced as warnings, never as errors.
func (r AnnotatedRow) Anomaly() bool {
	return r.Profit.Sign() <= 0
}
