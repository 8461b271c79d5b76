package ingest

import (
	"toko_insight/pkg/core/report"
)

// JoinResult is the outcome of joining the two exports.
type JoinResult struct {
	Rows []report.OrderRow
	// UnsettledOrders lists order numbers present in the orders export but
	// absent from the settlement export (not yet paid out, or refunded and
	// filtered by the marketplace). They are excluded from the report and
	// surfaced as a warning.
	UnsettledOrders []string
	// OrphanSettlements lists settlement order numbers with no order line,
	// usually a sign the wrong file pair was uploaded.
	OrphanSettlements []string
}

// Join inner-joins order lines with settlements on the order number.
//
// NetRevenue = settlement amount - shipping passthrough. When an order has
// several item lines, each line carries the order's full net settlement,
// matching how the exports are reconciled upstream; per-line profit is then
// only meaningful relative to that order's cost lines.
func Join(orders []Order, settlements []Settlement) JoinResult {
	byID := make(map[string]Settlement, len(settlements))
	for _, s := range settlements {
		byID[s.OrderID] = s
	}

	var res JoinResult
	matched := make(map[string]bool)
	seenUnsettled := make(map[string]bool)
	for _, o := range orders {
		s, ok := byID[o.OrderID]
		if !ok {
			if !seenUnsettled[o.OrderID] {
				seenUnsettled[o.OrderID] = true
				res.UnsettledOrders = append(res.UnsettledOrders, o.OrderID)
			}
			continue
		}
		matched[o.OrderID] = true
		res.Rows = append(res.Rows, report.OrderRow{
			OrderID:     o.OrderID,
			Date:        o.Date,
			ProductName: o.ProductName,
			Variation:   o.Variation,
			Quantity:    o.Quantity,
			NetRevenue:  s.Amount.Sub(s.ShippingFee),
		})
	}

	for _, s := range settlements {
		if !matched[s.OrderID] {
			res.OrphanSettlements = append(res.OrphanSettlements, s.OrderID)
		}
	}
	return res
}
