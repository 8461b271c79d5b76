package ingest

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

// Settlement is one paid-out order from the settlement/income export.
type Settlement struct {
	OrderID string
	// Amount is the gross settlement credited for the order.
	Amount decimal.Decimal
	// ShippingFee is the pass-through shipping component included in
	// Amount; it is subtracted again during the join so it never counts
	// as revenue.
	ShippingFee decimal.Decimal
}

var (
	settlementAmountAliases = []string{
		"Total Penghasilan", "Jumlah Penghasilan", "settlement amount", "total income", "total settlement",
	}
	shippingAliases = []string{
		"Ongkos Kirim Dibayar oleh Pembeli", "Ongkir", "shipping fee", "buyer paid shipping fee",
	}
)

// ReadSettlements parses the settlement export. Its delimiter varies
// between comma and semicolon and is probed from the header line. The
// shipping column is optional (older exports settle net of shipping
// already); unparsable amounts degrade to zero and are reported.
func ReadSettlements(r io.Reader) ([]Settlement, []Issue, error) {
	records, err := readTable(r)
	if err != nil {
		return nil, nil, fmt.Errorf("settlement: %w", err)
	}

	header := records[0]
	idIdx := columnIndex(header, orderIDAliases)
	amountIdx := columnIndex(header, settlementAmountAliases)
	if idIdx < 0 || amountIdx < 0 {
		return nil, nil, fmt.Errorf("settlement: header %v is missing the order number or settlement amount column", header)
	}
	shippingIdx := columnIndex(header, shippingAliases)

	var settlements []Settlement
	var issues []Issue
	for i, rec := range records[1:] {
		line := i + 2
		s := Settlement{
			OrderID:     field(rec, idIdx),
			Amount:      decimal.Zero,
			ShippingFee: decimal.Zero,
		}
		if s.OrderID == "" {
			issues = append(issues, Issue{Line: line, Field: "order_id", Detail: "missing order number, line skipped"})
			continue
		}

		amount, err := ParseAmount(field(rec, amountIdx))
		if err != nil {
			issues = append(issues, Issue{Line: line, Field: "settlement_amount", Detail: err.Error()})
		} else {
			s.Amount = amount
		}

		if shippingIdx >= 0 {
			if raw := field(rec, shippingIdx); raw != "" {
				shipping, err := ParseAmount(raw)
				if err != nil {
					issues = append(issues, Issue{Line: line, Field: "shipping_fee", Detail: err.Error()})
				} else {
					s.ShippingFee = shipping
				}
			}
		}
		settlements = append(settlements, s)
	}
	return settlements, issues, nil
}
