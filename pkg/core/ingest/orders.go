package ingest

import (
	"fmt"
	"io"
	"strings"
)

// Order is one line item from the orders export.
type Order struct {
	OrderID     string
	Date        string // YYYY-MM-DD
	ProductName string
	Variation   string
	Quantity    int64
}

// Header aliases seen across marketplace export versions, Indonesian and
// English. Comparison happens on normalized text.
var (
	orderIDAliases  = []string{"No. Pesanan", "Nomor Pesanan", "order id", "order_sn"}
	dateAliases     = []string{"Waktu Pesanan Dibuat", "Tanggal", "order creation date", "date"}
	productAliases  = []string{"Nama Produk", "product name", "nama barang"}
	variantAliases  = []string{"Nama Variasi", "variation name", "variasi"}
	quantityAliases = []string{"Jumlah", "quantity", "qty"}
)

// ReadOrders parses the orders export. The order number, product name and
// quantity columns are required; date and variation are optional. Bad
// quantity cells degrade to 0 and are reported as issues.
func ReadOrders(r io.Reader) ([]Order, []Issue, error) {
	records, err := readTable(r)
	if err != nil {
		return nil, nil, fmt.Errorf("orders: %w", err)
	}

	header := records[0]
	idIdx := columnIndex(header, orderIDAliases)
	productIdx := columnIndex(header, productAliases)
	qtyIdx := columnIndex(header, quantityAliases)
	if idIdx < 0 || productIdx < 0 || qtyIdx < 0 {
		return nil, nil, fmt.Errorf("orders: header %v is missing the order number, product name or quantity column", header)
	}
	dateIdx := columnIndex(header, dateAliases)
	variantIdx := columnIndex(header, variantAliases)

	var orders []Order
	var issues []Issue
	for i, rec := range records[1:] {
		line := i + 2 // 1-based, after header
		o := Order{
			OrderID:     field(rec, idIdx),
			ProductName: field(rec, productIdx),
			Variation:   field(rec, variantIdx),
			Date:        dateOnly(field(rec, dateIdx)),
		}
		if o.OrderID == "" {
			issues = append(issues, Issue{Line: line, Field: "order_id", Detail: "missing order number, line skipped"})
			continue
		}

		qty, err := ParseQuantity(field(rec, qtyIdx))
		if err != nil {
			issues = append(issues, Issue{Line: line, Field: "quantity", Detail: err.Error()})
			qty = 0
		}
		o.Quantity = qty
		orders = append(orders, o)
	}
	return orders, issues, nil
}

// dateOnly trims an export timestamp ("2024-05-01 13:45" or
// "2024-05-01T13:45:00") down to its date part.
func dateOnly(s string) string {
	if idx := strings.IndexAny(s, " T"); idx > 0 {
		return s[:idx]
	}
	return s
}
