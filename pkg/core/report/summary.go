package report

import (
	"fmt"
	"strings"
)

// BuildPromptSummary formats the aggregate numbers plus a bounded sample of
// annotated rows as the opaque text block handed to the LLM assistant. The
// field names mirror the dashboard's Indonesian labels (Omset = revenue,
// Modal = cost of goods) so the model answers in the seller's vocabulary.
//
// The block is plain text on purpose: the assistant layer owns everything
// about the model call, the report layer only supplies numbers.
func BuildPromptSummary(s Summary, rows []AnnotatedRow, sampleLimit int) string {
	var b strings.Builder

	b.WriteString("Data Bisnis:\n")
	fmt.Fprintf(&b, "- Omset: Rp %s\n", s.Revenue.StringFixed(0))
	fmt.Fprintf(&b, "- Modal: Rp %s\n", s.TotalCost.StringFixed(0))
	fmt.Fprintf(&b, "- Profit: Rp %s\n", s.Profit.StringFixed(0))
	fmt.Fprintf(&b, "- Jumlah Order: %d\n", s.Orders)
	fmt.Fprintf(&b, "- Jumlah Unit: %d\n", s.Units)
	if s.UnmatchedRows > 0 {
		fmt.Fprintf(&b, "- Baris tanpa harga modal (modal belum diketahui): %d\n", s.UnmatchedRows)
	}
	if s.AnomalyRows > 0 {
		fmt.Fprintf(&b, "- Baris dengan profit <= 0: %d\n", s.AnomalyRows)
	}

	if sampleLimit > 0 && len(rows) > 0 {
		n := sampleLimit
		if n > len(rows) {
			n = len(rows)
		}
		fmt.Fprintf(&b, "\nContoh %d baris (dari %d):\n", n, len(rows))
		for _, r := range rows[:n] {
			fmt.Fprintf(&b, "- %s | %s | qty %d | omset Rp %s | modal Rp %s | profit Rp %s",
				r.Date, describe(r), r.Quantity,
				r.NetRevenue.StringFixed(0),
				r.Match.TotalCost.StringFixed(0),
				r.Profit.StringFixed(0))
			if !r.Match.Matched {
				b.WriteString(" | MODAL TIDAK DITEMUKAN")
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}

func describe(r AnnotatedRow) string {
	if r.Variation == "" {
		return r.ProductName
	}
	return r.ProductName + " / " + r.Variation
}
