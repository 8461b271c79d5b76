package report

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Summary holds the headline numbers of one report run. All sums are plain
// decimal addition, so the result does not depend on row order.
type Summary struct {
	Orders        int             `json:"orders"`
	Units         int64           `json:"units"`
	Revenue       decimal.Decimal `json:"revenue"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	Profit        decimal.Decimal `json:"profit"`
	UnmatchedRows int             `json:"unmatched_rows"`
	AnomalyRows   int             `json:"anomaly_rows"`
	DefectRows    int             `json:"defect_rows"`
}

// Summarize folds an annotated row set into its headline numbers.
func Summarize(rows []AnnotatedRow) Summary {
	s := Summary{
		Revenue:   decimal.Zero,
		TotalCost: decimal.Zero,
		Profit:    decimal.Zero,
	}
	for _, r := range rows {
		s.Orders++
		if r.Quantity > 0 {
			s.Units += r.Quantity
		}
		s.Revenue = s.Revenue.Add(r.NetRevenue)
		s.TotalCost = s.TotalCost.Add(r.Match.TotalCost)
		if !r.Match.Matched {
			s.UnmatchedRows++
		}
		if r.Anomaly() {
			s.AnomalyRows++
		}
		if r.Defect != nil {
			s.DefectRows++
		}
	}
	s.Profit = s.Revenue.Sub(s.TotalCost)
	return s
}

// GroupKey selects the grouping column for GroupBy.
type GroupKey int

const (
	GroupByDate GroupKey = iota
	GroupByProduct
)

// Group is one bucket of a grouped aggregation, e.g. one calendar day or
// one matched product keyword.
type Group struct {
	Key       string          `json:"key"`
	Orders    int             `json:"orders"`
	Units     int64           `json:"units"`
	Revenue   decimal.Decimal `json:"revenue"`
	TotalCost decimal.Decimal `json:"total_cost"`
	Profit    decimal.Decimal `json:"profit"`
}

// GroupBy buckets rows by date or by matched product key and sums each
// bucket. Buckets come back sorted by key so chart output is stable.
// Unmatched rows group under the sentinel key.
func GroupBy(rows []AnnotatedRow, key GroupKey) []Group {
	buckets := make(map[string]*Group)
	for _, r := range rows {
		k := r.Date
		if key == GroupByProduct {
			k = r.Match.MatchedKey
		}
		g, ok := buckets[k]
		if !ok {
			g = &Group{
				Key:       k,
				Revenue:   decimal.Zero,
				TotalCost: decimal.Zero,
				Profit:    decimal.Zero,
			}
			buckets[k] = g
		}
		g.Orders++
		if r.Quantity > 0 {
			g.Units += r.Quantity
		}
		g.Revenue = g.Revenue.Add(r.NetRevenue)
		g.TotalCost = g.TotalCost.Add(r.Match.TotalCost)
		g.Profit = g.Revenue.Sub(g.TotalCost)
	}

	out := make([]Group, 0, len(buckets))
	for _, g := range buckets {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Anomalies returns the rows whose profit is zero or negative, the
// dashboard's "check these" list.
func Anomalies(rows []AnnotatedRow) []AnnotatedRow {
	var out []AnnotatedRow
	for _, r := range rows {
		if r.Anomaly() {
			out = append(out, r)
		}
	}
	return out
}
