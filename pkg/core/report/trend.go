package report

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TrendPoint is one step of a day-over-day series derived from the daily
// groups: the change of a metric versus the previous bucket.
type TrendPoint struct {
	Key       string          `json:"key"`
	Value     decimal.Decimal `json:"value"`
	ChangeAbs decimal.Decimal `json:"change_abs"`
	// ChangePct is nil when the previous value was zero; growth from zero
	// has no meaningful percentage.
	ChangePct *float64 `json:"change_pct,omitempty"`
}

// ProfitTrend derives the day-over-day profit series from date groups as
// returned by GroupBy(rows, GroupByDate). The first bucket has no
// predecessor and reports zero change.
func ProfitTrend(daily []Group) []TrendPoint {
	out := make([]TrendPoint, 0, len(daily))
	for i, g := range daily {
		p := TrendPoint{Key: g.Key, Value: g.Profit, ChangeAbs: decimal.Zero}
		if i > 0 {
			prev := daily[i-1].Profit
			p.ChangeAbs = g.Profit.Sub(prev)
			if !prev.IsZero() {
				pct, _ := p.ChangeAbs.Div(prev).Mul(decimal.NewFromInt(100)).Float64()
				p.ChangePct = &pct
			}
		}
		out = append(out, p)
	}
	return out
}

// ChangeBetween reports the absolute and percentage change of profit
// between two named date buckets.
func ChangeBetween(daily []Group, fromKey, toKey string) (*TrendPoint, error) {
	var from, to *Group
	for i := range daily {
		switch daily[i].Key {
		case fromKey:
			from = &daily[i]
		case toKey:
			to = &daily[i]
		}
	}
	if from == nil {
		return nil, fmt.Errorf("no data for %s", fromKey)
	}
	if to == nil {
		return nil, fmt.Errorf("no data for %s", toKey)
	}

	p := &TrendPoint{Key: toKey, Value: to.Profit, ChangeAbs: to.Profit.Sub(from.Profit)}
	if !from.Profit.IsZero() {
		pct, _ := p.ChangeAbs.Div(from.Profit).Mul(decimal.NewFromInt(100)).Float64()
		p.ChangePct = &pct
	}
	return p, nil
}
