package report

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
)

func annotated(t *testing.T) []AnnotatedRow {
	t.Helper()
	rows, err := Annotate(testRows(), testTable(t))
	if err != nil {
		t.Fatal(err)
	}
	return rows
}

func TestSummarize(t *testing.T) {
	s := Summarize(annotated(t))

	// Revenue: 200000 + 150000 + 90000 + 20000 = 460000
	if !s.Revenue.Equal(rp(460000)) {
		t.Errorf("revenue = %s, want 460000", s.Revenue)
	}
	// Cost: 120000 + 91000 + 0 + 33000 = 244000
	if !s.TotalCost.Equal(rp(244000)) {
		t.Errorf("cost = %s, want 244000", s.TotalCost)
	}
	if !s.Profit.Equal(rp(216000)) {
		t.Errorf("profit = %s, want 216000", s.Profit)
	}
	if s.Orders != 4 || s.Units != 10 {
		t.Errorf("orders = %d units = %d, want 4 and 10", s.Orders, s.Units)
	}
	if s.UnmatchedRows != 1 {
		t.Errorf("unmatched = %d, want 1", s.UnmatchedRows)
	}
	if s.AnomalyRows != 1 {
		t.Errorf("anomalies = %d, want 1", s.AnomalyRows)
	}
}

func TestSummarizeOrderIndependent(t *testing.T) {
	rows := annotated(t)
	want := Summarize(rows)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		shuffled := make([]AnnotatedRow, len(rows))
		copy(shuffled, rows)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		got := Summarize(shuffled)
		if !got.Revenue.Equal(want.Revenue) || !got.TotalCost.Equal(want.TotalCost) || !got.Profit.Equal(want.Profit) {
			t.Fatalf("shuffle %d changed sums: %+v vs %+v", i, got, want)
		}
	}
}

func TestGroupByDate(t *testing.T) {
	groups := GroupBy(annotated(t), GroupByDate)
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	// Sorted by key.
	if groups[0].Key != "2024-05-01" || groups[1].Key != "2024-05-02" {
		t.Fatalf("unexpected group keys: %s, %s", groups[0].Key, groups[1].Key)
	}
	// Day 1: revenue 350000, cost 211000.
	if !groups[0].Revenue.Equal(rp(350000)) {
		t.Errorf("day 1 revenue = %s, want 350000", groups[0].Revenue)
	}
	if !groups[0].Profit.Equal(rp(139000)) {
		t.Errorf("day 1 profit = %s, want 139000", groups[0].Profit)
	}
}

func TestGroupByProduct(t *testing.T) {
	groups := GroupBy(annotated(t), GroupByProduct)
	// Nesa, Daisy, Daisy paket isi 3, NOT FOUND.
	if len(groups) != 4 {
		t.Fatalf("got %d groups, want 4", len(groups))
	}
	var sentinel *Group
	for i := range groups {
		if groups[i].Key == "NOT FOUND" {
			sentinel = &groups[i]
		}
	}
	if sentinel == nil {
		t.Fatal("unmatched rows must group under the sentinel key")
	}
	if !sentinel.TotalCost.IsZero() {
		t.Errorf("sentinel group cost = %s, want 0", sentinel.TotalCost)
	}
}

func TestAnomaliesProfitSign(t *testing.T) {
	rows := []AnnotatedRow{
		{OrderRow: OrderRow{OrderID: "X-1", NetRevenue: rp(50000)}, Profit: rp(50000).Sub(rp(91000))},
		{OrderRow: OrderRow{OrderID: "X-2", NetRevenue: rp(50000)}, Profit: rp(10000)},
		{OrderRow: OrderRow{OrderID: "X-3", NetRevenue: rp(30000)}, Profit: decimal.Zero},
	}
	got := Anomalies(rows)
	if len(got) != 2 {
		t.Fatalf("got %d anomalies, want 2 (negative and zero profit)", len(got))
	}
	if got[0].OrderID != "X-1" || got[1].OrderID != "X-3" {
		t.Errorf("unexpected anomaly rows: %s, %s", got[0].OrderID, got[1].OrderID)
	}
}

func TestProfitTrend(t *testing.T) {
	daily := GroupBy(annotated(t), GroupByDate)
	trend := ProfitTrend(daily)
	if len(trend) != 2 {
		t.Fatalf("got %d points, want 2", len(trend))
	}
	if !trend[0].ChangeAbs.IsZero() {
		t.Errorf("first point change = %s, want 0", trend[0].ChangeAbs)
	}
	// Day 2 profit 77000, day 1 profit 139000 -> change -62000.
	if !trend[1].ChangeAbs.Equal(rp(-62000)) {
		t.Errorf("day 2 change = %s, want -62000", trend[1].ChangeAbs)
	}
	if trend[1].ChangePct == nil {
		t.Fatal("expected a percentage for nonzero base")
	}
}

func TestChangeBetween(t *testing.T) {
	daily := GroupBy(annotated(t), GroupByDate)
	p, err := ChangeBetween(daily, "2024-05-01", "2024-05-02")
	if err != nil {
		t.Fatal(err)
	}
	if !p.ChangeAbs.Equal(rp(-62000)) {
		t.Errorf("change = %s, want -62000", p.ChangeAbs)
	}
	if _, err := ChangeBetween(daily, "2024-01-01", "2024-05-02"); err == nil {
		t.Error("expected error for unknown bucket")
	}
}
