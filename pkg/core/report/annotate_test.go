package report

import (
	"testing"

	"github.com/shopspring/decimal"

	"toko_insight/pkg/core/pricing"
)

func testTable(t *testing.T) *pricing.Table {
	t.Helper()
	tbl, err := pricing.FromConfig(&pricing.Config{Prices: map[string]float64{
		"Nesa":              30000,
		"Daisy":             33000,
		"Daisy paket isi 3": 91000,
	}})
	if err != nil {
		t.Fatalf("FromConfig: %v", err)
	}
	return tbl
}

func rp(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func testRows() []OrderRow {
	return []OrderRow{
		{OrderID: "A-1", Date: "2024-05-01", ProductName: "Nesa kaos", Quantity: 4, NetRevenue: rp(200000)},
		{OrderID: "A-2", Date: "2024-05-01", ProductName: "Daisy paket isi 3", Variation: "Size L", Quantity: 2, NetRevenue: rp(150000)},
		{OrderID: "A-3", Date: "2024-05-02", ProductName: "Produk Misterius", Quantity: 3, NetRevenue: rp(90000)},
		{OrderID: "A-4", Date: "2024-05-02", ProductName: "Daisy", Quantity: 1, NetRevenue: rp(20000)},
	}
}

func TestAnnotateDerivesCostAndProfit(t *testing.T) {
	rows, err := Annotate(testRows(), testTable(t))
	if err != nil {
		t.Fatalf("Annotate: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("got %d rows, want 4", len(rows))
	}

	// Row A-1: per-unit 30000 * 4 = 120000, profit 80000.
	if !rows[0].Match.TotalCost.Equal(rp(120000)) {
		t.Errorf("A-1 cost = %s, want 120000", rows[0].Match.TotalCost)
	}
	if !rows[0].Profit.Equal(rp(80000)) {
		t.Errorf("A-1 profit = %s, want 80000", rows[0].Profit)
	}

	// Row A-2: fixed package 91000 regardless of quantity 2.
	if !rows[1].Match.TotalCost.Equal(rp(91000)) {
		t.Errorf("A-2 cost = %s, want 91000", rows[1].Match.TotalCost)
	}

	// Row A-3: unmatched, zero cost, profit equals revenue.
	if rows[2].Match.Matched || rows[2].Match.MatchedKey != pricing.KeyNotFound {
		t.Errorf("A-3 should be unmatched, got %+v", rows[2].Match)
	}
	if !rows[2].Profit.Equal(rp(90000)) {
		t.Errorf("A-3 profit = %s, want 90000", rows[2].Profit)
	}

	// Row A-4: 20000 - 33000 = -13000, an anomaly.
	if !rows[3].Anomaly() {
		t.Errorf("A-4 should be flagged as anomaly, profit = %s", rows[3].Profit)
	}
}

func TestAnnotateNilTableIsFatal(t *testing.T) {
	if _, err := Annotate(testRows(), nil); err == nil {
		t.Fatal("expected error for nil price table")
	}
}

func TestAnnotateNegativeQuantityIsRowDefect(t *testing.T) {
	rows, err := Annotate([]OrderRow{
		{OrderID: "B-1", ProductName: "Nesa", Quantity: -2, NetRevenue: rp(10000)},
		{OrderID: "B-2", ProductName: "Nesa", Quantity: 1, NetRevenue: rp(40000)},
	}, testTable(t))
	if err != nil {
		t.Fatalf("Annotate: %v", err)
	}

	if rows[0].Defect == nil || rows[0].Defect.Kind != DefectNegativeQty {
		t.Errorf("B-1 should carry a negative-quantity defect, got %+v", rows[0].Defect)
	}
	if !rows[0].Match.TotalCost.IsZero() {
		t.Errorf("B-1 cost = %s, want 0 (quantity neutralized)", rows[0].Match.TotalCost)
	}
	// The bad row must not take the good one with it.
	if !rows[1].Match.TotalCost.Equal(rp(30000)) {
		t.Errorf("B-2 cost = %s, want 30000", rows[1].Match.TotalCost)
	}
}

func TestAnnotateDeterministic(t *testing.T) {
	tbl := testTable(t)
	first, _ := Annotate(testRows(), tbl)
	second, _ := Annotate(testRows(), tbl)
	for i := range first {
		if first[i].Match.MatchedKey != second[i].Match.MatchedKey ||
			!first[i].Match.TotalCost.Equal(second[i].Match.TotalCost) ||
			!first[i].Profit.Equal(second[i].Profit) {
			t.Fatalf("row %d diverged between runs", i)
		}
	}
}

func TestUnmatchedListsDistinctDescriptors(t *testing.T) {
	rows, _ := Annotate([]OrderRow{
		{ProductName: "Produk Misterius", Quantity: 1, NetRevenue: rp(1000)},
		{ProductName: "Produk Misterius", Quantity: 2, NetRevenue: rp(2000)},
		{ProductName: "Barang Aneh", Variation: "Merah", Quantity: 1, NetRevenue: rp(3000)},
		{ProductName: "Nesa", Quantity: 1, NetRevenue: rp(50000)},
	}, testTable(t))

	got := Unmatched(rows)
	want := []string{"Produk Misterius", "Barang Aneh / Merah"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("unmatched[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestApplyDefaultCost(t *testing.T) {
	rows, _ := Annotate([]OrderRow{
		{ProductName: "Produk Misterius", Quantity: 3, NetRevenue: rp(90000)},
		{ProductName: "Nesa", Quantity: 1, NetRevenue: rp(50000)},
	}, testTable(t))

	filled := ApplyDefaultCost(rows, rp(15000))
	// 15000 * 3
	if !filled[0].Match.TotalCost.Equal(rp(45000)) {
		t.Errorf("fallback cost = %s, want 45000", filled[0].Match.TotalCost)
	}
	if filled[0].Match.Matched {
		t.Errorf("fallback must not clear the unmatched flag")
	}
	// Matched rows untouched.
	if !filled[1].Match.TotalCost.Equal(rp(30000)) {
		t.Errorf("matched row cost changed to %s", filled[1].Match.TotalCost)
	}
	// Original slice untouched.
	if !rows[0].Match.TotalCost.IsZero() {
		t.Errorf("ApplyDefaultCost mutated its input")
	}
}
