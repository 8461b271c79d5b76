package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
)

func mustTable(t *testing.T, prices map[string]float64) *Table {
	t.Helper()
	tbl, err := FromConfig(&Config{Prices: prices})
	if err != nil {
		t.Fatalf("FromConfig: %v", err)
	}
	return tbl
}

func TestMatchPerUnit(t *testing.T) {
	tbl := mustTable(t, map[string]float64{"Nesa": 30000})

	res := Match("Nesa kaos", "", 4, tbl)
	if !res.Matched || res.MatchedKey != "Nesa" {
		t.Fatalf("expected match on Nesa, got %+v", res)
	}
	if res.IsPackage {
		t.Errorf("plain product flagged as package")
	}
	// 30000 * 4
	if !res.TotalCost.Equal(decimal.NewFromInt(120000)) {
		t.Errorf("total cost = %s, want 120000", res.TotalCost)
	}
}

func TestMatchLongestKeywordWins(t *testing.T) {
	tbl := mustTable(t, map[string]float64{
		"Daisy":             33000,
		"Daisy paket isi 3": 91000,
	})

	res := Match("Daisy paket isi 3", "Size L", 2, tbl)
	if res.MatchedKey != "Daisy paket isi 3" {
		t.Fatalf("matched %q, want the longer keyword", res.MatchedKey)
	}
	// Keyword carries "paket": fixed package price, quantity ignored.
	if res.Packaging != PackagingFixed || !res.IsPackage {
		t.Errorf("packaging = %v, want fixed", res.Packaging)
	}
	if !res.TotalCost.Equal(decimal.NewFromInt(91000)) {
		t.Errorf("total cost = %s, want 91000", res.TotalCost)
	}
}

func TestMatchUnmatchedSentinel(t *testing.T) {
	tbl := mustTable(t, map[string]float64{"Nesa": 30000})

	res := Match("Produk Misterius", "", 3, tbl)
	if res.Matched {
		t.Fatalf("unexpected match: %+v", res)
	}
	if res.MatchedKey != KeyNotFound {
		t.Errorf("matched key = %q, want %q", res.MatchedKey, KeyNotFound)
	}
	if !res.TotalCost.IsZero() || !res.UnitPrice.IsZero() {
		t.Errorf("unmatched row must carry zero cost, got %+v", res)
	}
}

func TestMatchCountedPack(t *testing.T) {
	// Keyword has no packaging marker but the descriptor says "isi 3":
	// the configured per-unit price is multiplied by count and quantity.
	tbl := mustTable(t, map[string]float64{"Nesa": 30000})

	res := Match("Nesa kaos (isi 3)", "", 2, tbl)
	if res.Packaging != PackagingCounted || res.Multiplier != 3 {
		t.Fatalf("packaging = %v multiplier = %d, want counted x3", res.Packaging, res.Multiplier)
	}
	// 30000 * 3 * 2
	if !res.TotalCost.Equal(decimal.NewFromInt(180000)) {
		t.Errorf("total cost = %s, want 180000", res.TotalCost)
	}
}

func TestMatchBarePackagingWordInText(t *testing.T) {
	tbl := mustTable(t, map[string]float64{"Nesa": 30000})

	res := Match("Nesa kaos", "Paket hemat", 5, tbl)
	if res.Packaging != PackagingFixed {
		t.Fatalf("packaging = %v, want fixed", res.Packaging)
	}
	if !res.TotalCost.Equal(decimal.NewFromInt(30000)) {
		t.Errorf("total cost = %s, want 30000 (quantity not applied)", res.TotalCost)
	}
}

func TestMatchKeywordMarkerBeatsTextCount(t *testing.T) {
	// The configured keyword already covers a package; a stray "isi 5"
	// elsewhere in the descriptor must not turn it into a counted pack.
	tbl := mustTable(t, map[string]float64{"Daisy paket": 91000})

	res := Match("Daisy paket promo isi 5", "", 2, tbl)
	if res.Packaging != PackagingFixed {
		t.Fatalf("packaging = %v, want fixed", res.Packaging)
	}
	if !res.TotalCost.Equal(decimal.NewFromInt(91000)) {
		t.Errorf("total cost = %s, want 91000", res.TotalCost)
	}
}

func TestMatchVariationOnly(t *testing.T) {
	// Keyword may live in the variation column.
	tbl := mustTable(t, map[string]float64{"Merah XL": 25000})

	res := Match("Kaos polos", "Merah, XL", 1, tbl)
	if !res.Matched {
		t.Fatalf("expected match via variation, got %+v", res)
	}
	if !res.TotalCost.Equal(decimal.NewFromInt(25000)) {
		t.Errorf("total cost = %s, want 25000", res.TotalCost)
	}
}

func TestMatchIsDeterministic(t *testing.T) {
	tbl := mustTable(t, map[string]float64{
		"Daisy":             33000,
		"Daisy paket isi 3": 91000,
		"Nesa":              30000,
	})

	first := Match("Daisy paket isi 3", "Size L", 2, tbl)
	for i := 0; i < 10; i++ {
		again := Match("Daisy paket isi 3", "Size L", 2, tbl)
		if again.MatchedKey != first.MatchedKey || !again.TotalCost.Equal(first.TotalCost) {
			t.Fatalf("run %d diverged: %+v vs %+v", i, again, first)
		}
	}
}

func TestMatchZeroQuantity(t *testing.T) {
	tbl := mustTable(t, map[string]float64{"Nesa": 30000})

	res := Match("Nesa kaos", "", 0, tbl)
	if !res.TotalCost.IsZero() {
		t.Errorf("zero quantity per-unit row should cost 0, got %s", res.TotalCost)
	}
}
