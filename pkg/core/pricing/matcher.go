package pricing

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"toko_insight/pkg/core/textnorm"
)

// KeyNotFound is the sentinel MatchedKey for rows no keyword applies to.
// Callers surface these rows to the user; their cost is zero but MUST be
// read as "unknown", which is why MatchResult carries Matched separately.
const KeyNotFound = "NOT FOUND"

// Packaging says how the configured price relates to the row quantity.
type Packaging int

const (
	// PackagingPerUnit: configured price is per piece, multiplied by quantity.
	PackagingPerUnit Packaging = iota
	// PackagingFixed: configured price covers the whole SKU line; quantity
	// is NOT applied.
	PackagingFixed
	// PackagingCounted: the descriptor carries an explicit "isi N" count and
	// the configured price is per piece, so cost = price * N * quantity.
	PackagingCounted
)

func (p Packaging) String() string {
	switch p {
	case PackagingFixed:
		return "fixed"
	case PackagingCounted:
		return "counted"
	default:
		return "per_unit"
	}
}

// MatchResult is the matcher's verdict for one order row.
type MatchResult struct {
	MatchedKey string          `json:"matched_key"`
	Matched    bool            `json:"matched"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Multiplier int64           `json:"multiplier"`
	Packaging  Packaging       `json:"-"`
	IsPackage  bool            `json:"is_package"`
	TotalCost  decimal.Decimal `json:"total_cost"`
}

// packagingWords mark a price as covering a whole package rather than one
// piece. They are compared against whole words of the normalized text.
var packagingWords = []string{"paket", "isi", "bundle"}

// isiCountRe extracts an explicit pack size ("isi 3", "isi3") from
// normalized text.
var isiCountRe = regexp.MustCompile(`\bisi\s*(\d+)\b`)

// Match finds the configured cost price for one order row.
//
// The search text is the normalized product name plus the normalized
// variation. Keywords are tried longest first (so "daisy paket isi 3" beats
// "daisy" when both apply), equal lengths in table order, and the first
// containment match wins — the scan short-circuits rather than looking for
// a better match later in the list.
//
// Packaging resolution, in priority order:
//  1. the matched keyword itself contains a packaging word: the configured
//     price already covers the package, quantity is not applied;
//  2. the search text carries an explicit "isi N": counted pack of a
//     per-unit price, cost = price * N * quantity;
//  3. the search text contains a bare packaging word: fixed package;
//  4. otherwise per-unit, cost = price * quantity.
//
// Match never fails. A row no keyword applies to comes back with
// Matched=false, MatchedKey=KeyNotFound and zero cost.
func Match(productName, variation string, quantity int64, t *Table) MatchResult {
	search := textnorm.Normalize(productName)
	if v := textnorm.Normalize(variation); v != "" {
		if search == "" {
			search = v
		} else {
			search = search + " " + v
		}
	}

	res := MatchResult{
		MatchedKey: KeyNotFound,
		UnitPrice:  decimal.Zero,
		Multiplier: 1,
		Packaging:  PackagingPerUnit,
		TotalCost:  decimal.Zero,
	}

	var matched *Entry
	for _, idx := range t.scan {
		e := &t.entries[idx]
		if strings.Contains(search, e.normalized) {
			matched = e
			break
		}
	}
	if matched == nil {
		return res
	}

	res.Matched = true
	res.MatchedKey = matched.Keyword
	res.UnitPrice = matched.UnitPrice

	qty := decimal.NewFromInt(quantity)
	switch {
	case containsPackagingWord(matched.normalized):
		res.Packaging = PackagingFixed
	case isiCountRe.MatchString(search):
		n, _ := strconv.ParseInt(isiCountRe.FindStringSubmatch(search)[1], 10, 64)
		if n > 0 {
			res.Packaging = PackagingCounted
			res.Multiplier = n
		}
	case containsPackagingWord(search):
		res.Packaging = PackagingFixed
	}

	switch res.Packaging {
	case PackagingFixed:
		res.IsPackage = true
		res.TotalCost = res.UnitPrice
	case PackagingCounted:
		res.IsPackage = true
		res.TotalCost = res.UnitPrice.Mul(decimal.NewFromInt(res.Multiplier)).Mul(qty)
	default:
		res.TotalCost = res.UnitPrice.Mul(qty)
	}
	return res
}

func containsPackagingWord(normalized string) bool {
	for _, w := range strings.Fields(normalized) {
		for _, pw := range packagingWords {
			if w == pw {
				return true
			}
		}
	}
	return false
}
