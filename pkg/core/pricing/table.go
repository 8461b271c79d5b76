// Package pricing holds the configured cost-price list and the keyword
// matcher that estimates cost of goods from free-text product descriptors.
package pricing

import (
	"fmt"
	"os"
	"sort"
	"strings"

	hjson "github.com/hjson/hjson-go/v4"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v2"

	"toko_insight/pkg/core/textnorm"
)

// Entry is one configured keyword -> cost price pair. The keyword is matched
// case-insensitively as a substring of the normalized product descriptor.
type Entry struct {
	Keyword    string
	UnitPrice  decimal.Decimal
	normalized string
}

// Normalized returns the keyword as it is compared during matching.
func (e Entry) Normalized() string {
	return e.normalized
}

// Table is the immutable price list for one report run. It preserves the
// order entries were supplied in; that order breaks length ties during
// matching, so it is part of the table's observable behavior.
type Table struct {
	entries []Entry
	// scan holds entry indices ordered longest-normalized-keyword-first,
	// equal lengths keeping entry order. Built once at construction.
	scan []int
}

// NewTable validates entries and builds the matcher scan order.
//
// Entries are rejected (fatal, per the configuration error contract) when a
// keyword is empty after normalization, a price is zero or negative, or two
// keywords normalize to the same string. Distinct keywords of equal
// normalized length are allowed but logged, because which of them wins a
// tie depends only on their position in the list.
func NewTable(entries []Entry) (*Table, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("price table is empty")
	}

	t := &Table{entries: make([]Entry, len(entries))}
	seen := make(map[string]string, len(entries))
	for i, e := range entries {
		norm := textnorm.Normalize(e.Keyword)
		if norm == "" {
			return nil, fmt.Errorf("price table entry %d: keyword %q is empty after normalization", i, e.Keyword)
		}
		if !e.UnitPrice.IsPositive() {
			return nil, fmt.Errorf("price table keyword %q: price %s must be positive", e.Keyword, e.UnitPrice)
		}
		if prev, dup := seen[norm]; dup {
			return nil, fmt.Errorf("price table keywords %q and %q normalize to the same string %q", prev, e.Keyword, norm)
		}
		seen[norm] = e.Keyword

		e.normalized = norm
		t.entries[i] = e
	}

	t.scan = make([]int, len(t.entries))
	for i := range t.scan {
		t.scan[i] = i
	}
	sort.SliceStable(t.scan, func(a, b int) bool {
		return len(t.entries[t.scan[a]].normalized) > len(t.entries[t.scan[b]].normalized)
	})

	for _, pair := range t.equalLengthPairs() {
		fmt.Printf("[PRICING] warning: keywords %q and %q have equal length; tie is broken by list order\n", pair[0], pair[1])
	}

	return t, nil
}

// equalLengthPairs lists distinct keyword pairs whose normalized forms have
// the same length. Such pairs are the only source of order-dependence in
// the matcher.
func (t *Table) equalLengthPairs() [][2]string {
	byLen := make(map[int][]string)
	for _, e := range t.entries {
		byLen[len(e.normalized)] = append(byLen[len(e.normalized)], e.Keyword)
	}
	var pairs [][2]string
	for _, kws := range byLen {
		for i := 1; i < len(kws); i++ {
			pairs = append(pairs, [2]string{kws[0], kws[i]})
		}
	}
	return pairs
}

// Len returns the number of configured entries.
func (t *Table) Len() int { return len(t.entries) }

// Entries returns a copy of the configured entries in supply order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Config is the on-disk shape of the price list. Hjson is the primary
// format so sellers can annotate their list with comments; plain YAML is
// accepted as well.
type Config struct {
	// Prices maps a product keyword to its cost price in rupiah.
	Prices map[string]float64 `json:"prices" yaml:"prices"`
	// DefaultPrice, when positive, is a fallback cost the CALLER may apply
	// to unmatched rows. The matcher itself never uses it; an unmatched row
	// always comes back flagged with zero cost.
	DefaultPrice float64 `json:"default_price" yaml:"default_price"`
}

// LoadFile reads a price list from path. Files ending in .yaml/.yml are
// parsed as YAML, everything else as Hjson (which also accepts plain JSON).
func LoadFile(path string) (*Table, *Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read price list: %w", err)
	}

	var cfg Config
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		err = yaml.Unmarshal(raw, &cfg)
	} else {
		err = hjson.Unmarshal(raw, &cfg)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("parse price list %s: %w", path, err)
	}

	table, err := FromConfig(&cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("price list %s: %w", path, err)
	}
	return table, &cfg, nil
}

// FromConfig builds a Table from a parsed Config. Map order is not
// preserved by the parsers, so keywords are sorted lexicographically to
// make the resulting tie-break order deterministic across runs.
func FromConfig(cfg *Config) (*Table, error) {
	if cfg == nil || len(cfg.Prices) == 0 {
		return nil, fmt.Errorf("no prices configured")
	}

	keywords := make([]string, 0, len(cfg.Prices))
	for kw := range cfg.Prices {
		keywords = append(keywords, kw)
	}
	sort.Strings(keywords)

	entries := make([]Entry, 0, len(keywords))
	for _, kw := range keywords {
		entries = append(entries, Entry{
			Keyword:   kw,
			UnitPrice: decimal.NewFromFloat(cfg.Prices[kw]),
		})
	}
	return NewTable(entries)
}
