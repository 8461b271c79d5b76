// Package ingest parses the two marketplace CSV exports (orders and
// settlement/income) and joins them into the rows the report core consumes.
// Export formats drift between marketplace versions: header names vary, the
// settlement file ships with either a comma or a semicolon delimiter, and
// amounts appear in Indonesian grouping ("1.234.567,89") as well as plain
// machine format. All of that is absorbed here; the core never sees it.
package ingest

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"toko_insight/pkg/core/textnorm"
)

// Issue is a non-fatal problem with one export line. Issues are collected
// and surfaced as warnings; the affected field degrades to its zero value
// and the rest of the batch is unaffected.
type Issue struct {
	Line   int    `json:"line"`
	Field  string `json:"field"`
	Detail string `json:"detail"`
}

func (i Issue) String() string {
	return fmt.Sprintf("line %d, %s: %s", i.Line, i.Field, i.Detail)
}

// DetectDelimiter probes a header line for the delimiter the export was
// written with. Semicolon wins when it outnumbers commas; comma is the
// default.
func DetectDelimiter(header string) rune {
	if strings.Count(header, ";") > strings.Count(header, ",") {
		return ';'
	}
	return ','
}

// readTable reads a whole delimited file, probing the delimiter from the
// first line. Records may have ragged lengths; short rows are padded when
// columns are resolved by index.
func readTable(r io.Reader) ([][]string, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(4096)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("read export: %w", err)
	}
	firstLine := string(head)
	if idx := bytes.IndexByte(head, '\n'); idx >= 0 {
		firstLine = string(head[:idx])
	}

	cr := csv.NewReader(br)
	cr.Comma = DetectDelimiter(firstLine)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse export: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("export is empty")
	}
	return records, nil
}

// columnIndex resolves a column by any of its known header aliases,
// compared after normalization so punctuation and casing differences
// between export versions do not matter.
func columnIndex(header []string, aliases []string) int {
	for i, h := range header {
		norm := textnorm.Normalize(h)
		for _, a := range aliases {
			if norm == textnorm.Normalize(a) {
				return i
			}
		}
	}
	return -1
}

func field(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}
