// backend/src/parsers/accounting/header.go
package accounting

import (
	"strings"

	"github.com/username/propledger/backend/src/utils"
)

const (
	DefaultHeaderScanRows   = 30
	DefaultHeaderMinMatches = 3
)

// Terms that appear in real ledger headers and rarely in data rows.
var headerKeywords = []string{"fecha", "concepto", "debe", "haber", "importe", "monto", "documento", "asiento", "referencia"}

// HeaderOptions tunes DetectHeaderRow.
type HeaderOptions struct {
	ScanRows   int
	MinMatches int
}

func (o HeaderOptions) withDefaults() HeaderOptions {
	if o.ScanRows <= 0 {
		o.ScanRows = DefaultHeaderScanRows
	}
	if o.MinMatches <= 0 {
		o.MinMatches = DefaultHeaderMinMatches
	}
	return o
}

// Record is one data row with its 1-based position in the sheet. Columns holds
// the header cells left to right.
type Record struct {
	Line    int
	Values  RawRow
	Columns []string
}

// Normalize re-keys the record so the leftmost of two colliding headers wins.
func (rec Record) Normalize() NormalizedRow {
	return rec.Values.NormalizeColumns(rec.Columns)
}

// DetectHeaderRow returns the 0-based index of the first row, among the first
// ScanRows, whose cells contain at least MinMatches distinct header keywords.
func DetectHeaderRow(rows [][]any, opts HeaderOptions) (int, bool) {
	opts = opts.withDefaults()
	limit := min(len(rows), opts.ScanRows)
	for i := 0; i < limit; i++ {
		if keywordHits(rows[i]) >= opts.MinMatches {
			return i, true
		}
	}
	return 0, false
}

func keywordHits(row []any) int {
	cells := make([]string, 0, len(row))
	for _, c := range row {
		if s := utils.NormalizeKey(cellString(c)); s != "" {
			cells = append(cells, s)
		}
	}
	hits := 0
	for _, kw := range headerKeywords {
		for _, c := range cells {
			if strings.Contains(c, kw) {
				hits++
				break
			}
		}
	}
	return hits
}

// RecordsFrom builds RawRows from the rows below headerIdx. Columns whose header
// cell is blank are dropped, and rows with no non-blank value are skipped.
func RecordsFrom(rows [][]any, headerIdx int) []Record {
	if headerIdx < 0 || headerIdx >= len(rows) {
		return nil
	}
	header := rows[headerIdx]
	names := make([]string, len(header))
	for i, h := range header {
		names[i] = strings.TrimSpace(cellString(h))
	}

	var records []Record
	for i := headerIdx + 1; i < len(rows); i++ {
		values := make(RawRow, len(names))
		empty := true
		for col, cell := range rows[i] {
			if col >= len(names) || names[col] == "" {
				continue
			}
			if _, dup := values[names[col]]; dup {
				continue
			}
			values[names[col]] = cell
			if !isBlank(cell) {
				empty = false
			}
		}
		if empty {
			continue
		}
		records = append(records, Record{Line: i + 1, Values: values, Columns: names})
	}
	return records
}
