// backend/src/parsers/accounting/reader.go
package accounting

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadCSV returns every record of a delimited text file as untyped rows.
// Input that is not valid UTF-8 is decoded as ISO-8859-1, the usual encoding of
// spreadsheet exports saved from Spanish Windows installs.
func ReadCSV(r io.Reader) ([][]any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV data: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyFile
	}

	var src io.Reader = bytes.NewReader(data)
	if !utf8.Valid(data) {
		src = transform.NewReader(src, charmap.ISO8859_1.NewDecoder())
	}

	reader := csv.NewReader(src)
	reader.Comma = sniffDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV records: %w", err)
	}

	rows := make([][]any, len(records))
	for i, rec := range records {
		row := make([]any, len(rec))
		for j, cell := range rec {
			row[j] = cell
		}
		rows[i] = row
	}
	return rows, nil
}

// sniffDelimiter picks the most frequent of ';', ',' and tab on the first
// non-empty line, ignoring quoted text. Ties favour ';' because European
// exports use ',' as the decimal mark.
func sniffDelimiter(data []byte) rune {
	line := firstLine(data)
	counts := map[rune]int{}
	inQuotes := false
	for _, ch := range line {
		switch {
		case ch == '"':
			inQuotes = !inQuotes
		case inQuotes:
		case ch == ';' || ch == ',' || ch == '\t':
			counts[ch]++
		}
	}

	best, bestCount := ',', 0
	for _, candidate := range []rune{';', ',', '\t'} {
		if counts[candidate] > bestCount {
			best, bestCount = candidate, counts[candidate]
		}
	}
	return best
}

func firstLine(data []byte) string {
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) != "" {
			return line
		}
	}
	return ""
}

// ReadXLSX returns the rows of one worksheet. An empty sheetName selects the first
// sheet. Numeric cells are returned as float64 so Excel serial dates and amounts
// survive without the workbook's display formatting; everything else is a string.
func ReadXLSX(r io.Reader, sheetName string) ([][]any, string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, "", fmt.Errorf("%w: could not open workbook: %v", ErrUnsupportedFile, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, "", ErrEmptyFile
	}

	sheet := sheets[0]
	if name := strings.TrimSpace(sheetName); name != "" {
		sheet = ""
		for _, s := range sheets {
			if strings.EqualFold(s, name) {
				sheet = s
				break
			}
		}
		if sheet == "" {
			return nil, "", fmt.Errorf("%w: %q (available: %s)", ErrSheetNotFound, name, strings.Join(sheets, ", "))
		}
	}

	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, sheet, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	rows := make([][]any, len(raw))
	for i, rec := range raw {
		row := make([]any, len(rec))
		for j, cell := range rec {
			row[j] = typedCell(f, sheet, j, i, cell)
		}
		rows[i] = row
	}
	return rows, sheet, nil
}

func typedCell(f *excelize.File, sheet string, col, row int, value string) any {
	n, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return value
	}
	ref, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return value
	}
	cellType, err := f.GetCellType(sheet, ref)
	if err != nil {
		return value
	}
	if cellType == excelize.CellTypeUnset || cellType == excelize.CellTypeNumber {
		return n
	}
	return value
}
