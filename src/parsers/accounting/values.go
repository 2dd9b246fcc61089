// backend/src/parsers/accounting/values.go
package accounting

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// NumberFormat describes the locale separators of amount columns.
type NumberFormat struct {
	Decimal   rune
	Thousands rune
}

// EuropeanFormat is "1.234,56".
var EuropeanFormat = NumberFormat{Decimal: ',', Thousands: '.'}

func (f NumberFormat) orDefault() NumberFormat {
	if f.Decimal == 0 || f.Decimal == f.Thousands {
		return EuropeanFormat
	}
	return f
}

var currencyStripper = strings.NewReplacer("€", "", "$", "", "EUR", "", "eur", "", " ", "", " ", "", " ", "", "\t", "")

// ParseNumber converts a cell into a decimal. Numeric cells are taken as is;
// text cells are read with the given locale separators. Parentheses and a
// trailing minus mark negative values.
func ParseNumber(v any, f NumberFormat) (decimal.Decimal, bool) {
	switch val := v.(type) {
	case nil:
		return decimal.Zero, false
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat(val), true
	case int:
		return decimal.NewFromInt(int64(val)), true
	case int64:
		return decimal.NewFromInt(val), true
	case decimal.Decimal:
		return val, true
	case string:
		return parseNumberText(val, f.orDefault())
	}
	return decimal.Zero, false
}

func parseNumberText(s string, f NumberFormat) (decimal.Decimal, bool) {
	s = currencyStripper.Replace(strings.TrimSpace(s))
	if s == "" {
		return decimal.Zero, false
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}
	if strings.HasSuffix(s, "-") {
		negative = !negative
		s = strings.TrimSuffix(s, "-")
	}

	s = strings.ReplaceAll(s, string(f.Thousands), "")
	s = strings.ReplaceAll(s, string(f.Decimal), ".")
	if s == "" || s == "." || s == "-" || s == "+" {
		return decimal.Zero, false
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	if negative {
		d = d.Neg()
	}
	return d, true
}

// Largest serial excelize accepts (9999-12-31).
const maxExcelSerial = 2958466

var serialPattern = regexp.MustCompile(`^\d{1,7}(\.\d+)?$`)

var dateLayouts = []string{
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2-1-2006",
	"02.01.2006",
	"2006-01-02",
	"2006/01/02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006 15:04:05",
	"2/1/06",
	"02/01/06",
	"20060102",
}

// ParseDate accepts time.Time, Excel serial dates (numeric, or numeric text) and
// the day-first text layouts common in Spanish exports. The result is the UTC
// calendar date.
func ParseDate(v any) (time.Time, bool) {
	switch val := v.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		if val.IsZero() {
			return time.Time{}, false
		}
		return truncateDate(val), true
	case float64:
		return fromExcelSerial(val)
	case int:
		return fromExcelSerial(float64(val))
	case int64:
		return fromExcelSerial(float64(val))
	case string:
		return parseDateText(val)
	}
	return time.Time{}, false
}

func parseDateText(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	// "20240115" is both a layout and a number; the layout wins for 8 digits.
	if serialPattern.MatchString(s) && len(s) != 8 {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return fromExcelSerial(f)
		}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return truncateDate(t), true
		}
	}
	return time.Time{}, false
}

func fromExcelSerial(serial float64) (time.Time, bool) {
	if math.IsNaN(serial) || serial <= 0 || serial >= maxExcelSerial {
		return time.Time{}, false
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return time.Time{}, false
	}
	return truncateDate(t), true
}

func truncateDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// cellString renders a cell value as text.
func cellString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case time.Time:
		return val.Format("2006-01-02")
	case decimal.Decimal:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	}
	return ""
}
