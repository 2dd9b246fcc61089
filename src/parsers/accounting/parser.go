// backend/src/parsers/accounting/parser.go
package accounting

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/username/propledger/backend/src/logger"
	"github.com/username/propledger/backend/src/models"
)

var (
	ErrUnsupportedFile = errors.New("unsupported file format")
	ErrEmptyFile       = errors.New("file contains no data rows")
	ErrSheetNotFound   = errors.New("sheet not found")
)

const (
	MsgAmountOrType = "No se pudo determinar importe o tipo del movimiento"
	MsgInvalidDate  = "No se pudo interpretar la fecha del movimiento"
)

// Options configures a single parse.
type Options struct {
	SheetName    string
	OverrideType models.TransactionType
	NumberFormat NumberFormat
	Header       HeaderOptions
}

// Result is the outcome of parsing one file. TotalRows counts non-blank data rows;
// every one of them ends up either in Transactions or in Errors.
type Result struct {
	Sheet        string
	HeaderRow    int
	TotalRows    int
	Transactions []models.ParsedTransaction
	Errors       []models.ImportError
}

// Parser turns ledger exports into accounting movements.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Parse reads file according to the extension of filename.
func (p *Parser) Parse(file io.Reader, filename string, opts Options) (*Result, error) {
	var (
		rows      [][]any
		sheet     string
		headerIdx int
		err       error
	)

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".txt":
		rows, err = ReadCSV(file)
		if err != nil {
			return nil, err
		}
	case ".xlsx", ".xlsm":
		rows, sheet, err = ReadXLSX(file, opts.SheetName)
		if err != nil {
			return nil, err
		}
		if idx, found := DetectHeaderRow(rows, opts.Header); found {
			headerIdx = idx
		} else {
			logger.L.Debug("No header row detected, falling back to first row", "filename", filename, "sheet", sheet)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, filepath.Ext(filename))
	}

	records := RecordsFrom(rows, headerIdx)
	if len(records) == 0 {
		return nil, ErrEmptyFile
	}

	result := &Result{
		Sheet:     sheet,
		HeaderRow: headerIdx + 1,
		TotalRows: len(records),
	}
	for _, rec := range records {
		tx, rowErr := ParseRecord(rec, opts)
		if rowErr != nil {
			result.Errors = append(result.Errors, *rowErr)
			continue
		}
		result.Transactions = append(result.Transactions, *tx)
	}

	logger.L.Debug("Accounting file parsed",
		"filename", filename, "headerRow", result.HeaderRow, "rows", result.TotalRows,
		"parsed", len(result.Transactions), "failed", len(result.Errors))
	return result, nil
}

// ParseRecord converts one data row. Exactly one of the return values is non-nil.
func ParseRecord(rec Record, opts Options) (*models.ParsedTransaction, *models.ImportError) {
	row := rec.Normalize()
	format := opts.NumberFormat.orDefault()

	sig := TypeSignals{
		Debit:     numberField(row, FieldDebit, format),
		Credit:    numberField(row, FieldCredit, format),
		Amount:    numberField(row, FieldAmount, format),
		TypeLabel: row.Text(FieldType),
	}
	tipo, monto := InferType(sig, opts.OverrideType)
	if tipo == "" || !monto.IsPositive() {
		return nil, &models.ImportError{Row: rec.Line, Message: MsgAmountOrType}
	}

	dateValue, _ := row.Lookup(FieldDate)
	fecha, ok := ParseDate(dateValue)
	if !ok {
		return nil, &models.ImportError{Row: rec.Line, Message: MsgInvalidDate}
	}

	concepto := row.Text(FieldConcept)
	if concepto == "" {
		concepto = models.DefaultConcepto
	}

	return &models.ParsedTransaction{
		Row:         rec.Line,
		Tipo:        tipo,
		Categoria:   ClassifyCategory(row.Text(FieldCategory), concepto, tipo),
		Concepto:    concepto,
		Monto:       monto,
		Fecha:       fecha,
		Referencia:  row.Text(FieldReference),
		Notas:       row.Text(FieldNotes),
		BuildingRef: row.Text(FieldBuilding),
		UnitRef:     row.Text(FieldUnit),
	}, nil
}

func numberField(row NormalizedRow, field Field, f NumberFormat) *decimal.Decimal {
	v, ok := row.Lookup(field)
	if !ok {
		return nil
	}
	d, ok := ParseNumber(v, f)
	if !ok {
		return nil
	}
	return &d
}
