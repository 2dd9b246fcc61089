package accounting

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/propledger/backend/src/models"
)

func record(line int, values RawRow) Record {
	return Record{Line: line, Values: values}
}

func TestParseRecord_DebitRepairRow(t *testing.T) {
	tx, rowErr := ParseRecord(record(2, RawRow{
		"Fecha": "15/03/2024", "Concepto": "Reparación fontanería", "Debe": "100", "Haber": "0",
	}), Options{})

	require.Nil(t, rowErr)
	assert.Equal(t, models.TipoGasto, tx.Tipo)
	assert.Equal(t, models.CategoriaGastoReparacion, tx.Categoria)
	assert.True(t, decimal.NewFromInt(100).Equal(tx.Monto))
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), tx.Fecha)
	assert.Equal(t, 2, tx.Row)
}

func TestParseRecord_LocaleAmountAndSerialDate(t *testing.T) {
	tx, rowErr := ParseRecord(record(2, RawRow{
		"Monto": "1.250,50", "Fecha": float64(45292), "Concepto": "Recibo alquiler",
	}), Options{})

	require.Nil(t, rowErr)
	assert.True(t, decimal.RequireFromString("1250.50").Equal(tx.Monto))
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), tx.Fecha)
	assert.Equal(t, models.TipoIngreso, tx.Tipo)
	assert.Equal(t, models.CategoriaIngresoRenta, tx.Categoria)
}

func TestParseRecord_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		values  RawRow
		opts    Options
		message string
	}{
		{"no amount, no debit/credit, no type", RawRow{"Fecha": "01/01/2024", "Concepto": "Sin importe"}, Options{}, MsgAmountOrType},
		{"zero amount", RawRow{"Fecha": "01/01/2024", "Importe": "0"}, Options{}, MsgAmountOrType},
		{"label without amount", RawRow{"Fecha": "01/01/2024", "Tipo": "gasto"}, Options{}, MsgAmountOrType},
		{"override without amount", RawRow{"Fecha": "01/01/2024"}, Options{OverrideType: models.TipoGasto}, MsgAmountOrType},
		{"unparseable amount", RawRow{"Fecha": "01/01/2024", "Importe": "n/a"}, Options{}, MsgAmountOrType},
		{"bad date", RawRow{"Fecha": "pendiente", "Importe": "10"}, Options{}, MsgInvalidDate},
		{"missing date", RawRow{"Importe": "10"}, Options{}, MsgInvalidDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx, rowErr := ParseRecord(record(9, tt.values), tt.opts)
			assert.Nil(t, tx)
			require.NotNil(t, rowErr)
			assert.Equal(t, models.ImportError{Row: 9, Message: tt.message}, *rowErr)
		})
	}
}

func TestParseRecord_MontoAlwaysPositive(t *testing.T) {
	for _, amount := range []string{"-10", "10", "(10,00)", "-0,01", "1.000.000,99"} {
		tx, rowErr := ParseRecord(record(2, RawRow{"Fecha": "01/01/2024", "Importe": amount}), Options{})
		require.Nil(t, rowErr, amount)
		assert.True(t, tx.Monto.IsPositive(), amount)
	}
}

func TestParseRecord_DefaultsAndPassThrough(t *testing.T) {
	tx, rowErr := ParseRecord(record(2, RawRow{
		"Fecha": "01/01/2024", "Importe": "-30", "Categoria": "gasto_comunidad",
		"Referencia": "R-7", "Observaciones": "trimestre", "Edificio": "Central", "Piso": "2ºB",
	}), Options{})

	require.Nil(t, rowErr)
	assert.Equal(t, "Movimiento importado", tx.Concepto)
	assert.Equal(t, models.CategoriaGastoComunidad, tx.Categoria)
	assert.Equal(t, "R-7", tx.Referencia)
	assert.Equal(t, "trimestre", tx.Notas)
	assert.Equal(t, "Central", tx.BuildingRef)
	assert.Equal(t, "2ºB", tx.UnitRef)
}

func TestParse_CSVPartialSuccess(t *testing.T) {
	csvData := strings.Join([]string{
		"Fecha;Concepto;Debe;Haber",
		"02/01/2024;Recibo alquiler 1ºA;;750,00",
		"03/01/2024;Reparación fontanería;120,50;",
		"04/01/2024;Sin importe;;",
		";;;",
		"fecha rota;Seguro hogar;80;",
	}, "\n")

	res, err := NewParser().Parse(strings.NewReader(csvData), "mayor.csv", Options{})
	require.NoError(t, err)

	assert.Equal(t, 1, res.HeaderRow)
	assert.Equal(t, 4, res.TotalRows)
	require.Len(t, res.Transactions, 2)
	assert.Equal(t, models.TipoIngreso, res.Transactions[0].Tipo)
	assert.Equal(t, models.TipoGasto, res.Transactions[1].Tipo)
	assert.Equal(t, []models.ImportError{
		{Row: 4, Message: MsgAmountOrType},
		{Row: 6, Message: MsgInvalidDate},
	}, res.Errors)
}

func TestParse_XLSXWithLetterhead(t *testing.T) {
	data := buildWorkbook(t, "Sheet1", map[string]any{
		"A1": "Administración de Fincas Norte",
		"A2": "Libro mayor 2024",
		"A5": "Página 1",
		"A6": "Fecha", "B6": "Concepto", "C6": "Debe", "D6": "Haber", "E6": "Nº Documento",
		"A7": 45292, "B7": "Cuota comunidad", "C7": 60, "E7": "D-1",
		"A8": "05/01/2024", "B8": "Alquiler local", "D8": "1.100,00", "E8": "D-2",
	})

	res, err := NewParser().Parse(bytes.NewReader(data), "mayor.xlsx", Options{})
	require.NoError(t, err)

	assert.Equal(t, 6, res.HeaderRow)
	assert.Equal(t, 2, res.TotalRows)
	require.Len(t, res.Transactions, 2)
	assert.Empty(t, res.Errors)

	first := res.Transactions[0]
	assert.Equal(t, 7, first.Row)
	assert.Equal(t, models.CategoriaGastoComunidad, first.Categoria)
	assert.True(t, decimal.NewFromInt(60).Equal(first.Monto))
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), first.Fecha)
	assert.Equal(t, "D-1", first.Referencia)

	second := res.Transactions[1]
	assert.Equal(t, models.TipoIngreso, second.Tipo)
	assert.True(t, decimal.NewFromInt(1100).Equal(second.Monto))
}

func TestParse_XLSXWithoutRecognisableHeaderUsesFirstRow(t *testing.T) {
	data := buildWorkbook(t, "Sheet1", map[string]any{
		"A1": "Date", "B1": "Description", "C1": "Amount",
		"A2": "2024-02-01", "B2": "Internet", "C2": -45,
	})

	res, err := NewParser().Parse(bytes.NewReader(data), "export.xlsx", Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.HeaderRow)
	require.Len(t, res.Transactions, 1)
	assert.Equal(t, models.CategoriaGastoServicio, res.Transactions[0].Categoria)
	assert.Equal(t, 2, res.Transactions[0].Row)
}

func TestParse_StructuralErrors(t *testing.T) {
	_, err := NewParser().Parse(strings.NewReader("Fecha;Importe\n"), "vacio.csv", Options{})
	assert.True(t, errors.Is(err, ErrEmptyFile))

	_, err = NewParser().Parse(strings.NewReader("%PDF-1.4"), "mayor.pdf", Options{})
	assert.True(t, errors.Is(err, ErrUnsupportedFile))
}
