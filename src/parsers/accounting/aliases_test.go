package accounting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/username/propledger/backend/src/utils"
)

func TestNormalize_CollapsesHeaderSpellings(t *testing.T) {
	raw := RawRow{
		"  Fecha ":        "01/02/2024",
		"CONCEPTO":        "Recibo alquiler",
		"Importe_Total":   "100",
		"Nº Documento":    "F-001",
		"Tipo-Movimiento": "ingreso",
	}

	row := raw.Normalize()

	assert.Equal(t, "01/02/2024", row["fecha"])
	assert.Equal(t, "Recibo alquiler", row["concepto"])
	assert.Equal(t, "100", row["importetotal"])
	assert.Equal(t, "F-001", row["nºdocumento"])
	assert.Equal(t, "ingreso", row["tipomovimiento"])
}

func TestNormalizeColumns_LeftmostCollidingHeaderWins(t *testing.T) {
	raw := RawRow{"Fecha-Valor": "02/01/2024", "Fecha valor": "01/01/2024"}

	for i := 0; i < 20; i++ {
		row := raw.NormalizeColumns([]string{"Fecha valor", "Fecha-Valor"})
		assert.Equal(t, "01/01/2024", row["fechavalor"])
	}

	row := raw.NormalizeColumns([]string{"Fecha-Valor", "Fecha valor"})
	assert.Equal(t, "02/01/2024", row["fechavalor"])
}

func TestNormalizeColumns_BlankLeftmostFallsThrough(t *testing.T) {
	raw := RawRow{"Importe": "", "IMPORTE ": "15"}

	row := raw.NormalizeColumns([]string{"Importe", "IMPORTE "})
	assert.Equal(t, "15", row["importe"])
}

func TestNormalize_WithoutColumnsIsStable(t *testing.T) {
	raw := RawRow{"Fecha valor": "01/01/2024", "Fecha-Valor": "02/01/2024"}

	first := raw.Normalize()["fechavalor"]
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, raw.Normalize()["fechavalor"])
	}
}

func TestLookup_FirstListedAliasWins(t *testing.T) {
	// "importe" is listed before "monto", regardless of column order in the file.
	row := RawRow{"Monto": "20", "Importe": "10"}.Normalize()

	v, ok := row.Lookup(FieldAmount)
	assert.True(t, ok)
	assert.Equal(t, "10", v)
}

func TestLookup_BlankCellsCountAsAbsent(t *testing.T) {
	row := RawRow{"Importe": "   ", "Monto": "20"}.Normalize()

	v, ok := row.Lookup(FieldAmount)
	assert.True(t, ok)
	assert.Equal(t, "20", v)

	_, ok = row.Lookup(FieldDebit)
	assert.False(t, ok)
}

func TestLookup_NoFuzzyMatching(t *testing.T) {
	row := RawRow{"Fechas": "01/01/2024", "Concept0": "x"}.Normalize()

	_, ok := row.Lookup(FieldDate)
	assert.False(t, ok)
	_, ok = row.Lookup(FieldConcept)
	assert.False(t, ok)
}

func TestText_RendersNumericCells(t *testing.T) {
	row := RawRow{"Referencia": float64(1234), "Notas": "  revisar  "}.Normalize()

	assert.Equal(t, "1234", row.Text(FieldReference))
	assert.Equal(t, "revisar", row.Text(FieldNotes))
	assert.Equal(t, "", row.Text(FieldBuilding))
}

func TestAliases_AreNormalizedKeys(t *testing.T) {
	for field, aliases := range fieldAliases {
		for _, a := range aliases {
			assert.Equal(t, utils.NormalizeKey(a), a, "alias %q of %s", a, field)
		}
	}
}
