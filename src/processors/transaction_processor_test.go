package processors

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/propledger/backend/src/models"
	"github.com/username/propledger/backend/src/security/validation"
)

func TestTransactionProcessor_Process(t *testing.T) {
	p := NewTransactionProcessor(NewEntityResolver(sampleSnapshot()))
	foreignID := int64(999)

	in := []models.ParsedTransaction{
		{
			Row: 2, Tipo: models.TipoIngreso, Categoria: models.CategoriaIngresoRenta,
			Concepto: "Recibo <b>alquiler</b>", Monto: decimal.NewFromInt(750),
			BuildingRef: "Central", UnitRef: "1A", CompanyID: 7, BuildingID: &foreignID,
		},
		{
			Row: 3, Tipo: models.TipoGasto, Categoria: models.CategoriaGastoOtro,
			Concepto: "<script>alert(1)</script>", Monto: decimal.NewFromInt(5),
			Notas: "  ver\u200b factura ",
		},
	}

	out := p.Process(1, in)

	require.Len(t, out, 2)
	assert.Equal(t, int64(1), out[0].CompanyID)
	require.NotNil(t, out[0].BuildingID)
	assert.Equal(t, int64(10), *out[0].BuildingID)
	require.NotNil(t, out[0].UnitID)
	assert.Equal(t, int64(101), *out[0].UnitID)
	assert.Equal(t, "Recibo alquiler", out[0].Concepto)

	assert.Nil(t, out[1].BuildingID)
	assert.Equal(t, models.DefaultConcepto, out[1].Concepto)
	assert.Equal(t, "ver factura", out[1].Notas)

	// Input is not mutated.
	assert.Equal(t, int64(7), in[0].CompanyID)
	assert.Equal(t, &foreignID, in[0].BuildingID)
}

func TestTransactionProcessor_TruncatesLongText(t *testing.T) {
	p := NewTransactionProcessor(nil)

	out := p.Process(1, []models.ParsedTransaction{{Concepto: strings.Repeat("ñ", validation.MaxDescriptionLength+10)}})

	assert.Equal(t, validation.MaxDescriptionLength, len([]rune(out[0].Concepto)))
}

func TestTransactionProcessor_StoresPlainText(t *testing.T) {
	p := NewTransactionProcessor(nil)

	out := p.Process(1, []models.ParsedTransaction{{
		Concepto:   "Luz & agua 'enero'",
		Notas:      "a < b",
		Referencia: "F&A-1",
	}})

	require.Len(t, out, 1)
	assert.Equal(t, "Luz & agua 'enero'", out[0].Concepto)
	assert.Equal(t, "a < b", out[0].Notas)
	assert.Equal(t, "F&A-1", out[0].Referencia)
}

func TestTransactionProcessor_ResolvesNamesWithAmpersand(t *testing.T) {
	snapshot := models.InventorySnapshot{
		Buildings: []models.Building{{ID: 30, Name: "Pérez & Hijos"}},
	}
	p := NewTransactionProcessor(NewEntityResolver(snapshot))

	out := p.Process(1, []models.ParsedTransaction{{Concepto: "Cuota", BuildingRef: "Pérez & Hijos"}})

	require.NotNil(t, out[0].BuildingID)
	assert.Equal(t, int64(30), *out[0].BuildingID)
}
