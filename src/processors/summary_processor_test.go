package processors

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/propledger/backend/src/models"
)

func TestSummarize(t *testing.T) {
	txs := []models.AccountingTransaction{
		{CompanyID: 1, Tipo: models.TipoIngreso, Categoria: models.CategoriaIngresoRenta, Monto: decimal.RequireFromString("750.00")},
		{CompanyID: 1, Tipo: models.TipoIngreso, Categoria: models.CategoriaIngresoRenta, Monto: decimal.RequireFromString("750.10")},
		{CompanyID: 1, Tipo: models.TipoGasto, Categoria: models.CategoriaGastoReparacion, Monto: decimal.RequireFromString("120.50")},
		{CompanyID: 1, Tipo: models.TipoGasto, Categoria: models.CategoriaGastoComunidad, Monto: decimal.RequireFromString("0.1")},
		{CompanyID: 1, Tipo: models.TipoGasto, Categoria: models.CategoriaGastoComunidad, Monto: decimal.RequireFromString("0.2")},
		{CompanyID: 2, Tipo: models.TipoGasto, Categoria: models.CategoriaGastoOtro, Monto: decimal.NewFromInt(1000)},
	}

	s := NewSummaryProcessor().Summarize(1, txs)

	assert.Equal(t, int64(1), s.CompanyID)
	assert.Equal(t, 5, s.Count)
	assert.True(t, decimal.RequireFromString("1500.10").Equal(s.TotalIngreso), s.TotalIngreso.String())
	assert.True(t, decimal.RequireFromString("120.80").Equal(s.TotalGasto), s.TotalGasto.String())
	assert.True(t, decimal.RequireFromString("1379.30").Equal(s.Balance), s.Balance.String())

	require.Len(t, s.ByCategory, 3)
	assert.Equal(t, models.CategoriaIngresoRenta, s.ByCategory[0].Categoria)
	assert.Equal(t, 2, s.ByCategory[0].Count)
	assert.Equal(t, models.CategoriaGastoReparacion, s.ByCategory[1].Categoria)
	assert.Equal(t, models.CategoriaGastoComunidad, s.ByCategory[2].Categoria)
	assert.True(t, decimal.RequireFromString("0.3").Equal(s.ByCategory[2].Total))
}

func TestSummarize_Empty(t *testing.T) {
	s := NewSummaryProcessor().Summarize(3, nil)

	assert.True(t, s.Balance.IsZero())
	assert.Equal(t, 0, s.Count)
	assert.NotNil(t, s.ByCategory)
}
