package accounting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/username/propledger/backend/src/models"
)

func TestClassifyCategory(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		concept  string
		tipo     models.TransactionType
		expected models.Category
	}{
		{"rent", "", "Recibo alquiler enero 1ºA", models.TipoIngreso, models.CategoriaIngresoRenta},
		{"deposit with accent", "", "Devolución depósito", models.TipoIngreso, models.CategoriaIngresoDeposito},
		{"maintenance", "", "Mantenimiento ascensor", models.TipoGasto, models.CategoriaGastoMantenimiento},
		{"repair", "", "Reparación fontanería", models.TipoGasto, models.CategoriaGastoReparacion},
		{"tax", "", "Pago IBI 2024", models.TipoGasto, models.CategoriaGastoImpuesto},
		{"insurance", "", "Póliza hogar", models.TipoGasto, models.CategoriaGastoSeguro},
		{"utility", "", "Factura luz diciembre", models.TipoGasto, models.CategoriaGastoServicio},
		{"community fee", "", "Cuota comunidad", models.TipoGasto, models.CategoriaGastoComunidad},
		{"category column counts", "Seguros", "Pago trimestral", models.TipoGasto, models.CategoriaGastoSeguro},
		{"order: rent shadows maintenance", "", "Alquiler y mantenimiento", models.TipoIngreso, models.CategoriaIngresoRenta},
		{"order: maintenance shadows repair", "", "Mantenimiento y reparación", models.TipoGasto, models.CategoriaGastoMantenimiento},
		{"gastos is not gas", "", "Gastos varios", models.TipoGasto, models.CategoriaGastoOtro},
		{"vat acronym", "", "Liquidación IVA 3T", models.TipoGasto, models.CategoriaGastoImpuesto},
		{"tax acronym next to punctuation", "", "Recibo IBI/2024", models.TipoGasto, models.CategoriaGastoImpuesto},
		{"recibido does not contain ibi", "", "Recibido pago inquilino", models.TipoIngreso, models.CategoriaIngresoOtro},
		{"privada does not contain iva", "", "Plaza privada garaje", models.TipoIngreso, models.CategoriaIngresoOtro},
		{"cooperativa does not contain iva", "", "Aportación cooperativa", models.TipoGasto, models.CategoriaGastoOtro},
		{"fallback income", "", "Cobro transferencia", models.TipoIngreso, models.CategoriaIngresoOtro},
		{"fallback expense", "", "Compra material oficina", models.TipoGasto, models.CategoriaGastoOtro},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyCategory(tt.raw, tt.concept, tt.tipo))
		})
	}
}

func TestClassifyCategory_CanonicalCodesPassThrough(t *testing.T) {
	for _, c := range models.Categories {
		// The concept would otherwise trigger a different rule.
		got := ClassifyCategory(string(c), "Recibo alquiler", models.TipoGasto)
		assert.Equal(t, c, got)

		got = ClassifyCategory("  "+string(c)+" ", "", models.TipoIngreso)
		assert.Equal(t, c, got)
	}
}

func TestClassifyCategory_CodesAreCaseSensitive(t *testing.T) {
	got := ClassifyCategory("GASTO_SEGURO", "", models.TipoGasto)
	// Not a canonical code, but still matched by the "seguro" trigger.
	assert.Equal(t, models.CategoriaGastoSeguro, got)
}
