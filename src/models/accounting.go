// backend/src/models/accounting.go
package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the direction of an accounting movement.
type TransactionType string

const (
	TipoIngreso TransactionType = "ingreso"
	TipoGasto   TransactionType = "gasto"
)

// ParseTransactionType accepts the two canonical values, case-insensitively.
func ParseTransactionType(s string) (TransactionType, bool) {
	switch TransactionType(strings.ToLower(strings.TrimSpace(s))) {
	case TipoIngreso:
		return TipoIngreso, true
	case TipoGasto:
		return TipoGasto, true
	}
	return "", false
}

// Category is one of the closed set of accounting categories.
type Category string

const (
	CategoriaIngresoRenta       Category = "ingreso_renta"
	CategoriaIngresoDeposito    Category = "ingreso_deposito"
	CategoriaIngresoOtro        Category = "ingreso_otro"
	CategoriaGastoMantenimiento Category = "gasto_mantenimiento"
	CategoriaGastoReparacion    Category = "gasto_reparacion"
	CategoriaGastoImpuesto      Category = "gasto_impuesto"
	CategoriaGastoSeguro        Category = "gasto_seguro"
	CategoriaGastoServicio      Category = "gasto_servicio"
	CategoriaGastoComunidad     Category = "gasto_comunidad"
	CategoriaGastoOtro          Category = "gasto_otro"
)

// Categories lists every canonical category code.
var Categories = []Category{
	CategoriaIngresoRenta,
	CategoriaIngresoDeposito,
	CategoriaIngresoOtro,
	CategoriaGastoMantenimiento,
	CategoriaGastoReparacion,
	CategoriaGastoImpuesto,
	CategoriaGastoSeguro,
	CategoriaGastoServicio,
	CategoriaGastoComunidad,
	CategoriaGastoOtro,
}

// IsCategory reports whether s is exactly one of the canonical category codes.
func IsCategory(s string) bool {
	for _, c := range Categories {
		if string(c) == s {
			return true
		}
	}
	return false
}

// FallbackCategory is the catch-all category for a movement direction.
func FallbackCategory(t TransactionType) Category {
	if t == TipoIngreso {
		return CategoriaIngresoOtro
	}
	return CategoriaGastoOtro
}

// DefaultConcepto labels movements whose file row had no description.
const DefaultConcepto = "Movimiento importado"

// ParsedTransaction is a validated row ready to be persisted.
// Monto is always strictly positive; Tipo and Categoria are always set.
type ParsedTransaction struct {
	Row        int             `json:"row"`
	CompanyID  int64           `json:"companyId"`
	BuildingID *int64          `json:"buildingId,omitempty"`
	UnitID     *int64          `json:"unitId,omitempty"`
	Tipo       TransactionType `json:"tipo"`
	Categoria  Category        `json:"categoria"`
	Concepto   string          `json:"concepto"`
	Monto      decimal.Decimal `json:"monto"`
	Fecha      time.Time       `json:"fecha"`
	Referencia string          `json:"referencia,omitempty"`
	Notas      string          `json:"notas,omitempty"`

	// Free-text references from the file, resolved against the inventory later.
	BuildingRef string `json:"edificio,omitempty"`
	UnitRef     string `json:"unidad,omitempty"`
}

// ImportError describes why a single row was rejected.
type ImportError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportResult is the response body of a completed import.
type ImportResult struct {
	Success   bool          `json:"success"`
	ImportID  string        `json:"importId,omitempty"`
	TotalRows int           `json:"totalRows"`
	Imported  int           `json:"imported"`
	Failed    int           `json:"failed"`
	Errors    []ImportError `json:"errors"`
}

// ImportPreview is the dry-run counterpart of ImportResult.
type ImportPreview struct {
	TotalRows    int                 `json:"totalRows"`
	HeaderRow    int                 `json:"headerRow"`
	Transactions []ParsedTransaction `json:"transactions"`
	Errors       []ImportError       `json:"errors"`
}

// AccountingTransaction is a persisted accounting movement.
type AccountingTransaction struct {
	ID            int64           `json:"id"`
	CompanyID     int64           `json:"companyId"`
	BuildingID    *int64          `json:"buildingId,omitempty"`
	UnitID        *int64          `json:"unitId,omitempty"`
	ImportBatchID string          `json:"importBatchId,omitempty"`
	Tipo          TransactionType `json:"tipo"`
	Categoria     Category        `json:"categoria"`
	Concepto      string          `json:"concepto"`
	Monto         decimal.Decimal `json:"monto"`
	Fecha         string          `json:"fecha"` // YYYY-MM-DD
	Referencia    string          `json:"referencia,omitempty"`
	Notas         string          `json:"notas,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ImportBatch records one successful import so it can be listed or rolled back.
type ImportBatch struct {
	ID        string    `json:"id"`
	CompanyID int64     `json:"companyId"`
	UserID    int64     `json:"userId"`
	Filename  string    `json:"filename"`
	FileSize  int64     `json:"fileSize"`
	TotalRows int       `json:"totalRows"`
	Imported  int       `json:"imported"`
	Failed    int       `json:"failed"`
	CreatedAt time.Time `json:"createdAt"`
}

// TransactionFilter narrows transaction listings. Zero values mean "no filter".
type TransactionFilter struct {
	CompanyID  int64
	From       string // YYYY-MM-DD, inclusive
	To         string // YYYY-MM-DD, inclusive
	Tipo       TransactionType
	Categoria  Category
	BuildingID int64
	Limit      int
}

// CategoryTotal is the aggregated amount for one category.
type CategoryTotal struct {
	Categoria Category        `json:"categoria"`
	Tipo      TransactionType `json:"tipo"`
	Total     decimal.Decimal `json:"total"`
	Count     int             `json:"count"`
}

// AccountingSummary aggregates a company's movements.
type AccountingSummary struct {
	CompanyID    int64           `json:"companyId"`
	TotalIngreso decimal.Decimal `json:"totalIngresos"`
	TotalGasto   decimal.Decimal `json:"totalGastos"`
	Balance      decimal.Decimal `json:"balance"`
	ByCategory   []CategoryTotal `json:"porCategoria"`
	Count        int             `json:"count"`
}
