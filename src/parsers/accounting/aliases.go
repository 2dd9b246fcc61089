// backend/src/parsers/accounting/aliases.go
package accounting

import (
	"slices"
	"strings"

	"github.com/username/propledger/backend/src/utils"
)

// Field is a logical column of an accounting export.
type Field string

const (
	FieldDate      Field = "date"
	FieldConcept   Field = "concept"
	FieldCategory  Field = "category"
	FieldType      Field = "type"
	FieldAmount    Field = "amount"
	FieldDebit     Field = "debit"
	FieldCredit    Field = "credit"
	FieldReference Field = "reference"
	FieldBuilding  Field = "building"
	FieldUnit      Field = "unit"
	FieldNotes     Field = "notes"
)

// Header spellings accepted for each field, in priority order.
// They are normalized with utils.NormalizeKey when the package loads.
var rawAliases = map[Field][]string{
	FieldDate:      {"fecha", "date", "fecha operacion", "fecha contable", "fecha valor", "f. valor", "fecha movimiento", "fecha asiento"},
	FieldConcept:   {"concepto", "descripcion", "description", "detalle", "concept", "texto", "glosa"},
	FieldCategory:  {"categoria", "category", "clasificacion", "partida"},
	FieldType:      {"tipo", "type", "tipo movimiento", "naturaleza"},
	FieldAmount:    {"importe", "monto", "amount", "cantidad", "total", "valor", "importe total"},
	FieldDebit:     {"debe", "debit", "cargo", "cargos", "salidas"},
	FieldCredit:    {"haber", "credit", "abono", "abonos", "entradas"},
	FieldReference: {"referencia", "reference", "ref", "documento", "n documento", "nº documento", "num documento", "asiento", "factura"},
	FieldBuilding:  {"edificio", "building", "inmueble", "propiedad", "finca"},
	FieldUnit:      {"unidad", "unit", "vivienda", "piso", "local", "puerta", "numero unidad"},
	FieldNotes:     {"notas", "notes", "observaciones", "comentarios"},
}

var fieldAliases = normalizeAliases(rawAliases)

func normalizeAliases(raw map[Field][]string) map[Field][]string {
	out := make(map[Field][]string, len(raw))
	for field, aliases := range raw {
		normalized := make([]string, 0, len(aliases))
		for _, a := range aliases {
			normalized = append(normalized, utils.NormalizeKey(a))
		}
		out[field] = normalized
	}
	return out
}

// Aliases returns the normalized alias list for a field.
func Aliases(field Field) []string {
	return fieldAliases[field]
}

// RawRow maps the original header text to the cell value. Cell values are
// string, float64 (numeric spreadsheet cells) or time.Time.
type RawRow map[string]any

// NormalizedRow is a RawRow keyed by utils.NormalizeKey(header).
type NormalizedRow map[string]any

// Normalize re-keys the row, visiting headers in sorted order. Use
// NormalizeColumns when the file's column order is known.
func (r RawRow) Normalize() NormalizedRow {
	return r.NormalizeColumns(nil)
}

// NormalizeColumns re-keys the row visiting headers in columns order; headers
// missing from columns follow in sorted order. When two headers collapse to the
// same key the leftmost non-blank value is kept.
func (r RawRow) NormalizeColumns(columns []string) NormalizedRow {
	out := make(NormalizedRow, len(r))
	seen := make(map[string]bool, len(r))
	add := func(header string) {
		value, ok := r[header]
		if !ok || seen[header] {
			return
		}
		seen[header] = true
		key := utils.NormalizeKey(header)
		if key == "" {
			return
		}
		if existing, ok := out[key]; ok && !isBlank(existing) {
			return
		}
		out[key] = value
	}
	for _, header := range columns {
		add(header)
	}
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, header := range keys {
		add(header)
	}
	return out
}

// Lookup returns the value of the first alias of field present in the row.
// Blank cells count as absent.
func (r NormalizedRow) Lookup(field Field) (any, bool) {
	return r.LookupAliases(Aliases(field))
}

// LookupAliases checks aliases in order; the first one with a non-blank value wins.
func (r NormalizedRow) LookupAliases(aliases []string) (any, bool) {
	for _, alias := range aliases {
		if v, ok := r[alias]; ok && !isBlank(v) {
			return v, true
		}
	}
	return nil, false
}

// Text returns the field as trimmed text, or "" when absent.
func (r NormalizedRow) Text(field Field) string {
	v, ok := r.Lookup(field)
	if !ok {
		return ""
	}
	return strings.TrimSpace(cellString(v))
}

func isBlank(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(val) == ""
	}
	return false
}
