// backend/src/parsers/accounting/category.go
package accounting

import (
	"slices"
	"strings"
	"unicode"

	"github.com/username/propledger/backend/src/models"
	"github.com/username/propledger/backend/src/utils"
)

// categoryRule fires when the text contains any of patterns as a substring or
// any of words as a whole word. Short acronyms go in words: "ibi" is inside
// "recibido" and "iva" inside "privada".
type categoryRule struct {
	patterns []string
	words    []string
	category models.Category
}

// Evaluated top to bottom, first hit wins. Adding a rule above another can
// shadow it, so keep more specific triggers first.
var categoryRules = []categoryRule{
	{[]string{"renta", "alquiler", "arrendamiento"}, nil, models.CategoriaIngresoRenta},
	{[]string{"fianza", "deposito"}, nil, models.CategoriaIngresoDeposito},
	{[]string{"manten"}, nil, models.CategoriaGastoMantenimiento},
	{[]string{"repar", "averia", "fontaner"}, nil, models.CategoriaGastoReparacion},
	{[]string{"impuesto", "tasa"}, []string{"iva", "ibi"}, models.CategoriaGastoImpuesto},
	{[]string{"seguro", "poliza"}, nil, models.CategoriaGastoSeguro},
	{[]string{"luz", "agua", "gas natural", "electric", "internet", "suministro"}, nil, models.CategoriaGastoServicio},
	{[]string{"comunidad"}, nil, models.CategoriaGastoComunidad},
}

func (rule categoryRule) matches(text string, words []string) bool {
	for _, p := range rule.patterns {
		if strings.Contains(text, p) {
			return true
		}
	}
	for _, w := range rule.words {
		if slices.Contains(words, w) {
			return true
		}
	}
	return false
}

// ClassifyCategory returns rawCategory unchanged when it already is a canonical
// code. Otherwise it matches the category and concept text against the trigger
// list and falls back to the catch-all category of tipo.
func ClassifyCategory(rawCategory, concept string, tipo models.TransactionType) models.Category {
	raw := strings.TrimSpace(rawCategory)
	if models.IsCategory(raw) {
		return models.Category(raw)
	}

	text := utils.NormalizeText(raw + " " + concept)
	words := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, rule := range categoryRules {
		if rule.matches(text, words) {
			return rule.category
		}
	}
	return models.FallbackCategory(tipo)
}
