// backend/src/parsers/accounting/infer.go
package accounting

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/username/propledger/backend/src/models"
	"github.com/username/propledger/backend/src/utils"
)

// TypeSignals are the columns that can reveal a movement's direction.
// A nil pointer means the column was absent or unparseable.
type TypeSignals struct {
	Debit     *decimal.Decimal
	Credit    *decimal.Decimal
	Amount    *decimal.Decimal
	TypeLabel string
}

func positive(d *decimal.Decimal) bool {
	return d != nil && d.IsPositive()
}

// InferType applies the direction rules in order; the first that fires decides.
// It returns the movement type and its unsigned amount. An empty type means the
// row could not be resolved. override is used only when no rule fires.
func InferType(sig TypeSignals, override models.TransactionType) (models.TransactionType, decimal.Decimal) {
	debitPos, creditPos := positive(sig.Debit), positive(sig.Credit)

	switch {
	case debitPos && !creditPos:
		return models.TipoGasto, *sig.Debit
	case creditPos && !debitPos:
		return models.TipoIngreso, *sig.Credit
	case debitPos && creditPos:
		net := sig.Credit.Sub(*sig.Debit).Abs()
		if sig.Credit.GreaterThanOrEqual(*sig.Debit) {
			return models.TipoIngreso, net
		}
		return models.TipoGasto, net
	}

	amount := decimal.Zero
	if sig.Amount != nil {
		amount = sig.Amount.Abs()
		if sig.Amount.IsNegative() {
			return models.TipoGasto, amount
		}
		if sig.Amount.IsPositive() {
			return models.TipoIngreso, amount
		}
	}

	if t := typeFromLabel(sig.TypeLabel); t != "" {
		return t, amount
	}
	return override, amount
}

func typeFromLabel(label string) models.TransactionType {
	l := utils.NormalizeText(label)
	if l == "" {
		return ""
	}
	if strings.Contains(l, "gasto") || strings.Contains(l, "debe") {
		return models.TipoGasto
	}
	if strings.Contains(l, "ingreso") || strings.Contains(l, "haber") {
		return models.TipoIngreso
	}
	return ""
}
