// backend/src/processors/transaction_processor.go
package processors

import (
	"strings"
	"unicode/utf8"

	"github.com/username/propledger/backend/src/models"
	"github.com/username/propledger/backend/src/security/validation"
)

// TransactionProcessor prepares parsed rows for persistence: company scoping,
// inventory linking and free-text cleanup.
type TransactionProcessor struct {
	resolver EntityResolver
}

func NewTransactionProcessor(resolver EntityResolver) *TransactionProcessor {
	return &TransactionProcessor{resolver: resolver}
}

// Process returns enriched copies; the input slice is left untouched.
func (p *TransactionProcessor) Process(companyID int64, txs []models.ParsedTransaction) []models.ParsedTransaction {
	processed := make([]models.ParsedTransaction, 0, len(txs))
	for _, tx := range txs {
		tx.CompanyID = companyID
		tx.BuildingID, tx.UnitID = nil, nil
		if p.resolver != nil {
			p.resolver.Resolve(&tx)
		}

		tx.Concepto = cleanText(tx.Concepto, validation.MaxDescriptionLength)
		if tx.Concepto == "" {
			tx.Concepto = models.DefaultConcepto
		}
		tx.Referencia = cleanText(tx.Referencia, validation.DefaultMaxStringLength)
		tx.Notas = cleanText(tx.Notas, validation.MaxDescriptionLength)

		processed = append(processed, tx)
	}
	return processed
}

func cleanText(s string, maxLen int) string {
	s = strings.TrimSpace(validation.StripUnprintable(validation.SanitizePlainText(s)))
	if utf8.RuneCountInString(s) > maxLen {
		s = string([]rune(s)[:maxLen])
	}
	return s
}
