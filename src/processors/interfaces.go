// backend/src/processors/interfaces.go
package processors

import "github.com/username/propledger/backend/src/models"

// EntityResolver links free-text building/unit references to inventory IDs.
type EntityResolver interface {
	ResolveBuilding(ref string) (int64, bool)
	ResolveUnit(buildingID int64, ref string) (int64, bool)
	Resolve(tx *models.ParsedTransaction)
}

// SummaryProcessor aggregates persisted movements into totals.
type SummaryProcessor interface {
	Summarize(companyID int64, txs []models.AccountingTransaction) models.AccountingSummary
}
