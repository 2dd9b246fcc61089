// backend/src/processors/summary_processor.go
package processors

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/username/propledger/backend/src/models"
)

// summaryProcessorImpl implements the SummaryProcessor interface.
type summaryProcessorImpl struct{}

// NewSummaryProcessor creates a new instance of SummaryProcessor.
func NewSummaryProcessor() SummaryProcessor {
	return &summaryProcessorImpl{}
}

// Summarize totals movements by type and by category. Rows of other companies
// are ignored.
func (p *summaryProcessorImpl) Summarize(companyID int64, txs []models.AccountingTransaction) models.AccountingSummary {
	summary := models.AccountingSummary{
		CompanyID:    companyID,
		TotalIngreso: decimal.Zero,
		TotalGasto:   decimal.Zero,
		ByCategory:   []models.CategoryTotal{},
	}
	byCategory := make(map[models.Category]*models.CategoryTotal)

	for _, tx := range txs {
		if tx.CompanyID != companyID {
			continue
		}
		amount := tx.Monto.Abs()

		switch tx.Tipo {
		case models.TipoIngreso:
			summary.TotalIngreso = summary.TotalIngreso.Add(amount)
		case models.TipoGasto:
			summary.TotalGasto = summary.TotalGasto.Add(amount)
		default:
			continue
		}
		summary.Count++

		total, ok := byCategory[tx.Categoria]
		if !ok {
			total = &models.CategoryTotal{Categoria: tx.Categoria, Tipo: tx.Tipo, Total: decimal.Zero}
			byCategory[tx.Categoria] = total
		}
		total.Total = total.Total.Add(amount)
		total.Count++
	}

	summary.Balance = summary.TotalIngreso.Sub(summary.TotalGasto)
	for _, total := range byCategory {
		summary.ByCategory = append(summary.ByCategory, *total)
	}
	// Largest totals first, category code as tie-breaker.
	sort.Slice(summary.ByCategory, func(i, j int) bool {
		a, b := summary.ByCategory[i], summary.ByCategory[j]
		if cmp := a.Total.Cmp(b.Total); cmp != 0 {
			return cmp > 0
		}
		return a.Categoria < b.Categoria
	})
	return summary
}
