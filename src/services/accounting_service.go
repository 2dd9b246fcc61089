// backend/src/services/accounting_service.go
package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/username/propledger/backend/src/logger"
	"github.com/username/propledger/backend/src/model"
	"github.com/username/propledger/backend/src/models"
	"github.com/username/propledger/backend/src/parsers/accounting"
	"github.com/username/propledger/backend/src/processors"
)

const (
	ckSummaryPrefix      = "agg_summary_company_%d_"
	ckSummary            = ckSummaryPrefix + "from_%s_to_%s"
	CacheCleanupInterval = 30 * time.Minute
)

// ImportOptions are the process-wide parser settings.
type ImportOptions struct {
	NumberFormat accounting.NumberFormat
	Header       accounting.HeaderOptions
}

type accountingServiceImpl struct {
	repo             ImportRepository
	parser           *accounting.Parser
	summaryProcessor processors.SummaryProcessor
	reportCache      *cache.Cache
	opts             ImportOptions
}

func NewAccountingService(
	repo ImportRepository,
	parser *accounting.Parser,
	summaryProcessor processors.SummaryProcessor,
	reportCache *cache.Cache,
	opts ImportOptions,
) AccountingService {
	return &accountingServiceImpl{
		repo:             repo,
		parser:           parser,
		summaryProcessor: summaryProcessor,
		reportCache:      reportCache,
		opts:             opts,
	}
}

func (s *accountingServiceImpl) ListImports(companyID int64) ([]models.ImportBatch, error) {
	return s.repo.ListImportBatches(companyID)
}

func (s *accountingServiceImpl) RollbackImport(ctx context.Context, companyID int64, batchID string) (int64, error) {
	removed, err := s.repo.DeleteImportBatch(companyID, batchID)
	if err != nil {
		if model.IsNotFound(err) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("failed to roll back import %s: %w", batchID, err)
	}
	s.InvalidateCompanyCache(companyID)
	logger.FromContext(ctx).Info("Import rolled back", "companyID", companyID, "importID", batchID, "removed", removed)
	return removed, nil
}

func (s *accountingServiceImpl) ListTransactions(filter models.TransactionFilter) ([]models.AccountingTransaction, error) {
	return s.repo.ListTransactions(filter)
}

// GetSummary is cached per company and date range until the company's data changes.
func (s *accountingServiceImpl) GetSummary(companyID int64, from, to string) (*models.AccountingSummary, error) {
	cacheKey := fmt.Sprintf(ckSummary, companyID, from, to)
	if cached, found := s.reportCache.Get(cacheKey); found {
		if summary, ok := cached.(*models.AccountingSummary); ok {
			return summary, nil
		}
	}

	txs, err := s.repo.ListTransactions(models.TransactionFilter{CompanyID: companyID, From: from, To: to})
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions for summary: %w", err)
	}
	summary := s.summaryProcessor.Summarize(companyID, txs)

	s.reportCache.Set(cacheKey, &summary, cache.DefaultExpiration)
	return &summary, nil
}

func (s *accountingServiceImpl) DeleteTransactions(ctx context.Context, companyID int64, ids []int64) (int64, error) {
	removed, err := s.repo.DeleteTransactions(companyID, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to delete transactions: %w", err)
	}
	if removed == 0 {
		return 0, ErrNotFound
	}
	s.InvalidateCompanyCache(companyID)
	logger.FromContext(ctx).Info("Transactions deleted", "companyID", companyID, "removed", removed)
	return removed, nil
}

func (s *accountingServiceImpl) InvalidateCompanyCache(companyID int64) {
	prefix := fmt.Sprintf(ckSummaryPrefix, companyID)
	for key := range s.reportCache.Items() {
		if strings.HasPrefix(key, prefix) {
			s.reportCache.Delete(key)
		}
	}
}
