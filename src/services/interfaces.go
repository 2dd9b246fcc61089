// backend/src/services/interfaces.go
package services

//go:generate mockgen -destination=mocks/mock_services.go -source=interfaces.go

import (
	"context"
	"errors"
	"io"

	"github.com/username/propledger/backend/src/models"
)

// Define common service errors
var (
	ErrNoRowsParsed  = errors.New("no rows could be imported")
	ErrPersistFailed = errors.New("failed to persist import")
	ErrNotFound      = errors.New("not found")
)

// ImportRequest carries everything about an upload except the file body.
type ImportRequest struct {
	CompanyID    int64
	UserID       int64
	Filename     string
	FileSize     int64
	SheetName    string
	OverrideType models.TransactionType
}

// ImportRepository is the persistence the accounting service depends on.
type ImportRepository interface {
	GetInventorySnapshot(companyID int64) (models.InventorySnapshot, error)
	SaveImport(batch *models.ImportBatch, txs []models.ParsedTransaction) error
	ListImportBatches(companyID int64) ([]models.ImportBatch, error)
	DeleteImportBatch(companyID int64, batchID string) (int64, error)
	ListTransactions(filter models.TransactionFilter) ([]models.AccountingTransaction, error)
	DeleteTransactions(companyID int64, ids []int64) (int64, error)
}

// AccountingService imports ledger files and answers queries over the result.
type AccountingService interface {
	// Import parses file and bulk-inserts every valid row. When no row is valid it
	// returns the per-row errors together with ErrNoRowsParsed.
	Import(ctx context.Context, file io.Reader, req ImportRequest) (*models.ImportResult, error)
	// Preview runs the same pipeline without writing anything.
	Preview(ctx context.Context, file io.Reader, req ImportRequest) (*models.ImportPreview, error)
	ListImports(companyID int64) ([]models.ImportBatch, error)
	RollbackImport(ctx context.Context, companyID int64, batchID string) (int64, error)

	ListTransactions(filter models.TransactionFilter) ([]models.AccountingTransaction, error)
	GetSummary(companyID int64, from, to string) (*models.AccountingSummary, error)
	DeleteTransactions(ctx context.Context, companyID int64, ids []int64) (int64, error)
	InvalidateCompanyCache(companyID int64)
}
