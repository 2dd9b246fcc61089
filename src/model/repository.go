package model

import (
	"database/sql"

	"github.com/username/propledger/backend/src/models"
)

// AccountingRepository binds the accounting queries to one database handle.
type AccountingRepository struct {
	db *sql.DB
}

func NewAccountingRepository(db *sql.DB) *AccountingRepository {
	return &AccountingRepository{db: db}
}

func (r *AccountingRepository) GetInventorySnapshot(companyID int64) (models.InventorySnapshot, error) {
	return GetInventorySnapshot(r.db, companyID)
}

func (r *AccountingRepository) SaveImport(batch *models.ImportBatch, txs []models.ParsedTransaction) error {
	return SaveImport(r.db, batch, txs)
}

func (r *AccountingRepository) ListImportBatches(companyID int64) ([]models.ImportBatch, error) {
	return ListImportBatches(r.db, companyID)
}

func (r *AccountingRepository) DeleteImportBatch(companyID int64, batchID string) (int64, error) {
	return DeleteImportBatch(r.db, companyID, batchID)
}

func (r *AccountingRepository) ListTransactions(filter models.TransactionFilter) ([]models.AccountingTransaction, error) {
	return ListTransactions(r.db, filter)
}

func (r *AccountingRepository) DeleteTransactions(companyID int64, ids []int64) (int64, error) {
	return DeleteTransactions(r.db, companyID, ids)
}
