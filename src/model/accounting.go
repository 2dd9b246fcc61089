package model

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/username/propledger/backend/src/models"
)

const fechaLayout = "2006-01-02"

// SaveImport records the batch and inserts every transaction in one database
// transaction. Nothing is written if any insert fails.
func SaveImport(db *sql.DB, batch *models.ImportBatch, txs []models.ParsedTransaction) error {
	dbTx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("error beginning database transaction: %w", err)
	}
	defer dbTx.Rollback()

	if batch.CreatedAt.IsZero() {
		batch.CreatedAt = time.Now()
	}
	var userID any
	if batch.UserID != 0 {
		userID = batch.UserID
	}
	_, err = dbTx.Exec(`
		INSERT INTO import_batches (id, company_id, user_id, filename, file_size, total_rows, imported, failed, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		batch.ID, batch.CompanyID, userID, batch.Filename, batch.FileSize,
		batch.TotalRows, batch.Imported, batch.Failed, batch.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record import batch: %w", err)
	}

	stmt, err := dbTx.Prepare(`INSERT INTO accounting_transactions
		(company_id, building_id, unit_id, import_batch_id, tipo, categoria, concepto, monto, fecha, referencia, notas, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("error preparing insert statement: %w", err)
	}
	defer stmt.Close()

	for _, tx := range txs {
		_, err := stmt.Exec(
			tx.CompanyID, nullableID(tx.BuildingID), nullableID(tx.UnitID), batch.ID,
			string(tx.Tipo), string(tx.Categoria), tx.Concepto, tx.Monto.String(), tx.Fecha.Format(fechaLayout),
			nullableText(tx.Referencia), nullableText(tx.Notas), batch.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("error inserting transaction (row %d): %w", tx.Row, err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("error committing import: %w", err)
	}
	return nil
}

func ListImportBatches(db *sql.DB, companyID int64) ([]models.ImportBatch, error) {
	rows, err := db.Query(`
		SELECT id, company_id, user_id, filename, file_size, total_rows, imported, failed, created_at
		FROM import_batches WHERE company_id = ? ORDER BY created_at DESC, id`, companyID)
	if err != nil {
		return nil, fmt.Errorf("error querying import batches for company %d: %w", companyID, err)
	}
	defer rows.Close()

	batches := []models.ImportBatch{}
	for rows.Next() {
		var b models.ImportBatch
		var userID sql.NullInt64
		if err := rows.Scan(&b.ID, &b.CompanyID, &userID, &b.Filename, &b.FileSize, &b.TotalRows, &b.Imported, &b.Failed, &b.CreatedAt); err != nil {
			return nil, err
		}
		b.UserID = userID.Int64
		batches = append(batches, b)
	}
	return batches, rows.Err()
}

// DeleteImportBatch removes a batch and, through the foreign key cascade, all of
// its transactions. It returns how many transactions were removed.
func DeleteImportBatch(db *sql.DB, companyID int64, batchID string) (int64, error) {
	dbTx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("error beginning database transaction: %w", err)
	}
	defer dbTx.Rollback()

	var count int64
	err = dbTx.QueryRow(`SELECT COUNT(*) FROM accounting_transactions WHERE import_batch_id = ? AND company_id = ?`, batchID, companyID).Scan(&count)
	if err != nil {
		return 0, err
	}

	res, err := dbTx.Exec(`DELETE FROM import_batches WHERE id = ? AND company_id = ?`, batchID, companyID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete import batch %s: %w", batchID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return 0, ErrNotFound
	}

	if err := dbTx.Commit(); err != nil {
		return 0, err
	}
	return count, nil
}

// ListTransactions returns a company's movements, newest first.
func ListTransactions(db *sql.DB, filter models.TransactionFilter) ([]models.AccountingTransaction, error) {
	var (
		where = []string{"company_id = ?"}
		args  = []interface{}{filter.CompanyID}
	)
	if filter.From != "" {
		where = append(where, "fecha >= ?")
		args = append(args, filter.From)
	}
	if filter.To != "" {
		where = append(where, "fecha <= ?")
		args = append(args, filter.To)
	}
	if filter.Tipo != "" {
		where = append(where, "tipo = ?")
		args = append(args, string(filter.Tipo))
	}
	if filter.Categoria != "" {
		where = append(where, "categoria = ?")
		args = append(args, string(filter.Categoria))
	}
	if filter.BuildingID != 0 {
		where = append(where, "building_id = ?")
		args = append(args, filter.BuildingID)
	}

	query := `
		SELECT id, company_id, building_id, unit_id, import_batch_id, tipo, categoria, concepto,
		       monto, fecha, referencia, notas, created_at
		FROM accounting_transactions
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY fecha DESC, id DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying transactions for company %d: %w", filter.CompanyID, err)
	}
	defer rows.Close()

	txs := []models.AccountingTransaction{}
	for rows.Next() {
		var tx models.AccountingTransaction
		var buildingID, unitID sql.NullInt64
		var batchID, referencia, notas sql.NullString
		scanErr := rows.Scan(
			&tx.ID, &tx.CompanyID, &buildingID, &unitID, &batchID, &tx.Tipo, &tx.Categoria, &tx.Concepto,
			&tx.Monto, &tx.Fecha, &referencia, &notas, &tx.CreatedAt,
		)
		if scanErr != nil {
			return nil, fmt.Errorf("error scanning transaction row for company %d: %w", filter.CompanyID, scanErr)
		}
		if buildingID.Valid {
			id := buildingID.Int64
			tx.BuildingID = &id
		}
		if unitID.Valid {
			id := unitID.Int64
			tx.UnitID = &id
		}
		tx.ImportBatchID = batchID.String
		tx.Referencia = referencia.String
		tx.Notas = notas.String
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}

// DeleteTransactions removes the given movements of a company and returns how many
// were deleted. IDs of other companies are silently ignored.
func DeleteTransactions(db *sql.DB, companyID int64, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	query := `DELETE FROM accounting_transactions WHERE company_id = ? AND id IN (?` + strings.Repeat(",?", len(ids)-1) + `)`
	args := make([]interface{}, len(ids)+1)
	args[0] = companyID
	for i, id := range ids {
		args[i+1] = id
	}

	res, err := db.Exec(query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func nullableText(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// IsNotFound reports whether err means the row does not exist for the caller.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, sql.ErrNoRows)
}
