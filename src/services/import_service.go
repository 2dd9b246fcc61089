// backend/src/services/import_service.go
package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/username/propledger/backend/src/logger"
	"github.com/username/propledger/backend/src/models"
	"github.com/username/propledger/backend/src/parsers/accounting"
	"github.com/username/propledger/backend/src/processors"
)

// pipeline parses file and links every valid row to the company's inventory.
// The inventory is read once, before any row is looked at.
func (s *accountingServiceImpl) pipeline(file io.Reader, req ImportRequest) (*accounting.Result, []models.ParsedTransaction, error) {
	snapshot, err := s.repo.GetInventorySnapshot(req.CompanyID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load inventory for company %d: %w", req.CompanyID, err)
	}

	result, err := s.parser.Parse(file, req.Filename, accounting.Options{
		SheetName:    req.SheetName,
		OverrideType: req.OverrideType,
		NumberFormat: s.opts.NumberFormat,
		Header:       s.opts.Header,
	})
	if err != nil {
		return nil, nil, err
	}

	txProcessor := processors.NewTransactionProcessor(processors.NewEntityResolver(snapshot))
	return result, txProcessor.Process(req.CompanyID, result.Transactions), nil
}

func (s *accountingServiceImpl) Import(ctx context.Context, file io.Reader, req ImportRequest) (*models.ImportResult, error) {
	start := time.Now()
	log := logger.FromContext(ctx)
	log.Info("Import START", "companyID", req.CompanyID, "filename", req.Filename, "size", req.FileSize)

	parsed, txs, err := s.pipeline(file, req)
	if err != nil {
		return nil, err
	}

	result := &models.ImportResult{
		TotalRows: parsed.TotalRows,
		Imported:  len(txs),
		Failed:    len(parsed.Errors),
		Errors:    parsed.Errors,
	}
	if result.Errors == nil {
		result.Errors = []models.ImportError{}
	}
	for _, rowErr := range parsed.Errors {
		log.Debug("Row rejected", "row", rowErr.Row, "reason", rowErr.Message)
	}

	if len(txs) == 0 {
		result.Imported = 0
		log.Warn("Import produced no valid rows", "companyID", req.CompanyID, "totalRows", result.TotalRows)
		return result, ErrNoRowsParsed
	}

	batch := &models.ImportBatch{
		ID:        uuid.NewString(),
		CompanyID: req.CompanyID,
		UserID:    req.UserID,
		Filename:  req.Filename,
		FileSize:  req.FileSize,
		TotalRows: result.TotalRows,
		Imported:  result.Imported,
		Failed:    result.Failed,
	}
	if err := s.repo.SaveImport(batch, txs); err != nil {
		log.Error("Bulk insert failed", "companyID", req.CompanyID, "rows", len(txs), "error", err)
		return nil, fmt.Errorf("%w: %v", ErrPersistFailed, err)
	}
	s.InvalidateCompanyCache(req.CompanyID)

	result.Success = true
	result.ImportID = batch.ID
	log.Info("Import END", "companyID", req.CompanyID, "importID", batch.ID,
		"imported", result.Imported, "failed", result.Failed, "duration", time.Since(start))
	return result, nil
}

func (s *accountingServiceImpl) Preview(ctx context.Context, file io.Reader, req ImportRequest) (*models.ImportPreview, error) {
	parsed, txs, err := s.pipeline(file, req)
	if err != nil {
		return nil, err
	}

	preview := &models.ImportPreview{
		TotalRows:    parsed.TotalRows,
		HeaderRow:    parsed.HeaderRow,
		Transactions: txs,
		Errors:       parsed.Errors,
	}
	if preview.Errors == nil {
		preview.Errors = []models.ImportError{}
	}
	logger.FromContext(ctx).Debug("Import preview", "companyID", req.CompanyID, "valid", len(txs), "failed", len(parsed.Errors))
	return preview, nil
}
