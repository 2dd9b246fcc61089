package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/propledger/backend/src/model"
	"github.com/username/propledger/backend/src/models"
	"github.com/username/propledger/backend/src/parsers/accounting"
	"github.com/username/propledger/backend/src/processors"
	"github.com/username/propledger/backend/src/services"
	mock_services "github.com/username/propledger/backend/src/services/mocks"
)

func newService(repo services.ImportRepository) services.AccountingService {
	return services.NewAccountingService(
		repo,
		accounting.NewParser(),
		processors.NewSummaryProcessor(),
		cache.New(time.Minute, time.Minute),
		services.ImportOptions{NumberFormat: accounting.EuropeanFormat},
	)
}

func inventory() models.InventorySnapshot {
	return models.InventorySnapshot{
		CompanyID: 1,
		Buildings: []models.Building{
			{ID: 10, CompanyID: 1, Name: "Edificio Central"},
			{ID: 20, CompanyID: 1, Name: "Edificio Sur"},
		},
		Units: []models.Unit{{ID: 101, BuildingID: 10, Numero: "1ºA"}},
	}
}

const ledgerCSV = `Fecha;Concepto;Debe;Haber;Edificio;Unidad
02/01/2024;Recibo alquiler;;750,00;Central;1A
03/01/2024;Reparación fontanería;100;0;Sur;
04/01/2024;Sin importe;;;;
`

func TestImport_PartialSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_services.NewMockImportRepository(ctrl)
	repo.EXPECT().GetInventorySnapshot(int64(1)).Return(inventory(), nil)

	var saved []models.ParsedTransaction
	var savedBatch *models.ImportBatch
	repo.EXPECT().SaveImport(gomock.Any(), gomock.Any()).DoAndReturn(
		func(batch *models.ImportBatch, txs []models.ParsedTransaction) error {
			savedBatch, saved = batch, txs
			return nil
		})

	svc := newService(repo)
	res, err := svc.Import(context.Background(), strings.NewReader(ledgerCSV), services.ImportRequest{
		CompanyID: 1, UserID: 5, Filename: "mayor.csv", FileSize: int64(len(ledgerCSV)),
	})
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, 3, res.TotalRows)
	assert.Equal(t, 2, res.Imported)
	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, []models.ImportError{{Row: 4, Message: accounting.MsgAmountOrType}}, res.Errors)
	assert.Equal(t, savedBatch.ID, res.ImportID)
	assert.NotEmpty(t, res.ImportID)

	assert.Equal(t, int64(5), savedBatch.UserID)
	assert.Equal(t, 2, savedBatch.Imported)
	require.Len(t, saved, 2)

	rent := saved[0]
	assert.Equal(t, int64(1), rent.CompanyID)
	assert.Equal(t, models.TipoIngreso, rent.Tipo)
	assert.Equal(t, models.CategoriaIngresoRenta, rent.Categoria)
	require.NotNil(t, rent.BuildingID)
	assert.Equal(t, int64(10), *rent.BuildingID)
	require.NotNil(t, rent.UnitID)
	assert.Equal(t, int64(101), *rent.UnitID)

	repair := saved[1]
	assert.Equal(t, models.TipoGasto, repair.Tipo)
	assert.Equal(t, models.CategoriaGastoReparacion, repair.Categoria)
	assert.True(t, decimal.NewFromInt(100).Equal(repair.Monto))
	require.NotNil(t, repair.BuildingID)
	assert.Equal(t, int64(20), *repair.BuildingID)
	assert.Nil(t, repair.UnitID)
}

func TestImport_NoValidRows(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_services.NewMockImportRepository(ctrl)
	repo.EXPECT().GetInventorySnapshot(int64(1)).Return(models.InventorySnapshot{}, nil)
	repo.EXPECT().SaveImport(gomock.Any(), gomock.Any()).Times(0)

	data := "Fecha;Concepto\n01/01/2024;Nada\n02/01/2024;Tampoco\n"
	res, err := newService(repo).Import(context.Background(), strings.NewReader(data), services.ImportRequest{CompanyID: 1, Filename: "x.csv"})

	assert.ErrorIs(t, err, services.ErrNoRowsParsed)
	require.NotNil(t, res)
	assert.False(t, res.Success)
	assert.Equal(t, 0, res.Imported)
	assert.Equal(t, 2, res.Failed)
	assert.Len(t, res.Errors, 2)
}

func TestImport_PersistenceFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_services.NewMockImportRepository(ctrl)
	repo.EXPECT().GetInventorySnapshot(int64(1)).Return(models.InventorySnapshot{}, nil)
	repo.EXPECT().SaveImport(gomock.Any(), gomock.Any()).Return(errors.New("constraint failed"))

	res, err := newService(repo).Import(context.Background(), strings.NewReader(ledgerCSV), services.ImportRequest{CompanyID: 1, Filename: "mayor.csv"})

	assert.ErrorIs(t, err, services.ErrPersistFailed)
	assert.Contains(t, err.Error(), "constraint failed")
	assert.Nil(t, res)
}

func TestImport_StructuralErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_services.NewMockImportRepository(ctrl)
	repo.EXPECT().GetInventorySnapshot(gomock.Any()).Return(models.InventorySnapshot{}, nil).Times(2)
	svc := newService(repo)

	_, err := svc.Import(context.Background(), strings.NewReader("Fecha;Importe\n"), services.ImportRequest{CompanyID: 1, Filename: "vacio.csv"})
	assert.ErrorIs(t, err, accounting.ErrEmptyFile)

	_, err = svc.Import(context.Background(), strings.NewReader("abc"), services.ImportRequest{CompanyID: 1, Filename: "mayor.ods"})
	assert.ErrorIs(t, err, accounting.ErrUnsupportedFile)
}

func TestImport_InventoryFailureStopsEarly(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_services.NewMockImportRepository(ctrl)
	repo.EXPECT().GetInventorySnapshot(int64(1)).Return(models.InventorySnapshot{}, errors.New("db down"))

	_, err := newService(repo).Import(context.Background(), strings.NewReader(ledgerCSV), services.ImportRequest{CompanyID: 1, Filename: "mayor.csv"})
	assert.Error(t, err)
}

func TestImport_OverrideTypeAppliesToUnresolvedRows(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_services.NewMockImportRepository(ctrl)
	repo.EXPECT().GetInventorySnapshot(int64(1)).Return(models.InventorySnapshot{}, nil)

	// Without debit/credit columns or a sign, only the override can decide.
	data := "Fecha;Concepto;Tipo;Importe\n01/01/2024;Cuota;transferencia;0\n"
	res, err := newService(repo).Preview(context.Background(), strings.NewReader(data), services.ImportRequest{
		CompanyID: 1, Filename: "x.csv", OverrideType: models.TipoGasto,
	})
	require.NoError(t, err)
	// Zero amount is still rejected even with an override.
	assert.Empty(t, res.Transactions)
	assert.Len(t, res.Errors, 1)
}

func TestPreview_DoesNotPersist(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_services.NewMockImportRepository(ctrl)
	repo.EXPECT().GetInventorySnapshot(int64(1)).Return(inventory(), nil)
	repo.EXPECT().SaveImport(gomock.Any(), gomock.Any()).Times(0)

	preview, err := newService(repo).Preview(context.Background(), strings.NewReader(ledgerCSV), services.ImportRequest{CompanyID: 1, Filename: "mayor.csv"})
	require.NoError(t, err)

	assert.Equal(t, 1, preview.HeaderRow)
	assert.Equal(t, 3, preview.TotalRows)
	assert.Len(t, preview.Transactions, 2)
	assert.Len(t, preview.Errors, 1)
}

func TestGetSummary_CachedUntilInvalidated(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_services.NewMockImportRepository(ctrl)
	txs := []models.AccountingTransaction{
		{CompanyID: 1, Tipo: models.TipoIngreso, Categoria: models.CategoriaIngresoRenta, Monto: decimal.NewFromInt(700)},
		{CompanyID: 1, Tipo: models.TipoGasto, Categoria: models.CategoriaGastoSeguro, Monto: decimal.NewFromInt(100)},
	}
	repo.EXPECT().ListTransactions(models.TransactionFilter{CompanyID: 1}).Return(txs, nil).Times(2)
	repo.EXPECT().DeleteTransactions(int64(1), []int64{9}).Return(int64(1), nil)

	svc := newService(repo)

	first, err := svc.GetSummary(1, "", "")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(600).Equal(first.Balance))

	second, err := svc.GetSummary(1, "", "")
	require.NoError(t, err)
	assert.Same(t, first, second)

	_, err = svc.DeleteTransactions(context.Background(), 1, []int64{9})
	require.NoError(t, err)

	third, err := svc.GetSummary(1, "", "")
	require.NoError(t, err)
	assert.NotSame(t, first, third)
}

func TestDeleteTransactions_NothingDeletedIsNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_services.NewMockImportRepository(ctrl)
	repo.EXPECT().DeleteTransactions(int64(1), []int64{42}).Return(int64(0), nil)

	_, err := newService(repo).DeleteTransactions(context.Background(), 1, []int64{42})
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestRollbackImport(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_services.NewMockImportRepository(ctrl)
	repo.EXPECT().DeleteImportBatch(int64(1), "b-1").Return(int64(3), nil)
	repo.EXPECT().DeleteImportBatch(int64(1), "missing").Return(int64(0), model.ErrNotFound)

	svc := newService(repo)

	removed, err := svc.RollbackImport(context.Background(), 1, "b-1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)

	_, err = svc.RollbackImport(context.Background(), 1, "missing")
	assert.ErrorIs(t, err, services.ErrNotFound)
}
