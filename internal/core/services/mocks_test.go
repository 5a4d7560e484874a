package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"

	"github.com/Gha-mus/workflu-business-management-sub007/internal/core/domain"
	portsrepo "github.com/Gha-mus/workflu-business-management-sub007/internal/core/ports/repositories"
	portssvc "github.com/Gha-mus/workflu-business-management-sub007/internal/core/ports/services"
)

// --- Mock StockRepository ---
type MockStockRepository struct {
	mock.Mock
}

var _ portsrepo.StockRepositoryFacade = (*MockStockRepository)(nil)

func (m *MockStockRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	tx, _ := args.Get(0).(pgx.Tx)
	return tx, args.Error(1)
}

func (m *MockStockRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockStockRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockStockRepository) FindStockByID(ctx context.Context, stockID string) (*domain.WarehouseStock, error) {
	args := m.Called(ctx, stockID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WarehouseStock), args.Error(1)
}

func (m *MockStockRepository) FindStockByIDForUpdate(ctx context.Context, tx pgx.Tx, stockID string) (*domain.WarehouseStock, error) {
	args := m.Called(ctx, tx, stockID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WarehouseStock), args.Error(1)
}

func (m *MockStockRepository) SaveStockInTx(ctx context.Context, tx pgx.Tx, stock domain.WarehouseStock) error {
	args := m.Called(ctx, tx, stock)
	return args.Error(0)
}

func (m *MockStockRepository) UpdateStockInTx(ctx context.Context, tx pgx.Tx, stock domain.WarehouseStock) error {
	args := m.Called(ctx, tx, stock)
	return args.Error(0)
}

func (m *MockStockRepository) ListStock(ctx context.Context, warehouseType *domain.WarehouseType, limit int, nextToken *string) ([]domain.WarehouseStock, *string, error) {
	args := m.Called(ctx, warehouseType, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.WarehouseStock), returnedNextToken, args.Error(2)
}

// --- Mock SaleRepository ---
type MockSaleRepository struct {
	mock.Mock
}

var _ portsrepo.SaleRepositoryFacade = (*MockSaleRepository)(nil)

func (m *MockSaleRepository) FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}

func (m *MockSaleRepository) SaveSaleInTx(ctx context.Context, tx pgx.Tx, sale domain.Sale) error {
	args := m.Called(ctx, tx, sale)
	return args.Error(0)
}

// --- Mock BatchRepository ---
type MockBatchRepository struct {
	mock.Mock
}

var _ portsrepo.BatchRepositoryFacade = (*MockBatchRepository)(nil)

func (m *MockBatchRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	tx, _ := args.Get(0).(pgx.Tx)
	return tx, args.Error(1)
}

func (m *MockBatchRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockBatchRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockBatchRepository) FindBatchByID(ctx context.Context, batchID string) (*domain.WarehouseBatch, error) {
	args := m.Called(ctx, batchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WarehouseBatch), args.Error(1)
}

func (m *MockBatchRepository) FindBatchesByIDsForUpdate(ctx context.Context, tx pgx.Tx, batchIDs []string) (map[string]domain.WarehouseBatch, error) {
	args := m.Called(ctx, tx, batchIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.WarehouseBatch), args.Error(1)
}

func (m *MockBatchRepository) SaveBatchInTx(ctx context.Context, tx pgx.Tx, batch domain.WarehouseBatch) error {
	args := m.Called(ctx, tx, batch)
	return args.Error(0)
}

func (m *MockBatchRepository) UpdateBatchQuantityInTx(ctx context.Context, tx pgx.Tx, batchID string, totalKg domain.Money, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, tx, batchID, totalKg, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockBatchRepository) DeactivateBatchesInTx(ctx context.Context, tx pgx.Tx, batchIDs []string, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, tx, batchIDs, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockBatchRepository) ListActiveBatchesBySupplierAndGrade(ctx context.Context, supplierID, grade string) ([]domain.WarehouseBatch, error) {
	args := m.Called(ctx, supplierID, grade)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WarehouseBatch), args.Error(1)
}

// --- Mock InspectionRepository ---
type MockInspectionRepository struct {
	mock.Mock
}

var _ portsrepo.InspectionRepositoryFacade = (*MockInspectionRepository)(nil)

func (m *MockInspectionRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	tx, _ := args.Get(0).(pgx.Tx)
	return tx, args.Error(1)
}

func (m *MockInspectionRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockInspectionRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockInspectionRepository) FindInspectionByID(ctx context.Context, inspectionID string) (*domain.QualityInspection, error) {
	args := m.Called(ctx, inspectionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QualityInspection), args.Error(1)
}

func (m *MockInspectionRepository) FindInspectionByIDForUpdate(ctx context.Context, tx pgx.Tx, inspectionID string) (*domain.QualityInspection, error) {
	args := m.Called(ctx, tx, inspectionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QualityInspection), args.Error(1)
}

func (m *MockInspectionRepository) SaveInspectionInTx(ctx context.Context, tx pgx.Tx, inspection domain.QualityInspection) error {
	args := m.Called(ctx, tx, inspection)
	return args.Error(0)
}

func (m *MockInspectionRepository) UpdateInspectionInTx(ctx context.Context, tx pgx.Tx, inspection domain.QualityInspection) error {
	args := m.Called(ctx, tx, inspection)
	return args.Error(0)
}

func (m *MockInspectionRepository) ListInspectionsByBatch(ctx context.Context, batchID string) ([]domain.QualityInspection, error) {
	args := m.Called(ctx, batchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.QualityInspection), args.Error(1)
}

// --- Mock AuditRepository ---
type MockAuditRepository struct {
	mock.Mock
}

var _ portsrepo.AuditRepositoryFacade = (*MockAuditRepository)(nil)

func (m *MockAuditRepository) SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.AuditLogEntry) error {
	args := m.Called(ctx, tx, entry)
	return args.Error(0)
}

func (m *MockAuditRepository) FindEntryByID(ctx context.Context, auditID string) (*domain.AuditLogEntry, error) {
	args := m.Called(ctx, auditID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuditLogEntry), args.Error(1)
}

func (m *MockAuditRepository) ListEntriesByEntity(ctx context.Context, entityType, entityID string, limit int, nextToken *string) ([]domain.AuditLogEntry, *string, error) {
	args := m.Called(ctx, entityType, entityID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.AuditLogEntry), nil, args.Error(2)
}

func (m *MockAuditRepository) ListEntriesByActor(ctx context.Context, actorID string, limit int, nextToken *string) ([]domain.AuditLogEntry, *string, error) {
	args := m.Called(ctx, actorID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.AuditLogEntry), nil, args.Error(2)
}

func (m *MockAuditRepository) ListEntriesByCorrelation(ctx context.Context, correlationID string) ([]domain.AuditLogEntry, error) {
	args := m.Called(ctx, correlationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditLogEntry), args.Error(1)
}

func (m *MockAuditRepository) ListEntriesByDateRange(ctx context.Context, from, to time.Time, limit int, nextToken *string) ([]domain.AuditLogEntry, *string, error) {
	args := m.Called(ctx, from, to, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.AuditLogEntry), nil, args.Error(2)
}

// --- Mock AuditService ---
// RecordingAuditService captures audit params instead of mocking call-by-call;
// most tests only need to assert what was recorded.
type RecordingAuditService struct {
	mock.Mock
	Recorded []portssvc.AuditRecordParams
}

var _ portssvc.AuditSvcFacade = (*RecordingAuditService)(nil)

func (m *RecordingAuditService) RecordInTx(ctx context.Context, tx pgx.Tx, params portssvc.AuditRecordParams) {
	m.Recorded = append(m.Recorded, params)
}

func (m *RecordingAuditService) VerifyEntry(ctx context.Context, auditID string) (*domain.AuditLogEntry, bool, error) {
	args := m.Called(ctx, auditID)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*domain.AuditLogEntry), args.Bool(1), args.Error(2)
}

func (m *RecordingAuditService) GetEntryByID(ctx context.Context, auditID string) (*domain.AuditLogEntry, error) {
	args := m.Called(ctx, auditID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuditLogEntry), args.Error(1)
}

func (m *RecordingAuditService) ListEntriesByEntity(ctx context.Context, entityType, entityID string, limit int, nextToken *string) ([]domain.AuditLogEntry, *string, error) {
	args := m.Called(ctx, entityType, entityID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.AuditLogEntry), nil, args.Error(2)
}

func (m *RecordingAuditService) ListEntriesByActor(ctx context.Context, actorID string, limit int, nextToken *string) ([]domain.AuditLogEntry, *string, error) {
	args := m.Called(ctx, actorID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.AuditLogEntry), nil, args.Error(2)
}

func (m *RecordingAuditService) ListEntriesByCorrelation(ctx context.Context, correlationID string) ([]domain.AuditLogEntry, error) {
	args := m.Called(ctx, correlationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditLogEntry), args.Error(1)
}

func (m *RecordingAuditService) ListEntriesByDateRange(ctx context.Context, from, to time.Time, limit int, nextToken *string) ([]domain.AuditLogEntry, *string, error) {
	args := m.Called(ctx, from, to, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.AuditLogEntry), nil, args.Error(2)
}
