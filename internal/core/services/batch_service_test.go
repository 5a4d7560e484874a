package services_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/Gha-mus/workflu-business-management-sub007/internal/apperrors"
	"github.com/Gha-mus/workflu-business-management-sub007/internal/core/domain"
	portssvc "github.com/Gha-mus/workflu-business-management-sub007/internal/core/ports/services"
	"github.com/Gha-mus/workflu-business-management-sub007/internal/core/services"
)

type BatchServiceTestSuite struct {
	suite.Suite
	mockBatchRepo *MockBatchRepository
	auditSvc      *RecordingAuditService
	service       portssvc.BatchSvcFacade

	actorID string
	batch   domain.WarehouseBatch
}

func (suite *BatchServiceTestSuite) SetupTest() {
	suite.mockBatchRepo = new(MockBatchRepository)
	suite.auditSvc = new(RecordingAuditService)
	suite.service = services.NewBatchService(suite.mockBatchRepo, suite.auditSvc)

	suite.actorID = uuid.NewString()
	suite.batch = domain.WarehouseBatch{
		BatchID:      uuid.NewString(),
		BatchNumber:  "B-1001",
		SupplierID:   uuid.NewString(),
		QualityGrade: "A",
		TotalKg:      domain.MustMoney("100", domain.UnitKilogram),
		IsActive:     true,
	}

	suite.mockBatchRepo.On("Begin", mock.Anything).Return(nil, nil)
	suite.mockBatchRepo.On("Rollback", mock.Anything, mock.Anything).Return(nil)
}

func (suite *BatchServiceTestSuite) TestSplitBatch_Success() {
	ctx := context.Background()
	splitKg := domain.MustMoney("40", domain.UnitKilogram)
	remaining := domain.MustMoney("60", domain.UnitKilogram)

	suite.mockBatchRepo.On("FindBatchesByIDsForUpdate", ctx, mock.Anything, []string{suite.batch.BatchID}).
		Return(map[string]domain.WarehouseBatch{suite.batch.BatchID: suite.batch}, nil).Once()
	suite.mockBatchRepo.On("UpdateBatchQuantityInTx", ctx, mock.Anything, suite.batch.BatchID,
		mock.MatchedBy(func(m domain.Money) bool { return m.Equal(remaining) }),
		suite.actorID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockBatchRepo.On("SaveBatchInTx", ctx, mock.Anything,
		mock.MatchedBy(func(b domain.WarehouseBatch) bool {
			return b.TotalKg.Equal(splitKg) && b.IsActive &&
				b.SupplierID == suite.batch.SupplierID && b.QualityGrade == suite.batch.QualityGrade
		})).Return(nil).Once()
	suite.mockBatchRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()

	result, err := suite.service.SplitBatch(ctx, suite.batch.BatchID, splitKg, suite.actorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.True(result.Original.TotalKg.Equal(remaining))
	suite.True(result.Descendant.TotalKg.Equal(splitKg))

	// quantity conservation across the split
	sum, err := result.Original.TotalKg.Add(result.Descendant.TotalKg)
	suite.Require().NoError(err)
	suite.True(sum.Equal(suite.batch.TotalKg))

	suite.Contains(result.Descendant.BatchNumber, suite.batch.BatchNumber+"-SPLIT-")
	suite.NotEqual(suite.batch.BatchID, result.Descendant.BatchID)

	suite.Require().Len(suite.auditSvc.Recorded, 2)
	suite.Equal(domain.ActionBatchSplit, suite.auditSvc.Recorded[0].Action)
	suite.Equal(suite.auditSvc.Recorded[0].CorrelationID, suite.auditSvc.Recorded[1].CorrelationID)

	suite.mockBatchRepo.AssertExpectations(suite.T())
}

func (suite *BatchServiceTestSuite) TestSplitBatch_QuantityEqualToTotalRejected() {
	ctx := context.Background()
	splitKg := domain.MustMoney("100", domain.UnitKilogram)

	suite.mockBatchRepo.On("FindBatchesByIDsForUpdate", ctx, mock.Anything, []string{suite.batch.BatchID}).
		Return(map[string]domain.WarehouseBatch{suite.batch.BatchID: suite.batch}, nil).Once()

	_, err := suite.service.SplitBatch(ctx, suite.batch.BatchID, splitKg, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvalidSplitQuantity)
	suite.mockBatchRepo.AssertNotCalled(suite.T(), "UpdateBatchQuantityInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockBatchRepo.AssertNotCalled(suite.T(), "SaveBatchInTx", mock.Anything, mock.Anything, mock.Anything)
	suite.mockBatchRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
	suite.Empty(suite.auditSvc.Recorded)
}

func (suite *BatchServiceTestSuite) TestSplitBatch_NonPositiveQuantity() {
	ctx := context.Background()

	_, err := suite.service.SplitBatch(ctx, suite.batch.BatchID, domain.MustMoney("0", domain.UnitKilogram), suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvalidSplitQuantity)
	suite.mockBatchRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *BatchServiceTestSuite) TestSplitBatch_FinerThanStoredPrecision() {
	ctx := context.Background()

	_, err := suite.service.SplitBatch(ctx, suite.batch.BatchID, domain.MustMoney("40.0005", domain.UnitKilogram), suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockBatchRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *BatchServiceTestSuite) TestSplitBatch_WrongUnit() {
	ctx := context.Background()

	_, err := suite.service.SplitBatch(ctx, suite.batch.BatchID, domain.MustMoney("40", "USD"), suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, domain.ErrUnitMismatch)
}

func (suite *BatchServiceTestSuite) TestSplitBatch_InactiveBatch() {
	ctx := context.Background()
	inactive := suite.batch
	inactive.IsActive = false

	suite.mockBatchRepo.On("FindBatchesByIDsForUpdate", ctx, mock.Anything, []string{inactive.BatchID}).
		Return(map[string]domain.WarehouseBatch{inactive.BatchID: inactive}, nil).Once()

	_, err := suite.service.SplitBatch(ctx, inactive.BatchID, domain.MustMoney("40", domain.UnitKilogram), suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *BatchServiceTestSuite) TestSplitBatch_NotFound() {
	ctx := context.Background()

	suite.mockBatchRepo.On("FindBatchesByIDsForUpdate", ctx, mock.Anything, []string{suite.batch.BatchID}).
		Return(nil, fmt.Errorf("batch missing: %w", apperrors.ErrNotFound)).Once()

	_, err := suite.service.SplitBatch(ctx, suite.batch.BatchID, domain.MustMoney("40", domain.UnitKilogram), suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrBatchNotFound)
}

func (suite *BatchServiceTestSuite) mergeSources() (domain.WarehouseBatch, domain.WarehouseBatch, domain.WarehouseBatch) {
	b1 := suite.batch
	b1.BatchID = "a-" + uuid.NewString()
	b1.BatchNumber = "B-2001"
	b2 := suite.batch
	b2.BatchID = "b-" + uuid.NewString()
	b2.BatchNumber = "B-2002"
	b2.TotalKg = domain.MustMoney("30", domain.UnitKilogram)
	b3 := suite.batch
	b3.BatchID = "c-" + uuid.NewString()
	b3.BatchNumber = "B-2003"
	b3.TotalKg = domain.MustMoney("12.5", domain.UnitKilogram)
	return b1, b2, b3
}

func (suite *BatchServiceTestSuite) TestMergeBatches_Success() {
	ctx := context.Background()
	b1, b2, b3 := suite.mergeSources()
	sortedIDs := []string{b1.BatchID, b2.BatchID, b3.BatchID}
	expectedTotal := domain.MustMoney("142.5", domain.UnitKilogram)

	suite.mockBatchRepo.On("FindBatchesByIDsForUpdate", ctx, mock.Anything, sortedIDs).
		Return(map[string]domain.WarehouseBatch{b1.BatchID: b1, b2.BatchID: b2, b3.BatchID: b3}, nil).Once()
	suite.mockBatchRepo.On("SaveBatchInTx", ctx, mock.Anything,
		mock.MatchedBy(func(b domain.WarehouseBatch) bool {
			return b.TotalKg.Equal(expectedTotal) && b.IsActive && b.SupplierID == b1.SupplierID
		})).Return(nil).Once()
	suite.mockBatchRepo.On("DeactivateBatchesInTx", ctx, mock.Anything, sortedIDs, suite.actorID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()
	suite.mockBatchRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()

	// ids handed over unsorted and with a duplicate; the service must still
	// lock the sorted unique set
	merged, err := suite.service.MergeBatches(ctx, []string{b3.BatchID, b1.BatchID, b2.BatchID, b1.BatchID}, suite.actorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(merged)
	suite.True(merged.TotalKg.Equal(expectedTotal))
	suite.True(merged.IsActive)
	suite.True(strings.HasPrefix(merged.BatchNumber, "MERGE-"))

	// one entry per deactivated source plus one for the merged batch, all
	// under one correlation id
	suite.Require().Len(suite.auditSvc.Recorded, 4)
	for _, rec := range suite.auditSvc.Recorded {
		suite.Equal(domain.ActionBatchMerge, rec.Action)
		suite.Equal(suite.auditSvc.Recorded[0].CorrelationID, rec.CorrelationID)
	}

	suite.mockBatchRepo.AssertExpectations(suite.T())
}

func (suite *BatchServiceTestSuite) TestMergeBatches_GradeMismatch() {
	ctx := context.Background()
	b1, b2, _ := suite.mergeSources()
	b2.QualityGrade = "B"
	ids := []string{b1.BatchID, b2.BatchID}

	suite.mockBatchRepo.On("FindBatchesByIDsForUpdate", ctx, mock.Anything, ids).
		Return(map[string]domain.WarehouseBatch{b1.BatchID: b1, b2.BatchID: b2}, nil).Once()

	_, err := suite.service.MergeBatches(ctx, ids, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrIncompatibleMerge)
	suite.mockBatchRepo.AssertNotCalled(suite.T(), "SaveBatchInTx", mock.Anything, mock.Anything, mock.Anything)
	suite.Empty(suite.auditSvc.Recorded)
}

func (suite *BatchServiceTestSuite) TestMergeBatches_SupplierMismatch() {
	ctx := context.Background()
	b1, b2, _ := suite.mergeSources()
	b2.SupplierID = uuid.NewString()
	ids := []string{b1.BatchID, b2.BatchID}

	suite.mockBatchRepo.On("FindBatchesByIDsForUpdate", ctx, mock.Anything, ids).
		Return(map[string]domain.WarehouseBatch{b1.BatchID: b1, b2.BatchID: b2}, nil).Once()

	_, err := suite.service.MergeBatches(ctx, ids, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrIncompatibleMerge)
}

func (suite *BatchServiceTestSuite) TestMergeBatches_InactiveSource() {
	ctx := context.Background()
	b1, b2, _ := suite.mergeSources()
	b1.IsActive = false
	ids := []string{b1.BatchID, b2.BatchID}

	suite.mockBatchRepo.On("FindBatchesByIDsForUpdate", ctx, mock.Anything, ids).
		Return(map[string]domain.WarehouseBatch{b1.BatchID: b1, b2.BatchID: b2}, nil).Once()

	_, err := suite.service.MergeBatches(ctx, ids, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrIncompatibleMerge)
}

func (suite *BatchServiceTestSuite) TestMergeBatches_TooFewBatches() {
	ctx := context.Background()
	b1, _, _ := suite.mergeSources()

	// a duplicated id collapses to a single batch
	_, err := suite.service.MergeBatches(ctx, []string{b1.BatchID, b1.BatchID}, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrMergeMinBatches)
	suite.mockBatchRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func TestBatchServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BatchServiceTestSuite))
}
