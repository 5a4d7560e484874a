package services_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/Gha-mus/workflu-business-management-sub007/internal/apperrors"
	"github.com/Gha-mus/workflu-business-management-sub007/internal/core/domain"
	portssvc "github.com/Gha-mus/workflu-business-management-sub007/internal/core/ports/services"
	"github.com/Gha-mus/workflu-business-management-sub007/internal/core/services"
)

type InspectionServiceTestSuite struct {
	suite.Suite
	mockInspectionRepo *MockInspectionRepository
	mockBatchRepo      *MockBatchRepository
	auditSvc           *RecordingAuditService
	service            portssvc.InspectionSvcFacade

	actorID string
	batchID string
}

func (suite *InspectionServiceTestSuite) SetupTest() {
	suite.mockInspectionRepo = new(MockInspectionRepository)
	suite.mockBatchRepo = new(MockBatchRepository)
	suite.auditSvc = new(RecordingAuditService)
	suite.service = services.NewInspectionService(suite.mockInspectionRepo, suite.mockBatchRepo, suite.auditSvc)

	suite.actorID = uuid.NewString()
	suite.batchID = uuid.NewString()

	suite.mockInspectionRepo.On("Begin", mock.Anything).Return(nil, nil)
	suite.mockInspectionRepo.On("Rollback", mock.Anything, mock.Anything).Return(nil)
}

func (suite *InspectionServiceTestSuite) inspectionWithStatus(status domain.InspectionStatus) domain.QualityInspection {
	return domain.QualityInspection{
		InspectionID: uuid.NewString(),
		BatchID:      suite.batchID,
		Status:       status,
	}
}

func (suite *InspectionServiceTestSuite) TestCreateInspection_Success() {
	ctx := context.Background()
	batch := domain.WarehouseBatch{BatchID: suite.batchID, IsActive: true}

	suite.mockBatchRepo.On("FindBatchByID", ctx, suite.batchID).Return(&batch, nil).Once()
	suite.mockInspectionRepo.On("SaveInspectionInTx", ctx, mock.Anything,
		mock.MatchedBy(func(i domain.QualityInspection) bool {
			return i.BatchID == suite.batchID && i.Status == domain.InspectionPending
		})).Return(nil).Once()
	suite.mockInspectionRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()

	inspection, err := suite.service.CreateInspection(ctx, suite.batchID, suite.actorID)

	suite.Require().NoError(err)
	suite.Equal(domain.InspectionPending, inspection.Status)
	suite.NotEmpty(inspection.InspectionID)

	suite.Require().Len(suite.auditSvc.Recorded, 1)
	suite.Equal(domain.ActionInspectionCreate, suite.auditSvc.Recorded[0].Action)
}

func (suite *InspectionServiceTestSuite) TestCreateInspection_BatchNotFound() {
	ctx := context.Background()

	suite.mockBatchRepo.On("FindBatchByID", ctx, suite.batchID).
		Return(nil, fmt.Errorf("no batch: %w", apperrors.ErrNotFound)).Once()

	_, err := suite.service.CreateInspection(ctx, suite.batchID, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrBatchNotFound)
	suite.mockInspectionRepo.AssertNotCalled(suite.T(), "SaveInspectionInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InspectionServiceTestSuite) TestCompleteInspection_Success() {
	ctx := context.Background()
	pending := suite.inspectionWithStatus(domain.InspectionPending)
	score := decimal.RequireFromString("87.5")

	suite.mockInspectionRepo.On("FindInspectionByIDForUpdate", ctx, mock.Anything, pending.InspectionID).Return(&pending, nil).Once()
	suite.mockInspectionRepo.On("UpdateInspectionInTx", ctx, mock.Anything,
		mock.MatchedBy(func(i domain.QualityInspection) bool {
			return i.Status == domain.InspectionCompleted &&
				i.Grade != nil && *i.Grade == "A" &&
				i.Score != nil && i.Score.Equal(score) &&
				i.CompletedAt != nil
		})).Return(nil).Once()
	suite.mockInspectionRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()

	inspection, err := suite.service.CompleteInspection(ctx, pending.InspectionID, "A", score, `{"moisture":"6.1%"}`, suite.actorID)

	suite.Require().NoError(err)
	suite.Equal(domain.InspectionCompleted, inspection.Status)

	suite.Require().Len(suite.auditSvc.Recorded, 1)
	suite.Equal(domain.ActionInspectionComplete, suite.auditSvc.Recorded[0].Action)
	suite.Equal([]string{"status", "grade", "score", "testResults", "completedAt"}, suite.auditSvc.Recorded[0].ChangedFields)
}

func (suite *InspectionServiceTestSuite) TestCompleteInspection_EmptyGrade() {
	ctx := context.Background()

	_, err := suite.service.CompleteInspection(ctx, uuid.NewString(), "  ", decimal.Zero, "", suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockInspectionRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *InspectionServiceTestSuite) TestApproveInspection_Success() {
	ctx := context.Background()
	completed := suite.inspectionWithStatus(domain.InspectionCompleted)

	suite.mockInspectionRepo.On("FindInspectionByIDForUpdate", ctx, mock.Anything, completed.InspectionID).Return(&completed, nil).Once()
	suite.mockInspectionRepo.On("UpdateInspectionInTx", ctx, mock.Anything,
		mock.MatchedBy(func(i domain.QualityInspection) bool {
			return i.Status == domain.InspectionApproved && i.DecidedAt != nil
		})).Return(nil).Once()
	suite.mockInspectionRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()

	inspection, err := suite.service.ApproveInspection(ctx, completed.InspectionID, suite.actorID)

	suite.Require().NoError(err)
	suite.Equal(domain.InspectionApproved, inspection.Status)
}

func (suite *InspectionServiceTestSuite) TestRejectInspection_Success() {
	ctx := context.Background()
	completed := suite.inspectionWithStatus(domain.InspectionCompleted)

	suite.mockInspectionRepo.On("FindInspectionByIDForUpdate", ctx, mock.Anything, completed.InspectionID).Return(&completed, nil).Once()
	suite.mockInspectionRepo.On("UpdateInspectionInTx", ctx, mock.Anything,
		mock.MatchedBy(func(i domain.QualityInspection) bool {
			return i.Status == domain.InspectionRejected &&
				i.RejectionReason != nil && *i.RejectionReason == "sample contaminated"
		})).Return(nil).Once()
	suite.mockInspectionRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()

	inspection, err := suite.service.RejectInspection(ctx, completed.InspectionID, "sample contaminated", suite.actorID)

	suite.Require().NoError(err)
	suite.Equal(domain.InspectionRejected, inspection.Status)

	suite.Require().Len(suite.auditSvc.Recorded, 1)
	suite.Equal(domain.ActionInspectionReject, suite.auditSvc.Recorded[0].Action)
	suite.Equal([]string{"status", "rejectionReason", "decidedAt"}, suite.auditSvc.Recorded[0].ChangedFields)
}

func (suite *InspectionServiceTestSuite) TestRejectInspection_ReasonRequired() {
	ctx := context.Background()

	_, err := suite.service.RejectInspection(ctx, uuid.NewString(), "   ", suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrRejectionReasonRequired)
	suite.mockInspectionRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *InspectionServiceTestSuite) TestTransitions_WrongStateRejected() {
	testCases := []struct {
		name    string
		status  domain.InspectionStatus
		operate func(ctx context.Context, id string) error
	}{
		{"complete from completed", domain.InspectionCompleted, func(ctx context.Context, id string) error {
			_, err := suite.service.CompleteInspection(ctx, id, "A", decimal.Zero, "", suite.actorID)
			return err
		}},
		{"approve from pending", domain.InspectionPending, func(ctx context.Context, id string) error {
			_, err := suite.service.ApproveInspection(ctx, id, suite.actorID)
			return err
		}},
		{"approve from rejected", domain.InspectionRejected, func(ctx context.Context, id string) error {
			_, err := suite.service.ApproveInspection(ctx, id, suite.actorID)
			return err
		}},
		{"reject from approved", domain.InspectionApproved, func(ctx context.Context, id string) error {
			_, err := suite.service.RejectInspection(ctx, id, "late objection", suite.actorID)
			return err
		}},
		{"reject from pending", domain.InspectionPending, func(ctx context.Context, id string) error {
			_, err := suite.service.RejectInspection(ctx, id, "too early", suite.actorID)
			return err
		}},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			suite.SetupTest()
			ctx := context.Background()
			inspection := suite.inspectionWithStatus(tc.status)

			suite.mockInspectionRepo.On("FindInspectionByIDForUpdate", ctx, mock.Anything, inspection.InspectionID).Return(&inspection, nil).Once()

			err := tc.operate(ctx, inspection.InspectionID)

			suite.Require().Error(err)
			suite.ErrorIs(err, services.ErrInspectionStateViolation)
			suite.mockInspectionRepo.AssertNotCalled(suite.T(), "UpdateInspectionInTx", mock.Anything, mock.Anything, mock.Anything)
			suite.Empty(suite.auditSvc.Recorded)
		})
	}
}

func TestInspectionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InspectionServiceTestSuite))
}
