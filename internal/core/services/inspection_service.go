package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Gha-mus/workflu-business-management-sub007/internal/apperrors"
	"github.com/Gha-mus/workflu-business-management-sub007/internal/core/domain"
	portsrepo "github.com/Gha-mus/workflu-business-management-sub007/internal/core/ports/repositories"
	portssvc "github.com/Gha-mus/workflu-business-management-sub007/internal/core/ports/services"
	"github.com/Gha-mus/workflu-business-management-sub007/internal/middleware"
)

var (
	ErrInspectionStateViolation = errors.New("inspection state violation")
	ErrRejectionReasonRequired  = errors.New("a rejection reason is required")
	ErrInspectionNotFound       = errors.New("inspection not found")
)

const inspectionEntityType = "quality_inspection"

// inspectionService drives the inspection workflow:
// PENDING -> COMPLETED -> APPROVED | REJECTED.
type inspectionService struct {
	inspectionRepo portsrepo.InspectionRepositoryFacade
	batchRepo      portsrepo.BatchRepositoryFacade
	auditSvc       portssvc.AuditSvcFacade
}

// NewInspectionService creates a new InspectionService.
func NewInspectionService(inspectionRepo portsrepo.InspectionRepositoryFacade, batchRepo portsrepo.BatchRepositoryFacade, auditSvc portssvc.AuditSvcFacade) portssvc.InspectionSvcFacade {
	return &inspectionService{
		inspectionRepo: inspectionRepo,
		batchRepo:      batchRepo,
		auditSvc:       auditSvc,
	}
}

var _ portssvc.InspectionSvcFacade = (*inspectionService)(nil)

// CreateInspection opens a PENDING inspection against an existing batch.
// Implements portssvc.InspectionSvcFacade.
func (s *inspectionService) CreateInspection(ctx context.Context, batchID string, actorID string) (*domain.QualityInspection, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.batchRepo.FindBatchByID(ctx, batchID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrBatchNotFound, batchID)
		}
		return nil, fmt.Errorf("failed to find batch %s: %w", batchID, err)
	}

	now := time.Now().UTC()
	inspection := domain.QualityInspection{
		InspectionID: uuid.NewString(),
		BatchID:      batchID,
		Status:       domain.InspectionPending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	tx, err := s.inspectionRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin inspection transaction: %w", err)
	}
	defer s.inspectionRepo.Rollback(ctx, tx)

	if err := s.inspectionRepo.SaveInspectionInTx(ctx, tx, inspection); err != nil {
		return nil, fmt.Errorf("failed to save inspection: %w", err)
	}

	s.auditSvc.RecordInTx(ctx, tx, portssvc.AuditRecordParams{
		Action:          domain.ActionInspectionCreate,
		EntityType:      inspectionEntityType,
		EntityID:        inspection.InspectionID,
		After:           inspection,
		ChangedFields:   []string{"status"},
		FinancialImpact: decimal.Zero,
		ActorID:         actorID,
		CorrelationID:   uuid.NewString(),
	})

	if err := s.inspectionRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit inspection creation: %w", err)
	}

	logger.Info("Inspection created",
		slog.String("inspection_id", inspection.InspectionID),
		slog.String("batch_id", batchID),
	)
	return &inspection, nil
}

// CompleteInspection records the lab result on a PENDING inspection.
// Implements portssvc.InspectionSvcFacade.
func (s *inspectionService) CompleteInspection(ctx context.Context, inspectionID string, grade string, score decimal.Decimal, testResults string, actorID string) (*domain.QualityInspection, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if strings.TrimSpace(grade) == "" {
		return nil, fmt.Errorf("%w: grade must not be empty", apperrors.ErrValidation)
	}

	inspection, err := s.transition(ctx, inspectionID, domain.InspectionPending, domain.ActionInspectionComplete, actorID,
		[]string{"status", "grade", "score", "testResults", "completedAt"},
		func(i *domain.QualityInspection, now time.Time) {
			i.Status = domain.InspectionCompleted
			i.Grade = &grade
			i.Score = &score
			i.TestResults = testResults
			i.CompletedAt = &now
		})
	if err != nil {
		return nil, err
	}

	logger.Info("Inspection completed",
		slog.String("inspection_id", inspectionID),
		slog.String("grade", grade),
	)
	return inspection, nil
}

// ApproveInspection accepts a COMPLETED inspection's result.
// Implements portssvc.InspectionSvcFacade.
func (s *inspectionService) ApproveInspection(ctx context.Context, inspectionID string, actorID string) (*domain.QualityInspection, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	inspection, err := s.transition(ctx, inspectionID, domain.InspectionCompleted, domain.ActionInspectionApprove, actorID,
		[]string{"status", "decidedAt"},
		func(i *domain.QualityInspection, now time.Time) {
			i.Status = domain.InspectionApproved
			i.DecidedAt = &now
		})
	if err != nil {
		return nil, err
	}

	logger.Info("Inspection approved", slog.String("inspection_id", inspectionID))
	return inspection, nil
}

// RejectInspection discards a COMPLETED inspection's result. A reason is
// mandatory. Implements portssvc.InspectionSvcFacade.
func (s *inspectionService) RejectInspection(ctx context.Context, inspectionID string, reason string, actorID string) (*domain.QualityInspection, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("%w: inspection %s", ErrRejectionReasonRequired, inspectionID)
	}

	inspection, err := s.transition(ctx, inspectionID, domain.InspectionCompleted, domain.ActionInspectionReject, actorID,
		[]string{"status", "rejectionReason", "decidedAt"},
		func(i *domain.QualityInspection, now time.Time) {
			i.Status = domain.InspectionRejected
			i.RejectionReason = &reason
			i.DecidedAt = &now
		})
	if err != nil {
		return nil, err
	}

	logger.Info("Inspection rejected",
		slog.String("inspection_id", inspectionID),
		slog.String("reason", reason),
	)
	return inspection, nil
}

// transition locks the inspection, checks the required current status, applies
// the mutation, persists it and records the audit entry in one transaction.
// changedFields names every field the mutation writes besides the standard
// update columns.
func (s *inspectionService) transition(ctx context.Context, inspectionID string, required domain.InspectionStatus, action domain.AuditAction, actorID string, changedFields []string, mutate func(*domain.QualityInspection, time.Time)) (*domain.QualityInspection, error) {
	tx, err := s.inspectionRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin inspection transaction: %w", err)
	}
	defer s.inspectionRepo.Rollback(ctx, tx)

	inspection, err := s.inspectionRepo.FindInspectionByIDForUpdate(ctx, tx, inspectionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrInspectionNotFound, inspectionID)
		}
		return nil, fmt.Errorf("failed to lock inspection %s: %w", inspectionID, err)
	}

	if inspection.Status != required {
		return nil, fmt.Errorf("%w: inspection %s has status %s, %s requires %s",
			ErrInspectionStateViolation, inspectionID, inspection.Status, action, required)
	}

	now := time.Now().UTC()
	after := *inspection
	mutate(&after, now)
	after.LastUpdatedAt = now
	after.LastUpdatedBy = actorID

	if err := s.inspectionRepo.UpdateInspectionInTx(ctx, tx, after); err != nil {
		return nil, fmt.Errorf("failed to update inspection %s: %w", inspectionID, err)
	}

	s.auditSvc.RecordInTx(ctx, tx, portssvc.AuditRecordParams{
		Action:          action,
		EntityType:      inspectionEntityType,
		EntityID:        inspectionID,
		Before:          *inspection,
		After:           after,
		ChangedFields:   changedFields,
		FinancialImpact: decimal.Zero,
		ActorID:         actorID,
		CorrelationID:   uuid.NewString(),
	})

	if err := s.inspectionRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit inspection %s: %w", inspectionID, err)
	}
	return &after, nil
}

// GetInspectionByID retrieves an inspection without locking.
func (s *inspectionService) GetInspectionByID(ctx context.Context, inspectionID string) (*domain.QualityInspection, error) {
	inspection, err := s.inspectionRepo.FindInspectionByID(ctx, inspectionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrInspectionNotFound, inspectionID)
		}
		return nil, err
	}
	return inspection, nil
}

// ListInspectionsByBatch lists a batch's inspections, newest first.
func (s *inspectionService) ListInspectionsByBatch(ctx context.Context, batchID string) ([]domain.QualityInspection, error) {
	return s.inspectionRepo.ListInspectionsByBatch(ctx, batchID)
}
