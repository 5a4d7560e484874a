package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Gha-mus/workflu-business-management-sub007/internal/apperrors"
	"github.com/Gha-mus/workflu-business-management-sub007/internal/core/domain"
	portsrepo "github.com/Gha-mus/workflu-business-management-sub007/internal/core/ports/repositories"
	portssvc "github.com/Gha-mus/workflu-business-management-sub007/internal/core/ports/services"
	"github.com/Gha-mus/workflu-business-management-sub007/internal/middleware"
	"github.com/Gha-mus/workflu-business-management-sub007/internal/utils/identifier"
)

var (
	ErrInvalidSplitQuantity = errors.New("split quantity must be positive and strictly less than the batch total")
	ErrIncompatibleMerge    = errors.New("batches to merge must be active and share one supplier and one quality grade")
	ErrBatchNotFound        = errors.New("batch not found")
	ErrMergeMinBatches      = errors.New("merge requires at least two distinct batches")
)

const batchEntityType = "warehouse_batch"

// batchService is the split/merge transaction coordinator. Every mutation
// locks its target rows for the duration of one store transaction; multi-row
// locks are taken in lexicographic id order so concurrent merges over
// overlapping batch sets cannot deadlock.
type batchService struct {
	batchRepo portsrepo.BatchRepositoryFacade
	auditSvc  portssvc.AuditSvcFacade
}

// NewBatchService creates a new BatchService.
func NewBatchService(batchRepo portsrepo.BatchRepositoryFacade, auditSvc portssvc.AuditSvcFacade) portssvc.BatchSvcFacade {
	return &batchService{batchRepo: batchRepo, auditSvc: auditSvc}
}

var _ portssvc.BatchSvcFacade = (*batchService)(nil)

// SplitBatch carves splitKg out of the batch into a new descendant carrying
// the same supplier and grade. Implements portssvc.BatchSvcFacade.
func (s *batchService) SplitBatch(ctx context.Context, batchID string, splitKg domain.Money, actorID string) (*portssvc.BatchSplitResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if splitKg.Unit() != domain.UnitKilogram {
		return nil, fmt.Errorf("%w: split quantity must be in kg, got %s", domain.ErrUnitMismatch, splitKg.Unit())
	}
	if !splitKg.IsPositive() {
		return nil, fmt.Errorf("%w: got %s", ErrInvalidSplitQuantity, splitKg)
	}
	if !splitKg.Quantized() {
		return nil, fmt.Errorf("%w: split quantity %s is finer than the persisted kilogram precision",
			apperrors.ErrValidation, splitKg.Amount())
	}

	tx, err := s.batchRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin split transaction: %w", err)
	}
	defer s.batchRepo.Rollback(ctx, tx)

	// Lock the row, then validate against the fresh quantity: a concurrent
	// split that committed first must be visible here.
	locked, err := s.batchRepo.FindBatchesByIDsForUpdate(ctx, tx, []string{batchID})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrBatchNotFound, batchID)
		}
		return nil, fmt.Errorf("failed to lock batch %s: %w", batchID, err)
	}
	original := locked[batchID]

	if !original.IsActive {
		return nil, fmt.Errorf("%w: batch %s is inactive", apperrors.ErrConflict, batchID)
	}

	tooLarge, err := splitKg.GreaterThanOrEqual(original.TotalKg)
	if err != nil {
		return nil, err
	}
	if tooLarge {
		return nil, fmt.Errorf("%w: requested %s of batch %s holding %s",
			ErrInvalidSplitQuantity, splitKg, batchID, original.TotalKg)
	}

	remaining, err := original.TotalKg.Sub(splitKg)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	descendant := domain.WarehouseBatch{
		BatchID:      uuid.NewString(),
		BatchNumber:  identifier.SplitBatchNumber(original.BatchNumber, now),
		SupplierID:   original.SupplierID,
		QualityGrade: original.QualityGrade,
		TotalKg:      splitKg,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.batchRepo.UpdateBatchQuantityInTx(ctx, tx, batchID, remaining, actorID, now); err != nil {
		return nil, fmt.Errorf("failed to reduce batch %s: %w", batchID, err)
	}
	if err := s.batchRepo.SaveBatchInTx(ctx, tx, descendant); err != nil {
		return nil, fmt.Errorf("failed to save split descendant of batch %s: %w", batchID, err)
	}

	reduced := original
	reduced.TotalKg = remaining
	reduced.LastUpdatedAt = now
	reduced.LastUpdatedBy = actorID

	correlationID := uuid.NewString()
	s.auditSvc.RecordInTx(ctx, tx, portssvc.AuditRecordParams{
		Action:          domain.ActionBatchSplit,
		EntityType:      batchEntityType,
		EntityID:        original.BatchID,
		Before:          original,
		After:           reduced,
		ChangedFields:   []string{"totalKg"},
		FinancialImpact: decimal.Zero,
		ActorID:         actorID,
		CorrelationID:   correlationID,
	})
	s.auditSvc.RecordInTx(ctx, tx, portssvc.AuditRecordParams{
		Action:          domain.ActionBatchSplit,
		EntityType:      batchEntityType,
		EntityID:        descendant.BatchID,
		After:           descendant,
		ChangedFields:   []string{"batchNumber", "supplierID", "qualityGrade", "totalKg", "isActive"},
		FinancialImpact: decimal.Zero,
		ActorID:         actorID,
		CorrelationID:   correlationID,
	})

	if err := s.batchRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit split of batch %s: %w", batchID, err)
	}

	logger.Info("Batch split committed",
		slog.String("batch_id", batchID),
		slog.String("descendant_id", descendant.BatchID),
		slog.String("split_kg", splitKg.Canonical()),
	)
	return &portssvc.BatchSplitResult{Original: reduced, Descendant: descendant}, nil
}

// MergeBatches combines the named active batches into one new batch and
// deactivates the sources. Implements portssvc.BatchSvcFacade.
func (s *batchService) MergeBatches(ctx context.Context, batchIDs []string, actorID string) (*domain.WarehouseBatch, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	ids := uniqueStrings(batchIDs)
	if len(ids) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrMergeMinBatches, len(ids))
	}
	// The repository sorts before locking too; sorting here keeps the
	// validation and audit order deterministic for callers and tests.
	sort.Strings(ids)

	tx, err := s.batchRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin merge transaction: %w", err)
	}
	defer s.batchRepo.Rollback(ctx, tx)

	// All target rows are locked before any quantity is read.
	locked, err := s.batchRepo.FindBatchesByIDsForUpdate(ctx, tx, ids)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %v", ErrBatchNotFound, err)
		}
		return nil, fmt.Errorf("failed to lock batches for merge: %w", err)
	}

	first := locked[ids[0]]
	total := domain.ZeroMoney(domain.UnitKilogram)
	sourceNumbers := make([]string, 0, len(ids))
	for _, id := range ids {
		b := locked[id]
		if !b.IsActive {
			return nil, fmt.Errorf("%w: batch %s is inactive", ErrIncompatibleMerge, id)
		}
		if b.SupplierID != first.SupplierID || b.QualityGrade != first.QualityGrade {
			return nil, fmt.Errorf("%w: batch %s has supplier %s grade %s, expected supplier %s grade %s",
				ErrIncompatibleMerge, id, b.SupplierID, b.QualityGrade, first.SupplierID, first.QualityGrade)
		}
		total, err = total.Add(b.TotalKg)
		if err != nil {
			return nil, err
		}
		sourceNumbers = append(sourceNumbers, b.BatchNumber)
	}

	now := time.Now().UTC()
	merged := domain.WarehouseBatch{
		BatchID:      uuid.NewString(),
		BatchNumber:  identifier.MergeBatchNumber(sourceNumbers, now),
		SupplierID:   first.SupplierID,
		QualityGrade: first.QualityGrade,
		TotalKg:      total,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.batchRepo.SaveBatchInTx(ctx, tx, merged); err != nil {
		return nil, fmt.Errorf("failed to save merged batch: %w", err)
	}
	if err := s.batchRepo.DeactivateBatchesInTx(ctx, tx, ids, actorID, now); err != nil {
		return nil, fmt.Errorf("failed to deactivate merge sources: %w", err)
	}

	correlationID := uuid.NewString()
	for _, id := range ids {
		source := locked[id]
		deactivated := source
		deactivated.IsActive = false
		deactivated.LastUpdatedAt = now
		deactivated.LastUpdatedBy = actorID
		s.auditSvc.RecordInTx(ctx, tx, portssvc.AuditRecordParams{
			Action:          domain.ActionBatchMerge,
			EntityType:      batchEntityType,
			EntityID:        id,
			Before:          source,
			After:           deactivated,
			ChangedFields:   []string{"isActive"},
			FinancialImpact: decimal.Zero,
			ActorID:         actorID,
			CorrelationID:   correlationID,
		})
	}
	s.auditSvc.RecordInTx(ctx, tx, portssvc.AuditRecordParams{
		Action:          domain.ActionBatchMerge,
		EntityType:      batchEntityType,
		EntityID:        merged.BatchID,
		After:           merged,
		ChangedFields:   []string{"batchNumber", "supplierID", "qualityGrade", "totalKg", "isActive"},
		FinancialImpact: decimal.Zero,
		ActorID:         actorID,
		CorrelationID:   correlationID,
	})

	if err := s.batchRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit merge: %w", err)
	}

	logger.Info("Batches merged",
		slog.Int("source_count", len(ids)),
		slog.String("merged_id", merged.BatchID),
		slog.String("total_kg", total.Canonical()),
	)
	return &merged, nil
}

// GetBatchByID retrieves a batch without locking.
func (s *batchService) GetBatchByID(ctx context.Context, batchID string) (*domain.WarehouseBatch, error) {
	batch, err := s.batchRepo.FindBatchByID(ctx, batchID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrBatchNotFound, batchID)
		}
		return nil, err
	}
	return batch, nil
}

// ListActiveBatchesBySupplierAndGrade lists one lineage's active batches.
func (s *batchService) ListActiveBatchesBySupplierAndGrade(ctx context.Context, supplierID, grade string) ([]domain.WarehouseBatch, error) {
	return s.batchRepo.ListActiveBatchesBySupplierAndGrade(ctx, supplierID, grade)
}

// uniqueStrings returns a slice containing only the unique strings from the input.
func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))
	for _, str := range input {
		if _, ok := seen[str]; !ok {
			seen[str] = struct{}{}
			result = append(result, str)
		}
	}
	return result
}
