package services

import (
	"context"

	"github.com/Gha-mus/workflu-business-management-sub007/internal/core/domain"
)

// BatchSplitResult carries both sides of a committed split.
type BatchSplitResult struct {
	Original   domain.WarehouseBatch
	Descendant domain.WarehouseBatch
}

// BatchSvcFacade is the batch split/merge transaction coordinator.
type BatchSvcFacade interface {
	// SplitBatch carves splitKg out of the batch into a new descendant batch
	// with the same supplier and grade. The split quantity must be strictly
	// less than the batch total so both sides stay positive.
	SplitBatch(ctx context.Context, batchID string, splitKg domain.Money, actorID string) (*BatchSplitResult, error)

	// MergeBatches combines the named active batches, which must share one
	// supplier and one quality grade, into a single new batch and
	// deactivates the sources.
	MergeBatches(ctx context.Context, batchIDs []string, actorID string) (*domain.WarehouseBatch, error)

	GetBatchByID(ctx context.Context, batchID string) (*domain.WarehouseBatch, error)
	ListActiveBatchesBySupplierAndGrade(ctx context.Context, supplierID, grade string) ([]domain.WarehouseBatch, error)
}
