package repositories

import (
	"context"
	"time"

	"github.com/Gha-mus/workflu-business-management-sub007/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// BatchRepositoryFacade persists warehouse batches. Mutating methods are
// transaction-scoped: the batch coordinator opens the transaction, locks the
// rows it needs, and commits once the audit entry has been attempted.
type BatchRepositoryFacade interface {
	TxManager

	FindBatchByID(ctx context.Context, batchID string) (*domain.WarehouseBatch, error)

	// FindBatchesByIDsForUpdate locks the batch rows with SELECT ... FOR
	// UPDATE. Identifiers are locked in lexicographic order regardless of the
	// order requested, so concurrent multi-batch operations cannot deadlock.
	// Returns ErrNotFound if any id is missing.
	FindBatchesByIDsForUpdate(ctx context.Context, tx pgx.Tx, batchIDs []string) (map[string]domain.WarehouseBatch, error)

	SaveBatchInTx(ctx context.Context, tx pgx.Tx, batch domain.WarehouseBatch) error
	UpdateBatchQuantityInTx(ctx context.Context, tx pgx.Tx, batchID string, totalKg domain.Money, updatedBy string, updatedAt time.Time) error
	DeactivateBatchesInTx(ctx context.Context, tx pgx.Tx, batchIDs []string, updatedBy string, updatedAt time.Time) error

	// ListActiveBatchesBySupplierAndGrade is a read-only lineage query; it
	// never locks.
	ListActiveBatchesBySupplierAndGrade(ctx context.Context, supplierID, grade string) ([]domain.WarehouseBatch, error)
}
