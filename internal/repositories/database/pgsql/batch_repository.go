package pgsql

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Gha-mus/workflu-business-management-sub007/internal/apperrors"
	"github.com/Gha-mus/workflu-business-management-sub007/internal/core/domain"
	portsrepo "github.com/Gha-mus/workflu-business-management-sub007/internal/core/ports/repositories"
	"github.com/Gha-mus/workflu-business-management-sub007/internal/models"
	"github.com/Gha-mus/workflu-business-management-sub007/internal/utils/mapping"
)

type PgxBatchRepository struct {
	BaseRepository
}

// newPgxBatchRepository creates a new repository for warehouse batch data.
func newPgxBatchRepository(pool *pgxpool.Pool) portsrepo.BatchRepositoryFacade {
	return &PgxBatchRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BatchRepositoryFacade = (*PgxBatchRepository)(nil)

const batchColumns = `batch_id, batch_number, supplier_id, quality_grade, total_kg, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

func scanBatchRow(row pgx.Row) (models.WarehouseBatch, error) {
	var m models.WarehouseBatch
	err := row.Scan(
		&m.BatchID,
		&m.BatchNumber,
		&m.SupplierID,
		&m.QualityGrade,
		&m.TotalKg,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindBatchByID retrieves a batch by its ID.
func (r *PgxBatchRepository) FindBatchByID(ctx context.Context, batchID string) (*domain.WarehouseBatch, error) {
	query := `SELECT ` + batchColumns + ` FROM warehouse_batches WHERE batch_id = $1;`

	m, err := scanBatchRow(r.Pool.QueryRow(ctx, query, batchID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find batch by ID "+batchID, err)
	}

	batch := mapping.ToDomainWarehouseBatch(m)
	return &batch, nil
}

// FindBatchesByIDsForUpdate retrieves multiple batches by ID and locks the
// rows for update. Rows are locked in lexicographic batch_id order regardless
// of the order requested, so concurrent multi-batch operations acquire locks
// in the same sequence and cannot deadlock. Must be called within a
// transaction. Returns ErrNotFound if any requested batch is missing.
func (r *PgxBatchRepository) FindBatchesByIDsForUpdate(ctx context.Context, tx pgx.Tx, batchIDs []string) (map[string]domain.WarehouseBatch, error) {
	if len(batchIDs) == 0 {
		return map[string]domain.WarehouseBatch{}, nil
	}

	sorted := make([]string, len(batchIDs))
	copy(sorted, batchIDs)
	sort.Strings(sorted)

	// ORDER BY batch_id makes the row lock acquisition order deterministic.
	query := `
		SELECT ` + batchColumns + `
		FROM warehouse_batches
		WHERE batch_id = ANY($1)
		ORDER BY batch_id
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, query, sorted)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query batches for update", err)
	}
	defer rows.Close()

	batchesMap := make(map[string]domain.WarehouseBatch)
	for rows.Next() {
		m, err := scanBatchRow(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan locked batch row", err)
		}
		batchesMap[m.BatchID] = mapping.ToDomainWarehouseBatch(m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating locked batch rows", err)
	}

	if len(batchesMap) != len(sorted) {
		missing := []string{}
		for _, id := range sorted {
			if _, ok := batchesMap[id]; !ok {
				missing = append(missing, id)
			}
		}
		return nil, fmt.Errorf("batches not found: %s: %w", strings.Join(missing, ", "), apperrors.ErrNotFound)
	}

	return batchesMap, nil
}

// SaveBatchInTx inserts a new batch within the caller's transaction.
func (r *PgxBatchRepository) SaveBatchInTx(ctx context.Context, tx pgx.Tx, batch domain.WarehouseBatch) error {
	m := mapping.ToModelWarehouseBatch(batch)
	query := `
		INSERT INTO warehouse_batches (` + batchColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := tx.Exec(ctx, query,
		m.BatchID,
		m.BatchNumber,
		m.SupplierID,
		m.QualityGrade,
		m.TotalKg,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert batch "+m.BatchID, err)
	}
	return nil
}

// UpdateBatchQuantityInTx sets a batch's total quantity within the caller's
// transaction. The row must already be locked via FindBatchesByIDsForUpdate.
func (r *PgxBatchRepository) UpdateBatchQuantityInTx(ctx context.Context, tx pgx.Tx, batchID string, totalKg domain.Money, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE warehouse_batches
		SET total_kg = $2, last_updated_at = $3, last_updated_by = $4
		WHERE batch_id = $1;
	`
	tag, err := tx.Exec(ctx, query, batchID, totalKg.Rounded(), updatedAt, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update quantity of batch "+batchID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateBatchesInTx flips is_active off for the named batches within the
// caller's transaction. Rows are never deleted; lineage queries rely on
// deactivated batches staying readable.
func (r *PgxBatchRepository) DeactivateBatchesInTx(ctx context.Context, tx pgx.Tx, batchIDs []string, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE warehouse_batches
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE batch_id = ANY($1);
	`
	tag, err := tx.Exec(ctx, query, batchIDs, updatedAt, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to deactivate batches", err)
	}
	if int(tag.RowsAffected()) != len(batchIDs) {
		return fmt.Errorf("expected to deactivate %d batches, affected %d: %w", len(batchIDs), tag.RowsAffected(), apperrors.ErrNotFound)
	}
	return nil
}

// ListActiveBatchesBySupplierAndGrade retrieves one lineage's active batches,
// oldest first.
func (r *PgxBatchRepository) ListActiveBatchesBySupplierAndGrade(ctx context.Context, supplierID, grade string) ([]domain.WarehouseBatch, error) {
	query := `
		SELECT ` + batchColumns + `
		FROM warehouse_batches
		WHERE supplier_id = $1 AND quality_grade = $2 AND is_active = TRUE
		ORDER BY created_at;
	`
	rows, err := r.Pool.Query(ctx, query, supplierID, grade)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query batches for supplier "+supplierID, err)
	}
	defer rows.Close()

	batches := []domain.WarehouseBatch{}
	for rows.Next() {
		m, err := scanBatchRow(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan batch row", err)
		}
		batches = append(batches, mapping.ToDomainWarehouseBatch(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating batch rows", err)
	}
	return batches, nil
}
