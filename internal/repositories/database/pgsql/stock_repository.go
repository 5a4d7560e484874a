package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Gha-mus/workflu-business-management-sub007/internal/apperrors"
	"github.com/Gha-mus/workflu-business-management-sub007/internal/core/domain"
	portsrepo "github.com/Gha-mus/workflu-business-management-sub007/internal/core/ports/repositories"
	"github.com/Gha-mus/workflu-business-management-sub007/internal/models"
	"github.com/Gha-mus/workflu-business-management-sub007/internal/utils/mapping"
	"github.com/Gha-mus/workflu-business-management-sub007/internal/utils/pagination"
)

type PgxStockRepository struct {
	BaseRepository
}

// newPgxStockRepository creates a new repository for warehouse stock data.
func newPgxStockRepository(pool *pgxpool.Pool) portsrepo.StockRepositoryFacade {
	return &PgxStockRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.StockRepositoryFacade = (*PgxStockRepository)(nil)

const stockColumns = `stock_id, warehouse_type, commodity, total_kg, clean_kg, non_clean_kg,
	unit_cost, currency_code, carton_type, carton_count, status, batch_id, quality_grade,
	created_at, created_by, last_updated_at, last_updated_by`

func scanStockRow(row pgx.Row) (models.WarehouseStock, error) {
	var m models.WarehouseStock
	err := row.Scan(
		&m.StockID,
		&m.WarehouseType,
		&m.Commodity,
		&m.TotalKg,
		&m.CleanKg,
		&m.NonCleanKg,
		&m.UnitCost,
		&m.CurrencyCode,
		&m.CartonType,
		&m.CartonCount,
		&m.Status,
		&m.BatchID,
		&m.QualityGrade,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindStockByID retrieves a stock lot by its ID.
func (r *PgxStockRepository) FindStockByID(ctx context.Context, stockID string) (*domain.WarehouseStock, error) {
	query := `SELECT ` + stockColumns + ` FROM warehouse_stock WHERE stock_id = $1;`

	m, err := scanStockRow(r.Pool.QueryRow(ctx, query, stockID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find stock by ID "+stockID, err)
	}

	stock := mapping.ToDomainWarehouseStock(m)
	return &stock, nil
}

// FindStockByIDForUpdate retrieves a stock lot and locks its row for the
// duration of tx. Must be called within a transaction.
func (r *PgxStockRepository) FindStockByIDForUpdate(ctx context.Context, tx pgx.Tx, stockID string) (*domain.WarehouseStock, error) {
	query := `SELECT ` + stockColumns + ` FROM warehouse_stock WHERE stock_id = $1 FOR UPDATE;`

	m, err := scanStockRow(tx.QueryRow(ctx, query, stockID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to lock stock "+stockID, err)
	}

	stock := mapping.ToDomainWarehouseStock(m)
	return &stock, nil
}

// SaveStockInTx inserts a new stock lot within the caller's transaction.
func (r *PgxStockRepository) SaveStockInTx(ctx context.Context, tx pgx.Tx, stock domain.WarehouseStock) error {
	m := mapping.ToModelWarehouseStock(stock)
	query := `
		INSERT INTO warehouse_stock (` + stockColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err := tx.Exec(ctx, query,
		m.StockID,
		m.WarehouseType,
		m.Commodity,
		m.TotalKg,
		m.CleanKg,
		m.NonCleanKg,
		m.UnitCost,
		m.CurrencyCode,
		m.CartonType,
		m.CartonCount,
		m.Status,
		m.BatchID,
		m.QualityGrade,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert stock "+m.StockID, err)
	}
	return nil
}

// UpdateStockInTx persists the mutable fields of a stock lot within the
// caller's transaction.
func (r *PgxStockRepository) UpdateStockInTx(ctx context.Context, tx pgx.Tx, stock domain.WarehouseStock) error {
	m := mapping.ToModelWarehouseStock(stock)
	query := `
		UPDATE warehouse_stock
		SET total_kg = $2, clean_kg = $3, non_clean_kg = $4, carton_count = $5,
		    status = $6, quality_grade = $7, last_updated_at = $8, last_updated_by = $9
		WHERE stock_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		m.StockID,
		m.TotalKg,
		m.CleanKg,
		m.NonCleanKg,
		m.CartonCount,
		m.Status,
		m.QualityGrade,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update stock "+m.StockID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ListStock retrieves a paginated list of stock lots using token-based
// pagination, newest first. warehouseType narrows the listing when non-nil.
func (r *PgxStockRepository) ListStock(ctx context.Context, warehouseType *domain.WarehouseType, limit int, nextToken *string) ([]domain.WarehouseStock, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	query := `SELECT ` + stockColumns + ` FROM warehouse_stock WHERE 1=1`
	args := []interface{}{}

	if warehouseType != nil {
		args = append(args, string(*warehouseType))
		query += ` AND warehouse_type = $` + strconv.Itoa(len(args))
	}

	if nextToken != nil && *nextToken != "" {
		fields, err := pagination.DecodeMultiFieldToken(*nextToken)
		if err != nil || len(fields) != 2 {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", err)
		}
		lastCreatedAt, err := time.Parse(time.RFC3339Nano, fields[0])
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", err)
		}
		args = append(args, lastCreatedAt, fields[1])
		query += ` AND (created_at, stock_id) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}

	args = append(args, fetchLimit)
	query += ` ORDER BY created_at DESC, stock_id DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query stock list", err)
	}
	defer rows.Close()

	stockModels := []models.WarehouseStock{}
	for rows.Next() {
		m, err := scanStockRow(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan stock row", err)
		}
		stockModels = append(stockModels, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating stock rows", err)
	}

	var newNextToken *string
	if len(stockModels) > limit {
		last := stockModels[limit-1]
		token := pagination.EncodeMultiFieldToken(last.CreatedAt.Format(time.RFC3339Nano), last.StockID)
		newNextToken = &token
		stockModels = stockModels[:limit]
	}

	stocks := make([]domain.WarehouseStock, 0, len(stockModels))
	for _, m := range stockModels {
		stocks = append(stocks, mapping.ToDomainWarehouseStock(m))
	}
	return stocks, newNextToken, nil
}
