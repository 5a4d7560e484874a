package repositories

import (
	"context"

	"github.com/Gha-mus/workflu-business-management-sub007/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// StockRepositoryFacade persists warehouse stock lots.
type StockRepositoryFacade interface {
	TxManager

	FindStockByID(ctx context.Context, stockID string) (*domain.WarehouseStock, error)

	// FindStockByIDForUpdate locks the stock row for the duration of tx.
	FindStockByIDForUpdate(ctx context.Context, tx pgx.Tx, stockID string) (*domain.WarehouseStock, error)

	SaveStockInTx(ctx context.Context, tx pgx.Tx, stock domain.WarehouseStock) error
	UpdateStockInTx(ctx context.Context, tx pgx.Tx, stock domain.WarehouseStock) error

	// ListStock never locks; warehouseType narrows the listing when non-nil.
	ListStock(ctx context.Context, warehouseType *domain.WarehouseType, limit int, nextToken *string) ([]domain.WarehouseStock, *string, error)
}

// SaleRepositoryFacade persists sale records and resolves them for return
// validation.
type SaleRepositoryFacade interface {
	FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error)
	SaveSaleInTx(ctx context.Context, tx pgx.Tx, sale domain.Sale) error
}
