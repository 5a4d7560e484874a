package services

import (
	"context"

	"github.com/Gha-mus/workflu-business-management-sub007/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ConsumeStockResult carries the lot after consumption and the sale record
// written alongside it.
type ConsumeStockResult struct {
	Stock domain.WarehouseStock
	Sale  domain.Sale
}

// TransferStockResult carries both ends of a FIRST -> FINAL transfer.
type TransferStockResult struct {
	Source      domain.WarehouseStock
	Destination domain.WarehouseStock
}

// StockSvcFacade enforces the warehouse stock state machine: the
// warehouse-source sales rule at consumption time, the return-routing rule,
// filtering, transfer, and audited grade assignment.
type StockSvcFacade interface {
	// ConsumeStock sells the requested carton quantity out of the lot. The
	// source rule is re-validated here, at the moment of consumption.
	ConsumeStock(ctx context.Context, stockID string, cartons decimal.Decimal, cartonType domain.CartonType, actorID string) (*ConsumeStockResult, error)

	// TransferStock moves kg from a FIRST lot into a new FINAL lot.
	TransferStock(ctx context.Context, stockID string, quantityKg domain.Money, actorID string) (*TransferStockResult, error)

	// FilterStock reclassifies part of a lot's non-clean quantity as clean.
	FilterStock(ctx context.Context, stockID string, cleanKg domain.Money, actorID string) (*domain.WarehouseStock, error)

	// AssignGrade stamps an approved inspection's grade onto the lot.
	AssignGrade(ctx context.Context, stockID, inspectionID string, actorID string) (*domain.WarehouseStock, error)

	// ValidateReturn checks that a return re-enters the warehouse the sale
	// left from, resolved from the persisted sale record.
	ValidateReturn(ctx context.Context, saleID string, returnWarehouse domain.WarehouseType) error

	GetStockByID(ctx context.Context, stockID string) (*domain.WarehouseStock, error)
	ListStock(ctx context.Context, warehouseType *domain.WarehouseType, limit int, nextToken *string) ([]domain.WarehouseStock, *string, error)
}
