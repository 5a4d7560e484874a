package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Gha-mus/workflu-business-management-sub007/internal/apperrors"
	"github.com/Gha-mus/workflu-business-management-sub007/internal/core/domain"
	portsrepo "github.com/Gha-mus/workflu-business-management-sub007/internal/core/ports/repositories"
	portssvc "github.com/Gha-mus/workflu-business-management-sub007/internal/core/ports/services"
	"github.com/Gha-mus/workflu-business-management-sub007/internal/middleware"
	"github.com/Gha-mus/workflu-business-management-sub007/internal/utils/unitconv"
)

var (
	ErrInventorySourceViolation = errors.New("inventory source violation")
	ErrReturnWarehouseMismatch  = errors.New("returned stock must re-enter the warehouse it was sold from")
	ErrInsufficientStock        = errors.New("insufficient stock")
	ErrStockNotFound            = errors.New("stock lot not found")
	ErrSaleNotFound             = errors.New("sale not found")
)

const stockEntityType = "warehouse_stock"

// stockService enforces the warehouse stock state machine and the
// warehouse-source sales rule.
type stockService struct {
	stockRepo      portsrepo.StockRepositoryFacade
	saleRepo       portsrepo.SaleRepositoryFacade
	inspectionRepo portsrepo.InspectionRepositoryFacade
	auditSvc       portssvc.AuditSvcFacade
}

// NewStockService creates a new StockService.
func NewStockService(stockRepo portsrepo.StockRepositoryFacade, saleRepo portsrepo.SaleRepositoryFacade, inspectionRepo portsrepo.InspectionRepositoryFacade, auditSvc portssvc.AuditSvcFacade) portssvc.StockSvcFacade {
	return &stockService{
		stockRepo:      stockRepo,
		saleRepo:       saleRepo,
		inspectionRepo: inspectionRepo,
		auditSvc:       auditSvc,
	}
}

var _ portssvc.StockSvcFacade = (*stockService)(nil)

// validateSaleSource enforces the warehouse-source sales rule at the moment
// of consumption. Status and warehouse type are independently mutable, so
// this check must run against the locked row, not against whatever the
// caller last saw.
func validateSaleSource(stock domain.WarehouseStock) error {
	required, ok := domain.SellableStatus(stock.WarehouseType)
	if !ok {
		return fmt.Errorf("%w: lot %s has unknown warehouse type %q",
			ErrInventorySourceViolation, stock.StockID, stock.WarehouseType)
	}
	if stock.Status != required {
		return fmt.Errorf("%w: lot %s at %s warehouse has status %s, consumption requires %s",
			ErrInventorySourceViolation, stock.StockID, stock.WarehouseType, stock.Status, required)
	}
	return nil
}

// sellableBucket returns the quantity bucket the warehouse sells from:
// non-clean for FIRST, clean for FINAL.
func sellableBucket(stock domain.WarehouseStock) domain.Money {
	if stock.WarehouseType == domain.WarehouseFirst {
		return stock.NonCleanKg
	}
	return stock.CleanKg
}

// applyConsumption reduces the lot by quantityKg out of its sellable bucket
// and recomputes the derived fields. The clean + nonClean == total invariant
// is preserved by reducing the bucket and the total by the same amount.
func applyConsumption(stock domain.WarehouseStock, quantityKg domain.Money, actorID string, now time.Time) (domain.WarehouseStock, error) {
	bucket := sellableBucket(stock)
	enough, err := bucket.GreaterThanOrEqual(quantityKg)
	if err != nil {
		return domain.WarehouseStock{}, err
	}
	if !enough {
		return domain.WarehouseStock{}, fmt.Errorf("%w: lot %s has %s sellable, requested %s",
			ErrInsufficientStock, stock.StockID, bucket, quantityKg)
	}

	reduced, err := bucket.Sub(quantityKg)
	if err != nil {
		return domain.WarehouseStock{}, err
	}
	newTotal, err := stock.TotalKg.Sub(quantityKg)
	if err != nil {
		return domain.WarehouseStock{}, err
	}

	after := stock
	if stock.WarehouseType == domain.WarehouseFirst {
		after.NonCleanKg = reduced
	} else {
		after.CleanKg = reduced
	}
	after.TotalKg = newTotal
	if newTotal.IsZero() {
		after.Status = domain.StockConsumed
	}
	cartons, err := unitconv.KgToCartons(newTotal, after.CartonType)
	if err != nil {
		return domain.WarehouseStock{}, err
	}
	after.CartonCount = cartons.String()
	after.LastUpdatedAt = now
	after.LastUpdatedBy = actorID
	return after, nil
}

// ConsumeStock sells the requested carton quantity out of the lot.
// Implements portssvc.StockSvcFacade.
func (s *stockService) ConsumeStock(ctx context.Context, stockID string, cartons decimal.Decimal, cartonType domain.CartonType, actorID string) (*portssvc.ConsumeStockResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !cartons.IsPositive() {
		return nil, fmt.Errorf("%w: carton quantity must be positive, got %s", apperrors.ErrValidation, cartons)
	}
	requestedKg, err := unitconv.CartonsToKg(cartons, cartonType)
	if err != nil {
		return nil, err
	}
	if !requestedKg.Quantized() {
		return nil, fmt.Errorf("%w: %s %s cartons is %s, finer than the persisted kilogram precision",
			apperrors.ErrValidation, cartons, cartonType, requestedKg.Amount())
	}

	tx, err := s.stockRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin consumption transaction: %w", err)
	}
	defer s.stockRepo.Rollback(ctx, tx)

	stock, err := s.stockRepo.FindStockByIDForUpdate(ctx, tx, stockID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrStockNotFound, stockID)
		}
		return nil, fmt.Errorf("failed to lock stock %s: %w", stockID, err)
	}

	if err := validateSaleSource(*stock); err != nil {
		return nil, err
	}

	avail, err := unitconv.CheckAvailability(sellableBucket(*stock), cartons, cartonType)
	if err != nil {
		return nil, err
	}
	if !avail.Sufficient {
		return nil, fmt.Errorf("%w: lot %s short by %s (%s %s cartons)",
			ErrInsufficientStock, stockID, avail.ShortfallKg, avail.ShortfallCartons, cartonType)
	}

	now := time.Now().UTC()
	after, err := applyConsumption(*stock, avail.RequestedKg, actorID, now)
	if err != nil {
		return nil, err
	}

	totalAmount := stock.UnitCost.Mul(avail.RequestedKg.Amount())
	sale := domain.Sale{
		SaleID:        uuid.NewString(),
		StockID:       stockID,
		WarehouseType: stock.WarehouseType,
		QuantityKg:    avail.RequestedKg,
		CartonType:    cartonType,
		Cartons:       cartons.String(),
		TotalAmount:   totalAmount,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.stockRepo.UpdateStockInTx(ctx, tx, after); err != nil {
		return nil, fmt.Errorf("failed to update stock %s: %w", stockID, err)
	}
	if err := s.saleRepo.SaveSaleInTx(ctx, tx, sale); err != nil {
		return nil, fmt.Errorf("failed to save sale for stock %s: %w", stockID, err)
	}

	s.auditSvc.RecordInTx(ctx, tx, portssvc.AuditRecordParams{
		Action:          domain.ActionStockConsume,
		EntityType:      stockEntityType,
		EntityID:        stockID,
		Before:          *stock,
		After:           after,
		ChangedFields:   []string{"totalKg", "cleanKg", "nonCleanKg", "cartonCount", "status"},
		FinancialImpact: totalAmount.Rounded().Neg(),
		CurrencyCode:    string(totalAmount.Unit()),
		ActorID:         actorID,
		CorrelationID:   sale.SaleID,
	})

	if err := s.stockRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit consumption of stock %s: %w", stockID, err)
	}

	logger.Info("Stock consumed",
		slog.String("stock_id", stockID),
		slog.String("sale_id", sale.SaleID),
		slog.String("quantity_kg", avail.RequestedKg.Canonical()),
	)
	return &portssvc.ConsumeStockResult{Stock: after, Sale: sale}, nil
}

// TransferStock moves quantityKg from a FIRST lot into a new FINAL lot.
// Transfer-out is consumption, so the source rule applies to the source lot.
// Implements portssvc.StockSvcFacade.
func (s *stockService) TransferStock(ctx context.Context, stockID string, quantityKg domain.Money, actorID string) (*portssvc.TransferStockResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if quantityKg.Unit() != domain.UnitKilogram {
		return nil, fmt.Errorf("%w: transfer quantity must be in kg, got %s", domain.ErrUnitMismatch, quantityKg.Unit())
	}
	if !quantityKg.IsPositive() {
		return nil, fmt.Errorf("%w: transfer quantity must be positive, got %s", apperrors.ErrValidation, quantityKg)
	}
	if !quantityKg.Quantized() {
		return nil, fmt.Errorf("%w: transfer quantity %s is finer than the persisted kilogram precision",
			apperrors.ErrValidation, quantityKg.Amount())
	}

	tx, err := s.stockRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transfer transaction: %w", err)
	}
	defer s.stockRepo.Rollback(ctx, tx)

	source, err := s.stockRepo.FindStockByIDForUpdate(ctx, tx, stockID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrStockNotFound, stockID)
		}
		return nil, fmt.Errorf("failed to lock stock %s: %w", stockID, err)
	}

	if source.WarehouseType != domain.WarehouseFirst {
		return nil, fmt.Errorf("%w: lot %s at %s warehouse, transfers originate from FIRST only",
			ErrInventorySourceViolation, stockID, source.WarehouseType)
	}
	if err := validateSaleSource(*source); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	afterSource, err := applyConsumption(*source, quantityKg, actorID, now)
	if err != nil {
		return nil, err
	}

	cartons, err := unitconv.KgToCartons(quantityKg, source.CartonType)
	if err != nil {
		return nil, err
	}
	// Material arriving at FINAL is still ungraded and unfiltered.
	destination := domain.WarehouseStock{
		StockID:       uuid.NewString(),
		WarehouseType: domain.WarehouseFinal,
		Commodity:     source.Commodity,
		TotalKg:       quantityKg,
		CleanKg:       domain.ZeroMoney(domain.UnitKilogram),
		NonCleanKg:    quantityKg,
		UnitCost:      source.UnitCost,
		CartonType:    source.CartonType,
		CartonCount:   cartons.String(),
		Status:        domain.StockAwaitingDecision,
		BatchID:       source.BatchID,
		QualityGrade:  source.QualityGrade,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.stockRepo.UpdateStockInTx(ctx, tx, afterSource); err != nil {
		return nil, fmt.Errorf("failed to update transfer source %s: %w", stockID, err)
	}
	if err := s.stockRepo.SaveStockInTx(ctx, tx, destination); err != nil {
		return nil, fmt.Errorf("failed to save transfer destination: %w", err)
	}

	correlationID := uuid.NewString()
	s.auditSvc.RecordInTx(ctx, tx, portssvc.AuditRecordParams{
		Action:          domain.ActionStockTransfer,
		EntityType:      stockEntityType,
		EntityID:        stockID,
		Before:          *source,
		After:           afterSource,
		ChangedFields:   []string{"totalKg", "nonCleanKg", "cartonCount", "status"},
		FinancialImpact: decimal.Zero,
		ActorID:         actorID,
		CorrelationID:   correlationID,
	})
	s.auditSvc.RecordInTx(ctx, tx, portssvc.AuditRecordParams{
		Action:          domain.ActionStockTransfer,
		EntityType:      stockEntityType,
		EntityID:        destination.StockID,
		After:           destination,
		ChangedFields:   []string{"warehouseType", "totalKg", "nonCleanKg", "cartonCount", "status"},
		FinancialImpact: decimal.Zero,
		ActorID:         actorID,
		CorrelationID:   correlationID,
	})

	if err := s.stockRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit transfer of stock %s: %w", stockID, err)
	}

	logger.Info("Stock transferred",
		slog.String("source_id", stockID),
		slog.String("destination_id", destination.StockID),
		slog.String("quantity_kg", quantityKg.Canonical()),
	)
	return &portssvc.TransferStockResult{Source: afterSource, Destination: destination}, nil
}

// FilterStock reclassifies cleanKg of a lot's non-clean quantity as clean and
// moves the lot to READY_TO_SHIP. Implements portssvc.StockSvcFacade.
func (s *stockService) FilterStock(ctx context.Context, stockID string, cleanKg domain.Money, actorID string) (*domain.WarehouseStock, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if cleanKg.Unit() != domain.UnitKilogram {
		return nil, fmt.Errorf("%w: filtered quantity must be in kg, got %s", domain.ErrUnitMismatch, cleanKg.Unit())
	}
	if !cleanKg.IsPositive() {
		return nil, fmt.Errorf("%w: filtered quantity must be positive, got %s", apperrors.ErrValidation, cleanKg)
	}
	if !cleanKg.Quantized() {
		return nil, fmt.Errorf("%w: filtered quantity %s is finer than the persisted kilogram precision",
			apperrors.ErrValidation, cleanKg.Amount())
	}

	tx, err := s.stockRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin filter transaction: %w", err)
	}
	defer s.stockRepo.Rollback(ctx, tx)

	stock, err := s.stockRepo.FindStockByIDForUpdate(ctx, tx, stockID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrStockNotFound, stockID)
		}
		return nil, fmt.Errorf("failed to lock stock %s: %w", stockID, err)
	}

	if stock.Status != domain.StockAwaitingFilter {
		return nil, fmt.Errorf("%w: lot %s has status %s, filtering requires %s",
			apperrors.ErrConflict, stockID, stock.Status, domain.StockAwaitingFilter)
	}

	enough, err := stock.NonCleanKg.GreaterThanOrEqual(cleanKg)
	if err != nil {
		return nil, err
	}
	if !enough {
		return nil, fmt.Errorf("%w: lot %s has %s non-clean, cannot reclassify %s",
			ErrInsufficientStock, stockID, stock.NonCleanKg, cleanKg)
	}

	now := time.Now().UTC()
	after := *stock
	after.CleanKg, err = stock.CleanKg.Add(cleanKg)
	if err != nil {
		return nil, err
	}
	after.NonCleanKg, err = stock.NonCleanKg.Sub(cleanKg)
	if err != nil {
		return nil, err
	}
	after.Status = domain.StockReadyToShip
	after.LastUpdatedAt = now
	after.LastUpdatedBy = actorID

	if !after.QuantityInvariantHolds() {
		return nil, fmt.Errorf("%w: lot %s clean/non-clean split no longer sums to total", apperrors.ErrInternal, stockID)
	}

	if err := s.stockRepo.UpdateStockInTx(ctx, tx, after); err != nil {
		return nil, fmt.Errorf("failed to update stock %s: %w", stockID, err)
	}

	s.auditSvc.RecordInTx(ctx, tx, portssvc.AuditRecordParams{
		Action:          domain.ActionStockFilter,
		EntityType:      stockEntityType,
		EntityID:        stockID,
		Before:          *stock,
		After:           after,
		ChangedFields:   []string{"cleanKg", "nonCleanKg", "status"},
		FinancialImpact: decimal.Zero,
		ActorID:         actorID,
		CorrelationID:   uuid.NewString(),
	})

	if err := s.stockRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit filter of stock %s: %w", stockID, err)
	}

	logger.Info("Stock filtered",
		slog.String("stock_id", stockID),
		slog.String("clean_kg", cleanKg.Canonical()),
	)
	return &after, nil
}

// AssignGrade stamps an approved inspection's grade onto the lot. Grade
// assignment is deliberately decoupled from inspection completion so a grade
// can be contested before it affects sellable inventory.
// Implements portssvc.StockSvcFacade.
func (s *stockService) AssignGrade(ctx context.Context, stockID, inspectionID string, actorID string) (*domain.WarehouseStock, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	inspection, err := s.inspectionRepo.FindInspectionByID(ctx, inspectionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: inspection %s", apperrors.ErrNotFound, inspectionID)
		}
		return nil, fmt.Errorf("failed to find inspection %s: %w", inspectionID, err)
	}
	if inspection.Status != domain.InspectionApproved || inspection.Grade == nil {
		return nil, fmt.Errorf("%w: inspection %s has status %s, grade assignment requires %s",
			ErrInspectionStateViolation, inspectionID, inspection.Status, domain.InspectionApproved)
	}

	tx, err := s.stockRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin grade assignment transaction: %w", err)
	}
	defer s.stockRepo.Rollback(ctx, tx)

	stock, err := s.stockRepo.FindStockByIDForUpdate(ctx, tx, stockID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrStockNotFound, stockID)
		}
		return nil, fmt.Errorf("failed to lock stock %s: %w", stockID, err)
	}

	now := time.Now().UTC()
	after := *stock
	after.QualityGrade = inspection.Grade
	after.LastUpdatedAt = now
	after.LastUpdatedBy = actorID

	if err := s.stockRepo.UpdateStockInTx(ctx, tx, after); err != nil {
		return nil, fmt.Errorf("failed to update stock %s: %w", stockID, err)
	}

	s.auditSvc.RecordInTx(ctx, tx, portssvc.AuditRecordParams{
		Action:          domain.ActionGradeAssign,
		EntityType:      stockEntityType,
		EntityID:        stockID,
		Before:          *stock,
		After:           after,
		ChangedFields:   []string{"qualityGrade"},
		FinancialImpact: decimal.Zero,
		ActorID:         actorID,
		CorrelationID:   inspectionID,
	})

	if err := s.stockRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit grade assignment for stock %s: %w", stockID, err)
	}

	logger.Info("Grade assigned to stock",
		slog.String("stock_id", stockID),
		slog.String("inspection_id", inspectionID),
		slog.String("grade", *inspection.Grade),
	)
	return &after, nil
}

// ValidateReturn checks that a return re-enters the warehouse the sale left
// from. The original warehouse is resolved from the persisted sale record,
// never from client input, so return routing cannot be spoofed.
// Implements portssvc.StockSvcFacade.
func (s *stockService) ValidateReturn(ctx context.Context, saleID string, returnWarehouse domain.WarehouseType) error {
	sale, err := s.saleRepo.FindSaleByID(ctx, saleID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrSaleNotFound, saleID)
		}
		return fmt.Errorf("failed to find sale %s: %w", saleID, err)
	}
	if sale.WarehouseType != returnWarehouse {
		return fmt.Errorf("%w: sale %s left the %s warehouse, return routed to %s",
			ErrReturnWarehouseMismatch, saleID, sale.WarehouseType, returnWarehouse)
	}
	return nil
}

// GetStockByID retrieves a stock lot without locking.
func (s *stockService) GetStockByID(ctx context.Context, stockID string) (*domain.WarehouseStock, error) {
	stock, err := s.stockRepo.FindStockByID(ctx, stockID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrStockNotFound, stockID)
		}
		return nil, err
	}
	return stock, nil
}

// ListStock lists stock lots, optionally narrowed to one warehouse type.
func (s *stockService) ListStock(ctx context.Context, warehouseType *domain.WarehouseType, limit int, nextToken *string) ([]domain.WarehouseStock, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.stockRepo.ListStock(ctx, warehouseType, limit, nextToken)
}
