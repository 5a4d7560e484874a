package mapping

import (
	"github.com/Gha-mus/workflu-business-management-sub007/internal/core/domain"
	"github.com/Gha-mus/workflu-business-management-sub007/internal/models"
	"github.com/shopspring/decimal"
)

// ToModelWarehouseStock converts a domain stock lot to its persistence model.
func ToModelWarehouseStock(d domain.WarehouseStock) models.WarehouseStock {
	cartonCount, err := decimal.NewFromString(d.CartonCount)
	if err != nil {
		cartonCount = decimal.Zero
	}
	return models.WarehouseStock{
		StockID:       d.StockID,
		WarehouseType: string(d.WarehouseType),
		Commodity:     d.Commodity,
		TotalKg:       d.TotalKg.Rounded(),
		CleanKg:       d.CleanKg.Rounded(),
		NonCleanKg:    d.NonCleanKg.Rounded(),
		UnitCost:      d.UnitCost.Rounded(),
		CurrencyCode:  string(d.UnitCost.Unit()),
		CartonType:    string(d.CartonType),
		CartonCount:   cartonCount,
		Status:        string(d.Status),
		BatchID:       d.BatchID,
		QualityGrade:  d.QualityGrade,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainWarehouseStock converts a persistence model to a domain stock lot.
func ToDomainWarehouseStock(m models.WarehouseStock) domain.WarehouseStock {
	return domain.WarehouseStock{
		StockID:       m.StockID,
		WarehouseType: domain.WarehouseType(m.WarehouseType),
		Commodity:     m.Commodity,
		TotalKg:       domain.NewMoneyFromDecimal(m.TotalKg, domain.UnitKilogram),
		CleanKg:       domain.NewMoneyFromDecimal(m.CleanKg, domain.UnitKilogram),
		NonCleanKg:    domain.NewMoneyFromDecimal(m.NonCleanKg, domain.UnitKilogram),
		UnitCost:      domain.NewMoneyFromDecimal(m.UnitCost, domain.Unit(m.CurrencyCode)),
		CartonType:    domain.CartonType(m.CartonType),
		CartonCount:   m.CartonCount.String(),
		Status:        domain.StockStatus(m.Status),
		BatchID:       m.BatchID,
		QualityGrade:  m.QualityGrade,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelWarehouseBatch converts a domain batch to its persistence model.
func ToModelWarehouseBatch(d domain.WarehouseBatch) models.WarehouseBatch {
	return models.WarehouseBatch{
		BatchID:      d.BatchID,
		BatchNumber:  d.BatchNumber,
		SupplierID:   d.SupplierID,
		QualityGrade: d.QualityGrade,
		TotalKg:      d.TotalKg.Rounded(),
		IsActive:     d.IsActive,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainWarehouseBatch converts a persistence model to a domain batch.
func ToDomainWarehouseBatch(m models.WarehouseBatch) domain.WarehouseBatch {
	return domain.WarehouseBatch{
		BatchID:      m.BatchID,
		BatchNumber:  m.BatchNumber,
		SupplierID:   m.SupplierID,
		QualityGrade: m.QualityGrade,
		TotalKg:      domain.NewMoneyFromDecimal(m.TotalKg, domain.UnitKilogram),
		IsActive:     m.IsActive,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainSale converts a persistence model to a domain sale record.
func ToDomainSale(m models.Sale) domain.Sale {
	return domain.Sale{
		SaleID:        m.SaleID,
		StockID:       m.StockID,
		WarehouseType: domain.WarehouseType(m.WarehouseType),
		QuantityKg:    domain.NewMoneyFromDecimal(m.QuantityKg, domain.UnitKilogram),
		CartonType:    domain.CartonType(m.CartonType),
		Cartons:       m.Cartons.String(),
		TotalAmount:   domain.NewMoneyFromDecimal(m.TotalAmount, domain.Unit(m.CurrencyCode)),
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelSale converts a domain sale record to its persistence model.
func ToModelSale(d domain.Sale) models.Sale {
	cartons, err := decimal.NewFromString(d.Cartons)
	if err != nil {
		cartons = decimal.Zero
	}
	return models.Sale{
		SaleID:        d.SaleID,
		StockID:       d.StockID,
		WarehouseType: string(d.WarehouseType),
		QuantityKg:    d.QuantityKg.Rounded(),
		CartonType:    string(d.CartonType),
		Cartons:       cartons,
		TotalAmount:   d.TotalAmount.Rounded(),
		CurrencyCode:  string(d.TotalAmount.Unit()),
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}
