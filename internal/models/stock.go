package models

import "github.com/shopspring/decimal"

// WarehouseStock is the persistence model for a stock lot. Quantity and cost
// columns are NUMERIC in the store and round-trip through decimal.Decimal,
// never through native floats.
type WarehouseStock struct {
	StockID       string          `json:"stockID"`
	WarehouseType string          `json:"warehouseType"` // FIRST or FINAL
	Commodity     string          `json:"commodity"`
	TotalKg       decimal.Decimal `json:"totalKg"`
	CleanKg       decimal.Decimal `json:"cleanKg"`
	NonCleanKg    decimal.Decimal `json:"nonCleanKg"`
	UnitCost      decimal.Decimal `json:"unitCost"`
	CurrencyCode  string          `json:"currencyCode"`
	CartonType    string          `json:"cartonType"`
	CartonCount   decimal.Decimal `json:"cartonCount"`
	Status        string          `json:"status"`
	BatchID       *string         `json:"batchID,omitempty"`
	QualityGrade  *string         `json:"qualityGrade,omitempty"`
	AuditFields
}

// WarehouseBatch is the persistence model for a batch. Deactivation is a
// logical flag; rows are never deleted.
type WarehouseBatch struct {
	BatchID      string          `json:"batchID"`
	BatchNumber  string          `json:"batchNumber"`
	SupplierID   string          `json:"supplierID"`
	QualityGrade string          `json:"qualityGrade"`
	TotalKg      decimal.Decimal `json:"totalKg"`
	IsActive     bool            `json:"isActive"`
	AuditFields
}

// Sale is the persistence model for a stock consumption record.
type Sale struct {
	SaleID        string          `json:"saleID"`
	StockID       string          `json:"stockID"`
	WarehouseType string          `json:"warehouseType"`
	QuantityKg    decimal.Decimal `json:"quantityKg"`
	CartonType    string          `json:"cartonType"`
	Cartons       decimal.Decimal `json:"cartons"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	CurrencyCode  string          `json:"currencyCode"`
	AuditFields
}
