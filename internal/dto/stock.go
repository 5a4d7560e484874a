package dto

import (
	"time"

	"github.com/Gha-mus/workflu-business-management-sub007/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ConsumeStockRequest sells a carton quantity out of a stock lot.
type ConsumeStockRequest struct {
	Cartons    decimal.Decimal `json:"cartons" binding:"required"`
	CartonType string          `json:"cartonType" binding:"required,oneof=C20 C8"`
}

// TransferStockRequest moves a kg quantity from a FIRST lot to FINAL.
type TransferStockRequest struct {
	QuantityKg decimal.Decimal `json:"quantityKg" binding:"required"`
}

// FilterStockRequest reclassifies part of a lot's non-clean quantity as clean.
type FilterStockRequest struct {
	CleanKg decimal.Decimal `json:"cleanKg" binding:"required"`
}

// AssignGradeRequest stamps an approved inspection's grade onto a lot.
type AssignGradeRequest struct {
	InspectionID string `json:"inspectionID" binding:"required"`
}

// ValidateReturnRequest checks return routing against the originating sale.
type ValidateReturnRequest struct {
	SaleID          string `json:"saleID" binding:"required"`
	ReturnWarehouse string `json:"returnWarehouse" binding:"required,oneof=FIRST FINAL"`
}

// StockResponse defines the data returned for a warehouse stock lot.
type StockResponse struct {
	StockID       string          `json:"stockID"`
	WarehouseType string          `json:"warehouseType"`
	Commodity     string          `json:"commodity"`
	TotalKg       decimal.Decimal `json:"totalKg"`
	CleanKg       decimal.Decimal `json:"cleanKg"`
	NonCleanKg    decimal.Decimal `json:"nonCleanKg"`
	UnitCost      decimal.Decimal `json:"unitCost"`
	CurrencyCode  string          `json:"currencyCode"`
	CartonType    string          `json:"cartonType"`
	CartonCount   string          `json:"cartonCount"`
	Status        string          `json:"status"`
	BatchID       *string         `json:"batchID,omitempty"`
	QualityGrade  *string         `json:"qualityGrade,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// SaleResponse defines the data returned for a recorded sale.
type SaleResponse struct {
	SaleID        string          `json:"saleID"`
	StockID       string          `json:"stockID"`
	WarehouseType string          `json:"warehouseType"`
	QuantityKg    decimal.Decimal `json:"quantityKg"`
	CartonType    string          `json:"cartonType"`
	Cartons       string          `json:"cartons"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	CurrencyCode  string          `json:"currencyCode"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ConsumeStockResponse returns the lot after consumption and the sale record.
type ConsumeStockResponse struct {
	Stock StockResponse `json:"stock"`
	Sale  SaleResponse  `json:"sale"`
}

// TransferStockResponse returns both ends of a FIRST -> FINAL transfer.
type TransferStockResponse struct {
	Source      StockResponse `json:"source"`
	Destination StockResponse `json:"destination"`
}

// ListStockResponse is a paginated stock listing.
type ListStockResponse struct {
	Stock     []StockResponse `json:"stock"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ToStockResponse converts a domain.WarehouseStock to StockResponse DTO.
func ToStockResponse(s *domain.WarehouseStock) StockResponse {
	return StockResponse{
		StockID:       s.StockID,
		WarehouseType: string(s.WarehouseType),
		Commodity:     s.Commodity,
		TotalKg:       s.TotalKg.Rounded(),
		CleanKg:       s.CleanKg.Rounded(),
		NonCleanKg:    s.NonCleanKg.Rounded(),
		UnitCost:      s.UnitCost.Rounded(),
		CurrencyCode:  string(s.UnitCost.Unit()),
		CartonType:    string(s.CartonType),
		CartonCount:   s.CartonCount,
		Status:        string(s.Status),
		BatchID:       s.BatchID,
		QualityGrade:  s.QualityGrade,
		CreatedAt:     s.CreatedAt,
	}
}

// ToStockResponses converts a slice of domain.WarehouseStock to []StockResponse.
func ToStockResponses(stocks []domain.WarehouseStock) []StockResponse {
	responses := make([]StockResponse, len(stocks))
	for i, s := range stocks {
		responses[i] = ToStockResponse(&s)
	}
	return responses
}

// ToSaleResponse converts a domain.Sale to SaleResponse DTO.
func ToSaleResponse(s *domain.Sale) SaleResponse {
	return SaleResponse{
		SaleID:        s.SaleID,
		StockID:       s.StockID,
		WarehouseType: string(s.WarehouseType),
		QuantityKg:    s.QuantityKg.Rounded(),
		CartonType:    string(s.CartonType),
		Cartons:       s.Cartons,
		TotalAmount:   s.TotalAmount.Rounded(),
		CurrencyCode:  string(s.TotalAmount.Unit()),
		CreatedAt:     s.CreatedAt,
	}
}
