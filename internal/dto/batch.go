package dto

import (
	"time"

	"github.com/Gha-mus/workflu-business-management-sub007/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SplitBatchRequest carves a quantity out of an existing batch.
type SplitBatchRequest struct {
	SplitKg decimal.Decimal `json:"splitKg" binding:"required"`
}

// MergeBatchesRequest combines two or more batches of one supplier and grade.
type MergeBatchesRequest struct {
	BatchIDs []string `json:"batchIDs" binding:"required,min=2,dive,required"`
}

// BatchResponse defines the data returned for a warehouse batch.
type BatchResponse struct {
	BatchID      string          `json:"batchID"`
	BatchNumber  string          `json:"batchNumber"`
	SupplierID   string          `json:"supplierID"`
	QualityGrade string          `json:"qualityGrade"`
	TotalKg      decimal.Decimal `json:"totalKg"`
	IsActive     bool            `json:"isActive"`
	CreatedAt    time.Time       `json:"createdAt"`
	CreatedBy    string          `json:"createdBy"`
}

// SplitBatchResponse returns both sides of a committed split.
type SplitBatchResponse struct {
	Original   BatchResponse `json:"original"`
	Descendant BatchResponse `json:"descendant"`
}

// ToBatchResponse converts a domain.WarehouseBatch to BatchResponse DTO.
func ToBatchResponse(b *domain.WarehouseBatch) BatchResponse {
	return BatchResponse{
		BatchID:      b.BatchID,
		BatchNumber:  b.BatchNumber,
		SupplierID:   b.SupplierID,
		QualityGrade: b.QualityGrade,
		TotalKg:      b.TotalKg.Rounded(),
		IsActive:     b.IsActive,
		CreatedAt:    b.CreatedAt,
		CreatedBy:    b.CreatedBy,
	}
}

// ToBatchResponses converts a slice of domain.WarehouseBatch to []BatchResponse.
func ToBatchResponses(batches []domain.WarehouseBatch) []BatchResponse {
	responses := make([]BatchResponse, len(batches))
	for i, b := range batches {
		responses[i] = ToBatchResponse(&b)
	}
	return responses
}
