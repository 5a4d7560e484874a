package dto

import (
	"time"

	"github.com/Gha-mus/workflu-business-management-sub007/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateInspectionRequest opens a pending inspection against a batch.
type CreateInspectionRequest struct {
	BatchID string `json:"batchID" binding:"required"`
}

// CompleteInspectionRequest records a lab result on a pending inspection.
type CompleteInspectionRequest struct {
	Grade       string          `json:"grade" binding:"required"`
	Score       decimal.Decimal `json:"score" binding:"required"`
	TestResults string          `json:"testResults"`
}

// RejectInspectionRequest discards a completed inspection's result.
type RejectInspectionRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// InspectionResponse defines the data returned for a quality inspection.
type InspectionResponse struct {
	InspectionID    string           `json:"inspectionID"`
	BatchID         string           `json:"batchID"`
	Status          string           `json:"status"`
	Grade           *string          `json:"grade,omitempty"`
	Score           *decimal.Decimal `json:"score,omitempty"`
	TestResults     string           `json:"testResults,omitempty"`
	RejectionReason *string          `json:"rejectionReason,omitempty"`
	CompletedAt     *time.Time       `json:"completedAt,omitempty"`
	DecidedAt       *time.Time       `json:"decidedAt,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
}

// ToInspectionResponse converts a domain.QualityInspection to InspectionResponse DTO.
func ToInspectionResponse(i *domain.QualityInspection) InspectionResponse {
	return InspectionResponse{
		InspectionID:    i.InspectionID,
		BatchID:         i.BatchID,
		Status:          string(i.Status),
		Grade:           i.Grade,
		Score:           i.Score,
		TestResults:     i.TestResults,
		RejectionReason: i.RejectionReason,
		CompletedAt:     i.CompletedAt,
		DecidedAt:       i.DecidedAt,
		CreatedAt:       i.CreatedAt,
	}
}

// ToInspectionResponses converts a slice of domain.QualityInspection to []InspectionResponse.
func ToInspectionResponses(inspections []domain.QualityInspection) []InspectionResponse {
	responses := make([]InspectionResponse, len(inspections))
	for i, insp := range inspections {
		responses[i] = ToInspectionResponse(&insp)
	}
	return responses
}
