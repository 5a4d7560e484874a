package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// QualityInspection is the persistence model for a batch quality inspection.
type QualityInspection struct {
	InspectionID    string           `json:"inspectionID"`
	BatchID         string           `json:"batchID"`
	Status          string           `json:"status"`
	Grade           *string          `json:"grade,omitempty"`
	Score           *decimal.Decimal `json:"score,omitempty"`
	TestResults     string           `json:"testResults"`
	RejectionReason *string          `json:"rejectionReason,omitempty"`
	CompletedAt     *time.Time       `json:"completedAt,omitempty"`
	DecidedAt       *time.Time       `json:"decidedAt,omitempty"`
	AuditFields
}
