package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InspectionStatus is the lifecycle state of a quality inspection.
// pending -> completed -> approved | rejected; the last two are terminal.
type InspectionStatus string

const (
	InspectionPending   InspectionStatus = "PENDING"
	InspectionCompleted InspectionStatus = "COMPLETED"
	InspectionApproved  InspectionStatus = "APPROVED"
	InspectionRejected  InspectionStatus = "REJECTED"
)

// Terminal reports whether no further transition is allowed from s.
func (s InspectionStatus) Terminal() bool {
	return s == InspectionApproved || s == InspectionRejected
}

// QualityInspection records the quality assessment of a batch. Grade and
// score are written exclusively by the completion operation; approval makes
// the grade eligible for assignment to stock lots through the separate,
// audited assign-grade operation.
type QualityInspection struct {
	InspectionID    string           `json:"inspectionID"`
	BatchID         string           `json:"batchID"`
	Status          InspectionStatus `json:"status"`
	Grade           *string          `json:"grade,omitempty"`
	Score           *decimal.Decimal `json:"score,omitempty"`
	TestResults     string           `json:"testResults"` // free-form notes from the lab
	RejectionReason *string          `json:"rejectionReason,omitempty"`
	CompletedAt     *time.Time       `json:"completedAt,omitempty"`
	DecidedAt       *time.Time       `json:"decidedAt,omitempty"`
	AuditFields
}
