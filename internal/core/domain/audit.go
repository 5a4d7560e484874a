package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// AuditAction is the kind of business mutation an audit entry records.
type AuditAction string

const (
	ActionStockIntake        AuditAction = "STOCK_INTAKE"
	ActionStockConsume       AuditAction = "STOCK_CONSUME"
	ActionStockTransfer      AuditAction = "STOCK_TRANSFER"
	ActionStockFilter        AuditAction = "STOCK_FILTER"
	ActionGradeAssign        AuditAction = "GRADE_ASSIGN"
	ActionBatchSplit         AuditAction = "BATCH_SPLIT"
	ActionBatchMerge         AuditAction = "BATCH_MERGE"
	ActionInspectionCreate   AuditAction = "INSPECTION_CREATE"
	ActionInspectionComplete AuditAction = "INSPECTION_COMPLETE"
	ActionInspectionApprove  AuditAction = "INSPECTION_APPROVE"
	ActionInspectionReject   AuditAction = "INSPECTION_REJECT"
)

// AuditLogEntry is an immutable record of one business mutation, written as
// the final step of the mutation's transaction and never updated or deleted.
// FinancialImpact is signed: positive for inflows, negative for outflows.
type AuditLogEntry struct {
	AuditID         string          `json:"auditID"`
	Action          AuditAction     `json:"action"`
	EntityType      string          `json:"entityType"`
	EntityID        string          `json:"entityID"`
	Before          *string         `json:"before,omitempty"` // canonical snapshot, nil on create
	After           *string         `json:"after,omitempty"`  // canonical snapshot, nil on delete
	ChangedFields   []string        `json:"changedFields"`
	FinancialImpact decimal.Decimal `json:"financialImpact"`
	CurrencyCode    string          `json:"currencyCode"`
	ActorID         string          `json:"actorID"`
	CorrelationID   string          `json:"correlationID"` // groups multi-step operations
	Checksum        string          `json:"checksum"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// checksumTimeFormat pins the timestamp rendering so the checksum input is
// byte-stable across processes and time zones. Precision is capped at
// microseconds because created_at is a TIMESTAMPTZ column: sub-microsecond
// digits would not survive the persistence round-trip.
const checksumTimeFormat = "2006-01-02T15:04:05.000000Z07:00"

// ComputeChecksum hashes the semantically significant fields in a fixed
// order. Fields outside this list (correlation id, changed-field list) may
// legitimately be rewritten by migrations and are excluded.
func (e AuditLogEntry) ComputeChecksum() string {
	before := ""
	if e.Before != nil {
		before = *e.Before
	}
	after := ""
	if e.After != nil {
		after = *e.After
	}
	payload := strings.Join([]string{
		string(e.Action),
		e.EntityType,
		e.EntityID,
		before,
		after,
		e.ActorID,
		e.CreatedAt.UTC().Truncate(time.Microsecond).Format(checksumTimeFormat),
	}, "|")
	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])
}

// VerifyChecksum recomputes the checksum from the stored fields and compares
// it to the stored value. A mismatch means the entry or its referenced data
// was altered outside the ledger's write path.
func (e AuditLogEntry) VerifyChecksum() bool {
	return e.Checksum == e.ComputeChecksum()
}
