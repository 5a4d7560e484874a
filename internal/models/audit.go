package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuditLogEntry is the persistence model for one row of the append-only
// audit ledger. Rows are inserted once and never updated or deleted.
type AuditLogEntry struct {
	AuditID         string          `json:"auditID"`
	Action          string          `json:"action"`
	EntityType      string          `json:"entityType"`
	EntityID        string          `json:"entityID"`
	Before          *string         `json:"before,omitempty"`
	After           *string         `json:"after,omitempty"`
	ChangedFields   []string        `json:"changedFields"`
	FinancialImpact decimal.Decimal `json:"financialImpact"`
	CurrencyCode    string          `json:"currencyCode"`
	ActorID         string          `json:"actorID"`
	CorrelationID   string          `json:"correlationID"`
	Checksum        string          `json:"checksum"`
	CreatedAt       time.Time       `json:"createdAt"`
}
