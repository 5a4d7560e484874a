package dto

import (
	"time"

	"github.com/Gha-mus/workflu-business-management-sub007/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AuditEntryResponse defines the data returned for one ledger entry.
type AuditEntryResponse struct {
	AuditID         string          `json:"auditID"`
	Action          string          `json:"action"`
	EntityType      string          `json:"entityType"`
	EntityID        string          `json:"entityID"`
	Before          *string         `json:"before,omitempty"`
	After           *string         `json:"after,omitempty"`
	ChangedFields   []string        `json:"changedFields,omitempty"`
	FinancialImpact decimal.Decimal `json:"financialImpact"`
	CurrencyCode    string          `json:"currencyCode,omitempty"`
	ActorID         string          `json:"actorID"`
	CorrelationID   string          `json:"correlationID"`
	Checksum        string          `json:"checksum"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// ListAuditEntriesResponse is a paginated ledger listing.
type ListAuditEntriesResponse struct {
	Entries   []AuditEntryResponse `json:"entries"`
	NextToken *string              `json:"nextToken,omitempty"`
}

// VerifyAuditEntryResponse reports the result of a checksum verification.
type VerifyAuditEntryResponse struct {
	Entry AuditEntryResponse `json:"entry"`
	Valid bool               `json:"valid"`
}

// ToAuditEntryResponse converts a domain.AuditLogEntry to AuditEntryResponse DTO.
func ToAuditEntryResponse(e *domain.AuditLogEntry) AuditEntryResponse {
	return AuditEntryResponse{
		AuditID:         e.AuditID,
		Action:          string(e.Action),
		EntityType:      e.EntityType,
		EntityID:        e.EntityID,
		Before:          e.Before,
		After:           e.After,
		ChangedFields:   e.ChangedFields,
		FinancialImpact: e.FinancialImpact,
		CurrencyCode:    e.CurrencyCode,
		ActorID:         e.ActorID,
		CorrelationID:   e.CorrelationID,
		Checksum:        e.Checksum,
		CreatedAt:       e.CreatedAt,
	}
}

// ToAuditEntryResponses converts a slice of domain.AuditLogEntry to []AuditEntryResponse.
func ToAuditEntryResponses(entries []domain.AuditLogEntry) []AuditEntryResponse {
	responses := make([]AuditEntryResponse, len(entries))
	for i, e := range entries {
		responses[i] = ToAuditEntryResponse(&e)
	}
	return responses
}
