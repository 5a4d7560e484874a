package mapping

import (
	"github.com/Gha-mus/workflu-business-management-sub007/internal/core/domain"
	"github.com/Gha-mus/workflu-business-management-sub007/internal/models"
)

// ToModelAuditLogEntry converts a domain audit entry to its persistence model.
func ToModelAuditLogEntry(d domain.AuditLogEntry) models.AuditLogEntry {
	return models.AuditLogEntry{
		AuditID:         d.AuditID,
		Action:          string(d.Action),
		EntityType:      d.EntityType,
		EntityID:        d.EntityID,
		Before:          d.Before,
		After:           d.After,
		ChangedFields:   d.ChangedFields,
		FinancialImpact: d.FinancialImpact,
		CurrencyCode:    d.CurrencyCode,
		ActorID:         d.ActorID,
		CorrelationID:   d.CorrelationID,
		Checksum:        d.Checksum,
		CreatedAt:       d.CreatedAt,
	}
}

// ToDomainAuditLogEntry converts a persistence model to a domain audit entry.
func ToDomainAuditLogEntry(m models.AuditLogEntry) domain.AuditLogEntry {
	return domain.AuditLogEntry{
		AuditID:         m.AuditID,
		Action:          domain.AuditAction(m.Action),
		EntityType:      m.EntityType,
		EntityID:        m.EntityID,
		Before:          m.Before,
		After:           m.After,
		ChangedFields:   m.ChangedFields,
		FinancialImpact: m.FinancialImpact,
		CurrencyCode:    m.CurrencyCode,
		ActorID:         m.ActorID,
		CorrelationID:   m.CorrelationID,
		Checksum:        m.Checksum,
		CreatedAt:       m.CreatedAt,
	}
}

// ToDomainAuditLogEntrySlice converts a slice of models to domain entries.
func ToDomainAuditLogEntrySlice(ms []models.AuditLogEntry) []domain.AuditLogEntry {
	out := make([]domain.AuditLogEntry, len(ms))
	for i, m := range ms {
		out[i] = ToDomainAuditLogEntry(m)
	}
	return out
}
