package services

import (
	"context"
	"time"

	"github.com/Gha-mus/workflu-business-management-sub007/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AuditRecordParams describes one mutation to be recorded in the ledger.
// Before/After are the entity snapshots; nil Before means creation.
type AuditRecordParams struct {
	Action          domain.AuditAction
	EntityType      string
	EntityID        string
	Before          any
	After           any
	ChangedFields   []string
	FinancialImpact decimal.Decimal
	CurrencyCode    string
	ActorID         string
	CorrelationID   string
}

// AuditSvcFacade owns the tamper-evident audit ledger.
type AuditSvcFacade interface {
	// RecordInTx writes one audit entry as the final step of the caller's
	// transaction. It never returns an error: an audit write failure degrades
	// observability, not availability, and is logged with full context.
	RecordInTx(ctx context.Context, tx pgx.Tx, params AuditRecordParams)

	// VerifyEntry recomputes the checksum of a stored entry and reports
	// whether it matches.
	VerifyEntry(ctx context.Context, auditID string) (*domain.AuditLogEntry, bool, error)

	GetEntryByID(ctx context.Context, auditID string) (*domain.AuditLogEntry, error)
	ListEntriesByEntity(ctx context.Context, entityType, entityID string, limit int, nextToken *string) ([]domain.AuditLogEntry, *string, error)
	ListEntriesByActor(ctx context.Context, actorID string, limit int, nextToken *string) ([]domain.AuditLogEntry, *string, error)
	ListEntriesByCorrelation(ctx context.Context, correlationID string) ([]domain.AuditLogEntry, error)
	ListEntriesByDateRange(ctx context.Context, from, to time.Time, limit int, nextToken *string) ([]domain.AuditLogEntry, *string, error)
}
