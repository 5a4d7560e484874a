package services

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	portsrepo "github.com/Gha-mus/workflu-business-management-sub007/internal/core/ports/repositories"
	portssvc "github.com/Gha-mus/workflu-business-management-sub007/internal/core/ports/services"
	"github.com/Gha-mus/workflu-business-management-sub007/internal/core/domain"
	"github.com/Gha-mus/workflu-business-management-sub007/internal/middleware"
)

// ErrAuditWriteFailure marks a failed audit insert. It is logged, never
// propagated: an audit outage must degrade observability, not availability.
// Callers relying on strict audit guarantees watch the log for this signal.
var ErrAuditWriteFailure = errors.New("audit write failure")

// auditService owns the append-only audit ledger and its checksums.
type auditService struct {
	auditRepo portsrepo.AuditRepositoryFacade
}

// NewAuditService creates a new AuditService.
func NewAuditService(auditRepo portsrepo.AuditRepositoryFacade) portssvc.AuditSvcFacade {
	return &auditService{auditRepo: auditRepo}
}

var _ portssvc.AuditSvcFacade = (*auditService)(nil)

// snapshot serializes an entity snapshot into the canonical JSON form used
// both for storage and as checksum input. Snapshots are structs, so the
// field order is deterministic.
func snapshot(v any) (*string, error) {
	if v == nil {
		return nil, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	s := string(raw)
	return &s, nil
}

// RecordInTx writes one audit entry inside the caller's transaction. The
// repository scopes the insert to a savepoint, so a failed insert cannot
// poison the enclosing business transaction. Implements portssvc.AuditSvcFacade.
func (s *auditService) RecordInTx(ctx context.Context, tx pgx.Tx, params portssvc.AuditRecordParams) {
	logger := middleware.GetLoggerFromCtx(ctx)

	before, err := snapshot(params.Before)
	if err != nil {
		s.logWriteFailure(logger, params, err)
		return
	}
	after, err := snapshot(params.After)
	if err != nil {
		s.logWriteFailure(logger, params, err)
		return
	}

	entry := domain.AuditLogEntry{
		AuditID:         uuid.NewString(),
		Action:          params.Action,
		EntityType:      params.EntityType,
		EntityID:        params.EntityID,
		Before:          before,
		After:           after,
		ChangedFields:   params.ChangedFields,
		FinancialImpact: params.FinancialImpact,
		CurrencyCode:    params.CurrencyCode,
		ActorID:         params.ActorID,
		CorrelationID:   params.CorrelationID,
		// Truncated to the store's timestamp precision so the checksum still
		// verifies after a read-back.
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
	entry.Checksum = entry.ComputeChecksum()

	if err := s.auditRepo.SaveEntryInTx(ctx, tx, entry); err != nil {
		s.logWriteFailure(logger, params, err)
	}
}

func (s *auditService) logWriteFailure(logger *slog.Logger, params portssvc.AuditRecordParams, err error) {
	logger.Error(ErrAuditWriteFailure.Error(),
		slog.String("action", string(params.Action)),
		slog.String("entity_type", params.EntityType),
		slog.String("entity_id", params.EntityID),
		slog.String("actor_id", params.ActorID),
		slog.String("correlation_id", params.CorrelationID),
		slog.String("error", err.Error()),
	)
}

// VerifyEntry recomputes the checksum from the stored fields and compares.
// A mismatch means the entry was altered outside the ledger's write path.
func (s *auditService) VerifyEntry(ctx context.Context, auditID string) (*domain.AuditLogEntry, bool, error) {
	entry, err := s.auditRepo.FindEntryByID(ctx, auditID)
	if err != nil {
		return nil, false, err
	}
	return entry, entry.VerifyChecksum(), nil
}

// GetEntryByID retrieves a single audit entry.
func (s *auditService) GetEntryByID(ctx context.Context, auditID string) (*domain.AuditLogEntry, error) {
	return s.auditRepo.FindEntryByID(ctx, auditID)
}

// ListEntriesByEntity lists entries for one entity, newest first.
func (s *auditService) ListEntriesByEntity(ctx context.Context, entityType, entityID string, limit int, nextToken *string) ([]domain.AuditLogEntry, *string, error) {
	return s.auditRepo.ListEntriesByEntity(ctx, entityType, entityID, limit, nextToken)
}

// ListEntriesByActor lists entries recorded for one actor, newest first.
func (s *auditService) ListEntriesByActor(ctx context.Context, actorID string, limit int, nextToken *string) ([]domain.AuditLogEntry, *string, error) {
	return s.auditRepo.ListEntriesByActor(ctx, actorID, limit, nextToken)
}

// ListEntriesByCorrelation lists all entries of one multi-step operation.
func (s *auditService) ListEntriesByCorrelation(ctx context.Context, correlationID string) ([]domain.AuditLogEntry, error) {
	return s.auditRepo.ListEntriesByCorrelation(ctx, correlationID)
}

// ListEntriesByDateRange lists entries created within [from, to).
func (s *auditService) ListEntriesByDateRange(ctx context.Context, from, to time.Time, limit int, nextToken *string) ([]domain.AuditLogEntry, *string, error) {
	return s.auditRepo.ListEntriesByDateRange(ctx, from, to, limit, nextToken)
}
