package repositories

import (
	"context"
	"time"

	"github.com/Gha-mus/workflu-business-management-sub007/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// AuditRepositoryFacade persists the append-only audit ledger. Entries are
// inserted exactly once; there are no update or delete methods on purpose.
type AuditRepositoryFacade interface {
	// SaveEntryInTx inserts the entry inside the caller's transaction, scoped
	// to a savepoint: a failed insert rolls back only the savepoint, leaving
	// the enclosing business transaction committable.
	SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.AuditLogEntry) error

	FindEntryByID(ctx context.Context, auditID string) (*domain.AuditLogEntry, error)
	ListEntriesByEntity(ctx context.Context, entityType, entityID string, limit int, nextToken *string) ([]domain.AuditLogEntry, *string, error)
	ListEntriesByActor(ctx context.Context, actorID string, limit int, nextToken *string) ([]domain.AuditLogEntry, *string, error)
	ListEntriesByCorrelation(ctx context.Context, correlationID string) ([]domain.AuditLogEntry, error)
	ListEntriesByDateRange(ctx context.Context, from, to time.Time, limit int, nextToken *string) ([]domain.AuditLogEntry, *string, error)
}
