package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Gha-mus/workflu-business-management-sub007/internal/apperrors"
	"github.com/Gha-mus/workflu-business-management-sub007/internal/core/domain"
	portsrepo "github.com/Gha-mus/workflu-business-management-sub007/internal/core/ports/repositories"
	"github.com/Gha-mus/workflu-business-management-sub007/internal/models"
	"github.com/Gha-mus/workflu-business-management-sub007/internal/utils/mapping"
	"github.com/Gha-mus/workflu-business-management-sub007/internal/utils/pagination"
)

type PgxAuditRepository struct {
	BaseRepository
}

// newPgxAuditRepository creates a new repository for the audit ledger.
func newPgxAuditRepository(pool *pgxpool.Pool) portsrepo.AuditRepositoryFacade {
	return &PgxAuditRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AuditRepositoryFacade = (*PgxAuditRepository)(nil)

const auditColumns = `audit_id, action, entity_type, entity_id, before_snapshot, after_snapshot,
	changed_fields, financial_impact, currency_code, actor_id, correlation_id, checksum, created_at`

func scanAuditRow(row pgx.Row) (models.AuditLogEntry, error) {
	var m models.AuditLogEntry
	err := row.Scan(
		&m.AuditID,
		&m.Action,
		&m.EntityType,
		&m.EntityID,
		&m.Before,
		&m.After,
		&m.ChangedFields,
		&m.FinancialImpact,
		&m.CurrencyCode,
		&m.ActorID,
		&m.CorrelationID,
		&m.Checksum,
		&m.CreatedAt,
	)
	return m, err
}

// SaveEntryInTx inserts one ledger entry inside the caller's transaction,
// scoped to a savepoint via a nested transaction. A failed insert rolls back
// only the savepoint, so the enclosing business transaction stays
// committable.
func (r *PgxAuditRepository) SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.AuditLogEntry) error {
	nested, err := tx.Begin(ctx)
	if err != nil {
		return apperrors.NewAppError(500, "failed to open audit savepoint", err)
	}

	m := mapping.ToModelAuditLogEntry(entry)
	query := `
		INSERT INTO audit_log (` + auditColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err = nested.Exec(ctx, query,
		m.AuditID,
		m.Action,
		m.EntityType,
		m.EntityID,
		m.Before,
		m.After,
		m.ChangedFields,
		m.FinancialImpact,
		m.CurrencyCode,
		m.ActorID,
		m.CorrelationID,
		m.Checksum,
		m.CreatedAt,
	)
	if err != nil {
		_ = nested.Rollback(ctx)
		return apperrors.NewAppError(500, "failed to insert audit entry "+m.AuditID, err)
	}

	if err := nested.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to release audit savepoint", err)
	}
	return nil
}

// FindEntryByID retrieves a single ledger entry.
func (r *PgxAuditRepository) FindEntryByID(ctx context.Context, auditID string) (*domain.AuditLogEntry, error) {
	query := `SELECT ` + auditColumns + ` FROM audit_log WHERE audit_id = $1;`

	m, err := scanAuditRow(r.Pool.QueryRow(ctx, query, auditID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find audit entry by ID "+auditID, err)
	}

	entry := mapping.ToDomainAuditLogEntry(m)
	return &entry, nil
}

// listEntries runs a filtered, token-paginated ledger query, newest first.
// whereClause uses placeholders starting at $1 matching filterArgs.
func (r *PgxAuditRepository) listEntries(ctx context.Context, whereClause string, filterArgs []interface{}, limit int, nextToken *string) ([]domain.AuditLogEntry, *string, error) {
	if limit <= 0 {
		limit = 50
	}
	fetchLimit := limit + 1

	query := `SELECT ` + auditColumns + ` FROM audit_log WHERE ` + whereClause
	args := filterArgs

	if nextToken != nil && *nextToken != "" {
		fields, err := pagination.DecodeMultiFieldToken(*nextToken)
		if err != nil || len(fields) != 2 {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", err)
		}
		lastCreatedAt, err := time.Parse(time.RFC3339Nano, fields[0])
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", err)
		}
		args = append(args, lastCreatedAt, fields[1])
		query += ` AND (created_at, audit_id) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}

	args = append(args, fetchLimit)
	query += ` ORDER BY created_at DESC, audit_id DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query audit entries", err)
	}
	defer rows.Close()

	entryModels := []models.AuditLogEntry{}
	for rows.Next() {
		m, err := scanAuditRow(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan audit row", err)
		}
		entryModels = append(entryModels, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating audit rows", err)
	}

	var newNextToken *string
	if len(entryModels) > limit {
		last := entryModels[limit-1]
		token := pagination.EncodeMultiFieldToken(last.CreatedAt.Format(time.RFC3339Nano), last.AuditID)
		newNextToken = &token
		entryModels = entryModels[:limit]
	}

	return mapping.ToDomainAuditLogEntrySlice(entryModels), newNextToken, nil
}

// ListEntriesByEntity lists one entity's entries, newest first.
func (r *PgxAuditRepository) ListEntriesByEntity(ctx context.Context, entityType, entityID string, limit int, nextToken *string) ([]domain.AuditLogEntry, *string, error) {
	return r.listEntries(ctx, `entity_type = $1 AND entity_id = $2`, []interface{}{entityType, entityID}, limit, nextToken)
}

// ListEntriesByActor lists one actor's entries, newest first.
func (r *PgxAuditRepository) ListEntriesByActor(ctx context.Context, actorID string, limit int, nextToken *string) ([]domain.AuditLogEntry, *string, error) {
	return r.listEntries(ctx, `actor_id = $1`, []interface{}{actorID}, limit, nextToken)
}

// ListEntriesByCorrelation retrieves all entries of one multi-step operation
// in insertion order. Correlated sets are small, so no pagination.
func (r *PgxAuditRepository) ListEntriesByCorrelation(ctx context.Context, correlationID string) ([]domain.AuditLogEntry, error) {
	query := `SELECT ` + auditColumns + ` FROM audit_log WHERE correlation_id = $1 ORDER BY created_at, audit_id;`

	rows, err := r.Pool.Query(ctx, query, correlationID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query audit entries for correlation "+correlationID, err)
	}
	defer rows.Close()

	entryModels := []models.AuditLogEntry{}
	for rows.Next() {
		m, err := scanAuditRow(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan audit row", err)
		}
		entryModels = append(entryModels, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating audit rows", err)
	}
	return mapping.ToDomainAuditLogEntrySlice(entryModels), nil
}

// ListEntriesByDateRange lists entries created within [from, to), newest first.
func (r *PgxAuditRepository) ListEntriesByDateRange(ctx context.Context, from, to time.Time, limit int, nextToken *string) ([]domain.AuditLogEntry, *string, error) {
	return r.listEntries(ctx, `created_at >= $1 AND created_at < $2`, []interface{}{from, to}, limit, nextToken)
}
