package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Gha-mus/workflu-business-management-sub007/internal/apperrors"
	"github.com/Gha-mus/workflu-business-management-sub007/internal/core/domain"
	portsrepo "github.com/Gha-mus/workflu-business-management-sub007/internal/core/ports/repositories"
	"github.com/Gha-mus/workflu-business-management-sub007/internal/models"
	"github.com/Gha-mus/workflu-business-management-sub007/internal/utils/mapping"
)

type PgxInspectionRepository struct {
	BaseRepository
}

// newPgxInspectionRepository creates a new repository for quality inspections.
func newPgxInspectionRepository(pool *pgxpool.Pool) portsrepo.InspectionRepositoryFacade {
	return &PgxInspectionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.InspectionRepositoryFacade = (*PgxInspectionRepository)(nil)

const inspectionColumns = `inspection_id, batch_id, status, grade, score, test_results,
	rejection_reason, completed_at, decided_at,
	created_at, created_by, last_updated_at, last_updated_by`

func scanInspectionRow(row pgx.Row) (models.QualityInspection, error) {
	var m models.QualityInspection
	err := row.Scan(
		&m.InspectionID,
		&m.BatchID,
		&m.Status,
		&m.Grade,
		&m.Score,
		&m.TestResults,
		&m.RejectionReason,
		&m.CompletedAt,
		&m.DecidedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindInspectionByID retrieves an inspection by its ID.
func (r *PgxInspectionRepository) FindInspectionByID(ctx context.Context, inspectionID string) (*domain.QualityInspection, error) {
	query := `SELECT ` + inspectionColumns + ` FROM quality_inspections WHERE inspection_id = $1;`

	m, err := scanInspectionRow(r.Pool.QueryRow(ctx, query, inspectionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find inspection by ID "+inspectionID, err)
	}

	inspection := mapping.ToDomainQualityInspection(m)
	return &inspection, nil
}

// FindInspectionByIDForUpdate retrieves an inspection and locks its row for
// the duration of tx. Must be called within a transaction.
func (r *PgxInspectionRepository) FindInspectionByIDForUpdate(ctx context.Context, tx pgx.Tx, inspectionID string) (*domain.QualityInspection, error) {
	query := `SELECT ` + inspectionColumns + ` FROM quality_inspections WHERE inspection_id = $1 FOR UPDATE;`

	m, err := scanInspectionRow(tx.QueryRow(ctx, query, inspectionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to lock inspection "+inspectionID, err)
	}

	inspection := mapping.ToDomainQualityInspection(m)
	return &inspection, nil
}

// SaveInspectionInTx inserts a new inspection within the caller's transaction.
func (r *PgxInspectionRepository) SaveInspectionInTx(ctx context.Context, tx pgx.Tx, inspection domain.QualityInspection) error {
	m := mapping.ToModelQualityInspection(inspection)
	query := `
		INSERT INTO quality_inspections (` + inspectionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := tx.Exec(ctx, query,
		m.InspectionID,
		m.BatchID,
		m.Status,
		m.Grade,
		m.Score,
		m.TestResults,
		m.RejectionReason,
		m.CompletedAt,
		m.DecidedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert inspection "+m.InspectionID, err)
	}
	return nil
}

// UpdateInspectionInTx persists an inspection's mutable fields within the
// caller's transaction.
func (r *PgxInspectionRepository) UpdateInspectionInTx(ctx context.Context, tx pgx.Tx, inspection domain.QualityInspection) error {
	m := mapping.ToModelQualityInspection(inspection)
	query := `
		UPDATE quality_inspections
		SET status = $2, grade = $3, score = $4, test_results = $5, rejection_reason = $6,
		    completed_at = $7, decided_at = $8, last_updated_at = $9, last_updated_by = $10
		WHERE inspection_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		m.InspectionID,
		m.Status,
		m.Grade,
		m.Score,
		m.TestResults,
		m.RejectionReason,
		m.CompletedAt,
		m.DecidedAt,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update inspection "+m.InspectionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ListInspectionsByBatch retrieves a batch's inspections, newest first.
func (r *PgxInspectionRepository) ListInspectionsByBatch(ctx context.Context, batchID string) ([]domain.QualityInspection, error) {
	query := `SELECT ` + inspectionColumns + ` FROM quality_inspections WHERE batch_id = $1 ORDER BY created_at DESC;`

	rows, err := r.Pool.Query(ctx, query, batchID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query inspections for batch "+batchID, err)
	}
	defer rows.Close()

	inspections := []domain.QualityInspection{}
	for rows.Next() {
		m, err := scanInspectionRow(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan inspection row", err)
		}
		inspections = append(inspections, mapping.ToDomainQualityInspection(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating inspection rows", err)
	}
	return inspections, nil
}
