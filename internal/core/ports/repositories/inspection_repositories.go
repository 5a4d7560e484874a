package repositories

import (
	"context"

	"github.com/Gha-mus/workflu-business-management-sub007/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// InspectionRepositoryFacade persists quality inspections.
type InspectionRepositoryFacade interface {
	TxManager

	FindInspectionByID(ctx context.Context, inspectionID string) (*domain.QualityInspection, error)
	FindInspectionByIDForUpdate(ctx context.Context, tx pgx.Tx, inspectionID string) (*domain.QualityInspection, error)
	SaveInspectionInTx(ctx context.Context, tx pgx.Tx, inspection domain.QualityInspection) error
	UpdateInspectionInTx(ctx context.Context, tx pgx.Tx, inspection domain.QualityInspection) error
	ListInspectionsByBatch(ctx context.Context, batchID string) ([]domain.QualityInspection, error)
}
