package services

import (
	"context"

	"github.com/Gha-mus/workflu-business-management-sub007/internal/core/domain"
	"github.com/shopspring/decimal"
)

// InspectionSvcFacade drives the quality inspection workflow:
// pending -> completed -> approved | rejected.
type InspectionSvcFacade interface {
	CreateInspection(ctx context.Context, batchID string, actorID string) (*domain.QualityInspection, error)

	// CompleteInspection is the only operation permitted to write a grade and
	// score. Callable from PENDING only.
	CompleteInspection(ctx context.Context, inspectionID, grade string, score decimal.Decimal, testResults string, actorID string) (*domain.QualityInspection, error)

	// ApproveInspection and RejectInspection are terminal and mutually
	// exclusive; both are callable from COMPLETED only.
	ApproveInspection(ctx context.Context, inspectionID string, actorID string) (*domain.QualityInspection, error)
	RejectInspection(ctx context.Context, inspectionID, reason string, actorID string) (*domain.QualityInspection, error)

	GetInspectionByID(ctx context.Context, inspectionID string) (*domain.QualityInspection, error)
	ListInspectionsByBatch(ctx context.Context, batchID string) ([]domain.QualityInspection, error)
}
