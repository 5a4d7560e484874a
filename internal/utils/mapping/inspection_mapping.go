package mapping

import (
	"github.com/Gha-mus/workflu-business-management-sub007/internal/core/domain"
	"github.com/Gha-mus/workflu-business-management-sub007/internal/models"
)

// ToModelQualityInspection converts a domain inspection to its persistence model.
func ToModelQualityInspection(d domain.QualityInspection) models.QualityInspection {
	return models.QualityInspection{
		InspectionID:    d.InspectionID,
		BatchID:         d.BatchID,
		Status:          string(d.Status),
		Grade:           d.Grade,
		Score:           d.Score,
		TestResults:     d.TestResults,
		RejectionReason: d.RejectionReason,
		CompletedAt:     d.CompletedAt,
		DecidedAt:       d.DecidedAt,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainQualityInspection converts a persistence model to a domain inspection.
func ToDomainQualityInspection(m models.QualityInspection) domain.QualityInspection {
	return domain.QualityInspection{
		InspectionID:    m.InspectionID,
		BatchID:         m.BatchID,
		Status:          domain.InspectionStatus(m.Status),
		Grade:           m.Grade,
		Score:           m.Score,
		TestResults:     m.TestResults,
		RejectionReason: m.RejectionReason,
		CompletedAt:     m.CompletedAt,
		DecidedAt:       m.DecidedAt,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}
