package services

import (
	portsrepo "github.com/Gha-mus/workflu-business-management-sub007/internal/core/ports/repositories"
	portssvc "github.com/Gha-mus/workflu-business-management-sub007/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Audit first since every other service records through it
	container.Audit = NewAuditService(repos.AuditRepo)

	container.Batch = NewBatchService(repos.BatchRepo, container.Audit)
	container.Inspection = NewInspectionService(repos.InspectionRepo, repos.BatchRepo, container.Audit)
	container.Stock = NewStockService(repos.StockRepo, repos.SaleRepo, repos.InspectionRepo, container.Audit)

	return container
}
