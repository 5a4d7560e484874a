package pgsql

import (
	portsrepo "github.com/Gha-mus/workflu-business-management-sub007/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		StockRepo:      newPgxStockRepository(dbPool),
		BatchRepo:      newPgxBatchRepository(dbPool),
		InspectionRepo: newPgxInspectionRepository(dbPool),
		AuditRepo:      newPgxAuditRepository(dbPool),
		SaleRepo:       newPgxSaleRepository(dbPool),
	}
}
