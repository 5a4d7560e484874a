package repositories

// RepositoryProvider bundles the concrete repositories handed to the service
// layer at wiring time.
type RepositoryProvider struct {
	StockRepo      StockRepositoryFacade
	BatchRepo      BatchRepositoryFacade
	InspectionRepo InspectionRepositoryFacade
	AuditRepo      AuditRepositoryFacade
	SaleRepo       SaleRepositoryFacade
}
