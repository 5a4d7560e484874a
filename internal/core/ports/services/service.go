package services

// ServiceContainer holds instances of all the engine services. This is the
// main entry point for accessing service functionality and is used
// throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Stock      StockSvcFacade
	Batch      BatchSvcFacade
	Inspection InspectionSvcFacade
	Audit      AuditSvcFacade
}
