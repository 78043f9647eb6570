package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Rate         RateResolverSvc
	Invoice      InvoiceSvcFacade
	Payment      PaymentSvcFacade
	Statement    StatementSvcFacade
	FlightCharge FlightChargeSvcFacade
	Membership   MembershipSvcFacade
	User         UserSvcFacade
	Auth         AuthSvcFacade
}
