package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	InvoiceRepo    InvoiceRepositoryFacade
	PaymentRepo    PaymentRepositoryFacade
	CreditNoteRepo CreditNoteRepositoryFacade
	RateRepo       RateRepositoryFacade
	FlightRepo     FlightRepositoryFacade
	MembershipRepo MembershipRepositoryFacade
	UserRepo       UserRepositoryFacade
}
