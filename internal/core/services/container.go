package services

import (
	portsrepo "github.com/fixhub-app/fixhub_backend/internal/core/ports/repositories"
	portssvc "github.com/fixhub-app/fixhub_backend/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(repos.AccountRepo)
	container.Ledger = NewLedgerService(repos.LedgerRepo, container.Account)
	container.Billing = NewBillingService(repos.InvoiceRepo, repos.PaymentRepo, container.Account, container.Ledger)
	container.Reporting = NewReportingService(repos.ReportingRepo)

	return container
}
