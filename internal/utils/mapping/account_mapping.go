package mapping

import (
	"github.com/fixhub-app/fixhub_backend/internal/core/domain"
	"github.com/fixhub-app/fixhub_backend/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		Code:        d.Code,
		Name:        d.Name,
		AccountType: models.AccountType(d.AccountType),
		IsCashLike:  d.IsCashLike,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		Code:        m.Code,
		Name:        m.Name,
		AccountType: domain.AccountType(m.AccountType),
		IsCashLike:  m.IsCashLike,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
