package services

import (
	"context"

	"github.com/fixhub-app/fixhub_backend/internal/core/domain"
)

// AccountSvcFacade provides read access to the chart of accounts.
type AccountSvcFacade interface {
	GetAccountByCode(ctx context.Context, code string) (*domain.Account, error)
	GetAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error)
	ListAccounts(ctx context.Context) ([]domain.Account, error)
}
