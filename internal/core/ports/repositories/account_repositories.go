package repositories

import (
	"context"

	"github.com/fixhub-app/fixhub_backend/internal/core/domain"
)

// AccountRepositoryFacade provides read access to the chart of accounts.
// The chart is reference data: no mutation methods are exposed to the core.
type AccountRepositoryFacade interface {
	// FindAccountByCode returns the account with the given code, or
	// apperrors.ErrNotFound if the code is unset.
	FindAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// FindAccountsByCodes returns the accounts for the given codes keyed by
	// code. Missing codes are simply absent from the map.
	FindAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error)

	// ListAccounts returns the full chart of accounts.
	ListAccounts(ctx context.Context) ([]domain.Account, error)
}
