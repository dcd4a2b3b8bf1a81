package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/fixhub-app/fixhub_backend/internal/apperrors"
	"github.com/fixhub-app/fixhub_backend/internal/core/domain"
	portsrepo "github.com/fixhub-app/fixhub_backend/internal/core/ports/repositories"
	portssvc "github.com/fixhub-app/fixhub_backend/internal/core/ports/services"
	"github.com/fixhub-app/fixhub_backend/internal/middleware"
)

// accountService provides read access to the chart of accounts. The chart is
// provisioned once at bootstrap and never mutated at runtime, so this service
// exposes lookups only.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// GetAccountByCode resolves a single account code.
func (s *accountService) GetAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find account by code", slog.String("code", code), slog.String("error", err.Error()))
		}
		return nil, fmt.Errorf("failed to find account %s: %w", code, err)
	}
	return account, nil
}

// GetAccountsByCodes resolves a set of account codes. Missing codes are
// absent from the returned map; callers decide whether that is an error.
func (s *accountService) GetAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error) {
	accounts, err := s.accountRepo.FindAccountsByCodes(ctx, codes)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to find accounts by codes", slog.Int("count", len(codes)), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to find accounts: %w", err)
	}
	return accounts, nil
}

// ListAccounts returns the full chart of accounts.
func (s *accountService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list accounts", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}
