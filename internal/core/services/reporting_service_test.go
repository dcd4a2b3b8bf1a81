package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fixhub-app/fixhub_backend/internal/core/domain"
	portsrepo "github.com/fixhub-app/fixhub_backend/internal/core/ports/repositories"
	"github.com/fixhub-app/fixhub_backend/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepositoryFacade = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) CashBalance(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockReportingRepository) AccountBalance(ctx context.Context, code string) (decimal.Decimal, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockReportingRepository) TotalRevenue(ctx context.Context, from, to *time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockReportingRepository) TotalExpenses(ctx context.Context, from, to *time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockReportingRepository) GetTrialBalanceData(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrialBalanceRow), args.Error(1)
}

func (m *MockReportingRepository) GetProfitAndLossData(ctx context.Context, from, to time.Time) ([]domain.AccountAmount, []domain.AccountAmount, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.AccountAmount), args.Get(1).([]domain.AccountAmount), args.Error(2)
}

func TestReportingService_AccountsReceivable(t *testing.T) {
	mockRepo := new(MockReportingRepository)
	svc := services.NewReportingService(mockRepo)
	ctx := context.Background()

	mockRepo.On("AccountBalance", ctx, domain.CodeReceivables).Return(decimal.NewFromInt(420), nil).Once()

	balance, err := svc.AccountsReceivable(ctx)

	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(420)))
	mockRepo.AssertExpectations(t)
}

func TestReportingService_CashBalance_Error(t *testing.T) {
	mockRepo := new(MockReportingRepository)
	svc := services.NewReportingService(mockRepo)
	ctx := context.Background()

	repoErr := errors.New("connection lost")
	mockRepo.On("CashBalance", ctx).Return(decimal.Zero, repoErr).Once()

	_, err := svc.CashBalance(ctx)

	require.Error(t, err)
	assert.ErrorIs(t, err, repoErr)
}

func TestReportingService_ProfitAndLoss(t *testing.T) {
	mockRepo := new(MockReportingRepository)
	svc := services.NewReportingService(mockRepo)
	ctx := context.Background()

	from := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC)

	revenue := []domain.AccountAmount{
		{AccountCode: domain.CodeSales, Name: "Service Revenue", NetAmount: decimal.NewFromInt(1000)},
	}
	expenses := []domain.AccountAmount{
		{AccountCode: domain.CodeOpex, Name: "Operating Expenses", NetAmount: decimal.NewFromInt(300)},
		{AccountCode: domain.CodeCardFees, Name: "Card Processing Fees", NetAmount: decimal.NewFromInt(25)},
	}
	mockRepo.On("GetProfitAndLossData", ctx, from, to).Return(revenue, expenses, nil).Once()

	report, err := svc.ProfitAndLoss(ctx, from, to)

	require.NoError(t, err)
	require.NotNil(t, report)
	assert.Len(t, report.Revenue, 1)
	assert.Len(t, report.Expenses, 2)
	// 1000 - (300 + 25)
	assert.True(t, report.NetProfit.Equal(decimal.NewFromInt(675)))
}

func TestReportingService_TotalRevenue_PassesWindow(t *testing.T) {
	mockRepo := new(MockReportingRepository)
	svc := services.NewReportingService(mockRepo)
	ctx := context.Background()

	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	mockRepo.On("TotalRevenue", ctx, &from, (*time.Time)(nil)).Return(decimal.NewFromInt(50), nil).Once()

	total, err := svc.TotalRevenue(ctx, &from, nil)

	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(50)))
	mockRepo.AssertExpectations(t)
}
