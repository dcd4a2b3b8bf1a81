package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/fixhub-app/fixhub_backend/internal/apperrors"
	"github.com/fixhub-app/fixhub_backend/internal/core/domain"
	portsrepo "github.com/fixhub-app/fixhub_backend/internal/core/ports/repositories"
	portssvc "github.com/fixhub-app/fixhub_backend/internal/core/ports/services"
	"github.com/fixhub-app/fixhub_backend/internal/core/services"
	"github.com/fixhub-app/fixhub_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock InvoiceRepository ---
type MockInvoiceRepository struct {
	mock.Mock
}

var _ portsrepo.InvoiceRepositoryFacade = (*MockInvoiceRepository)(nil)

func (m *MockInvoiceRepository) SaveInvoiceWithEntry(ctx context.Context, invoice domain.Invoice, entry domain.LedgerEntry) error {
	args := m.Called(ctx, invoice, entry)
	return args.Error(0)
}

func (m *MockInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindInvoiceByNo(ctx context.Context, invoiceNo string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

// --- Mock PaymentRepository ---
type MockPaymentRepository struct {
	mock.Mock
}

var _ portsrepo.PaymentRepositoryFacade = (*MockPaymentRepository)(nil)

func (m *MockPaymentRepository) SaveCollection(ctx context.Context, payment domain.Payment, entries []domain.LedgerEntry, notes []domain.CashNote) (bool, error) {
	args := m.Called(ctx, payment, entries, notes)
	return args.Bool(0), args.Error(1)
}

func (m *MockPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListPaymentsByInvoiceID(ctx context.Context, invoiceID string) ([]domain.Payment, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

func (m *MockLedgerService) Post(ctx context.Context, req dto.PostEntryRequest, actorID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerService) ReverseEntry(ctx context.Context, entryID string, actorID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, entryID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerService) GetEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerService) GetCashNoteForEntry(ctx context.Context, entryID string) (*domain.CashNote, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashNote), args.Error(1)
}

func (m *MockLedgerService) ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListEntriesResponse), args.Error(1)
}

func (m *MockLedgerService) ListEntriesByReference(ctx context.Context, refType domain.RefType, refID string) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, refType, refID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

// --- Test Suite Setup ---
type BillingServiceTestSuite struct {
	suite.Suite
	mockInvoiceRepo *MockInvoiceRepository
	mockPaymentRepo *MockPaymentRepository
	mockAccountSvc  *MockAccountService
	mockLedgerSvc   *MockLedgerService
	service         portssvc.BillingSvcFacade
	cashAccount     domain.Account
	bankAccount     domain.Account
	arAccount       domain.Account
	salesAccount    domain.Account
	feesAccount     domain.Account
	actorID         string
}

func (suite *BillingServiceTestSuite) SetupTest() {
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.mockPaymentRepo = new(MockPaymentRepository)
	suite.mockAccountSvc = new(MockAccountService)
	suite.mockLedgerSvc = new(MockLedgerService)
	suite.service = services.NewBillingService(suite.mockInvoiceRepo, suite.mockPaymentRepo, suite.mockAccountSvc, suite.mockLedgerSvc)

	suite.actorID = uuid.NewString()

	suite.cashAccount = domain.Account{Code: domain.CodeCash, Name: "Cash Drawer", AccountType: domain.Asset, IsCashLike: true}
	suite.bankAccount = domain.Account{Code: domain.CodeBank, Name: "Bank Balance", AccountType: domain.Asset, IsCashLike: true}
	suite.arAccount = domain.Account{Code: domain.CodeReceivables, Name: "Accounts Receivable", AccountType: domain.Asset}
	suite.salesAccount = domain.Account{Code: domain.CodeSales, Name: "Service Revenue", AccountType: domain.Revenue}
	suite.feesAccount = domain.Account{Code: domain.CodeCardFees, Name: "Card Processing Fees", AccountType: domain.Expense}
}

func (suite *BillingServiceTestSuite) expectAccounts(accounts ...domain.Account) {
	codes := make([]string, len(accounts))
	accountsMap := make(map[string]domain.Account, len(accounts))
	for i, acc := range accounts {
		codes[i] = acc.Code
		accountsMap[acc.Code] = acc
	}
	suite.mockAccountSvc.On("GetAccountsByCodes", mock.Anything, codes).Return(accountsMap, nil).Once()
}

// --- IssueInvoice ---

func (suite *BillingServiceTestSuite) TestIssueInvoice_Success() {
	ctx := context.Background()
	suite.expectAccounts(suite.arAccount, suite.salesAccount)
	suite.mockInvoiceRepo.On("FindInvoiceByNo", ctx, "INV-1001").Return(nil, apperrors.ErrNotFound).Once()

	var savedInvoice domain.Invoice
	var savedEntry domain.LedgerEntry
	suite.mockInvoiceRepo.On("SaveInvoiceWithEntry", ctx, mock.AnythingOfType("domain.Invoice"), mock.AnythingOfType("domain.LedgerEntry")).
		Run(func(args mock.Arguments) {
			savedInvoice = args.Get(1).(domain.Invoice)
			savedEntry = args.Get(2).(domain.LedgerEntry)
		}).Return(nil).Once()

	vat := decimal.NewFromInt(20)
	discount := decimal.NewFromInt(100)
	invoice, err := suite.service.IssueInvoice(ctx, dto.IssueInvoiceRequest{
		CustomerID: uuid.NewString(),
		InvoiceNo:  "INV-1001",
		Subtotal:   decimal.NewFromInt(1000),
		VATRate:    &vat,
		Discount:   &discount,
	}, suite.actorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(invoice)
	// (1000 - 100) * 1.20 = 1080.00
	suite.Equal("1080.00", invoice.Total.StringFixed(2))
	suite.Equal(domain.InvoiceOpen, invoice.Status)
	suite.Equal(suite.actorID, invoice.CreatedBy)

	suite.Equal(invoice.InvoiceID, savedInvoice.InvoiceID)
	suite.Equal(domain.CodeReceivables, savedEntry.DebitAccountCode)
	suite.Equal(domain.CodeSales, savedEntry.CreditAccountCode)
	suite.True(savedEntry.Amount.Equal(invoice.Total))
	suite.Equal(domain.RefInvoice, savedEntry.Reference.Type)
	suite.Equal(invoice.InvoiceID, savedEntry.Reference.ID)

	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *BillingServiceTestSuite) TestIssueInvoice_DefaultsApplied() {
	ctx := context.Background()
	suite.expectAccounts(suite.arAccount, suite.salesAccount)
	suite.mockInvoiceRepo.On("FindInvoiceByNo", ctx, "INV-1002").Return(nil, apperrors.ErrNotFound).Once()

	suite.mockInvoiceRepo.On("SaveInvoiceWithEntry", ctx, mock.AnythingOfType("domain.Invoice"), mock.AnythingOfType("domain.LedgerEntry")).Return(nil).Once()

	invoice, err := suite.service.IssueInvoice(ctx, dto.IssueInvoiceRequest{
		CustomerID: uuid.NewString(),
		InvoiceNo:  "INV-1002",
		Subtotal:   decimal.NewFromInt(100),
	}, suite.actorID)

	suite.Require().NoError(err)
	// No VAT rate or discount given: 20% VAT on the full subtotal.
	suite.Equal("120.00", invoice.Total.StringFixed(2))
	suite.True(invoice.Discount.IsZero())
	suite.Equal("20", invoice.VATRate.String())
}

func (suite *BillingServiceTestSuite) TestIssueInvoice_RoundsToTwoPlaces() {
	ctx := context.Background()
	suite.expectAccounts(suite.arAccount, suite.salesAccount)
	suite.mockInvoiceRepo.On("FindInvoiceByNo", ctx, "INV-1003").Return(nil, apperrors.ErrNotFound).Once()

	suite.mockInvoiceRepo.On("SaveInvoiceWithEntry", ctx, mock.AnythingOfType("domain.Invoice"), mock.AnythingOfType("domain.LedgerEntry")).Return(nil).Once()

	subtotal, _ := decimal.NewFromString("33.33")
	invoice, err := suite.service.IssueInvoice(ctx, dto.IssueInvoiceRequest{
		CustomerID: uuid.NewString(),
		InvoiceNo:  "INV-1003",
		Subtotal:   subtotal,
	}, suite.actorID)

	suite.Require().NoError(err)
	// 33.33 * 1.20 = 39.996, rounded to 40.00
	suite.Equal("40.00", invoice.Total.StringFixed(2))
}

func (suite *BillingServiceTestSuite) TestIssueInvoice_NonPositiveTotal() {
	ctx := context.Background()

	discount := decimal.NewFromInt(200)
	_, err := suite.service.IssueInvoice(ctx, dto.IssueInvoiceRequest{
		CustomerID: uuid.NewString(),
		InvoiceNo:  "INV-1004",
		Subtotal:   decimal.NewFromInt(100),
		Discount:   &discount,
	}, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvalidAmount)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "SaveInvoiceWithEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BillingServiceTestSuite) TestIssueInvoice_DuplicateNumber() {
	ctx := context.Background()
	suite.expectAccounts(suite.arAccount, suite.salesAccount)

	existing := &domain.Invoice{InvoiceID: uuid.NewString(), InvoiceNo: "INV-1001"}
	suite.mockInvoiceRepo.On("FindInvoiceByNo", ctx, "INV-1001").Return(existing, nil).Once()

	_, err := suite.service.IssueInvoice(ctx, dto.IssueInvoiceRequest{
		CustomerID: uuid.NewString(),
		InvoiceNo:  "INV-1001",
		Subtotal:   decimal.NewFromInt(50),
	}, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "SaveInvoiceWithEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BillingServiceTestSuite) TestIssueInvoice_DuplicateNumberRace() {
	ctx := context.Background()
	suite.expectAccounts(suite.arAccount, suite.salesAccount)

	// The number is free at check time but a concurrent issuer wins the
	// unique index on invoice_no.
	suite.mockInvoiceRepo.On("FindInvoiceByNo", ctx, "INV-1001").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockInvoiceRepo.On("SaveInvoiceWithEntry", ctx, mock.AnythingOfType("domain.Invoice"), mock.AnythingOfType("domain.LedgerEntry")).
		Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.IssueInvoice(ctx, dto.IssueInvoiceRequest{
		CustomerID: uuid.NewString(),
		InvoiceNo:  "INV-1001",
		Subtotal:   decimal.NewFromInt(50),
	}, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

// --- RecordCollection ---

func (suite *BillingServiceTestSuite) openInvoice(total int64) *domain.Invoice {
	return &domain.Invoice{
		InvoiceID:  uuid.NewString(),
		InvoiceNo:  "INV-2001",
		CustomerID: uuid.NewString(),
		Total:      decimal.NewFromInt(total),
		Status:     domain.InvoiceOpen,
	}
}

func (suite *BillingServiceTestSuite) TestRecordCollection_CashCoversInvoice() {
	ctx := context.Background()
	invoice := suite.openInvoice(500)

	suite.expectAccounts(suite.cashAccount, suite.arAccount, suite.feesAccount)
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(invoice, nil).Once()

	var savedPayment domain.Payment
	var savedEntries []domain.LedgerEntry
	var savedNotes []domain.CashNote
	suite.mockPaymentRepo.On("SaveCollection", ctx, mock.AnythingOfType("domain.Payment"), mock.AnythingOfType("[]domain.LedgerEntry"), mock.AnythingOfType("[]domain.CashNote")).
		Run(func(args mock.Arguments) {
			savedPayment = args.Get(1).(domain.Payment)
			savedEntries = args.Get(2).([]domain.LedgerEntry)
			savedNotes = args.Get(3).([]domain.CashNote)
		}).Return(true, nil).Once()

	payment, invoicePaid, err := suite.service.RecordCollection(ctx, dto.RecordCollectionRequest{
		CustomerID: invoice.CustomerID,
		InvoiceID:  &invoice.InvoiceID,
		Amount:     decimal.NewFromInt(500),
		Method:     domain.MethodCash,
	}, suite.actorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(payment)
	suite.True(invoicePaid)
	suite.Equal(payment.PaymentID, savedPayment.PaymentID)

	suite.Require().Len(savedEntries, 1)
	suite.Equal(domain.CodeCash, savedEntries[0].DebitAccountCode)
	suite.Equal(domain.CodeReceivables, savedEntries[0].CreditAccountCode)
	suite.True(savedEntries[0].Amount.Equal(decimal.NewFromInt(500)))
	suite.Equal(domain.RefPayment, savedEntries[0].Reference.Type)
	suite.Equal(payment.PaymentID, savedEntries[0].Reference.ID)

	suite.Require().Len(savedNotes, 1)
	suite.Equal(savedEntries[0].EntryID, savedNotes[0].EntryID)
	suite.Contains(savedNotes[0].Summary, invoice.InvoiceNo)
	suite.Contains(savedNotes[0].Tags, "collection")

	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *BillingServiceTestSuite) TestRecordCollection_PartialStaysOpen() {
	ctx := context.Background()
	invoice := suite.openInvoice(500)

	suite.expectAccounts(suite.cashAccount, suite.arAccount, suite.feesAccount)
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(invoice, nil).Once()
	suite.mockPaymentRepo.On("SaveCollection", ctx, mock.AnythingOfType("domain.Payment"), mock.AnythingOfType("[]domain.LedgerEntry"), mock.AnythingOfType("[]domain.CashNote")).
		Return(false, nil).Once()

	_, invoicePaid, err := suite.service.RecordCollection(ctx, dto.RecordCollectionRequest{
		CustomerID: invoice.CustomerID,
		InvoiceID:  &invoice.InvoiceID,
		Amount:     decimal.NewFromInt(200),
		Method:     domain.MethodCash,
	}, suite.actorID)

	suite.Require().NoError(err)
	suite.False(invoicePaid)
}

func (suite *BillingServiceTestSuite) TestRecordCollection_CardFeePostsTwoEntries() {
	ctx := context.Background()

	suite.expectAccounts(suite.cashAccount, suite.arAccount, suite.feesAccount)

	var savedPayment domain.Payment
	var savedEntries []domain.LedgerEntry
	var savedNotes []domain.CashNote
	suite.mockPaymentRepo.On("SaveCollection", ctx, mock.AnythingOfType("domain.Payment"), mock.AnythingOfType("[]domain.LedgerEntry"), mock.AnythingOfType("[]domain.CashNote")).
		Run(func(args mock.Arguments) {
			savedPayment = args.Get(1).(domain.Payment)
			savedEntries = args.Get(2).([]domain.LedgerEntry)
			savedNotes = args.Get(3).([]domain.CashNote)
		}).Return(false, nil).Once()

	fee := decimal.NewFromInt(5)
	payment, _, err := suite.service.RecordCollection(ctx, dto.RecordCollectionRequest{
		CustomerID: uuid.NewString(),
		Amount:     decimal.NewFromInt(300),
		Method:     domain.MethodCard,
		Fee:        &fee,
	}, suite.actorID)

	suite.Require().NoError(err)
	suite.True(savedPayment.Fee.Equal(fee))

	suite.Require().Len(savedEntries, 2)
	suite.Equal(domain.CodeCash, savedEntries[0].DebitAccountCode)
	suite.Equal(domain.CodeReceivables, savedEntries[0].CreditAccountCode)
	suite.Equal(domain.CodeCardFees, savedEntries[1].DebitAccountCode)
	suite.Equal(domain.CodeCash, savedEntries[1].CreditAccountCode)
	suite.True(savedEntries[1].Amount.Equal(fee))
	// Both postings carry the same payment reference.
	suite.Equal(savedEntries[0].Reference, savedEntries[1].Reference)
	suite.Equal(payment.PaymentID, savedEntries[1].Reference.ID)

	suite.Require().Len(savedNotes, 2)
	suite.Contains(savedNotes[1].Summary, "fee")
}

func (suite *BillingServiceTestSuite) TestRecordCollection_TransferLandsOnBank() {
	ctx := context.Background()

	suite.mockAccountSvc.On("GetAccountsByCodes", mock.Anything, []string{domain.CodeBank, domain.CodeReceivables, domain.CodeCardFees}).
		Return(map[string]domain.Account{
			domain.CodeBank:        suite.bankAccount,
			domain.CodeReceivables: suite.arAccount,
			domain.CodeCardFees:    suite.feesAccount,
		}, nil).Once()

	var savedEntries []domain.LedgerEntry
	suite.mockPaymentRepo.On("SaveCollection", ctx, mock.AnythingOfType("domain.Payment"), mock.AnythingOfType("[]domain.LedgerEntry"), mock.AnythingOfType("[]domain.CashNote")).
		Run(func(args mock.Arguments) {
			savedEntries = args.Get(2).([]domain.LedgerEntry)
		}).Return(false, nil).Once()

	_, _, err := suite.service.RecordCollection(ctx, dto.RecordCollectionRequest{
		CustomerID: uuid.NewString(),
		Amount:     decimal.NewFromInt(100),
		Method:     domain.MethodTransfer,
	}, suite.actorID)

	suite.Require().NoError(err)
	suite.Require().Len(savedEntries, 1)
	suite.Equal(domain.CodeBank, savedEntries[0].DebitAccountCode)
}

func (suite *BillingServiceTestSuite) TestRecordCollection_FeeRequiresCard() {
	ctx := context.Background()

	fee := decimal.NewFromInt(3)
	_, _, err := suite.service.RecordCollection(ctx, dto.RecordCollectionRequest{
		CustomerID: uuid.NewString(),
		Amount:     decimal.NewFromInt(100),
		Method:     domain.MethodCash,
		Fee:        &fee,
	}, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrFeeWithoutCard)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "SaveCollection", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BillingServiceTestSuite) TestRecordCollection_NegativeFee() {
	ctx := context.Background()

	fee := decimal.NewFromInt(-1)
	_, _, err := suite.service.RecordCollection(ctx, dto.RecordCollectionRequest{
		CustomerID: uuid.NewString(),
		Amount:     decimal.NewFromInt(100),
		Method:     domain.MethodCard,
		Fee:        &fee,
	}, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrNegativeFee)
}

func (suite *BillingServiceTestSuite) TestRecordCollection_UnknownInvoice() {
	ctx := context.Background()
	invoiceID := uuid.NewString()

	suite.expectAccounts(suite.cashAccount, suite.arAccount, suite.feesAccount)
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoiceID).Return(nil, apperrors.ErrNotFound).Once()

	_, _, err := suite.service.RecordCollection(ctx, dto.RecordCollectionRequest{
		CustomerID: uuid.NewString(),
		InvoiceID:  &invoiceID,
		Amount:     decimal.NewFromInt(100),
		Method:     domain.MethodCash,
	}, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "SaveCollection", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- RecordExpense ---

func (suite *BillingServiceTestSuite) TestRecordExpense_Success() {
	ctx := context.Background()

	var postedReq dto.PostEntryRequest
	expected := &domain.LedgerEntry{EntryID: uuid.NewString()}
	suite.mockLedgerSvc.On("Post", ctx, mock.AnythingOfType("dto.PostEntryRequest"), suite.actorID).
		Run(func(args mock.Arguments) {
			postedReq = args.Get(1).(dto.PostEntryRequest)
		}).Return(expected, nil).Once()

	entry, err := suite.service.RecordExpense(ctx, dto.RecordExpenseRequest{
		Amount:   decimal.NewFromInt(40),
		Category: "rent",
		Note:     "August rent",
	}, suite.actorID)

	suite.Require().NoError(err)
	suite.Equal(expected.EntryID, entry.EntryID)

	suite.Equal(domain.CodeOpex, postedReq.DebitCode)
	suite.Equal(domain.CodeCash, postedReq.CreditCode)
	suite.Equal(domain.RefExpense, postedReq.RefType)
	suite.NotEmpty(postedReq.RefID)
	suite.True(strings.Contains(postedReq.CashSummary, "rent"))
	suite.Equal("rent", postedReq.Meta["category"])
	suite.Contains(postedReq.Tags, "expense")
}

func (suite *BillingServiceTestSuite) TestRecordExpense_TransferFromBank() {
	ctx := context.Background()

	var postedReq dto.PostEntryRequest
	suite.mockLedgerSvc.On("Post", ctx, mock.AnythingOfType("dto.PostEntryRequest"), suite.actorID).
		Run(func(args mock.Arguments) {
			postedReq = args.Get(1).(dto.PostEntryRequest)
		}).Return(&domain.LedgerEntry{EntryID: uuid.NewString()}, nil).Once()

	date := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	_, err := suite.service.RecordExpense(ctx, dto.RecordExpenseRequest{
		Amount:   decimal.NewFromInt(250),
		Category: "parts",
		Method:   domain.MethodTransfer,
		Date:     &date,
	}, suite.actorID)

	suite.Require().NoError(err)
	suite.Equal(domain.CodeBank, postedReq.CreditCode)
	suite.Require().NotNil(postedReq.Date)
	suite.True(postedReq.Date.Equal(date))
}

// --- Payment reads ---

func (suite *BillingServiceTestSuite) TestGetPaymentByID_AllocatedToPaidInvoice() {
	ctx := context.Background()
	invoice := suite.openInvoice(500)
	invoice.Status = domain.InvoicePaid

	payment := &domain.Payment{
		PaymentID: uuid.NewString(),
		InvoiceID: &invoice.InvoiceID,
		Method:    domain.MethodCash,
		Amount:    decimal.NewFromInt(500),
	}
	suite.mockPaymentRepo.On("FindPaymentByID", ctx, payment.PaymentID).Return(payment, nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(invoice, nil).Once()

	got, invoicePaid, err := suite.service.GetPaymentByID(ctx, payment.PaymentID)

	suite.Require().NoError(err)
	suite.Equal(payment.PaymentID, got.PaymentID)
	suite.True(invoicePaid)
}

func (suite *BillingServiceTestSuite) TestGetPaymentByID_Unallocated() {
	ctx := context.Background()
	payment := &domain.Payment{
		PaymentID: uuid.NewString(),
		Method:    domain.MethodCash,
		Amount:    decimal.NewFromInt(50),
	}
	suite.mockPaymentRepo.On("FindPaymentByID", ctx, payment.PaymentID).Return(payment, nil).Once()

	_, invoicePaid, err := suite.service.GetPaymentByID(ctx, payment.PaymentID)

	suite.Require().NoError(err)
	suite.False(invoicePaid)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "FindInvoiceByID", mock.Anything, mock.Anything)
}

func (suite *BillingServiceTestSuite) TestGetPaymentByID_NotFound() {
	ctx := context.Background()
	paymentID := uuid.NewString()
	suite.mockPaymentRepo.On("FindPaymentByID", ctx, paymentID).Return(nil, apperrors.ErrNotFound).Once()

	_, _, err := suite.service.GetPaymentByID(ctx, paymentID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *BillingServiceTestSuite) TestListPaymentsForInvoice() {
	ctx := context.Background()
	invoice := suite.openInvoice(500)

	payments := []domain.Payment{
		{PaymentID: uuid.NewString(), InvoiceID: &invoice.InvoiceID, Amount: decimal.NewFromInt(200)},
		{PaymentID: uuid.NewString(), InvoiceID: &invoice.InvoiceID, Amount: decimal.NewFromInt(100)},
	}
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(invoice, nil).Once()
	suite.mockPaymentRepo.On("ListPaymentsByInvoiceID", ctx, invoice.InvoiceID).Return(payments, nil).Once()

	got, invoicePaid, err := suite.service.ListPaymentsForInvoice(ctx, invoice.InvoiceID)

	suite.Require().NoError(err)
	suite.Len(got, 2)
	suite.False(invoicePaid)
}

func (suite *BillingServiceTestSuite) TestListPaymentsForInvoice_UnknownInvoice() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoiceID).Return(nil, apperrors.ErrNotFound).Once()

	_, _, err := suite.service.ListPaymentsForInvoice(ctx, invoiceID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "ListPaymentsByInvoiceID", mock.Anything, mock.Anything)
}

func TestBillingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BillingServiceTestSuite))
}
