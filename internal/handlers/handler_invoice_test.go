package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fixhub-app/fixhub_backend/internal/apperrors"
	"github.com/fixhub-app/fixhub_backend/internal/core/domain"
	portssvc "github.com/fixhub-app/fixhub_backend/internal/core/ports/services"
	"github.com/fixhub-app/fixhub_backend/internal/dto"
	"github.com/fixhub-app/fixhub_backend/internal/handlers"
	"github.com/fixhub-app/fixhub_backend/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type InvoiceHandlerTestSuite struct {
	suite.Suite
	router         *gin.Engine
	mockLedgerSvc  *MockLedgerService
	mockBillingSvc *MockBillingService
}

func (suite *InvoiceHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()

	suite.mockLedgerSvc = new(MockLedgerService)
	suite.mockBillingSvc = new(MockBillingService)

	cfg := &config.Config{
		IsProduction:   true,
		WriteRateLimit: "1000-S",
	}
	serviceContainer := &portssvc.ServiceContainer{
		Account:   new(MockAccountService),
		Ledger:    suite.mockLedgerSvc,
		Billing:   suite.mockBillingSvc,
		Reporting: new(MockReportingService),
	}
	handlers.RegisterRoutes(suite.router, cfg, serviceContainer)
}

func (suite *InvoiceHandlerTestSuite) makeInvoice() *domain.Invoice {
	now := time.Now().UTC()
	return &domain.Invoice{
		InvoiceID:  uuid.NewString(),
		InvoiceNo:  "INV-2026-042",
		CustomerID: "cust-9",
		Subtotal:   decimal.NewFromInt(1000),
		VATRate:    decimal.NewFromInt(20),
		Discount:   decimal.NewFromInt(100),
		Total:      decimal.RequireFromString("1080.00"),
		Status:     domain.InvoiceOpen,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			CreatedBy: "clerk-7",
		},
	}
}

func (suite *InvoiceHandlerTestSuite) TestIssueInvoice_Success() {
	expected := suite.makeInvoice()

	suite.mockBillingSvc.On("IssueInvoice",
		mock.Anything,
		mock.MatchedBy(func(req dto.IssueInvoiceRequest) bool {
			return req.InvoiceNo == expected.InvoiceNo && req.CustomerID == expected.CustomerID
		}),
		"clerk-7",
	).Return(expected, nil).Once()

	body, _ := json.Marshal(map[string]any{
		"customerID": expected.CustomerID,
		"invoiceNo":  expected.InvoiceNo,
		"subtotal":   "1000",
		"discount":   "100",
	})
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/invoices", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Actor-ID", "clerk-7")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.InvoiceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(expected.InvoiceID, resp.InvoiceID)
	suite.Equal(domain.InvoiceOpen, resp.Status)
	suite.True(resp.Total.Equal(expected.Total))

	suite.mockBillingSvc.AssertExpectations(suite.T())
}

func (suite *InvoiceHandlerTestSuite) TestIssueInvoice_DuplicateNumber() {
	suite.mockBillingSvc.On("IssueInvoice", mock.Anything, mock.AnythingOfType("dto.IssueInvoiceRequest"), "system").
		Return(nil, fmt.Errorf("invoice number INV-2026-042: %w", apperrors.ErrDuplicate)).Once()

	body, _ := json.Marshal(map[string]any{
		"customerID": "cust-9",
		"invoiceNo":  "INV-2026-042",
		"subtotal":   "1000",
	})
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/invoices", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *InvoiceHandlerTestSuite) TestIssueInvoice_MissingFields() {
	body, _ := json.Marshal(map[string]any{"customerID": "cust-9"})
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/invoices", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockBillingSvc.AssertNotCalled(suite.T(), "IssueInvoice", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceHandlerTestSuite) TestGetInvoice_NotFound() {
	invoiceID := uuid.NewString()
	suite.mockBillingSvc.On("GetInvoiceByID", mock.Anything, invoiceID).
		Return(nil, fmt.Errorf("invoice %s: %w", invoiceID, apperrors.ErrNotFound)).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/invoices/"+invoiceID, nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *InvoiceHandlerTestSuite) TestGetInvoiceEntries() {
	invoiceID := uuid.NewString()
	entries := []domain.LedgerEntry{{
		EntryID:           uuid.NewString(),
		EntryDate:         time.Now().UTC(),
		DebitAccountCode:  domain.CodeReceivables,
		CreditAccountCode: domain.CodeSales,
		Amount:            decimal.RequireFromString("1080.00"),
		Reference:         domain.Reference{Type: domain.RefInvoice, ID: invoiceID},
	}}
	suite.mockLedgerSvc.On("ListEntriesByReference", mock.Anything, domain.RefInvoice, invoiceID).
		Return(entries, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/invoices/"+invoiceID+"/entries", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var resp []dto.EntryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp, 1)
	suite.Equal(domain.RefInvoice, resp[0].RefType)
}

func (suite *InvoiceHandlerTestSuite) TestGetInvoicePayments() {
	invoiceID := uuid.NewString()
	payments := []domain.Payment{
		{PaymentID: uuid.NewString(), InvoiceID: &invoiceID, Method: domain.MethodCash, Amount: decimal.NewFromInt(300)},
		{PaymentID: uuid.NewString(), InvoiceID: &invoiceID, Method: domain.MethodCard, Amount: decimal.NewFromInt(200)},
	}
	suite.mockBillingSvc.On("ListPaymentsForInvoice", mock.Anything, invoiceID).
		Return(payments, true, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/invoices/"+invoiceID+"/payments", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var resp []dto.PaymentResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp, 2)
	suite.True(resp[0].InvoicePaid)
	suite.True(resp[1].InvoicePaid)
}

func (suite *InvoiceHandlerTestSuite) TestGetInvoicePayments_UnknownInvoice() {
	invoiceID := uuid.NewString()
	suite.mockBillingSvc.On("ListPaymentsForInvoice", mock.Anything, invoiceID).
		Return(nil, false, fmt.Errorf("invoice %s: %w", invoiceID, apperrors.ErrNotFound)).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/invoices/"+invoiceID+"/payments", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
}

func TestInvoiceHandler(t *testing.T) {
	suite.Run(t, new(InvoiceHandlerTestSuite))
}
