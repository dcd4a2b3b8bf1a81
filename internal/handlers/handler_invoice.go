package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/fixhub-app/fixhub_backend/internal/apperrors"
	"github.com/fixhub-app/fixhub_backend/internal/core/domain"
	portssvc "github.com/fixhub-app/fixhub_backend/internal/core/ports/services"
	"github.com/fixhub-app/fixhub_backend/internal/core/services"
	"github.com/fixhub-app/fixhub_backend/internal/dto"
	"github.com/fixhub-app/fixhub_backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// invoiceHandler handles HTTP requests related to invoices.
type invoiceHandler struct {
	billingService portssvc.BillingSvcFacade
	ledgerService  portssvc.LedgerSvcFacade
}

// newInvoiceHandler creates a new invoiceHandler.
func newInvoiceHandler(bs portssvc.BillingSvcFacade, ls portssvc.LedgerSvcFacade) *invoiceHandler {
	return &invoiceHandler{
		billingService: bs,
		ledgerService:  ls,
	}
}

// registerInvoiceRoutes registers routes related to invoices.
func registerInvoiceRoutes(rg *gin.RouterGroup, billingService portssvc.BillingSvcFacade, ledgerService portssvc.LedgerSvcFacade, writeLimiter *limiter.Limiter) {
	h := newInvoiceHandler(billingService, ledgerService)

	invoices := rg.Group("/invoices")
	{
		invoices.POST("", middleware.RateLimit(writeLimiter), h.issueInvoice)
		invoices.GET("/:id", h.getInvoice)
		invoices.GET("/:id/entries", h.getInvoiceEntries)
		invoices.GET("/:id/payments", h.getInvoicePayments)
	}
}

// issueInvoice godoc
// @Summary Issue an invoice
// @Description Creates an open invoice and posts its receivables entry atomically
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   invoice body dto.IssueInvoiceRequest true "Invoice details"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 400 {object} ErrorResponse "Invalid input format or validation error"
// @Failure 409 {object} ErrorResponse "Invoice number already exists"
// @Failure 500 {object} ErrorResponse "Failed to issue invoice"
// @Router /invoices [post]
func (h *invoiceHandler) issueInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.IssueInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for IssueInvoice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actorID := middleware.GetActorFromContext(c)
	logger = logger.With(slog.String("actor_id", actorID))
	logger.Info("Received request to issue invoice", slog.String("invoice_no", req.InvoiceNo))

	invoice, err := h.billingService.IssueInvoice(c.Request.Context(), req, actorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrDuplicate):
			logger.Warn("Invoice number already exists", slog.String("invoice_no", req.InvoiceNo))
			c.JSON(http.StatusConflict, ErrorResponse{Error: "Invoice number already exists"})
		case errors.Is(err, services.ErrInvalidAmount), errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error issuing invoice", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to issue invoice in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to issue invoice"})
		}
		return
	}

	logger.Info("Invoice issued successfully", slog.String("invoice_id", invoice.InvoiceID))
	c.JSON(http.StatusCreated, dto.ToInvoiceResponse(invoice))
}

// getInvoice godoc
// @Summary Get an invoice by ID
// @Description Retrieves one invoice
// @Tags invoices
// @Produce  json
// @Param   id path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 404 {object} ErrorResponse "Invoice not found"
// @Failure 500 {object} ErrorResponse "Failed to retrieve invoice"
// @Router /invoices/{id} [get]
func (h *invoiceHandler) getInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("id")

	invoice, err := h.billingService.GetInvoiceByID(c.Request.Context(), invoiceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Invoice not found", slog.String("invoice_id", invoiceID))
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Invoice not found"})
		} else {
			logger.Error("Failed to get invoice from service", slog.String("invoice_id", invoiceID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve invoice"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// getInvoiceEntries godoc
// @Summary List the ledger entries of an invoice
// @Description Retrieves every posting tagged with the invoice, oldest first
// @Tags invoices
// @Produce  json
// @Param   id path string true "Invoice ID"
// @Success 200 {array} dto.EntryResponse
// @Failure 500 {object} ErrorResponse "Failed to list entries"
// @Router /invoices/{id}/entries [get]
func (h *invoiceHandler) getInvoiceEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("id")

	entries, err := h.ledgerService.ListEntriesByReference(c.Request.Context(), domain.RefInvoice, invoiceID)
	if err != nil {
		logger.Error("Failed to list invoice entries", slog.String("invoice_id", invoiceID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list entries"})
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponses(entries))
}

// getInvoicePayments godoc
// @Summary List the payments of an invoice
// @Description Retrieves every payment allocated to the invoice, oldest first
// @Tags invoices
// @Produce  json
// @Param   id path string true "Invoice ID"
// @Success 200 {array} dto.PaymentResponse
// @Failure 404 {object} ErrorResponse "Invoice not found"
// @Failure 500 {object} ErrorResponse "Failed to list payments"
// @Router /invoices/{id}/payments [get]
func (h *invoiceHandler) getInvoicePayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("id")

	payments, invoicePaid, err := h.billingService.ListPaymentsForInvoice(c.Request.Context(), invoiceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Invoice not found", slog.String("invoice_id", invoiceID))
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Invoice not found"})
		} else {
			logger.Error("Failed to list invoice payments", slog.String("invoice_id", invoiceID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list payments"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToPaymentResponses(payments, invoicePaid))
}
