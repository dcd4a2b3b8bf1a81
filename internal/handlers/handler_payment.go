package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/fixhub-app/fixhub_backend/internal/apperrors"
	portssvc "github.com/fixhub-app/fixhub_backend/internal/core/ports/services"
	"github.com/fixhub-app/fixhub_backend/internal/core/services"
	"github.com/fixhub-app/fixhub_backend/internal/dto"
	"github.com/fixhub-app/fixhub_backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// paymentHandler handles HTTP requests for collections and expenses.
type paymentHandler struct {
	billingService portssvc.BillingSvcFacade
}

// newPaymentHandler creates a new paymentHandler.
func newPaymentHandler(bs portssvc.BillingSvcFacade) *paymentHandler {
	return &paymentHandler{
		billingService: bs,
	}
}

// registerPaymentRoutes registers routes for collections and expenses.
func registerPaymentRoutes(rg *gin.RouterGroup, billingService portssvc.BillingSvcFacade, writeLimiter *limiter.Limiter) {
	h := newPaymentHandler(billingService)

	rg.POST("/collections", middleware.RateLimit(writeLimiter), h.recordCollection)
	rg.POST("/expenses", middleware.RateLimit(writeLimiter), h.recordExpense)
	rg.GET("/payments/:id", h.getPayment)
}

// recordCollection godoc
// @Summary Record a customer payment
// @Description Records a collection: the payment, its cash posting with note, an optional card-fee posting, and the invoice paid flip, all atomically
// @Tags payments
// @Accept  json
// @Produce  json
// @Param   collection body dto.RecordCollectionRequest true "Collection details"
// @Success 201 {object} dto.PaymentResponse
// @Failure 400 {object} ErrorResponse "Invalid input format or validation error"
// @Failure 404 {object} ErrorResponse "Invoice not found"
// @Failure 500 {object} ErrorResponse "Failed to record collection"
// @Router /collections [post]
func (h *paymentHandler) recordCollection(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RecordCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordCollection", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actorID := middleware.GetActorFromContext(c)
	logger = logger.With(slog.String("actor_id", actorID))
	logger.Info("Received request to record collection", slog.String("customer_id", req.CustomerID), slog.String("method", string(req.Method)))

	payment, invoicePaid, err := h.billingService.RecordCollection(c.Request.Context(), req, actorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Invoice not found for collection", slog.String("error", err.Error()))
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		case errors.Is(err, services.ErrInvalidAmount),
			errors.Is(err, services.ErrFeeWithoutCard),
			errors.Is(err, services.ErrNegativeFee),
			errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error recording collection", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to record collection in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to record collection"})
		}
		return
	}

	logger.Info("Collection recorded successfully", slog.String("payment_id", payment.PaymentID), slog.Bool("invoice_paid", invoicePaid))
	c.JSON(http.StatusCreated, dto.ToPaymentResponse(payment, invoicePaid))
}

// recordExpense godoc
// @Summary Record a business expense
// @Description Posts an expense against a cash-like account, tagged with its category
// @Tags payments
// @Accept  json
// @Produce  json
// @Param   expense body dto.RecordExpenseRequest true "Expense details"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} ErrorResponse "Invalid input format or validation error"
// @Failure 500 {object} ErrorResponse "Failed to record expense"
// @Router /expenses [post]
func (h *paymentHandler) recordExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RecordExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordExpense", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actorID := middleware.GetActorFromContext(c)
	logger = logger.With(slog.String("actor_id", actorID))
	logger.Info("Received request to record expense", slog.String("category", req.Category))

	entry, err := h.billingService.RecordExpense(c.Request.Context(), req, actorID)
	if err != nil {
		if isPostingValidationError(err) {
			logger.Warn("Validation error recording expense", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to record expense in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to record expense"})
		}
		return
	}

	logger.Info("Expense recorded successfully", slog.String("entry_id", entry.EntryID))
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// getPayment godoc
// @Summary Get a payment by ID
// @Description Retrieves one payment; invoicePaid reflects the current status of its allocated invoice
// @Tags payments
// @Produce  json
// @Param   id path string true "Payment ID"
// @Success 200 {object} dto.PaymentResponse
// @Failure 404 {object} ErrorResponse "Payment not found"
// @Failure 500 {object} ErrorResponse "Failed to retrieve payment"
// @Router /payments/{id} [get]
func (h *paymentHandler) getPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	paymentID := c.Param("id")

	payment, invoicePaid, err := h.billingService.GetPaymentByID(c.Request.Context(), paymentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Payment not found", slog.String("payment_id", paymentID))
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Payment not found"})
		} else {
			logger.Error("Failed to get payment from service", slog.String("payment_id", paymentID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve payment"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment, invoicePaid))
}
