package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/fixhub-app/fixhub_backend/internal/apperrors"
	"github.com/fixhub-app/fixhub_backend/internal/core/domain"
	portssvc "github.com/fixhub-app/fixhub_backend/internal/core/ports/services"
	"github.com/fixhub-app/fixhub_backend/internal/core/services"
	"github.com/fixhub-app/fixhub_backend/internal/dto"
	"github.com/fixhub-app/fixhub_backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// ledgerHandler handles HTTP requests for the entry log.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// newLedgerHandler creates a new ledgerHandler.
func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{
		ledgerService: ls,
	}
}

// registerLedgerRoutes registers routes related to ledger entries.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade, writeLimiter *limiter.Limiter) {
	h := newLedgerHandler(ledgerService)

	entries := rg.Group("/entries")
	{
		entries.POST("", middleware.RateLimit(writeLimiter), h.postEntry)
		entries.GET("", h.listEntries)
		entries.GET("/:id", h.getEntry)
		entries.POST("/:id/reverse", middleware.RateLimit(writeLimiter), h.reverseEntry)
	}

	rg.GET("/references/:refType/:refID/entries", h.listEntriesByReference)
}

// postEntry godoc
// @Summary Post a ledger entry
// @Description Appends one balanced debit/credit entry to the log, with an optional cash note when a cash-like account is touched
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   entry body dto.PostEntryRequest true "Entry details"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} ErrorResponse "Invalid input format or validation error"
// @Failure 500 {object} ErrorResponse "Failed to post entry"
// @Router /entries [post]
func (h *ledgerHandler) postEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.PostEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PostEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actorID := middleware.GetActorFromContext(c)
	logger = logger.With(slog.String("actor_id", actorID))
	logger.Info("Received request to post entry", slog.String("debit", req.DebitCode), slog.String("credit", req.CreditCode))

	entry, err := h.ledgerService.Post(c.Request.Context(), req, actorID)
	if err != nil {
		if isPostingValidationError(err) {
			logger.Warn("Validation error posting entry", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to post entry in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to post entry"})
		}
		return
	}

	logger.Info("Entry posted successfully", slog.String("entry_id", entry.EntryID))
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// getEntry godoc
// @Summary Get a ledger entry by ID
// @Description Retrieves one entry and its cash note, if any
// @Tags entries
// @Produce  json
// @Param   id path string true "Entry ID"
// @Success 200 {object} dto.GetEntryResponse
// @Failure 404 {object} ErrorResponse "Entry not found"
// @Failure 500 {object} ErrorResponse "Failed to retrieve entry"
// @Router /entries/{id} [get]
func (h *ledgerHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("id")

	entry, err := h.ledgerService.GetEntryByID(c.Request.Context(), entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Entry not found", slog.String("entry_id", entryID))
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Entry not found"})
		} else {
			logger.Error("Failed to get entry from service", slog.String("entry_id", entryID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve entry"})
		}
		return
	}

	resp := dto.GetEntryResponse{Entry: dto.ToEntryResponse(entry)}

	note, err := h.ledgerService.GetCashNoteForEntry(c.Request.Context(), entryID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed to get cash note from service", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve entry"})
		return
	}
	resp.CashNote = dto.ToCashNoteResponse(note)

	c.JSON(http.StatusOK, resp)
}

// listEntries godoc
// @Summary List ledger entries
// @Description Retrieves a page of entries, newest first, with token-based pagination
// @Tags entries
// @Produce  json
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Cursor from a previous page"
// @Success 200 {object} dto.ListEntriesResponse
// @Failure 400 {object} ErrorResponse "Invalid query parameters"
// @Failure 500 {object} ErrorResponse "Failed to list entries"
// @Router /entries [get]
func (h *ledgerHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListEntries", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.ledgerService.ListEntries(c.Request.Context(), params)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Code == http.StatusBadRequest {
			logger.Warn("Invalid pagination token", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid nextToken"})
			return
		}
		logger.Error("Failed to list entries from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list entries"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// reverseEntry godoc
// @Summary Reverse a ledger entry
// @Description Posts the mirrored compensating entry for a mis-posted entry; the original row is never mutated
// @Tags entries
// @Produce  json
// @Param   id path string true "Entry ID to reverse"
// @Success 201 {object} dto.EntryResponse
// @Failure 404 {object} ErrorResponse "Entry not found"
// @Failure 409 {object} ErrorResponse "Entry already reversed or is itself a reversal"
// @Failure 500 {object} ErrorResponse "Failed to reverse entry"
// @Router /entries/{id}/reverse [post]
func (h *ledgerHandler) reverseEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("id")

	actorID := middleware.GetActorFromContext(c)
	logger = logger.With(slog.String("entry_id", entryID), slog.String("actor_id", actorID))
	logger.Info("Received request to reverse entry")

	reversal, err := h.ledgerService.ReverseEntry(c.Request.Context(), entryID, actorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Entry not found for reversal")
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Entry not found"})
		case errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrDuplicate):
			logger.Warn("Entry cannot be reversed", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to reverse entry in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to reverse entry"})
		}
		return
	}

	logger.Info("Entry reversed successfully", slog.String("reversal_id", reversal.EntryID))
	c.JSON(http.StatusCreated, dto.ToEntryResponse(reversal))
}

// listEntriesByReference godoc
// @Summary List entries by business reference
// @Description Retrieves all entries tagged with a business event, oldest first
// @Tags entries
// @Produce  json
// @Param   refType path string true "Reference type" Enums(INVOICE, PAYMENT, EXPENSE)
// @Param   refID path string true "Reference ID"
// @Success 200 {array} dto.EntryResponse
// @Failure 400 {object} ErrorResponse "Unknown reference type"
// @Failure 500 {object} ErrorResponse "Failed to list entries"
// @Router /references/{refType}/{refID}/entries [get]
func (h *ledgerHandler) listEntriesByReference(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	refType := domain.RefType(strings.ToUpper(c.Param("refType")))
	refID := c.Param("refID")
	switch refType {
	case domain.RefInvoice, domain.RefPayment, domain.RefExpense:
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Unknown reference type"})
		return
	}

	entries, err := h.ledgerService.ListEntriesByReference(c.Request.Context(), refType, refID)
	if err != nil {
		logger.Error("Failed to list entries by reference", slog.String("ref_type", string(refType)), slog.String("ref_id", refID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list entries"})
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponses(entries))
}

// isPostingValidationError reports whether the posting engine rejected the
// request for a reason the caller can fix.
func isPostingValidationError(err error) bool {
	return errors.Is(err, services.ErrAccountNotFound) ||
		errors.Is(err, services.ErrInvalidAmount) ||
		errors.Is(err, services.ErrSameAccount) ||
		errors.Is(err, apperrors.ErrValidation)
}
