package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/fixhub-app/fixhub_backend/internal/core/ports/services"
	"github.com/fixhub-app/fixhub_backend/internal/dto"
	"github.com/fixhub-app/fixhub_backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// reportingHandler handles HTTP requests for derived balances and reports.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// registerReportingRoutes registers routes related to reporting.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/cash-balance", h.getCashBalance)
		reports.GET("/receivables", h.getReceivables)
		reports.GET("/revenue", h.getRevenue)
		reports.GET("/expenses", h.getExpenses)
		reports.GET("/trial-balance", h.getTrialBalance)
		reports.GET("/profit-and-loss", h.getProfitAndLoss)
	}
}

// parseDateParam accepts either a plain date or a full RFC 3339 timestamp.
func parseDateParam(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, *raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", *raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// getCashBalance godoc
// @Summary Get the cash position
// @Description Derives the combined balance of all cash-like accounts from the entry log
// @Tags reports
// @Produce  json
// @Success 200 {object} dto.BalanceResponse
// @Failure 500 {object} ErrorResponse "Failed to compute cash balance"
// @Router /reports/cash-balance [get]
func (h *reportingHandler) getCashBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	balance, err := h.reportingService.CashBalance(c.Request.Context())
	if err != nil {
		logger.Error("Failed to compute cash balance", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to compute cash balance"})
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{Balance: balance})
}

// getReceivables godoc
// @Summary Get outstanding receivables
// @Description Derives the accounts receivable balance from the entry log
// @Tags reports
// @Produce  json
// @Success 200 {object} dto.BalanceResponse
// @Failure 500 {object} ErrorResponse "Failed to compute receivables"
// @Router /reports/receivables [get]
func (h *reportingHandler) getReceivables(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	balance, err := h.reportingService.AccountsReceivable(c.Request.Context())
	if err != nil {
		logger.Error("Failed to compute receivables", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to compute receivables"})
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{Balance: balance})
}

// getRevenue godoc
// @Summary Get total revenue
// @Description Sums amounts credited to revenue accounts within an optional date window
// @Tags reports
// @Produce  json
// @Param   from query string false "Window start (YYYY-MM-DD or RFC 3339)"
// @Param   to query string false "Window end (YYYY-MM-DD or RFC 3339)"
// @Success 200 {object} dto.TotalResponse
// @Failure 400 {object} ErrorResponse "Invalid date parameters"
// @Failure 500 {object} ErrorResponse "Failed to compute revenue"
// @Router /reports/revenue [get]
func (h *reportingHandler) getRevenue(c *gin.Context) {
	h.getWindowedTotal(c, h.reportingService.TotalRevenue, "Failed to compute revenue")
}

// getExpenses godoc
// @Summary Get total expenses
// @Description Sums amounts debited to expense accounts within an optional date window
// @Tags reports
// @Produce  json
// @Param   from query string false "Window start (YYYY-MM-DD or RFC 3339)"
// @Param   to query string false "Window end (YYYY-MM-DD or RFC 3339)"
// @Success 200 {object} dto.TotalResponse
// @Failure 400 {object} ErrorResponse "Invalid date parameters"
// @Failure 500 {object} ErrorResponse "Failed to compute expenses"
// @Router /reports/expenses [get]
func (h *reportingHandler) getExpenses(c *gin.Context) {
	h.getWindowedTotal(c, h.reportingService.TotalExpenses, "Failed to compute expenses")
}

func (h *reportingHandler) getWindowedTotal(c *gin.Context, total func(ctx context.Context, from, to *time.Time) (decimal.Decimal, error), failureMsg string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.DateRangeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	from, err := parseDateParam(params.From)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid from date: " + err.Error()})
		return
	}
	to, err := parseDateParam(params.To)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid to date: " + err.Error()})
		return
	}

	result, err := total(c.Request.Context(), from, to)
	if err != nil {
		logger.Error(failureMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: failureMsg})
		return
	}

	c.JSON(http.StatusOK, dto.TotalResponse{Total: result})
}

// getTrialBalance godoc
// @Summary Get the trial balance
// @Description Aggregates debit and credit totals per account as of a date; defaults to now
// @Tags reports
// @Produce  json
// @Param   asOf query string false "As-of date (YYYY-MM-DD or RFC 3339)"
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 400 {object} ErrorResponse "Invalid date parameter"
// @Failure 500 {object} ErrorResponse "Failed to compute trial balance"
// @Router /reports/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	asOf := time.Now().UTC()
	if raw := c.Query("asOf"); raw != "" {
		parsed, err := parseDateParam(&raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid asOf date: " + err.Error()})
			return
		}
		asOf = *parsed
	}

	rows, err := h.reportingService.TrialBalance(c.Request.Context(), asOf)
	if err != nil {
		logger.Error("Failed to compute trial balance", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to compute trial balance"})
		return
	}

	c.JSON(http.StatusOK, dto.TrialBalanceResponse{Rows: rows})
}

// getProfitAndLoss godoc
// @Summary Get the profit and loss report
// @Description Breaks revenue and expenses down per account for a period and nets them
// @Tags reports
// @Produce  json
// @Param   from query string true "Period start (YYYY-MM-DD or RFC 3339)"
// @Param   to query string true "Period end (YYYY-MM-DD or RFC 3339)"
// @Success 200 {object} domain.PAndLReport
// @Failure 400 {object} ErrorResponse "Invalid date parameters"
// @Failure 500 {object} ErrorResponse "Failed to compute profit and loss"
// @Router /reports/profit-and-loss [get]
func (h *reportingHandler) getProfitAndLoss(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.DateRangeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}
	if params.From == nil || params.To == nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "from and to dates are required"})
		return
	}

	from, err := parseDateParam(params.From)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid from date: " + err.Error()})
		return
	}
	to, err := parseDateParam(params.To)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid to date: " + err.Error()})
		return
	}
	if from == nil || to == nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "from and to dates are required"})
		return
	}

	report, err := h.reportingService.ProfitAndLoss(c.Request.Context(), *from, *to)
	if err != nil {
		logger.Error("Failed to compute profit and loss", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to compute profit and loss"})
		return
	}

	c.JSON(http.StatusOK, report)
}
