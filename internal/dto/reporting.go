package dto

import (
	"github.com/fixhub-app/fixhub_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceResponse wraps a single derived balance figure.
type BalanceResponse struct {
	Balance decimal.Decimal `json:"balance"`
}

// TotalResponse wraps a single aggregate total over an optional date window.
type TotalResponse struct {
	Total decimal.Decimal `json:"total"`
}

// DateRangeParams defines the optional from/to window of aggregate queries.
type DateRangeParams struct {
	From *string `form:"from"` // RFC 3339 date
	To   *string `form:"to"`
}

// TrialBalanceResponse wraps the trial balance rows.
type TrialBalanceResponse struct {
	Rows []domain.TrialBalanceRow `json:"rows"`
}
