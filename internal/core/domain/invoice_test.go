package domain_test

import (
	"testing"

	"github.com/fixhub-app/fixhub_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestInvoiceTotal(t *testing.T) {
	tests := []struct {
		name     string
		subtotal string
		discount string
		vatRate  string
		want     string
	}{
		{
			name:     "default VAT with discount",
			subtotal: "1000",
			discount: "100",
			vatRate:  "20",
			want:     "1080",
		},
		{
			name:     "no discount",
			subtotal: "250",
			discount: "0",
			vatRate:  "20",
			want:     "300",
		},
		{
			name:     "zero VAT",
			subtotal: "99.99",
			discount: "0",
			vatRate:  "0",
			want:     "99.99",
		},
		{
			name:     "rounding to two decimals",
			subtotal: "10.05",
			discount: "0",
			vatRate:  "18",
			want:     "11.86",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subtotal := decimal.RequireFromString(tt.subtotal)
			discount := decimal.RequireFromString(tt.discount)
			vatRate := decimal.RequireFromString(tt.vatRate)

			got := domain.InvoiceTotal(subtotal, discount, vatRate)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"got %s, want %s", got.String(), tt.want)
		})
	}
}

func TestInvoiceTotal_TwoDecimalExponent(t *testing.T) {
	total := domain.InvoiceTotal(decimal.NewFromInt(1000), decimal.NewFromInt(100), decimal.NewFromInt(20))
	assert.Equal(t, "1080.00", total.StringFixed(2))
}
