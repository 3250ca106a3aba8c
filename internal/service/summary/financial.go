package summary

import (
	"github.com/shopspring/decimal"
	"github.com/sitecrew/workforce-backend-go/internal/domain/rate"
	"github.com/sitecrew/workforce-backend-go/internal/domain/summary"
)

var oneHundred = decimal.NewFromInt(100)

// FinancialCalculator prices an aggregation result under a rate policy.
type FinancialCalculator struct {
	defaultTaxPercentage decimal.Decimal
}

func NewFinancialCalculator(defaultTaxPercentage float64) *FinancialCalculator {
	return &FinancialCalculator{
		defaultTaxPercentage: decimal.NewFromFloat(defaultTaxPercentage),
	}
}

// Price computes subtotal, tax and total for one aggregation. Monetary
// rounding is half-up to 2 decimals and happens exactly once, on the final
// subtotal; per-line intermediate rounding would accumulate drift across
// the project breakdown rows.
func (c *FinancialCalculator) Price(agg summary.AggregationResult, policy rate.Policy) summary.FinancialResult {
	var sub decimal.Decimal

	switch policy.Type {
	case rate.TypeHourly:
		otMultiplier := policy.OTMultiplier
		if !otMultiplier.IsPositive() {
			otMultiplier = decimal.NewFromInt(1)
		}
		regularPay := agg.TotalWorkedHours.Mul(policy.Rate)
		otPay := agg.TotalOTHours.Mul(policy.Rate).Mul(otMultiplier)
		sub = regularPay.Add(otPay)
	case rate.TypeDaily:
		sub = policy.Rate.Mul(decimal.NewFromInt(int64(agg.TotalWorkingDays)))
	default:
		// Monthly and contract employees are paid flat for the period.
		sub = policy.Rate
	}

	taxPercentage := policy.TaxPercentage
	if taxPercentage.IsZero() {
		taxPercentage = c.defaultTaxPercentage
	}

	subtotal := sub.Round(2)
	taxAmount := subtotal.Mul(taxPercentage).Div(oneHundred).Round(2)

	return summary.FinancialResult{
		Subtotal:      subtotal,
		TaxPercentage: taxPercentage,
		TaxAmount:     taxAmount,
		TotalAmount:   subtotal.Add(taxAmount),
	}
}
