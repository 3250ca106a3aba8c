package summary

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sitecrew/workforce-backend-go/internal/domain/rate"
	"github.com/sitecrew/workforce-backend-go/internal/domain/summary"
	"github.com/stretchr/testify/assert"
)

func TestPriceHourly(t *testing.T) {
	calc := NewFinancialCalculator(0)

	policy := rate.Policy{
		Type:          rate.TypeHourly,
		Rate:          decimal.NewFromInt(10),
		OTMultiplier:  decimal.NewFromFloat(1.5),
		TaxPercentage: decimal.NewFromFloat(8.5),
	}
	agg := summary.AggregationResult{
		TotalWorkedHours: decimal.NewFromInt(8),
		TotalOTHours:     decimal.NewFromInt(2),
	}

	fin := calc.Price(agg, policy)

	// 8*10 + 2*10*1.5
	assert.Equal(t, "110.00", fin.Subtotal.StringFixed(2))
	assert.Equal(t, "9.35", fin.TaxAmount.StringFixed(2))
	assert.Equal(t, "119.35", fin.TotalAmount.StringFixed(2))
}

func TestPriceRoundsHalfUpOnce(t *testing.T) {
	calc := NewFinancialCalculator(0)

	policy := rate.Policy{
		Type:          rate.TypeHourly,
		Rate:          decimal.NewFromInt(10),
		TaxPercentage: decimal.NewFromFloat(8.5),
	}
	agg := summary.AggregationResult{
		TotalWorkedHours: decimal.NewFromInt(10),
	}

	fin := calc.Price(agg, policy)

	assert.Equal(t, "100.00", fin.Subtotal.StringFixed(2))
	assert.Equal(t, "8.50", fin.TaxAmount.StringFixed(2))
	assert.Equal(t, "108.50", fin.TotalAmount.StringFixed(2))
}

func TestPriceHourlyDefaultsOTMultiplier(t *testing.T) {
	calc := NewFinancialCalculator(0)

	policy := rate.Policy{
		Type: rate.TypeHourly,
		Rate: decimal.NewFromInt(10),
	}
	agg := summary.AggregationResult{
		TotalWorkedHours: decimal.NewFromInt(8),
		TotalOTHours:     decimal.NewFromInt(2),
	}

	fin := calc.Price(agg, policy)

	// Missing multiplier prices OT at the plain rate.
	assert.Equal(t, "100.00", fin.Subtotal.StringFixed(2))
}

func TestPriceDaily(t *testing.T) {
	calc := NewFinancialCalculator(0)

	policy := rate.Policy{
		Type: rate.TypeDaily,
		Rate: decimal.NewFromInt(150),
	}
	agg := summary.AggregationResult{TotalWorkingDays: 21}

	fin := calc.Price(agg, policy)
	assert.Equal(t, "3150.00", fin.Subtotal.StringFixed(2))
}

func TestPriceMonthlyAndContractAreFlat(t *testing.T) {
	calc := NewFinancialCalculator(0)

	for _, rt := range []rate.Type{rate.TypeMonthly, rate.TypeContract} {
		policy := rate.Policy{
			Type: rt,
			Rate: decimal.NewFromInt(5000),
		}
		agg := summary.AggregationResult{
			TotalWorkingDays: 12,
			TotalWorkedHours: decimal.NewFromInt(90),
		}

		fin := calc.Price(agg, policy)
		assert.Equal(t, "5000.00", fin.Subtotal.StringFixed(2))
	}
}

func TestPriceFallsBackToDefaultTax(t *testing.T) {
	calc := NewFinancialCalculator(11)

	policy := rate.Policy{
		Type: rate.TypeMonthly,
		Rate: decimal.NewFromInt(1000),
	}

	fin := calc.Price(summary.AggregationResult{}, policy)

	assert.Equal(t, "11", fin.TaxPercentage.String())
	assert.Equal(t, "110.00", fin.TaxAmount.StringFixed(2))
	assert.Equal(t, "1110.00", fin.TotalAmount.StringFixed(2))
}
