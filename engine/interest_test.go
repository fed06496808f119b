package engine

import (
	"testing"

	"github.com/livefire2015/creditcore/models"
	"github.com/livefire2015/creditcore/money"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func s4Rates() map[models.BalanceBucket]decimal.Decimal {
	return map[models.BalanceBucket]decimal.Decimal{
		models.BalancePurchase: decimal.RequireFromString("0.18"),
	}
}

// S4: sweep-line total and brute-force total must agree within
// MatchTolerance.
func TestCrossCheck_S4_SweepAndBruteForceAgree(t *testing.T) {
	sweep, r := s4Sweep()
	calc, err := NewCalculator(s4Rates(), nil)
	require.NoError(t, err)

	result := CrossCheck(calc, sweep, s4Rates(), r)

	assert.True(t, result.Agrees,
		"sweep=%s brute=%s diverge beyond tolerance", result.SweepTotal, result.BruteTotal)
	diff := result.SweepTotal.Sub(result.BruteTotal).Abs()
	assert.True(t, diff.LessThanOrEqual(MatchTolerance))
}

// Invariant 4: for any engine and range, the period-average formula
// and the brute-force daily sum agree within T_match.
func TestCalculator_PeriodInterestMatchesBruteForce(t *testing.T) {
	sweep := NewSweepLine(nil)
	d0 := money.DateFromYMD(2026, 3, 1)
	sweep.AddChange(models.BalanceChange{Date: d0, Amount: decimal.RequireFromString("1234.56"), Bucket: models.BalanceCashAdvance})
	sweep.AddChange(models.BalanceChange{Date: d0.AddDays(5), Amount: decimal.RequireFromString("-300.00"), Bucket: models.BalanceCashAdvance})
	r, _ := money.NewDateRange(d0, d0.AddDays(44))

	rates := map[models.BalanceBucket]decimal.Decimal{models.BalanceCashAdvance: decimal.RequireFromString("0.2399")}
	calc, err := NewCalculator(rates, nil)
	require.NoError(t, err)

	result := CrossCheck(calc, sweep, rates, r)
	assert.True(t, result.Agrees)
}

func TestCalculator_NegativeRateRejected(t *testing.T) {
	rates := map[models.BalanceBucket]decimal.Decimal{models.BalancePurchase: decimal.RequireFromString("-0.01")}
	_, err := NewCalculator(rates, nil)
	assert.ErrorIs(t, err, models.ErrInvalidRate)
}

type capturingWarner struct {
	calls int
}

func (c *capturingWarner) Warn(string, map[string]any) { c.calls++ }

func TestCalculator_WarnsOnImplausibleRate(t *testing.T) {
	warner := &capturingWarner{}
	rates := map[models.BalanceBucket]decimal.Decimal{models.BalancePurchase: decimal.RequireFromString("2.50")}
	_, err := NewCalculator(rates, warner)

	require.NoError(t, err)
	assert.Equal(t, 1, warner.calls)
}

func TestCalculator_DailyInterest_ZeroOrNegativeBalanceContributesZero(t *testing.T) {
	sweep := NewSweepLine(nil)
	d0 := money.DateFromYMD(2026, 6, 1)
	r, _ := money.NewDateRange(d0, d0.AddDays(2))

	calc, err := NewCalculator(s4Rates(), nil)
	require.NoError(t, err)

	entries, total := calc.DailyInterest(sweep, r)
	assert.Len(t, entries, 3)
	assert.True(t, total.IsZero())
	for _, e := range entries {
		assert.True(t, e.DayTotal.IsZero())
	}
}

func TestCalculator_CompoundInterest(t *testing.T) {
	rates := map[models.BalanceBucket]decimal.Decimal{models.BalancePurchase: decimal.RequireFromString("0.12")}
	calc, err := NewCalculator(rates, nil)
	require.NoError(t, err)

	result := calc.CompoundInterest(decimal.RequireFromString("1000.00"), models.BalancePurchase, 12)
	// 1000 * (1 + 0.12/12)^12 = 1000 * 1.01^12 ~= 1126.83
	assert.True(t, result.GreaterThan(decimal.RequireFromString("1126.00")))
	assert.True(t, result.LessThan(decimal.RequireFromString("1127.00")))
}
