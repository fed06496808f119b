package engine

import (
	"github.com/livefire2015/creditcore/models"
	"github.com/livefire2015/creditcore/money"
	"github.com/shopspring/decimal"
)

// DaysInYear is the ACT/365 day-count basis used throughout the
// interest engine.
const DaysInYear = 365

// MatchTolerance is the monetary tolerance used only in sweep-vs-brute
// cross-checks (spec.md's T_match). Kept constant rather than scaled
// by payment size per the spec's open-question decision — see
// SPEC_FULL.md §12.
var MatchTolerance = decimal.NewFromFloat(0.01)

// highRateWarnThreshold is the annual rate above which Calculator
// surfaces a non-fatal warning via its logger callback (spec.md §4.2:
// "rate > 2.0 accepted but a warning surface is offered").
var highRateWarnThreshold = decimal.NewFromInt(2)

// RateWarner receives a non-fatal warning when a configured rate looks
// implausible. It matches services.Logger's Warn signature without
// importing the services package (avoiding a cycle); services.Logger
// satisfies this interface.
type RateWarner interface {
	Warn(message string, fields map[string]any)
}

type noopWarner struct{}

func (noopWarner) Warn(string, map[string]any) {}

// Calculator computes period and per-day ACT/365 interest from a
// sweep-line's daily/average balances.
type Calculator struct {
	rates  map[models.BalanceBucket]decimal.Decimal
	warner RateWarner
}

// NewCalculator validates the rate map (rejecting any negative rate)
// and returns a Calculator. A nil warner installs a no-op.
func NewCalculator(rates map[models.BalanceBucket]decimal.Decimal, warner RateWarner) (*Calculator, error) {
	if warner == nil {
		warner = noopWarner{}
	}
	clean := make(map[models.BalanceBucket]decimal.Decimal, len(models.AllBalanceBuckets))
	for _, b := range models.AllBalanceBuckets {
		clean[b] = money.Zero
	}
	for b, rate := range rates {
		if rate.IsNegative() {
			return nil, models.ErrInvalidRate
		}
		if rate.GreaterThan(highRateWarnThreshold) {
			warner.Warn("interest rate exceeds 200% APR", map[string]any{
				"bucket": string(b),
				"rate":   rate.String(),
			})
		}
		clean[b] = rate
	}
	return &Calculator{rates: clean, warner: warner}, nil
}

func (c *Calculator) rateFor(bucket models.BalanceBucket) decimal.Decimal {
	if r, ok := c.rates[bucket]; ok {
		return r
	}
	return money.Zero
}

// PeriodInterest computes average-balance-based interest per bucket
// over range: avg = sweep.AverageBalances(range); for each bucket
// i = round2(avg * rate / 365 * days); summed into total.
func (c *Calculator) PeriodInterest(sweep *SweepLine, r money.DateRange) models.InterestResult {
	avg := sweep.AverageBalances(r)
	days := decimal.NewFromInt(int64(r.Days()))

	perBucket := make(map[models.BalanceBucket]decimal.Decimal, len(models.AllBalanceBuckets))
	total := money.Zero
	for _, bucket := range models.AllBalanceBuckets {
		rate := c.rateFor(bucket)
		interest := money.Round2(avg[bucket].Mul(rate).Div(decimal.NewFromInt(DaysInYear)).Mul(days))
		perBucket[bucket] = interest
		total = total.Add(interest)
	}

	return models.InterestResult{
		Period:                  r,
		AverageBalancePerBucket: avg,
		InterestPerBucket:       perBucket,
		TotalInterest:           total,
		PeriodDays:              r.Days(),
	}
}

// DailyInterestEntry is one day's per-bucket interest breakdown.
type DailyInterestEntry struct {
	Date      money.Date
	PerBucket map[models.BalanceBucket]decimal.Decimal
	DayTotal  decimal.Decimal
}

// DailyInterest computes, for every day in range, per-bucket interest
// on that day's balance: zero or negative balance contributes zero;
// otherwise round2(daily * rate / 365). Days are summed into a grand
// total.
func (c *Calculator) DailyInterest(sweep *SweepLine, r money.DateRange) ([]DailyInterestEntry, decimal.Decimal) {
	entries := make([]DailyInterestEntry, 0, r.Days())
	grandTotal := money.Zero

	for _, db := range sweep.DailyBalances(r) {
		entry := DailyInterestEntry{
			Date:      db.Date,
			PerBucket: make(map[models.BalanceBucket]decimal.Decimal, len(models.AllBalanceBuckets)),
		}
		for _, bucket := range models.AllBalanceBuckets {
			balance := db.Get(bucket)
			var interest decimal.Decimal
			if balance.LessThanOrEqual(money.Zero) {
				interest = money.Zero
			} else {
				rate := c.rateFor(bucket)
				interest = money.Round2(balance.Mul(rate).Div(decimal.NewFromInt(DaysInYear)))
			}
			entry.PerBucket[bucket] = interest
			entry.DayTotal = entry.DayTotal.Add(interest)
		}
		grandTotal = grandTotal.Add(entry.DayTotal)
		entries = append(entries, entry)
	}

	return entries, grandTotal
}

// CompoundInterest projects principal forward by the given number of
// months at bucket's configured annual rate, compounded monthly:
// principal * (1 + rate/12)^months, rounded half-up to cents.
func (c *Calculator) CompoundInterest(principal decimal.Decimal, bucket models.BalanceBucket, months int) decimal.Decimal {
	rate := c.rateFor(bucket)
	monthlyGrowth := decimal.NewFromInt(1).Add(rate.Div(decimal.NewFromInt(12)))

	factor := decimal.NewFromInt(1)
	for i := 0; i < months; i++ {
		factor = factor.Mul(monthlyGrowth)
	}
	return money.Round2(principal.Mul(factor))
}
