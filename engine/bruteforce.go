package engine

import (
	"github.com/livefire2015/creditcore/models"
	"github.com/livefire2015/creditcore/money"
	"github.com/shopspring/decimal"
)

// BruteForceInterest is the day-by-day reference calculation (C5):
// Σ_d Σ_bucket round2(daily_balance[d][bucket] * rate / 365), with the
// per-day rounding applied before summing. It intentionally does not
// share code with Calculator.DailyInterest beyond the SweepLine
// query, so a bug in the sweep-line fast path's rounding order cannot
// silently hide in a shared helper.
func BruteForceInterest(sweep *SweepLine, rates map[models.BalanceBucket]decimal.Decimal, r money.DateRange) decimal.Decimal {
	total := money.Zero
	for _, db := range sweep.DailyBalances(r) {
		for _, bucket := range models.AllBalanceBuckets {
			balance := db.Get(bucket)
			if balance.LessThanOrEqual(money.Zero) {
				continue
			}
			rate := rates[bucket]
			dayInterest := money.Round2(balance.Mul(rate).Div(decimal.NewFromInt(DaysInYear)))
			total = total.Add(dayInterest)
		}
	}
	return total
}

// CrossCheckResult captures both computed totals and whether they
// agree within MatchTolerance.
type CrossCheckResult struct {
	SweepTotal decimal.Decimal
	BruteTotal decimal.Decimal
	Agrees     bool
}

// CrossCheck runs both the sweep-line period-average formula and the
// brute-force day-by-day reference over the same data and range, and
// reports whether they agree within MatchTolerance. Disagreement is a
// hard fault at the service layer (C9), not here: this function only
// measures.
func CrossCheck(calc *Calculator, sweep *SweepLine, rates map[models.BalanceBucket]decimal.Decimal, r money.DateRange) CrossCheckResult {
	sweepResult := calc.PeriodInterest(sweep, r)
	bruteTotal := BruteForceInterest(sweep, rates, r)
	return CrossCheckResult{
		SweepTotal: sweepResult.TotalInterest,
		BruteTotal: bruteTotal,
		Agrees:     money.WithinTolerance(sweepResult.TotalInterest, bruteTotal, MatchTolerance),
	}
}
