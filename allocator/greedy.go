package allocator

import (
	"github.com/livefire2015/creditcore/money"
	"github.com/livefire2015/creditcore/models"
	"github.com/shopspring/decimal"
)

// GreedyResult is the bank-rule allocation before it is packaged into
// a models.PaymentAllocation.
type GreedyResult struct {
	PerBucketAmount map[string]decimal.Decimal
	TotalSaved      decimal.Decimal
	Remainder       decimal.Decimal
}

// SolveGreedy implements the priority-rule "bank rule" allocator
// (spec.md §4.5): buckets sorted priority ascending, rate descending;
// each bucket in that order first takes its minimum payment (capped by
// what remains), then as much of its remaining balance as the leftover
// payment allows, before moving to the next bucket.
func SolveGreedy(buckets []models.DebtBucket, payment decimal.Decimal) GreedyResult {
	active := activeBuckets(buckets)
	result := GreedyResult{PerBucketAmount: map[string]decimal.Decimal{}}

	remaining := payment
	if !remaining.IsPositive() {
		result.Remainder = payment
		return result
	}

	totalSaved := money.Zero
	for _, b := range active {
		if !remaining.IsPositive() {
			break
		}

		minPortion := decimal.Min(b.MinimumPayment, remaining)
		allocated := minPortion

		leftoverBalance := b.CurrentBalance.Sub(minPortion)
		leftoverPayment := remaining.Sub(minPortion)
		extra := decimal.Min(leftoverBalance, leftoverPayment)
		if extra.IsPositive() {
			allocated = allocated.Add(extra)
		}

		if !allocated.IsPositive() {
			continue
		}
		allocated = money.Round2(allocated)
		result.PerBucketAmount[b.BucketID] = allocated
		totalSaved = totalSaved.Add(Benefit(b, allocated))
		remaining = remaining.Sub(allocated)
	}

	result.TotalSaved = money.Round2(totalSaved)
	result.Remainder = money.Round2(remaining)
	return result
}

// AllocateGreedy runs SolveGreedy and packages the result as a Draft
// PaymentAllocation with strategy BANK_RULE. Metrics.ComputationTimeMs
// is left at zero: the bank rule is a single linear pass, not worth
// timing.
func AllocateGreedy(buckets []models.DebtBucket, payment decimal.Decimal) models.PaymentAllocation {
	result := SolveGreedy(buckets, payment)
	alloc := models.NewDraftAllocation(models.StrategyBankRule, payment, result.PerBucketAmount)
	alloc.TotalInterestSaved = result.TotalSaved
	alloc.Metrics = models.AllocationMetrics{
		OptimizationScore: optimizationScore(result.PerBucketAmount),
	}
	return alloc
}
