// Package allocator implements the two payment allocators that must
// agree on data contracts: the greedy priority-rule allocator (C7)
// and the optimal dynamic-programming allocator (C6).
package allocator

import (
	"sort"

	"github.com/livefire2015/creditcore/models"
	"github.com/shopspring/decimal"
)

// BenefitHorizonDays is the fixed projection window both allocators
// use to score a candidate allocation. It is a single tunable
// constant, not a statement-cycle lookup, per the spec's open
// question.
const BenefitHorizonDays = 30

var daysInYear = decimal.NewFromInt(365)
var horizonDays = decimal.NewFromInt(BenefitHorizonDays)

// Benefit is the interest saved over BenefitHorizonDays by retiring
// amount of a bucket's balance: amount * rate / 365 * horizonDays.
// Both allocators use this same function so their total_interest_saved
// figures are directly comparable.
func Benefit(bucket models.DebtBucket, amount decimal.Decimal) decimal.Decimal {
	if !amount.IsPositive() {
		return decimal.Zero
	}
	return amount.Mul(bucket.InterestRate).Div(daysInYear).Mul(horizonDays)
}

// activeBuckets returns buckets with a positive balance, sorted by
// priority ascending then rate descending (ties on both broken by
// bucket id, for determinism).
func activeBuckets(buckets []models.DebtBucket) []models.DebtBucket {
	active := make([]models.DebtBucket, 0, len(buckets))
	for _, b := range buckets {
		if b.HasDebt() {
			active = append(active, b)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		if active[i].Priority != active[j].Priority {
			return active[i].Priority < active[j].Priority
		}
		if !active[i].InterestRate.Equal(active[j].InterestRate) {
			return active[i].InterestRate.GreaterThan(active[j].InterestRate)
		}
		return active[i].BucketID < active[j].BucketID
	})
	return active
}

// optimizationScore scores an allocation by how many distinct buckets
// it touches: min(20 * touched, 100).
func optimizationScore(perBucket map[string]decimal.Decimal) int {
	touched := 0
	for _, amt := range perBucket {
		if amt.IsPositive() {
			touched++
		}
	}
	score := 20 * touched
	if score > 100 {
		score = 100
	}
	return score
}
