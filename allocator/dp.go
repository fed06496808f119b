package allocator

import (
	"time"

	"github.com/livefire2015/creditcore/models"
	"github.com/livefire2015/creditcore/money"
	"github.com/shopspring/decimal"
)

// DefaultGranularity is G=100 (cent granularity) used whenever a
// caller does not specify one.
const DefaultGranularity = 100

// unitBenefitScale fixes the DP table to integer arithmetic: each
// table cell is an integer number of scaled benefit units, never a
// float, so two runs on identical inputs are byte-identical. Large
// enough that per-unit rounding error stays well under a cent even
// after multiplying by a realistic number of units.
const unitBenefitScale = 1_000_000_000

var allowedGranularities = map[int]bool{1: true, 10: true, 100: true, 1000: true}

// NormalizeGranularity validates G against the spec's allowed set,
// defaulting to DefaultGranularity for zero.
func NormalizeGranularity(g int) int {
	if g == 0 {
		return DefaultGranularity
	}
	if !allowedGranularities[g] {
		return DefaultGranularity
	}
	return g
}

// roundUnits converts a currency amount to an integer number of 1/G
// units, half-up.
func roundUnits(amount decimal.Decimal, g int) int64 {
	return amount.Mul(decimal.NewFromInt(int64(g))).Round(0).IntPart()
}

// unitsToAmount converts an integer unit count back to a currency
// amount at money scale.
func unitsToAmount(units int64, g int) decimal.Decimal {
	return money.Round2(decimal.NewFromInt(units).Div(decimal.NewFromInt(int64(g))))
}

// perUnitBenefit is the integer micro-benefit earned by allocating a
// single 1/G unit to bucket: rate * horizonDays / (365 * G), scaled
// and rounded once so every subsequent multiplication in the DP table
// stays exact integer arithmetic.
func perUnitBenefit(bucket models.DebtBucket, g int) int64 {
	scaled := bucket.InterestRate.
		Mul(horizonDays).
		Div(daysInYear.Mul(decimal.NewFromInt(int64(g)))).
		Mul(decimal.NewFromInt(unitBenefitScale))
	return scaled.Round(0).IntPart()
}

// DPResult is the solved knapsack, before it is packaged into a
// models.PaymentAllocation.
type DPResult struct {
	PerBucketAmount   map[string]decimal.Decimal
	TotalSaved        decimal.Decimal
	CacheEntries      int
	ComputationTimeMs float64
}

// SolveDP runs the bounded multi-item knapsack described in spec.md
// §4.4: minimise projected interest cost over BenefitHorizonDays,
// subject to each bucket's balance cap and the total payment cap,
// while never producing a partial allocation below a bucket's minimum
// payment (the spec's open question #2 — see SPEC_FULL.md §12 for the
// resolution: invalid partial-below-minimum units are excluded from
// the transition's candidate k values, rather than doubling DP state).
//
// U=0 or no active buckets returns an empty, zero-benefit result —
// not an error, per spec.
func SolveDP(buckets []models.DebtBucket, payment decimal.Decimal, granularity int) DPResult {
	start := time.Now()
	g := NormalizeGranularity(granularity)
	active := activeBuckets(buckets)

	result := DPResult{PerBucketAmount: map[string]decimal.Decimal{}}

	u := roundUnits(payment, g)
	if u <= 0 || len(active) == 0 {
		result.ComputationTimeMs = elapsedMs(start)
		return result
	}

	n := len(active)
	balanceUnits := make([]int64, n)
	minUnits := make([]int64, n)
	benefitPerUnit := make([]int64, n)
	for i, b := range active {
		balanceUnits[i] = roundUnits(b.CurrentBalance, g)
		minUnits[i] = roundUnits(b.MinimumPayment, g)
		benefitPerUnit[i] = perUnitBenefit(b, g)
	}

	dp := make([][]int64, n+1)
	choice := make([][]int64, n+1)
	for i := range dp {
		dp[i] = make([]int64, u+1)
		choice[i] = make([]int64, u+1)
	}

	for i := 1; i <= n; i++ {
		maxBalance := balanceUnits[i-1]
		minUnit := minUnits[i-1]
		benefit := benefitPerUnit[i-1]

		for j := int64(0); j <= u; j++ {
			best := dp[i-1][j] // k = 0: always a valid choice
			bestK := int64(0)

			kmax := j
			if maxBalance < kmax {
				kmax = maxBalance
			}
			for k := int64(1); k <= kmax; k++ {
				if k < minUnit && k != maxBalance {
					// Partial payment below the bucket's minimum that
					// doesn't fully pay it off: DP must not choose it.
					continue
				}
				cost := dp[i-1][j-k] - k*benefit
				if cost < best {
					best = cost
					bestK = k
				}
			}
			dp[i][j] = best
			choice[i][j] = bestK
		}
	}

	// Backtrack: smallest-k ties are already preserved because the
	// forward pass only overwrites best on a strictly smaller cost.
	j := u
	totalBenefitUnits := int64(0)
	for i := n; i >= 1; i-- {
		k := choice[i][j]
		if k > 0 {
			bucket := active[i-1]
			result.PerBucketAmount[bucket.BucketID] = unitsToAmount(k, g)
			totalBenefitUnits += k * benefitPerUnit[i-1]
		}
		j -= k
	}

	result.TotalSaved = money.Round2(decimal.NewFromInt(totalBenefitUnits).Div(decimal.NewFromInt(unitBenefitScale)))
	result.CacheEntries = (n + 1) * int(u+1)
	result.ComputationTimeMs = elapsedMs(start)
	return result
}

func elapsedMs(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}

// AllocateDP runs SolveDP and packages the result as a Draft
// PaymentAllocation with strategy DP_OPTIMAL.
func AllocateDP(buckets []models.DebtBucket, payment decimal.Decimal, granularity int) models.PaymentAllocation {
	result := SolveDP(buckets, payment, granularity)
	alloc := models.NewDraftAllocation(models.StrategyDPOptimal, payment, result.PerBucketAmount)
	alloc.TotalInterestSaved = result.TotalSaved
	alloc.Metrics = models.AllocationMetrics{
		DPCacheEntries:    result.CacheEntries,
		OptimizationScore: optimizationScore(result.PerBucketAmount),
		ComputationTimeMs: result.ComputationTimeMs,
	}
	return alloc
}
