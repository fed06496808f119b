package allocator

import (
	"testing"

	"github.com/livefire2015/creditcore/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// S1: single bucket, full payoff.
func TestSolveGreedy_S1_SingleBucketFullPayoff(t *testing.T) {
	p1 := mustBucket(t, "P1", "1000.00", "0.18", "0", 1)
	result := SolveGreedy([]models.DebtBucket{p1}, decimal.RequireFromString("1500.00"))

	assert.True(t, decimal.RequireFromString("1000.00").Equal(result.PerBucketAmount["P1"]))
	assert.True(t, decimal.RequireFromString("500.00").Equal(result.Remainder))
	assert.True(t, decimal.RequireFromString("14.79").Equal(result.TotalSaved))
}

// S2: equal priority, tie-break by rate descending sends the whole
// payment to the higher-rate bucket.
func TestSolveGreedy_S2_TieBreaksByRateDescending(t *testing.T) {
	a := mustBucket(t, "A", "1000", "0.10", "0", 1)
	b := mustBucket(t, "B", "1000", "0.30", "0", 1)
	result := SolveGreedy([]models.DebtBucket{a, b}, decimal.RequireFromString("1000"))

	_, aAllocated := result.PerBucketAmount["A"]
	assert.False(t, aAllocated)
	assert.True(t, decimal.RequireFromString("1000").Equal(result.PerBucketAmount["B"]))
	assert.True(t, decimal.RequireFromString("24.66").Equal(result.TotalSaved))
}

// S3: priority wins over rate; A's minimum and priority keep the
// whole payment local to A.
func TestSolveGreedy_S3_PriorityBeforeRate(t *testing.T) {
	a := mustBucket(t, "A", "500", "0.20", "100", 1)
	b := mustBucket(t, "B", "500", "0.30", "100", 2)
	result := SolveGreedy([]models.DebtBucket{a, b}, decimal.RequireFromString("150"))

	assert.True(t, decimal.RequireFromString("150").Equal(result.PerBucketAmount["A"]))
	_, bAllocated := result.PerBucketAmount["B"]
	assert.False(t, bAllocated)
	assert.True(t, result.Remainder.IsZero())
}

// S6: empty bucket list or zero payment yields an empty allocation.
func TestSolveGreedy_S6_EmptyAndZero(t *testing.T) {
	p1 := mustBucket(t, "P1", "500", "0.18", "0", 1)

	empty := SolveGreedy(nil, decimal.RequireFromString("100"))
	assert.Empty(t, empty.PerBucketAmount)
	assert.True(t, empty.Remainder.Equal(decimal.RequireFromString("100")))

	zeroPayment := SolveGreedy([]models.DebtBucket{p1}, decimal.Zero)
	assert.Empty(t, zeroPayment.PerBucketAmount)
}

// Invariant 3: DP never does worse than greedy, up to the granularity
// truncation bound.
func TestAllocators_DPNeverWorseThanGreedyWithinEpsilon(t *testing.T) {
	buckets := []models.DebtBucket{
		mustBucket(t, "A", "500", "0.20", "100", 1),
		mustBucket(t, "B", "500", "0.30", "100", 2),
	}
	payment := decimal.RequireFromString("150")
	g := DefaultGranularity

	dp := SolveDP(buckets, payment, g)
	greedy := SolveGreedy(buckets, payment)

	maxRate := decimal.RequireFromString("0.30")
	epsilon := maxRate.Mul(payment).Mul(horizonDays).Div(daysInYear).Div(decimal.NewFromInt(int64(g)))

	assert.True(t, dp.TotalSaved.GreaterThanOrEqual(greedy.TotalSaved.Sub(epsilon)),
		"dp saved %s, greedy saved %s, epsilon %s", dp.TotalSaved, greedy.TotalSaved, epsilon)
}

// Invariant 1: every allocated amount stays within [0, balance] for
// both allocators.
func TestAllocators_RespectBalanceBounds(t *testing.T) {
	buckets := []models.DebtBucket{
		mustBucket(t, "A", "312.40", "0.11", "15", 3),
		mustBucket(t, "B", "990.00", "0.27", "40", 1),
	}
	payment := decimal.RequireFromString("700.00")
	byID := map[string]models.DebtBucket{"A": buckets[0], "B": buckets[1]}

	for _, perBucket := range []map[string]decimal.Decimal{
		SolveDP(buckets, payment, DefaultGranularity).PerBucketAmount,
		SolveGreedy(buckets, payment).PerBucketAmount,
	} {
		for id, amt := range perBucket {
			assert.True(t, amt.GreaterThanOrEqual(decimal.Zero))
			assert.True(t, amt.LessThanOrEqual(byID[id].CurrentBalance))
		}
	}
}
