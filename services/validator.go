package services

import (
	"github.com/livefire2015/creditcore/models"
	"github.com/shopspring/decimal"
)

// validateAllocation enforces the four post-allocation invariants from
// spec.md §4.6, checked before any bucket is mutated. Each allocated
// bucket is checked for an unknown id, overflow, minimum payment and
// negative balance, in that order; the total against the payment is
// checked last. It returns the first violation found as a
// *models.Fault, or nil.
func validateAllocation(alloc models.PaymentAllocation, buckets []models.DebtBucket) error {
	byID := make(map[string]models.DebtBucket, len(buckets))
	for _, b := range buckets {
		byID[b.BucketID] = b
	}

	total := decimal.Zero
	for bucketID, allocated := range alloc.PerBucketAmount {
		bucket, ok := byID[bucketID]
		if !ok {
			return models.NewFault(models.FaultUnknownBucket, "allocation references an unknown bucket").
				WithBucket(bucketID)
		}
		total = total.Add(allocated)

		if allocated.GreaterThan(bucket.CurrentBalance) {
			return models.NewFault(models.FaultAllocationOverflow, "allocated amount exceeds bucket balance").
				WithBucket(bucketID).
				WithAmounts(bucket.CurrentBalance, allocated)
		}

		isPartial := allocated.IsPositive() && allocated.LessThan(bucket.MinimumPayment)
		isFullPayoff := allocated.Equal(bucket.CurrentBalance)
		if isPartial && !isFullPayoff {
			return models.NewFault(models.FaultMinimumPaymentViolation, "partial allocation below minimum payment").
				WithBucket(bucketID).
				WithAmounts(bucket.MinimumPayment, allocated)
		}

		remaining := bucket.CurrentBalance.Sub(allocated)
		if remaining.IsNegative() {
			return models.NewFault(models.FaultNegativeBalance, "allocation would drive bucket balance negative").
				WithBucket(bucketID).
				WithAmounts(decimal.Zero, remaining)
		}
	}

	if total.GreaterThan(alloc.PaymentAmount) {
		return models.NewFault(models.FaultTotalMismatch, "sum of allocated amounts exceeds payment amount").
			WithAmounts(alloc.PaymentAmount, total)
	}

	return nil
}
