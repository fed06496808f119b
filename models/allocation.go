package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AllocationStrategy is the closed sum of ways a payment can be
// apportioned across buckets. Dispatch on it is always by switch, not
// by interface polymorphism, per the "sum types over deep builders"
// design note.
type AllocationStrategy string

const (
	StrategyBankRule  AllocationStrategy = "BANK_RULE"
	StrategyDPOptimal AllocationStrategy = "DP_OPTIMAL"
	StrategyManual    AllocationStrategy = "MANUAL"
)

// AllocationRequest is the sum-type payload for AllocatePayment: Kind
// selects the variant, and ManualAmounts is only meaningful when
// Kind == StrategyManual.
type AllocationRequest struct {
	Kind          AllocationStrategy
	ManualAmounts map[string]decimal.Decimal // bucket_id -> amount, MANUAL only
	Granularity   int                        // DP_OPTIMAL only; 0 means "use default"
}

// AllocationState is the lifecycle stage of a PaymentAllocation
// record: Draft -> Validated -> Applied | Rejected.
type AllocationState string

const (
	AllocationDraft     AllocationState = "DRAFT"
	AllocationValidated AllocationState = "VALIDATED"
	AllocationApplied   AllocationState = "APPLIED"
	AllocationRejected  AllocationState = "REJECTED"
)

// AllocationMetrics carries the diagnostic numbers spec.md §3 requires
// on every PaymentAllocation.
type AllocationMetrics struct {
	DPCacheEntries     int
	OptimizationScore  int
	ComputationTimeMs  float64
}

// PaymentAllocation is the immutable result of running an allocator
// over a payment amount against a set of buckets.
type PaymentAllocation struct {
	AllocationID       uuid.UUID
	Strategy           AllocationStrategy
	State              AllocationState
	PaymentAmount      decimal.Decimal
	PerBucketAmount    map[string]decimal.Decimal // bucket_id -> amount
	TotalInterestSaved decimal.Decimal
	Metrics            AllocationMetrics
}

// TotalAllocated sums every per-bucket amount.
func (a PaymentAllocation) TotalAllocated() decimal.Decimal {
	total := decimal.Zero
	for _, amt := range a.PerBucketAmount {
		total = total.Add(amt)
	}
	return total
}

// Remainder is the portion of the payment left unallocated. It is
// always explicit (never silently dropped) via this accessor.
func (a PaymentAllocation) Remainder() decimal.Decimal {
	return a.PaymentAmount.Sub(a.TotalAllocated())
}

// NewDraftAllocation builds a fresh Draft-state allocation with a new
// id, ready for validation.
func NewDraftAllocation(strategy AllocationStrategy, paymentAmount decimal.Decimal, perBucket map[string]decimal.Decimal) PaymentAllocation {
	if perBucket == nil {
		perBucket = map[string]decimal.Decimal{}
	}
	return PaymentAllocation{
		AllocationID:    uuid.New(),
		Strategy:        strategy,
		State:           AllocationDraft,
		PaymentAmount:   paymentAmount,
		PerBucketAmount: perBucket,
	}
}
