package models

import "github.com/shopspring/decimal"

// AccountSnapshot is a read-only bundle of an account's buckets at a
// point in time. ComparisonReport does not embed it. It mirrors the
// teacher's report-struct shape (BillingCycleSummary, PaymentSummary)
// generalised to the allocator domain.
type AccountSnapshot struct {
	AccountID string
	Buckets   []DebtBucket
}

// StrategyOutcome pairs an allocation produced on a snapshot with the
// strategy that produced it, for side-by-side comparison reports.
type StrategyOutcome struct {
	Strategy           AllocationStrategy
	Allocation         PaymentAllocation
	TotalInterestSaved decimal.Decimal
}

// ComparisonReport is the result of running every applicable strategy
// against the same snapshot without mutating any bucket state.
type ComparisonReport struct {
	AccountID string
	Payment   decimal.Decimal
	Outcomes  []StrategyOutcome
	Best      AllocationStrategy
}
