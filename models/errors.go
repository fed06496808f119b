package models

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Constructor-time validation errors. These carry no extra context
// beyond their message, so they stay plain sentinels in the teacher's
// style (see credit_card.go's ErrInvalidCreditLimit family).
var (
	ErrInvalidRate        = errors.New("creditcore: interest rate must be non-negative")
	ErrInvalidAmount      = errors.New("creditcore: amount must be non-negative")
	ErrMinimumExceedsDebt = errors.New("creditcore: minimum payment exceeds current balance")
	ErrEmptyBucketID      = errors.New("creditcore: bucket id must not be empty")
	ErrPaymentNotPositive = errors.New("creditcore: payment amount must be positive")
	ErrPaymentExceedsDebt = errors.New("creditcore: payment amount exceeds current balance")
)

// FaultKind enumerates the hard-fault categories a validator or
// allocator can raise once inputs are past constructor-time checks.
// These are the kinds spec.md §7 names; InvalidRate/InvalidAmount live
// above as sentinels since the spec treats them as constructor-time
// checks rather than validator faults.
type FaultKind string

const (
	FaultAllocationOverflow      FaultKind = "ALLOCATION_OVERFLOW"
	FaultMinimumPaymentViolation FaultKind = "MINIMUM_PAYMENT_VIOLATION"
	FaultNegativeBalance         FaultKind = "NEGATIVE_BALANCE"
	FaultTotalMismatch           FaultKind = "TOTAL_MISMATCH"
	FaultDpInconsistency         FaultKind = "DP_INCONSISTENCY"
	FaultBucketCapacityExceeded  FaultKind = "BUCKET_CAPACITY_EXCEEDED"
	FaultSweepLineMismatch       FaultKind = "SWEEP_LINE_MISMATCH"
	FaultUnknownAccount          FaultKind = "UNKNOWN_ACCOUNT"
	FaultUnknownAllocation       FaultKind = "UNKNOWN_ALLOCATION"
	FaultUnknownBucket           FaultKind = "UNKNOWN_BUCKET"
)

// Fault is the single rich error type the allocator, validator, and
// sweep-line cross-check raise. It always carries enough context to
// diagnose the failure without a second round trip to the caller.
type Fault struct {
	Kind     FaultKind
	BucketID string
	Expected decimal.Decimal
	Actual   decimal.Decimal
	Severity int // 1 (info) .. 5 (critical); validator faults are 4-5
	Message  string
}

func (f *Fault) Error() string {
	if f.BucketID != "" {
		return fmt.Sprintf("%s: %s (bucket=%s expected=%s actual=%s severity=%d)",
			f.Kind, f.Message, f.BucketID, f.Expected, f.Actual, f.Severity)
	}
	return fmt.Sprintf("%s: %s (expected=%s actual=%s severity=%d)",
		f.Kind, f.Message, f.Expected, f.Actual, f.Severity)
}

// NewFault builds a Fault with the given kind and message; Expected
// and Actual default to zero and Severity to 4. The caller can set
// them via the With* helpers below for readability at call sites.
func NewFault(kind FaultKind, message string) *Fault {
	return &Fault{Kind: kind, Message: message, Severity: 4}
}

// WithBucket sets the offending bucket id and returns the fault for chaining.
func (f *Fault) WithBucket(bucketID string) *Fault {
	f.BucketID = bucketID
	return f
}

// WithAmounts sets expected/actual amounts and returns the fault for chaining.
func (f *Fault) WithAmounts(expected, actual decimal.Decimal) *Fault {
	f.Expected = expected
	f.Actual = actual
	return f
}

// WithSeverity overrides the default severity and returns the fault for chaining.
func (f *Fault) WithSeverity(sev int) *Fault {
	f.Severity = sev
	return f
}

// AsFault unwraps err into a *Fault if it is (or wraps) one.
func AsFault(err error) (*Fault, bool) {
	var f *Fault
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}
