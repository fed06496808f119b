package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPaymentAllocation_TotalAllocatedAndRemainder(t *testing.T) {
	alloc := NewDraftAllocation(StrategyBankRule, decimal.NewFromInt(100), map[string]decimal.Decimal{
		"A": decimal.NewFromInt(30),
		"B": decimal.NewFromInt(20),
	})

	assert.True(t, decimal.NewFromInt(50).Equal(alloc.TotalAllocated()))
	assert.True(t, decimal.NewFromInt(50).Equal(alloc.Remainder()))
	assert.Equal(t, AllocationDraft, alloc.State)
	assert.NotEqual(t, alloc.AllocationID.String(), "")
}

func TestPaymentAllocation_EmptyAllocationRemaindersFull(t *testing.T) {
	alloc := NewDraftAllocation(StrategyDPOptimal, decimal.NewFromInt(250), nil)

	assert.True(t, alloc.TotalAllocated().IsZero())
	assert.True(t, decimal.NewFromInt(250).Equal(alloc.Remainder()))
}

func TestFault_ErrorMessageAndUnwrap(t *testing.T) {
	f := NewFault(FaultMinimumPaymentViolation, "partial allocation below minimum").
		WithBucket("A").
		WithAmounts(decimal.NewFromInt(100), decimal.NewFromInt(40)).
		WithSeverity(5)

	var err error = f
	assert.Contains(t, err.Error(), "MINIMUM_PAYMENT_VIOLATION")
	assert.Contains(t, err.Error(), "A")

	got, ok := AsFault(err)
	assert.True(t, ok)
	assert.Equal(t, FaultMinimumPaymentViolation, got.Kind)
	assert.Equal(t, 5, got.Severity)
}
