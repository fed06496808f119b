package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/livefire2015/creditcore/models"
	"github.com/livefire2015/creditcore/money"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bucket(t *testing.T, id, balance, rate, min string, prio int) models.DebtBucket {
	t.Helper()
	b, err := models.NewDebtBucket(id, models.BucketPurchase,
		decimal.RequireFromString(balance), decimal.RequireFromString(rate),
		decimal.RequireFromString(min), money.DateFromYMD(2026, 1, 1), prio)
	require.NoError(t, err)
	return b
}

func TestAllocationService_AllocatePayment_AppliesOnSuccess(t *testing.T) {
	svc := NewAllocationService(nil, nil)
	svc.SetAccountBuckets("acct-1", []models.DebtBucket{
		bucket(t, "P1", "1000.00", "0.18", "0", 1),
	})

	alloc, err := svc.AllocatePayment("acct-1", decimal.RequireFromString("1500.00"), models.AllocationRequest{Kind: models.StrategyBankRule})
	require.NoError(t, err)
	assert.Equal(t, models.AllocationApplied, alloc.State)
	assert.True(t, decimal.RequireFromString("1000.00").Equal(alloc.PerBucketAmount["P1"]))

	history := svc.GetAllocationHistory("acct-1")
	require.Len(t, history, 1)
	assert.Equal(t, alloc.AllocationID, history[0].AllocationID)
}

func TestAllocationService_AllocatePayment_RejectsWithoutMutatingState(t *testing.T) {
	svc := NewAllocationService(nil, nil)
	svc.SetAccountBuckets("acct-1", []models.DebtBucket{
		bucket(t, "P1", "100.00", "0.18", "0", 1),
	})

	// MANUAL request that overflows the bucket's balance must fail
	// validation and leave account state untouched.
	_, err := svc.AllocatePayment("acct-1", decimal.RequireFromString("150.00"), models.AllocationRequest{
		Kind:          models.StrategyManual,
		ManualAmounts: map[string]decimal.Decimal{"P1": decimal.RequireFromString("150.00")},
	})
	require.Error(t, err)

	fault, ok := models.AsFault(err)
	require.True(t, ok)
	assert.Equal(t, models.FaultAllocationOverflow, fault.Kind)

	assert.Empty(t, svc.GetAllocationHistory("acct-1"))
}

func TestAllocationService_CompareAllStrategies(t *testing.T) {
	svc := NewAllocationService(nil, nil)
	svc.SetAccountBuckets("acct-1", []models.DebtBucket{
		bucket(t, "A", "1000", "0.10", "0", 1),
		bucket(t, "B", "1000", "0.30", "0", 1),
	})

	report := svc.CompareAllStrategies("acct-1", decimal.RequireFromString("1000"))
	assert.Len(t, report.Outcomes, 2)
	assert.True(t, decimal.RequireFromString("24.66").Equal(report.Outcomes[0].TotalInterestSaved))
	assert.True(t, decimal.RequireFromString("24.66").Equal(report.Outcomes[1].TotalInterestSaved))
}

func TestAllocationService_ApplyAllocation_IdempotentUntilBucketsChange(t *testing.T) {
	svc := NewAllocationService(nil, nil)
	svc.SetAccountBuckets("acct-1", []models.DebtBucket{
		bucket(t, "P1", "1000.00", "0.18", "0", 1),
	})

	alloc, err := svc.AllocatePayment("acct-1", decimal.RequireFromString("400.00"), models.AllocationRequest{Kind: models.StrategyBankRule})
	require.NoError(t, err)

	replay, err := svc.ApplyAllocation("acct-1", alloc.AllocationID)
	require.NoError(t, err)
	assert.Equal(t, alloc.AllocationID, replay.AllocationID)

	svc.AddDebtBucket("acct-1", bucket(t, "P2", "50.00", "0.10", "0", 2))
	_, err = svc.ApplyAllocation("acct-1", alloc.AllocationID)
	require.Error(t, err)
}

func TestAllocationService_ApplyAllocation_UnknownIDFails(t *testing.T) {
	svc := NewAllocationService(nil, nil)
	svc.SetAccountBuckets("acct-1", nil)

	_, err := svc.ApplyAllocation("acct-1", uuid.New())
	require.Error(t, err)
	fault, ok := models.AsFault(err)
	require.True(t, ok)
	assert.Equal(t, models.FaultUnknownAllocation, fault.Kind)
}
