package services

import (
	"testing"

	"github.com/livefire2015/creditcore/models"
	"github.com/livefire2015/creditcore/money"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweepLineService_CalculateStatementInterest(t *testing.T) {
	svc := NewSweepLineService(nil, nil)
	rates := map[models.BalanceBucket]decimal.Decimal{models.BalancePurchase: decimal.RequireFromString("0.18")}
	require.NoError(t, svc.RegisterAccount("acct-1", nil, rates))

	d0 := money.DateFromYMD(2026, 1, 1)
	require.NoError(t, svc.AddBalanceChange("acct-1", models.BalanceChange{Date: d0, Amount: decimal.RequireFromString("500"), Bucket: models.BalancePurchase}))
	require.NoError(t, svc.AddBalanceChange("acct-1", models.BalanceChange{Date: d0.AddDays(10), Amount: decimal.RequireFromString("200"), Bucket: models.BalancePurchase}))

	r, err := money.NewDateRange(d0, d0.AddDays(29))
	require.NoError(t, err)

	result, err := svc.CalculateStatementInterest("acct-1", r)
	require.NoError(t, err)
	assert.True(t, result.TotalInterest.IsPositive())
}

func TestSweepLineService_UnknownAccountFails(t *testing.T) {
	svc := NewSweepLineService(nil, nil)
	d0 := money.DateFromYMD(2026, 1, 1)
	r, _ := money.NewDateRange(d0, d0)

	_, err := svc.CalculateStatementInterest("ghost", r)
	require.Error(t, err)
	fault, ok := models.AsFault(err)
	require.True(t, ok)
	assert.Equal(t, models.FaultUnknownAccount, fault.Kind)
}

func TestSweepLineService_Benchmark(t *testing.T) {
	svc := NewSweepLineService(nil, nil)
	rates := map[models.BalanceBucket]decimal.Decimal{models.BalancePurchase: decimal.RequireFromString("0.18")}
	require.NoError(t, svc.RegisterAccount("acct-1", nil, rates))

	d0 := money.DateFromYMD(2026, 1, 1)
	require.NoError(t, svc.AddBalanceChange("acct-1", models.BalanceChange{Date: d0, Amount: decimal.RequireFromString("500"), Bucket: models.BalancePurchase}))
	r, _ := money.NewDateRange(d0, d0.AddDays(9))

	bench, err := svc.Benchmark("acct-1", r)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, bench.SweepDuration.Nanoseconds(), int64(0))
	assert.GreaterOrEqual(t, bench.BruteDuration.Nanoseconds(), int64(0))
}
