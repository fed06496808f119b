package models

import (
	"github.com/livefire2015/creditcore/money"
	"github.com/shopspring/decimal"
)

// DailyBalance is the per-bucket balance vector for a single day. It
// is always defined for every bucket in AllBalanceBuckets, zero where
// there is no history, per spec.
type DailyBalance struct {
	Date     money.Date
	Balances map[BalanceBucket]decimal.Decimal
}

// NewDailyBalance builds a DailyBalance with every known bucket
// defaulted to zero, then overlaid with the given balances.
func NewDailyBalance(date money.Date, balances map[BalanceBucket]decimal.Decimal) DailyBalance {
	full := make(map[BalanceBucket]decimal.Decimal, len(AllBalanceBuckets))
	for _, b := range AllBalanceBuckets {
		full[b] = money.Zero
	}
	for b, v := range balances {
		full[b] = v
	}
	return DailyBalance{Date: date, Balances: full}
}

// Get returns the balance for a bucket, zero if absent.
func (d DailyBalance) Get(bucket BalanceBucket) decimal.Decimal {
	if v, ok := d.Balances[bucket]; ok {
		return v
	}
	return money.Zero
}
