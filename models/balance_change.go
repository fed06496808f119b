package models

import (
	"github.com/livefire2015/creditcore/money"
	"github.com/shopspring/decimal"
)

// BalanceChange is one signed movement against a single balance
// bucket on a single day. Multiple changes posted on the same day for
// the same bucket are summed by the sweep-line engine, never kept as
// separate events.
type BalanceChange struct {
	Date   money.Date
	Amount decimal.Decimal // signed: positive increases the bucket, negative decreases it
	Bucket BalanceBucket
}
