package models

import (
	"github.com/livefire2015/creditcore/money"
	"github.com/shopspring/decimal"
)

// InterestResult is the output of a period interest calculation: the
// average balance and accrued interest per bucket, plus the total.
type InterestResult struct {
	Period               money.DateRange
	AverageBalancePerBucket map[BalanceBucket]decimal.Decimal
	InterestPerBucket       map[BalanceBucket]decimal.Decimal
	TotalInterest           decimal.Decimal
	PeriodDays              int
}
