package models

import (
	"github.com/livefire2015/creditcore/money"
	"github.com/shopspring/decimal"
)

// DebtBucket is an immutable snapshot of one category of outstanding
// debt on an account. Every mutation (WithPayment) returns a new
// value; nothing here is ever edited in place.
type DebtBucket struct {
	BucketID       string
	Type           BucketType
	CurrentBalance decimal.Decimal
	InterestRate   decimal.Decimal // annual rate, e.g. 0.18 for 18% APR
	MinimumPayment decimal.Decimal
	DueDate        money.Date
	Priority       int
}

// NewDebtBucket validates and constructs a DebtBucket. Priority
// defaults to the bucket type's DefaultPriority when priority < 0 is
// passed by the caller as a sentinel for "use the default".
func NewDebtBucket(
	bucketID string,
	bucketType BucketType,
	currentBalance decimal.Decimal,
	interestRate decimal.Decimal,
	minimumPayment decimal.Decimal,
	dueDate money.Date,
	priority int,
) (DebtBucket, error) {
	if bucketID == "" {
		return DebtBucket{}, ErrEmptyBucketID
	}
	if currentBalance.IsNegative() {
		return DebtBucket{}, ErrInvalidAmount
	}
	if interestRate.IsNegative() {
		return DebtBucket{}, ErrInvalidRate
	}
	if minimumPayment.IsNegative() {
		return DebtBucket{}, ErrInvalidAmount
	}
	if minimumPayment.GreaterThan(currentBalance) {
		return DebtBucket{}, ErrMinimumExceedsDebt
	}

	if priority < 0 {
		priority = bucketType.DefaultPriority()
	}

	return DebtBucket{
		BucketID:       bucketID,
		Type:           bucketType,
		CurrentBalance: currentBalance,
		InterestRate:   interestRate,
		MinimumPayment: minimumPayment,
		DueDate:        dueDate,
		Priority:       priority,
	}, nil
}

// HasDebt reports whether the bucket currently carries a balance.
func (b DebtBucket) HasDebt() bool {
	return b.CurrentBalance.GreaterThan(money.Zero)
}

// WithPayment returns a new DebtBucket with amount subtracted from the
// current balance. Rejects amount <= 0 or amount > current balance, per
// spec.
func (b DebtBucket) WithPayment(amount decimal.Decimal) (DebtBucket, error) {
	if !amount.IsPositive() {
		return DebtBucket{}, ErrPaymentNotPositive
	}
	if amount.GreaterThan(b.CurrentBalance) {
		return DebtBucket{}, ErrPaymentExceedsDebt
	}

	next := b
	next.CurrentBalance = money.Round2(b.CurrentBalance.Sub(amount))
	return next, nil
}

// MinimumPaymentOrFull returns the minimum due, capped so that a
// balance smaller than the stated minimum simply requires full
// payoff — mirroring the teacher's CreditCard.CalculateMinimumPayment
// "greater of percent or fixed, capped at balance" shape, specialised
// here to a bucket that already carries an explicit minimum.
func (b DebtBucket) MinimumPaymentOrFull() decimal.Decimal {
	if b.MinimumPayment.GreaterThan(b.CurrentBalance) {
		return b.CurrentBalance
	}
	return b.MinimumPayment
}
