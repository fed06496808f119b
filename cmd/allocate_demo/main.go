// Command allocate_demo drives the allocation service end to end,
// in-process, with no database: it seeds an account with debt
// buckets, runs the bank-rule and DP-optimal allocators, compares
// them, applies the winner, and prints the resulting history.
package main

import (
	"fmt"
	"log"

	"github.com/livefire2015/creditcore/money"
	"github.com/livefire2015/creditcore/models"
	"github.com/livefire2015/creditcore/services"
	"github.com/shopspring/decimal"
)

func mustBucket(id string, balance, rate, min string, prio int) models.DebtBucket {
	b, err := models.NewDebtBucket(
		id,
		models.BucketPurchase,
		decimal.RequireFromString(balance),
		decimal.RequireFromString(rate),
		decimal.RequireFromString(min),
		money.DateFromYMD(2026, 3, 1),
		prio,
	)
	if err != nil {
		log.Fatalf("build bucket %s: %v", id, err)
	}
	return b
}

func main() {
	fmt.Println("=== creditcore - Allocation Service Demo ===")

	svc := services.NewAllocationService(nil, services.NewStdLogger(nil))

	account := "acct-demo-1"
	svc.SetAccountBuckets(account, []models.DebtBucket{
		mustBucket("PURCHASES", "2450.00", "0.2199", "75.00", 2),
		mustBucket("CASH_ADV", "600.00", "0.2699", "25.00", 1),
		mustBucket("INSTALLMENT", "1200.00", "0.0999", "60.00", 3),
	})

	payment := decimal.RequireFromString("500.00")

	comparison := svc.CompareAllStrategies(account, payment)
	fmt.Printf("\nComparing strategies for a %s payment:\n", payment)
	for _, outcome := range comparison.Outcomes {
		fmt.Printf("  %-10s total_interest_saved=%s\n", outcome.Strategy, outcome.TotalInterestSaved)
	}
	fmt.Printf("  best: %s\n", comparison.Best)

	applied, err := svc.AllocatePayment(account, payment, models.AllocationRequest{Kind: comparison.Best})
	if err != nil {
		log.Fatalf("allocate payment: %v", err)
	}

	fmt.Printf("\nApplied allocation %s (strategy=%s, state=%s):\n", applied.AllocationID, applied.Strategy, applied.State)
	for bucketID, amount := range applied.PerBucketAmount {
		fmt.Printf("  %s -> %s\n", bucketID, amount)
	}
	fmt.Printf("  remainder: %s\n", applied.Remainder())

	fmt.Println("\nAllocation history (newest first):")
	for _, record := range svc.GetAllocationHistory(account) {
		fmt.Printf("  %s strategy=%s saved=%s\n", record.AllocationID, record.Strategy, record.TotalInterestSaved)
	}
}
