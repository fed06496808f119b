// Command interest_demo drives the sweep-line service end to end: it
// posts a handful of balance changes on one account, then asks for
// statement interest over a 30-day window, cross-checked against the
// brute-force reference, plus a benchmark of both paths.
package main

import (
	"fmt"
	"log"

	"github.com/livefire2015/creditcore/models"
	"github.com/livefire2015/creditcore/money"
	"github.com/livefire2015/creditcore/services"
	"github.com/shopspring/decimal"
)

func main() {
	fmt.Println("=== creditcore - Interest Engine Demo ===")

	svc := services.NewSweepLineService(nil, services.NewStdLogger(nil))

	account := "acct-demo-1"
	rates := map[models.BalanceBucket]decimal.Decimal{
		models.BalancePurchase:    decimal.RequireFromString("0.2199"),
		models.BalanceCashAdvance: decimal.RequireFromString("0.2699"),
	}
	if err := svc.RegisterAccount(account, nil, rates); err != nil {
		log.Fatalf("register account: %v", err)
	}

	d0 := money.DateFromYMD(2026, 3, 1)
	changes := []models.BalanceChange{
		{Date: d0, Amount: decimal.RequireFromString("1200.00"), Bucket: models.BalancePurchase},
		{Date: d0.AddDays(7), Amount: decimal.RequireFromString("350.00"), Bucket: models.BalanceCashAdvance},
		{Date: d0.AddDays(15), Amount: decimal.RequireFromString("-400.00"), Bucket: models.BalancePurchase},
	}
	for _, change := range changes {
		if err := svc.AddBalanceChange(account, change); err != nil {
			log.Fatalf("add balance change: %v", err)
		}
	}

	statementRange, err := money.NewDateRange(d0, d0.AddDays(29))
	if err != nil {
		log.Fatalf("build range: %v", err)
	}

	result, err := svc.CalculateStatementInterest(account, statementRange)
	if err != nil {
		log.Fatalf("calculate statement interest: %v", err)
	}

	fmt.Printf("\nStatement %s to %s (%d days):\n", statementRange.Start, statementRange.End, result.PeriodDays)
	for _, bucket := range models.AllBalanceBuckets {
		fmt.Printf("  %-14s avg_balance=%-14s interest=%s\n", bucket, result.AverageBalancePerBucket[bucket], result.InterestPerBucket[bucket])
	}
	fmt.Printf("  total_interest: %s\n", result.TotalInterest)

	bench, err := svc.Benchmark(account, statementRange)
	if err != nil {
		log.Fatalf("benchmark: %v", err)
	}
	fmt.Printf("\nBenchmark: sweep=%s brute=%s ratio=%.4f\n", bench.SweepDuration, bench.BruteDuration, bench.Ratio)
}
