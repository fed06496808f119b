package services

import (
	"sync"
	"time"

	"github.com/livefire2015/creditcore/engine"
	"github.com/livefire2015/creditcore/models"
	"github.com/livefire2015/creditcore/money"
	"github.com/shopspring/decimal"
)

// accountEngine bundles one account's sweep-line and calculator so
// SweepLineService only ever needs a single map lookup per account.
type accountEngine struct {
	sweep *engine.SweepLine
	calc  *engine.Calculator
	rates map[models.BalanceBucket]decimal.Decimal
}

// SweepLineService is C9: a per-account wrapper around the sweep-line
// engine (C3), the interest calculator (C4), and the brute-force
// cross-check (C5). It owns the per-account event store; every query
// derives its answer on demand, never caches an InterestResult.
type SweepLineService struct {
	clock  Clock
	logger Logger

	mu       sync.Mutex
	accounts map[string]*accountEngine
}

// NewSweepLineService builds a SweepLineService. A nil clock defaults
// to RealClock; a nil logger defaults to NoopLogger.
func NewSweepLineService(clock Clock, logger Logger) *SweepLineService {
	if clock == nil {
		clock = RealClock{}
	}
	if logger == nil {
		logger = NoopLogger{}
	}
	return &SweepLineService{
		clock:    clock,
		logger:   logger,
		accounts: make(map[string]*accountEngine),
	}
}

// RegisterAccount opens account's sweep-line with the given opening
// balances and per-bucket annual rates. Calling it again replaces the
// account's engine outright (it does not merge history).
func (s *SweepLineService) RegisterAccount(account string, opening map[models.BalanceBucket]decimal.Decimal, rates map[models.BalanceBucket]decimal.Decimal) error {
	calc, err := engine.NewCalculator(rates, s.logger)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[account] = &accountEngine{
		sweep: engine.NewSweepLine(opening),
		calc:  calc,
		rates: rates,
	}
	return nil
}

func (s *SweepLineService) get(account string) (*accountEngine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ae, ok := s.accounts[account]
	if !ok {
		return nil, models.NewFault(models.FaultUnknownAccount, "no sweep-line registered for account").
			WithBucket(account)
	}
	return ae, nil
}

// AddBalanceChange records one signed movement for account. A
// subsequent query observes it; add_balance_change happens-before any
// later query on the same account, per spec.md §5.
func (s *SweepLineService) AddBalanceChange(account string, change models.BalanceChange) error {
	ae, err := s.get(account)
	if err != nil {
		return err
	}
	ae.sweep.AddChange(change)
	return nil
}

// CalculateStatementInterest runs the interest calculator (C4) and the
// brute-force reference (C5) over the same data and range. Disagreement
// beyond engine.MatchTolerance is a hard fault that surfaces both
// totals; no result is returned on mismatch.
func (s *SweepLineService) CalculateStatementInterest(account string, r money.DateRange) (models.InterestResult, error) {
	ae, err := s.get(account)
	if err != nil {
		return models.InterestResult{}, err
	}

	result := ae.calc.PeriodInterest(ae.sweep, r)
	bruteTotal := engine.BruteForceInterest(ae.sweep, ae.rates, r)

	if !money.WithinTolerance(result.TotalInterest, bruteTotal, engine.MatchTolerance) {
		return models.InterestResult{}, models.NewFault(models.FaultSweepLineMismatch,
			"sweep-line and brute-force interest totals disagree beyond tolerance").
			WithAmounts(result.TotalInterest, bruteTotal)
	}

	return result, nil
}

// DailyBalanceHistory delegates to the account's sweep-line.
func (s *SweepLineService) DailyBalanceHistory(account string, r money.DateRange) ([]models.DailyBalance, error) {
	ae, err := s.get(account)
	if err != nil {
		return nil, err
	}
	return ae.sweep.DailyBalances(r), nil
}

// BalanceAt delegates to the account's sweep-line.
func (s *SweepLineService) BalanceAt(account string, d money.Date) (map[models.BalanceBucket]decimal.Decimal, error) {
	ae, err := s.get(account)
	if err != nil {
		return nil, err
	}
	return ae.sweep.BalanceAt(d), nil
}

// DailyInterest delegates to the account's calculator.
func (s *SweepLineService) DailyInterest(account string, r money.DateRange) ([]engine.DailyInterestEntry, decimal.Decimal, error) {
	ae, err := s.get(account)
	if err != nil {
		return nil, decimal.Zero, err
	}
	entries, total := ae.calc.DailyInterest(ae.sweep, r)
	return entries, total, nil
}

// BenchmarkResult reports the wall-clock cost of both interest paths
// over the same range, and their ratio (sweep / brute).
type BenchmarkResult struct {
	SweepDuration time.Duration
	BruteDuration time.Duration
	Ratio         float64
}

// Benchmark times both the sweep-line fast path and the brute-force
// reference over the same range, for operators deciding whether the
// fast path is worth its added complexity on a given workload.
func (s *SweepLineService) Benchmark(account string, r money.DateRange) (BenchmarkResult, error) {
	ae, err := s.get(account)
	if err != nil {
		return BenchmarkResult{}, err
	}

	sweepStart := time.Now()
	ae.calc.PeriodInterest(ae.sweep, r)
	sweepDuration := time.Since(sweepStart)

	bruteStart := time.Now()
	engine.BruteForceInterest(ae.sweep, ae.rates, r)
	bruteDuration := time.Since(bruteStart)

	ratio := 0.0
	if bruteDuration > 0 {
		ratio = float64(sweepDuration) / float64(bruteDuration)
	}

	return BenchmarkResult{SweepDuration: sweepDuration, BruteDuration: bruteDuration, Ratio: ratio}, nil
}
