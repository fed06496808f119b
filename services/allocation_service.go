package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/livefire2015/creditcore/allocator"
	"github.com/livefire2015/creditcore/models"
	"github.com/shopspring/decimal"
)

// historyEntry pairs an applied allocation with the bucket snapshot it
// was validated against, so ApplyAllocation can detect drift.
type historyEntry struct {
	allocation   models.PaymentAllocation
	bucketsAfter []models.DebtBucket
	appliedAt    time.Time
}

// AllocationService is C8: it owns a per-account vector of debt
// buckets and an append-only allocation history, runs either allocator
// against a requested payment, enforces the validator, and applies
// the result. It replaces the source's process-wide concurrent maps
// (spec.md §9) with an explicit value a caller constructs and holds.
type AllocationService struct {
	clock  Clock
	logger Logger

	mu           sync.Mutex // guards accountLocks and the two maps below
	accountLocks map[string]*sync.Mutex
	buckets      map[string][]models.DebtBucket
	history      map[string][]historyEntry
}

// NewAllocationService builds an AllocationService. A nil clock
// defaults to RealClock; a nil logger defaults to NoopLogger.
func NewAllocationService(clock Clock, logger Logger) *AllocationService {
	if clock == nil {
		clock = RealClock{}
	}
	if logger == nil {
		logger = NoopLogger{}
	}
	return &AllocationService{
		clock:        clock,
		logger:       logger,
		accountLocks: make(map[string]*sync.Mutex),
		buckets:      make(map[string][]models.DebtBucket),
		history:      make(map[string][]historyEntry),
	}
}

// lockFor returns the per-account mutex, creating one on first use.
// Lock-striping by account id satisfies spec.md §5's "per-key
// linearisability, no locks exposed" contract without serialising
// unrelated accounts behind a single global lock.
func (s *AllocationService) lockFor(account string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.accountLocks[account]
	if !ok {
		lock = &sync.Mutex{}
		s.accountLocks[account] = lock
	}
	return lock
}

// SetAccountBuckets replaces the full bucket vector for account.
func (s *AllocationService) SetAccountBuckets(account string, buckets []models.DebtBucket) {
	lock := s.lockFor(account)
	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	s.buckets[account] = append([]models.DebtBucket(nil), buckets...)
	s.mu.Unlock()
}

// AddDebtBucket appends one bucket to account's vector.
func (s *AllocationService) AddDebtBucket(account string, bucket models.DebtBucket) {
	lock := s.lockFor(account)
	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	s.buckets[account] = append(s.buckets[account], bucket)
	s.mu.Unlock()
}

func (s *AllocationService) snapshot(account string) []models.DebtBucket {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.DebtBucket(nil), s.buckets[account]...)
}

// runAllocator dispatches on the closed AllocationRequest sum type —
// by switch, never by interface polymorphism, per the spec's
// "sum types over deep builders" design note.
func runAllocator(buckets []models.DebtBucket, amount decimal.Decimal, req models.AllocationRequest) (models.PaymentAllocation, error) {
	switch req.Kind {
	case models.StrategyBankRule:
		return allocator.AllocateGreedy(buckets, amount), nil
	case models.StrategyDPOptimal:
		return allocator.AllocateDP(buckets, amount, req.Granularity), nil
	case models.StrategyManual:
		alloc := models.NewDraftAllocation(models.StrategyManual, amount, req.ManualAmounts)
		return alloc, nil
	default:
		return models.PaymentAllocation{}, fmt.Errorf("creditcore: unknown allocation strategy %q", req.Kind)
	}
}

// applyToBuckets returns the bucket vector after deducting alloc's
// per-bucket amounts; callers must have already validated alloc.
func applyToBuckets(buckets []models.DebtBucket, alloc models.PaymentAllocation) ([]models.DebtBucket, error) {
	next := append([]models.DebtBucket(nil), buckets...)
	for i, b := range next {
		amt, ok := alloc.PerBucketAmount[b.BucketID]
		if !ok || !amt.IsPositive() {
			continue
		}
		updated, err := b.WithPayment(amt)
		if err != nil {
			return nil, err
		}
		next[i] = updated
	}
	return next, nil
}

// AllocatePayment runs the requested allocator, validates the result,
// and — only if validation passes — applies it to the account's
// buckets and records it in history. Validator failures are hard
// faults: account state is left untouched.
func (s *AllocationService) AllocatePayment(account string, amount decimal.Decimal, req models.AllocationRequest) (models.PaymentAllocation, error) {
	lock := s.lockFor(account)
	lock.Lock()
	defer lock.Unlock()

	buckets := s.snapshot(account)

	alloc, err := runAllocator(buckets, amount, req)
	if err != nil {
		return models.PaymentAllocation{}, err
	}

	if err := validateAllocation(alloc, buckets); err != nil {
		alloc.State = models.AllocationRejected
		return alloc, err
	}
	alloc.State = models.AllocationValidated

	nextBuckets, err := applyToBuckets(buckets, alloc)
	if err != nil {
		return models.PaymentAllocation{}, err
	}
	alloc.State = models.AllocationApplied

	s.mu.Lock()
	s.buckets[account] = nextBuckets
	s.history[account] = append(s.history[account], historyEntry{
		allocation:   alloc,
		bucketsAfter: nextBuckets,
		appliedAt:    s.clock.Now(),
	})
	s.mu.Unlock()

	return alloc, nil
}

// ApplyAllocation re-applies a previously recorded allocation. It is
// idempotent when the account's bucket snapshot is unchanged since the
// allocation was first applied; otherwise it fails rather than
// double-deducting (invariant 7).
func (s *AllocationService) ApplyAllocation(account string, allocationID uuid.UUID) (models.PaymentAllocation, error) {
	lock := s.lockFor(account)
	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	entries := s.history[account]
	s.mu.Unlock()

	for _, entry := range entries {
		if entry.allocation.AllocationID != allocationID {
			continue
		}
		current := s.snapshot(account)
		if bucketsEqual(current, entry.bucketsAfter) {
			return entry.allocation, nil // already applied, no-op
		}
		return models.PaymentAllocation{}, models.NewFault(models.FaultTotalMismatch,
			"account buckets have changed since this allocation was applied").
			WithBucket(account)
	}
	return models.PaymentAllocation{}, models.NewFault(models.FaultUnknownAllocation, "no allocation with this id for account").
		WithBucket(allocationID.String())
}

func bucketsEqual(a, b []models.DebtBucket) bool {
	if len(a) != len(b) {
		return false
	}
	byID := make(map[string]models.DebtBucket, len(a))
	for _, bucket := range a {
		byID[bucket.BucketID] = bucket
	}
	for _, bucket := range b {
		other, ok := byID[bucket.BucketID]
		if !ok || !other.CurrentBalance.Equal(bucket.CurrentBalance) {
			return false
		}
	}
	return true
}

// GetAllocationHistory returns account's applied allocations,
// newest first.
func (s *AllocationService) GetAllocationHistory(account string) []models.PaymentAllocation {
	s.mu.Lock()
	entries := append([]historyEntry(nil), s.history[account]...)
	s.mu.Unlock()

	out := make([]models.PaymentAllocation, len(entries))
	for i, entry := range entries {
		out[len(entries)-1-i] = entry.allocation
	}
	return out
}

// CompareAllStrategies runs every strategy applicable without a
// MANUAL map (BANK_RULE and DP_OPTIMAL) against a read-only snapshot
// and reports the best by total_interest_saved, ties broken toward
// BANK_RULE.
func (s *AllocationService) CompareAllStrategies(account string, amount decimal.Decimal) models.ComparisonReport {
	buckets := s.snapshot(account)

	bankRule := allocator.AllocateGreedy(buckets, amount)
	dpOptimal := allocator.AllocateDP(buckets, amount, allocator.DefaultGranularity)

	outcomes := []models.StrategyOutcome{
		{Strategy: models.StrategyBankRule, Allocation: bankRule, TotalInterestSaved: bankRule.TotalInterestSaved},
		{Strategy: models.StrategyDPOptimal, Allocation: dpOptimal, TotalInterestSaved: dpOptimal.TotalInterestSaved},
	}

	best := outcomes[0]
	if outcomes[1].TotalInterestSaved.GreaterThan(best.TotalInterestSaved) {
		best = outcomes[1]
	}

	return models.ComparisonReport{
		AccountID: account,
		Payment:   amount,
		Outcomes:  outcomes,
		Best:      best.Strategy,
	}
}

// CompareDPvsBankRule is the specialised two-way comparison named in
// spec.md §4.6; it delegates to CompareAllStrategies since both
// applicable strategies are already exactly those two.
func (s *AllocationService) CompareDPvsBankRule(account string, amount decimal.Decimal) models.ComparisonReport {
	return s.CompareAllStrategies(account, amount)
}
