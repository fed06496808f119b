// Package services wires the allocator and interest engine into the
// two stateful, per-account services the core exposes: the allocation
// service (C8) and the sweep-line service (C9). Both depend only on
// the injected Clock and Logger below. Wall-clock time is read
// directly only for timings: the DP allocator's computation time and
// SweepLineService.Benchmark. Logs are written only through Logger.
package services

import "time"

// Clock is the sole source of wall-clock time the services use, kept
// as an injected interface so tests can pin time the way the teacher
// pins scheduled dates rather than stubbing time.Now directly.
type Clock interface {
	Now() time.Time
}

// RealClock delegates to time.Now.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// FixedClock always returns the same instant, for callers that need
// deterministic allocation-history timestamps.
type FixedClock struct {
	At time.Time
}

func (f FixedClock) Now() time.Time { return f.At }
