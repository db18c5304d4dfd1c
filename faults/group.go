package faults

import (
	"sync/atomic"
	"time"
)

// Group aggregates every occurrence of one error shape.
type Group struct {
	fingerprint string
	errorType   string
	message     string
	stackTrace  string

	count     atomic.Int64
	firstUnix atomic.Int64 // unix nanos, set once
	lastUnix  atomic.Int64 // unix nanos, monotonically non-decreasing

	rateFloor time.Duration
	clock     func() time.Time
}

func newGroup(fingerprint string, err error, rateFloor time.Duration, clock func() time.Time) *Group {
	g := &Group{
		fingerprint: fingerprint,
		errorType:   errorTypeName(err),
		message:     err.Error(),
		rateFloor:   rateFloor,
		clock:       clock,
	}
	if st, ok := err.(StackTracer); ok {
		g.stackTrace = st.StackTrace()
	}
	return g
}

// record counts one occurrence at the given instant.
func (g *Group) record(now time.Time) {
	ns := now.UnixNano()
	g.count.Add(1)
	g.firstUnix.CompareAndSwap(0, ns)
	for {
		last := g.lastUnix.Load()
		if ns <= last || g.lastUnix.CompareAndSwap(last, ns) {
			return
		}
	}
}

// Fingerprint returns the group key.
func (g *Group) Fingerprint() string { return g.fingerprint }

// ErrorType returns the error's type name.
func (g *Group) ErrorType() string { return g.errorType }

// Message returns the representative message from the first occurrence.
func (g *Group) Message() string { return g.message }

// StackTrace returns the representative stack trace, if any.
func (g *Group) StackTrace() string { return g.stackTrace }

// Count returns the number of recorded occurrences.
func (g *Group) Count() int64 { return g.count.Load() }

// FirstSeen returns the instant of the first occurrence.
func (g *Group) FirstSeen() time.Time { return time.Unix(0, g.firstUnix.Load()) }

// LastSeen returns the instant of the most recent occurrence.
func (g *Group) LastSeen() time.Time { return time.Unix(0, g.lastUnix.Load()) }

// RatePerMinute returns occurrences per minute since the first one. The
// elapsed time is floored so near-simultaneous duplicates do not produce
// absurd rates.
func (g *Group) RatePerMinute() float64 {
	return g.rate(time.Minute)
}

// RatePerHour returns occurrences per hour since the first one.
func (g *Group) RatePerHour() float64 {
	return g.rate(time.Hour)
}

// RatePercent returns this group's share of the given operation total as a
// percentage, or 0 when the total is not positive.
func (g *Group) RatePercent(totalOps int64) float64 {
	if totalOps <= 0 {
		return 0
	}
	return float64(g.Count()) / float64(totalOps) * 100
}

func (g *Group) rate(per time.Duration) float64 {
	elapsed := g.clock().Sub(g.FirstSeen())
	if elapsed < g.rateFloor {
		elapsed = g.rateFloor
	}
	return float64(g.Count()) / (float64(elapsed) / float64(per))
}
