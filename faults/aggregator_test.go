package faults

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

// fakeClock is a settable clock for deterministic rate and eviction tests.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// TestAggregator_DedupSameFingerprint verifies 5 equivalent errors yield one
// group with count 5.
func TestAggregator_DedupSameFingerprint(t *testing.T) {
	a := NewAggregator(Config{})

	for i := 0; i < 5; i++ {
		if _, err := a.Record(errors.New("connection refused")); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	if got := a.GroupCount(); got != 1 {
		t.Fatalf("GroupCount = %d, want 1", got)
	}
	groups := a.Groups()
	if len(groups) != 1 {
		t.Fatalf("len(Groups) = %d, want 1", len(groups))
	}
	if got := groups[0].Count(); got != 5 {
		t.Errorf("Count = %d, want 5", got)
	}
	if got := a.TotalCount(); got != 5 {
		t.Errorf("TotalCount = %d, want 5", got)
	}
}

// TestAggregator_DistinctFingerprints verifies two distinct shapes yield two
// groups.
func TestAggregator_DistinctFingerprints(t *testing.T) {
	a := NewAggregator(Config{})

	_, _ = a.Record(errors.New("connection refused"))
	_, _ = a.Record(errors.New("permission denied"))

	if got := a.GroupCount(); got != 2 {
		t.Errorf("GroupCount = %d, want 2", got)
	}
}

// TestAggregator_NilError verifies the invalid-argument contract.
func TestAggregator_NilError(t *testing.T) {
	a := NewAggregator(Config{})
	if _, err := a.Record(nil); !errors.Is(err, ErrNilError) {
		t.Errorf("Record(nil) error = %v, want ErrNilError", err)
	}
}

// TestAggregator_ConcurrentFirstOccurrence verifies the create race resolves
// to exactly one group with combined counts.
func TestAggregator_ConcurrentFirstOccurrence(t *testing.T) {
	a := NewAggregator(Config{})

	const goroutines = 50
	var wg sync.WaitGroup
	wg.Add(goroutines)
	start := make(chan struct{})
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			<-start
			_, _ = a.Record(errors.New("boom"))
		}()
	}
	close(start)
	wg.Wait()

	if got := a.GroupCount(); got != 1 {
		t.Fatalf("GroupCount = %d, want 1", got)
	}
	if got := a.Groups()[0].Count(); got != goroutines {
		t.Errorf("Count = %d, want %d", got, goroutines)
	}
}

// TestAggregator_LazyEviction verifies stale groups disappear on read while
// fresh ones survive.
func TestAggregator_LazyEviction(t *testing.T) {
	clock := newFakeClock()
	a := NewAggregator(Config{ExpirationWindow: time.Hour, Clock: clock.Now})

	_, _ = a.Record(errors.New("stale"))
	clock.Advance(2 * time.Hour)
	_, _ = a.Record(errors.New("fresh"))

	groups := a.Groups()
	if len(groups) != 1 {
		t.Fatalf("len(Groups) = %d, want 1", len(groups))
	}
	if groups[0].Message() != "fresh" {
		t.Errorf("surviving group = %q, want fresh", groups[0].Message())
	}
	if got := a.GroupCount(); got != 1 {
		t.Errorf("GroupCount after eviction = %d, want 1", got)
	}
}

// TestGroup_RateFloor verifies near-simultaneous duplicates do not produce
// absurd rates.
func TestGroup_RateFloor(t *testing.T) {
	clock := newFakeClock()
	a := NewAggregator(Config{RateFloor: time.Second, Clock: clock.Now})

	var g *Group
	for i := 0; i < 10; i++ {
		g, _ = a.Record(errors.New("burst"))
	}

	// Zero elapsed time: the 1-second floor caps the rate at 600/min.
	if got := g.RatePerMinute(); got != 600 {
		t.Errorf("RatePerMinute = %v, want 600", got)
	}
}

// TestGroup_RateOverWindow verifies rate math over real elapsed time.
func TestGroup_RateOverWindow(t *testing.T) {
	clock := newFakeClock()
	a := NewAggregator(Config{Clock: clock.Now})

	g, _ := a.Record(errors.New("steady"))
	clock.Advance(time.Minute)
	g, _ = a.Record(errors.New("steady"))

	if got := g.RatePerMinute(); got != 2 {
		t.Errorf("RatePerMinute = %v, want 2", got)
	}
	if got := g.RatePerHour(); got != 120 {
		t.Errorf("RatePerHour = %v, want 120", got)
	}
}

// TestGroup_RatePercent verifies the share calculation and its zero guard.
func TestGroup_RatePercent(t *testing.T) {
	a := NewAggregator(Config{})
	var g *Group
	for i := 0; i < 5; i++ {
		g, _ = a.Record(errors.New("boom"))
	}

	if got := g.RatePercent(100); got != 5 {
		t.Errorf("RatePercent(100) = %v, want 5", got)
	}
	if got := g.RatePercent(0); got != 0 {
		t.Errorf("RatePercent(0) = %v, want 0", got)
	}
	if got := g.RatePercent(-1); got != 0 {
		t.Errorf("RatePercent(-1) = %v, want 0", got)
	}
}

// TestGroup_LastSeenMonotonic verifies last occurrence never goes backward.
func TestGroup_LastSeenMonotonic(t *testing.T) {
	clock := newFakeClock()
	a := NewAggregator(Config{Clock: clock.Now})

	g, _ := a.Record(errors.New("boom"))
	clock.Advance(time.Minute)
	_, _ = a.Record(errors.New("boom"))

	last := g.LastSeen()
	if !last.Equal(clock.Now()) {
		t.Errorf("LastSeen = %v, want %v", last, clock.Now())
	}
	if g.FirstSeen().After(last) {
		t.Error("FirstSeen after LastSeen")
	}
}

// TestAggregator_Reset verifies counters and groups are dropped.
func TestAggregator_Reset(t *testing.T) {
	a := NewAggregator(Config{})
	_, _ = a.Record(errors.New("boom"))

	a.Reset()

	if a.GroupCount() != 0 || a.TotalCount() != 0 {
		t.Error("Reset left residual state")
	}
	if len(a.Groups()) != 0 {
		t.Error("Reset left residual groups")
	}
}

// TestAggregator_Lookup verifies fingerprint lookup.
func TestAggregator_Lookup(t *testing.T) {
	a := NewAggregator(Config{})
	boom := errors.New("boom")
	g, _ := a.Record(boom)

	found, ok := a.Lookup(Fingerprint(boom))
	if !ok || found != g {
		t.Error("Lookup by fingerprint did not return the recorded group")
	}
	if _, ok := a.Lookup("missing"); ok {
		t.Error("Lookup(missing) matched")
	}
}

// TestAggregator_GroupsSortedByCount verifies heaviest groups come first.
func TestAggregator_GroupsSortedByCount(t *testing.T) {
	a := NewAggregator(Config{})
	for i := 0; i < 3; i++ {
		_, _ = a.Record(errors.New("frequent"))
	}
	_, _ = a.Record(errors.New("rare"))

	groups := a.Groups()
	if len(groups) != 2 {
		t.Fatalf("len(Groups) = %d, want 2", len(groups))
	}
	if groups[0].Message() != "frequent" {
		t.Errorf("Groups[0] = %q, want frequent", groups[0].Message())
	}
}

// TestAggregator_AggregateRates verifies aggregator-wide rate math.
func TestAggregator_AggregateRates(t *testing.T) {
	clock := newFakeClock()
	a := NewAggregator(Config{Clock: clock.Now})

	if got := a.RatePerMinute(); got != 0 {
		t.Errorf("empty RatePerMinute = %v, want 0", got)
	}

	for i := 0; i < 4; i++ {
		_, _ = a.Record(fmt.Errorf("fault %c", 'a'+i))
	}
	clock.Advance(2 * time.Minute)

	if got := a.RatePerMinute(); got != 2 {
		t.Errorf("RatePerMinute = %v, want 2", got)
	}
}
