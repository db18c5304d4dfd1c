package faults

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// Config configures an Aggregator.
type Config struct {
	// ExpirationWindow is how long a group survives without a new
	// occurrence before lazy eviction. Default: 24 hours.
	ExpirationWindow time.Duration

	// RateFloor is the minimum elapsed time used in rate math. Default: 1
	// second.
	RateFloor time.Duration

	// Clock supplies the current time. Default: time.Now.
	Clock func() time.Time
}

// Aggregator groups error occurrences by fingerprint and tracks aggregate
// rates. Safe for concurrent use; freely instantiable.
type Aggregator struct {
	cfg Config

	groups sync.Map // fingerprint -> *Group

	total      atomic.Int64
	groupCount atomic.Int64
	firstUnix  atomic.Int64
	lastUnix   atomic.Int64
}

// NewAggregator creates an aggregator, applying defaults for unset config
// fields.
func NewAggregator(cfg Config) *Aggregator {
	if cfg.ExpirationWindow <= 0 {
		cfg.ExpirationWindow = 24 * time.Hour
	}
	if cfg.RateFloor <= 0 {
		cfg.RateFloor = time.Second
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	return &Aggregator{cfg: cfg}
}

// Record fingerprints the error and counts the occurrence in its group,
// creating the group atomically on first occurrence. Concurrent first
// occurrences of one fingerprint resolve to a single group with combined
// counts.
func (a *Aggregator) Record(err error) (*Group, error) {
	if err == nil {
		return nil, ErrNilError
	}

	now := a.cfg.Clock()
	fp := Fingerprint(err)

	g, loaded := a.groups.Load(fp)
	if !loaded {
		g, loaded = a.groups.LoadOrStore(fp, newGroup(fp, err, a.cfg.RateFloor, a.cfg.Clock))
		if !loaded {
			a.groupCount.Add(1)
		}
	}
	group := g.(*Group)
	group.record(now)

	ns := now.UnixNano()
	a.total.Add(1)
	a.firstUnix.CompareAndSwap(0, ns)
	for {
		last := a.lastUnix.Load()
		if ns <= last || a.lastUnix.CompareAndSwap(last, ns) {
			break
		}
	}
	return group, nil
}

// Groups returns the live groups sorted by descending count, lazily evicting
// any group whose last occurrence is older than the expiration window.
// Eviction does not block concurrent Record calls on other fingerprints.
func (a *Aggregator) Groups() []*Group {
	cutoff := a.cfg.Clock().Add(-a.cfg.ExpirationWindow)

	var out []*Group
	a.groups.Range(func(key, value any) bool {
		g := value.(*Group)
		if g.LastSeen().Before(cutoff) {
			a.groups.Delete(key)
			a.groupCount.Add(-1)
			return true
		}
		out = append(out, g)
		return true
	})

	sort.Slice(out, func(i, j int) bool { return out[i].Count() > out[j].Count() })
	return out
}

// Lookup returns the group for a fingerprint, if present.
func (a *Aggregator) Lookup(fingerprint string) (*Group, bool) {
	g, ok := a.groups.Load(fingerprint)
	if !ok {
		return nil, false
	}
	return g.(*Group), true
}

// TotalCount returns the number of occurrences recorded across all groups,
// including ones whose groups have since been evicted.
func (a *Aggregator) TotalCount() int64 { return a.total.Load() }

// GroupCount returns the number of live groups.
func (a *Aggregator) GroupCount() int64 { return a.groupCount.Load() }

// FirstSeen returns the instant of the first recorded occurrence.
func (a *Aggregator) FirstSeen() time.Time { return time.Unix(0, a.firstUnix.Load()) }

// LastSeen returns the instant of the most recent recorded occurrence.
func (a *Aggregator) LastSeen() time.Time { return time.Unix(0, a.lastUnix.Load()) }

// RatePerMinute returns aggregate occurrences per minute since the first
// one, with the configured floor on elapsed time.
func (a *Aggregator) RatePerMinute() float64 {
	return a.rate(time.Minute)
}

// RatePerHour returns aggregate occurrences per hour.
func (a *Aggregator) RatePerHour() float64 {
	return a.rate(time.Hour)
}

// Reset drops all groups and counters.
func (a *Aggregator) Reset() {
	a.groups.Range(func(key, _ any) bool {
		a.groups.Delete(key)
		return true
	})
	a.total.Store(0)
	a.groupCount.Store(0)
	a.firstUnix.Store(0)
	a.lastUnix.Store(0)
}

func (a *Aggregator) rate(per time.Duration) float64 {
	total := a.total.Load()
	if total == 0 {
		return 0
	}
	elapsed := a.cfg.Clock().Sub(a.FirstSeen())
	if elapsed < a.cfg.RateFloor {
		elapsed = a.cfg.RateFloor
	}
	return float64(total) / (float64(elapsed) / float64(per))
}
