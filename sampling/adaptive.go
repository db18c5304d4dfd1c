package sampling

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"
)

// AdaptiveConfig configures an adaptive sampler.
type AdaptiveConfig struct {
	// TargetRate is the desired fraction of sampled operations. Exactly 0
	// or 1 short-circuits to a static decision without touching counters.
	TargetRate float64

	// MinRate and MaxRate clamp the self-tuned rate.
	// Defaults: 0.01 and 1.0.
	MinRate float64
	MaxRate float64

	// AdjustmentWindow is how often the rate is recomputed from observed
	// throughput. Default: 10 seconds.
	AdjustmentWindow time.Duration

	// Gain scales how aggressively the rate is nudged toward the target.
	// Default: 0.5.
	Gain float64

	// Clock supplies the current time. Default: time.Now.
	Clock func() time.Time

	// Rand supplies uniform draws in [0, 1). Default: math/rand/v2.
	Rand func() float64
}

// Adaptive self-tunes its sampling rate toward a target over rolling
// adjustment windows. Rate and window counters live under one mutex so a
// reader can never observe a rate update interleaved with a counter reset.
type Adaptive struct {
	cfg          AdaptiveConfig
	staticReason string

	mu          sync.Mutex
	rate        float64
	sampled     int64
	total       int64
	windowStart time.Time
}

// NewAdaptive creates an adaptive sampler, applying defaults for unset
// config fields and starting at the target rate clamped to bounds.
func NewAdaptive(cfg AdaptiveConfig) *Adaptive {
	if cfg.MinRate <= 0 {
		cfg.MinRate = 0.01
	}
	if cfg.MaxRate <= 0 || cfg.MaxRate > 1 {
		cfg.MaxRate = 1.0
	}
	if cfg.AdjustmentWindow <= 0 {
		cfg.AdjustmentWindow = 10 * time.Second
	}
	if cfg.Gain <= 0 {
		cfg.Gain = 0.5
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.Float64
	}

	a := &Adaptive{
		cfg:         cfg,
		rate:        clamp(cfg.TargetRate, cfg.MinRate, cfg.MaxRate),
		windowStart: cfg.Clock(),
	}
	if cfg.TargetRate <= 0 {
		a.staticReason = "adaptive: target rate 0, never sampling"
	} else if cfg.TargetRate >= 1 {
		a.staticReason = "adaptive: target rate 1, always sampling"
	}
	return a
}

// ShouldSample consults the current rate as a probabilistic threshold and
// feeds the window counters.
func (a *Adaptive) ShouldSample(Context) Decision {
	// Degenerate targets decide statically, without counter traffic.
	if a.cfg.TargetRate <= 0 {
		return Decision{Sample: false, Reason: a.staticReason}
	}
	if a.cfg.TargetRate >= 1 {
		return Decision{Sample: true, Reason: a.staticReason}
	}

	a.mu.Lock()
	a.maybeAdjustLocked(a.cfg.Clock())
	a.total++
	sampled := a.cfg.Rand() < a.rate
	if sampled {
		a.sampled++
	}
	rate := a.rate
	a.mu.Unlock()

	return Decision{Sample: sampled, Reason: fmt.Sprintf("adaptive: rate=%.4f", rate)}
}

// CurrentRate returns the self-tuned rate.
func (a *Adaptive) CurrentRate() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.rate
}

// maybeAdjustLocked recomputes the rate once the window has elapsed: the
// observed rate is compared to the target and the rate is nudged by the
// error, then counters and window restart together.
func (a *Adaptive) maybeAdjustLocked(now time.Time) {
	if now.Sub(a.windowStart) < a.cfg.AdjustmentWindow || a.total == 0 {
		return
	}

	observed := float64(a.sampled) / float64(a.total)
	a.rate = clamp(a.rate+a.cfg.Gain*(a.cfg.TargetRate-observed), a.cfg.MinRate, a.cfg.MaxRate)

	a.sampled = 0
	a.total = 0
	a.windowStart = now
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
