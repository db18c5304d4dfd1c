package sampling

import (
	"fmt"
	"math/rand/v2"
)

// Probabilistic samples a fixed fraction of operations. Rates at or above
// 1.0 always sample; rates at or below 0.0 never do.
type Probabilistic struct {
	rate   float64
	reason string
	rnd    func() float64
}

// NewProbabilistic creates a probabilistic sampler. The reason string is
// precomputed here so the per-call path allocates nothing.
func NewProbabilistic(rate float64) *Probabilistic {
	return NewProbabilisticSource(rate, rand.Float64)
}

// NewProbabilisticSource creates a probabilistic sampler drawing from the
// given uniform source in [0, 1). Used for deterministic tests.
func NewProbabilisticSource(rate float64, src func() float64) *Probabilistic {
	return &Probabilistic{
		rate:   rate,
		reason: fmt.Sprintf("probabilistic: rate=%.4f", rate),
		rnd:    src,
	}
}

// Rate returns the configured rate.
func (p *Probabilistic) Rate() float64 { return p.rate }

// ShouldSample draws against the configured rate.
func (p *Probabilistic) ShouldSample(Context) Decision {
	switch {
	case p.rate >= 1.0:
		return Decision{Sample: true, Reason: p.reason}
	case p.rate <= 0.0:
		return Decision{Sample: false, Reason: p.reason}
	default:
		return Decision{Sample: p.rnd() < p.rate, Reason: p.reason}
	}
}
