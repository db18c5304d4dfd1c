package sampling

// Predicate matches operation contexts that must always be sampled.
type Predicate func(sctx Context) bool

// Conditional forces sampling when its predicate matches and delegates to
// the inner sampler otherwise.
type Conditional struct {
	pred  Predicate
	inner Sampler
}

// NewConditional creates a conditional sampler. A nil predicate never
// matches; a nil inner sampler declines everything it receives.
func NewConditional(pred Predicate, inner Sampler) *Conditional {
	return &Conditional{pred: pred, inner: inner}
}

// ShouldSample forces sampling on a predicate match, otherwise delegates
// unchanged.
func (c *Conditional) ShouldSample(sctx Context) Decision {
	if c.pred != nil && c.pred(sctx) {
		return Decision{Sample: true, Reason: "conditional: predicate matched"}
	}
	if c.inner == nil {
		return Decision{Sample: false, Reason: "conditional: no inner sampler"}
	}
	return c.inner.ShouldSample(sctx)
}

// HasTag returns a predicate matching contexts that carry the given tag key.
func HasTag(key string) Predicate {
	return func(sctx Context) bool {
		_, ok := sctx.Tags[key]
		return ok
	}
}
