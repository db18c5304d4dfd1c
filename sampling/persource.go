package sampling

// PerSource routes decisions to a sampler chosen by the context's source
// key. Unknown sources fall back to the default sampler. Inner decisions
// pass through unchanged, reason included.
type PerSource struct {
	samplers map[string]Sampler
	fallback Sampler
}

// NewPerSource creates a per-source router. The samplers map is copied.
func NewPerSource(samplers map[string]Sampler, fallback Sampler) *PerSource {
	m := make(map[string]Sampler, len(samplers))
	for k, v := range samplers {
		m[k] = v
	}
	return &PerSource{samplers: m, fallback: fallback}
}

// ShouldSample routes by source.
func (p *PerSource) ShouldSample(sctx Context) Decision {
	if s, ok := p.samplers[sctx.Source]; ok && s != nil {
		return s.ShouldSample(sctx)
	}
	if p.fallback == nil {
		return Decision{Sample: false, Reason: "persource: no sampler for source"}
	}
	return p.fallback.ShouldSample(sctx)
}
