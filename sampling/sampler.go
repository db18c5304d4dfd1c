package sampling

// Decision is the immutable outcome of a sampling consultation.
type Decision struct {
	// Sample reports whether full detail should be kept.
	Sample bool
	// Reason names the rule that produced the decision.
	Reason string
}

// Context describes the operation a decision is being made for.
type Context struct {
	// Operation is the operation name.
	Operation string
	// Source identifies where the operation originated, for per-source
	// routing.
	Source string
	// Tags carries operation tags visible at decision time.
	Tags map[string]any
}

// Sampler decides whether an operation keeps full diagnostic detail.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: ShouldSample must not panic and returns synchronously.
type Sampler interface {
	ShouldSample(sctx Context) Decision
}
