package scope

import (
	"context"

	"github.com/jonwraymond/opscope/faults"
)

// Metrics is the metrics-recording collaborator. The scope core calls these
// increment/record style operations and owns no storage or transport.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: recording must be best-effort and must not panic.
type Metrics interface {
	// RecordOperation records one finished operation.
	RecordOperation(ctx context.Context, ev Event)

	// RecordSamplingDecision records a sampler's verdict for an operation.
	RecordSamplingDecision(ctx context.Context, operation string, sampled bool, reason string)

	// RecordFault records one exception occurrence against its group.
	// Called once per de-duplicated Fail or RecordException when the
	// factory carries an aggregator.
	RecordFault(ctx context.Context, group *faults.Group)
}

// NopMetrics discards everything.
type NopMetrics struct{}

func (NopMetrics) RecordOperation(ctx context.Context, ev Event) {}
func (NopMetrics) RecordSamplingDecision(ctx context.Context, operation string, sampled bool, reason string) {
}
func (NopMetrics) RecordFault(ctx context.Context, group *faults.Group) {}
