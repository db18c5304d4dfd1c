package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/jonwraymond/opscope/faults"
	"github.com/jonwraymond/opscope/scope"
)

// Recorder records operation metrics through an OpenTelemetry meter. It
// implements scope.Metrics.
//
// Contract:
// - Concurrency: safe for concurrent use.
// - Context: must honor cancellation/deadlines and return quickly.
// - Errors: recording must not panic.
type Recorder struct {
	totalCount   metric.Int64Counter
	errorCount   metric.Int64Counter
	samplingDecs metric.Int64Counter
	faultCount   metric.Int64Counter
	durationHist metric.Float64Histogram
}

// NewRecorder creates a metrics recorder with the given meter.
func NewRecorder(meter metric.Meter) (*Recorder, error) {
	totalCount, err := meter.Int64Counter(
		"op.scope.total",
		metric.WithDescription("Total number of finished operation scopes"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, err
	}

	errorCount, err := meter.Int64Counter(
		"op.scope.errors",
		metric.WithDescription("Total number of failed operation scopes"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	samplingDecs, err := meter.Int64Counter(
		"op.sampling.decisions",
		metric.WithDescription("Sampling decisions by operation and verdict"),
		metric.WithUnit("{decision}"),
	)
	if err != nil {
		return nil, err
	}

	faultCount, err := meter.Int64Counter(
		"op.faults.total",
		metric.WithDescription("Recorded exceptions by type"),
		metric.WithUnit("{exception}"),
	)
	if err != nil {
		return nil, err
	}

	durationHist, err := meter.Float64Histogram(
		"op.scope.duration_ms",
		metric.WithDescription("Operation duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &Recorder{
		totalCount:   totalCount,
		errorCount:   errorCount,
		samplingDecs: samplingDecs,
		faultCount:   faultCount,
		durationHist: durationHist,
	}, nil
}

// RecordOperation records one finished operation scope.
func (r *Recorder) RecordOperation(ctx context.Context, ev scope.Event) {
	opt := metric.WithAttributes(
		attribute.String("operation.name", ev.Name),
		attribute.String("operation.status", ev.Status.String()),
	)

	r.totalCount.Add(ctx, 1, opt)
	if ev.Status == scope.StatusFailed {
		r.errorCount.Add(ctx, 1, opt)
	}
	r.durationHist.Record(ctx, float64(ev.Elapsed.Milliseconds()), opt)
}

// RecordSamplingDecision records a sampler verdict.
func (r *Recorder) RecordSamplingDecision(ctx context.Context, operation string, sampled bool, reason string) {
	r.samplingDecs.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation.name", operation),
		attribute.Bool("sampling.sampled", sampled),
	))
}

// RecordFault records one exception occurrence against its group.
func (r *Recorder) RecordFault(ctx context.Context, g *faults.Group) {
	if g == nil {
		return
	}
	r.faultCount.Add(ctx, 1, metric.WithAttributes(
		attribute.String("exception.type", g.ErrorType()),
		attribute.String("exception.fingerprint", g.Fingerprint()),
	))
}
