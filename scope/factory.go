package scope

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/jonwraymond/opscope/capture"
	"github.com/jonwraymond/opscope/faults"
	"github.com/jonwraymond/opscope/sampling"
)

// Factory begins operation scopes. All collaborators default to no-ops, so
// a zero-option factory yields working scopes that report elapsed time and
// correlation ids and emit nothing.
//
// Contract:
// - Concurrency: safe for concurrent use.
// - Errors: Begin returns ErrEmptyName for an empty operation name.
type Factory struct {
	tracer     trace.Tracer
	sampler    sampling.Sampler
	aggregator *faults.Aggregator
	capturer   *capture.Capturer
	logger     Logger
	metrics    Metrics
	sink       Sink
	clock      Clock
	pii        PIIOptions
}

// NewFactory creates a factory with the given options applied over no-op
// defaults. PII redaction defaults to on, backed by the default registry.
func NewFactory(opts ...FactoryOption) *Factory {
	f := &Factory{
		tracer:  tracenoop.NewTracerProvider().Tracer("noop"),
		sampler: sampling.NewProbabilistic(1.0),
		logger:  NopLogger{},
		metrics: NopMetrics{},
		sink:    NoopSink{},
		clock:   SystemClock,
		pii:     PIIOptions{Redact: true},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Aggregator returns the configured exception aggregator, nil when unset.
func (f *Factory) Aggregator() *faults.Aggregator { return f.aggregator }

// Begin starts a scope for one unit of work. The returned context carries
// the correlation id and, unless WithoutActivity was given, the opened
// span. The sampling decision is made here and stored on the scope.
func (f *Factory) Begin(ctx context.Context, name string, opts ...BeginOption) (context.Context, *Scope, error) {
	cfg := beginConfig{createActivity: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	return f.begin(ctx, name, cfg, nil)
}

func (f *Factory) begin(ctx context.Context, name string, cfg beginConfig, parent *Scope) (context.Context, *Scope, error) {
	if name == "" {
		return ctx, nil, ErrEmptyName
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var id, reason string
	var sampled bool
	if parent != nil {
		// Enrichment happened once at the root; children inherit the
		// correlation id and the sampling decision.
		id = parent.correlationID
		sampled, reason = parent.sampled, parent.sampleReason
	} else {
		if v, ok := CorrelationID(ctx); ok {
			id = v
		} else {
			id = uuid.NewString()
		}
		ctx = WithCorrelationID(ctx, id)

		d := f.sampler.ShouldSample(sampling.Context{Operation: name, Source: cfg.source})
		sampled, reason = d.Sample, d.Reason
		f.metrics.RecordSamplingDecision(ctx, name, sampled, reason)
	}

	var span trace.Span
	if cfg.createActivity {
		ctx, span = f.tracer.Start(ctx, name,
			trace.WithSpanKind(trace.SpanKindInternal),
			trace.WithAttributes(
				attribute.String("operation.name", name),
				attribute.String("operation.correlation_id", id),
			),
		)
	}

	s := &Scope{
		name:          name,
		correlationID: id,
		source:        cfg.source,
		start:         f.clock.Now(),
		factory:       f,
		ctx:           ctx,
		span:          span,
		parent:        parent,
		sampled:       sampled,
		sampleReason:  reason,
		status:        StatusRunning,
	}
	return ctx, s, nil
}
