package scope

import (
	"go.opentelemetry.io/otel/trace"

	"github.com/jonwraymond/opscope/capture"
	"github.com/jonwraymond/opscope/faults"
	"github.com/jonwraymond/opscope/redact"
	"github.com/jonwraymond/opscope/sampling"
)

// PIIOptions controls write-time tag redaction.
type PIIOptions struct {
	// Redact enables redaction of tag values whose keys match a sensitive
	// pattern.
	Redact bool

	// Registry is the pattern registry consulted for tag keys.
	// Nil means redact.DefaultRegistry.
	Registry *redact.Registry
}

// FactoryOption configures a Factory.
type FactoryOption func(*Factory)

// WithTracer sets the tracer used to open spans for new scopes.
func WithTracer(t trace.Tracer) FactoryOption {
	return func(f *Factory) {
		if t != nil {
			f.tracer = t
		}
	}
}

// WithSampler sets the sampler consulted at Begin.
func WithSampler(s sampling.Sampler) FactoryOption {
	return func(f *Factory) {
		if s != nil {
			f.sampler = s
		}
	}
}

// WithAggregator sets the exception aggregator fed by Fail and
// RecordException.
func WithAggregator(a *faults.Aggregator) FactoryOption {
	return func(f *Factory) { f.aggregator = a }
}

// WithCapturer sets the value capturer used for operation results and
// middleware parameter capture.
func WithCapturer(c *capture.Capturer) FactoryOption {
	return func(f *Factory) { f.capturer = c }
}

// WithLogger sets the completion logger.
func WithLogger(l Logger) FactoryOption {
	return func(f *Factory) {
		if l != nil {
			f.logger = l
		}
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m Metrics) FactoryOption {
	return func(f *Factory) {
		if m != nil {
			f.metrics = m
		}
	}
}

// WithSink sets the finished-event sink.
func WithSink(s Sink) FactoryOption {
	return func(f *Factory) {
		if s != nil {
			f.sink = s
		}
	}
}

// WithClock sets the clock. Injectable for determinism in tests.
func WithClock(c Clock) FactoryOption {
	return func(f *Factory) {
		if c != nil {
			f.clock = c
		}
	}
}

// WithPII sets the redaction options for tags.
func WithPII(p PIIOptions) FactoryOption {
	return func(f *Factory) { f.pii = p }
}

// beginConfig holds per-Begin settings.
type beginConfig struct {
	createActivity bool
	source         string
}

// BeginOption configures a single Begin call.
type BeginOption func(*beginConfig)

// WithoutActivity begins the scope without opening a trace span. The scope
// still reports elapsed time and carries a correlation id.
func WithoutActivity() BeginOption {
	return func(c *beginConfig) { c.createActivity = false }
}

// WithSource labels the operation's origin for per-source sampling.
func WithSource(source string) BeginOption {
	return func(c *beginConfig) { c.source = source }
}
