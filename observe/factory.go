package observe

import (
	"github.com/jonwraymond/opscope/capture"
	"github.com/jonwraymond/opscope/faults"
	"github.com/jonwraymond/opscope/scope"
)

// NewFactory builds a scope.Factory wired to the observer: its tracer,
// its logger, a metrics recorder on its meter, plus a fresh exception
// aggregator and a default capturer. Extra options are applied last and
// override the wired defaults.
func NewFactory(obs Observer, opts ...scope.FactoryOption) (*scope.Factory, error) {
	if obs == nil {
		return nil, ErrNilObserver
	}

	recorder, err := NewRecorder(obs.Meter())
	if err != nil {
		return nil, err
	}

	wired := []scope.FactoryOption{
		scope.WithTracer(obs.Tracer()),
		scope.WithLogger(obs.Logger()),
		scope.WithMetrics(recorder),
		scope.WithAggregator(faults.NewAggregator(faults.Config{})),
		scope.WithCapturer(capture.New(capture.DefaultOptions())),
	}
	return scope.NewFactory(append(wired, opts...)...), nil
}
