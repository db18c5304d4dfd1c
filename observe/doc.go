// Package observe wires the scope core into OpenTelemetry.
//
// It is a pure integration layer: exporter setup, providers, a structured
// logger, and a metrics recorder. Consumers build an Observer from Config
// and hand its pieces to a scope.Factory, usually via NewFactory.
package observe
