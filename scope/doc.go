// Package scope instruments one unit of work at a time.
//
// A Factory begins operation scopes. A scope carries a correlation id, an
// optional trace span, ordered tags, lazily evaluated properties, and an
// at-most-once failure record. Ending a scope resolves the lazy properties,
// freezes the elapsed time, and emits a finished Event to the configured
// sink, logger, and metrics recorder.
//
// Scopes tolerate concurrent mutation from sub-tasks of the same operation.
// Disposal is idempotent and mutators on a disposed scope are silent no-ops,
// which makes deferred End calls safe on every exit path.
package scope
