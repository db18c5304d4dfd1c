// Package capture turns arbitrary runtime values into bounded, redaction-safe
// representations for diagnostics.
//
// The same engine serves manually tagged values and automatically captured
// call arguments and return values. Traversal is governed by a capture level
// (None, Minimal, Standard, Verbose), a depth budget, collection and string
// size limits, and the sensitive-pattern registry from package redact:
// sensitive names are redacted before any traversal happens, and limits are
// enforced by truncation markers, never by errors. Diagnostics code must
// never crash the instrumented application, so custom serializers that panic
// are recovered and the engine falls back to its default traversal.
package capture
