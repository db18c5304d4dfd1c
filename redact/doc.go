// Package redact provides redaction primitives and the sensitive-pattern
// registry used by the capture engine and operation scopes.
//
// Redaction strategies are pure transformations from a raw value to a safe
// representation: full masking, removal, a short non-reversible digest,
// partial masking that keeps the edges, or the value's type name. The
// registry maps field and parameter names to a default strategy via
// case-insensitive substring matching, and an override table lets callers pin
// an explicit strategy for a specific (type, field) pair.
package redact
