// Package faults groups error occurrences by a stable fingerprint and tracks
// their rates over time.
//
// A fingerprint summarizes an error's shape: its type, its message with
// volatile fragments (GUIDs, numbers, URLs) normalized away, the first few
// stack frames, and the fingerprints of up to three wrapped errors. Equal
// shapes hash to the same group regardless of embedded request ids or
// timestamps, so a storm of one bug aggregates into a single counted group
// instead of thousands of distinct events.
//
// The Aggregator is safe for concurrent use and holds no package-level
// state; create one per process or per subsystem as needed. Stale groups are
// evicted lazily when the group list is read.
package faults
