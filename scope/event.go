package scope

import "time"

// Status is the outcome of an operation scope.
type Status int

const (
	// StatusRunning is the initial status of every scope.
	StatusRunning Status = iota

	// StatusSucceeded marks a scope completed by Succeed.
	StatusSucceeded

	// StatusFailed marks a scope that recorded a failure via Fail.
	StatusFailed
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Tag is one key/value pair attached to a scope, in insertion order.
type Tag struct {
	Key   string
	Value any
}

// Event is the finished-operation record handed to sinks when a scope ends.
// It is a value copy; sinks may retain it beyond the write call.
type Event struct {
	// Name is the operation name given to Begin.
	Name string

	// CorrelationID ties the event to its logical call chain.
	CorrelationID string

	// Start is when the scope began; Elapsed is the frozen duration.
	Start   time.Time
	Elapsed time.Duration

	// Status is the final status at disposal.
	Status Status

	// Tags are the resolved tags in insertion order, lazy properties and
	// the result tag included, redaction already applied.
	Tags []Tag

	// Fingerprint identifies the recorded failure's exception group.
	// Empty when no failure was recorded.
	Fingerprint string

	// Sampled and SampleReason carry the sampling decision made at Begin.
	Sampled      bool
	SampleReason string
}

// Tag returns the value for a key and whether it is present.
func (e Event) Tag(key string) (any, bool) {
	for _, t := range e.Tags {
		if t.Key == key {
			return t.Value, true
		}
	}
	return nil, false
}
