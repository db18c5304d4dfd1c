package scope

import (
	"context"
	"reflect"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jonwraymond/opscope/faults"
	"github.com/jonwraymond/opscope/redact"
)

// Scope represents one traced unit of work. Create scopes through a
// Factory; the zero value is not usable.
//
// Contract:
// - Concurrency: all methods are safe for concurrent use by sub-tasks of
//   the same operation.
// - Lifecycle: End is idempotent; mutators on an ended scope are silent
//   no-ops.
type Scope struct {
	name          string
	correlationID string
	source        string
	start         time.Time

	factory *Factory
	ctx     context.Context
	span    trace.Span
	parent  *Scope

	sampled      bool
	sampleReason string

	mu       sync.Mutex
	tags     []Tag
	tagIndex map[string]int
	props    []lazyProp
	result   any
	hasRes   bool
	status   Status
	fprint   string

	recorded sync.Map // exception identity -> struct{}
	ended    atomic.Bool
	elapsed  atomic.Int64 // nanoseconds, frozen at disposal
}

type lazyProp struct {
	key string
	fn  func() any
}

// Name returns the operation name.
func (s *Scope) Name() string { return s.name }

// CorrelationID returns the id assigned at Begin. Immutable for the
// scope's life.
func (s *Scope) CorrelationID() string { return s.correlationID }

// Context returns the scope's context, carrying the correlation id and the
// span when one was opened.
func (s *Scope) Context() context.Context { return s.ctx }

// Parent returns the scope this one was created from via CreateChild, or
// nil for root scopes. The parent does not own the child; each is ended
// independently.
func (s *Scope) Parent() *Scope { return s.parent }

// Status returns the current status.
func (s *Scope) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Sampled reports the sampling decision made at Begin.
func (s *Scope) Sampled() bool { return s.sampled }

// WithTag attaches a tag. Last write per key wins while insertion order is
// kept. Empty keys and ended scopes are silent no-ops. Sensitive keys are
// redacted at write time when PII redaction is on.
func (s *Scope) WithTag(key string, value any) *Scope {
	if key == "" || s.ended.Load() {
		return s
	}
	value = s.redactValue(key, value)
	s.mu.Lock()
	s.setTagLocked(key, value)
	s.mu.Unlock()
	return s
}

// WithTags attaches every entry of the map, in sorted key order so repeated
// runs produce the same tag order.
func (s *Scope) WithTags(tags map[string]any) *Scope {
	if len(tags) == 0 || s.ended.Load() {
		return s
	}
	keys := make([]string, 0, len(tags))
	for k := range tags {
		if k != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		s.WithTag(k, tags[k])
	}
	return s
}

// WithProperty defers evaluation of a value until End. Producers run once,
// in insertion order; a panicking producer is swallowed. Nil producers,
// empty keys, and ended scopes are silent no-ops.
func (s *Scope) WithProperty(key string, fn func() any) *Scope {
	if key == "" || fn == nil || s.ended.Load() {
		return s
	}
	s.mu.Lock()
	s.props = append(s.props, lazyProp{key: key, fn: fn})
	s.mu.Unlock()
	return s
}

// WithResult records a value emitted as the "operation.result" tag at End.
// A nil value produces no tag.
func (s *Scope) WithResult(value any) *Scope {
	if s.ended.Load() {
		return s
	}
	s.mu.Lock()
	s.result = value
	s.hasRes = value != nil
	s.mu.Unlock()
	return s
}

// Succeed marks the scope succeeded and sets the span status to OK.
func (s *Scope) Succeed() *Scope {
	if s.ended.Load() {
		return s
	}
	s.mu.Lock()
	s.status = StatusSucceeded
	s.mu.Unlock()
	if s.span != nil {
		s.span.SetStatus(codes.Ok, "")
	}
	return s
}

// Fail records the error and marks the scope failed. A given error instance
// is recorded at most once per scope, also under concurrent calls. A nil
// error is a no-op logged at Warn.
func (s *Scope) Fail(err error) *Scope {
	return s.recordError(err, true)
}

// RecordException records the error without changing the scope status. It
// shares Fail's per-instance de-duplication.
func (s *Scope) RecordException(err error) *Scope {
	return s.recordError(err, false)
}

func (s *Scope) recordError(err error, markFailed bool) *Scope {
	if err == nil {
		s.factory.logger.Warn(s.ctx, "nil error passed to scope",
			Field{Key: "operation", Value: s.name},
			Field{Key: "correlation_id", Value: s.correlationID},
		)
		return s
	}
	if s.ended.Load() {
		return s
	}
	if _, loaded := s.recorded.LoadOrStore(errIdentity(err), struct{}{}); loaded {
		return s
	}

	fp, group := s.fingerprint(err)

	s.mu.Lock()
	if markFailed {
		s.status = StatusFailed
	}
	s.fprint = fp
	s.setTagLocked("exception.type", faults.TypeName(err))
	s.setTagLocked("exception.message", err.Error())
	s.setTagLocked("exception.fingerprint", fp)
	s.mu.Unlock()

	if s.span != nil {
		s.span.RecordError(err, trace.WithAttributes(
			attribute.String("exception.fingerprint", fp),
		))
		if markFailed {
			s.span.SetStatus(codes.Error, err.Error())
		}
	}
	if group != nil {
		s.factory.metrics.RecordFault(s.ctx, group)
	}
	return s
}

// fingerprint routes through the factory aggregator when present, so the
// failure also lands in an exception group.
func (s *Scope) fingerprint(err error) (string, *faults.Group) {
	if agg := s.factory.aggregator; agg != nil {
		if g, rerr := agg.Record(err); rerr == nil {
			return g.Fingerprint(), g
		}
	}
	return faults.Fingerprint(err), nil
}

// CreateChild begins a child scope sharing this scope's trace identity and
// correlation id. Ambient enrichment happens once at the root, so the child
// skips it. The caller owns the child and must End it.
func (s *Scope) CreateChild(name string) (*Scope, error) {
	_, child, err := s.factory.begin(s.ctx, name, beginConfig{
		createActivity: s.span != nil,
		source:         s.source,
	}, s)
	return child, err
}

// Elapsed returns the time since Begin, from a monotonic reading, frozen
// once the scope ends.
func (s *Scope) Elapsed() time.Duration {
	if s.ended.Load() {
		return time.Duration(s.elapsed.Load())
	}
	return s.factory.clock.Now().Sub(s.start)
}

// End finalizes the scope: resolves lazy properties in order (panicking
// producers swallowed), applies redaction, freezes the elapsed time, ends
// the span, and emits the finished event to the sink, logger, and metrics.
// Safe to defer; at most one caller performs finalization.
func (s *Scope) End() {
	if !s.ended.CompareAndSwap(false, true) {
		return
	}

	s.mu.Lock()
	props := s.props
	s.props = nil
	result, hasRes := s.result, s.hasRes
	s.mu.Unlock()

	// Producers run outside the lock; mutators they might call see the
	// scope as ended and no-op.
	for _, p := range props {
		if v, ok := resolveProp(p.fn); ok {
			v = s.redactValue(p.key, v)
			s.mu.Lock()
			s.setTagLocked(p.key, v)
			s.mu.Unlock()
		}
	}

	if hasRes {
		v := result
		if c := s.factory.capturer; c != nil {
			v = c.Value("operation.result", result)
		}
		if v != nil {
			s.mu.Lock()
			s.setTagLocked("operation.result", v)
			s.mu.Unlock()
		}
	}

	elapsed := s.factory.clock.Now().Sub(s.start)
	s.elapsed.Store(int64(elapsed))

	s.mu.Lock()
	tags := make([]Tag, len(s.tags))
	copy(tags, s.tags)
	status := s.status
	fp := s.fprint
	s.mu.Unlock()

	if s.span != nil {
		s.span.End()
	}

	ev := Event{
		Name:          s.name,
		CorrelationID: s.correlationID,
		Start:         s.start,
		Elapsed:       elapsed,
		Status:        status,
		Tags:          tags,
		Fingerprint:   fp,
		Sampled:       s.sampled,
		SampleReason:  s.sampleReason,
	}

	// Fire-and-forget hand-off; a slow or failing sink must not hold up
	// the disposing goroutine beyond its own Write call.
	_ = s.factory.sink.Write(s.ctx, ev)

	fields := []Field{
		{Key: "operation", Value: s.name},
		{Key: "correlation_id", Value: s.correlationID},
		{Key: "status", Value: status.String()},
		{Key: "duration_ms", Value: float64(elapsed.Milliseconds())},
	}
	if status == StatusFailed {
		fields = append(fields, Field{Key: "fingerprint", Value: fp})
		s.factory.logger.Error(s.ctx, "operation failed", fields...)
	} else {
		s.factory.logger.Info(s.ctx, "operation completed", fields...)
	}

	s.factory.metrics.RecordOperation(s.ctx, ev)
}

// setTagLocked keeps insertion order and applies last-write-wins per key.
func (s *Scope) setTagLocked(key string, value any) {
	if s.tagIndex == nil {
		s.tagIndex = make(map[string]int)
	}
	if i, ok := s.tagIndex[key]; ok {
		s.tags[i].Value = value
		return
	}
	s.tagIndex[key] = len(s.tags)
	s.tags = append(s.tags, Tag{Key: key, Value: value})
}

// redactValue applies the registry strategy for sensitive keys when PII
// redaction is enabled.
func (s *Scope) redactValue(key string, value any) any {
	if !s.factory.pii.Redact {
		return value
	}
	reg := s.factory.pii.Registry
	if reg == nil {
		reg = redact.DefaultRegistry
	}
	if strat, ok := reg.Lookup(key); ok {
		return redact.Apply(strat, value)
	}
	return value
}

func resolveProp(fn func() any) (v any, ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return fn(), true
}

// errIdentity keys the de-duplication map by error instance. Pointer errors
// (errors.New, fmt.Errorf) compare by pointer, so distinct instances are
// always distinct keys. Comparable value-type errors compare by value, which
// coalesces equal values into one recording. Errors of non-comparable
// dynamic types cannot be map keys; those fall back to fingerprint identity.
func errIdentity(err error) any {
	if t := reflect.TypeOf(err); t != nil && t.Comparable() {
		return err
	}
	return faults.Fingerprint(err)
}
