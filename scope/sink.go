package scope

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Sink receives finished-operation events.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: Write errors are advisory; scope disposal ignores them.
// - Ownership: the Event is a value copy and may be retained.
type Sink interface {
	// Write delivers one finished event.
	Write(ctx context.Context, ev Event) error

	// Close releases resources and flushes buffered events where applicable.
	Close() error
}

// NoopSink discards every event.
type NoopSink struct{}

// Write discards the event.
func (NoopSink) Write(ctx context.Context, ev Event) error { return nil }

// Close does nothing.
func (NoopSink) Close() error { return nil }

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, ev Event) error

// Write calls the function.
func (f SinkFunc) Write(ctx context.Context, ev Event) error { return f(ctx, ev) }

// Close does nothing.
func (f SinkFunc) Close() error { return nil }

// AsyncSink buffers events and delivers them to an inner sink from worker
// goroutines. Write never blocks: when the buffer is full the event is
// dropped and counted. Disposal of a scope therefore never waits on the
// inner sink.
type AsyncSink struct {
	inner   Sink
	ch      chan Event
	group   *errgroup.Group
	dropped atomic.Int64

	// mu orders in-flight writes against channel close.
	mu     sync.RWMutex
	closed bool
}

// NewAsyncSink wraps an inner sink with a buffer and worker pool. Buffer
// and workers fall back to 256 and 1 when non-positive.
func NewAsyncSink(inner Sink, buffer, workers int) *AsyncSink {
	if buffer <= 0 {
		buffer = 256
	}
	if workers <= 0 {
		workers = 1
	}

	s := &AsyncSink{
		inner: inner,
		ch:    make(chan Event, buffer),
		group: &errgroup.Group{},
	}
	for i := 0; i < workers; i++ {
		s.group.Go(s.run)
	}
	return s
}

// run drains the channel until Close. The first inner write error is kept
// and surfaced by Close; later events are still delivered.
func (s *AsyncSink) run() error {
	var first error
	for ev := range s.ch {
		// The caller's context is gone by delivery time; the event itself
		// carries the correlation id.
		if err := s.inner.Write(context.Background(), ev); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Write enqueues the event without blocking. A full buffer drops the event
// and increments the drop counter.
func (s *AsyncSink) Write(ctx context.Context, ev Event) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrSinkClosed
	}
	select {
	case s.ch <- ev:
		return nil
	default:
		s.dropped.Add(1)
		return nil
	}
}

// Dropped reports how many events were discarded due to a full buffer.
func (s *AsyncSink) Dropped() int64 { return s.dropped.Load() }

// Close stops accepting events, drains the buffer, and closes the inner
// sink. Returns the first worker error joined with the inner close error.
func (s *AsyncSink) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.ch)
	s.mu.Unlock()
	err := s.group.Wait()
	if cerr := s.inner.Close(); cerr != nil {
		err = errors.Join(err, cerr)
	}
	return err
}
