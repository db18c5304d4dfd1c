package observe

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"sync"
	"time"

	"github.com/jonwraymond/opscope/redact"
	"github.com/jonwraymond/opscope/scope"
)

// LogLevel represents a logging level.
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLogLevel parses a string log level.
func ParseLogLevel(s string) LogLevel {
	switch s {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// structuredLogger is a JSON structured logger implementation. Field keys
// matching the sensitive-pattern registry are redacted with the pattern's
// strategy before serialization.
type structuredLogger struct {
	level     LogLevel
	writer    io.Writer
	mu        sync.Mutex
	registry  *redact.Registry
	baseAttrs map[string]any
}

// NewLogger creates a new structured logger with the given level.
func NewLogger(level string) scope.Logger {
	return NewLoggerWithWriter(level, os.Stderr)
}

// NewLoggerWithWriter creates a new structured logger with a custom writer.
func NewLoggerWithWriter(level string, w io.Writer) scope.Logger {
	return &structuredLogger{
		level:     ParseLogLevel(level),
		writer:    w,
		registry:  redact.DefaultRegistry,
		baseAttrs: make(map[string]any),
	}
}

// WithOperation returns a logger with operation context attached to every
// line.
func (l *structuredLogger) WithOperation(name, correlationID string) scope.Logger {
	attrs := make(map[string]any, len(l.baseAttrs)+2)
	for k, v := range l.baseAttrs {
		attrs[k] = v
	}
	attrs["operation.name"] = name
	if correlationID != "" {
		attrs["operation.correlation_id"] = correlationID
	}

	return &structuredLogger{
		level:     l.level,
		writer:    l.writer,
		registry:  l.registry,
		baseAttrs: attrs,
	}
}

func (l *structuredLogger) Info(ctx context.Context, msg string, fields ...scope.Field) {
	l.log(ctx, LevelInfo, msg, fields)
}

func (l *structuredLogger) Warn(ctx context.Context, msg string, fields ...scope.Field) {
	l.log(ctx, LevelWarn, msg, fields)
}

func (l *structuredLogger) Error(ctx context.Context, msg string, fields ...scope.Field) {
	l.log(ctx, LevelError, msg, fields)
}

func (l *structuredLogger) Debug(ctx context.Context, msg string, fields ...scope.Field) {
	l.log(ctx, LevelDebug, msg, fields)
}

func (l *structuredLogger) log(ctx context.Context, level LogLevel, msg string, fields []scope.Field) {
	// Filter by level
	if level < l.level {
		return
	}

	// Build log entry
	entry := make(map[string]any, len(l.baseAttrs)+len(fields)+4)

	entry["timestamp"] = time.Now().UTC().Format(time.RFC3339Nano)
	entry["level"] = level.String()
	entry["msg"] = msg

	// Correlation id from the ambient context, when present
	if id, ok := scope.CorrelationID(ctx); ok {
		entry["correlation_id"] = id
	}

	// Add base attributes (operation context)
	for k, v := range l.baseAttrs {
		entry[k] = v
	}

	// Add fields, redacting sensitive keys per the registry
	for _, f := range fields {
		if strat, ok := l.registry.Lookup(f.Key); ok {
			entry[f.Key] = redact.Apply(strat, f.Value)
		} else {
			entry[f.Key] = f.Value
		}
	}

	// Serialize and write
	l.mu.Lock()
	defer l.mu.Unlock()

	data, err := json.Marshal(entry)
	if err != nil {
		return // Silently drop malformed log entries
	}

	l.writer.Write(data)
	l.writer.Write([]byte("\n"))
}

// OperationLogger extends scope.Logger with operation binding.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Ownership: WithOperation returns a logger bound to the operation; the
//   returned logger may share state with its parent.
type OperationLogger interface {
	scope.Logger
	WithOperation(name, correlationID string) scope.Logger
}

// Ensure structuredLogger implements OperationLogger
var _ OperationLogger = (*structuredLogger)(nil)
