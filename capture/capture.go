package capture

import (
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/jonwraymond/opscope/redact"
)

// Serializer converts a value of a specific runtime type into its captured
// representation. A panicking serializer is recovered and the engine falls
// back to default traversal.
type Serializer func(value any) any

// Capturer applies the capture rules to values, parameters and return
// values. Safe for concurrent use.
type Capturer struct {
	opts      Options
	registry  *redact.Registry
	overrides *redact.Overrides

	mu          sync.RWMutex
	serializers map[reflect.Type]Serializer
}

// New creates a Capturer with the given options, backed by the default
// sensitive-pattern registry and an empty override table.
func New(opts Options) *Capturer {
	return &Capturer{
		opts:        opts,
		registry:    redact.DefaultRegistry,
		overrides:   redact.NewOverrides(),
		serializers: make(map[reflect.Type]Serializer),
	}
}

// SetRegistry replaces the sensitive-pattern registry. A nil registry
// disables name-based detection.
func (c *Capturer) SetRegistry(r *redact.Registry) *Capturer {
	c.registry = r
	return c
}

// Overrides returns the per-field override table for explicit strategies.
func (c *Capturer) Overrides() *redact.Overrides {
	return c.overrides
}

// RegisterSerializer installs a custom serializer for the exact runtime
// type. Serializers have the highest priority on the capture path.
func (c *Capturer) RegisterSerializer(t reflect.Type, fn Serializer) {
	if t == nil || fn == nil {
		return
	}
	c.mu.Lock()
	c.serializers[t] = fn
	c.mu.Unlock()
}

// Value captures a single named value. Returns nil when the level is None,
// when the value is nil, or when redaction removes it.
func (c *Capturer) Value(name string, value any) any {
	if c.opts.Level == LevelNone {
		return nil
	}
	if v, done := c.redactByName("", name, value); done {
		return v
	}
	if value == nil {
		return nil
	}
	return c.capture(value, c.opts.MaxDepth)
}

// Parameters captures positional call arguments, keyed by parameter name.
// The two slices must have equal length.
func (c *Capturer) Parameters(names []string, values []any) (map[string]any, error) {
	if len(names) != len(values) {
		return nil, ErrArityMismatch
	}
	if c.opts.Level == LevelNone || len(names) == 0 {
		return nil, nil
	}

	out := make(map[string]any, len(names))
	for i, name := range names {
		if name == "" {
			return nil, ErrNilNames
		}
		out[name] = c.Value(name, values[i])
	}
	return out, nil
}

// ReturnValue captures a call's return value under the single "result" slot.
// A nil value produces nothing at all, not even a nil entry.
func (c *Capturer) ReturnValue(value any) map[string]any {
	if value == nil || c.opts.Level == LevelNone {
		return nil
	}
	return map[string]any{"result": c.Value("result", value)}
}

// redactByName resolves an explicit override or a registry match for the
// name. Redaction short-circuits all further traversal.
func (c *Capturer) redactByName(typeName, name string, value any) (any, bool) {
	if c.overrides != nil {
		if s, ok := c.overrides.Lookup(typeName, name); ok {
			return redact.Apply(s, value), true
		}
	}
	if c.opts.AutoDetectSensitive && c.registry != nil {
		if s, ok := c.registry.Lookup(name); ok {
			return redact.Apply(s, value), true
		}
	}
	return nil, false
}

func (c *Capturer) capture(value any, depth int) any {
	if value == nil {
		return nil
	}

	if out, ok := c.serialize(value); ok {
		return out
	}

	switch v := value.(type) {
	case string:
		return c.truncate(v)
	case []byte:
		return c.truncate(string(v))
	case time.Time:
		return v
	case time.Duration:
		return v.String()
	case error:
		return c.truncate(v.Error())
	case bool, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, uintptr,
		float32, float64, complex64, complex128:
		return v
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
		return c.capture(rv.Elem().Interface(), depth)
	case reflect.String:
		// Named string types (enum-like) captured as their text.
		return c.truncate(rv.String())
	case reflect.Bool, reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		// Named numeric types: enums render through their Stringer when one
		// exists, otherwise as the raw number.
		if s, ok := value.(fmt.Stringer); ok && c.opts.UseStringer {
			return c.stringer(s)
		}
		return value
	case reflect.Slice, reflect.Array:
		return c.captureSlice(rv, depth)
	case reflect.Map:
		return c.captureMap(rv, depth)
	case reflect.Struct:
		return c.captureStruct(rv, value, depth)
	default:
		// Funcs, channels and the like carry no diagnostic value.
		return nil
	}
}

// serialize tries a registered custom serializer for the exact runtime type.
func (c *Capturer) serialize(value any) (out any, ok bool) {
	c.mu.RLock()
	fn := c.serializers[reflect.TypeOf(value)]
	c.mu.RUnlock()
	if fn == nil {
		return nil, false
	}

	defer func() {
		if recover() != nil {
			// Broken serializer: fall back to default traversal.
			out, ok = nil, false
		}
	}()
	return fn(value), true
}

// stringer renders via fmt.Stringer, recovering panics so a broken String
// method cannot take down the caller.
func (c *Capturer) stringer(s fmt.Stringer) (out any) {
	defer func() {
		if recover() != nil {
			out = redact.TypeName(s)
		}
	}()
	return c.truncate(s.String())
}

func (c *Capturer) captureSlice(rv reflect.Value, depth int) any {
	if c.opts.Level < LevelStandard {
		return nil
	}
	if depth <= 0 {
		return c.depthSentinel()
	}

	total := rv.Len()
	keep := total
	if c.opts.MaxCollectionItems > 0 && keep > c.opts.MaxCollectionItems {
		keep = c.opts.MaxCollectionItems
	}

	out := make([]any, 0, keep+1)
	for i := 0; i < keep; i++ {
		out = append(out, c.capture(rv.Index(i).Interface(), depth-1))
	}
	if keep < total {
		out = append(out, fmt.Sprintf("... [%d of %d items]", keep, total))
	}
	return out
}

func (c *Capturer) captureMap(rv reflect.Value, depth int) any {
	if c.opts.Level < LevelStandard {
		return nil
	}
	if depth <= 0 {
		return c.depthSentinel()
	}

	total := rv.Len()
	keep := total
	if c.opts.MaxCollectionItems > 0 && keep > c.opts.MaxCollectionItems {
		keep = c.opts.MaxCollectionItems
	}

	out := make(map[string]any, keep+1)
	iter := rv.MapRange()
	for len(out) < keep && iter.Next() {
		key := fmt.Sprintf("%v", iter.Key().Interface())
		if v, done := c.redactByName("", key, iter.Value().Interface()); done {
			out[key] = v
			continue
		}
		out[key] = c.capture(iter.Value().Interface(), depth-1)
	}
	if keep < total {
		out["..."] = fmt.Sprintf("[%d of %d entries]", keep, total)
	}
	return out
}

func (c *Capturer) captureStruct(rv reflect.Value, value any, depth int) any {
	if c.opts.UseStringer {
		if s, ok := value.(fmt.Stringer); ok {
			return c.stringer(s)
		}
	}
	if c.opts.Level < LevelVerbose {
		return nil
	}
	if depth <= 0 {
		return c.depthSentinel()
	}

	t := rv.Type()
	out := make(map[string]any, t.NumField())
	ordinal := 0
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		key := field.Name
		if !c.opts.CapturePropertyNames {
			key = fmt.Sprintf("%d", ordinal)
		}
		ordinal++

		fv := rv.Field(i).Interface()
		if v, done := c.redactByName(t.Name(), field.Name, fv); done {
			out[key] = v
			continue
		}
		out[key] = c.capture(fv, depth-1)
	}
	return out
}

func (c *Capturer) truncate(s string) string {
	max := c.opts.MaxStringLength
	if max <= 0 || len(s) <= max {
		return s
	}
	return s[:max] + fmt.Sprintf("... [truncated, %d chars total]", len(s))
}

func (c *Capturer) depthSentinel() string {
	return fmt.Sprintf("[Max depth %d reached]", c.opts.MaxDepth)
}
