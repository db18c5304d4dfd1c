package redact

import "sync"

// overrideKey identifies a field on a named type. An empty type name keys a
// bare parameter or tag name.
type overrideKey struct {
	typeName string
	field    string
}

// Overrides is a hand-populated table of explicit per-field redaction
// strategies. An override always takes precedence over name-based pattern
// detection.
type Overrides struct {
	mu sync.RWMutex
	m  map[overrideKey]Strategy
}

// NewOverrides creates an empty override table.
func NewOverrides() *Overrides {
	return &Overrides{m: make(map[overrideKey]Strategy)}
}

// Set pins the strategy for a field of the given type. Use an empty typeName
// for positional parameters and tag keys that have no owning type.
func (o *Overrides) Set(typeName, field string, strategy Strategy) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.m[overrideKey{typeName: typeName, field: field}] = strategy
}

// Lookup returns the pinned strategy for the (type, field) pair. When no
// typed entry exists, a bare-field entry is consulted.
func (o *Overrides) Lookup(typeName, field string) (Strategy, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if s, ok := o.m[overrideKey{typeName: typeName, field: field}]; ok {
		return s, true
	}
	if typeName != "" {
		if s, ok := o.m[overrideKey{field: field}]; ok {
			return s, true
		}
	}
	return 0, false
}

// Len returns the number of overrides.
func (o *Overrides) Len() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.m)
}
