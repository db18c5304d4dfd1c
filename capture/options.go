package capture

import "github.com/jonwraymond/opscope/redact"

// Level controls how much structure the engine captures.
type Level int

const (
	// LevelNone captures nothing.
	LevelNone Level = iota
	// LevelMinimal captures primitives, strings, times and enums only.
	LevelMinimal
	// LevelStandard additionally captures collections and maps.
	LevelStandard
	// LevelVerbose additionally traverses complex objects field by field.
	LevelVerbose
)

// String returns the level name.
func (l Level) String() string {
	switch l {
	case LevelNone:
		return "none"
	case LevelMinimal:
		return "minimal"
	case LevelStandard:
		return "standard"
	case LevelVerbose:
		return "verbose"
	default:
		return "unknown"
	}
}

// Options configures a Capturer. The zero value captures nothing
// (LevelNone); start from DefaultOptions for sensible limits.
type Options struct {
	// Level is the capture verbosity gate.
	Level Level

	// AutoDetectSensitive enables name-based sensitivity detection against
	// the registry.
	AutoDetectSensitive bool

	// DefaultStrategy applies when a name is detected as sensitive through
	// an override that carries no strategy of its own.
	DefaultStrategy redact.Strategy

	// MaxDepth is the traversal depth budget for nested structures. A budget
	// of 0 yields the depth sentinel even for the outermost complex value.
	MaxDepth int

	// MaxCollectionItems caps captured elements per collection. Zero or
	// negative means unlimited.
	MaxCollectionItems int

	// MaxStringLength caps captured string length. Zero or negative means
	// unlimited.
	MaxStringLength int

	// UseStringer uses a value's fmt.Stringer implementation instead of
	// field traversal when present.
	UseStringer bool

	// CapturePropertyNames emits struct field names as keys. When false,
	// ordinal keys are used so field names themselves never leave the
	// process.
	CapturePropertyNames bool
}

// DefaultOptions returns production-safe capture defaults.
func DefaultOptions() Options {
	return Options{
		Level:                LevelStandard,
		AutoDetectSensitive:  true,
		DefaultStrategy:      redact.StrategyMask,
		MaxDepth:             3,
		MaxCollectionItems:   10,
		MaxStringLength:      256,
		UseStringer:          true,
		CapturePropertyNames: true,
	}
}
