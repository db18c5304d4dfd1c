package redact

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"reflect"
)

// Strategy selects how a sensitive value is transformed before it leaves the
// process.
type Strategy int

const (
	// StrategyMask replaces the value with a fixed mask.
	StrategyMask Strategy = iota
	// StrategyRemove drops the value entirely.
	StrategyRemove
	// StrategyHash replaces the value with a short non-reversible digest.
	StrategyHash
	// StrategyPartial keeps the first and last two characters and masks the
	// middle.
	StrategyPartial
	// StrategyTypeName replaces the value with its runtime type name.
	StrategyTypeName
)

// String returns the strategy name.
func (s Strategy) String() string {
	switch s {
	case StrategyMask:
		return "mask"
	case StrategyRemove:
		return "remove"
	case StrategyHash:
		return "hash"
	case StrategyPartial:
		return "partial"
	case StrategyTypeName:
		return "typename"
	default:
		return "unknown"
	}
}

// Masked is the fixed replacement emitted by StrategyMask.
const Masked = "***"

// hashLen is the number of hex characters kept from the digest.
const hashLen = 8

// Apply transforms value according to the strategy. It never returns an
// error: unknown strategies degrade to a full mask.
func Apply(s Strategy, value any) any {
	switch s {
	case StrategyRemove:
		return nil
	case StrategyMask:
		return Masked
	case StrategyHash:
		return Hash(value)
	case StrategyPartial:
		return Partial(value)
	case StrategyTypeName:
		return TypeName(value)
	default:
		return Masked
	}
}

// Hash returns a deterministic 8-character hex digest of the value. A nil
// value degrades to the full mask.
func Hash(value any) string {
	if value == nil {
		return Masked
	}
	sum := sha256.Sum256([]byte(stringify(value)))
	return hex.EncodeToString(sum[:])[:hashLen]
}

// Partial keeps the first two and last two characters and collapses the
// middle to the mask. Values of four characters or fewer, and nil, degrade
// to the full mask so that nothing recoverable leaks from short secrets.
// Boundaries are rune positions, so multi-byte text is never split into
// invalid fragments.
func Partial(value any) string {
	if value == nil {
		return Masked
	}
	r := []rune(stringify(value))
	if len(r) <= 4 {
		return Masked
	}
	return string(r[:2]) + Masked + string(r[len(r)-2:])
}

// TypeName returns the simple runtime type name of the value, or the literal
// string "null" for nil.
func TypeName(value any) string {
	if value == nil {
		return "null"
	}
	t := reflect.TypeOf(value)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}

func stringify(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", value)
}
