package faults

import (
	"crypto/sha256"
	"encoding/hex"
	"reflect"
	"regexp"
	"strings"
)

// StackTracer is implemented by errors that carry a captured stack trace.
// Plain errors contribute no frames to their fingerprint.
type StackTracer interface {
	StackTrace() string
}

// maxChildren bounds how many wrapped errors contribute to a fingerprint.
const maxChildren = 3

// maxNesting bounds recursion through wrap chains.
const maxNesting = 8

// Normalization patterns. URLs go first since they may contain both GUIDs
// and digit runs.
var (
	urlPattern    = regexp.MustCompile(`https?://[^\s]+`)
	guidPattern   = regexp.MustCompile(`[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`)
	numberPattern = regexp.MustCompile(`\d{2,}`)
	spacePattern  = regexp.MustCompile(`\s+`)

	lineSuffixPattern = regexp.MustCompile(`:\d+\S*$`)
	bracketPattern    = regexp.MustCompile(`\[[^\]]*\]`)
	addrPattern       = regexp.MustCompile(`\+?0x[0-9a-fA-F]+`)
)

// Fingerprint generates a stable hash summarizing the error's shape. It is a
// pure function: equal shapes always produce equal fingerprints, and changing
// only a GUID, a number run, or a URL embedded in the message does not change
// the result. Returns the empty string for a nil error.
func Fingerprint(err error) string {
	if err == nil {
		return ""
	}
	input := strings.Join(fingerprintParts(err, 0), "|")
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])
}

func fingerprintParts(err error, nesting int) []string {
	parts := []string{errorTypeName(err)}
	if !isAggregate(err) {
		// An aggregate's message is just its children concatenated; the
		// children fingerprints below already cover it, bounded at three.
		parts = append(parts, NormalizeMessage(err.Error()))
	}
	if st, ok := err.(StackTracer); ok {
		parts = append(parts, normalizeStack(st.StackTrace()))
	}

	if nesting >= maxNesting {
		return parts
	}
	for _, child := range childErrors(err) {
		childInput := strings.Join(fingerprintParts(child, nesting+1), "|")
		sum := sha256.Sum256([]byte(childInput))
		parts = append(parts, hex.EncodeToString(sum[:]))
	}
	return parts
}

func isAggregate(err error) bool {
	_, ok := err.(interface{ Unwrap() []error })
	return ok
}

// childErrors returns the wrapped errors contributing to the fingerprint:
// the first three children of a joined error, or the single wrapped error.
func childErrors(err error) []error {
	if agg, ok := err.(interface{ Unwrap() []error }); ok {
		children := agg.Unwrap()
		if len(children) > maxChildren {
			children = children[:maxChildren]
		}
		return children
	}
	if single, ok := err.(interface{ Unwrap() error }); ok {
		if inner := single.Unwrap(); inner != nil {
			return []error{inner}
		}
	}
	return nil
}

// TypeName returns the error's dynamic type name with pointers stripped,
// the same name fingerprints and exception groups are keyed on.
func TypeName(err error) string {
	return errorTypeName(err)
}

func errorTypeName(err error) string {
	t := reflect.TypeOf(err)
	if t == nil {
		return "error"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.String()
}

// NormalizeMessage strips volatile fragments from an error message: URLs
// become {url}, GUID-shaped substrings become {guid}, runs of two or more
// digits become {number}, and whitespace is collapsed.
func NormalizeMessage(msg string) string {
	msg = urlPattern.ReplaceAllString(msg, "{url}")
	msg = guidPattern.ReplaceAllString(msg, "{guid}")
	msg = numberPattern.ReplaceAllString(msg, "{number}")
	msg = spacePattern.ReplaceAllString(msg, " ")
	return strings.TrimSpace(msg)
}

// normalizeStack keeps the first three non-empty frames, stripping file and
// line suffixes, addresses and bracketed annotations.
func normalizeStack(trace string) string {
	if trace == "" {
		return ""
	}

	var frames []string
	for _, line := range strings.Split(trace, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		line = bracketPattern.ReplaceAllString(line, "")
		line = addrPattern.ReplaceAllString(line, "")
		// Collapse and trim before the line-suffix pattern runs: stripping a
		// trailing address leaves whitespace that would otherwise keep the
		// end-anchored pattern from matching file.go:42.
		line = strings.TrimSpace(spacePattern.ReplaceAllString(line, " "))
		line = lineSuffixPattern.ReplaceAllString(line, "")
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		frames = append(frames, line)
		if len(frames) == 3 {
			break
		}
	}
	return strings.Join(frames, "|")
}
