package redact

import (
	"errors"
	"strings"
	"sync"
)

// pattern pairs a lowercase substring with the strategy applied when a field
// or parameter name contains it.
type pattern struct {
	substr   string
	strategy Strategy
}

// Registry maps field and parameter names to redaction strategies using
// case-insensitive substring matching. User registrations are consulted
// before the built-ins, most recent first, so Register can re-map a built-in
// term. Lookups are memoized; registering a new pattern invalidates the memo
// immediately.
type Registry struct {
	mu     sync.RWMutex
	custom []pattern
	cache  map[string]cachedMatch
}

type cachedMatch struct {
	strategy Strategy
	ok       bool
}

// NewRegistry creates a registry pre-seeded with the built-in sensitive
// patterns: authentication and secret terms mask fully, financial and
// identity terms hash, contact terms keep their edges.
func NewRegistry() *Registry {
	return &Registry{cache: make(map[string]cachedMatch)}
}

var builtinPatterns = []pattern{
	{"password", StrategyMask},
	{"passwd", StrategyMask},
	{"pwd", StrategyMask},
	{"secret", StrategyMask},
	{"token", StrategyMask},
	{"apikey", StrategyMask},
	{"api_key", StrategyMask},
	{"auth", StrategyMask},
	{"credential", StrategyMask},
	{"privatekey", StrategyMask},
	{"private_key", StrategyMask},

	{"creditcard", StrategyHash},
	{"credit_card", StrategyHash},
	{"cardnumber", StrategyHash},
	{"card_number", StrategyHash},
	{"cvv", StrategyHash},
	{"ssn", StrategyHash},
	{"socialsecurity", StrategyHash},
	{"social_security", StrategyHash},
	{"taxid", StrategyHash},
	{"tax_id", StrategyHash},
	{"iban", StrategyHash},
	{"accountnumber", StrategyHash},
	{"account_number", StrategyHash},

	{"email", StrategyPartial},
	{"e_mail", StrategyPartial},
	{"phone", StrategyPartial},
	{"mobile", StrategyPartial},
	{"telephone", StrategyPartial},
}

// Register adds a pattern with its default strategy. The substring is
// matched case-insensitively against field and parameter names.
func (r *Registry) Register(substr string, strategy Strategy) error {
	substr = strings.ToLower(strings.TrimSpace(substr))
	if substr == "" {
		return errors.New("redact: pattern substring is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.custom = append(r.custom, pattern{substr: substr, strategy: strategy})
	r.cache = make(map[string]cachedMatch)
	return nil
}

// Lookup reports whether the name matches a sensitive pattern and, if so,
// which strategy applies. User registrations beat the built-ins and the most
// recent registration wins when several match.
func (r *Registry) Lookup(name string) (Strategy, bool) {
	if name == "" {
		return 0, false
	}
	key := strings.ToLower(name)

	r.mu.RLock()
	if m, ok := r.cache[key]; ok {
		r.mu.RUnlock()
		return m.strategy, m.ok
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	if m, ok := r.cache[key]; ok {
		return m.strategy, m.ok
	}

	var match cachedMatch
	for i := len(r.custom) - 1; i >= 0; i-- {
		if strings.Contains(key, r.custom[i].substr) {
			match = cachedMatch{strategy: r.custom[i].strategy, ok: true}
			break
		}
	}
	if !match.ok {
		for _, p := range builtinPatterns {
			if strings.Contains(key, p.substr) {
				match = cachedMatch{strategy: p.strategy, ok: true}
				break
			}
		}
	}
	r.cache[key] = match
	return match.strategy, match.ok
}

// Patterns returns the number of registered patterns, built-ins included.
func (r *Registry) Patterns() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.custom) + len(builtinPatterns)
}

// DefaultRegistry is the shared registry used when none is supplied.
var DefaultRegistry = NewRegistry()
