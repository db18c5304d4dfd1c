package redact

import "testing"

// TestRegistry_BuiltinSeeds verifies the pre-seeded pattern categories map
// to their documented strategies.
func TestRegistry_BuiltinSeeds(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		name string
		want Strategy
	}{
		{"password", StrategyMask},
		{"userPassword", StrategyMask},
		{"API_KEY", StrategyMask},
		{"authToken", StrategyMask},
		{"creditCardNumber", StrategyHash},
		{"ssn", StrategyHash},
		{"email", StrategyPartial},
		{"customerPhone", StrategyPartial},
	}

	for _, tt := range tests {
		got, ok := r.Lookup(tt.name)
		if !ok {
			t.Errorf("Lookup(%q) missed, want %v", tt.name, tt.want)
			continue
		}
		if got != tt.want {
			t.Errorf("Lookup(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

// TestRegistry_NonSensitiveMiss verifies ordinary names do not match.
func TestRegistry_NonSensitiveMiss(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"orderID", "quantity", "status", ""} {
		if _, ok := r.Lookup(name); ok {
			t.Errorf("Lookup(%q) matched, want miss", name)
		}
	}
}

// TestRegistry_CaseInsensitiveContains verifies matching is a
// case-insensitive substring check.
func TestRegistry_CaseInsensitiveContains(t *testing.T) {
	r := NewRegistry()

	got, ok := r.Lookup("X-Auth-Token")
	if !ok || got != StrategyMask {
		t.Errorf("Lookup(X-Auth-Token) = %v, %v; want mask match", got, ok)
	}
}

// TestRegistry_RegisterInvalidatesCache verifies a newly registered pattern
// is honored even for a name that previously missed and was memoized.
func TestRegistry_RegisterInvalidatesCache(t *testing.T) {
	r := NewRegistry()

	if _, ok := r.Lookup("internalCode"); ok {
		t.Fatal("internalCode matched before registration")
	}

	if err := r.Register("internalcode", StrategyHash); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	got, ok := r.Lookup("internalCode")
	if !ok || got != StrategyHash {
		t.Errorf("Lookup after Register = %v, %v; want hash match", got, ok)
	}
}

// TestRegistry_RegisterOverridesBuiltin verifies a user registration for a
// built-in term takes precedence over the seeded strategy.
func TestRegistry_RegisterOverridesBuiltin(t *testing.T) {
	r := NewRegistry()

	if got, ok := r.Lookup("email"); !ok || got != StrategyPartial {
		t.Fatalf("Lookup(email) before override = %v, %v; want partial", got, ok)
	}

	if err := r.Register("email", StrategyMask); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	got, ok := r.Lookup("customerEmail")
	if !ok || got != StrategyMask {
		t.Errorf("Lookup after override = %v, %v; want mask", got, ok)
	}
}

// TestRegistry_LatestRegistrationWins verifies re-registering the same term
// replaces the earlier user strategy.
func TestRegistry_LatestRegistrationWins(t *testing.T) {
	r := NewRegistry()

	if err := r.Register("fingerdata", StrategyHash); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := r.Register("fingerdata", StrategyMask); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	got, ok := r.Lookup("fingerdata")
	if !ok || got != StrategyMask {
		t.Errorf("Lookup = %v, %v; want latest registration (mask)", got, ok)
	}
}

// TestRegistry_RegisterEmptyPattern verifies blank patterns are rejected.
func TestRegistry_RegisterEmptyPattern(t *testing.T) {
	r := NewRegistry()
	if err := r.Register("  ", StrategyMask); err == nil {
		t.Fatal("expected error for empty pattern, got nil")
	}
}

// TestRegistry_ConcurrentLookup exercises lookups racing registrations.
func TestRegistry_ConcurrentLookup(t *testing.T) {
	r := NewRegistry()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			_ = r.Register("pattern", StrategyMask)
		}
	}()
	for i := 0; i < 1000; i++ {
		r.Lookup("userPassword")
		r.Lookup("orderID")
	}
	<-done
}

// TestOverrides_TypedBeatsBare verifies a typed entry wins over a bare-field
// entry for the same field name.
func TestOverrides_TypedBeatsBare(t *testing.T) {
	o := NewOverrides()
	o.Set("", "notes", StrategyMask)
	o.Set("Account", "notes", StrategyHash)

	got, ok := o.Lookup("Account", "notes")
	if !ok || got != StrategyHash {
		t.Errorf("Lookup(Account, notes) = %v, %v; want hash", got, ok)
	}

	got, ok = o.Lookup("Order", "notes")
	if !ok || got != StrategyMask {
		t.Errorf("Lookup(Order, notes) fell through to bare = %v, %v; want mask", got, ok)
	}
}

// TestOverrides_Miss verifies unset fields report no override.
func TestOverrides_Miss(t *testing.T) {
	o := NewOverrides()
	if _, ok := o.Lookup("Account", "balance"); ok {
		t.Error("Lookup on empty table matched")
	}
}
