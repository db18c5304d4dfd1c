package capture

import "testing"

// BenchmarkValue_Primitive measures the fast path for primitives.
func BenchmarkValue_Primitive(b *testing.B) {
	c := New(DefaultOptions())
	for i := 0; i < b.N; i++ {
		_ = c.Value("count", 42)
	}
}

// BenchmarkValue_SensitiveShortCircuit measures the redaction fast path.
func BenchmarkValue_SensitiveShortCircuit(b *testing.B) {
	c := New(DefaultOptions())
	for i := 0; i < b.N; i++ {
		_ = c.Value("password", "hunter2")
	}
}

// BenchmarkValue_Struct measures full verbose traversal.
func BenchmarkValue_Struct(b *testing.B) {
	opts := DefaultOptions()
	opts.Level = LevelVerbose
	opts.UseStringer = false
	c := New(opts)

	v := outer{Name: "a", Nested: inner{Leaf: "b"}}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = c.Value("obj", v)
	}
}

// BenchmarkValue_Slice measures collection capture.
func BenchmarkValue_Slice(b *testing.B) {
	c := New(DefaultOptions())
	v := []int{1, 2, 3, 4, 5, 6, 7, 8}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = c.Value("items", v)
	}
}
