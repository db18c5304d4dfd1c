package sampling

import (
	"testing"
	"time"
)

func BenchmarkProbabilistic_ShouldSample(b *testing.B) {
	s := NewProbabilistic(0.5)
	sctx := Context{Operation: "Checkout", Source: "http"}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.ShouldSample(sctx)
	}
}

func BenchmarkConditional_ShouldSample(b *testing.B) {
	s := NewConditional(HasTag("error"), NewProbabilistic(0.5))
	sctx := Context{Operation: "Checkout", Tags: map[string]any{"error": true}}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.ShouldSample(sctx)
	}
}

func BenchmarkAdaptive_ShouldSample(b *testing.B) {
	s := NewAdaptive(AdaptiveConfig{TargetRate: 0.5, AdjustmentWindow: time.Hour})
	sctx := Context{Operation: "Checkout"}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.ShouldSample(sctx)
	}
}

func BenchmarkAdaptive_ShouldSampleParallel(b *testing.B) {
	s := NewAdaptive(AdaptiveConfig{TargetRate: 0.5, AdjustmentWindow: time.Hour})
	sctx := Context{Operation: "Checkout"}
	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			s.ShouldSample(sctx)
		}
	})
}
