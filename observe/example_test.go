package observe_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jonwraymond/opscope/observe"
	"github.com/jonwraymond/opscope/scope"
)

func ExampleNewObserver() {
	cfg := observe.Config{
		ServiceName: "example-service",
		Version:     "1.0.0",
		Tracing:     observe.TracingConfig{Enabled: true, Exporter: "none"},
		Metrics:     observe.MetricsConfig{Enabled: false},
		Logging:     observe.LoggingConfig{Enabled: true, Level: "info"},
	}

	ctx := context.Background()
	obs, err := observe.NewObserver(ctx, cfg)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	defer func() {
		_ = obs.Shutdown(ctx)
	}()

	fmt.Println("Observer created successfully")
	// Output:
	// Observer created successfully
}

func ExampleNewObserver_validation() {
	// Missing service name triggers validation error
	cfg := observe.Config{
		ServiceName: "", // Empty - will fail validation
	}

	ctx := context.Background()
	_, err := observe.NewObserver(ctx, cfg)
	if errors.Is(err, observe.ErrMissingServiceName) {
		fmt.Println("Caught: missing service name")
	}
	// Output:
	// Caught: missing service name
}

func ExampleConfig_Validate() {
	// Valid configuration
	cfg := observe.Config{
		ServiceName: "my-service",
		Version:     "1.0.0",
		Tracing: observe.TracingConfig{
			Enabled:   true,
			Exporter:  "stdout",
			SamplePct: 0.5, // 50% sampling
		},
		Metrics: observe.MetricsConfig{
			Enabled:  true,
			Exporter: "prometheus",
		},
		Logging: observe.LoggingConfig{
			Enabled: true,
			Level:   "info",
		},
	}

	if err := cfg.Validate(); err != nil {
		fmt.Println("Invalid:", err)
	} else {
		fmt.Println("Configuration is valid")
	}
	// Output:
	// Configuration is valid
}

func ExampleNewFactory() {
	obs, err := observe.NewObserver(context.Background(), observe.Config{
		ServiceName: "example-service",
	})
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	f, err := observe.NewFactory(obs)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	_, sc, err := f.Begin(context.Background(), "Checkout")
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	sc.WithTag("cart_size", 3).Succeed()
	sc.End()

	fmt.Println(sc.Status())
	// Output:
	// succeeded
}

func ExampleNewLoggerWithWriter() {
	var buf bytes.Buffer
	logger := observe.NewLoggerWithWriter("info", &buf)

	logger.Info(context.Background(), "login attempt",
		scope.Field{Key: "password", Value: "hunter2"},
	)

	fmt.Println(strings.Contains(buf.String(), "hunter2"))
	fmt.Println(strings.Contains(buf.String(), `"password":"***"`))
	// Output:
	// false
	// true
}
