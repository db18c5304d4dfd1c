package redact_test

import (
	"fmt"

	"github.com/jonwraymond/opscope/redact"
)

func ExampleApply() {
	fmt.Println(redact.Apply(redact.StrategyMask, "hunter2"))
	fmt.Println(redact.Apply(redact.StrategyPartial, "user@example.com"))
	fmt.Println(redact.Apply(redact.StrategyTypeName, 42))
	// Output:
	// ***
	// us***om
	// int
}

func ExampleRegistry_Lookup() {
	r := redact.NewRegistry()

	strategy, ok := r.Lookup("customerEmail")
	fmt.Println(ok, strategy)

	_, ok = r.Lookup("orderID")
	fmt.Println(ok)
	// Output:
	// true partial
	// false
}

func ExampleRegistry_Register() {
	r := redact.NewRegistry()
	_ = r.Register("loyaltycode", redact.StrategyHash)

	strategy, ok := r.Lookup("LoyaltyCode")
	fmt.Println(ok, strategy)
	// Output:
	// true hash
}
