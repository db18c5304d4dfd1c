package capture_test

import (
	"fmt"

	"github.com/jonwraymond/opscope/capture"
)

func ExampleCapturer_Value() {
	c := capture.New(capture.DefaultOptions())

	fmt.Println(c.Value("orderID", "ord-1"))
	fmt.Println(c.Value("password", "hunter2"))
	// Output:
	// ord-1
	// ***
}

func ExampleCapturer_Parameters() {
	c := capture.New(capture.DefaultOptions())

	params, _ := c.Parameters(
		[]string{"userID", "apiToken"},
		[]any{"u-42", "tok-abc"},
	)
	fmt.Println(params["userID"], params["apiToken"])
	// Output:
	// u-42 ***
}

func ExampleCapturer_Value_truncation() {
	opts := capture.DefaultOptions()
	opts.MaxCollectionItems = 2
	c := capture.New(opts)

	fmt.Println(c.Value("items", []string{"a", "b", "c", "d"}))
	// Output:
	// [a b ... [2 of 4 items]]
}
