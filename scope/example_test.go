package scope_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonwraymond/opscope/faults"
	"github.com/jonwraymond/opscope/scope"
)

func ExampleFactory_Begin() {
	clock := scope.ClockFunc(func() time.Time { return time.Unix(1_700_000_000, 0) })
	sink := scope.SinkFunc(func(ctx context.Context, ev scope.Event) error {
		pw, _ := ev.Tag("password")
		fmt.Printf("%s %s password=%v\n", ev.Name, ev.Status, pw)
		return nil
	})

	f := scope.NewFactory(scope.WithSink(sink), scope.WithClock(clock))

	_, sc, err := f.Begin(context.Background(), "Login")
	if err != nil {
		fmt.Println(err)
		return
	}
	sc.WithTag("password", "hunter2").Succeed()
	sc.End()
	// Output:
	// Login succeeded password=***
}

func ExampleScope_Fail() {
	agg := faults.NewAggregator(faults.Config{})
	f := scope.NewFactory(scope.WithAggregator(agg))

	_, sc, _ := f.Begin(context.Background(), "Checkout")
	sc.Fail(errors.New("card expired"))
	sc.End()

	fmt.Println(sc.Status())
	fmt.Println(agg.GroupCount())
	// Output:
	// failed
	// 1
}

func ExampleScope_WithProperty() {
	sink := scope.SinkFunc(func(ctx context.Context, ev scope.Event) error {
		rows, _ := ev.Tag("rows_written")
		fmt.Printf("rows_written=%v\n", rows)
		return nil
	})
	f := scope.NewFactory(scope.WithSink(sink))

	rows := 0
	_, sc, _ := f.Begin(context.Background(), "Import")
	sc.WithProperty("rows_written", func() any { return rows })

	rows = 1204 // evaluated at End, not at registration
	sc.End()
	// Output:
	// rows_written=1204
}

func ExampleMiddleware_Wrap() {
	f := scope.NewFactory()
	mw := scope.NewMiddleware(f)

	resize := mw.Wrap("Resize", func(ctx context.Context, input any) (any, error) {
		return fmt.Sprintf("resized %v", input), nil
	})

	out, err := resize(context.Background(), "image.png")
	fmt.Println(out, err)
	// Output:
	// resized image.png <nil>
}
