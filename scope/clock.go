package scope

import "time"

// Clock supplies the current time. Injectable for determinism in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the system clock. Values from time.Now carry a
// monotonic reading, so elapsed times computed from them survive wall-clock
// adjustments.
var SystemClock Clock = systemClock{}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() time.Time

// Now calls the function.
func (f ClockFunc) Now() time.Time { return f() }
