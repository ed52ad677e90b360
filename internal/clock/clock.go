package clock

import (
	"time"
)

// Clock supplies wall-clock time so session timestamps are testable.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the time package
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }
