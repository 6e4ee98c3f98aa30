package scheduling

import "time"

// Clock supplies the current time. Sweeps and booking validation take it as a
// dependency so window math is testable.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns the wall clock.
func SystemClock() Clock { return systemClock{} }
