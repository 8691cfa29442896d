package governance

import "time"

// SystemClock reads wall-clock time. Production wiring; tests inject a
// manual clock instead.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }
