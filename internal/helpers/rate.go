package helpers

import (
	"time"

	"golang.org/x/time/rate"
)

// OnceAMinute throttles repetitive log lines to one per minute per process.
var OnceAMinute = &rate.Sometimes{Interval: time.Minute}
