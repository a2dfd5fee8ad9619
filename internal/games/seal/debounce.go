package seal

import "time"

// Clock is the time source used for input debouncing.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// debouncer accepts a request only if interval has elapsed since the last
// accepted one.
type debouncer struct {
	interval time.Duration
	last     time.Time
	armed    bool
}

func (d *debouncer) ready(now time.Time) bool {
	return !d.armed || now.Sub(d.last) >= d.interval
}

func (d *debouncer) accept(now time.Time) {
	d.last = now
	d.armed = true
}
