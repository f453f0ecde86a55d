package paste

import "time"

// Handle is a live, currently-connected destination. Send is
// fire-and-forget: the engine does not wait for delivery confirmation,
// it only guarantees its own bookkeeping.
type Handle interface {
	Send(text string)
}

// Directory resolves a Destination to a live Handle. It returns nil when
// no matching destination is currently joined/connected. Jobs call
// FindLive fresh on every tick and never cache the result, because a
// handle valid on one tick may be gone on the next (disconnect, part,
// rejoin).
type Directory interface {
	FindLive(dest Destination) Handle
}

// Sink receives one-line, user-visible diagnostics about the paste for
// dest. Print must not block.
type Sink interface {
	Print(dest Destination, text string)
}

// TimerHandle is an owned recurring timer registration. Cancel stops
// future ticks; it is safe to call from within the tick callback and
// safe to call more than once.
type TimerHandle interface {
	Cancel()
}

// Timer schedules a recurring callback. The callback is invoked once per
// elapsed interval and returns true to keep recurring or false to stop.
// A callback that returned false is never invoked again.
type Timer interface {
	ScheduleRecurring(interval time.Duration, fn func() bool) TimerHandle
}
