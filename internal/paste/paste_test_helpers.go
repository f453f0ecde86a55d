package paste

import (
	"time"

	"github.com/dripfeedbot/dripfeed/internal/logger"
)

// testLogger creates a test logger instance
func testLogger() *logger.Logger {
	log, err := logger.New(logger.Config{
		Level:  "debug",
		Format: "text",
		Output: "stdout",
	})
	if err != nil {
		panic(err)
	}
	return log
}

// manualTimer is a deterministic Timer for tests: scheduled callbacks
// are collected and fired explicitly with Tick.
type manualTimer struct {
	scheduled []*manualHandle
}

type manualHandle struct {
	interval  time.Duration
	fn        func() bool
	cancelled bool
	done      bool
}

func (h *manualHandle) Cancel() { h.cancelled = true }

func (t *manualTimer) ScheduleRecurring(interval time.Duration, fn func() bool) TimerHandle {
	h := &manualHandle{interval: interval, fn: fn}
	t.scheduled = append(t.scheduled, h)
	return h
}

// last returns the most recently scheduled handle.
func (t *manualTimer) last() *manualHandle {
	if len(t.scheduled) == 0 {
		return nil
	}
	return t.scheduled[len(t.scheduled)-1]
}

// Tick fires the most recent live callback once, mirroring one interval
// elapsing on the host timer.
func (t *manualTimer) Tick() {
	h := t.last()
	if h == nil || h.cancelled || h.done {
		return
	}
	if !h.fn() {
		h.done = true
	}
}

// recorderHandle collects every line sent through it.
type recorderHandle struct {
	sent []string
}

func (h *recorderHandle) Send(text string) {
	h.sent = append(h.sent, text)
}

// fakeDirectory resolves destinations to recorder handles. Destinations
// absent from the map are unreachable.
type fakeDirectory struct {
	live map[Destination]*recorderHandle
}

func newFakeDirectory(dests ...Destination) *fakeDirectory {
	d := &fakeDirectory{live: make(map[Destination]*recorderHandle)}
	for _, dest := range dests {
		d.live[dest] = &recorderHandle{}
	}
	return d
}

func (d *fakeDirectory) FindLive(dest Destination) Handle {
	h, ok := d.live[dest]
	if !ok {
		return nil
	}
	return h
}

func (d *fakeDirectory) drop(dest Destination) {
	delete(d.live, dest)
}

func (d *fakeDirectory) restore(dest Destination) {
	if _, ok := d.live[dest]; !ok {
		d.live[dest] = &recorderHandle{}
	}
}

func (d *fakeDirectory) sentTo(dest Destination) []string {
	h, ok := d.live[dest]
	if !ok {
		return nil
	}
	return h.sent
}

// recorderSink collects printed diagnostics.
type recorderSink struct {
	printed []string
}

func (s *recorderSink) Print(_ Destination, text string) {
	s.printed = append(s.printed, text)
}

func (s *recorderSink) lastLine() string {
	if len(s.printed) == 0 {
		return ""
	}
	return s.printed[len(s.printed)-1]
}
