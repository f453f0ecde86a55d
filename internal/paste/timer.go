package paste

import (
	"sync"
	"time"
)

// TickerTimer is the production Timer. Every schedule runs its own
// goroutine driving a time.Ticker, so ticks of one job never overlap and
// jobs for different destinations are fully independent.
type TickerTimer struct{}

// NewTickerTimer creates a new TickerTimer.
func NewTickerTimer() *TickerTimer {
	return &TickerTimer{}
}

// ScheduleRecurring starts a goroutine that invokes fn once per interval
// until fn returns false or the handle is cancelled.
func (t *TickerTimer) ScheduleRecurring(interval time.Duration, fn func() bool) TimerHandle {
	h := &tickerHandle{stop: make(chan struct{})}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-h.stop:
				return
			case <-ticker.C:
				if !fn() {
					return
				}
			}
		}
	}()

	return h
}

type tickerHandle struct {
	stop chan struct{}
	once sync.Once
}

func (h *tickerHandle) Cancel() {
	h.once.Do(func() {
		close(h.stop)
	})
}
