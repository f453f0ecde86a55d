package paste

import (
	"fmt"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/dripfeedbot/dripfeed/internal/logger"
)

// State is the delivery state of a Job.
type State int

const (
	// StateIdle means no timer is registered. A job is Idle when freshly
	// created, after an explicit stop, or after an auto-suspend; its
	// cursor is preserved for resume.
	StateIdle State = iota
	// StateActive means a recurring timer is delivering lines.
	StateActive
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateActive:
		return "active"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// completionNotifier is how a job tells its scheduler that it delivered
// the last line. Called with the scheduler lock held.
type completionNotifier interface {
	removeTargetLocked(dest Destination)
}

// Job tracks one in-progress or paused paste to a single destination.
// The line slice is immutable once created; only the cursor advances.
//
// Invariant: handle is nil iff state is Idle, and cursor never exceeds
// len(lines). All mutating methods must be called with the gate held;
// the timer callback acquires the gate itself for its bookkeeping, so
// one paste never has two overlapping ticks and scheduler commands never
// interleave with a tick's state changes. The transport send runs with
// the gate released.
type Job struct {
	dest     Destination
	lines    []string
	cursor   int
	interval time.Duration

	state  State
	handle TimerHandle

	// stoppedAt is set on stop/suspend and cleared on start. The idle
	// expiry sweep uses it to drop pastes nobody resumed.
	stoppedAt time.Time

	gate    sync.Locker
	timer   Timer
	dir     Directory
	sink    Sink
	notify  completionNotifier
	logger  *logger.Logger
	metrics *Metrics
}

func newJob(dest Destination, lines []string, interval time.Duration, gate sync.Locker, timer Timer, dir Directory, sink Sink, notify completionNotifier, log *logger.Logger, metrics *Metrics) *Job {
	return &Job{
		dest:     dest,
		lines:    lines,
		interval: interval,
		state:    StateIdle,
		gate:     gate,
		timer:    timer,
		dir:      dir,
		sink:     sink,
		notify:   notify,
		logger:   log,
		metrics:  metrics,
	}
}

// remainingLines is the number of lines still pending delivery.
func (j *Job) remainingLines() int {
	return len(j.lines) - j.cursor
}

// startLocked registers the recurring timer and transitions to Active.
// The cursor is left untouched, so starting an idle job resumes from
// wherever it stopped.
func (j *Job) startLocked() error {
	if j.state != StateIdle {
		return fmt.Errorf("%w: %s", ErrAlreadyActive, j.dest)
	}

	j.handle = j.timer.ScheduleRecurring(j.interval, j.tick)
	j.state = StateActive
	j.stoppedAt = time.Time{}
	return nil
}

// stopLocked cancels the timer and transitions to Idle, preserving the
// cursor for a later resume.
func (j *Job) stopLocked() error {
	if j.state != StateActive {
		return fmt.Errorf("%w: %s", ErrNotActive, j.dest)
	}

	j.handle.Cancel()
	j.handle = nil
	j.state = StateIdle
	j.stoppedAt = time.Now()
	return nil
}

// stopIfActiveLocked is stopLocked without the error when already idle.
// Used when a new paste supersedes this job.
func (j *Job) stopIfActiveLocked() {
	if j.state == StateActive {
		_ = j.stopLocked()
	}
}

// tick is the timer callback. It delivers at most one line and returns
// whether the timer should keep recurring. Bookkeeping happens under the
// scheduler lock; the send itself runs after the lock is released, so a
// slow transport for one destination never stalls ticks or commands for
// the others. Per-job ordering still holds: the timer never runs two
// ticks of the same job concurrently.
func (j *Job) tick() bool {
	handle, line, cont := j.claimNext()
	if handle != nil {
		handle.Send(line)
	}
	return cont
}

// claimNext advances the job by one line under the scheduler lock and
// returns the resolved handle with the normalized payload, or a nil
// handle when nothing is to be sent this tick. A panic here is a logic
// bug; it is logged with a stack trace and the job is parked Idle so the
// rest of the process keeps running.
func (j *Job) claimNext() (dst Handle, line string, cont bool) {
	j.gate.Lock()
	defer j.gate.Unlock()

	defer func() {
		if r := recover(); r != nil {
			j.logger.Error("paste tick panicked", fmt.Errorf("%v", r),
				logger.Field{Key: "target", Value: j.dest.String()},
				logger.Field{Key: "stack", Value: string(debug.Stack())})
			if j.state == StateActive {
				j.handle.Cancel()
				j.handle = nil
				j.state = StateIdle
				j.stoppedAt = time.Now()
			}
			dst = nil
			cont = false
		}
	}()

	// A tick can already be in flight when the job is stopped or
	// replaced; it observes the final state here and dies quietly.
	if j.state != StateActive {
		return nil, "", false
	}

	// Completion is checked before resolving the destination: a job with
	// nothing left never attempts delivery, even to a vanished target.
	if j.remainingLines() == 0 {
		j.handle.Cancel()
		j.handle = nil
		j.state = StateIdle
		j.notify.removeTargetLocked(j.dest)
		return nil, "", false
	}

	handle := j.dir.FindLive(j.dest)
	if handle == nil {
		// Auto-suspend: the job stays registered so a later resume can
		// continue from the preserved cursor.
		j.sink.Print(j.dest, fmt.Sprintf("dripfeed: stopping, target unreachable: %s.", j.dest))
		_ = j.stopLocked()
		j.metrics.jobSuspended()
		return nil, "", false
	}

	line = normalizeLine(j.lines[j.cursor])
	j.cursor++
	j.metrics.lineSent()
	return handle, line, true
}

// normalizeLine trims trailing whitespace and newline characters. An
// empty or all-whitespace line becomes a single space so the transport
// never sees a zero-length payload.
func normalizeLine(line string) string {
	line = strings.TrimRight(line, " \t\r\n")
	if line == "" {
		return " "
	}
	return line
}
