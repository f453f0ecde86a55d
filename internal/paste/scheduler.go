package paste

import (
	"fmt"
	"runtime/debug"
	"sort"
	"sync"
	"time"

	"github.com/dripfeedbot/dripfeed/internal/logger"
)

// Scheduler is the per-process paste registry. It enforces at most one
// Job per Destination and routes start/stop/resume requests to the right
// job, replacing any existing job on conflict.
//
// A single mutex serializes commands and tick bookkeeping, so no job
// field is ever touched concurrently. Transport sends happen outside the
// mutex; destinations deliver independently of each other.
type Scheduler struct {
	mu      sync.Mutex
	targets map[Destination]*Job

	timer   Timer
	dir     Directory
	sink    Sink
	logger  *logger.Logger
	metrics *Metrics
}

// NewScheduler creates a scheduler delivering through dir, scheduling
// through timer and reporting through sink. metrics may be nil.
func NewScheduler(timer Timer, dir Directory, sink Sink, log *logger.Logger, metrics *Metrics) *Scheduler {
	return &Scheduler{
		targets: make(map[Destination]*Job),
		timer:   timer,
		dir:     dir,
		sink:    sink,
		logger:  log,
		metrics: metrics,
	}
}

// Paste starts delivering lines to dest at one line per interval. An
// existing job for dest is stopped and silently discarded: the last
// paste command for a destination always wins, with a "replacing"
// diagnostic but no error.
func (s *Scheduler) Paste(dest Destination, lines []string, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("interval must be positive, got %s", interval)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.targets[dest]; ok {
		old.stopIfActiveLocked()
		s.sink.Print(dest, fmt.Sprintf("dripfeed: replacing current paste to: %s.", dest))
		s.metrics.jobReplaced()
	}

	job := newJob(dest, lines, interval, &s.mu, s.timer, s.dir, s.sink, s, s.logger, s.metrics)
	s.targets[dest] = job

	if err := job.startLocked(); err != nil {
		// A fresh job is always idle; reaching this is a logic bug.
		delete(s.targets, dest)
		s.metrics.setTargets(len(s.targets))
		return err
	}

	s.sink.Print(dest, fmt.Sprintf("dripfeed: pasting (%d lines) to: %s.", job.remainingLines(), dest))
	s.logger.Info("paste started",
		logger.Field{Key: "target", Value: dest.String()},
		logger.Field{Key: "lines", Value: len(lines)},
		logger.Field{Key: "interval", Value: interval.String()})
	s.metrics.jobStarted()
	s.metrics.setTargets(len(s.targets))
	return nil
}

// Stop halts the job for dest, preserving its cursor for resume.
// Returns ErrNotPasting when dest has no job, ErrNotActive when the job
// is already idle.
func (s *Scheduler) Stop(dest Destination) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.targets[dest]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotPasting, dest)
	}

	if err := job.stopLocked(); err != nil {
		return err
	}

	s.sink.Print(dest, fmt.Sprintf("dripfeed: stopped pasting (%d pending lines) to: %s.", job.remainingLines(), dest))
	return nil
}

// Resume restarts the job for dest from its preserved cursor. Returns
// ErrNotPasting when dest has no job, ErrAlreadyActive when the job is
// already delivering.
func (s *Scheduler) Resume(dest Destination) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.targets[dest]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotPasting, dest)
	}

	if err := job.startLocked(); err != nil {
		return err
	}

	s.sink.Print(dest, fmt.Sprintf("dripfeed: resumed pasting (%d pending lines) to: %s.", job.remainingLines(), dest))
	return nil
}

// removeTargetLocked drops a completed job from the registry. Jobs call
// this from their tick, with the scheduler lock already held. A missing
// entry here can only mean a logic bug, so it is logged with a stack
// trace rather than reported to the user.
func (s *Scheduler) removeTargetLocked(dest Destination) {
	if _, ok := s.targets[dest]; !ok {
		err := &InternalError{Op: "remove target", Dest: dest}
		s.logger.Error("paste registry invariant violated", err,
			logger.Field{Key: "target", Value: dest.String()},
			logger.Field{Key: "stack", Value: string(debug.Stack())})
		return
	}

	delete(s.targets, dest)
	s.sink.Print(dest, fmt.Sprintf("dripfeed: no more lines, finished pasting to: %s.", dest))
	s.logger.Info("paste finished", logger.Field{Key: "target", Value: dest.String()})
	s.metrics.jobFinished()
	s.metrics.setTargets(len(s.targets))
}

// ExpireIdle removes idle jobs that stopped more than maxIdle ago and
// returns how many were dropped. The maintenance sweeper calls this
// periodically so auto-suspended pastes nobody resumes do not pile up
// forever. maxIdle <= 0 disables expiry.
func (s *Scheduler) ExpireIdle(maxIdle time.Duration) int {
	if maxIdle <= 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	removed := 0
	for dest, job := range s.targets {
		if job.state != StateIdle || job.stoppedAt.IsZero() {
			continue
		}
		if now.Sub(job.stoppedAt) < maxIdle {
			continue
		}

		delete(s.targets, dest)
		removed++
		s.sink.Print(dest, fmt.Sprintf("dripfeed: dropping stale paste (%d pending lines) to: %s.", job.remainingLines(), dest))
		s.logger.Info("stale paste expired",
			logger.Field{Key: "target", Value: dest.String()},
			logger.Field{Key: "pending_lines", Value: job.remainingLines()})
	}

	if removed > 0 {
		s.metrics.setTargets(len(s.targets))
	}
	return removed
}

// TargetStatus is a point-in-time view of one registered paste.
type TargetStatus struct {
	Dest      Destination
	State     State
	Remaining int
	Total     int
	Interval  time.Duration
}

// Targets returns a snapshot of all registered pastes, ordered by
// destination for stable status output.
func (s *Scheduler) Targets() []TargetStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	statuses := make([]TargetStatus, 0, len(s.targets))
	for dest, job := range s.targets {
		statuses = append(statuses, TargetStatus{
			Dest:      dest,
			State:     job.state,
			Remaining: job.remainingLines(),
			Total:     len(job.lines),
			Interval:  job.interval,
		})
	}

	sort.Slice(statuses, func(i, k int) bool {
		a, b := statuses[i].Dest, statuses[k].Dest
		if a.Network != b.Network {
			return a.Network < b.Network
		}
		if a.Server != b.Server {
			return a.Server < b.Server
		}
		if a.Channel != b.Channel {
			return a.Channel < b.Channel
		}
		return a.ConnectionID < b.ConnectionID
	})
	return statuses
}
