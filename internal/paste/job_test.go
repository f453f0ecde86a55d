package paste

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeLine(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "hello", want: "hello"},
		{name: "trailing newline", in: "hello\n", want: "hello"},
		{name: "trailing crlf", in: "hello\r\n", want: "hello"},
		{name: "trailing spaces and tabs", in: "hello \t ", want: "hello"},
		{name: "empty", in: "", want: " "},
		{name: "whitespace only", in: " \t\r\n", want: " "},
		{name: "leading whitespace kept", in: "  indented", want: "  indented"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeLine(tt.in))
			assert.NotEmpty(t, normalizeLine(tt.in))
		})
	}
}

func TestJob_CursorMonotonicAndBounded(t *testing.T) {
	dest := testDest("#go")
	sched, timer, dir, _ := newTestScheduler(dest)

	lines := []string{"1", "2", "3"}
	require.NoError(t, sched.Paste(dest, lines, time.Second))

	prev := 0
	for i := 0; i < 10; i++ {
		timer.Tick()

		sched.mu.Lock()
		job, ok := sched.targets[dest]
		var cursor int
		if ok {
			cursor = job.cursor
		} else {
			cursor = len(lines)
		}
		sched.mu.Unlock()

		// Cursor only moves forward and exactly tracks the sent count.
		assert.GreaterOrEqual(t, cursor, prev)
		assert.LessOrEqual(t, cursor, len(lines))
		assert.Equal(t, cursor, len(dir.sentTo(dest)))
		prev = cursor
	}

	assert.Equal(t, []string{"1", "2", "3"}, dir.sentTo(dest))
}

func TestJob_StateStrings(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "active", StateActive.String())
	assert.Equal(t, "state(7)", State(7).String())
}

func TestJob_TimerHandleInvariant(t *testing.T) {
	dest := testDest("#go")
	sched, _, _, _ := newTestScheduler(dest)

	require.NoError(t, sched.Paste(dest, []string{"a"}, time.Second))

	sched.mu.Lock()
	job := sched.targets[dest]
	assert.Equal(t, StateActive, job.state)
	assert.NotNil(t, job.handle)
	sched.mu.Unlock()

	require.NoError(t, sched.Stop(dest))

	sched.mu.Lock()
	assert.Equal(t, StateIdle, job.state)
	assert.Nil(t, job.handle)
	assert.False(t, job.stoppedAt.IsZero())
	sched.mu.Unlock()
}

func TestJob_SuspendPreservesCursor(t *testing.T) {
	dest := testDest("#go")
	sched, timer, dir, _ := newTestScheduler(dest)

	require.NoError(t, sched.Paste(dest, []string{"a", "b"}, time.Second))
	timer.Tick()

	dir.drop(dest)
	timer.Tick()

	sched.mu.Lock()
	job := sched.targets[dest]
	assert.Equal(t, StateIdle, job.state)
	assert.Equal(t, 1, job.cursor)
	assert.Nil(t, job.handle)
	sched.mu.Unlock()
}

func TestInternalError_Message(t *testing.T) {
	err := &InternalError{Op: "remove target", Dest: testDest("#go")}
	assert.Contains(t, err.Error(), "internal error")
	assert.Contains(t, err.Error(), "#go - testnet")
}

func TestScheduler_RemoveUnknownTargetLogsInvariant(t *testing.T) {
	dest := testDest("#go")
	sched, _, _, sink := newTestScheduler(dest)

	// Removing a target that is not registered must not panic and must
	// not produce a user-facing diagnostic.
	sched.mu.Lock()
	sched.removeTargetLocked(dest)
	sched.mu.Unlock()

	assert.Empty(t, sink.printed)
	assert.Empty(t, sched.Targets())
}
