package listing

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type callRecorder struct {
	mu    sync.Mutex
	calls []int
}

func (r *callRecorder) record(v int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, v)
}

func (r *callRecorder) snapshot() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.calls...)
}

func TestDebouncerKeepsLatestArguments(t *testing.T) {
	rec := &callRecorder{}
	d := NewDebouncer(20*time.Millisecond, rec.record)
	defer d.Stop()

	for i := 1; i <= 5; i++ {
		d.Call(i)
	}
	require.Eventually(t, func() bool { return len(rec.snapshot()) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, []int{5}, rec.snapshot())
	assert.False(t, d.Pending())
}

func TestDebouncerQuietPeriodRestarts(t *testing.T) {
	rec := &callRecorder{}
	d := NewDebouncer(60*time.Millisecond, rec.record)
	defer d.Stop()

	d.Call(1)
	time.Sleep(30 * time.Millisecond)
	d.Call(2)
	time.Sleep(40 * time.Millisecond)
	assert.Empty(t, rec.snapshot(), "second call must restart the quiet period")
	require.Eventually(t, func() bool { return len(rec.snapshot()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []int{2}, rec.snapshot())
}

func TestDebouncerFlush(t *testing.T) {
	rec := &callRecorder{}
	d := NewDebouncer(time.Hour, rec.record)
	defer d.Stop()

	d.Call(7)
	assert.True(t, d.Pending())
	d.Flush()
	assert.Equal(t, []int{7}, rec.snapshot())
	assert.False(t, d.Pending())

	d.Flush()
	assert.Equal(t, []int{7}, rec.snapshot(), "flush without pending call is a no-op")
}

func TestDebouncerCancel(t *testing.T) {
	rec := &callRecorder{}
	d := NewDebouncer(10*time.Millisecond, rec.record)
	defer d.Stop()

	d.Call(1)
	d.Cancel()
	time.Sleep(40 * time.Millisecond)
	assert.Empty(t, rec.snapshot())

	d.Call(2)
	require.Eventually(t, func() bool { return len(rec.snapshot()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []int{2}, rec.snapshot())
}

func TestDebouncerStopIgnoresLaterCalls(t *testing.T) {
	rec := &callRecorder{}
	d := NewDebouncer(10*time.Millisecond, rec.record)

	d.Call(1)
	d.Stop()
	d.Call(2)
	time.Sleep(40 * time.Millisecond)
	assert.Empty(t, rec.snapshot())
	assert.False(t, d.Pending())
}

func TestDebouncerStopWaitsForRunningCall(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})
	d := NewDebouncer(time.Millisecond, func(int) {
		close(started)
		<-release
		close(done)
	})

	d.Call(1)
	<-started

	stopped := make(chan struct{})
	go func() {
		d.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
		t.Fatal("Stop returned while the call was still running")
	case <-time.After(20 * time.Millisecond):
	}
	close(release)
	<-done
	<-stopped
}
