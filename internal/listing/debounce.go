package listing

import (
	"sync"
	"time"
)

// Debouncer delays fn until wait has elapsed since the last Call. Only the most
// recent arguments are delivered; earlier pending calls are superseded.
type Debouncer[T any] struct {
	wait time.Duration
	fn   func(T)

	mu      sync.Mutex
	timer   *time.Timer
	gen     uint64
	pending bool
	args    T
	stopped bool
	running sync.WaitGroup
}

// NewDebouncer returns a Debouncer invoking fn after wait.
func NewDebouncer[T any](wait time.Duration, fn func(T)) *Debouncer[T] {
	return &Debouncer[T]{wait: wait, fn: fn}
}

// Call schedules fn(args), replacing any pending call.
func (d *Debouncer[T]) Call(args T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.args = args
	d.pending = true
	d.timer = time.AfterFunc(d.wait, func() { d.fire(gen) })
}

// Pending reports whether a call is waiting for its quiet period.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

// Flush runs the pending call now on the calling goroutine.
func (d *Debouncer[T]) Flush() {
	d.mu.Lock()
	if !d.pending || d.stopped {
		d.mu.Unlock()
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	args := d.take()
	d.mu.Unlock()

	defer d.running.Done()
	d.fn(args)
}

// Cancel drops the pending call. The debouncer stays usable.
func (d *Debouncer[T]) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelLocked()
}

// Stop drops the pending call, waits for a running invocation to return and
// ignores every later Call.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	d.stopped = true
	d.cancelLocked()
	d.mu.Unlock()
	d.running.Wait()
}

func (d *Debouncer[T]) cancelLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
	d.pending = false
	var zero T
	d.args = zero
}

func (d *Debouncer[T]) fire(gen uint64) {
	d.mu.Lock()
	if d.stopped || !d.pending || gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	args := d.take()
	d.mu.Unlock()

	defer d.running.Done()
	d.fn(args)
}

// take clears the pending call and registers the invocation. d.mu must be held.
func (d *Debouncer[T]) take() T {
	args := d.args
	var zero T
	d.args = zero
	d.pending = false
	d.running.Add(1)
	return args
}
