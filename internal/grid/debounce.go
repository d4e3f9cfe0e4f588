package grid

import (
	"sync"
	"time"
)

// DefaultDebounce is the quiet period applied to filter mutations.
const DefaultDebounce = 300 * time.Millisecond

// Timer is a pending scheduled call.
type Timer interface {
	// Stop prevents the call from firing. It reports whether the call was still pending.
	Stop() bool
}

// Scheduler arms timers. SystemScheduler uses the wall clock; tests substitute
// a manual scheduler to control elapsed time.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type systemScheduler struct{}

func (systemScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// SystemScheduler schedules calls on time.AfterFunc.
//
//nolint:gochecknoglobals // stateless default scheduler
var SystemScheduler Scheduler = systemScheduler{}

// Debouncer coalesces bursts of Trigger calls into a single call of the most
// recent function, fired once the interval has elapsed without a new Trigger.
// At most one call is ever pending.
type Debouncer struct {
	mu sync.Mutex

	// sched arms the quiet-period timer
	sched Scheduler

	// interval is the quiet period; <= 0 runs Trigger synchronously
	interval time.Duration

	// timer is the armed timer, nil when nothing is pending
	timer Timer

	// pending is the function the armed timer will run
	pending func()

	// gen increments on every Trigger so a superseded timer that fires late is ignored
	gen uint64

	// closed makes Trigger a no-op
	closed bool
}

// NewDebouncer creates a debouncer. A nil scheduler means SystemScheduler.
// An interval <= 0 makes Trigger run fn synchronously.
func NewDebouncer(interval time.Duration, sched Scheduler) *Debouncer {
	if sched == nil {
		sched = SystemScheduler
	}
	return &Debouncer{sched: sched, interval: interval}
}

// Trigger schedules fn to run after the interval, cancelling any earlier pending call.
// It is a no-op after Close.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.stopLocked()
	if d.interval <= 0 {
		d.mu.Unlock()
		fn()
		return
	}
	d.gen++
	gen := d.gen
	d.pending = fn
	d.timer = d.sched.AfterFunc(d.interval, func() { d.fire(gen) })
	d.mu.Unlock()
}

// fire runs the pending call if it still belongs to generation gen.
// A timer that was replaced but had already started firing sees a newer gen and does nothing.
func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if d.closed || gen != d.gen || d.pending == nil {
		d.mu.Unlock()
		return
	}
	fn := d.pending
	d.pending = nil
	d.timer = nil
	d.mu.Unlock()
	fn()
}

// Flush runs the pending call immediately, if any, and reports whether one ran.
func (d *Debouncer) Flush() bool {
	d.mu.Lock()
	fn := d.pending
	d.stopLocked()
	d.mu.Unlock()
	if fn == nil {
		return false
	}
	fn()
	return true
}

// Cancel drops the pending call without running it and reports whether one was pending.
func (d *Debouncer) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	had := d.pending != nil
	d.stopLocked()
	return had
}

// Pending reports whether a call is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}

// Close cancels the pending call and disables further triggers.
func (d *Debouncer) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()
	d.closed = true
}

func (d *Debouncer) stopLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending = nil
	d.gen++
}
