// Package sched provides the deferred-continuation scheduler that the game
// core uses to pace multi-step flows such as card swipes and repairs.
package sched

import (
	"sort"
	"sync"
	"time"
)

// Scheduler invokes a callback once after a delay. Implementations must never
// run the callback concurrently with other game logic; see [Loop] for how the
// real-time implementation hands callbacks back to its owner.
type Scheduler interface {
	After(d time.Duration, fn func())
}

type manualEntry struct {
	due time.Duration
	seq uint64
	fn  func()
}

// Manual is a Scheduler driven by virtual time. Nothing fires until Advance is
// called. The zero value is ready for use.
type Manual struct {
	now   time.Duration
	seq   uint64
	queue []manualEntry
}

// NewManual returns a Manual scheduler at virtual time zero.
func NewManual() *Manual {
	return &Manual{}
}

// After schedules fn to run once virtual time has advanced by d.
func (m *Manual) After(d time.Duration, fn func()) {
	if d < 0 {
		d = 0
	}
	m.seq++
	m.queue = append(m.queue, manualEntry{due: m.now + d, seq: m.seq, fn: fn})
}

// Advance moves virtual time forward by d and runs every callback that has
// become due, earliest first, with ties broken by scheduling order. Callbacks
// scheduled by a running callback also fire if they fall due within the
// window. It returns the number of callbacks run.
func (m *Manual) Advance(d time.Duration) int {
	target := m.now + d
	fired := 0

	for {
		idx := m.nextDue(target)
		if idx < 0 {
			break
		}
		e := m.queue[idx]
		m.queue = append(m.queue[:idx], m.queue[idx+1:]...)
		if e.due > m.now {
			m.now = e.due
		}
		e.fn()
		fired++
	}

	m.now = target
	return fired
}

func (m *Manual) nextDue(target time.Duration) int {
	sort.SliceStable(m.queue, func(i, j int) bool {
		if m.queue[i].due != m.queue[j].due {
			return m.queue[i].due < m.queue[j].due
		}
		return m.queue[i].seq < m.queue[j].seq
	})
	if len(m.queue) > 0 && m.queue[0].due <= target {
		return 0
	}
	return -1
}

// Pending returns the number of callbacks that have not yet fired.
func (m *Manual) Pending() int {
	return len(m.queue)
}

// Now returns the current virtual time.
func (m *Manual) Now() time.Duration {
	return m.now
}

// Loop is a Scheduler backed by real timers. Timers do not run callbacks
// themselves; they deliver them on the channel returned by Fired, and the
// owner of the Loop runs each one from its own goroutine so that callbacks are
// serialized with command processing.
type Loop struct {
	fired chan func()
	done  chan struct{}

	mu      sync.Mutex
	timers  map[*time.Timer]struct{}
	stopped bool
}

// NewLoop creates a Loop ready for use. Stop must be called on it once it is
// no longer needed.
func NewLoop() *Loop {
	return &Loop{
		fired:  make(chan func(), 16),
		done:   make(chan struct{}),
		timers: make(map[*time.Timer]struct{}),
	}
}

// After schedules fn to be delivered on Fired once d has elapsed. It does
// nothing if the Loop has been stopped.
func (l *Loop) After(d time.Duration, fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.stopped {
		return
	}

	var t *time.Timer
	t = time.AfterFunc(d, func() {
		l.mu.Lock()
		delete(l.timers, t)
		l.mu.Unlock()

		select {
		case l.fired <- fn:
		case <-l.done:
		}
	})
	l.timers[t] = struct{}{}
}

// Fired returns the channel that due callbacks are delivered on.
func (l *Loop) Fired() <-chan func() {
	return l.fired
}

// Stop cancels all outstanding timers. Callbacks that have not been delivered
// are dropped. Calling Stop more than once has no further effect.
func (l *Loop) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.stopped {
		return
	}
	l.stopped = true
	close(l.done)
	for t := range l.timers {
		t.Stop()
	}
	l.timers = nil
}
