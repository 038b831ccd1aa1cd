// Package notify shows one transient message at a time.
package notify

import (
	"sync"
	"time"
)

type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
)

var NowFunc = time.Now // mockable

type (
	Notification struct {
		Message   string
		Kind      Kind
		ExpiresAt time.Time // zero when the notification does not expire
	}

	// Display renders the current notification.
	// Calls are serialized; implementations must not call back into the Emitter.
	Display interface {
		Show(n Notification)
		Clear()
	}

	// Durations is how long each kind stays visible.
	Durations struct {
		Success time.Duration
		Error   time.Duration
	}
)

func (d Durations) of(kind Kind) time.Duration {
	if kind == Error {
		return d.Error
	}
	return d.Success
}

// Emitter holds a single notification slot: Idle or Showing.
// A new notification replaces the current one and restarts the expiry.
type Emitter struct {
	display   Display
	durations Durations

	mu      sync.Mutex
	current *Notification
	seq     uint64 // bumped on every change; stale timers compare against it
	timer   *time.Timer
	closed  bool
}

func NewEmitter(display Display, durations Durations) *Emitter {
	return &Emitter{display: display, durations: durations}
}

// Show displays msg for the duration configured for kind.
func (e *Emitter) Show(msg string, kind Kind) {
	e.ShowFor(msg, kind, e.durations.of(kind))
}

// ShowFor displays msg for ttl. A ttl <= 0 keeps it until it is replaced or dismissed.
func (e *Emitter) ShowFor(msg string, kind Kind, ttl time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}

	e.stopTimer()
	e.seq++
	n := Notification{Message: msg, Kind: kind}
	if ttl > 0 {
		n.ExpiresAt = NowFunc().Add(ttl)
		seq := e.seq
		e.timer = time.AfterFunc(ttl, func() { e.expire(seq) })
	}
	e.current = &n
	if e.display != nil {
		e.display.Show(n)
	}
}

// Dismiss clears the current notification, if any.
func (e *Emitter) Dismiss() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.clear()
}

// Current returns the visible notification.
func (e *Emitter) Current() (Notification, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.current == nil {
		return Notification{}, false
	}
	return *e.current, true
}

// Close clears the slot and stops the pending expiry. Later calls to Show are ignored.
func (e *Emitter) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.clear()
	e.closed = true
}

func (e *Emitter) expire(seq uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if seq != e.seq {
		return // replaced since
	}
	e.timer = nil
	e.clear()
}

func (e *Emitter) clear() {
	e.stopTimer()
	e.seq++
	if e.current == nil {
		return
	}
	e.current = nil
	if e.display != nil {
		e.display.Clear()
	}
}

func (e *Emitter) stopTimer() {
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
}
