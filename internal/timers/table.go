// Package timers provides a single-owner table of one-shot timers keyed by purpose.
//
// Each key holds at most one pending timer. Scheduling a key that is already
// pending cancels the old timer first, so timers never compound. Callbacks
// run while holding the owner's lock and are discarded when the entry they
// belong to was replaced, cancelled, or the table was stopped.
package timers

import (
	"sync"
	"time"
)

// Key identifies the purpose of a timer.
type Key int

const (
	Hide Key = iota
	SettleInline
	SettleFullscreen
	TapWindow
)

// String returns the key name.
func (k Key) String() string {
	switch k {
	case Hide:
		return "hide"
	case SettleInline:
		return "settle-inline"
	case SettleFullscreen:
		return "settle-fullscreen"
	case TapWindow:
		return "tap-window"
	default:
		return "unknown"
	}
}

type entry struct {
	timer *time.Timer
	token uint64
}

// Table owns the timers of one engine instance.
//
// Schedule, Cancel, Pending and Stop must be called with the owner's lock
// held. Fired callbacks acquire that same lock themselves.
type Table struct {
	lock    sync.Locker
	entries map[Key]*entry
	seq     uint64
	stopped bool
}

// New creates a table whose callbacks serialize on lock.
func New(lock sync.Locker) *Table {
	return &Table{
		lock:    lock,
		entries: make(map[Key]*entry),
	}
}

// Schedule arms key to run fn after d, replacing any pending timer for key.
func (t *Table) Schedule(key Key, d time.Duration, fn func()) {
	if t.stopped {
		return
	}
	t.Cancel(key)

	t.seq++
	token := t.seq
	e := &entry{token: token}
	e.timer = time.AfterFunc(d, func() {
		t.lock.Lock()
		defer t.lock.Unlock()

		cur, ok := t.entries[key]
		if t.stopped || !ok || cur.token != token {
			return
		}
		delete(t.entries, key)
		fn()
	})
	t.entries[key] = e
}

// Cancel stops the pending timer for key. Returns true if one was pending.
func (t *Table) Cancel(key Key) bool {
	e, ok := t.entries[key]
	if !ok {
		return false
	}
	e.timer.Stop()
	delete(t.entries, key)
	return true
}

// Pending reports whether key has an armed timer.
func (t *Table) Pending(key Key) bool {
	_, ok := t.entries[key]
	return ok
}

// Stop cancels every timer. Later Schedule calls are ignored.
func (t *Table) Stop() {
	for key := range t.entries {
		t.Cancel(key)
	}
	t.stopped = true
}
