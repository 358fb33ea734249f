// Package feedback holds the transient signals a board shows next to its
// state: toast notifications, modal visibility and drag progress.
package feedback

import (
	"sync"
	"time"
)

// DefaultToastDuration is how long a toast stays visible.
const DefaultToastDuration = 3 * time.Second

// Kind is the toast flavour.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Toast is the visible notification.
type Toast struct {
	Show    bool   `json:"show"`
	Message string `json:"message"`
	Kind    Kind   `json:"type"`
}

// Timer is the part of *time.Timer the toaster needs.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d. time.AfterFunc satisfies it through a
// thin adapter; tests inject a manual clock.
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Toaster shows one toast at a time. A new toast replaces the visible one
// and reschedules the auto-dismiss: last write wins.
type Toaster struct {
	mu        sync.Mutex
	current   Toast
	timer     Timer
	gen       uint64
	duration  time.Duration
	afterFunc AfterFunc
}

// NewToaster creates a toaster; d <= 0 selects DefaultToastDuration and a
// nil after uses real timers.
func NewToaster(d time.Duration, after AfterFunc) *Toaster {
	if d <= 0 {
		d = DefaultToastDuration
	}
	if after == nil {
		after = realAfterFunc
	}
	return &Toaster{duration: d, afterFunc: after}
}

// Show displays msg and (re)arms the dismiss timer.
func (t *Toaster) Show(msg string, kind Kind) {
	if kind == "" {
		kind = KindSuccess
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.timer != nil {
		t.timer.Stop()
	}
	t.gen++
	gen := t.gen
	t.current = Toast{Show: true, Message: msg, Kind: kind}
	t.timer = t.afterFunc(t.duration, func() { t.expire(gen) })
}

// expire hides the toast unless a newer one replaced it meanwhile.
func (t *Toaster) expire(gen uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if gen != t.gen {
		return
	}
	t.current.Show = false
	t.timer = nil
}

// Current returns the toast as it should be rendered now.
func (t *Toaster) Current() Toast {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

// Stop cancels any pending timer and hides the toast.
func (t *Toaster) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.gen++
	t.current.Show = false
}
