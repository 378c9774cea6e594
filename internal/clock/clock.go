// Package clock provides the time source injected into services so tests can control "now".
package clock

import (
	"sync"
	"time"
)

// Clock returns the current time.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

// Real returns the wall clock. Timestamps are timezone-naive: the local wall time is
// relabelled as UTC and truncated to whole seconds, matching how booking times are stored.
func Real() Clock {
	return realClock{}
}

func (realClock) Now() time.Time {
	return Naive(time.Now())
}

// Naive keeps the wall-clock reading of t, drops its zone and sub-second part.
func Naive(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}

// Fixed is a Clock frozen at a given instant. Tests may move it with Set.
type Fixed struct {
	mu  sync.RWMutex
	now time.Time
}

// NewFixed returns a Fixed clock reading t.
func NewFixed(t time.Time) *Fixed {
	return &Fixed{now: t}
}

func (f *Fixed) Now() time.Time {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.now
}

// Set moves the clock to t.
func (f *Fixed) Set(t time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = t
}
