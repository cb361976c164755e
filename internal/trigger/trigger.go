// Package trigger turns solved events into a timed pulse on an output line.
package trigger

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Pulser drives the external output line. Implementations must be safe to
// call from the notification goroutine.
type Pulser interface {
	Set(high bool) error
}

// Trigger holds the output line high for a fixed duration when fired and
// invokes an optional application hook. Events that arrive while a pulse is
// already being held are suppressed, so a cube left sitting solved does not
// re-fire the output on every notification.
type Trigger struct {
	pulser Pulser
	hold   time.Duration
	log    *logrus.Entry

	mu     sync.Mutex
	active bool
	hook   func()

	// after is swapped out in tests
	after func(time.Duration) <-chan time.Time
}

// New creates a trigger that holds the line high for the given duration.
func New(p Pulser, hold time.Duration, logger *logrus.Logger) *Trigger {
	return &Trigger{
		pulser: p,
		hold:   hold,
		log:    logger.WithField("component", "trigger"),
		after:  time.After,
	}
}

// SetHook sets a callback invoked once per accepted solved event, after the
// output goes high.
func (t *Trigger) SetHook(hook func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.hook = hook
}

// Active reports whether a pulse is currently being held.
func (t *Trigger) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

// Fire drives the output high and schedules the release. Returns false if a
// pulse was already active and the event was suppressed.
func (t *Trigger) Fire() bool {
	t.mu.Lock()
	if t.active {
		t.mu.Unlock()
		t.log.Debug("solved event while pulse active, suppressed")
		return false
	}
	t.active = true
	hook := t.hook
	t.mu.Unlock()

	if err := t.pulser.Set(true); err != nil {
		t.log.WithError(err).Error("failed to raise output")
	}
	t.log.WithField("hold", t.hold).Info("solved, output raised")

	if hook != nil {
		hook()
	}

	go func() {
		<-t.after(t.hold)
		if err := t.pulser.Set(false); err != nil {
			t.log.WithError(err).Error("failed to release output")
		}
		t.mu.Lock()
		t.active = false
		t.mu.Unlock()
		t.log.Info("output released")
	}()

	return true
}

// NopPulser is a Pulser that does nothing. It is the default when no
// hardware output is configured; the trigger's log line is the observable
// effect.
type NopPulser struct{}

func (NopPulser) Set(bool) error { return nil }
