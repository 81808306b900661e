// Package clock abstracts wall time and blocking sleeps so the polling code can be driven by a fake in tests.
package clock

import (
	"context"
	"time"
)

type Clock interface {
	Now() time.Time
	// Sleep blocks for d or until ctx is done, whichever comes first, and returns ctx.Err() in the latter case.
	Sleep(ctx context.Context, d time.Duration) error
}

// System is the real clock.
type System struct{}

func (System) Now() time.Time { return time.Now() }

func (System) Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Fake advances instantly on Sleep. It is not safe for concurrent use.
type Fake struct {
	now    time.Time
	Sleeps int
	Slept  time.Duration
	// OnSleep, if set, runs after each sleep with the new time.
	OnSleep func(now time.Time)
}

func NewFake() *Fake {
	return &Fake{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (f *Fake) Now() time.Time { return f.now }

func (f *Fake) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.Advance(d)
	f.Sleeps++
	f.Slept += d
	if f.OnSleep != nil {
		f.OnSleep(f.now)
	}
	return nil
}

// Advance moves the clock forward without counting as a sleep.
func (f *Fake) Advance(d time.Duration) {
	f.now = f.now.Add(d)
}
