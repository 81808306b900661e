// Package loop is the firmware's main control loop. Everything runs on the calling goroutine: each pass checks the
// link, checks the TCP probe on its cadence, redraws if the connectivity tuple changed, then sleeps.
package loop

import (
	"context"
	"fmt"
	"time"

	"github.com/ajanata/guantebot/internal/clock"
	"github.com/ajanata/guantebot/internal/console"
	"github.com/ajanata/guantebot/internal/sensor"
	"github.com/ajanata/guantebot/internal/state"
)

// SplashText is shown while the device joins the network.
const SplashText = "Guantebot"

type Monitor interface {
	Join(ctx context.Context, st *state.State) error
	CheckAndReconnect(ctx context.Context, st *state.State) state.LinkState
}

type Prober interface {
	MaybeConnect(ctx context.Context, st *state.State) bool
}

type Screen interface {
	Splash(text string) error
	Render(snap state.Snapshot, channels [state.NumChannels]state.Channel) error
}

// Parts are the loop's collaborators.
type Parts struct {
	Monitor  Monitor
	Prober   Prober
	Screen   Screen
	Channels sensor.Source
	Clock    clock.Clock
	Log      console.Logger
}

type Timing struct {
	Splash time.Duration
	Pass   time.Duration
}

type Loop struct {
	Parts
	timing Timing
	ssid   string
	st     *state.State

	renders int
}

func New(st *state.State, p Parts, ssid string, t Timing) *Loop {
	return &Loop{
		Parts:  p,
		timing: t,
		ssid:   ssid,
		st:     st,
	}
}

// State exposes the loop's state for inspection. Only the loop mutates it.
func (l *Loop) State() *state.State {
	return l.st
}

// Renders counts frames drawn since boot.
func (l *Loop) Renders() int {
	return l.renders
}

// Boot shows the splash screen, joins the network and draws the first status frame. A splash failure means the
// display is unusable and is returned; everything after that only returns if ctx is done.
func (l *Loop) Boot(ctx context.Context) error {
	if err := l.Screen.Splash(SplashText); err != nil {
		return fmt.Errorf("splash: %w", err)
	}
	if err := l.Clock.Sleep(ctx, l.timing.Splash); err != nil {
		return err
	}

	l.Log.Infof("connecting to %s", l.ssid)
	if err := l.Monitor.Join(ctx, l.st); err != nil {
		return err
	}

	l.Channels.Read(&l.st.Channels)
	l.render()
	return nil
}

// Step runs one pass without the trailing sleep.
func (l *Loop) Step(ctx context.Context) {
	l.Monitor.CheckAndReconnect(ctx, l.st)
	l.Prober.MaybeConnect(ctx, l.st)
	l.Channels.Read(&l.st.Channels)
	if l.st.NeedsRender() {
		l.render()
	}
}

// Run steps forever, sleeping between passes, until ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	for {
		l.Step(ctx)
		if err := l.Clock.Sleep(ctx, l.timing.Pass); err != nil {
			return err
		}
	}
}

func (l *Loop) render() {
	if err := l.Screen.Render(l.st.Snapshot(), l.st.Channels); err != nil {
		l.Log.Warnf("render: %v", err)
		return
	}
	l.st.MarkRendered()
	l.renders++
}
