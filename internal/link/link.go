// Package link keeps the Wi-Fi association up.
package link

import (
	"context"
	"net/netip"
	"time"

	"github.com/ajanata/guantebot/internal/clock"
	"github.com/ajanata/guantebot/internal/console"
	"github.com/ajanata/guantebot/internal/state"
)

// Radio is the slice of a Wi-Fi driver the monitor needs.
type Radio interface {
	// Connected reports the radio's current association status.
	Connected() bool
	Disconnect()
	// Connect starts an association attempt. It may return before the link is up.
	Connect() error
	Addr() (netip.Addr, error)
}

// Monitor checks the link once per loop pass and, when it is down, makes one bounded attempt to bring it back.
type Monitor struct {
	radio Radio
	clock clock.Clock
	log   console.Logger

	timeout time.Duration
	poll    time.Duration
}

func New(r Radio, c clock.Clock, log console.Logger, timeout, poll time.Duration) *Monitor {
	return &Monitor{
		radio:   r,
		clock:   c,
		log:     log,
		timeout: timeout,
		poll:    poll,
	}
}

// CheckAndReconnect updates st.Link from the radio. If the link is down it disconnects, reconnects, and polls every
// poll interval until the link comes up or timeout elapses. The timeout covers the whole attempt, including however
// long Connect blocks. Failure is only logged; the caller tries again on its next pass. A cancelled ctx ends the wait
// early with the link still down.
func (m *Monitor) CheckAndReconnect(ctx context.Context, st *state.State) state.LinkState {
	if m.radio.Connected() {
		st.Link = state.Connected
		return st.Link
	}

	st.Link = state.Disconnected
	m.log.Infof("wifi down, reconnecting")
	start := m.clock.Now()
	m.radio.Disconnect()
	connErr := m.radio.Connect()

	for {
		if m.radio.Connected() {
			st.Link = state.Connected
			m.log.Infof("wifi reconnected, address: %s", m.addr())
			return st.Link
		}
		remaining := m.timeout - m.clock.Now().Sub(start)
		if remaining <= 0 {
			break
		}
		if remaining > m.poll {
			remaining = m.poll
		}
		if m.clock.Sleep(ctx, remaining) != nil {
			return st.Link
		}
	}

	if connErr != nil {
		m.log.Warnf("could not reconnect within %s: %v", m.timeout, connErr)
	} else {
		m.log.Warnf("could not reconnect within %s", m.timeout)
	}
	return st.Link
}

// Join associates for the first time with no overall deadline. Each attempt gets timeout to bring the link up; after
// that the radio is reset and Connect is called again, until the link is up or ctx is done.
func (m *Monitor) Join(ctx context.Context, st *state.State) error {
	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		start := m.clock.Now()
		if attempt > 1 {
			m.radio.Disconnect()
		}
		if err := m.radio.Connect(); err != nil {
			m.log.Infof("connect attempt %d: %v", attempt, err)
		}
		for !m.radio.Connected() {
			if m.clock.Now().Sub(start) >= m.timeout {
				break
			}
			if err := m.clock.Sleep(ctx, m.poll); err != nil {
				return err
			}
		}
		if m.radio.Connected() {
			break
		}
	}
	st.Link = state.Connected
	m.log.Infof("wifi connected, address: %s", m.addr())
	return nil
}

func (m *Monitor) addr() string {
	a, err := m.radio.Addr()
	if err != nil || !a.IsValid() {
		return "unknown"
	}
	return a.String()
}
