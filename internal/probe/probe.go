// Package probe keeps one outbound TCP connection open to the server, re-checking it on a fixed cadence.
package probe

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/ajanata/guantebot/internal/clock"
	"github.com/ajanata/guantebot/internal/console"
	"github.com/ajanata/guantebot/internal/state"
)

// liveWait is how long a liveness read waits before the socket is taken to be idle but open.
const liveWait = time.Millisecond

type Dialer interface {
	Dial(ctx context.Context, network, address string) (net.Conn, error)
}

// NetDialer dials with the net package.
type NetDialer struct {
	Timeout time.Duration
}

func (d NetDialer) Dial(ctx context.Context, network, address string) (net.Conn, error) {
	nd := net.Dialer{Timeout: d.Timeout}
	return nd.DialContext(ctx, network, address)
}

type Probe struct {
	dialer   Dialer
	addr     string
	interval time.Duration
	clock    clock.Clock
	log      console.Logger

	conn    net.Conn
	last    time.Time
	checked bool
	scratch [64]byte
}

func New(d Dialer, addr string, interval time.Duration, c clock.Clock, log console.Logger) *Probe {
	return &Probe{
		dialer:   d,
		addr:     addr,
		interval: interval,
		clock:    c,
		log:      log,
	}
}

// MaybeConnect does nothing until interval has passed since the last check. Then it refreshes st.TCP from the socket
// and, if the socket is gone and the link is up, closes the stale socket and makes exactly one dial attempt. A failed
// attempt is silent and leaves st.TCP false until the next check.
func (p *Probe) MaybeConnect(ctx context.Context, st *state.State) bool {
	now := p.clock.Now()
	if p.checked && now.Sub(p.last) < p.interval {
		return st.TCP
	}
	p.checked = true
	p.last = now

	st.TCP = p.alive()
	if st.TCP || st.Link != state.Connected {
		return st.TCP
	}

	p.Close()
	conn, err := p.dialer.Dial(ctx, "tcp", p.addr)
	if err != nil {
		return st.TCP
	}
	p.conn = conn
	st.TCP = true
	p.log.Infof("tcp connected to %s", p.addr)
	return st.TCP
}

// alive reports whether the current socket is still open. Anything the server has sent is discarded.
func (p *Probe) alive() bool {
	if p.conn == nil {
		return false
	}
	if err := p.conn.SetReadDeadline(time.Now().Add(liveWait)); err != nil {
		p.Close()
		return false
	}
	_, err := p.conn.Read(p.scratch[:])
	_ = p.conn.SetReadDeadline(time.Time{})
	if err == nil {
		return true
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	p.log.Infof("tcp connection to %s lost: %v", p.addr, err)
	p.Close()
	return false
}

// Close drops the socket, if any.
func (p *Probe) Close() {
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}
