// Package radio adapts a TinyGo netlink device to the link monitor.
package radio

import (
	"errors"
	"net/netip"
	"time"

	"tinygo.org/x/drivers/netlink"
)

// Addresser is the part of netdev.Netdever the adapter needs.
type Addresser interface {
	Addr() (netip.Addr, error)
}

// Netlink tracks association state for a netlink.Netlinker. The driver's own watchdog is left off; the link monitor
// does that job.
type Netlink struct {
	link   netlink.Netlinker
	dev    Addresser
	params netlink.ConnectParams
	up     bool
}

// New registers for link events on l. Each Connect makes a single association attempt lasting at most timeout.
func New(l netlink.Netlinker, dev Addresser, ssid, passphrase string, timeout time.Duration) *Netlink {
	n := &Netlink{
		link: l,
		dev:  dev,
		params: netlink.ConnectParams{
			Ssid:           ssid,
			Passphrase:     passphrase,
			AuthType:       netlink.AuthTypeWPA2,
			Retries:        1,
			ConnectTimeout: timeout,
		},
	}
	l.NetNotify(n.event)
	return n
}

func (n *Netlink) event(e netlink.Event) {
	switch e {
	case netlink.EventNetUp:
		n.up = true
	case netlink.EventNetDown:
		n.up = false
	}
}

// Connected is true when the driver reported the link up and it still holds an address.
func (n *Netlink) Connected() bool {
	if !n.up {
		return false
	}
	a, err := n.dev.Addr()
	return err == nil && a.IsValid() && !a.IsUnspecified()
}

func (n *Netlink) Disconnect() {
	n.link.NetDisconnect()
	n.up = false
}

func (n *Netlink) Connect() error {
	p := n.params
	err := n.link.NetConnect(&p)
	if err == nil || errors.Is(err, netlink.ErrConnected) {
		n.up = true
		return nil
	}
	return err
}

func (n *Netlink) Addr() (netip.Addr, error) {
	return n.dev.Addr()
}
