// Package state holds everything the polling loop knows about the device. A single State value is owned by the loop
// and handed to each component call; nothing here is global.
package state

// LinkState is whether the radio currently holds a Wi-Fi association.
type LinkState uint8

const (
	Disconnected LinkState = iota
	Connected
)

func (s LinkState) String() string {
	if s == Connected {
		return "connected"
	}
	return "disconnected"
}

// ChannelState is the three-valued reading of one finger.
type ChannelState uint8

const (
	Off ChannelState = iota
	Mid
	On
)

func (s ChannelState) String() string {
	switch s {
	case Mid:
		return "MID"
	case On:
		return "ON"
	default:
		return "OFF"
	}
}

// NumChannels is the number of fingers on the glove.
const NumChannels = 5

// Channel pairs a short display name with its current state.
type Channel struct {
	Name  string
	State ChannelState
}

// Snapshot is the part of State that decides whether the screen needs redrawing.
type Snapshot struct {
	Link LinkState
	TCP  bool
}

// State is the loop's working set.
type State struct {
	Link     LinkState
	TCP      bool
	Channels [NumChannels]Channel

	// LastRendered is nil until the first frame is drawn.
	LastRendered *Snapshot
}

// New returns a disconnected State with the given channel names, all channels Off.
func New(names [NumChannels]string) *State {
	st := &State{}
	for i, n := range names {
		st.Channels[i] = Channel{Name: n}
	}
	return st
}

// Snapshot returns the current connectivity tuple.
func (s *State) Snapshot() Snapshot {
	return Snapshot{Link: s.Link, TCP: s.TCP}
}

// NeedsRender reports whether the connectivity tuple differs from what was last drawn. Channel changes alone never
// cause a redraw.
func (s *State) NeedsRender() bool {
	return s.LastRendered == nil || *s.LastRendered != s.Snapshot()
}

// MarkRendered records the current connectivity tuple as drawn.
func (s *State) MarkRendered() {
	snap := s.Snapshot()
	s.LastRendered = &snap
}
