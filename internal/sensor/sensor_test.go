package sensor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ajanata/guantebot/internal/state"
)

func names() [state.NumChannels]state.Channel {
	return [state.NumChannels]state.Channel{{Name: "PUL"}, {Name: "IND"}, {Name: "COR"}, {Name: "ANU"}, {Name: "MEN"}}
}

func states(ch [state.NumChannels]state.Channel) []state.ChannelState {
	out := make([]state.ChannelState, len(ch))
	for i, c := range ch {
		out[i] = c.State
	}
	return out
}

func TestStatic(t *testing.T) {
	ch := names()
	Simulated.Read(&ch)

	assert.Equal(t, []state.ChannelState{state.On, state.Off, state.Mid, state.Off, state.On}, states(ch))
	assert.Equal(t, "COR", ch[2].Name)
}

type fakeADC struct{ v uint16 }

func (a *fakeADC) Get() uint16 { return a.v }

func TestFlex(t *testing.T) {
	var adcs [state.NumChannels]ADC
	fakes := make([]*fakeADC, state.NumChannels)
	for i := range adcs {
		fakes[i] = &fakeADC{v: 1000}
		adcs[i] = fakes[i]
	}
	f := NewFlex(adcs, 2000, 8000)
	ch := names()

	for i := 0; i < 20; i++ {
		f.Read(&ch)
	}
	assert.Equal(t, []state.ChannelState{state.Off, state.Off, state.Off, state.Off, state.Off}, states(ch),
		"resting hand")

	fakes[1].v = 5000
	fakes[3].v = 30000
	for i := 0; i < 20; i++ {
		f.Read(&ch)
	}
	assert.Equal(t, []state.ChannelState{state.Off, state.Mid, state.Off, state.On, state.Off}, states(ch))
}
