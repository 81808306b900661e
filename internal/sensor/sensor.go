// Package sensor supplies the finger channel readings.
package sensor

import (
	"github.com/ajanata/guantebot/internal/filter"
	"github.com/ajanata/guantebot/internal/state"
)

// Source fills in the State of each channel, leaving the names alone.
type Source interface {
	Read(channels *[state.NumChannels]state.Channel)
}

// Static reports fixed values. It stands in for the glove until the flex sensors are wired.
type Static [state.NumChannels]state.ChannelState

// Simulated is the fixed pattern shown when no sensors are attached.
var Simulated = Static{state.On, state.Off, state.Mid, state.Off, state.On}

func (s Static) Read(channels *[state.NumChannels]state.Channel) {
	for i := range channels {
		channels[i].State = s[i]
	}
}

// ADC is one analog input. machine.ADC satisfies it.
type ADC interface {
	Get() uint16
}

// Flex reads one flex sensor per finger. Each reading is smoothed, compared to the finger's resting level, and the
// difference is bucketed against the Mid and On thresholds.
type Flex struct {
	adcs   [state.NumChannels]ADC
	smooth [state.NumChannels]*filter.Smooth
	floor  [state.NumChannels]*filter.Floor
	mid    float32
	on     float32
}

func NewFlex(adcs [state.NumChannels]ADC, mid, on uint16) *Flex {
	f := &Flex{
		adcs: adcs,
		mid:  float32(mid),
		on:   float32(on),
	}
	for i := range adcs {
		f.smooth[i] = filter.NewSmooth(5)
		f.floor[i] = filter.NewFloor(100, true)
	}
	return f
}

func (f *Flex) Read(channels *[state.NumChannels]state.Channel) {
	for i, adc := range f.adcs {
		v := f.smooth[i].Filter(float32(adc.Get()))
		bend := v - f.floor[i].Filter(v)
		switch {
		case bend >= f.on:
			channels[i].State = state.On
		case bend >= f.mid:
			channels[i].State = state.Mid
		default:
			channels[i].State = state.Off
		}
	}
}
