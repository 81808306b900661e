package status

import (
	"errors"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajanata/guantebot/internal/state"
)

type fakeDisplay struct {
	w, h     int16
	px       [][]bool
	displays int
	err      error
}

func newFakeDisplay(w, h int16) *fakeDisplay {
	d := &fakeDisplay{w: w, h: h, px: make([][]bool, h)}
	for y := range d.px {
		d.px[y] = make([]bool, w)
	}
	return d
}

func (d *fakeDisplay) Size() (int16, int16) { return d.w, d.h }

func (d *fakeDisplay) SetPixel(x, y int16, c color.RGBA) {
	if x < 0 || y < 0 || x >= d.w || y >= d.h {
		return
	}
	d.px[y][x] = c.R != 0 || c.G != 0 || c.B != 0
}

func (d *fakeDisplay) Display() error {
	d.displays++
	return d.err
}

func (d *fakeDisplay) lit(y0, y1 int16) int {
	n := 0
	for y := y0; y < y1; y++ {
		for _, on := range d.px[y] {
			if on {
				n++
			}
		}
	}
	return n
}

func (d *fakeDisplay) fill() {
	for y := range d.px {
		for x := range d.px[y] {
			d.px[y][x] = true
		}
	}
}

func channels() [state.NumChannels]state.Channel {
	return [state.NumChannels]state.Channel{
		{Name: "PUL", State: state.On},
		{Name: "IND", State: state.Off},
		{Name: "COR", State: state.Mid},
		{Name: "ANU", State: state.Off},
		{Name: "MEN", State: state.On},
	}
}

func TestLayout(t *testing.T) {
	f := Layout(state.Snapshot{Link: state.Connected, TCP: false}, channels())

	assert.Equal(t, "WiFi: connected", f.Link)
	assert.Equal(t, "TCP: disconnected", f.TCP)
	assert.Equal(t, [state.NumChannels]string{"PUL", "IND", "COR", "ANU", "MEN"}, f.Headers)
	assert.Equal(t, [state.NumChannels]string{"ON", "OFF", "MID", "OFF", "ON"}, f.Values)

	f = Layout(state.Snapshot{Link: state.Disconnected, TCP: true}, channels())
	assert.Equal(t, "WiFi: disconnected", f.Link)
	assert.Equal(t, "TCP: connected", f.TCP)
}

func TestNewRejectsEmptyDisplay(t *testing.T) {
	_, err := New(newFakeDisplay(0, 0))
	assert.ErrorIs(t, err, ErrNoDisplay)
}

func TestRenderClearsAndDraws(t *testing.T) {
	d := newFakeDisplay(128, 64)
	r, err := New(d)
	require.NoError(t, err)
	d.fill()

	require.NoError(t, r.Render(state.Snapshot{Link: state.Connected}, channels()))

	assert.Equal(t, 1, d.displays)
	assert.False(t, d.px[63][127], "previous frame cleared")
	assert.Positive(t, d.lit(0, linkY+2), "link line drawn")
	assert.Positive(t, d.lit(linkY+2, tcpY+2), "tcp line drawn")
	assert.Positive(t, d.lit(tcpY+2, valueY+1), "channel grid drawn")
}

func TestRenderTwiceRedrawsTwice(t *testing.T) {
	d := newFakeDisplay(128, 64)
	r, err := New(d)
	require.NoError(t, err)
	snap := state.Snapshot{Link: state.Connected}

	require.NoError(t, r.Render(snap, channels()))
	first := d.lit(0, 64)
	require.NoError(t, r.Render(snap, channels()))

	assert.Equal(t, 2, d.displays)
	assert.Equal(t, first, d.lit(0, 64), "same frame, no leftovers")
}

func TestRenderDisplayError(t *testing.T) {
	d := newFakeDisplay(128, 64)
	r, err := New(d)
	require.NoError(t, err)
	d.err = errors.New("i2c nack")

	assert.Error(t, r.Render(state.Snapshot{}, channels()))
}

func TestSplash(t *testing.T) {
	d := newFakeDisplay(128, 64)
	r, err := New(d)
	require.NoError(t, err)
	d.fill()

	require.NoError(t, r.Splash("Guantebot"))

	assert.Equal(t, 1, d.displays)
	assert.Zero(t, d.lit(0, 10), "top of screen blank")
	assert.Positive(t, d.lit(10, splashY+3))
	assert.Zero(t, d.lit(40, 64), "bottom of screen blank")
}

type bufferedDisplay struct {
	*fakeDisplay
	clears int
}

func (d *bufferedDisplay) ClearBuffer() {
	d.clears++
	for y := range d.px {
		for x := range d.px[y] {
			d.px[y][x] = false
		}
	}
}

func TestRenderUsesClearBuffer(t *testing.T) {
	d := &bufferedDisplay{fakeDisplay: newFakeDisplay(128, 64)}
	r, err := New(d)
	require.NoError(t, err)
	d.fill()

	require.NoError(t, r.Render(state.Snapshot{Link: state.Connected}, channels()))
	require.NoError(t, r.Splash("Guantebot"))

	assert.Equal(t, 2, d.clears)
	assert.False(t, d.px[63][127], "previous frame cleared")
	assert.Zero(t, d.lit(40, 64), "splash replaced the status frame")
}
