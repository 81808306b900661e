// Package status draws the connectivity screen on the OLED.
//
// The layout is fixed: Wi-Fi and TCP lines at the top in the larger font, then one column per finger with its short
// name above its state in the small font.
package status

import (
	"errors"
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"

	"github.com/ajanata/guantebot/internal/state"
)

var ErrNoDisplay = errors.New("display reports zero size")

var (
	black = color.RGBA{A: 255}
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// baselines, in pixels from the top
const (
	linkY   = 12
	tcpY    = 26
	headerY = 46
	valueY  = 58
	splashY = 28
)

// Frame is the text content of one screen.
type Frame struct {
	Link    string
	TCP     string
	Headers [state.NumChannels]string
	Values  [state.NumChannels]string
}

// Layout builds the text for a screen.
func Layout(snap state.Snapshot, channels [state.NumChannels]state.Channel) Frame {
	f := Frame{
		Link: "WiFi: " + snap.Link.String(),
		TCP:  "TCP: disconnected",
	}
	if snap.TCP {
		f.TCP = "TCP: connected"
	}
	for i, c := range channels {
		f.Headers[i] = c.Name
		f.Values[i] = c.State.String()
	}
	return f
}

type Renderer struct {
	d     drivers.Displayer
	w, h  int16
	large tinyfont.Fonter
	small tinyfont.Fonter
}

func New(d drivers.Displayer) (*Renderer, error) {
	w, h := d.Size()
	if w <= 0 || h <= 0 {
		return nil, ErrNoDisplay
	}
	return &Renderer{
		d:     d,
		w:     w,
		h:     h,
		large: &proggy.TinySZ8pt7b,
		small: &tinyfont.TomThumb,
	}, nil
}

// Render replaces whatever is on screen with a full frame. It does no de-duplication of its own.
func (r *Renderer) Render(snap state.Snapshot, channels [state.NumChannels]state.Channel) error {
	f := Layout(snap, channels)

	r.clear()
	tinyfont.WriteLine(r.d, r.large, 0, linkY, f.Link, white)
	tinyfont.WriteLine(r.d, r.large, 0, tcpY, f.TCP, white)

	col := r.w / state.NumChannels
	for i := range f.Headers {
		x := int16(i)*col + 2
		tinyfont.WriteLine(r.d, r.small, x, headerY, f.Headers[i], white)
		tinyfont.WriteLine(r.d, r.small, x, valueY, f.Values[i], white)
	}
	return r.d.Display()
}

// Splash shows a single line of text centred horizontally.
func (r *Renderer) Splash(text string) error {
	r.clear()
	_, width := tinyfont.LineWidth(r.large, text)
	x := (r.w - int16(width)) / 2
	if x < 0 {
		x = 0
	}
	tinyfont.WriteLine(r.d, r.large, x, splashY, text, white)
	return r.d.Display()
}

// clearer is implemented by drivers with an in-memory frame buffer, such as ssd1306.
type clearer interface {
	ClearBuffer()
}

func (r *Renderer) clear() {
	if c, ok := r.d.(clearer); ok {
		c.ClearBuffer()
		return
	}
	for y := int16(0); y < r.h; y++ {
		for x := int16(0); x < r.w; x++ {
			r.d.SetPixel(x, y, black)
		}
	}
}
