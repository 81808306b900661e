// Package console is the firmware's log sink: plain text lines on the serial port, optionally echoed onto the OLED
// while the device is still booting.
package console

import (
	"fmt"
	"io"
)

type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
}

// Mirror receives a copy of every line. *textbuf.Buffer satisfies it.
type Mirror interface {
	Println(s string) error
}

// Serial writes "INFO ..." and "WARN ..." lines to w.
type Serial struct {
	w      io.Writer
	mirror Mirror
}

func New(w io.Writer) *Serial {
	return &Serial{w: w}
}

// SetMirror starts (or, with nil, stops) echoing lines to m.
func (s *Serial) SetMirror(m Mirror) {
	s.mirror = m
}

func (s *Serial) Infof(format string, args ...any) {
	s.line("INFO", format, args)
}

func (s *Serial) Warnf(format string, args ...any) {
	s.line("WARN", format, args)
}

func (s *Serial) line(level, format string, args []any) {
	msg := fmt.Sprintf(format, args...)
	_, _ = fmt.Fprintf(s.w, "%s %s\n", level, msg)
	if s.mirror != nil {
		_ = s.mirror.Println(msg)
	}
}

// Discard drops everything.
var Discard Logger = discard{}

type discard struct{}

func (discard) Infof(string, ...any) {}
func (discard) Warnf(string, ...any) {}
