//go:build matrixportal_m4

package main

import (
	"context"
	"machine"
	"os"
	"time"

	"github.com/ajanata/textbuf"
	"tinygo.org/x/drivers/netlink/probe"
	"tinygo.org/x/drivers/ssd1306"

	"github.com/ajanata/guantebot/internal/clock"
	"github.com/ajanata/guantebot/internal/config"
	"github.com/ajanata/guantebot/internal/console"
	"github.com/ajanata/guantebot/internal/link"
	"github.com/ajanata/guantebot/internal/loop"
	tcpprobe "github.com/ajanata/guantebot/internal/probe"
	"github.com/ajanata/guantebot/internal/radio"
	"github.com/ajanata/guantebot/internal/sensor"
	"github.com/ajanata/guantebot/internal/state"
	"github.com/ajanata/guantebot/internal/status"
)

func main() {
	time.Sleep(time.Second)
	blink()
	cfg := loadConfig()

	err := machine.I2C0.Configure(machine.I2CConfig{
		SCL:       machine.I2C0_SCL_PIN,
		SDA:       machine.I2C0_SDA_PIN,
		Frequency: 400 * machine.KHz,
	})
	if err != nil {
		earlyPanic(err)
	}
	blink()

	dev := ssd1306.NewI2C(machine.I2C0)
	dev.Configure(ssd1306.Config{
		Width:    cfg.Display.Width,
		Height:   cfg.Display.Height,
		Address:  cfg.Display.Address,
		VccState: ssd1306.SWITCHCAPVCC,
	})
	dev.ClearBuffer()
	dev.ClearDisplay()

	screen, err := status.New(&dev)
	if err != nil {
		earlyPanic(err)
	}

	log := console.New(os.Stdout)
	// boot progress goes to the OLED too, until the status screen takes over
	buf, err := textbuf.New(&dev, textbuf.FontSize6x8)
	if err != nil {
		log.Warnf("boot console: %v", err)
	} else {
		buf.AutoFlush = true
		log.SetMirror(buf)
	}

	nl, nd := probe.Probe()
	r := radio.New(nl, nd, cfg.WiFi.SSID, cfg.WiFi.Password, cfg.Timing.ReconnectTimeout)

	c := clock.System{}
	l := loop.New(state.New(cfg.ChannelNames()), loop.Parts{
		Monitor:  link.New(r, c, log, cfg.Timing.ReconnectTimeout, cfg.Timing.ReconnectPoll),
		Prober:   tcpprobe.New(tcpprobe.NetDialer{Timeout: cfg.Timing.ProbeInterval}, cfg.ServerAddr(), cfg.Timing.ProbeInterval, c, log),
		Screen:   screen,
		Channels: channels(cfg.Sensors),
		Clock:    c,
		Log:      log,
	}, cfg.WiFi.SSID, loop.Timing{
		Splash: cfg.Timing.SplashDelay,
		Pass:   cfg.Timing.LoopDelay,
	})

	ctx := context.Background()
	if err := l.Boot(ctx); err != nil {
		earlyPanic(err)
	}
	log.SetMirror(nil)
	_ = l.Run(ctx)
}

func channels(s config.Sensors) sensor.Source {
	if s.Mode != config.Flex {
		return sensor.Simulated
	}
	machine.InitADC()
	var adcs [state.NumChannels]sensor.ADC
	for i, pin := range []machine.Pin{machine.A0, machine.A1, machine.A2, machine.A3, machine.A4} {
		adc := machine.ADC{Pin: pin}
		adc.Configure(machine.ADCConfig{Resolution: 12, Samples: 32})
		adcs[i] = adc
	}
	return sensor.NewFlex(adcs, s.Mid, s.On)
}
