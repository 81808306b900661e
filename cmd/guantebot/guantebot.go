//go:build tinygo

package main

import (
	_ "embed"
	"machine"
	"time"

	"github.com/ajanata/guantebot/internal/config"
)

// config.yaml is compiled in; edit it and reflash to change the network or server.
//
//go:embed config.yaml
var configYAML []byte

func loadConfig() config.Config {
	cfg, err := config.Parse(configYAML)
	if err != nil {
		earlyPanic(err)
	}
	return cfg
}

func blink() {
	led := machine.LED
	led.Configure(machine.PinConfig{Mode: machine.PinOutput})
	led.High()
	time.Sleep(100 * time.Millisecond)
	led.Low()
	time.Sleep(100 * time.Millisecond)
}

// earlyPanic never returns. It is for faults, like a missing display, that leave no other way to tell anyone.
func earlyPanic(err error) {
	for i := 0; ; i++ {
		blink()
		if i%5 == 0 {
			println(err.Error())
		}
	}
}
