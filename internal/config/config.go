// Package config describes the firmware's build-time settings. The YAML source is embedded into the binary, so
// changing a value still means reflashing.
package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ajanata/guantebot/internal/state"
)

var (
	ErrMissingSSID = errors.New("wifi ssid is required")
	ErrBadPort     = errors.New("server port must be between 1 and 65535")
	ErrBadTiming   = errors.New("timing values must be positive")
	ErrBadPoll     = errors.New("reconnect poll interval must not exceed the reconnect timeout")
	ErrBadChannels = errors.New("exactly 5 channel names are required")
	ErrBadSensors  = errors.New("sensor mode must be simulated or flex")
)

// Sensor modes.
const (
	Simulated = "simulated"
	Flex      = "flex"
)

type Config struct {
	WiFi     WiFi     `yaml:"wifi"`
	Server   Server   `yaml:"server"`
	Display  Display  `yaml:"display"`
	Timing   Timing   `yaml:"timing"`
	Channels []string `yaml:"channels"`
	Sensors  Sensors  `yaml:"sensors"`
}

type WiFi struct {
	SSID     string `yaml:"ssid"`
	Password string `yaml:"password"`
}

// Server is the TCP endpoint the probe keeps a connection open to.
type Server struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type Display struct {
	Width   int16  `yaml:"width"`
	Height  int16  `yaml:"height"`
	Address uint16 `yaml:"address"`
}

// Sensors selects where finger readings come from. Mid and On are ADC deltas above the resting level.
type Sensors struct {
	Mode string `yaml:"mode"`
	Mid  uint16 `yaml:"mid"`
	On   uint16 `yaml:"on"`
}

type Timing struct {
	ReconnectTimeout time.Duration `yaml:"reconnect_timeout"`
	ReconnectPoll    time.Duration `yaml:"reconnect_poll"`
	ProbeInterval    time.Duration `yaml:"probe_interval"`
	LoopDelay        time.Duration `yaml:"loop_delay"`
	SplashDelay      time.Duration `yaml:"splash_delay"`
}

// Default returns a complete configuration. Only the Wi-Fi credentials have no usable default.
func Default() Config {
	return Config{
		Server: Server{
			Host: "10.42.0.1",
			Port: 8888,
		},
		Display: Display{
			Width:   128,
			Height:  64,
			Address: 0x3C,
		},
		Timing: Timing{
			ReconnectTimeout: 10 * time.Second,
			ReconnectPoll:    500 * time.Millisecond,
			ProbeInterval:    2 * time.Second,
			LoopDelay:        time.Second,
			SplashDelay:      time.Second,
		},
		Channels: []string{"PUL", "IND", "COR", "ANU", "MEN"},
		Sensors: Sensors{
			Mode: Simulated,
			Mid:  4000,
			On:   12000,
		},
	}
}

// Parse overlays the YAML document onto Default and validates the result.
func Parse(b []byte) (Config, error) {
	c := Default()
	if err := yaml.Unmarshal(b, &c); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	if c.WiFi.SSID == "" {
		return ErrMissingSSID
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: %d", ErrBadPort, c.Server.Port)
	}
	t := c.Timing
	for _, d := range []time.Duration{t.ReconnectTimeout, t.ReconnectPoll, t.ProbeInterval, t.LoopDelay} {
		if d <= 0 {
			return ErrBadTiming
		}
	}
	if t.SplashDelay < 0 {
		return ErrBadTiming
	}
	if t.ReconnectPoll > t.ReconnectTimeout {
		return ErrBadPoll
	}
	if len(c.Channels) != state.NumChannels {
		return fmt.Errorf("%w: got %d", ErrBadChannels, len(c.Channels))
	}
	switch c.Sensors.Mode {
	case Simulated:
	case Flex:
		if c.Sensors.Mid == 0 || c.Sensors.On <= c.Sensors.Mid {
			return fmt.Errorf("%w: thresholds need 0 < mid < on", ErrBadSensors)
		}
	default:
		return fmt.Errorf("%w: %q", ErrBadSensors, c.Sensors.Mode)
	}
	return nil
}

// ServerAddr is the probe's dial address in host:port form.
func (c Config) ServerAddr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// ChannelNames returns the channel names as the fixed-size array State wants. Call only on a validated Config.
func (c Config) ChannelNames() [state.NumChannels]string {
	var names [state.NumChannels]string
	copy(names[:], c.Channels)
	return names
}
