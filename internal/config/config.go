package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// ErrNoDevice is returned when the configuration does not name a MIDI device.
var ErrNoDevice = errors.New("midi_device is not set")

// CCSection is one [cc.<n>] block of the configuration file. For Mouse mode
// the direction fields name a pointer axis (x, y, -x, -y); for Keyboard and
// Toggle mode they name a keycode.
type CCSection struct {
	BindMode         string `toml:"bind_mode"`
	CounterClockwise string `toml:"counter_clockwise"`
	Clockwise        string `toml:"clockwise"`
}

// Config mirrors the layout of the TOML configuration file. It is the raw,
// decoded form; semantic validation happens when the binding table is built
// from it.
type Config struct {
	// MidiDevice is a substring matched against MIDI input port names,
	// e.g. "28:0" for the port containing "28:0" in its name.
	MidiDevice string `toml:"midi_device"`

	// NoteChannel optionally restricts note events to one 1-based MIDI
	// channel. Control change events are never filtered.
	NoteChannel *uint8 `toml:"note_channel"`

	// Notes maps note numbers to keycodes. Values may be numeric evdev
	// codes or key names.
	Notes map[string]interface{} `toml:"notes"`

	// CC holds the per-controller binding sections, keyed by CC number.
	CC map[string]CCSection `toml:"cc"`
}

// Load reads and decodes the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes a TOML configuration document.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.MidiDevice == "" {
		return nil, ErrNoDevice
	}
	return &cfg, nil
}
