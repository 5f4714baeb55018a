// Package binding builds the immutable lookup table that maps MIDI notes to
// keycodes and CC numbers to controller bindings. All authoring mistakes are
// rejected here, at construction, so the translation engine never sees an
// invalid binding.
package binding

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/korewaChino/midkb/internal/config"
)

// Error categories for binding construction failures.
var (
	ErrDuplicateBinding = errors.New("duplicate binding")
	ErrUnknownMode      = errors.New("unknown bind mode")
	ErrInvalidAction    = errors.New("action not valid for bind mode")
	ErrOutOfRange       = errors.New("MIDI number out of range")
)

// BindMode selects how a CC binding is interpreted.
type BindMode int

const (
	// ModeKeyboard holds one of two keys down depending on rotation direction.
	ModeKeyboard BindMode = iota
	// ModeMouse nudges the pointer along a configured axis.
	ModeMouse
	// ModeToggle treats the extreme CC values 0 and 127 as key up/down.
	ModeToggle
)

// String returns the configuration-file name of the mode.
func (m BindMode) String() string {
	switch m {
	case ModeKeyboard:
		return "Keyboard"
	case ModeMouse:
		return "Mouse"
	case ModeToggle:
		return "Toggle"
	}
	return "invalid"
}

// Axis identifies a signed pointer axis.
type Axis int

const (
	AxisX Axis = iota
	AxisNegX
	AxisY
	AxisNegY
)

// Vector returns the pointer movement for one nudge of the given magnitude
// along the axis.
func (a Axis) Vector(speed int32) (dx, dy int32) {
	switch a {
	case AxisX:
		return speed, 0
	case AxisNegX:
		return -speed, 0
	case AxisY:
		return 0, speed
	case AxisNegY:
		return 0, -speed
	}
	return 0, 0
}

// parseAxis reads one of the axis names accepted in Mouse-mode bindings.
func parseAxis(s string) (Axis, bool) {
	switch strings.ToLower(s) {
	case "x":
		return AxisX, true
	case "-x":
		return AxisNegX, true
	case "y":
		return AxisY, true
	case "-y":
		return AxisNegY, true
	}
	return 0, false
}

// Action is the target of one rotation direction: a pointer axis when the
// binding mode is Mouse, a keycode when it is Keyboard or Toggle. The mode
// determines which field is meaningful; construction rejects mismatches.
type Action struct {
	Axis Axis
	Key  uint16
}

// CCBinding describes how control change events for one controller number
// are translated.
type CCBinding struct {
	Mode BindMode
	CCW  Action // counter-clockwise rotation target
	CW   Action // clockwise rotation target; also the Toggle-mode key
}

// Table is the immutable binding lookup structure. It is built once from the
// configuration and read-only afterward.
type Table struct {
	notes map[uint8]uint16
	cc    map[uint8]CCBinding
}

// LookupNote returns the keycode bound to a note number.
func (t *Table) LookupNote(note uint8) (uint16, bool) {
	key, ok := t.notes[note]
	return key, ok
}

// LookupCC returns the binding for a controller number.
func (t *Table) LookupCC(controller uint8) (CCBinding, bool) {
	b, ok := t.cc[controller]
	return b, ok
}

// Build constructs the binding table from a decoded configuration, validating
// every entry. It fails rather than silently overwriting so that authoring
// mistakes surface immediately.
func Build(cfg *config.Config) (*Table, error) {
	t := &Table{
		notes: make(map[uint8]uint16, len(cfg.Notes)),
		cc:    make(map[uint8]CCBinding, len(cfg.CC)),
	}

	for raw, value := range cfg.Notes {
		note, err := parseMIDINumber(raw)
		if err != nil {
			return nil, fmt.Errorf("note %q: %w", raw, err)
		}
		if _, exists := t.notes[note]; exists {
			return nil, fmt.Errorf("note %d: %w", note, ErrDuplicateBinding)
		}
		key, err := config.ParseKeyValue(value)
		if err != nil {
			return nil, fmt.Errorf("note %d: %w", note, err)
		}
		t.notes[note] = key
	}

	for raw, section := range cfg.CC {
		controller, err := parseMIDINumber(raw)
		if err != nil {
			return nil, fmt.Errorf("cc %q: %w", raw, err)
		}
		if _, exists := t.cc[controller]; exists {
			return nil, fmt.Errorf("cc %d: %w", controller, ErrDuplicateBinding)
		}
		b, err := buildCC(section)
		if err != nil {
			return nil, fmt.Errorf("cc %d: %w", controller, err)
		}
		t.cc[controller] = b
	}

	return t, nil
}

func buildCC(section config.CCSection) (CCBinding, error) {
	switch strings.ToLower(section.BindMode) {
	case "keyboard", "":
		ccw, err := keyAction(section.CounterClockwise, "counter_clockwise")
		if err != nil {
			return CCBinding{}, err
		}
		cw, err := keyAction(section.Clockwise, "clockwise")
		if err != nil {
			return CCBinding{}, err
		}
		return CCBinding{Mode: ModeKeyboard, CCW: ccw, CW: cw}, nil

	case "mouse":
		ccw, err := axisAction(section.CounterClockwise, "counter_clockwise")
		if err != nil {
			return CCBinding{}, err
		}
		cw, err := axisAction(section.Clockwise, "clockwise")
		if err != nil {
			return CCBinding{}, err
		}
		return CCBinding{Mode: ModeMouse, CCW: ccw, CW: cw}, nil

	case "toggle":
		// Only the clockwise field names the toggle key; a
		// counter-clockwise value is accepted but unused.
		cw, err := keyAction(section.Clockwise, "clockwise")
		if err != nil {
			return CCBinding{}, err
		}
		if s := section.CounterClockwise; s == "-x" || s == "-y" {
			return CCBinding{}, fmt.Errorf("counter_clockwise: axis %q: %w", s, ErrInvalidAction)
		}
		return CCBinding{Mode: ModeToggle, CW: cw}, nil
	}

	return CCBinding{}, fmt.Errorf("%w: %q", ErrUnknownMode, section.BindMode)
}

func keyAction(s, field string) (Action, error) {
	// Bare "x" and "y" name letter keys here; only the signed axis forms
	// are unambiguously axes.
	if s == "-x" || s == "-y" {
		return Action{}, fmt.Errorf("%s: axis %q: %w", field, s, ErrInvalidAction)
	}
	key, err := config.ParseKeycode(s)
	if err != nil {
		return Action{}, fmt.Errorf("%s: %w", field, err)
	}
	return Action{Key: key}, nil
}

func axisAction(s, field string) (Action, error) {
	axis, ok := parseAxis(s)
	if !ok {
		return Action{}, fmt.Errorf("%s: keycode %q: %w", field, s, ErrInvalidAction)
	}
	return Action{Axis: axis}, nil
}

func parseMIDINumber(s string) (uint8, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 127 {
		return 0, fmt.Errorf("%w: %q", ErrOutOfRange, s)
	}
	return uint8(n), nil
}
