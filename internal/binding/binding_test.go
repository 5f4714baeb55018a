package binding

import (
	"errors"
	"testing"

	"github.com/korewaChino/midkb/internal/config"
)

func buildFrom(t *testing.T, doc string) (*Table, error) {
	t.Helper()
	cfg, err := config.Parse([]byte(doc))
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	return Build(cfg)
}

func TestBuildLookup(t *testing.T) {
	table, err := buildFrom(t, `
midi_device = "test"

[notes]
60 = 32
61 = "space"

[cc.21]
bind_mode = "Mouse"
counter_clockwise = "-x"
clockwise = "x"

[cc.23]
bind_mode = "Keyboard"
counter_clockwise = "left"
clockwise = "right"

[cc.28]
bind_mode = "Toggle"
clockwise = "44"
`)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if key, ok := table.LookupNote(60); !ok || key != 32 {
		t.Errorf("note 60: got (%d, %v), want (32, true)", key, ok)
	}
	if key, ok := table.LookupNote(61); !ok || key != 57 {
		t.Errorf("note 61: got (%d, %v), want (57, true)", key, ok)
	}
	if _, ok := table.LookupNote(62); ok {
		t.Error("note 62 should not be bound")
	}

	mouse, ok := table.LookupCC(21)
	if !ok || mouse.Mode != ModeMouse {
		t.Fatalf("cc 21: got (%+v, %v)", mouse, ok)
	}
	if mouse.CCW.Axis != AxisNegX || mouse.CW.Axis != AxisX {
		t.Errorf("cc 21 axes: got ccw=%v cw=%v", mouse.CCW.Axis, mouse.CW.Axis)
	}

	kb, ok := table.LookupCC(23)
	if !ok || kb.Mode != ModeKeyboard {
		t.Fatalf("cc 23: got (%+v, %v)", kb, ok)
	}
	if kb.CCW.Key != 105 || kb.CW.Key != 106 {
		t.Errorf("cc 23 keys: got ccw=%d cw=%d, want 105/106", kb.CCW.Key, kb.CW.Key)
	}

	toggle, ok := table.LookupCC(28)
	if !ok || toggle.Mode != ModeToggle || toggle.CW.Key != 44 {
		t.Fatalf("cc 28: got (%+v, %v)", toggle, ok)
	}

	if _, ok := table.LookupCC(99); ok {
		t.Error("cc 99 should not be bound")
	}
}

func TestBuildRejectsBadConfigs(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{
			name: "duplicate note",
			doc: `
midi_device = "test"
[notes]
60 = 32
060 = 33
`,
			want: ErrDuplicateBinding,
		},
		{
			name: "note out of range",
			doc: `
midi_device = "test"
[notes]
128 = 32
`,
			want: ErrOutOfRange,
		},
		{
			name: "cc out of range",
			doc: `
midi_device = "test"
[cc.200]
bind_mode = "Toggle"
clockwise = "44"
`,
			want: ErrOutOfRange,
		},
		{
			name: "keycode out of range",
			doc: `
midi_device = "test"
[notes]
60 = 99999
`,
			want: config.ErrBadKeycode,
		},
		{
			name: "zero keycode",
			doc: `
midi_device = "test"
[notes]
60 = 0
`,
			want: config.ErrBadKeycode,
		},
		{
			name: "axis in keyboard mode",
			doc: `
midi_device = "test"
[cc.23]
bind_mode = "Keyboard"
counter_clockwise = "-x"
clockwise = "106"
`,
			want: ErrInvalidAction,
		},
		{
			name: "axis in toggle mode",
			doc: `
midi_device = "test"
[cc.28]
bind_mode = "Toggle"
counter_clockwise = "-y"
clockwise = "44"
`,
			want: ErrInvalidAction,
		},
		{
			name: "keycode in mouse mode",
			doc: `
midi_device = "test"
[cc.21]
bind_mode = "Mouse"
counter_clockwise = "44"
clockwise = "x"
`,
			want: ErrInvalidAction,
		},
		{
			name: "unknown mode",
			doc: `
midi_device = "test"
[cc.21]
bind_mode = "Joystick"
counter_clockwise = "x"
clockwise = "x"
`,
			want: ErrUnknownMode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := buildFrom(t, tt.doc)
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestKeyboardModeIsDefault(t *testing.T) {
	table, err := buildFrom(t, `
midi_device = "test"
[cc.23]
counter_clockwise = "105"
clockwise = "106"
`)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	b, ok := table.LookupCC(23)
	if !ok || b.Mode != ModeKeyboard {
		t.Errorf("cc 23: got (%+v, %v), want Keyboard mode", b, ok)
	}
}

func TestBareXYAreLetterKeysOutsideMouseMode(t *testing.T) {
	table, err := buildFrom(t, `
midi_device = "test"
[cc.23]
bind_mode = "Keyboard"
counter_clockwise = "x"
clockwise = "y"
`)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	b, _ := table.LookupCC(23)
	if b.CCW.Key != 45 || b.CW.Key != 21 {
		t.Errorf("got ccw=%d cw=%d, want KEY_X=45 KEY_Y=21", b.CCW.Key, b.CW.Key)
	}
}

func TestAxisVector(t *testing.T) {
	tests := []struct {
		axis   Axis
		dx, dy int32
	}{
		{AxisX, 10, 0},
		{AxisNegX, -10, 0},
		{AxisY, 0, 10},
		{AxisNegY, 0, -10},
	}
	for _, tt := range tests {
		dx, dy := tt.axis.Vector(10)
		if dx != tt.dx || dy != tt.dy {
			t.Errorf("axis %v: got (%d, %d), want (%d, %d)", tt.axis, dx, dy, tt.dx, tt.dy)
		}
	}
}
