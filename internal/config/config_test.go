package config

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
midi_device = "28:0"
note_channel = 1

[notes]
60 = 12
61 = "space"

[cc.1]
bind_mode = "Keyboard"
counter_clockwise = "60"
clockwise = "70"
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if cfg.MidiDevice != "28:0" {
		t.Errorf("midi_device: got %q", cfg.MidiDevice)
	}
	if cfg.NoteChannel == nil || *cfg.NoteChannel != 1 {
		t.Errorf("note_channel: got %v, want 1", cfg.NoteChannel)
	}
	if len(cfg.Notes) != 2 {
		t.Fatalf("notes: got %d entries", len(cfg.Notes))
	}
	if v, ok := cfg.Notes["60"].(int64); !ok || v != 12 {
		t.Errorf("notes.60: got %v (%T)", cfg.Notes["60"], cfg.Notes["60"])
	}
	if v, ok := cfg.Notes["61"].(string); !ok || v != "space" {
		t.Errorf("notes.61: got %v (%T)", cfg.Notes["61"], cfg.Notes["61"])
	}

	sec, ok := cfg.CC["1"]
	if !ok {
		t.Fatal("cc.1 missing")
	}
	if sec.BindMode != "Keyboard" || sec.CounterClockwise != "60" || sec.Clockwise != "70" {
		t.Errorf("cc.1: got %+v", sec)
	}
}

func TestParseRequiresDevice(t *testing.T) {
	_, err := Parse([]byte(`
[notes]
60 = 12
`))
	if !errors.Is(err, ErrNoDevice) {
		t.Errorf("got %v, want ErrNoDevice", err)
	}
}

func TestParseRejectsMalformedTOML(t *testing.T) {
	if _, err := Parse([]byte(`midi_device = `)); err == nil {
		t.Error("expected decode error")
	}
}

func TestParseKeycode(t *testing.T) {
	tests := []struct {
		in   string
		want uint16
		err  bool
	}{
		{in: "57", want: 57},
		{in: "space", want: 57},
		{in: "Space", want: 57},
		{in: "LEFTSHIFT", want: 42},
		{in: "767", want: 767}, // highest defined keycode
		{in: "768", err: true},
		{in: "0", err: true},
		{in: "-x", err: true},
		{in: "definitely-not-a-key", err: true},
	}

	for _, tt := range tests {
		got, err := ParseKeycode(tt.in)
		if tt.err {
			if !errors.Is(err, ErrBadKeycode) {
				t.Errorf("ParseKeycode(%q): got err %v, want ErrBadKeycode", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseKeycode(%q): got (%d, %v), want %d", tt.in, got, err, tt.want)
		}
	}
}

func TestParseKeyValue(t *testing.T) {
	if got, err := ParseKeyValue(int64(32)); err != nil || got != 32 {
		t.Errorf("int64: got (%d, %v)", got, err)
	}
	if got, err := ParseKeyValue("enter"); err != nil || got != 28 {
		t.Errorf("string: got (%d, %v)", got, err)
	}
	if _, err := ParseKeyValue(3.5); !errors.Is(err, ErrBadKeycode) {
		t.Errorf("float: got %v, want ErrBadKeycode", err)
	}
	if _, err := ParseKeyValue(int64(0)); !errors.Is(err, ErrBadKeycode) {
		t.Errorf("zero: got %v, want ErrBadKeycode", err)
	}
}
