package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// keyCodeMax is the highest key currently defined in input-event-codes.h.
const keyCodeMax = 0x2ff

// ErrBadKeycode is returned when a configured keycode is out of range or
// names an unknown key.
var ErrBadKeycode = errors.New("invalid keycode")

// keyNames maps lower-case key names to evdev keycodes, for the keys people
// actually bind. Digit keys and anything missing here must be given
// numerically, since a bare number is always read as a keycode.
var keyNames = map[string]uint16{
	"esc":        1,
	"backspace":  14,
	"tab":        15,
	"q":          16,
	"w":          17,
	"e":          18,
	"r":          19,
	"t":          20,
	"y":          21,
	"u":          22,
	"i":          23,
	"o":          24,
	"p":          25,
	"enter":      28,
	"leftctrl":   29,
	"a":          30,
	"s":          31,
	"d":          32,
	"f":          33,
	"g":          34,
	"h":          35,
	"j":          36,
	"k":          37,
	"l":          38,
	"leftshift":  42,
	"z":          44,
	"x":          45,
	"c":          46,
	"v":          47,
	"b":          48,
	"n":          49,
	"m":          50,
	"rightshift": 54,
	"leftalt":    56,
	"space":      57,
	"capslock":   58,
	"f1":         59,
	"f2":         60,
	"f3":         61,
	"f4":         62,
	"f5":         63,
	"f6":         64,
	"f7":         65,
	"f8":         66,
	"f9":         67,
	"f10":        68,
	"f11":        87,
	"f12":        88,
	"rightctrl":  97,
	"rightalt":   100,
	"home":       102,
	"up":         103,
	"pageup":     104,
	"left":       105,
	"right":      106,
	"end":        107,
	"down":       108,
	"pagedown":   109,
	"insert":     110,
	"delete":     111,
	"leftmeta":   125,
}

// ParseKeycode interprets s as an evdev keycode: either a decimal code or a
// key name from the name table.
func ParseKeycode(s string) (uint16, error) {
	if n, err := strconv.ParseUint(s, 10, 16); err == nil {
		return checkKeycode(int64(n))
	}
	if code, ok := keyNames[strings.ToLower(s)]; ok {
		return code, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadKeycode, s)
}

// ParseKeyValue interprets a decoded TOML value (integer or string) as a
// keycode.
func ParseKeyValue(v interface{}) (uint16, error) {
	switch val := v.(type) {
	case int64:
		return checkKeycode(val)
	case string:
		return ParseKeycode(val)
	}
	return 0, fmt.Errorf("%w: %v", ErrBadKeycode, v)
}

func checkKeycode(n int64) (uint16, error) {
	if n < 1 || n > keyCodeMax {
		return 0, fmt.Errorf("%w: %d out of range", ErrBadKeycode, n)
	}
	return uint16(n), nil
}
