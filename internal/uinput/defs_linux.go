//go:build linux

package uinput

import "golang.org/x/sys/unix"

// Constants and structs translated from uinput.h and input-event-codes.h.
const (
	uinputMaxNameSize = 80

	uiDevCreate  = 0x5501
	uiDevDestroy = 0x5502

	uiSetEvBit  = 0x40045564
	uiSetKeyBit = 0x40045565
	uiSetRelBit = 0x40045566

	busUsb = 0x03

	evSyn = 0x00
	evKey = 0x01
	evRel = 0x02

	relX = 0x0
	relY = 0x1

	synReport = 0

	// keyMax is the highest key currently defined.
	keyMax = 0x2ff

	btnStateReleased = 0
	btnStatePressed  = 1

	absSize = 64
)

// translated to go from input.h
type inputID struct {
	Bustype uint16
	Vendor  uint16
	Product uint16
	Version uint16
}

// translated to go from uinput.h
type uinputUserDev struct {
	Name       [uinputMaxNameSize]byte
	ID         inputID
	EffectsMax uint32
	Absmax     [absSize]int32
	Absmin     [absSize]int32
	Absfuzz    [absSize]int32
	Absflat    [absSize]int32
}

// translated to go from input.h
type inputEvent struct {
	Time  unix.Timeval
	Type  uint16
	Code  uint16
	Value int32
}
