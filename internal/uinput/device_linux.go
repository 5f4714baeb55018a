//go:build linux

// Package uinput implements the output device on the Linux uinput subsystem:
// a virtual keyboard-and-mouse the engine writes key and relative pointer
// events into.
package uinput

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/korewaChino/midkb/sdk/contracts"
	"golang.org/x/sys/unix"
)

// Device is a virtual input device registered through /dev/uinput.
type Device struct {
	mu   sync.Mutex
	file *os.File
	held map[uint16]struct{}
}

// New registers a virtual keyboard-and-mouse device under the given name.
// The caller needs write access to /dev/uinput.
func New(name string) (contracts.OutputDevice, error) {
	file, err := os.OpenFile("/dev/uinput", os.O_WRONLY|unix.O_NONBLOCK, 0660)
	if err != nil {
		return nil, fmt.Errorf("open /dev/uinput: %w", err)
	}

	fd := int(file.Fd())
	if err := setupBits(fd); err != nil {
		file.Close()
		return nil, err
	}

	var dev uinputUserDev
	copy(dev.Name[:uinputMaxNameSize-1], name)
	dev.ID = inputID{Bustype: busUsb, Vendor: 0x1d6b, Product: 0x0104, Version: 1}

	buf := new(bytes.Buffer)
	if err := binary.Write(buf, binary.LittleEndian, dev); err != nil {
		file.Close()
		return nil, fmt.Errorf("encode device descriptor: %w", err)
	}
	if _, err := file.Write(buf.Bytes()); err != nil {
		file.Close()
		return nil, fmt.Errorf("write device descriptor: %w", err)
	}

	if err := unix.IoctlSetInt(fd, uiDevCreate, 0); err != nil {
		file.Close()
		return nil, fmt.Errorf("create uinput device: %w", err)
	}

	// Give udev a moment to register the new device before events arrive.
	time.Sleep(200 * time.Millisecond)

	return &Device{file: file, held: make(map[uint16]struct{})}, nil
}

func setupBits(fd int) error {
	if err := unix.IoctlSetInt(fd, uiSetEvBit, evKey); err != nil {
		return fmt.Errorf("enable key events: %w", err)
	}
	if err := unix.IoctlSetInt(fd, uiSetEvBit, evRel); err != nil {
		return fmt.Errorf("enable relative events: %w", err)
	}
	if err := unix.IoctlSetInt(fd, uiSetEvBit, evSyn); err != nil {
		return fmt.Errorf("enable sync events: %w", err)
	}
	for code := 1; code <= keyMax; code++ {
		if err := unix.IoctlSetInt(fd, uiSetKeyBit, code); err != nil {
			return fmt.Errorf("register keycode %d: %w", code, err)
		}
	}
	if err := unix.IoctlSetInt(fd, uiSetRelBit, relX); err != nil {
		return fmt.Errorf("register x axis: %w", err)
	}
	if err := unix.IoctlSetInt(fd, uiSetRelBit, relY); err != nil {
		return fmt.Errorf("register y axis: %w", err)
	}
	return nil
}

// Press emits a key-down for the given keycode.
func (d *Device) Press(code uint16) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.sendEvents(
		inputEvent{Type: evKey, Code: code, Value: btnStatePressed},
		inputEvent{Type: evSyn, Code: synReport},
	); err != nil {
		return fmt.Errorf("press %d: %w", code, err)
	}
	d.held[code] = struct{}{}
	return nil
}

// Release emits a key-up for the given keycode.
func (d *Device) Release(code uint16) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.sendEvents(
		inputEvent{Type: evKey, Code: code, Value: btnStateReleased},
		inputEvent{Type: evSyn, Code: synReport},
	); err != nil {
		return fmt.Errorf("release %d: %w", code, err)
	}
	delete(d.held, code)
	return nil
}

// MoveMouse emits a relative pointer movement.
func (d *Device) MoveMouse(dx, dy int32) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	events := make([]inputEvent, 0, 3)
	if dx != 0 {
		events = append(events, inputEvent{Type: evRel, Code: relX, Value: dx})
	}
	if dy != 0 {
		events = append(events, inputEvent{Type: evRel, Code: relY, Value: dy})
	}
	if len(events) == 0 {
		return nil
	}
	events = append(events, inputEvent{Type: evSyn, Code: synReport})
	if err := d.sendEvents(events...); err != nil {
		return fmt.Errorf("move mouse: %w", err)
	}
	return nil
}

// Close releases any keys still held and destroys the device. Releasing
// first keeps the host keyboard state clean if the process exits while a
// binding is active.
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for code := range d.held {
		_ = d.sendEvents(
			inputEvent{Type: evKey, Code: code, Value: btnStateReleased},
			inputEvent{Type: evSyn, Code: synReport},
		)
	}
	d.held = nil

	if err := unix.IoctlSetInt(int(d.file.Fd()), uiDevDestroy, 0); err != nil {
		d.file.Close()
		return fmt.Errorf("destroy uinput device: %w", err)
	}
	return d.file.Close()
}

func (d *Device) sendEvents(events ...inputEvent) error {
	buf := new(bytes.Buffer)
	for _, ev := range events {
		if err := binary.Write(buf, binary.LittleEndian, ev); err != nil {
			return fmt.Errorf("encode input event: %w", err)
		}
	}
	if _, err := d.file.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write input events: %w", err)
	}
	return nil
}
