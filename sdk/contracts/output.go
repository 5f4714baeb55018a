package contracts

// OutputDevice is the synthetic input sink: a virtual keyboard and mouse the
// translation engine writes into. Implementations must apply events in call
// order; a failed press or release can leave a key stuck in the host input
// subsystem, so callers treat any returned error as fatal.
type OutputDevice interface {
	// Press emits a key-down for the given evdev keycode.
	Press(code uint16) error
	// Release emits a key-up for the given evdev keycode.
	Release(code uint16) error
	// MoveMouse emits a relative pointer movement.
	MoveMouse(dx, dy int32) error
	// Close releases any keys still held and destroys the device.
	Close() error
}
