package engine

// direction is the rotation sense of a controller knob, derived from the
// sign of the value delta between consecutive events.
type direction int8

const (
	directionNone direction = iota
	clockwise
	counterClockwise
)

func (d direction) String() string {
	switch d {
	case clockwise:
		return "clockwise"
	case counterClockwise:
		return "counter_clockwise"
	}
	return "none"
}

// ccState is the mutable per-controller state. One instance exists for each
// bound CC number; it lives for the process lifetime and is mutated only by
// the engine.
type ccState struct {
	lastValue uint8
	seeded    bool // false until the first event establishes a baseline

	on      bool      // Toggle mode: key currently held
	heldKey uint16    // Keyboard mode: keycode currently held, 0 when none
	lastDir direction // Keyboard mode: last rotation sense acted on
}

// delta returns the signed value change since the previous event for this
// controller, folding encoder wrap-around: a jump larger than wrapThreshold
// is read as the value crossing the 0/127 boundary in the opposite
// direction. The very first event for a controller has no previous value and
// is treated as a minimal clockwise step.
func (st *ccState) delta(value uint8, wrapThreshold uint8) int32 {
	if !st.seeded {
		st.seeded = true
		st.lastValue = value
		return 1
	}
	d := int32(value) - int32(st.lastValue)
	st.lastValue = value
	if d > int32(wrapThreshold) {
		d -= 128
	} else if d < -int32(wrapThreshold) {
		d += 128
	}
	return d
}
