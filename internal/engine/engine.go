// Package engine translates MIDI events into synthetic keyboard and mouse
// actions. The Engine is the single state-transition authority: it processes
// one event at a time, to completion, so no locking is needed on controller
// state.
package engine

import (
	"fmt"

	"github.com/korewaChino/midkb/internal/binding"
	"github.com/korewaChino/midkb/sdk/contracts"
)

// Engine resolves incoming MIDI events against the binding table, updates
// per-controller state, and writes the resulting actions to the output
// device. It is not safe for concurrent use; exactly one goroutine must feed
// it.
type Engine struct {
	table  *binding.Table
	out    contracts.OutputDevice
	logger contracts.Logger

	mouseSpeed    int32
	wrapThreshold uint8
	noteChannel   *uint8

	cc map[uint8]*ccState

	// keyNotes tracks which notes currently hold each keycode down, so a
	// key shared by several notes is pressed on the first note-on and
	// released on the last note-off.
	keyNotes map[uint16]map[uint8]struct{}
}

// New creates an engine writing to out. The options must already have
// defaults applied.
func New(table *binding.Table, out contracts.OutputDevice, options contracts.Options) *Engine {
	return &Engine{
		table:         table,
		out:           out,
		logger:        options.Logger,
		mouseSpeed:    options.MouseSpeed,
		wrapThreshold: options.WrapThreshold,
		noteChannel:   options.NoteChannel,
		cc:            make(map[uint8]*ccState),
		keyNotes:      make(map[uint16]map[uint8]struct{}),
	}
}

// HandleEvent translates one MIDI event into zero or more output actions.
// Events for unbound notes and controllers are ignored; every in-range input
// has a defined behavior. A returned error means the output device failed
// and the emitted key state can no longer be trusted, so callers must treat
// it as fatal.
func (e *Engine) HandleEvent(ev contracts.Event) error {
	switch ev.Kind {
	case contracts.NoteOn:
		if !e.noteChannelMatches(ev.Channel) {
			return nil
		}
		key, ok := e.table.LookupNote(ev.Key)
		if !ok {
			e.logger.Debug("note without key mapping",
				e.logger.Field().Uint8("note", ev.Key),
				e.logger.Field().Uint8("velocity", ev.Value))
			return nil
		}
		if ev.Value == 0 {
			// Some controllers send Note On with velocity 0 instead
			// of Note Off.
			return e.releaseNote(ev.Key, key)
		}
		return e.pressNote(ev.Key, key)

	case contracts.NoteOff:
		if !e.noteChannelMatches(ev.Channel) {
			return nil
		}
		key, ok := e.table.LookupNote(ev.Key)
		if !ok {
			return nil
		}
		return e.releaseNote(ev.Key, key)

	case contracts.ControlChange:
		b, ok := e.table.LookupCC(ev.Key)
		if !ok {
			return nil
		}
		st := e.state(ev.Key)
		switch b.Mode {
		case binding.ModeMouse:
			return e.handleMouse(ev, b, st)
		case binding.ModeKeyboard:
			return e.handleKeyboard(ev, b, st)
		case binding.ModeToggle:
			return e.handleToggle(ev, b, st)
		}
	}
	return nil
}

func (e *Engine) noteChannelMatches(channel uint8) bool {
	// MIDI channels are 0-based on the wire, 1-based in the config.
	return e.noteChannel == nil || channel+1 == *e.noteChannel
}

// pressNote registers a note holding a key down, pressing the key when this
// is the first note to hold it.
func (e *Engine) pressNote(note uint8, key uint16) error {
	notes := e.keyNotes[key]
	if notes == nil {
		notes = make(map[uint8]struct{})
		e.keyNotes[key] = notes
	}
	if _, down := notes[note]; down {
		return nil
	}
	first := len(notes) == 0
	notes[note] = struct{}{}
	if !first {
		return nil
	}
	e.logger.Debug("key down",
		e.logger.Field().Uint8("note", note),
		e.logger.Field().Uint16("key", key))
	if err := e.out.Press(key); err != nil {
		return fmt.Errorf("press key %d: %w", key, err)
	}
	return nil
}

// releaseNote removes a note from the set holding a key down, releasing the
// key when the last note goes up.
func (e *Engine) releaseNote(note uint8, key uint16) error {
	notes := e.keyNotes[key]
	if notes == nil {
		e.logger.Warn("note released but key was not held",
			e.logger.Field().Uint8("note", note),
			e.logger.Field().Uint16("key", key))
		return nil
	}
	delete(notes, note)
	if len(notes) > 0 {
		return nil
	}
	delete(e.keyNotes, key)
	e.logger.Debug("key up",
		e.logger.Field().Uint8("note", note),
		e.logger.Field().Uint16("key", key))
	if err := e.out.Release(key); err != nil {
		return fmt.Errorf("release key %d: %w", key, err)
	}
	return nil
}

func (e *Engine) handleMouse(ev contracts.Event, b binding.CCBinding, st *ccState) error {
	d := st.delta(ev.Value, e.wrapThreshold)
	if d == 0 {
		return nil
	}
	action, dir := b.CW, clockwise
	if d < 0 {
		action, dir = b.CCW, counterClockwise
	}
	dx, dy := action.Axis.Vector(e.mouseSpeed)
	if dir == counterClockwise {
		dx, dy = -dx, -dy
	}
	e.logger.Debug("mouse move",
		e.logger.Field().Uint8("cc", ev.Key),
		e.logger.Field().String("direction", dir.String()),
		e.logger.Field().Int32("dx", dx),
		e.logger.Field().Int32("dy", dy))
	if err := e.out.MoveMouse(dx, dy); err != nil {
		return fmt.Errorf("move mouse: %w", err)
	}
	return nil
}

func (e *Engine) handleKeyboard(ev contracts.Event, b binding.CCBinding, st *ccState) error {
	d := st.delta(ev.Value, e.wrapThreshold)
	if d == 0 {
		return nil
	}
	action, dir := b.CW, clockwise
	if d < 0 {
		action, dir = b.CCW, counterClockwise
	}
	if st.lastDir == dir && st.heldKey == action.Key {
		// Same direction, key already held.
		return nil
	}
	if st.heldKey != 0 {
		if err := e.out.Release(st.heldKey); err != nil {
			return fmt.Errorf("release key %d: %w", st.heldKey, err)
		}
		st.heldKey = 0
	}
	e.logger.Debug("direction key",
		e.logger.Field().Uint8("cc", ev.Key),
		e.logger.Field().String("direction", dir.String()),
		e.logger.Field().Uint16("key", action.Key))
	if err := e.out.Press(action.Key); err != nil {
		return fmt.Errorf("press key %d: %w", action.Key, err)
	}
	st.heldKey = action.Key
	st.lastDir = dir
	return nil
}

func (e *Engine) handleToggle(ev contracts.Event, b binding.CCBinding, st *ccState) error {
	key := b.CW.Key
	switch ev.Value {
	case 127:
		if st.on {
			return nil
		}
		e.logger.Debug("toggle on", e.logger.Field().Uint16("key", key))
		if err := e.out.Press(key); err != nil {
			return fmt.Errorf("press toggle key %d: %w", key, err)
		}
		st.on = true
	case 0:
		if !st.on {
			return nil
		}
		e.logger.Debug("toggle off", e.logger.Field().Uint16("key", key))
		if err := e.out.Release(key); err != nil {
			return fmt.Errorf("release toggle key %d: %w", key, err)
		}
		st.on = false
	default:
		// Anything between the extremes is not a digital toggle signal.
	}
	return nil
}

// state returns the mutable state for a bound controller, creating it on
// first use. Unbound controllers never allocate state.
func (e *Engine) state(controller uint8) *ccState {
	st, ok := e.cc[controller]
	if !ok {
		st = &ccState{}
		e.cc[controller] = st
	}
	return st
}
