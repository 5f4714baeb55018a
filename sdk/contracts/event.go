package contracts

// EventKind identifies the type of a MIDI channel-voice event, using the
// status nibble of the corresponding wire message.
type EventKind byte

const (
	// NoteOn is a Note On event (0x90).
	NoteOn EventKind = 0x90
	// NoteOff is a Note Off event (0x80).
	NoteOff EventKind = 0x80
	// ControlChange is a Control Change event (0xB0).
	ControlChange EventKind = 0xB0
)

// String returns a short name for the event kind.
func (k EventKind) String() string {
	switch k {
	case NoteOn:
		return "note_on"
	case NoteOff:
		return "note_off"
	case ControlChange:
		return "control_change"
	}
	return "unknown"
}

// Event is a parsed MIDI channel-voice event as delivered by a Transport.
// The transport rejects anything it cannot parse, so every Event reaching
// the engine carries in-range (0-127) data bytes.
type Event struct {
	Kind    EventKind
	Channel uint8 // 0-based channel number
	Key     uint8 // note number for NoteOn/NoteOff, controller number for ControlChange
	Value   uint8 // velocity for notes, controller value for ControlChange
}

// NewNoteOn builds a Note On event.
func NewNoteOn(channel, note, velocity uint8) Event {
	return Event{Kind: NoteOn, Channel: channel, Key: note, Value: velocity}
}

// NewNoteOff builds a Note Off event.
func NewNoteOff(channel, note uint8) Event {
	return Event{Kind: NoteOff, Channel: channel, Key: note}
}

// NewControlChange builds a Control Change event.
func NewControlChange(channel, controller, value uint8) Event {
	return Event{Kind: ControlChange, Channel: channel, Key: controller, Value: value}
}
