package contracts

// PortInfo describes an available MIDI input port.
type PortInfo struct {
	Number int    // Port index as reported by the driver.
	Name   string // Port name, e.g. "Arturia MiniLab mkII 28:0".
}

// Transport delivers parsed MIDI events from a single input port.
type Transport interface {
	// Stop ends event capture and releases the port.
	Stop() error
	// ListPorts lists all available MIDI input ports.
	ListPorts() ([]PortInfo, error)
	// SelectPort connects to the first port whose name contains match.
	SelectPort(match string) error
	// StartCapture starts capturing MIDI events from the selected port and
	// sends them to the given channel.
	StartCapture(eventChannel chan Event) error
}
