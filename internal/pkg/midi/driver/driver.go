package driver

// MIDIPort is the shared surface of midi port handles.
type MIDIPort interface {
	Name() string
	Open() error
	Close() error
}

// MIDIOut is the emission boundary: discrete raw midi messages go in,
// whatever is on the other side sounds them.
type MIDIOut interface {
	MIDIPort
	Send(data []byte) error
}
