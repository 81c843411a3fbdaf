package midi

import (
	"fmt"
)

const (
	// message types
	NoteOff          uint8 = 0b1000 << 4
	NoteOn           uint8 = 0b1001 << 4
	ControlChange    uint8 = 0b1011 << 4
	PitchWheelChange uint8 = 0b1110 << 4

	// ControlChange functions
	AllNotesOff uint8 = 0b01111011
	AllSoundOff uint8 = 0b01111000

	// PitchBendCenter is the no-change value of the 14-bit pitch-bend range.
	PitchBendCenter = 8192
	PitchBendMax    = 16383
)

var valToPitch = map[uint8]string{
	0: "C", 1: "C#", 2: "D", 3: "D#",
	4: "E", 5: "F", 6: "F#", 7: "G",
	8: "G#", 9: "A", 10: "A#", 11: "B",
}

func NoteToPitch(note byte) string {
	return valToPitch[note%12]
}

func NoteToOctave(note byte) int {
	return int(note/12) - 2
}

func noteToString(note byte) string {
	return fmt.Sprintf("%-2s%2d", NoteToPitch(note), NoteToOctave(note))
}

// Event is a raw midi message, ready to be written into an output port.
type Event []byte

func (e Event) Type() uint8 {
	return e[0] & 0b11110000
}

func (e Event) Channel() uint8 {
	return e[0] & 0b1111
}

func (e Event) Note() uint8 {
	return e[1]
}

func (e Event) String() string {
	if len(e) == 0 {
		return "Warning: empty midi event, it should be not emitted"
	}
	channel := e[0]&0b1111 + 1
	switch x := e[0] & 0b11110000; x {
	case NoteOff:
		return fmt.Sprintf("Note Off: %s (channel: %2d, velocity: %3d)", noteToString(e[1]), channel, e[2])
	case NoteOn:
		return fmt.Sprintf("Note On : %s (channel: %2d, velocity: %3d)", noteToString(e[1]), channel, e[2])
	case ControlChange:
		var value string
		if len(e) == 3 {
			value = fmt.Sprintf("%3d", e[2])
		} else {
			value = "---"
		}
		return fmt.Sprintf("Control Change: %3d, value: %s (channel: %2d)", e[1], value, channel)
	case PitchWheelChange:
		val := (int(e[2])<<7 + int(e[1])) - PitchBendCenter
		return fmt.Sprintf("Pitch Bend: %4.0f%% (channel: %2d)", float64(val)/PitchBendCenter*100, channel)
	default:
		msg := "Oof, unexpected event format: "
		for _, v := range e {
			msg += fmt.Sprintf("0x%02x ", v)
		}
		return msg
	}
}

func NoteEvent(messageType, channel, note, velocity uint8) Event {
	return Event{messageType | channel, note, velocity}
}

func ControlChangeEvent(channel, function, value uint8) Event {
	return Event{ControlChange | channel, function, value}
}

// PitchBendEvent accepts an absolute 14-bit value, 0 to 16383, center 8192.
func PitchBendEvent(channel uint8, value int) Event {
	if value < 0 {
		value = 0
	}
	if value > PitchBendMax {
		value = PitchBendMax
	}
	msb := uint8((value >> 7) & 0b01111111)
	lsb := uint8(value & 0b01111111)
	return Event{PitchWheelChange | channel, lsb, msb}
}
