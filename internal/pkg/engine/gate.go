package engine

import (
	"github.com/tiltmidi/tiltmidi/internal/pkg/midi"
)

// NotePolicy decides what happens when a sounding note receives a new
// velocity that clears the hysteresis threshold.
type NotePolicy string

const (
	// PolicyRetrigger releases the note and strikes it again.
	PolicyRetrigger NotePolicy = "retrigger"
	// PolicyUpdate restates NoteOn with the new velocity, no release.
	PolicyUpdate NotePolicy = "update"
)

var SupportedNotePolicies = map[NotePolicy]bool{
	PolicyRetrigger: true,
	PolicyUpdate:    true,
}

// gate is the note state machine. It remembers what the sink currently
// believes is sounding and suppresses redundant transitions so sensor noise
// does not turn into event chatter.
type gate struct {
	policy     NotePolicy
	hysteresis uint8
	channel    uint8

	active   bool
	note     uint8
	velocity uint8
}

// feed compares a candidate against the held state and returns the events
// the sink must receive, in causal order. Pitch-bend is never gated, it is
// emitted whenever the candidate carries one.
func (g *gate) feed(c Candidate) []midi.Event {
	var events []midi.Event

	if c.HasBend {
		events = append(events, midi.PitchBendEvent(g.channel, c.Bend))
	}

	switch {
	case c.Silent && !g.active:
		// stays silent, nothing to do

	case c.Silent && g.active:
		events = append(events, midi.NoteEvent(midi.NoteOff, g.channel, g.note, 0))
		g.active = false

	case !g.active:
		events = append(events, midi.NoteEvent(midi.NoteOn, g.channel, c.Note, c.Velocity))
		g.active = true
		g.note = c.Note
		g.velocity = c.Velocity

	case c.Note != g.note:
		events = append(events,
			midi.NoteEvent(midi.NoteOff, g.channel, g.note, 0),
			midi.NoteEvent(midi.NoteOn, g.channel, c.Note, c.Velocity),
		)
		g.note = c.Note
		g.velocity = c.Velocity

	default: // same note, maybe a new velocity
		delta := int(c.Velocity) - int(g.velocity)
		if delta < 0 {
			delta = -delta
		}
		if delta <= int(g.hysteresis) {
			break
		}
		if g.policy == PolicyRetrigger {
			events = append(events, midi.NoteEvent(midi.NoteOff, g.channel, g.note, 0))
		}
		events = append(events, midi.NoteEvent(midi.NoteOn, g.channel, g.note, c.Velocity))
		g.velocity = c.Velocity
	}

	return events
}

// silence forces the Sounding -> Silent transition, dead zone or not.
// Used on power-off and shutdown so the sink never keeps a stuck note.
func (g *gate) silence() []midi.Event {
	if !g.active {
		return nil
	}
	g.active = false
	return []midi.Event{midi.NoteEvent(midi.NoteOff, g.channel, g.note, 0)}
}
