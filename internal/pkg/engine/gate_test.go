package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tiltmidi/tiltmidi/internal/pkg/midi"
)

func TestGateSilentToSounding(t *testing.T) {
	g := gate{policy: PolicyRetrigger, hysteresis: 8, channel: 0}

	events := g.feed(Candidate{Silent: true})
	assert.Equal(t, 0, len(events))

	events = g.feed(Candidate{Note: 48, Velocity: 100})
	assert.Equal(t, []midi.Event{midi.NoteEvent(midi.NoteOn, 0, 48, 100)}, events)
}

func TestGateSoundingToSilent(t *testing.T) {
	g := gate{policy: PolicyRetrigger, hysteresis: 8, channel: 0}
	g.feed(Candidate{Note: 48, Velocity: 100})

	events := g.feed(Candidate{Silent: true})
	assert.Equal(t, []midi.Event{midi.NoteEvent(midi.NoteOff, 0, 48, 0)}, events)

	// already silent, nothing more to release
	events = g.feed(Candidate{Silent: true})
	assert.Equal(t, 0, len(events))
}

func TestGateNoteChange(t *testing.T) {
	g := gate{policy: PolicyRetrigger, hysteresis: 8, channel: 2}
	g.feed(Candidate{Note: 48, Velocity: 100})

	events := g.feed(Candidate{Note: 52, Velocity: 90})
	assert.Equal(t, []midi.Event{
		midi.NoteEvent(midi.NoteOff, 2, 48, 0),
		midi.NoteEvent(midi.NoteOn, 2, 52, 90),
	}, events)
}

func TestGateHysteresisSuppression(t *testing.T) {
	g := gate{policy: PolicyRetrigger, hysteresis: 8, channel: 0}
	g.feed(Candidate{Note: 48, Velocity: 100})

	// identical candidate is suppressed entirely
	events := g.feed(Candidate{Note: 48, Velocity: 100})
	assert.Equal(t, 0, len(events))

	// a delta at the threshold is still suppressed
	events = g.feed(Candidate{Note: 48, Velocity: 108})
	assert.Equal(t, 0, len(events))

	// beyond the threshold the note retriggers
	events = g.feed(Candidate{Note: 48, Velocity: 109})
	assert.Equal(t, []midi.Event{
		midi.NoteEvent(midi.NoteOff, 0, 48, 0),
		midi.NoteEvent(midi.NoteOn, 0, 48, 109),
	}, events)
}

func TestGateUpdatePolicy(t *testing.T) {
	g := gate{policy: PolicyUpdate, hysteresis: 8, channel: 0}
	g.feed(Candidate{Note: 48, Velocity: 100})

	events := g.feed(Candidate{Note: 48, Velocity: 120})
	assert.Equal(t, []midi.Event{midi.NoteEvent(midi.NoteOn, 0, 48, 120)}, events)
}

func TestGateBendIsNotGated(t *testing.T) {
	g := gate{policy: PolicyRetrigger, hysteresis: 8, channel: 0}

	// silent candidate still carries its bend out
	events := g.feed(Candidate{Silent: true, Bend: 12000, HasBend: true})
	assert.Equal(t, []midi.Event{midi.PitchBendEvent(0, 12000)}, events)

	// suppressed note transition does not suppress the bend
	g.feed(Candidate{Note: 60, Velocity: 90, Bend: 8192, HasBend: true})
	events = g.feed(Candidate{Note: 60, Velocity: 90, Bend: 9000, HasBend: true})
	assert.Equal(t, []midi.Event{midi.PitchBendEvent(0, 9000)}, events)
}

func TestGateForcedSilence(t *testing.T) {
	g := gate{policy: PolicyRetrigger, hysteresis: 8, channel: 0}
	g.feed(Candidate{Note: 60, Velocity: 90})

	events := g.silence()
	assert.Equal(t, []midi.Event{midi.NoteEvent(midi.NoteOff, 0, 60, 0)}, events)

	// exactly once
	assert.Equal(t, 0, len(g.silence()))
}
