package engine

import (
	"math"
)

// Mode selects how a cleaned sample is interpreted.
type Mode string

const (
	// ModeAngular treats the sample as a 2D vector, its direction picks a
	// scale degree and its magnitude drives velocity.
	ModeAngular Mode = "angular"
	// ModeCents treats the primary field as a pitch offset in cents around
	// the reference pitch, the secondary field drives velocity.
	ModeCents Mode = "cents"
	// ModeDirect passes the primary field through as a raw note number,
	// the secondary field drives velocity.
	ModeDirect Mode = "direct"
)

var SupportedModes = map[Mode]bool{
	ModeAngular: true,
	ModeCents:   true,
	ModeDirect:  true,
}

// referencePitch is middle C, the root of cents-mode quantization.
const referencePitch = 60

// Candidate is the musical interpretation of one sample, before gating.
type Candidate struct {
	Silent   bool
	Note     uint8
	Velocity uint8
	Bend     int
	HasBend  bool
}

// quantizer maps a cleaned sample onto a candidate using the current
// session parameters. One implementation per Mode.
type quantizer interface {
	quantize(s Sample, sess *session) Candidate
}

func newQuantizer(mode Mode, intensity intensityMapper) quantizer {
	switch mode {
	case ModeCents:
		return centsQuantizer{intensity: intensity}
	case ModeDirect:
		return directQuantizer{intensity: intensity}
	default:
		return angularQuantizer{intensity: intensity}
	}
}

// angularQuantizer divides the circle into eight equal half-open sectors
// [k*45, (k+1)*45) and picks the matching scale degree.
type angularQuantizer struct {
	intensity intensityMapper
}

func (q angularQuantizer) quantize(s Sample, sess *session) Candidate {
	magnitude := math.Hypot(s.Primary, s.Secondary)
	velocity, ok := q.intensity.velocity(magnitude)
	if !ok {
		return Candidate{Silent: true}
	}

	angle := math.Atan2(s.Secondary, s.Primary) * 180 / math.Pi
	if angle < 0 {
		angle += 360
	}
	sector := int(angle / 360 * ScaleLength)
	if sector > ScaleLength-1 { // atan2 may land exactly on 360 degrees
		sector = ScaleLength - 1
	}

	note := sess.octave*12 + int(sess.scale().Offsets[sector])
	return Candidate{Note: clampNote(note), Velocity: velocity}
}

// centsQuantizer resolves a pitch offset in cents to the nearest lower scale
// degree and keeps the sub-semitone remainder for pitch-bend.
type centsQuantizer struct {
	intensity intensityMapper
}

func (q centsQuantizer) quantize(s Sample, sess *session) Candidate {
	cents := s.Primary
	if cents < -1200 {
		cents = -1200
	}
	if cents > 1200 {
		cents = 1200
	}

	semitones := int(cents / 100) // trunc toward zero
	index := ((semitones % ScaleLength) + ScaleLength) % ScaleLength
	remainder := cents - float64(semitones)*100

	candidate := Candidate{
		Bend:    BendFromCents(remainder),
		HasBend: true,
	}

	velocity, ok := q.intensity.velocity(s.Secondary)
	if !ok {
		candidate.Silent = true
		return candidate
	}

	candidate.Note = clampNote(referencePitch + int(sess.scale().Offsets[index]))
	candidate.Velocity = velocity
	return candidate
}

// directQuantizer passes note numbers straight through, for sources that
// already speak midi quantities.
type directQuantizer struct {
	intensity intensityMapper
}

func (q directQuantizer) quantize(s Sample, sess *session) Candidate {
	velocity, ok := q.intensity.velocity(s.Secondary)
	if !ok {
		return Candidate{Silent: true}
	}
	return Candidate{Note: clampNote(int(math.Round(s.Primary))), Velocity: velocity}
}

func clampNote(note int) uint8 {
	if note < 0 {
		return 0
	}
	if note > 127 {
		return 127
	}
	return uint8(note)
}
