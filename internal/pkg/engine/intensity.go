package engine

import (
	"math"
)

// intensityMapper turns a raw magnitude into a bounded midi velocity.
// Values under the dead zone are "no intentional input" and map to silence.
type intensityMapper struct {
	deadZone float64
	maxRange float64
}

// velocity rescales [deadZone, maxRange] linearly onto [0, 127], clamped at
// both ends. The second return value is false when the magnitude falls into
// the dead zone.
func (m intensityMapper) velocity(magnitude float64) (uint8, bool) {
	if magnitude < m.deadZone {
		return 0, false
	}
	span := m.maxRange - m.deadZone
	if span <= 0 {
		return 127, true
	}
	scaled := (magnitude - m.deadZone) / span * 127
	if scaled > 127 {
		scaled = 127
	}
	return uint8(scaled), true
}

// BendFromCents maps a cents remainder in [-50, +50] onto the 14-bit
// pitch-bend range: -50 -> 0, 0 -> 8192, +50 -> 16383. Values outside the
// half-semitone window are clamped.
func BendFromCents(cents float64) int {
	if cents < -50 {
		cents = -50
	}
	if cents > 50 {
		cents = 50
	}
	return int(math.Round((cents + 50) / 100 * 16383))
}
