package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVelocityDeadZone(t *testing.T) {
	m := intensityMapper{deadZone: 1000, maxRange: 32767}

	for _, tc := range []struct {
		name      string
		magnitude float64
		velocity  uint8
		audible   bool
	}{
		{name: "zero", magnitude: 0, velocity: 0, audible: false},
		{name: "just below dead zone", magnitude: 999.9, velocity: 0, audible: false},
		{name: "at dead zone", magnitude: 1000, velocity: 0, audible: true},
		{name: "halfway", magnitude: (1000 + 32767) / 2.0, velocity: 63, audible: true},
		{name: "full range", magnitude: 32767, velocity: 127, audible: true},
		{name: "beyond range clamps", magnitude: 100000, velocity: 127, audible: true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			v, ok := m.velocity(tc.magnitude)
			assert.Equal(t, tc.audible, ok)
			assert.Equal(t, tc.velocity, v)
		})
	}
}

func TestBendFromCents(t *testing.T) {
	for _, tc := range []struct {
		name     string
		cents    float64
		expected int
	}{
		{name: "center", cents: 0, expected: 8192},
		{name: "max", cents: 50, expected: 16383},
		{name: "min", cents: -50, expected: 0},
		{name: "quarter up", cents: 25, expected: 12287},
		{name: "clamped high", cents: 80, expected: 16383},
		{name: "clamped low", cents: -80, expected: 0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, BendFromCents(tc.cents))
		})
	}
}
