package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testSession(scale Scale, octave int) *session {
	return &session{octave: octave, scales: []Scale{scale}, powered: true}
}

func TestAngularSectors(t *testing.T) {
	q := angularQuantizer{intensity: intensityMapper{deadZone: 1000, maxRange: 32767}}
	sess := testSession(ScaleMajor, 4)

	// one sample per sector, safely inside the half-open [k*45, (k+1)*45) bounds
	for sector := 0; sector < ScaleLength; sector++ {
		angle := (float64(sector)*45 + 22.5) * math.Pi / 180
		sample := Sample{Primary: 2000 * math.Cos(angle), Secondary: 2000 * math.Sin(angle)}
		c := q.quantize(sample, sess)
		assert.False(t, c.Silent)
		assert.Equal(t, uint8(4*12+ScaleMajor.Offsets[sector]), c.Note, "sector %d", sector)
	}
}

func TestAngularSectorBoundaries(t *testing.T) {
	q := angularQuantizer{intensity: intensityMapper{deadZone: 1000, maxRange: 32767}}
	sess := testSession(ScaleMajor, 4)

	// angle 0 is sector 0
	c := q.quantize(Sample{Primary: 2000, Secondary: 0}, sess)
	assert.Equal(t, uint8(48), c.Note)

	// angle 359.9 is still sector 7
	angle := 359.9 * math.Pi / 180
	c = q.quantize(Sample{Primary: 2000 * math.Cos(angle), Secondary: 2000 * math.Sin(angle)}, sess)
	assert.Equal(t, uint8(4*12+ScaleMajor.Offsets[7]), c.Note)

	// just past 45 degrees belongs to sector 1
	angle = 46 * math.Pi / 180
	c = q.quantize(Sample{Primary: 2000 * math.Cos(angle), Secondary: 2000 * math.Sin(angle)}, sess)
	assert.Equal(t, uint8(4*12+ScaleMajor.Offsets[1]), c.Note)
}

func TestAngularNoteRange(t *testing.T) {
	q := angularQuantizer{intensity: intensityMapper{deadZone: 1000, maxRange: 32767}}

	for _, scale := range DefaultScales() {
		sess := testSession(scale, 4)
		for deg := 0; deg < 360; deg += 5 {
			angle := float64(deg) * math.Pi / 180
			c := q.quantize(Sample{Primary: 5000 * math.Cos(angle), Secondary: 5000 * math.Sin(angle)}, sess)
			assert.False(t, c.Silent)
			assert.GreaterOrEqual(t, int(c.Note), 4*12)
			assert.LessOrEqual(t, int(c.Note), 4*12+16)
		}
	}
}

func TestAngularDeadZone(t *testing.T) {
	q := angularQuantizer{intensity: intensityMapper{deadZone: 1000, maxRange: 32767}}
	sess := testSession(ScaleMajor, 4)

	// magnitude sqrt(50^2+50^2) ~= 70.7, well under the dead zone
	c := q.quantize(Sample{Primary: 50, Secondary: 50}, sess)
	assert.True(t, c.Silent)
	assert.False(t, c.HasBend)
}

func TestAngularTopOfRange(t *testing.T) {
	q := angularQuantizer{intensity: intensityMapper{deadZone: 0.5, maxRange: 32767}}
	sess := testSession(ScalePentatonic, 8)

	// highest reachable note: octave 8, pentatonic sector 7 -> 8*12+16 = 112
	angle := (7*45 + 22.5) * math.Pi / 180
	c := q.quantize(Sample{Primary: 2000 * math.Cos(angle), Secondary: 2000 * math.Sin(angle)}, sess)
	assert.Equal(t, uint8(112), c.Note)
}

func TestDirectNoteClamp(t *testing.T) {
	d := directQuantizer{intensity: intensityMapper{deadZone: 0, maxRange: 127}}
	sess := testSession(ScaleMajor, 4)

	c := d.quantize(Sample{Primary: 500, Secondary: 100}, sess)
	assert.Equal(t, uint8(127), c.Note)

	c = d.quantize(Sample{Primary: -3, Secondary: 100}, sess)
	assert.Equal(t, uint8(0), c.Note)
}

func TestCentsQuantizer(t *testing.T) {
	q := centsQuantizer{intensity: intensityMapper{deadZone: 10, maxRange: 127}}
	sess := testSession(ScaleMajor, 4)

	for _, tc := range []struct {
		name   string
		cents  float64
		volume float64
		note   uint8
		bend   int
		silent bool
	}{
		{name: "zero cents", cents: 0, volume: 127, note: 60, bend: 8192},
		{name: "one semitone up", cents: 100, volume: 127, note: 62, bend: 8192},
		{name: "remainder bends sharp", cents: 125, volume: 127, note: 62, bend: BendFromCents(25)},
		{name: "remainder clamps at half semitone", cents: 180, volume: 127, note: 62, bend: 16383},
		{name: "negative wraps the scale", cents: -100, volume: 127, note: 60 + 12, bend: 8192},
		{name: "clamped to +1200", cents: 5000, volume: 127, note: 60 + 7, bend: 8192},
		{name: "quiet input is silent but still bends", cents: 25, volume: 0, bend: BendFromCents(25), silent: true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			c := q.quantize(Sample{Primary: tc.cents, Secondary: tc.volume}, sess)
			assert.Equal(t, tc.silent, c.Silent)
			assert.True(t, c.HasBend)
			assert.Equal(t, tc.bend, c.Bend)
			if !tc.silent {
				assert.Equal(t, tc.note, c.Note)
			}
		})
	}
}

func TestDirectQuantizer(t *testing.T) {
	q := directQuantizer{intensity: intensityMapper{deadZone: 1, maxRange: 128}}
	sess := testSession(ScaleMajor, 4)

	c := q.quantize(Sample{Primary: 60, Secondary: 128}, sess)
	assert.False(t, c.Silent)
	assert.Equal(t, uint8(60), c.Note)
	assert.Equal(t, uint8(127), c.Velocity)

	c = q.quantize(Sample{Primary: 60, Secondary: 0.5}, sess)
	assert.True(t, c.Silent)
}
