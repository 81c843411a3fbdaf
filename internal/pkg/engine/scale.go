package engine

import (
	"fmt"
)

// ScaleLength is the fixed number of semitone offsets in every scale,
// one per angular sector.
const ScaleLength = 8

// Scale is an ordered set of semitone offsets from a root pitch. Offsets
// start at zero and never decrease; upper entries may reach into the next
// octave (pentatonic and blues do).
type Scale struct {
	Name    string
	Offsets [ScaleLength]uint8
}

func (s Scale) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("scale without a name")
	}
	if s.Offsets[0] != 0 {
		return fmt.Errorf("scale \"%s\": first offset must be 0, got %d", s.Name, s.Offsets[0])
	}
	for i := 1; i < ScaleLength; i++ {
		if s.Offsets[i] < s.Offsets[i-1] {
			return fmt.Errorf("scale \"%s\": offsets must be non-decreasing (%d < %d at index %d)",
				s.Name, s.Offsets[i], s.Offsets[i-1], i)
		}
	}
	if max := s.Offsets[ScaleLength-1]; max > 16 {
		return fmt.Errorf("scale \"%s\": offset %d out of range 0-16", s.Name, max)
	}
	return nil
}

var (
	ScaleMajor      = Scale{Name: "major", Offsets: [ScaleLength]uint8{0, 2, 4, 5, 7, 9, 11, 12}}
	ScaleMinor      = Scale{Name: "minor", Offsets: [ScaleLength]uint8{0, 2, 3, 5, 7, 8, 10, 12}}
	ScalePentatonic = Scale{Name: "pentatonic", Offsets: [ScaleLength]uint8{0, 2, 4, 7, 9, 12, 14, 16}}
	ScaleBlues      = Scale{Name: "blues", Offsets: [ScaleLength]uint8{0, 3, 5, 6, 7, 10, 12, 15}}
)

// DefaultScales returns the built-in scale set in its session cycling order.
func DefaultScales() []Scale {
	return []Scale{ScaleMajor, ScaleMinor, ScalePentatonic, ScaleBlues}
}
