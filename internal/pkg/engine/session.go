package engine

// Action is a discrete control operation invoked from the outside,
// buttons or keys, never from the data path.
type Action string

const (
	OctaveUp    Action = "octave_up"
	OctaveDown  Action = "octave_down"
	NextScale   Action = "next_scale"
	ToggleGuide Action = "toggle_guide"
	PowerOff    Action = "power_off"
)

var SupportedActions = map[Action]bool{
	OctaveUp:    true,
	OctaveDown:  true,
	NextScale:   true,
	ToggleGuide: true,
	PowerOff:    true,
}

const (
	minOctave = 0
	maxOctave = 8
)

// session holds the mutable per-session parameters. It is owned by a single
// Engine and mutated only through control actions.
type session struct {
	octave   int
	scaleIdx int
	scales   []Scale
	powered  bool
	guide    bool
}

func (s *session) scale() Scale {
	return s.scales[s.scaleIdx]
}

func (s *session) octaveUp() {
	if s.octave < maxOctave {
		s.octave++
	}
}

func (s *session) octaveDown() {
	if s.octave > minOctave {
		s.octave--
	}
}

func (s *session) nextScale() {
	s.scaleIdx = (s.scaleIdx + 1) % len(s.scales)
}

func (s *session) toggleGuide() {
	s.guide = !s.guide
}

// setScales swaps the scale set in place, keeping the current position when
// it is still valid. Used by config hot-reload.
func (s *session) setScales(scales []Scale) {
	s.scales = scales
	if s.scaleIdx >= len(scales) {
		s.scaleIdx = 0
	}
}
