package engine

import (
	"fmt"

	"github.com/tiltmidi/tiltmidi/internal/pkg/logger"
	"github.com/tiltmidi/tiltmidi/internal/pkg/midi"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

// Config carries every tunable the engine recognizes. Mode, NotePolicy,
// MaxRange, Scales and Fields fall back to defaults when left zero;
// a zero DeadZone or BaseOctave is a valid setting and kept as is.
type Config struct {
	Mode    Mode
	Channel uint8

	DeadZone float64
	MaxRange float64

	VelocityHysteresis uint8
	NotePolicy         NotePolicy

	BaseOctave int
	Scales     []Scale

	NoisePrefixes []string
	// Fields is the required numeric field count per line, 1 or 2.
	// Single-field cents sessions act as pure pitch-bend controllers.
	Fields int
}

const (
	defaultMaxRange   = 32767
	defaultBaseOctave = 4
)

// Engine is the mapping and gating core: one instance per session, fed one
// cleaned line at a time from a single goroutine, emitting midi events on
// its output channel.
type Engine struct {
	noLogs  bool // skips most log entries for maximum throughput
	cleaner *Cleaner
	quant   quantizer
	gate    gate
	session session

	outputEvents chan<- midi.Event

	actions map[Action]func(*Engine)
}

func New(cfg Config, outputEvents chan<- midi.Event, noLogs bool) (*Engine, error) {
	if cfg.Mode == "" {
		cfg.Mode = ModeAngular
	}
	if !SupportedModes[cfg.Mode] {
		return nil, fmt.Errorf("unsupported mode: \"%s\"", cfg.Mode)
	}
	if cfg.NotePolicy == "" {
		cfg.NotePolicy = PolicyRetrigger
	}
	if !SupportedNotePolicies[cfg.NotePolicy] {
		return nil, fmt.Errorf("unsupported note policy: \"%s\"", cfg.NotePolicy)
	}
	if cfg.Channel > 15 {
		return nil, fmt.Errorf("midi channel out of range 0-15: %d", cfg.Channel)
	}
	if cfg.MaxRange == 0 {
		cfg.MaxRange = defaultMaxRange
	}
	if cfg.MaxRange <= cfg.DeadZone {
		return nil, fmt.Errorf("max range (%f) must exceed dead zone (%f)", cfg.MaxRange, cfg.DeadZone)
	}
	if cfg.BaseOctave < minOctave || cfg.BaseOctave > maxOctave {
		cfg.BaseOctave = defaultBaseOctave
	}
	if len(cfg.Scales) == 0 {
		cfg.Scales = DefaultScales()
	}
	for _, s := range cfg.Scales {
		if err := s.Validate(); err != nil {
			return nil, err
		}
	}
	if cfg.Fields == 0 {
		cfg.Fields = 2
	}

	intensity := intensityMapper{deadZone: cfg.DeadZone, maxRange: cfg.MaxRange}

	actions := map[Action]func(*Engine){
		OctaveUp:    (*Engine).OctaveUp,
		OctaveDown:  (*Engine).OctaveDown,
		NextScale:   (*Engine).NextScale,
		ToggleGuide: (*Engine).ToggleGuide,
		PowerOff:    (*Engine).PowerOff,
	}

	return &Engine{
		noLogs:  noLogs,
		cleaner: NewCleaner(cfg.NoisePrefixes, cfg.Fields),
		quant:   newQuantizer(cfg.Mode, intensity),
		gate: gate{
			policy:     cfg.NotePolicy,
			hysteresis: cfg.VelocityHysteresis,
			channel:    cfg.Channel,
		},
		session: session{
			octave:  cfg.BaseOctave,
			scales:  cfg.Scales,
			powered: true,
		},
		outputEvents: outputEvents,
		actions:      actions,
	}, nil
}

// ProcessLine runs one full step: clean, quantize, gate, emit. A malformed
// line is reported through the returned error and dropped, the session keeps
// going. While powered off every line is silently ignored.
func (e *Engine) ProcessLine(line string) error {
	if !e.session.powered {
		return nil
	}

	sample, err := e.cleaner.Clean(line)
	if err != nil {
		return err
	}

	candidate := e.quant.quantize(sample, &e.session)
	for _, event := range e.gate.feed(candidate) {
		e.outputEvents <- event
		if !e.noLogs {
			log.Info(event.String(), logger.Events)
		}
	}
	return nil
}

// HandleAction dispatches a discrete control action. Unknown actions are
// reported and dropped.
func (e *Engine) HandleAction(action Action) {
	if !SupportedActions[action] {
		log.Info(fmt.Sprintf("unsupported action: \"%s\"", action), logger.Warning)
		return
	}
	e.actions[action](e)
}

func (e *Engine) OctaveUp() {
	if !e.session.powered {
		return
	}
	e.session.octaveUp()
	if !e.noLogs {
		log.Info(fmt.Sprintf("octave up (%d)", e.session.octave), logger.Action)
	}
}

func (e *Engine) OctaveDown() {
	if !e.session.powered {
		return
	}
	e.session.octaveDown()
	if !e.noLogs {
		log.Info(fmt.Sprintf("octave down (%d)", e.session.octave), logger.Action)
	}
}

func (e *Engine) NextScale() {
	if !e.session.powered {
		return
	}
	e.session.nextScale()
	if !e.noLogs {
		log.Info(fmt.Sprintf("scale change (%s)", e.session.scale().Name), logger.Action)
	}
}

func (e *Engine) ToggleGuide() {
	if !e.session.powered {
		return
	}
	e.session.toggleGuide()
	if !e.noLogs {
		log.Info(fmt.Sprintf("guide visible: %v", e.session.guide), logger.Action)
	}
}

// PowerOff releases whatever is sounding and disables all further
// processing. Terminal until the process restarts.
func (e *Engine) PowerOff() {
	if !e.session.powered {
		return
	}
	for _, event := range e.gate.silence() {
		e.outputEvents <- event
		if !e.noLogs {
			log.Info(event.String(), logger.Events)
		}
	}
	e.session.powered = false
	log.Info("session powered off", logger.Action)
}

// ReloadScales swaps the configured scale set, keeping the session position
// when possible. Invalid sets are rejected as a whole.
func (e *Engine) ReloadScales(scales []Scale) error {
	if len(scales) == 0 {
		return fmt.Errorf("empty scale set")
	}
	for _, s := range scales {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	e.session.setScales(scales)
	if !e.noLogs {
		log.Info("scale set reloaded", logger.Info, zap.Int("scales", len(scales)))
	}
	return nil
}

// State is a point-in-time snapshot for status display.
type State struct {
	Octave       int
	Scale        string
	Powered      bool
	GuideVisible bool
	ActiveNote   int // -1 when silent
}

func (e *Engine) State() State {
	note := -1
	if e.gate.active {
		note = int(e.gate.note)
	}
	return State{
		Octave:       e.session.octave,
		Scale:        e.session.scale().Name,
		Powered:      e.session.powered,
		GuideVisible: e.session.guide,
		ActiveNote:   note,
	}
}

func (e *Engine) Status() string {
	state := e.State()
	active := "--"
	if state.ActiveNote >= 0 {
		active = fmt.Sprintf("%s%d", midi.NoteToPitch(uint8(state.ActiveNote)), midi.NoteToOctave(uint8(state.ActiveNote)))
	}
	return fmt.Sprintf(
		"octave: %d, scale: %-10s, note: %-4s, powered: %v",
		state.Octave, state.Scale, active, state.Powered,
	)
}
