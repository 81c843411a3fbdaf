// Package tiltmidi holds application-level configuration, the knobs that
// sit above the engine: transport, midi port and mapping defaults.
package tiltmidi

import (
	"os"
	"strings"
	"time"

	"github.com/go-ini/ini"
	"github.com/tiltmidi/tiltmidi/internal/pkg/engine"
)

type TiltMIDI struct {
	SerialDevice  string
	ReadTimeout   time.Duration
	NoisePrefixes []string
}

type MIDI struct {
	Port    string
	Channel uint8
}

type Config struct {
	TiltMIDI TiltMIDI
	MIDI     MIDI
	Mapping  engine.Config
}

// LoadConfig reads the application ini file. Startup-only, a broken file is
// not worth recovering from.
func LoadConfig(path string) Config {
	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	cfg, err := ini.Load(data)
	if err != nil {
		panic(err)
	}

	var c Config

	// [tiltmidi]
	main, _ := cfg.GetSection("tiltmidi")
	serialDevice, _ := main.GetKey("serial_device")
	c.TiltMIDI.SerialDevice = serialDevice.Value()

	readTimeout, _ := main.GetKey("read_timeout")
	i, err := readTimeout.Int()
	if err != nil {
		panic(err)
	}
	c.TiltMIDI.ReadTimeout = time.Millisecond * time.Duration(i)

	noisePrefixes, _ := main.GetKey("noise_prefixes")
	for _, prefix := range strings.Split(noisePrefixes.Value(), ";") {
		if prefix = strings.TrimSpace(prefix); prefix != "" {
			c.TiltMIDI.NoisePrefixes = append(c.TiltMIDI.NoisePrefixes, prefix)
		}
	}

	// [midi]
	midiSection, _ := cfg.GetSection("midi")
	port, _ := midiSection.GetKey("port")
	c.MIDI.Port = port.Value()

	channel, _ := midiSection.GetKey("channel")
	i, err = channel.Int()
	if err != nil {
		panic(err)
	}
	if i < 1 || i > 16 {
		panic("midi channel out of range 1-16")
	}
	c.MIDI.Channel = uint8(i - 1)

	// [mapping]
	mapping, _ := cfg.GetSection("mapping")
	mode, _ := mapping.GetKey("mode")
	c.Mapping.Mode = engine.Mode(mode.Value())

	deadZone, _ := mapping.GetKey("dead_zone")
	f, err := deadZone.Float64()
	if err != nil {
		panic(err)
	}
	c.Mapping.DeadZone = f

	maxRange, _ := mapping.GetKey("max_range")
	f, err = maxRange.Float64()
	if err != nil {
		panic(err)
	}
	c.Mapping.MaxRange = f

	hysteresis, _ := mapping.GetKey("velocity_hysteresis")
	i, err = hysteresis.Int()
	if err != nil {
		panic(err)
	}
	c.Mapping.VelocityHysteresis = uint8(i)

	notePolicy, _ := mapping.GetKey("note_policy")
	c.Mapping.NotePolicy = engine.NotePolicy(notePolicy.Value())

	baseOctave, _ := mapping.GetKey("base_octave")
	i, err = baseOctave.Int()
	if err != nil {
		panic(err)
	}
	c.Mapping.BaseOctave = i

	fields, _ := mapping.GetKey("fields")
	i, err = fields.Int()
	if err != nil {
		panic(err)
	}
	c.Mapping.Fields = i

	c.Mapping.Channel = c.MIDI.Channel
	c.Mapping.NoisePrefixes = c.TiltMIDI.NoisePrefixes

	return c
}
