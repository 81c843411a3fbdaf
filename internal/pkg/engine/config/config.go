// Package config loads user-editable scale sets for the engine.
// Scales live in small yaml files, factory defaults first, user files
// override factory entries with the same name.
package config

import (
	"fmt"

	"github.com/tiltmidi/tiltmidi/internal/pkg/engine"
	"github.com/tiltmidi/tiltmidi/internal/pkg/logger"
	"gopkg.in/yaml.v3"
)

var log = logger.GetLogger()

type yamlScale struct {
	Name    string `yaml:"name"`
	Offsets []int  `yaml:"offsets"`
}

type yamlScaleFile struct {
	Scales []yamlScale `yaml:"scales"`
}

// ParseData parses one yaml scale file into validated engine scales,
// preserving file order.
func ParseData(data []byte) ([]engine.Scale, error) {
	var file yamlScaleFile
	err := yaml.Unmarshal(data, &file)
	if err != nil {
		return nil, fmt.Errorf("cannot parse scale file: %w", err)
	}

	if len(file.Scales) == 0 {
		return nil, fmt.Errorf("scale file holds no scales")
	}

	var scales []engine.Scale
	for _, raw := range file.Scales {
		scale := engine.Scale{Name: raw.Name}
		if len(raw.Offsets) != engine.ScaleLength {
			return nil, fmt.Errorf("scale \"%s\": expected %d offsets, got %d", raw.Name, engine.ScaleLength, len(raw.Offsets))
		}
		for i, offset := range raw.Offsets {
			if offset < 0 || offset > 255 {
				return nil, fmt.Errorf("scale \"%s\": offset %d does not fit a midi interval", raw.Name, offset)
			}
			scale.Offsets[i] = uint8(offset)
		}
		if err := scale.Validate(); err != nil {
			return nil, err
		}
		scales = append(scales, scale)
	}
	return scales, nil
}
