package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tiltmidi/tiltmidi/internal/pkg/engine"
	"github.com/tiltmidi/tiltmidi/internal/pkg/logger"
)

const (
	FactoryScales = "tiltmidi-config/factory/scales"
	UserScales    = "tiltmidi-config/user/scales"
)

// LoadScaleSet reads every yaml file under the factory and user scale
// directories. Factory files establish the session cycling order, a user
// scale with a factory name replaces that entry in place, new user scales
// are appended. A missing user directory is fine, a missing factory
// directory falls back to the built-in set.
func LoadScaleSet(factoryDir, userDir string) ([]engine.Scale, error) {
	factory, err := loadDir(factoryDir)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		log.Info(fmt.Sprintf("no factory scales under \"%s\", using built-ins", factoryDir), logger.Warning)
		factory = engine.DefaultScales()
	}

	user, err := loadDir(userDir)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	byName := make(map[string]int, len(factory))
	for i, s := range factory {
		byName[s.Name] = i
	}

	scales := factory
	for _, s := range user {
		if i, ok := byName[s.Name]; ok {
			scales[i] = s
			continue
		}
		byName[s.Name] = len(scales)
		scales = append(scales, s)
	}

	if len(scales) == 0 {
		return nil, fmt.Errorf("no scales found under \"%s\" and \"%s\"", factoryDir, userDir)
	}
	return scales, nil
}

func loadDir(dir string) ([]engine.Scale, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := strings.ToLower(entry.Name())
		if !strings.HasSuffix(name, ".yml") && !strings.HasSuffix(name, ".yaml") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	var scales []engine.Scale
	for _, name := range names {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("cannot read scale file \"%s\": %w", path, err)
		}
		parsed, err := ParseData(data)
		if err != nil {
			return nil, fmt.Errorf("\"%s\": %w", path, err)
		}
		scales = append(scales, parsed...)
	}
	return scales, nil
}
