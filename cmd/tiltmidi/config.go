package main

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/tiltmidi/tiltmidi/internal/pkg/logger"
)

//go:embed tiltmidi-config/tiltmidi.config
//go:embed tiltmidi-config/factory/scales/*
var templateConfig embed.FS

const configDir = "tiltmidi-config"

// createConfigDirectoryIfNeeded materializes the embedded config tree next
// to the binary on first run. Factory scale files are refreshed on every
// start, tiltmidi.config and everything under user/ stays untouched.
func createConfigDirectoryIfNeeded() error {
	err := fs.WalkDir(templateConfig, configDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if mkErr := os.MkdirAll(path, 0o777); mkErr != nil {
				return fmt.Errorf("cannot create \"%s\" directory: %w", path, mkErr)
			}
			return nil
		}

		_, statErr := os.Stat(path)
		exists := statErr == nil
		if statErr != nil && !errors.Is(statErr, os.ErrNotExist) {
			return fmt.Errorf("cannot stat \"%s\": %w", path, statErr)
		}

		factoryOwned := strings.Contains(path, string(os.PathSeparator)+"factory"+string(os.PathSeparator))
		if exists && !factoryOwned {
			return nil
		}

		data, err := fs.ReadFile(templateConfig, path)
		if err != nil {
			return fmt.Errorf("cannot read \"%s\" template file: %w", path, err)
		}

		if err := os.WriteFile(path, data, 0o666); err != nil {
			return fmt.Errorf("cannot write \"%s\" file: %w", path, err)
		}

		if !exists {
			log.Info(fmt.Sprintf("Created \"%s\" file", path), logger.Debug)
		}
		return nil
	})
	if err != nil {
		return err
	}

	// embed cannot carry empty directories
	return os.MkdirAll(filepath.Join(configDir, "user", "scales"), 0o777)
}
