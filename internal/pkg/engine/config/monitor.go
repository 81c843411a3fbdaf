package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/tiltmidi/tiltmidi/internal/pkg/logger"
)

// DetectScaleConfigChanges watches the scale directories and signals when a
// yaml file is written, so the control loop can reload the scale set.
func DetectScaleConfigChanges(ctx context.Context, dirs ...string) <-chan bool {
	var change = make(chan bool)

	go func() {
		defer close(change)
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return
		}

		go func() {
			<-ctx.Done()
			err := watcher.Close()
			if err != nil {
				log.Info(fmt.Sprintf("closing watcher failed: %v", err), logger.Debug)
			}
		}()

		for _, path := range dirs {
			err = watcher.Add(path)
			if err != nil {
				log.Info(fmt.Sprintf("cannot watch \"%s\": %v", path, err), logger.Debug)
			}
		}

		for event := range watcher.Events {
			if event.Op != fsnotify.Write {
				continue
			}

			name := strings.ToLower(event.Name)
			if strings.HasSuffix(name, "yml") || strings.HasSuffix(name, "yaml") {
				log.Info(fmt.Sprintf("scale config change detected: %s", event.Name), logger.Info)
				change <- true
			}
		}
	}()

	return change
}
