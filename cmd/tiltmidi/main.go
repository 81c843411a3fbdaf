package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/tiltmidi/tiltmidi/internal/pkg/engine"
	engineconfig "github.com/tiltmidi/tiltmidi/internal/pkg/engine/config"
	"github.com/tiltmidi/tiltmidi/internal/pkg/input"
	"github.com/tiltmidi/tiltmidi/internal/pkg/logger"
	"github.com/tiltmidi/tiltmidi/internal/pkg/midi"
	"github.com/tiltmidi/tiltmidi/internal/pkg/midi/driver"
	"github.com/tiltmidi/tiltmidi/internal/pkg/midi/driver/rtmidi"
	"github.com/tiltmidi/tiltmidi/internal/pkg/tiltmidi"
)

var log = logger.GetLogger()

var (
	device = flag.String("device", "", "serial device path, overrides config")
	port   = flag.String("port", "", "midi output port, overrides config")
	debug  = flag.Bool("debug", false, "print debug log entries")
	silent = flag.Bool("silent", false, "skip per-event log entries for maximum performance")
)

var midiEventsEmitted uint // counter for the exit summary

func processMidiEvents(wg *sync.WaitGroup, out driver.MIDIOut, events <-chan midi.Event) {
	defer wg.Done()
	for ev := range events {
		err := out.Send(ev)
		if err != nil {
			log.Info(fmt.Sprintf("failed to write midi event: %v", err), logger.Warning)
			continue
		}
		midiEventsEmitted += 1
	}
	log.Info("processing midi events stopped", logger.Debug)
}

func consumeLogs(showDebug bool) {
	for raw := range logger.Messages {
		var entry struct {
			Msg   string `json:"msg"`
			Level int    `json:"level"`
		}
		if err := json.Unmarshal(raw, &entry); err != nil {
			fmt.Fprintln(os.Stderr, string(raw))
			continue
		}
		if entry.Level == logger.DebugLvl && !showDebug {
			continue
		}
		switch entry.Level {
		case logger.ErrorLvl:
			fmt.Fprintf(os.Stderr, "[ERROR] %s\n", entry.Msg)
		case logger.WarningLvl:
			fmt.Fprintf(os.Stderr, "[WARN ] %s\n", entry.Msg)
		default:
			fmt.Fprintln(os.Stderr, entry.Msg)
		}
	}
}

func handleSigs(sigs <-chan os.Signal, quit chan<- struct{}) {
	var counter int
	for sig := range sigs {
		if counter > 0 {
			fmt.Println("Dirty exit")
			os.Exit(1)
		}
		log.Info(fmt.Sprintf("signal received: %v", sig), logger.Debug)
		close(quit)
		counter++
	}
}

// readControlKeys is the session's control surface: single-byte commands on
// stdin, dispatched as engine actions by the control loop.
func readControlKeys(ctx context.Context, r io.Reader, actions chan<- engine.Action) {
	reader := bufio.NewReader(r)
	for {
		b, err := reader.ReadByte()
		if err != nil {
			return
		}
		var action engine.Action
		switch b {
		case '+':
			action = engine.OctaveUp
		case '-':
			action = engine.OctaveDown
		case 's':
			action = engine.NextScale
		case 'g':
			action = engine.ToggleGuide
		case 'q':
			action = engine.PowerOff
		default:
			continue
		}
		select {
		case actions <- action:
		case <-ctx.Done():
			return
		}
	}
}

func printGuide(eng *engine.Engine) {
	if !eng.State().GuideVisible {
		return
	}
	fmt.Println("keys: [+] octave up  [-] octave down  [s] next scale  [g] guide  [q] power off")
	fmt.Println(eng.Status())
}

func reloadScales(eng *engine.Engine) {
	scales, err := engineconfig.LoadScaleSet(engineconfig.FactoryScales, engineconfig.UserScales)
	if err != nil {
		log.Info(fmt.Sprintf("scale reload failed, keeping previous set: %v", err), logger.Warning)
		return
	}
	if err := eng.ReloadScales(scales); err != nil {
		log.Info(fmt.Sprintf("scale reload rejected: %v", err), logger.Warning)
	}
}

func main() {
	flag.Parse()

	go consumeLogs(*debug)

	wg := sync.WaitGroup{}

	if err := createConfigDirectoryIfNeeded(); err != nil {
		fmt.Fprintf(os.Stderr, "config directory setup failed: %v\n", err)
		os.Exit(1)
	}

	cfg := tiltmidi.LoadConfig(filepath.Join(configDir, "tiltmidi.config"))
	if *device != "" {
		cfg.TiltMIDI.SerialDevice = *device
	}
	if *port != "" {
		cfg.MIDI.Port = *port
	}

	scales, err := engineconfig.LoadScaleSet(engineconfig.FactoryScales, engineconfig.UserScales)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot load scales: %v\n", err)
		os.Exit(1)
	}
	cfg.Mapping.Scales = scales

	out, err := rtmidi.NewOut(cfg.MIDI.Port)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot open midi output: %v\n", err)
		os.Exit(1)
	}
	if err = out.Open(); err != nil {
		fmt.Fprintf(os.Stderr, "cannot open midi output: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()
	log.Info(fmt.Sprintf("midi output: %s", out.Name()), logger.Info)

	events := make(chan midi.Event, 64)
	eng, err := engine.New(cfg.Mapping, events, *silent)
	if err != nil {
		fmt.Fprintf(os.Stderr, "engine configuration rejected: %v\n", err)
		os.Exit(1)
	}

	transport, err := input.Open(cfg.TiltMIDI.SerialDevice)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer transport.Close()
	log.Info(fmt.Sprintf("sensor transport: %s", cfg.TiltMIDI.SerialDevice), logger.Info)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	lines := input.Lines(ctx, transport)
	reload := engineconfig.DetectScaleConfigChanges(ctx, engineconfig.FactoryScales, engineconfig.UserScales)

	actions := make(chan engine.Action, 8)
	go readControlKeys(ctx, os.Stdin, actions)

	quit := make(chan struct{})
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go handleSigs(sigs, quit)

	wg.Add(1)
	go processMidiEvents(&wg, out, events)

	// the control loop: single goroutine owns the engine, events for every
	// update leave in strict causal order
	running := true
	for running {
		select {
		case <-quit:
			eng.HandleAction(engine.PowerOff)
			running = false
		case _, ok := <-reload:
			if !ok { // watcher gone, stop listening for config changes
				reload = nil
				break
			}
			reloadScales(eng)
		case action := <-actions:
			eng.HandleAction(action)
			printGuide(eng)
			if action == engine.PowerOff {
				running = false
			}
		case line, ok := <-lines:
			if !ok {
				log.Info(fmt.Sprintf("%v, ending session", input.ErrTransportUnavailable), logger.Warning)
				eng.HandleAction(engine.PowerOff)
				running = false
				break
			}
			if err := eng.ProcessLine(line); err != nil {
				log.Info(fmt.Sprintf("sample dropped: %v", err), logger.Samples)
			}
		case <-time.After(cfg.TiltMIDI.ReadTimeout):
			// no data this tick
		}
	}

	cancel()
	close(events)
	wg.Wait()
	signal.Stop(sigs)

	log.Info(fmt.Sprintf("emitted %d midi events in total", midiEventsEmitted), logger.Info)
	for len(logger.Messages) > 0 { // let the log consumer drain what is left
		time.Sleep(time.Millisecond)
	}
}
