// Package rtmidi backs the driver.MIDIOut interface with a real system
// midi port through gomidi's rtmidi bindings.
package rtmidi

import (
	"fmt"
	"strings"

	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

type Out struct {
	drv     *rtmididrv.Driver
	port    drivers.Out
	virtual bool
}

// NewOut resolves an output port by case-insensitive substring match.
// When no hardware port matches, a virtual port with the given name is
// created instead so a soft synth can connect to us.
func NewOut(name string) (*Out, error) {
	drv, err := rtmididrv.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize midi driver: %w", err)
	}

	outs, err := drv.Outs()
	if err != nil {
		_ = drv.Close()
		return nil, fmt.Errorf("failed to list midi outputs: %w", err)
	}

	for _, port := range outs {
		if strings.Contains(strings.ToLower(port.String()), strings.ToLower(name)) {
			return &Out{drv: drv, port: port}, nil
		}
	}

	port, err := drv.OpenVirtualOut(name)
	if err != nil {
		_ = drv.Close()
		return nil, fmt.Errorf("failed to open virtual midi output: %w", err)
	}
	return &Out{drv: drv, port: port, virtual: true}, nil
}

func (o *Out) Name() string {
	if o.virtual {
		return fmt.Sprintf("%s (virtual)", o.port.String())
	}
	return o.port.String()
}

func (o *Out) Open() error {
	if o.port.IsOpen() {
		return nil
	}
	err := o.port.Open()
	if err != nil {
		return fmt.Errorf("failed to open midi output: %w", err)
	}
	return nil
}

func (o *Out) Close() error {
	if o.port.IsOpen() {
		err := o.port.Close()
		if err != nil {
			_ = o.drv.Close()
			return fmt.Errorf("failed to close midi output: %w", err)
		}
	}
	return o.drv.Close()
}

func (o *Out) Send(data []byte) error {
	return o.port.Send(data)
}
