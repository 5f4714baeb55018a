// Package transport reads MIDI events from a hardware input port through the
// rtmidi driver and hands them to the engine as parsed events. Anything the
// driver cannot parse into a channel-voice message never reaches the engine.
package transport

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/korewaChino/midkb/sdk/contracts"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

// Error definitions for port discovery and capture issues.
var (
	ErrNoPorts        = errors.New("no MIDI input ports found")
	ErrPortNotFound   = errors.New("no MIDI input port matches")
	ErrNoPortSelected = errors.New("no MIDI input port selected")
	ErrCapturing      = errors.New("capture already started")
)

// Client is a contracts.Transport backed by gomidi's rtmidi driver.
type Client struct {
	logger contracts.Logger

	mu   sync.Mutex
	drv  *rtmididrv.Driver
	in   drivers.In
	stop func()
}

// New opens the MIDI driver.
func New(options *contracts.Options) (*Client, error) {
	drv, err := rtmididrv.New()
	if err != nil {
		return nil, fmt.Errorf("open MIDI driver: %w", err)
	}
	return &Client{logger: options.Logger, drv: drv}, nil
}

// ListPorts lists all available MIDI input ports.
func (c *Client) ListPorts() ([]contracts.PortInfo, error) {
	ins, err := c.drv.Ins()
	if err != nil {
		return nil, fmt.Errorf("list MIDI inputs: %w", err)
	}
	if len(ins) == 0 {
		return nil, ErrNoPorts
	}
	ports := make([]contracts.PortInfo, len(ins))
	for i, in := range ins {
		ports[i] = contracts.PortInfo{Number: in.Number(), Name: in.String()}
	}
	return ports, nil
}

// SelectPort connects to the first input port whose name contains match.
func (c *Client) SelectPort(match string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	ins, err := c.drv.Ins()
	if err != nil {
		return fmt.Errorf("list MIDI inputs: %w", err)
	}
	for _, in := range ins {
		if strings.Contains(in.String(), match) {
			c.in = in
			c.logger.Info("MIDI input port selected",
				c.logger.Field().Int("port", in.Number()),
				c.logger.Field().String("name", in.String()))
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrPortNotFound, match)
}

// StartCapture starts listening on the selected port, sending parsed events
// to eventChannel. The send blocks, so the channel's consumer paces the
// whole pipeline; MIDI rates are far below what the consumer can absorb.
func (c *Client) StartCapture(eventChannel chan contracts.Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.in == nil {
		return ErrNoPortSelected
	}
	if c.stop != nil {
		return ErrCapturing
	}

	stop, err := midi.ListenTo(c.in, func(msg midi.Message, timestampms int32) {
		var channel, key, velocity uint8
		var controller, value uint8
		switch {
		case msg.GetNoteOn(&channel, &key, &velocity):
			eventChannel <- contracts.NewNoteOn(channel, key, velocity)
		case msg.GetNoteOff(&channel, &key, &velocity):
			eventChannel <- contracts.NewNoteOff(channel, key)
		case msg.GetControlChange(&channel, &controller, &value):
			eventChannel <- contracts.NewControlChange(channel, controller, value)
		}
	})
	if err != nil {
		return fmt.Errorf("listen on MIDI port: %w", err)
	}
	c.stop = stop
	return nil
}

// Stop ends capture and closes the driver.
func (c *Client) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stop != nil {
		c.stop()
		c.stop = nil
	}
	if err := c.drv.Close(); err != nil {
		return fmt.Errorf("close MIDI driver: %w", err)
	}
	return nil
}
