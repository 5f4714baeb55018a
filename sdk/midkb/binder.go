// Package midkb assembles the MIDI-to-input binder: it builds the binding
// table from configuration, opens the MIDI transport and the virtual input
// device, and runs the translation loop.
package midkb

import (
	"context"
	"fmt"

	"github.com/korewaChino/midkb/internal/binding"
	"github.com/korewaChino/midkb/internal/config"
	"github.com/korewaChino/midkb/internal/engine"
	"github.com/korewaChino/midkb/internal/transport"
	"github.com/korewaChino/midkb/internal/uinput"
	"github.com/korewaChino/midkb/sdk/contracts"
)

// Binder ties one MIDI input port to a virtual keyboard-and-mouse device.
type Binder struct {
	logger    contracts.Logger
	transport contracts.Transport
	device    contracts.OutputDevice
	engine    *engine.Engine
}

// New builds a Binder from a decoded configuration. It validates the binding
// table, registers the virtual input device, and connects to the MIDI port
// named by the configuration; any of these failing is a startup error and
// nothing is left open.
func New(cfg *config.Config, opts ...contracts.Option) (*Binder, error) {
	options := applyDefaultOptions(opts...)
	log := options.Logger

	// The config's note channel applies unless an option overrode it.
	if options.NoteChannel == nil {
		options.NoteChannel = cfg.NoteChannel
	}

	table, err := binding.Build(cfg)
	if err != nil {
		return nil, fmt.Errorf("build binding table: %w", err)
	}

	device, err := uinput.New(options.ClientName)
	if err != nil {
		return nil, fmt.Errorf("create virtual input device: %w", err)
	}

	tr, err := transport.New(&options)
	if err != nil {
		device.Close()
		return nil, err
	}

	ports, err := tr.ListPorts()
	if err != nil {
		tr.Stop()
		device.Close()
		return nil, err
	}
	for _, port := range ports {
		log.Info("available MIDI input port",
			log.Field().Int("port", port.Number),
			log.Field().String("name", port.Name))
	}

	if err := tr.SelectPort(cfg.MidiDevice); err != nil {
		tr.Stop()
		device.Close()
		return nil, err
	}

	return &Binder{
		logger:    log,
		transport: tr,
		device:    device,
		engine:    engine.New(table, device, options),
	}, nil
}

// Run captures MIDI events and translates them until ctx is canceled or the
// output device fails. Events are handled strictly one at a time, in arrival
// order.
func (b *Binder) Run(ctx context.Context) error {
	events := make(chan contracts.Event, 128)
	if err := b.transport.StartCapture(events); err != nil {
		return err
	}
	b.logger.Info("translating MIDI events")

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if err := b.engine.HandleEvent(ev); err != nil {
				return fmt.Errorf("handle %s: %w", ev.Kind, err)
			}
		}
	}
}

// Close stops the transport and destroys the virtual device, releasing any
// keys still held.
func (b *Binder) Close() error {
	if err := b.transport.Stop(); err != nil {
		b.logger.Warn("stopping MIDI transport", b.logger.Field().Error("error", err))
	}
	return b.device.Close()
}
