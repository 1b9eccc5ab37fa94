//go:build linux

// Package gpiod adapts Linux GPIO character-device lines to hw.DigitalPin,
// for running the control core on a single-board computer (a bench rig or a
// Pi-based prototype) instead of a microcontroller.
package gpiod

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"

	"hexlight-go/hw"
)

// Chip owns the character device and hands out pins on it.
type Chip struct {
	chip *gpiocdev.Chip
}

// Open opens a GPIO chip by name, e.g. "gpiochip0".
func Open(name string) (*Chip, error) {
	c, err := gpiocdev.NewChip(name)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip %s: %w", name, err)
	}
	return &Chip{chip: c}, nil
}

// Pin requests a line as input with no bias. Direction changes afterwards go
// through the hw.DigitalPin methods.
func (c *Chip) Pin(offset int) (*Pin, error) {
	line, err := c.chip.RequestLine(offset, gpiocdev.AsInput, gpiocdev.WithBiasDisabled)
	if err != nil {
		return nil, fmt.Errorf("request gpio line %d: %w", offset, err)
	}
	return &Pin{line: line, offset: offset}, nil
}

// Close releases the chip. Pins requested from it must be closed first.
func (c *Chip) Close() error {
	return c.chip.Close()
}

// Pin is one requested line. It satisfies hw.DigitalPin; Set and Get swallow
// kernel errors because the control core treats GPIO as infallible, matching
// microcontroller register access.
type Pin struct {
	line   *gpiocdev.Line
	offset int
}

func pullOption(pull hw.Pull) gpiocdev.LineConfigOption {
	switch pull {
	case hw.PullUp:
		return gpiocdev.WithPullUp
	case hw.PullDown:
		return gpiocdev.WithPullDown
	default:
		return gpiocdev.WithBiasDisabled
	}
}

func (p *Pin) ConfigureInput(pull hw.Pull) error {
	if err := p.line.Reconfigure(gpiocdev.AsInput, pullOption(pull)); err != nil {
		return fmt.Errorf("gpio line %d as input: %w", p.offset, err)
	}
	return nil
}

func (p *Pin) ConfigureOutput(initial bool) error {
	v := 0
	if initial {
		v = 1
	}
	if err := p.line.Reconfigure(gpiocdev.AsOutput(v)); err != nil {
		return fmt.Errorf("gpio line %d as output: %w", p.offset, err)
	}
	return nil
}

func (p *Pin) Set(level bool) {
	v := 0
	if level {
		v = 1
	}
	p.line.SetValue(v)
}

func (p *Pin) Get() bool {
	v, err := p.line.Value()
	return err == nil && v != 0
}

// Close reconfigures the line back to a plain input before releasing it, so
// external hardware never sees a held output level across restarts.
func (p *Pin) Close() error {
	if err := p.line.Reconfigure(gpiocdev.AsInput, gpiocdev.WithBiasDisabled); err != nil {
		p.line.Close()
		return fmt.Errorf("park gpio line %d: %w", p.offset, err)
	}
	if err := p.line.Close(); err != nil {
		return fmt.Errorf("close gpio line %d: %w", p.offset, err)
	}
	return nil
}
