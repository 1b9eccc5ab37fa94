package control

import "hexlight-go/hw"

// LED selects an indicator channel.
type LED uint8

const (
	Red   LED = 0
	Green LED = 1
)

// LEDState is the observable channel state.
type LEDState uint8

const (
	LEDOff LEDState = iota
	LEDWait
	LEDOn
)

// ledChannel is a countdown automaton: onTicks counts the lit phase,
// waitTicks a dark hold afterwards. -1 means the phase is inactive.
// The transition through onTicks==0 issues the OFF hardware write exactly
// once; after that the channel only counts, without touching hardware.
type ledChannel struct {
	onTicks    int
	waitTicks  int
	brightness uint8
}

type ledBank struct {
	ch [2]ledChannel
}

func (b *ledBank) reset() {
	for i := range b.ch {
		b.ch[i] = ledChannel{onTicks: -1, waitTicks: -1}
	}
}

// SetLED arms a channel: lit for onMs, then a waitMs hold during which the
// channel reports LEDWait. Arming overwrites any running program.
func (c *Controller) SetLED(led LED, onMs, waitMs int, brightness uint8) {
	ch := &c.leds.ch[led]
	ch.onTicks = c.ticksFor(onMs)
	ch.waitTicks = c.ticksFor(waitMs)
	ch.brightness = brightness
}

// FlashLED arms a channel with the configured default wait and brightness.
func (c *Controller) FlashLED(led LED, onMs int) {
	c.SetLED(led, onMs, c.cfg.LEDWaitMs, c.cfg.LEDBrightness)
}

// LEDState returns ON while the lit countdown runs, WAIT during the hold,
// OFF otherwise.
func (c *Controller) LEDState(led LED) LEDState {
	ch := &c.leds.ch[led]
	if ch.onTicks >= 0 {
		return LEDOn
	}
	if ch.waitTicks > 0 {
		return LEDWait
	}
	return LEDOff
}

// FlipColor returns the opposite indicator color.
func FlipColor(led LED) LED { return (led + 1) % 2 }

func (b *ledBank) advance(c *Controller) {
	for i := range b.ch {
		ch := &b.ch[i]
		switch {
		case ch.onTicks > 0:
			c.ledOn(LED(i), ch.brightness)
			ch.onTicks--
		case ch.onTicks == 0:
			c.ledOff(LED(i))
			ch.onTicks--
		case ch.waitTicks >= 0:
			ch.waitTicks--
		}
	}
}

// --- hardware writes ---

// The red indicator shares its line with the button: driving it means taking
// the line as an output, darkening it returns the line to input so the button
// can be sampled. The green indicator has a plain PWM line.

func (c *Controller) ledOn(led LED, brightness uint8) {
	if led == Red {
		c.pins.RedLED.SetDuty(brightness)
		return
	}
	c.pins.GreenLED.SetDuty(brightness)
}

func (c *Controller) ledOff(led LED) {
	if led == Red {
		c.pins.RedLED.ConfigureInput(hw.PullNone)
		return
	}
	c.pins.GreenLED.SetDuty(0)
}
