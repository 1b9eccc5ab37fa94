// Package hw declares the collaborator interfaces the control core drives:
// direction-switchable GPIO, 8-bit PWM duty, 10-bit analog reads and the
// wall clock. Implementations live next to the platform mains (machine-backed
// on rp2040, gpiocdev on Linux) and as fakes in tests; the core itself never
// touches registers or buses directly.
package hw

import "time"

type Pull uint8

const (
	PullNone Pull = iota
	PullUp
	PullDown
)

// DigitalPin is a single GPIO line whose direction can be switched at runtime.
type DigitalPin interface {
	ConfigureInput(pull Pull) error
	ConfigureOutput(initial bool) error
	Set(level bool)
	Get() bool
}

// PWMPin writes an 8-bit duty cycle. Duty 0 with the supply latched is
// "enabled at zero", which is distinct from disabling the circuit.
type PWMPin interface {
	SetDuty(duty uint8)
}

// AnalogPin reads a 10-bit sample (0..1023).
type AnalogPin interface {
	Get() uint16
}

// LEDSwitchPin shares one line between an indicator LED and a push button:
// SetDuty drives the LED (the implementation switches the line to output),
// ConfigureInput releases the line so Get can sample the button.
type LEDSwitchPin interface {
	DigitalPin
	PWMPin
}

// Clock is the scheduler's time base.
type Clock interface {
	NowMs() int64
	Sleep(d time.Duration)
}
