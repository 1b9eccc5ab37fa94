//go:build rp2040

package main

import (
	"machine"
	"time"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"

	"hexlight-go/config"
	"hexlight-go/control"
	"hexlight-go/drivers/mma7660"
	"hexlight-go/hw"
)

// Board wiring. The drive and indicator lines follow the reference light:
// one latch, one range-select, one PWM drive, a shared red-LED/button line
// and a green indicator, plus thermistor and charge-sense on the ADC.
const (
	pinPower     = 8
	pinDriveMode = 9
	pinDriveEn   = 10
	pinRedLED    = 2
	pinGreenLED  = 3

	pinUARTTx = 0
	pinUARTRx = 1
	pinSDA    = 4
	pinSCL    = 5
)

// -----------------------------------------------------------------------------
// machine-backed pin adaptors
// -----------------------------------------------------------------------------

type picoPin struct {
	p machine.Pin
}

func (r *picoPin) ConfigureInput(pull hw.Pull) error {
	var mode machine.PinMode
	switch pull {
	case hw.PullUp:
		mode = machine.PinInputPullup
	case hw.PullDown:
		mode = machine.PinInputPulldown
	default:
		mode = machine.PinInput
	}
	r.p.Configure(machine.PinConfig{Mode: mode})
	return nil
}

func (r *picoPin) ConfigureOutput(initial bool) error {
	r.p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	r.p.Set(initial)
	return nil
}

func (r *picoPin) Set(b bool) { r.p.Set(b) }
func (r *picoPin) Get() bool  { return r.p.Get() }

// Local interface to avoid depending on an unexported concrete type in machine.
type pwmCtrl interface {
	Configure(cfg machine.PWMConfig) error
	Top() uint32
	Set(channel uint8, value uint32)
}

func pwmGroupBySlice(slice uint8) pwmCtrl {
	switch slice {
	case 0:
		return machine.PWM0
	case 1:
		return machine.PWM1
	case 2:
		return machine.PWM2
	case 3:
		return machine.PWM3
	case 4:
		return machine.PWM4
	case 5:
		return machine.PWM5
	case 6:
		return machine.PWM6
	default:
		return machine.PWM7
	}
}

// picoPWM drives one channel with an 8-bit duty.
type picoPWM struct {
	pin   machine.Pin
	ctrl  pwmCtrl
	chIdx uint8 // even pin => A(0), odd pin => B(1)
}

func newPicoPWM(pin int) *picoPWM {
	slice, err := machine.PWMPeripheral(machine.Pin(pin))
	if err != nil {
		panic("pwm slice for pin")
	}
	p := &picoPWM{
		pin:   machine.Pin(pin),
		ctrl:  pwmGroupBySlice(slice),
		chIdx: uint8(pin) & 1,
	}
	// Default period; only the duty ratio matters for the drive.
	if err := p.ctrl.Configure(machine.PWMConfig{}); err != nil {
		panic("pwm configure")
	}
	p.pin.Configure(machine.PinConfig{Mode: machine.PinPWM})
	return p
}

func (p *picoPWM) SetDuty(duty uint8) {
	p.ctrl.Set(p.chIdx, uint32(duty)*p.ctrl.Top()/255)
}

// picoLEDSwitch is the shared red-LED/button line. Driving a duty claims the
// pin for PWM; returning it to input hands the line back to the button.
type picoLEDSwitch struct {
	picoPin
	pwm *picoPWM
}

func (p *picoLEDSwitch) ConfigureInput(pull hw.Pull) error {
	p.pwm.SetDuty(0)
	return p.picoPin.ConfigureInput(pull)
}

func (p *picoLEDSwitch) SetDuty(duty uint8) {
	p.picoPin.p.Configure(machine.PinConfig{Mode: machine.PinPWM})
	p.pwm.SetDuty(duty)
}

// picoADC reports 10-bit samples; the RP2040 ADC returns left-justified
// 16-bit values.
type picoADC struct {
	adc machine.ADC
}

func newPicoADC(pin machine.Pin) *picoADC {
	a := machine.ADC{Pin: pin}
	a.Configure(machine.ADCConfig{})
	return &picoADC{adc: a}
}

func (a *picoADC) Get() uint16 { return a.adc.Get() >> 6 }

// -----------------------------------------------------------------------------
// main
// -----------------------------------------------------------------------------

// Beam modes cycled by a short press.
var modeLevels = [...]int{0, 200, 500, 1000}

func main() {
	time.Sleep(2 * time.Second)

	uart := uartx.UART0
	uart.Configure(uartx.UARTConfig{
		BaudRate: 115200,
		TX:       machine.Pin(pinUARTTx),
		RX:       machine.Pin(pinUARTRx),
	})
	println("[light] boot")

	profile, err := config.Load("flashlight")
	if err != nil {
		println("[light] profile:", err.Error())
		return
	}
	cfg := profile.ControlConfig()
	cfg.Diag = uart

	machine.InitADC()
	c := control.New(cfg, control.Pins{
		Power:       &picoPin{p: machine.Pin(pinPower)},
		DriveMode:   &picoPin{p: machine.Pin(pinDriveMode)},
		DriveEnable: newPicoPWM(pinDriveEn),
		RedLED: &picoLEDSwitch{
			picoPin: picoPin{p: machine.Pin(pinRedLED)},
			pwm:     newPicoPWM(pinRedLED),
		},
		GreenLED: newPicoPWM(pinGreenLED),
		Temp:     newPicoADC(machine.ADC0),
		Charge:   newPicoADC(machine.ADC1),
	})
	if err := c.Init(); err != nil {
		println("[light] init:", err.Error())
		return
	}

	if cfg.Accelerometer {
		machine.I2C0.Configure(machine.I2CConfig{
			SDA: machine.Pin(pinSDA),
			SCL: machine.Pin(pinSCL),
		})
		accel := mma7660.New(machine.I2C0)
		if err := accel.Configure(mma7660.Config{UpdateHz: 120}); err != nil {
			println("[light] accel:", err.Error())
		} else {
			c.AttachAccelerometer(&accel)
		}
	}

	mode := 0
	boostTicks := 0
	chargeTick := 0

	for {
		c.Update()

		// Short press cycles the beam; a long hold from off blinks out the
		// board temperature instead of lighting up.
		if c.ButtonReleased() {
			held := c.ButtonHeldMs()
			switch {
			case held > 500 && mode == 0:
				c.PrintNumber(int64(c.Fahrenheit()))
			case held > 20: // debounce floor
				mode = (mode + 1) % len(modeLevels)
				c.SetLight(control.CurrentLevel, modeLevels[mode], 250)
				println("[light] mode", mode)
			}
		}

		// A jab along the beam axis while lit boosts to full for 5 s.
		if m := c.Motion(); m != nil && mode != 0 && boostTicks == 0 {
			if m.JabDetect(1.0) != 0 {
				boostTicks = 5000 / c.TickMs()
				c.SetLight(control.CurrentLevel, control.MaxLevel, 100)
				println("[light] boost")
			}
		}
		if boostTicks > 0 {
			boostTicks--
			if boostTicks == 0 {
				c.SetLight(control.CurrentLevel, modeLevels[mode], 500)
			}
		}

		// Once a second while dark, mirror the charger on the green LED:
		// blink while charging, solid when topped off.
		chargeTick++
		if mode == 0 && chargeTick >= 1000/c.TickMs() {
			chargeTick = 0
			switch c.DefiniteChargeState() {
			case control.Charging:
				c.FlashLED(control.Green, 200)
			case control.Charged:
				c.SetLED(control.Green, 1100, 0, 64)
			}
		}
	}
}
