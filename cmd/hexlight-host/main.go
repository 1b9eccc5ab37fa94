// Command hexlight-host runs the control core against simulated hardware, for
// exercising the ramp, thermal governor and indicator automata on a
// development machine. It scripts a short session: power on, cycle through
// the beam modes, overheat the thermistor, then blink out a number.
package main

import (
	"fmt"
	"os"
	"time"

	"hexlight-go/config"
	"hexlight-go/control"
	"hexlight-go/hw"
	"hexlight-go/x/strx"
)

// ---------- Simulated lines ----------

type simPin struct {
	name  string
	level bool
	out   bool
}

func (p *simPin) ConfigureInput(pull hw.Pull) error {
	p.out = false
	return nil
}

func (p *simPin) ConfigureOutput(initial bool) error {
	p.out = true
	p.Set(initial)
	return nil
}

func (p *simPin) Set(level bool) {
	if level != p.level {
		fmt.Printf("%-10s -> %v\n", p.name, level)
	}
	p.level = level
}

func (p *simPin) Get() bool { return p.level }

type simPWM struct {
	name string
	duty uint8
}

func (p *simPWM) SetDuty(duty uint8) {
	if duty != p.duty {
		fmt.Printf("%-10s duty %d\n", p.name, duty)
	}
	p.duty = duty
}

// simButton shares the red indicator line with a scripted push button.
type simButton struct {
	simPin
	simPWM
	pressed *bool
}

func (b *simButton) Get() bool { return *b.pressed }

type simADC struct {
	value uint16
}

func (a *simADC) Get() uint16 { return a.value }

// ---------- Scenario ----------

func main() {
	device := ""
	if len(os.Args) > 1 {
		device = os.Args[1]
	}
	profile, err := config.Load(strx.Coalesce(device, "flashlight"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "profile:", err)
		os.Exit(1)
	}
	cfg := profile.ControlConfig()
	cfg.Accelerometer = false // no sensor on the bench
	cfg.Diag = os.Stdout

	pressed := false
	temp := &simADC{value: uint16(control.DefaultOverheatTemp)}
	c := control.New(cfg, control.Pins{
		Power:       &simPin{name: "power"},
		DriveMode:   &simPin{name: "mode"},
		DriveEnable: &simPWM{name: "drive"},
		RedLED: &simButton{
			simPin:  simPin{name: "red"},
			simPWM:  simPWM{name: "red"},
			pressed: &pressed,
		},
		GreenLED: &simPWM{name: "green"},
		Temp:     temp,
		Charge:   &simADC{value: 512},
	})
	if err := c.Init(); err != nil {
		fmt.Fprintln(os.Stderr, "init:", err)
		os.Exit(1)
	}

	press := func(d time.Duration) {
		pressed = true
		runFor(c, d)
		pressed = false
		runFor(c, 50*time.Millisecond)
	}

	fmt.Println("== short press: low beam ==")
	press(100 * time.Millisecond)
	c.SetLight(control.CurrentLevel, 200, 250)
	runFor(c, time.Second)

	fmt.Println("== short press: full beam ==")
	press(100 * time.Millisecond)
	c.SetLight(control.CurrentLevel, control.MaxLevel, 250)
	runFor(c, time.Second)

	fmt.Println("== thermistor climbs past the target ==")
	temp.value = uint16(control.DefaultOverheatTemp + 50)
	runFor(c, 2*time.Second)
	fmt.Printf("ceiling settled at %d (requested %d)\n",
		c.SafeLightLevel(), c.LightLevel())

	fmt.Println("== cooled down ==")
	temp.value = uint16(control.DefaultOverheatTemp)
	runFor(c, 2*time.Second)

	fmt.Println("== beam off, blink out the temperature ==")
	c.SetLight(control.CurrentLevel, 0, 250)
	runFor(c, 500*time.Millisecond)
	c.PrintNumber(int64(c.Fahrenheit()))
	for c.Printing() {
		c.Update()
	}

	c.Shutdown()
	fmt.Println("== done ==")
}

func runFor(c *control.Controller, d time.Duration) {
	for n := int(d.Milliseconds()) / c.TickMs(); n > 0; n-- {
		c.Update()
	}
}
