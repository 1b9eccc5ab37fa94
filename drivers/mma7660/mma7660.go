// Package mma7660 provides a driver for the MMA7660FC 3-axis accelerometer.
//
// The device exposes signed 6-bit axis counts at ±1.5g full scale
// (21.3 counts/g) and sets an alert bit in a sample register when the read
// raced an internal update; such axes are re-read within the same call,
// bounded to a couple of attempts.
//
// Datasheet: Freescale MMA7660FC, in particular page 14 (alert bit) and
// page 28 (count scaling).
package mma7660

import (
	"tinygo.org/x/drivers"

	"hexlight-go/errcode"
)

// I2C address.
const Address = 0x4C

// Registers.
const (
	regXOut  = 0x00
	regYOut  = 0x01
	regZOut  = 0x02
	regTilt  = 0x03
	regSRST  = 0x04
	regSPCNT = 0x05
	regIntSU = 0x06
	regMode  = 0x07
	regSR    = 0x08
	regPDET  = 0x09
	regPD    = 0x0A
)

const (
	alertBit = 0x40 // sample register updated mid-read; re-read
	signBit  = 0x20 // 6-bit two's complement sign

	countsPerG = 21.3

	modeStandby = 0x00
	modeActive  = 0x01

	// Shake on all axes plus tap interrupts.
	intShakeTap = 0xE4

	// One extra attempt per axis when the alert bit is set. The retry is
	// bounded so a wedged sensor cannot eat the tick budget.
	axisRetries = 2
)

// Config controls measurement behaviour. All fields are optional.
type Config struct {
	// Address defaults to 0x4C if zero.
	Address uint16
	// UpdateHz is the caller's polling rate; the sensor sample rate is set
	// to the fastest rate not exceeding it. Default 120 Hz.
	UpdateHz uint32
	// TapThreshold and TapDebounce feed the PDET/PD registers.
	// Defaults 0x0F and 0x05.
	TapThreshold byte
	TapDebounce  byte
}

// Device wraps an I2C connection to an MMA7660FC. Buffers are fixed-size and
// reused; the driver performs no allocations after New.
type Device struct {
	bus     drivers.I2C
	Address uint16

	buf  [3]byte // sample read buffer
	last [3]byte // last valid raw count per axis
}

// New creates the device handle. The I2C bus must already be configured.
func New(bus drivers.I2C) Device {
	return Device{bus: bus, Address: Address}
}

// Configure programs interrupts, sample rate and tap detection, then switches
// the sensor to active mode. Registers are only writable in standby, so the
// configuration block leads with mode=standby.
func (d *Device) Configure(cfg Config) error {
	if cfg.Address != 0 {
		d.Address = cfg.Address
	}
	if cfg.UpdateHz == 0 {
		cfg.UpdateHz = 120
	}
	if cfg.TapThreshold == 0 {
		cfg.TapThreshold = 0x0F
	}
	if cfg.TapDebounce == 0 {
		cfg.TapDebounce = 0x05
	}

	// Auto-incrementing block write: INTSU, MODE, SR, PDET, PD.
	setup := []byte{
		regIntSU,
		intShakeTap,
		modeStandby,
		sampleRateCode(cfg.UpdateHz),
		cfg.TapThreshold,
		cfg.TapDebounce,
	}
	if err := d.bus.Tx(d.Address, setup, nil); err != nil {
		return &errcode.E{C: errcode.BusFault, Op: "mma7660.Configure", Err: err}
	}
	if err := d.bus.Tx(d.Address, []byte{regMode, modeActive}, nil); err != nil {
		return &errcode.E{C: errcode.BusFault, Op: "mma7660.Configure", Err: err}
	}
	return nil
}

// sampleRateCode picks the fastest sample rate not exceeding updateHz.
// The AMSR code halves the rate per step: 0=120, 1=64, 2=32 ... 7=1
// samples per second.
func sampleRateCode(updateHz uint32) byte {
	code := byte(6)
	for i := 0; i <= 6; i++ {
		if updateHz > 1<<i {
			code = byte(6 - i)
		}
	}
	return code
}

// ReadVector reads all three axes and converts them to g units. An axis whose
// alert bit is set is re-read immediately (bounded); if the alert persists the
// axis falls back to its last valid count so one bad read cannot inject a
// garbage spike into the fusion pipeline.
func (d *Device) ReadVector() ([3]float64, error) {
	var out [3]float64
	if err := d.bus.Tx(d.Address, []byte{regXOut}, d.buf[:3]); err != nil {
		return out, &errcode.E{C: errcode.BusFault, Op: "mma7660.ReadVector", Err: err}
	}
	for i := 0; i < 3; i++ {
		raw := d.buf[i]
		for attempt := 0; raw&alertBit != 0 && attempt < axisRetries; attempt++ {
			var one [1]byte
			if err := d.bus.Tx(d.Address, []byte{byte(regXOut + i)}, one[:]); err != nil {
				return out, &errcode.E{C: errcode.BusFault, Op: "mma7660.ReadVector", Err: err}
			}
			raw = one[0]
		}
		if raw&alertBit != 0 {
			raw = d.last[i]
		} else {
			d.last[i] = raw
		}
		out[i] = countToG(raw)
	}
	return out, nil
}

// ReadRegister reads a single register, e.g. regTilt for the tilt status.
func (d *Device) ReadRegister(reg byte) (byte, error) {
	var one [1]byte
	if err := d.bus.Tx(d.Address, []byte{reg}, one[:]); err != nil {
		return 0, &errcode.E{C: errcode.BusFault, Op: "mma7660.ReadRegister", Err: err}
	}
	return one[0], nil
}

// Tilt returns the tilt/status register.
func (d *Device) Tilt() (byte, error) { return d.ReadRegister(regTilt) }

// countToG sign-extends a 6-bit sample and scales it to g units.
func countToG(raw byte) float64 {
	raw &= 0x3F
	if raw&signBit != 0 {
		raw |= 0xC0
	}
	return float64(int8(raw)) / countsPerG
}
