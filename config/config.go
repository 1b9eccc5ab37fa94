// Package config resolves embedded per-device JSON profiles into the typed
// tuning values the control core is built with. Profiles live in flash as raw
// JSON strings; there is no filesystem and no runtime reconfiguration.
package config

import (
	"github.com/andreyvit/tinyjson"

	"hexlight-go/control"
	"hexlight-go/errcode"
	"hexlight-go/motion"
)

// EmbeddedConfigLookup allows overriding how profiles are resolved.
var EmbeddedConfigLookup = func(device string) ([]byte, bool) {
	b, ok := embeddedConfigs[device]
	return b, ok
}

// Profile is a fully-resolved device profile. Zero fields fall back to the
// control package defaults, so profiles only name what they change.
type Profile struct {
	TickMs        int
	OverheatTemp  int
	Indicators    bool
	Printer       bool
	Accelerometer bool
	LEDWaitMs     int
	LEDBrightness int

	JabDelta            float64
	JabAxisDot          float64
	StationaryTolerance float64
}

// ControlConfig expands the profile into a control.Config.
func (p Profile) ControlConfig() control.Config {
	return control.Config{
		TickMs:        p.TickMs,
		OverheatTemp:  p.OverheatTemp,
		Indicators:    p.Indicators,
		Printer:       p.Printer,
		Accelerometer: p.Accelerometer,
		LEDWaitMs:     p.LEDWaitMs,
		LEDBrightness: uint8(p.LEDBrightness),
		Motion: motion.Config{
			JabDelta:            p.JabDelta,
			JabAxisDot:          p.JabAxisDot,
			StationaryTolerance: p.StationaryTolerance,
		},
	}
}

// Load resolves the embedded profile for a device ID.
func Load(device string) (Profile, error) {
	if device == "" {
		return Profile{}, &errcode.E{C: errcode.InvalidParams, Op: "config.Load", Msg: "missing device ID"}
	}
	raw, ok := EmbeddedConfigLookup(device)
	if !ok || len(raw) == 0 {
		return Profile{}, &errcode.E{C: errcode.UnknownDevice, Op: "config.Load", Msg: device}
	}

	r := tinyjson.Raw(raw)
	val := r.Value() // should be a map[string]any
	r.EnsureEOF()

	m, ok := val.(map[string]any)
	if !ok {
		return Profile{}, &errcode.E{C: errcode.InvalidProfile, Op: "config.Load", Msg: "not a JSON object"}
	}

	return Profile{
		TickMs:        intOf(m, "tick_ms"),
		OverheatTemp:  intOf(m, "overheat_temp"),
		Indicators:    boolOf(m, "indicators"),
		Printer:       boolOf(m, "printer"),
		Accelerometer: boolOf(m, "accelerometer"),
		LEDWaitMs:     intOf(m, "led_wait_ms"),
		LEDBrightness: intOf(m, "led_brightness"),

		JabDelta:            floatOf(m, "jab_delta"),
		JabAxisDot:          floatOf(m, "jab_axis_dot"),
		StationaryTolerance: floatOf(m, "stationary_tolerance"),
	}, nil
}

// tinyjson decodes every number as float64; absent or mistyped keys read as
// the zero value and defer to the control defaults.

func intOf(m map[string]any, key string) int {
	f, _ := m[key].(float64)
	return int(f)
}

func floatOf(m map[string]any, key string) float64 {
	f, _ := m[key].(float64)
	return f
}

func boolOf(m map[string]any, key string) bool {
	b, _ := m[key].(bool)
	return b
}
