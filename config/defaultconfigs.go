package config

// -----------------------------------------------------------------------------
// Embedded profiles
//
// Populate embeddedConfigs at build time (e.g. via code generation) or
// manually during development.
// Key: device ID
// Val: raw JSON bytes for that device's profile
// -----------------------------------------------------------------------------

// cfgFlashlight is the stock handheld: every capability on, default thermals.
const cfgFlashlight = `{
  "tick_ms": 10,
  "indicators": true,
  "printer": true,
  "accelerometer": true,
  "led_wait_ms": 100,
  "led_brightness": 255,
  "jab_delta": 0.4,
  "jab_axis_dot": 0.8,
  "stationary_tolerance": 0.1
}`

// cfgLantern is a hook-mounted variant with no motion sensor and a fixed
// beam, so only the ramp and the thermal governor run.
const cfgLantern = `{
  "tick_ms": 20,
  "indicators": true
}`

var embeddedConfigs = map[string][]byte{
	"flashlight": []byte(cfgFlashlight),
	"lantern":    []byte(cfgLantern),
}
