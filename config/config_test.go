// config/config_test.go
package config

import (
	"testing"

	"hexlight-go/errcode"
)

func TestLoad_EmbeddedFlashlight(t *testing.T) {
	p, err := Load("flashlight")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.TickMs != 10 {
		t.Fatalf("tick_ms = %d, want 10", p.TickMs)
	}
	if !p.Indicators || !p.Printer || !p.Accelerometer {
		t.Fatalf("capabilities = %+v, want all on", p)
	}
	if p.JabDelta != 0.4 || p.JabAxisDot != 0.8 {
		t.Fatalf("jab tuning = %v/%v, want 0.4/0.8", p.JabDelta, p.JabAxisDot)
	}
}

func TestLoad_Override(t *testing.T) {
	oldLookup := EmbeddedConfigLookup
	EmbeddedConfigLookup = func(device string) ([]byte, bool) {
		if device != "bench" {
			return nil, false
		}
		return []byte(`{
			"tick_ms": 25,
			"overheat_temp": 400,
			"printer": true
		}`), true
	}
	t.Cleanup(func() { EmbeddedConfigLookup = oldLookup })

	p, err := Load("bench")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.TickMs != 25 || p.OverheatTemp != 400 {
		t.Fatalf("got %+v", p)
	}
	if !p.Printer || p.Accelerometer {
		t.Fatalf("capabilities = %+v", p)
	}
}

func TestLoad_AbsentKeysDeferToDefaults(t *testing.T) {
	p, err := Load("lantern")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	// Zero fields defer to the control defaults at construction.
	cfg := p.ControlConfig()
	if cfg.OverheatTemp != 0 || cfg.LEDBrightness != 0 {
		t.Fatalf("expected zero passthrough, got %+v", cfg)
	}
	if cfg.TickMs != 20 || !cfg.Indicators {
		t.Fatalf("got %+v", cfg)
	}
}

func TestLoad_MissingDevice(t *testing.T) {
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for missing device ID, got nil")
	}
}

func TestLoad_NoProfileFound(t *testing.T) {
	oldLookup := EmbeddedConfigLookup
	EmbeddedConfigLookup = func(device string) ([]byte, bool) { return nil, false }
	t.Cleanup(func() { EmbeddedConfigLookup = oldLookup })

	_, err := Load("unknown-device")
	if err == nil {
		t.Fatal("expected error for missing embedded profile, got nil")
	}
	if errcode.Of(err) != errcode.UnknownDevice {
		t.Fatalf("error code = %v, want %v", errcode.Of(err), errcode.UnknownDevice)
	}
}

func TestLoad_NotAnObject(t *testing.T) {
	oldLookup := EmbeddedConfigLookup
	EmbeddedConfigLookup = func(device string) ([]byte, bool) {
		return []byte(`[1, 2, 3]`), true
	}
	t.Cleanup(func() { EmbeddedConfigLookup = oldLookup })

	if _, err := Load("array"); err == nil {
		t.Fatal("expected error for non-object profile, got nil")
	}
}
