// Package motion fuses consecutive accelerometer samples into orientation and
// gesture signals: magnitude, inter-sample angle change, per-axis rotation, a
// gravity ("down") estimate and a jab heuristic.
//
// The engine is pure math over g-unit vectors; reading the sensor is the
// drivers/mma7660 package's job. Feed it one sample per control tick with
// Ingest and query the derived values between ticks.
//
// Background on the angle/rotation formulas: Freescale AN3461 (tilt sensing
// with a three-axis accelerometer), equations 45 and 47.
package motion

import "math"

// Vec is a 3-axis sample in g units, device-local coordinates.
type Vec [3]float64

func (v Vec) Dot(o Vec) float64 {
	return v[0]*o[0] + v[1]*o[1] + v[2]*o[2]
}

func (v Vec) Magnitude() float64 {
	return math.Sqrt(v.Dot(v))
}

func (v Vec) Add(o Vec) Vec {
	return Vec{v[0] + o[0], v[1] + o[1], v[2] + o[2]}
}

// Scaled returns v/m, or the zero vector when m is too small to divide by.
func (v Vec) Scaled(m float64) Vec {
	if math.Abs(m) < epsilon {
		return Vec{}
	}
	return Vec{v[0] / m, v[1] / m, v[2] / m}
}

const epsilon = 1e-9

// Config holds the gesture thresholds. Zero values select the defaults.
type Config struct {
	// JabDelta is the magnitude change (in g) that arms the jab detector.
	JabDelta float64
	// JabAxisDot is the minimum |cos| between each normalized sample and
	// LightAxis for a jab to count as aligned.
	JabAxisDot float64
	// StationaryTolerance bounds |magnitude-1g| for the down-vector update.
	StationaryTolerance float64
	// LightAxis is the device's optical axis in sensor coordinates.
	LightAxis Vec
}

func (c *Config) setDefaults() {
	if c.JabDelta == 0 {
		c.JabDelta = 0.4
	}
	if c.JabAxisDot == 0 {
		c.JabAxisDot = 0.8
	}
	if c.StationaryTolerance == 0 {
		c.StationaryTolerance = 0.1
	}
	if c.LightAxis == (Vec{}) {
		c.LightAxis = Vec{0, -1, 0}
	}
}

// Engine keeps the two most recent samples in a fixed double buffer and the
// scalars derived from them. All state is owned by the engine; no slices
// escape.
type Engine struct {
	cfg Config

	buf [2]Vec
	cur int // index of the newest sample in buf

	oldMag   float64
	newMag   float64
	dot      float64
	angleDeg float64
	rotation Vec
	down     Vec
}

func New(cfg Config) *Engine {
	cfg.setDefaults()
	return &Engine{cfg: cfg}
}

// Ingest fuses one fresh sample. The previous newest sample becomes the old
// slot; the buffer is toggled in place, never copied.
func (e *Engine) Ingest(v Vec) {
	e.cur ^= 1
	e.buf[e.cur] = v
	old := e.buf[e.cur^1]

	e.oldMag = e.newMag
	e.newMag = v.Magnitude()
	e.dot = v.Dot(old)

	rad := angleBetween(e.dot, e.newMag, e.oldMag)
	e.rotation = e.rotationFrom(v, old, rad)
	e.angleDeg = rad * 180 / math.Pi

	// Low-pass the gravity estimate, gated on being near 1g so motion does
	// not pollute it.
	if e.Stationary(e.cfg.StationaryTolerance) {
		e.down = v.Add(old).Scaled(e.newMag + e.oldMag)
	}
}

// rotationFrom computes the instantaneous per-axis rotation (AN3461 eq. 47).
// Degenerate geometry (zero magnitudes or aligned vectors, sin≈0) yields zero
// rotation instead of NaN.
func (e *Engine) rotationFrom(cur, old Vec, rad float64) Vec {
	denom := e.newMag * e.oldMag * math.Sin(rad)
	if math.Abs(denom) < epsilon {
		return Vec{}
	}
	var rot Vec
	for i := 0; i < 3; i++ {
		j, k := (i+1)%3, (i+2)%3
		rot[i] = (cur[j]*old[k] - cur[k]*old[j]) / denom
	}
	return rot
}

// angleBetween returns the angle in radians between two vectors given their
// dot product and magnitudes. Near-zero magnitudes yield 0; the cosine is
// clamped so float noise past ±1 cannot produce NaN.
func angleBetween(dot, m1, m2 float64) float64 {
	denom := m1 * m2
	if math.Abs(denom) < epsilon {
		return 0
	}
	c := dot / denom
	if c > 1 {
		c = 1
	} else if c < -1 {
		c = -1
	}
	return math.Acos(c)
}

// Gs returns the magnitude of the newest sample in g.
func (e *Engine) Gs() float64 { return e.newMag }

// DP returns the dot product of the two buffered samples.
func (e *Engine) DP() float64 { return e.dot }

// AngleChange returns the angle between the two buffered samples in degrees.
func (e *Engine) AngleChange() float64 { return e.angleDeg }

// AxesRotation returns the per-axis instantaneous rotation.
func (e *Engine) AxesRotation() Vec { return e.rotation }

// Down returns the current gravity estimate. It only changes while the device
// is stationary, so it lags real orientation during motion.
func (e *Engine) Down() Vec { return e.down }

// Stationary reports whether both buffered samples are within tolerance of 1g.
func (e *Engine) Stationary(tolerance float64) bool {
	return math.Abs(e.newMag-1) < tolerance && math.Abs(e.oldMag-1) < tolerance
}

// Moved reports whether the newest sample deviates from 1g by more than
// tolerance.
func (e *Engine) Moved(tolerance float64) bool {
	return math.Abs(e.newMag-1) > tolerance
}

// JabDetect fires on a short sharp push along the light axis: the magnitude
// must have changed by more than JabDelta/sensitivity between samples, and
// both samples must be closely aligned with the axis. It returns the newest
// sample's component along the light axis as a signed score, or 0.
func (e *Engine) JabDetect(sensitivity float64) float64 {
	if sensitivity <= 0 {
		sensitivity = 1
	}
	if math.Abs(e.oldMag-e.newMag) <= e.cfg.JabDelta/sensitivity {
		return 0
	}
	cur := e.buf[e.cur].Scaled(e.newMag)
	old := e.buf[e.cur^1].Scaled(e.oldMag)
	if math.Abs(cur.Dot(e.cfg.LightAxis)) > e.cfg.JabAxisDot &&
		math.Abs(old.Dot(e.cfg.LightAxis)) > e.cfg.JabAxisDot {
		return e.buf[e.cur].Dot(e.cfg.LightAxis)
	}
	return 0
}

// DifferenceFromDown returns the normalized angle (0..1) between the light
// axis and the gravity estimate: 0 pointing down, 1 pointing up.
func (e *Engine) DifferenceFromDown() float64 {
	return angleBetween(e.cfg.LightAxis.Dot(e.down), 1, 1) / math.Pi
}
