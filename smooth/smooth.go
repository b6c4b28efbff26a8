package smooth

import (
	"fmt"
	"math"
	"sync/atomic"
)

// Mode selects the ramp shape.
type Mode int

const (
	// Linear ramps with a fixed per-sample increment and terminates
	// exactly on the target.
	Linear Mode = iota
	// Exponential approaches the target asymptotically with a one-pole
	// update; it reaches 0.1% of the step within the configured time.
	Exponential
)

// Preset ramp times in milliseconds.
const (
	RampFastMs     = 5.0
	RampStandardMs = 20.0
	RampSlowMs     = 200.0
)

// ln(1000): an exponential ramp decays to 0.1% of the initial step
// after rampMs when the coefficient is derived from this constant.
const ln1000 = 6.907755278982137

// Value is a smoothed control value.
//
// SetTarget may be called from any goroutine. All other methods must be
// called from the single goroutine that owns the processing loop.
type Value struct {
	mode       Mode
	sampleRate float64
	rampMs     float64

	current    float64
	lastTarget float64
	step       float64 // linear per-sample increment
	coeff      float64 // exponential one-pole coefficient

	target atomic.Uint64 // float64 bits
}

// New creates a smoothed value starting at initial.
func New(mode Mode, sampleRate, rampMs, initial float64) (*Value, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("smooth: sample rate must be > 0: %f", sampleRate)
	}

	if rampMs <= 0 || math.IsNaN(rampMs) || math.IsInf(rampMs, 0) {
		return nil, fmt.Errorf("smooth: ramp time must be > 0: %f", rampMs)
	}

	v := &Value{
		mode:       mode,
		sampleRate: sampleRate,
		rampMs:     rampMs,
	}
	v.recompute()
	v.Snap(initial)

	return v, nil
}

// SetTarget stores a new destination value. The current value is left
// untouched; Advance walks toward the new target from wherever the
// ramp currently is.
func (v *Value) SetTarget(target float64) {
	v.target.Store(math.Float64bits(target))
}

// Target returns the destination value.
func (v *Value) Target() float64 {
	return math.Float64frombits(v.target.Load())
}

// Current returns the value as of the last Advance, without stepping.
func (v *Value) Current() float64 {
	return v.current
}

// Snap jumps current and target to value, ending any ramp in progress.
func (v *Value) Snap(value float64) {
	v.current = value
	v.lastTarget = value
	v.step = 0
	v.target.Store(math.Float64bits(value))
}

// Reset snaps the current value onto the pending target.
func (v *Value) Reset() {
	t := v.Target()
	v.current = t
	v.lastTarget = t
	v.step = 0
}

// SetSampleRate updates time-based coefficients. The ramp position is
// preserved.
func (v *Value) SetSampleRate(sampleRate float64) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("smooth: sample rate must be > 0: %f", sampleRate)
	}

	v.sampleRate = sampleRate
	v.recompute()

	// Force the linear step to be re-derived on the next Advance.
	v.retarget(v.lastTarget)

	return nil
}

// Advance steps once toward the target and returns the updated value.
// Call exactly once per sample in the owning processing loop.
func (v *Value) Advance() float64 {
	t := v.Target()
	if t != v.lastTarget {
		v.retarget(t)
	}

	if v.current == t {
		return v.current
	}

	switch v.mode {
	case Linear:
		next := v.current + v.step
		if (v.step > 0 && next >= t) || (v.step < 0 && next <= t) {
			next = t
		}

		v.current = next
	case Exponential:
		v.current += (t - v.current) * v.coeff
		if math.Abs(t-v.current) < snapEps(t) {
			v.current = t
		}
	}

	return v.current
}

// MaxStep returns the largest increment a single Advance can take for
// the ramp currently in progress, including a retarget that Advance
// has not picked up yet.
func (v *Value) MaxStep() float64 {
	t := v.Target()

	switch v.mode {
	case Linear:
		if t != v.lastTarget {
			return math.Abs((t - v.current) / v.rampSamples())
		}

		return math.Abs(v.step)
	case Exponential:
		return math.Abs(t-v.current)*v.coeff + snapEps(t)
	}

	return 0
}

// snapEps is the residual below which an exponential ramp lands
// exactly on its target.
func snapEps(t float64) float64 {
	return math.Abs(t)*1e-9 + 1e-12
}

func (v *Value) rampSamples() float64 {
	n := v.rampMs * 0.001 * v.sampleRate
	if n < 1 {
		n = 1
	}

	return n
}

func (v *Value) recompute() {
	v.coeff = 1 - math.Exp(-ln1000/v.rampSamples())
}

func (v *Value) retarget(t float64) {
	v.lastTarget = t
	if v.mode == Linear {
		v.step = (t - v.current) / v.rampSamples()
	}
}
