package effect

// Effect is the uniform contract over all processing units.
//
// Block methods must produce output bit-identical to calling the
// corresponding sample method once per element, for any block length.
// All methods mutate only the receiving instance.
type Effect interface {
	// ProcessSample processes one mono sample.
	ProcessSample(in float64) float64
	// ProcessSampleStereo processes one stereo frame.
	ProcessSampleStereo(left, right float64) (float64, float64)
	// ProcessBlock processes a mono block in place.
	ProcessBlock(buf []float64)
	// ProcessBlockStereo processes a stereo block in place.
	ProcessBlockStereo(left, right []float64)

	// TrueStereo reports whether left and right outputs are computed
	// with decorrelated internal state. Constant per instance; used
	// for display and metering only.
	TrueStereo() bool

	// SetSampleRate recomputes time-based coefficients. It does not
	// imply Reset.
	SetSampleRate(sampleRate float64) error
	// Reset zeroes all internal memory: delay lines, filter history,
	// LFO phase, envelope and smoother state.
	Reset()
	// Latency returns the fixed processing delay in samples for the
	// current configuration. The compiler reads this once per compile.
	Latency() int
}

// Instance couples an Effect with parameter introspection. The
// registry always constructs instances, so every unit reachable by
// name carries both surfaces.
type Instance interface {
	Effect

	// NumParams returns the number of published parameters.
	NumParams() int
	// SetParam sets parameter index to value, clamping value into the
	// declared range. It fails only for an out-of-range index.
	SetParam(index int, value float64) error
	// GetParam returns the last applied (clamped) value.
	GetParam(index int) (float64, error)
}

// monoCore is the minimal primitive the dual-mono adapter derives the
// full contract from. Every algo-dsp unit in the roster satisfies it.
type monoCore interface {
	ProcessSample(in float64) float64
	Reset()
}

// dualMono derives stereo and block processing from two independent
// copies of a mono primitive. Left and right run identical algorithms
// on separate state, so a mono input produces a correlated (not true
// stereo) image.
type dualMono struct {
	left, right monoCore
}

func (d *dualMono) ProcessSample(in float64) float64 {
	return d.left.ProcessSample(in)
}

func (d *dualMono) ProcessSampleStereo(left, right float64) (float64, float64) {
	return d.left.ProcessSample(left), d.right.ProcessSample(right)
}

func (d *dualMono) ProcessBlock(buf []float64) {
	for i := range buf {
		buf[i] = d.left.ProcessSample(buf[i])
	}
}

func (d *dualMono) ProcessBlockStereo(left, right []float64) {
	n := min(len(left), len(right))
	for i := range n {
		left[i] = d.left.ProcessSample(left[i])
		right[i] = d.right.ProcessSample(right[i])
	}
}

func (d *dualMono) TrueStereo() bool { return false }

func (d *dualMono) Reset() {
	d.left.Reset()
	d.right.Reset()
}

func (d *dualMono) Latency() int { return 0 }
