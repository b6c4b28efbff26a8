package effect

// Identity is the passthrough unit: zero latency, no parameters, no
// state. Topology leaves written as "-" compile to it.
type Identity struct{}

// NewIdentity returns the passthrough unit.
func NewIdentity() *Identity { return &Identity{} }

func (Identity) ProcessSample(in float64) float64 { return in }

func (Identity) ProcessSampleStereo(left, right float64) (float64, float64) {
	return left, right
}

func (Identity) ProcessBlock([]float64) {}

func (Identity) ProcessBlockStereo(_, _ []float64) {}

func (Identity) TrueStereo() bool { return false }

func (Identity) SetSampleRate(float64) error { return nil }

func (Identity) Reset() {}

func (Identity) Latency() int { return 0 }

func (Identity) NumParams() int { return 0 }

func (Identity) SetParam(index int, _ float64) error {
	return (&paramStore{}).checkIndex(index)
}

func (Identity) GetParam(index int) (float64, error) {
	return (&paramStore{}).GetParam(index)
}
