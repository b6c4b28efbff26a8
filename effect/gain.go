package effect

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-dsp/dsp/core"

	"github.com/cwbudde/algo-fxgraph/smooth"
)

const (
	minGainDB     = -60.0
	maxGainDB     = 24.0
	defaultGainDB = 0.0
)

// Gain scales the signal by a smoothed linear factor. The "db" target
// may be set from a control thread at any time; the applied factor
// ramps per sample, so gain automation never clicks.
type Gain struct {
	params   paramStore
	smoother *smooth.Value
}

// NewGain creates a unity gain stage.
func NewGain(sampleRate float64) (*Gain, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("gain sample rate must be > 0: %f", sampleRate)
	}

	sm, err := smooth.New(smooth.Exponential, sampleRate, smooth.RampStandardMs,
		core.DBToLinear(defaultGainDB))
	if err != nil {
		return nil, err
	}

	return &Gain{
		params:   newParamStore(gainParams()),
		smoother: sm,
	}, nil
}

func gainParams() []ParamDescriptor {
	return []ParamDescriptor{
		{Index: 0, Name: "db", Unit: "dB", Min: minGainDB, Max: maxGainDB, Default: defaultGainDB},
	}
}

// SetDB sets the gain target in decibels.
func (g *Gain) SetDB(db float64) {
	g.smoother.SetTarget(core.DBToLinear(core.Clamp(db, minGainDB, maxGainDB)))
}

func (g *Gain) ProcessSample(in float64) float64 {
	return in * g.smoother.Advance()
}

func (g *Gain) ProcessSampleStereo(left, right float64) (float64, float64) {
	f := g.smoother.Advance()
	return left * f, right * f
}

func (g *Gain) ProcessBlock(buf []float64) {
	for i := range buf {
		buf[i] = g.ProcessSample(buf[i])
	}
}

func (g *Gain) ProcessBlockStereo(left, right []float64) {
	n := min(len(left), len(right))
	for i := range n {
		left[i], right[i] = g.ProcessSampleStereo(left[i], right[i])
	}
}

func (g *Gain) TrueStereo() bool { return false }

func (g *Gain) SetSampleRate(sampleRate float64) error {
	return g.smoother.SetSampleRate(sampleRate)
}

// Reset ends any ramp in progress by snapping onto the pending target.
func (g *Gain) Reset() {
	g.smoother.Reset()
}

func (g *Gain) Latency() int { return 0 }

func (g *Gain) NumParams() int { return g.params.NumParams() }

func (g *Gain) SetParam(index int, value float64) error {
	if err := g.params.checkIndex(index); err != nil {
		return err
	}

	g.SetDB(g.params.clamp(index, value))

	return nil
}

func (g *Gain) GetParam(index int) (float64, error) {
	return g.params.GetParam(index)
}
