package effect

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-dsp/dsp/effects/dynamics"
)

// compressorFX wraps dynamics.Compressor as a dual-mono instance.
type compressorFX struct {
	dualMono
	paramStore
	cores [2]*dynamics.Compressor
}

func compressorParams() []ParamDescriptor {
	return []ParamDescriptor{
		{Index: 0, Name: "threshold", Unit: "dB", Min: -60, Max: 0, Default: -20},
		{Index: 1, Name: "ratio", Unit: ":1", Min: 1, Max: 20, Default: 4},
		{Index: 2, Name: "attack", Unit: "ms", Min: 0.1, Max: 500, Default: 10},
		{Index: 3, Name: "release", Unit: "ms", Min: 1, Max: 2000, Default: 100},
		{Index: 4, Name: "makeup", Unit: "dB", Min: 0, Max: 24, Default: 0},
	}
}

func newCompressorFX(sampleRate float64) (Instance, error) {
	left, err := dynamics.NewCompressor(sampleRate)
	if err != nil {
		return nil, err
	}

	right, err := dynamics.NewCompressor(sampleRate)
	if err != nil {
		return nil, err
	}

	return applyDefaults(&compressorFX{
		dualMono:   dualMono{left: left, right: right},
		paramStore: newParamStore(compressorParams()),
		cores:      [2]*dynamics.Compressor{left, right},
	})
}

func (c *compressorFX) SetSampleRate(sampleRate float64) error {
	for _, core := range c.cores {
		if err := core.SetSampleRate(sampleRate); err != nil {
			return err
		}
	}

	return nil
}

func (c *compressorFX) SetParam(index int, value float64) error {
	if err := c.checkIndex(index); err != nil {
		return err
	}

	v := c.clamp(index, value)

	for _, core := range c.cores {
		var err error

		switch index {
		case 0:
			err = core.SetThreshold(v)
		case 1:
			err = core.SetRatio(v)
		case 2:
			err = core.SetAttack(v)
		case 3:
			err = core.SetRelease(v)
		case 4:
			err = core.SetMakeupGain(v)
		}

		if err != nil {
			return fmt.Errorf("effect: compressor param %d: %w", index, err)
		}
	}

	return nil
}

// limiterFX wraps dynamics.LookaheadLimiter as a dual-mono instance.
// It is the one built-in with nonzero latency: the program path is
// delayed by the lookahead so the detector acts ahead of transients.
type limiterFX struct {
	dualMono
	paramStore
	cores [2]*dynamics.LookaheadLimiter
}

func limiterParams() []ParamDescriptor {
	return []ParamDescriptor{
		{Index: 0, Name: "threshold", Unit: "dB", Min: -24, Max: 0, Default: -0.1},
		{Index: 1, Name: "release", Unit: "ms", Min: 1, Max: 5000, Default: 100},
		{Index: 2, Name: "lookahead", Unit: "ms", Min: 0, Max: 20, Default: 3},
	}
}

func newLimiterFX(sampleRate float64) (Instance, error) {
	left, err := dynamics.NewLookaheadLimiter(sampleRate)
	if err != nil {
		return nil, err
	}

	right, err := dynamics.NewLookaheadLimiter(sampleRate)
	if err != nil {
		return nil, err
	}

	return applyDefaults(&limiterFX{
		dualMono:   dualMono{left: left, right: right},
		paramStore: newParamStore(limiterParams()),
		cores:      [2]*dynamics.LookaheadLimiter{left, right},
	})
}

func (l *limiterFX) SetSampleRate(sampleRate float64) error {
	for _, c := range l.cores {
		if err := c.SetSampleRate(sampleRate); err != nil {
			return err
		}
	}

	return nil
}

// Latency reports the lookahead delay in samples for the current
// configuration.
func (l *limiterFX) Latency() int {
	c := l.cores[0]
	return int(math.Round(c.Lookahead() * c.SampleRate() / 1000.0))
}

func (l *limiterFX) SetParam(index int, value float64) error {
	if err := l.checkIndex(index); err != nil {
		return err
	}

	v := l.clamp(index, value)

	for _, c := range l.cores {
		var err error

		switch index {
		case 0:
			err = c.SetThreshold(v)
		case 1:
			err = c.SetRelease(v)
		case 2:
			err = c.SetLookahead(v)
		}

		if err != nil {
			return fmt.Errorf("effect: limiter param %d: %w", index, err)
		}
	}

	return nil
}
