package effect

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-dsp/dsp/effects"
)

// delayFX wraps effects.Delay as a dual-mono instance.
type delayFX struct {
	dualMono
	paramStore
	cores [2]*effects.Delay
}

func delayParams() []ParamDescriptor {
	return []ParamDescriptor{
		{Index: 0, Name: "time", Unit: "s", Min: 0.001, Max: 2, Default: 0.25},
		{Index: 1, Name: "feedback", Unit: "", Min: 0, Max: 0.95, Default: 0.35},
		{Index: 2, Name: "mix", Unit: "", Min: 0, Max: 1, Default: 0.25},
	}
}

func newDelayFX(sampleRate float64) (Instance, error) {
	left, err := effects.NewDelay(sampleRate)
	if err != nil {
		return nil, err
	}

	right, err := effects.NewDelay(sampleRate)
	if err != nil {
		return nil, err
	}

	return applyDefaults(&delayFX{
		dualMono:   dualMono{left: left, right: right},
		paramStore: newParamStore(delayParams()),
		cores:      [2]*effects.Delay{left, right},
	})
}

func (d *delayFX) SetSampleRate(sampleRate float64) error {
	for _, c := range d.cores {
		if err := c.SetSampleRate(sampleRate); err != nil {
			return err
		}
	}

	return nil
}

func (d *delayFX) SetParam(index int, value float64) error {
	if err := d.checkIndex(index); err != nil {
		return err
	}

	v := d.clamp(index, value)

	for _, c := range d.cores {
		var err error

		switch index {
		case 0:
			err = c.SetTime(v)
		case 1:
			err = c.SetFeedback(v)
		case 2:
			err = c.SetMix(v)
		}

		if err != nil {
			return fmt.Errorf("effect: delay param %d: %w", index, err)
		}
	}

	return nil
}

// distortionFX wraps effects.Distortion as a dual-mono instance.
type distortionFX struct {
	dualMono
	paramStore
	cores [2]*effects.Distortion
}

func distortionParams() []ParamDescriptor {
	return []ParamDescriptor{
		{Index: 0, Name: "drive", Unit: "", Min: 0.01, Max: 20, Default: 1},
		{Index: 1, Name: "mix", Unit: "", Min: 0, Max: 1, Default: 1},
		{Index: 2, Name: "output", Unit: "", Min: 0, Max: 4, Default: 1},
	}
}

func newDistortionFX(sampleRate float64) (Instance, error) {
	left, err := effects.NewDistortion(sampleRate)
	if err != nil {
		return nil, err
	}

	right, err := effects.NewDistortion(sampleRate)
	if err != nil {
		return nil, err
	}

	return applyDefaults(&distortionFX{
		dualMono:   dualMono{left: left, right: right},
		paramStore: newParamStore(distortionParams()),
		cores:      [2]*effects.Distortion{left, right},
	})
}

func (d *distortionFX) SetSampleRate(sampleRate float64) error {
	for _, c := range d.cores {
		if err := c.SetSampleRate(sampleRate); err != nil {
			return err
		}
	}

	return nil
}

func (d *distortionFX) SetParam(index int, value float64) error {
	if err := d.checkIndex(index); err != nil {
		return err
	}

	v := d.clamp(index, value)

	for _, c := range d.cores {
		var err error

		switch index {
		case 0:
			err = c.SetDrive(v)
		case 1:
			err = c.SetMix(v)
		case 2:
			err = c.SetOutputLevel(v)
		}

		if err != nil {
			return fmt.Errorf("effect: distortion param %d: %w", index, err)
		}
	}

	return nil
}

// bitCrusherFX wraps effects.BitCrusher as a dual-mono instance.
type bitCrusherFX struct {
	dualMono
	paramStore
	cores [2]*effects.BitCrusher
}

func bitCrusherParams() []ParamDescriptor {
	return []ParamDescriptor{
		{Index: 0, Name: "bits", Unit: "bit", Min: 1, Max: 32, Default: 8},
		{Index: 1, Name: "downsample", Unit: "x", Min: 1, Max: 64, Default: 1},
		{Index: 2, Name: "mix", Unit: "", Min: 0, Max: 1, Default: 1},
	}
}

func newBitCrusherFX(sampleRate float64) (Instance, error) {
	left, err := effects.NewBitCrusher(sampleRate)
	if err != nil {
		return nil, err
	}

	right, err := effects.NewBitCrusher(sampleRate)
	if err != nil {
		return nil, err
	}

	return applyDefaults(&bitCrusherFX{
		dualMono:   dualMono{left: left, right: right},
		paramStore: newParamStore(bitCrusherParams()),
		cores:      [2]*effects.BitCrusher{left, right},
	})
}

func (b *bitCrusherFX) SetSampleRate(sampleRate float64) error {
	for _, c := range b.cores {
		if err := c.SetSampleRate(sampleRate); err != nil {
			return err
		}
	}

	return nil
}

func (b *bitCrusherFX) SetParam(index int, value float64) error {
	if err := b.checkIndex(index); err != nil {
		return err
	}

	v := b.clamp(index, value)

	for _, c := range b.cores {
		var err error

		switch index {
		case 0:
			err = c.SetBitDepth(v)
		case 1:
			err = c.SetDownsample(int(math.Round(v)))
		case 2:
			err = c.SetMix(v)
		}

		if err != nil {
			return fmt.Errorf("effect: bitcrusher param %d: %w", index, err)
		}
	}

	return nil
}
