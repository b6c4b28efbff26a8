package effect

import (
	"fmt"

	"github.com/cwbudde/algo-dsp/dsp/effects/modulation"
)

// chorusFX wraps modulation.Chorus as a dual-mono instance.
type chorusFX struct {
	dualMono
	paramStore
	cores [2]*modulation.Chorus
}

func chorusParams() []ParamDescriptor {
	return []ParamDescriptor{
		{Index: 0, Name: "rate", Unit: "Hz", Min: 0.01, Max: 10, Default: 0.35},
		{Index: 1, Name: "depth", Unit: "s", Min: 0, Max: 0.01, Default: 0.003},
		{Index: 2, Name: "mix", Unit: "", Min: 0, Max: 1, Default: 0.18},
	}
}

func newChorusFX(sampleRate float64) (Instance, error) {
	var cores [2]*modulation.Chorus

	for i := range cores {
		c, err := modulation.NewChorus()
		if err != nil {
			return nil, err
		}

		if err := c.SetSampleRate(sampleRate); err != nil {
			return nil, err
		}

		cores[i] = c
	}

	return applyDefaults(&chorusFX{
		dualMono:   dualMono{left: cores[0], right: cores[1]},
		paramStore: newParamStore(chorusParams()),
		cores:      cores,
	})
}

func (c *chorusFX) SetSampleRate(sampleRate float64) error {
	for _, core := range c.cores {
		if err := core.SetSampleRate(sampleRate); err != nil {
			return err
		}
	}

	return nil
}

func (c *chorusFX) SetParam(index int, value float64) error {
	if err := c.checkIndex(index); err != nil {
		return err
	}

	v := c.clamp(index, value)

	for _, core := range c.cores {
		var err error

		switch index {
		case 0:
			err = core.SetSpeedHz(v)
		case 1:
			err = core.SetDepth(v)
		case 2:
			err = core.SetMix(v)
		}

		if err != nil {
			return fmt.Errorf("effect: chorus param %d: %w", index, err)
		}
	}

	return nil
}

// flangerFX wraps modulation.Flanger as a dual-mono instance.
type flangerFX struct {
	dualMono
	paramStore
	cores [2]*modulation.Flanger
}

func flangerParams() []ParamDescriptor {
	return []ParamDescriptor{
		{Index: 0, Name: "rate", Unit: "Hz", Min: 0.01, Max: 10, Default: 0.25},
		{Index: 1, Name: "depth", Unit: "s", Min: 0.0005, Max: 0.008, Default: 0.0015},
		{Index: 2, Name: "feedback", Unit: "", Min: -0.95, Max: 0.95, Default: 0.25},
		{Index: 3, Name: "mix", Unit: "", Min: 0, Max: 1, Default: 0.5},
	}
}

func newFlangerFX(sampleRate float64) (Instance, error) {
	left, err := modulation.NewFlanger(sampleRate)
	if err != nil {
		return nil, err
	}

	right, err := modulation.NewFlanger(sampleRate)
	if err != nil {
		return nil, err
	}

	return applyDefaults(&flangerFX{
		dualMono:   dualMono{left: left, right: right},
		paramStore: newParamStore(flangerParams()),
		cores:      [2]*modulation.Flanger{left, right},
	})
}

func (f *flangerFX) SetSampleRate(sampleRate float64) error {
	for _, c := range f.cores {
		if err := c.SetSampleRate(sampleRate); err != nil {
			return err
		}
	}

	return nil
}

func (f *flangerFX) SetParam(index int, value float64) error {
	if err := f.checkIndex(index); err != nil {
		return err
	}

	v := f.clamp(index, value)

	for _, c := range f.cores {
		var err error

		switch index {
		case 0:
			err = c.SetRateHz(v)
		case 1:
			err = c.SetDepthSeconds(v)
		case 2:
			err = c.SetFeedback(v)
		case 3:
			err = c.SetMix(v)
		}

		if err != nil {
			return fmt.Errorf("effect: flanger param %d: %w", index, err)
		}
	}

	return nil
}

// tremoloFX wraps modulation.Tremolo as a dual-mono instance.
type tremoloFX struct {
	dualMono
	paramStore
	cores [2]*modulation.Tremolo
}

func tremoloParams() []ParamDescriptor {
	return []ParamDescriptor{
		{Index: 0, Name: "rate", Unit: "Hz", Min: 0.05, Max: 20, Default: 4},
		{Index: 1, Name: "depth", Unit: "", Min: 0, Max: 1, Default: 0.6},
		{Index: 2, Name: "mix", Unit: "", Min: 0, Max: 1, Default: 1},
	}
}

func newTremoloFX(sampleRate float64) (Instance, error) {
	left, err := modulation.NewTremolo(sampleRate)
	if err != nil {
		return nil, err
	}

	right, err := modulation.NewTremolo(sampleRate)
	if err != nil {
		return nil, err
	}

	return applyDefaults(&tremoloFX{
		dualMono:   dualMono{left: left, right: right},
		paramStore: newParamStore(tremoloParams()),
		cores:      [2]*modulation.Tremolo{left, right},
	})
}

func (t *tremoloFX) SetSampleRate(sampleRate float64) error {
	for _, c := range t.cores {
		if err := c.SetSampleRate(sampleRate); err != nil {
			return err
		}
	}

	return nil
}

func (t *tremoloFX) SetParam(index int, value float64) error {
	if err := t.checkIndex(index); err != nil {
		return err
	}

	v := t.clamp(index, value)

	for _, c := range t.cores {
		var err error

		switch index {
		case 0:
			err = c.SetRateHz(v)
		case 1:
			err = c.SetDepth(v)
		case 2:
			err = c.SetMix(v)
		}

		if err != nil {
			return fmt.Errorf("effect: tremolo param %d: %w", index, err)
		}
	}

	return nil
}
