package effect

import (
	"fmt"

	"github.com/cwbudde/algo-dsp/dsp/effects/reverb"
	"github.com/cwbudde/algo-dsp/dsp/filter/moog"
)

// moogFX wraps the moog ladder filter as a dual-mono instance.
type moogFX struct {
	dualMono
	paramStore
	cores [2]*moog.Filter
}

func moogParams() []ParamDescriptor {
	return []ParamDescriptor{
		{Index: 0, Name: "cutoff", Unit: "Hz", Min: 20, Max: 20000, Default: 1000},
		{Index: 1, Name: "resonance", Unit: "", Min: 0, Max: 4, Default: 0.8},
		{Index: 2, Name: "drive", Unit: "", Min: 0.1, Max: 10, Default: 1},
	}
}

func newMoogFX(sampleRate float64) (Instance, error) {
	left, err := moog.New(sampleRate)
	if err != nil {
		return nil, err
	}

	right, err := moog.New(sampleRate)
	if err != nil {
		return nil, err
	}

	return applyDefaults(&moogFX{
		dualMono:   dualMono{left: left, right: right},
		paramStore: newParamStore(moogParams()),
		cores:      [2]*moog.Filter{left, right},
	})
}

func (m *moogFX) SetSampleRate(sampleRate float64) error {
	for _, core := range m.cores {
		if err := core.SetSampleRate(sampleRate); err != nil {
			return err
		}
	}

	return nil
}

func (m *moogFX) SetParam(index int, value float64) error {
	if err := m.checkIndex(index); err != nil {
		return err
	}

	v := m.clamp(index, value)

	for _, core := range m.cores {
		var err error

		switch index {
		case 0:
			err = core.SetCutoffHz(v)
		case 1:
			err = core.SetResonance(v)
		case 2:
			err = core.SetDrive(v)
		}

		if err != nil {
			return fmt.Errorf("effect: moog param %d: %w", index, err)
		}
	}

	return nil
}

// reverbFX wraps reverb.FDNReverb as a dual-mono instance.
type reverbFX struct {
	dualMono
	paramStore
	cores [2]*reverb.FDNReverb
}

func reverbParams() []ParamDescriptor {
	return []ParamDescriptor{
		{Index: 0, Name: "wet", Unit: "", Min: 0, Max: 1, Default: 0.2},
		{Index: 1, Name: "dry", Unit: "", Min: 0, Max: 1, Default: 1},
		{Index: 2, Name: "rt60", Unit: "s", Min: 0.1, Max: 10, Default: 1.8},
		{Index: 3, Name: "damp", Unit: "", Min: 0, Max: 1, Default: 0.3},
		{Index: 4, Name: "predelay", Unit: "s", Min: 0, Max: 0.2, Default: 0.01},
	}
}

func newReverbFX(sampleRate float64) (Instance, error) {
	left, err := reverb.NewFDNReverb(sampleRate)
	if err != nil {
		return nil, err
	}

	right, err := reverb.NewFDNReverb(sampleRate)
	if err != nil {
		return nil, err
	}

	return applyDefaults(&reverbFX{
		dualMono:   dualMono{left: left, right: right},
		paramStore: newParamStore(reverbParams()),
		cores:      [2]*reverb.FDNReverb{left, right},
	})
}

func (r *reverbFX) SetSampleRate(sampleRate float64) error {
	for _, core := range r.cores {
		if err := core.SetSampleRate(sampleRate); err != nil {
			return err
		}
	}

	return nil
}

func (r *reverbFX) SetParam(index int, value float64) error {
	if err := r.checkIndex(index); err != nil {
		return err
	}

	v := r.clamp(index, value)

	for _, core := range r.cores {
		var err error

		switch index {
		case 0:
			err = core.SetWet(v)
		case 1:
			err = core.SetDry(v)
		case 2:
			err = core.SetRT60(v)
		case 3:
			err = core.SetDamp(v)
		case 4:
			err = core.SetPreDelay(v)
		}

		if err != nil {
			return fmt.Errorf("effect: reverb param %d: %w", index, err)
		}
	}

	return nil
}
