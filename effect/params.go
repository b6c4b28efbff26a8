package effect

import (
	"fmt"

	"github.com/cwbudde/algo-dsp/dsp/core"
)

// ParamDescriptor describes one published parameter. Descriptors are
// immutable once an effect id ships: new parameters append, indices
// are never reordered or reused.
type ParamDescriptor struct {
	Index   int
	Name    string
	Unit    string
	Min     float64
	Max     float64
	Default float64
}

// paramStore holds descriptors and the last applied value per index.
// Out-of-range values are clamped on set, never rejected; the clamped
// value is what GetParam observes.
type paramStore struct {
	desc []ParamDescriptor
	vals []float64
}

func newParamStore(desc []ParamDescriptor) paramStore {
	vals := make([]float64, len(desc))
	for i, d := range desc {
		vals[i] = d.Default
	}

	return paramStore{desc: desc, vals: vals}
}

func (p *paramStore) NumParams() int { return len(p.desc) }

func (p *paramStore) GetParam(index int) (float64, error) {
	if index < 0 || index >= len(p.vals) {
		return 0, fmt.Errorf("%w: param index %d", ErrNotFound, index)
	}

	return p.vals[index], nil
}

// clamp stores value for index after clamping it into the declared
// range, and returns the applied value.
func (p *paramStore) clamp(index int, value float64) float64 {
	d := p.desc[index]
	v := core.Clamp(value, d.Min, d.Max)
	p.vals[index] = v

	return v
}

// applyDefaults pushes every declared default through SetParam so the
// wrapped processing cores start at the published values rather than
// their own construction defaults.
func applyDefaults(inst Instance) (Instance, error) {
	for i := range inst.NumParams() {
		v, err := inst.GetParam(i)
		if err != nil {
			return nil, err
		}

		if err := inst.SetParam(i, v); err != nil {
			return nil, err
		}
	}

	return inst, nil
}

func (p *paramStore) checkIndex(index int) error {
	if index < 0 || index >= len(p.desc) {
		return fmt.Errorf("%w: param index %d", ErrNotFound, index)
	}

	return nil
}
