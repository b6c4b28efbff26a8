// Package measure characterizes compiled effect graphs: impulse
// responses, onset detection for latency verification, and magnitude
// spectra.
package measure

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-dsp/dsp/spectrum"
	"github.com/cwbudde/algo-dsp/dsp/window"
	algofft "github.com/cwbudde/algo-fft"

	"github.com/cwbudde/algo-fxgraph/graph"
)

var errBadLength = errors.New("measure: length must be > 0")

// ImpulseResponse resets g, drives a unit impulse through it, and
// returns length output samples. The graph's state afterwards is the
// state left by the measurement, so callers reusing g should Reset it.
func ImpulseResponse(g *graph.Compiled, length int) ([]float64, error) {
	if length <= 0 {
		return nil, fmt.Errorf("%w: %d", errBadLength, length)
	}

	g.Reset()

	out := make([]float64, length)
	out[0] = 1
	g.ProcessBlock(out)

	return out, nil
}

// Onsets returns the indices where a non-silent region begins: the
// first sample whose magnitude exceeds threshold after at least one
// sample at or below it. A response that is aligned at the merge
// point has exactly one onset; echoes show up as several.
func Onsets(ir []float64, threshold float64) []int {
	var onsets []int

	silent := true

	for i, v := range ir {
		loud := v > threshold || v < -threshold

		if loud && silent {
			onsets = append(onsets, i)
		}

		silent = !loud
	}

	return onsets
}

// MagnitudeResponse returns |H(k)| for k in [0, fftSize/2], computed
// from a Hann-windowed segment of ir. The response is truncated or
// zero-padded to fftSize.
func MagnitudeResponse(ir []float64, fftSize int) ([]float64, error) {
	if fftSize <= 0 || fftSize&(fftSize-1) != 0 {
		return nil, fmt.Errorf("measure: fft size must be a power of two: %d", fftSize)
	}

	plan, err := algofft.NewPlanReal64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("measure: fft plan: %w", err)
	}

	frame := make([]float64, fftSize)
	copy(frame, ir)
	window.Apply(window.TypeHann, frame)

	bins := make([]complex128, fftSize/2+1)
	plan.Forward(bins, frame)

	return spectrum.Magnitude(bins), nil
}
