package effect

import (
	"math"
	"testing"
)

const testSampleRate = 48000.0

// testSignal returns a deterministic wide-band excitation.
func testSignal(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 0.5*math.Sin(0.013*float64(i)) + 0.25*math.Sin(0.171*float64(i)+0.5)
	}

	return out
}

// TestBuiltins_BlockMatchesPerSample verifies the core contract: for
// every registered effect, block processing of any length is
// bit-identical to running the sample path once per element.
func TestBuiltins_BlockMatchesPerSample(t *testing.T) {
	t.Parallel()

	reg := DefaultRegistry()
	input := testSignal(2048)

	for _, desc := range reg.List() {
		for _, blockSize := range []int{1, 64, 128, 256, 333, 512, 1024} {
			sampleInst, err := reg.Create(desc.ID, testSampleRate)
			if err != nil {
				t.Fatalf("%s: Create: %v", desc.ID, err)
			}

			blockInst, err := reg.Create(desc.ID, testSampleRate)
			if err != nil {
				t.Fatalf("%s: Create: %v", desc.ID, err)
			}

			want := make([]float64, len(input))
			for i, x := range input {
				want[i] = sampleInst.ProcessSample(x)
			}

			got := make([]float64, len(input))
			copy(got, input)

			for start := 0; start < len(got); start += blockSize {
				end := min(start+blockSize, len(got))
				blockInst.ProcessBlock(got[start:end])
			}

			for i := range want {
				if got[i] != want[i] {
					t.Fatalf("%s: block size %d diverges at sample %d: block=%v sample=%v",
						desc.ID, blockSize, i, got[i], want[i])
				}
			}
		}
	}
}

func TestBuiltins_StereoBlockMatchesPerFrame(t *testing.T) {
	t.Parallel()

	reg := DefaultRegistry()
	left := testSignal(1024)

	right := make([]float64, len(left))
	for i := range right {
		right[i] = -0.5 * left[i]
	}

	for _, desc := range reg.List() {
		frameInst, err := reg.Create(desc.ID, testSampleRate)
		if err != nil {
			t.Fatalf("%s: Create: %v", desc.ID, err)
		}

		blockInst, err := reg.Create(desc.ID, testSampleRate)
		if err != nil {
			t.Fatalf("%s: Create: %v", desc.ID, err)
		}

		wantL := make([]float64, len(left))
		wantR := make([]float64, len(left))

		for i := range left {
			wantL[i], wantR[i] = frameInst.ProcessSampleStereo(left[i], right[i])
		}

		gotL := append([]float64(nil), left...)
		gotR := append([]float64(nil), right...)
		blockInst.ProcessBlockStereo(gotL, gotR)

		for i := range wantL {
			if gotL[i] != wantL[i] || gotR[i] != wantR[i] {
				t.Fatalf("%s: stereo block diverges at frame %d", desc.ID, i)
			}
		}
	}
}

// TestBuiltins_ResetSilences drives every effect with signal, resets
// it, and checks that zero input then produces exactly zero output:
// no delay-line, filter, or envelope memory may survive Reset.
func TestBuiltins_ResetSilences(t *testing.T) {
	t.Parallel()

	reg := DefaultRegistry()
	input := testSignal(4800)

	for _, desc := range reg.List() {
		inst, err := reg.Create(desc.ID, testSampleRate)
		if err != nil {
			t.Fatalf("%s: Create: %v", desc.ID, err)
		}

		for _, x := range input {
			inst.ProcessSample(x)
			inst.ProcessSampleStereo(x, -x)
		}

		inst.Reset()

		for i := 0; i < 1000; i++ {
			if out := inst.ProcessSample(0); out != 0 {
				t.Fatalf("%s: sample %d after Reset = %v, want 0", desc.ID, i, out)
			}
		}
	}
}

// TestBuiltins_ParamsClampNotReject checks that out-of-range values
// are accepted, clamped to the declared range, and observable through
// GetParam.
func TestBuiltins_ParamsClampNotReject(t *testing.T) {
	t.Parallel()

	reg := DefaultRegistry()

	for _, desc := range reg.List() {
		inst, err := reg.Create(desc.ID, testSampleRate)
		if err != nil {
			t.Fatalf("%s: Create: %v", desc.ID, err)
		}

		for _, p := range desc.Params {
			if err := inst.SetParam(p.Index, p.Max+1000); err != nil {
				t.Fatalf("%s/%s: SetParam above max: %v", desc.ID, p.Name, err)
			}

			if got, _ := inst.GetParam(p.Index); got != p.Max {
				t.Errorf("%s/%s: clamped high = %v, want %v", desc.ID, p.Name, got, p.Max)
			}

			if err := inst.SetParam(p.Index, p.Min-1000); err != nil {
				t.Fatalf("%s/%s: SetParam below min: %v", desc.ID, p.Name, err)
			}

			if got, _ := inst.GetParam(p.Index); got != p.Min {
				t.Errorf("%s/%s: clamped low = %v, want %v", desc.ID, p.Name, got, p.Min)
			}
		}

		if err := inst.SetParam(len(desc.Params), 0); err == nil {
			t.Errorf("%s: out-of-range index accepted", desc.ID)
		}
	}
}

func TestBuiltins_Latency(t *testing.T) {
	t.Parallel()

	reg := DefaultRegistry()

	for _, desc := range reg.List() {
		inst, err := reg.Create(desc.ID, testSampleRate)
		if err != nil {
			t.Fatalf("%s: Create: %v", desc.ID, err)
		}

		if inst.Latency() < 0 {
			t.Errorf("%s: negative latency %d", desc.ID, inst.Latency())
		}
	}
}

// TestLimiter_LatencyTracksLookahead pins the one nonzero-latency
// unit: the reported latency is the lookahead converted to samples.
func TestLimiter_LatencyTracksLookahead(t *testing.T) {
	t.Parallel()

	reg := DefaultRegistry()

	inst, err := reg.Create("limiter", testSampleRate)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Default lookahead is 3 ms.
	if got, want := inst.Latency(), 144; got != want {
		t.Errorf("default latency = %d, want %d", got, want)
	}

	idx, err := reg.ParamIndexByName("limiter", "lookahead")
	if err != nil {
		t.Fatalf("ParamIndexByName: %v", err)
	}

	if err := inst.SetParam(idx, 10); err != nil {
		t.Fatalf("SetParam: %v", err)
	}

	if got, want := inst.Latency(), 480; got != want {
		t.Errorf("latency after 10 ms lookahead = %d, want %d", got, want)
	}
}
