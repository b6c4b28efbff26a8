package smooth

import (
	"math"
	"sync"
	"testing"
)

const testSampleRate = 48000.0

func TestNewRejectsBadArguments(t *testing.T) {
	t.Parallel()

	if _, err := New(Linear, 0, RampStandardMs, 0); err == nil {
		t.Error("expected error for zero sample rate")
	}

	if _, err := New(Linear, testSampleRate, 0, 0); err == nil {
		t.Error("expected error for zero ramp time")
	}

	if _, err := New(Exponential, math.NaN(), RampStandardMs, 0); err == nil {
		t.Error("expected error for NaN sample rate")
	}
}

func TestLinearReachesTargetWithinRampTime(t *testing.T) {
	t.Parallel()

	v, err := New(Linear, testSampleRate, RampFastMs, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	v.SetTarget(1)

	n := int(RampFastMs*0.001*testSampleRate) + 1
	var last float64
	for range n {
		last = v.Advance()
	}

	if last != 1 {
		t.Errorf("linear ramp should terminate exactly on target, got %v", last)
	}
}

func TestExponentialConvergesWithinTolerance(t *testing.T) {
	t.Parallel()

	v, err := New(Exponential, testSampleRate, RampStandardMs, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	v.SetTarget(2)

	n := int(RampStandardMs*0.001*testSampleRate) + 8
	var last float64
	for range n {
		last = v.Advance()
	}

	if math.Abs(last-2) > 2*0.001 {
		t.Errorf("expected convergence within 0.1%% after ramp time, got %v", last)
	}
}

func TestAdvanceMonotonicAndSlewBounded(t *testing.T) {
	t.Parallel()

	for name, mode := range map[string]Mode{"linear": Linear, "exponential": Exponential} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			v, err := New(mode, testSampleRate, RampStandardMs, 0)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			v.SetTarget(1)

			maxStep := v.MaxStep()
			prev := 0.0
			for i := range 4 * int(RampStandardMs*0.001*testSampleRate) {
				step := v.MaxStep()
				cur := v.Advance()

				if cur < prev {
					t.Fatalf("sample %d: value decreased from %v to %v", i, prev, cur)
				}

				if d := cur - prev; d > step+1e-15 || d > maxStep+1e-15 {
					t.Fatalf("sample %d: step %v exceeds slew bound %v", i, d, maxStep)
				}

				prev = cur
			}
		})
	}
}

func TestRetargetMidRamp(t *testing.T) {
	t.Parallel()

	v, err := New(Linear, testSampleRate, RampStandardMs, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	v.SetTarget(1)
	for range 100 {
		v.Advance()
	}

	mid := v.Current()
	if mid <= 0 || mid >= 1 {
		t.Fatalf("expected ramp in progress, got %v", mid)
	}

	// Reverse direction; the value must turn around without a jump.
	v.SetTarget(-1)

	first := v.Advance()
	if math.Abs(first-mid) > v.MaxStep()+1e-15 {
		t.Errorf("retarget caused a discontinuity: %v -> %v", mid, first)
	}

	for range 10 * int(RampStandardMs*0.001*testSampleRate) {
		v.Advance()
	}

	if v.Current() != -1 {
		t.Errorf("expected ramp to land on -1, got %v", v.Current())
	}
}

func TestSnapAndReset(t *testing.T) {
	t.Parallel()

	v, err := New(Exponential, testSampleRate, RampSlowMs, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	v.Snap(0.5)

	if v.Current() != 0.5 || v.Target() != 0.5 {
		t.Errorf("snap should move current and target, got %v / %v", v.Current(), v.Target())
	}

	v.SetTarget(1)
	v.Reset()

	if v.Current() != 1 {
		t.Errorf("reset should land on pending target, got %v", v.Current())
	}

	if v.Advance() != 1 {
		t.Error("advance after reset should hold the target")
	}
}

func TestSetTargetConcurrentWithAdvance(t *testing.T) {
	t.Parallel()

	v, err := New(Exponential, testSampleRate, RampFastMs, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()

		for i := range 10000 {
			v.SetTarget(float64(i % 2))
		}
	}()

	for range 10000 {
		got := v.Advance()
		if got < -1e-9 || got > 1+1e-9 {
			t.Errorf("advance escaped target envelope: %v", got)
			break
		}
	}

	wg.Wait()
}

func TestSetSampleRatePreservesPosition(t *testing.T) {
	t.Parallel()

	v, err := New(Linear, testSampleRate, RampStandardMs, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	v.SetTarget(1)
	for range 50 {
		v.Advance()
	}

	pos := v.Current()

	if err := v.SetSampleRate(2 * testSampleRate); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if v.Current() != pos {
		t.Errorf("sample rate change moved the ramp: %v -> %v", pos, v.Current())
	}

	for range 4 * int(RampStandardMs*0.001*2*testSampleRate) {
		v.Advance()
	}

	if v.Current() != 1 {
		t.Errorf("ramp did not complete after rate change: %v", v.Current())
	}
}
