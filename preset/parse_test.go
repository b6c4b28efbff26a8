package preset

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-fxgraph/effect"
	"github.com/cwbudde/algo-fxgraph/graph"
)

func compileString(t *testing.T, s string) *graph.Compiled {
	t.Helper()

	node, err := Parse(s)
	if err != nil {
		t.Fatalf("Parse(%q): %v", s, err)
	}

	g, err := graph.Compile(node, graph.WithBlockSize(64))
	if err != nil {
		t.Fatalf("Compile(%q): %v", s, err)
	}

	return g
}

func TestParse_Passthrough(t *testing.T) {
	t.Parallel()

	g := compileString(t, "-")

	buf := []float64{1, -0.5, 0.25}
	want := append([]float64(nil), buf...)
	g.ProcessBlock(buf)

	for i := range buf {
		if buf[i] != want[i] {
			t.Fatalf("passthrough altered sample %d: %v", i, buf[i])
		}
	}
}

func TestParse_ChainAppliesStagesInOrder(t *testing.T) {
	t.Parallel()

	g := compileString(t, "gain:db=-6|gain:db=-6")

	if n := len(g.Leaves()); n != 2 {
		t.Fatalf("chain produced %d leaves, want 2", n)
	}

	// Two -6 dB stages settle at -12 dB total.
	buf := make([]float64, 48000)
	for i := range buf {
		buf[i] = 1
	}

	g.ProcessBlock(buf)

	want := math.Pow(10, -12.0/20)
	if got := buf[len(buf)-1]; math.Abs(got-want) > 1e-3 {
		t.Errorf("settled gain = %v, want %v", got, want)
	}
}

func TestParse_SplitSumsBranches(t *testing.T) {
	t.Parallel()

	g := compileString(t, "split(-;-)")

	buf := []float64{1, 0, 0, 0}
	g.ProcessBlock(buf)

	if buf[0] != 2 {
		t.Errorf("sum of two passthroughs = %v, want 2", buf[0])
	}
}

func TestParse_AvgAveragesBranches(t *testing.T) {
	t.Parallel()

	g := compileString(t, "avg(-;-;-)")

	buf := []float64{0.9, 0, 0, 0}
	g.ProcessBlock(buf)

	if math.Abs(buf[0]-0.9) > 1e-15 {
		t.Errorf("avg of identical branches = %v, want 0.9", buf[0])
	}
}

func TestParse_NestedSplits(t *testing.T) {
	t.Parallel()

	g := compileString(t, "split(split(-;-);-)|gain:db=0")

	buf := []float64{1, 0}
	g.ProcessBlock(buf)

	// Inner split doubles, outer adds the passthrough: 2 + 1.
	if buf[0] != 3 {
		t.Errorf("nested split sum = %v, want 3", buf[0])
	}
}

func TestParse_ParamsReachTheInstance(t *testing.T) {
	t.Parallel()

	g := compileString(t, "delay:time=0.5,feedback=0.7,mix=1")

	leaves := g.Leaves()
	if len(leaves) != 1 {
		t.Fatalf("len(leaves) = %d", len(leaves))
	}

	checks := []struct {
		name string
		want float64
	}{
		{"time", 0.5},
		{"feedback", 0.7},
		{"mix", 1},
	}

	reg := effect.DefaultRegistry()

	for _, c := range checks {
		i, err := reg.ParamIndexByName("delay", c.name)
		if err != nil {
			t.Fatalf("ParamIndexByName: %v", err)
		}

		if v, _ := leaves[0].GetParam(i); v != c.want {
			t.Errorf("%s = %v, want %v", c.name, v, c.want)
		}
	}
}

func TestParse_WhitespaceTolerated(t *testing.T) {
	t.Parallel()

	if _, err := Parse(" gain : db = -6 | split( - ; - ) "); err != nil {
		t.Fatalf("Parse with spaces: %v", err)
	}
}

func TestParse_SyntaxErrors(t *testing.T) {
	t.Parallel()

	cases := []string{
		"",
		"|gain",
		"gain|",
		"split()",
		"split(-;-",
		"split(-;)",
		"gain:db",
		"gain:=3",
		"gain:db=abc",
		"gain:db=1,",
		"-)",
		"a b",
	}

	for _, src := range cases {
		if _, err := Parse(src); !errors.Is(err, ErrSyntax) {
			t.Errorf("Parse(%q): want ErrSyntax, got %v", src, err)
		}
	}
}

func TestParse_UnknownEffectFailsAtCompile(t *testing.T) {
	t.Parallel()

	node, err := Parse("no_such_effect:x=1")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if _, err := graph.Compile(node); !errors.Is(err, effect.ErrNotFound) {
		t.Fatalf("Compile: want effect.ErrNotFound, got %v", err)
	}
}
