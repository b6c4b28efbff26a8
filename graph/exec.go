package graph

import (
	"github.com/cwbudde/algo-dsp/dsp/delay"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-fxgraph/effect"
)

type opKind int

const (
	// opEffect runs an effect instance on dst in place.
	opEffect opKind = iota
	// opComp delays dst by a fixed sample count for branch alignment.
	opComp
	// opCopy copies src into dst.
	opCopy
	// opAdd accumulates src into dst.
	opAdd
	// opScale multiplies dst by a constant.
	opScale
)

type op struct {
	kind  opKind
	fx    effect.Instance
	lines [2]*delay.Line
	delay int
	src   int
	dst   int
	scale float64
}

// Compiled is an executable effect graph. All buffers are allocated
// at compile time; processing allocates nothing. A Compiled is not
// safe for concurrent use; hand it to one goroutine, or route calls
// through Live.
type Compiled struct {
	ops        []op
	bufs       [][2][]float64
	leaves     []effect.Instance
	latency    int
	blockSize  int
	sampleRate float64
}

// ProcessBlock processes a mono buffer in place. Buffers longer than
// the compiled block size are processed in consecutive chunks, so any
// input length yields the same sample stream.
func (c *Compiled) ProcessBlock(buf []float64) {
	for start := 0; start < len(buf); start += c.blockSize {
		end := min(start+c.blockSize, len(buf))
		c.runChunk(buf[start:end], nil)
	}
}

// ProcessBlockStereo processes a stereo buffer pair in place. Only the
// common prefix of the two channels is processed.
func (c *Compiled) ProcessBlockStereo(left, right []float64) {
	n := min(len(left), len(right))
	for start := 0; start < n; start += c.blockSize {
		end := min(start+c.blockSize, n)
		c.runChunk(left[start:end], right[start:end])
	}
}

// runChunk executes the op list on one chunk of at most blockSize
// samples. Buffer 0 carries the chunk through the program. A nil
// right channel selects the mono path.
func (c *Compiled) runChunk(left, right []float64) {
	n := len(left)
	stereo := right != nil
	root := &c.bufs[0]

	copy(root[0][:n], left)

	if stereo {
		copy(root[1][:n], right)
	}

	for i := range c.ops {
		o := &c.ops[i]
		dst := &c.bufs[o.dst]

		switch o.kind {
		case opEffect:
			if stereo {
				o.fx.ProcessBlockStereo(dst[0][:n], dst[1][:n])
			} else {
				o.fx.ProcessBlock(dst[0][:n])
			}

		case opComp:
			runLine(o.lines[0], o.delay, dst[0][:n])

			if stereo {
				runLine(o.lines[1], o.delay, dst[1][:n])
			}

		case opCopy:
			src := &c.bufs[o.src]
			copy(dst[0][:n], src[0][:n])

			if stereo {
				copy(dst[1][:n], src[1][:n])
			}

		case opAdd:
			src := &c.bufs[o.src]
			vecmath.AddBlockInPlace(dst[0][:n], src[0][:n])

			if stereo {
				vecmath.AddBlockInPlace(dst[1][:n], src[1][:n])
			}

		case opScale:
			vecmath.ScaleBlock(dst[0][:n], dst[0][:n], o.scale)

			if stereo {
				vecmath.ScaleBlock(dst[1][:n], dst[1][:n], o.scale)
			}
		}
	}

	copy(left, root[0][:n])

	if stereo {
		copy(right, root[1][:n])
	}
}

// runLine pushes buf through a fixed delay line in place. Reading
// before writing yields the sample written n calls ago, so a line of
// size n delays by exactly n samples.
func runLine(ln *delay.Line, n int, buf []float64) {
	for i, x := range buf {
		buf[i] = ln.Read(n)
		ln.Write(x)
	}
}

// TotalLatency returns the end-to-end latency of the graph in samples.
func (c *Compiled) TotalLatency() int { return c.latency }

// BlockSize returns the compiled processing block size.
func (c *Compiled) BlockSize() int { return c.blockSize }

// SampleRate returns the compile sample rate in Hz.
func (c *Compiled) SampleRate() float64 { return c.sampleRate }

// Leaves returns the graph's effect instances in execution order, for
// parameter automation. Callers must not process through them.
func (c *Compiled) Leaves() []effect.Instance { return c.leaves }

// Reset zeroes every effect and every compensation line.
func (c *Compiled) Reset() {
	for _, fx := range c.leaves {
		fx.Reset()
	}

	for i := range c.ops {
		if c.ops[i].kind != opComp {
			continue
		}

		for _, ln := range c.ops[i].lines {
			if ln != nil {
				ln.Reset()
			}
		}
	}
}
