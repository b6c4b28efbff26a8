package graph

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-dsp/dsp/delay"

	"github.com/cwbudde/algo-fxgraph/effect"
)

const (
	// DefaultSampleRate is used when WithSampleRate is not given.
	DefaultSampleRate = 48000.0
	// DefaultBlockSize is used when WithBlockSize is not given.
	DefaultBlockSize = 1024
	// DefaultMaxDepth bounds topology nesting.
	DefaultMaxDepth = 64
)

var (
	// ErrEmptySplit is returned for a split with no branches: it has
	// no defined output.
	ErrEmptySplit = errors.New("graph: split has no branches")
	// ErrDepthExceeded is returned when topology nesting exceeds the
	// configured ceiling.
	ErrDepthExceeded = errors.New("graph: depth limit exceeded")

	errNilNode = errors.New("graph: nil node")
)

// Option configures Compile.
type Option func(*config) error

type config struct {
	sampleRate float64
	blockSize  int
	registry   *effect.Registry
	maxDepth   int
}

func defaultConfig() config {
	return config{
		sampleRate: DefaultSampleRate,
		blockSize:  DefaultBlockSize,
		maxDepth:   DefaultMaxDepth,
	}
}

// WithSampleRate sets the sample rate in Hz.
func WithSampleRate(sampleRate float64) Option {
	return func(c *config) error {
		if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
			return fmt.Errorf("graph: sample rate must be > 0: %f", sampleRate)
		}

		c.sampleRate = sampleRate

		return nil
	}
}

// WithBlockSize sets the internal processing block size in samples.
func WithBlockSize(blockSize int) Option {
	return func(c *config) error {
		if blockSize <= 0 {
			return fmt.Errorf("graph: block size must be > 0: %d", blockSize)
		}

		c.blockSize = blockSize

		return nil
	}
}

// WithRegistry sets the registry used to resolve NewRef nodes.
// Without it, refs resolve against effect.DefaultRegistry().
func WithRegistry(r *effect.Registry) Option {
	return func(c *config) error {
		if r == nil {
			return errors.New("graph: nil registry")
		}

		c.registry = r

		return nil
	}
}

// WithMaxDepth sets the topology nesting ceiling.
func WithMaxDepth(depth int) Option {
	return func(c *config) error {
		if depth <= 0 {
			return fmt.Errorf("graph: max depth must be > 0: %d", depth)
		}

		c.maxDepth = depth

		return nil
	}
}

// resolved is a topology node after validation: refs are instantiated,
// parameters applied, and the subtree latency is known.
type resolved struct {
	kind     nodeKind
	fx       effect.Instance
	children []*resolved
	policy   MergePolicy
	latency  int
}

// Compile validates and resolves root, then flattens it into a fixed
// program over pre-allocated block buffers. On any error nothing is
// produced; note that caller-owned NewLeaf instances may already have
// been retuned to the compile sample rate by the time resolution
// fails elsewhere in the tree.
//
// Latency model: a leaf contributes its reported Latency, a chain the
// sum of its stages, a split the maximum over its branches. Each
// branch shorter than the split maximum gets a compensation delay of
// the difference, so branches merge time-aligned.
func Compile(root *Node, opts ...Option) (*Compiled, error) {
	cfg := defaultConfig()

	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if cfg.registry == nil {
		cfg.registry = effect.DefaultRegistry()
	}

	b := &builder{cfg: cfg}

	r, err := b.resolve(root, 0)
	if err != nil {
		return nil, err
	}

	in := b.alloc.get()
	if err := b.emit(r, in); err != nil {
		return nil, err
	}

	bufs := make([][2][]float64, b.alloc.peak)
	for i := range bufs {
		bufs[i] = [2][]float64{
			make([]float64, cfg.blockSize),
			make([]float64, cfg.blockSize),
		}
	}

	return &Compiled{
		ops:        b.ops,
		bufs:       bufs,
		leaves:     b.leaves,
		latency:    r.latency,
		blockSize:  cfg.blockSize,
		sampleRate: cfg.sampleRate,
	}, nil
}

type builder struct {
	cfg    config
	alloc  bufAlloc
	ops    []op
	leaves []effect.Instance
}

func (b *builder) resolve(n *Node, depth int) (*resolved, error) {
	if n == nil {
		return nil, errNilNode
	}

	if depth > b.cfg.maxDepth {
		return nil, fmt.Errorf("%w: %d", ErrDepthExceeded, b.cfg.maxDepth)
	}

	switch n.kind {
	case kindLeaf:
		if err := n.fx.SetSampleRate(b.cfg.sampleRate); err != nil {
			return nil, fmt.Errorf("graph: leaf sample rate: %w", err)
		}

		return &resolved{kind: kindLeaf, fx: n.fx, latency: n.fx.Latency()}, nil

	case kindRef:
		inst, err := b.cfg.registry.Create(n.refID, b.cfg.sampleRate)
		if err != nil {
			return nil, err
		}

		for _, p := range n.refParams {
			i, err := b.cfg.registry.ParamIndexByName(n.refID, p.Name)
			if err != nil {
				return nil, err
			}

			if err := inst.SetParam(i, p.Value); err != nil {
				return nil, fmt.Errorf("graph: %s %s=%v: %w", n.refID, p.Name, p.Value, err)
			}
		}

		return &resolved{kind: kindLeaf, fx: inst, latency: inst.Latency()}, nil

	case kindChain:
		out := &resolved{kind: kindChain}

		for _, c := range n.children {
			rc, err := b.resolve(c, depth+1)
			if err != nil {
				return nil, err
			}

			out.children = append(out.children, rc)
			out.latency += rc.latency
		}

		return out, nil

	case kindSplit:
		if len(n.children) == 0 {
			return nil, ErrEmptySplit
		}

		out := &resolved{kind: kindSplit, policy: n.policy}

		for _, c := range n.children {
			rc, err := b.resolve(c, depth+1)
			if err != nil {
				return nil, err
			}

			out.children = append(out.children, rc)
			out.latency = max(out.latency, rc.latency)
		}

		return out, nil

	default:
		return nil, fmt.Errorf("graph: unknown node kind %d", n.kind)
	}
}

// emit appends ops that transform the signal in buffer buf in place.
func (b *builder) emit(r *resolved, buf int) error {
	switch r.kind {
	case kindLeaf:
		b.leaves = append(b.leaves, r.fx)
		b.ops = append(b.ops, op{kind: opEffect, fx: r.fx, dst: buf})

		return nil

	case kindChain:
		for _, c := range r.children {
			if err := b.emit(c, buf); err != nil {
				return err
			}
		}

		return nil

	case kindSplit:
		return b.emitSplit(r, buf)

	default:
		return fmt.Errorf("graph: unknown resolved kind %d", r.kind)
	}
}

// emitSplit fans buf out to each branch, aligns branch latencies, and
// accumulates the merge in declaration order. The last branch runs on
// the input buffer itself; earlier branches get a scratch copy.
func (b *builder) emitSplit(r *resolved, buf int) error {
	acc := b.alloc.get()
	last := len(r.children) - 1

	for i, branch := range r.children {
		work := buf
		if i != last {
			work = b.alloc.get()
			b.ops = append(b.ops, op{kind: opCopy, src: buf, dst: work})
		}

		if err := b.emit(branch, work); err != nil {
			return err
		}

		if comp := r.latency - branch.latency; comp > 0 {
			left, err := delay.New(comp)
			if err != nil {
				return fmt.Errorf("graph: compensation line: %w", err)
			}

			right, err := delay.New(comp)
			if err != nil {
				return fmt.Errorf("graph: compensation line: %w", err)
			}

			b.ops = append(b.ops, op{
				kind:  opComp,
				lines: [2]*delay.Line{left, right},
				delay: comp,
				dst:   work,
			})
		}

		if i == 0 {
			b.ops = append(b.ops, op{kind: opCopy, src: work, dst: acc})
		} else {
			b.ops = append(b.ops, op{kind: opAdd, src: work, dst: acc})
		}

		if i != last {
			b.alloc.put(work)
		}
	}

	if r.policy == MergeAverage {
		b.ops = append(b.ops, op{
			kind:  opScale,
			dst:   acc,
			scale: 1 / float64(len(r.children)),
		})
	}

	b.ops = append(b.ops, op{kind: opCopy, src: acc, dst: buf})
	b.alloc.put(acc)

	return nil
}

// bufAlloc hands out buffer slots stack-wise so sibling branches and
// sequential splits reuse the same scratch space. peak is the number
// of buffers the compiled program needs.
type bufAlloc struct {
	next int
	peak int
	free []int
}

func (a *bufAlloc) get() int {
	if n := len(a.free); n > 0 {
		id := a.free[n-1]
		a.free = a.free[:n-1]

		return id
	}

	id := a.next
	a.next++
	a.peak = a.next

	return id
}

func (a *bufAlloc) put(id int) {
	a.free = append(a.free, id)
}
