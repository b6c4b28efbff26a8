package graph

import (
	"runtime"
	"sync/atomic"
)

// Live routes audio through a compiled graph that can be replaced
// while processing runs. One goroutine processes, one swaps; neither
// blocks the other with a lock and the audio path never allocates.
//
// The handoff is a generation counter: the audio thread marks itself
// in-block (odd) before loading the graph pointer and out-of-block
// (even) after. Swap publishes the new graph, then waits out any block
// that may still run on the old one before handing it back.
type Live struct {
	cur atomic.Pointer[Compiled]
	gen atomic.Uint64
}

// NewLive starts with g as the active graph.
func NewLive(g *Compiled) *Live {
	l := &Live{}
	l.cur.Store(g)

	return l
}

// ProcessBlock processes a mono buffer through the active graph.
// Audio-thread side; not reentrant.
func (l *Live) ProcessBlock(buf []float64) {
	l.gen.Add(1)
	l.cur.Load().ProcessBlock(buf)
	l.gen.Add(1)
}

// ProcessBlockStereo processes a stereo pair through the active graph.
// Audio-thread side; not reentrant.
func (l *Live) ProcessBlockStereo(left, right []float64) {
	l.gen.Add(1)
	l.cur.Load().ProcessBlockStereo(left, right)
	l.gen.Add(1)
}

// Swap installs next as the active graph and returns the retired one.
// It returns only after any in-flight block has finished, so the
// caller may immediately reset or discard the retired graph. Audio is
// never interrupted: the running block completes on whichever graph
// it loaded. Control-thread side; not safe for concurrent swappers.
func (l *Live) Swap(next *Compiled) *Compiled {
	prev := l.cur.Swap(next)

	// An odd generation is a block that may have loaded prev; once the
	// counter moves, that block is done. Later blocks see next.
	if g := l.gen.Load(); g%2 == 1 {
		for l.gen.Load() == g {
			runtime.Gosched()
		}
	}

	return prev
}

// Graph returns the currently active graph.
func (l *Live) Graph() *Compiled {
	return l.cur.Load()
}

// TotalLatency reports the active graph's latency in samples.
func (l *Live) TotalLatency() int {
	return l.cur.Load().TotalLatency()
}
