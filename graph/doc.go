// Package graph models effect topologies as trees of chains and
// parallel splits, compiles them into a flat, allocation-free program
// over a fixed set of block buffers, and runs that program on audio
// blocks. Parallel branches of unequal latency are aligned at the
// merge point with compensation delay lines, so a split of a delayed
// and an undelayed path sums coincident samples.
//
// Compiled graphs are swapped under a running audio callback through
// Live, which hands off atomically without locking the audio thread.
package graph
