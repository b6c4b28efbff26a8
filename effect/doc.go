// Package effect defines the processing contract shared by all effect
// units, parameter introspection over them, and the registry that
// builds instances by name.
//
// An [Effect] processes audio one sample or one block at a time, in
// mono or stereo; block methods are bit-identical to per-sample
// iteration. An [Instance] adds index-based parameter access with
// range clamping, which is what registry-driven front ends and
// automation use. The built-in roster wraps units from
// github.com/cwbudde/algo-dsp behind this contract.
package effect
