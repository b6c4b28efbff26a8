// Package smooth provides per-sample parameter ramps.
//
// A control value that jumps between audio blocks produces an audible
// click. A [Value] converts such jumps into a per-sample ramp: the
// control thread stores a target at any time, the audio thread calls
// Advance once per sample and applies the returned value. The target
// store is a single atomic write, so no lock is ever taken on either
// side.
package smooth
