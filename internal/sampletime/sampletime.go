// Package sampletime implements the engine's 32-bit wrapping sample
// counter and the arithmetic needed to schedule commands relative to it.
package sampletime

// Time is an absolute sample index since engine start, modulo 2^32.
type Time uint32

// BufferSize is the default render window, in samples. Engine.render
// advances the clock by the actual buffer length rendered, not this
// constant, so alternate window sizes (see engine.WithBufferSize)
// still advance the clock correctly.
const BufferSize = 2048

// Add returns t+delta (mod 2^32) and whether that addition wrapped
// past the top of the 32-bit range.
func (t Time) Add(delta uint32) (result Time, wrapped bool) {
	result = t + Time(delta)
	wrapped = result < t
	return result, wrapped
}

// Before reports whether t occurs strictly before other within the
// current (non-wrapped) epoch. It is plain unsigned comparison; callers
// are responsible for having already resolved which epoch a value
// belongs to (see the pre-wrap/post-wrap queue split in package
// schedule).
func (t Time) Before(other Time) bool {
	return t < other
}
