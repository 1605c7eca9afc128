// Package sink defines the abstract audio output the engine renders
// into, and the handshake a concrete sink must honor: the worker
// pre-submits two buffers, and on each "consumed" signal it refills
// and resubmits exactly that buffer.
package sink

import "context"

// Buffer is a PCM buffer submitted to a Sink. Index identifies which
// of the two outstanding buffers this is (0 or 1); Samples is the
// borrowed, mutable backing store the worker renders into.
type Buffer struct {
	Index   int
	Samples []float32
}

// Sink is the abstract audio output consumed by the engine core. A
// concrete Sink owns exactly the host audio API calls; everything
// above this interface is host-agnostic.
type Sink interface {
	// SampleRate returns the rate the sink was opened at.
	SampleRate() uint32

	// Submit hands buf to the sink for playback. The caller retains
	// the slice and must not touch it again until Consumed() for the
	// same Index fires.
	Submit(buf Buffer) error

	// Consumed returns the channel that fires once per buffer-full of
	// playback completed for the given buffer index. The channel is
	// effectively auto-reset: each firing corresponds to exactly one
	// completed buffer.
	Consumed(index int) <-chan struct{}

	// Start begins playback. Both buffers must already be submitted.
	Start() error

	// Stop halts playback. Safe to call more than once.
	Stop() error

	// Close releases all host resources. Safe to call after Stop.
	Close() error
}

// Opener creates and opens a concrete Sink, mirroring the abstract
// init()/create_output() pair from the external-interface contract:
// negotiating the sample rate is the host's job, not the engine's.
type Opener interface {
	Open(ctx context.Context, bufferSize int) (Sink, error)
}
