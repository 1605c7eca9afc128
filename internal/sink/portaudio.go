package sink

import (
	"context"
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// PortAudioSink backs the engine with the host's default audio output
// device via PortAudio. PortAudio's own API is a single pull callback
// invoked once per framesPerBuffer; this adapts that into the
// submit/consumed double-buffer protocol the engine expects by setting
// framesPerBuffer equal to the engine's buffer size, so one callback
// invocation drains exactly one submitted Buffer.
type PortAudioSink struct {
	stream     *portaudio.Stream
	sampleRate uint32
	ready      chan Buffer
	consumed   [2]chan struct{}
}

// PortAudioOpener opens a PortAudioSink. It implements sink.Opener.
type PortAudioOpener struct {
	// SampleRateHint requests a sample rate from the device; 0 defers
	// to the default output device's native rate.
	SampleRateHint float64
}

// Open initializes PortAudio and opens the default output stream.
func (o PortAudioOpener) Open(_ context.Context, bufferSize int) (Sink, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("portaudio: initialize: %w", err)
	}

	s := &PortAudioSink{
		ready: make(chan Buffer, 2),
	}
	s.consumed[0] = make(chan struct{}, 1)
	s.consumed[1] = make(chan struct{}, 1)

	stream, err := portaudio.OpenDefaultStream(0, 1, o.SampleRateHint, bufferSize, s.fill)
	if err != nil {
		_ = portaudio.Terminate()
		return nil, fmt.Errorf("portaudio: open default stream: %w", err)
	}
	s.stream = stream
	s.sampleRate = uint32(stream.Info().SampleRate)

	return s, nil
}

// fill is the PortAudio pull callback: it blocks for the next
// submitted buffer, copies it into out, and signals that buffer index
// consumed. It must never block on anything but s.ready, and the
// engine's submit/resubmit discipline guarantees a buffer is always
// ready in time.
func (s *PortAudioSink) fill(out []float32) {
	buf := <-s.ready
	copy(out, buf.Samples)

	select {
	case s.consumed[buf.Index] <- struct{}{}:
	default:
	}
}

func (s *PortAudioSink) SampleRate() uint32 { return s.sampleRate }

func (s *PortAudioSink) Submit(buf Buffer) error {
	s.ready <- buf
	return nil
}

func (s *PortAudioSink) Consumed(index int) <-chan struct{} {
	return s.consumed[index]
}

func (s *PortAudioSink) Start() error {
	return s.stream.Start()
}

func (s *PortAudioSink) Stop() error {
	return s.stream.Stop()
}

func (s *PortAudioSink) Close() error {
	err := s.stream.Close()
	if termErr := portaudio.Terminate(); err == nil {
		err = termErr
	}
	return err
}
