package sink

import (
	"context"
	"sync"
)

// MockSink is an in-memory Sink for tests. It never touches real
// audio hardware: Submit records the buffer and, if auto-consume is
// enabled, immediately fires the corresponding Consumed channel so the
// worker's render loop advances without a real playback device.
type MockSink struct {
	sampleRate uint32

	mu         sync.Mutex
	rendered   [][]float32 // every buffer submitted, in submission order
	consumed   [2]chan struct{}
	autoDrain  bool
	startCount int
	stopCount  int
}

// MockOpener opens a MockSink. It implements sink.Opener.
type MockOpener struct {
	SampleRate uint32
	// AutoDrain, when true, signals Consumed immediately on Submit,
	// as if the buffer played instantly. Tests that want to control
	// pacing themselves should leave this false and call Drain.
	AutoDrain bool
}

func (o MockOpener) Open(_ context.Context, _ int) (Sink, error) {
	s := &MockSink{
		sampleRate: o.SampleRate,
		autoDrain:  o.AutoDrain,
	}
	s.consumed[0] = make(chan struct{}, 1)
	s.consumed[1] = make(chan struct{}, 1)
	return s, nil
}

func (s *MockSink) SampleRate() uint32 { return s.sampleRate }

func (s *MockSink) Submit(buf Buffer) error {
	s.mu.Lock()
	cp := make([]float32, len(buf.Samples))
	copy(cp, buf.Samples)
	s.rendered = append(s.rendered, cp)
	s.mu.Unlock()

	if s.autoDrain {
		s.Drain(buf.Index)
	}
	return nil
}

// Drain manually fires the Consumed signal for index, for tests that
// want to step the worker one buffer at a time.
func (s *MockSink) Drain(index int) {
	select {
	case s.consumed[index] <- struct{}{}:
	default:
	}
}

func (s *MockSink) Consumed(index int) <-chan struct{} {
	return s.consumed[index]
}

func (s *MockSink) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.startCount++
	return nil
}

func (s *MockSink) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopCount++
	return nil
}

func (s *MockSink) Close() error { return nil }

// Rendered returns every buffer submitted so far, in order. Intended
// for assertions in tests.
func (s *MockSink) Rendered() [][]float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([][]float32, len(s.rendered))
	copy(out, s.rendered)
	return out
}
