// Package engine implements the audio scheduling and rendering
// pipeline: a dedicated worker goroutine that owns a double-buffered
// output ring, ingests client commands, maintains the wrap-aware
// priority queues of pending beeps/events, and fulfills blocking
// "wait for event" requests.
package engine

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/doismellburning/beepengine/internal/events"
	"github.com/doismellburning/beepengine/internal/sampletime"
	"github.com/doismellburning/beepengine/internal/schedule"
	"github.com/doismellburning/beepengine/internal/sink"
	"github.com/doismellburning/beepengine/internal/voice"
)

// EventSentinel is the reserved event id used internally by Beep.
const EventSentinel uint32 = 0xFFFFEA8B

// Sentinel errors for the kinds in spec §7. Everything except
// ErrSubmitFailure is recovered locally; ErrSubmitFailure terminates
// the worker.
var (
	ErrSinkInit      = errors.New("engine: sink initialization failed")
	ErrThreadStart   = errors.New("engine: worker failed to start")
	ErrSubmitFailure = errors.New("engine: buffer submission failed")
)

type state int

const (
	stateUninitialized state = iota
	stateInitialized
	stateRunning
	stateStopped
)

// Engine is the public surface: Start/Stop lifecycle, Beep
// convenience, batch scheduling, and blocking event waits.
type Engine struct {
	opener sink.Opener
	logger *log.Logger

	bufferSize  int
	initialTime sampletime.Time

	mu    sync.Mutex
	state state

	stopCh chan struct{}
	doneCh chan struct{}

	cmdCh *commandChannel

	// Worker-owned scheduling state. Touched only from the worker
	// goroutine once runLoop starts.
	snk         sink.Sink
	buffers     [2][]float32
	currentTime sampletime.Time
	preWrap     schedule.Queue
	postWrap    schedule.Queue
	registry    *events.Registry
	voices      []*voice.Voice
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithBufferSize overrides the render window size. Production callers
// should not use this; it exists so tests can exercise wrap and
// multi-buffer behavior without rendering thousands of real samples.
func WithBufferSize(n int) Option {
	return func(e *Engine) { e.bufferSize = n }
}

// WithInitialTime seeds the sample clock at t instead of 0. Production
// callers should not use this; it exists so tests can exercise wrap
// behavior without rendering billions of samples to reach it.
func WithInitialTime(t sampletime.Time) Option {
	return func(e *Engine) { e.initialTime = t }
}

// New creates an Engine that will render through the sink opener.
func New(opener sink.Opener, logger *log.Logger, opts ...Option) *Engine {
	e := &Engine{
		opener:     opener,
		logger:     logger,
		bufferSize: sampletime.BufferSize,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// IsRunning reports whether the worker is in the Running state.
func (e *Engine) IsRunning() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state == stateRunning
}

// Start brings the worker to Running. It returns false, leaving no
// goroutine alive, if sink initialization fails.
func (e *Engine) Start() bool {
	e.mu.Lock()
	if e.state == stateRunning {
		e.mu.Unlock()
		return true
	}
	e.mu.Unlock()

	snk, err := e.opener.Open(context.Background(), e.bufferSize)
	if err != nil {
		e.logger.Error("sink initialization failed", "err", fmt.Errorf("%w: %w", ErrSinkInit, err))
		return false
	}

	e.snk = snk
	e.buffers[0] = make([]float32, e.bufferSize)
	e.buffers[1] = make([]float32, e.bufferSize)
	e.cmdCh = newCommandChannel()
	e.registry = events.NewRegistry()
	e.currentTime = e.initialTime
	e.preWrap = schedule.Queue{}
	e.postWrap = schedule.Queue{}
	e.voices = nil
	e.stopCh = make(chan struct{})
	e.doneCh = make(chan struct{})

	e.mu.Lock()
	e.state = stateInitialized
	e.mu.Unlock()

	started := make(chan bool, 1)
	go e.runLoop(started)

	if ok := <-started; !ok {
		e.logger.Error("worker failed to start", "err", ErrThreadStart)
		e.mu.Lock()
		e.state = stateUninitialized
		e.mu.Unlock()
		return false
	}

	e.mu.Lock()
	e.state = stateRunning
	e.mu.Unlock()
	return true
}

// Stop signals the worker to stop, joins it, and tears everything
// down. Idempotent, including after a failed Start.
func (e *Engine) Stop() {
	e.mu.Lock()
	switch e.state {
	case stateRunning, stateInitialized:
		e.mu.Unlock()
	default:
		e.mu.Unlock()
		return
	}

	close(e.stopCh)
	<-e.doneCh
}

// Beep is a convenience: schedule one note starting at 0s and one
// sentinel event at durationSeconds, then block until it fires.
func (e *Engine) Beep(frequencyHz, durationSeconds float32) bool {
	b := NewBatch()
	b.AddNote(0, frequencyHz, 0.125, durationSeconds)
	b.AddEvent(durationSeconds, EventSentinel)
	e.SubmitBatch(b)
	return e.WaitForEvent(EventSentinel)
}

// SubmitBatch hands b to the worker for scheduling. A nil or empty
// builder is a no-op, and so is submitting to an Engine that was never
// successfully started — mirroring the original's pAudioThreadData ==
// nullptr guard instead of dereferencing a not-yet-created command
// channel.
func (e *Engine) SubmitBatch(b *BatchBuilder) {
	if b == nil || b.Empty() || !e.IsRunning() {
		return
	}
	e.cmdCh.push(clientCommand{kind: cmdScheduleBatch, items: b.items})
}

// WaitForEvent blocks until eventID fires (true) or is determined
// impossible (false): either it was never scheduled, the engine
// stopped before it fired, or the engine was never running in the
// first place (mirroring the original's nullptr guard).
func (e *Engine) WaitForEvent(eventID uint32) bool {
	if !e.IsRunning() {
		return false
	}
	result := make(chan bool, 1)
	e.cmdCh.push(clientCommand{kind: cmdWaitForEvent, waitEventID: eventID, waitResult: result})
	return <-result
}

// runLoop is the worker goroutine body: §4.7's state machine from
// Initialized through Stopped.
func (e *Engine) runLoop(started chan bool) {
	defer close(e.doneCh)

	if err := e.snk.Submit(sink.Buffer{Index: 0, Samples: e.buffers[0]}); err != nil {
		e.logger.Error("failed to submit first buffer", "err", err)
		started <- false
		return
	}
	if err := e.snk.Submit(sink.Buffer{Index: 1, Samples: e.buffers[1]}); err != nil {
		e.logger.Error("failed to submit second buffer", "err", err)
		started <- false
		return
	}
	if err := e.snk.Start(); err != nil {
		e.logger.Error("failed to start sink", "err", err)
		started <- false
		return
	}
	started <- true

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	tryElevatePriority(e.logger)

	consumed0 := e.snk.Consumed(0)
	consumed1 := e.snk.Consumed(1)

	for {
		select {
		case <-e.stopCh:
			e.teardown()
			return

		case <-e.cmdCh.wake:
			e.ingest()

		case <-consumed0:
			if !e.renderAndResubmit(0) {
				return
			}

		case <-consumed1:
			if !e.renderAndResubmit(1) {
				return
			}
		}
	}
}

func (e *Engine) renderAndResubmit(index int) (ok bool) {
	buf := e.buffers[index]
	e.render(buf)

	if err := e.snk.Submit(sink.Buffer{Index: index, Samples: buf}); err != nil {
		e.logger.Error("buffer submission failed, stopping worker", "err", fmt.Errorf("%w: %w", ErrSubmitFailure, err))
		e.teardown()
		return false
	}
	return true
}

// teardown stops and releases the sink, resolves any still-pending
// waits to false (§4.7's resolved Open Question), and marks the
// worker Stopped.
func (e *Engine) teardown() {
	if err := e.snk.Stop(); err != nil {
		e.logger.Warn("sink stop failed", "err", err)
	}
	if err := e.snk.Close(); err != nil {
		e.logger.Warn("sink close failed", "err", err)
	}

	e.registry.StopAll()
	e.voices = nil

	e.mu.Lock()
	e.state = stateStopped
	e.mu.Unlock()
}
