package engine

import (
	"io"
	"math"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doismellburning/beepengine/internal/sampletime"
	"github.com/doismellburning/beepengine/internal/sink"
)

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func waitFor(t *testing.T, ch <-chan bool, timeout time.Duration) bool {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(timeout):
		t.Fatal("timed out waiting for result")
		return false
	}
}

// Scenario F: back-to-back Start/Stop cycles.
func Test_StartStop_BackToBack(t *testing.T) {
	opener := sink.MockOpener{SampleRate: 48000, AutoDrain: true}
	e := New(opener, testLogger())

	require.True(t, e.Start())
	assert.True(t, e.IsRunning())
	e.Stop()
	assert.False(t, e.IsRunning())

	require.True(t, e.Start())
	assert.True(t, e.IsRunning())
	e.Stop()
	assert.False(t, e.IsRunning())
}

// Scenario C: a wait for an event that was never scheduled returns
// false without blocking.
func Test_WaitForEvent_Impossible(t *testing.T) {
	opener := sink.MockOpener{SampleRate: 48000, AutoDrain: true}
	e := New(opener, testLogger())
	require.True(t, e.Start())
	defer e.Stop()

	done := make(chan bool, 1)
	go func() { done <- e.WaitForEvent(0x1) }()

	assert.False(t, waitFor(t, done, time.Second))
}

// Scenario A: Beep renders the expected tone and fires the sentinel.
func Test_Beep_SingleTone(t *testing.T) {
	const sampleRate = 48000
	opener := sink.MockOpener{SampleRate: sampleRate, AutoDrain: true}
	e := New(opener, testLogger())
	require.True(t, e.Start())
	defer e.Stop()

	mock := mockFromEngine(t, e)

	done := make(chan bool, 1)
	go func() { done <- e.Beep(440.0, 0.5) }()
	assert.True(t, waitFor(t, done, 5*time.Second))

	// Stopping joins the worker, so the buffer in which the sentinel
	// fired has been submitted and recorded before it is read.
	e.Stop()
	rendered := mock.Rendered()
	start := toneStart(t, rendered)
	samples := concatBuffers(rendered)
	require.GreaterOrEqual(t, len(samples), start+24000)

	omega := 2.0 * math.Pi * 440.0 / sampleRate
	for i := 0; i < 24000; i += 997 { // sparse sample to keep the test fast
		want := 0.125 * math.Sin(omega*float64(i))
		assert.InDelta(t, want, float64(samples[start+i]), 1e-3)
	}
}

// Scenario B: a builder batch of two overlapping notes and an event.
func Test_BuilderBatch_OverlappingNotesAndEvent(t *testing.T) {
	const sampleRate = 48000
	opener := sink.MockOpener{SampleRate: sampleRate, AutoDrain: true}
	e := New(opener, testLogger())
	require.True(t, e.Start())
	defer e.Stop()

	mock := mockFromEngine(t, e)

	b := NewBatch()
	b.AddNote(0.0, 220, 0.125, 1.0)
	b.AddNote(0.5, 330, 0.125, 1.0)
	b.AddEvent(1.5, 0x378C)
	e.SubmitBatch(b)

	done := make(chan bool, 1)
	go func() { done <- e.WaitForEvent(0x378C) }()
	assert.True(t, waitFor(t, done, 5*time.Second))

	e.Stop()
	rendered := mock.Rendered()
	start := toneStart(t, rendered)
	samples := concatBuffers(rendered)
	require.GreaterOrEqual(t, len(samples), start+72000)

	omega220 := 2.0 * math.Pi * 220.0 / sampleRate
	omega330 := 2.0 * math.Pi * 330.0 / sampleRate

	// Before the second note starts, only the 220Hz tone contributes.
	idx := 10000
	want := 0.125 * math.Sin(omega220*float64(idx))
	assert.InDelta(t, want, float64(samples[start+idx]), 1e-3)

	// After both notes have started, they sum.
	idx = 30000
	want = 0.125*math.Sin(omega220*float64(idx)) + 0.125*math.Sin(omega330*float64(idx-24000))
	assert.InDelta(t, want, float64(samples[start+idx]), 1e-3)
}

// Scenario D: wrap crossing preserves relative firing order.
func Test_WrapCrossing_PreservesOrder(t *testing.T) {
	opener := sink.MockOpener{SampleRate: 1, AutoDrain: true} // 1 sample == 1 second, for simple math
	e := New(opener, testLogger(), WithInitialTime(sampletime.Time(0xFFFFF000)))
	require.True(t, e.Start())
	defer e.Stop()

	b := NewBatch()
	b.AddEvent(512, 0xAAAA)  // fires pre-wrap, at 0xFFFFF200
	b.AddEvent(8192, 0xBBBB) // fires post-wrap, at 0x00001000
	e.SubmitBatch(b)

	firstDone := make(chan bool, 1)
	secondDone := make(chan bool, 1)
	var firedOrder []string

	go func() {
		ok := e.WaitForEvent(0xAAAA)
		firstDone <- ok
	}()

	assert.True(t, waitFor(t, firstDone, 5*time.Second))
	firedOrder = append(firedOrder, "0xAAAA")

	go func() {
		ok := e.WaitForEvent(0xBBBB)
		secondDone <- ok
	}()
	assert.True(t, waitFor(t, secondDone, 5*time.Second))
	firedOrder = append(firedOrder, "0xBBBB")

	assert.Equal(t, []string{"0xAAAA", "0xBBBB"}, firedOrder)
}

// Scenario E, at the engine level: phase continuity across buffers.
func Test_PhaseContinuity_AcrossBuffers(t *testing.T) {
	const sampleRate = 8
	const bufSize = 8
	opener := sink.MockOpener{SampleRate: sampleRate, AutoDrain: true}
	e := New(opener, testLogger(), WithBufferSize(bufSize))
	require.True(t, e.Start())
	defer e.Stop()

	mock := mockFromEngine(t, e)

	b := NewBatch()
	b.AddNote(0, 1.0, 1.0, float32(3*bufSize)/sampleRate)
	b.AddEvent(float32(3*bufSize)/sampleRate, 0x1)
	e.SubmitBatch(b)

	done := make(chan bool, 1)
	go func() { done <- e.WaitForEvent(0x1) }()
	assert.True(t, waitFor(t, done, 5*time.Second))

	rendered := mock.Rendered()
	start := toneStart(t, rendered)
	samples := concatBuffers(rendered)
	omega := 2.0 * math.Pi / float64(sampleRate)
	for i := 0; i < 3*bufSize; i++ {
		want := math.Sin(omega * float64(i))
		assert.InDeltaf(t, want, float64(samples[start+i]), 1e-5, "sample %d", i)
	}
}

// toneStart returns the index, in the concatenated recording, of the
// first buffer that holds a non-zero sample. The mock also records the
// two silent buffers pre-submitted by Start and any buffers rendered
// before the worker ingested the batch, so a note starting at 0s
// begins at that buffer's first sample rather than at index 0.
func toneStart(t *testing.T, buffers [][]float32) int {
	t.Helper()
	offset := 0
	for _, b := range buffers {
		for _, s := range b {
			if s != 0 {
				return offset
			}
		}
		offset += len(b)
	}
	t.Fatal("no non-zero sample was rendered")
	return 0
}

func concatBuffers(buffers [][]float32) []float32 {
	var out []float32
	for _, b := range buffers {
		out = append(out, b...)
	}
	return out
}

// mockFromEngine type-asserts the engine's live sink back to
// *sink.MockSink for assertions. Tests own the opener, so this is
// always safe within this package's test suite.
func mockFromEngine(t *testing.T, e *Engine) *sink.MockSink {
	t.Helper()
	mock, ok := e.snk.(*sink.MockSink)
	require.True(t, ok)
	return mock
}
