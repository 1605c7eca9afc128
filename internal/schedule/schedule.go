// Package schedule holds the engine's scheduled commands and the
// pre-wrap/post-wrap priority queues that order them by absolute
// sample time.
//
// Commands are a tagged sum type rather than a class hierarchy: a
// single Command struct carries a Kind and only the fields that kind
// uses. The worker is the single owner of every Command in a Queue;
// Pop hands out the owned value directly, so there is no shared
// ownership to reason about (see SPEC_FULL.md §9).
package schedule

import (
	"container/heap"
	"math"

	"github.com/doismellburning/beepengine/internal/sampletime"
)

// Kind distinguishes the two command variants.
type Kind int

const (
	// KindBeep schedules a sine tone to start.
	KindBeep Kind = iota
	// KindEvent schedules a marker to fire.
	KindEvent
)

// Command is either a scheduled beep or a scheduled event, tagged by
// Kind. Only the fields relevant to the Kind are meaningful.
type Command struct {
	Kind        Kind
	StartSample sampletime.Time

	// KindBeep fields.
	OmegaRadiansPerSample float64
	Amplitude             float64
	DurationSamples       uint32

	// KindEvent fields.
	EventID uint32
}

// NewBeep converts a client-supplied note (seconds, Hz) into an
// absolute-sample Command, relative to currentTime. postWrap reports
// whether the absolute start sample overflowed past currentTime.
func NewBeep(sampleRate uint32, currentTime sampletime.Time, startTimeSeconds, frequencyHz, amplitude, durationSeconds float32) (cmd Command, postWrap bool) {
	startSamples := uint32(startTimeSeconds * float32(sampleRate))
	absoluteStart, wrapped := currentTime.Add(startSamples)
	omega := 2.0 * math.Pi * float64(frequencyHz) / float64(sampleRate)
	durationSamples := uint32(durationSeconds * float32(sampleRate))

	return Command{
		Kind:                  KindBeep,
		StartSample:           absoluteStart,
		OmegaRadiansPerSample: omega,
		Amplitude:             float64(amplitude),
		DurationSamples:       durationSamples,
	}, wrapped
}

// NewEvent converts a client-supplied marker (seconds, id) into an
// absolute-sample Command, relative to currentTime.
func NewEvent(sampleRate uint32, currentTime sampletime.Time, startTimeSeconds float32, eventID uint32) (cmd Command, postWrap bool) {
	startSamples := uint32(startTimeSeconds * float32(sampleRate))
	absoluteStart, wrapped := currentTime.Add(startSamples)

	return Command{
		Kind:        KindEvent,
		StartSample: absoluteStart,
		EventID:     eventID,
	}, wrapped
}

// Queue is a min-heap of Commands keyed by StartSample. The zero value
// is ready to use.
type Queue struct {
	h commandHeap
}

// Push inserts cmd into the queue.
func (q *Queue) Push(cmd Command) {
	heap.Push(&q.h, cmd)
}

// Peek returns the queue's earliest command without removing it.
func (q *Queue) Peek() (Command, bool) {
	if len(q.h) == 0 {
		return Command{}, false
	}
	return q.h[0], true
}

// Pop removes and returns the queue's earliest command.
func (q *Queue) Pop() (Command, bool) {
	if len(q.h) == 0 {
		return Command{}, false
	}
	return heap.Pop(&q.h).(Command), true
}

// Len reports the number of commands currently queued.
func (q *Queue) Len() int {
	return len(q.h)
}

// Swap exchanges the contents of q and other in place — used to swap
// the live pre-wrap queue with the post-wrap queue at a wrap boundary,
// reusing both queues' backing storage instead of allocating.
func (q *Queue) Swap(other *Queue) {
	q.h, other.h = other.h, q.h
}

type commandHeap []Command

func (h commandHeap) Len() int { return len(h) }
func (h commandHeap) Less(i, j int) bool {
	return h[i].StartSample < h[j].StartSample
}
func (h commandHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *commandHeap) Push(x any) {
	*h = append(*h, x.(Command))
}

func (h *commandHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
