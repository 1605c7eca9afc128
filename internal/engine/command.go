package engine

import "sync"

// itemKind tags a BatchItem as a note or a marker — a tagged sum type
// in place of the class hierarchy the original source used for
// client-level beep/event specs (see SPEC_FULL.md §9).
type itemKind int

const (
	itemBeep itemKind = iota
	itemEvent
)

// BatchItem is one entry of a client batch, expressed in seconds
// exactly as the client supplied it. Only the fields relevant to Kind
// are meaningful.
type BatchItem struct {
	Kind itemKind

	StartSeconds float32

	// itemBeep fields.
	FrequencyHz     float32
	Amplitude       float32
	DurationSeconds float32

	// itemEvent fields.
	EventID uint32
}

// clientCmdKind tags a clientCommand as a batch submission or an event
// wait — the two variants of AudioThreadCommand in the original
// source, collapsed into one tagged struct.
type clientCmdKind int

const (
	cmdScheduleBatch clientCmdKind = iota
	cmdWaitForEvent
)

type clientCommand struct {
	kind clientCmdKind

	items []BatchItem // cmdScheduleBatch

	waitEventID uint32     // cmdWaitForEvent
	waitResult  chan bool  // cmdWaitForEvent
}

// commandChannel is the mutex-protected FIFO shared between client
// goroutines (producers) and the worker goroutine (the sole
// consumer), with a single auto-reset wake signal: producers send a
// non-blocking doorbell ring after pushing, the worker drains
// everything queued each time it wakes.
type commandChannel struct {
	mu    sync.Mutex
	queue []clientCommand
	wake  chan struct{}
}

func newCommandChannel() *commandChannel {
	return &commandChannel{wake: make(chan struct{}, 1)}
}

func (c *commandChannel) push(cmd clientCommand) {
	c.mu.Lock()
	c.queue = append(c.queue, cmd)
	c.mu.Unlock()

	select {
	case c.wake <- struct{}{}:
	default:
	}
}

// drain empties the queue and returns everything that was in it, in
// FIFO order.
func (c *commandChannel) drain() []clientCommand {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.queue) == 0 {
		return nil
	}
	out := c.queue
	c.queue = nil
	return out
}
