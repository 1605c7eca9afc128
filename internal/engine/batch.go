package engine

// BatchBuilder accumulates a batch of notes and events, in seconds,
// before it is handed to the engine with SubmitBatch. It replaces the
// source's process-wide pending-batch global: callers get their own
// builder from NewBatch and there is no shared mutable state to step
// on between concurrent callers (see SPEC_FULL.md §9).
type BatchBuilder struct {
	items []BatchItem
}

// NewBatch returns an empty batch builder.
func NewBatch() *BatchBuilder {
	return &BatchBuilder{}
}

// AddNote appends a note: a sine tone at frequencyHz and amplitude,
// starting startSeconds from when the batch is submitted and lasting
// durationSeconds.
func (b *BatchBuilder) AddNote(startSeconds, frequencyHz, amplitude, durationSeconds float32) {
	b.items = append(b.items, BatchItem{
		Kind:            itemBeep,
		StartSeconds:    startSeconds,
		FrequencyHz:     frequencyHz,
		Amplitude:       amplitude,
		DurationSeconds: durationSeconds,
	})
}

// AddEvent appends a marker that fires eventID startSeconds from when
// the batch is submitted.
func (b *BatchBuilder) AddEvent(startSeconds float32, eventID uint32) {
	b.items = append(b.items, BatchItem{
		Kind:         itemEvent,
		StartSeconds: startSeconds,
		EventID:      eventID,
	})
}

// Empty reports whether any notes or events have been added.
func (b *BatchBuilder) Empty() bool {
	return len(b.items) == 0
}
