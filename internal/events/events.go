// Package events tracks which scheduled event ids could still fire
// (the "possible event set") and the at-most-one pending client wait
// registered against each of them.
//
// The win32 original pairs a response HANDLE with an out-parameter
// bool; in Go both collapse naturally into a single chan bool — the
// worker both "sets the flag" and "raises the signal" with one send.
package events

// Registry is owned exclusively by the worker goroutine; it is never
// touched directly by client goroutines.
type Registry struct {
	possible map[uint32]struct{}
	waiting  map[uint32]chan bool
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		possible: make(map[uint32]struct{}),
		waiting:  make(map[uint32]chan bool),
	}
}

// MarkPossible records eventID as scheduled-but-not-yet-fired.
func (r *Registry) MarkPossible(eventID uint32) {
	r.possible[eventID] = struct{}{}
}

// IsPossible reports whether eventID is scheduled-but-not-yet-fired.
// It is false for ids that were never scheduled or have already fired.
func (r *Registry) IsPossible(eventID uint32) bool {
	_, ok := r.possible[eventID]
	return ok
}

// AddWait registers result to be resolved when eventID fires or is
// determined impossible. If a wait is already pending for eventID, it
// is silently overwritten and will never be resolved — an
// acknowledged limitation (see DESIGN.md), not a bug to route around.
func (r *Registry) AddWait(eventID uint32, result chan bool) {
	r.waiting[eventID] = result
}

// Fire resolves eventID as having happened: it wakes any pending wait
// with true and unconditionally removes eventID from the possible set,
// whether or not a wait was pending, so that any later wait for the
// same id returns false immediately. It reports whether a wait was
// pending.
func (r *Registry) Fire(eventID uint32) (hadWaiter bool) {
	if ch, ok := r.waiting[eventID]; ok {
		ch <- true
		delete(r.waiting, eventID)
		hadWaiter = true
	}
	delete(r.possible, eventID)
	return hadWaiter
}

// StopAll resolves every still-pending wait to false and clears all
// state. Called when the worker transitions to Stopped.
func (r *Registry) StopAll() {
	for id, ch := range r.waiting {
		ch <- false
		delete(r.waiting, id)
	}
	for id := range r.possible {
		delete(r.possible, id)
	}
}

// Len reports the number of scheduled-but-unfired events, for tests
// that assert the registry is empty after Stop.
func (r *Registry) Len() int {
	return len(r.possible)
}

// PendingLen reports the number of pending waits, for tests that
// assert the registry is empty after Stop.
func (r *Registry) PendingLen() int {
	return len(r.waiting)
}
