package engine

import "github.com/doismellburning/beepengine/internal/schedule"

// ingest drains the command channel and folds every queued command
// into scheduling state (§4.5). It runs only on the worker goroutine.
func (e *Engine) ingest() {
	for _, cmd := range e.cmdCh.drain() {
		switch cmd.kind {
		case cmdScheduleBatch:
			e.ingestBatch(cmd.items)

		case cmdWaitForEvent:
			e.ingestWait(cmd.waitEventID, cmd.waitResult)

		default:
			e.logger.Warn("unknown command type, dropping")
		}
	}
}

func (e *Engine) ingestBatch(items []BatchItem) {
	rate := e.snk.SampleRate()

	for _, item := range items {
		switch item.Kind {
		case itemBeep:
			sc, postWrap := schedule.NewBeep(rate, e.currentTime, item.StartSeconds, item.FrequencyHz, item.Amplitude, item.DurationSeconds)
			e.pushScheduled(sc, postWrap)

		case itemEvent:
			sc, postWrap := schedule.NewEvent(rate, e.currentTime, item.StartSeconds, item.EventID)
			e.registry.MarkPossible(item.EventID)
			e.pushScheduled(sc, postWrap)

		default:
			e.logger.Warn("unknown batch item kind, dropping")
		}
	}
}

func (e *Engine) pushScheduled(cmd schedule.Command, postWrap bool) {
	if postWrap {
		e.postWrap.Push(cmd)
	} else {
		e.preWrap.Push(cmd)
	}
}

// ingestWait admits a WaitForEvent request (§4.5). An id that cannot
// possibly fire resolves to false immediately; otherwise the wait is
// recorded (overwriting any earlier pending wait for the same id, an
// acknowledged limitation — see DESIGN.md).
func (e *Engine) ingestWait(eventID uint32, result chan bool) {
	if !e.registry.IsPossible(eventID) {
		result <- false
		return
	}
	e.registry.AddWait(eventID, result)
}
