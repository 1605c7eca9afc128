package engine

import (
	"github.com/doismellburning/beepengine/internal/sampletime"
	"github.com/doismellburning/beepengine/internal/schedule"
	"github.com/doismellburning/beepengine/internal/voice"
)

// render fills buf for the window [currentTime, currentTime+len(buf))
// per §4.6: zero, drain due commands (handling a wrap by flushing the
// pre-wrap queue and swapping in the post-wrap queue), mix voices, and
// advance the clock.
func (e *Engine) render(buf []float32) {
	for i := range buf {
		buf[i] = 0
	}

	endTime, wrapped := e.currentTime.Add(uint32(len(buf)))

	if wrapped {
		e.drainDue(endTime, true)
		e.preWrap.Swap(&e.postWrap)
	}
	e.drainDue(endTime, false)

	e.mixVoices(buf)

	e.currentTime = endTime
}

// drainDue pops every command from the pre-wrap queue whose start
// sample is due within this window (or every command, if all is
// true), in ascending StartSample order.
func (e *Engine) drainDue(endTime sampletime.Time, all bool) {
	for {
		cmd, ok := e.preWrap.Peek()
		if !ok {
			return
		}
		if !all && cmd.StartSample >= endTime {
			return
		}
		cmd, _ = e.preWrap.Pop()
		e.applyDueCommand(cmd)
	}
}

// applyDueCommand starts a voice for a due beep, or fires a due event.
func (e *Engine) applyDueCommand(cmd schedule.Command) {
	switch cmd.Kind {
	case schedule.KindBeep:
		startDelay := uint32(cmd.StartSample - e.currentTime)
		e.voices = append(e.voices, voice.New(cmd.OmegaRadiansPerSample, cmd.Amplitude, startDelay, cmd.DurationSamples))

	case schedule.KindEvent:
		e.registry.Fire(cmd.EventID)

	default:
		e.logger.Warn("unknown scheduled command kind, dropping")
	}
}

func (e *Engine) mixVoices(buf []float32) {
	active := e.voices[:0]
	for _, v := range e.voices {
		if !v.Render(buf) {
			active = append(active, v)
		}
	}
	e.voices = active
}
