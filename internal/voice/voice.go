// Package voice implements the engine's sine-oscillator rendering
// contract: a beep in progress, rendered across one or more buffers
// while remembering its phase between calls.
package voice

import "math"

// Voice is a running sine tone. It is created when a scheduled beep's
// start sample falls within the buffer being rendered, and mutated in
// place on every subsequent render call until it finishes — no
// successor value is heap-allocated per buffer (see DESIGN.md).
type Voice struct {
	OmegaRadiansPerSample float64
	Amplitude             float64
	StartDelay            uint32 // samples into buf before this voice starts
	Remaining             uint32 // samples left to render, across all future buffers
	PhaseOffset           uint32 // samples already rendered, for phase continuity
}

// New creates a voice that will start StartDelay samples into the next
// buffer rendered and run for durationSamples samples total.
func New(omegaRadiansPerSample, amplitude float64, startDelay, durationSamples uint32) *Voice {
	return &Voice{
		OmegaRadiansPerSample: omegaRadiansPerSample,
		Amplitude:             amplitude,
		StartDelay:            startDelay,
		Remaining:             durationSamples,
	}
}

// Render adds this voice's contribution into buf, mutating the voice's
// own state for the next call. It reports true once the voice has
// rendered its full duration and should be dropped from the
// in-progress list.
func (v *Voice) Render(buf []float32) (finished bool) {
	bufSize := uint32(len(buf))

	if v.StartDelay >= bufSize {
		v.StartDelay -= bufSize
		return false
	}

	start := v.StartDelay
	sizeThisTime := v.Remaining
	if room := bufSize - start; sizeThisTime > room {
		sizeThisTime = room
	}

	for i := uint32(0); i < sizeThisTime; i++ {
		phase := float64(v.PhaseOffset + i)
		buf[start+i] += float32(v.Amplitude * math.Sin(v.OmegaRadiansPerSample*phase))
	}

	if v.Remaining > sizeThisTime {
		v.StartDelay = 0
		v.Remaining -= sizeThisTime
		v.PhaseOffset += sizeThisTime
		return false
	}

	return true
}
