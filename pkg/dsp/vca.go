package dsp

import "math"

const vcaSmoothMs = 5.0

// VCA applies an exponential gain with a one-pole smoother, suppressing
// zipper noise on fast gain changes. Grounded on clapgo's pkg/util/audio.go
// gain-smoothing helpers, generalized into a standalone per-voice stage.
type VCA struct {
	target  float64
	current float64
	coeff   float64
}

// NewVCA creates a VCA at unity gain for the given sample rate.
func NewVCA(sampleRate float64) *VCA {
	v := &VCA{target: 1, current: 1}
	v.SetSampleRate(sampleRate)
	return v
}

// SetSampleRate recomputes the smoothing coefficient for the fixed 5ms
// time constant.
func (v *VCA) SetSampleRate(sampleRate float64) {
	tau := vcaSmoothMs / 1000.0
	v.coeff = 1.0 - math.Exp(-1.0/(tau*sampleRate))
}

// SetGain sets the target linear gain in [0, 1].
func (v *VCA) SetGain(gain float64) {
	if gain < 0 {
		gain = 0
	} else if gain > 1 {
		gain = 1
	}
	v.target = gain
}

// Reset snaps current gain to the target, skipping the smoother ramp
// (used when a voice is reused and should not inherit the previous
// voice's fade).
func (v *VCA) Reset(gain float64) {
	v.target = gain
	v.current = gain
}

// Process applies the smoothed gain to one sample.
func (v *VCA) Process(in float64) float64 {
	v.current += v.coeff * (v.target - v.current)
	return in * v.current
}

// Gain returns the current smoothed gain.
func (v *VCA) Gain() float64 { return v.current }
