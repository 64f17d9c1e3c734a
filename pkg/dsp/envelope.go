package dsp

import "math"

// Stage identifies the current envelope segment.
type Stage int

const (
	StageIdle Stage = iota
	StageAttack
	StageDecay
	StageSustain
	StageRelease
)

// settleThreshold decides when an exponential decay/release segment is
// close enough to its target to advance to the next stage; an exponential
// curve never reaches its asymptote exactly.
const settleThreshold = 1e-4

// Envelope is an ADSR generator with linear attack and exponential
// decay/release, adapted from clapgo's pkg/util/envelope.go ADSREnvelope.
// REDESIGN from the teacher: the teacher's decay/release were
// progress-fraction curves recomputed from elapsed-time ratios; here decay
// and release are true one-pole exponential segments (rates recomputed on
// sample-rate change) per the time constant each holds, matching spec.md's
// "exponential decay to sustain, exponential release".
type Envelope struct {
	Attack  float64 // seconds
	Decay   float64 // seconds
	Sustain float64 // level, 0-1
	Release float64 // seconds

	stage        Stage
	value        float64
	releaseLevel float64
	sampleRate   float64

	attackStep  float64
	decayCoeff  float64
	releaseCoeff float64
}

// NewEnvelope creates an envelope with sensible synth-voice defaults.
func NewEnvelope(sampleRate float64) *Envelope {
	e := &Envelope{
		Attack:  0.01,
		Decay:   0.1,
		Sustain: 0.7,
		Release: 0.3,
	}
	e.SetSampleRate(sampleRate)
	return e
}

// SetSampleRate recomputes the per-sample rates/coefficients for the
// current Attack/Decay/Release times. Must be called whenever the host
// sample rate changes, and whenever Attack/Decay/Release are edited.
func (e *Envelope) SetSampleRate(sampleRate float64) {
	e.sampleRate = sampleRate
	e.recompute()
}

// SetADR updates attack/decay/release (seconds) and sustain (0-1 level),
// recomputing the per-sample coefficients.
func (e *Envelope) SetADR(attack, decay, sustain, release float64) {
	e.Attack = clamp(attack, 0, 10)
	e.Decay = clamp(decay, 0, 10)
	e.Sustain = clamp(sustain, 0, 1)
	e.Release = clamp(release, 0, 10)
	e.recompute()
}

func (e *Envelope) recompute() {
	if e.Attack > 0 {
		e.attackStep = 1.0 / (e.Attack * e.sampleRate)
	} else {
		e.attackStep = 1.0
	}
	e.decayCoeff = expCoeff(e.Decay, e.sampleRate)
	e.releaseCoeff = expCoeff(e.Release, e.sampleRate)
}

// expCoeff returns the one-pole coefficient that reaches ~63% of the
// remaining distance to target in `seconds`, or 1 (instant) if seconds<=0.
func expCoeff(seconds, sampleRate float64) float64 {
	if seconds <= 0 {
		return 1
	}
	return 1.0 - math.Exp(-1.0/(seconds*sampleRate))
}

// Trigger starts the envelope from the attack stage.
func (e *Envelope) Trigger() {
	e.stage = StageAttack
	e.value = 0
}

// Release moves the envelope to the release stage.
func (e *Envelope) Release() {
	if e.stage != StageIdle && e.stage != StageRelease {
		e.releaseLevel = e.value
		e.stage = StageRelease
	}
}

// Process advances the envelope by one sample and returns the new value.
func (e *Envelope) Process() float64 {
	switch e.stage {
	case StageIdle:
		e.value = 0

	case StageAttack:
		e.value += e.attackStep
		if e.value >= 1.0 {
			e.value = 1.0
			e.stage = StageDecay
		}

	case StageDecay:
		e.value += e.decayCoeff * (e.Sustain - e.value)
		if math.Abs(e.value-e.Sustain) < settleThreshold {
			e.value = e.Sustain
			e.stage = StageSustain
		}

	case StageSustain:
		e.value = e.Sustain

	case StageRelease:
		e.value += e.releaseCoeff * (0.0 - e.value)
		if e.value < settleThreshold {
			e.value = 0
			e.stage = StageIdle
		}
	}
	return e.value
}

// IsActive reports whether the envelope is generating a non-idle value.
func (e *Envelope) IsActive() bool { return e.stage != StageIdle }

// CurrentStage returns the current envelope segment.
func (e *Envelope) CurrentStage() Stage { return e.stage }

// Reset immediately silences the envelope.
func (e *Envelope) Reset() {
	e.stage = StageIdle
	e.value = 0
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
