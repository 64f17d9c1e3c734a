// Package dsp implements the voice-level DSP kernel: oscillator, ladder
// filter, VCA, envelope, and oversampler. These are the per-voice building
// blocks that pkg/audio's VoiceManager wires into the built-in MonoSynth
// instrument (pkg/registry/builtin).
package dsp

import "math"

// Waveform selects which derived shape the oscillator reads out of the
// underlying saw-core phase.
type Waveform int

const (
	WaveformSaw Waveform = iota
	WaveformTriangle
	WaveformSquare
	WaveformPulse
)

// AntiAliasMode selects how the oscillator suppresses aliasing at its
// waveform discontinuities.
type AntiAliasMode int

const (
	// Digital applies PolyBLEP/PolyBLAMP correction at each step/slope
	// discontinuity, computed at host rate.
	Digital AntiAliasMode = iota
	// Oversampled emits the raw (uncorrected) waveform; the caller is
	// expected to run the oscillator at an oversampled rate and decimate
	// with an Oversampler.
	Oversampled
)

const cvSmoothMs = 2.0

// Oscillator models the sawtooth-core voice oscillator: a charge/discharge
// capacitor readout, frequency driven by a smoothed 1V/oct control voltage,
// with saw/triangle/square/pulse readouts folded from the same phase.
// Grounded on clapgo's pkg/audio/oscillator.go (GeneratePolyBLEPSaw/Square,
// AdvancePhase, NoteToFrequency); generalized here to triangle/pulse with
// PolyBLAMP and a CV smoother rather than a per-call frequency argument.
type Oscillator struct {
	SampleRate float64
	Mode       AntiAliasMode

	phase     float64
	targetCV  float64 // 1V/oct control voltage, 0 == 440Hz (A4, note 69)
	smoothCV  float64
	cvCoeff   float64
	pulseW    float64
}

// NewOscillator creates an oscillator at the given host sample rate.
func NewOscillator(sampleRate float64) *Oscillator {
	o := &Oscillator{
		SampleRate: sampleRate,
		Mode:       Digital,
		pulseW:     0.5,
	}
	o.SetSampleRate(sampleRate)
	return o
}

// SetSampleRate updates the sample rate and recomputes the CV smoother
// coefficient for the fixed 2ms time constant.
func (o *Oscillator) SetSampleRate(sampleRate float64) {
	o.SampleRate = sampleRate
	tau := cvSmoothMs / 1000.0
	o.cvCoeff = 1.0 - math.Exp(-1.0/(tau*sampleRate))
}

// SetNote sets the target pitch from a MIDI note number (may be fractional,
// for pitch bend), converting to an internal 1V/oct CV target.
func (o *Oscillator) SetNote(note float64) {
	o.targetCV = (note - 69.0) / 12.0
}

// SetPulseWidth sets the pulse duty cycle, clamped to [0.01, 0.99].
func (o *Oscillator) SetPulseWidth(pw float64) {
	if pw < 0.01 {
		pw = 0.01
	} else if pw > 0.99 {
		pw = 0.99
	}
	o.pulseW = pw
}

// Reset zeroes phase and CV smoothing state (called on voice reuse).
func (o *Oscillator) Reset() {
	o.phase = 0
	o.smoothCV = o.targetCV
}

// frequency returns the current smoothed frequency via the exponential
// 1V/oct converter, advancing the one-pole CV smoother by one sample.
func (o *Oscillator) frequency() float64 {
	o.smoothCV += o.cvCoeff * (o.targetCV - o.smoothCV)
	return 440.0 * math.Pow(2.0, o.smoothCV)
}

// Next produces one sample of the given waveform and advances phase.
func (o *Oscillator) Next(wave Waveform) float64 {
	freq := o.frequency()
	dt := freq / o.SampleRate
	if dt >= 0.5 {
		dt = 0.5
	}

	var out float64
	switch wave {
	case WaveformSaw:
		out = o.sawAt(o.phase, dt)
	case WaveformTriangle:
		out = o.triangleAt(o.phase, dt)
	case WaveformSquare:
		out = o.squareAt(o.phase, dt, 0.5)
	case WaveformPulse:
		out = o.squareAt(o.phase, dt, o.pulseW)
	}

	o.phase += dt
	if o.phase >= 1.0 {
		o.phase -= math.Floor(o.phase)
	}
	return out
}

func (o *Oscillator) sawAt(phase, dt float64) float64 {
	value := 2.0*phase - 1.0
	if o.Mode == Digital {
		value -= polyBLEP(phase, dt)
	}
	return value
}

// squareAt derives a rectangular wave with edges at 0 and duty from the saw
// phase, with PolyBLEP correction at each edge in Digital mode.
func (o *Oscillator) squareAt(phase, dt, duty float64) float64 {
	value := 1.0
	if phase >= duty {
		value = -1.0
	}
	if o.Mode != Digital {
		return value
	}

	value += polyBLEP(phase, dt)
	shifted := phase - duty
	if shifted < 0 {
		shifted += 1.0
	}
	value -= polyBLEP(shifted, dt)
	return value
}

// triangleAt folds the saw phase into a triangle and, in Digital mode,
// applies PolyBLAMP at its two corners (phase 0 and 0.5).
func (o *Oscillator) triangleAt(phase, dt float64) float64 {
	folded := 2.0 * phase
	if folded > 1.0 {
		folded = 2.0 - folded
	}
	value := 2.0*folded - 1.0
	if o.Mode != Digital {
		return value
	}
	value += polyBLAMP(phase, dt)
	half := phase - 0.5
	if half < 0 {
		half += 1.0
	}
	value -= polyBLAMP(half, dt)
	return value
}

// polyBLEP computes the PolyBLEP correction for a unit-discontinuity edge
// at phase 0, per spec: t<dt -> (t/dt)(2-t/dt)-1; t>1-dt -> ((t-1)/dt)^2 + 2(t-1)/dt + 1.
func polyBLEP(t, dt float64) float64 {
	switch {
	case t < dt:
		x := t / dt
		return x*(2-x) - 1
	case t > 1.0-dt:
		x := (t - 1.0) / dt
		return x*x + 2*x + 1
	default:
		return 0
	}
}

// polyBLAMP is the integral of polyBLEP, used to smooth slope
// discontinuities (triangle corners) rather than step discontinuities.
func polyBLAMP(t, dt float64) float64 {
	switch {
	case t < dt:
		x := t/dt - 1
		return -dt * (x * x * x) / 3
	case t > 1.0-dt:
		x := (t-1.0)/dt + 1
		return dt * (x * x * x) / 3
	default:
		return 0
	}
}

// NoteToFrequency converts a MIDI note number to frequency in Hz.
func NoteToFrequency(note float64) float64 {
	return 440.0 * math.Pow(2.0, (note-69.0)/12.0)
}
