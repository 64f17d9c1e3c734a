package dsp

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-dsp/dsp/filter/moog"
)

const (
	// MinResonance/MaxResonance bound the spec's resonance knob range.
	MinResonance = 0.0
	MaxResonance = 4.5

	minBiasCurrent = 0.6e-6
	maxBiasCurrent = 700e-6
)

// Ladder wraps github.com/cwbudde/algo-dsp/dsp/filter/moog's Huovilainen
// ladder core. The bias-current/transconductance relationships from the
// spec (gm = Ic/Vt, fc = Ic/(2*pi*Vt*C), clamped to {0.6uA..700uA}) are
// preserved here only as the parameter-mapping layer that validates and
// clamps resonance before handing cutoff/resonance to the library, which
// supplies the oversampled nonlinear ladder ODE solver itself.
type Ladder struct {
	filter *moog.Filter

	cutoffHz   float64
	resonance  float64
	oversample int
}

// NewLadder creates a ladder filter at the given sample rate with a 2x
// internal oversampling factor (the library's own anti-alias headroom for
// the tanh nonlinearity, independent of pkg/dsp/oversampler.go's block-level
// oversampling).
func NewLadder(sampleRate float64) (*Ladder, error) {
	l := &Ladder{cutoffHz: 1000, resonance: 0, oversample: 2}

	f, err := moog.New(
		sampleRate,
		moog.WithVariant(moog.VariantHuovilainen),
		moog.WithOversampling(l.oversample),
		moog.WithCutoffHz(l.cutoffHz),
		moog.WithResonance(l.resonance),
		moog.WithDrive(1.0),
		moog.WithInputGain(1.0),
		moog.WithOutputGain(1.0),
		moog.WithNormalizeOutput(true),
	)
	if err != nil {
		return nil, fmt.Errorf("dsp: create ladder filter: %w", err)
	}
	l.filter = f
	return l, nil
}

// SetSampleRate updates the filter's sample rate, preserving cutoff/resonance.
func (l *Ladder) SetSampleRate(sampleRate float64) error {
	if err := l.filter.SetSampleRate(sampleRate); err != nil {
		return fmt.Errorf("dsp: set ladder sample rate: %w", err)
	}
	return nil
}

// biasCurrentRangeHz converts the {0.6uA..700uA} bias-current range to Hz
// via fc = Ic/(2*pi*Vt*C) at room-temperature Vt and a 10nF integrator cap,
// matching the per-stage capacitor spec.md models the ladder poles on.
func biasCurrentRangeHz() (lo, hi float64) {
	const vt = 0.026 // thermal voltage at room temperature, volts
	const capF = 10e-9
	lo = minBiasCurrent / (2 * math.Pi * vt * capF)
	hi = maxBiasCurrent / (2 * math.Pi * vt * capF)
	return lo, hi
}

// clampBiasCurrentHz clamps a requested cutoff to both the bias-current
// modeled range and Nyquist; the actual gm/fc ODE solve is the library's.
func clampBiasCurrentHz(cutoffHz, sampleRate float64) float64 {
	lo, hi := biasCurrentRangeHz()
	nyquist := sampleRate * 0.49
	if hi > nyquist {
		hi = nyquist
	}
	switch {
	case cutoffHz < lo:
		return lo
	case cutoffHz > hi:
		return hi
	default:
		return cutoffHz
	}
}

// SetCutoffHz sets the filter cutoff frequency, clamped to the bias-current
// modeled range and Nyquist.
func (l *Ladder) SetCutoffHz(sampleRate, hz float64) error {
	clamped := clampBiasCurrentHz(hz, sampleRate)
	if err := l.filter.SetCutoffHz(clamped); err != nil {
		return fmt.Errorf("dsp: set ladder cutoff: %w", err)
	}
	l.cutoffHz = clamped
	return nil
}

// SetResonance sets resonance feedback, clamped to [0, 4.5] per spec.
func (l *Ladder) SetResonance(resonance float64) error {
	if resonance < MinResonance {
		resonance = MinResonance
	} else if resonance > MaxResonance {
		resonance = MaxResonance
	}
	if err := l.filter.SetResonance(resonance); err != nil {
		return fmt.Errorf("dsp: set ladder resonance: %w", err)
	}
	l.resonance = resonance
	return nil
}

// SetDrive sets the input drive (makeup-gain-adjacent saturation control).
func (l *Ladder) SetDrive(drive float64) error {
	if err := l.filter.SetDrive(drive); err != nil {
		return fmt.Errorf("dsp: set ladder drive: %w", err)
	}
	return nil
}

// CutoffHz returns the last clamped cutoff frequency.
func (l *Ladder) CutoffHz() float64 { return l.cutoffHz }

// Resonance returns the last clamped resonance value.
func (l *Ladder) Resonance() float64 { return l.resonance }

// ProcessInPlace filters block in place, one voice-block at a time.
func (l *Ladder) ProcessInPlace(block []float64) {
	l.filter.ProcessInPlace(block)
}

// Process filters a single sample (used by the per-sample voice loop).
func (l *Ladder) Process(in float64) float64 {
	buf := [1]float64{in}
	l.filter.ProcessInPlace(buf[:])
	return buf[0]
}
