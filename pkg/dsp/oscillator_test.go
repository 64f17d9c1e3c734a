package dsp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// measureFrequency settles the CV smoother, then counts negative-to-
// positive zero crossings over a window to derive the settled frequency.
func measureFrequency(t *testing.T, o *Oscillator, wave Waveform, sampleRate float64) float64 {
	t.Helper()

	for i := 0; i < int(sampleRate/10); i++ { // settle past the 2ms CV smoother
		o.Next(wave)
	}

	const window = 4096
	var crossings int
	prev := o.Next(wave)
	first, last := -1, -1
	for i := 1; i < window; i++ {
		cur := o.Next(wave)
		if prev < 0 && cur >= 0 {
			if first < 0 {
				first = i
			}
			last = i
			crossings++
		}
		prev = cur
	}
	require.Greater(t, crossings, 1, "expected multiple zero crossings in the measurement window")
	samplesPerCycle := float64(last-first) / float64(crossings-1)
	return sampleRate / samplesPerCycle
}

// Scenario 4 / invariant 5: oscillator frequency doubles per +1.0 CV (1
// V/oct) within 1%. SetNote(81) (A5, 81 = 69+12) sets CV to exactly 1.0
// relative to A4 (440Hz), so the settled sawtooth frequency should land
// at 880Hz within 1%.
func TestOscillatorFrequencyDoublesPerOctave(t *testing.T) {
	const sampleRate = 48000.0
	o := NewOscillator(sampleRate)
	o.SetNote(81)

	freq := measureFrequency(t, o, WaveformSaw, sampleRate)
	require.InEpsilon(t, 880.0, freq, 0.01)
}

func TestOscillatorCVOctaveFrequencyRatio(t *testing.T) {
	const sampleRate = 48000.0

	base := NewOscillator(sampleRate)
	base.SetNote(69)
	baseFreq := measureFrequency(t, base, WaveformSaw, sampleRate)

	up := NewOscillator(sampleRate)
	up.SetNote(81) // +1 octave
	upFreq := measureFrequency(t, up, WaveformSaw, sampleRate)

	require.InEpsilon(t, 2.0, upFreq/baseFreq, 0.01)
}

// Invariant 6: PolyBLEP correction is exactly 0 outside the [0, dt) U
// (1-dt, 1) edge bands.
func TestPolyBLEPZeroAwayFromEdges(t *testing.T) {
	const dt = 0.02
	for _, phase := range []float64{dt, 0.25, 0.5, 0.75, 1.0 - dt} {
		require.Equal(t, 0.0, polyBLEP(phase, dt), "phase %v should be outside the correction band", phase)
	}
}

func TestPolyBLEPNonZeroAtEdges(t *testing.T) {
	const dt = 0.02
	require.NotEqual(t, 0.0, polyBLEP(0.0, dt))
	require.NotEqual(t, 0.0, polyBLEP(1.0-dt/2, dt))
}

func TestPolyBLAMPZeroAwayFromEdges(t *testing.T) {
	const dt = 0.02
	for _, phase := range []float64{dt, 0.25, 0.5, 0.75, 1.0 - dt} {
		require.Equal(t, 0.0, polyBLAMP(phase, dt), "phase %v should be outside the correction band", phase)
	}
}

func TestOscillatorPulseWidthClamped(t *testing.T) {
	o := NewOscillator(48000)
	o.SetPulseWidth(-1)
	require.Equal(t, 0.01, o.pulseW)
	o.SetPulseWidth(5)
	require.Equal(t, 0.99, o.pulseW)
}

func TestOscillatorResetClearsPhase(t *testing.T) {
	o := NewOscillator(48000)
	o.SetNote(69)
	for i := 0; i < 100; i++ {
		o.Next(WaveformSaw)
	}
	o.Reset()
	require.Equal(t, 0.0, o.phase)
}
