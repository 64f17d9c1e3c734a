package dsp

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-dsp/dsp/filter/biquad"
)

// Factor is a supported oversampling ratio.
type Factor int

const (
	Factor1x Factor = 1
	Factor2x Factor = 2
	Factor4x Factor = 4
)

// firTaps are symmetric low-pass FIR coefficients (odd-length, Hamming
// windowed sinc) for each supported factor's polyphase decimator. No pack
// library provides a polyphase FIR stage, so these are computed directly;
// the oversampler pairs them with a biquad anti-imaging stage (library
// code) ahead of decimation, per SPEC_FULL.md's ladder/oversampler design.
var firTaps = map[Factor][]float64{
	Factor2x: symmetricLowpassTaps(15, 0.45),
	Factor4x: symmetricLowpassTaps(31, 0.22),
}

// symmetricLowpassTaps builds a windowed-sinc FIR of the given odd length
// with normalized cutoff (fraction of Nyquist at the oversampled rate).
func symmetricLowpassTaps(length int, cutoff float64) []float64 {
	taps := make([]float64, length)
	mid := float64(length-1) / 2.0
	sum := 0.0
	for i := range taps {
		x := float64(i) - mid
		var sinc float64
		if x == 0 {
			sinc = cutoff
		} else {
			sinc = math.Sin(math.Pi*cutoff*x) / (math.Pi * x)
		}
		window := 0.54 - 0.46*math.Cos(2*math.Pi*float64(i)/float64(length-1))
		taps[i] = sinc * window
		sum += taps[i]
	}
	for i := range taps {
		taps[i] /= sum
	}
	return taps
}

// Oversampler runs an inner DSP stage at factor x the host rate, decimating
// back down through a symmetric polyphase FIR plus a biquad anti-imaging
// stage. At Factor1x it is a transparent passthrough (host rate == inner rate).
type Oversampler struct {
	factor     Factor
	taps       []float64
	history    []float64
	antiImage  *biquad.Chain
	sampleRate float64
}

// NewOversampler creates an oversampler for the given factor and host
// sample rate. The caller's DSP stage runs at factor x hostSampleRate;
// InnerFrames gives the matching inner block length.
func NewOversampler(factor Factor, hostSampleRate float64) (*Oversampler, error) {
	o := &Oversampler{factor: factor, sampleRate: hostSampleRate}
	if factor == Factor1x {
		return o, nil
	}

	taps, ok := firTaps[factor]
	if !ok {
		return nil, fmt.Errorf("dsp: unsupported oversampling factor %d", factor)
	}
	o.taps = taps
	o.history = make([]float64, len(taps))

	innerRate := hostSampleRate * float64(factor)
	coeffs, err := antiImagingCoefficients(innerRate, hostSampleRate*0.45)
	if err != nil {
		return nil, err
	}
	o.antiImage = biquad.NewChain(coeffs)
	return o, nil
}

// antiImagingCoefficients builds an RBJ-cookbook low-pass biquad section at
// the given cutoff/sample rate, processed through the library's Chain type.
func antiImagingCoefficients(sampleRate, cutoffHz float64) ([]biquad.Coefficients, error) {
	if cutoffHz <= 0 || cutoffHz >= sampleRate/2 {
		return nil, fmt.Errorf("dsp: invalid anti-imaging cutoff %.1fHz at %.1fHz", cutoffHz, sampleRate)
	}
	w0 := 2 * math.Pi * cutoffHz / sampleRate
	alpha := math.Sin(w0) / (2 * 0.7071) // Q = 1/sqrt(2), maximally flat
	cosW0 := math.Cos(w0)

	b0 := (1 - cosW0) / 2
	b1 := 1 - cosW0
	b2 := (1 - cosW0) / 2
	a0 := 1 + alpha
	a1 := -2 * cosW0
	a2 := 1 - alpha

	return []biquad.Coefficients{{
		B0: b0 / a0,
		B1: b1 / a0,
		B2: b2 / a0,
		A1: a1 / a0,
		A2: a2 / a0,
	}}, nil
}

// InnerFrames returns how many inner-rate samples correspond to n host-rate
// frames at this oversampler's factor.
func (o *Oversampler) InnerFrames(n int) int { return n * int(o.factor) }

// Decimate filters and downsamples `inner` (length = InnerFrames(len(out)))
// into out at the host rate.
func (o *Oversampler) Decimate(inner []float64, out []float64) {
	if o.factor == Factor1x {
		copy(out, inner)
		return
	}

	if o.antiImage != nil {
		o.antiImage.ProcessBlock(inner)
	}

	stride := int(o.factor)
	for i := range out {
		base := i * stride
		acc := 0.0
		for k, tap := range o.taps {
			idx := base + k
			var sample float64
			switch {
			case idx >= 0 && idx < len(inner):
				sample = inner[idx]
			case idx < 0:
				hi := len(o.history) + idx
				if hi >= 0 && hi < len(o.history) {
					sample = o.history[hi]
				}
			}
			acc += tap * sample
		}
		out[i] = acc
	}

	if n := len(inner); n >= len(o.history) {
		copy(o.history, inner[n-len(o.history):])
	} else {
		copy(o.history, o.history[n:])
		copy(o.history[len(o.history)-n:], inner)
	}
}

// Factor returns the oversampler's configured ratio.
func (o *Oversampler) Factor() Factor { return o.factor }
