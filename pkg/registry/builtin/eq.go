package builtin

import (
	"math"

	"github.com/cwbudde/algo-dsp/dsp/filter/biquad"
	"github.com/patchbay/sessioncore/pkg/audio"
	"github.com/patchbay/sessioncore/pkg/extension"
	"github.com/patchbay/sessioncore/pkg/param"
	"github.com/patchbay/sessioncore/pkg/plugin"
)

// EQID is the registry ID the EQ effect registers under.
const EQID = "builtin.eq"

// eqParamBase returns the first of a band's three contiguous parameter
// IDs (freq, gain, Q, in that order).
func eqParamBase(band int) uint32 { return uint32(band * 3) }

// EQBandKind selects an RBJ-cookbook biquad shape for one band.
type EQBandKind int

const (
	EQLowShelf EQBandKind = iota
	EQPeak
	EQHighShelf
)

// EQBand is one of the EQ's three bands.
type EQBand struct {
	Kind   EQBandKind
	FreqHz float64
	GainDB float64
	Q      float64
}

const eqBandCount = 3

// EQ is a three-band parametric equalizer: low-shelf, peak, high-shelf,
// each an RBJ-cookbook biquad run through a github.com/cwbudde/algo-dsp
// biquad.Chain (the same library dependency pkg/dsp/oversampler.go's
// anti-imaging stage uses, applied here to a musical rather than
// anti-aliasing role). Grounded on the CWBudde-algo-dsp effect-chain
// file's biquad.Chain usage.
type EQ struct {
	*plugin.PluginBase

	bands      [eqBandCount]EQBand
	sampleRate float64
	chains     [2]*biquad.Chain // one per channel, up to stereo
	scratch    []float64        // float64 conversion buffer, sized to maxFrames in Activate

	bundle *extension.Bundle
}

// NewEQ creates a flat EQ (0 dB on every band) at default frequencies,
// with each band's freq/gain/Q registered as an automatable parameter
// so a host (or state.load) can drive the same rebuild path SetBand does.
func NewEQ() *EQ {
	e := &EQ{
		PluginBase: plugin.NewPluginBase(eqInfo()),
		bands: [eqBandCount]EQBand{
			{Kind: EQLowShelf, FreqHz: 120, Q: 0.707},
			{Kind: EQPeak, FreqHz: 1000, Q: 1.0},
			{Kind: EQHighShelf, FreqHz: 8000, Q: 0.707},
		},
	}
	for i, b := range e.bands {
		base := eqParamBase(i)
		_ = e.PluginBase.ParamManager.RegisterAll(
			param.Frequency(base+0, eqBandParamName(i, "Freq"), 20, 20000, b.FreqHz),
			eqGainParam(base+1, eqBandParamName(i, "Gain"), b.GainDB),
			param.Frequency(base+2, eqBandParamName(i, "Q"), 0.1, 10, b.Q),
		)
	}
	e.PluginBase.ParamManager.AddListener(e.onParamChanged)

	e.bundle = extension.NewBundle(eqInfo().Name, e.PluginBase.ParamManager, nil)
	e.bundle.AudioPorts = eqAudioPorts()
	return e
}

// eqAudioPorts describes EQ's single in-place stereo input/output pair,
// built from pkg/audio's fluent port builder (MainStereoInput/Output)
// rather than the simpler StereoPortProvider Gain uses, so both audio
// ports helpers in this tree get exercised.
func eqAudioPorts() *audio.MultiPortProvider {
	in := audio.MainStereoInput(0, "EQ Input").MustBuild()
	out := audio.MainStereoOutput(0, "EQ Output").InPlacePair(0).MustBuild()
	return &audio.MultiPortProvider{
		InputPorts:  []audio.PortInfo{in},
		OutputPorts: []audio.PortInfo{out},
	}
}

func eqBandParamName(band int, field string) string {
	names := [eqBandCount]string{"Low", "Mid", "High"}
	name := "Band"
	if band >= 0 && band < len(names) {
		name = names[band]
	}
	return name + " " + field
}

func eqGainParam(id uint32, name string, defaultDB float64) param.Info {
	return param.Info{
		ID:           id,
		Name:         name,
		MinValue:     -24.0,
		MaxValue:     24.0,
		DefaultValue: defaultDB,
		Flags:        param.FlagAutomatable | param.FlagModulatable | param.FlagBoundedBelow | param.FlagBoundedAbove,
	}
}

// onParamChanged applies a live or restored freq/gain/Q change to the
// matching band and rebuilds its biquad coefficients.
func (e *EQ) onParamChanged(paramID uint32, oldValue, newValue float64) {
	band := int(paramID / 3)
	if band < 0 || band >= eqBandCount {
		return
	}
	switch paramID % 3 {
	case 0:
		e.bands[band].FreqHz = newValue
	case 1:
		e.bands[band].GainDB = newValue
	case 2:
		e.bands[band].Q = newValue
	}
	_ = e.rebuild()
}

func eqInfo() plugin.Info {
	return plugin.Info{
		ID:       EQID,
		Name:     "EQ",
		Vendor:   "patchbay",
		Version:  "0.1.0",
		Features: []string{plugin.FeatureAudioEffect, plugin.FeatureEqualizer},
	}
}

// Activate builds the per-channel biquad chains at the session sample rate.
func (e *EQ) Activate(sampleRate float64, minFrames, maxFrames uint32) error {
	if err := e.PluginBase.Activate(sampleRate, minFrames, maxFrames); err != nil {
		return err
	}
	e.sampleRate = sampleRate
	e.scratch = make([]float64, maxFrames)
	return e.rebuild()
}

// SetBand updates one band's parameters through the param manager (so
// automation, state.save, and SetBand all flow through the same
// onParamChanged rebuild path) and rebuilds the biquad chains.
// Not called from the audio render path (UI-thread parameter edit).
func (e *EQ) SetBand(index int, band EQBand) error {
	if index < 0 || index >= eqBandCount {
		return nil
	}
	band.Kind = e.bands[index].Kind
	e.bands[index] = band
	base := eqParamBase(index)
	if err := e.PluginBase.ParamManager.SetValue(base+0, band.FreqHz); err != nil {
		return err
	}
	if err := e.PluginBase.ParamManager.SetValue(base+1, band.GainDB); err != nil {
		return err
	}
	if err := e.PluginBase.ParamManager.SetValue(base+2, band.Q); err != nil {
		return err
	}
	return e.rebuild()
}

func (e *EQ) rebuild() error {
	if e.sampleRate <= 0 {
		return nil
	}
	coeffs := make([]biquad.Coefficients, 0, eqBandCount)
	for _, b := range e.bands {
		c, err := eqCoefficients(b, e.sampleRate)
		if err != nil {
			return err
		}
		coeffs = append(coeffs, c)
	}
	for ch := range e.chains {
		e.chains[ch] = biquad.NewChain(coeffs)
	}
	return nil
}

// eqCoefficients derives RBJ-cookbook biquad coefficients for one band.
func eqCoefficients(b EQBand, sampleRate float64) (biquad.Coefficients, error) {
	w0 := 2 * math.Pi * b.FreqHz / sampleRate
	cosW0 := math.Cos(w0)
	sinW0 := math.Sin(w0)
	a := math.Pow(10, b.GainDB/40)
	alpha := sinW0 / (2 * b.Q)

	var b0, b1, b2, a0, a1, a2 float64

	switch b.Kind {
	case EQLowShelf:
		beta := math.Sqrt(a) / b.Q
		b0 = a * ((a + 1) - (a-1)*cosW0 + beta*sinW0)
		b1 = 2 * a * ((a - 1) - (a+1)*cosW0)
		b2 = a * ((a + 1) - (a-1)*cosW0 - beta*sinW0)
		a0 = (a + 1) + (a-1)*cosW0 + beta*sinW0
		a1 = -2 * ((a - 1) + (a+1)*cosW0)
		a2 = (a + 1) + (a-1)*cosW0 - beta*sinW0
	case EQHighShelf:
		beta := math.Sqrt(a) / b.Q
		b0 = a * ((a + 1) + (a-1)*cosW0 + beta*sinW0)
		b1 = -2 * a * ((a - 1) + (a+1)*cosW0)
		b2 = a * ((a + 1) + (a-1)*cosW0 - beta*sinW0)
		a0 = (a + 1) - (a-1)*cosW0 + beta*sinW0
		a1 = 2 * ((a - 1) - (a+1)*cosW0)
		a2 = (a + 1) - (a-1)*cosW0 - beta*sinW0
	default: // EQPeak
		b0 = 1 + alpha*a
		b1 = -2 * cosW0
		b2 = 1 - alpha*a
		a0 = 1 + alpha/a
		a1 = -2 * cosW0
		a2 = 1 - alpha/a
	}

	return biquad.Coefficients{
		B0: b0 / a0,
		B1: b1 / a0,
		B2: b2 / a0,
		A1: a1 / a0,
		A2: a2 / a0,
	}, nil
}

// Process copies input to output (audio.CopyAudio), then runs any
// channel with a built chain through its own biquad.Chain in place
// (independent filter state per channel, unlike MonoSynth's
// shared-state shortcut); a channel with no chain yet is left as the
// copied passthrough.
func (e *EQ) Process(steadyTime int64, frameCount uint32, audioIn, audioOut [][]float32, events interface{}) plugin.ProcessResult {
	if !audio.ValidateBuffers(audioOut, audioIn) {
		return plugin.ProcessResultError
	}
	n := int(frameCount)
	if n > len(e.scratch) {
		return plugin.ProcessResultError
	}
	audio.CopyAudio(audioOut, audioIn)

	channels := len(audioOut)
	if len(audioIn) < channels {
		channels = len(audioIn)
	}
	block := e.scratch[:n]
	for ch := 0; ch < channels && ch < len(e.chains); ch++ {
		chain := e.chains[ch]
		if chain == nil {
			continue
		}
		for i := 0; i < n; i++ {
			block[i] = float64(audioOut[ch][i])
		}
		chain.ProcessBlock(block)
		for i := 0; i < n; i++ {
			audioOut[ch][i] = float32(block[i])
		}
	}
	return plugin.ProcessContinue
}

// GetExtension surfaces EQ's param/state/audio-ports/gui bundle, falling
// back to the embedded PluginBase for anything it doesn't recognize.
func (e *EQ) GetExtension(id string) interface{} {
	if ext := e.bundle.Get(id); ext != nil {
		return ext
	}
	return e.PluginBase.GetExtension(id)
}
