package builtin

import (
	"math"

	"github.com/patchbay/sessioncore/pkg/audio"
	"github.com/patchbay/sessioncore/pkg/extension"
	"github.com/patchbay/sessioncore/pkg/param"
	"github.com/patchbay/sessioncore/pkg/plugin"
	"github.com/patchbay/sessioncore/pkg/util"
)

// GainID is the registry ID the Gain effect registers under.
const GainID = "builtin.gain"

// ParamGainDb is Gain's single automatable parameter.
const ParamGainDb = uint32(0)

// Gain is the simplest built-in effect: a single smoothed multiplier
// applied to every channel, input to output. Grounded on clapgo's
// pkg/audio/process.go ProcessWithGain/ApplyGainToChannel helpers,
// generalized here with a one-pole smoother so parameter automation
// doesn't click. The parameter itself is stored in dB (the unit every
// mixing console and the teacher's own util.LinearToDb/DbToLinear pair
// assume); onParamChanged converts to the linear multiplier the audio
// thread actually applies.
type Gain struct {
	*plugin.PluginBase

	target     float32
	current    float32
	coeff      float32
	sampleRate float64

	bundle *extension.Bundle
}

// NewGain creates a Gain effect at unity (0 dB) gain.
func NewGain() *Gain {
	g := &Gain{
		PluginBase: plugin.NewPluginBase(gainInfo()),
		target:     1,
		current:    1,
	}
	_ = g.PluginBase.ParamManager.Register(gainDbParam())
	g.PluginBase.ParamManager.AddListener(g.onParamChanged)

	g.bundle = extension.NewBundle(gainInfo().Name, g.PluginBase.ParamManager, nil)
	g.bundle.AudioPorts = audio.NewStereoPortProvider()
	return g
}

func gainDbParam() param.Info {
	return param.Info{
		ID:           ParamGainDb,
		Name:         "Gain",
		MinValue:     -60.0,
		MaxValue:     12.0,
		DefaultValue: 0.0,
		Flags:        param.FlagAutomatable | param.FlagModulatable | param.FlagBoundedBelow | param.FlagBoundedAbove,
	}
}

func gainInfo() plugin.Info {
	return plugin.Info{
		ID:       GainID,
		Name:     "Gain",
		Vendor:   "patchbay",
		Version:  "0.1.0",
		Features: []string{plugin.FeatureAudioEffect, plugin.FeatureUtility},
	}
}

const gainSmoothMs = 5.0

// Activate derives the smoothing coefficient for the session sample rate.
func (g *Gain) Activate(sampleRate float64, minFrames, maxFrames uint32) error {
	if err := g.PluginBase.Activate(sampleRate, minFrames, maxFrames); err != nil {
		return err
	}
	g.sampleRate = sampleRate
	samples := sampleRate * gainSmoothMs / 1000.0
	if samples < 1 {
		samples = 1
	}
	g.coeff = float32(1.0 - math.Exp(-1.0/samples))
	return nil
}

// onParamChanged converts the dB parameter value to the linear target
// gain Process ramps toward.
func (g *Gain) onParamChanged(paramID uint32, oldValue, newValue float64) {
	if paramID != ParamGainDb {
		return
	}
	g.target = float32(util.DbToLinear(newValue))
}

// SetGain sets the target gain in dB; Process ramps toward the
// equivalent linear multiplier. Equivalent to SetParamValue(ParamGainDb, db).
func (g *Gain) SetGain(db float64) error {
	return g.PluginBase.SetParamValue(ParamGainDb, db)
}

// Gain returns the currently-applied (smoothed) linear gain multiplier.
func (g *Gain) Gain() float32 { return g.current }

// Process writes each channel of audioIn, times the smoothed gain, into
// audioOut; every channel gets the same per-sample gain. Once the
// smoother has converged (no pending automation move), the per-sample
// ramp has nothing left to do, so the block is processed with
// audio.ProcessWithGain's flat multiply instead of stepping a one-pole
// filter toward a target it has already reached.
func (g *Gain) Process(steadyTime int64, frameCount uint32, audioIn, audioOut [][]float32, events interface{}) plugin.ProcessResult {
	if !audio.ValidateBuffers(audioOut, audioIn) {
		return plugin.ProcessResultError
	}
	n := int(frameCount)
	channels := len(audioOut)
	if len(audioIn) < channels {
		channels = len(audioIn)
	}

	if g.current == g.target {
		audio.ProcessWithGain(audioOut[:channels], audioIn[:channels], g.current)
		return plugin.ProcessContinue
	}

	for i := 0; i < n; i++ {
		g.current += g.coeff * (g.target - g.current)
		for ch := 0; ch < channels; ch++ {
			if i < len(audioOut[ch]) && i < len(audioIn[ch]) {
				audioOut[ch][i] = audioIn[ch][i] * g.current
			}
		}
	}
	return plugin.ProcessContinue
}

// GetExtension surfaces Gain's param/state/audio-ports/gui bundle,
// falling back to the embedded PluginBase for anything it doesn't
// recognize.
func (g *Gain) GetExtension(id string) interface{} {
	if ext := g.bundle.Get(id); ext != nil {
		return ext
	}
	return g.PluginBase.GetExtension(id)
}
