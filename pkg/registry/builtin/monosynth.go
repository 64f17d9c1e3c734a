// Package builtin registers the instruments and effects that ship with
// the engine itself (no external plugin loading, per spec.md
// Non-goals): MonoSynth, Gain, and EQ. Each implements plugin.Processor
// and is wired into the graph the same way an external processor would
// be, keeping the built-in/external distinction invisible past
// pkg/registry.
package builtin

import (
	"github.com/patchbay/sessioncore/pkg/audio"
	"github.com/patchbay/sessioncore/pkg/controls"
	"github.com/patchbay/sessioncore/pkg/dsp"
	"github.com/patchbay/sessioncore/pkg/extension"
	"github.com/patchbay/sessioncore/pkg/midi"
	"github.com/patchbay/sessioncore/pkg/param"
	"github.com/patchbay/sessioncore/pkg/plugin"
)

// MonoSynthID is the registry ID MonoSynth registers under.
const MonoSynthID = "builtin.monosynth"

// MonoSynth's automatable parameter IDs.
const (
	ParamCutoff = iota
	ParamResonance
	ParamWaveform
	ParamPan
)

const remoteControlsPageMonoSynth = 1

// MonoSynth is the built-in polyphonic subtractive instrument: one
// dsp.Oscillator/dsp.Envelope/VCA per voice (via audio.VoiceManager),
// summed and passed through a single shared dsp.Ladder filter. Grounded
// on the dsp/audio packages themselves; this file is the processor
// shell (plugin.Processor lifecycle, event ingestion) that wires them
// together per spec.md §4.1/§4.2/§4.3.
type MonoSynth struct {
	*plugin.PluginBase

	voices     *audio.VoiceManager
	filter     *dsp.Ladder
	sampleRate float64

	wave      dsp.Waveform
	cutoffHz  float64
	resonance float64
	pan       float32

	bundle   *extension.Bundle
	noteName *extension.NoteName

	// scratch accumulates the mono sum across all active voices for the
	// current block, then doubles as the shared filter's in-place
	// buffer. Sized to maxFrames in Activate and reused every block so
	// Process never allocates.
	scratch  []float64
	blockLen int

	// monoRow holds the float32 conversion of scratch after filtering,
	// spread to every output channel via audio.MonoToStereo (stereo) or a
	// plain per-channel copy otherwise. Sized alongside scratch.
	monoRow []float32

	// voiceFn is built once (NewMonoSynth) and reused for every
	// ForEachActive call: it closes over m only, never over a block's
	// local variables, so calling ForEachActive costs nothing on the
	// heap no matter how many blocks are rendered.
	voiceFn func(v *audio.Voice)
}

// NewMonoSynth creates a MonoSynth with maxVoices voices (clamped to at
// least 1) and default filter settings (fully open, no resonance). Its
// four parameters (cutoff, resonance, waveform, pan) are registered with
// the embedded PluginBase so a host (or the UI thread's
// ParamValue/SetParamValue calls) can automate them without reaching into
// synth-specific fields, and a ParamManager listener keeps the fields
// used on the audio thread (cutoffHz, resonance, wave, pan) in sync with
// whatever value was last set or restored from state.
func NewMonoSynth(maxVoices int) *MonoSynth {
	m := &MonoSynth{
		PluginBase: plugin.NewPluginBase(Info()),
		voices:     audio.NewVoiceManager(maxVoices, 48000),
		wave:       dsp.WaveformSaw,
		cutoffHz:   8000,
		resonance:  0,
	}
	_ = m.PluginBase.ParamManager.RegisterAll(
		param.Cutoff(ParamCutoff, "Cutoff"),
		param.Resonance(ParamResonance, "Resonance"),
		param.Choice(ParamWaveform, "Waveform", 3, int(dsp.WaveformSaw)),
		param.Info{
			ID:           ParamPan,
			Name:         "Pan",
			MinValue:     -1.0,
			MaxValue:     1.0,
			DefaultValue: 0.0,
			Flags:        param.FlagAutomatable | param.FlagModulatable | param.FlagBoundedBelow | param.FlagBoundedAbove,
		},
	)
	m.PluginBase.ParamManager.AddListener(m.onParamChanged)
	_ = m.SetCutoffHz(8000)

	m.noteName = extension.NewNoteName()
	m.noteName.SetGMDrumNames()
	m.bundle = extension.NewBundle(Info().Name, m.PluginBase.ParamManager, audio.NewNotePortManager())
	m.bundle.RemoteControls = m.remoteControlsPage
	m.bundle.RemoteControlsPageCount = 1
	m.bundle.AudioPorts = monoSynthAudioPorts()
	m.bundle.VoiceInfo = m

	m.voiceFn = func(v *audio.Voice) {
		for i := 0; i < m.blockLen; i++ {
			v.Oscillator.SetNote(float64(v.Key) + v.PitchBend)
			osc := v.Oscillator.Next(m.wave) * v.Velocity * v.Expression
			env := v.Envelope.Process()
			m.scratch[i] += osc * env
		}
	}
	return m
}

// onParamChanged applies a ParamManager change (from a live automation
// write or a restored state.load) to the fields MonoSynth actually reads
// while rendering.
func (m *MonoSynth) onParamChanged(paramID uint32, oldValue, newValue float64) {
	switch paramID {
	case ParamCutoff:
		_ = m.SetCutoffHz(newValue)
	case ParamResonance:
		_ = m.SetResonance(newValue)
	case ParamWaveform:
		m.wave = dsp.Waveform(int(newValue))
	case ParamPan:
		m.pan = float32(newValue)
	}
}

// monoSynthAudioPorts describes MonoSynth's single stereo output and no
// audio input (it is a note-driven source, not an effect), built from
// pkg/audio's port builder the way a CLAP host would query audio-ports.
func monoSynthAudioPorts() *audio.MultiPortProvider {
	out := audio.MainStereoOutput(0, "MonoSynth Output").MustBuild()
	return &audio.MultiPortProvider{OutputPorts: []audio.PortInfo{out}}
}

// GetVoiceInfo implements extension.VoiceInfoProvider.
func (m *MonoSynth) GetVoiceInfo() extension.VoiceInfo {
	return extension.VoiceInfo{
		VoiceCount:    uint32(m.voices.ActiveVoiceCount()),
		VoiceCapacity: uint32(m.voices.Len()),
		Flags:         extension.VoiceInfoSupportsOverlappingNotes,
	}
}

// VoiceStealEvents returns the voice pool's cumulative steal count, for
// an engine's performance counters to report deltas from.
func (m *MonoSynth) VoiceStealEvents() uint64 { return m.voices.StealEvents() }

// remoteControlsPage exposes MonoSynth's cutoff, resonance and waveform
// parameters (not pan) on a single smart-param page, grounded on pkg/controls' RBJ-cookbook-adjacent
// FilterControlsPage preset builder.
func (m *MonoSynth) remoteControlsPage(pageIndex uint32) (*controls.RemoteControlsPage, bool) {
	if pageIndex != 0 {
		return nil, false
	}
	page := controls.NewRemoteControlsPageBuilder(remoteControlsPageMonoSynth, "MonoSynth").
		Section(controls.CategoryOscillator).
		AddParameters(ParamCutoff, ParamResonance, ParamWaveform).
		MustBuild()
	return &page, true
}

// Info returns MonoSynth's plugin.Info.
func Info() plugin.Info {
	return plugin.Info{
		ID:       MonoSynthID,
		Name:     "MonoSynth",
		Vendor:   "patchbay",
		Version:  "0.1.0",
		Features: []string{plugin.FeatureInstrument, plugin.FeatureSynthesizer},
	}
}

// Activate allocates the ladder filter at the session sample rate and
// propagates it to every voice.
func (m *MonoSynth) Activate(sampleRate float64, minFrames, maxFrames uint32) error {
	if err := m.PluginBase.Activate(sampleRate, minFrames, maxFrames); err != nil {
		return err
	}
	m.sampleRate = sampleRate
	m.voices.SetSampleRate(sampleRate)

	filter, err := dsp.NewLadder(sampleRate)
	if err != nil {
		return err
	}
	m.filter = filter
	_ = m.filter.SetCutoffHz(sampleRate, m.cutoffHz)
	_ = m.filter.SetResonance(m.resonance)
	m.scratch = make([]float64, maxFrames)
	m.monoRow = make([]float32, maxFrames)
	return nil
}

// SetWaveform selects the oscillator waveform applied to every voice.
func (m *MonoSynth) SetWaveform(w dsp.Waveform) { m.wave = w }

// SetCutoffHz sets the shared filter's cutoff.
func (m *MonoSynth) SetCutoffHz(hz float64) error {
	m.cutoffHz = hz
	if m.filter == nil {
		return nil
	}
	return m.filter.SetCutoffHz(m.sampleRate, hz)
}

// SetResonance sets the shared filter's resonance.
func (m *MonoSynth) SetResonance(r float64) error {
	m.resonance = r
	if m.filter == nil {
		return nil
	}
	return m.filter.SetResonance(r)
}

// Process ingests this block's classified MIDI events (note on/off map
// directly onto VoiceManager's allocate/release, pitch bend sets
// PitchBend on every voice of the event's channel, other events are
// ignored), renders every active voice's oscillator through its envelope
// into a mono sum, runs the sum through the shared ladder filter, and
// spreads the result to audioOut (panned when the output is stereo).
func (m *MonoSynth) Process(steadyTime int64, frameCount uint32, audioIn, audioOut [][]float32, events interface{}) plugin.ProcessResult {
	m.ingestEvents(events)

	n := int(frameCount)
	for ch := range audioOut {
		for i := 0; i < n && i < len(audioOut[ch]); i++ {
			audioOut[ch][i] = 0
		}
	}
	if len(audioOut) == 0 || n > len(m.scratch) {
		return plugin.ProcessContinue
	}

	// sum is accumulated directly in m.scratch (float64) so the shared
	// filter below can run in place without a second conversion pass.
	block := m.scratch[:n]
	for i := range block {
		block[i] = 0
	}
	m.blockLen = n
	m.voices.ForEachActive(m.voiceFn)

	// the shared filter runs once against the mono sum rather than once
	// per output channel, which would otherwise leak filter state
	// between channels; the result is then spread across every output
	// channel and, for a stereo output, panned.
	if m.filter != nil {
		m.filter.ProcessInPlace(block)
	}
	row := m.monoRow[:n]
	for i, v := range block {
		row[i] = float32(v)
	}
	if len(audioOut) == 2 {
		_ = audio.MonoToStereo(audio.Buffer(audioOut), row)
		if m.pan != 0 {
			_ = audio.ApplyPan(audio.Buffer(audioOut), m.pan)
		}
	} else {
		for ch := range audioOut {
			copy(audioOut[ch][:n], row)
		}
	}

	return plugin.ProcessContinue
}

func (m *MonoSynth) ingestEvents(events interface{}) {
	classified, ok := events.([]midi.Classified)
	if !ok {
		return
	}
	for _, ev := range classified {
		switch ev.Kind {
		case midi.EventNoteOn:
			m.voices.AllocateVoice(int32(ev.Key), int16(ev.Channel), int16(ev.Key), ev.Velocity)
		case midi.EventNoteOff:
			m.voices.ReleaseVoice(int32(ev.Key), int16(ev.Channel))
		case midi.EventPitchBend:
			m.voices.ApplyToAllVoices(func(v *audio.Voice) {
				if v.Channel == int16(ev.Channel) {
					v.PitchBend = ev.Bend * 2 // +/-2 semitones
				}
			})
		}
	}
}

// Reset silences all voices.
func (m *MonoSynth) Reset() {
	m.voices.Reset()
}

// GetExtension surfaces MonoSynth's note-name table and param/note-port
// bundle (params, note ports, remote controls), falling back to the
// embedded PluginBase for anything it doesn't recognize.
func (m *MonoSynth) GetExtension(id string) interface{} {
	if id == extension.NoteNameID {
		return m.noteName
	}
	if ext := m.bundle.Get(id); ext != nil {
		return ext
	}
	return m.PluginBase.GetExtension(id)
}
