package builtin

import (
	"bytes"
	"testing"

	"github.com/patchbay/sessioncore/pkg/midi"
	"github.com/patchbay/sessioncore/pkg/plugin"
	"github.com/patchbay/sessioncore/pkg/registry"
	"github.com/stretchr/testify/require"
)

func TestRegisterAllAddsThreeProcessors(t *testing.T) {
	r := registry.New()
	require.NoError(t, RegisterAll(r))
	require.Equal(t, 3, r.Count())

	for _, id := range []string{MonoSynthID, GainID, EQID} {
		p, err := r.Create(id)
		require.NoError(t, err)
		require.NotNil(t, p)
	}
}

func TestMonoSynthProducesSoundOnNoteOn(t *testing.T) {
	m := NewMonoSynth(4)
	require.NoError(t, m.Activate(48000, 0, 64))

	out := [][]float32{make([]float32, 64), make([]float32, 64)}
	events := []midi.Classified{{Kind: midi.EventNoteOn, Channel: 0, Key: 69, Velocity: 1}}

	result := m.Process(0, 64, nil, out, events)
	require.Equal(t, plugin.ProcessContinue, result)

	var anyNonZero bool
	for _, v := range out[0] {
		if v != 0 {
			anyNonZero = true
			break
		}
	}
	require.True(t, anyNonZero, "a held voice must produce nonzero output")
}

func TestMonoSynthSilentWithNoNotes(t *testing.T) {
	m := NewMonoSynth(4)
	require.NoError(t, m.Activate(48000, 0, 64))

	out := [][]float32{make([]float32, 64)}
	m.Process(0, 64, nil, out, nil)
	for _, v := range out[0] {
		require.Equal(t, float32(0), v)
	}
}

func TestGainAppliesSmoothedMultiplier(t *testing.T) {
	g := NewGain()
	// a 5ms smoother at 48kHz has a ~240-sample time constant, so the
	// block must run for several time constants before convergence is
	// within tolerance.
	const frames = 3000
	require.NoError(t, g.Activate(48000, 0, frames))
	require.NoError(t, g.SetGain(-6.0)) // -6 dB ~= 0.5 linear

	in := [][]float32{make([]float32, frames)}
	out := [][]float32{make([]float32, frames)}
	for i := range in[0] {
		in[0][i] = 1
	}
	g.Process(0, frames, in, out, nil)
	require.InDelta(t, 0.5, out[0][frames-1], 0.01, "gain must have converged close to target by end of block")
}

func TestEQFlatBandsPassSignalThrough(t *testing.T) {
	e := NewEQ()
	require.NoError(t, e.Activate(48000, 0, 64))

	in := [][]float32{make([]float32, 64)}
	out := [][]float32{make([]float32, 64)}
	for i := range in[0] {
		in[0][i] = 0.5
	}
	e.Process(0, 64, in, out, nil)
	// a flat (0 dB) EQ settles to near-unity gain after the biquad's
	// transient, so a constant input should converge back toward itself.
	require.InDelta(t, 0.5, out[0][63], 0.05)
}

func TestEQSetBandRebuildsChain(t *testing.T) {
	e := NewEQ()
	require.NoError(t, e.Activate(48000, 0, 64))
	require.NoError(t, e.SetBand(1, EQBand{Kind: EQPeak, FreqHz: 1000, GainDB: 6, Q: 1}))
	require.Equal(t, 6.0, e.bands[1].GainDB)
}

func TestMonoSynthParamRoundTripThroughSetAndGet(t *testing.T) {
	m := NewMonoSynth(4)
	require.NoError(t, m.SetParamValue(ParamCutoff, 2500))
	require.NoError(t, m.SetParamValue(ParamResonance, 0.75))

	got, err := m.ParamValue(ParamCutoff)
	require.NoError(t, err)
	require.InDelta(t, 2500, got, 1e-9)
	require.InDelta(t, 2500, m.cutoffHz, 1e-9, "listener must mirror the parameter into the audio-thread field")

	got, err = m.ParamValue(ParamResonance)
	require.NoError(t, err)
	require.InDelta(t, 0.75, got, 1e-9)
}

func TestMonoSynthStateSaveLoadYieldsIdenticalParamValues(t *testing.T) {
	m := NewMonoSynth(4)
	require.NoError(t, m.SetParamValue(ParamCutoff, 3300))
	require.NoError(t, m.SetParamValue(ParamResonance, 0.42))
	require.NoError(t, m.SetParamValue(ParamWaveform, 2))

	var buf bytes.Buffer
	require.NoError(t, m.SaveState(&buf))

	restored := NewMonoSynth(4)
	require.NoError(t, restored.LoadState(bytes.NewReader(buf.Bytes())))

	for _, id := range []uint32{ParamCutoff, ParamResonance, ParamWaveform} {
		want, err := m.ParamValue(id)
		require.NoError(t, err)
		got, err := restored.ParamValue(id)
		require.NoError(t, err)
		require.InDelta(t, want, got, 1e-9)
	}
	require.Equal(t, m.wave, restored.wave, "listener must apply the restored waveform choice")
}

func TestGainStateSaveLoadYieldsIdenticalParamValues(t *testing.T) {
	g := NewGain()
	require.NoError(t, g.SetGain(-9.0))

	var buf bytes.Buffer
	require.NoError(t, g.SaveState(&buf))

	restored := NewGain()
	require.NoError(t, restored.LoadState(bytes.NewReader(buf.Bytes())))

	want, err := g.ParamValue(ParamGainDb)
	require.NoError(t, err)
	got, err := restored.ParamValue(ParamGainDb)
	require.NoError(t, err)
	require.InDelta(t, want, got, 1e-9)
	require.InDelta(t, float64(g.target), float64(restored.target), 1e-9)
}
