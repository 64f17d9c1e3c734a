package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/patchbay/sessioncore/pkg/graph"
	"github.com/patchbay/sessioncore/pkg/midi"
	"github.com/patchbay/sessioncore/pkg/registry/builtin"
	"github.com/patchbay/sessioncore/pkg/session"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	cfg := DefaultConfig()
	cfg.MaxFrames = 64
	e, err := New(cfg)
	require.NoError(t, err)

	synth, err := e.Registry.Create(builtin.MonoSynthID)
	require.NoError(t, err)
	require.NoError(t, synth.Activate(cfg.SampleRate, 1, uint32(cfg.MaxFrames)))
	require.NoError(t, synth.StartProcessing())
	node := e.Graph.AddNode("synth", graph.KindSynth, synth)
	e.AddMasterNode(node.ID)

	require.NoError(t, e.Session.AddTrack(session.NewTrack("lead")))
	e.AttachSnapshot()
	return e
}

func TestNewBuildsRegistryWithBuiltins(t *testing.T) {
	e := newTestEngine(t)
	require.Equal(t, 3, e.Registry.Count())
}

func TestProcessRendersSilenceWithNoNotes(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.Process(0, 64))

	out := e.Master().AudioOut
	for ch := range out {
		for _, s := range out[ch][:64] {
			require.Equal(t, float32(0), s)
		}
	}
}

func TestProcessRoutesNoteOnToSynth(t *testing.T) {
	e := newTestEngine(t)
	e.MIDIIn.Push(midi.Message{Data: [3]byte{0x90, 69, 100}, Len: 3})

	require.NoError(t, e.Process(0, 64))

	out := e.Master().AudioOut
	nonZero := false
	for ch := range out {
		for _, s := range out[ch][:64] {
			if s != 0 {
				nonZero = true
			}
		}
	}
	require.True(t, nonZero, "expected synth output after note-on")
}

func TestProcessAdvancesTransportOnlyWhilePlaying(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.Process(0, 64))
	require.Equal(t, 0.0, e.Session.Transport.PlayheadBeat)

	e.Session.Transport.Play()
	require.NoError(t, e.Process(0, 64))
	require.Greater(t, e.Session.Transport.PlayheadBeat, 0.0)
}

func TestProcessHandlesSceneLaunchNote(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.Session.AddScene(session.NewScene("scene 1")))
	require.NoError(t, e.Session.Clip(0, 0).Create(4))

	// channel 10 (0x99), key 36: scene-launch note for scene index 0. The
	// transport is stopped, so the stopped clip starts playing at once.
	e.MIDIIn.Push(midi.Message{Data: [3]byte{0x99, 36, 100}, Len: 3})
	require.NoError(t, e.Process(0, 64))

	slot := e.Session.Clip(0, 0)
	require.Equal(t, session.ClipPlaying, slot.State)
}

func TestProcessFaderCCSetsTrackVolume(t *testing.T) {
	e := newTestEngine(t)
	// CC 33 is the fader for track 0, value 127 -> 1.5x per midi.FaderToVolume.
	e.MIDIIn.Push(midi.Message{Data: [3]byte{0xB0, 33, 127}, Len: 3})
	require.NoError(t, e.Process(0, 64))
	require.InDelta(t, 1.5, e.Session.Tracks[0].Volume, 1e-9)
}

func TestProcessDoesNotAllocateOnAudioThread(t *testing.T) {
	e := newTestEngine(t)
	e.Session.Transport.Play()

	avg := testing.AllocsPerRun(20, func() {
		_ = e.Process(0, 64)
	})
	require.Equal(t, float64(0), avg, "Process must not allocate per block")
}
