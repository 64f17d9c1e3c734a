package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/patchbay/sessioncore/pkg/graph"
	"github.com/patchbay/sessioncore/pkg/midi"
	"github.com/patchbay/sessioncore/pkg/registry/builtin"
	"github.com/patchbay/sessioncore/pkg/session"
)

// Scenario 1: Launch quantized. bpm=120, quantize=1/4 note (one beat),
// playhead=1.30; launch slot (0,0). At the next block crossing beat 2.0
// the slot becomes playing.
func TestScenarioLaunchQuantized(t *testing.T) {
	s := session.New(120)
	s.Transport.Quantize = 1
	s.Transport.PlayheadBeat = 1.30
	s.Transport.Playing = true

	require.NoError(t, s.AddTrack(session.NewTrack("lead")))
	require.NoError(t, s.AddScene(session.NewScene("scene 1")))
	require.NoError(t, s.Clip(0, 0).Create(8))

	require.NoError(t, s.LaunchScene(0, false))
	require.Equal(t, session.ClipQueued, s.Clip(0, 0).State)

	for s.Transport.PlayheadBeat < 2.0 {
		s.Transport.Advance(64, 48000)
	}
	require.Greater(t, s.Transport.PlayheadBeat, 2.0-1e-9)
	s.ResolveQueuedBoundary()

	require.Equal(t, session.ClipPlaying, s.Clip(0, 0).State)
}

// Scenario 2: Record overdub. length_beats=8, start_beat=0, press C4 at
// beat 0.5 and release at beat 1.0. After stop, clip contains one note
// {pitch=60, start=0.5, duration=0.5}.
func TestScenarioRecordOverdub(t *testing.T) {
	s := session.New(120)
	require.NoError(t, s.AddTrack(session.NewTrack("lead")))
	require.NoError(t, s.AddScene(session.NewScene("scene 1")))

	slot := s.Clip(0, 0)
	require.NoError(t, slot.Create(8))
	require.NoError(t, slot.ArmRecord())
	slot.ResolveQueued(0)
	require.Equal(t, session.ClipRecording, slot.State)

	s.RecordNoteEvents(0, []midi.Classified{
		{Kind: midi.EventNoteOn, Key: 60, Velocity: 1.0},
	}, 0.5)
	s.RecordNoteEvents(0, []midi.Classified{
		{Kind: midi.EventNoteOff, Key: 60},
	}, 1.0)

	slot.StopRecording(1.0)
	require.Equal(t, session.ClipStopped, slot.State)
	require.Len(t, slot.Notes, 1)
	require.Equal(t, uint8(60), slot.Notes[0].Pitch)
	require.InDelta(t, 0.5, slot.Notes[0].Start, 1e-9)
	require.InDelta(t, 0.5, slot.Notes[0].Duration, 1e-9)
}

// Scenario 3: Held note through loop. Press C4 at beat 7.9 in an 8-beat
// clip; release at beat 0.2 of the next pass. Result: two notes
// {60, 7.9, 0.1} and {60, 0.0, 0.2}.
func TestScenarioHeldNoteThroughLoop(t *testing.T) {
	s := session.New(120)
	require.NoError(t, s.AddTrack(session.NewTrack("lead")))
	require.NoError(t, s.AddScene(session.NewScene("scene 1")))

	slot := s.Clip(0, 0)
	require.NoError(t, slot.Create(8))
	require.NoError(t, slot.ArmRecord())
	slot.ResolveQueued(0)

	s.RecordNoteEvents(0, []midi.Classified{
		{Kind: midi.EventNoteOn, Key: 60, Velocity: 1.0},
	}, 7.9)
	s.RecordNoteEvents(0, []midi.Classified{
		{Kind: midi.EventNoteOff, Key: 60},
	}, 8.2) // next pass's beat 0.2, i.e. 8 + 0.2

	require.Len(t, slot.Notes, 2)
	require.InDelta(t, 7.9, slot.Notes[0].Start, 1e-9)
	require.InDelta(t, 0.1, slot.Notes[0].Duration, 1e-9)
	require.InDelta(t, 0.0, slot.Notes[1].Start, 1e-9)
	require.InDelta(t, 0.2, slot.Notes[1].Duration, 1e-9)
	require.Equal(t, uint8(60), slot.Notes[1].Pitch)
}

// Scenario 5: Scene launch. Three tracks, scene 2 has clips in tracks 0
// and 2 only. Launch scene: tracks 0,2 enter queued; track 1 unchanged.
func TestScenarioSceneLaunchOnlyTouchesPopulatedSlots(t *testing.T) {
	s := session.New(120)
	s.Transport.Playing = true
	for i := 0; i < 3; i++ {
		require.NoError(t, s.AddTrack(session.NewTrack("t")))
	}
	for i := 0; i < 3; i++ {
		require.NoError(t, s.AddScene(session.NewScene("s")))
	}
	require.NoError(t, s.Clip(0, 2).Create(4))
	require.NoError(t, s.Clip(2, 2).Create(4))
	// track 1's (1,2) slot stays empty.

	require.NoError(t, s.LaunchScene(2, false))

	require.Equal(t, session.ClipQueued, s.Clip(0, 2).State)
	require.Equal(t, session.ClipQueued, s.Clip(2, 2).State)
	require.Equal(t, session.ClipEmpty, s.Clip(1, 2).State)
}

// Scenario 6: Hot plug-in swap. While playing, replace the instrument on
// track 0. Track 0 outputs silence for <= 1 block, then valid audio; no
// other track is disturbed. This test covers the swap under the rebuild
// barrier and the first block after it: Render succeeds and track 0's
// output is silent.
func TestScenarioHotPluginSwap(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxFrames = 64
	e, err := New(cfg)
	require.NoError(t, err)

	synthA, err := e.Registry.Create(builtin.MonoSynthID)
	require.NoError(t, err)
	require.NoError(t, synthA.Activate(cfg.SampleRate, 1, uint32(cfg.MaxFrames)))
	require.NoError(t, synthA.StartProcessing())
	node := e.Graph.AddNode("track0-synth", graph.KindSynth, synthA)
	e.AddMasterNode(node.ID)

	// a second, untouched track to confirm it is not disturbed by the swap.
	other, err := e.Registry.Create(builtin.GainID)
	require.NoError(t, err)
	require.NoError(t, other.Activate(cfg.SampleRate, 1, uint32(cfg.MaxFrames)))
	require.NoError(t, other.StartProcessing())
	e.Graph.AddNode("track1-gain", graph.KindGain, other)

	// swap the instrument under the rebuild barrier, as the UI thread
	// would when the user picks a different instrument.
	synthB, err := e.Registry.Create(builtin.MonoSynthID)
	require.NoError(t, err)
	require.NoError(t, synthB.Activate(cfg.SampleRate, 1, uint32(cfg.MaxFrames)))
	require.NoError(t, synthB.StartProcessing())

	e.Rebuild(func() {
		node.Processor = synthB
	})

	// first block after swap: no note has been sent to the new instrument
	// yet, so output is silence, but Render must not error.
	require.NoError(t, e.Process(0, 64))
	out := e.Master().AudioOut
	for _, v := range out[0][:64] {
		require.Equal(t, float32(0), v)
	}
}
