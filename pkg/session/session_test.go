package session

import (
	"testing"

	"github.com/patchbay/sessioncore/pkg/midi"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T, tracks, scenes int) *Session {
	t.Helper()
	s := New(120)
	for i := 0; i < tracks; i++ {
		require.NoError(t, s.AddTrack(NewTrack("track")))
	}
	for i := 0; i < scenes; i++ {
		require.NoError(t, s.AddScene(NewScene("scene")))
	}
	return s
}

func TestAddTrackAndSceneGrowsGrid(t *testing.T) {
	s := newTestSession(t, 2, 3)
	require.Len(t, s.Tracks, 2)
	require.Len(t, s.Scenes, 3)
	for _, row := range s.Clips {
		require.Len(t, row, 3)
	}
}

func TestAddTrackRespectsLimit(t *testing.T) {
	s := New(120)
	for i := 0; i < MaxTracks; i++ {
		require.NoError(t, s.AddTrack(NewTrack("t")))
	}
	require.Error(t, s.AddTrack(NewTrack("overflow")))
}

func TestLaunchSceneImmediateStartsClips(t *testing.T) {
	s := newTestSession(t, 2, 1)
	require.NoError(t, s.Clip(0, 0).Create(4))
	require.NoError(t, s.Clip(1, 0).Create(4))

	require.NoError(t, s.LaunchScene(0, true))

	require.Equal(t, ClipPlaying, s.Clip(0, 0).State)
	require.Equal(t, ClipPlaying, s.Clip(1, 0).State)
}

func TestLaunchSceneStopsOtherScenePlayingInSameTrack(t *testing.T) {
	s := newTestSession(t, 1, 2)
	require.NoError(t, s.Clip(0, 0).Create(4))
	require.NoError(t, s.Clip(0, 1).Create(4))
	require.NoError(t, s.LaunchScene(0, true))
	require.Equal(t, ClipPlaying, s.Clip(0, 0).State)

	require.NoError(t, s.LaunchScene(1, true))
	require.Equal(t, ClipPlaying, s.Clip(0, 1).State)
	require.Equal(t, ClipStopped, s.Clip(0, 0).State)
}

func TestLaunchSceneArmsRecordingOnArmedTrack(t *testing.T) {
	s := newTestSession(t, 1, 1)
	s.SetArmed(0, true)

	require.NoError(t, s.LaunchScene(0, true))
	require.Equal(t, ClipRecording, s.Clip(0, 0).State)
}

func TestResolveQueuedBoundaryAdvancesAllQueuedClips(t *testing.T) {
	s := newTestSession(t, 1, 1)
	require.NoError(t, s.Clip(0, 0).Create(4))
	require.NoError(t, s.LaunchScene(0, false))
	require.Equal(t, ClipQueued, s.Clip(0, 0).State)

	s.Transport.PlayheadBeat = 4
	s.ResolveQueuedBoundary()
	require.Equal(t, ClipPlaying, s.Clip(0, 0).State)
}

func TestRecordNoteEventsCapturesNoteOnOff(t *testing.T) {
	s := newTestSession(t, 1, 1)
	s.SetArmed(0, true)
	require.NoError(t, s.LaunchScene(0, true))
	require.Equal(t, ClipRecording, s.Clip(0, 0).State)

	s.RecordNoteEvents(0, []midi.Classified{
		{Kind: midi.EventNoteOn, Channel: 0, Key: 60, Velocity: 0.8},
	}, 0)
	s.RecordNoteEvents(0, []midi.Classified{
		{Kind: midi.EventNoteOff, Channel: 0, Key: 60},
	}, 1)

	clip := s.Clip(0, 0)
	require.Len(t, clip.Notes, 1)
	require.Equal(t, uint8(60), clip.Notes[0].Pitch)
	require.InDelta(t, 1.0, clip.Notes[0].Duration, 1e-9)
}

func TestRecordNoteEventsGrowsClipLength(t *testing.T) {
	s := newTestSession(t, 1, 1)
	s.Transport.BeatsPerBar = 4
	s.SetArmed(0, true)
	require.NoError(t, s.LaunchScene(0, true))

	clip := s.Clip(0, 0)
	initialLen := DefaultClipBars * s.Transport.BeatsPerBar
	require.InDelta(t, initialLen, clip.LengthBeats, 1e-9)

	s.RecordNoteEvents(0, []midi.Classified{
		{Kind: midi.EventNoteOn, Channel: 0, Key: 60, Velocity: 1},
	}, initialLen+1)

	require.InDelta(t, initialLen*2, clip.LengthBeats, 1e-9)
}

func TestAnySoloedAndEffectiveGain(t *testing.T) {
	s := newTestSession(t, 2, 0)
	require.False(t, s.AnySoloed())

	s.Tracks[0].Solo = true
	require.True(t, s.AnySoloed())

	require.Equal(t, s.Tracks[0].Volume, s.Tracks[0].EffectiveGain(true))
	require.Equal(t, 0.0, s.Tracks[1].EffectiveGain(true))
}
