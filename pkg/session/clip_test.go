package session

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClipLifecycleImmediate(t *testing.T) {
	c := NewClipSlot()
	require.Equal(t, ClipEmpty, c.State)

	require.NoError(t, c.Create(16))
	require.Equal(t, ClipStopped, c.State)

	require.NoError(t, c.Launch(true))
	require.Equal(t, ClipPlaying, c.State)

	require.NoError(t, c.Stop(true))
	require.Equal(t, ClipStopped, c.State)
}

func TestClipLifecycleQueued(t *testing.T) {
	c := NewClipSlot()
	require.NoError(t, c.Create(16))
	require.NoError(t, c.Launch(false))
	require.Equal(t, ClipQueued, c.State)

	c.ResolveQueued(4)
	require.Equal(t, ClipPlaying, c.State)

	require.NoError(t, c.Stop(false))
	require.Equal(t, ClipQueuedStop, c.State)

	c.ResolveQueued(8)
	require.Equal(t, ClipStopped, c.State)
}

func TestClipInvalidTransitions(t *testing.T) {
	c := NewClipSlot()
	require.Error(t, c.Launch(true), "cannot launch an empty clip")
	require.Error(t, c.Stop(true), "cannot stop a clip that isn't playing")

	require.NoError(t, c.Create(4))
	require.Error(t, c.Create(4), "cannot re-create an existing clip")
}

func TestClipRecordQueueToRecording(t *testing.T) {
	c := NewClipSlot()
	require.NoError(t, c.ArmRecord())
	require.Equal(t, ClipRecordQueued, c.State)

	c.ResolveQueued(10)
	require.Equal(t, ClipRecording, c.State)

	c.StopRecording(14)
	require.Equal(t, ClipStopped, c.State)
}

func TestClipRecordingClosesOpenNotesAtLoopBoundary(t *testing.T) {
	c := NewClipSlot()
	c.LengthBeats = 4
	require.NoError(t, c.ArmRecord())
	c.ResolveQueued(0)

	idx := len(c.Notes)
	c.Notes = append(c.Notes, Note{Pitch: 60, Start: 3, Velocity: 1})
	c.openNotes[60] = idx

	// note-off arrives after wrapping past the 4-beat loop point
	c.StopRecording(5)

	require.Len(t, c.Notes, 1)
	require.InDelta(t, 2.0, c.Notes[0].Duration, 1e-9)
}

func TestIsActive(t *testing.T) {
	c := NewClipSlot()
	require.False(t, c.IsActive())

	require.NoError(t, c.Create(4))
	require.False(t, c.IsActive())

	require.NoError(t, c.Launch(true))
	require.True(t, c.IsActive())
}

func TestWrapModulo(t *testing.T) {
	require.InDelta(t, 1.0, wrapModulo(5, 4), 1e-9)
	require.InDelta(t, 3.0, wrapModulo(-1, 4), 1e-9)
	require.InDelta(t, 0.0, wrapModulo(4, 4), 1e-9)
	require.Equal(t, 0.0, wrapModulo(1, 0))
}
