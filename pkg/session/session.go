package session

import (
	"fmt"

	"github.com/patchbay/sessioncore/pkg/midi"
	"github.com/patchbay/sessioncore/pkg/transport"
)

// Fixed capacities per SPEC_FULL.md's data-type section. AddTrack and
// AddScene grow the backing slices one entry at a time up to these bounds
// and return an error, leaving the session unchanged, past them.
const (
	MaxTracks  = 64
	MaxScenes  = 64
	MaxVoices  = 128
	MaxMasterFX = 4

	// DefaultClipBars is the growth increment (in bars) applied when a
	// recording overruns its clip's current length.
	DefaultClipBars = 4
)

// Session owns the full track x scene clip grid, the track list, scenes,
// and the transport clock driving playback.
type Session struct {
	Tracks    []*Track
	Scenes    []*Scene
	Clips     [][]*ClipSlot // Clips[trackIdx][sceneIdx]
	Transport *transport.Transport
	armed     []bool // per-track record-armed flag

	keyGrids []midi.KeyGrid // per-track live key state for recording
}

// New creates an empty session with the given tempo.
func New(bpm float64) *Session {
	return &Session{
		Transport: transport.New(bpm),
	}
}

// AddTrack appends a track, growing the clip grid to match, up to
// MaxTracks. Returns an error (session unchanged) past the limit.
func (s *Session) AddTrack(t *Track) error {
	if len(s.Tracks) >= MaxTracks {
		return fmt.Errorf("session: track limit %d reached", MaxTracks)
	}
	s.Tracks = append(s.Tracks, t)
	s.armed = append(s.armed, false)
	s.keyGrids = append(s.keyGrids, midi.KeyGrid{})
	row := make([]*ClipSlot, len(s.Scenes))
	for i := range row {
		row[i] = NewClipSlot()
	}
	s.Clips = append(s.Clips, row)
	return nil
}

// AddScene appends a scene column, growing every track's clip row to
// match, up to MaxScenes.
func (s *Session) AddScene(sc *Scene) error {
	if len(s.Scenes) >= MaxScenes {
		return fmt.Errorf("session: scene limit %d reached", MaxScenes)
	}
	s.Scenes = append(s.Scenes, sc)
	for i := range s.Clips {
		s.Clips[i] = append(s.Clips[i], NewClipSlot())
	}
	return nil
}

// Clip returns the clip slot at (track, scene), or nil if out of range.
func (s *Session) Clip(track, scene int) *ClipSlot {
	if track < 0 || track >= len(s.Clips) {
		return nil
	}
	row := s.Clips[track]
	if scene < 0 || scene >= len(row) {
		return nil
	}
	return row[scene]
}

// SetArmed sets a track's record-armed flag, used to gate whether scene
// launch puts that track's slot into recording rather than playback.
func (s *Session) SetArmed(track int, armed bool) {
	if track >= 0 && track < len(s.armed) {
		s.armed[track] = armed
	}
}

// IsArmed reports a track's record-armed flag.
func (s *Session) IsArmed(track int) bool {
	if track < 0 || track >= len(s.armed) {
		return false
	}
	return s.armed[track]
}

// LaunchScene transitions every track's slot in the given scene column
// together. On an armed track, an empty or stopped slot becomes
// record-queued (an empty one first gets a length of DefaultClipBars
// bars); on an unarmed track, a stopped slot becomes queued for playback
// and an empty slot is left as it is. Each track's own slots in other
// scenes are stopped first: a playing slot is queued to stop and a
// recording slot is finalized at once (only one clip per track sounds at
// a time). immediate bypasses quantization (transport stopped case).
func (s *Session) LaunchScene(scene int, immediate bool) error {
	if scene < 0 || scene >= len(s.Scenes) {
		return fmt.Errorf("session: scene %d out of range", scene)
	}
	for track := range s.Tracks {
		slot := s.Clips[track][scene]

		s.stopOtherClipsInTrack(track, scene, immediate)

		switch slot.State {
		case ClipEmpty:
			if s.armed[track] {
				if slot.LengthBeats <= 0 {
					slot.LengthBeats = DefaultClipBars * s.Transport.BeatsPerBar
				}
				_ = slot.ArmRecord()
				if immediate {
					slot.ResolveQueued(s.Transport.PlayheadBeat)
				}
			}
		case ClipStopped:
			if s.armed[track] {
				_ = slot.ArmRecord()
			} else {
				_ = slot.Launch(immediate)
			}
			if immediate {
				slot.ResolveQueued(s.Transport.PlayheadBeat)
			}
		}
	}
	return nil
}

func (s *Session) stopOtherClipsInTrack(track, exceptScene int, immediate bool) {
	for sc, slot := range s.Clips[track] {
		if sc == exceptScene {
			continue
		}
		if slot.State == ClipPlaying {
			_ = slot.Stop(immediate)
			if immediate {
				slot.ResolveQueued(s.Transport.PlayheadBeat)
			}
		} else if slot.State == ClipRecording {
			slot.StopRecording(s.Transport.PlayheadBeat)
		}
	}
}

// StopAll requests every playing clip to stop, queued unless immediate,
// and finalizes every recording clip at once whatever immediate is.
func (s *Session) StopAll(immediate bool) {
	for track := range s.Clips {
		for _, slot := range s.Clips[track] {
			if slot.State == ClipPlaying {
				_ = slot.Stop(immediate)
			} else if slot.State == ClipRecording {
				slot.StopRecording(s.Transport.PlayheadBeat)
			}
		}
	}
}

// ResolveQueuedBoundary advances every queued clip across a crossed
// Qboundary. Called once per block when transport.CrossedBoundary fires.
func (s *Session) ResolveQueuedBoundary() {
	playhead := s.Transport.PlayheadBeat
	for track := range s.Clips {
		for _, slot := range s.Clips[track] {
			slot.ResolveQueued(playhead)
		}
	}
}

// AnySoloed reports whether any track in the session has Solo set.
func (s *Session) AnySoloed() bool {
	for _, t := range s.Tracks {
		if t.Solo {
			return true
		}
	}
	return false
}
