package session

// MuteBehavior names where a track's mute takes effect relative to its
// gain stage: PreGainMute (the zero value, so the default) or
// PostGainMute. The value is only stored on Track; nothing in the module
// reads it, and EffectiveGain returns 0 for a muted track under either
// value.
type MuteBehavior int

const (
	PreGainMute MuteBehavior = iota
	PostGainMute
)

// FXSlotsPerTrack bounds each track's insert-effect chain.
const FXSlotsPerTrack = 4

// FXSlot is one insert-effect position in a track's chain.
type FXSlot struct {
	PluginID string
	Bypassed bool
}

// Track is one channel of the session: an instrument, up to four insert
// effects, and mixer state (volume/mute/solo).
type Track struct {
	Name         string
	Volume       float64 // 0..1.5, linear
	Mute         bool
	Solo         bool
	MuteBehavior MuteBehavior
	Instrument   string // registry plugin ID, empty if audio-only track
	FX           [FXSlotsPerTrack]FXSlot
}

// NewTrack creates a track at unity volume, unmuted, with the default
// mute behavior.
func NewTrack(name string) *Track {
	return &Track{
		Name:   name,
		Volume: 1.0,
	}
}

// EffectiveGain returns the gain to apply to this track's output given
// whether any track in the session is soloed. A track plays at its
// Volume unless muted, or not soloed while another track is (treated as
// an implicit mute); both cases return 0 whatever MuteBehavior is set.
func (t *Track) EffectiveGain(anySoloed bool) float64 {
	if t.Mute {
		return 0
	}
	if anySoloed && !t.Solo {
		return 0
	}
	return t.Volume
}

// Scene is one column of the track x scene launch grid.
type Scene struct {
	Name string
}

// NewScene creates a named scene.
func NewScene(name string) *Scene {
	return &Scene{Name: name}
}
