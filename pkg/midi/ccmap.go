package midi

// BindingKind identifies what a CC number controls.
type BindingKind int

const (
	BindingNone BindingKind = iota
	BindingFader
	BindingMute
	BindingSmartParam
	BindingPagePrev
	BindingPageNext
	BindingTransportStop
	BindingTransportPlay
	BindingTransportLoop
	BindingTransportRecord
)

// CCBinding describes what a CC number does and, for per-track/per-knob
// bindings, which index it targets.
type CCBinding struct {
	Kind  BindingKind
	Index int // track index (fader/mute) or knob index (smart-param)
}

// CCMap holds the CC table as data, overridable from YAML when the engine's
// Config is loaded (see LoadConfig/BuildCCMap in pkg/engine/config.go). DefaultCCMap below matches
// spec.md §6's table exactly.
type CCMap map[uint8]CCBinding

// DefaultCCMap returns the spec.md §6 fixed CC table:
//   - CC 33-40:  fader -> track volume (8 tracks)
//   - CC 49-56:  mute toggle when value >= 64 (8 tracks; see IsRisingEdge)
//   - CC 71-77,93: smart-param knobs 0-7 (1:1 linear to targeted plugin param)
//   - CC 98/99:  smart-param page prev/next, value >= 64
//   - CC 114:    transport stop
//   - CC 115:    transport play
//   - CC 116:    transport loop
//   - CC 117:    transport record
func DefaultCCMap() CCMap {
	m := make(CCMap, 8+8+8+2+4)
	for i := 0; i < 8; i++ {
		m[uint8(33+i)] = CCBinding{Kind: BindingFader, Index: i}
		m[uint8(49+i)] = CCBinding{Kind: BindingMute, Index: i}
	}
	smartParamCCs := []uint8{71, 72, 73, 74, 75, 76, 77, 93}
	for i, cc := range smartParamCCs {
		m[cc] = CCBinding{Kind: BindingSmartParam, Index: i}
	}
	m[98] = CCBinding{Kind: BindingPagePrev}
	m[99] = CCBinding{Kind: BindingPageNext}
	m[114] = CCBinding{Kind: BindingTransportStop}
	m[115] = CCBinding{Kind: BindingTransportPlay}
	m[116] = CCBinding{Kind: BindingTransportLoop}
	m[117] = CCBinding{Kind: BindingTransportRecord}
	return m
}

// Lookup resolves a CC number, returning ok=false for unmapped CCs.
func (m CCMap) Lookup(cc uint8) (CCBinding, bool) {
	b, ok := m[cc]
	return b, ok
}

// FaderToVolume converts a 0-127 CC fader value to the track volume range
// [0, 1.5] per spec.md's "linear to 1.5x range".
func FaderToVolume(value uint8) float64 {
	return (float64(value) / 127.0) * 1.5
}

// IsRisingEdge reports whether a CC value is at or above the mute/edge-
// trigger threshold (value >= 64). It looks at this one value only and keeps
// no previous value, so every message at or above 64 counts, not only the
// first one after a value below 64.
func IsRisingEdge(value uint8) bool {
	return value >= 64
}
