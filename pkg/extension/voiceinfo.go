package extension

// VoiceInfo mirrors clapgo's voice-info extension payload, minus the cgo
// struct population: callers read the fields directly instead of the
// teacher's ClapGo_PluginVoiceInfoGet marshaling into a C struct.
type VoiceInfo struct {
	VoiceCount    uint32
	VoiceCapacity uint32
	Flags         uint64
}

// VoiceInfoSupportsOverlappingNotes indicates a processor can sound more
// than one voice on the same key at once.
const VoiceInfoSupportsOverlappingNotes = 1 << 0

// VoiceInfoProvider is implemented by processors backed by a voice pool
// (pkg/audio.VoiceManager-based instruments); effects don't implement it.
type VoiceInfoProvider interface {
	GetVoiceInfo() VoiceInfo
}
