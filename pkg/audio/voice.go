package audio

import (
	"sync"

	"github.com/patchbay/sessioncore/pkg/dsp"
)

// VoiceStage identifies a voice's lifecycle position within the pool.
type VoiceStage int

const (
	// VoiceFree is an unused slot, immediately available to AllocateVoice.
	VoiceFree VoiceStage = iota
	// VoiceHeld is sounding with the envelope in attack/decay/sustain.
	VoiceHeld
	// VoiceReleased has received note-off; its envelope is in release.
	VoiceReleased
)

// Voice is a single synthesizer voice slot. Slots are allocated once at
// pool creation and reused in place; NoteID/Channel/Key identify the
// current occupant, not the slot itself, so a slot's address is stable
// across its lifetime (no pointer chasing, array-indexed by construction).
type Voice struct {
	NoteID   int32
	Channel  int16
	Key      int16
	Velocity float64
	Expression float64

	Oscillator *dsp.Oscillator
	Envelope   *dsp.Envelope

	PitchBend  float64 // semitones
	Brightness float64 // 0-1, drives filter cutoff modulation
	Pressure   float64 // aftertouch 0-1

	stage     VoiceStage
	ageTicks  uint64 // monotonically increasing allocation order, for stealing
}

// Stage reports the voice's current lifecycle stage.
func (v *Voice) Stage() VoiceStage { return v.stage }

// IsActive reports whether the voice is sounding (held or released but not
// yet silent).
func (v *Voice) IsActive() bool { return v.stage != VoiceFree }

// VoiceManager is a fixed-size voice pool (default 128, per spec.md's
// "≥128"). REDESIGN from clapgo's pkg/audio/voice.go VoiceManager: voices
// are addressed by index into a preallocated array rather than a slice of
// pointers reshuffled under a lock, and the render path
// (ForEachActive/GetVoiceByKey/ActiveVoiceCount) takes no mutex at all —
// the mutex is confined to the allocate/release/choke/lookup-by-note-ID/
// reset methods and the steal counter, called during event ingestion or
// off the audio thread, never from inside the per-sample render loop.
type VoiceManager struct {
	mu         sync.Mutex
	voices     []Voice
	sampleRate float64
	clock      uint64
	steals     uint64
}

// NewVoiceManager creates a pool of maxVoices voices (clamped to at least 1).
func NewVoiceManager(maxVoices int, sampleRate float64) *VoiceManager {
	if maxVoices < 1 {
		maxVoices = 1
	}
	vm := &VoiceManager{
		voices:     make([]Voice, maxVoices),
		sampleRate: sampleRate,
	}
	for i := range vm.voices {
		vm.voices[i].Oscillator = dsp.NewOscillator(sampleRate)
		vm.voices[i].Envelope = dsp.NewEnvelope(sampleRate)
	}
	return vm
}

// SetSampleRate propagates a sample-rate change to every voice's DSP state.
// Called during activate(), never from the render path.
func (vm *VoiceManager) SetSampleRate(sampleRate float64) {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	vm.sampleRate = sampleRate
	for i := range vm.voices {
		vm.voices[i].Oscillator.SetSampleRate(sampleRate)
		vm.voices[i].Envelope.SetSampleRate(sampleRate)
	}
}

// AllocateVoice locates a free voice, or steals one (oldest released, else
// oldest held) per spec.md's two-tier steal policy. Called once per
// note-on during block-start event ingestion; takes the pool mutex.
func (vm *VoiceManager) AllocateVoice(noteID int32, channel, key int16, velocity float64) *Voice {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	vm.clock++

	if idx, ok := vm.findFree(); ok {
		return vm.initializeVoice(idx, noteID, channel, key, velocity)
	}

	if idx, ok := vm.oldestOf(VoiceReleased); ok {
		vm.steals++
		return vm.initializeVoice(idx, noteID, channel, key, velocity)
	}

	if idx, ok := vm.oldestOf(VoiceHeld); ok {
		vm.steals++
		return vm.initializeVoice(idx, noteID, channel, key, velocity)
	}

	return nil
}

// StealEvents returns the cumulative number of times AllocateVoice has
// had to steal a sounding or released voice rather than use a free one.
func (vm *VoiceManager) StealEvents() uint64 {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.steals
}

func (vm *VoiceManager) findFree() (int, bool) {
	for i := range vm.voices {
		if vm.voices[i].stage == VoiceFree {
			return i, true
		}
	}
	return -1, false
}

func (vm *VoiceManager) oldestOf(stage VoiceStage) (int, bool) {
	best := -1
	var bestAge uint64
	for i := range vm.voices {
		if vm.voices[i].stage != stage {
			continue
		}
		if best == -1 || vm.voices[i].ageTicks < bestAge {
			best = i
			bestAge = vm.voices[i].ageTicks
		}
	}
	return best, best != -1
}

func (vm *VoiceManager) initializeVoice(idx int, noteID int32, channel, key int16, velocity float64) *Voice {
	v := &vm.voices[idx]
	v.NoteID = noteID
	v.Channel = channel
	v.Key = key
	v.Velocity = velocity
	v.Expression = 1.0
	v.PitchBend = 0
	v.Brightness = 1.0
	v.Pressure = 0
	v.ageTicks = vm.clock
	v.stage = VoiceHeld

	v.Oscillator.Reset()
	v.Oscillator.SetNote(float64(key))
	v.Envelope.Trigger()

	return v
}

// ReleaseVoice moves a held voice matching (noteID, channel) into release.
// Called during block-start event ingestion; takes the pool mutex.
func (vm *VoiceManager) ReleaseVoice(noteID int32, channel int16) {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	for i := range vm.voices {
		v := &vm.voices[i]
		if v.stage == VoiceHeld && v.NoteID == noteID && v.Channel == channel {
			v.Envelope.Release()
			v.stage = VoiceReleased
		}
	}
}

// ReleaseAllVoices releases every sounding voice (e.g. all-notes-off CC,
// plugin deactivate). Takes the pool mutex.
func (vm *VoiceManager) ReleaseAllVoices() {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	for i := range vm.voices {
		v := &vm.voices[i]
		if v.stage == VoiceHeld {
			v.Envelope.Release()
			v.stage = VoiceReleased
		}
	}
}

// GetVoiceByKey finds an active voice by (channel, key) for modulation
// events (pitch bend, pressure, CC) that target a held note rather than
// allocating a new one. Read-only; safe to call without the pool mutex
// since it never mutates stage/ageTicks — callers on the audio thread use
// this directly inside the render path.
func (vm *VoiceManager) GetVoiceByKey(channel, key int16) *Voice {
	for i := range vm.voices {
		v := &vm.voices[i]
		if v.stage != VoiceFree && v.Channel == channel && v.Key == key {
			return v
		}
	}
	return nil
}

// ForEachActive calls fn for every non-free voice, in pool order. This is
// the render-path iteration primitive: no lock, no allocation. After fn
// returns, ForEachActive itself flips the voice back to VoiceFree once its
// envelope has gone idle.
func (vm *VoiceManager) ForEachActive(fn func(v *Voice)) {
	for i := range vm.voices {
		v := &vm.voices[i]
		if v.stage == VoiceFree {
			continue
		}
		fn(v)
		if !v.Envelope.IsActive() {
			v.stage = VoiceFree
		}
	}
}

// ActiveVoiceCount returns the number of non-free voices. Render-path safe
// (no lock): used only for metering/diagnostics, tolerant of a torn read
// since stage writes are single-word and only happen during ingestion,
// never concurrently with ForEachActive on the same block.
func (vm *VoiceManager) ActiveVoiceCount() int {
	n := 0
	for i := range vm.voices {
		if vm.voices[i].stage != VoiceFree {
			n++
		}
	}
	return n
}

// Reset silences and frees every voice. Called off the audio thread
// (deactivate/rebuild), takes the pool mutex.
func (vm *VoiceManager) Reset() {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	for i := range vm.voices {
		v := &vm.voices[i]
		v.stage = VoiceFree
		v.Oscillator.Reset()
		v.Envelope.Reset()
	}
}

// Len returns the pool's fixed voice capacity.
func (vm *VoiceManager) Len() int { return len(vm.voices) }

// ApplyToAllVoices applies fn to every active voice. Used for per-block
// modulation events (pitch bend, CC, aftertouch) during event ingestion;
// takes the pool mutex since callers may run concurrently with
// AllocateVoice/ReleaseVoice at block start.
func (vm *VoiceManager) ApplyToAllVoices(fn func(v *Voice)) {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	for i := range vm.voices {
		if vm.voices[i].stage != VoiceFree {
			fn(&vm.voices[i])
		}
	}
}

// GetVoiceByNoteID finds an active voice by (noteID, channel) for
// per-note targeted events (note expression, choke). Takes the pool mutex.
func (vm *VoiceManager) GetVoiceByNoteID(noteID int32, channel int16) *Voice {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	for i := range vm.voices {
		v := &vm.voices[i]
		if v.stage != VoiceFree && v.NoteID == noteID && v.Channel == channel {
			return v
		}
	}
	return nil
}

// Choke immediately silences a voice by (noteID, channel), skipping
// release (used for note_choke and note-end cleanup). Takes the pool mutex.
func (vm *VoiceManager) Choke(noteID int32, channel int16) {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	for i := range vm.voices {
		v := &vm.voices[i]
		if v.stage != VoiceFree && v.NoteID == noteID && v.Channel == channel {
			v.stage = VoiceFree
			v.Envelope.Reset()
		}
	}
}

// SilenceChannel immediately frees every voice on a channel (all-sound-off).
// Takes the pool mutex.
func (vm *VoiceManager) SilenceChannel(channel int16) {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	for i := range vm.voices {
		v := &vm.voices[i]
		if v.stage != VoiceFree && v.Channel == channel {
			v.stage = VoiceFree
			v.Envelope.Reset()
		}
	}
}
