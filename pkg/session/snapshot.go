package session

import "sync/atomic"

// SnapshotData is the struct-of-arrays the UI thread publishes and the
// audio thread reads each block: the subset of session state the render
// path needs (mixer levels, clip states, transport position) flattened
// into fixed-size slices so a publish is a buffer-index swap, never a
// per-field allocation.
type SnapshotData struct {
	TrackVolumes []float64
	TrackMutes   []bool
	TrackSolos   []bool
	ClipStates   [][]ClipState // [track][scene]
	PlayheadBeat float64
	Playing      bool
}

func newSnapshotData(tracks, scenes int) *SnapshotData {
	d := &SnapshotData{
		TrackVolumes: make([]float64, tracks),
		TrackMutes:   make([]bool, tracks),
		TrackSolos:   make([]bool, tracks),
		ClipStates:   make([][]ClipState, tracks),
	}
	for i := range d.ClipStates {
		d.ClipStates[i] = make([]ClipState, scenes)
	}
	return d
}

// Snapshot is a double-buffered SnapshotData scaled up from
// pkg/param/atomic.go's AtomicFloat64 bit-reinterpretation pattern: where
// that type swaps a single float64's bits behind an atomic int64, here a
// whole struct-of-arrays is built off to the side and the index of the
// active buffer is swapped atomically, so the audio thread never observes a
// partially-written snapshot.
//
// Publish only takes effect when the audio thread is between blocks
// (processing == 0) and the graph is not mid-rebuild (rebuilding ==
// false) — the Open Question on gating is resolved in DESIGN.md in favor
// of checking both, since a rebuild can resize the very slices a publish
// would swap in.
type Snapshot struct {
	buffers    [2]*SnapshotData
	active     atomic.Uint32 // index into buffers currently read by the audio thread
	processing atomic.Int32  // >0 while the audio thread is inside Process
	rebuilding atomic.Bool   // true while the graph is being rebuilt
}

// NewSnapshot allocates both buffers sized for the given track/scene
// counts.
func NewSnapshot(tracks, scenes int) *Snapshot {
	return &Snapshot{
		buffers: [2]*SnapshotData{
			newSnapshotData(tracks, scenes),
			newSnapshotData(tracks, scenes),
		},
	}
}

// Read returns the currently-active snapshot for the audio thread. Must
// be paired with a call to EndProcessing once the block is done reading
// from it (the snapshot.processing guard Publish waits on).
func (s *Snapshot) Read() *SnapshotData {
	s.processing.Add(1)
	return s.buffers[s.active.Load()]
}

// EndProcessing releases the processing guard taken by Read.
func (s *Snapshot) EndProcessing() {
	s.processing.Add(-1)
}

// BeginRebuild sets the rebuilding flag, blocking Publish until
// EndRebuild is called.
func (s *Snapshot) BeginRebuild() { s.rebuilding.Store(true) }

// EndRebuild clears the rebuilding flag.
func (s *Snapshot) EndRebuild() { s.rebuilding.Store(false) }

// Inactive returns the buffer not currently being read, for the UI
// thread to fill in before calling Publish. Safe to write to freely: the
// audio thread never touches this buffer until a successful Publish
// flips it active.
func (s *Snapshot) Inactive() *SnapshotData {
	return s.buffers[1-s.active.Load()]
}

// Publish flips the inactive buffer to active if the audio thread is
// idle and no rebuild is in flight, returning false (no-op) otherwise —
// the caller should retry on its next UI tick rather than block.
func (s *Snapshot) Publish() bool {
	if s.processing.Load() != 0 || s.rebuilding.Load() {
		return false
	}
	next := 1 - s.active.Load()
	s.active.Store(next)
	return true
}

// FillFromSession copies the subset of session state the render path
// needs into dst (typically s.Inactive()), ready for Publish.
func (s *Session) FillFromSession(dst *SnapshotData) {
	anySoloed := s.AnySoloed()
	for i, t := range s.Tracks {
		if i >= len(dst.TrackVolumes) {
			break
		}
		dst.TrackVolumes[i] = t.EffectiveGain(anySoloed)
		dst.TrackMutes[i] = t.Mute
		dst.TrackSolos[i] = t.Solo
		for sc := range s.Clips[i] {
			if sc < len(dst.ClipStates[i]) {
				dst.ClipStates[i][sc] = s.Clips[i][sc].State
			}
		}
	}
	dst.PlayheadBeat = s.Transport.PlayheadBeat
	dst.Playing = s.Transport.Playing
}
