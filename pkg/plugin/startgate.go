package plugin

import "sync/atomic"

// StartGate mediates the race between the UI thread swapping in a new
// processor instance (e.g. after loading a different instrument into a
// track) and the audio thread's once-per-block check of whether that
// processor still needs its StartProcessing call. Generalizes
// pkg/param/atomic.go's single-float64 bit-swap to a small struct of
// flags published behind an atomic pointer, so the swap is still a
// single atomic store and the audio thread never observes a half-updated
// processor/flag pair.
type StartGate struct {
	state atomic.Pointer[gateState]
}

type gateState struct {
	proc       Processor
	needsStart bool
	started    bool
}

// NewStartGate wraps an initial processor, marked as needing a start.
func NewStartGate(proc Processor) *StartGate {
	g := &StartGate{}
	g.state.Store(&gateState{proc: proc, needsStart: true})
	return g
}

// Publish atomically swaps in a new processor, marked needing a start.
// Call from the UI thread only; the currently-running block keeps using
// whatever pointer it already loaded via Current.
func (g *StartGate) Publish(proc Processor) {
	g.state.Store(&gateState{proc: proc, needsStart: true})
}

// Current returns the active processor and, if it still needs its
// StartProcessing call, performs that call and marks it started. Safe to
// call once per block from the audio thread: the flag flip only affects
// the gateState this call observed, never a snapshot published
// concurrently by Publish.
func (g *StartGate) Current() (Processor, error) {
	s := g.state.Load()
	if s == nil {
		return nil, nil
	}
	if s.needsStart && !s.started {
		if err := s.proc.StartProcessing(); err != nil {
			return s.proc, err
		}
		s.started = true
		s.needsStart = false
	}
	return s.proc, nil
}

// Processor returns the currently published processor without touching
// the needsStart/started flags, for non-audio-thread callers (extension
// dispatch, GUI, state save/load).
func (g *StartGate) Processor() Processor {
	s := g.state.Load()
	if s == nil {
		return nil
	}
	return s.proc
}
