package graph

import (
	"sync/atomic"

	"github.com/patchbay/sessioncore/pkg/audio"
	"github.com/patchbay/sessioncore/pkg/plugin"
)

// processing counts in-flight Render calls; BeginRebuild busy-spins until
// it reads zero so the UI thread never mutates node adjacency or
// reallocates buffers while the audio thread is mid-render.
var processing atomic.Int32

// BeginRebuild blocks (busy-spinning, never calling into the scheduler)
// until no Render call is in flight, then marks the graph rebuilding so
// any Render that starts afterward is rejected until EndRebuild. Call
// only from the UI/main thread.
func (g *Graph) BeginRebuild() {
	for processing.Load() != 0 {
		// audio thread is mid-block; spin rather than block on a mutex,
		// since this runs on the UI thread and the audio thread must
		// never wait on anything the UI thread holds.
	}
	g.rebuilding = true
}

// EndRebuild clears the rebuilding flag, allowing Render calls through
// again.
func (g *Graph) EndRebuild() {
	g.rebuilding = false
}

// FaultPolicy governs how Render responds to a node's Process call
// returning ProcessResultError.
type FaultPolicy int

const (
	// FaultPolicyBypass silences the faulting node's output and
	// continues rendering the rest of the graph (spec.md's
	// bypass_on_fault default).
	FaultPolicyBypass FaultPolicy = iota
	// FaultPolicyPropagate stops the render and returns the error.
	FaultPolicyPropagate
)

// Render runs every node in topological order for frameCount frames
// starting at steadyTime, chunking internally into blocks of at most
// g.MaxFrames() so a caller-requested block larger than the graph's
// preallocated buffers never overruns them. The master node's rendered
// output is left in its AudioOut buffer for the caller to read after
// Render returns.
func (g *Graph) Render(steadyTime int64, frameCount int, policy FaultPolicy) error {
	if g.rebuilding {
		return nil // UI thread owns the graph right now; skip this block
	}
	processing.Add(1)
	defer processing.Add(-1)

	offset := 0
	for offset < frameCount {
		chunk := frameCount - offset
		if chunk > g.maxFrames {
			chunk = g.maxFrames
		}
		if err := g.renderChunk(steadyTime+int64(offset), chunk, policy); err != nil {
			return err
		}
		offset += chunk
	}
	return nil
}

func (g *Graph) renderChunk(steadyTime int64, frames int, policy FaultPolicy) error {
	for _, id := range g.order {
		n := g.Nodes[id]
		for ch := range n.AudioIn {
			n.inView[ch] = n.AudioIn[ch][:frames]
		}
		for ch := range n.AudioOut {
			n.outView[ch] = n.AudioOut[ch][:frames]
		}

		audio.ClearAudio(n.inView)
		for _, srcID := range n.inputs {
			audio.MixAudio(n.inView, g.Nodes[srcID].outView, 1.0)
		}

		result := n.Processor.Process(steadyTime, uint32(frames), n.inView, n.outView, n.EventsIn)
		n.EventsIn = n.EventsIn[:0]

		if result == plugin.ProcessResultError {
			if policy == FaultPolicyPropagate {
				return &renderError{node: n.Name}
			}
			audio.ClearAudio(n.outView)
		}
	}
	return nil
}

type renderError struct{ node string }

func (e *renderError) Error() string { return "graph: node " + e.node + " returned ProcessResultError" }
