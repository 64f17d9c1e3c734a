// Package graph implements the audio graph (C4): typed nodes connected
// into a DAG, a topological build with cycle rejection, preallocated
// per-node audio buffers, chunked rendering for block sizes exceeding
// max_frames, and a rebuild barrier that lets the UI thread restructure
// the graph without the audio thread ever observing a half-built one.
// No direct teacher analog — clapgo is a single plugin, not a host
// wiring several together — but the buffer/port shapes below reuse
// pkg/audio.Buffer and the process-result vocabulary from pkg/plugin.
package graph

import (
	"fmt"

	"github.com/patchbay/sessioncore/pkg/audio"
	"github.com/patchbay/sessioncore/pkg/midi"
	"github.com/patchbay/sessioncore/pkg/plugin"
)

// Kind tags what a node does. The scheduler treats every node uniformly
// through Processor; the engine uses Kind to pick the nodes that receive
// routed MIDI (KindSynth), and it serves diagnostics and the registry UI
// layer.
type Kind int

const (
	KindNoteSource Kind = iota
	KindSynth
	KindFX
	KindGain
	KindMixer
	KindMaster
)

func (k Kind) String() string {
	switch k {
	case KindNoteSource:
		return "note-source"
	case KindSynth:
		return "synth"
	case KindFX:
		return "fx"
	case KindGain:
		return "gain"
	case KindMixer:
		return "mixer"
	case KindMaster:
		return "master"
	default:
		return "unknown"
	}
}

// Node is one vertex of the audio graph: a processor plus its
// preallocated audio/event ports and its adjacency in the DAG.
type Node struct {
	ID   int
	Name string
	Kind Kind

	Processor plugin.Processor

	// AudioIn/AudioOut are preallocated to [channels][maxFrames]float32
	// at graph build time and never reallocated during Process.
	AudioIn  audio.Buffer
	AudioOut audio.Buffer

	// EventsIn carries classified MIDI destined for this node (note
	// sources and synths); effects ignore it.
	EventsIn []midi.Classified

	// inView/outView are reused across every Render call: their outer
	// slice is allocated once here and each channel's inner slice is
	// re-sliced to the current chunk length in renderChunk, so no
	// allocation occurs on the audio thread even though chunk length
	// varies block to block.
	inView  [][]float32
	outView [][]float32

	inputs  []int // node IDs feeding AudioIn, in port order
	outputs []int // node IDs this node feeds
}

// Graph owns the node set, its topological order, and the fixed buffer
// geometry every node was allocated against.
type Graph struct {
	Nodes     []*Node
	order     []int // topologically sorted node indices, appended by AddNode, rebuilt on Connect/Disconnect
	maxFrames int
	channels  int

	rebuilding bool
}

// New creates an empty graph sized for up to maxFrames samples per block
// and the given channel count (stereo = 2). Every node's buffers are
// allocated at this fixed size regardless of the block size actually
// requested at render time; oversized blocks are chunked in Render.
func New(maxFrames, channels int) *Graph {
	return &Graph{maxFrames: maxFrames, channels: channels}
}

// AddNode appends a processor as a new node, allocating its audio ports.
func (g *Graph) AddNode(name string, kind Kind, proc plugin.Processor) *Node {
	n := &Node{
		ID:        len(g.Nodes),
		Name:      name,
		Kind:      kind,
		Processor: proc,
		AudioIn:   audio.NewBuffer(g.channels, g.maxFrames),
		AudioOut:  audio.NewBuffer(g.channels, g.maxFrames),
		inView:    make([][]float32, g.channels),
		outView:   make([][]float32, g.channels),
	}
	g.Nodes = append(g.Nodes, n)
	// a new node has no edges yet, so placing it last keeps the order valid
	g.order = append(g.order, n.ID)
	return n
}

// Connect wires src's output into dst's input, rejecting the edge if it
// would introduce a cycle. Rebuilds the topological order on success.
func (g *Graph) Connect(src, dst int) error {
	if !g.validID(src) || !g.validID(dst) {
		return fmt.Errorf("graph: invalid node id in Connect(%d, %d)", src, dst)
	}
	if src == dst {
		return fmt.Errorf("graph: node %d cannot connect to itself", src)
	}
	g.Nodes[src].outputs = append(g.Nodes[src].outputs, dst)
	g.Nodes[dst].inputs = append(g.Nodes[dst].inputs, src)

	order, err := g.topoSort()
	if err != nil {
		// undo: this edge would create a cycle
		g.Nodes[src].outputs = g.Nodes[src].outputs[:len(g.Nodes[src].outputs)-1]
		g.Nodes[dst].inputs = g.Nodes[dst].inputs[:len(g.Nodes[dst].inputs)-1]
		return err
	}
	g.order = order
	return nil
}

// Disconnect removes a previously-connected edge and rebuilds the order.
func (g *Graph) Disconnect(src, dst int) error {
	if !g.validID(src) || !g.validID(dst) {
		return fmt.Errorf("graph: invalid node id in Disconnect(%d, %d)", src, dst)
	}
	g.Nodes[src].outputs = removeID(g.Nodes[src].outputs, dst)
	g.Nodes[dst].inputs = removeID(g.Nodes[dst].inputs, src)
	order, err := g.topoSort()
	if err != nil {
		return err
	}
	g.order = order
	return nil
}

func removeID(ids []int, target int) []int {
	out := ids[:0]
	for _, id := range ids {
		if id != target {
			out = append(out, id)
		}
	}
	return out
}

func (g *Graph) validID(id int) bool {
	return id >= 0 && id < len(g.Nodes)
}

// topoSort runs Kahn's algorithm over the current edge set, returning an
// error if a cycle is present.
func (g *Graph) topoSort() ([]int, error) {
	inDegree := make([]int, len(g.Nodes))
	for _, n := range g.Nodes {
		for _, dst := range n.outputs {
			inDegree[dst]++
		}
	}

	queue := make([]int, 0, len(g.Nodes))
	for id, deg := range inDegree {
		if deg == 0 {
			queue = append(queue, id)
		}
	}

	order := make([]int, 0, len(g.Nodes))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		order = append(order, id)
		for _, dst := range g.Nodes[id].outputs {
			inDegree[dst]--
			if inDegree[dst] == 0 {
				queue = append(queue, dst)
			}
		}
	}

	if len(order) != len(g.Nodes) {
		return nil, fmt.Errorf("graph: connecting would create a cycle")
	}
	return order, nil
}

// Order returns the current topological node order.
func (g *Graph) Order() []int {
	return g.order
}

// MaxFrames returns the fixed per-block frame capacity every node's
// buffers were allocated against.
func (g *Graph) MaxFrames() int { return g.maxFrames }
