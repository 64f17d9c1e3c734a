package graph

import (
	"testing"

	"github.com/patchbay/sessioncore/pkg/midi"
	"github.com/patchbay/sessioncore/pkg/plugin"
	"github.com/stretchr/testify/require"
)

// gainNode is a minimal plugin.Processor used only by these tests: it
// copies input to output scaled by a fixed gain.
type gainNode struct {
	gain float32
}

func (g *gainNode) Init() error                                           { return nil }
func (g *gainNode) Destroy()                                              {}
func (g *gainNode) Activate(float64, uint32, uint32) error                 { return nil }
func (g *gainNode) Deactivate()                                            {}
func (g *gainNode) StartProcessing() error                                 { return nil }
func (g *gainNode) StopProcessing()                                       {}
func (g *gainNode) Reset()                                                {}
func (g *gainNode) GetExtension(string) interface{}                       { return nil }
func (g *gainNode) OnMainThread()                                         {}
func (g *gainNode) GetPluginID() string                                   { return "test.gain" }
func (g *gainNode) GetPluginInfo() plugin.Info                            { return plugin.Info{ID: "test.gain"} }

func (g *gainNode) Process(steadyTime int64, frames uint32, in, out [][]float32, events interface{}) plugin.ProcessResult {
	for ch := range out {
		for i := range out[ch] {
			if ch < len(in) {
				out[ch][i] = in[ch][i] * g.gain
			}
		}
	}
	return plugin.ProcessContinue
}

type faultyNode struct{}

func (f *faultyNode) Init() error                                     { return nil }
func (f *faultyNode) Destroy()                                        {}
func (f *faultyNode) Activate(float64, uint32, uint32) error           { return nil }
func (f *faultyNode) Deactivate()                                     {}
func (f *faultyNode) StartProcessing() error                          { return nil }
func (f *faultyNode) StopProcessing()                                 {}
func (f *faultyNode) Reset()                                          {}
func (f *faultyNode) GetExtension(string) interface{}                 { return nil }
func (f *faultyNode) OnMainThread()                                   {}
func (f *faultyNode) GetPluginID() string                             { return "test.faulty" }
func (f *faultyNode) GetPluginInfo() plugin.Info                      { return plugin.Info{ID: "test.faulty"} }
func (f *faultyNode) Process(int64, uint32, [][]float32, [][]float32, interface{}) plugin.ProcessResult {
	return plugin.ProcessResultError
}

// sourceNode ignores its input and writes a constant value, used to
// seed a graph branch for mix/scale tests without depending on
// AudioOut being pre-seeded by the test itself.
type sourceNode struct{ value float32 }

func (s *sourceNode) Init() error                                 { return nil }
func (s *sourceNode) Destroy()                                    {}
func (s *sourceNode) Activate(float64, uint32, uint32) error        { return nil }
func (s *sourceNode) Deactivate()                                  {}
func (s *sourceNode) StartProcessing() error                       { return nil }
func (s *sourceNode) StopProcessing()                              {}
func (s *sourceNode) Reset()                                       {}
func (s *sourceNode) GetExtension(string) interface{}              { return nil }
func (s *sourceNode) OnMainThread()                                {}
func (s *sourceNode) GetPluginID() string                          { return "test.source" }
func (s *sourceNode) GetPluginInfo() plugin.Info                   { return plugin.Info{ID: "test.source"} }
func (s *sourceNode) Process(int64, uint32, [][]float32, out [][]float32, interface{}) plugin.ProcessResult {
	for ch := range out {
		for i := range out[ch] {
			out[ch][i] = s.value
		}
	}
	return plugin.ProcessContinue
}

func TestConnectBuildsTopologicalOrder(t *testing.T) {
	g := New(64, 2)
	a := g.AddNode("a", KindSynth, &gainNode{gain: 1})
	b := g.AddNode("b", KindFX, &gainNode{gain: 0.5})
	c := g.AddNode("c", KindMaster, &gainNode{gain: 1})

	require.NoError(t, g.Connect(a.ID, b.ID))
	require.NoError(t, g.Connect(b.ID, c.ID))

	order := g.Order()
	require.Equal(t, []int{a.ID, b.ID, c.ID}, order)
}

func TestConnectRejectsCycle(t *testing.T) {
	g := New(64, 2)
	a := g.AddNode("a", KindSynth, &gainNode{gain: 1})
	b := g.AddNode("b", KindFX, &gainNode{gain: 1})
	require.NoError(t, g.Connect(a.ID, b.ID))
	require.Error(t, g.Connect(b.ID, a.ID))
}

func TestConnectRejectsSelfLoop(t *testing.T) {
	g := New(64, 2)
	a := g.AddNode("a", KindSynth, &gainNode{gain: 1})
	require.Error(t, g.Connect(a.ID, a.ID))
}

func TestRenderMixesAndScales(t *testing.T) {
	g := New(64, 1)
	srcA := g.AddNode("srcA", KindSynth, &sourceNode{value: 1})
	srcB := g.AddNode("srcB", KindSynth, &sourceNode{value: 1})
	amp := g.AddNode("amp", KindFX, &gainNode{gain: 2})
	require.NoError(t, g.Connect(srcA.ID, amp.ID))
	require.NoError(t, g.Connect(srcB.ID, amp.ID))

	require.NoError(t, g.Render(0, 32, FaultPolicyBypass))
	require.Equal(t, float32(4), g.Nodes[amp.ID].AudioOut[0][0], "amp input is srcA+srcB (1+1), scaled by gain 2")
}

func TestRenderChunksOversizedBlocks(t *testing.T) {
	g := New(16, 1)
	n := g.AddNode("n", KindFX, &gainNode{gain: 1})
	require.NoError(t, g.Render(0, 50, FaultPolicyBypass)) // 50 > maxFrames(16), must chunk without panicking
	_ = n
}

func TestRenderBypassesFaultyNode(t *testing.T) {
	g := New(32, 1)
	n := g.AddNode("n", KindFX, &faultyNode{})
	for i := range n.AudioOut[0] {
		n.AudioOut[0][i] = 1
	}
	require.NoError(t, g.Render(0, 32, FaultPolicyBypass))
	require.Equal(t, float32(0), n.AudioOut[0][0], "bypass policy must silence the faulting node's output")
}

func TestRenderPropagatesFaultWhenRequested(t *testing.T) {
	g := New(32, 1)
	g.AddNode("n", KindFX, &faultyNode{})
	require.Error(t, g.Render(0, 32, FaultPolicyPropagate))
}

func TestRenderSkippedWhileRebuilding(t *testing.T) {
	g := New(32, 1)
	g.AddNode("n", KindFX, &gainNode{gain: 1})
	g.rebuilding = true
	require.NoError(t, g.Render(0, 32, FaultPolicyBypass))
}

func TestLevelsGroupsIndependentNodes(t *testing.T) {
	g := New(32, 1)
	a := g.AddNode("a", KindNoteSource, &gainNode{gain: 1})
	b := g.AddNode("b", KindNoteSource, &gainNode{gain: 1})
	m := g.AddNode("m", KindMixer, &gainNode{gain: 1})
	require.NoError(t, g.Connect(a.ID, m.ID))
	require.NoError(t, g.Connect(b.ID, m.ID))

	levels := g.Levels()
	require.Len(t, levels, 2)
	require.ElementsMatch(t, []int{a.ID, b.ID}, levels[0])
	require.Equal(t, []int{m.ID}, levels[1])
}

func TestEventsInResetAfterProcess(t *testing.T) {
	g := New(32, 1)
	n := g.AddNode("n", KindSynth, &gainNode{gain: 1})
	n.EventsIn = append(n.EventsIn, midi.Classified{Kind: midi.EventNoteOn, Key: 60})
	require.NoError(t, g.Render(0, 32, FaultPolicyBypass))
	require.Len(t, n.EventsIn, 0)
}
