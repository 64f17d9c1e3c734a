package plugin

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeProcessor struct {
	*PluginBase
	starts int
}

func (f *fakeProcessor) StartProcessing() error {
	f.starts++
	return nil
}
func (f *fakeProcessor) Process(int64, uint32, [][]float32, [][]float32, interface{}) ProcessResult {
	return ProcessContinue
}

func newFakeProcessor() *fakeProcessor {
	return &fakeProcessor{PluginBase: NewPluginBase(Info{ID: "test"})}
}

func TestStartGateCallsStartOnceUntilPublish(t *testing.T) {
	p := newFakeProcessor()
	g := NewStartGate(p)

	cur, err := g.Current()
	require.NoError(t, err)
	require.Same(t, p, cur)
	require.Equal(t, 1, p.starts)

	_, err = g.Current()
	require.NoError(t, err)
	require.Equal(t, 1, p.starts, "second block must not re-call StartProcessing")
}

func TestStartGatePublishResetsNeedsStart(t *testing.T) {
	p1 := newFakeProcessor()
	p2 := newFakeProcessor()
	g := NewStartGate(p1)
	_, _ = g.Current()

	g.Publish(p2)
	cur, err := g.Current()
	require.NoError(t, err)
	require.Same(t, p2, cur)
	require.Equal(t, 1, p2.starts)
	require.Equal(t, 1, p1.starts, "swapped-out processor must not be touched again")
}

func TestStartGateProcessorDoesNotTriggerStart(t *testing.T) {
	p := newFakeProcessor()
	g := NewStartGate(p)
	cur := g.Processor()
	require.Same(t, p, cur)
	require.Equal(t, 0, p.starts)
}
