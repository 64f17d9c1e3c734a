// Package engine is the top-level object tying the plug-in interface
// (C3), audio graph (C4), and transport/session (C5) together into one
// per-block Process call: MIDI ingestion, transport advance, Qboundary
// resolution, graph render, and UI snapshot publish. No direct teacher
// analog (clapgo is the plugin side of a C3 boundary, never the host
// driving one), built new but wiring together every already-ledgered
// package rather than introducing parallel logic.
package engine

import (
	"sync/atomic"

	"github.com/patchbay/sessioncore/pkg/audio"
	"github.com/patchbay/sessioncore/pkg/extension"
	"github.com/patchbay/sessioncore/pkg/graph"
	"github.com/patchbay/sessioncore/pkg/host"
	"github.com/patchbay/sessioncore/pkg/midi"
	"github.com/patchbay/sessioncore/pkg/performance"
	"github.com/patchbay/sessioncore/pkg/registry"
	"github.com/patchbay/sessioncore/pkg/registry/builtin"
	"github.com/patchbay/sessioncore/pkg/session"
	"github.com/patchbay/sessioncore/pkg/transport"
)

// Engine owns the whole render chain for one session.
type Engine struct {
	Config   Config
	Graph    *graph.Graph
	Session  *session.Session
	Registry *registry.Registry
	CCMap    midi.CCMap
	MIDIIn   *midi.Ring
	Snapshot *session.Snapshot

	log *host.Logger

	bypassOnFault atomic.Bool // true (set in New) selects graph.FaultPolicyBypass; nothing in Engine clears it
	clock         Clock

	masterNode int
	pending    []midi.Classified // scratch, reused every block

	// masterView's outer slice is allocated once in New (one entry per
	// master channel) and each inner slice re-sliced from the master
	// node's AudioOut every Process call, so audio.Clip/audio.GetPeak
	// run against the master bus without allocating on the audio thread.
	masterView audio.Buffer
	masterPeak float32

	lastStealTotal uint64

	metrics *performance.PerformanceMetrics
}

// MasterPeak returns the peak (maximum absolute sample) the most recent
// Process call measured on the master bus, for a UI meter to poll.
func (e *Engine) MasterPeak() float32 { return e.masterPeak }

// masterClipLimit is the safety ceiling applied to the master bus after
// every render: a misbehaving or misconfigured processor chain can
// overshoot full scale, and this keeps a single runaway block from
// reaching the audio device at an arbitrary level.
const masterClipLimit = 4.0

// Metrics returns the engine's lock-free performance counters (process
// timing, buffer-underrun count, voice usage, event throughput) for a
// UI thread or diagnostics harness to poll; never read from the audio
// thread itself.
func (e *Engine) Metrics() *performance.PerformanceMetrics { return e.metrics }

// New builds an engine from cfg: a fresh registry with the built-ins
// registered, an empty graph sized to cfg.MaxFrames/Channels, an empty
// session at cfg.BPM, and the (possibly overridden) CC map.
func New(cfg Config) (*Engine, error) {
	r := registry.New()
	if err := builtin.RegisterAll(r); err != nil {
		return nil, newError(KindConfig, "New", err)
	}

	e := &Engine{
		Config:     cfg,
		Graph:      graph.New(cfg.MaxFrames, cfg.Channels),
		Session:    session.New(cfg.BPM),
		Registry:   r,
		CCMap:      cfg.BuildCCMap(),
		MIDIIn:     midi.NewRing(1024),
		log:        host.NewLogger("engine"),
		clock:      RealClock{},
		pending:    make([]midi.Classified, 0, 256),
		masterView: make(audio.Buffer, cfg.Channels),
		metrics:    performance.NewPerformanceMetrics(uint32(cfg.SampleRate), uint32(cfg.MaxFrames)),
	}
	e.bypassOnFault.Store(true) // spec.md default: bypass rather than propagate
	return e, nil
}

// SetClock overrides the engine's Clock, for tests driving a FakeClock.
func (e *Engine) SetClock(c Clock) { e.clock = c }

// AddMasterNode designates which graph node's AudioOut Process should
// read the final mix from.
func (e *Engine) AddMasterNode(id int) { e.masterNode = id }

// Master returns the master node.
func (e *Engine) Master() *graph.Node {
	if e.masterNode < 0 || e.masterNode >= len(e.Graph.Nodes) {
		return nil
	}
	return e.Graph.Nodes[e.masterNode]
}

// Rebuild runs fn with both the graph and the UI snapshot's publish path
// gated (spec.md's rebuild barrier): the audio thread finishes any
// in-flight block, then Connect/Disconnect/AddNode calls inside fn are
// safe from torn reads.
func (e *Engine) Rebuild(fn func()) {
	e.Graph.BeginRebuild()
	defer e.Graph.EndRebuild()
	if e.Snapshot != nil {
		e.Snapshot.BeginRebuild()
		defer e.Snapshot.EndRebuild()
	}
	fn()
}

// AttachSnapshot sizes and installs the UI-facing snapshot once the
// session's track/scene count is final; Process is a no-op with respect
// to publishing until this is called.
func (e *Engine) AttachSnapshot() {
	e.Snapshot = session.NewSnapshot(len(e.Session.Tracks), len(e.Session.Scenes))
}

// Process runs exactly one block: drains pending MIDI into classified
// events routed to CC bindings / scene launch / every synth node's EventsIn,
// advances the transport and resolves any crossed Qboundary, renders the
// graph, and (if a Snapshot is attached) attempts to publish the latest
// UI-facing state.
func (e *Engine) Process(steadyTime int64, frameCount int) error {
	start := e.metrics.StartProcess()
	defer e.metrics.EndProcess(start)

	e.ingestMIDI()

	prevBeat := e.Session.Transport.PlayheadBeat
	curBeat := e.Session.Transport.Advance(frameCount, e.Config.SampleRate)
	if transport.CrossedBoundary(prevBeat, curBeat, float64(e.Session.Transport.Quantize)) {
		e.Session.ResolveQueuedBoundary()
	}

	policy := graph.FaultPolicyPropagate
	if e.bypassOnFault.Load() {
		policy = graph.FaultPolicyBypass
	}
	if err := e.Graph.Render(steadyTime, frameCount, policy); err != nil {
		return newError(KindProcessorFault, "Process", err)
	}

	if master := e.Master(); master != nil {
		for ch := range e.masterView {
			if ch < len(master.AudioOut) {
				e.masterView[ch] = master.AudioOut[ch][:frameCount]
			}
		}
		audio.Clip(e.masterView, masterClipLimit)
		e.masterPeak = audio.GetPeak(e.masterView)
	}
	e.updateVoiceMetrics()

	if e.Snapshot != nil {
		e.Session.FillFromSession(e.Snapshot.Inactive())
		e.Snapshot.Publish()
	}
	return nil
}

// voiceStealReporter is implemented by voice-pool-backed processors that
// track how many times they've had to steal a voice rather than use a
// free one; effects don't implement it.
type voiceStealReporter interface {
	VoiceStealEvents() uint64
}

// updateVoiceMetrics sums GetVoiceInfo().VoiceCount across every node
// whose processor is backed by a voice pool and publishes the total to
// the performance counters a UI thread polls, then reports any new
// steal events since the last block (each VoiceManager's steal counter
// is monotonic, so the total across nodes only grows).
func (e *Engine) updateVoiceMetrics() {
	var total int32
	var stealTotal uint64
	for _, n := range e.Graph.Nodes {
		if vp, ok := n.Processor.(extension.VoiceInfoProvider); ok {
			total += int32(vp.GetVoiceInfo().VoiceCount)
		}
		if sr, ok := n.Processor.(voiceStealReporter); ok {
			stealTotal += sr.VoiceStealEvents()
		}
	}
	e.metrics.UpdateVoiceCount(total)
	for ; e.lastStealTotal < stealTotal; e.lastStealTotal++ {
		e.metrics.RecordVoiceSteal()
	}
}

func (e *Engine) ingestMIDI() {
	e.pending = e.pending[:0]
	for {
		msg, ok := e.MIDIIn.Pop()
		if !ok {
			break
		}
		e.pending = append(e.pending, midi.Classify(msg))
	}

	for _, ev := range e.pending {
		e.metrics.RecordEvent()
		switch ev.Kind {
		case midi.EventSceneLaunch:
			e.launchSceneFromKey(ev.Key)
		case midi.EventCC:
			e.handleCC(ev)
		default:
			e.routeToGraph(ev)
		}
	}
}

// launchSceneFromKey maps a scene-launch key (36-43) to a 0-based scene
// index and launches it, immediately if the transport is stopped.
func (e *Engine) launchSceneFromKey(key uint8) {
	scene := int(key) - 36
	_ = e.Session.LaunchScene(scene, !e.Session.Transport.Playing)
}

func (e *Engine) handleCC(ev midi.Classified) {
	binding, ok := e.CCMap.Lookup(ev.CC)
	if !ok {
		return
	}
	switch binding.Kind {
	case midi.BindingFader:
		if binding.Index < len(e.Session.Tracks) {
			e.Session.Tracks[binding.Index].Volume = midi.FaderToVolume(ev.CCValue)
		}
	case midi.BindingMute:
		if binding.Index < len(e.Session.Tracks) && midi.IsRisingEdge(ev.CCValue) {
			t := e.Session.Tracks[binding.Index]
			t.Mute = !t.Mute
		}
	case midi.BindingTransportPlay:
		if midi.IsRisingEdge(ev.CCValue) {
			e.Session.Transport.Play()
		}
	case midi.BindingTransportStop:
		if midi.IsRisingEdge(ev.CCValue) {
			e.Session.Transport.Stop()
		}
	}
}

// routeToGraph hands a note-on/off/pitch-bend event to every synth
// (graph.KindSynth) node's EventsIn. A future per-track routing table could target a
// single track's instrument node instead of broadcasting.
func (e *Engine) routeToGraph(ev midi.Classified) {
	for _, n := range e.Graph.Nodes {
		if n.Kind == graph.KindSynth {
			n.EventsIn = append(n.EventsIn, ev)
		}
	}
}
