package plugin

import (
	"fmt"
	"io"
	"unsafe"

	"github.com/patchbay/sessioncore/pkg/controls"
	"github.com/patchbay/sessioncore/pkg/event"
	hostpkg "github.com/patchbay/sessioncore/pkg/host"
	"github.com/patchbay/sessioncore/pkg/param"
	"github.com/patchbay/sessioncore/pkg/state"
	"github.com/patchbay/sessioncore/pkg/thread"
)

// PluginBase provides the shared lifecycle, parameter, and state-management
// plumbing every built-in processor embeds. It plays the role the teacher's
// cgo PluginBase played against a real CLAP host, minus the host-side
// extensions (track info, thread-check query) that only make sense when a
// DAW process sits on the other side of a C ABI; here the "host" is the
// engine's own pkg/host.Logger.
type PluginBase struct {
	Host         unsafe.Pointer
	SampleRate   float64
	IsActivated  bool
	IsProcessing bool

	ParamManager *param.Manager
	StateManager *state.Manager
	Logger       *hostpkg.Logger

	Info Info

	PoolDiagnostics event.Diagnostics
}

// NewPluginBase creates a new plugin base with common initialization.
func NewPluginBase(info Info) *PluginBase {
	return &PluginBase{
		SampleRate:   44100.0,
		ParamManager: param.NewManager(),
		StateManager: state.NewManager(info.ID, info.Name, state.Version1),
		Logger:       hostpkg.NewLogger(info.ID),
		Info:         info,
	}
}

// InitWithHost records the opaque host handle and attaches a named logger.
// Kept as unsafe.Pointer for parity with external-processor loading, which
// remains a future extension point rather than something this module
// implements (see DESIGN.md).
func (b *PluginBase) InitWithHost(host unsafe.Pointer) {
	b.Host = host
	if b.Logger == nil {
		b.Logger = hostpkg.NewLogger(b.Info.ID)
	}
}

// CommonInit performs common initialization.
func (b *PluginBase) CommonInit() bool {
	thread.SetMainThread()

	if b.Logger != nil {
		b.Logger.Info(fmt.Sprintf("[%s] initialized", b.Info.Name))
		b.Logger.Debug(fmt.Sprintf("[%s] id=%s version=%s", b.Info.Name, b.Info.ID, b.Info.Version))
	}

	return true
}

// CommonDestroy performs common cleanup.
func (b *PluginBase) CommonDestroy() {
	thread.AssertMainThread("PluginBase.Destroy")

	if b.Logger != nil {
		b.Logger.Info(fmt.Sprintf("[%s] destroyed", b.Info.Name))
	}
}

// CommonActivate performs common activation.
func (b *PluginBase) CommonActivate(sampleRate float64, minFrames, maxFrames uint32) bool {
	thread.AssertMainThread("PluginBase.Activate")

	b.SampleRate = sampleRate
	b.IsActivated = true

	if b.Logger != nil {
		b.Logger.Info(fmt.Sprintf("[%s] activated sampleRate=%.0f frames=%d-%d",
			b.Info.Name, sampleRate, minFrames, maxFrames))
	}

	return true
}

// CommonDeactivate performs common deactivation.
func (b *PluginBase) CommonDeactivate() {
	thread.AssertMainThread("PluginBase.Deactivate")

	b.IsActivated = false

	if b.Logger != nil {
		b.Logger.Info(fmt.Sprintf("[%s] deactivated", b.Info.Name))
	}
}

// CommonStartProcessing prepares for audio processing.
func (b *PluginBase) CommonStartProcessing() bool {
	if !b.IsActivated {
		if b.Logger != nil {
			b.Logger.Warning(fmt.Sprintf("[%s] cannot start processing before activation", b.Info.Name))
		}
		return false
	}

	b.IsProcessing = true
	return true
}

// CommonStopProcessing stops audio processing.
func (b *PluginBase) CommonStopProcessing() {
	b.IsProcessing = false
}

// CommonReset resets plugin state.
func (b *PluginBase) CommonReset() {
	if b.Logger != nil {
		b.Logger.Debug(fmt.Sprintf("[%s] reset", b.Info.Name))
	}
}

// GetPluginInfo returns plugin information.
func (b *PluginBase) GetPluginInfo() Info {
	return b.Info
}

// GetPluginID returns the plugin ID.
func (b *PluginBase) GetPluginID() string {
	return b.Info.ID
}

// GetLatency returns 0 by default (no latency).
func (b *PluginBase) GetLatency() uint32 {
	thread.AssertMainThread("PluginBase.GetLatency")
	return 0
}

// GetTail returns 0 by default (no tail).
func (b *PluginBase) GetTail() uint32 {
	return 0
}

// OnTimer does nothing by default.
func (b *PluginBase) OnTimer(timerID uint64) {}

// OnMainThread does nothing by default.
func (b *PluginBase) OnMainThread() {}

// GetParamInfo returns parameter info by index.
func (b *PluginBase) GetParamInfo(index uint32) (param.Info, error) {
	return b.ParamManager.GetInfoByIndex(index)
}

// SaveState serializes the current parameter values to w.
func (b *PluginBase) SaveState(w io.Writer) error {
	values := b.ParamManager.GetAll()
	parameters := make([]state.Parameter, 0, len(values))
	for id, value := range values {
		name := ""
		if info, err := b.ParamManager.GetInfo(id); err == nil {
			name = info.Name
		}
		parameters = append(parameters, state.Parameter{ID: id, Value: value, Name: name})
	}

	pluginState := b.StateManager.CreateState(parameters, nil)
	data, err := b.StateManager.SaveToJSON(pluginState)
	if err != nil {
		if b.Logger != nil {
			b.Logger.Error(fmt.Sprintf("failed to serialize state: %v", err))
		}
		return err
	}

	if _, err := w.Write(data); err != nil {
		if b.Logger != nil {
			b.Logger.Error(fmt.Sprintf("failed to write state: %v", err))
		}
		return err
	}

	if b.Logger != nil {
		b.Logger.Debug(fmt.Sprintf("state saved (%d bytes)", len(data)))
	}
	return nil
}

// GetRemoteControlsPageCount returns 0 by default (no smart-param pages).
func (b *PluginBase) GetRemoteControlsPageCount() uint32 {
	return 0
}

// GetRemoteControlsPage returns nil by default; processors that expose
// smart-param pages override this.
func (b *PluginBase) GetRemoteControlsPage(pageIndex uint32) (*controls.RemoteControlsPage, bool) {
	return nil, false
}

// GetExtension returns nil by default. Override to provide Go-implemented
// extensions (see pkg/extension).
func (b *PluginBase) GetExtension(id string) interface{} {
	return nil
}

// Init delegates to CommonInit, translating its bool result to the
// error return plugin.Processor expects.
func (b *PluginBase) Init() error {
	if !b.CommonInit() {
		return ErrInitFailed
	}
	return nil
}

// Destroy delegates to CommonDestroy.
func (b *PluginBase) Destroy() { b.CommonDestroy() }

// Activate delegates to CommonActivate.
func (b *PluginBase) Activate(sampleRate float64, minFrames, maxFrames uint32) error {
	if sampleRate <= 0 {
		return ErrInvalidSampleRate
	}
	b.CommonActivate(sampleRate, minFrames, maxFrames)
	return nil
}

// Deactivate delegates to CommonDeactivate.
func (b *PluginBase) Deactivate() { b.CommonDeactivate() }

// StopProcessing delegates to CommonStopProcessing.
func (b *PluginBase) StopProcessing() { b.CommonStopProcessing() }

// StartProcessing delegates to CommonStartProcessing.
func (b *PluginBase) StartProcessing() error {
	if !b.CommonStartProcessing() {
		return fmt.Errorf("%s: cannot start processing before activation", b.Info.Name)
	}
	return nil
}

// Reset delegates to CommonReset.
func (b *PluginBase) Reset() { b.CommonReset() }

// ParamCount returns the number of registered parameters.
func (b *PluginBase) ParamCount() int {
	return int(b.ParamManager.Count())
}

// ParamInfo returns parameter metadata by declaration-order index.
func (b *PluginBase) ParamInfo(index int) (param.Info, error) {
	return b.ParamManager.GetInfoByIndex(uint32(index))
}

// ParamValue returns a parameter's current value by ID.
func (b *PluginBase) ParamValue(id uint32) (float64, error) {
	return b.ParamManager.GetValue(id)
}

// SetParamValue sets a parameter's value by ID, running any registered
// validator and notifying listeners (the hook processors use to keep
// cached fields like a filter cutoff in sync with the parameter).
func (b *PluginBase) SetParamValue(id uint32, value float64) error {
	return b.ParamManager.SetValue(id, value)
}

// LoadState reads serialized parameter values from r and applies each
// through ParamManager.SetValue, which fans out to any registered
// listeners the same way a live SetParamValue call would.
func (b *PluginBase) LoadState(r io.Reader) error {
	const maxStateSize = 1024 * 1024
	data, err := io.ReadAll(io.LimitReader(r, maxStateSize+1))
	if err != nil {
		return err
	}
	if len(data) > maxStateSize {
		return fmt.Errorf("state size exceeds maximum (%d bytes)", maxStateSize)
	}
	if len(data) == 0 {
		return fmt.Errorf("no state data found")
	}

	pluginState, err := b.StateManager.LoadFromJSON(data)
	if err != nil {
		if b.Logger != nil {
			b.Logger.Error(fmt.Sprintf("failed to parse state: %v", err))
		}
		return err
	}

	for _, p := range pluginState.Parameters {
		if err := b.ParamManager.SetValue(p.ID, p.Value); err != nil {
			return fmt.Errorf("restore parameter %d: %w", p.ID, err)
		}
	}

	if b.Logger != nil {
		b.Logger.Debug(fmt.Sprintf("state loaded (%d parameters)", len(pluginState.Parameters)))
	}
	return nil
}
