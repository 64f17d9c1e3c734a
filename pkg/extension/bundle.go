package extension

import (
	"fmt"

	"github.com/patchbay/sessioncore/pkg/audio"
	"github.com/patchbay/sessioncore/pkg/controls"
	hostpkg "github.com/patchbay/sessioncore/pkg/host"
	"github.com/patchbay/sessioncore/pkg/param"
)

// Bundle consolidates the optional extensions a processor may expose
// behind GetExtension(id string), so built-in processors (pkg/registry/builtin)
// don't each reimplement the lookup. There is no external host to query for
// track info or transport control here (the teacher's TrackInfo/
// TransportControl providers only make sense against a real DAW process
// across a C ABI) — instead the bundle wires the engine-native equivalents:
// the processor's own parameter/state managers, note and audio port
// descriptors, voice info, a GUI stub, and the smart-param remote-controls
// page. Every field is optional; a nil field simply means that id isn't
// resolved by Get.
type Bundle struct {
	Params          *param.Manager
	NotePorts       *audio.NotePortManager
	AudioPorts      audio.PortsProvider
	VoiceInfo       VoiceInfoProvider
	GUI             *GUIStub
	RemoteControls  func(pageIndex uint32) (*controls.RemoteControlsPage, bool)
	RemoteControlsPageCount uint32
	Logger          *hostpkg.Logger

	pluginName string
	registry   *Registry
}

// NewBundle creates an extension bundle for a processor. Every processor
// gets a GUI stub for free (spec.md's gui extension is an interface
// point, not a feature), since there's no GUI toolkit behind it either
// way.
func NewBundle(pluginName string, params *param.Manager, notePorts *audio.NotePortManager) *Bundle {
	b := &Bundle{
		Params:     params,
		NotePorts:  notePorts,
		GUI:        NewGUIStub(),
		Logger:     hostpkg.NewLogger(pluginName),
		pluginName: pluginName,
		registry:   NewRegistry(),
	}
	b.logInitStatus()
	return b
}

func (b *Bundle) logInitStatus() {
	if b.Logger == nil {
		return
	}
	b.Logger.Debug(fmt.Sprintf("%s extension bundle: params=%v noteports=%v",
		b.pluginName, b.Params != nil, b.NotePorts != nil))
}

// Get resolves an extension by CLAP-style identifier, returning the
// concrete implementation a processor's GetExtension should hand back, or
// nil if this bundle doesn't provide it. Resolution goes through the
// bundle's Registry rather than a hardcoded switch, so a processor that
// wants the Supporter interface (SupportsExtension + GetExtension) gets
// it from the same lookup table Get uses.
func (b *Bundle) Get(id string) interface{} {
	b.sync()
	return b.registry.Get(id)
}

// SupportsExtension implements extension.Supporter.
func (b *Bundle) SupportsExtension(id string) bool {
	b.sync()
	return b.registry.Supports(id)
}

// GetExtension implements extension.Supporter, delegating to Get.
func (b *Bundle) GetExtension(id string) interface{} { return b.Get(id) }

// sync refreshes the registry from the bundle's public fields. Several
// fields (RemoteControls, AudioPorts, VoiceInfo) are assigned by the
// owning processor after NewBundle returns, so resolution can't be done
// once at construction time; GetExtension is a main-thread, non-realtime
// query (never called from Process), so re-registering on every call
// costs nothing that matters.
func (b *Bundle) sync() {
	if b.Params != nil {
		b.registry.Register(Params, b.Params)
	}
	if b.NotePorts != nil {
		b.registry.Register(NotePorts, b.NotePorts)
	}
	if b.AudioPorts != nil {
		b.registry.Register(AudioPorts, b.AudioPorts)
	}
	if b.VoiceInfo != nil {
		b.registry.Register(VoiceInfoID, b.VoiceInfo)
	}
	if b.GUI != nil {
		b.registry.Register(GUI, b.GUI)
	}
	if b.RemoteControls != nil {
		b.registry.Register(RemoteControls, b)
	}
}

// GetRemoteControlsPageCount implements the smart-param paging surface.
func (b *Bundle) GetRemoteControlsPageCount() uint32 {
	return b.RemoteControlsPageCount
}

// GetRemoteControlsPage implements the smart-param paging surface.
func (b *Bundle) GetRemoteControlsPage(pageIndex uint32) (*controls.RemoteControlsPage, bool) {
	if b.RemoteControls == nil {
		return nil, false
	}
	return b.RemoteControls(pageIndex)
}

// LogInfo logs an info message if a logger is attached.
func (b *Bundle) LogInfo(message string) {
	if b.Logger != nil {
		b.Logger.Info(message)
	}
}

// LogDebug logs a debug message if a logger is attached.
func (b *Bundle) LogDebug(message string) {
	if b.Logger != nil {
		b.Logger.Debug(message)
	}
}

// LogWarning logs a warning message if a logger is attached.
func (b *Bundle) LogWarning(message string) {
	if b.Logger != nil {
		b.Logger.Warning(message)
	}
}

// LogError logs an error message if a logger is attached.
func (b *Bundle) LogError(message string) {
	if b.Logger != nil {
		b.Logger.Error(message)
	}
}
