package extension

// GUIProvider is the interface point a future UI layer implements. None
// of the built-in processors render a window themselves (no GUI
// toolkit is wired into this tree), so unlike the teacher's GUIProvider
// (preferred window API, floating/embedded negotiation, size queries)
// this only tracks the show/hide state a host would otherwise ask a
// real editor window for.
type GUIProvider interface {
	Show()
	Hide()
	IsShown() bool
}

// GUIStub is the default "gui" extension every processor exposes: a
// headless show/hide toggle with no window behind it.
type GUIStub struct {
	shown bool
}

// NewGUIStub creates a hidden GUI stub.
func NewGUIStub() *GUIStub { return &GUIStub{} }

// Show marks the (nonexistent) editor as visible.
func (g *GUIStub) Show() { g.shown = true }

// Hide marks the editor as hidden.
func (g *GUIStub) Hide() { g.shown = false }

// IsShown reports the last Show/Hide call.
func (g *GUIStub) IsShown() bool { return g.shown }
